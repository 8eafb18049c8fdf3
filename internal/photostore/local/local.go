package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yeonhwa/bloomdesk/internal/photostore"
)

// Store keeps photos on the local filesystem under one base directory, the
// simplest thing that works for a single-shop deployment.
type Store struct {
	basePath string
	baseURL  string
}

func New(basePath, baseURL string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("creating photo directory: %w", err)
	}

	return &Store{basePath: basePath, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *Store) Save(ctx context.Context, prefix, mimeType string, r io.Reader) (string, error) {
	filename := fmt.Sprintf("%s_%d%s", prefix, time.Now().UnixNano(), extFor(mimeType))
	filePath := filepath.Join(s.basePath, filename)

	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	// Uploads past the limit are cut off here even if the declared size lied.
	if _, err := io.Copy(f, io.LimitReader(r, photostore.MaxBytes+1)); err != nil {
		s.discard(f, filePath)

		return "", fmt.Errorf("writing file: %w", err)
	}

	if info, err := f.Stat(); err == nil && info.Size() > photostore.MaxBytes {
		s.discard(f, filePath)

		return "", photostore.ErrTooLarge
	}

	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after close error", "error", rerr)
		}

		return "", fmt.Errorf("closing file: %w", err)
	}

	return filename, nil
}

func (s *Store) discard(f *os.File, filePath string) {
	if cerr := f.Close(); cerr != nil {
		slog.Error("failed to close discarded file", "error", cerr)
	}

	if rerr := os.Remove(filePath); rerr != nil {
		slog.Error("failed to remove discarded file", "error", rerr)
	}
}

func (s *Store) Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error) {
	filePath, err := s.safeJoin(storageKey)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", photostore.ErrNotFound
		}

		return nil, "", fmt.Errorf("opening file: %w", err)
	}

	return f, mimeFor(filePath), nil
}

func (s *Store) Delete(ctx context.Context, storageKey string) error {
	filePath, err := s.safeJoin(storageKey)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return photostore.ErrNotFound
		}

		return fmt.Errorf("deleting file: %w", err)
	}

	return nil
}

func (s *Store) PublicURL(storageKey string) string {
	return s.baseURL + "/" + storageKey
}

// safeJoin resolves storageKey under basePath and rejects directory traversal.
func (s *Store) safeJoin(storageKey string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, storageKey))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}

	return absPath, nil
}

func extFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func mimeFor(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
