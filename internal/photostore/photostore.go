package photostore

import (
	"context"
	"errors"
	"io"
)

// MaxBytes is the largest accepted upload.
const MaxBytes = 10 << 20

var (
	ErrNotFound        = errors.New("photo not found")
	ErrTooLarge        = errors.New("photo exceeds the size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
)

// PhotoStore persists uploaded card photos. Save returns the storage key the
// photo is addressed by from then on.
type PhotoStore interface {
	Save(ctx context.Context, prefix, mimeType string, r io.Reader) (storageKey string, err error)
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error

	// PublicURL maps a storage key to the URL clients load it from.
	PublicURL(storageKey string) string
}

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ValidateUpload checks the sniffed content type and declared size before
// anything touches disk.
func ValidateUpload(mimeType string, size int64) error {
	if !allowedTypes[mimeType] {
		return ErrUnsupportedType
	}

	if size > MaxBytes {
		return ErrTooLarge
	}

	return nil
}
