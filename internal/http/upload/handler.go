package upload

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yeonhwa/bloomdesk/internal/photostore"
)

// Handler accepts photo uploads for cards and serves stored photos back.
type Handler struct {
	photos photostore.PhotoStore
}

func NewHandler(photos photostore.PhotoStore) *Handler {
	return &Handler{photos: photos}
}

func (h *Handler) Routes(r chi.Router, authed func(http.Handler) http.Handler) {
	r.Get("/{key}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Post("/", h.upload)
	})
}

type uploadResponse struct {
	Key              string `json:"key"`
	URL              string `json:"url"`
	OriginalFilename string `json:"original_filename"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, photostore.MaxBytes+1024)

	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "photo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Sniff the real content type instead of trusting the client header.
	head := make([]byte, 512)

	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		http.Error(w, "reading upload", http.StatusBadRequest)
		return
	}

	mimeType := http.DetectContentType(head[:n])

	if err := photostore.ValidateUpload(mimeType, header.Size); err != nil {
		switch {
		case errors.Is(err, photostore.ErrUnsupportedType):
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		case errors.Is(err, photostore.ErrTooLarge):
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}

		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		http.Error(w, "reading upload", http.StatusInternalServerError)
		return
	}

	key, err := h.photos.Save(r.Context(), "card", mimeType, file)
	if err != nil {
		if errors.Is(err, photostore.ErrTooLarge) {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}

		http.Error(w, "saving photo", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := uploadResponse{
		Key:              key,
		URL:              h.photos.PublicURL(key),
		OriginalFilename: header.Filename,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	photo, mimeType, err := h.photos.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, photostore.ErrNotFound) {
			http.Error(w, "photo not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}
	defer photo.Close()

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(w, photo); err != nil {
		slog.Error("failed to write photo", "error", err)
	}
}
