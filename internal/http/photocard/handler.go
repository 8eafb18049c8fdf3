package photocard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/http/request"
	"github.com/yeonhwa/bloomdesk/internal/photocard"
)

type Handler struct {
	svc *photocard.Service
}

func NewHandler(svc *photocard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router, authed func(http.Handler) http.Handler) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Post("/", h.create)
		r.Put("/by-sale/{saleID}", h.upsertBySale)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

type photoRequest struct {
	URL              string `json:"url" validate:"required"`
	OriginalFilename string `json:"original_filename"`
}

type cardRequest struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	SaleID      *uuid.UUID     `json:"sale_id,omitempty"`
	Photos      []photoRequest `json:"photos" validate:"max=10,dive"`
}

func (r cardRequest) toParams() photocard.CardParams {
	photos := make([]photocard.Photo, len(r.Photos))
	for i, p := range r.Photos {
		photos[i] = photocard.Photo{URL: p.URL, OriginalFilename: p.OriginalFilename}
	}

	return photocard.CardParams{
		Title:       r.Title,
		Description: r.Description,
		Tags:        r.Tags,
		SaleID:      r.SaleID,
		Photos:      photos,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), req.toParams())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := photocard.Query{
		Tag: r.URL.Query().Get("tag"),
	}

	if s := r.URL.Query().Get("customer_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid customer_id", http.StatusBadRequest)
			return
		}

		q.CustomerID = &id
	}

	cards, err := h.svc.List(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(cards)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, photocard.ErrNotFound) {
			http.Error(w, "photo card not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req cardRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Update(r.Context(), id, req.toParams())
	if err != nil {
		switch {
		case errors.Is(err, photocard.ErrNotFound):
			http.Error(w, "photo card not found", http.StatusNotFound)
		case errors.Is(err, photocard.ErrTooManyPhotos):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) upsertBySale(w http.ResponseWriter, r *http.Request) {
	saleID, err := uuid.Parse(chi.URLParam(r, "saleID"))
	if err != nil {
		http.Error(w, "invalid sale id", http.StatusBadRequest)
		return
	}

	var req cardRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.UpsertBySale(r.Context(), saleID, req.toParams())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type photoResponse struct {
	URL              string `json:"url"`
	OriginalFilename string `json:"original_filename"`
}

type cardResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	SaleID      *uuid.UUID      `json:"sale_id,omitempty"`
	Photos      []photoResponse `json:"photos"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(c *photocard.Card) cardResponse {
	photos := make([]photoResponse, len(c.Photos))
	for i, p := range c.Photos {
		photos[i] = photoResponse{URL: p.URL, OriginalFilename: p.OriginalFilename}
	}

	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}

	return cardResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Tags:        tags,
		SaleID:      c.SaleID,
		Photos:      photos,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toResponseList(cards []*photocard.Card) []cardResponse {
	resp := make([]cardResponse, len(cards))
	for i, c := range cards {
		resp[i] = toResponse(c)
	}

	return resp
}
