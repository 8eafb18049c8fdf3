package settings

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/http/request"
	"github.com/yeonhwa/bloomdesk/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router, authed func(http.Handler) http.Handler) {
	r.Get("/", h.all)
	r.Get("/{kind}", h.list)

	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Post("/{kind}", h.create)
		r.Patch("/{kind}/{id}", h.update)
		r.Delete("/{kind}/{id}", h.delete)
	})
}

func (h *Handler) all(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.All(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make(map[settings.Kind][]optionResponse, len(all))
	for kind, options := range all {
		resp[kind] = toResponseList(options)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	kind := settings.Kind(chi.URLParam(r, "kind"))

	options, err := h.svc.List(r.Context(), kind)
	if err != nil {
		if errors.Is(err, settings.ErrUnknownKind) {
			http.Error(w, "unknown settings kind", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(options)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type optionRequest struct {
	Label     string `json:"label" validate:"required"`
	Value     string `json:"value" validate:"required"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	kind := settings.Kind(chi.URLParam(r, "kind"))

	var req optionRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.svc.Create(r.Context(), kind, settings.OptionParams{
		Label:     req.Label,
		Value:     req.Value,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		writeSettingsError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toOptionResponse(o)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	kind := settings.Kind(chi.URLParam(r, "kind"))

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req optionRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.svc.Update(r.Context(), kind, id, settings.OptionParams{
		Label:     req.Label,
		Value:     req.Value,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		writeSettingsError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toOptionResponse(o)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	kind := settings.Kind(chi.URLParam(r, "kind"))

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), kind, id); err != nil {
		writeSettingsError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeSettingsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, settings.ErrUnknownKind):
		http.Error(w, "unknown settings kind", http.StatusNotFound)
	case errors.Is(err, settings.ErrNotFound):
		http.Error(w, "option not found", http.StatusNotFound)
	case errors.Is(err, settings.ErrValueTaken):
		http.Error(w, "option value already exists", http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

type optionResponse struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	Value     string    `json:"value"`
	Color     string    `json:"color"`
	SortOrder int       `json:"sort_order"`
}

func toOptionResponse(o *settings.Option) optionResponse {
	return optionResponse{
		ID:        o.ID,
		Label:     o.Label,
		Value:     o.Value,
		Color:     o.Color,
		SortOrder: o.SortOrder,
	}
}

func toResponseList(options []*settings.Option) []optionResponse {
	resp := make([]optionResponse, len(options))
	for i, o := range options {
		resp[i] = toOptionResponse(o)
	}

	return resp
}
