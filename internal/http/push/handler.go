package push

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yeonhwa/bloomdesk/internal/http/auth"
	"github.com/yeonhwa/bloomdesk/internal/http/request"
	"github.com/yeonhwa/bloomdesk/internal/push"
)

type Handler struct {
	svc            *push.Service
	vapidPublicKey string
}

func NewHandler(svc *push.Service, vapidPublicKey string) *Handler {
	return &Handler{svc: svc, vapidPublicKey: vapidPublicKey}
}

func (h *Handler) Routes(r chi.Router, authed func(http.Handler) http.Handler) {
	r.Get("/public-key", h.publicKey)
	r.Post("/subscribe", h.subscribe)
	r.Post("/unsubscribe", h.unsubscribe)

	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Post("/broadcast", h.broadcast)
	})
}

func (h *Handler) publicKey(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{"public_key": h.vapidPublicKey}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type subscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys"`
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sub, err := h.svc.Subscribe(r.Context(), push.SubscribeParams{
		UserID:   auth.Subject(r.Context()),
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(map[string]any{"id": sub.ID}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required"`
}

func (h *Handler) unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req unsubscribeRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Unsubscribe(r.Context(), req.Endpoint); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type broadcastRequest struct {
	UserID             string `json:"user_id"`
	Title              string `json:"title" validate:"required"`
	Body               string `json:"body"`
	Tag                string `json:"tag"`
	URL                string `json:"url"`
	RequireInteraction bool   `json:"require_interaction"`
}

type broadcastResponse struct {
	Success bool `json:"success"`
	Sent    int  `json:"sent"`
	Failed  int  `json:"failed"`
}

func (h *Handler) broadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.Broadcast(r.Context(), req.UserID, push.Message{
		Title:              req.Title,
		Body:               req.Body,
		Tag:                req.Tag,
		URL:                req.URL,
		RequireInteraction: req.RequireInteraction,
	})
	if err != nil {
		if errors.Is(err, push.ErrNotConfigured) {
			http.Error(w, "push is not configured", http.StatusServiceUnavailable)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := broadcastResponse{
		Success: result.Failed == 0,
		Sent:    result.Sent,
		Failed:  result.Failed,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
