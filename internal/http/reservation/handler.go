package reservation

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/http/request"
	"github.com/yeonhwa/bloomdesk/internal/reservation"
	"github.com/yeonhwa/bloomdesk/internal/sale"
)

type Handler struct {
	svc *reservation.Service
}

func NewHandler(svc *reservation.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router, authed func(http.Handler) http.Handler) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Post("/", h.create)
		r.Patch("/{id}", h.update)
		r.Patch("/{id}/status", h.updateStatus)
		r.Post("/{id}/convert", h.convert)
		r.Delete("/{id}", h.delete)
	})
}

type createReservationRequest struct {
	ScheduledAt     time.Time    `json:"scheduled_at" validate:"required"`
	CustomerName    string       `json:"customer_name"`
	CustomerPhone   string       `json:"customer_phone"`
	Title           string       `json:"title" validate:"required"`
	Description     string       `json:"description"`
	EstimatedAmount int64        `json:"estimated_amount"`
	Channel         sale.Channel `json:"channel"`
	RemindAt        *time.Time   `json:"remind_at,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.Create(r.Context(), reservation.CreateParams{
		ScheduledAt:     req.ScheduledAt,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		Title:           req.Title,
		Description:     req.Description,
		EstimatedAmount: req.EstimatedAmount,
		Channel:         req.Channel,
		RemindAt:        req.RemindAt,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := reservation.ListFilter{
		Month: r.URL.Query().Get("month"),
	}

	if s := r.URL.Query().Get("status"); s != "" {
		st := reservation.Status(s)
		filter.Status = &st
	}

	reservations, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(reservations)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	res, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			http.Error(w, "reservation not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateReservationRequest struct {
	ScheduledAt     *time.Time    `json:"scheduled_at,omitempty"`
	CustomerName    *string       `json:"customer_name,omitempty"`
	CustomerPhone   *string       `json:"customer_phone,omitempty"`
	Title           *string       `json:"title,omitempty"`
	Description     *string       `json:"description,omitempty"`
	EstimatedAmount *int64        `json:"estimated_amount,omitempty"`
	Channel         *sale.Channel `json:"channel,omitempty"`
	RemindAt        *time.Time    `json:"remind_at,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.Update(r.Context(), id, reservation.UpdateParams{
		ScheduledAt:     req.ScheduledAt,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		Title:           req.Title,
		Description:     req.Description,
		EstimatedAmount: req.EstimatedAmount,
		Channel:         req.Channel,
		RemindAt:        req.RemindAt,
	})
	if err != nil {
		writeReservationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateStatusRequest struct {
	Status reservation.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		writeReservationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type convertRequest struct {
	Date          string  `json:"date"`
	Amount        int64   `json:"amount"`
	Category      string  `json:"category" validate:"required"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
	CardCompany   *string `json:"card_company,omitempty"`
	CardFee       *int64  `json:"card_fee,omitempty"`
	Note          string  `json:"note"`
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req convertRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := reservation.ConvertParams{
		Amount:        req.Amount,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		CardCompany:   req.CardCompany,
		CardFee:       req.CardFee,
		Note:          req.Note,
	}

	if req.Date != "" {
		date, err := time.ParseInLocation(time.DateOnly, req.Date, time.Local)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		params.Date = date
	}

	s, err := h.svc.Convert(r.Context(), id, params)
	if err != nil {
		writeReservationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSaleResponse(s)); err != nil {
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

func writeReservationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reservation.ErrNotFound):
		http.Error(w, "reservation not found", http.StatusNotFound)
	case errors.Is(err, reservation.ErrFinalState):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
