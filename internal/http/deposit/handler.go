package deposit

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/sale"
)

// Handler exposes the deposit tracking view over card sales.
type Handler struct {
	svc *sale.Service
}

func NewHandler(svc *sale.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router, authed func(http.Handler) http.Handler) {
	r.Get("/", h.list)
	r.Get("/summary", h.summary)

	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Patch("/{id}/status", h.updateStatus)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var status *sale.DepositStatus

	if s := r.URL.Query().Get("status"); s != "" {
		st := sale.DepositStatus(s)
		status = &st
	}

	sales, err := h.svc.Deposits(r.Context(), r.URL.Query().Get("month"), status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(sales)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type summaryResponse struct {
	PendingAmount   int64 `json:"pending_amount"`
	PendingCount    int   `json:"pending_count"`
	CompletedAmount int64 `json:"completed_amount"`
	CompletedCount  int   `json:"completed_count"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.DepositSummary(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := summaryResponse{
		PendingAmount:   summary.PendingAmount,
		PendingCount:    summary.PendingCount,
		CompletedAmount: summary.CompletedAmount,
		CompletedCount:  summary.CompletedCount,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateStatusRequest struct {
	Status sale.DepositStatus `json:"status"`
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

	s, err := h.svc.SetDepositStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, sale.ErrNotFound):
			http.Error(w, "sale not found", http.StatusNotFound)
		case errors.Is(err, sale.ErrDepositNotTracked):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(s)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type depositResponse struct {
	ID                    uuid.UUID          `json:"id"`
	Date                  string             `json:"date"`
	Amount                int64              `json:"amount"`
	CardCompany           *string            `json:"card_company,omitempty"`
	CardFee               *int64             `json:"card_fee,omitempty"`
	ExpectedDepositAmount *int64             `json:"expected_deposit_amount,omitempty"`
	DepositStatus         sale.DepositStatus `json:"deposit_status"`
	CustomerName          *string            `json:"customer_name,omitempty"`
}

func toResponse(s *sale.Sale) depositResponse {
	return depositResponse{
		ID:                    s.ID,
		Date:                  s.Date.Format(time.DateOnly),
		Amount:                s.Amount,
		CardCompany:           s.CardCompany,
		CardFee:               s.CardFee,
		ExpectedDepositAmount: s.ExpectedDepositAmount,
		DepositStatus:         s.DepositStatus,
		CustomerName:          s.CustomerName,
	}
}

func toResponseList(sales []*sale.Sale) []depositResponse {
	resp := make([]depositResponse, len(sales))
	for i, s := range sales {
		resp[i] = toResponse(s)
	}

	return resp
}
