package stats

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yeonhwa/bloomdesk/internal/stats"
)

type Handler struct {
	svc *stats.Service
}

func NewHandler(svc *stats.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/monthly", h.monthly)
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Monthly(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(summary)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type bucketResponse struct {
	Key        string `json:"key"`
	Amount     int64  `json:"amount"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type summaryResponse struct {
	Month                string           `json:"month"`
	SalesTotal           int64            `json:"sales_total"`
	SalesCount           int              `json:"sales_count"`
	ExpensesTotal        int64            `json:"expenses_total"`
	ExpensesCount        int              `json:"expenses_count"`
	Profit               int64            `json:"profit"`
	SalesByCategory      []bucketResponse `json:"sales_by_category"`
	SalesByPaymentMethod []bucketResponse `json:"sales_by_payment_method"`
	SalesByChannel       []bucketResponse `json:"sales_by_channel"`
	ExpensesByCategory   []bucketResponse `json:"expenses_by_category"`
	NewCustomers         int              `json:"new_customers"`
	ReturningCustomers   int              `json:"returning_customers"`
}

func toResponse(s *stats.Summary) summaryResponse {
	return summaryResponse{
		Month:                s.Month,
		SalesTotal:           s.Totals.SalesTotal,
		SalesCount:           s.Totals.SalesCount,
		ExpensesTotal:        s.Totals.ExpensesTotal,
		ExpensesCount:        s.Totals.ExpensesCount,
		Profit:               s.Totals.Profit,
		SalesByCategory:      toBuckets(s.SalesByCategory),
		SalesByPaymentMethod: toBuckets(s.SalesByPaymentMethod),
		SalesByChannel:       toBuckets(s.SalesByChannel),
		ExpensesByCategory:   toBuckets(s.ExpensesByCategory),
		NewCustomers:         s.Customers.New,
		ReturningCustomers:   s.Customers.Returning,
	}
}

func toBuckets(buckets []stats.Bucket) []bucketResponse {
	resp := make([]bucketResponse, len(buckets))
	for i, b := range buckets {
		resp[i] = bucketResponse{
			Key:        b.Key,
			Amount:     b.Amount,
			Count:      b.Count,
			Percentage: b.Percentage,
		}
	}

	return resp
}
