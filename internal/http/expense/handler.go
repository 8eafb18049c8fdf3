package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/expense"
	"github.com/yeonhwa/bloomdesk/internal/http/request"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router, authed func(http.Handler) http.Handler) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Post("/", h.create)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

type createExpenseRequest struct {
	Date          string `json:"date" validate:"required"`
	Category      string `json:"category" validate:"required"`
	UnitPrice     int64  `json:"unit_price" validate:"required,gt=0"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	Vendor        string `json:"vendor"`
	Note          string `json:"note"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.ParseInLocation(time.DateOnly, req.Date, time.Local)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), expense.CreateParams{
		Date:          date,
		Category:      req.Category,
		UnitPrice:     req.UnitPrice,
		Quantity:      req.Quantity,
		PaymentMethod: req.PaymentMethod,
		Vendor:        req.Vendor,
		Note:          req.Note,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := expense.ListFilter{
		Month: r.URL.Query().Get("month"),
	}

	if s := r.URL.Query().Get("category"); s != "" {
		filter.Category = &s
	}

	if s := r.URL.Query().Get("vendor"); s != "" {
		filter.Vendor = &s
	}

	expenses, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(expenses)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateExpenseRequest struct {
	Date          *string `json:"date,omitempty"`
	Category      *string `json:"category,omitempty"`
	UnitPrice     *int64  `json:"unit_price,omitempty"`
	Quantity      *int    `json:"quantity,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	Vendor        *string `json:"vendor,omitempty"`
	Note          *string `json:"note,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := expense.UpdateParams{
		Category:      req.Category,
		UnitPrice:     req.UnitPrice,
		Quantity:      req.Quantity,
		PaymentMethod: req.PaymentMethod,
		Vendor:        req.Vendor,
		Note:          req.Note,
	}

	if req.Date != nil {
		date, err := time.ParseInLocation(time.DateOnly, *req.Date, time.Local)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		params.Date = &date
	}

	e, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
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

type expenseResponse struct {
	ID            uuid.UUID  `json:"id"`
	Date          string     `json:"date"`
	Category      string     `json:"category"`
	UnitPrice     int64      `json:"unit_price"`
	Quantity      int        `json:"quantity"`
	TotalAmount   int64      `json:"total_amount"`
	PaymentMethod string     `json:"payment_method"`
	Vendor        string     `json:"vendor"`
	Note          string     `json:"note"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:            e.ID,
		Date:          e.Date.Format(time.DateOnly),
		Category:      e.Category,
		UnitPrice:     e.UnitPrice,
		Quantity:      e.Quantity,
		TotalAmount:   e.TotalAmount,
		PaymentMethod: e.PaymentMethod,
		Vendor:        e.Vendor,
		Note:          e.Note,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toResponseList(expenses []*expense.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	return resp
}
