package sale

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/customer"
	"github.com/yeonhwa/bloomdesk/internal/http/request"
	"github.com/yeonhwa/bloomdesk/internal/sale"
)

type Handler struct {
	svc *sale.Service
}

func NewHandler(svc *sale.Service) *Handler {
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

type createSaleRequest struct {
	Date                  string       `json:"date" validate:"required"`
	Amount                int64        `json:"amount" validate:"required,gt=0"`
	Category              string       `json:"category" validate:"required"`
	PaymentMethod         string       `json:"payment_method" validate:"required"`
	Channel               sale.Channel `json:"channel"`
	CardCompany           *string      `json:"card_company,omitempty"`
	CardFee               *int64       `json:"card_fee,omitempty"`
	ExpectedDepositAmount *int64       `json:"expected_deposit_amount,omitempty"`
	CustomerName          string       `json:"customer_name"`
	CustomerPhone         string       `json:"customer_phone"`
	Note                  string       `json:"note"`
	Photos                []string     `json:"photos"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.ParseInLocation(time.DateOnly, req.Date, time.Local)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	s, err := h.svc.Create(r.Context(), sale.CreateParams{
		Date:                  date,
		Amount:                req.Amount,
		Category:              req.Category,
		PaymentMethod:         req.PaymentMethod,
		Channel:               req.Channel,
		CardCompany:           req.CardCompany,
		CardFee:               req.CardFee,
		ExpectedDepositAmount: req.ExpectedDepositAmount,
		CustomerName:          req.CustomerName,
		CustomerPhone:         req.CustomerPhone,
		Note:                  req.Note,
		Photos:                req.Photos,
	})
	if err != nil {
		if errors.Is(err, customer.ErrPhoneTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(s)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := sale.ListFilter{
		Month: r.URL.Query().Get("month"),
	}

	if s := r.URL.Query().Get("category"); s != "" {
		filter.Category = &s
	}

	if s := r.URL.Query().Get("payment_method"); s != "" {
		filter.PaymentMethod = &s
	}

	if s := r.URL.Query().Get("customer_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid customer_id", http.StatusBadRequest)
			return
		}

		filter.CustomerID = &id
	}

	sales, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(sales)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	s, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, sale.ErrNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(s)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateSaleRequest struct {
	Date          *string       `json:"date,omitempty"`
	Amount        *int64        `json:"amount,omitempty"`
	Category      *string       `json:"category,omitempty"`
	PaymentMethod *string       `json:"payment_method,omitempty"`
	Channel       *sale.Channel `json:"channel,omitempty"`
	CardCompany   *string       `json:"card_company,omitempty"`
	CardFee       *int64        `json:"card_fee,omitempty"`
	Note          *string       `json:"note,omitempty"`
	Photos        []string      `json:"photos,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := sale.UpdateParams{
		Amount:        req.Amount,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Channel:       req.Channel,
		CardCompany:   req.CardCompany,
		CardFee:       req.CardFee,
		Note:          req.Note,
		Photos:        req.Photos,
	}

	if req.Date != nil {
		date, err := time.ParseInLocation(time.DateOnly, *req.Date, time.Local)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		params.Date = &date
	}

	s, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, sale.ErrNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(s)); err != nil {
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
