package reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/reservation"
	"github.com/yeonhwa/bloomdesk/internal/sale"
)

type reservationResponse struct {
	ID              uuid.UUID          `json:"id"`
	ScheduledAt     time.Time          `json:"scheduled_at"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	EstimatedAmount int64              `json:"estimated_amount"`
	Status          reservation.Status `json:"status"`
	Channel         sale.Channel       `json:"channel"`
	SaleID          *uuid.UUID         `json:"sale_id,omitempty"`
	RemindAt        *time.Time         `json:"remind_at,omitempty"`
	RemindedAt      *time.Time         `json:"reminded_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       *time.Time         `json:"updated_at,omitempty"`
}

func toResponse(r *reservation.Reservation) reservationResponse {
	return reservationResponse{
		ID:              r.ID,
		ScheduledAt:     r.ScheduledAt,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		Title:           r.Title,
		Description:     r.Description,
		EstimatedAmount: r.EstimatedAmount,
		Status:          r.Status,
		Channel:         r.Channel,
		SaleID:          r.SaleID,
		RemindAt:        r.RemindAt,
		RemindedAt:      r.RemindedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toResponseList(reservations []*reservation.Reservation) []reservationResponse {
	resp := make([]reservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = toResponse(r)
	}

	return resp
}

// saleResponse mirrors the sale handler's shape so a conversion returns the
// same document the sales API would.
type saleResponse struct {
	ID                    uuid.UUID          `json:"id"`
	Date                  string             `json:"date"`
	Amount                int64              `json:"amount"`
	Category              string             `json:"category"`
	PaymentMethod         string             `json:"payment_method"`
	Channel               sale.Channel       `json:"channel"`
	CardCompany           *string            `json:"card_company,omitempty"`
	CardFee               *int64             `json:"card_fee,omitempty"`
	ExpectedDepositAmount *int64             `json:"expected_deposit_amount,omitempty"`
	DepositStatus         sale.DepositStatus `json:"deposit_status"`
	CustomerID            *uuid.UUID         `json:"customer_id,omitempty"`
	CustomerName          *string            `json:"customer_name,omitempty"`
	CustomerPhone         *string            `json:"customer_phone,omitempty"`
	ReservationID         *uuid.UUID         `json:"reservation_id,omitempty"`
	Note                  string             `json:"note"`
	CreatedAt             time.Time          `json:"created_at"`
}

func toSaleResponse(s *sale.Sale) saleResponse {
	return saleResponse{
		ID:                    s.ID,
		Date:                  s.Date.Format(time.DateOnly),
		Amount:                s.Amount,
		Category:              s.Category,
		PaymentMethod:         s.PaymentMethod,
		Channel:               s.Channel,
		CardCompany:           s.CardCompany,
		CardFee:               s.CardFee,
		ExpectedDepositAmount: s.ExpectedDepositAmount,
		DepositStatus:         s.DepositStatus,
		CustomerID:            s.CustomerID,
		CustomerName:          s.CustomerName,
		CustomerPhone:         s.CustomerPhone,
		ReservationID:         s.ReservationID,
		Note:                  s.Note,
		CreatedAt:             s.CreatedAt,
	}
}
