package sale

import (
	"time"

	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/sale"
)

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
	Photos                []string           `json:"photos"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             *time.Time         `json:"updated_at,omitempty"`
}

func toResponse(s *sale.Sale) saleResponse {
	photos := s.Photos
	if photos == nil {
		photos = []string{}
	}

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
		Photos:                photos,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func toResponseList(sales []*sale.Sale) []saleResponse {
	resp := make([]saleResponse, len(sales))
	for i, s := range sales {
		resp[i] = toResponse(s)
	}

	return resp
}
