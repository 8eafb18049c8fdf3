package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/customer"
)

type customerResponse struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Grade     customer.Grade `json:"grade"`
	Gender    *string        `json:"gender,omitempty"`
	Note      string         `json:"note"`
	Stats     statsResponse  `json:"stats"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

type statsResponse struct {
	Count         int        `json:"count"`
	TotalAmount   int64      `json:"total_amount"`
	FirstPurchase *time.Time `json:"first_purchase,omitempty"`
	LastPurchase  *time.Time `json:"last_purchase,omitempty"`
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:     c.ID,
		Name:   c.Name,
		Phone:  c.Phone,
		Grade:  c.Grade,
		Gender: c.Gender,
		Note:   c.Note,
		Stats: statsResponse{
			Count:         c.Stats.Count,
			TotalAmount:   c.Stats.TotalAmount,
			FirstPurchase: c.Stats.FirstPurchase,
			LastPurchase:  c.Stats.LastPurchase,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toResponseList(customers []*customer.Customer) []customerResponse {
	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toResponse(c)
	}

	return resp
}
