package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/sale"
)

// Status is the reservation lifecycle state. Completed is only ever reached
// by converting the reservation into a sale.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

// Final reports whether the reservation can no longer change state.
func (s Status) Final() bool {
	return s == StatusCompleted || s == StatusCancelled
}

var (
	ErrNotFound   = errors.New("reservation not found")
	ErrFinalState = errors.New("reservation is already completed or cancelled")
)

// Reservation is a booked order that may later become a sale.
type Reservation struct {
	ID              uuid.UUID
	ScheduledAt     time.Time
	CustomerName    string
	CustomerPhone   string
	Title           string
	Description     string
	EstimatedAmount int64
	Status          Status
	Channel         sale.Channel
	SaleID          *uuid.UUID
	RemindAt        *time.Time
	RemindedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
