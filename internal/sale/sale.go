package sale

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DepositStatus tracks whether a card sale's bank settlement has been
// confirmed received. Non-card sales stay not_applicable.
type DepositStatus string

const (
	DepositNotApplicable DepositStatus = "not_applicable"
	DepositPending       DepositStatus = "pending"
	DepositCompleted     DepositStatus = "completed"
)

func (d DepositStatus) Valid() bool {
	switch d {
	case DepositNotApplicable, DepositPending, DepositCompleted:
		return true
	}

	return false
}

// Channel is the booking source a sale came through, kept for channel
// analytics. Manual entries default to walk-in.
type Channel string

const (
	ChannelPhone  Channel = "phone"
	ChannelKakao  Channel = "kakao"
	ChannelNaver  Channel = "naver"
	ChannelWalkIn Channel = "walk_in"
	ChannelOther  Channel = "other"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelPhone, ChannelKakao, ChannelNaver, ChannelWalkIn, ChannelOther:
		return true
	}

	return false
}

// PaymentMethodCard is the settings value that makes a sale participate in
// deposit tracking.
const PaymentMethodCard = "card"

var (
	ErrNotFound          = errors.New("sale not found")
	ErrDepositNotTracked = errors.New("sale is not a card sale")
)

// Sale is one sales ledger entry. Customer name/phone are denormalized
// snapshots taken at entry time; CustomerID links the customer row.
type Sale struct {
	ID                    uuid.UUID
	Date                  time.Time
	Amount                int64
	Category              string
	PaymentMethod         string
	Channel               Channel
	CardCompany           *string
	CardFee               *int64
	ExpectedDepositAmount *int64
	DepositStatus         DepositStatus
	CustomerID            *uuid.UUID
	CustomerName          *string
	CustomerPhone         *string
	ReservationID         *uuid.UUID
	Note                  string
	Photos                []string
	CreatedAt             time.Time
	UpdatedAt             *time.Time
}

// ApplyDepositDefaults derives the deposit tracking fields from the payment
// method: card sales enter the pending queue with an expected settlement of
// amount minus card fee, everything else is excluded from tracking.
func (s *Sale) ApplyDepositDefaults() {
	if s.PaymentMethod != PaymentMethodCard {
		s.DepositStatus = DepositNotApplicable
		s.ExpectedDepositAmount = nil

		return
	}

	if s.DepositStatus == "" || s.DepositStatus == DepositNotApplicable {
		s.DepositStatus = DepositPending
	}

	if s.ExpectedDepositAmount == nil {
		expected := s.Amount
		if s.CardFee != nil {
			expected -= *s.CardFee
		}

		s.ExpectedDepositAmount = &expected
	}
}

// DepositSummary totals card-sale settlements for a period.
type DepositSummary struct {
	PendingAmount   int64
	PendingCount    int
	CompletedAmount int64
	CompletedCount  int
}
