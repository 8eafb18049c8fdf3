package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Grade segments customers for the shop owner. It is set by hand, never
// computed from purchase history.
type Grade string

const (
	GradeNew       Grade = "new"
	GradeRegular   Grade = "regular"
	GradeVIP       Grade = "vip"
	GradeBlacklist Grade = "blacklist"
)

// Valid reports whether g is one of the known grades.
func (g Grade) Valid() bool {
	switch g {
	case GradeNew, GradeRegular, GradeVIP, GradeBlacklist:
		return true
	}

	return false
}

var (
	ErrNotFound   = errors.New("customer not found")
	ErrPhoneTaken = errors.New("phone number already registered")
)

// Customer is a shop customer. Phone is the uniqueness key; Stats is derived
// from sales on every read and never stored.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	Grade     Grade
	Gender    *string
	Note      string
	Stats     PurchaseStats
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// PurchaseStats aggregates the customer's sales.
type PurchaseStats struct {
	Count         int
	TotalAmount   int64
	FirstPurchase *time.Time
	LastPurchase  *time.Time
}
