package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("expense not found")

// Expense is one purchasing ledger entry. TotalAmount is always
// UnitPrice * Quantity; the column exists for query convenience only.
type Expense struct {
	ID            uuid.UUID
	Date          time.Time
	Category      string
	UnitPrice     int64
	Quantity      int
	TotalAmount   int64
	PaymentMethod string
	Vendor        string
	Note          string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
