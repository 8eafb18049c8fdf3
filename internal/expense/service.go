package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/month"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	ListExpenses(ctx context.Context, q Query) ([]*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

type Query struct {
	Start    time.Time
	End      time.Time
	Category *string
	Vendor   *string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Date          time.Time
	Category      string
	UnitPrice     int64
	Quantity      int
	PaymentMethod string
	Vendor        string
	Note          string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	if params.Category == "" {
		return nil, fmt.Errorf("category is required")
	}

	if params.UnitPrice <= 0 {
		return nil, fmt.Errorf("unit price must be positive")
	}

	if params.Quantity <= 0 {
		params.Quantity = 1
	}

	if params.PaymentMethod == "" {
		return nil, fmt.Errorf("payment method is required")
	}

	e := &Expense{
		Date:          params.Date,
		Category:      params.Category,
		UnitPrice:     params.UnitPrice,
		Quantity:      params.Quantity,
		TotalAmount:   params.UnitPrice * int64(params.Quantity),
		PaymentMethod: params.PaymentMethod,
		Vendor:        params.Vendor,
		Note:          params.Note,
	}
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

type ListFilter struct {
	Month    string
	Category *string
	Vendor   *string
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	r, err := month.Parse(filter.Month)
	if err != nil {
		return nil, err
	}

	return s.repo.ListExpenses(ctx, Query{
		Start:    r.First,
		End:      r.Last,
		Category: filter.Category,
		Vendor:   filter.Vendor,
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

type UpdateParams struct {
	Date          *time.Time
	Category      *string
	UnitPrice     *int64
	Quantity      *int
	PaymentMethod *string
	Vendor        *string
	Note          *string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Expense, error) {
	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Date != nil {
		e.Date = *params.Date
	}

	if params.Category != nil {
		e.Category = *params.Category
	}

	if params.UnitPrice != nil {
		if *params.UnitPrice <= 0 {
			return nil, fmt.Errorf("unit price must be positive")
		}

		e.UnitPrice = *params.UnitPrice
	}

	if params.Quantity != nil {
		if *params.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be positive")
		}

		e.Quantity = *params.Quantity
	}

	if params.PaymentMethod != nil {
		e.PaymentMethod = *params.PaymentMethod
	}

	if params.Vendor != nil {
		e.Vendor = *params.Vendor
	}

	if params.Note != nil {
		e.Note = *params.Note
	}

	// Recompute instead of trusting the stored column.
	e.TotalAmount = e.UnitPrice * int64(e.Quantity)

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, id)
}
