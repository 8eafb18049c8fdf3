package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/customer"
	"github.com/yeonhwa/bloomdesk/internal/month"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sale
type Repository interface {
	CreateSale(ctx context.Context, s *Sale) error
	GetSale(ctx context.Context, id uuid.UUID) (*Sale, error)
	ListSales(ctx context.Context, q Query) ([]*Sale, error)
	UpdateSale(ctx context.Context, s *Sale) error
	DeleteSale(ctx context.Context, id uuid.UUID) error

	UpdateDepositStatus(ctx context.Context, id uuid.UUID, status DepositStatus) error
	DepositSummary(ctx context.Context, start, end time.Time) (DepositSummary, error)
}

// CustomerDirectory is the slice of the customer service a sale needs:
// insert-or-return-existing keyed on phone.
type CustomerDirectory interface {
	UpsertByPhone(ctx context.Context, name, phoneNumber string) (*customer.Customer, error)
}

// Query is the store-level filter. Date bounds are inclusive calendar days.
type Query struct {
	Start         time.Time
	End           time.Time
	Category      *string
	PaymentMethod *string
	CustomerID    *uuid.UUID
	DepositStatus *DepositStatus
	CardOnly      bool
}

type Service struct {
	repo      Repository
	customers CustomerDirectory
}

func NewService(repo Repository, customers CustomerDirectory) *Service {
	return &Service{repo: repo, customers: customers}
}

type CreateParams struct {
	Date                  time.Time
	Amount                int64
	Category              string
	PaymentMethod         string
	Channel               Channel
	CardCompany           *string
	CardFee               *int64
	ExpectedDepositAmount *int64
	CustomerName          string
	CustomerPhone         string
	ReservationID         *uuid.UUID
	Note                  string
	Photos                []string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Sale, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	if params.Category == "" {
		return nil, fmt.Errorf("category is required")
	}

	if params.PaymentMethod == "" {
		return nil, fmt.Errorf("payment method is required")
	}

	if params.Channel == "" {
		params.Channel = ChannelWalkIn
	}

	if !params.Channel.Valid() {
		return nil, fmt.Errorf("invalid channel %q", params.Channel)
	}

	sale := &Sale{
		Date:          params.Date,
		Amount:        params.Amount,
		Category:      params.Category,
		PaymentMethod: params.PaymentMethod,
		Channel:       params.Channel,
		CardCompany:   params.CardCompany,
		CardFee:       params.CardFee,
		ReservationID: params.ReservationID,
		Note:          params.Note,
		Photos:        params.Photos,

		ExpectedDepositAmount: params.ExpectedDepositAmount,
	}
	sale.ApplyDepositDefaults()

	if params.CustomerPhone != "" {
		c, err := s.customers.UpsertByPhone(ctx, params.CustomerName, params.CustomerPhone)
		if err != nil {
			return nil, fmt.Errorf("upserting customer: %w", err)
		}

		sale.CustomerID = &c.ID
		sale.CustomerName = &c.Name
		sale.CustomerPhone = &c.Phone
	}

	if err := s.repo.CreateSale(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

type ListFilter struct {
	Month         string
	Category      *string
	PaymentMethod *string
	CustomerID    *uuid.UUID
}

// List returns sales for the requested month, defaulting to the current one.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Sale, error) {
	r, err := month.Parse(filter.Month)
	if err != nil {
		return nil, err
	}

	return s.repo.ListSales(ctx, Query{
		Start:         r.First,
		End:           r.Last,
		Category:      filter.Category,
		PaymentMethod: filter.PaymentMethod,
		CustomerID:    filter.CustomerID,
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Sale, error) {
	return s.repo.GetSale(ctx, id)
}

type UpdateParams struct {
	Date          *time.Time
	Amount        *int64
	Category      *string
	PaymentMethod *string
	Channel       *Channel
	CardCompany   *string
	CardFee       *int64
	Note          *string
	Photos        []string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Sale, error) {
	sale, err := s.repo.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Date != nil {
		sale.Date = *params.Date
	}

	if params.Amount != nil {
		if *params.Amount <= 0 {
			return nil, fmt.Errorf("amount must be positive")
		}

		sale.Amount = *params.Amount
	}

	if params.Category != nil {
		sale.Category = *params.Category
	}

	if params.PaymentMethod != nil {
		sale.PaymentMethod = *params.PaymentMethod
		// Switching to or away from card adjusts deposit tracking.
		sale.ApplyDepositDefaults()
	}

	if params.Channel != nil {
		if !params.Channel.Valid() {
			return nil, fmt.Errorf("invalid channel %q", *params.Channel)
		}

		sale.Channel = *params.Channel
	}

	if params.CardCompany != nil {
		sale.CardCompany = params.CardCompany
	}

	if params.CardFee != nil {
		sale.CardFee = params.CardFee
	}

	if params.Note != nil {
		sale.Note = *params.Note
	}

	if params.Photos != nil {
		sale.Photos = params.Photos
	}

	if err := s.repo.UpdateSale(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSale(ctx, id)
}

// Deposits lists card sales for the month, optionally narrowed to one
// deposit status.
func (s *Service) Deposits(ctx context.Context, monthToken string, status *DepositStatus) ([]*Sale, error) {
	r, err := month.Parse(monthToken)
	if err != nil {
		return nil, err
	}

	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("invalid deposit status %q", *status)
	}

	return s.repo.ListSales(ctx, Query{
		Start:         r.First,
		End:           r.Last,
		CardOnly:      true,
		DepositStatus: status,
	})
}

func (s *Service) DepositSummary(ctx context.Context, monthToken string) (DepositSummary, error) {
	r, err := month.Parse(monthToken)
	if err != nil {
		return DepositSummary{}, err
	}

	return s.repo.DepositSummary(ctx, r.First, r.Last)
}

// SetDepositStatus transitions a card sale's settlement state. Sales outside
// deposit tracking are rejected.
func (s *Service) SetDepositStatus(ctx context.Context, id uuid.UUID, status DepositStatus) (*Sale, error) {
	if status != DepositPending && status != DepositCompleted {
		return nil, fmt.Errorf("invalid deposit status %q", status)
	}

	sale, err := s.repo.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if sale.DepositStatus == DepositNotApplicable {
		return nil, ErrDepositNotTracked
	}

	if err := s.repo.UpdateDepositStatus(ctx, id, status); err != nil {
		return nil, err
	}

	sale.DepositStatus = status

	return sale, nil
}
