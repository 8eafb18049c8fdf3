package customer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/phone"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	UpsertByPhone(ctx context.Context, name, phoneNumber string) (*Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	ListCustomers(ctx context.Context, filter ListFilter) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	// PurchaseStats aggregates sales for all given customer ids in one query.
	PurchaseStats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]PurchaseStats, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name   string
	Phone  string
	Grade  Grade
	Gender *string
	Note   string
}

type ListFilter struct {
	Grade  *Grade
	Search string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Customer, error) {
	if params.Grade == "" {
		params.Grade = GradeNew
	}

	if !params.Grade.Valid() {
		return nil, fmt.Errorf("invalid grade %q", params.Grade)
	}

	c := &Customer{
		Name:   params.Name,
		Phone:  phone.Normalize(params.Phone),
		Grade:  params.Grade,
		Gender: params.Gender,
		Note:   params.Note,
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// UpsertByPhone finds the customer with the given phone or creates one. The
// store runs it as a single insert-or-return-existing statement, so two
// concurrent submissions for the same new phone end up with one row.
func (s *Service) UpsertByPhone(ctx context.Context, name, phoneNumber string) (*Customer, error) {
	return s.repo.UpsertByPhone(ctx, name, phone.Normalize(phoneNumber))
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	c, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.attachStats(ctx, []*Customer{c}); err != nil {
		return nil, err
	}

	return c, nil
}

// List returns customers with purchase stats attached. Stats for the whole
// page come from one aggregation query, not one query per customer.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Customer, error) {
	customers, err := s.repo.ListCustomers(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.attachStats(ctx, customers); err != nil {
		return nil, err
	}

	return customers, nil
}

func (s *Service) attachStats(ctx context.Context, customers []*Customer) error {
	if len(customers) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(customers))
	for i, c := range customers {
		ids[i] = c.ID
	}

	stats, err := s.repo.PurchaseStats(ctx, ids)
	if err != nil {
		return fmt.Errorf("aggregating purchase stats: %w", err)
	}

	for _, c := range customers {
		c.Stats = stats[c.ID]
	}

	return nil
}

type UpdateParams struct {
	Name   *string
	Phone  *string
	Grade  *Grade
	Gender *string
	Note   *string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Customer, error) {
	c, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		c.Name = *params.Name
	}

	if params.Phone != nil {
		c.Phone = phone.Normalize(*params.Phone)
	}

	if params.Grade != nil {
		if !params.Grade.Valid() {
			return nil, fmt.Errorf("invalid grade %q", *params.Grade)
		}

		c.Grade = *params.Grade
	}

	if params.Gender != nil {
		c.Gender = params.Gender
	}

	if params.Note != nil {
		c.Note = *params.Note
	}

	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCustomer(ctx, id)
}
