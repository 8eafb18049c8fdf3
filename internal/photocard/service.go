package photocard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=photocard
type Repository interface {
	CreateCard(ctx context.Context, c *Card) error
	GetCard(ctx context.Context, id uuid.UUID) (*Card, error)
	ListCards(ctx context.Context, q Query) ([]*Card, error)
	UpdateCard(ctx context.Context, c *Card) error
	DeleteCard(ctx context.Context, id uuid.UUID) error

	// UpsertBySale inserts or replaces the single card linked to a sale,
	// photos included, in one database transaction.
	UpsertBySale(ctx context.Context, c *Card) error
}

type Query struct {
	Tag        string
	CustomerID *uuid.UUID
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CardParams struct {
	Title       string
	Description string
	Tags        []string
	SaleID      *uuid.UUID
	Photos      []Photo
}

func (p CardParams) validate() error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}

	if len(p.Photos) > MaxPhotos {
		return ErrTooManyPhotos
	}

	for _, photo := range p.Photos {
		if photo.URL == "" {
			return fmt.Errorf("photo url is required")
		}
	}

	return nil
}

func (p CardParams) toCard() *Card {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Card{
		Title:       p.Title,
		Description: p.Description,
		Tags:        tags,
		SaleID:      p.SaleID,
		Photos:      p.Photos,
	}
}

func (s *Service) Create(ctx context.Context, params CardParams) (*Card, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	c := params.toCard()

	if err := s.repo.CreateCard(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Card, error) {
	return s.repo.GetCard(ctx, id)
}

func (s *Service) List(ctx context.Context, q Query) ([]*Card, error) {
	return s.repo.ListCards(ctx, q)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params CardParams) (*Card, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	c := params.toCard()
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt

	if err := s.repo.UpdateCard(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCard(ctx, id)
}

// UpsertBySale creates or replaces the card attached to a sale, keeping the
// one-card-per-sale rule without a read-then-write race.
func (s *Service) UpsertBySale(ctx context.Context, saleID uuid.UUID, params CardParams) (*Card, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	c := params.toCard()
	c.SaleID = &saleID

	if err := s.repo.UpsertBySale(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}
