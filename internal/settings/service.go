package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	ListOptions(ctx context.Context, kind Kind) ([]*Option, error)
	CreateOption(ctx context.Context, kind Kind, o *Option) error
	UpdateOption(ctx context.Context, kind Kind, o *Option) error
	DeleteOption(ctx context.Context, kind Kind, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the saved options for a kind ordered by sort order, or the
// built-in defaults when nothing has been saved yet. The precedence lives
// here so no caller ever mixes saved rows with defaults.
func (s *Service) List(ctx context.Context, kind Kind) ([]*Option, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	options, err := s.repo.ListOptions(ctx, kind)
	if err != nil {
		return nil, err
	}

	if len(options) == 0 {
		return Defaults(kind), nil
	}

	return options, nil
}

// All returns every kind's options, saved or default, keyed by kind.
func (s *Service) All(ctx context.Context) (map[Kind][]*Option, error) {
	out := make(map[Kind][]*Option, len(Kinds))

	for _, kind := range Kinds {
		options, err := s.List(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", kind, err)
		}

		out[kind] = options
	}

	return out, nil
}

type OptionParams struct {
	Label     string
	Value     string
	Color     string
	SortOrder int
}

func (p OptionParams) validate() error {
	if p.Label == "" {
		return fmt.Errorf("label is required")
	}

	if p.Value == "" {
		return fmt.Errorf("value is required")
	}

	return nil
}

func (s *Service) Create(ctx context.Context, kind Kind, params OptionParams) (*Option, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	if err := params.validate(); err != nil {
		return nil, err
	}

	o := &Option{
		Label:     params.Label,
		Value:     params.Value,
		Color:     params.Color,
		SortOrder: params.SortOrder,
	}

	if err := s.repo.CreateOption(ctx, kind, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) Update(ctx context.Context, kind Kind, id uuid.UUID, params OptionParams) (*Option, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	if err := params.validate(); err != nil {
		return nil, err
	}

	o := &Option{
		ID:        id,
		Label:     params.Label,
		Value:     params.Value,
		Color:     params.Color,
		SortOrder: params.SortOrder,
	}

	if err := s.repo.UpdateOption(ctx, kind, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) Delete(ctx context.Context, kind Kind, id uuid.UUID) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}

	return s.repo.DeleteOption(ctx, kind, id)
}
