package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/customer"
	"github.com/yeonhwa/bloomdesk/internal/month"
	"github.com/yeonhwa/bloomdesk/internal/phone"
	"github.com/yeonhwa/bloomdesk/internal/push"
	"github.com/yeonhwa/bloomdesk/internal/sale"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=reservation
type Repository interface {
	CreateReservation(ctx context.Context, r *Reservation) error
	GetReservation(ctx context.Context, id uuid.UUID) (*Reservation, error)
	ListReservations(ctx context.Context, q Query) ([]*Reservation, error)
	UpdateReservation(ctx context.Context, r *Reservation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteReservation(ctx context.Context, id uuid.UUID) error

	// ConvertToSale creates the sale and marks the reservation completed with
	// the new sale id attached, both inside one database transaction.
	ConvertToSale(ctx context.Context, r *Reservation, s *sale.Sale) error

	DueReminders(ctx context.Context, now time.Time) ([]*Reservation, error)
	MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error
}

// CustomerDirectory upserts customers by phone, same contract the sale
// service uses.
type CustomerDirectory interface {
	UpsertByPhone(ctx context.Context, name, phoneNumber string) (*customer.Customer, error)
}

// Notifier broadcasts a push message to every active subscription.
type Notifier interface {
	BroadcastAll(ctx context.Context, msg push.Message) (push.Result, error)
}

type Query struct {
	Start  time.Time
	End    time.Time
	Status *Status
}

type Service struct {
	repo      Repository
	customers CustomerDirectory
	notifier  Notifier
}

func NewService(repo Repository, customers CustomerDirectory, notifier Notifier) *Service {
	return &Service{repo: repo, customers: customers, notifier: notifier}
}

type CreateParams struct {
	ScheduledAt     time.Time
	CustomerName    string
	CustomerPhone   string
	Title           string
	Description     string
	EstimatedAmount int64
	Channel         sale.Channel
	RemindAt        *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Reservation, error) {
	if params.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	if params.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("scheduled time is required")
	}

	if params.Channel == "" {
		params.Channel = sale.ChannelPhone
	}

	if !params.Channel.Valid() {
		return nil, fmt.Errorf("invalid channel %q", params.Channel)
	}

	r := &Reservation{
		ScheduledAt:     params.ScheduledAt,
		CustomerName:    params.CustomerName,
		CustomerPhone:   phone.Normalize(params.CustomerPhone),
		Title:           params.Title,
		Description:     params.Description,
		EstimatedAmount: params.EstimatedAmount,
		Status:          StatusPending,
		Channel:         params.Channel,
		RemindAt:        params.RemindAt,
	}

	if r.CustomerPhone != "" {
		if _, err := s.customers.UpsertByPhone(ctx, r.CustomerName, r.CustomerPhone); err != nil {
			return nil, fmt.Errorf("upserting customer: %w", err)
		}
	}

	if err := s.repo.CreateReservation(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

type ListFilter struct {
	Month  string
	Status *Status
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Reservation, error) {
	r, err := month.Parse(filter.Month)
	if err != nil {
		return nil, err
	}

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", *filter.Status)
	}

	return s.repo.ListReservations(ctx, Query{
		Start:  r.First,
		End:    r.Last.AddDate(0, 0, 1), // scheduled_at is a timestamp, not a date
		Status: filter.Status,
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return s.repo.GetReservation(ctx, id)
}

type UpdateParams struct {
	ScheduledAt     *time.Time
	CustomerName    *string
	CustomerPhone   *string
	Title           *string
	Description     *string
	EstimatedAmount *int64
	Channel         *sale.Channel
	RemindAt        *time.Time
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Reservation, error) {
	r, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.Status.Final() {
		return nil, ErrFinalState
	}

	if params.ScheduledAt != nil {
		r.ScheduledAt = *params.ScheduledAt
	}

	if params.CustomerName != nil {
		r.CustomerName = *params.CustomerName
	}

	if params.CustomerPhone != nil {
		r.CustomerPhone = phone.Normalize(*params.CustomerPhone)
	}

	if params.Title != nil {
		r.Title = *params.Title
	}

	if params.Description != nil {
		r.Description = *params.Description
	}

	if params.EstimatedAmount != nil {
		r.EstimatedAmount = *params.EstimatedAmount
	}

	if params.Channel != nil {
		if !params.Channel.Valid() {
			return nil, fmt.Errorf("invalid channel %q", *params.Channel)
		}

		r.Channel = *params.Channel
	}

	if params.RemindAt != nil {
		r.RemindAt = params.RemindAt
		r.RemindedAt = nil
	}

	if err := s.repo.UpdateReservation(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// SetStatus moves a reservation between pending, confirmed and cancelled.
// Completed is reserved for Convert.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Reservation, error) {
	if status != StatusPending && status != StatusConfirmed && status != StatusCancelled {
		return nil, fmt.Errorf("invalid status transition to %q", status)
	}

	r, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.Status.Final() {
		return nil, ErrFinalState
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	r.Status = status

	return r, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteReservation(ctx, id)
}

type ConvertParams struct {
	Date          time.Time
	Amount        int64 // 0 means use the reservation's estimate
	Category      string
	PaymentMethod string
	CardCompany   *string
	CardFee       *int64
	Note          string
}

// Convert turns a pending or confirmed reservation into a sale. The sale
// insert and the reservation's completed/sale_id update happen in one
// database transaction, so a failure leaves neither half behind.
func (s *Service) Convert(ctx context.Context, id uuid.UUID, params ConvertParams) (*sale.Sale, error) {
	if params.Category == "" {
		return nil, fmt.Errorf("category is required")
	}

	if params.PaymentMethod == "" {
		return nil, fmt.Errorf("payment method is required")
	}

	r, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.Status.Final() {
		return nil, ErrFinalState
	}

	amount := params.Amount
	if amount == 0 {
		amount = r.EstimatedAmount
	}

	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	sl := &sale.Sale{
		Date:          date,
		Amount:        amount,
		Category:      params.Category,
		PaymentMethod: params.PaymentMethod,
		Channel:       r.Channel,
		CardCompany:   params.CardCompany,
		CardFee:       params.CardFee,
		ReservationID: &r.ID,
		Note:          params.Note,
	}
	sl.ApplyDepositDefaults()

	if r.CustomerPhone != "" {
		c, err := s.customers.UpsertByPhone(ctx, r.CustomerName, r.CustomerPhone)
		if err != nil {
			return nil, fmt.Errorf("upserting customer: %w", err)
		}

		sl.CustomerID = &c.ID
		sl.CustomerName = &c.Name
		sl.CustomerPhone = &c.Phone
	}

	if err := s.repo.ConvertToSale(ctx, r, sl); err != nil {
		return nil, fmt.Errorf("converting reservation: %w", err)
	}

	return sl, nil
}

// SendDueReminders pushes a notification for every reservation whose remind
// time has passed and marks it reminded. One failed push leaves the reminder
// unsent so the next run retries it.
func (s *Service) SendDueReminders(ctx context.Context) error {
	now := time.Now()

	due, err := s.repo.DueReminders(ctx, now)
	if err != nil {
		return fmt.Errorf("finding due reminders: %w", err)
	}

	for _, r := range due {
		msg := push.Message{
			Title: "Upcoming reservation",
			Body:  fmt.Sprintf("%s — %s at %s", r.Title, r.CustomerName, r.ScheduledAt.Format("Jan 2 15:04")),
			Tag:   "reservation-reminder",
			URL:   fmt.Sprintf("/reservations/%s", r.ID),
		}

		if _, err := s.notifier.BroadcastAll(ctx, msg); err != nil {
			slog.Error("failed to broadcast reservation reminder", "reservation_id", r.ID, "error", err)
			continue
		}

		if err := s.repo.MarkReminded(ctx, r.ID, now); err != nil {
			slog.Error("failed to mark reservation reminded", "reservation_id", r.ID, "error", err)
		}
	}

	return nil
}
