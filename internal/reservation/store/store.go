package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/reservation"
	"github.com/yeonhwa/bloomdesk/internal/sale"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectReservationColumns = `
	r.id, r.scheduled_at, r.customer_name, r.customer_phone, r.title, r.description,
	r.estimated_amount, r.status, r.channel, r.sale_id, r.remind_at, r.reminded_at,
	r.created_at, r.updated_at
`

func scanReservation(s scanner) (*reservation.Reservation, error) {
	var r reservation.Reservation

	var statusStr, channelStr string

	if err := s.Scan(
		&r.ID, &r.ScheduledAt, &r.CustomerName, &r.CustomerPhone, &r.Title, &r.Description,
		&r.EstimatedAmount, &statusStr, &channelStr, &r.SaleID, &r.RemindAt, &r.RemindedAt,
		&r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.Status = reservation.Status(statusStr)
	r.Channel = sale.Channel(channelStr)

	return &r, nil
}

func (s *Store) CreateReservation(ctx context.Context, r *reservation.Reservation) error {
	query := `
		INSERT INTO reservations (
			scheduled_at, customer_name, customer_phone, title, description,
			estimated_amount, status, channel, remind_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		r.ScheduledAt,
		r.CustomerName,
		r.CustomerPhone,
		r.Title,
		r.Description,
		r.EstimatedAmount,
		r.Status,
		r.Channel,
		r.RemindAt,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating reservation: %w", err)
	}

	return nil
}

func (s *Store) GetReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	query := `SELECT ` + selectReservationColumns + ` FROM reservations r WHERE r.id = $1`

	r, err := scanReservation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservation.ErrNotFound
		}

		return nil, fmt.Errorf("getting reservation: %w", err)
	}

	return r, nil
}

func (s *Store) ListReservations(ctx context.Context, q reservation.Query) ([]*reservation.Reservation, error) {
	query := `SELECT ` + selectReservationColumns + `
		FROM reservations r
		WHERE r.scheduled_at >= $1 AND r.scheduled_at < $2`

	args := []any{q.Start, q.End}

	argIdx := 3

	if q.Status != nil {
		query += fmt.Sprintf(" AND r.status = $%d", argIdx)

		args = append(args, *q.Status)
		argIdx++
	}

	query += " ORDER BY r.scheduled_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*reservation.Reservation

	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reservation: %w", err)
		}

		reservations = append(reservations, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservation rows: %w", err)
	}

	return reservations, nil
}

func (s *Store) UpdateReservation(ctx context.Context, r *reservation.Reservation) error {
	query := `
		UPDATE reservations
		SET scheduled_at = $1, customer_name = $2, customer_phone = $3, title = $4,
			description = $5, estimated_amount = $6, channel = $7, remind_at = $8,
			reminded_at = $9, updated_at = NOW()
		WHERE id = $10
	`

	_, err := s.db.ExecContext(ctx, query,
		r.ScheduledAt,
		r.CustomerName,
		r.CustomerPhone,
		r.Title,
		r.Description,
		r.EstimatedAmount,
		r.Channel,
		r.RemindAt,
		r.RemindedAt,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("updating reservation: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error {
	query := `
		UPDATE reservations
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating reservation status: %w", err)
	}

	return nil
}

func (s *Store) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting reservation: %w", err)
	}

	return nil
}

// ConvertToSale inserts the sale and marks the reservation completed in one
// database transaction. Either both rows land or neither does, so an
// orphaned sale pointing at a never-completed reservation cannot occur.
func (s *Store) ConvertToSale(ctx context.Context, r *reservation.Reservation, sl *sale.Sale) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	photos, err := json.Marshal([]string{})
	if err != nil {
		return fmt.Errorf("encoding photos: %w", err)
	}

	saleQuery := `
		INSERT INTO sales (
			date, amount, category, payment_method, channel,
			card_company, card_fee, expected_deposit_amount, deposit_status,
			customer_id, customer_name, customer_phone, reservation_id,
			note, photos, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, saleQuery,
		sl.Date,
		sl.Amount,
		sl.Category,
		sl.PaymentMethod,
		sl.Channel,
		sl.CardCompany,
		sl.CardFee,
		sl.ExpectedDepositAmount,
		sl.DepositStatus,
		sl.CustomerID,
		sl.CustomerName,
		sl.CustomerPhone,
		sl.ReservationID,
		sl.Note,
		photos,
	).Scan(&sl.ID, &sl.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating sale from reservation: %w", err)
	}

	reservationQuery := `
		UPDATE reservations
		SET status = $1, sale_id = $2, updated_at = NOW()
		WHERE id = $3
	`
	if _, err := dbTx.ExecContext(ctx, reservationQuery, reservation.StatusCompleted, sl.ID, r.ID); err != nil {
		return fmt.Errorf("completing reservation: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing conversion: %w", err)
	}

	r.Status = reservation.StatusCompleted
	r.SaleID = &sl.ID

	return nil
}

// DueReminders returns reservations whose reminder time has passed, that
// have not been reminded yet, and that are still upcoming.
func (s *Store) DueReminders(ctx context.Context, now time.Time) ([]*reservation.Reservation, error) {
	query := `SELECT ` + selectReservationColumns + `
		FROM reservations r
		WHERE r.remind_at IS NOT NULL
			AND r.remind_at <= $1
			AND r.reminded_at IS NULL
			AND r.status IN ('pending', 'confirmed')
		ORDER BY r.remind_at ASC`

	rows, err := s.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("listing due reminders: %w", err)
	}
	defer rows.Close()

	var due []*reservation.Reservation

	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reservation: %w", err)
		}

		due = append(due, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reminder rows: %w", err)
	}

	return due, nil
}

func (s *Store) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE reservations
		SET reminded_at = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := s.db.ExecContext(ctx, query, at, id); err != nil {
		return fmt.Errorf("marking reservation reminded: %w", err)
	}

	return nil
}
