package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

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

const selectSaleColumns = `
	s.id, s.date, s.amount, s.category, s.payment_method, s.channel,
	s.card_company, s.card_fee, s.expected_deposit_amount, s.deposit_status,
	s.customer_id, s.customer_name, s.customer_phone, s.reservation_id,
	s.note, s.photos, s.created_at, s.updated_at
`

func scanSale(s scanner) (*sale.Sale, error) {
	var sl sale.Sale

	var channelStr, depositStr string

	var photosRaw []byte

	if err := s.Scan(
		&sl.ID, &sl.Date, &sl.Amount, &sl.Category, &sl.PaymentMethod, &channelStr,
		&sl.CardCompany, &sl.CardFee, &sl.ExpectedDepositAmount, &depositStr,
		&sl.CustomerID, &sl.CustomerName, &sl.CustomerPhone, &sl.ReservationID,
		&sl.Note, &photosRaw, &sl.CreatedAt, &sl.UpdatedAt,
	); err != nil {
		return nil, err
	}

	sl.Channel = sale.Channel(channelStr)
	sl.DepositStatus = sale.DepositStatus(depositStr)

	if len(photosRaw) > 0 {
		if err := json.Unmarshal(photosRaw, &sl.Photos); err != nil {
			return nil, fmt.Errorf("decoding photos: %w", err)
		}
	}

	return &sl, nil
}

func photosJSON(photos []string) ([]byte, error) {
	if photos == nil {
		photos = []string{}
	}

	return json.Marshal(photos)
}

func (s *Store) CreateSale(ctx context.Context, sl *sale.Sale) error {
	photos, err := photosJSON(sl.Photos)
	if err != nil {
		return fmt.Errorf("encoding photos: %w", err)
	}

	query := `
		INSERT INTO sales (
			date, amount, category, payment_method, channel,
			card_company, card_fee, expected_deposit_amount, deposit_status,
			customer_id, customer_name, customer_phone, reservation_id,
			note, photos, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
		RETURNING id, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
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
		return fmt.Errorf("creating sale: %w", err)
	}

	return nil
}

func (s *Store) GetSale(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales s WHERE s.id = $1`

	sl, err := scanSale(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sale.ErrNotFound
		}

		return nil, fmt.Errorf("getting sale: %w", err)
	}

	return sl, nil
}

func (s *Store) ListSales(ctx context.Context, q sale.Query) ([]*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales s WHERE s.date >= $1 AND s.date <= $2`

	args := []any{q.Start, q.End}

	argIdx := 3

	if q.Category != nil {
		query += fmt.Sprintf(" AND s.category = $%d", argIdx)

		args = append(args, *q.Category)
		argIdx++
	}

	if q.PaymentMethod != nil {
		query += fmt.Sprintf(" AND s.payment_method = $%d", argIdx)

		args = append(args, *q.PaymentMethod)
		argIdx++
	}

	if q.CustomerID != nil {
		query += fmt.Sprintf(" AND s.customer_id = $%d", argIdx)

		args = append(args, *q.CustomerID)
		argIdx++
	}

	if q.CardOnly {
		query += fmt.Sprintf(" AND s.payment_method = $%d", argIdx)

		args = append(args, sale.PaymentMethodCard)
		argIdx++
	}

	if q.DepositStatus != nil {
		query += fmt.Sprintf(" AND s.deposit_status = $%d", argIdx)

		args = append(args, *q.DepositStatus)
		argIdx++
	}

	query += " ORDER BY s.date DESC, s.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	var sales []*sale.Sale

	for rows.Next() {
		sl, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}

		sales = append(sales, sl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale rows: %w", err)
	}

	return sales, nil
}

func (s *Store) UpdateSale(ctx context.Context, sl *sale.Sale) error {
	photos, err := photosJSON(sl.Photos)
	if err != nil {
		return fmt.Errorf("encoding photos: %w", err)
	}

	query := `
		UPDATE sales
		SET date = $1, amount = $2, category = $3, payment_method = $4, channel = $5,
			card_company = $6, card_fee = $7, expected_deposit_amount = $8,
			deposit_status = $9, note = $10, photos = $11, updated_at = NOW()
		WHERE id = $12
	`

	_, err = s.db.ExecContext(ctx, query,
		sl.Date,
		sl.Amount,
		sl.Category,
		sl.PaymentMethod,
		sl.Channel,
		sl.CardCompany,
		sl.CardFee,
		sl.ExpectedDepositAmount,
		sl.DepositStatus,
		sl.Note,
		photos,
		sl.ID,
	)
	if err != nil {
		return fmt.Errorf("updating sale: %w", err)
	}

	return nil
}

func (s *Store) DeleteSale(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting sale: %w", err)
	}

	return nil
}

func (s *Store) UpdateDepositStatus(ctx context.Context, id uuid.UUID, status sale.DepositStatus) error {
	query := `
		UPDATE sales
		SET deposit_status = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating deposit status: %w", err)
	}

	return nil
}

// DepositSummary totals card-sale settlements in the range with one grouped
// query. The expected deposit amount falls back to the sale amount when no
// card fee was recorded.
func (s *Store) DepositSummary(ctx context.Context, start, end time.Time) (sale.DepositSummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE deposit_status = 'pending'),
			COALESCE(SUM(COALESCE(expected_deposit_amount, amount)) FILTER (WHERE deposit_status = 'pending'), 0),
			COUNT(*) FILTER (WHERE deposit_status = 'completed'),
			COALESCE(SUM(COALESCE(expected_deposit_amount, amount)) FILTER (WHERE deposit_status = 'completed'), 0)
		FROM sales
		WHERE payment_method = $1 AND date >= $2 AND date <= $3
	`

	var summary sale.DepositSummary

	err := s.db.QueryRowContext(ctx, query, sale.PaymentMethodCard, start, end).Scan(
		&summary.PendingCount,
		&summary.PendingAmount,
		&summary.CompletedCount,
		&summary.CompletedAmount,
	)
	if err != nil {
		return sale.DepositSummary{}, fmt.Errorf("summarizing deposits: %w", err)
	}

	return summary, nil
}
