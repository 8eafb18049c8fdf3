package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yeonhwa/bloomdesk/internal/stats"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// columns whitelists the groupable sales columns. Never built from request
// input.
var columns = map[stats.Dimension]string{
	stats.DimensionCategory:      "category",
	stats.DimensionPaymentMethod: "payment_method",
	stats.DimensionChannel:       "channel",
}

func (s *Store) SalesBreakdown(ctx context.Context, start, end time.Time, dim stats.Dimension) ([]stats.Bucket, error) {
	column, ok := columns[dim]
	if !ok {
		return nil, fmt.Errorf("unknown sales dimension %q", dim)
	}

	query := fmt.Sprintf(`
		SELECT %s, COALESCE(SUM(amount), 0), COUNT(*)
		FROM sales
		WHERE date >= $1 AND date <= $2
		GROUP BY %s
		ORDER BY 2 DESC
	`, column, column)

	return s.queryBuckets(ctx, query, start, end)
}

func (s *Store) ExpenseBreakdown(ctx context.Context, start, end time.Time) ([]stats.Bucket, error) {
	query := `
		SELECT category, COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM expenses
		WHERE date >= $1 AND date <= $2
		GROUP BY category
		ORDER BY 2 DESC
	`

	return s.queryBuckets(ctx, query, start, end)
}

func (s *Store) queryBuckets(ctx context.Context, query string, start, end time.Time) ([]stats.Bucket, error) {
	rows, err := s.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying breakdown: %w", err)
	}
	defer rows.Close()

	var buckets []stats.Bucket

	for rows.Next() {
		var b stats.Bucket

		if err := rows.Scan(&b.Key, &b.Amount, &b.Count); err != nil {
			return nil, fmt.Errorf("scanning bucket: %w", err)
		}

		buckets = append(buckets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bucket rows: %w", err)
	}

	return buckets, nil
}

func (s *Store) PeriodCustomerPhones(ctx context.Context, start, end time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT customer_phone
		FROM sales
		WHERE date >= $1 AND date <= $2
			AND customer_phone IS NOT NULL AND customer_phone <> ''
	`

	rows, err := s.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying period phones: %w", err)
	}
	defer rows.Close()

	var phones []string

	for rows.Next() {
		var p string

		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning phone: %w", err)
		}

		phones = append(phones, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phone rows: %w", err)
	}

	return phones, nil
}

// PhonesWithSalesBefore answers the returning-customer question for a whole
// month of phones in one round trip.
func (s *Store) PhonesWithSalesBefore(ctx context.Context, phones []string, before time.Time) (map[string]bool, error) {
	if len(phones) == 0 {
		return map[string]bool{}, nil
	}

	query := `
		SELECT DISTINCT customer_phone
		FROM sales
		WHERE customer_phone = ANY($1) AND date < $2
	`

	rows, err := s.db.QueryContext(ctx, query, phones, before)
	if err != nil {
		return nil, fmt.Errorf("querying prior sales: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool, len(phones))

	for rows.Next() {
		var p string

		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning phone: %w", err)
		}

		seen[p] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prior sale rows: %w", err)
	}

	return seen, nil
}
