package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yeonhwa/bloomdesk/internal/customer"
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

const selectCustomerColumns = `
	c.id, c.name, c.phone, c.grade, c.gender, c.note, c.created_at, c.updated_at
`

func scanCustomer(s scanner) (*customer.Customer, error) {
	var c customer.Customer

	var gradeStr string

	var gender sql.NullString

	if err := s.Scan(
		&c.ID, &c.Name, &c.Phone, &gradeStr, &gender, &c.Note,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Grade = customer.Grade(gradeStr)

	if gender.Valid {
		c.Gender = &gender.String
	}

	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (name, phone, grade, gender, note, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Name,
		c.Phone,
		c.Grade,
		c.Gender,
		c.Note,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return customer.ErrPhoneTaken
		}

		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

// UpsertByPhone inserts the customer or, when the phone already exists,
// returns the existing row. The no-op DO UPDATE makes RETURNING yield the
// surviving row in both cases, so concurrent identical submissions converge
// on one customer.
func (s *Store) UpsertByPhone(ctx context.Context, name, phone string) (*customer.Customer, error) {
	query := `
		INSERT INTO customers (name, phone, grade, created_at)
		VALUES ($1, $2, 'new', NOW())
		ON CONFLICT (phone) DO UPDATE SET phone = EXCLUDED.phone
		RETURNING id, name, phone, grade, gender, note, created_at, updated_at
	`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, name, phone))
	if err != nil {
		return nil, fmt.Errorf("upserting customer by phone: %w", err)
	}

	return c, nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + ` FROM customers c WHERE c.id = $1`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context, filter customer.ListFilter) ([]*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + ` FROM customers c WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Grade != nil {
		query += fmt.Sprintf(" AND c.grade = $%d", argIdx)

		args = append(args, *filter.Grade)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (c.name ILIKE $%d OR c.phone ILIKE $%d)", argIdx, argIdx)

		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	query += " ORDER BY c.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, phone = $2, grade = $3, gender = $4, note = $5, updated_at = NOW()
		WHERE id = $6
	`

	_, err := s.db.ExecContext(ctx, query,
		c.Name,
		c.Phone,
		c.Grade,
		c.Gender,
		c.Note,
		c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return customer.ErrPhoneTaken
		}

		return fmt.Errorf("updating customer: %w", err)
	}

	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	return nil
}

// PurchaseStats aggregates sales for all given customers in a single grouped
// query. Customers with no sales are simply absent from the result.
func (s *Store) PurchaseStats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]customer.PurchaseStats, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]customer.PurchaseStats{}, nil
	}

	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}

	query := `
		SELECT customer_id, COUNT(*), COALESCE(SUM(amount), 0), MIN(date), MAX(date)
		FROM sales
		WHERE customer_id = ANY($1::uuid[])
		GROUP BY customer_id
	`

	rows, err := s.db.QueryContext(ctx, query, idStrs)
	if err != nil {
		return nil, fmt.Errorf("aggregating purchase stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[uuid.UUID]customer.PurchaseStats, len(ids))

	for rows.Next() {
		var id uuid.UUID

		var st customer.PurchaseStats

		if err := rows.Scan(&id, &st.Count, &st.TotalAmount, &st.FirstPurchase, &st.LastPurchase); err != nil {
			return nil, fmt.Errorf("scanning purchase stats: %w", err)
		}

		stats[id] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase stats rows: %w", err)
	}

	return stats, nil
}
