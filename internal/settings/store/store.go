package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yeonhwa/bloomdesk/internal/settings"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// tables whitelists the backing table per kind. Table names are never built
// from request input.
var tables = map[settings.Kind]string{
	settings.KindSaleCategories:        "sale_categories",
	settings.KindPaymentMethods:        "payment_methods",
	settings.KindExpenseCategories:     "expense_categories",
	settings.KindExpensePaymentMethods: "expense_payment_methods",
	settings.KindCardCompanies:         "card_company_settings",
	settings.KindProductCategories:     "product_categories",
}

func tableFor(kind settings.Kind) (string, error) {
	table, ok := tables[kind]
	if !ok {
		return "", settings.ErrUnknownKind
	}

	return table, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (s *Store) ListOptions(ctx context.Context, kind settings.Kind) ([]*settings.Option, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, label, value, color, sort_order
		FROM %s
		ORDER BY sort_order, label
	`, table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}
	defer rows.Close()

	var options []*settings.Option

	for rows.Next() {
		var o settings.Option

		if err := rows.Scan(&o.ID, &o.Label, &o.Value, &o.Color, &o.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning %s option: %w", kind, err)
		}

		options = append(options, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", kind, err)
	}

	return options, nil
}

func (s *Store) CreateOption(ctx context.Context, kind settings.Kind, o *settings.Option) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (label, value, color, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, table)

	err = s.db.QueryRowContext(ctx, query, o.Label, o.Value, o.Color, o.SortOrder).Scan(&o.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return settings.ErrValueTaken
		}

		return fmt.Errorf("creating %s option: %w", kind, err)
	}

	return nil
}

func (s *Store) UpdateOption(ctx context.Context, kind settings.Kind, o *settings.Option) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET label = $1, value = $2, color = $3, sort_order = $4
		WHERE id = $5
	`, table)

	res, err := s.db.ExecContext(ctx, query, o.Label, o.Value, o.Color, o.SortOrder, o.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return settings.ErrValueTaken
		}

		return fmt.Errorf("updating %s option: %w", kind, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s update: %w", kind, err)
	}

	if affected == 0 {
		return settings.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteOption(ctx context.Context, kind settings.Kind, id uuid.UUID) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting %s option: %w", kind, err)
	}

	return nil
}
