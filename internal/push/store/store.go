package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/push"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// UpsertSubscription inserts the endpoint or refreshes its keys and owner,
// reactivating it either way. Re-subscribing after a 410 starts clean.
func (s *Store) UpsertSubscription(ctx context.Context, sub *push.Subscription) error {
	query := `
		INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth, is_active, created_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW())
		ON CONFLICT (endpoint) DO UPDATE
			SET user_id = EXCLUDED.user_id,
				p256dh = EXCLUDED.p256dh,
				auth = EXCLUDED.auth,
				is_active = TRUE
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		sub.UserID,
		sub.Endpoint,
		sub.P256dh,
		sub.Auth,
	).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting subscription: %w", err)
	}

	sub.IsActive = true

	return nil
}

func (s *Store) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint); err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}

	return nil
}

// ListActive returns active subscriptions for one user, or for everyone when
// userID is empty.
func (s *Store) ListActive(ctx context.Context, userID string) ([]*push.Subscription, error) {
	query := `
		SELECT id, user_id, endpoint, p256dh, auth, is_active, created_at
		FROM push_subscriptions
		WHERE is_active = TRUE
	`

	var args []any

	if userID != "" {
		query += " AND user_id = $1"

		args = append(args, userID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*push.Subscription

	for rows.Next() {
		var sub push.Subscription

		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.IsActive, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}

		subs = append(subs, &sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subscription rows: %w", err)
	}

	return subs, nil
}

func (s *Store) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE push_subscriptions SET is_active = FALSE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deactivating subscription: %w", err)
	}

	return nil
}
