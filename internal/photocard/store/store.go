package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yeonhwa/bloomdesk/internal/photocard"
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

const selectCardColumns = `
	pc.id, pc.title, pc.description, pc.tags, pc.sale_id, pc.created_at, pc.updated_at
`

func scanCard(s scanner) (*photocard.Card, error) {
	var c photocard.Card

	var tags []byte

	if err := s.Scan(&c.ID, &c.Title, &c.Description, &tags, &c.SaleID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tags, &c.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}

	return &c, nil
}

func (s *Store) CreateCard(ctx context.Context, c *photocard.Card) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	tags, err := json.Marshal(c.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	query := `
		INSERT INTO photo_cards (title, description, tags, sale_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query, c.Title, c.Description, tags, c.SaleID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating photo card: %w", err)
	}

	if err := insertPhotos(ctx, tx, c.ID, c.Photos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing photo card: %w", err)
	}

	return nil
}

func insertPhotos(ctx context.Context, tx *sql.Tx, cardID uuid.UUID, photos []photocard.Photo) error {
	query := `
		INSERT INTO photo_card_photos (card_id, url, original_filename, sort_order)
		VALUES ($1, $2, $3, $4)
	`

	for i, p := range photos {
		if _, err := tx.ExecContext(ctx, query, cardID, p.URL, p.OriginalFilename, i); err != nil {
			return fmt.Errorf("inserting photo: %w", err)
		}
	}

	return nil
}

func (s *Store) GetCard(ctx context.Context, id uuid.UUID) (*photocard.Card, error) {
	query := `SELECT ` + selectCardColumns + ` FROM photo_cards pc WHERE pc.id = $1`

	c, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, photocard.ErrNotFound
		}

		return nil, fmt.Errorf("getting photo card: %w", err)
	}

	photos, err := s.photosByCard(ctx, []uuid.UUID{c.ID})
	if err != nil {
		return nil, err
	}

	c.Photos = photos[c.ID]

	return c, nil
}

func (s *Store) ListCards(ctx context.Context, q photocard.Query) ([]*photocard.Card, error) {
	query := `SELECT ` + selectCardColumns + ` FROM photo_cards pc`

	var args []any

	argIdx := 1

	if q.CustomerID != nil {
		query += fmt.Sprintf(" JOIN sales s ON s.id = pc.sale_id WHERE s.customer_id = $%d", argIdx)

		args = append(args, *q.CustomerID)
		argIdx++
	} else {
		query += " WHERE TRUE"
	}

	if q.Tag != "" {
		tag, err := json.Marshal([]string{q.Tag})
		if err != nil {
			return nil, fmt.Errorf("encoding tag filter: %w", err)
		}

		query += fmt.Sprintf(" AND pc.tags @> $%d", argIdx)

		args = append(args, tag)
		argIdx++
	}

	query += " ORDER BY pc.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing photo cards: %w", err)
	}
	defer rows.Close()

	var cards []*photocard.Card

	var ids []uuid.UUID

	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning photo card: %w", err)
		}

		cards = append(cards, c)
		ids = append(ids, c.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating photo card rows: %w", err)
	}

	if len(cards) == 0 {
		return cards, nil
	}

	photos, err := s.photosByCard(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, c := range cards {
		c.Photos = photos[c.ID]
	}

	return cards, nil
}

// photosByCard loads photos for a whole page of cards in one query.
func (s *Store) photosByCard(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]photocard.Photo, error) {
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	query := `
		SELECT card_id, url, original_filename
		FROM photo_card_photos
		WHERE card_id = ANY($1::uuid[])
		ORDER BY card_id, sort_order
	`

	rows, err := s.db.QueryContext(ctx, query, strIDs)
	if err != nil {
		return nil, fmt.Errorf("listing card photos: %w", err)
	}
	defer rows.Close()

	photos := make(map[uuid.UUID][]photocard.Photo)

	for rows.Next() {
		var cardID uuid.UUID

		var p photocard.Photo

		if err := rows.Scan(&cardID, &p.URL, &p.OriginalFilename); err != nil {
			return nil, fmt.Errorf("scanning card photo: %w", err)
		}

		photos[cardID] = append(photos[cardID], p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card photo rows: %w", err)
	}

	return photos, nil
}

func (s *Store) UpdateCard(ctx context.Context, c *photocard.Card) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	tags, err := json.Marshal(c.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	query := `
		UPDATE photo_cards
		SET title = $1, description = $2, tags = $3, sale_id = $4, updated_at = NOW()
		WHERE id = $5
	`

	if _, err := tx.ExecContext(ctx, query, c.Title, c.Description, tags, c.SaleID, c.ID); err != nil {
		return fmt.Errorf("updating photo card: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM photo_card_photos WHERE card_id = $1`, c.ID); err != nil {
		return fmt.Errorf("clearing card photos: %w", err)
	}

	if err := insertPhotos(ctx, tx, c.ID, c.Photos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing photo card: %w", err)
	}

	return nil
}

func (s *Store) DeleteCard(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM photo_cards WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting photo card: %w", err)
	}

	return nil
}

// UpsertBySale replaces the card linked to a sale and its photos in one
// transaction, relying on the partial unique index on sale_id.
func (s *Store) UpsertBySale(ctx context.Context, c *photocard.Card) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	tags, err := json.Marshal(c.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	query := `
		INSERT INTO photo_cards (title, description, tags, sale_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (sale_id) WHERE sale_id IS NOT NULL DO UPDATE
			SET title = EXCLUDED.title,
				description = EXCLUDED.description,
				tags = EXCLUDED.tags,
				updated_at = NOW()
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query, c.Title, c.Description, tags, c.SaleID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting photo card: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM photo_card_photos WHERE card_id = $1`, c.ID); err != nil {
		return fmt.Errorf("clearing card photos: %w", err)
	}

	if err := insertPhotos(ctx, tx, c.ID, c.Photos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing photo card: %w", err)
	}

	return nil
}
