// Package repository implements database access for collection rows and decks.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/inkwellhq/lorcana-companion/internal/collection"
)

// collectionRepository persists ledger rows in the collection_entries table.
// It implements collection.Store.
type collectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository creates a collection store backed by SQLite.
func NewCollectionRepository(db *sql.DB) collection.Store {
	return &collectionRepository{db: db}
}

// Upsert inserts or replaces the row for one card identity.
func (r *collectionRepository) Upsert(ctx context.Context, userID, cardName string, q collection.Quantities) error {
	query := `
		INSERT INTO collection_entries
			(user_id, card_name, regular_count, foil_count, enchanted_count, special_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, card_name) DO UPDATE SET
			regular_count = excluded.regular_count,
			foil_count = excluded.foil_count,
			enchanted_count = excluded.enchanted_count,
			special_count = excluded.special_count,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, userID, cardName,
		q.Regular, q.Foil, q.Enchanted, q.Special, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert collection entry: %w", err)
	}
	return nil
}

// Delete removes the row for one card identity.
func (r *collectionRepository) Delete(ctx context.Context, userID, cardName string) error {
	query := `DELETE FROM collection_entries WHERE user_id = ? AND card_name = ?`

	if _, err := r.db.ExecContext(ctx, query, userID, cardName); err != nil {
		return fmt.Errorf("failed to delete collection entry: %w", err)
	}
	return nil
}

// DeleteAll removes every row of a user.
func (r *collectionRepository) DeleteAll(ctx context.Context, userID string) error {
	query := `DELETE FROM collection_entries WHERE user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}

// LoadAll retrieves every row of a user as cardName -> quantities.
func (r *collectionRepository) LoadAll(ctx context.Context, userID string) (map[string]collection.Quantities, error) {
	query := `
		SELECT card_name, regular_count, foil_count, enchanted_count, special_count
		FROM collection_entries
		WHERE user_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]collection.Quantities)
	for rows.Next() {
		var cardName string
		var q collection.Quantities
		if err := rows.Scan(&cardName, &q.Regular, &q.Foil, &q.Enchanted, &q.Special); err != nil {
			return nil, fmt.Errorf("failed to scan collection entry: %w", err)
		}
		entries[cardName] = q
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collection entries: %w", err)
	}
	return entries, nil
}
