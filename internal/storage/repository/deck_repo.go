package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/inkwellhq/lorcana-companion/internal/deck"
)

// DeckRecord is the stored shape of a deck. Card slots carry only the card
// identity; callers resolve them against the catalog.
type DeckRecord struct {
	ID          string
	Name        string
	Description string
	Cards       []DeckCardRecord
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DeckCardRecord is one stored deck slot.
type DeckCardRecord struct {
	CardName string
	Count    int
}

// DeckRepository handles database operations for decks.
type DeckRepository interface {
	// Save inserts or replaces a deck and its card list.
	Save(ctx context.Context, userID string, d *deck.Deck) error

	// Get retrieves a deck by id. Returns sql.ErrNoRows when absent.
	Get(ctx context.Context, userID, deckID string) (*DeckRecord, error)

	// List retrieves all decks of a user, newest update first.
	List(ctx context.Context, userID string) ([]*DeckRecord, error)

	// Delete removes a deck and its cards.
	Delete(ctx context.Context, userID, deckID string) error
}

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a deck repository.
func NewDeckRepository(db *sql.DB) DeckRepository {
	return &deckRepository{db: db}
}

// Save inserts or replaces a deck and its card list in one transaction.
func (r *deckRepository) Save(ctx context.Context, userID string, d *deck.Deck) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO decks (id, user_id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			updated_at = excluded.updated_at
	`, d.ID, userID, d.Name, d.Description, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save deck: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = ?`, d.ID); err != nil {
		return fmt.Errorf("failed to clear deck cards: %w", err)
	}
	for i, c := range d.Cards {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO deck_cards (deck_id, card_name, count, position)
			VALUES (?, ?, ?, ?)
		`, d.ID, c.Print.FullName, c.Count, i)
		if err != nil {
			return fmt.Errorf("failed to save deck card: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deck: %w", err)
	}
	return nil
}

// Get retrieves a deck by id.
func (r *deckRepository) Get(ctx context.Context, userID, deckID string) (*DeckRecord, error) {
	record := &DeckRecord{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM decks WHERE id = ? AND user_id = ?
	`, deckID, userID).Scan(&record.ID, &record.Name, &record.Description, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	if err := r.loadCards(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// List retrieves all decks of a user.
func (r *deckRepository) List(ctx context.Context, userID string) ([]*DeckRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM decks WHERE user_id = ?
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var records []*DeckRecord
	for rows.Next() {
		record := &DeckRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &record.Description, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate decks: %w", err)
	}

	for _, record := range records {
		if err := r.loadCards(ctx, record); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// Delete removes a deck; deck_cards rows cascade.
func (r *deckRepository) Delete(ctx context.Context, userID, deckID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ? AND user_id = ?`, deckID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deck deletion: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *deckRepository) loadCards(ctx context.Context, record *DeckRecord) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT card_name, count FROM deck_cards
		WHERE deck_id = ?
		ORDER BY position
	`, record.ID)
	if err != nil {
		return fmt.Errorf("failed to load deck cards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c DeckCardRecord
		if err := rows.Scan(&c.CardName, &c.Count); err != nil {
			return fmt.Errorf("failed to scan deck card: %w", err)
		}
		record.Cards = append(record.Cards, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate deck cards: %w", err)
	}
	return nil
}
