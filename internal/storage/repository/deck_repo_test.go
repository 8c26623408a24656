package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/inkwellhq/lorcana-companion/internal/deck"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards"
)

// setupDeckTestDB creates an in-memory database with the deck tables.
func setupDeckTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		PRAGMA foreign_keys = ON;
		CREATE TABLE decks (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE deck_cards (
			deck_id   TEXT NOT NULL REFERENCES decks(id) ON DELETE CASCADE,
			card_name TEXT NOT NULL,
			count     INTEGER NOT NULL,
			position  INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (deck_id, card_name)
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return db
}

func testDeck(t *testing.T) *deck.Deck {
	t.Helper()
	d := deck.New("Test Deck")
	d.Description = "for tests"
	prints := []*cards.CardPrint{
		{Name: "Elsa", Version: "Snow Queen", FullName: "Elsa - Snow Queen", Ink: "Amethyst", Cost: 8},
		{Name: "Be Prepared", FullName: "Be Prepared", Ink: "Steel", Cost: 7},
	}
	if err := d.AddCard(prints[0], 4); err != nil {
		t.Fatalf("failed to add card: %v", err)
	}
	if err := d.AddCard(prints[1], 2); err != nil {
		t.Fatalf("failed to add card: %v", err)
	}
	return d
}

func TestDeckRepository_SaveAndGet(t *testing.T) {
	repo := NewDeckRepository(setupDeckTestDB(t))
	ctx := context.Background()
	d := testDeck(t)

	if err := repo.Save(ctx, "user-1", d); err != nil {
		t.Fatalf("failed to save deck: %v", err)
	}

	record, err := repo.Get(ctx, "user-1", d.ID)
	if err != nil {
		t.Fatalf("failed to get deck: %v", err)
	}
	if record.Name != "Test Deck" || record.Description != "for tests" {
		t.Errorf("record = %q / %q", record.Name, record.Description)
	}
	if len(record.Cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(record.Cards))
	}
	// Slot order survives the round trip.
	if record.Cards[0].CardName != "Elsa - Snow Queen" || record.Cards[0].Count != 4 {
		t.Errorf("first slot = %+v", record.Cards[0])
	}
}

func TestDeckRepository_SaveReplacesCards(t *testing.T) {
	repo := NewDeckRepository(setupDeckTestDB(t))
	ctx := context.Background()
	d := testDeck(t)
	repo.Save(ctx, "user-1", d)

	if err := d.RemoveCard("Be Prepared", 2); err != nil {
		t.Fatalf("failed to remove card: %v", err)
	}
	if err := repo.Save(ctx, "user-1", d); err != nil {
		t.Fatalf("failed to re-save deck: %v", err)
	}

	record, err := repo.Get(ctx, "user-1", d.ID)
	if err != nil {
		t.Fatalf("failed to get deck: %v", err)
	}
	if len(record.Cards) != 1 {
		t.Errorf("cards = %d, want 1 after removal", len(record.Cards))
	}
}

func TestDeckRepository_GetWrongUser(t *testing.T) {
	repo := NewDeckRepository(setupDeckTestDB(t))
	ctx := context.Background()
	d := testDeck(t)
	repo.Save(ctx, "user-1", d)

	if _, err := repo.Get(ctx, "user-2", d.ID); err != sql.ErrNoRows {
		t.Errorf("Get() error = %v, want sql.ErrNoRows", err)
	}
}

func TestDeckRepository_List(t *testing.T) {
	repo := NewDeckRepository(setupDeckTestDB(t))
	ctx := context.Background()

	first := testDeck(t)
	second := deck.New("Empty Deck")
	repo.Save(ctx, "user-1", first)
	repo.Save(ctx, "user-1", second)

	records, err := repo.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to list decks: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("decks = %d, want 2", len(records))
	}
}

func TestDeckRepository_Delete(t *testing.T) {
	repo := NewDeckRepository(setupDeckTestDB(t))
	ctx := context.Background()
	d := testDeck(t)
	repo.Save(ctx, "user-1", d)

	if err := repo.Delete(ctx, "user-1", d.ID); err != nil {
		t.Fatalf("failed to delete deck: %v", err)
	}
	if _, err := repo.Get(ctx, "user-1", d.ID); err != sql.ErrNoRows {
		t.Errorf("Get() after delete error = %v, want sql.ErrNoRows", err)
	}
	if err := repo.Delete(ctx, "user-1", d.ID); err != sql.ErrNoRows {
		t.Errorf("second Delete() error = %v, want sql.ErrNoRows", err)
	}
}
