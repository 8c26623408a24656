// Package deck implements deck construction, validation, and the plain-text
// deck list format.
package deck

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards"
)

const (
	// DeckSize is the exact number of cards a legal deck contains.
	DeckSize = 60
	// MaxCopies is the per-card copy limit.
	MaxCopies = 4
	// MaxColors is the maximum number of base ink colors in a deck.
	MaxColors = 2
	// InkwellMin and InkwellMax bound the advisory range of
	// inkwell-eligible copies.
	InkwellMin = 12
	InkwellMax = 20
)

// Card is one deck slot: a catalog print and how many copies of it the
// deck runs.
type Card struct {
	Print *cards.CardPrint `json:"print"`
	Count int              `json:"count"`
}

// Deck is a named, ordered list of cards. Slots keep insertion order.
type Deck struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Cards       []Card    `json:"cards"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New creates an empty deck with a fresh id.
func New(name string) *Deck {
	now := time.Now().UTC()
	return &Deck{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TotalCount returns the summed copy count over every slot.
func (d *Deck) TotalCount() int {
	total := 0
	for _, c := range d.Cards {
		total += c.Count
	}
	return total
}

// CountOf returns the copies of a card identity in the deck.
func (d *Deck) CountOf(fullName string) int {
	for _, c := range d.Cards {
		if c.Print.FullName == fullName {
			return c.Count
		}
	}
	return 0
}

// AddCard adds qty copies of a print. Existing slots for the same card
// identity are merged. The per-card and deck-size caps are enforced at
// mutation time so a deck under construction never exceeds them.
func (d *Deck) AddCard(print *cards.CardPrint, qty int) error {
	if print == nil {
		return fmt.Errorf("nil card print")
	}
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", qty)
	}
	if current := d.CountOf(print.FullName); current+qty > MaxCopies {
		return fmt.Errorf("%q: %d copies would exceed the limit of %d", print.FullName, current+qty, MaxCopies)
	}
	if d.TotalCount()+qty > DeckSize {
		return fmt.Errorf("deck would exceed %d cards", DeckSize)
	}

	for i := range d.Cards {
		if d.Cards[i].Print.FullName == print.FullName {
			d.Cards[i].Count += qty
			d.touch()
			return nil
		}
	}
	d.Cards = append(d.Cards, Card{Print: print, Count: qty})
	d.touch()
	return nil
}

// RemoveCard removes qty copies of a card identity. A slot that reaches
// zero copies is dropped from the deck.
func (d *Deck) RemoveCard(fullName string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", qty)
	}
	for i := range d.Cards {
		if d.Cards[i].Print.FullName != fullName {
			continue
		}
		d.Cards[i].Count -= qty
		if d.Cards[i].Count <= 0 {
			d.Cards = append(d.Cards[:i], d.Cards[i+1:]...)
		}
		d.touch()
		return nil
	}
	return fmt.Errorf("%q is not in the deck", fullName)
}

// Colors returns the set of base ink colors used by the deck's cards, in
// first-encounter order. Dual-ink cards contribute both components; cards
// without an ink contribute nothing.
func (d *Deck) Colors() []string {
	seen := make(map[string]bool)
	var colors []string
	for _, c := range d.Cards {
		for _, color := range c.Print.BaseColors() {
			if !seen[color] {
				seen[color] = true
				colors = append(colors, color)
			}
		}
	}
	return colors
}

// InkwellCount returns the number of copies of inkwell-eligible cards.
func (d *Deck) InkwellCount() int {
	count := 0
	for _, c := range d.Cards {
		if c.Print.Inkwell {
			count += c.Count
		}
	}
	return count
}

func (d *Deck) touch() {
	d.UpdatedAt = time.Now().UTC()
}
