package deck

import (
	"fmt"
	"strings"
)

// Result is the outcome of validating a deck. Errors make the deck
// illegal; warnings are advisory.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Validate checks a deck against the construction rules. It is a pure
// function of the deck's contents.
//
// Ink consistency needs no separate check: the color set is computed from
// the deck's own cards with dual inks decomposed, so capping that set at
// two colors already rejects any card whose inks fall outside it.
func Validate(d *Deck) Result {
	var result Result

	total := d.TotalCount()
	switch {
	case total < DeckSize:
		result.Errors = append(result.Errors,
			fmt.Sprintf("deck has %d cards, needs %d more to reach %d", total, DeckSize-total, DeckSize))
	case total > DeckSize:
		result.Errors = append(result.Errors,
			fmt.Sprintf("deck has %d cards, %d over the limit of %d", total, total-DeckSize, DeckSize))
	}

	for _, c := range d.Cards {
		if c.Count > MaxCopies {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%q: %d copies exceeds the limit of %d", c.Print.FullName, c.Count, MaxCopies))
		}
		if c.Count < 1 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%q: copy count must be at least 1", c.Print.FullName))
		}
	}

	if colors := d.Colors(); len(colors) > MaxColors {
		result.Errors = append(result.Errors,
			fmt.Sprintf("deck uses %d ink colors (%s), limit is %d", len(colors), strings.Join(colors, ", "), MaxColors))
	}

	if inkwell := d.InkwellCount(); inkwell < InkwellMin || inkwell > InkwellMax {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d inkwell-eligible cards; between %d and %d is recommended", inkwell, InkwellMin, InkwellMax))
	}

	result.Valid = len(result.Errors) == 0
	return result
}
