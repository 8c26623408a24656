package deck

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards"
)

// ResolveFunc maps a card's full name to its catalog print, nil when the
// name is unknown.
type ResolveFunc func(fullName string) *cards.CardPrint

// cardLineRe matches "<qty>x <name>" with an optional space before the x.
var cardLineRe = regexp.MustCompile(`^(\d+)\s*[xX]\s+(.+)$`)

// Import parses a deck from the plain-text list format, resolving each
// card line against the catalog. Lines that cannot be parsed or resolved
// become warnings rather than failing the whole import; a deck with a
// name and zero resolvable cards is still returned.
func Import(r io.Reader, resolve ResolveFunc) (*Deck, []string, error) {
	d := New("")
	var warnings []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if name, ok := strings.CutPrefix(line, "Deck:"); ok {
			d.Name = strings.TrimSpace(name)
			continue
		}
		if desc, ok := strings.CutPrefix(line, "Description:"); ok {
			d.Description = strings.TrimSpace(desc)
			continue
		}

		m := cardLineRe.FindStringSubmatch(line)
		if m == nil {
			warnings = append(warnings, fmt.Sprintf("line %d: unrecognized line %q", lineNo, line))
			continue
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil || qty <= 0 {
			warnings = append(warnings, fmt.Sprintf("line %d: bad quantity %q", lineNo, m[1]))
			continue
		}
		fullName := strings.TrimSpace(m[2])
		print := resolve(fullName)
		if print == nil {
			warnings = append(warnings, fmt.Sprintf("line %d: unknown card %q", lineNo, fullName))
			continue
		}
		// Imported lists bypass the construction caps so an oversized
		// list round-trips and the validator can report it.
		d.addUnchecked(print, qty)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading deck list: %w", err)
	}
	if d.Name == "" {
		d.Name = "Imported Deck"
	}
	return d, warnings, nil
}

func (d *Deck) addUnchecked(print *cards.CardPrint, qty int) {
	for i := range d.Cards {
		if d.Cards[i].Print.FullName == print.FullName {
			d.Cards[i].Count += qty
			return
		}
	}
	d.Cards = append(d.Cards, Card{Print: print, Count: qty})
}
