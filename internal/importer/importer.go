// Package importer parses delimited collection exports and matches their
// rows against the card catalog.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards/consolidate"
)

// Catalog is the card lookup the importer matches rows against.
type Catalog interface {
	ByFullName(fullName string) (*consolidate.ConsolidatedCard, bool)
}

// ImportedCard is one successfully matched row: the catalog print it
// resolved to and the quantities the row carried.
type ImportedCard struct {
	Print     *cards.CardPrint `json:"print"`
	FullName  string           `json:"full_name"`
	Normal    int              `json:"normal_quantity"`
	Foil      int              `json:"foil_quantity"`
	Enchanted bool             `json:"is_enchanted"`
	Special   bool             `json:"is_special"`
}

// Result is the outcome of an import: matched cards plus the names of
// rows that had quantities but no catalog match.
type Result struct {
	Cards   []ImportedCard `json:"cards"`
	Skipped []string       `json:"skipped,omitempty"`
	Rows    int            `json:"rows"`
}

// column indexes into a parsed row, -1 when the header lacks the column.
type columns struct {
	name       int
	normal     int
	foil       int
	set        int
	cardNumber int
	color      int
	rarity     int
	price      int
	foilPrice  int
}

// headerAliases maps normalized header names to column slots. Exports from
// different tools disagree on exact header spelling, so matching is loose.
var headerAliases = map[string]func(*columns, int){
	"name":       func(c *columns, i int) { c.name = i },
	"cardname":   func(c *columns, i int) { c.name = i },
	"normal":     func(c *columns, i int) { c.normal = i },
	"regular":    func(c *columns, i int) { c.normal = i },
	"foil":       func(c *columns, i int) { c.foil = i },
	"set":        func(c *columns, i int) { c.set = i },
	"setname":    func(c *columns, i int) { c.set = i },
	"cardnumber": func(c *columns, i int) { c.cardNumber = i },
	"number":     func(c *columns, i int) { c.cardNumber = i },
	"color":      func(c *columns, i int) { c.color = i },
	"ink":        func(c *columns, i int) { c.color = i },
	"rarity":     func(c *columns, i int) { c.rarity = i },
	"price":      func(c *columns, i int) { c.price = i },
	"foilprice":  func(c *columns, i int) { c.foilPrice = i },
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}

func mapColumns(header []string) (columns, error) {
	cols := columns{name: -1, normal: -1, foil: -1, set: -1, cardNumber: -1, color: -1, rarity: -1, price: -1, foilPrice: -1}
	for i, h := range header {
		if set, ok := headerAliases[normalizeHeader(h)]; ok {
			set(&cols, i)
		}
	}
	var missing []string
	if cols.name == -1 {
		missing = append(missing, "Name")
	}
	if cols.normal == -1 {
		missing = append(missing, "Normal")
	}
	if cols.foil == -1 {
		missing = append(missing, "Foil")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// detectDelimiter picks tab or comma by which occurs more in the header
// line. Comma wins ties.
func detectDelimiter(data string) rune {
	head := data
	if i := strings.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	if strings.Count(head, "\t") > strings.Count(head, ",") {
		return '\t'
	}
	return ','
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseQty(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unparseable quantity %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative quantity %q", s)
	}
	return n, nil
}

// Import parses a delimited collection export and matches every row
// carrying quantities against the catalog. Structural problems fail the
// whole import; rows whose card name has no catalog match are skipped
// and reported in the result.
func Import(r io.Reader, catalog Catalog) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading import data: %w", err)
	}
	data := string(raw)

	reader := csv.NewReader(strings.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading import header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading import row: %w", err)
		}
		result.Rows++

		normal, err := parseQty(field(record, cols.normal))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", result.Rows, err)
		}
		foil, err := parseQty(field(record, cols.foil))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", result.Rows, err)
		}
		if normal == 0 && foil == 0 {
			continue
		}

		name := field(record, cols.name)
		if name == "" {
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: empty name", result.Rows))
			continue
		}

		card, ok := match(catalog, name, field(record, cols.rarity))
		if !ok {
			result.Skipped = append(result.Skipped, name)
			continue
		}
		card.Normal = normal
		card.Foil = foil
		result.Cards = append(result.Cards, card)
	}

	if result.Rows == 0 {
		return nil, fmt.Errorf("import contains no data rows")
	}
	return result, nil
}

// match resolves a row against the catalog by exact full name. When the
// row's rarity names the Enchanted or Special variant, the matched print
// is that variant's rather than the base card's.
func match(catalog Catalog, name, rarity string) (ImportedCard, bool) {
	cc, ok := catalog.ByFullName(name)
	if !ok {
		return ImportedCard{}, false
	}

	card := ImportedCard{FullName: cc.FullName, Print: cc.BaseCard}
	switch cards.Rarity(rarity) {
	case cards.RarityEnchanted:
		if !cc.HasEnchanted() {
			return ImportedCard{}, false
		}
		card.Print = cc.Enchanted
		card.Enchanted = true
	case cards.RaritySpecial:
		if !cc.HasSpecial() {
			return ImportedCard{}, false
		}
		card.Print = cc.Special[0]
		card.Special = true
	}
	return card, true
}
