package deck

import "time"

// Summary is a read-only projection of a deck's shape, recomputed on
// demand rather than stored.
type Summary struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	TotalCards   int            `json:"total_cards"`
	UniqueCards  int            `json:"unique_cards"`
	Colors       map[string]int `json:"colors"`
	InkwellCount int            `json:"inkwell_count"`
	CostCurve    map[int]int    `json:"cost_curve"`
	Valid        bool           `json:"valid"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Summarize computes a deck's summary. Dual-ink cards increment the copy
// count of both their colors, so the color distribution can sum to more
// than the deck's total.
func Summarize(d *Deck) Summary {
	s := Summary{
		ID:           d.ID,
		Name:         d.Name,
		TotalCards:   d.TotalCount(),
		UniqueCards:  len(d.Cards),
		Colors:       make(map[string]int),
		InkwellCount: d.InkwellCount(),
		CostCurve:    make(map[int]int),
		Valid:        Validate(d).Valid,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	for _, c := range d.Cards {
		for _, color := range c.Print.BaseColors() {
			s.Colors[color] += c.Count
		}
		s.CostCurve[c.Print.Cost] += c.Count
	}
	return s
}
