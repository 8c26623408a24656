// Package filter evaluates declarative filter specifications against
// consolidated cards, and sorts and groups the result set.
package filter

import (
	"fmt"

	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards"
)

// TriState is a tagged unset/true/false value for filter flags where
// "don't care" must be explicit. The zero value is Unset.
type TriState int

const (
	Unset TriState = iota
	True
	False
)

// MarshalJSON encodes Unset as null so the wire shape stays a nullable
// boolean while the core keeps the tagged representation.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null as Unset.
func (t *TriState) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null":
		*t = Unset
	case "true":
		*t = True
	case "false":
		*t = False
	default:
		return fmt.Errorf("invalid tri-state value %q", string(data))
	}
	return nil
}

// matches evaluates the tri-state against a concrete boolean. Unset is
// vacuously true.
func (t TriState) matches(v bool) bool {
	switch t {
	case True:
		return v
	case False:
		return !v
	default:
		return true
	}
}

// CountOp is the comparison operator for owned-copy-count filtering.
type CountOp string

const (
	CountEq  CountOp = "eq"
	CountGte CountOp = "gte"
	CountLte CountOp = "lte"
)

// CountFilter filters by total owned copies of a card.
type CountFilter struct {
	Op    CountOp `json:"op"`
	Value int     `json:"value"`
}

func (f *CountFilter) matches(total int) bool {
	switch f.Op {
	case CountEq:
		return total == f.Value
	case CountGte:
		return total >= f.Value
	case CountLte:
		return total <= f.Value
	default:
		return true
	}
}

// Spec is a filter configuration. Every field is optional; an empty or nil
// field makes its predicate vacuously true. Specs are values built per
// request and never persisted.
type Spec struct {
	// Free-text search matched case-insensitively against name, version
	// suffix and franchise tag.
	Search string `json:"search,omitempty"`

	// Inclusion sets. Empty means "any".
	Sets       []string         `json:"sets,omitempty"`
	Colors     []string         `json:"colors,omitempty"`
	Rarities   []cards.Rarity   `json:"rarities,omitempty"`
	Types      []cards.CardType `json:"types,omitempty"`
	Franchises []string         `json:"franchises,omitempty"`
	Subtypes   []string         `json:"subtypes,omitempty"`
	Costs      []int            `json:"costs,omitempty"`

	// Inclusive numeric ranges. Cards lacking a stat pass its range
	// predicate; cost is mandatory on every card so the cost range always
	// applies, independent of the cost inclusion list.
	CostMin      *int `json:"costMin,omitempty"`
	CostMax      *int `json:"costMax,omitempty"`
	StrengthMin  *int `json:"strengthMin,omitempty"`
	StrengthMax  *int `json:"strengthMax,omitempty"`
	WillpowerMin *int `json:"willpowerMin,omitempty"`
	WillpowerMax *int `json:"willpowerMax,omitempty"`
	LoreMin      *int `json:"loreMin,omitempty"`
	LoreMax      *int `json:"loreMax,omitempty"`

	// Tri-state flags.
	Inkwell      TriState `json:"inkwell,omitempty"`
	HasEnchanted TriState `json:"hasEnchanted,omitempty"`
	HasSpecial   TriState `json:"hasSpecial,omitempty"`

	// Collection-ownership membership: True keeps only owned cards,
	// False keeps only unowned cards.
	Owned TriState `json:"owned,omitempty"`

	// Owned-copy-count comparison, applied to the sum of all four variant
	// counters.
	OwnedCount *CountFilter `json:"ownedCount,omitempty"`

	// Retained holds full names that bypass all predicates: cards kept
	// visible after a mutation that would otherwise drop them out of an
	// ownership filter, until the caller refreshes.
	Retained map[string]bool `json:"-"`
}
