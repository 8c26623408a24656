package filter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards/consolidate"
)

// SortField enumerates the sortable dimensions.
type SortField string

const (
	SortByName            SortField = "name"
	SortByCost            SortField = "cost"
	SortByRarity          SortField = "rarity"
	SortBySet             SortField = "set"
	SortByCollectorNumber SortField = "collectorNumber"
	SortByColor           SortField = "color"
	SortByType            SortField = "type"
	SortByFranchise       SortField = "franchise"
	SortByStrength        SortField = "strength"
	SortByWillpower       SortField = "willpower"
	SortByLore            SortField = "lore"
)

// stringKey and intKey are the two typed projections a comparator can
// operate on. Each sort field maps to exactly one of them, selected once
// per Sort call.
type (
	stringKey func(*consolidate.ConsolidatedCard) string
	intKey    func(*consolidate.ConsolidatedCard) int
)

var stringKeys = map[SortField]stringKey{
	SortByName: func(c *consolidate.ConsolidatedCard) string { return c.FullName },
	SortBySet:  func(c *consolidate.ConsolidatedCard) string { return c.BaseCard.SetCode },
	SortByColor: func(c *consolidate.ConsolidatedCard) string {
		return c.BaseCard.Ink
	},
	SortByType: func(c *consolidate.ConsolidatedCard) string {
		return string(c.BaseCard.Type)
	},
	SortByFranchise: func(c *consolidate.ConsolidatedCard) string {
		return c.BaseCard.Franchise
	},
}

var intKeys = map[SortField]intKey{
	SortByCost:   func(c *consolidate.ConsolidatedCard) int { return c.BaseCard.Cost },
	SortByRarity: func(c *consolidate.ConsolidatedCard) int { return c.BaseCard.Rarity.Rank() },
	SortByStrength: func(c *consolidate.ConsolidatedCard) int {
		return statOrZero(c.BaseCard.Strength)
	},
	SortByWillpower: func(c *consolidate.ConsolidatedCard) int {
		return statOrZero(c.BaseCard.Willpower)
	},
	SortByLore: func(c *consolidate.ConsolidatedCard) int {
		return statOrZero(c.BaseCard.Lore)
	},
}

// statOrZero makes missing numeric stats sort as zero.
func statOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// Sort returns a sorted copy of the card list. String fields compare
// case-insensitively, rarity compares by its fixed rank table, and the
// full name is the implicit secondary key so equal primary keys produce a
// deterministic order.
func Sort(list []*consolidate.ConsolidatedCard, field SortField, descending bool) []*consolidate.ConsolidatedCard {
	sorted := make([]*consolidate.ConsolidatedCard, len(list))
	copy(sorted, list)

	cmp := comparatorFor(field)
	sort.Slice(sorted, func(i, j int) bool {
		c := cmp(sorted[i], sorted[j])
		if c == 0 {
			c = strings.Compare(sorted[i].FullName, sorted[j].FullName)
		}
		if descending {
			return c > 0
		}
		return c < 0
	})
	return sorted
}

func comparatorFor(field SortField) func(a, b *consolidate.ConsolidatedCard) int {
	if field == SortByCollectorNumber {
		return compareCollectorNumbers
	}
	if key, ok := intKeys[field]; ok {
		return func(a, b *consolidate.ConsolidatedCard) int {
			return key(a) - key(b)
		}
	}
	key, ok := stringKeys[field]
	if !ok {
		key = stringKeys[SortByName]
	}
	return func(a, b *consolidate.ConsolidatedCard) int {
		return strings.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
	}
}

// compareCollectorNumbers compares numerically when both numbers parse as
// integers, falling back to a case-insensitive string compare for promo
// style numbers like "12a".
func compareCollectorNumbers(a, b *consolidate.ConsolidatedCard) int {
	an, aerr := strconv.Atoi(a.BaseCard.CollectorNumber)
	bn, berr := strconv.Atoi(b.BaseCard.CollectorNumber)
	if aerr == nil && berr == nil {
		return an - bn
	}
	return strings.Compare(
		strings.ToLower(a.BaseCard.CollectorNumber),
		strings.ToLower(b.BaseCard.CollectorNumber),
	)
}
