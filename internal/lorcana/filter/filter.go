package filter

import (
	"strings"

	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards/consolidate"
)

// OwnedFunc reports the total owned copies of a card identity, summed over
// all four variant counters. A nil OwnedFunc treats every card as unowned.
type OwnedFunc func(fullName string) int

// Filter returns the cards matching the spec. Predicates combine as a
// logical AND; a nil spec matches everything. Cards in the spec's retained
// set bypass every predicate.
func Filter(list []*consolidate.ConsolidatedCard, spec *Spec, owned OwnedFunc) []*consolidate.ConsolidatedCard {
	result := make([]*consolidate.ConsolidatedCard, 0, len(list))
	if spec == nil {
		return append(result, list...)
	}
	for _, card := range list {
		if spec.Retained[card.FullName] || matches(card, spec, owned) {
			result = append(result, card)
		}
	}
	return result
}

func matches(card *consolidate.ConsolidatedCard, spec *Spec, owned OwnedFunc) bool {
	base := card.BaseCard

	if spec.Search != "" && !matchesSearch(base, spec.Search) {
		return false
	}
	if !containsString(spec.Sets, base.SetCode) {
		return false
	}
	if !containsString(spec.Colors, base.Ink) {
		return false
	}
	if !matchesRarities(card, spec.Rarities) {
		return false
	}
	if !containsType(spec.Types, base.Type) {
		return false
	}
	if !containsString(spec.Franchises, base.Franchise) {
		return false
	}
	if !matchesSubtypes(base, spec.Subtypes) {
		return false
	}
	if !containsInt(spec.Costs, base.Cost) {
		return false
	}

	cost := base.Cost
	if !inRange(&cost, spec.CostMin, spec.CostMax) {
		return false
	}
	if !inRange(base.Strength, spec.StrengthMin, spec.StrengthMax) {
		return false
	}
	if !inRange(base.Willpower, spec.WillpowerMin, spec.WillpowerMax) {
		return false
	}
	if !inRange(base.Lore, spec.LoreMin, spec.LoreMax) {
		return false
	}

	if !spec.Inkwell.matches(base.Inkwell) {
		return false
	}
	if !spec.HasEnchanted.matches(card.HasEnchanted()) {
		return false
	}
	if !spec.HasSpecial.matches(card.HasSpecial()) {
		return false
	}

	if spec.Owned != Unset || spec.OwnedCount != nil {
		total := 0
		if owned != nil {
			total = owned(card.FullName)
		}
		if !spec.Owned.matches(total > 0) {
			return false
		}
		if spec.OwnedCount != nil && !spec.OwnedCount.matches(total) {
			return false
		}
	}

	return true
}

func matchesSearch(base *cards.CardPrint, search string) bool {
	term := strings.ToLower(search)
	return strings.Contains(strings.ToLower(base.Name), term) ||
		strings.Contains(strings.ToLower(base.Version), term) ||
		strings.Contains(strings.ToLower(base.Franchise), term)
}

// matchesRarities differs from the other list filters: a consolidated card
// exposes every rarity of its available variants, and matches when any of
// them is in the requested set.
func matchesRarities(card *consolidate.ConsolidatedCard, rarities []cards.Rarity) bool {
	if len(rarities) == 0 {
		return true
	}
	for _, have := range card.VariantRarities() {
		for _, want := range rarities {
			if have == want {
				return true
			}
		}
	}
	return false
}

func matchesSubtypes(base *cards.CardPrint, subtypes []string) bool {
	if len(subtypes) == 0 {
		return true
	}
	for _, want := range subtypes {
		if base.HasSubtype(want) {
			return true
		}
	}
	return false
}

// inRange is the shared numeric range predicate: a missing stat passes, a
// present stat must fall within the inclusive bounds.
func inRange(value, min, max *int) bool {
	if value == nil {
		return true
	}
	if min != nil && *value < *min {
		return false
	}
	if max != nil && *value > *max {
		return false
	}
	return true
}

func containsString(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

func containsType(set []cards.CardType, value cards.CardType) bool {
	if len(set) == 0 {
		return true
	}
	for _, t := range set {
		if t == value {
			return true
		}
	}
	return false
}

func containsInt(set []int, value int) bool {
	if len(set) == 0 {
		return true
	}
	for _, n := range set {
		if n == value {
			return true
		}
	}
	return false
}
