package consolidate

import "github.com/inkwellhq/lorcana-companion/internal/lorcana/cards"

// Consolidate groups the full ordered print list into one ConsolidatedCard
// per distinct full name. Grouping is a case-sensitive exact match on the
// full name and preserves first-encounter order. The transform is pure: an
// empty input yields an empty output.
func Consolidate(prints []*cards.CardPrint) []*ConsolidatedCard {
	byName := make(map[string]*ConsolidatedCard)
	firstPrint := make(map[string]*cards.CardPrint)
	result := make([]*ConsolidatedCard, 0, len(prints))

	for _, print := range prints {
		card, ok := byName[print.FullName]
		if !ok {
			card = &ConsolidatedCard{FullName: print.FullName}
			byName[print.FullName] = card
			firstPrint[print.FullName] = print
			result = append(result, card)
		}
		assign(card, print)
	}

	// Base card selection prefers the first print that is neither enchanted
	// nor special, falling back to the group's first print in source order.
	for _, card := range result {
		if card.BaseCard == nil {
			card.BaseCard = firstPrint[card.FullName]
		}
	}

	return result
}

// assign places a print into the consolidated card's variant slots. For the
// single-print slots the first match wins and later prints are silently
// ignored.
func assign(card *ConsolidatedCard, print *cards.CardPrint) {
	switch print.Rarity {
	case cards.RarityEnchanted:
		if card.Enchanted == nil {
			card.Enchanted = print
		}
	case cards.RaritySpecial:
		card.Special = append(card.Special, print)
	default:
		if card.BaseCard == nil {
			card.BaseCard = print
		}
		if print.HasFoilTreatment() {
			if card.Foil == nil {
				card.Foil = print
			}
		} else {
			if card.Regular == nil {
				card.Regular = print
			}
		}
	}
}
