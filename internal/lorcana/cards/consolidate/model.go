// Package consolidate groups raw card prints into one logical card per
// identity, with pointers to its regular, foil, enchanted and special
// print variants.
package consolidate

import "github.com/inkwellhq/lorcana-companion/internal/lorcana/cards"

// ConsolidatedCard is the unit filters and the UI operate on: one entry
// per card identity across all its prints. Built once from the full print
// list at startup and immutable afterward.
type ConsolidatedCard struct {
	// FullName is the identity key across all prints.
	FullName string `json:"fullName"`

	// BaseCard is the representative non-special, non-enchanted print used
	// for display. Falls back to the first print in source order when an
	// identity only has enchanted or special prints.
	BaseCard *cards.CardPrint `json:"baseCard"`

	// Variant slots. Special may hold several prints; the others hold at
	// most one.
	Regular   *cards.CardPrint   `json:"regular,omitempty"`
	Foil      *cards.CardPrint   `json:"foil,omitempty"`
	Enchanted *cards.CardPrint   `json:"enchanted,omitempty"`
	Special   []*cards.CardPrint `json:"special,omitempty"`
}

// HasRegular reports whether a regular non-foil print exists.
func (c *ConsolidatedCard) HasRegular() bool { return c.Regular != nil }

// HasFoil reports whether a foil print exists.
func (c *ConsolidatedCard) HasFoil() bool { return c.Foil != nil }

// HasEnchanted reports whether an enchanted print exists. Always consistent
// with the Enchanted slot; the flag is derived, never stored separately.
func (c *ConsolidatedCard) HasEnchanted() bool { return c.Enchanted != nil }

// HasSpecial reports whether any special prints exist.
func (c *ConsolidatedCard) HasSpecial() bool { return len(c.Special) > 0 }

// VariantRarities returns every rarity the consolidated card exposes: the
// base print's rarity, plus Enchanted and Special when those variants exist.
func (c *ConsolidatedCard) VariantRarities() []cards.Rarity {
	rarities := []cards.Rarity{c.BaseCard.Rarity}
	if c.HasEnchanted() && c.BaseCard.Rarity != cards.RarityEnchanted {
		rarities = append(rarities, cards.RarityEnchanted)
	}
	if c.HasSpecial() && c.BaseCard.Rarity != cards.RaritySpecial {
		rarities = append(rarities, cards.RaritySpecial)
	}
	return rarities
}

// Prints returns every print attached to the card, without duplicates,
// in variant-slot order.
func (c *ConsolidatedCard) Prints() []*cards.CardPrint {
	seen := make(map[*cards.CardPrint]bool)
	var prints []*cards.CardPrint
	add := func(p *cards.CardPrint) {
		if p != nil && !seen[p] {
			seen[p] = true
			prints = append(prints, p)
		}
	}
	add(c.BaseCard)
	add(c.Regular)
	add(c.Foil)
	add(c.Enchanted)
	for _, p := range c.Special {
		add(p)
	}
	return prints
}
