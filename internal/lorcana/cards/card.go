package cards

import "strings"

// Rarity identifies the printed rarity of a card.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RaritySuperRare Rarity = "Super Rare"
	RarityLegendary Rarity = "Legendary"
	RarityEnchanted Rarity = "Enchanted"
	RaritySpecial   Rarity = "Special"
)

// rarityRank orders rarities for sorting. Lower ranks sort first ascending.
// This is a fixed configuration constant, not alphabetical order.
var rarityRank = map[Rarity]int{
	RarityCommon:    0,
	RarityUncommon:  1,
	RarityRare:      2,
	RaritySuperRare: 3,
	RarityLegendary: 4,
	RarityEnchanted: 5,
	RaritySpecial:   6,
}

// Rank returns the sort rank of the rarity. Unknown rarities rank last.
func (r Rarity) Rank() int {
	if rank, ok := rarityRank[r]; ok {
		return rank
	}
	return len(rarityRank)
}

// CardType identifies the card's type line.
type CardType string

const (
	TypeCharacter CardType = "Character"
	TypeAction    CardType = "Action"
	TypeItem      CardType = "Item"
	TypeSong      CardType = "Song"
	TypeLocation  CardType = "Location"
)

// The six base ink colors. Dual-ink cards carry a hyphenated composite of
// two of these (e.g. "Amber-Steel"); colorless cards carry an empty string.
const (
	InkAmber    = "Amber"
	InkAmethyst = "Amethyst"
	InkEmerald  = "Emerald"
	InkRuby     = "Ruby"
	InkSapphire = "Sapphire"
	InkSteel    = "Steel"
)

// BaseColors decomposes an ink string into its base colors. A dual-ink
// composite splits on the hyphen, a single ink yields one color, and an
// empty string yields none.
func BaseColors(ink string) []string {
	if ink == "" {
		return nil
	}
	return strings.Split(ink, "-")
}

// FoilNone is the foil-tag value marking an explicitly non-foil print.
const FoilNone = "None"

// CardPrint represents a single printed version of a card. Prints are
// immutable once loaded from the dataset.
type CardPrint struct {
	// Identity
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
	FullName string `json:"fullName"`

	// Printing
	SetCode         string `json:"setCode"`
	CollectorNumber string `json:"collectorNumber"`
	Rarity          Rarity `json:"rarity"`

	// Gameplay attributes
	Ink       string   `json:"ink"`
	Cost      int      `json:"cost"`
	Type      CardType `json:"type"`
	Strength  *int     `json:"strength,omitempty"`
	Willpower *int     `json:"willpower,omitempty"`
	Lore      *int     `json:"lore,omitempty"`
	Inkwell   bool     `json:"inkwell"`
	Subtypes  []string `json:"subtypes,omitempty"`

	// Story/franchise tag (e.g. "Frozen", "Mickey Mouse & Friends")
	Franchise string `json:"franchise,omitempty"`

	// Foil-treatment tags. An empty list or a single "None" entry marks a
	// regular non-foil print; anything else marks a foil print.
	Foils []string `json:"foils,omitempty"`
}

// BaseColors returns the base ink colors of the print.
func (p *CardPrint) BaseColors() []string {
	return BaseColors(p.Ink)
}

// HasFoilTreatment reports whether the print carries a real foil treatment.
func (p *CardPrint) HasFoilTreatment() bool {
	for _, f := range p.Foils {
		if f != "" && f != FoilNone {
			return true
		}
	}
	return false
}

// HasSubtype reports whether the print carries the given subtype.
func (p *CardPrint) HasSubtype(subtype string) bool {
	for _, s := range p.Subtypes {
		if s == subtype {
			return true
		}
	}
	return false
}

// ComposeFullName builds the composite full name from a name and an
// optional version suffix.
func ComposeFullName(name, version string) string {
	if version == "" {
		return name
	}
	return name + " - " + version
}
