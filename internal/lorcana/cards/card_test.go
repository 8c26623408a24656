package cards

import "testing"

func TestBaseColors(t *testing.T) {
	cases := []struct {
		ink  string
		want []string
	}{
		{"Amber", []string{"Amber"}},
		{"Amber-Amethyst", []string{"Amber", "Amethyst"}},
		{"", nil},
	}
	for _, tc := range cases {
		got := BaseColors(tc.ink)
		if len(got) != len(tc.want) {
			t.Errorf("BaseColors(%q) = %v, want %v", tc.ink, got, tc.want)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("BaseColors(%q) = %v, want %v", tc.ink, got, tc.want)
			}
		}
	}
}

// A dual-ink card contributes both base colors, but a deck of Amber,
// Amethyst and Amber-Amethyst cards still spans only two colors.
func TestBaseColorsDualAddsNoThirdColor(t *testing.T) {
	set := make(map[string]bool)
	for _, ink := range []string{"Amber", "Amethyst", "Amber-Amethyst"} {
		for _, c := range BaseColors(ink) {
			set[c] = true
		}
	}
	if len(set) != 2 {
		t.Errorf("color set = %v, want exactly Amber and Amethyst", set)
	}
}

func TestRarityRank(t *testing.T) {
	ordered := []Rarity{
		RarityCommon, RarityUncommon, RarityRare,
		RaritySuperRare, RarityLegendary, RarityEnchanted, RaritySpecial,
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("rank(%s) = %d not below rank(%s) = %d",
				ordered[i-1], ordered[i-1].Rank(), ordered[i], ordered[i].Rank())
		}
	}
	if Rarity("Mythic").Rank() <= RaritySpecial.Rank() {
		t.Error("unknown rarity should rank last")
	}
}

func TestComposeFullName(t *testing.T) {
	if got := ComposeFullName("Mickey Mouse", "Brave Little Tailor"); got != "Mickey Mouse - Brave Little Tailor" {
		t.Errorf("ComposeFullName = %q", got)
	}
	if got := ComposeFullName("Be Prepared", ""); got != "Be Prepared" {
		t.Errorf("ComposeFullName without version = %q", got)
	}
}

func TestHasFoilTreatment(t *testing.T) {
	cases := []struct {
		foils []string
		want  bool
	}{
		{nil, false},
		{[]string{FoilNone}, false},
		{[]string{""}, false},
		{[]string{"Cold Foil"}, true},
		{[]string{FoilNone, "Cold Foil"}, true},
	}
	for _, tc := range cases {
		p := &CardPrint{Foils: tc.foils}
		if got := p.HasFoilTreatment(); got != tc.want {
			t.Errorf("HasFoilTreatment(%v) = %v, want %v", tc.foils, got, tc.want)
		}
	}
}
