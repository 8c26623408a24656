package filter

import (
	"encoding/json"
	"testing"

	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards/consolidate"
)

type cardOpts struct {
	ink       string
	cost      int
	rarity    cards.Rarity
	ctype     cards.CardType
	inkwell   bool
	strength  *int
	franchise string
	subtypes  []string
	setCode   string
	number    string
}

func makeCard(fullName string, opts cardOpts) *consolidate.ConsolidatedCard {
	if opts.ctype == "" {
		opts.ctype = cards.TypeCharacter
	}
	if opts.rarity == "" {
		opts.rarity = cards.RarityCommon
	}
	print := &cards.CardPrint{
		Name:            fullName,
		FullName:        fullName,
		SetCode:         opts.setCode,
		CollectorNumber: opts.number,
		Ink:             opts.ink,
		Cost:            opts.cost,
		Type:            opts.ctype,
		Rarity:          opts.rarity,
		Inkwell:         opts.inkwell,
		Strength:        opts.strength,
		Franchise:       opts.franchise,
		Subtypes:        opts.subtypes,
	}
	return &consolidate.ConsolidatedCard{
		FullName: fullName,
		BaseCard: print,
		Regular:  print,
	}
}

func intPtr(n int) *int { return &n }

func names(list []*consolidate.ConsolidatedCard) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.FullName
	}
	return out
}

func TestFilterNilSpecMatchesEverything(t *testing.T) {
	list := []*consolidate.ConsolidatedCard{
		makeCard("A", cardOpts{}),
		makeCard("B", cardOpts{}),
	}
	if got := Filter(list, nil, nil); len(got) != 2 {
		t.Errorf("nil spec kept %d cards, want 2", len(got))
	}
}

func TestFilterColorAndCost(t *testing.T) {
	list := []*consolidate.ConsolidatedCard{
		makeCard("Cheap Ruby", cardOpts{ink: "Ruby", cost: 2}),
		makeCard("Pricey Ruby", cardOpts{ink: "Ruby", cost: 7}),
		makeCard("Cheap Amber", cardOpts{ink: "Amber", cost: 2}),
	}
	spec := &Spec{Colors: []string{"Ruby"}, CostMax: intPtr(5)}

	got := names(Filter(list, spec, nil))
	if len(got) != 1 || got[0] != "Cheap Ruby" {
		t.Errorf("Filter = %v, want [Cheap Ruby]", got)
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	list := []*consolidate.ConsolidatedCard{
		makeCard("Mickey Mouse", cardOpts{franchise: "Mickey & Friends"}),
		makeCard("Elsa", cardOpts{franchise: "Frozen"}),
	}
	spec := &Spec{Search: "mickey"}
	if got := names(Filter(list, spec, nil)); len(got) != 1 || got[0] != "Mickey Mouse" {
		t.Errorf("Filter = %v, want [Mickey Mouse]", got)
	}

	// Franchise text is searchable too.
	spec = &Spec{Search: "frozen"}
	if got := names(Filter(list, spec, nil)); len(got) != 1 || got[0] != "Elsa" {
		t.Errorf("Filter = %v, want [Elsa]", got)
	}
}

// Rarity filtering matches against every variant rarity a card exposes,
// so an "Enchanted" filter keeps a Legendary card that has an enchanted
// print.
func TestFilterRarityMatchesVariants(t *testing.T) {
	withEnchanted := makeCard("Elsa - Snow Queen", cardOpts{rarity: cards.RarityLegendary})
	withEnchanted.Enchanted = &cards.CardPrint{
		FullName: "Elsa - Snow Queen",
		Rarity:   cards.RarityEnchanted,
	}
	plain := makeCard("Olaf", cardOpts{rarity: cards.RarityLegendary})

	spec := &Spec{Rarities: []cards.Rarity{cards.RarityEnchanted}}
	got := names(Filter([]*consolidate.ConsolidatedCard{withEnchanted, plain}, spec, nil))
	if len(got) != 1 || got[0] != "Elsa - Snow Queen" {
		t.Errorf("Filter = %v, want [Elsa - Snow Queen]", got)
	}
}

func TestFilterTriStateFlags(t *testing.T) {
	inkable := makeCard("Inkable", cardOpts{inkwell: true})
	uninkable := makeCard("Uninkable", cardOpts{})
	list := []*consolidate.ConsolidatedCard{inkable, uninkable}

	cases := []struct {
		flag TriState
		want []string
	}{
		{Unset, []string{"Inkable", "Uninkable"}},
		{True, []string{"Inkable"}},
		{False, []string{"Uninkable"}},
	}
	for _, tc := range cases {
		got := names(Filter(list, &Spec{Inkwell: tc.flag}, nil))
		if len(got) != len(tc.want) {
			t.Errorf("inkwell=%v kept %v, want %v", tc.flag, got, tc.want)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("inkwell=%v kept %v, want %v", tc.flag, got, tc.want)
			}
		}
	}
}

func TestFilterMissingStatPassesRange(t *testing.T) {
	action := makeCard("Be Prepared", cardOpts{ctype: cards.TypeAction})
	weak := makeCard("Weak", cardOpts{strength: intPtr(1)})
	strong := makeCard("Strong", cardOpts{strength: intPtr(6)})

	spec := &Spec{StrengthMin: intPtr(3)}
	got := names(Filter([]*consolidate.ConsolidatedCard{action, weak, strong}, spec, nil))
	if len(got) != 2 || got[0] != "Be Prepared" || got[1] != "Strong" {
		t.Errorf("Filter = %v, want [Be Prepared Strong]", got)
	}
}

func TestFilterOwnership(t *testing.T) {
	list := []*consolidate.ConsolidatedCard{
		makeCard("Owned", cardOpts{}),
		makeCard("Unowned", cardOpts{}),
	}
	owned := func(fullName string) int {
		if fullName == "Owned" {
			return 3
		}
		return 0
	}

	if got := names(Filter(list, &Spec{Owned: True}, owned)); len(got) != 1 || got[0] != "Owned" {
		t.Errorf("Owned=True kept %v", got)
	}
	if got := names(Filter(list, &Spec{Owned: False}, owned)); len(got) != 1 || got[0] != "Unowned" {
		t.Errorf("Owned=False kept %v", got)
	}
	// Nil owned func treats everything as unowned.
	if got := Filter(list, &Spec{Owned: True}, nil); len(got) != 0 {
		t.Errorf("Owned=True with nil func kept %v", names(got))
	}
}

func TestFilterOwnedCount(t *testing.T) {
	list := []*consolidate.ConsolidatedCard{
		makeCard("Two", cardOpts{}),
		makeCard("Four", cardOpts{}),
	}
	counts := map[string]int{"Two": 2, "Four": 4}
	owned := func(fullName string) int { return counts[fullName] }

	cases := []struct {
		op   CountOp
		val  int
		want string
	}{
		{CountEq, 4, "Four"},
		{CountGte, 3, "Four"},
		{CountLte, 2, "Two"},
	}
	for _, tc := range cases {
		spec := &Spec{OwnedCount: &CountFilter{Op: tc.op, Value: tc.val}}
		got := names(Filter(list, spec, owned))
		if len(got) != 1 || got[0] != tc.want {
			t.Errorf("op %s %d kept %v, want [%s]", tc.op, tc.val, got, tc.want)
		}
	}
}

// A retained card stays in the result even when every predicate would
// reject it. This is what keeps a card visible right after the mutation
// that dropped its last owned copy.
func TestFilterRetainedBypassesPredicates(t *testing.T) {
	list := []*consolidate.ConsolidatedCard{
		makeCard("Just Zeroed", cardOpts{ink: "Amber"}),
		makeCard("Never Owned", cardOpts{ink: "Amber"}),
	}
	spec := &Spec{
		Owned:    True,
		Colors:   []string{"Ruby"},
		Retained: map[string]bool{"Just Zeroed": true},
	}

	got := names(Filter(list, spec, func(string) int { return 0 }))
	if len(got) != 1 || got[0] != "Just Zeroed" {
		t.Errorf("Filter = %v, want [Just Zeroed]", got)
	}
}

func TestFilterSubtypes(t *testing.T) {
	list := []*consolidate.ConsolidatedCard{
		makeCard("Hero", cardOpts{subtypes: []string{"Hero", "Storyborn"}}),
		makeCard("Villain", cardOpts{subtypes: []string{"Villain"}}),
	}
	spec := &Spec{Subtypes: []string{"Storyborn"}}
	if got := names(Filter(list, spec, nil)); len(got) != 1 || got[0] != "Hero" {
		t.Errorf("Filter = %v, want [Hero]", got)
	}
}

func TestTriStateJSONRoundTrip(t *testing.T) {
	type flags struct {
		Inkwell TriState `json:"inkwell"`
	}

	cases := []struct {
		wire  string
		value TriState
	}{
		{`{"inkwell":null}`, Unset},
		{`{"inkwell":true}`, True},
		{`{"inkwell":false}`, False},
	}
	for _, tc := range cases {
		var f flags
		if err := json.Unmarshal([]byte(tc.wire), &f); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.wire, err)
		}
		if f.Inkwell != tc.value {
			t.Errorf("unmarshal %s = %v, want %v", tc.wire, f.Inkwell, tc.value)
		}
		out, err := json.Marshal(f)
		if err != nil {
			t.Fatalf("marshal %v: %v", tc.value, err)
		}
		if string(out) != tc.wire {
			t.Errorf("marshal %v = %s, want %s", tc.value, out, tc.wire)
		}
	}

	var f flags
	if err := json.Unmarshal([]byte(`{"inkwell":"yes"}`), &f); err == nil {
		t.Error("expected error for non-boolean tri-state value")
	}
}

func TestSortByName(t *testing.T) {
	list := []*consolidate.ConsolidatedCard{
		makeCard("banana", cardOpts{}),
		makeCard("Apple", cardOpts{}),
		makeCard("Cherry", cardOpts{}),
	}
	got := names(Sort(list, SortByName, false))
	want := []string{"Apple", "banana", "Cherry"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sort = %v, want %v", got, want)
		}
	}
	// Input order untouched.
	if list[0].FullName != "banana" {
		t.Error("Sort mutated its input")
	}
}

// Rarity sorts by rank, with the full name breaking ties so equal
// rarities always come back in the same order.
func TestSortByRarityDeterministic(t *testing.T) {
	list := []*consolidate.ConsolidatedCard{
		makeCard("Zeta", cardOpts{rarity: cards.RarityRare}),
		makeCard("Alpha", cardOpts{rarity: cards.RarityRare}),
		makeCard("Mid", cardOpts{rarity: cards.RarityCommon}),
	}
	got := names(Sort(list, SortByRarity, false))
	want := []string{"Mid", "Alpha", "Zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sort = %v, want %v", got, want)
		}
	}

	got = names(Sort(list, SortByRarity, true))
	want = []string{"Zeta", "Alpha", "Mid"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sort desc = %v, want %v", got, want)
		}
	}
}

func TestSortByCollectorNumberNumeric(t *testing.T) {
	list := []*consolidate.ConsolidatedCard{
		makeCard("Hundred", cardOpts{number: "100"}),
		makeCard("Two", cardOpts{number: "2"}),
		makeCard("Ten", cardOpts{number: "10"}),
	}
	got := names(Sort(list, SortByCollectorNumber, false))
	want := []string{"Two", "Ten", "Hundred"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sort = %v, want %v", got, want)
		}
	}
}

func TestSortByCollectorNumberPromoFallback(t *testing.T) {
	// Promo numbers do not parse as integers, so the whole list falls
	// back to string comparison per pair.
	list := []*consolidate.ConsolidatedCard{
		makeCard("B", cardOpts{number: "12b"}),
		makeCard("A", cardOpts{number: "12a"}),
	}
	got := names(Sort(list, SortByCollectorNumber, false))
	if got[0] != "A" || got[1] != "B" {
		t.Errorf("Sort = %v, want [A B]", got)
	}
}

func TestGroupFirstEncounterOrder(t *testing.T) {
	list := []*consolidate.ConsolidatedCard{
		makeCard("R1", cardOpts{ink: "Ruby"}),
		makeCard("A1", cardOpts{ink: "Amber"}),
		makeCard("R2", cardOpts{ink: "Ruby"}),
	}
	buckets := Group(list, GroupByColor)
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	if buckets[0].Name != "Ruby" || buckets[1].Name != "Amber" {
		t.Errorf("bucket order = [%s %s], want [Ruby Amber]", buckets[0].Name, buckets[1].Name)
	}
	if len(buckets[0].Cards) != 2 || len(buckets[1].Cards) != 1 {
		t.Errorf("bucket sizes = [%d %d], want [2 1]", len(buckets[0].Cards), len(buckets[1].Cards))
	}
}

func TestGroupByCostAndEmptyColor(t *testing.T) {
	list := []*consolidate.ConsolidatedCard{
		makeCard("Free", cardOpts{cost: 0}),
		makeCard("Costly", cardOpts{cost: 5}),
	}
	buckets := Group(list, GroupByCost)
	if buckets[0].Name != "Cost 0" || buckets[1].Name != "Cost 5" {
		t.Errorf("cost buckets = [%s %s]", buckets[0].Name, buckets[1].Name)
	}

	buckets = Group(list, GroupByColor)
	if len(buckets) != 1 || buckets[0].Name != "Colorless" {
		t.Errorf("empty ink bucket = %v, want one Colorless bucket", buckets)
	}
}
