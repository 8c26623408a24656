package catalog

// setNames maps set codes to display names. Promo and unknown codes fall
// back to the code itself.
var setNames = map[string]string{
	"1":  "The First Chapter",
	"2":  "Rise of the Floodborn",
	"3":  "Into the Inklands",
	"4":  "Ursula's Return",
	"5":  "Shimmering Skies",
	"6":  "Azurite Sea",
	"7":  "Archazia's Island",
	"P1": "Promo Cards",
	"D23": "Disney D23 Expo",
}

// SetName returns the display name for a set code.
func SetName(code string) string {
	if name, ok := setNames[code]; ok {
		return name
	}
	return code
}
