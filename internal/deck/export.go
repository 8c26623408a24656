package deck

import (
	"fmt"
	"io"
	"strings"
)

// Export writes the deck in the plain-text list format:
//
//	Deck: <name>
//	Description: <description>
//
//	<qty>x <full name>
func Export(w io.Writer, d *Deck) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Deck: %s\n", d.Name)
	if d.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", d.Description)
	}
	b.WriteString("\n")
	for _, c := range d.Cards {
		fmt.Fprintf(&b, "%dx %s\n", c.Count, c.Print.FullName)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing deck export: %w", err)
	}
	return nil
}

// ExportString renders the deck list format as a string.
func ExportString(d *Deck) string {
	var b strings.Builder
	Export(&b, d)
	return b.String()
}
