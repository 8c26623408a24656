package collection

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/inkwellhq/lorcana-companion/internal/events"
)

// ExportData is the portable snapshot format of a ledger.
type ExportData struct {
	ExportedAt  time.Time             `json:"exported_at"`
	UserID      string                `json:"user_id,omitempty"`
	TotalCards  int                   `json:"total_cards"`
	UniqueCards int                   `json:"unique_cards"`
	Entries     map[string]Quantities `json:"entries"`
}

// Export writes a JSON snapshot of the ledger.
func (l *Ledger) Export(w io.Writer) error {
	l.mu.RLock()
	data := ExportData{
		ExportedAt: time.Now().UTC(),
		UserID:     l.userID,
		Entries:    make(map[string]Quantities, len(l.entries)),
	}
	for name, q := range l.entries {
		data.Entries[name] = q
	}
	data.TotalCards, data.UniqueCards = l.totalsLocked()
	l.mu.RUnlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding collection export: %w", err)
	}
	return nil
}

// Import replaces the ledger's entries wholesale with the snapshot's. The
// store is mirrored with a full delete followed by an upsert per entry.
func (l *Ledger) Import(r io.Reader) (int, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return 0, fmt.Errorf("decoding collection import: %w", err)
	}
	l.Replace(data.Entries)
	return len(data.Entries), nil
}

// Replace swaps the ledger's entries for the given set, dropping zero
// entries, and mirrors the replacement to the store.
func (l *Ledger) Replace(entries map[string]Quantities) {
	l.mu.Lock()
	l.entries = make(map[string]Quantities, len(entries))
	for name, q := range entries {
		if !q.IsZero() {
			l.entries[name] = q
		}
	}
	totalCards, uniqueCards := l.totalsLocked()
	kept := make(map[string]Quantities, len(l.entries))
	for name, q := range l.entries {
		kept[name] = q
	}
	l.mu.Unlock()

	l.enqueue(syncOp{kind: opDeleteAll})
	for name, q := range kept {
		l.enqueue(syncOp{kind: opUpsert, cardName: name, quantities: q})
	}

	l.dispatch(events.Event{
		Type: events.TypeCollectionChanged,
		Data: events.CollectionChangedEvent{
			TotalCards:  totalCards,
			UniqueCards: uniqueCards,
		},
	})
}

// Clear empties the ledger and deletes every row of the user from the store.
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.entries = make(map[string]Quantities)
	l.retained = make(map[string]bool)
	l.mu.Unlock()

	l.enqueue(syncOp{kind: opDeleteAll})
	l.dispatch(events.Event{Type: events.TypeCollectionCleared})
}
