package collection

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func newTestLedger(t *testing.T, store Store) *Ledger {
	t.Helper()
	l := NewLedger(Config{
		UserID:   "user-1",
		Store:    store,
		SyncRate: 1000,
	})
	t.Cleanup(l.Close)
	return l
}

func flush(t *testing.T, l *Ledger) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
}

func TestAdjustCreatesEntry(t *testing.T) {
	l := newTestLedger(t, NewMemoryStore())

	q, err := l.Adjust("Elsa - Snow Queen", VariantRegular, 3)
	if err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if q.Regular != 3 {
		t.Errorf("Regular = %d, want 3", q.Regular)
	}
	if l.UniqueCards() != 1 {
		t.Errorf("UniqueCards() = %d, want 1", l.UniqueCards())
	}
	if l.TotalCards() != 3 {
		t.Errorf("TotalCards() = %d, want 3", l.TotalCards())
	}
}

func TestAdjustClampsAtZero(t *testing.T) {
	l := newTestLedger(t, NewMemoryStore())

	if _, err := l.Adjust("HeiHei - Boat Snack", VariantFoil, 2); err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	q, err := l.Adjust("HeiHei - Boat Snack", VariantFoil, -5)
	if err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if q.Foil != 0 {
		t.Errorf("Foil = %d, want 0 after clamping", q.Foil)
	}
}

func TestAdjustRemovesZeroEntry(t *testing.T) {
	l := newTestLedger(t, NewMemoryStore())

	l.Adjust("Dragon Fire", VariantRegular, 2)
	l.Adjust("Dragon Fire", VariantFoil, 1)
	l.Adjust("Dragon Fire", VariantFoil, -1)
	if l.UniqueCards() != 1 {
		t.Fatalf("UniqueCards() = %d, want 1 while regular copies remain", l.UniqueCards())
	}

	l.Adjust("Dragon Fire", VariantRegular, -2)
	if l.UniqueCards() != 0 {
		t.Errorf("UniqueCards() = %d, want 0 after all counters hit zero", l.UniqueCards())
	}
	if _, ok := l.Entries()["Dragon Fire"]; ok {
		t.Error("entry should be removed when every counter is zero")
	}
}

// Adding then removing the same number of copies must leave the ledger
// exactly as it started.
func TestAdjustRoundTripLeavesLedgerEmpty(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(t, store)

	l.Adjust("Mickey Mouse - Brave Little Tailor", VariantRegular, 2)
	l.Adjust("Mickey Mouse - Brave Little Tailor", VariantRegular, -2)

	if l.TotalCards() != 0 {
		t.Errorf("TotalCards() = %d, want 0", l.TotalCards())
	}
	if l.UniqueCards() != 0 {
		t.Errorf("UniqueCards() = %d, want 0", l.UniqueCards())
	}

	flush(t, l)
	if rows := store.Rows("user-1"); len(rows) != 0 {
		t.Errorf("store rows = %v, want none", rows)
	}
}

func TestAdjustUnknownVariant(t *testing.T) {
	l := newTestLedger(t, NewMemoryStore())
	if _, err := l.Adjust("Be Prepared", Variant("holo"), 1); err == nil {
		t.Error("Adjust() with unknown variant should error")
	}
	if l.UniqueCards() != 0 {
		t.Error("failed adjust must not create an entry")
	}
}

func TestAdjustMirrorsToStore(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(t, store)

	l.Adjust("Stitch - Rock Star", VariantEnchanted, 1)
	l.Adjust("Stitch - Rock Star", VariantRegular, 4)
	flush(t, l)

	rows := store.Rows("user-1")
	q, ok := rows["Stitch - Rock Star"]
	if !ok {
		t.Fatal("store missing mirrored row")
	}
	if q.Enchanted != 1 || q.Regular != 4 {
		t.Errorf("stored quantities = %+v, want enchanted 1 regular 4", q)
	}
}

func TestStoreFailureSetsErrorStatus(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(t, store)

	store.FailNext = errors.New("remote unavailable")
	l.Adjust("Dinglehopper", VariantRegular, 1)
	flush(t, l)

	status, lastErr := l.Status()
	if status != StatusError {
		t.Errorf("status = %q, want %q", status, StatusError)
	}
	if lastErr == nil {
		t.Error("last error should be recorded")
	}

	// Local state is never rolled back by a failed mirror.
	if l.TotalCards() != 1 {
		t.Errorf("TotalCards() = %d, want 1 after failed sync", l.TotalCards())
	}

	// A later successful write restores idle.
	l.Adjust("Dinglehopper", VariantRegular, 1)
	flush(t, l)
	status, _ = l.Status()
	if status != StatusIdle {
		t.Errorf("status = %q, want %q after recovery", status, StatusIdle)
	}
}

func TestOfflineLedgerWithoutStore(t *testing.T) {
	l := NewLedger(Config{})
	defer l.Close()

	status, _ := l.Status()
	if status != StatusOffline {
		t.Fatalf("status = %q, want %q", status, StatusOffline)
	}

	q, err := l.Adjust("Be Prepared", VariantRegular, 2)
	if err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if q.Regular != 2 {
		t.Errorf("Regular = %d, want 2; offline ledger must still mutate", q.Regular)
	}
}

func TestHydrateReplacesEntries(t *testing.T) {
	store := NewMemoryStore()
	store.Upsert(context.Background(), "user-1", "Elsa - Snow Queen", Quantities{Regular: 2, Foil: 1})
	store.Upsert(context.Background(), "user-1", "Empty Row", Quantities{})

	l := newTestLedger(t, store)
	l.Adjust("Leftover Card", VariantRegular, 9)

	if err := l.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}

	if l.UniqueCards() != 1 {
		t.Errorf("UniqueCards() = %d, want 1 (zero rows dropped, old entries replaced)", l.UniqueCards())
	}
	if got := l.Quantities("Elsa - Snow Queen"); got.Regular != 2 || got.Foil != 1 {
		t.Errorf("hydrated quantities = %+v", got)
	}
	status, _ := l.Status()
	if status != StatusIdle {
		t.Errorf("status = %q, want %q", status, StatusIdle)
	}
}

func TestHydrateFailureKeepsEntries(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(t, store)
	l.Adjust("Be Prepared", VariantRegular, 1)
	flush(t, l)

	store.FailNext = errors.New("load failed")
	if err := l.Hydrate(context.Background()); err == nil {
		t.Fatal("Hydrate() should propagate the store error")
	}
	if l.TotalCards() != 1 {
		t.Errorf("TotalCards() = %d, want 1; failed hydration must not wipe state", l.TotalCards())
	}
	status, _ := l.Status()
	if status != StatusError {
		t.Errorf("status = %q, want %q", status, StatusError)
	}
}

func TestRetainedSet(t *testing.T) {
	l := newTestLedger(t, NewMemoryStore())

	l.Retain("Elsa - Snow Queen")
	l.Retain("Dragon Fire")
	set := l.Retained()
	if len(set) != 2 || !set["Elsa - Snow Queen"] {
		t.Errorf("Retained() = %v", set)
	}

	l.ClearRetained()
	if len(l.Retained()) != 0 {
		t.Error("ClearRetained() should empty the set")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(t, store)
	l.Adjust("Elsa - Snow Queen", VariantRegular, 4)
	l.Adjust("Mickey Mouse - True Friend", VariantFoil, 2)

	var buf bytes.Buffer
	if err := l.Export(&buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	other := newTestLedger(t, NewMemoryStore())
	other.Adjust("Junk Card", VariantRegular, 1)
	n, err := other.Import(&buf)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Import() = %d entries, want 2", n)
	}
	if other.UniqueCards() != 2 {
		t.Errorf("UniqueCards() = %d, want 2; import replaces wholesale", other.UniqueCards())
	}
	if other.Quantities("Junk Card").Total() != 0 {
		t.Error("pre-import entries must be gone")
	}
}

func TestClearEmptiesLedgerAndStore(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(t, store)
	l.Adjust("Elsa - Snow Queen", VariantRegular, 4)
	flush(t, l)

	l.Clear()
	flush(t, l)

	if l.TotalCards() != 0 {
		t.Errorf("TotalCards() = %d, want 0", l.TotalCards())
	}
	if rows := store.Rows("user-1"); len(rows) != 0 {
		t.Errorf("store rows = %v, want none", rows)
	}
}

// A bulk replace enqueues one op per entry, which can overrun a small
// mirror queue. The enqueue must wait for the worker rather than drop
// ops, so every entry still reaches the store.
func TestReplaceBurstLargerThanQueue(t *testing.T) {
	store := NewMemoryStore()
	l := NewLedger(Config{
		UserID:    "user-1",
		Store:     store,
		QueueSize: 4,
		SyncRate:  1000,
	})
	t.Cleanup(l.Close)

	entries := make(map[string]Quantities, 20)
	for i := 0; i < 20; i++ {
		entries[fmt.Sprintf("Card %02d", i)] = Quantities{Regular: 1}
	}
	l.Replace(entries)
	flush(t, l)

	if rows := store.Rows("user-1"); len(rows) != 20 {
		t.Fatalf("store rows = %d, want 20", len(rows))
	}
	status, err := l.Status()
	if status != StatusIdle || err != nil {
		t.Errorf("Status() = %v, %v, want idle with no error", status, err)
	}
}
