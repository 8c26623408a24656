// Package collection implements the in-memory ownership ledger and its
// mirroring to an external row store. The ledger is the source of truth for
// the current session; the store is eventually consistent.
package collection

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/inkwellhq/lorcana-companion/internal/events"
)

// Variant identifies one of the four per-card ownership counters.
type Variant string

const (
	VariantRegular   Variant = "regular"
	VariantFoil      Variant = "foil"
	VariantEnchanted Variant = "enchanted"
	VariantSpecial   Variant = "special"
)

// Quantities holds the owned copy counts of one card identity, per variant.
// Counters never go negative.
type Quantities struct {
	Regular   int `json:"regular"`
	Foil      int `json:"foil"`
	Enchanted int `json:"enchanted"`
	Special   int `json:"special"`
}

// Total returns the sum of all four counters.
func (q Quantities) Total() int {
	return q.Regular + q.Foil + q.Enchanted + q.Special
}

// IsZero reports whether all four counters are zero.
func (q Quantities) IsZero() bool {
	return q.Total() == 0
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (q Quantities) adjusted(variant Variant, delta int) (Quantities, error) {
	switch variant {
	case VariantRegular:
		q.Regular = clamp(q.Regular + delta)
	case VariantFoil:
		q.Foil = clamp(q.Foil + delta)
	case VariantEnchanted:
		q.Enchanted = clamp(q.Enchanted + delta)
	case VariantSpecial:
		q.Special = clamp(q.Special + delta)
	default:
		return q, fmt.Errorf("unknown variant %q", variant)
	}
	return q, nil
}

// Config holds the dependencies and tuning knobs of a Ledger.
type Config struct {
	// UserID keys the rows written to the store. Empty means no signed-in
	// user: the ledger works purely in memory and reports offline status.
	UserID string

	// Store is the external persistence collaborator. Nil disables
	// mirroring entirely.
	Store Store

	// Dispatcher receives collection:changed and sync:status events.
	// Optional.
	Dispatcher *events.Dispatcher

	Logger *slog.Logger

	// QueueSize bounds the pending mirror operations. Default 256.
	QueueSize int

	// SyncRate limits mirror writes per second. Default 20.
	SyncRate rate.Limit
}

// Ledger is the per-session collection state: a map from card identity to
// owned quantities per variant. Mutations apply locally first and are
// mirrored to the store asynchronously; a failed mirror never rolls back
// the local state.
type Ledger struct {
	mu       sync.RWMutex
	entries  map[string]Quantities
	retained map[string]bool

	userID     string
	store      Store
	dispatcher *events.Dispatcher
	logger     *slog.Logger

	status  SyncStatus
	lastErr error

	queue   chan syncOp
	limiter *rate.Limiter
	pending atomic.Int64
	wg      sync.WaitGroup
	done    chan struct{}
}

// NewLedger creates a ledger. When the config carries a store and a user,
// a background worker drains the mirror queue until Close is called.
func NewLedger(cfg Config) *Ledger {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}
	if cfg.SyncRate == 0 {
		cfg.SyncRate = 20
	}

	l := &Ledger{
		entries:    make(map[string]Quantities),
		retained:   make(map[string]bool),
		userID:     cfg.UserID,
		store:      cfg.Store,
		dispatcher: cfg.Dispatcher,
		logger:     cfg.Logger,
		status:     StatusIdle,
		done:       make(chan struct{}),
	}

	if l.store == nil || l.userID == "" {
		l.store = nil
		l.status = StatusOffline
		return l
	}

	l.queue = make(chan syncOp, cfg.QueueSize)
	l.limiter = rate.NewLimiter(cfg.SyncRate, 1)
	l.wg.Add(1)
	go l.syncWorker()
	return l
}

// Quantities returns the owned counts for a card identity, all zero when
// the identity has no entry.
func (l *Ledger) Quantities(fullName string) Quantities {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries[fullName]
}

// TotalOwned returns the summed counters for a card identity. This is the
// ownership lookup the filter engine uses.
func (l *Ledger) TotalOwned(fullName string) int {
	return l.Quantities(fullName).Total()
}

// Adjust applies a delta to one variant counter of a card identity. A
// positive delta on an absent identity creates the entry; a negative delta
// clamps at zero; an entry whose counters all reach zero is removed
// entirely. The local mutation always succeeds before the store mirror is
// enqueued.
func (l *Ledger) Adjust(fullName string, variant Variant, delta int) (Quantities, error) {
	l.mu.Lock()
	current := l.entries[fullName]
	next, err := current.adjusted(variant, delta)
	if err != nil {
		l.mu.Unlock()
		return current, err
	}

	removed := false
	if next.IsZero() {
		if _, existed := l.entries[fullName]; existed {
			delete(l.entries, fullName)
			removed = true
		}
	} else {
		l.entries[fullName] = next
	}
	totalCards, uniqueCards := l.totalsLocked()
	l.mu.Unlock()

	if removed {
		l.enqueue(syncOp{kind: opDelete, cardName: fullName})
	} else if !next.IsZero() || !current.IsZero() {
		l.enqueue(syncOp{kind: opUpsert, cardName: fullName, quantities: next})
	}

	l.dispatch(events.Event{
		Type: events.TypeCollectionChanged,
		Data: events.CollectionChangedEvent{
			FullName:    fullName,
			Variant:     string(variant),
			Delta:       delta,
			TotalCards:  totalCards,
			UniqueCards: uniqueCards,
		},
	})

	return next, nil
}

// TotalCards returns the sum of every counter over all entries.
func (l *Ledger) TotalCards() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total, _ := l.totalsLocked()
	return total
}

// UniqueCards returns the number of entries in the ledger.
func (l *Ledger) UniqueCards() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries returns a copy of the ledger's entries.
func (l *Ledger) Entries() map[string]Quantities {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := make(map[string]Quantities, len(l.entries))
	for name, q := range l.entries {
		entries[name] = q
	}
	return entries
}

func (l *Ledger) totalsLocked() (totalCards, uniqueCards int) {
	for _, q := range l.entries {
		totalCards += q.Total()
	}
	return totalCards, len(l.entries)
}

// Retain marks a card identity as temporarily force-included in filtered
// results, keeping it visible after a mutation that would otherwise drop
// it out of an ownership filter.
func (l *Ledger) Retain(fullName string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.retained[fullName] = true
}

// Retained returns a copy of the retained-card set.
func (l *Ledger) Retained() map[string]bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	set := make(map[string]bool, len(l.retained))
	for name := range l.retained {
		set[name] = true
	}
	return set
}

// ClearRetained empties the retained-card set. Called on an explicit
// user refresh.
func (l *Ledger) ClearRetained() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.retained = make(map[string]bool)
}

func (l *Ledger) dispatch(event events.Event) {
	if l.dispatcher != nil {
		l.dispatcher.Dispatch(event)
	}
}
