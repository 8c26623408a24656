package collection

import (
	"context"
	"time"

	"github.com/inkwellhq/lorcana-companion/internal/events"
)

// SyncStatus categorizes the ledger's relationship to its store.
type SyncStatus string

const (
	// StatusIdle means the ledger is hydrated and no mirror failure is
	// outstanding.
	StatusIdle SyncStatus = "idle"
	// StatusLoading means the initial hydration from the store is in
	// progress.
	StatusLoading SyncStatus = "loading"
	// StatusError means the last store operation failed; local state is
	// still authoritative.
	StatusError SyncStatus = "error"
	// StatusOffline means the ledger has no store or no signed-in user
	// and works purely in memory.
	StatusOffline SyncStatus = "offline"
)

// Store persists ledger rows keyed by user and card identity. Implementations
// must be safe for concurrent use; the ledger calls them only from its
// worker goroutine and from Hydrate.
type Store interface {
	Upsert(ctx context.Context, userID, cardName string, q Quantities) error
	Delete(ctx context.Context, userID, cardName string) error
	DeleteAll(ctx context.Context, userID string) error
	LoadAll(ctx context.Context, userID string) (map[string]Quantities, error)
}

type opKind int

const (
	opUpsert opKind = iota
	opDelete
	opDeleteAll
)

type syncOp struct {
	kind       opKind
	cardName   string
	quantities Quantities
}

const storeOpTimeout = 10 * time.Second

// Status returns the current sync status and the last store error, if any.
func (l *Ledger) Status() (SyncStatus, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status, l.lastErr
}

func (l *Ledger) setStatus(status SyncStatus, err error) {
	l.mu.Lock()
	changed := l.status != status
	l.status = status
	l.lastErr = err
	l.mu.Unlock()

	if !changed {
		return
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	l.dispatch(events.Event{
		Type: events.TypeSyncStatus,
		Data: events.SyncStatusEvent{Status: string(status), Error: msg},
	})
}

// Hydrate replaces the ledger's entries with the store's rows for the
// configured user. On failure the ledger keeps its current entries and
// reports error status.
func (l *Ledger) Hydrate(ctx context.Context) error {
	if l.store == nil {
		return nil
	}
	l.setStatus(StatusLoading, nil)

	rows, err := l.store.LoadAll(ctx, l.userID)
	if err != nil {
		l.setStatus(StatusError, err)
		return err
	}

	l.mu.Lock()
	l.entries = make(map[string]Quantities, len(rows))
	for name, q := range rows {
		if !q.IsZero() {
			l.entries[name] = q
		}
	}
	count := len(l.entries)
	l.mu.Unlock()

	l.setStatus(StatusIdle, nil)
	l.logger.Info("collection hydrated", "user", l.userID, "entries", count)
	return nil
}

func (l *Ledger) enqueue(op syncOp) {
	if l.queue == nil {
		return
	}
	// Import bursts can outrun the rate-limited worker. Block until the
	// queue has room: dropping an op would leave the store missing rows
	// with nothing in the sync status to show for it. Local state is
	// already updated, so only the caller's response is delayed.
	select {
	case l.queue <- op:
		l.pending.Add(1)
	case <-l.done:
	}
}

func (l *Ledger) syncWorker() {
	defer l.wg.Done()
	for {
		select {
		case <-l.done:
			l.drainQueue()
			return
		case op := <-l.queue:
			l.applyOp(op)
		}
	}
}

// drainQueue flushes whatever is pending at shutdown without waiting for
// new operations.
func (l *Ledger) drainQueue() {
	for {
		select {
		case op := <-l.queue:
			l.applyOp(op)
		default:
			return
		}
	}
}

func (l *Ledger) applyOp(op syncOp) {
	defer l.pending.Add(-1)
	if err := l.limiter.Wait(context.Background()); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeOpTimeout)
	defer cancel()

	var err error
	switch op.kind {
	case opUpsert:
		err = l.store.Upsert(ctx, l.userID, op.cardName, op.quantities)
	case opDelete:
		err = l.store.Delete(ctx, l.userID, op.cardName)
	case opDeleteAll:
		err = l.store.DeleteAll(ctx, l.userID)
	}

	if err != nil {
		l.logger.Error("collection sync failed", "card", op.cardName, "error", err)
		l.setStatus(StatusError, err)
		return
	}
	l.setStatus(StatusIdle, nil)
}

// Flush blocks until every operation enqueued before the call has been
// applied, or the context expires. Intended for tests and shutdown.
func (l *Ledger) Flush(ctx context.Context) error {
	if l.queue == nil {
		return nil
	}
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		if l.pending.Load() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close stops the sync worker after draining pending operations.
func (l *Ledger) Close() {
	select {
	case <-l.done:
		return
	default:
	}
	close(l.done)
	l.wg.Wait()
}
