package collection

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and by sessions that
// want persistence without a database.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[string]map[string]Quantities

	// FailNext makes the next store operation return this error, then
	// resets. Lets tests exercise error status transitions.
	FailNext error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]map[string]Quantities)}
}

func (s *MemoryStore) takeErr() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *MemoryStore) Upsert(_ context.Context, userID, cardName string, q Quantities) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return err
	}
	user := s.rows[userID]
	if user == nil {
		user = make(map[string]Quantities)
		s.rows[userID] = user
	}
	user[cardName] = q
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID, cardName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return err
	}
	delete(s.rows[userID], cardName)
	return nil
}

func (s *MemoryStore) DeleteAll(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return err
	}
	delete(s.rows, userID)
	return nil
}

func (s *MemoryStore) LoadAll(_ context.Context, userID string) (map[string]Quantities, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	out := make(map[string]Quantities, len(s.rows[userID]))
	for name, q := range s.rows[userID] {
		out[name] = q
	}
	return out, nil
}

// Rows returns a copy of the stored rows for a user. Test helper.
func (s *MemoryStore) Rows(userID string) map[string]Quantities {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Quantities, len(s.rows[userID]))
	for name, q := range s.rows[userID] {
		out[name] = q
	}
	return out
}
