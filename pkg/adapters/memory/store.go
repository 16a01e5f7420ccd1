// Package memory provides an in-memory HistoryStore. It is the default
// journal backend and the reference implementation for the port contract.
package memory

import (
	"context"
	"sync"

	"github.com/caddan/ordna/pkg/domain"
)

// Store implements ports.HistoryStore in memory.
// Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string][]domain.Decision
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]domain.Decision),
	}
}

// Append adds a decision to the session's journal.
func (s *Store) Append(ctx context.Context, sessionID string, d domain.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = append(s.data[sessionID], d)
	return nil
}

// List returns a copy of the journal so callers cannot mutate store state.
func (s *Store) List(ctx context.Context, sessionID string) ([]domain.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	journal := s.data[sessionID]
	out := make([]domain.Decision, len(journal))
	copy(out, journal)
	return out, nil
}

// Delete removes the journal for a session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}
