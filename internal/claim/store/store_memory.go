package store

import (
	"context"
	"sync"

	"claimbot/internal/claim"
	"claimbot/pkg/platform/sentinel"
)

// InMemoryStore is the default single-process backend. It intentionally
// favors clarity over performance.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[claim.ConversationID]claim.Record
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{records: make(map[claim.ConversationID]claim.Record)}
}

func (s *InMemoryStore) Find(_ context.Context, id claim.ConversationID) (claim.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.records[id]; ok {
		return rec, nil
	}
	return claim.Record{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Save(_ context.Context, rec claim.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ConversationID] = rec
	return nil
}

func (s *InMemoryStore) Clear(_ context.Context, id claim.ConversationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
