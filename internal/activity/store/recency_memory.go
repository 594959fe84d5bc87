package store

import (
	"context"
	"sync"
	"time"
)

// MemoryRecencyStore is the single-process fallback when Redis is not
// configured. Entries never expire; the map stays small (one entry per user).
type MemoryRecencyStore struct {
	mu   sync.RWMutex
	last map[int64]time.Time
}

// NewMemoryRecency creates an empty in-memory recency store.
func NewMemoryRecency() *MemoryRecencyStore {
	return &MemoryRecencyStore{last: make(map[int64]time.Time)}
}

func (s *MemoryRecencyStore) Touch(ctx context.Context, userID int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[userID] = at.UTC()
	return nil
}

func (s *MemoryRecencyStore) LastPracticedAt(ctx context.Context, userID int64) (*time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	at, ok := s.last[userID]
	if !ok {
		return nil, nil
	}
	return &at, nil
}
