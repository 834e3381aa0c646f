// Package storage provides the string key/value persistence slots that the
// mood, journal and gamification state holders serialize themselves into.
package storage

import (
	"context"
	"sync"
)

// Well-known slot keys.
const (
	KeyJournalEntries = "journal-entries"
	KeyCurrentMood    = "current-mood"
	KeyGameProgress   = "game-progress"
)

// Store is an opaque get/set string store. Get reports ok == false when the
// key has never been written.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore keeps slots in process memory. The zero value is ready to use.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slots == nil {
		s.slots = make(map[string]string)
	}
	s.slots[key] = value
	return nil
}
