package memory

import (
	"context"
	"fmt"
	"sync"

	"sandtable-catalog/core"
)

// memStore is a map-backed ObjectStore. It is the default backend and the
// test double; state is per-instance so tests stay isolated.
type memStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStore creates a new in-memory store.
func NewStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s: %w", key, core.ErrKeyNotFound)
	}
	// Copy so callers cannot mutate stored state.
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *memStore) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[key] = stored
	return nil
}
