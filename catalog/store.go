package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"sandtable-catalog/core"
)

// Store persists one JSON-encoded collection per kind, each under its
// fixed index key. Every save is an unconditional whole-object overwrite:
// the underlying store exposes no conditional-write primitive, so there is
// no version tag to check. See Service for the consequence under
// concurrent writers.
type Store struct {
	objects core.ObjectStore
}

// NewStore creates a catalog store on top of an object store.
func NewStore(objects core.ObjectStore) *Store {
	return &Store{objects: objects}
}

// Load fetches and decodes the collection for a kind. An absent index
// object is core.ErrNotFound — the index must be provisioned before first
// use, absence is never treated as an empty collection.
func (s *Store) Load(ctx context.Context, kind core.Kind) ([]core.Entry, error) {
	data, err := s.objects.Get(ctx, kind.IndexKey())
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return nil, fmt.Errorf("collection %s: %w", kind, core.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load collection %s: %w", kind, err)
	}

	var entries []core.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("collection %s: %w: %v", kind, core.ErrDecode, err)
	}
	return entries, nil
}

// Save serializes the full collection and overwrites the index object in
// one put. On failure the previous index version remains the durable
// value.
func (s *Store) Save(ctx context.Context, kind core.Kind, entries []core.Entry) error {
	if entries == nil {
		entries = []core.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("collection %s: %w: %v", kind, core.ErrStoreWrite, err)
	}
	if err := s.objects.Put(ctx, kind.IndexKey(), data); err != nil {
		return fmt.Errorf("collection %s: %w: %v", kind, core.ErrStoreWrite, err)
	}
	return nil
}
