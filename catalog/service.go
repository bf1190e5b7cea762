package catalog

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"sandtable-catalog/core"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// Service is the domain layer for the two asset collections. It enforces
// identifier uniqueness on write, persists pattern payloads, and exposes
// the read accessors.
//
// The create path is load → merge → save with no locking: the object
// store's put is last-writer-wins at whole-object granularity, so two
// concurrent creates for the same kind can both observe the pre-write
// index and the later save silently drops the earlier writer's entry.
// Payloads written before a lost or failed index write stay durable and
// are not retracted.
type Service struct {
	catalog *Store
	objects core.ObjectStore
}

// NewService creates the catalog service on top of an object store.
func NewService(objects core.ObjectStore) *Service {
	return &Service{
		catalog: NewStore(objects),
		objects: objects,
	}
}

// CreateEntry merges a new entry into a kind's collection and persists the
// result. If the entry carries no identifier, a fresh ULID is minted.
// Returns the identifier of the created entry.
func (s *Service) CreateEntry(ctx context.Context, kind core.Kind, entry core.Entry) (string, error) {
	if entry.UUID == "" {
		entry.UUID = ulid.Make().String()
	}

	entries, err := s.catalog.Load(ctx, kind)
	if err != nil {
		return "", err
	}

	if err := s.catalog.Save(ctx, kind, merge(entry, entries)); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"kind": kind,
		"uuid": entry.UUID,
	}).Info("Entry created")
	return entry.UUID, nil
}

// CreatePattern persists a pattern's payloads and then merges the entry
// into the pattern collection. The data blob is stored as provided; the
// thumbnail is base64-decoded to raw PNG bytes first. The two payload puts
// are sequential and not rolled back: a thumbnail failure leaves the data
// blob behind as an orphan, and an index failure leaves both payloads
// behind. Callers must treat a failed create as possibly partial.
func (s *Service) CreatePattern(ctx context.Context, entry core.Entry, data []byte, thumbBase64 string) (string, error) {
	if entry.UUID == "" {
		entry.UUID = ulid.Make().String()
	}
	log := logrus.WithField("uuid", entry.UUID)

	if err := s.objects.Put(ctx, core.PatternDataKey(entry.UUID), data); err != nil {
		log.WithError(err).Error("Failed to write pattern data")
		return "", fmt.Errorf("pattern %s: %w: %v", entry.UUID, core.ErrDataWrite, err)
	}

	thumb, err := base64.StdEncoding.DecodeString(thumbBase64)
	if err != nil {
		return "", fmt.Errorf("pattern %s: %w: bad base64: %v", entry.UUID, core.ErrThumbnailWrite, err)
	}
	if err := s.objects.Put(ctx, core.PatternThumbKey(entry.UUID), thumb); err != nil {
		log.WithError(err).Error("Failed to write pattern thumbnail")
		return "", fmt.Errorf("pattern %s: %w: %v", entry.UUID, core.ErrThumbnailWrite, err)
	}

	return s.CreateEntry(ctx, core.KindPattern, entry)
}

// ListEntries returns the full collection for a kind, most recent first.
func (s *Service) ListEntries(ctx context.Context, kind core.Kind) ([]core.Entry, error) {
	return s.catalog.Load(ctx, kind)
}

// GetEntry returns a single entry by identifier. Absence from an existing
// collection is core.ErrEntryNotFound, distinct from core.ErrNotFound on
// the collection itself.
func (s *Service) GetEntry(ctx context.Context, kind core.Kind, id string) (*core.Entry, error) {
	entries, err := s.catalog.Load(ctx, kind)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].UUID == id {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("%s entry %s: %w", kind, id, core.ErrEntryNotFound)
}

// GetPatternData fetches a pattern's data blob. The index is not
// consulted: presence of the payload is independent of the entry.
func (s *Service) GetPatternData(ctx context.Context, id string) ([]byte, error) {
	return s.getPayload(ctx, core.PatternDataKey(id), id)
}

// GetThumbnail fetches a pattern's PNG thumbnail bytes.
func (s *Service) GetThumbnail(ctx context.Context, id string) ([]byte, error) {
	return s.getPayload(ctx, core.PatternThumbKey(id), id)
}

func (s *Service) getPayload(ctx context.Context, key, id string) ([]byte, error) {
	data, err := s.objects.Get(ctx, key)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return nil, fmt.Errorf("payload for %s: %w", id, core.ErrEntryNotFound)
		}
		return nil, fmt.Errorf("failed to get payload for %s: %w", id, err)
	}
	return data, nil
}

// merge prepends the new entry and keeps, per identifier, the first
// occurrence scanning from the front. The new entry therefore replaces any
// prior entry with the same identifier, at the front; all other entries
// retain their relative order.
func merge(entry core.Entry, entries []core.Entry) []core.Entry {
	merged := make([]core.Entry, 0, len(entries)+1)
	seen := make(map[string]bool, len(entries)+1)
	for _, e := range append([]core.Entry{entry}, entries...) {
		if seen[e.UUID] {
			continue
		}
		seen[e.UUID] = true
		merged = append(merged, e)
	}
	return merged
}
