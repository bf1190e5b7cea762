package core

import (
	"context"
	"encoding/json"
	"fmt"
)

// Kind identifies one of the asset collections managed by the catalog.
type Kind string

const (
	KindPattern  Kind = "patterns"
	KindPlaylist Kind = "playlists"
)

// IndexKey returns the fixed object key of the collection's JSON index.
func (k Kind) IndexKey() string {
	return string(k) + ".json"
}

// UsersKey is the object key of the credential database. It is read-only
// to this service; records are provisioned out-of-band.
const UsersKey = "users.json"

// PatternDataKey returns the object key of a pattern's data blob.
func PatternDataKey(id string) string {
	return "patterns/" + id
}

// PatternThumbKey returns the object key of a pattern's PNG thumbnail.
func PatternThumbKey(id string) string {
	return "patterns/thumbs/" + id + ".png"
}

type (
	// Entry is one catalog record. The UUID is the uniqueness key within a
	// collection; all other fields are asset metadata this layer carries
	// verbatim, so new metadata never requires a schema change here.
	Entry struct {
		UUID   string
		Fields map[string]json.RawMessage
	}

	// ObjectStore is the persistence contract the catalog is built on:
	// whole-object get and put by key. No listing, no ranges, no
	// conditional writes — a put is an unconditional overwrite.
	ObjectStore interface {
		Get(ctx context.Context, key string) ([]byte, error)
		Put(ctx context.Context, key string, data []byte) error
	}
)

func (e Entry) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(e.Fields)+1)
	for k, v := range e.Fields {
		out[k] = v
	}
	id, err := json.Marshal(e.UUID)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entry uuid: %v", err)
	}
	out["uuid"] = id
	return json.Marshal(out)
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields["uuid"]; ok {
		if err := json.Unmarshal(raw, &e.UUID); err != nil {
			return fmt.Errorf("entry uuid is not a string: %v", err)
		}
		delete(fields, "uuid")
	}
	e.Fields = fields
	return nil
}
