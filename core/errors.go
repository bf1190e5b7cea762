package core

import "errors"

// Error taxonomy for the catalog. Callers classify failures with
// errors.Is; everything is wrapped with %w and extra context on the way
// up.
var (
	// ErrKeyNotFound is returned by an ObjectStore when a key does not
	// exist. Every backend maps its native not-found condition to this.
	ErrKeyNotFound = errors.New("key not found")

	// ErrNotFound means a collection's index object is absent. The index
	// is provisioned out-of-band, so this is a service failure for that
	// collection, never an empty-collection default.
	ErrNotFound = errors.New("collection not found")

	// ErrEntryNotFound means an identifier is absent from an existing
	// collection or payload store. Expected outcome, surfaces as a 404.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrDecode means the stored index bytes do not decode as a
	// collection.
	ErrDecode = errors.New("stored collection malformed")

	// ErrStoreWrite means the store rejected the index write. The put is
	// whole-object, so the previous index version remains durable.
	ErrStoreWrite = errors.New("store write failed")

	// ErrDataWrite and ErrThumbnailWrite are the payload-specific write
	// failures for pattern creation.
	ErrDataWrite      = errors.New("pattern data write failed")
	ErrThumbnailWrite = errors.New("thumbnail write failed")
)
