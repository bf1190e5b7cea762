package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryUnmarshal_ExtractsUUID(t *testing.T) {
	var e Entry
	err := json.Unmarshal([]byte(`{"uuid":"p1","name":"Spiral","tags":["calm",7]}`), &e)
	require.NoError(t, err)

	assert.Equal(t, "p1", e.UUID)
	assert.NotContains(t, e.Fields, "uuid")
	assert.JSONEq(t, `"Spiral"`, string(e.Fields["name"]))
	assert.JSONEq(t, `["calm",7]`, string(e.Fields["tags"]))
}

func TestEntryRoundTrip_PreservesUnknownFields(t *testing.T) {
	in := []byte(`{"uuid":"p1","name":"Spiral","meta":{"speed":2.5,"reverse":false}}`)

	var e Entry
	require.NoError(t, json.Unmarshal(in, &e))

	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, string(in), string(out))
}

func TestEntryUnmarshal_MissingUUID(t *testing.T) {
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Spiral"}`), &e))
	assert.Empty(t, e.UUID)
}

func TestEntryUnmarshal_NonStringUUID(t *testing.T) {
	var e Entry
	err := json.Unmarshal([]byte(`{"uuid":42}`), &e)
	assert.Error(t, err)
}

func TestKindKeys(t *testing.T) {
	assert.Equal(t, "patterns.json", KindPattern.IndexKey())
	assert.Equal(t, "playlists.json", KindPlaylist.IndexKey())
	assert.Equal(t, "patterns/p1", PatternDataKey("p1"))
	assert.Equal(t, "patterns/thumbs/p1.png", PatternThumbKey("p1"))
}
