package persist_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripplekit/ripple/persist"
)

// the memory adapter distinguishes a missing key from an empty payload
func TestMemoryAdapter(t *testing.T) {
	m := persist.NewMemoryAdapter()

	_, ok, err := m.Load("absent")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, m.Save("empty", ""))
	data, ok, err := m.Load("empty")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", data)

	assert.NoError(t, m.Save("k", "v1"))
	assert.NoError(t, m.Save("k", "v2"))
	data, ok, err = m.Load("k")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", data)
}

// the bolt adapter round-trips values across reopens
func TestBoltAdapterRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "ripple.db")

	b, err := persist.OpenBolt(filename)
	require.NoError(t, err)
	assert.NoError(t, b.Save("count", "42"))
	assert.NoError(t, b.Close())

	b, err = persist.OpenBolt(filename)
	require.NoError(t, err)
	defer b.Close()

	data, ok, err := b.Load("count")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", data)

	_, ok, err = b.Load("absent")
	assert.NoError(t, err)
	assert.False(t, ok)
}

// Keys lists every persisted key in order
func TestBoltAdapterKeys(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "ripple.db")

	b, err := persist.OpenBolt(filename)
	require.NoError(t, err)
	defer b.Close()

	assert.NoError(t, b.Save("b", "2"))
	assert.NoError(t, b.Save("a", "1"))

	keys, err := b.Keys()
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}
