package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/domain"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	cart, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Entries)

	require.NoError(t, st.Save(ctx, testCart(t)))

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Entries, 2)
}

func TestMemoryStore_RejectsBadEntriesOnLoad(t *testing.T) {
	st := NewMemoryStore()
	st.raw = []byte(`{"version":1,"entries":[{"product":{"id":""},"quantity":0}]}`)

	cart, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cart.Entries)
	assert.Nil(t, st.raw)
}

func TestDecodeSnapshot_Validation(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"truncated json", `{"version":1,"ent`},
		{"wrong version", `{"version":2,"entries":[]}`},
		{"zero quantity", `{"version":1,"entries":[{"product":{"id":"p1"},"quantity":0}]}`},
		{"missing identity", `{"version":1,"entries":[{"product":{"id":""},"quantity":1}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeSnapshot([]byte(tc.raw))
			assert.ErrorIs(t, err, errBadSnapshot)
		})
	}
}

func TestEncodeSnapshot_StampsCurrentVersion(t *testing.T) {
	cart := domain.Cart{} // zero version
	raw, err := encodeSnapshot(cart)
	require.NoError(t, err)

	decoded, err := decodeSnapshot(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.SnapshotVersion, decoded.Version)
}
