package store

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/domain"
	"shopfront/pkg/logger"
)

// decimals carry unexported fields, compare them by value.
var decimalCmp = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(t.TempDir(), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testCart(t *testing.T) domain.Cart {
	t.Helper()
	cart := domain.Empty()
	cart.Entries = []domain.CartEntry{
		{
			Product:  domain.Product{ID: "p1", Name: "keyboard", Price: decimal.RequireFromString("49.90")},
			Quantity: 2,
		},
		{
			Product:  domain.Product{ID: "p2", Name: "mouse", Price: decimal.RequireFromString("19.00"), ImageURL: "https://cdn/p2.png"},
			Quantity: 1,
		},
	}
	return cart
}

func TestSQLiteStore_LoadEmpty(t *testing.T) {
	st := setupSQLite(t)

	cart, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cart.Entries)
	assert.Equal(t, domain.SnapshotVersion, cart.Version)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	st := setupSQLite(t)
	ctx := context.Background()
	original := testCart(t)

	require.NoError(t, st.Save(ctx, original))

	loaded, err := st.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(original.Entries, loaded.Entries, decimalCmp); diff != "" {
		t.Errorf("entries mismatch after reload (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_RoundTripSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	original := testCart(t)

	st, err := NewSQLiteStore(dir, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, original))
	require.NoError(t, st.Close())

	// Simulates a page reload: a fresh process hydrating from the same file.
	st2, err := NewSQLiteStore(dir, logger.NewNop())
	require.NoError(t, err)
	defer st2.Close()

	loaded, err := st2.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(original.Entries, loaded.Entries, decimalCmp); diff != "" {
		t.Errorf("entries mismatch after reopen (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_CorruptedSnapshotFailsSoft(t *testing.T) {
	st := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, testCart(t)))

	// Clobber the record with unparseable bytes.
	_, err := st.db.ExecContext(ctx, `UPDATE kv SET value = ? WHERE key = ?`, []byte("{not json"), CartKey)
	require.NoError(t, err)

	cart, err := st.Load(ctx)
	require.NoError(t, err, "corruption must never surface to the caller")
	assert.Empty(t, cart.Entries)

	// The corrupted record was deleted.
	var n int
	require.NoError(t, st.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv WHERE key = ?`, CartKey).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestSQLiteStore_UnknownVersionFailsSoft(t *testing.T) {
	st := setupSQLite(t)
	ctx := context.Background()

	_, err := st.db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`,
		CartKey, []byte(`{"version":99,"entries":[]}`))
	require.NoError(t, err)

	cart, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Entries)
}

func TestSQLiteStore_SaveOverwrites(t *testing.T) {
	st := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, testCart(t)))
	require.NoError(t, st.Save(ctx, domain.Empty()))

	cart, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Entries)
}
