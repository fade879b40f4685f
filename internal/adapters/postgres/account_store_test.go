package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/core/domain"
)

// These tests need a live database; they are skipped otherwise.
func newTestStoreDB(t *testing.T) (*DB, *accountStore) {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping postgres store tests")
	}

	ctx := context.Background()
	nopLogger := zerolog.Nop()
	db, err := NewDB(ctx, url, &nopLogger)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	store, err := NewAccountStore(ctx, db, &nopLogger)
	require.NoError(t, err)

	// Each test starts from a clean table.
	_, err = db.pool.Exec(ctx, `DELETE FROM accounts`)
	require.NoError(t, err)

	return db, store.(*accountStore)
}

func TestAccountStore_SaveLoadRoundTrip(t *testing.T) {
	_, store := newTestStoreDB(t)
	ctx := context.Background()

	orig := map[string]*domain.Account{
		"000001": {
			Number:       "000001",
			Name:         "Alice",
			PasswordHash: "digest-a",
			Balance:      30,
			Transactions: []string{"Deposited: $50.0", "Withdrawn: $20.0"},
		},
		"000002": {
			Number:       "000002",
			Name:         "Bob",
			PasswordHash: "digest-b",
			Balance:      0,
		},
	}

	require.NoError(t, store.Save(ctx, orig))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	require.Equal(t, orig, loaded)
}

func TestAccountStore_EmptyTableYieldsEmptyRegistry(t *testing.T) {
	_, store := newTestStoreDB(t)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestAccountStore_SaveIsFullOverwrite(t *testing.T) {
	_, store := newTestStoreDB(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, map[string]*domain.Account{
		"000001": domain.NewAccount("000001", "Alice", "digest", 10),
		"000002": domain.NewAccount("000002", "Bob", "digest", 20),
	}))
	require.NoError(t, store.Save(ctx, map[string]*domain.Account{
		"000001": domain.NewAccount("000001", "Alice", "digest", 15),
	}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 15.0, loaded["000001"].Balance)
}
