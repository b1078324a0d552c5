package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pupbiru/humanitix-auto-codes/internal/ledger/db"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	store, err := db.Open("file:" + filepath.Join(t.TempDir(), "ledger.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGetUnknownEventIsEmpty(t *testing.T) {
	store := openTestDB(t)

	marker, err := store.Get(context.Background(), "ev1")

	assert.NoError(t, err)
	assert.Empty(t, marker)
}

func TestSetAndGet(t *testing.T) {
	store := openTestDB(t)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "ev1", "abc123"))

	marker, err := store.Get(ctx, "ev1")
	assert.NoError(t, err)
	assert.Equal(t, "abc123", string(marker))
}

func TestSetUpsertsExistingEvent(t *testing.T) {
	store := openTestDB(t)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "ev1", "old"))
	assert.NoError(t, store.Set(ctx, "ev1", "new"))

	marker, err := store.Get(ctx, "ev1")
	assert.NoError(t, err)
	assert.Equal(t, "new", string(marker))
}

func TestMarkersAreKeyedByEvent(t *testing.T) {
	store := openTestDB(t)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "ev1", "m1"))
	assert.NoError(t, store.Set(ctx, "ev2", "m2"))

	marker, err := store.Get(ctx, "ev1")
	assert.NoError(t, err)
	assert.Equal(t, "m1", string(marker))

	marker, err = store.Get(ctx, "ev2")
	assert.NoError(t, err)
	assert.Equal(t, "m2", string(marker))
}
