package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pupbiru/humanitix-auto-codes/internal/ledger/filestore"
)

func TestMissingFileIsEmptyLedger(t *testing.T) {
	store := filestore.New(filepath.Join(t.TempDir(), "state.json"))

	marker, err := store.Get(context.Background(), "ev1")

	assert.NoError(t, err)
	assert.Empty(t, marker)
}

func TestCorruptFileIsEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := filestore.New(path)
	marker, err := store.Get(context.Background(), "ev1")

	assert.NoError(t, err)
	assert.Empty(t, marker)
}

func TestSetPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	store := filestore.New(path)
	assert.NoError(t, store.Set(ctx, "ev1", "abc123"))

	// A fresh store sees the committed marker.
	reopened := filestore.New(path)
	marker, err := reopened.Get(ctx, "ev1")
	assert.NoError(t, err)
	assert.Equal(t, "abc123", string(marker))

	marker, err = reopened.Get(ctx, "ev2")
	assert.NoError(t, err)
	assert.Empty(t, marker)
}

func TestSetOverwritesMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	store := filestore.New(path)
	assert.NoError(t, store.Set(ctx, "ev1", "old"))
	assert.NoError(t, store.Set(ctx, "ev1", "new"))

	marker, err := filestore.New(path).Get(ctx, "ev1")
	assert.NoError(t, err)
	assert.Equal(t, "new", string(marker))
}
