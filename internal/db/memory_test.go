package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "fleet")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	data := []byte("[]")
	require.NoError(t, store.Put(ctx, Slot{Key: "fleet", Data: data}))
	data[0] = 'x'

	got, err := store.Get(ctx, "fleet")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got), "stored blob must not alias the caller's slice")
}

func TestOpen(t *testing.T) {
	store, err := Open(context.Background(), Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = Open(context.Background(), Options{Backend: BackendSQLite, SQLitePath: "file:open_test?mode=memory&cache=shared"})
	require.NoError(t, err)
	assert.IsType(t, &GormSlotStore{}, store)
	assert.NoError(t, store.Close(context.Background()))

	_, err = Open(context.Background(), Options{Backend: "floppy"})
	assert.Error(t, err)
}
