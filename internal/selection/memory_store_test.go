package selection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// Unknown user loads empty, not an error.
	got, err := store.Load(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Save(ctx, "user-1", "session-a"))
	got, err = store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "session-a", got)

	// Saving again overwrites.
	require.NoError(t, store.Save(ctx, "user-1", "session-b"))
	got, err = store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "session-b", got)
}

func TestMemoryStoreIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, "user-1", "session-a"))

	got, err := store.Load(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, got)
}
