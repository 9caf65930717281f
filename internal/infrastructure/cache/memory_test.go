package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "meetings:stats", "payload", time.Minute))

	value, ok, err := store.Get(ctx, "meetings:stats")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "payload", value)

	require.NoError(t, store.Delete(ctx, "meetings:stats", "missing"))

	_, ok, err = store.Get(ctx, "meetings:stats")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Expiration(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))

	now = now.Add(2 * time.Minute)
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	store.removeExpired()
	store.mu.RLock()
	assert.Empty(t, store.items)
	store.mu.RUnlock()
}
