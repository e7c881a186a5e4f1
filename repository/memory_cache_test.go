package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", "v", 0))
	val, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "short", "a", time.Minute))
	require.NoError(t, cache.Set(ctx, "forever", "b", 0))

	now = now.Add(59 * time.Second)
	_, ok, _ := cache.Get(ctx, "short")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = cache.Get(ctx, "short")
	assert.False(t, ok, "entry should expire exactly at its deadline")

	_, ok, _ = cache.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, 1, cache.Size())
}

func TestMemoryCache_CleanExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "a", "1", time.Second))
	require.NoError(t, cache.Set(ctx, "b", "2", time.Second))
	require.NoError(t, cache.Set(ctx, "c", "3", time.Hour))

	now = now.Add(2 * time.Second)
	assert.Equal(t, 2, cache.CleanExpired())
	assert.Equal(t, 1, cache.Size())
}

func TestNoopCache(t *testing.T) {
	ctx := context.Background()
	var cache CacheRepository = NoopCache{}

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_ExpiredGetKeepsRefreshedEntry(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return t0 }
	require.NoError(t, cache.Set(ctx, "k", "old", time.Minute))

	// A Set lands between the expiry check and the delete.
	refreshed := false
	cache.now = func() time.Time {
		if !refreshed {
			refreshed = true
			cache.mu.Lock()
			cache.data["k"] = memoryEntry{value: "fresh", expiresAt: t0.Add(time.Hour)}
			cache.mu.Unlock()
		}
		return t0.Add(2 * time.Minute)
	}

	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	val, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fresh", val)
}
