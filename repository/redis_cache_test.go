package repository

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	cache, err := NewRedisCache(context.Background(), RedisOptions{Addr: s.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return s, cache
}

func TestRedisCache_SetGet(t *testing.T) {
	ctx := context.Background()
	_, cache := newTestRedis(t)

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "schedule:1", `{"a":1}`, 0))
	val, ok, err := cache.Get(ctx, "schedule:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, val)
}

func TestRedisCache_TTL(t *testing.T) {
	ctx := context.Background()
	s, cache := newTestRedis(t)

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	assert.Equal(t, time.Minute, s.TTL("k"))

	s.FastForward(2 * time.Minute)
	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	s, err := miniredis.Run()
	require.NoError(t, err)

	cache := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1}))
	defer cache.Close()
	s.Close()

	_, ok, err := cache.Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, cache.Set(ctx, "k", "v", 0))
}

func TestNewRedisCache_PingFailure(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	addr := s.Addr()
	s.Close()

	_, err = NewRedisCache(context.Background(), RedisOptions{Addr: addr})
	assert.ErrorContains(t, err, "ping redis")
}
