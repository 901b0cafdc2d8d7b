package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheService(client, ttl), mr
}

func TestCacheFieldRoundTrip(t *testing.T) {
	cache, mr := newRedisCache(t, time.Minute)
	ctx := context.Background()

	var got map[string]int
	hit, err := cache.GetField(ctx, "k", "f", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.SetField(ctx, "k", "f", map[string]int{"a": 1}))
	hit, err = cache.GetField(ctx, "k", "f", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, map[string]int{"a": 1}, got)

	assert.True(t, mr.Exists(CacheKeyPrefix+"k"))
	assert.Equal(t, time.Minute, mr.TTL(CacheKeyPrefix+"k"))

	mr.FastForward(2 * time.Minute)
	hit, err = cache.GetField(ctx, "k", "f", &got)
	require.NoError(t, err)
	assert.False(t, hit, "expired")
}

func TestCacheDeleteDropsAllFields(t *testing.T) {
	cache, _ := newRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.SetField(ctx, "k", "a", 1))
	require.NoError(t, cache.SetField(ctx, "k", "b", 2))
	require.NoError(t, cache.Delete(ctx, "k"))

	var v int
	for _, field := range []string{"a", "b"} {
		hit, err := cache.GetField(ctx, "k", field, &v)
		require.NoError(t, err)
		assert.False(t, hit, field)
	}
}

func TestDisabledCacheIsNoop(t *testing.T) {
	cache := NewCacheService(nil, 0)
	ctx := context.Background()

	assert.False(t, cache.Enabled())
	require.NoError(t, cache.SetField(ctx, "k", "f", 1))
	var v int
	hit, err := cache.GetField(ctx, "k", "f", &v)
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, cache.Delete(ctx, "k"))
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "summary:42", CacheKey("summary", "42"))
}

func TestCacheGenerations(t *testing.T) {
	cache, mr := newRedisCache(t, time.Minute)
	ctx := context.Background()

	gen, err := cache.Generation(ctx, "k")
	require.NoError(t, err)
	assert.Zero(t, gen)

	require.NoError(t, cache.SetField(ctx, VersionedKey("k", gen), "f", 1))
	require.NoError(t, cache.Bump(ctx, "k"))
	require.NoError(t, cache.Bump(ctx, "k"))

	gen, err = cache.Generation(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)
	assert.Equal(t, "k:g2", VersionedKey("k", gen))

	var v int
	hit, err := cache.GetField(ctx, VersionedKey("k", gen), "f", &v)
	require.NoError(t, err)
	assert.False(t, hit, "older generations are not visible")
	assert.True(t, mr.Exists(CacheKeyPrefix+"k:g0"), "Bump alone leaves the old hash to its TTL")
}

func TestDisabledCacheGenerations(t *testing.T) {
	cache := NewCacheService(nil, 0)
	gen, err := cache.Generation(context.Background(), "k")
	require.NoError(t, err)
	assert.Zero(t, gen)
	require.NoError(t, cache.Bump(context.Background(), "k"))
}
