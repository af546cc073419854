package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingCache(t *testing.T, ttl time.Duration) (*PendingCountCache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewPendingCountCache(rdb, ttl, nil), s
}

func TestPendingCountCache_RoundTrip(t *testing.T) {
	c, s := newPendingCache(t, time.Minute)
	ctx := context.Background()

	_, gen, ok := c.Load(ctx)
	assert.False(t, ok, "empty cache should miss")
	assert.Equal(t, "0", gen)

	c.Store(ctx, 7, gen)
	n, _, ok := c.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), n)
	assert.True(t, s.TTL(PendingCountKey) > 0)

	c.Invalidate(ctx)
	_, gen, ok = c.Load(ctx)
	assert.False(t, ok)
	assert.Equal(t, "1", gen)
}

func TestPendingCountCache_InvalidateBetweenReadAndStoreWins(t *testing.T) {
	c, s := newPendingCache(t, time.Minute)
	ctx := context.Background()

	// reader misses and goes to the database
	_, gen, ok := c.Load(ctx)
	require.False(t, ok)

	// a write commits and invalidates before the reader stores its stale count
	c.Invalidate(ctx)
	c.Store(ctx, 5, gen)

	assert.False(t, s.Exists(PendingCountKey), "stale count must not be cached")
	_, gen, ok = c.Load(ctx)
	assert.False(t, ok)

	c.Store(ctx, 4, gen)
	n, _, ok := c.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(4), n)
}

func TestPendingCountCache_Expires(t *testing.T) {
	c, s := newPendingCache(t, 10*time.Second)
	ctx := context.Background()
	_, gen, _ := c.Load(ctx)
	c.Store(ctx, 3, gen)

	s.FastForward(11 * time.Second)
	_, _, ok := c.Load(ctx)
	assert.False(t, ok)
}

func TestPendingCountCache_NonPositiveTTLFallsBack(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Second} {
		c, s := newPendingCache(t, ttl)
		ctx := context.Background()
		_, gen, _ := c.Load(ctx)
		c.Store(ctx, 2, gen)

		got := s.TTL(PendingCountKey)
		assert.True(t, got > 0 && got <= defaultPendingTTL, "ttl %v stored as %v", ttl, got)
	}
}

func TestPendingCountCache_RedisDownIsAMiss(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	s.Close()

	c := NewPendingCountCache(rdb, time.Minute, nil)
	ctx := context.Background()
	c.Store(ctx, 1, "0")
	c.Invalidate(ctx)
	_, gen, ok := c.Load(ctx)
	assert.False(t, ok)
	assert.Empty(t, gen)
}

func TestPendingCountCache_GarbageValueIsAMiss(t *testing.T) {
	c, s := newPendingCache(t, time.Minute)

	require.NoError(t, s.Set(PendingCountKey, "nope"))
	_, _, ok := c.Load(context.Background())
	assert.False(t, ok)
}
