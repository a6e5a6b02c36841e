package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Symbol string  `json:"symbol"`
	Score  float64 `json:"score"`
}

func TestMemoryCacheRoundTripsStructs(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "a", payload{Symbol: "AAPL", Score: 72.5}, time.Minute))

	var got payload
	require.NoError(t, mc.Get(ctx, "a", &got))
	assert.Equal(t, payload{Symbol: "AAPL", Score: 72.5}, got)

	var s string
	require.NoError(t, mc.Get(ctx, "a", &s))
	assert.JSONEq(t, `{"symbol":"AAPL","score":72.5}`, s)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }

	require.NoError(t, mc.Set(ctx, "k", "v", time.Second))
	ok, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	var v string
	assert.ErrorIs(t, mc.Get(ctx, "k", &v), ErrCacheMiss)
	assert.Equal(t, 0, mc.Len())
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }

	require.NoError(t, mc.Set(ctx, "a", 1, time.Hour))
	now = now.Add(time.Second)
	require.NoError(t, mc.Set(ctx, "b", 2, time.Hour))
	now = now.Add(time.Second)

	var n int
	require.NoError(t, mc.Get(ctx, "a", &n))
	now = now.Add(time.Second)

	require.NoError(t, mc.Set(ctx, "c", 3, time.Hour))

	assert.ErrorIs(t, mc.Get(ctx, "b", &n), ErrCacheMiss)
	require.NoError(t, mc.Get(ctx, "a", &n))
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, mc.Len())
}

func TestMemoryCacheCleanupSweepsExpired(t *testing.T) {
	mc := NewMemoryCache(WithMemoryCleanup(10 * time.Millisecond))
	defer mc.Close()

	require.NoError(t, mc.Set(context.Background(), "k", 1, time.Millisecond))
	assert.Eventually(t, func() bool { return mc.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryCacheZeroCleanupInterval(t *testing.T) {
	assert.NotPanics(t, func() {
		mc := NewMemoryCache(WithMemoryCleanup(0))
		_ = mc.Close()
	})
}

func TestMemoryCacheDeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "analysis:AAPL:balanced", 1, 0))
	require.NoError(t, mc.Set(ctx, "analysis:AAPL:aggressive", 2, 0))
	require.NoError(t, mc.Set(ctx, "analysis:MSFT:balanced", 3, 0))

	require.NoError(t, mc.DeleteByPattern(ctx, "analysis:AAPL:*"))
	assert.Equal(t, 1, mc.Len())
}

func TestMemoryCacheLock(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	ok, err := mc.TryLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mc.TryLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mc.Unlock(ctx, "lock"))
	ok, err = mc.TryLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLayeredCachePromotesFromL2(t *testing.T) {
	ctx := context.Background()
	l2 := NewMemoryCache()
	lc := NewLayeredCache(l2, WithLayeredMemoryTTL(time.Minute))
	defer lc.Close()

	require.NoError(t, l2.Set(ctx, "k", payload{Symbol: "MSFT", Score: 40}, time.Hour))

	var got payload
	require.NoError(t, lc.Get(ctx, "k", &got))
	assert.Equal(t, "MSFT", got.Symbol)

	ok, err := lc.l1.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, lc.Delete(ctx, "k"))
	assert.ErrorIs(t, lc.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "analysis:AAPL:balanced:short:365", Key("analysis", "AAPL", "balanced", "short", 365))
	assert.Equal(t, "analysis", Key("analysis"))
}
