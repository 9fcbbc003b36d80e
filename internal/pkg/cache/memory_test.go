package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedStats struct {
	Students int64 `json:"students"`
	Tickets  int64 `json:"tickets"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	in := cachedStats{Students: 1200, Tickets: 7}
	require.NoError(t, c.Set(ctx, "stats:overview", in, time.Minute))

	var out cachedStats
	require.NoError(t, c.Get(ctx, "stats:overview", &out))
	assert.Equal(t, in, out)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()

	var out cachedStats
	err := c.Get(context.Background(), "absent", &out)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", cachedStats{}, time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	var out cachedStats
	assert.ErrorIs(t, c.Get(ctx, "k", &out), ErrCacheMiss)
}

func TestMemoryCacheZeroTTLDoesNotExpire(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", cachedStats{Students: 1}, 0))

	var out cachedStats
	require.NoError(t, c.Get(ctx, "k", &out))
	assert.Equal(t, int64(1), out.Students)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", cachedStats{}, time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	var out cachedStats
	assert.ErrorIs(t, c.Get(ctx, "k", &out), ErrCacheMiss)

	// Deleting an absent key is fine
	assert.NoError(t, c.Delete(ctx, "k"))
}
