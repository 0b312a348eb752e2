package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_Expiry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewCache[int](ctx, time.Minute)
	now := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.sweep()
	assert.Equal(t, 0, c.Len())
}

func TestCache_ClearAndNil(t *testing.T) {
	c := NewCache[string](context.Background(), 0)
	assert.Equal(t, time.Hour, c.ttl)
	c.Set("k", "v")
	c.Clear()
	_, ok := c.Get("k")
	assert.False(t, ok)

	var nilCache *Cache[string]
	nilCache.Set("k", "v")
	_, ok = nilCache.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, nilCache.Len())
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, CacheKey("a", "b"), CacheKey("a", "b"))
	assert.NotEqual(t, CacheKey("ab", ""), CacheKey("a", "b"))
	assert.Len(t, CacheKey("x"), 64)
}
