package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIdempotencyCache_GetSet(t *testing.T) {
	c := newIdempotencyCache(time.Minute)
	defer c.Stop()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("k", &cachedResponse{StatusCode: 200, ContentType: "application/json", Body: []byte(`{}`)})

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 200, got.StatusCode)
	assert.Equal(t, "application/json", got.ContentType)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok, "expired entries are not returned")
}

func TestIdempotencyCache_EvictExpired(t *testing.T) {
	c := newIdempotencyCache(time.Minute)
	defer c.Stop()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("old", &cachedResponse{StatusCode: 200})
	now = now.Add(90 * time.Second)
	c.Set("fresh", &cachedResponse{StatusCode: 201})

	c.evictExpired()

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestIdempotencyCache_StopTwice(t *testing.T) {
	c := newIdempotencyCache(time.Minute)
	c.Stop()
	assert.NotPanics(t, c.Stop)
}
