package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, now *time.Time) *Cache {
	t.Helper()
	c := New(true)
	c.now = func() time.Time { return *now }
	t.Cleanup(c.Close)
	return c
}

func TestSetGetExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCache(t, &now)

	etag := c.Set("matchups:2025-06-01", []byte(`{"ok":true}`), time.Minute)
	data, got, ok := c.Get("matchups:2025-06-01")
	require.True(t, ok)
	assert.Equal(t, etag, got)
	assert.JSONEq(t, `{"ok":true}`, string(data))

	now = now.Add(2 * time.Minute)
	_, _, ok = c.Get("matchups:2025-06-01")
	assert.False(t, ok)

	s := c.Stats()
	assert.Equal(t, 1, s.Keys)
	assert.Equal(t, 1, s.Expired)

	c.evict()
	assert.Zero(t, c.Stats().Keys)
}

func TestClear(t *testing.T) {
	now := time.Now()
	c := newTestCache(t, &now)
	c.Set("a", []byte("1"), time.Hour)
	c.Set("b", []byte("2"), time.Hour)
	c.Clear()
	assert.Zero(t, c.Stats().Keys)
}

func TestDisabledCache(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Hour)
	assert.Equal(t, ComputeETag([]byte("v")), etag)
	_, _, ok := c.Get("k")
	assert.False(t, ok)
	assert.False(t, c.Stats().Enabled)
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("body"))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.True(t, CheckETagMatch(`W/"other", `+etag, etag))
	assert.True(t, CheckETagMatch(etag[2:], etag), "strong form of a weak tag")
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"nope"`, etag))
}
