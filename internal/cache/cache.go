// Package cache holds rendered API responses in memory with a TTL and a
// weak ETag per entry.
package cache

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"sync"
	"time"
)

// TTLs by how settled the underlying games are.
const (
	TTLPast  = 24 * time.Hour  // every game on the date is final
	TTLToday = 5 * time.Minute // scores may still change
)

type entry struct {
	data      []byte
	etag      string
	expiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	enabled bool
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// Stats is a point-in-time view of the cache.
type Stats struct {
	Enabled bool `json:"enabled"`
	Keys    int  `json:"keys"`
	Active  int  `json:"active"`
	Expired int  `json:"expired"`
}

// New creates a cache. A disabled cache never stores anything but still
// computes ETags.
func New(enabled bool) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		enabled: enabled,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if enabled {
		go c.evictLoop(5 * time.Minute)
	}
	return c
}

// Close stops the background eviction.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

// Get returns the cached bytes and ETag for key.
func (c *Cache) Get(key string) (data []byte, etag string, ok bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, exists := c.entries[key]
	if !exists || c.now().After(e.expiresAt) {
		return nil, "", false
	}
	return e.data, e.etag, true
}

// Set stores data under key for ttl and returns its ETag.
func (c *Cache) Set(key string, data []byte, ttl time.Duration) string {
	etag := ComputeETag(data)
	if !c.enabled || ttl <= 0 {
		return etag
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		data:      data,
		etag:      etag,
		expiresAt: c.now().Add(ttl),
	}
	return etag
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Stats counts live and expired entries.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	s := Stats{Enabled: c.enabled, Keys: len(c.entries)}
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			s.Active++
		}
	}
	s.Expired = s.Keys - s.Active
	return s
}

func (c *Cache) evictLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.evict()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache) evict() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// ComputeETag returns a weak ETag for data.
func ComputeETag(data []byte) string {
	sum := sha1.Sum(data)
	return fmt.Sprintf(`W/"%x"`, sum[:8])
}

// CheckETagMatch reports whether an If-None-Match header value matches etag.
// The header may list several tags separated by commas.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, tag := range strings.Split(ifNoneMatch, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || tag == etag || "W/"+tag == etag {
			return true
		}
	}
	return false
}
