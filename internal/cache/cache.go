package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Cache stores rendered forecast reports keyed per city and calendar day.
// Entries have no TTL; keys rotate naturally when the calendar day changes,
// so stale entries become unreachable rather than being evicted. The bound is
// one entry per distinct city requested per day. Clear drops everything for
// callers that want explicit rotation.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, report string) error
	Clear(ctx context.Context) error
}

// DayKey builds the cache key for a city on the given day. Keyed by city and
// current calendar day only, not the requested date range: a second request
// for the same city on the same day returns the first rendered report even if
// its range differs. Forecasts shift daily, not per range, so the coarser key
// trades exactness for far fewer provider calls.
func DayKey(city string, now time.Time) string {
	return strings.ToLower(strings.TrimSpace(city)) + "-" + now.Format("2006-01-02")
}

// InMemoryCache implements Cache with a mutex-guarded map. Two requests racing
// the same key may both fetch and the last write wins; that redundant fetch is
// accepted instead of per-key locking.
type InMemoryCache struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewInMemoryCache creates a new in-memory cache instance.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		data: make(map[string]string),
	}
}

// Get retrieves the cached report for the key if present.
func (c *InMemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	report, ok := c.data[key]
	return report, ok, nil
}

// Set stores a rendered report under the key, replacing any previous entry.
func (c *InMemoryCache) Set(ctx context.Context, key string, report string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = report
	return nil
}

// Clear drops all entries. Rotation hook for long-lived processes that would
// otherwise accumulate one unreachable entry per city per day.
func (c *InMemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]string)
	return nil
}

// Len returns the number of entries currently held.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
