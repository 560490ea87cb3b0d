// Package cache provides a bounded, TTL-based in-memory cache.
//
// Cache instances are injected into the services that need them so that
// ownership and lifetime are explicit; there is no package-level state.
package cache

import (
	"sync"
	"time"
)

const (
	// DefaultTTL is the default freshness window for entries.
	DefaultTTL = 10 * time.Minute

	// DefaultMaxEntries bounds the cache size; the oldest entry is evicted
	// when the bound is reached.
	DefaultMaxEntries = 256
)

// TTLCache is a string-keyed cache whose entries expire after a fixed TTL.
// It is safe for concurrent use.
type TTLCache[T any] struct {
	ttl        time.Duration
	maxEntries int

	mu      sync.RWMutex
	entries map[string]entry[T]
}

type entry[T any] struct {
	value     T
	fetchedAt time.Time
}

// New creates a TTLCache. Zero values select DefaultTTL and
// DefaultMaxEntries.
func New[T any](ttl time.Duration, maxEntries int) *TTLCache[T] {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if maxEntries == 0 {
		maxEntries = DefaultMaxEntries
	}
	return &TTLCache[T]{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]entry[T]),
	}
}

// TTL returns the freshness window.
func (c *TTLCache[T]) TTL() time.Duration {
	return c.ttl
}

// Get returns the value for key if it is present and still fresh.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Since(e.fetchedAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

// GetStale returns the value for key if it was fetched within the given
// window, ignoring the regular TTL. Used to serve stale data when a
// provider is failing.
func (c *TTLCache[T]) GetStale(key string, within time.Duration) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Since(e.fetchedAt) >= within {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Put stores a value under key, overwriting any prior entry. When the cache
// is at its bound, expired entries are dropped first and then the oldest
// entry is evicted.
func (c *TTLCache[T]) Put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}

	c.entries[key] = entry[T]{value: value, fetchedAt: time.Now()}
}

// evictLocked removes expired entries, or failing that the oldest entry.
// Caller must hold the write lock.
func (c *TTLCache[T]) evictLocked() {
	now := time.Now()
	removed := false
	for k, e := range c.entries {
		if now.Sub(e.fetchedAt) >= c.ttl {
			delete(c.entries, k)
			removed = true
		}
	}
	if removed {
		return
	}

	var oldestKey string
	var oldestAt time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.fetchedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.fetchedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Len returns the number of entries, fresh or stale.
func (c *TTLCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge removes all entries.
func (c *TTLCache[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[T])
}
