package services

import (
	"strings"
	"sync"
	"time"
)

// Cache is a small read cache with per-entry TTL, used to avoid redundant
// collection scans on hot read paths like the dashboard. It is an explicit
// object passed to the call sites that need it, not a package-level ambient;
// invalidation is by exact key or key prefix.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value  any
	expiry time.Time
}

// NewCache creates a cache whose entries live for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached value for key, or (nil, false) when absent or
// expired. Expired entries are evicted on access.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiry) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key with a fresh TTL.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expiry: time.Now().Add(c.ttl)}
}

// Invalidate removes the entry for key, if any.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidatePrefix removes every entry whose key starts with prefix. Write
// paths use this to drop all derived views of the collection at once.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Len reports the number of stored entries, including expired ones not yet
// evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
