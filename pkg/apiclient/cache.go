package apiclient

import (
	"slices"
	"strings"
	"sync"
)

// Cache stores the latest result of each query by key.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	key   []string
	value any
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

func cacheID(key []string) string {
	return strings.Join(key, "\x1f")
}

// Set stores value under key.
func (c *Cache) Set(key []string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheID(key)] = cacheEntry{key: slices.Clone(key), value: value}
}

// Get returns the value stored under key.
func (c *Cache) Get(key []string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[cacheID(key)]
	return e.value, ok
}

// Invalidate drops every entry whose key starts with prefix and returns how many were removed.
func (c *Cache) Invalidate(prefix ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for id, e := range c.entries {
		if len(e.key) >= len(prefix) && slices.Equal(e.key[:len(prefix)], prefix) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
