// Package cache is a small in-process view cache. Entries live until a
// mutation explicitly invalidates them; there is no TTL.
package cache

import "sync"

// View keys used across the application.
const (
	KeyCatalog     = "catalog"
	KeyDepartments = "departments"
)

// ViewCache stores rendered view data keyed by name.
type ViewCache struct {
	mu      sync.RWMutex
	entries map[string]any
}

// New creates an empty view cache.
func New() *ViewCache {
	return &ViewCache{entries: make(map[string]any)}
}

// Get returns the cached value for key, if present.
func (c *ViewCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores a value under key.
func (c *ViewCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Invalidate drops the given keys.
func (c *ViewCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}

// Clear drops every entry.
func (c *ViewCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
}
