// Package query is the read/write layer for todos. Reads are cached per
// canonical filter key; every successful mutation marks the affected cache
// entries stale so the next read refetches from the server.
package query

import (
	"strings"
	"sync"
)

// Cache key layout. Collection entries share the family prefix so a single
// sweep can invalidate every cached filter combination at once.
const (
	collectionPrefix = "todos?"
	itemPrefix       = "todo/"
	statsKey         = "todos/stats"
)

func collectionKey(filterKey string) string {
	return collectionPrefix + filterKey
}

func itemKey(id string) string {
	return itemPrefix + id
}

// entry is one cached result. A stale entry keeps its value but is never
// served; it exists so invalidation is a flag flip rather than a delete,
// which keeps the "was cached, must refetch" state observable.
type entry struct {
	value any
	stale bool
}

type cache struct {
	mu      sync.Mutex
	entries map[string]entry
}

func newCache() *cache {
	return &cache{entries: make(map[string]entry)}
}

// get returns the cached value for key if it is present and fresh.
func (c *cache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.stale {
		return nil, false
	}
	return e.value, true
}

// put stores a fresh value for key.
func (c *cache) put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value}
}

// invalidate marks a single key stale.
func (c *cache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.stale = true
		c.entries[key] = e
	}
}

// invalidateAll marks every entry stale.
func (c *cache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		e.stale = true
		c.entries[key] = e
	}
}

// invalidateCollections marks every collection entry and the stats entry
// stale in one sweep.
func (c *cache) invalidateCollections() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if strings.HasPrefix(key, collectionPrefix) || key == statsKey {
			e.stale = true
			c.entries[key] = e
		}
	}
}
