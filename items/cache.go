package items

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/curatehub/libcurate-go/registry"
)

// Cache holds fetched item sets keyed by (chain, registry, filter
// signature). Entries never expire; correctness relies on explicit
// invalidation by the caller. The underlying map is safe for concurrent
// use, which Go's runtime makes a requirement rather than an option.
type Cache struct {
	c *gocache.Cache
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{c: gocache.New(gocache.NoExpiration, 0)}
}

// Get returns the cached item set for key, if present.
func (c *Cache) Get(key string) ([]registry.Item, bool) {
	obj, found := c.c.Get(key)
	if !found {
		return nil, false
	}
	return obj.([]registry.Item), true
}

// Set stores an item set under key, overwriting any previous entry.
// Concurrent writers to the same key race benignly: last writer wins,
// consistent with the cache being a read-through optimization rather
// than a source of truth.
func (c *Cache) Set(key string, items []registry.Item) {
	c.c.Set(key, items, gocache.NoExpiration)
}

// Delete removes the entry for key, if present.
func (c *Cache) Delete(key string) {
	c.c.Delete(key)
}

// Flush removes all entries.
func (c *Cache) Flush() {
	c.c.Flush()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.c.ItemCount()
}
