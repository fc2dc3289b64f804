package recipes

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ExtractFunc extracts the recipes of a document
type ExtractFunc func(doc Document) []*Definition

type cacheEntry struct {
	version int
	recipes []*Definition
}

// Cache memoizes extraction per document URI and version. An entry is only
// returned while its version matches the document's.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	// epoch counts invalidations; a fill started in an older epoch is not stored
	epoch   uint64
	group   singleflight.Group
	extract ExtractFunc
}

// NewCache creates a cache around extract; nil means ExtractDocument.
func NewCache(extract ExtractFunc) *Cache {
	if extract == nil {
		extract = ExtractDocument
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		extract: extract,
	}
}

// Parse returns the recipes of doc, extracting them only when the cached
// entry is missing or was built from another version.
func (c *Cache) Parse(doc Document) []*Definition {
	uri, version := doc.URI(), doc.Version()
	if recipes, ok := c.lookup(uri, version); ok {
		return recipes
	}

	v, _, _ := c.group.Do(fmt.Sprintf("%s@%d", uri, version), func() (any, error) {
		if recipes, ok := c.lookup(uri, version); ok {
			return recipes, nil
		}
		c.mu.RLock()
		epoch := c.epoch
		c.mu.RUnlock()

		recipes := c.extract(doc)
		c.mu.Lock()
		if c.epoch == epoch {
			c.entries[uri] = cacheEntry{version: version, recipes: recipes}
		}
		c.mu.Unlock()
		return recipes, nil
	})
	recipes, _ := v.([]*Definition)
	return recipes
}

func (c *Cache) lookup(uri string, version int) ([]*Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[uri]
	if !ok || e.version != version {
		return nil, false
	}
	return e.recipes, true
}

// Invalidate drops the entry for uri. Fills already in flight return their
// result without storing it.
func (c *Cache) Invalidate(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	delete(c.entries, uri)
}

// InvalidateAll drops every entry
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	clear(c.entries)
}

// Len returns the number of cached documents
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
