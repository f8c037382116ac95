package dataset

import (
	"sync"

	"github.com/Latifa2025-star/311calls/internal/types"
)

// LoadFunc turns a source identity (path or URL) into a normalized,
// derived record set.
type LoadFunc func(source string) ([]types.Record, error)

// Cache memoizes normalized record sets keyed by data-source identity.
// A source is loaded at most once per process; the stored slice is
// treated as immutable by every consumer.
type Cache struct {
	mu      sync.Mutex
	load    LoadFunc
	entries map[string][]types.Record
}

func NewCache(load LoadFunc) *Cache {
	return &Cache{load: load, entries: make(map[string][]types.Record)}
}

// Get returns the cached record set for source, loading it on first use.
// A failed load is not cached, so a caller may retry.
func (c *Cache) Get(source string) ([]types.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if records, ok := c.entries[source]; ok {
		return records, nil
	}
	records, err := c.load(source)
	if err != nil {
		return nil, err
	}
	c.entries[source] = records
	return records, nil
}
