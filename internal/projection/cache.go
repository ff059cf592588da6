package projection

import (
	"sync"
	"time"
)

// Cache keeps computed projections for a short window so repeated chart
// and review loads do not re-read the store. Entries are invalidated on
// every write to their project; expired entries are removed by the cron
// janitor calling Sweep.
type Cache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]cacheEntry
}

type cacheEntry struct {
	projection *Projection
	expiration time.Time
}

// NewCache creates a cache with the given entry TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:  ttl,
		data: make(map[string]cacheEntry),
	}
}

// Get returns the cached projection for a project id, if fresh.
func (c *Cache) Get(projectID string) (*Projection, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.data[projectID]
	if !ok || time.Now().After(entry.expiration) {
		return nil, false
	}
	return entry.projection, true
}

// Set stores a projection.
func (c *Cache) Set(projectID string, p *Projection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[projectID] = cacheEntry{
		projection: p,
		expiration: time.Now().Add(c.ttl),
	}
}

// Invalidate drops the entry for a project. Called after every section
// or progress write.
func (c *Cache) Invalidate(projectID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, projectID)
}

// Sweep removes expired entries and returns how many were dropped.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, entry := range c.data {
		if now.After(entry.expiration) {
			delete(c.data, id)
			removed++
		}
	}
	return removed
}

// Size returns the number of entries, expired or not.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
