package distance

import (
	"math"
	"sync"
	"time"
)

// Cache memoizes formatted distances for a short window. During a drag the
// frontend asks for the same values many times per second; entries live for
// the registry's CalculationCacheTTL and keys are meters rounded to the
// centimeter so float jitter does not defeat the cache.
type Cache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[int64]cacheEntry
	now     func() time.Time // overridable in tests
}

type cacheEntry struct {
	display string
	addedAt time.Time
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[int64]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached display string for meters, or "" and false when
// the value is absent or expired. Expired entries are dropped on access.
func (c *Cache) Get(meters float64) (string, bool) {
	key := cacheKey(meters)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.addedAt) > c.ttl {
		delete(c.entries, key)
		return "", false
	}
	return e.display, true
}

// Put stores the display string for meters.
func (c *Cache) Put(meters float64, display string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(meters)] = cacheEntry{display: display, addedAt: c.now()}
}

// Purge drops every expired entry and returns how many were removed.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := c.now()
	for key, e := range c.entries {
		if now.Sub(e.addedAt) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries, including any not yet purged.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cacheKey(meters float64) int64 {
	return int64(math.Round(meters * 100))
}
