// Package metrics tracks in-process counters for the comparison backend.
package metrics

import (
	"sync"
	"time"
)

// Counters accumulates request counts since process start. Safe for
// concurrent use.
type Counters struct {
	mu               sync.RWMutex
	startTime        time.Time
	formatRequests   int64
	cacheHits        int64
	cacheMisses      int64
	comparisonsSaved int64
	wsConnections    int64
}

// New creates a zeroed counter set.
func New() *Counters {
	return &Counters{startTime: time.Now()}
}

// RecordFormat counts one distance-format request and whether the result
// came from the cache.
func (c *Counters) RecordFormat(cacheHit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.formatRequests++
	if cacheHit {
		c.cacheHits++
	} else {
		c.cacheMisses++
	}
}

// RecordComparisonSaved counts one persisted comparison.
func (c *Counters) RecordComparisonSaved() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.comparisonsSaved++
}

// RecordConnection counts one accepted WebSocket connection.
func (c *Counters) RecordConnection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wsConnections++
}

// Snapshot returns the current counts for the stats endpoint and for logging.
func (c *Counters) Snapshot() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hitRate := 0.0
	if c.formatRequests > 0 {
		hitRate = float64(c.cacheHits) / float64(c.formatRequests)
	}

	return map[string]any{
		"uptime_seconds":    int64(time.Since(c.startTime).Seconds()),
		"format_requests":   c.formatRequests,
		"cache_hits":        c.cacheHits,
		"cache_misses":      c.cacheMisses,
		"cache_hit_rate":    hitRate,
		"comparisons_saved": c.comparisonsSaved,
		"ws_connections":    c.wsConnections,
	}
}
