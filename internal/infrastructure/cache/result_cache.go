package cache

import (
	"sync"

	reportapp "github.com/retailops/backend/internal/application/report"
	"github.com/retailops/backend/internal/domain/report"
)

// DefaultCapacity bounds the result cache when no capacity is configured
const DefaultCapacity = 100

// ReportResultCache is a bounded in-memory map from computation
// fingerprint to finished report data. Eviction is strict FIFO by
// insertion order: a hit does not refresh an entry's position, and when
// an insert pushes the cache over capacity exactly the oldest-inserted
// entry is removed. Entries are never invalidated when the underlying
// transactional data changes; staleness is accepted.
type ReportResultCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]report.ReportData
	order    []string
}

// NewReportResultCache creates a cache bounded to capacity entries
func NewReportResultCache(capacity int) *ReportResultCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ReportResultCache{
		capacity: capacity,
		entries:  make(map[string]report.ReportData, capacity),
		order:    make([]string, 0, capacity),
	}
}

// Get returns the cached data for key. It has no side effects on
// eviction order.
func (c *ReportResultCache) Get(key string) (report.ReportData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.entries[key]
	return data, ok
}

// Put inserts data under key, evicting the oldest-inserted entry when
// the cache exceeds its capacity. Re-putting an existing key replaces
// the value without changing its insertion position.
func (c *ReportResultCache) Put(key string, data report.ReportData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = data
		return
	}

	c.entries[key] = data
	c.order = append(c.order, key)

	if len(c.entries) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Len returns the number of cached entries (for tests and monitoring)
func (c *ReportResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

var _ reportapp.ResultCache = (*ReportResultCache)(nil)
