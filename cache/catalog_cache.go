package catalog_cache

import (
	"sync"
	"time"

	"github.com/CopperGroup/JoyFer/models"
)

const DefaultTTL = 30 * time.Second

// ── Assembled catalog snapshot (L1) ──────────────────────────────────────────
// Holds the last snapshot read from Redis, tagged with its version.
// A reader only trusts it while catalog_current still names the same version.

type snapshotEntry struct {
	version   int64
	snapshot  *models.CatalogSnapshot
	fetchedAt time.Time
}

type SnapshotCache struct {
	ttl   time.Duration
	mu    sync.RWMutex
	entry *snapshotEntry
}

func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SnapshotCache{ttl: ttl}
}

// Get returns the cached snapshot when it matches version and is still fresh
func (c *SnapshotCache) Get(version int64) (*models.CatalogSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry != nil && c.entry.version == version && time.Since(c.entry.fetchedAt) < c.ttl {
		return c.entry.snapshot, true
	}
	return nil, false
}

func (c *SnapshotCache) Set(version int64, snapshot *models.CatalogSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &snapshotEntry{version: version, snapshot: snapshot, fetchedAt: time.Now()}
}

func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}

// ── Admin category properties ────────────────────────────────────────────────

type propertiesEntry struct {
	data      []models.CategoryProperties
	fetchedAt time.Time
}

var (
	propsMu    sync.RWMutex
	propsCache *propertiesEntry
)

const PropertiesTTL = 5 * time.Minute

func GetProperties() ([]models.CategoryProperties, bool) {
	propsMu.RLock()
	defer propsMu.RUnlock()
	if propsCache != nil && time.Since(propsCache.fetchedAt) < PropertiesTTL {
		return propsCache.data, true
	}
	return nil, false
}

func SetProperties(data []models.CategoryProperties) {
	propsMu.Lock()
	defer propsMu.Unlock()
	propsCache = &propertiesEntry{data: data, fetchedAt: time.Now()}
}

// InvalidateProperties is called on any product or category mutation
func InvalidateProperties() {
	propsMu.Lock()
	propsCache = nil
	propsMu.Unlock()
}
