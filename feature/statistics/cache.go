package statistics

import (
	"context"
	"sync"
	"time"

	"leap-bridge/core/reconcile"

	"golang.org/x/sync/singleflight"
)

// DatasetCache holds a loaded statistics dataset with an expiry.
// Statistics tables change rarely; repeated reconciliations against the
// same filter should not re-scan the table every time.
type DatasetCache struct {
	// Dataset is the aggregated statistics dataset.
	Dataset reconcile.Dataset

	// Built is the timestamp when this cache entry was built.
	Built time.Time

	// TTL is the time-to-live for this entry.
	TTL time.Duration
}

// IsExpired returns true if this entry has expired based on its TTL.
func (c *DatasetCache) IsExpired() bool {
	if c.TTL == 0 {
		return true // No caching
	}
	return time.Since(c.Built) > c.TTL
}

// cacheStore holds dataset cache entries keyed by filter.
type cacheStore struct {
	mu      sync.RWMutex
	entries map[string]*DatasetCache
	sf      singleflight.Group
}

// globalCacheStore is the singleton cache store for statistics datasets.
var globalCacheStore = &cacheStore{
	entries: make(map[string]*DatasetCache),
}

// CachedDataset returns the dataset for a filter, loading it through the
// store when the cached entry is absent or expired. Uses singleflight so
// concurrent callers with the same filter trigger a single query.
func CachedDataset(ctx context.Context, store *Store, filter Filter, ttl time.Duration) (reconcile.Dataset, error) {
	if ttl == 0 {
		return store.Dataset(ctx, filter)
	}

	key := filter.cacheKey()

	// Fast path: fresh entry.
	globalCacheStore.mu.RLock()
	entry, exists := globalCacheStore.entries[key]
	globalCacheStore.mu.RUnlock()

	if exists && !entry.IsExpired() {
		return entry.Dataset, nil
	}

	// Slow path: load using singleflight to prevent stampedes.
	result, err, _ := globalCacheStore.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		globalCacheStore.mu.RLock()
		entry, exists := globalCacheStore.entries[key]
		globalCacheStore.mu.RUnlock()

		if exists && !entry.IsExpired() {
			return entry.Dataset, nil
		}

		dataset, err := store.Dataset(ctx, filter)
		if err != nil {
			return nil, err
		}

		globalCacheStore.mu.Lock()
		globalCacheStore.entries[key] = &DatasetCache{
			Dataset: dataset,
			Built:   time.Now(),
			TTL:     ttl,
		}
		globalCacheStore.mu.Unlock()

		return dataset, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(reconcile.Dataset), nil
}

// InvalidateCache removes the cached dataset for the given filter.
// This is useful for testing or forcing a reload.
func InvalidateCache(filter Filter) {
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.entries, filter.cacheKey())
	globalCacheStore.mu.Unlock()
}
