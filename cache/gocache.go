package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// GoCache is an in-memory TTL store backed by patrickmn/go-cache.
type GoCache struct {
	cache *gocache.Cache
}

// NewGoCache creates a store with the given default expiration for items
// and interval between sweeps of expired entries.
func NewGoCache(defaultExpiration, cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the values found for keys and the keys that were missing.
func (gc *GoCache) Get(keys []string) (map[string][]byte, []string) {
	found := make(map[string][]byte)
	missing := make([]string, 0)

	for _, key := range keys {
		value, ok := gc.cache.Get(key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		data, ok := value.([]byte)
		if !ok {
			// Stored under a different type, treat as missing
			missing = append(missing, key)
			continue
		}
		found[key] = data
	}

	return found, missing
}

// Set stores key-value pairs with the given TTL.
// A ttl of 0 uses the store's default expiration.
func (gc *GoCache) Set(data map[string][]byte, ttl time.Duration) {
	for key, value := range data {
		gc.cache.Set(key, value, ttl)
	}
}

// Delete removes entries by key.
func (gc *GoCache) Delete(keys []string) {
	for _, key := range keys {
		gc.cache.Delete(key)
	}
}

// Clear removes all entries.
func (gc *GoCache) Clear() {
	gc.cache.Flush()
}

// ItemCount returns the number of entries, including not yet swept expired ones.
func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}
