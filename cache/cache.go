package cache

import "time"

// LoaderFunc loads values for keys that were not found in the cache.
// It returns a key->data map containing entries for the keys it could load;
// keys absent from the map are treated as unavailable, not as errors.
type LoaderFunc func(missingKeys []string) (map[string][]byte, error)

// Cache is the shared TTL store used by provider adapters.
// Entries are written once and read until they expire.
//
//go:generate mockgen -destination=mocks/cache.go -package=mock_cache . Cache
type Cache interface {
	// GetOrLoad returns cached data for keys, calling loader for the keys
	// that are missing and writing the loaded values back with the given
	// TTL. A ttl of 0 uses the store's default expiration.
	GetOrLoad(keys []string, loader LoaderFunc, ttl time.Duration) (map[string][]byte, error)

	// Get returns cached data for keys plus the list of keys not found.
	Get(keys []string) (map[string][]byte, []string)

	// Set stores data with the given TTL. A ttl of 0 uses the store's
	// default expiration.
	Set(data map[string][]byte, ttl time.Duration)

	// Delete removes entries by key.
	Delete(keys []string)
}
