package cache

import (
	"fmt"
	"time"
)

// Service implements Cache on top of an in-memory GoCache.
type Service struct {
	store  *GoCache
	config Config
}

// NewService creates a cache service with the given configuration.
func NewService(config Config) *Service {
	config = config.withDefaults()
	return &Service{
		store:  NewGoCache(config.DefaultExpiration, config.CleanupInterval),
		config: config,
	}
}

// GetOrLoad returns cached data for keys, loading and caching whatever is
// missing. Keys the loader does not return stay absent from the result.
func (s *Service) GetOrLoad(keys []string, loader LoaderFunc, ttl time.Duration) (map[string][]byte, error) {
	if len(keys) == 0 {
		return make(map[string][]byte), nil
	}

	found, missing := s.store.Get(keys)
	if len(missing) == 0 {
		return found, nil
	}

	loaded, err := loader(missing)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	if len(loaded) > 0 {
		s.store.Set(loaded, ttl)
	}

	for key, value := range loaded {
		found[key] = value
	}

	return found, nil
}

// Get returns cached data for keys plus the keys not found.
func (s *Service) Get(keys []string) (map[string][]byte, []string) {
	return s.store.Get(keys)
}

// Set stores data with the given TTL.
func (s *Service) Set(data map[string][]byte, ttl time.Duration) {
	s.store.Set(data, ttl)
}

// Delete removes entries by key.
func (s *Service) Delete(keys []string) {
	s.store.Delete(keys)
}

// Clear removes all entries.
func (s *Service) Clear() {
	s.store.Clear()
}

// ItemCount returns the number of entries in the store.
func (s *Service) ItemCount() int {
	return s.store.ItemCount()
}
