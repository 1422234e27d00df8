package cache

import "time"

// Config holds cache store configuration.
type Config struct {
	// DefaultExpiration is the TTL applied when callers pass 0.
	DefaultExpiration time.Duration `yaml:"default_expiration"`

	// CleanupInterval is how often expired entries are swept.
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// DefaultConfig returns the cache configuration used when none is provided:
// entries live for five minutes and expired entries are swept every ten.
func DefaultConfig() Config {
	return Config{
		DefaultExpiration: 5 * time.Minute,
		CleanupInterval:   10 * time.Minute,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DefaultExpiration <= 0 {
		c.DefaultExpiration = d.DefaultExpiration
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = d.CleanupInterval
	}
	return c
}
