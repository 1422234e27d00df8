package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/drewzeee/sure/cache"
)

// CoingeckoConfig configures the CoinGecko provider adapter.
type CoingeckoConfig struct {
	// APIKey is the CoinGecko API key. Empty means the public API
	// without authentication. Overridden by COINGECKO_API_KEY if set.
	APIKey string `yaml:"api_key"`

	// APIKeyType is "pro" or "demo". Ignored when APIKey is empty.
	APIKeyType string `yaml:"api_key_type"`

	// OverridePublicURL and OverrideProURL replace the default API hosts,
	// mainly for pointing the adapter at a local mock.
	OverridePublicURL string `yaml:"override_public_url"`
	OverrideProURL    string `yaml:"override_pro_url"`

	// DefaultCurrency is the quote currency used when callers pass none.
	DefaultCurrency string `yaml:"default_currency"`

	// RateLimitPerMinute and Burst configure the client-side rate limiter.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	Burst              int `yaml:"burst"`

	// MaxRetries is the total number of attempts per request.
	MaxRetries int `yaml:"max_retries"`

	// PriceTTL and InfoTTL bound how stale cached prices and metadata
	// may be. CoinIDTTL covers symbol->coin-id mappings, which change
	// far less often than prices.
	PriceTTL  time.Duration `yaml:"price_ttl"`
	InfoTTL   time.Duration `yaml:"info_ttl"`
	CoinIDTTL time.Duration `yaml:"coin_id_ttl"`
}

// Config is the application configuration for the provider adapter
// and its shared cache.
type Config struct {
	Coingecko CoingeckoConfig `yaml:"coingecko"`
	Cache     cache.Config    `yaml:"cache"`
}

// DefaultCoingeckoConfig returns the provider defaults: public API, three
// attempts per request, five minute price/metadata caching.
func DefaultCoingeckoConfig() CoingeckoConfig {
	return CoingeckoConfig{
		DefaultCurrency:    "usd",
		RateLimitPerMinute: 30,
		Burst:              2,
		MaxRetries:         3,
		PriceTTL:           5 * time.Minute,
		InfoTTL:            5 * time.Minute,
		CoinIDTTL:          12 * time.Hour,
	}
}

// DefaultConfig returns the full default configuration.
func DefaultConfig() *Config {
	return &Config{
		Coingecko: DefaultCoingeckoConfig(),
		Cache:     cache.DefaultConfig(),
	}
}

// LoadConfig reads YAML configuration from path and fills unset fields
// with defaults. A missing file yields the default configuration.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(config)
	applyEnvOverrides(config)

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyDefaults restores defaults for fields the YAML left unset or invalid.
func applyDefaults(config *Config) {
	defaults := DefaultCoingeckoConfig()
	cg := &config.Coingecko

	if cg.DefaultCurrency == "" {
		cg.DefaultCurrency = defaults.DefaultCurrency
	}
	if cg.RateLimitPerMinute <= 0 {
		cg.RateLimitPerMinute = defaults.RateLimitPerMinute
	}
	if cg.Burst <= 0 {
		cg.Burst = defaults.Burst
	}
	if cg.MaxRetries <= 0 {
		cg.MaxRetries = defaults.MaxRetries
	}
	if cg.PriceTTL <= 0 {
		cg.PriceTTL = defaults.PriceTTL
	}
	if cg.InfoTTL <= 0 {
		cg.InfoTTL = defaults.InfoTTL
	}
	if cg.CoinIDTTL <= 0 {
		cg.CoinIDTTL = defaults.CoinIDTTL
	}
}

// applyEnvOverrides lets the environment supply the API key so it can be
// kept out of checked-in config files.
func applyEnvOverrides(config *Config) {
	if key := os.Getenv("COINGECKO_API_KEY"); key != "" {
		config.Coingecko.APIKey = key
	}
	if keyType := os.Getenv("COINGECKO_API_KEY_TYPE"); keyType != "" {
		config.Coingecko.APIKeyType = keyType
	}
}

func validate(config *Config) error {
	switch config.Coingecko.APIKeyType {
	case "", "pro", "demo":
	default:
		return fmt.Errorf("invalid coingecko api_key_type %q, must be \"pro\" or \"demo\"", config.Coingecko.APIKeyType)
	}
	return nil
}
