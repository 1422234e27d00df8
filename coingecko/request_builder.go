package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/drewzeee/sure/config"
)

const (
	// Base URL for the public API
	coingeckoPublicURL = "https://api.coingecko.com"
	// Base URL for the Pro API
	coingeckoProURL = "https://pro-api.coingecko.com"
)

// KeyType defines the API key type
type KeyType int

const (
	// NoKey means no API key is available
	NoKey KeyType = iota
	// ProKey means using a Pro API key
	ProKey
	// DemoKey means using a demo API key
	DemoKey
)

// ParseKeyType maps the config's api_key_type string to a KeyType.
// An empty api key always means NoKey regardless of the declared type.
func ParseKeyType(cfg config.CoingeckoConfig) KeyType {
	if cfg.APIKey == "" {
		return NoKey
	}
	switch strings.ToLower(cfg.APIKeyType) {
	case "pro":
		return ProKey
	case "demo":
		return DemoKey
	}
	return NoKey
}

// apiBaseURL returns the API host for the configured key type, honoring
// the override URLs from config.
func apiBaseURL(cfg config.CoingeckoConfig, keyType KeyType) string {
	if keyType == ProKey {
		if cfg.OverrideProURL != "" {
			return cfg.OverrideProURL
		}
		return coingeckoProURL
	}
	if cfg.OverridePublicURL != "" {
		return cfg.OverridePublicURL
	}
	return coingeckoPublicURL
}

// joinURL safely combines a base URL with a path
func joinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// RequestBuilder implements the Builder pattern for CoinGecko API requests
type RequestBuilder struct {
	baseURL   string
	apiPath   string
	params    map[string]string
	headers   map[string]string
	apiKey    string
	keyType   KeyType
	userAgent string
}

// NewRequestBuilder creates a request builder for the given endpoint path.
func NewRequestBuilder(baseURL, apiPath string) *RequestBuilder {
	rb := &RequestBuilder{
		baseURL:   baseURL,
		apiPath:   apiPath,
		params:    make(map[string]string),
		headers:   make(map[string]string),
		userAgent: "Sure/1.0 (personal finance)",
	}

	rb.headers["Accept"] = "application/json"

	return rb
}

// With adds a custom parameter to the URL query
func (rb *RequestBuilder) With(key, value string) *RequestBuilder {
	rb.params[key] = value
	return rb
}

// WithApiKey sets the API key and its type
func (rb *RequestBuilder) WithApiKey(apiKey string, keyType KeyType) *RequestBuilder {
	if apiKey != "" {
		rb.apiKey = apiKey
		rb.keyType = keyType
	}
	return rb
}

// WithUserAgent sets the User-Agent header
func (rb *RequestBuilder) WithUserAgent(userAgent string) *RequestBuilder {
	rb.userAgent = userAgent
	return rb
}

// BuildURL builds the complete URL for the request
func (rb *RequestBuilder) BuildURL() string {
	fullPath := joinURL(rb.baseURL, rb.apiPath)

	query := url.Values{}
	for key, value := range rb.params {
		query.Add(key, value)
	}

	if rb.apiKey != "" {
		switch rb.keyType {
		case ProKey:
			query.Add("x_cg_pro_api_key", rb.apiKey)
		case DemoKey:
			query.Add("x_cg_demo_api_key", rb.apiKey)
		}
	}

	finalURL := fullPath
	if queryString := query.Encode(); queryString != "" {
		finalURL = fmt.Sprintf("%s?%s", finalURL, queryString)
	}

	return finalURL
}

// Build creates an http.Request bound to ctx.
func (rb *RequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rb.BuildURL(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", rb.userAgent)
	for key, value := range rb.headers {
		req.Header.Set(key, value)
	}

	return req, nil
}
