package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/drewzeee/sure/cache"
	"github.com/drewzeee/sure/config"
	"github.com/drewzeee/sure/metrics"
	"github.com/drewzeee/sure/securities"
)

// ProviderName identifies this adapter in errors, logs and metrics.
const ProviderName = "coingecko"

// Provider adapts the CoinGecko API to the securities.Provider contract.
// Every operation is a linear resolve/fetch/parse/map sequence with results
// cached in the shared TTL store.
type Provider struct {
	cfg     config.CoingeckoConfig
	client  *HTTPClientWithRetries
	cache   cache.Cache
	keyType KeyType
	metrics *metrics.Writer
}

var _ securities.Provider = (*Provider)(nil)

// NewProvider creates the adapter with the given configuration and shared
// cache store.
func NewProvider(cfg config.CoingeckoConfig, cacheStore cache.Cache) *Provider {
	writer := metrics.NewWriter(ProviderName)

	opts := DefaultRetryOptions()
	opts.LogPrefix = "CoinGecko"
	if cfg.MaxRetries > 0 {
		opts.MaxRetries = cfg.MaxRetries
	}

	var limiter *rate.Limiter
	if cfg.RateLimitPerMinute > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimitPerMinute)/60.0), burst)
	}

	return &Provider{
		cfg:     cfg,
		client:  NewHTTPClientWithRetries(opts, writer, limiter),
		cache:   cacheStore,
		keyType: ParseKeyType(cfg),
		metrics: writer,
	}
}

// ResolveCoinID maps a ticker symbol to CoinGecko's internal coin id via
// the search endpoint. Returns securities.ErrSymbolNotFound (wrapped) when
// no listed coin carries the symbol.
func (p *Provider) ResolveCoinID(ctx context.Context, symbol string) (string, error) {
	return securities.WithProviderResponse(ProviderName, "resolve_coin_id", func() (string, error) {
		return p.resolveCoinID(ctx, symbol)
	})
}

// FetchSecurityInfo returns metadata for the security behind symbol.
func (p *Provider) FetchSecurityInfo(ctx context.Context, symbol string) (*securities.Security, error) {
	return securities.WithProviderResponse(ProviderName, "fetch_security_info", func() (*securities.Security, error) {
		coinID, err := p.resolveCoinID(ctx, symbol)
		if err != nil {
			return nil, err
		}

		cacheKey := fmt.Sprintf("coingecko:info:%s", coinID)
		data, err := p.cached(cacheKey, "info", p.cfg.InfoTTL, func() ([]byte, error) {
			return p.fetchCoin(ctx, coinID)
		})
		if err != nil {
			return nil, err
		}

		var coin coinResponse
		if err := json.Unmarshal(data, &coin); err != nil {
			return nil, fmt.Errorf("failed to parse coin data for %s: %w", coinID, err)
		}

		return &securities.Security{
			Symbol:  strings.ToUpper(coin.Symbol),
			Name:    coin.Name,
			LogoURL: coin.Image.Large,
			Kind:    "crypto",
			// Crypto assets have no listing exchange, so no operating MIC
			ExchangeOperatingMic: nil,
		}, nil
	})
}

// FetchSecurityPrice returns the current quote for symbol in currency,
// dated today (UTC).
func (p *Provider) FetchSecurityPrice(ctx context.Context, symbol, currency string) (securities.Price, error) {
	return securities.WithProviderResponse(ProviderName, "fetch_security_price", func() (securities.Price, error) {
		currency = p.normalizeCurrency(currency)

		coinID, err := p.resolveCoinID(ctx, symbol)
		if err != nil {
			return securities.Price{}, err
		}

		cacheKey := fmt.Sprintf("coingecko:price:%s:%s", coinID, currency)
		data, err := p.cached(cacheKey, "price", p.cfg.PriceTTL, func() ([]byte, error) {
			return p.fetchSimplePrice(ctx, coinID, currency)
		})
		if err != nil {
			return securities.Price{}, err
		}

		var value float64
		if err := json.Unmarshal(data, &value); err != nil {
			return securities.Price{}, fmt.Errorf("failed to parse cached price for %s: %w", coinID, err)
		}

		return securities.Price{
			Date:     dateUTC(time.Now()),
			Price:    value,
			Currency: currency,
		}, nil
	})
}

// FetchSecurityPrices returns one quote per calendar day for symbol in
// currency over [start, end], dates ascending. Days without an upstream
// observation carry the previous day's close forward.
func (p *Provider) FetchSecurityPrices(ctx context.Context, symbol, currency string, start, end time.Time) ([]securities.Price, error) {
	return securities.WithProviderResponse(ProviderName, "fetch_security_prices", func() ([]securities.Price, error) {
		currency = p.normalizeCurrency(currency)
		startDay := dateUTC(start)
		endDay := dateUTC(end)

		if startDay.After(endDay) {
			return nil, fmt.Errorf("invalid date range: start %s is after end %s",
				startDay.Format("2006-01-02"), endDay.Format("2006-01-02"))
		}

		coinID, err := p.resolveCoinID(ctx, symbol)
		if err != nil {
			return nil, err
		}

		cacheKey := fmt.Sprintf("coingecko:prices:%s:%s:%s:%s",
			coinID, currency, startDay.Format("2006-01-02"), endDay.Format("2006-01-02"))
		data, err := p.cached(cacheKey, "prices", p.cfg.PriceTTL, func() ([]byte, error) {
			return p.fetchMarketChartRange(ctx, coinID, currency, startDay, endDay)
		})
		if err != nil {
			return nil, err
		}

		var points [][]float64
		if err := json.Unmarshal(data, &points); err != nil {
			return nil, fmt.Errorf("failed to parse cached chart data for %s: %w", coinID, err)
		}

		return bucketDailyPrices(points, currency, startDay, endDay), nil
	})
}

// resolveCoinID is the uncached-error/cached-success core of coin id
// resolution: exact case-insensitive symbol match, best market-cap rank wins.
func (p *Provider) resolveCoinID(ctx context.Context, symbol string) (string, error) {
	symbol = strings.TrimSpace(strings.ToLower(symbol))
	if symbol == "" {
		return "", fmt.Errorf("symbol is required")
	}

	cacheKey := fmt.Sprintf("coingecko:coin_id:%s", symbol)
	data, err := p.cached(cacheKey, "coin_id", p.cfg.CoinIDTTL, func() ([]byte, error) {
		coinID, err := p.searchCoinID(ctx, symbol)
		if err != nil {
			return nil, err
		}
		return []byte(coinID), nil
	})
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// searchCoinID queries /search and picks the coin whose symbol matches
// exactly, preferring the best (lowest non-zero) market-cap rank.
func (p *Provider) searchCoinID(ctx context.Context, symbol string) (string, error) {
	body, err := p.execute(ctx, NewRequestBuilder(p.baseURL(), searchAPIPath).
		With("query", symbol))
	if err != nil {
		return "", err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse search response: %w", err)
	}

	best := ""
	bestRank := 0
	for _, coin := range result.Coins {
		if !strings.EqualFold(coin.Symbol, symbol) {
			continue
		}
		if best == "" || betterRank(coin.MarketCapRank, bestRank) {
			best = coin.ID
			bestRank = coin.MarketCapRank
		}
	}

	if best == "" {
		return "", fmt.Errorf("%w: %q", securities.ErrSymbolNotFound, symbol)
	}

	log.Printf("CoinGecko: Resolved symbol %q to coin id %q (rank %d)", symbol, best, bestRank)
	return best, nil
}

// betterRank reports whether rank a beats b. Rank 0 means unranked and
// loses to any ranked coin.
func betterRank(a, b int) bool {
	if a == 0 {
		return false
	}
	return b == 0 || a < b
}

// fetchSimplePrice returns the JSON-encoded price of coinID in currency.
func (p *Provider) fetchSimplePrice(ctx context.Context, coinID, currency string) ([]byte, error) {
	body, err := p.execute(ctx, NewRequestBuilder(p.baseURL(), simplePriceAPIPath).
		With("ids", coinID).
		With("vs_currencies", currency))
	if err != nil {
		return nil, err
	}

	var result simplePriceResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse price response: %w", err)
	}

	value, ok := result[coinID][currency]
	if !ok {
		return nil, fmt.Errorf("no %s price returned for coin %s", currency, coinID)
	}

	return json.Marshal(value)
}

// fetchCoin returns the raw metadata document for coinID with the heavy
// sections (tickers, market data, localization) stripped server-side.
func (p *Provider) fetchCoin(ctx context.Context, coinID string) ([]byte, error) {
	return p.execute(ctx, NewRequestBuilder(p.baseURL(), fmt.Sprintf(coinAPIPathFmt, coinID)).
		With("localization", "false").
		With("tickers", "false").
		With("market_data", "false").
		With("community_data", "false").
		With("developer_data", "false").
		With("sparkline", "false"))
}

// fetchMarketChartRange returns the JSON-encoded [timestamp, price] points
// for coinID over the day range, inclusive of end.
func (p *Provider) fetchMarketChartRange(ctx context.Context, coinID, currency string, startDay, endDay time.Time) ([]byte, error) {
	from := startDay.Unix()
	to := endDay.AddDate(0, 0, 1).Unix() // include the whole end day

	body, err := p.execute(ctx, NewRequestBuilder(p.baseURL(), fmt.Sprintf(marketChartRangePathFmt, coinID)).
		With("vs_currency", currency).
		With("from", fmt.Sprintf("%d", from)).
		With("to", fmt.Sprintf("%d", to)))
	if err != nil {
		return nil, err
	}

	var result marketChartRangeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse market chart response: %w", err)
	}

	return json.Marshal(result.Prices)
}

// execute attaches the configured API key, runs the request through the
// retrying client and records its latency.
func (p *Provider) execute(ctx context.Context, builder *RequestBuilder) ([]byte, error) {
	req, err := builder.WithApiKey(p.cfg.APIKey, p.keyType).Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	body, duration, err := p.client.ExecuteRequest(req)
	if err != nil {
		return nil, err
	}

	p.metrics.RecordRequestDuration(duration)
	return body, nil
}

// cached reads a single key through the shared TTL store, loading it on
// miss and recording the outcome.
func (p *Provider) cached(key, entity string, ttl time.Duration, load func() ([]byte, error)) ([]byte, error) {
	missed := false
	result, err := p.cache.GetOrLoad([]string{key}, func(missingKeys []string) (map[string][]byte, error) {
		missed = true
		data, err := load()
		if err != nil {
			return nil, err
		}
		return map[string][]byte{key: data}, nil
	}, ttl)
	if err != nil {
		return nil, err
	}

	if missed {
		p.metrics.RecordCacheMiss(entity)
	} else {
		p.metrics.RecordCacheHit(entity)
	}

	data, ok := result[key]
	if !ok {
		return nil, fmt.Errorf("no data loaded for cache key %s", key)
	}

	return data, nil
}

func (p *Provider) baseURL() string {
	return apiBaseURL(p.cfg, p.keyType)
}

func (p *Provider) normalizeCurrency(currency string) string {
	currency = strings.TrimSpace(strings.ToLower(currency))
	if currency == "" {
		currency = p.cfg.DefaultCurrency
	}
	if currency == "" {
		currency = "usd"
	}
	return currency
}
