package securities

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Provider is the contract an external-data provider adapter fulfils.
// Symbols are tickers as the user entered them; adapters resolve them to
// whatever identifier the upstream API uses.
//
//go:generate mockgen -destination=mocks/provider.go -package=mock_securities . Provider
type Provider interface {
	// FetchSecurityInfo returns metadata for the security behind symbol.
	FetchSecurityInfo(ctx context.Context, symbol string) (*Security, error)

	// FetchSecurityPrice returns the current quote for symbol in currency,
	// dated today (UTC).
	FetchSecurityPrice(ctx context.Context, symbol, currency string) (Price, error)

	// FetchSecurityPrices returns one quote per calendar day for symbol in
	// currency over [start, end], dates ascending.
	FetchSecurityPrices(ctx context.Context, symbol, currency string, start, end time.Time) ([]Price, error)
}

// ErrSymbolNotFound is returned when a provider cannot map a ticker symbol
// to any asset it knows about.
var ErrSymbolNotFound = errors.New("symbol not found")

// ProviderError wraps a failure from a provider operation with enough
// context to tell which provider and which call failed.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// WithProviderResponse runs a provider operation and normalizes its outcome:
// a failure is logged once and wrapped into a *ProviderError carrying the
// provider and operation names. Adapters wrap every operation in it so
// callers get uniformly-shaped errors regardless of the provider.
func WithProviderResponse[T any](provider, op string, fn func() (T, error)) (T, error) {
	result, err := fn()
	if err != nil {
		log.Printf("%s: %s failed: %v", provider, op, err)
		var zero T
		return zero, &ProviderError{Provider: provider, Op: op, Err: err}
	}
	return result, nil
}
