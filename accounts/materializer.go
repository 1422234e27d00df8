package accounts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/drewzeee/sure/securities"
)

// Materializer turns an account's holdings plus per-symbol daily price
// series into a daily balance series. It is the thin stand-in for the host
// application's balance materialization that the import-debug tool drives;
// holdings are treated as constant over the period.
type Materializer struct{}

// LoadPrices fetches each holding's daily price series from provider.
// Duplicate symbols are fetched once.
func (m *Materializer) LoadPrices(ctx context.Context, provider securities.Provider, holdings []Holding, currency string, start, end time.Time) (map[string][]securities.Price, error) {
	prices := make(map[string][]securities.Price)

	for _, holding := range holdings {
		if _, done := prices[holding.Symbol]; done {
			continue
		}
		series, err := provider.FetchSecurityPrices(ctx, holding.Symbol, currency, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to load prices for %s: %w", holding.Symbol, err)
		}
		prices[holding.Symbol] = series
	}

	return prices, nil
}

// Materialize computes the account's value for every day any symbol has a
// price. A symbol's most recent price at or before the day is used; symbols
// with no price yet contribute nothing for that day.
func (m *Materializer) Materialize(account *Account, holdings []Holding, prices map[string][]securities.Price) []Balance {
	dateSet := make(map[time.Time]struct{})
	for _, series := range prices {
		for _, price := range series {
			dateSet[price.Date] = struct{}{}
		}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	balances := make([]Balance, 0, len(dates))
	for _, date := range dates {
		value := 0.0
		for _, holding := range holdings {
			price, ok := priceAt(prices[holding.Symbol], date)
			if !ok {
				continue
			}
			value += holding.Quantity * price
		}
		balances = append(balances, Balance{
			Date:     date,
			Value:    value,
			Currency: account.Currency,
		})
	}

	return balances
}

// priceAt returns the last price at or before date. The series is expected
// sorted ascending by date, as providers return it.
func priceAt(series []securities.Price, date time.Time) (float64, bool) {
	found := false
	value := 0.0
	for _, price := range series {
		if price.Date.After(date) {
			break
		}
		value = price.Price
		found = true
	}
	return value, found
}
