package securities

import "time"

// Security holds the metadata the application stores for a tradable asset.
type Security struct {
	// Symbol is the human-readable ticker, upper-cased (e.g. "BTC").
	Symbol string `json:"symbol"`

	// Name is the asset's display name (e.g. "Bitcoin").
	Name string `json:"name"`

	// LogoURL points at the provider's logo image for the asset.
	LogoURL string `json:"logo_url"`

	// Kind distinguishes asset classes; the CoinGecko adapter always
	// reports "crypto".
	Kind string `json:"kind"`

	// ExchangeOperatingMic is the operating MIC of the listing exchange.
	// Nil for crypto assets, which have no MIC.
	ExchangeOperatingMic *string `json:"exchange_operating_mic"`
}

// Price is a single quote for a security on a calendar day.
type Price struct {
	// Date is the UTC calendar day the price belongs to.
	Date time.Time `json:"date"`

	// Price is the quote in Currency.
	Price float64 `json:"price"`

	// Currency is the lower-cased quote currency (e.g. "usd").
	Currency string `json:"currency"`
}
