package coingecko

// API endpoint paths
const (
	searchAPIPath           = "/api/v3/search"
	simplePriceAPIPath      = "/api/v3/simple/price"
	coinAPIPathFmt          = "/api/v3/coins/%s"
	marketChartRangePathFmt = "/api/v3/coins/%s/market_chart/range"
)

// searchResponse is the wire shape of /api/v3/search
type searchResponse struct {
	Coins []searchCoin `json:"coins"`
}

// searchCoin is one match from the search endpoint
type searchCoin struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank int    `json:"market_cap_rank"`
}

// simplePriceResponse is the wire shape of /api/v3/simple/price:
// coin id -> currency -> price
type simplePriceResponse map[string]map[string]float64

// coinResponse is the subset of /api/v3/coins/{id} the adapter maps
type coinResponse struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Image  struct {
		Thumb string `json:"thumb"`
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"image"`
}

// marketChartRangeResponse is the wire shape of
// /api/v3/coins/{id}/market_chart/range. Each entry in Prices is a
// [unix milliseconds, price] pair.
type marketChartRangeResponse struct {
	Prices [][]float64 `json:"prices"`
}
