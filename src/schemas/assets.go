package schemas

type PriceResponse struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// MetricResponse carries one market metric. Value is null when the upstream
// reports the metric as null, e.g. max_supply of an uncapped asset.
type MetricResponse struct {
	Symbol string   `json:"symbol"`
	Metric string   `json:"metric"`
	Value  *float64 `json:"value"`
}

type AssetQuote struct {
	Symbol      string   `json:"symbol"`
	PriceUSD    float64  `json:"price_usd"`
	MarketCap   *float64 `json:"market_cap"`
	TotalVolume *float64 `json:"total_volume"`
	MaxSupply   *float64 `json:"max_supply"`
}

type AssetValuationResponse struct {
	Symbol    string  `json:"symbol"`
	Quantity  string  `json:"quantity"`
	Price     float64 `json:"price"`
	Valuation float64 `json:"valuation"`
}

type Candle struct {
	Date   string   `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
}
