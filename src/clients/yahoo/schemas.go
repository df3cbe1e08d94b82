package yahoo

type Quote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

type Indicators struct {
	Quote []Quote `json:"quote"`
}

type ChartMeta struct {
	Currency       string `json:"currency"`
	Symbol         string `json:"symbol"`
	ExchangeName   string `json:"exchangeName"`
	InstrumentType string `json:"instrumentType"`
	Timezone       string `json:"timezone"`
}

type ChartResult struct {
	Meta       ChartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type Chart struct {
	Result []ChartResult `json:"result"`
	Error  *ChartError   `json:"error"`
}

type GetChartResponse struct {
	Chart Chart `json:"chart"`
}
