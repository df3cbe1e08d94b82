package schemas

import "github.com/shopspring/decimal"

type HoldingRequest struct {
	Asset    string          `json:"asset"`
	Quantity decimal.Decimal `json:"quantity"`
}

type HoldingResponse struct {
	UserID   int64           `json:"user_id"`
	Asset    string          `json:"asset"`
	Quantity decimal.Decimal `json:"quantity"`
}

// HoldingValuation is one line of a portfolio valuation.
type HoldingValuation struct {
	Asset    string          `json:"asset"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    float64         `json:"price"`
	Value    float64         `json:"value"`
}

type PortfolioValuation struct {
	UserID     int64              `json:"user_id"`
	Holdings   []HoldingValuation `json:"holdings"`
	TotalValue float64            `json:"total_value"`
}
