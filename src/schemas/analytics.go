package schemas

import (
	"math"
	"time"

	"cryptoportfolio/src/utils"
)

// Point is one dated value of a derived series. Value is null where the
// statistic is undefined.
type Point struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

type Series []Point

// NewSeries pairs dates with values, turning NaN and infinities into nulls.
func NewSeries(dates []time.Time, values []float64) Series {
	series := make(Series, len(values))
	for i, v := range values {
		series[i] = Point{Date: utils.FormatDate(dates[i]), Value: Float(v)}
	}
	return series
}

// Float returns nil for values JSON cannot represent.
func Float(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

type SharpeRatioResponse struct {
	Symbol       string   `json:"symbol"`
	Period       string   `json:"period"`
	RiskFreeRate float64  `json:"risk_free_rate"`
	SharpeRatio  *float64 `json:"sharpe_ratio"`
}
