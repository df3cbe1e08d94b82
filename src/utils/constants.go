package utils

const ShortDashDateLayout = "2006-01-02"

// TradingDaysPerYear is the annualization factor used by the analytics.
const TradingDaysPerYear = 252

const (
	CurrencyUSD = "usd"
	CurrencyEUR = "eur"
)
