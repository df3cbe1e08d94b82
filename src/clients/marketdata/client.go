package marketdata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"cryptoportfolio/src/clients/coingecko"
	"cryptoportfolio/src/clients/yahoo"
	"cryptoportfolio/src/config"
	"cryptoportfolio/src/utils"
)

// PriceQuote holds the current price of one symbol in every quote currency the
// upstream answered with, in the order it answered.
type PriceQuote struct {
	Symbol string
	Prices coingecko.CurrencyPrices
}

// Get returns the price in currency, if present.
func (q *PriceQuote) Get(currency string) (float64, bool) {
	if q == nil {
		return 0, false
	}
	for _, p := range q.Prices {
		if p.Currency == currency {
			return p.Value, true
		}
	}
	return 0, false
}

// MarketRecord is the untyped market row of one symbol. A nil record means the
// upstream has no market data for the symbol.
type MarketRecord map[string]interface{}

// Periods accepted by GetHistoricalSeries.
var Periods = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}

// ValidPeriod reports whether period is one of Periods.
func ValidPeriod(period string) bool {
	for _, p := range Periods {
		if p == period {
			return true
		}
	}
	return false
}

// Ticker maps a crypto symbol to its chart ticker, "btc" -> "BTC-USD". Symbols
// that already name a pair are only upper cased.
func Ticker(symbol string) string {
	ticker := strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(ticker, "-") {
		return ticker
	}
	return ticker + "-USD"
}

type MarketDataClientI interface {
	GetPrice(ctx context.Context, symbol string) (*PriceQuote, error)
	GetMarketData(ctx context.Context, symbol string) (MarketRecord, error)
	GetHistoricalSeries(ctx context.Context, symbol string, period string) (OHLCVs, error)
}

// Client answers prices and market data from CoinGecko and historical series
// from the Yahoo chart API.
type Client struct {
	CoinGecko    coingecko.CoinGeckoServiceClientI
	Yahoo        yahoo.YahooServiceClientI
	VsCurrencies []string
}

func NewClient(cfg *config.Config) *Client {
	vsCurrencies := cfg.ExternalClients.CoinGecko.VsCurrencies
	if len(vsCurrencies) == 0 {
		vsCurrencies = []string{utils.CurrencyUSD, utils.CurrencyEUR}
	}
	return &Client{
		CoinGecko:    coingecko.NewClient(cfg),
		Yahoo:        yahoo.NewClient(cfg),
		VsCurrencies: vsCurrencies,
	}
}

func normalize(symbol string) string {
	return strings.ToLower(strings.TrimSpace(symbol))
}

// GetPrice returns the current quote of symbol. An unknown symbol yields a quote
// without prices.
func (c *Client) GetPrice(ctx context.Context, symbol string) (*PriceQuote, error) {
	symbol = normalize(symbol)
	response, err := c.CoinGecko.GetSimplePrice(ctx, symbol, c.VsCurrencies)
	if err != nil {
		return nil, upstreamError("price of "+symbol, err)
	}
	return &PriceQuote{Symbol: symbol, Prices: response[symbol]}, nil
}

// GetMarketData returns the market row of symbol, nil when the symbol is unknown.
func (c *Client) GetMarketData(ctx context.Context, symbol string) (MarketRecord, error) {
	symbol = normalize(symbol)
	response, err := c.CoinGecko.GetCoinsMarkets(ctx, symbol, utils.CurrencyUSD)
	if err != nil {
		return nil, upstreamError("market data of "+symbol, err)
	}
	if len(response) == 0 {
		return nil, nil
	}
	return MarketRecord(response[0]), nil
}

// GetHistoricalSeries returns the daily bars of symbol over period. Bars without
// a close are dropped and an unknown symbol yields an empty series.
func (c *Client) GetHistoricalSeries(ctx context.Context, symbol string, period string) (OHLCVs, error) {
	if !ValidPeriod(period) {
		return nil, fmt.Errorf("%w: period %q must be one of %s", utils.ErrInvalidArgument, period, strings.Join(Periods, ", "))
	}

	response, err := c.Yahoo.GetChart(ctx, Ticker(symbol), period)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return OHLCVs{}, nil
		}
		return nil, upstreamError("history of "+normalize(symbol), err)
	}
	return SeriesFromChart(response), nil
}

// SeriesFromChart flattens a chart answer into bars sorted by date.
func SeriesFromChart(response *yahoo.GetChartResponse) OHLCVs {
	series := OHLCVs{}
	if response == nil || len(response.Chart.Result) == 0 {
		return series
	}
	result := response.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return series
	}
	quote := result.Indicators.Quote[0]

	for i, ts := range result.Timestamp {
		closePrice := at(quote.Close, i)
		if math.IsNaN(closePrice) {
			continue
		}
		series = append(series, OHLCV{
			Date:   dayOf(ts),
			Open:   at(quote.Open, i),
			High:   at(quote.High, i),
			Low:    at(quote.Low, i),
			Close:  closePrice,
			Volume: at(quote.Volume, i),
		})
	}
	sort.SliceStable(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}

func at(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return math.NaN()
	}
	return *values[i]
}

func dayOf(ts int64) time.Time {
	t := time.Unix(ts, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// upstreamError keeps deadline and upstream errors recognizable and turns
// anything else coming from a client into ErrUpstreamUnavailable.
func upstreamError(what string, err error) error {
	if errors.Is(err, utils.ErrUpstreamUnavailable) {
		return fmt.Errorf("fetching %s: %w", what, err)
	}
	return fmt.Errorf("fetching %s: %w: %w", what, utils.ErrUpstreamUnavailable, err)
}
