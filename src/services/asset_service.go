package services

import (
	"context"
	"fmt"
	"strings"

	"cryptoportfolio/src/clients/marketdata"
	"cryptoportfolio/src/schemas"
	"cryptoportfolio/src/utils"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Market metrics readable from a market record.
const (
	MetricMarketCap   = "market_cap"
	MetricTotalVolume = "total_volume"
	MetricMaxSupply   = "max_supply"
)

type AssetServiceI interface {
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
	MarketCap(ctx context.Context, symbol string) (*float64, error)
	TotalVolume(ctx context.Context, symbol string) (*float64, error)
	MaxSupply(ctx context.Context, symbol string) (*float64, error)
	Metric(ctx context.Context, symbol string, metric string) (*float64, error)
	Valuation(ctx context.Context, symbol string, quantity decimal.Decimal) (float64, error)
	Quote(ctx context.Context, symbol string) (*schemas.AssetQuote, error)
	History(ctx context.Context, symbol string, period string) ([]schemas.Candle, error)
}

type AssetService struct {
	client marketdata.MarketDataClientI
}

func NewAssetService(client marketdata.MarketDataClientI) *AssetService {
	return &AssetService{client: client}
}

// NormalizeSymbol lower cases and trims a symbol, rejecting empty ones.
func NormalizeSymbol(symbol string) (string, error) {
	symbol = strings.ToLower(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", fmt.Errorf("%w: empty asset symbol", utils.ErrInvalidArgument)
	}
	return symbol, nil
}

// CurrentPrice returns the price of symbol in USD, else EUR, else the first
// currency the upstream answered with. A symbol without any price is worth 0.
func (s *AssetService) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return 0, err
	}
	quote, err := s.client.GetPrice(ctx, symbol)
	if err != nil {
		return 0, err
	}
	return pickPrice(quote), nil
}

func pickPrice(quote *marketdata.PriceQuote) float64 {
	if price, ok := quote.Get(utils.CurrencyUSD); ok {
		return price
	}
	if price, ok := quote.Get(utils.CurrencyEUR); ok {
		return price
	}
	if quote != nil && len(quote.Prices) > 0 {
		return quote.Prices[0].Value
	}
	return 0
}

func (s *AssetService) MarketCap(ctx context.Context, symbol string) (*float64, error) {
	return s.Metric(ctx, symbol, MetricMarketCap)
}

func (s *AssetService) TotalVolume(ctx context.Context, symbol string) (*float64, error) {
	return s.Metric(ctx, symbol, MetricTotalVolume)
}

func (s *AssetService) MaxSupply(ctx context.Context, symbol string) (*float64, error) {
	return s.Metric(ctx, symbol, MetricMaxSupply)
}

// Metric reads one field of the market record of symbol. A field the upstream
// did not send is utils.ErrMetricUnavailable, a field sent as null is a nil
// value.
func (s *AssetService) Metric(ctx context.Context, symbol string, metric string) (*float64, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	record, err := s.client.GetMarketData(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return readMetric(record, symbol, metric)
}

func readMetric(record marketdata.MarketRecord, symbol, metric string) (*float64, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: no market data for %s", utils.ErrMetricUnavailable, symbol)
	}

	value, err := jsonpath.Get("$."+metric, map[string]interface{}(record))
	if err != nil {
		return nil, fmt.Errorf("%w: %s of %s: %v", utils.ErrMetricUnavailable, metric, symbol, err)
	}
	if value == nil {
		return nil, nil
	}
	f, ok := value.(float64)
	if !ok {
		return nil, fmt.Errorf("%w: %s of %s is %T, not a number", utils.ErrMetricUnavailable, metric, symbol, value)
	}
	return &f, nil
}

// Valuation is price times quantity, 0 when symbol has no price.
func (s *AssetService) Valuation(ctx context.Context, symbol string, quantity decimal.Decimal) (float64, error) {
	price, err := s.CurrentPrice(ctx, symbol)
	if err != nil {
		return 0, err
	}
	return valuationOf(price, quantity), nil
}

func valuationOf(price float64, quantity decimal.Decimal) float64 {
	if price == 0 {
		return 0
	}
	return decimal.NewFromFloat(price).Mul(quantity).InexactFloat64()
}

// Quote collects the price and market metrics of symbol. Metrics the upstream
// does not report are left null.
func (s *AssetService) Quote(ctx context.Context, symbol string) (*schemas.AssetQuote, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	price, err := s.CurrentPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}
	record, err := s.client.GetMarketData(ctx, symbol)
	if err != nil {
		return nil, err
	}

	quote := &schemas.AssetQuote{Symbol: symbol, PriceUSD: price}
	for metric, dst := range map[string]**float64{
		MetricMarketCap:   &quote.MarketCap,
		MetricTotalVolume: &quote.TotalVolume,
		MetricMaxSupply:   &quote.MaxSupply,
	} {
		v, err := readMetric(record, symbol, metric)
		if err != nil {
			continue
		}
		*dst = v
	}
	return quote, nil
}

// History returns the daily bars of symbol over period.
func (s *AssetService) History(ctx context.Context, symbol string, period string) ([]schemas.Candle, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	series, err := s.client.GetHistoricalSeries(ctx, symbol, period)
	if err != nil {
		return nil, err
	}

	candles := make([]schemas.Candle, len(series))
	for i, bar := range series {
		candles[i] = schemas.Candle{
			Date:   utils.FormatDate(bar.Date),
			Open:   schemas.Float(bar.Open),
			High:   schemas.Float(bar.High),
			Low:    schemas.Float(bar.Low),
			Close:  schemas.Float(bar.Close),
			Volume: schemas.Float(bar.Volume),
		}
	}
	return candles, nil
}
