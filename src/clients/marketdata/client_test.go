package marketdata_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"testing"
	"time"

	"cryptoportfolio/src/clients/coingecko"
	"cryptoportfolio/src/clients/marketdata"
	"cryptoportfolio/src/clients/yahoo"
	"cryptoportfolio/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type coinGeckoStub struct {
	prices  coingecko.SimplePriceResponse
	markets coingecko.CoinsMarketsResponse
	err     error

	gotSymbol     string
	gotCurrencies []string
}

func (s *coinGeckoStub) GetSimplePrice(_ context.Context, symbol string, vsCurrencies []string) (coingecko.SimplePriceResponse, error) {
	s.gotSymbol = symbol
	s.gotCurrencies = vsCurrencies
	return s.prices, s.err
}

func (s *coinGeckoStub) GetCoinsMarkets(_ context.Context, symbol string, _ string) (coingecko.CoinsMarketsResponse, error) {
	s.gotSymbol = symbol
	return s.markets, s.err
}

type yahooStub struct {
	response  *yahoo.GetChartResponse
	err       error
	gotTicker string
}

func (s *yahooStub) GetChart(_ context.Context, ticker string, _ string) (*yahoo.GetChartResponse, error) {
	s.gotTicker = ticker
	return s.response, s.err
}

func ptr(v float64) *float64 { return &v }

func TestTicker(t *testing.T) {
	assert.Equal(t, "BTC-USD", marketdata.Ticker("btc"))
	assert.Equal(t, "ETH-USD", marketdata.Ticker(" Eth "))
	assert.Equal(t, "ETH-EUR", marketdata.Ticker("eth-eur"))
}

func TestValidPeriod(t *testing.T) {
	for _, p := range []string{"1d", "1mo", "1y", "ytd", "max"} {
		assert.True(t, marketdata.ValidPeriod(p), p)
	}
	for _, p := range []string{"", "2mo", "1Y", "forever"} {
		assert.False(t, marketdata.ValidPeriod(p), p)
	}
}

func TestGetPrice(t *testing.T) {
	t.Run("keeps upstream currency order", func(t *testing.T) {
		stub := &coinGeckoStub{prices: coingecko.SimplePriceResponse{
			"doge": {{Currency: "gbp", Value: 0.1}, {Currency: "jpy", Value: 20}},
		}}
		client := &marketdata.Client{CoinGecko: stub, VsCurrencies: []string{"usd", "eur"}}

		quote, err := client.GetPrice(context.Background(), "DOGE")
		require.NoError(t, err)
		assert.Equal(t, "doge", stub.gotSymbol)
		assert.Equal(t, []string{"usd", "eur"}, stub.gotCurrencies)
		assert.Equal(t, "gbp", quote.Prices[0].Currency)

		jpy, ok := quote.Get("jpy")
		assert.True(t, ok)
		assert.Equal(t, 20.0, jpy)
		_, ok = quote.Get("usd")
		assert.False(t, ok)
	})

	t.Run("unknown symbol is an empty quote", func(t *testing.T) {
		client := &marketdata.Client{CoinGecko: &coinGeckoStub{prices: coingecko.SimplePriceResponse{}}}

		quote, err := client.GetPrice(context.Background(), "nope")
		require.NoError(t, err)
		assert.Equal(t, "nope", quote.Symbol)
		assert.Empty(t, quote.Prices)
	})

	t.Run("client errors become upstream unavailable", func(t *testing.T) {
		client := &marketdata.Client{CoinGecko: &coinGeckoStub{err: errors.New("boom")}}

		_, err := client.GetPrice(context.Background(), "btc")
		assert.ErrorIs(t, err, utils.ErrUpstreamUnavailable)
	})

	t.Run("deadline stays visible", func(t *testing.T) {
		upstream := fmt.Errorf("%w: %w", utils.ErrUpstreamUnavailable, context.DeadlineExceeded)
		client := &marketdata.Client{CoinGecko: &coinGeckoStub{err: upstream}}

		_, err := client.GetPrice(context.Background(), "btc")
		assert.ErrorIs(t, err, utils.ErrUpstreamUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestGetMarketData(t *testing.T) {
	t.Run("first row", func(t *testing.T) {
		stub := &coinGeckoStub{markets: coingecko.CoinsMarketsResponse{
			{"symbol": "eth", "market_cap": 1.0, "max_supply": nil},
		}}
		client := &marketdata.Client{CoinGecko: stub}

		record, err := client.GetMarketData(context.Background(), "ETH")
		require.NoError(t, err)
		assert.Equal(t, "eth", stub.gotSymbol)
		assert.Equal(t, 1.0, record["market_cap"])
		_, present := record["max_supply"]
		assert.True(t, present)
	})

	t.Run("unknown symbol is a nil record", func(t *testing.T) {
		client := &marketdata.Client{CoinGecko: &coinGeckoStub{markets: coingecko.CoinsMarketsResponse{}}}

		record, err := client.GetMarketData(context.Background(), "nope")
		require.NoError(t, err)
		assert.Nil(t, record)
	})
}

func TestGetHistoricalSeries(t *testing.T) {
	chart := &yahoo.GetChartResponse{Chart: yahoo.Chart{Result: []yahoo.ChartResult{{
		Timestamp: []int64{1717286400 + 3600, 1717200000, 1717372800},
		Indicators: yahoo.Indicators{Quote: []yahoo.Quote{{
			Open:   []*float64{ptr(2), ptr(1), ptr(3)},
			High:   []*float64{ptr(2), ptr(1), nil},
			Low:    []*float64{ptr(2), ptr(1), ptr(3)},
			Close:  []*float64{ptr(20), ptr(10), nil},
			Volume: []*float64{ptr(200), nil, ptr(300)},
		}}},
	}}}}

	t.Run("drops rows without close and sorts by date", func(t *testing.T) {
		stub := &yahooStub{response: chart}
		client := &marketdata.Client{Yahoo: stub}

		series, err := client.GetHistoricalSeries(context.Background(), "btc", "1mo")
		require.NoError(t, err)
		assert.Equal(t, "BTC-USD", stub.gotTicker)

		require.Len(t, series, 2)
		assert.Equal(t, []float64{10, 20}, series.Close())
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), series[0].Date)
		assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), series[1].Date)
		assert.True(t, math.IsNaN(series[0].Volume))
		assert.Equal(t, 200.0, series[1].Volume)
	})

	t.Run("invalid period", func(t *testing.T) {
		client := &marketdata.Client{Yahoo: &yahooStub{response: chart}}

		_, err := client.GetHistoricalSeries(context.Background(), "btc", "2mo")
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	})

	t.Run("unknown symbol is an empty series", func(t *testing.T) {
		client := &marketdata.Client{Yahoo: &yahooStub{err: fmt.Errorf("%w: chart", utils.ErrNotFound)}}

		series, err := client.GetHistoricalSeries(context.Background(), "nope", "1y")
		require.NoError(t, err)
		assert.NotNil(t, series)
		assert.Empty(t, series)
	})

	t.Run("transport failure", func(t *testing.T) {
		client := &marketdata.Client{Yahoo: &yahooStub{err: fmt.Errorf("%w: reset", utils.ErrUpstreamUnavailable)}}

		_, err := client.GetHistoricalSeries(context.Background(), "btc", "1y")
		assert.ErrorIs(t, err, utils.ErrUpstreamUnavailable)
	})

	t.Run("empty chart", func(t *testing.T) {
		assert.Empty(t, marketdata.SeriesFromChart(nil))
		assert.Empty(t, marketdata.SeriesFromChart(&yahoo.GetChartResponse{}))
	})
}

func TestMockClient(t *testing.T) {
	client, err := marketdata.NewMockClient("testdata")
	require.NoError(t, err)
	ctx := context.Background()

	quote, err := client.GetPrice(ctx, "eth")
	require.NoError(t, err)
	assert.Equal(t, coingecko.CurrencyPrices{{Currency: "eur", Value: 3000}}, quote.Prices)

	record, err := client.GetMarketData(ctx, "btc")
	require.NoError(t, err)
	assert.Equal(t, 21000000.0, record["max_supply"])

	record, err = client.GetMarketData(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, record)

	series, err := client.GetHistoricalSeries(ctx, "btc", "1mo")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30, 40}, series.Close())
	assert.Equal(t, []float64{100, 200, 300, 400}, series.Volume())

	series, err = client.GetHistoricalSeries(ctx, "doge", "1mo")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.12}, series.Close())

	series, err = client.GetHistoricalSeries(ctx, "nope", "1mo")
	require.NoError(t, err)
	assert.Empty(t, series)

	client.Err = utils.ErrUpstreamUnavailable
	_, err = client.GetPrice(ctx, "btc")
	assert.ErrorIs(t, err, utils.ErrUpstreamUnavailable)

	_, err = marketdata.NewMockClient(os.TempDir() + "/missing-market-data")
	assert.Error(t, err)
}
