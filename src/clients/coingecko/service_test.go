package coingecko_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"cryptoportfolio/src/clients/coingecko"
	"cryptoportfolio/src/config"
	"cryptoportfolio/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *coingecko.CoinGeckoServiceClient {
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	cfg := &config.Config{}
	cfg.ExternalClients.Timeout = time.Second
	cfg.ExternalClients.CoinGecko.BaseURL = ts.URL
	cfg.ExternalClients.CoinGecko.APIKey = "demo-key"
	return coingecko.NewClient(cfg)
}

func serveFile(t *testing.T, path string) http.HandlerFunc {
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

func TestGetSimplePrice(t *testing.T) {
	t.Run("keeps currency order and sends the api key", func(t *testing.T) {
		var gotQuery, gotKey string
		body := serveFile(t, "testdata/simple_price_response.json")
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			gotKey = r.Header.Get("x-cg-demo-api-key")
			assert.Equal(t, "/simple/price", r.URL.Path)
			body(w, r)
		})

		result, err := client.GetSimplePrice(context.Background(), "btc", []string{"usd", "eur"})
		require.NoError(t, err)

		assert.Equal(t, "symbols=btc&vs_currencies=usd%2Ceur", gotQuery)
		assert.Equal(t, "demo-key", gotKey)
		assert.Equal(t, coingecko.CurrencyPrices{
			{Currency: "usd", Value: 67187.34},
			{Currency: "eur", Value: 61901.12},
		}, result["btc"])
		assert.Equal(t, coingecko.CurrencyPrices{
			{Currency: "gbp", Value: 0.11},
			{Currency: "jpy", Value: 21.4},
		}, result["doge"])
	})

	t.Run("unknown symbol is an empty answer", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

		result, err := client.GetSimplePrice(context.Background(), "nope", []string{"usd"})
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("server error is upstream unavailable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.GetSimplePrice(context.Background(), "btc", []string{"usd"})
		assert.ErrorIs(t, err, utils.ErrUpstreamUnavailable)
	})

	t.Run("garbage body is upstream unavailable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		})

		_, err := client.GetSimplePrice(context.Background(), "btc", []string{"usd"})
		assert.ErrorIs(t, err, utils.ErrUpstreamUnavailable)
	})

	t.Run("timeout is upstream unavailable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(3 * time.Second):
			}
		})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := client.GetSimplePrice(ctx, "btc", []string{"usd"})
		assert.ErrorIs(t, err, utils.ErrUpstreamUnavailable)
	})
}

func TestGetCoinsMarkets(t *testing.T) {
	client := newTestClient(t, serveFile(t, "testdata/coins_markets_response.json"))

	result, err := client.GetCoinsMarkets(context.Background(), "eth", "usd")
	require.NoError(t, err)
	require.Len(t, result, 1)

	record := result[0]
	assert.Equal(t, 3245.17, record["current_price"])
	assert.Equal(t, float64(390112233445), record["market_cap"])

	maxSupply, present := record["max_supply"]
	assert.True(t, present)
	assert.Nil(t, maxSupply)
}

func TestCurrencyPricesNull(t *testing.T) {
	var prices coingecko.CurrencyPrices
	require.NoError(t, prices.UnmarshalJSON([]byte(`null`)))
	assert.Nil(t, prices)

	require.NoError(t, prices.UnmarshalJSON([]byte(`{"usd": null, "eur": 2.5}`)))
	assert.Equal(t, coingecko.CurrencyPrices{{Currency: "eur", Value: 2.5}}, prices)
}
