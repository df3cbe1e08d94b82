package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"cryptoportfolio/src/config"
	"cryptoportfolio/src/utils/requests"
)

const apiKeyHeader = "x-cg-demo-api-key"

type CoinGeckoServiceClientI interface {
	GetSimplePrice(ctx context.Context, symbol string, vsCurrencies []string) (SimplePriceResponse, error)
	GetCoinsMarkets(ctx context.Context, symbol string, vsCurrency string) (CoinsMarketsResponse, error)
}

type CoinGeckoServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of CoinGeckoServiceClient
func NewClient(cfg *config.Config) *CoinGeckoServiceClient {
	headers := map[string]string{}
	if key := cfg.ExternalClients.CoinGecko.APIKey; key != "" {
		headers[apiKeyHeader] = key
	}
	return &CoinGeckoServiceClient{
		API:     requests.NewExternalAPIService(cfg.ExternalClients.Timeout, headers),
		BaseURL: strings.TrimRight(cfg.ExternalClients.CoinGecko.BaseURL, "/"),
	}
}

// GetSimplePrice fetches the current price of symbol in each of vsCurrencies.
func (c *CoinGeckoServiceClient) GetSimplePrice(ctx context.Context, symbol string, vsCurrencies []string) (SimplePriceResponse, error) {
	endpoint := fmt.Sprintf("%s/simple/price", c.BaseURL)

	params := url.Values{}
	params.Add("symbols", symbol)
	params.Add("vs_currencies", strings.Join(vsCurrencies, ","))

	var response SimplePriceResponse
	if err := c.API.GetJSON(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// GetCoinsMarkets fetches market cap, volume, supply and price data of symbol.
func (c *CoinGeckoServiceClient) GetCoinsMarkets(ctx context.Context, symbol string, vsCurrency string) (CoinsMarketsResponse, error) {
	endpoint := fmt.Sprintf("%s/coins/markets", c.BaseURL)

	params := url.Values{}
	params.Add("vs_currency", vsCurrency)
	params.Add("symbols", symbol)

	var response CoinsMarketsResponse
	if err := c.API.GetJSON(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}
	return response, nil
}
