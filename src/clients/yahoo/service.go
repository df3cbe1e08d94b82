package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"cryptoportfolio/src/config"
	"cryptoportfolio/src/utils/requests"
)

type YahooServiceClientI interface {
	GetChart(ctx context.Context, ticker string, rangePeriod string) (*GetChartResponse, error)
}

type YahooServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of YahooServiceClient
func NewClient(cfg *config.Config) *YahooServiceClient {
	return &YahooServiceClient{
		// The chart API rejects requests without a browser-like agent.
		API:     requests.NewExternalAPIService(cfg.ExternalClients.Timeout, map[string]string{"User-Agent": "Mozilla/5.0"}),
		BaseURL: strings.TrimRight(cfg.ExternalClients.Yahoo.BaseURL, "/"),
	}
}

// GetChart fetches the daily bars of ticker over rangePeriod (1mo, 1y, max...).
func (c *YahooServiceClient) GetChart(ctx context.Context, ticker string, rangePeriod string) (*GetChartResponse, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s", c.BaseURL, url.PathEscape(ticker))

	params := url.Values{}
	params.Add("range", rangePeriod)
	params.Add("interval", "1d")

	var response GetChartResponse
	if err := c.API.GetJSON(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
