package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"cryptoportfolio/src/clients/coingecko"
	"cryptoportfolio/src/clients/yahoo"
	"cryptoportfolio/src/utils"
)

// MockClient is a MarketDataClientI that reads saved upstream answers from a
// directory instead of making actual API calls:
//
//	simple_price_response.json   CoinGecko /simple/price answer
//	coins_markets_response.json  CoinGecko /coins/markets rows of every symbol
//	history_<symbol>.json        Yahoo chart answer of one symbol
type MockClient struct {
	mockDataDir string

	// Err, when set, is returned by every call.
	Err error
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(mockDataDir string) (*MockClient, error) {
	if _, err := utils.ReadResponseFromFile(filepath.Join(mockDataDir, "simple_price_response.json")); err != nil {
		return nil, err
	}
	return &MockClient{mockDataDir: mockDataDir}, nil
}

func (c *MockClient) readJSON(name string, out interface{}) error {
	responseBytes, err := utils.ReadResponseFromFile(filepath.Join(c.mockDataDir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(responseBytes, out)
}

func (c *MockClient) GetPrice(_ context.Context, symbol string) (*PriceQuote, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	symbol = normalize(symbol)

	var response coingecko.SimplePriceResponse
	if err := c.readJSON("simple_price_response.json", &response); err != nil {
		return nil, err
	}
	return &PriceQuote{Symbol: symbol, Prices: response[symbol]}, nil
}

func (c *MockClient) GetMarketData(_ context.Context, symbol string) (MarketRecord, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	symbol = normalize(symbol)

	var response coingecko.CoinsMarketsResponse
	if err := c.readJSON("coins_markets_response.json", &response); err != nil {
		return nil, err
	}
	for _, record := range response {
		if s, _ := record["symbol"].(string); strings.EqualFold(s, symbol) {
			return MarketRecord(record), nil
		}
	}
	return nil, nil
}

func (c *MockClient) GetHistoricalSeries(_ context.Context, symbol string, period string) (OHLCVs, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	if !ValidPeriod(period) {
		return nil, fmt.Errorf("%w: period %q", utils.ErrInvalidArgument, period)
	}

	var response yahoo.GetChartResponse
	err := c.readJSON(fmt.Sprintf("history_%s.json", normalize(symbol)), &response)
	if errors.Is(err, fs.ErrNotExist) {
		return OHLCVs{}, nil
	}
	if err != nil {
		return nil, err
	}
	return SeriesFromChart(&response), nil
}
