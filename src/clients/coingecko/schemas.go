package coingecko

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CurrencyPrice is one vs_currency entry of a /simple/price answer.
type CurrencyPrice struct {
	Currency string
	Value    float64
}

// CurrencyPrices keeps the currencies in the order the upstream sent them.
type CurrencyPrices []CurrencyPrice

// UnmarshalJSON decodes {"usd": 1.0, "eur": 0.9} preserving key order. Null values
// are skipped.
func (c *CurrencyPrices) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("coingecko: expected object of prices, got %v", tok)
	}

	prices := CurrencyPrices{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("coingecko: unexpected key %v", keyTok)
		}
		var value *float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("coingecko: price for %s: %w", key, err)
		}
		if value == nil {
			continue
		}
		prices = append(prices, CurrencyPrice{Currency: key, Value: *value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = prices
	return nil
}

// SimplePriceResponse maps a lower case symbol to its prices.
type SimplePriceResponse map[string]CurrencyPrices

// CoinsMarketsResponse is the /coins/markets answer kept untyped so callers can
// tell an absent field from a null one.
type CoinsMarketsResponse []map[string]interface{}
