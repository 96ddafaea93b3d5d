package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

type coinResponse struct {
	MarketData struct {
		MarketCap map[string]float64 `json:"market_cap"`
	} `json:"market_data"`
}

// CoinMarketCap fetches the market cap for a single coin from the detailed
// /coins/{id} endpoint, which is more accurate than the batch figure but
// costs one request per coin.
func (c *Client) CoinMarketCap(ctx context.Context, id, currency string) (float64, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, fmt.Errorf("coingecko: empty coin id")
	}
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = "usd"
	}

	query := url.Values{
		"localization":   {"false"},
		"tickers":        {"false"},
		"market_data":    {"true"},
		"community_data": {"false"},
		"developer_data": {"false"},
		"sparkline":      {"false"},
	}

	var raw coinResponse
	if err := c.get(ctx, "/api/v3/coins/"+url.PathEscape(id), query, &raw); err != nil {
		return 0, err
	}
	mc, ok := raw.MarketData.MarketCap[currency]
	if !ok {
		return 0, fmt.Errorf("coingecko: no %s market cap for %s", currency, id)
	}
	return mc, nil
}
