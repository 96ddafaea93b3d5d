package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// SimplePrice is the per-coin slice of a /simple/price response, already
// resolved against the requested vs-currency.
type SimplePrice struct {
	Price     float64
	Volume24h float64
	MarketCap float64
}

// SimplePrice fetches spot prices for the given coin ids in one batch call.
// The response maps coin id to {"usd": 67890.12, "usd_24h_vol": ...,
// "usd_market_cap": ...}; coins unknown to the API are simply absent.
func (c *Client) SimplePrice(ctx context.Context, ids []string, currency string) (map[string]SimplePrice, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("coingecko: no coin ids")
	}
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = "usd"
	}

	query := url.Values{
		"ids":                {strings.Join(ids, ",")},
		"vs_currencies":      {currency},
		"include_24hr_vol":   {"true"},
		"include_market_cap": {"true"},
	}

	var raw map[string]map[string]float64
	if err := c.get(ctx, "/api/v3/simple/price", query, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("coingecko: empty response for ids %q", strings.Join(ids, ","))
	}

	out := make(map[string]SimplePrice, len(raw))
	for id, fields := range raw {
		price, ok := fields[currency]
		if !ok {
			continue
		}
		out[id] = SimplePrice{
			Price:     price,
			Volume24h: fields[currency+"_24h_vol"],
			MarketCap: fields[currency+"_market_cap"],
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("coingecko: no %s prices in response", currency)
	}
	return out, nil
}
