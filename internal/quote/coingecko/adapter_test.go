package coingecko_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pricenotifier/internal/quote/coingecko"
)

type stubAPI struct {
	prices   map[string]coingecko.SimplePrice
	priceErr error

	caps     map[string]float64
	capErr   error
	capCalls int
}

func (s *stubAPI) SimplePrice(ctx context.Context, ids []string, currency string) (map[string]coingecko.SimplePrice, error) {
	if s.priceErr != nil {
		return nil, s.priceErr
	}
	return s.prices, nil
}

func (s *stubAPI) CoinMarketCap(ctx context.Context, id, currency string) (float64, error) {
	s.capCalls++
	if s.capErr != nil {
		return 0, s.capErr
	}
	return s.caps[id], nil
}

func TestAdapter_Fetch(t *testing.T) {
	t.Parallel()

	api := &stubAPI{
		prices: map[string]coingecko.SimplePrice{
			"bitcoin":  {Price: 67890.12, Volume24h: 1000, MarketCap: 50},
			"ethereum": {Price: 3500.5, Volume24h: 500, MarketCap: 20},
		},
	}
	adapter := coingecko.NewAdapter(coingecko.AdapterConfig{
		Currency:  "usd",
		SymbolMap: map[string]string{"bitcoin": "BTC"},
	}, api)

	quotes, err := adapter.Fetch(testContext(t), []string{"bitcoin", "ethereum", "missing-coin"})
	require.NoError(t, err)

	// Request order is preserved; unknown coins are dropped.
	require.Len(t, quotes, 2)
	require.Equal(t, "bitcoin", quotes[0].ID)
	require.Equal(t, "BTC", quotes[0].Symbol)
	require.InDelta(t, 67890.12, quotes[0].Price, 1e-9)
	require.Equal(t, "usd", quotes[0].Currency)
	require.Equal(t, "ETHEREUM", quotes[1].Symbol) // fallback for unmapped ids
	require.False(t, quotes[0].ReceivedAt.IsZero())
}

func TestAdapter_FetchError(t *testing.T) {
	t.Parallel()

	api := &stubAPI{priceErr: errors.New("boom")}
	adapter := coingecko.NewAdapter(coingecko.AdapterConfig{}, api)

	_, err := adapter.Fetch(testContext(t), []string{"bitcoin"})
	require.Error(t, err)
}

func TestAdapter_DetailedMarketCap(t *testing.T) {
	t.Parallel()

	api := &stubAPI{
		prices: map[string]coingecko.SimplePrice{
			"bitcoin": {Price: 100, Volume24h: 1, MarketCap: 50},
		},
		caps: map[string]float64{"bitcoin": 77},
	}
	adapter := coingecko.NewAdapter(coingecko.AdapterConfig{
		DetailedMarketCap: true,
		MarketCapTTL:      time.Minute,
	}, api)

	quotes, err := adapter.Fetch(testContext(t), []string{"bitcoin"})
	require.NoError(t, err)
	require.InDelta(t, 77.0, quotes[0].MarketCap, 1e-9)

	// The detailed figure is cached, so a second fetch inside the TTL does
	// not hit the per-coin endpoint again.
	_, err = adapter.Fetch(testContext(t), []string{"bitcoin"})
	require.NoError(t, err)
	require.Equal(t, 1, api.capCalls)
}

func TestAdapter_DetailedMarketCapFallback(t *testing.T) {
	t.Parallel()

	api := &stubAPI{
		prices: map[string]coingecko.SimplePrice{
			"bitcoin": {Price: 100, Volume24h: 1, MarketCap: 50},
		},
		capErr: errors.New("429"),
	}
	adapter := coingecko.NewAdapter(coingecko.AdapterConfig{
		DetailedMarketCap: true,
	}, api)

	// A failing detailed lookup falls back to the batch market cap.
	quotes, err := adapter.Fetch(testContext(t), []string{"bitcoin"})
	require.NoError(t, err)
	require.InDelta(t, 50.0, quotes[0].MarketCap, 1e-9)
}
