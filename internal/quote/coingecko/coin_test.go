package coingecko_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pricenotifier/internal/quote/coingecko"
)

func TestCoinMarketCap(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock http client
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: the detailed endpoint is hit with the documented filters.
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "/api/v3/coins/bitcoin", req.URL.Path)
			q := req.URL.Query()
			require.Equal(t, "false", q.Get("localization"))
			require.Equal(t, "false", q.Get("tickers"))
			require.Equal(t, "true", q.Get("market_data"))
			return jsonResponse(t, http.StatusOK, map[string]any{
				"market_data": map[string]any{
					"market_cap": map[string]float64{"usd": 1_330_000_000_000},
				},
			}), nil
		}).
		Times(1)

	client, err := coingecko.NewClient("", coingecko.WithHTTPClient(httpClient))
	require.NoError(t, err)

	// Act
	got, err := client.CoinMarketCap(testContext(t), "bitcoin", "usd")
	require.NoError(t, err)

	// Assert
	require.InDelta(t, 1_330_000_000_000, got, 1e-3)
}

func TestCoinMarketCap_MissingCurrency(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(t, http.StatusOK, map[string]any{
				"market_data": map[string]any{
					"market_cap": map[string]float64{"eur": 1},
				},
			}), nil
		}).
		Times(1)

	client, err := coingecko.NewClient("", coingecko.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.CoinMarketCap(testContext(t), "bitcoin", "usd")
	require.Error(t, err)
}

func TestCoinMarketCap_EmptyID(t *testing.T) {
	t.Parallel()

	client, err := coingecko.NewClient("")
	require.NoError(t, err)

	_, err = client.CoinMarketCap(testContext(t), "  ", "usd")
	require.Error(t, err)
}
