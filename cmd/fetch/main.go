// Command fetch performs a single quote fetch and prints the result as JSON.
// Useful for checking CoinGecko reachability without touching Telegram.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"pricenotifier/internal/httpx"
	"pricenotifier/internal/quote"
	"pricenotifier/internal/quote/coingecko"
)

func main() {
	var coinsCSV string
	var currency string
	var detailedCaps bool
	var timeout int

	flag.StringVar(&coinsCSV, "coins", getenv("COINS", "bitcoin"), "comma-separated CoinGecko coin ids")
	flag.StringVar(&currency, "currency", getenv("CURRENCY", "usd"), "vs-currency")
	flag.BoolVar(&detailedCaps, "detailed-caps", false, "fetch per-coin market caps (one extra request per coin)")
	flag.IntVar(&timeout, "timeout", 15, "request timeout seconds")
	flag.Parse()

	coins := splitCSV(coinsCSV)
	if len(coins) == 0 {
		log.Fatal("no coins provided")
	}

	httpClient := httpx.New(time.Duration(timeout) * time.Second)
	client, err := coingecko.NewClient(os.Getenv("COINGECKO_API_KEY"),
		coingecko.WithHTTPClient(httpClient.HTTP),
		coingecko.WithHeader(http.Header{
			"User-Agent": []string{httpClient.UserAgent},
		}),
	)
	if err != nil {
		log.Fatalf("coingecko client: %v", err)
	}

	p := coingecko.NewAdapter(coingecko.AdapterConfig{
		Currency:          currency,
		DetailedMarketCap: detailedCaps,
	}, client)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	quotes, err := p.Fetch(ctx, coins)
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}
	if len(quotes) == 0 {
		log.Fatal("no quotes received")
	}

	out := struct {
		Quotes []quote.Quote `json:"quotes"`
	}{Quotes: quotes}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
