package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"pricenotifier/internal/config"
	"pricenotifier/internal/httpx"
	"pricenotifier/internal/monitor"
	"pricenotifier/internal/notify"
	"pricenotifier/internal/notify/telegram"
	"pricenotifier/internal/quote"
	"pricenotifier/internal/quote/cache"
	"pricenotifier/internal/quote/coingecko"
	"pricenotifier/internal/quote/ratelimit"
)

// defaultSymbols maps CoinGecko ids to display tickers for common coins.
// Unlisted ids render as the upper-cased id.
var defaultSymbols = map[string]string{
	"bitcoin":          "BTC",
	"ethereum":         "ETH",
	"solana":           "SOL",
	"dogecoin":         "DOGE",
	"cardano":          "ADA",
	"ripple":           "XRP",
	"litecoin":         "LTC",
	"polkadot":         "DOT",
	"binancecoin":      "BNB",
	"tron":             "TRX",
	"chainlink":        "LINK",
	"avalanche-2":      "AVAX",
	"monero":           "XMR",
	"stellar":          "XLM",
	"the-open-network": "TON",
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		With().Timestamp().Logger()

	// Config problems are fatal before any network call is attempted.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, keeping info")
	} else {
		log = log.Level(level)
	}

	httpClient := httpx.New(cfg.RequestTimeout)

	client, err := coingecko.NewClient(cfg.CoinGeckoAPIKey,
		coingecko.WithHTTPClient(httpClient.HTTP),
		coingecko.WithHeader(http.Header{
			"User-Agent": []string{httpClient.UserAgent},
		}),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("coingecko client error")
	}

	var p quote.Provider = coingecko.NewAdapter(coingecko.AdapterConfig{
		Currency:          cfg.Currency,
		SymbolMap:         defaultSymbols,
		DetailedMarketCap: cfg.DetailedMarketCap,
		MarketCapTTL:      cfg.MarketCapCacheTTL,
	}, client)
	// Prefer a token bucket with burst when a request budget is set,
	// otherwise fall back to a plain minimum interval.
	if cfg.MaxRequestsPerMinute > 0 {
		rate := float64(cfg.MaxRequestsPerMinute) / 60.0
		p = &ratelimit.TokenBucketProvider{P: p, TB: ratelimit.NewTokenBucket(rate, cfg.Burst)}
	} else if cfg.MinRequestInterval > 0 {
		p = &ratelimit.MinInterval{P: p, Interval: cfg.MinRequestInterval}
	}
	if cfg.QuoteCacheTTL > 0 {
		p = &cache.Provider{P: p, TTL: cfg.QuoteCacheTTL}
	}

	notifier, err := telegram.New(cfg.BotToken, cfg.ChatID, telegram.WithClient(httpClient.HTTP))
	if err != nil {
		log.Fatal().Err(err).Msg("telegram bot error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional startup greeting doubles as a delivery check.
	greeting, err := notify.ReadGreeting(cfg.GreetingFile)
	if err != nil {
		log.Warn().Err(err).Str("file", cfg.GreetingFile).Msg("greeting unavailable")
	} else if greeting != "" {
		if err := notifier.Notify(ctx, greeting); err != nil {
			log.Warn().Err(err).Msg("greeting not delivered")
		}
	}

	w := monitor.NewWatcher(monitor.Config{
		Coins:                cfg.Coins,
		Interval:             cfg.PollInterval,
		PriceChangeThreshold: cfg.PriceChangeThreshold,
		AlertsOnly:           cfg.AlertsOnly,
	}, p, notifier, log)

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("watcher stopped")
		os.Exit(1)
	}
	log.Info().Msg("shutdown complete")
}
