package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v6"
	validation "github.com/go-ozzo/ozzo-validation"
	str2duration "github.com/xhit/go-str2duration/v2"
)

// Config is loaded once at startup and stays immutable for the process
// lifetime. BOT_TOKEN and CHAT_ID are the only required settings; everything
// else has a working default.
type Config struct {
	BotToken string `env:"BOT_TOKEN,required"`
	ChatID   int64  `env:"CHAT_ID,required"`

	Coins    []string `env:"COINS" envSeparator:"," envDefault:"bitcoin"`
	Currency string   `env:"CURRENCY" envDefault:"usd"`

	// CoinGeckoAPIKey is optional; the public endpoints work without one.
	CoinGeckoAPIKey string `env:"COINGECKO_API_KEY"`

	PollInterval   time.Duration `env:"POLL_INTERVAL" envDefault:"60s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	// Alert threshold in percent. A price move whose absolute value meets
	// the threshold within a tracked timeframe produces a pump/dump alert.
	PriceChangeThreshold float64 `env:"PRICE_CHANGE_THRESHOLD" envDefault:"5.0"`

	// AlertsOnly suppresses the per-tick price update and keeps only
	// threshold alerts.
	AlertsOnly bool `env:"ALERTS_ONLY" envDefault:"false"`

	// DetailedMarketCap enables the per-coin market cap endpoint, which is
	// slower but more accurate than the batch figure.
	DetailedMarketCap bool          `env:"DETAILED_MARKET_CAP" envDefault:"true"`
	MarketCapCacheTTL time.Duration `env:"MARKET_CAP_CACHE_TTL" envDefault:"10m"`

	// CoinGecko request budget. Zero disables the corresponding limiter.
	MaxRequestsPerMinute int `env:"MAX_RPM" envDefault:"0"`
	Burst                int `env:"BURST" envDefault:"1"`
	// MinRequestInterval is the fallback gate when MAX_RPM is unset.
	MinRequestInterval time.Duration `env:"MIN_REQUEST_INTERVAL" envDefault:"0s"`
	// QuoteCacheTTL reuses a fetched quote batch for this long. Zero disables
	// the cache.
	QuoteCacheTTL time.Duration `env:"QUOTE_CACHE_TTL" envDefault:"0s"`

	// GreetingFile optionally holds a message sent once at startup.
	GreetingFile string `env:"GREETING_FILE"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment. Durations accept the
// extended syntax ("1d12h") in addition to time.ParseDuration forms.
func Load() (Config, error) {
	var cfg Config
	err := env.ParseWithFuncs(&cfg, map[reflect.Type]env.ParserFunc{
		reflect.TypeOf(time.Duration(0)): func(v string) (interface{}, error) {
			return str2duration.ParseDuration(v)
		},
	})
	if err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BotToken, validation.Required),
		validation.Field(&c.ChatID, validation.Required),
		validation.Field(&c.Coins, validation.Required),
		validation.Field(&c.Currency, validation.Required),
		validation.Field(&c.PollInterval, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.RequestTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.PriceChangeThreshold, validation.Min(0.0)),
		validation.Field(&c.MaxRequestsPerMinute, validation.Min(0)),
	)
}
