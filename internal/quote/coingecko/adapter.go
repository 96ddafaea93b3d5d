package coingecko

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"pricenotifier/internal/quote"
)

// API is the slice of the CoinGecko client the adapter depends on.
type API interface {
	SimplePrice(ctx context.Context, ids []string, currency string) (map[string]SimplePrice, error)
	CoinMarketCap(ctx context.Context, id, currency string) (float64, error)
}

// AdapterConfig controls how quotes are built from API responses.
type AdapterConfig struct {
	Name     string
	Currency string
	// SymbolMap maps coin ids to display symbols ("bitcoin" -> "BTC").
	// Unmapped ids fall back to the upper-cased id.
	SymbolMap map[string]string
	// DetailedMarketCap replaces the batch market cap with the figure from
	// the per-coin endpoint. Failures fall back to the batch value.
	DetailedMarketCap bool
	// MarketCapTTL caches detailed market caps for this long.
	MarketCapTTL time.Duration
}

type capEntry struct {
	value float64
	until time.Time
}

// Adapter exposes the CoinGecko client as a quote.Provider.
type Adapter struct {
	cfg AdapterConfig
	api API

	// cached detailed market caps, keyed by coin id
	caps   map[string]capEntry
	capsMu sync.RWMutex

	// coalesce concurrent market cap refreshes per coin
	sf singleflight.Group
}

func NewAdapter(cfg AdapterConfig, api API) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "CoinGecko"
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if cfg.MarketCapTTL <= 0 {
		cfg.MarketCapTTL = 10 * time.Minute
	}
	return &Adapter{cfg: cfg, api: api, caps: make(map[string]capEntry)}
}

func (a *Adapter) Name() string { return a.cfg.Name }

func (a *Adapter) Fetch(ctx context.Context, ids []string) ([]quote.Quote, error) {
	prices, err := a.api.SimplePrice(ctx, ids, a.cfg.Currency)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]quote.Quote, 0, len(ids))
	for _, id := range ids {
		sp, ok := prices[id]
		if !ok {
			continue
		}
		mcap := sp.MarketCap
		if a.cfg.DetailedMarketCap {
			if detailed, err := a.marketCap(ctx, id); err == nil && detailed > 0 {
				mcap = detailed
			}
		}
		out = append(out, quote.Quote{
			ID:         id,
			Symbol:     a.symbol(id),
			Currency:   a.cfg.Currency,
			Price:      sp.Price,
			Volume24h:  sp.Volume24h,
			MarketCap:  mcap,
			ReceivedAt: now,
		})
	}
	return out, nil
}

func (a *Adapter) symbol(id string) string {
	if s, ok := a.cfg.SymbolMap[id]; ok && s != "" {
		return s
	}
	return strings.ToUpper(id)
}

// marketCap returns the detailed market cap for id, refreshing the cached
// value at most once per TTL across concurrent callers.
func (a *Adapter) marketCap(ctx context.Context, id string) (float64, error) {
	a.capsMu.RLock()
	e, ok := a.caps[id]
	a.capsMu.RUnlock()
	if ok && time.Now().Before(e.until) {
		return e.value, nil
	}

	v, err, _ := a.sf.Do(id, func() (any, error) {
		mc, err := a.api.CoinMarketCap(ctx, id, a.cfg.Currency)
		if err != nil {
			return 0.0, err
		}
		a.capsMu.Lock()
		a.caps[id] = capEntry{value: mc, until: time.Now().Add(a.cfg.MarketCapTTL)}
		a.capsMu.Unlock()
		return mc, nil
	})
	if err != nil {
		// A stale value beats no value for display purposes.
		if ok {
			return e.value, nil
		}
		return 0, err
	}
	return v.(float64), nil
}
