package quote

import (
	"context"
	"time"
)

// Quote is the normalized shape returned by all providers.
// It is created fresh on each poll and discarded after formatting.
type Quote struct {
	ID         string    `json:"id"`     // provider coin id, e.g. "bitcoin"
	Symbol     string    `json:"symbol"` // display symbol, e.g. "BTC"
	Currency   string    `json:"currency"`
	Price      float64   `json:"price"`
	Volume24h  float64   `json:"volume_24h"`
	MarketCap  float64   `json:"market_cap"`
	ReceivedAt time.Time `json:"received_at"`
}

type Provider interface {
	Name() string
	Fetch(ctx context.Context, ids []string) ([]Quote, error)
}
