package cache

import (
	"context"
	"sync"
	"time"

	"pricenotifier/internal/quote"
)

// entry stores the cached quote for a single coin with expiry.
type entry struct {
	expiresAt time.Time
	q         quote.Quote
}

// Provider caches results per coin for a TTL. It requests only missing coins
// from the underlying provider and combines cached + fresh results, which
// keeps tight poll intervals from burning through the upstream request
// budget.
type Provider struct {
	P   quote.Provider
	TTL time.Duration

	mu    sync.RWMutex
	items map[string]entry // key: coin id
}

func (c *Provider) Name() string { return c.P.Name() }

// Fetch returns quotes for the requested coin ids, using cached entries while
// they are valid.
func (c *Provider) Fetch(ctx context.Context, ids []string) ([]quote.Quote, error) {
	if c.TTL <= 0 {
		return c.P.Fetch(ctx, ids)
	}

	now := time.Now()
	cached := make(map[string]quote.Quote, len(ids))
	missing := make([]string, 0, len(ids))

	c.mu.RLock()
	for _, id := range ids {
		if e, ok := c.items[id]; ok && now.Before(e.expiresAt) {
			cached[id] = e.q
			continue
		}
		missing = append(missing, id)
	}
	c.mu.RUnlock()

	if len(missing) > 0 {
		fresh, err := c.P.Fetch(ctx, missing)
		if err != nil {
			// Partial cached data beats failing the whole request.
			if len(cached) == 0 {
				return nil, err
			}
		} else {
			expiry := now.Add(c.TTL)
			c.mu.Lock()
			if c.items == nil {
				c.items = make(map[string]entry, len(fresh))
			}
			for _, q := range fresh {
				c.items[q.ID] = entry{expiresAt: expiry, q: q}
				cached[q.ID] = q
			}
			c.mu.Unlock()
		}
	}

	// Preserve request order in the output.
	out := make([]quote.Quote, 0, len(cached))
	for _, id := range ids {
		if q, ok := cached[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}
