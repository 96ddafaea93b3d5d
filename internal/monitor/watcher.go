// Package monitor runs the poll-and-notify loop: fetch quotes on a fixed
// cadence, detect significant moves, and forward formatted messages to the
// notifier. A failed cycle is skipped, never retried within the tick.
package monitor

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"pricenotifier/internal/notify"
	"pricenotifier/internal/quote"
)

// Config carries the watcher's immutable runtime settings.
type Config struct {
	Coins                []string
	Interval             time.Duration
	PriceChangeThreshold float64 // percent; alerts fire at or above this
	AlertsOnly           bool    // suppress the per-tick price update
}

// Watcher owns the notifier loop. It is single-threaded: one cycle at a time,
// both network calls sequential.
type Watcher struct {
	cfg      Config
	provider quote.Provider
	notifier notify.Notifier
	tracker  *Tracker
	log      zerolog.Logger

	now func() time.Time
}

func NewWatcher(cfg Config, p quote.Provider, n notify.Notifier, log zerolog.Logger) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	return &Watcher{
		cfg:      cfg,
		provider: p,
		notifier: n,
		tracker:  NewTracker(time.Now()),
		log:      log,
		now:      time.Now,
	}
}

// Run executes one cycle immediately, then one per interval until ctx is
// canceled. Termination is entirely external; there is no internal stop
// condition.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Info().
		Strs("coins", w.cfg.Coins).
		Dur("interval", w.cfg.Interval).
		Float64("price_change_threshold", w.cfg.PriceChangeThreshold).
		Msg("watcher started")

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	w.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs one fetch-and-notify cycle. Any failure abandons the remainder of
// the cycle and is surfaced through logging only; the next scheduled cycle
// always attempts both calls again.
func (w *Watcher) Tick(ctx context.Context) {
	now := w.now()

	quotes, err := w.provider.Fetch(ctx, w.cfg.Coins)
	if err != nil {
		w.log.Warn().Err(err).Msg("price fetch failed, skipping cycle")
		return
	}
	if len(quotes) == 0 {
		w.log.Warn().Strs("coins", w.cfg.Coins).Msg("no quotes returned, skipping cycle")
		return
	}

	totalCap := lo.SumBy(quotes, func(q quote.Quote) float64 { return q.MarketCap })

	for _, c := range w.tracker.Observe(quotes, now) {
		w.log.Debug().
			Str("coin", c.ID).
			Str("timeframe", c.Timeframe).
			Float64("price_change", c.PriceChange).
			Float64("volume_change", c.VolumeChange).
			Msg("change observed")
		if math.Abs(c.PriceChange) < w.cfg.PriceChangeThreshold {
			continue
		}
		if err := w.notifier.Notify(ctx, AlertMessage(c, totalCap)); err != nil {
			w.log.Error().Err(err).Str("coin", c.ID).Str("timeframe", c.Timeframe).Msg("failed to send alert")
		}
	}

	if w.cfg.AlertsOnly {
		return
	}
	update := UpdateMessage(quotes, w.tracker.DailyChanges(quotes), now)
	if err := w.notifier.Notify(ctx, update); err != nil {
		w.log.Error().Err(err).Msg("failed to send price update")
		return
	}
	w.log.Info().Int("quotes", len(quotes)).Msg("price update sent")
}
