package monitor

import (
	"time"

	"pricenotifier/internal/quote"
)

// Timeframes tracked for pump/dump detection, in reporting order.
var timeframes = []struct {
	name     string
	interval time.Duration
}{
	{"3min", 3 * time.Minute},
	{"5min", 5 * time.Minute},
	{"15min", 15 * time.Minute},
}

// Daily baselines are captured in the first half hour past this local hour.
const (
	dailySnapshotHour   = 6
	dailySnapshotWindow = 30 * time.Minute
)

// Change is one coin's movement over one elapsed timeframe.
type Change struct {
	ID           string
	Symbol       string
	Currency     string
	Timeframe    string
	Price        float64
	PriceChange  float64 // percent vs the timeframe baseline
	Volume24h    float64
	VolumeChange float64 // percent vs the timeframe baseline
	MarketCap    float64
	DailyChange  *float64 // percent vs the daily baseline, when known
}

type frame struct {
	prices    map[string]float64
	volumes   map[string]float64
	lastCheck time.Time
}

func (f *frame) update(quotes []quote.Quote, now time.Time) {
	for _, q := range quotes {
		f.prices[q.ID] = q.Price
		f.volumes[q.ID] = q.Volume24h
	}
	f.lastCheck = now
}

// Tracker keeps in-memory price and volume baselines per timeframe and
// computes percent changes once a timeframe's window has elapsed. Nothing is
// persisted; a restart starts tracking from scratch.
type Tracker struct {
	frames    map[string]*frame
	startedAt time.Time

	dailyPrices  map[string]float64
	dailyTakenAt time.Time
}

func NewTracker(now time.Time) *Tracker {
	frames := make(map[string]*frame, len(timeframes))
	for _, tf := range timeframes {
		frames[tf.name] = &frame{
			prices:  make(map[string]float64),
			volumes: make(map[string]float64),
		}
	}
	return &Tracker{
		frames:      frames,
		startedAt:   now,
		dailyPrices: make(map[string]float64),
	}
}

// Observe folds one tick of quotes into the tracker and returns changes for
// every timeframe whose window has elapsed since its baseline was taken.
// The first sighting of a timeframe only establishes the baseline.
func (t *Tracker) Observe(quotes []quote.Quote, now time.Time) []Change {
	t.maybeDailySnapshot(quotes, now)

	var changes []Change
	for _, tf := range timeframes {
		f := t.frames[tf.name]
		if len(f.prices) == 0 {
			f.update(quotes, now)
			continue
		}
		// Hold off right after startup so the first alerts compare across a
		// full window.
		if now.Sub(t.startedAt) < tf.interval || now.Sub(f.lastCheck) < tf.interval {
			continue
		}
		for _, q := range quotes {
			oldPrice, ok := f.prices[q.ID]
			oldVolume := f.volumes[q.ID]
			if !ok || oldPrice <= 0 || oldVolume <= 0 {
				continue
			}
			c := Change{
				ID:           q.ID,
				Symbol:       q.Symbol,
				Currency:     q.Currency,
				Timeframe:    tf.name,
				Price:        q.Price,
				PriceChange:  (q.Price - oldPrice) / oldPrice * 100,
				Volume24h:    q.Volume24h,
				VolumeChange: (q.Volume24h - oldVolume) / oldVolume * 100,
				MarketCap:    q.MarketCap,
			}
			if d, ok := t.dailyChange(q.ID, q.Price); ok {
				c.DailyChange = &d
			}
			changes = append(changes, c)
		}
		f.update(quotes, now)
	}
	return changes
}

// DailyChanges returns the percent change vs the daily baseline for each
// quote that has one.
func (t *Tracker) DailyChanges(quotes []quote.Quote) map[string]float64 {
	out := make(map[string]float64, len(quotes))
	for _, q := range quotes {
		if d, ok := t.dailyChange(q.ID, q.Price); ok {
			out[q.ID] = d
		}
	}
	return out
}

func (t *Tracker) dailyChange(id string, price float64) (float64, bool) {
	base, ok := t.dailyPrices[id]
	if !ok || base <= 0 {
		return 0, false
	}
	return (price - base) / base * 100, true
}

// maybeDailySnapshot captures the daily baseline on the first observation
// ever, then again once per day inside the snapshot window.
func (t *Tracker) maybeDailySnapshot(quotes []quote.Quote, now time.Time) {
	take := t.dailyTakenAt.IsZero()
	if !take {
		inWindow := now.Hour() == dailySnapshotHour &&
			time.Duration(now.Minute())*time.Minute <= dailySnapshotWindow
		take = inWindow && now.Sub(t.dailyTakenAt) >= 24*time.Hour
	}
	if !take {
		return
	}
	for _, q := range quotes {
		t.dailyPrices[q.ID] = q.Price
	}
	t.dailyTakenAt = now
}
