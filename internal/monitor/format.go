package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"pricenotifier/internal/quote"
)

// FormatPrice renders a price with precision tiered by magnitude so small
// alt-coin prices keep meaningful digits.
func FormatPrice(p float64) string {
	switch {
	case p < 0.0001:
		return fmt.Sprintf("$%.10f", p)
	case p < 0.01:
		return fmt.Sprintf("$%.8f", p)
	case p < 1:
		return fmt.Sprintf("$%.6f", p)
	default:
		return fmt.Sprintf("$%.4f", p)
	}
}

// FormatCap renders a market cap, abbreviated above a million.
func FormatCap(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// UpdateMessage builds the regular per-tick price update. Output is
// deterministic for a given quote slice: one line per quote in input order,
// then the portfolio total.
func UpdateMessage(quotes []quote.Quote, daily map[string]float64, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("📊 Price Update:\n")

	for _, q := range quotes {
		sb.WriteString(fmt.Sprintf("💰 %s: %s %s", q.Symbol, FormatPrice(q.Price), strings.ToUpper(q.Currency)))
		if q.MarketCap > 0 {
			sb.WriteString(fmt.Sprintf(" (%s)", FormatCap(q.MarketCap)))
		}
		if d, ok := daily[q.ID]; ok {
			sb.WriteString(fmt.Sprintf(" [24h: %+.2f%%]", d))
		}
		sb.WriteString("\n")
	}

	total := lo.SumBy(quotes, func(q quote.Quote) float64 { return q.MarketCap })
	if total > 0 {
		sb.WriteString(fmt.Sprintf("🏆 Total Portfolio Cap: %s\n", FormatCap(total)))
	}
	sb.WriteString(fmt.Sprintf("🕐 Updated: %s", now.Format("15:04:05")))
	return sb.String()
}

// AlertMessage builds the pump or dump alert text for a single change.
func AlertMessage(c Change, totalCap float64) string {
	var sb strings.Builder
	if c.PriceChange > 0 {
		sb.WriteString("🚀 PUMP ALERT 🚀\n")
	} else {
		sb.WriteString("📉 DUMP ALERT 📉\n")
	}
	fmt.Fprintf(&sb, "⏰ Timeframe: %s\n", c.Timeframe)
	fmt.Fprintf(&sb, "🔥 Token: #%s\n", c.Symbol)
	fmt.Fprintf(&sb, "💰 Price: %s %s\n", FormatPrice(c.Price), strings.ToUpper(c.Currency))
	fmt.Fprintf(&sb, "📈 Price Change: %+.2f%%\n", c.PriceChange)
	fmt.Fprintf(&sb, "📊 Volume Change: %+.2f%%\n", c.VolumeChange)
	fmt.Fprintf(&sb, "📊 24h Volume: $%.2f", c.Volume24h)
	if c.MarketCap > 0 {
		fmt.Fprintf(&sb, "\n💎 Market Cap: %s", FormatCap(c.MarketCap))
	}
	if totalCap > 0 {
		fmt.Fprintf(&sb, "\n🏆 Total Portfolio Cap: %s", FormatCap(totalCap))
	}
	if c.DailyChange != nil {
		fmt.Fprintf(&sb, "\n📅 24h Change: %+.2f%%", *c.DailyChange)
	}
	return sb.String()
}
