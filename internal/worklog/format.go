package worklog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatClock renders seconds as HH:MM:SS. Hours are not capped at 99.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// FormatShort renders seconds the way the log table shows them: 45s, 12m 5s, 2h 0m.
func FormatShort(seconds int64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	}
}

// FormatMoney renders an amount in dollars with two decimals.
func FormatMoney(d decimal.Decimal) string {
	return "$" + RoundMoney(d).StringFixed(2)
}

// FormatRate renders an hourly rate in dollars with two decimals.
func FormatRate(rate float64) string {
	return FormatMoney(decimal.NewFromFloat(rate))
}
