package telegram

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatDuration renders a second count the way the bot displays waits:
// "45s", "2m 5s", "1h 3m".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	}
}

// FormatMoney renders an amount with two decimals and the currency suffix,
// e.g. "0.50$".
func FormatMoney(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(2) + currency
}
