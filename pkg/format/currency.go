// Package format renders amounts and percentages for display.
package format

import (
	"math"

	"github.com/iwvelando/rental-compare/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with the given symbol and thousands
// separators (e.g., "-€1,234.56").
func Currency(amount float64, symbol string) string {
	sign := ""
	if mathutil.Round(amount) < 0 {
		sign = "-"
	}
	return sign + symbol + formatPositive(math.Abs(amount))
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return Currency(amount, "")
}

// Percent returns a percentage with two decimals (e.g., "4.25%").
func Percent(value float64) string {
	return NumericCurrency(value) + "%"
}

func formatPositive(value float64) string {
	return printer.Sprintf("%.2f", value)
}
