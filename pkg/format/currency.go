package format

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// NotAvailable is shown in place of amounts that are not finite.
const NotAvailable = "n/a"

// Currency returns a whole-dollar currency string with thousands separators
// (e.g., "-$1,234"). Cents are rounded half away from zero. NaN and infinite
// amounts render as NotAvailable.
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return NotAvailable
	}

	whole := decimal.NewFromFloat(amount).Round(0)
	sign := ""
	if whole.IsNegative() {
		sign = "-"
	}
	// whole has no fractional part, so %.0f only groups digits.
	return sign + "$" + printer.Sprintf("%.0f", whole.Abs().InexactFloat64())
}

// Percentage returns a rate with one decimal place (e.g., "7.5%").
func Percentage(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// YearLabels returns chart labels "Year 0" through "Year n".
func YearLabels(n int) []string {
	if n < 0 {
		return nil
	}
	labels := make([]string, n+1)
	for i := range labels {
		labels[i] = fmt.Sprintf("Year %d", i)
	}
	return labels
}
