// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/invest-compare/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// PercentToDecimal converts a percentage (7.0) into its decimal form (0.07).
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// MonthlyRate converts an annual percentage rate into the decimal rate applied
// each month.
func MonthlyRate(annualRate float64) float64 {
	return annualRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// Months expands a whole number of years into months.
func Months(years int) int {
	return years * constants.MonthsPerYear
}

// CompoundFactor returns (1+rate)^periods.
func CompoundFactor(rate float64, periods int) float64 {
	return math.Pow(1+rate, float64(periods))
}

// AnnualizedReturn returns the constant yearly growth rate, in percent, that
// turns initial into final over the given number of years.
func AnnualizedReturn(final, initial float64, years int) float64 {
	return (math.Pow(final/initial, 1/float64(years)) - 1) * constants.PercentageMultiplier
}
