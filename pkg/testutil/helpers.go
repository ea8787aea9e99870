// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/iwvelando/invest-compare/internal/compare"
)

// FindReport finds a report by scenario name in the reports slice.
// Returns a pointer to the report if found, nil otherwise.
func FindReport(reports []compare.Report, name string) *compare.Report {
	for i := range reports {
		if reports[i].Name == name {
			return &reports[i]
		}
	}
	return nil
}

// WithinCents reports whether two currency amounts agree to the cent.
func WithinCents(got, want float64) bool {
	return math.Abs(got-want) < 0.01
}
