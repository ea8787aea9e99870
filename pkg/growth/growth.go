// Package growth projects the future value of a lump sum plus monthly
// contributions compounded monthly at a fixed annual rate.
package growth

import (
	"github.com/iwvelando/invest-compare/pkg/constants"
	"github.com/iwvelando/invest-compare/pkg/mathutil"
)

// ProjectGrowth returns the value after the given number of years of an
// initial lump sum compounded monthly plus an ordinary annuity of
// monthlyContribution paid at the end of each month. The annual rate is a
// percentage and may be negative; a negative contribution models a recurring
// withdrawal.
func ProjectGrowth(initialAmount, monthlyContribution, annualRate float64, years int) float64 {
	monthlyRate := mathutil.MonthlyRate(annualRate)
	months := mathutil.Months(years)
	factor := mathutil.CompoundFactor(monthlyRate, months)

	futureValueOfInitial := initialAmount * factor

	var futureValueOfContributions float64
	if monthlyRate == 0 {
		futureValueOfContributions = monthlyContribution * float64(months)
	} else {
		futureValueOfContributions = monthlyContribution * ((factor - 1) / monthlyRate)
	}

	return futureValueOfInitial + futureValueOfContributions
}

// ProjectBenchmarkGrowth is ProjectGrowth at the benchmark rate.
func ProjectBenchmarkGrowth(initialAmount, monthlyContribution float64, years int) float64 {
	return ProjectGrowth(initialAmount, monthlyContribution, constants.BenchmarkAnnualRate, years)
}

// GrowthSeries returns the projected value at the end of each year from 0
// through years inclusive. Entry 0 is the initial amount.
func GrowthSeries(initialAmount, monthlyContribution, annualRate float64, years int) []float64 {
	if years < 0 {
		return nil
	}
	series := make([]float64, years+1)
	for i := range series {
		series[i] = ProjectGrowth(initialAmount, monthlyContribution, annualRate, i)
	}
	return series
}

// BenchmarkSeries is GrowthSeries at the benchmark rate.
func BenchmarkSeries(initialAmount, monthlyContribution float64, years int) []float64 {
	return GrowthSeries(initialAmount, monthlyContribution, constants.BenchmarkAnnualRate, years)
}
