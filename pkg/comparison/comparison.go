// Package comparison compares a user's investment scenario against the
// benchmark index and declares a winner.
package comparison

import (
	"math"

	"github.com/iwvelando/invest-compare/pkg/constants"
	"github.com/iwvelando/invest-compare/pkg/growth"
	"github.com/iwvelando/invest-compare/pkg/mathutil"
	"github.com/iwvelando/invest-compare/pkg/realestate"
)

// Winner identifies which side of a comparison ended with the larger value.
type Winner string

const (
	// WinnerUser means the user's scenario beat the benchmark.
	WinnerUser Winner = "user"

	// WinnerBenchmark means the benchmark matched or beat the user's scenario.
	WinnerBenchmark Winner = "benchmark"
)

// StockInput describes a stock or ETF investment. Rates are annual percentages.
type StockInput struct {
	Name                string  `json:"name" yaml:"name"`
	InitialAmount       float64 `json:"initialAmount" yaml:"initialAmount"`
	MonthlyContribution float64 `json:"monthlyContribution" yaml:"monthlyContribution"`
	AnnualReturnRate    float64 `json:"annualReturnRate" yaml:"annualReturnRate"`
	AnnualFeeRate       float64 `json:"annualFeeRate" yaml:"annualFeeRate"`
	Years               int     `json:"years" yaml:"years"`
}

// Outcome is one side of a comparison.
type Outcome struct {
	Name                string                 `json:"name"`
	FutureValue         float64                `json:"futureValue"`
	InitialInvestment   float64                `json:"initialInvestment"`
	MonthlyContribution float64                `json:"monthlyContribution"`
	Years               int                    `json:"years"`
	EffectiveRate       float64                `json:"effectiveRate"`
	AnnualizedNetReturn float64                `json:"annualizedNetReturn"`
	TotalReturnAmount   float64                `json:"totalReturnAmount"`
	ValueSeries         []float64              `json:"valueSeries,omitempty"`
	Details             *realestate.Projection `json:"details,omitempty"`
}

// Result is the normalized comparison handed to presentation.
type Result struct {
	Kind               string  `json:"kind"`
	User               Outcome `json:"user"`
	Benchmark          Outcome `json:"benchmark"`
	Winner             Winner  `json:"winner"`
	DifferenceAbsolute float64 `json:"differenceAbsolute"`
}

// CompareStocks projects the stock investment net of fees and the benchmark
// with the same contributions.
func CompareStocks(in StockInput) Result {
	effectiveRate := in.AnnualReturnRate - in.AnnualFeeRate

	userValue := growth.ProjectGrowth(in.InitialAmount, in.MonthlyContribution, effectiveRate, in.Years)
	benchmarkValue := growth.ProjectBenchmarkGrowth(in.InitialAmount, in.MonthlyContribution, in.Years)

	user := Outcome{
		Name:                nameOrDefault(in.Name, constants.DefaultStockName),
		FutureValue:         userValue,
		InitialInvestment:   in.InitialAmount,
		MonthlyContribution: in.MonthlyContribution,
		Years:               in.Years,
		EffectiveRate:       effectiveRate,
		AnnualizedNetReturn: mathutil.AnnualizedReturn(userValue, in.InitialAmount, in.Years),
		TotalReturnAmount:   userValue - in.InitialAmount,
		ValueSeries:         growth.GrowthSeries(in.InitialAmount, in.MonthlyContribution, effectiveRate, in.Years),
	}
	benchmark := Outcome{
		Name:                constants.BenchmarkName,
		FutureValue:         benchmarkValue,
		InitialInvestment:   in.InitialAmount,
		MonthlyContribution: in.MonthlyContribution,
		Years:               in.Years,
		EffectiveRate:       constants.BenchmarkAnnualRate,
		AnnualizedNetReturn: mathutil.AnnualizedReturn(benchmarkValue, in.InitialAmount, in.Years),
		TotalReturnAmount:   benchmarkValue - in.InitialAmount,
		ValueSeries:         growth.BenchmarkSeries(in.InitialAmount, in.MonthlyContribution, in.Years),
	}

	return newResult(constants.KindStocks, user, benchmark)
}

// CompareRealEstate compares owning the property against renting, investing
// the down payment in the benchmark and investing (or absorbing) the monthly
// difference between ownership cost and rent.
func CompareRealEstate(in realestate.Input) Result {
	projection := realestate.Project(in)

	// Positive when owning costs more than renting; negative contributions
	// are a recurring drag on the renter's portfolio.
	monthlySavingsByRenting := projection.MonthlyExpenses - in.MonthlyRentSavings
	benchmarkValue := growth.ProjectBenchmarkGrowth(in.DownPayment, monthlySavingsByRenting, in.Years)

	benchmarkReturn := constants.NoRecoveryReturn
	if benchmarkValue > 0 {
		benchmarkReturn = mathutil.AnnualizedReturn(benchmarkValue, in.DownPayment, in.Years)
	}

	user := Outcome{
		Name:                nameOrDefault(in.Name, constants.DefaultRealEstateName),
		FutureValue:         projection.TotalEquity,
		InitialInvestment:   in.DownPayment,
		Years:               in.Years,
		EffectiveRate:       projection.AnnualizedReturn,
		AnnualizedNetReturn: projection.AnnualizedReturn,
		TotalReturnAmount:   projection.TotalEquity - in.DownPayment,
		ValueSeries:         realestate.EquitySeries(in),
		Details:             &projection,
	}
	benchmark := Outcome{
		Name:                constants.BenchmarkRentingName,
		FutureValue:         benchmarkValue,
		InitialInvestment:   in.DownPayment,
		MonthlyContribution: monthlySavingsByRenting,
		Years:               in.Years,
		EffectiveRate:       constants.BenchmarkAnnualRate,
		AnnualizedNetReturn: benchmarkReturn,
		TotalReturnAmount:   benchmarkValue - in.DownPayment,
		ValueSeries:         growth.BenchmarkSeries(in.DownPayment, monthlySavingsByRenting, in.Years),
	}

	return newResult(constants.KindRealEstate, user, benchmark)
}

// newResult declares the winner with a strict comparison; ties go to the
// benchmark.
func newResult(kind string, user, benchmark Outcome) Result {
	winner := WinnerBenchmark
	if user.FutureValue > benchmark.FutureValue {
		winner = WinnerUser
	}
	return Result{
		Kind:               kind,
		User:               user,
		Benchmark:          benchmark,
		Winner:             winner,
		DifferenceAbsolute: math.Abs(user.FutureValue - benchmark.FutureValue),
	}
}

func nameOrDefault(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
