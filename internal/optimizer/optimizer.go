// Package optimizer searches for the break-even rate at which a user's
// scenario exactly matches the benchmark.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/invest-compare/pkg/comparison"
	"github.com/iwvelando/invest-compare/pkg/constants"
	"github.com/iwvelando/invest-compare/pkg/format"
	"github.com/iwvelando/invest-compare/pkg/mathutil"
	"github.com/iwvelando/invest-compare/pkg/optimization"
	"github.com/iwvelando/invest-compare/pkg/realestate"
	"go.uber.org/zap"
)

// Fields searched by the runner.
const (
	FieldAnnualReturnRate       = "annualReturnRate"
	FieldAnnualAppreciationRate = "annualAppreciationRate"
)

// Runner performs bisection searches over an annual rate.
type Runner struct {
	logger        *zap.Logger
	lower         float64
	upper         float64
	tolerance     float64
	maxIterations int
}

// evaluation records the gap between user and benchmark at one rate.
type evaluation struct {
	value float64
	gap   float64
}

func (e evaluation) userAhead() bool {
	return e.gap > 0
}

// NewRunner constructs a Runner searching the default rate bounds.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		logger:        logger,
		lower:         constants.MinRate,
		upper:         constants.MaxRate,
		tolerance:     constants.BreakEvenTolerance,
		maxIterations: constants.BreakEvenMaxIterations,
	}
}

// WithBounds returns a copy of the runner searching [lower, upper].
func (r *Runner) WithBounds(lower, upper float64) (*Runner, error) {
	if lower >= upper {
		return nil, fmt.Errorf("optimizer bounds must be increasing, got %v to %v", lower, upper)
	}
	clone := *r
	clone.lower = lower
	clone.upper = upper
	return &clone, nil
}

// StockBreakEven finds the gross annual return at which the stock investment,
// net of its fee, ends level with the benchmark.
func (r *Runner) StockBreakEven(in comparison.StockInput) optimization.Summary {
	gap := func(rate float64) float64 {
		candidate := in
		candidate.AnnualReturnRate = rate
		result := comparison.CompareStocks(candidate)
		return result.User.FutureValue - result.Benchmark.FutureValue
	}
	name := in.Name
	if name == "" {
		name = constants.DefaultStockName
	}
	return r.search(constants.KindStocks, name, FieldAnnualReturnRate, in.AnnualReturnRate, gap)
}

// RealEstateBreakEven finds the annual appreciation rate at which owning the
// property ends level with renting and investing in the benchmark.
func (r *Runner) RealEstateBreakEven(in realestate.Input) optimization.Summary {
	gap := func(rate float64) float64 {
		candidate := in
		candidate.AnnualAppreciationRate = rate
		result := comparison.CompareRealEstate(candidate)
		return result.User.FutureValue - result.Benchmark.FutureValue
	}
	name := in.Name
	if name == "" {
		name = constants.DefaultRealEstateName
	}
	return r.search(constants.KindRealEstate, name, FieldAnnualAppreciationRate, in.AnnualAppreciationRate, gap)
}

// search bisects [lower, upper] for the rate where gap changes sign. gap must
// be non-decreasing in the rate.
func (r *Runner) search(scope, name, field string, original float64, gap func(float64) float64) optimization.Summary {
	summary := optimization.Summary{
		Scope:           scope,
		TargetName:      name,
		Field:           field,
		Original:        original,
		OriginalDisplay: format.Percentage(original),
	}

	lowerEval := evaluation{value: r.lower, gap: gap(r.lower)}
	upperEval := evaluation{value: r.upper, gap: gap(r.upper)}

	if lowerEval.userAhead() == upperEval.userAhead() {
		chased := upperEval
		if math.Abs(lowerEval.gap) < math.Abs(upperEval.gap) {
			chased = lowerEval
		}
		outcome := "falls short of"
		if lowerEval.userAhead() {
			outcome = "beats"
		}
		note := fmt.Sprintf("%s %s the benchmark for every %s between %s and %s",
			name, outcome, field, format.Percentage(r.lower), format.Percentage(r.upper))
		r.logger.Debug(note,
			zap.String("op", "optimizer.search"),
			zap.Float64("lowerGap", lowerEval.gap),
			zap.Float64("upperGap", upperEval.gap),
		)
		summary.Value = chased.value
		summary.ValueDisplay = format.Percentage(chased.value)
		summary.Notes = []string{note}
		return summary
	}

	lower, upper := lowerEval.value, upperEval.value
	iterations := 0
	for iterations < r.maxIterations && !mathutil.WithinTolerance(upper, lower, r.tolerance) {
		mid := lower + (upper-lower)/2
		iterations++
		if (evaluation{value: mid, gap: gap(mid)}).userAhead() {
			if mid == upper {
				break
			}
			upper = mid
		} else {
			if mid == lower {
				break
			}
			lower = mid
		}
	}

	summary.Value = lower + (upper-lower)/2
	summary.ValueDisplay = format.Percentage(summary.Value)
	summary.Iterations = iterations
	summary.Converged = mathutil.WithinTolerance(upper, lower, r.tolerance)

	r.logger.Debug(fmt.Sprintf("break-even %s for %s is %.6f", field, name, summary.Value),
		zap.String("op", "optimizer.search"),
		zap.Int("iterations", iterations),
		zap.Bool("converged", summary.Converged),
	)

	return summary
}
