package optimizer

import (
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/invest-compare/pkg/comparison"
	"github.com/iwvelando/invest-compare/pkg/constants"
	"github.com/iwvelando/invest-compare/pkg/realestate"
	"go.uber.org/zap"
)

func TestStockBreakEven(t *testing.T) {
	runner := NewRunner(zap.NewNop())

	tests := []struct {
		name     string
		input    comparison.StockInput
		expected float64
	}{
		{
			name:     "Fee is added to the benchmark rate",
			input:    comparison.StockInput{Name: "NASDAQ 100", InitialAmount: 10000, MonthlyContribution: 500, AnnualReturnRate: 10, AnnualFeeRate: 0.2, Years: 10},
			expected: 7.2,
		},
		{
			name:     "No fee",
			input:    comparison.StockInput{InitialAmount: 1000, AnnualReturnRate: 4, Years: 30},
			expected: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := runner.StockBreakEven(tt.input)
			if !summary.Converged {
				t.Fatalf("expected convergence, notes: %v", summary.Notes)
			}
			if math.Abs(summary.Value-tt.expected) > 1e-5 {
				t.Errorf("break-even = %v, expected %v", summary.Value, tt.expected)
			}
			if summary.Field != FieldAnnualReturnRate || summary.Scope != constants.KindStocks {
				t.Errorf("unexpected field/scope %s/%s", summary.Field, summary.Scope)
			}
			if summary.Original != tt.input.AnnualReturnRate {
				t.Errorf("original = %v, expected %v", summary.Original, tt.input.AnnualReturnRate)
			}
			if summary.Iterations == 0 || summary.Iterations > constants.BreakEvenMaxIterations {
				t.Errorf("unexpected iteration count %d", summary.Iterations)
			}
		})
	}
}

func TestStockBreakEvenHeadroom(t *testing.T) {
	summary := NewRunner(nil).StockBreakEven(comparison.StockInput{InitialAmount: 1000, AnnualReturnRate: 10, Years: 5})
	if math.Abs(summary.Headroom()-3) > 1e-5 {
		t.Errorf("headroom = %v, expected 3", summary.Headroom())
	}
	if summary.TargetName != constants.DefaultStockName {
		t.Errorf("target name = %s, expected default", summary.TargetName)
	}
}

func TestRealEstateBreakEven(t *testing.T) {
	in := realestate.Input{
		Name:                   "My Home",
		PropertyValue:          500000,
		DownPayment:            100000,
		AnnualMortgageRate:     4,
		LoanTermYears:          30,
		MonthlyPropertyTax:     150,
		MonthlyHOA:             250,
		MonthlyInsurance:       150,
		MonthlyMaintenance:     75,
		AnnualAppreciationRate: 3,
		MonthlyRentSavings:     1800,
		Years:                  10,
	}

	summary := NewRunner(zap.NewNop()).RealEstateBreakEven(in)
	if !summary.Converged {
		t.Fatalf("expected convergence, notes: %v", summary.Notes)
	}
	if summary.Value >= 3 {
		t.Errorf("owning wins at 3%%, so break-even should be lower, got %v", summary.Value)
	}

	in.AnnualAppreciationRate = summary.Value
	result := comparison.CompareRealEstate(in)
	if result.DifferenceAbsolute > 1 {
		t.Errorf("at break-even the difference should be negligible, got %v", result.DifferenceAbsolute)
	}
}

func TestRealEstateBreakEvenNotBracketed(t *testing.T) {
	in := realestate.Input{
		PropertyValue:          300000,
		DownPayment:            60000,
		AnnualMortgageRate:     5,
		LoanTermYears:          15,
		MonthlyPropertyTax:     200,
		MonthlyInsurance:       100,
		MonthlyMaintenance:     100,
		AnnualAppreciationRate: 2,
		MonthlyRentSavings:     3500,
		Years:                  20,
	}

	summary := NewRunner(zap.NewNop()).RealEstateBreakEven(in)
	if summary.Converged {
		t.Fatal("expected no convergence when owning always wins")
	}
	if len(summary.Notes) != 1 || !strings.Contains(summary.Notes[0], "beats") {
		t.Errorf("unexpected notes %v", summary.Notes)
	}
	if summary.TargetName != constants.DefaultRealEstateName {
		t.Errorf("target name = %s", summary.TargetName)
	}
	if summary.Headroom() != 0 {
		t.Errorf("headroom should be zero without convergence, got %v", summary.Headroom())
	}
}

func TestWithBounds(t *testing.T) {
	runner := NewRunner(nil)
	if _, err := runner.WithBounds(5, 5); err == nil {
		t.Error("expected error for empty bounds")
	}

	narrow, err := runner.WithBounds(8, 12)
	if err != nil {
		t.Fatalf("WithBounds() error = %v", err)
	}
	summary := narrow.StockBreakEven(comparison.StockInput{InitialAmount: 1000, AnnualReturnRate: 10, Years: 5})
	if summary.Converged {
		t.Error("break-even at 7% lies outside 8..12 and should not converge")
	}
	if !strings.Contains(summary.Notes[0], "beats") {
		t.Errorf("unexpected note %q", summary.Notes[0])
	}
	if runner.lower != constants.MinRate {
		t.Error("WithBounds must not modify the original runner")
	}
}
