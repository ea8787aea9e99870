package realestate

import (
	"math"
	"testing"

	"github.com/iwvelando/invest-compare/pkg/loans"
)

func sampleInput() Input {
	return Input{
		Name:                   "Test Property",
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
}

func TestProject(t *testing.T) {
	in := sampleInput()
	result := Project(in)

	expectedFutureValue := 500000 * math.Pow(1.03, 10)
	checks := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"loan amount", result.LoanAmount, 400000},
		{"monthly mortgage", result.MonthlyMortgage, 1909.66},
		{"future property value", result.FuturePropertyValue, expectedFutureValue},
		{"capital gain", result.CapitalGain, expectedFutureValue - 500000},
		{"monthly expenses", result.MonthlyExpenses, 2534.66},
		{"annual expenses", result.AnnualExpenses, 30415.93},
		{"monthly cash flow", result.MonthlyCashFlow, -734.66},
		{"total cash flow", result.TotalCashFlow, -88159.34},
		{"remaining balance", result.RemainingMortgageBalance, 315135.84},
		{"equity from paydown", result.EquityFromPaydown, 84864.16},
		{"total interest paid", result.TotalInterestPaid, 144295.18},
		{"total equity", result.TotalEquity, 356822.35},
		{"annualized return", result.AnnualizedReturn, 13.57},
		{"monthly rent", result.MonthlyRent, 1800},
	}

	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if math.Abs(c.got-c.expected) > 0.01 {
				t.Errorf("%s = %.4f, expected %.2f", c.name, c.got, c.expected)
			}
		})
	}

	if result.TotalEquity <= in.DownPayment {
		t.Errorf("total equity %.2f should exceed down payment", result.TotalEquity)
	}
	sum := in.DownPayment + result.CapitalGain + result.EquityFromPaydown
	if result.TotalEquity != sum {
		t.Errorf("total equity %.2f != down payment + gain + paydown %.2f", result.TotalEquity, sum)
	}
}

func TestProjectCashPurchase(t *testing.T) {
	in := sampleInput()
	in.Name = "Cash Purchase"
	in.DownPayment = 500000

	result := Project(in)
	if result.MonthlyMortgage != 0 {
		t.Errorf("expected no mortgage payment, got %v", result.MonthlyMortgage)
	}
	if result.MonthlyExpenses != 625 {
		t.Errorf("expected carrying costs only (625), got %v", result.MonthlyExpenses)
	}
	if result.EquityFromPaydown != 0 || result.RemainingMortgageBalance != 0 {
		t.Errorf("expected no loan, got paydown %v remaining %v", result.EquityFromPaydown, result.RemainingMortgageBalance)
	}
	if result.TotalEquity <= 500000 || math.IsInf(result.TotalEquity, 0) || math.IsNaN(result.TotalEquity) {
		t.Errorf("unexpected total equity %v", result.TotalEquity)
	}
	if math.Abs(result.AnnualizedReturn-3) > 1e-9 {
		t.Errorf("cash purchase return should equal appreciation, got %v", result.AnnualizedReturn)
	}
}

func TestProjectHoldingPastLoanTerm(t *testing.T) {
	in := Input{
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

	result := Project(in)
	if result.RemainingMortgageBalance != 0 {
		t.Errorf("expected loan paid off, got balance %v", result.RemainingMortgageBalance)
	}
	if result.EquityFromPaydown != 240000 {
		t.Errorf("expected full paydown of 240000, got %v", result.EquityFromPaydown)
	}
	if math.Abs(result.TotalEquity-result.FuturePropertyValue) > 1e-6 {
		t.Errorf("paid-off property equity %.2f should equal its value %.2f", result.TotalEquity, result.FuturePropertyValue)
	}
	if math.Abs(result.TotalInterestPaid-loans.InterestPaid(240000, 5, 15, 15)) > 1e-9 {
		t.Errorf("interest should stop accruing at maturity, got %v", result.TotalInterestPaid)
	}
}

func TestProjectZeroAppreciation(t *testing.T) {
	in := sampleInput()
	in.AnnualAppreciationRate = 0

	result := Project(in)
	if result.CapitalGain != 0 {
		t.Errorf("expected zero capital gain, got %v", result.CapitalGain)
	}
	for i, v := range result.PropertyValueSeries {
		if v != 500000 {
			t.Errorf("series[%d] = %v, expected flat 500000", i, v)
		}
	}
}

func TestPropertyValueSeries(t *testing.T) {
	series := PropertyValueSeries(500000, 3, 10)
	if len(series) != 11 {
		t.Fatalf("expected 11 values, got %d", len(series))
	}
	if series[0] != 500000 {
		t.Errorf("series[0] = %v, expected 500000", series[0])
	}
	for i, v := range series {
		expected := 500000 * math.Pow(1.03, float64(i))
		if math.Abs(v-expected) > 1e-6 {
			t.Errorf("series[%d] = %v, expected %v", i, v, expected)
		}
	}
	if series[10] != Project(sampleInput()).FuturePropertyValue {
		t.Error("last series value should equal future property value")
	}
	if PropertyValueSeries(1, 1, -1) != nil {
		t.Error("expected nil for negative years")
	}
}

func TestEquitySeries(t *testing.T) {
	in := sampleInput()
	series := EquitySeries(in)
	if len(series) != in.Years+1 {
		t.Fatalf("expected %d values, got %d", in.Years+1, len(series))
	}
	if series[0] != in.DownPayment {
		t.Errorf("series[0] = %v, expected down payment", series[0])
	}
	if math.Abs(series[in.Years]-Project(in).TotalEquity) > 1e-6 {
		t.Errorf("final equity %v does not match projection", series[in.Years])
	}
}

func TestProjectIsDeterministic(t *testing.T) {
	first := Project(sampleInput())
	second := Project(sampleInput())
	if math.Float64bits(first.TotalEquity) != math.Float64bits(second.TotalEquity) ||
		math.Float64bits(first.AnnualizedReturn) != math.Float64bits(second.AnnualizedReturn) {
		t.Error("repeated projections differ")
	}
}
