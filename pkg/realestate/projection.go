// Package realestate projects the equity built by owning a mortgaged property
// over a holding period.
package realestate

import (
	"math"

	"github.com/iwvelando/invest-compare/pkg/constants"
	"github.com/iwvelando/invest-compare/pkg/loans"
	"github.com/iwvelando/invest-compare/pkg/mathutil"
)

// Input describes a property purchase and the holding period to project.
// Rates are annual percentages and monthly amounts are per month.
type Input struct {
	Name                   string  `json:"name" yaml:"name"`
	PropertyValue          float64 `json:"propertyValue" yaml:"propertyValue"`
	DownPayment            float64 `json:"downPayment" yaml:"downPayment"`
	AnnualMortgageRate     float64 `json:"annualMortgageRate" yaml:"annualMortgageRate"`
	LoanTermYears          int     `json:"loanTermYears" yaml:"loanTermYears"`
	MonthlyPropertyTax     float64 `json:"monthlyPropertyTax" yaml:"monthlyPropertyTax"`
	MonthlyHOA             float64 `json:"monthlyHOA" yaml:"monthlyHOA"`
	MonthlyInsurance       float64 `json:"monthlyInsurance" yaml:"monthlyInsurance"`
	MonthlyMaintenance     float64 `json:"monthlyMaintenance" yaml:"monthlyMaintenance"`
	AnnualAppreciationRate float64 `json:"annualAppreciationRate" yaml:"annualAppreciationRate"`
	MonthlyRentSavings     float64 `json:"monthlyRentSavings" yaml:"monthlyRentSavings"`
	Years                  int     `json:"years" yaml:"years"`
}

// LoanAmount is the financed part of the purchase price.
func (in Input) LoanAmount() float64 {
	return in.PropertyValue - in.DownPayment
}

// Projection is the outcome of holding the property for Input.Years.
//
// TotalEquity is the owner's net stake in the property (down payment plus
// appreciation plus principal paid down), not cumulative cash received.
// MonthlyCashFlow is positive when owning is cheaper than the comparable rent.
type Projection struct {
	PropertyValue            float64   `json:"propertyValue"`
	LoanAmount               float64   `json:"loanAmount"`
	MonthlyMortgage          float64   `json:"monthlyMortgage"`
	FuturePropertyValue      float64   `json:"futurePropertyValue"`
	CapitalGain              float64   `json:"capitalGain"`
	MonthlyExpenses          float64   `json:"monthlyExpenses"`
	AnnualExpenses           float64   `json:"annualExpenses"`
	MonthlyCashFlow          float64   `json:"monthlyCashFlow"`
	TotalCashFlow            float64   `json:"totalCashFlow"`
	MonthlyRent              float64   `json:"monthlyRent"`
	EquityFromPaydown        float64   `json:"equityFromPaydown"`
	RemainingMortgageBalance float64   `json:"remainingMortgageBalance"`
	TotalInterestPaid        float64   `json:"totalInterestPaid"`
	TotalEquity              float64   `json:"totalEquity"`
	AnnualizedReturn         float64   `json:"annualizedReturn"`
	PropertyValueSeries      []float64 `json:"propertyValueSeries"`
}

// Project computes the real estate projection. It trusts its input: a zero
// down payment or holding period is the caller's defect and yields a
// non-finite annualized return.
func Project(in Input) Projection {
	loanAmount := in.LoanAmount()
	monthlyMortgage := loans.MonthlyPayment(loanAmount, in.AnnualMortgageRate, in.LoanTermYears)

	monthlyExpenses := monthlyMortgage +
		in.MonthlyPropertyTax +
		in.MonthlyHOA +
		in.MonthlyInsurance +
		in.MonthlyMaintenance
	monthlyCashFlow := in.MonthlyRentSavings - monthlyExpenses

	futurePropertyValue := AppreciatedValue(in.PropertyValue, in.AnnualAppreciationRate, in.Years)
	capitalGain := futurePropertyValue - in.PropertyValue

	remaining := loans.RemainingBalance(loanAmount, in.AnnualMortgageRate, in.LoanTermYears, in.Years)
	equityFromPaydown := loanAmount - remaining

	totalEquity := in.DownPayment + capitalGain + equityFromPaydown

	return Projection{
		PropertyValue:            in.PropertyValue,
		LoanAmount:               loanAmount,
		MonthlyMortgage:          monthlyMortgage,
		FuturePropertyValue:      futurePropertyValue,
		CapitalGain:              capitalGain,
		MonthlyExpenses:          monthlyExpenses,
		AnnualExpenses:           monthlyExpenses * constants.MonthsPerYear,
		MonthlyCashFlow:          monthlyCashFlow,
		TotalCashFlow:            monthlyCashFlow * constants.MonthsPerYear * float64(in.Years),
		MonthlyRent:              in.MonthlyRentSavings,
		EquityFromPaydown:        equityFromPaydown,
		RemainingMortgageBalance: remaining,
		TotalInterestPaid:        loans.InterestPaid(loanAmount, in.AnnualMortgageRate, in.LoanTermYears, in.Years),
		TotalEquity:              totalEquity,
		AnnualizedReturn:         mathutil.AnnualizedReturn(totalEquity, in.DownPayment, in.Years),
		PropertyValueSeries:      PropertyValueSeries(in.PropertyValue, in.AnnualAppreciationRate, in.Years),
	}
}

// AppreciatedValue compounds value annually at the appreciation rate.
func AppreciatedValue(value, annualAppreciationRate float64, years int) float64 {
	return value * math.Pow(1+mathutil.PercentToDecimal(annualAppreciationRate), float64(years))
}

// PropertyValueSeries returns the property value at each year 0 through years
// inclusive.
func PropertyValueSeries(value, annualAppreciationRate float64, years int) []float64 {
	if years < 0 {
		return nil
	}
	series := make([]float64, years+1)
	for i := range series {
		series[i] = AppreciatedValue(value, annualAppreciationRate, i)
	}
	return series
}

// EquitySeries returns the owner's equity at each year 0 through Input.Years:
// down payment plus appreciation plus principal repaid by that year.
func EquitySeries(in Input) []float64 {
	if in.Years < 0 {
		return nil
	}
	loanAmount := in.LoanAmount()
	series := make([]float64, in.Years+1)
	for i := range series {
		gain := AppreciatedValue(in.PropertyValue, in.AnnualAppreciationRate, i) - in.PropertyValue
		paydown := loanAmount - loans.RemainingBalance(loanAmount, in.AnnualMortgageRate, in.LoanTermYears, i)
		series[i] = in.DownPayment + gain + paydown
	}
	return series
}
