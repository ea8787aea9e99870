package config

import (
	"github.com/iwvelando/invest-compare/pkg/comparison"
	"github.com/iwvelando/invest-compare/pkg/realestate"
)

// StockScenario is a configured stock investment to compare against the benchmark.
// The rates are pointers so an explicit 0 is kept when a preset fills in the
// rates that were left out.
type StockScenario struct {
	Name                string  `yaml:"name"`
	Active              bool    `yaml:"active"`
	Preset              string  `yaml:"preset,omitempty"`
	InitialAmount       float64 `yaml:"initialAmount"`
	MonthlyContribution float64 `yaml:"monthlyContribution"`
	AnnualReturnRate    *float64 `yaml:"annualReturnRate,omitempty"`
	AnnualFeeRate       *float64 `yaml:"annualFeeRate,omitempty"`
	Years               int     `yaml:"years"`
}

// RealEstateScenario is a configured property purchase to compare against
// renting and investing in the benchmark.
type RealEstateScenario struct {
	Name                   string  `yaml:"name"`
	Active                 bool    `yaml:"active"`
	PropertyValue          float64 `yaml:"propertyValue"`
	DownPayment            float64 `yaml:"downPayment"`
	DownPaymentPercent     float64 `yaml:"downPaymentPercent,omitempty"`
	AnnualMortgageRate     float64 `yaml:"annualMortgageRate"`
	LoanTermYears          int     `yaml:"loanTermYears"`
	MonthlyPropertyTax     float64 `yaml:"monthlyPropertyTax"`
	MonthlyHOA             float64 `yaml:"monthlyHOA"`
	MonthlyInsurance       float64 `yaml:"monthlyInsurance"`
	MonthlyMaintenance     float64 `yaml:"monthlyMaintenance"`
	AnnualAppreciationRate float64 `yaml:"annualAppreciationRate"`
	MonthlyRentSavings     float64 `yaml:"monthlyRentSavings"`
	Years                  int     `yaml:"years"`
}

// Input converts the scenario to an engine input.
func (s StockScenario) Input() comparison.StockInput {
	return comparison.StockInput{
		Name:                s.Name,
		InitialAmount:       s.InitialAmount,
		MonthlyContribution: s.MonthlyContribution,
		AnnualReturnRate:    valueOrZero(s.AnnualReturnRate),
		AnnualFeeRate:       valueOrZero(s.AnnualFeeRate),
		Years:               s.Years,
	}
}

// Input converts the scenario to an engine input.
func (s RealEstateScenario) Input() realestate.Input {
	return realestate.Input{
		Name:                   s.Name,
		PropertyValue:          s.PropertyValue,
		DownPayment:            s.DownPayment,
		AnnualMortgageRate:     s.AnnualMortgageRate,
		LoanTermYears:          s.LoanTermYears,
		MonthlyPropertyTax:     s.MonthlyPropertyTax,
		MonthlyHOA:             s.MonthlyHOA,
		MonthlyInsurance:       s.MonthlyInsurance,
		MonthlyMaintenance:     s.MonthlyMaintenance,
		AnnualAppreciationRate: s.AnnualAppreciationRate,
		MonthlyRentSavings:     s.MonthlyRentSavings,
		Years:                  s.Years,
	}
}

// StockInputs returns engine inputs for the active stock scenarios.
func (c *Configuration) StockInputs() []comparison.StockInput {
	var inputs []comparison.StockInput
	for _, scenario := range c.Stocks {
		if scenario.Active {
			inputs = append(inputs, scenario.Input())
		}
	}
	return inputs
}

// RealEstateInputs returns engine inputs for the active real estate scenarios.
func (c *Configuration) RealEstateInputs() []realestate.Input {
	var inputs []realestate.Input
	for _, scenario := range c.RealEstate {
		if scenario.Active {
			inputs = append(inputs, scenario.Input())
		}
	}
	return inputs
}

// Rate returns a pointer to percent, for building scenarios in code.
func Rate(percent float64) *float64 {
	return &percent
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
