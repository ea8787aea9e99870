package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/invest-compare/pkg/comparison"
	"github.com/iwvelando/invest-compare/pkg/constants"
	"github.com/iwvelando/invest-compare/pkg/realestate"
)

// ErrInvalidInput is matched by every error returned from the input
// validators.
var ErrInvalidInput = errors.New("invalid input")

// InputError reports the field that failed validation.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrInvalidInput) true for any InputError.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, format string, args ...interface{}) error {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidateStockInput checks a stock investment before it is compared.
func ValidateStockInput(in comparison.StockInput) error {
	if err := finite(map[string]float64{
		"initialAmount":       in.InitialAmount,
		"monthlyContribution": in.MonthlyContribution,
		"annualReturnRate":    in.AnnualReturnRate,
		"annualFeeRate":       in.AnnualFeeRate,
	}); err != nil {
		return err
	}
	if in.InitialAmount <= 0 {
		return invalid("initialAmount", "please enter a valid initial amount")
	}
	if in.InitialAmount > constants.MaxInvestment {
		return invalid("initialAmount", "initial amount cannot exceed %.0f", constants.MaxInvestment)
	}
	if in.MonthlyContribution < 0 {
		return invalid("monthlyContribution", "monthly contribution cannot be negative")
	}
	if in.MonthlyContribution > constants.MaxMonthlyAmount {
		return invalid("monthlyContribution", "monthly contribution cannot exceed %.0f", constants.MaxMonthlyAmount)
	}
	if err := validateYears("years", in.Years); err != nil {
		return err
	}
	if in.AnnualReturnRate < 0 {
		return invalid("annualReturnRate", "return rate cannot be negative")
	}
	if in.AnnualReturnRate > constants.MaxRate {
		return invalid("annualReturnRate", "return rate cannot exceed %.0f%%", constants.MaxRate)
	}
	if in.AnnualFeeRate < 0 {
		return invalid("annualFeeRate", "fee rate cannot be negative")
	}
	if in.AnnualFeeRate > constants.MaxRate {
		return invalid("annualFeeRate", "fee rate cannot exceed %.0f%%", constants.MaxRate)
	}
	return nil
}

// ValidateRealEstateInput checks a property purchase before it is compared.
func ValidateRealEstateInput(in realestate.Input) error {
	if err := finite(map[string]float64{
		"propertyValue":          in.PropertyValue,
		"downPayment":            in.DownPayment,
		"annualMortgageRate":     in.AnnualMortgageRate,
		"annualAppreciationRate": in.AnnualAppreciationRate,
		"monthlyPropertyTax":     in.MonthlyPropertyTax,
		"monthlyHOA":             in.MonthlyHOA,
		"monthlyInsurance":       in.MonthlyInsurance,
		"monthlyMaintenance":     in.MonthlyMaintenance,
		"monthlyRentSavings":     in.MonthlyRentSavings,
	}); err != nil {
		return err
	}
	if in.PropertyValue <= 0 {
		return invalid("propertyValue", "please enter a valid property value")
	}
	if in.PropertyValue > constants.MaxPropertyValue {
		return invalid("propertyValue", "property value cannot exceed %.0f", constants.MaxPropertyValue)
	}
	if in.DownPayment <= 0 {
		return invalid("downPayment", "please enter a valid down payment")
	}
	if in.DownPayment > in.PropertyValue {
		return invalid("downPayment", "down payment cannot exceed property value")
	}
	if err := validateYears("years", in.Years); err != nil {
		return err
	}
	if in.AnnualMortgageRate < 0 {
		return invalid("annualMortgageRate", "mortgage rate cannot be negative")
	}
	if in.AnnualMortgageRate > constants.MaxRate {
		return invalid("annualMortgageRate", "mortgage rate cannot exceed %.0f%%", constants.MaxRate)
	}
	if in.LoanTermYears < 0 {
		return invalid("loanTermYears", "loan term cannot be negative")
	}
	if in.LoanAmount() > 0 && in.LoanTermYears == 0 {
		return invalid("loanTermYears", "a financed purchase needs a loan term")
	}
	if in.AnnualAppreciationRate < 0 {
		return invalid("annualAppreciationRate", "appreciation rate cannot be negative")
	}
	if in.AnnualAppreciationRate > constants.MaxRate {
		return invalid("annualAppreciationRate", "appreciation rate cannot exceed %.0f%%", constants.MaxRate)
	}

	monthly := []struct {
		field string
		value float64
	}{
		{"monthlyPropertyTax", in.MonthlyPropertyTax},
		{"monthlyHOA", in.MonthlyHOA},
		{"monthlyInsurance", in.MonthlyInsurance},
		{"monthlyMaintenance", in.MonthlyMaintenance},
		{"monthlyRentSavings", in.MonthlyRentSavings},
	}
	for _, m := range monthly {
		if m.value < 0 {
			return invalid(m.field, "amount cannot be negative")
		}
		if m.value > constants.MaxMonthlyAmount {
			return invalid(m.field, "amount cannot exceed %.0f", constants.MaxMonthlyAmount)
		}
	}
	return nil
}

// finite rejects NaN and infinite values, which YAML input can carry.
func finite(fields map[string]float64) error {
	for field, value := range fields {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return invalid(field, "must be a finite number")
		}
	}
	return nil
}

func validateYears(field string, years int) error {
	if years <= 0 {
		return invalid(field, "please enter a valid number of years")
	}
	if years > constants.MaxYears {
		return invalid(field, "holding period cannot exceed %d years", constants.MaxYears)
	}
	return nil
}
