// Package loans provides fixed-rate mortgage amortization utilities.
package loans

import (
	"fmt"

	"github.com/iwvelando/invest-compare/pkg/mathutil"
	"go.uber.org/zap"
)

// MonthlyPayment calculates the monthly payment for a fixed-rate loan using
// the standard amortization formula. A non-positive principal, rate or term
// yields a payment of exactly 0; interest-free loans are not amortized.
func MonthlyPayment(principal, annualRate float64, termYears int) float64 {
	if principal <= 0 || annualRate <= 0 || termYears <= 0 {
		return 0
	}

	periodicInterestRate := mathutil.MonthlyRate(annualRate)
	power := mathutil.CompoundFactor(periodicInterestRate, mathutil.Months(termYears))
	return principal * periodicInterestRate * power / (power - 1)
}

// RemainingBalance returns the outstanding principal after elapsedYears of
// scheduled payments. Elapsed time is clamped at the loan term, so holding
// past payoff returns 0. When MonthlyPayment would be 0 nothing is repaid and
// the principal is returned until the term ends.
func RemainingBalance(principal, annualRate float64, termYears, elapsedYears int) float64 {
	totalMonths := mathutil.Months(termYears)
	elapsedMonths := mathutil.Months(min(elapsedYears, termYears))

	if elapsedMonths >= totalMonths {
		return 0
	}
	if elapsedMonths <= 0 || MonthlyPayment(principal, annualRate, termYears) == 0 {
		return principal
	}

	r := mathutil.MonthlyRate(annualRate)
	powerN := mathutil.CompoundFactor(r, totalMonths)
	powerM := mathutil.CompoundFactor(r, elapsedMonths)
	return principal * (powerN - powerM) / (powerN - 1)
}

// InterestPaid returns the total interest contained in the scheduled
// payments made over elapsedYears, clamped at the loan term.
func InterestPaid(principal, annualRate float64, termYears, elapsedYears int) float64 {
	payment := MonthlyPayment(principal, annualRate, termYears)
	if payment == 0 || elapsedYears <= 0 {
		return 0
	}

	months := mathutil.Months(min(elapsedYears, termYears))
	principalRepaid := principal - RemainingBalance(principal, annualRate, termYears, elapsedYears)
	return payment*float64(months) - principalRepaid
}

// YearSummary aggregates the payments made during one loan year.
type YearSummary struct {
	Year             int     `json:"year"`
	Payments         float64 `json:"payments"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// LoanConfig represents loan configuration parameters
type LoanConfig struct {
	Name         string
	Principal    float64
	InterestRate float64
	TermYears    int
}

// ScheduleGenerator provides utilities for generating yearly amortization schedules
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSchedule creates a year-by-year schedule covering the first
// holdingYears of the loan, stopping early once the loan matures.
func (g *ScheduleGenerator) GenerateSchedule(loan LoanConfig, holdingYears int) ([]YearSummary, error) {
	if holdingYears < 0 {
		return nil, fmt.Errorf("holding period cannot be negative for loan %s: %d", loan.Name, holdingYears)
	}
	if loan.TermYears < 0 {
		return nil, fmt.Errorf("term cannot be negative for loan %s: %d", loan.Name, loan.TermYears)
	}

	monthlyPayment := MonthlyPayment(loan.Principal, loan.InterestRate, loan.TermYears)
	if monthlyPayment == 0 {
		g.logger.Debug(fmt.Sprintf("loan %s has no scheduled payments", loan.Name),
			zap.String("op", "loans.GenerateSchedule"),
			zap.Float64("principal", loan.Principal),
			zap.Float64("rate", loan.InterestRate),
		)
	}

	years := min(holdingYears, loan.TermYears)
	schedule := make([]YearSummary, 0, years)
	previousBalance := loan.Principal
	for year := 1; year <= years; year++ {
		balance := RemainingBalance(loan.Principal, loan.InterestRate, loan.TermYears, year)
		payments := monthlyPayment * 12
		principal := previousBalance - balance
		interest := payments - principal
		if monthlyPayment == 0 {
			principal, interest = 0, 0
		}

		schedule = append(schedule, YearSummary{
			Year:             year,
			Payments:         payments,
			Principal:        principal,
			Interest:         interest,
			RemainingBalance: balance,
		})
		previousBalance = balance
	}

	if holdingYears > loan.TermYears && loan.TermYears > 0 {
		g.logger.Debug(fmt.Sprintf("loan %s matures after %d years, before the %d year holding period ends",
			loan.Name, loan.TermYears, holdingYears),
			zap.String("op", "loans.GenerateSchedule"),
		)
	}

	return schedule, nil
}
