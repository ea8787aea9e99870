// Package output provides utilities for formatting and displaying comparison reports.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/invest-compare/internal/compare"
	"github.com/iwvelando/invest-compare/pkg/comparison"
	"github.com/iwvelando/invest-compare/pkg/format"
	"github.com/iwvelando/invest-compare/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// row is one labelled line of the side-by-side summary.
type row struct {
	label     string
	user      string
	benchmark string
}

func summaryRows(result comparison.Result) []row {
	user, benchmark := result.User, result.Benchmark
	return []row{
		{"Final value", format.Currency(user.FutureValue), format.Currency(benchmark.FutureValue)},
		{"Initial investment", format.Currency(user.InitialInvestment), format.Currency(benchmark.InitialInvestment)},
		{"Monthly contribution", format.Currency(user.MonthlyContribution), format.Currency(benchmark.MonthlyContribution)},
		{"Effective rate", format.Percentage(user.EffectiveRate), format.Percentage(benchmark.EffectiveRate)},
		{"Annualized net return", format.Percentage(user.AnnualizedNetReturn), format.Percentage(benchmark.AnnualizedNetReturn)},
		{"Total return", format.Currency(user.TotalReturnAmount), format.Currency(benchmark.TotalReturnAmount)},
	}
}

func detailRows(result comparison.Result) [][2]string {
	d := result.User.Details
	if d == nil {
		return nil
	}
	return [][2]string{
		{"Property value", format.Currency(d.PropertyValue)},
		{"Loan amount", format.Currency(d.LoanAmount)},
		{"Monthly mortgage", format.Currency(d.MonthlyMortgage)},
		{"Monthly expenses", format.Currency(d.MonthlyExpenses)},
		{"Monthly rent avoided", format.Currency(d.MonthlyRent)},
		{"Monthly cash flow", format.Currency(d.MonthlyCashFlow)},
		{"Future property value", format.Currency(d.FuturePropertyValue)},
		{"Capital gain", format.Currency(d.CapitalGain)},
		{"Equity from paydown", format.Currency(d.EquityFromPaydown)},
		{"Remaining mortgage", format.Currency(d.RemainingMortgageBalance)},
		{"Interest paid", format.Currency(d.TotalInterestPaid)},
	}
}

func verdict(result comparison.Result) string {
	if result.DifferenceAbsolute == 0 {
		return fmt.Sprintf("%s ties %s; ties go to the benchmark", result.User.Name, result.Benchmark.Name)
	}
	winner, loser := result.Benchmark.Name, result.User.Name
	if result.Winner == comparison.WinnerUser {
		winner, loser = loser, winner
	}
	return fmt.Sprintf("%s beats %s by %s", winner, loser, margin(result.DifferenceAbsolute))
}

// margin renders a winning difference that whole-dollar rounding would
// otherwise show as "$0".
func margin(difference float64) string {
	if mathutil.IsZero(difference) {
		return "a cent or less"
	}
	if amount := format.Currency(difference); amount != "$0" {
		return amount
	}
	return "less than $1"
}

func breakEvenLine(report compare.Report) string {
	be := report.BreakEven
	if be == nil {
		return ""
	}
	if !be.Converged {
		if len(be.Notes) > 0 {
			return "Break-even: " + be.Notes[0]
		}
		return "Break-even: not found"
	}
	return fmt.Sprintf("Break-even %s: %s (current %s, headroom %.1f points)",
		be.Field, format.Percentage(be.Value), format.Percentage(be.Original), be.Headroom())
}

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, reports []compare.Report) error {
	p := message.NewPrinter(language.English)
	for i, report := range reports {
		result := report.Result
		if _, err := p.Fprintf(w, "--- Results for %s scenario %s ---\n", report.Kind, report.Name); err != nil {
			return err
		}
		_, _ = p.Fprintf(w, "%-24s| %-18s| %s\n", "", result.User.Name, result.Benchmark.Name)
		_, _ = p.Fprintf(w, "%-24s| %-18s| %s\n", "____", "____", "____")
		for _, r := range summaryRows(result) {
			_, _ = p.Fprintf(w, "%-24s| %-18s| %s\n", r.label, r.user, r.benchmark)
		}

		if details := detailRows(result); len(details) > 0 {
			_, _ = p.Fprintf(w, "\n")
			for _, d := range details {
				_, _ = p.Fprintf(w, "%-24s| %s\n", d[0], d[1])
			}
		}

		_, _ = p.Fprintf(w, "\n%s\n", verdict(result))
		if line := breakEvenLine(report); line != "" {
			_, _ = p.Fprintf(w, "%s\n", line)
		}

		_, _ = p.Fprintf(w, "\n%-8s| %-18s| %s\n", "", result.User.Name, result.Benchmark.Name)
		for year, label := range format.YearLabels(len(result.User.ValueSeries) - 1) {
			_, _ = p.Fprintf(w, "%-8s| %-18s| %s\n", label,
				format.Currency(result.User.ValueSeries[year]), seriesValue(result.Benchmark.ValueSeries, year))
		}

		if len(report.Schedule) > 0 {
			_, _ = p.Fprintf(w, "\n%-8s| %-12s| %-12s| %-12s| %s\n", "Mortgage", "Payments", "Principal", "Interest", "Balance")
			for _, year := range report.Schedule {
				_, _ = p.Fprintf(w, "%-8s| %-12s| %-12s| %-12s| %s\n", fmt.Sprintf("Year %d", year.Year),
					format.Currency(year.Payments), format.Currency(year.Principal),
					format.Currency(year.Interest), format.Currency(year.RemainingBalance))
			}
		}

		if i < len(reports)-1 {
			if _, err := p.Fprintf(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func seriesValue(series []float64, year int) string {
	if year >= len(series) {
		return ""
	}
	return format.Currency(series[year])
}

// CsvFormat writes the year-by-year value of both sides of every report in
// comma-separated value format, one column per side.
func CsvFormat(w io.Writer, reports []compare.Report) error {
	writer := csv.NewWriter(w)

	header := []string{"year"}
	longest := 0
	for _, report := range reports {
		header = append(header,
			fmt.Sprintf("%s (%s)", report.Name, report.Result.User.Name),
			fmt.Sprintf("%s (%s)", report.Name, report.Result.Benchmark.Name),
		)
		if n := len(report.Result.User.ValueSeries); n > longest {
			longest = n
		}
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for year := 0; year < longest; year++ {
		record := []string{strconv.Itoa(year)}
		for _, report := range reports {
			record = append(record,
				csvValue(report.Result.User.ValueSeries, year),
				csvValue(report.Result.Benchmark.ValueSeries, year),
			)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func csvValue(series []float64, year int) string {
	if year >= len(series) {
		return ""
	}
	return strconv.FormatFloat(series[year], 'f', 2, 64)
}

// CsvString renders CsvFormat to a string.
func CsvString(reports []compare.Report) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, reports); err != nil {
		return "", err
	}
	return buf.String(), nil
}
