package output

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/iwvelando/invest-compare/internal/compare"
	"github.com/iwvelando/invest-compare/pkg/comparison"
	"github.com/iwvelando/invest-compare/pkg/constants"
	"github.com/iwvelando/invest-compare/pkg/format"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
	labelWidth   = 70.0
	valueWidth   = (contentWidth - labelWidth) / 2
)

type pdfReport struct {
	pdf     *fpdf.Fpdf
	reports []compare.Report
	now     func() time.Time
}

// PDFReport renders the reports as an A4 PDF document: a title page with the
// verdicts, then one page per report.
func PDFReport(reports []compare.Report) ([]byte, error) {
	if len(reports) == 0 {
		return nil, fmt.Errorf("no reports to render")
	}

	r := &pdfReport{
		pdf:     fpdf.New("P", "mm", "A4", ""),
		reports: reports,
		now:     time.Now,
	}
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.AliasNbPages("")
	r.pdf.SetFooterFunc(r.footer)

	r.addTitlePage()
	for _, report := range reports {
		r.addReportPage(report)
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) footer() {
	r.pdf.SetY(-15)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(128, 128, 128)
	r.pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", r.pdf.PageNo()), "", 0, "C", false, 0, "")
}

func (r *pdfReport) addTitlePage() {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 28)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(40)
	r.pdf.CellFormat(contentWidth, 15, "Investment Comparison", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.SetTextColor(100, 100, 100)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("Generated: %s", r.now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(15)

	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("Benchmark: %s at %s per year", constants.BenchmarkName, format.Percentage(constants.BenchmarkAnnualRate)), "1", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "", 11)
	for i, report := range r.reports {
		border := "LR"
		if i == len(r.reports)-1 {
			border = "LRB"
		}
		r.pdf.CellFormat(contentWidth, 7, verdict(report.Result), border, 1, "C", true, 0, "")
	}
}

func (r *pdfReport) addReportPage(report compare.Report) {
	result := report.Result
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, report.Name, "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(100, 100, 100)
	r.pdf.CellFormat(contentWidth, 5, fmt.Sprintf("%s comparison, %d years, report %s", report.Kind, result.User.Years, report.ID), "", 1, "L", false, 0, "")
	r.pdf.Ln(4)

	r.tableHeader("", result.User.Name, result.Benchmark.Name)
	for i, row := range summaryRows(result) {
		r.tableRow(i, row.label, row.user, row.benchmark)
	}
	r.pdf.Ln(4)

	r.verdictBox(result)
	if line := breakEvenLine(report); line != "" {
		r.pdf.SetFont("Arial", "I", 9)
		r.pdf.SetTextColor(60, 60, 60)
		r.pdf.MultiCell(contentWidth, 5, line, "", "L", false)
	}
	r.pdf.Ln(4)

	if details := detailRows(result); len(details) > 0 {
		r.sectionTitle("Property details")
		r.pdf.SetFont("Arial", "", 10)
		r.pdf.SetTextColor(0, 0, 0)
		for _, d := range details {
			r.pdf.CellFormat(labelWidth, 5, d[0], "", 0, "L", false, 0, "")
			r.pdf.CellFormat(valueWidth, 5, d[1], "", 1, "R", false, 0, "")
		}
		r.pdf.Ln(4)
	}

	r.sectionTitle("Value by year")
	r.tableHeader("", result.User.Name, result.Benchmark.Name)
	for year, label := range format.YearLabels(len(result.User.ValueSeries) - 1) {
		r.tableRow(year, label, format.Currency(result.User.ValueSeries[year]),
			seriesValue(result.Benchmark.ValueSeries, year))
	}

	if len(report.Schedule) > 0 {
		r.pdf.Ln(4)
		r.addSchedule(report)
	}
}

func (r *pdfReport) addSchedule(report compare.Report) {
	const colWidth = contentWidth / 5
	r.sectionTitle("Mortgage by year")

	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 10)
	for i, heading := range []string{"", "Payments", "Principal", "Interest", "Balance"} {
		ln := 0
		if i == 4 {
			ln = 1
		}
		r.pdf.CellFormat(colWidth, 7, heading, "", ln, "R", true, 0, "")
	}

	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.SetFont("Arial", "", 9)
	for i, year := range report.Schedule {
		if i%2 == 0 {
			r.pdf.SetFillColor(252, 252, 252)
		} else {
			r.pdf.SetFillColor(240, 248, 255)
		}
		r.pdf.CellFormat(colWidth, 6, "Year "+strconv.Itoa(year.Year), "", 0, "L", true, 0, "")
		r.pdf.CellFormat(colWidth, 6, format.Currency(year.Payments), "", 0, "R", true, 0, "")
		r.pdf.CellFormat(colWidth, 6, format.Currency(year.Principal), "", 0, "R", true, 0, "")
		r.pdf.CellFormat(colWidth, 6, format.Currency(year.Interest), "", 0, "R", true, 0, "")
		r.pdf.CellFormat(colWidth, 6, format.Currency(year.RemainingBalance), "", 1, "R", true, 0, "")
	}
}

func (r *pdfReport) sectionTitle(title string) {
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 7, title, "", 1, "L", false, 0, "")
}

func (r *pdfReport) tableHeader(label, user, benchmark string) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.CellFormat(labelWidth, 7, label, "", 0, "L", true, 0, "")
	r.pdf.CellFormat(valueWidth, 7, user, "", 0, "R", true, 0, "")
	r.pdf.CellFormat(valueWidth, 7, benchmark, "", 1, "R", true, 0, "")
}

func (r *pdfReport) tableRow(i int, label, user, benchmark string) {
	if i%2 == 0 {
		r.pdf.SetFillColor(252, 252, 252)
	} else {
		r.pdf.SetFillColor(240, 248, 255)
	}
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.CellFormat(labelWidth, 6, label, "", 0, "L", true, 0, "")
	r.pdf.CellFormat(valueWidth, 6, user, "", 0, "R", true, 0, "")
	r.pdf.CellFormat(valueWidth, 6, benchmark, "", 1, "R", true, 0, "")
}

func (r *pdfReport) verdictBox(result comparison.Result) {
	if result.Winner == comparison.WinnerUser {
		r.pdf.SetFillColor(223, 240, 216)
	} else {
		r.pdf.SetFillColor(252, 228, 214)
	}
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.CellFormat(contentWidth, 8, verdict(result), "", 1, "C", true, 0, "")
}
