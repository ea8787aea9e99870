package integration

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/invest-compare/internal/cache"
	"github.com/iwvelando/invest-compare/internal/compare"
	"github.com/iwvelando/invest-compare/internal/config"
	"github.com/iwvelando/invest-compare/pkg/comparison"
	"github.com/iwvelando/invest-compare/pkg/output"
	"github.com/iwvelando/invest-compare/pkg/testutil"
	"go.uber.org/zap"
)

// TestCompareBaseline runs the test configuration exactly as main() does and
// checks the headline numbers of every scenario.
func TestCompareBaseline(t *testing.T) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	service := compare.NewService(zap.NewNop(), compare.WithBreakEven(conf.BreakEven))
	reports, err := service.Run(context.Background(), conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(reports) != 4 {
		t.Fatalf("Expected 4 reports, got %d", len(reports))
	}

	expected := []struct {
		name      string
		user      float64
		benchmark float64
		winner    comparison.Winner
	}{
		{"NASDAQ 100", 127796.24, 106639.02, comparison.WinnerUser},
		{"Dividend Fund", 257926.77, 231200.14, comparison.WinnerUser},
		{"My Home", 356822.35, 328124.83, comparison.WinnerUser},
		{"Rental Condo", 445784.22, 724315.05, comparison.WinnerBenchmark},
	}

	for _, want := range expected {
		t.Run(want.name, func(t *testing.T) {
			report := testutil.FindReport(reports, want.name)
			if report == nil {
				t.Fatalf("report %s not found", want.name)
			}
			result := report.Result
			if !testutil.WithinCents(result.User.FutureValue, want.user) {
				t.Errorf("user value = %.2f, expected %.2f", result.User.FutureValue, want.user)
			}
			if !testutil.WithinCents(result.Benchmark.FutureValue, want.benchmark) {
				t.Errorf("benchmark value = %.2f, expected %.2f", result.Benchmark.FutureValue, want.benchmark)
			}
			if result.Winner != want.winner {
				t.Errorf("winner = %s, expected %s", result.Winner, want.winner)
			}
			if report.BreakEven == nil {
				t.Error("expected break-even summary")
			}
		})
	}

	condo := testutil.FindReport(reports, "Rental Condo")
	if condo != nil && !testutil.WithinCents(condo.Result.Benchmark.MonthlyContribution, 925.26) {
		t.Errorf("condo renter contribution = %.2f, expected 925.26", condo.Result.Benchmark.MonthlyContribution)
	}
}

func TestCompareOutputs(t *testing.T) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	reports, err := compare.NewService(zap.NewNop()).Run(context.Background(), conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var pretty bytes.Buffer
	if err := output.PrettyFormat(&pretty, reports); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	for _, report := range reports {
		if !strings.Contains(pretty.String(), "scenario "+report.Name+" ---") {
			t.Errorf("pretty output missing %s", report.Name)
		}
	}

	csvData, err := output.CsvString(reports)
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(csvData)).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	// Longest scenarios run 20 years.
	if len(records) != 22 {
		t.Errorf("Expected 22 CSV records, got %d", len(records))
	}
	if len(records[0]) != 1+2*len(reports) {
		t.Errorf("Expected %d CSV columns, got %d", 1+2*len(reports), len(records[0]))
	}

	pdf, err := output.PDFReport(reports)
	if err != nil {
		t.Fatalf("PDFReport() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Error("expected PDF output")
	}
}

func TestExampleConfiguration(t *testing.T) {
	conf, err := config.LoadConfiguration("../../config.yaml.example")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("example configuration should not warn, got %v", warnings)
	}

	resultCache, err := cache.New(conf.Cache)
	if err != nil {
		t.Fatalf("cache.New() error = %v", err)
	}

	service := compare.NewService(zap.NewNop(), compare.WithCache(resultCache, time.Minute))
	reports, err := service.Run(context.Background(), conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	managed := testutil.FindReport(reports, "Managed Growth")
	if managed == nil {
		t.Fatal("expected Managed Growth report")
	}
	if managed.Result.User.EffectiveRate != 11.2 {
		t.Errorf("preset should give an effective rate of 11.2, got %v", managed.Result.User.EffectiveRate)
	}

	again, err := service.Run(context.Background(), conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, report := range again {
		if !report.Cached {
			t.Errorf("second run of %s should be served from the cache", report.Name)
		}
	}
}
