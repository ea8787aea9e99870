package growth

import (
	"math"
	"testing"
)

func TestProjectGrowth(t *testing.T) {
	tests := []struct {
		name                string
		initialAmount       float64
		monthlyContribution float64
		annualRate          float64
		years               int
		expected            float64
		tolerance           float64
	}{
		{
			name:          "Lump sum only",
			initialAmount: 1000, annualRate: 7, years: 10,
			expected: 2009.66, tolerance: 0.01,
		},
		{
			name:          "Contributions dominate",
			initialAmount: 1000, monthlyContribution: 100, annualRate: 7, years: 10,
			expected: 19318.14, tolerance: 0.01,
		},
		{
			name:          "Single year",
			initialAmount: 1000, monthlyContribution: 100, annualRate: 7, years: 1,
			expected: 2311.55, tolerance: 0.01,
		},
		{
			name:          "Negative rate decays",
			initialAmount: 1000, annualRate: -6, years: 1,
			expected: 941.62, tolerance: 0.01,
		},
		{
			name:          "Negative contribution is a withdrawal",
			initialAmount: 10000, monthlyContribution: -50, annualRate: 7, years: 5,
			expected: 10596.61, tolerance: 0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ProjectGrowth(tt.initialAmount, tt.monthlyContribution, tt.annualRate, tt.years)
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("ProjectGrowth() = %.4f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestProjectGrowthZeroRateIsExact(t *testing.T) {
	result := ProjectGrowth(1000, 100, 0, 10)
	if result != 13000 {
		t.Errorf("ProjectGrowth(1000, 100, 0, 10) = %v, expected exactly 13000", result)
	}

	result = ProjectGrowth(1000, -10, 0, 1)
	if result != 880 {
		t.Errorf("ProjectGrowth(1000, -10, 0, 1) = %v, expected exactly 880", result)
	}
}

func TestProjectGrowthLumpSumMatchesCompounding(t *testing.T) {
	for _, rate := range []float64{-5, 0, 2.5, 7, 12} {
		for _, years := range []int{1, 5, 30} {
			expected := 2500 * math.Pow(1+rate/1200, float64(years*12))
			result := ProjectGrowth(2500, 0, rate, years)
			if math.Abs(result-expected) > 1e-9*math.Max(1, expected) {
				t.Errorf("ProjectGrowth(2500, 0, %v, %d) = %v, expected %v", rate, years, result, expected)
			}
		}
	}
}

func TestProjectGrowthLargeInputsStayFinite(t *testing.T) {
	result := ProjectGrowth(1000000, 10000, 15, 30)
	if math.IsInf(result, 0) || math.IsNaN(result) {
		t.Fatalf("ProjectGrowth() returned non-finite %v", result)
	}
	if result <= 1000000 {
		t.Errorf("ProjectGrowth() = %v, expected growth above the initial amount", result)
	}
}

func TestProjectBenchmarkGrowth(t *testing.T) {
	benchmark := ProjectBenchmarkGrowth(1000, 100, 10)
	direct := ProjectGrowth(1000, 100, 7, 10)
	if benchmark != direct {
		t.Errorf("ProjectBenchmarkGrowth() = %v, expected %v", benchmark, direct)
	}
}

func TestProjectGrowthIsDeterministic(t *testing.T) {
	first := ProjectGrowth(12345.67, 321.5, 6.3, 17)
	second := ProjectGrowth(12345.67, 321.5, 6.3, 17)
	if math.Float64bits(first) != math.Float64bits(second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}

func TestGrowthSeries(t *testing.T) {
	series := GrowthSeries(1000, 100, 7, 10)
	if len(series) != 11 {
		t.Fatalf("expected 11 entries, got %d", len(series))
	}
	if series[0] != 1000 {
		t.Errorf("series[0] = %v, expected 1000", series[0])
	}
	if series[10] != ProjectGrowth(1000, 100, 7, 10) {
		t.Errorf("series[10] = %v, expected final projection", series[10])
	}
	for i := 1; i < len(series); i++ {
		if series[i] <= series[i-1] {
			t.Errorf("series not increasing at year %d: %v <= %v", i, series[i], series[i-1])
		}
	}

	if GrowthSeries(1000, 0, 7, -1) != nil {
		t.Error("expected nil series for negative years")
	}

	benchmark := BenchmarkSeries(1000, 100, 3)
	if len(benchmark) != 4 || benchmark[3] != ProjectBenchmarkGrowth(1000, 100, 3) {
		t.Errorf("BenchmarkSeries() = %v, expected benchmark projection at each year", benchmark)
	}
}
