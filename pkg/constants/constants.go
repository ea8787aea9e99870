// Package constants provides shared constants for the invest-compare application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Benchmark constants
const (
	// BenchmarkAnnualRate is the historical average annual return of the
	// S&P 500 used as the reference investment, in percent.
	BenchmarkAnnualRate = 7.0

	// BenchmarkName labels the benchmark side of a stock comparison.
	BenchmarkName = "S&P 500"

	// BenchmarkRentingName labels the benchmark side of a real estate
	// comparison, where the down payment is invested and the buyer rents.
	BenchmarkRentingName = "S&P 500 (Renting)"

	// DefaultStockName is used when a stock scenario has no name.
	DefaultStockName = "Your Investment"

	// DefaultRealEstateName is used when a real estate scenario has no name.
	DefaultRealEstateName = "Real Estate"

	// NoRecoveryReturn is the annualized return reported for a benchmark
	// whose future value has fallen to zero or below.
	NoRecoveryReturn = -100.0
)

// Comparison kinds
const (
	// KindStocks identifies a stock/ETF comparison.
	KindStocks = "stocks"

	// KindRealEstate identifies a real estate comparison.
	KindRealEstate = "realestate"
)

// Validation limits
const (
	// MaxYears is the longest supported holding period.
	MaxYears = 50

	// MinRate is the lowest annual rate the break-even search will consider.
	MinRate = -20.0

	// MaxRate is the highest annual rate the break-even search will consider.
	MaxRate = 50.0

	// MaxInvestment is the largest initial amount accepted.
	MaxInvestment = 10_000_000.0

	// MaxPropertyValue is the largest property value accepted.
	MaxPropertyValue = 50_000_000.0

	// MaxMonthlyAmount caps contributions, carrying costs and rent. It shares
	// the initial amount limit so projections stay finite at MaxRate over
	// MaxYears.
	MaxMonthlyAmount = MaxInvestment
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatPDF is the PDF report output format
	OutputFormatPDF = "pdf"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultReadTimeout bounds reading a request, body included
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout bounds writing a response
	DefaultWriteTimeout = 60 * time.Second

	// DefaultShutdownTimeout bounds draining in-flight requests on shutdown
	DefaultShutdownTimeout = 10 * time.Second
)

// Cache backends
const (
	// CacheBackendNone disables result caching.
	CacheBackendNone = "none"

	// CacheBackendMemory keeps results in process memory.
	CacheBackendMemory = "memory"

	// CacheBackendRedis stores results in Redis.
	CacheBackendRedis = "redis"

	// DefaultRedisAddress is used when the redis backend has no address.
	DefaultRedisAddress = "localhost:6379"

	// DefaultCacheTTL is how long cached results are kept.
	DefaultCacheTTL = 10 * time.Minute
)

// Break-even search parameters
const (
	// BreakEvenTolerance is the rate precision at which the search stops.
	BreakEvenTolerance = 1e-6

	// BreakEvenMaxIterations bounds the bisection loop.
	BreakEvenMaxIterations = 200
)
