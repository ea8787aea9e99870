// Package compare runs validated comparisons for the CLI and HTTP server,
// memoizing results and attaching break-even summaries.
package compare

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/invest-compare/internal/cache"
	"github.com/iwvelando/invest-compare/internal/config"
	"github.com/iwvelando/invest-compare/internal/optimizer"
	"github.com/iwvelando/invest-compare/pkg/comparison"
	"github.com/iwvelando/invest-compare/pkg/constants"
	"github.com/iwvelando/invest-compare/pkg/loans"
	"github.com/iwvelando/invest-compare/pkg/optimization"
	"github.com/iwvelando/invest-compare/pkg/realestate"
	"github.com/iwvelando/invest-compare/pkg/validation"
	"go.uber.org/zap"
)

// Report is one finished comparison.
type Report struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Kind      string                `json:"kind"`
	Result    comparison.Result     `json:"result"`
	BreakEven *optimization.Summary `json:"breakEven,omitempty"`
	Schedule  []loans.YearSummary   `json:"schedule,omitempty"`
	Cached    bool                  `json:"cached"`
}

// cachedEntry is the cached part of a report; IDs are stamped per request.
type cachedEntry struct {
	Result    comparison.Result     `json:"result"`
	BreakEven *optimization.Summary `json:"breakEven,omitempty"`
}

// Service validates inputs and produces reports.
type Service struct {
	logger    *zap.Logger
	cache     cache.Cache
	ttl       time.Duration
	breakEven bool
	optimizer *optimizer.Runner
	schedules *loans.ScheduleGenerator
	newID     func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithCache memoizes results in c for ttl. A nil cache disables caching.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithBreakEven toggles the break-even search on every report.
func WithBreakEven(enabled bool) Option {
	return func(s *Service) {
		s.breakEven = enabled
	}
}

// NewService constructs a Service.
func NewService(logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		logger: logger,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.optimizer = optimizer.NewRunner(logger)
	s.schedules = loans.NewScheduleGenerator(logger)
	return s
}

// CompareStocks compares a stock investment against the benchmark.
func (s *Service) CompareStocks(ctx context.Context, in comparison.StockInput) (Report, error) {
	if err := validation.ValidateStockInput(in); err != nil {
		return Report{}, err
	}

	entry, cached := s.lookup(ctx, constants.KindStocks, in)
	if !cached {
		entry.Result = comparison.CompareStocks(in)
	}
	if s.breakEven && entry.BreakEven == nil {
		summary := s.optimizer.StockBreakEven(in)
		entry.BreakEven = &summary
		cached = false
	}
	if !cached {
		s.store(ctx, constants.KindStocks, in, entry)
	}

	return s.report(constants.KindStocks, entry, cached), nil
}

// CompareRealEstate compares owning a property against renting and
// investing the difference in the benchmark.
func (s *Service) CompareRealEstate(ctx context.Context, in realestate.Input) (Report, error) {
	if err := validation.ValidateRealEstateInput(in); err != nil {
		return Report{}, err
	}

	entry, cached := s.lookup(ctx, constants.KindRealEstate, in)
	if !cached {
		entry.Result = comparison.CompareRealEstate(in)
	}
	if s.breakEven && entry.BreakEven == nil {
		summary := s.optimizer.RealEstateBreakEven(in)
		entry.BreakEven = &summary
		cached = false
	}
	if !cached {
		s.store(ctx, constants.KindRealEstate, in, entry)
	}

	report := s.report(constants.KindRealEstate, entry, cached)
	report.Schedule = s.mortgageSchedule(in)
	return report, nil
}

// mortgageSchedule returns the yearly amortization over the holding period,
// or nil for a cash purchase.
func (s *Service) mortgageSchedule(in realestate.Input) []loans.YearSummary {
	if in.LoanAmount() <= 0 {
		return nil
	}
	schedule, err := s.schedules.GenerateSchedule(loans.LoanConfig{
		Name:         nameOrDefault(in.Name, constants.DefaultRealEstateName),
		Principal:    in.LoanAmount(),
		InterestRate: in.AnnualMortgageRate,
		TermYears:    in.LoanTermYears,
	}, in.Years)
	if err != nil {
		s.logger.Warn("unable to build mortgage schedule", zap.String("op", "compare.mortgageSchedule"), zap.Error(err))
		return nil
	}
	return schedule
}

func nameOrDefault(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// Run compares every active scenario in the configuration, stocks first. It
// stops at the first invalid scenario.
func (s *Service) Run(ctx context.Context, conf *config.Configuration) ([]Report, error) {
	var reports []Report

	for _, in := range conf.StockInputs() {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report, err := s.CompareStocks(ctx, in)
		if err != nil {
			return reports, fmt.Errorf("stock scenario %q: %w", in.Name, err)
		}
		reports = append(reports, report)
	}

	for _, in := range conf.RealEstateInputs() {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report, err := s.CompareRealEstate(ctx, in)
		if err != nil {
			return reports, fmt.Errorf("real estate scenario %q: %w", in.Name, err)
		}
		reports = append(reports, report)
	}

	s.logger.Debug(fmt.Sprintf("compared %d scenarios", len(reports)),
		zap.String("op", "compare.Run"),
	)

	return reports, nil
}

func (s *Service) report(kind string, entry cachedEntry, cached bool) Report {
	report := Report{
		ID:        s.newID(),
		Name:      entry.Result.User.Name,
		Kind:      kind,
		Result:    entry.Result,
		Cached:    cached,
	}
	if s.breakEven {
		report.BreakEven = entry.BreakEven
	}

	s.logger.Info(fmt.Sprintf("%s vs %s: %s wins by %.2f", report.Name, entry.Result.Benchmark.Name,
		entry.Result.Winner, entry.Result.DifferenceAbsolute),
		zap.String("op", "compare.report"),
		zap.String("id", report.ID),
		zap.String("kind", kind),
		zap.Bool("cached", cached),
	)

	return report
}

func (s *Service) lookup(ctx context.Context, kind string, input any) (cachedEntry, bool) {
	var entry cachedEntry
	if s.cache == nil {
		return entry, false
	}

	key, err := cache.Key(kind, input)
	if err != nil {
		s.logger.Warn("unable to derive cache key", zap.String("op", "compare.lookup"), zap.Error(err))
		return entry, false
	}

	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", zap.String("op", "compare.lookup"), zap.String("key", key), zap.Error(err))
		return entry, false
	}
	if !ok {
		return entry, false
	}

	if err := json.Unmarshal(data, &entry); err != nil {
		s.logger.Warn("discarding unreadable cache entry", zap.String("op", "compare.lookup"), zap.String("key", key), zap.Error(err))
		return cachedEntry{}, false
	}
	return entry, true
}

func (s *Service) store(ctx context.Context, kind string, input any, entry cachedEntry) {
	if s.cache == nil {
		return
	}

	key, err := cache.Key(kind, input)
	if err != nil {
		s.logger.Warn("unable to derive cache key", zap.String("op", "compare.store"), zap.Error(err))
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		s.logger.Warn("unable to encode cache entry", zap.String("op", "compare.store"), zap.String("key", key), zap.Error(err))
		return
	}

	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("op", "compare.store"), zap.String("key", key), zap.Error(err))
	}
}
