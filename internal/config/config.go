// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/invest-compare/pkg/constants"
	"github.com/iwvelando/invest-compare/pkg/mathutil"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override configuration keys,
// e.g. INVEST_COMPARE_LOGGING_LEVEL.
const EnvPrefix = "INVEST_COMPARE"

// Configuration holds all configuration for invest-compare.
type Configuration struct {
	Logging    LoggingConfig        `yaml:"logging,omitempty"`
	Output     OutputConfig         `yaml:"output,omitempty"`
	Cache      CacheConfig          `yaml:"cache,omitempty"`
	BreakEven  bool                 `yaml:"breakEven,omitempty"`
	Presets    []Preset             `yaml:"presets,omitempty"`
	Stocks     []StockScenario      `yaml:"stocks,omitempty"`
	RealEstate []RealEstateScenario `yaml:"realEstate,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, pdf
	File   string `yaml:"file,omitempty"`   // optional file instead of stdout
}

// CacheConfig selects where comparison results are memoized.
type CacheConfig struct {
	Backend      string        `yaml:"backend,omitempty"` // none, memory, redis
	RedisAddress string        `yaml:"redisAddress,omitempty"`
	TTL          time.Duration `yaml:"ttl,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("cache.backend", constants.CacheBackendMemory)
	v.SetDefault("cache.ttl", constants.DefaultCacheTTL)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := configuration.ApplyDefaults(); err != nil {
		return nil, err
	}

	return &configuration, nil
}

// ApplyDefaults resolves presets and derived fields on every scenario. A preset
// only fills rates the scenario leaves unset; an explicit 0 is kept.
func (c *Configuration) ApplyDefaults() error {
	for i := range c.Stocks {
		scenario := &c.Stocks[i]
		if scenario.Preset == "" {
			continue
		}
		preset, ok := c.FindPreset(scenario.Preset)
		if !ok {
			continue
		}
		if scenario.AnnualReturnRate == nil {
			scenario.AnnualReturnRate = Rate(preset.ReturnRate)
		}
		if scenario.AnnualFeeRate == nil {
			scenario.AnnualFeeRate = Rate(preset.FeeRate)
		}
		if scenario.Name == "" {
			scenario.Name = preset.Name
		}
	}

	for i := range c.RealEstate {
		scenario := &c.RealEstate[i]
		if scenario.DownPaymentPercent < 0 || scenario.DownPaymentPercent > 100 {
			return fmt.Errorf("real estate scenario %q: downPaymentPercent must be between 0 and 100, got %v",
				scenario.Name, scenario.DownPaymentPercent)
		}
		if scenario.DownPayment == 0 && scenario.DownPaymentPercent > 0 {
			scenario.DownPayment = mathutil.Round(scenario.PropertyValue * mathutil.PercentToDecimal(scenario.DownPaymentPercent))
		}
	}

	return nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Input errors are reported when scenarios are compared.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	active := 0
	seen := make(map[string]bool)
	checkName := func(kind, name string) {
		key := kind + "/" + name
		if seen[key] {
			warnings = append(warnings, fmt.Sprintf("Duplicate %s scenario name '%s'", kind, name))
		}
		seen[key] = true
	}

	for _, scenario := range c.Stocks {
		if !scenario.Active {
			continue
		}
		active++
		checkName(constants.KindStocks, scenario.Name)
		if scenario.Preset != "" {
			if _, ok := c.FindPreset(scenario.Preset); !ok {
				warnings = append(warnings, fmt.Sprintf("Stock scenario '%s' references unknown preset '%s'",
					scenario.Name, scenario.Preset))
			}
		}
		warnings = append(warnings, horizonWarning("Stock", scenario.Name, scenario.Years)...)
		if in := scenario.Input(); in.AnnualFeeRate > in.AnnualReturnRate {
			warnings = append(warnings, fmt.Sprintf("Stock scenario '%s' fees (%.2f%%) exceed its return (%.2f%%)",
				scenario.Name, in.AnnualFeeRate, in.AnnualReturnRate))
		}
	}

	for _, scenario := range c.RealEstate {
		if !scenario.Active {
			continue
		}
		active++
		checkName(constants.KindRealEstate, scenario.Name)
		warnings = append(warnings, horizonWarning("Real estate", scenario.Name, scenario.Years)...)
		if scenario.LoanTermYears > 0 && scenario.Years > scenario.LoanTermYears {
			warnings = append(warnings, fmt.Sprintf("Real estate scenario '%s' is held for %d years, past its %d year mortgage",
				scenario.Name, scenario.Years, scenario.LoanTermYears))
		}
		if scenario.AnnualMortgageRate == 0 && scenario.DownPayment < scenario.PropertyValue {
			warnings = append(warnings, fmt.Sprintf("Real estate scenario '%s' has a zero mortgage rate; no mortgage payment is modeled",
				scenario.Name))
		}
	}

	if active == 0 {
		warnings = append(warnings, "No active scenarios configured")
	}

	return warnings
}

func horizonWarning(kind, name string, years int) []string {
	if years <= constants.MaxYears {
		return nil
	}
	return []string{fmt.Sprintf("%s scenario '%s' runs %d years, beyond the %d year limit",
		kind, name, years, constants.MaxYears)}
}
