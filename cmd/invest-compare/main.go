package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iwvelando/invest-compare/internal/cache"
	"github.com/iwvelando/invest-compare/internal/compare"
	"github.com/iwvelando/invest-compare/internal/config"
	"github.com/iwvelando/invest-compare/pkg/constants"
	"github.com/iwvelando/invest-compare/pkg/output"
	"github.com/iwvelando/invest-compare/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if err := ensureParentDir(loggingConfig.OutputFile); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		cfg.OutputPaths = []string{loggingConfig.OutputFile}
		cfg.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return cfg.Build()
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

// writeReports renders reports in the given format.
func writeReports(w io.Writer, format string, reports []compare.Report) error {
	switch format {
	case constants.OutputFormatPretty:
		return output.PrettyFormat(w, reports)
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, reports)
	case constants.OutputFormatPDF:
		pdf, err := output.PDFReport(reports)
		if err != nil {
			return err
		}
		_, err = w.Write(pdf)
		return err
	default:
		return validation.ValidateOutputFormat(format)
	}
}

// closeCache releases backends that hold connections.
func closeCache(logger *zap.Logger, c cache.Cache) {
	closer, ok := c.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn("failed to close cache", zap.String("op", "main.closeCache"), zap.Error(err))
	}
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, pdf")
	outputFileFlag := flag.String("output-file", "", "write output to this file instead of stdout")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a batch comparison")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	if *serve {
		if err := runServer(*serverConfigLocation, *logLevel); err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"server failed\", \"error\": \"%v\"}\n", err)
			os.Exit(1)
		}
		return
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\", \"hint\": \"see %s\"}\n",
			*configLocation, err, constants.ExampleConfigFile)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	outputFile := conf.Output.File
	if *outputFileFlag != "" {
		outputFile = *outputFileFlag
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	resultCache, err := cache.New(conf.Cache)
	if err != nil {
		logger.Fatal("failed to initialize cache",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer closeCache(logger, resultCache)

	service := compare.NewService(logger,
		compare.WithCache(resultCache, conf.Cache.TTL),
		compare.WithBreakEven(conf.BreakEven),
	)

	reports, err := service.Run(context.Background(), conf)
	if err != nil {
		logger.Fatal("failed to compare scenarios",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	var w io.Writer = os.Stdout
	if outputFile != "" {
		if err := ensureParentDir(outputFile); err != nil {
			logger.Fatal("failed to create output directory",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		file, err := os.Create(outputFile)
		if err != nil {
			logger.Fatal("failed to create output file",
				zap.String("op", "main"),
				zap.String("file", outputFile),
				zap.Error(err),
			)
		}
		defer func() {
			if err := file.Close(); err != nil {
				logger.Error("failed to close output file", zap.String("op", "main"), zap.Error(err))
			}
		}()
		w = file
	}

	if err := writeReports(w, outputFormat, reports); err != nil {
		logger.Error("failed to write output",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
		return
	}

	if outputFile != "" {
		logger.Info(fmt.Sprintf("wrote %d reports to %s", len(reports), outputFile),
			zap.String("op", "main"),
		)
	}
}
