package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/invest-compare/internal/cache"
	"github.com/iwvelando/invest-compare/internal/compare"
	"github.com/iwvelando/invest-compare/internal/server"
	"go.uber.org/zap"
)

// runServer serves the HTTP API until SIGINT or SIGTERM, then drains
// in-flight requests.
func runServer(serverConfigPath, logLevelOverride string) error {
	cfg, err := server.LoadConfig(serverConfigPath)
	if err != nil {
		return err
	}

	logger, err := initializeLogger(cfg.Logging, logLevelOverride)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	resultCache, err := cache.New(cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer closeCache(logger, resultCache)

	handler := server.NewHandler(logger, cfg.UploadSizeBytes(), version,
		compare.WithCache(resultCache, cfg.Cache.TTL),
		compare.WithBreakEven(cfg.BreakEven),
	)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("listening on %s", cfg.Address),
			zap.String("op", "main.runServer"),
			zap.String("version", version),
			zap.String("cache", cfg.Cache.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server stopped: %w", err)
	case sig := <-quit:
		logger.Info("shutting down",
			zap.String("op", "main.runServer"),
			zap.String("signal", sig.String()),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
