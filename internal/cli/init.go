// Package cli provides common CLI initialization utilities: environment
// loading, logging setup, and construction of the ledger and insight
// service from configuration.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pocketledger/internal/backend"
	"pocketledger/internal/config"
	"pocketledger/internal/insight"
	"pocketledger/internal/insight/openai"
	"pocketledger/internal/ledger"
	"pocketledger/internal/log"
)

// SetupLogger initializes structured logging on stderr at the given level
// and sets it as the default logger. An unknown level falls back to info.
func SetupLogger(level, format string) *log.Logger {
	cfg := log.DefaultConfig()
	if lvl, err := log.ParseLevel(level); err == nil {
		cfg.Level = lvl
	}
	if format != "" {
		cfg.Format = format
	}
	cfg.Component = log.ComponentCLI

	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local use.
// A missing file is not an error.
func LoadEnvFile(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig(logger *log.Logger) (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeConfiguration)
		return nil, err
	}
	return cfg, nil
}

// OpenLedger builds the configured storage backend and a ledger store on
// top of it. The returned cleanup func must be called when done.
func OpenLedger(ctx context.Context, cfg *config.Config, logger *log.Logger) (*ledger.Store, backend.CleanupFunc, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	result, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s backend: %w", bcfg.Type, err)
	}

	store := ledger.New(result.Storage,
		ledger.WithKey(cfg.LedgerKey),
		ledger.WithLogger(logger))
	return store, result.Close, nil
}

// NewInsightService returns an insight service. Without an API key the
// service has no generator and answers with its fallback message.
func NewInsightService(cfg *config.Config, logger *log.Logger) *insight.Service {
	opts := []insight.Option{
		insight.WithMaxTransactions(cfg.InsightMaxTransactions),
		insight.WithLogger(logger),
	}
	if !cfg.InsightEnabled() {
		logger.Debug("Insight API key not set, running without generator")
		return insight.NewService(nil, opts...)
	}

	client, err := openai.New(openai.Config{
		APIKey:  cfg.InsightAPIKey,
		BaseURL: cfg.InsightBaseURL,
		Model:   cfg.InsightModel,
		Timeout: cfg.InsightTimeout,
	})
	if err != nil {
		logger.Warn("Failed to initialize insight client", log.FieldError, err)
		return insight.NewService(nil, opts...)
	}
	logger.Debug("Initialized insight client", log.FieldModel, client.Model())
	return insight.NewService(client, opts...)
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	// Registered before returning so an early signal is never lost.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
