// Package cli provides common CLI initialization utilities for cmd/billig.
package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"billig/internal/config"
	"billig/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment, applies
// overrides such as command line flags in order and validates the result.
func LoadAndValidateConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the logger described by cfg and makes it the default
// one, so that packages logging through slog share its handler.
func SetupLogger(cfg *config.Config) (*log.Logger, error) {
	logger, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)
	return logger.WithComponent(log.ComponentCLI), nil
}

// SignalContext is cancelled on SIGINT or SIGTERM, or when the returned
// stop function is called.
func SignalContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown, "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// LedgerFS opens the directory holding the ledger at path. Imports are
// resolved inside that directory; the returned name is the ledger file
// relative to it.
func LedgerFS(path string) (fs.FS, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve ledger path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, "", fmt.Errorf("open ledger: %w", err)
	}
	if info.IsDir() {
		return nil, "", fmt.Errorf("open ledger: %s is a directory", path)
	}
	return os.DirFS(filepath.Dir(abs)), filepath.Base(abs), nil
}
