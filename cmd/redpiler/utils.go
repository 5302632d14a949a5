package main

import (
	"fmt"
	"os"

	"github.com/jihwankim/redpiler/internal/config"
	"github.com/jihwankim/redpiler/internal/logging"
	"github.com/jihwankim/redpiler/pkg/metrics"
)

// procMetrics is the one Collector instance every subcommand in this binary
// shares (§11.4): compile and tick report into it via
// compiler.SetMetrics/direct.SetMetrics, and serve-metrics exposes the same
// instance's registry over HTTP, so a single process never accumulates two
// independent, half-populated registries.
var procMetrics = metrics.NewCollector()

// loadConfig loads configuration from --config, auto-generating a default
// file the first time a command is run against a fresh directory.
func loadConfig() (*config.Config, error) {
	configPath := cfgFile
	if configPath == "" {
		configPath = "redpiler.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("config file not found, creating default configuration at: %s\n", configPath)
		cfg := config.Default()
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from cfg, bumped to debug when
// --verbose is set.
func newLogger(cfg *config.Config) *logging.Logger {
	level := logging.Level(cfg.Runtime.LogLevel)
	if verbose {
		level = logging.LevelDebug
	}
	return logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(cfg.Runtime.LogFormat),
		Output: os.Stdout,
	})
}
