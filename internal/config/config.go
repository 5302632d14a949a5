// Package config loads redpiler's YAML configuration file (§10.2), the same
// way the teacher's pkg/config does: gopkg.in/yaml.v3, os.ExpandEnv
// substitution before parsing, defaults applied first so a missing or
// partial file is always valid. Unlike the teacher's package, a *Config is
// passed explicitly into the components that need it rather than read back
// out of a global.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jihwankim/redpiler/pkg/blocks"
	"github.com/jihwankim/redpiler/pkg/compiler"
)

// Config is redpiler's top-level configuration record.
type Config struct {
	Runtime RuntimeConfig `yaml:"runtime"`
	Compile CompileConfig `yaml:"compile"`
	Safety  SafetyConfig  `yaml:"safety"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// RuntimeConfig holds general process settings (renamed from the teacher's
// FrameworkConfig — there's no "framework" here, just one binary).
type RuntimeConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// CompileConfig seeds the compiler.Options every compile runs with, plus a
// WorkerConcurrency value that Validate checks and Save writes out but no
// compile path reads; CompileAsync always runs one compile goroutine
// (renamed from the teacher's ExecutionConfig).
type CompileConfig struct {
	Optimize           bool   `yaml:"optimize"`
	Export             bool   `yaml:"export"`
	IOOnly             bool   `yaml:"io_only"`
	Update             bool   `yaml:"update"`
	ExportDotGraph     bool   `yaml:"export_dot_graph"`
	WireDotOut         bool   `yaml:"wire_dot_out"`
	BackendVariant     string `yaml:"backend_variant"`
	WorkerConcurrency  int    `yaml:"worker_concurrency"`
}

// Options converts CompileConfig into the compiler.Options value Compile
// expects.
func (c CompileConfig) Options() compiler.Options {
	return compiler.Options{
		Optimize:       c.Optimize,
		Export:         c.Export,
		IOOnly:         c.IOOnly,
		Update:         c.Update,
		ExportDotGraph: c.ExportDotGraph,
		WireDotOut:     c.WireDotOut,
		BackendVariant: c.BackendVariant,
	}
}

// SafetyConfig bounds how large a region a single compile is allowed to
// cover, the redstone-domain counterpart of the teacher's SafetyConfig
// (which bounded chaos-experiment duration rather than compile scope).
type SafetyConfig struct {
	MaxRegionVolume     int64 `yaml:"max_region_volume"`
	RequireConfirmation bool  `yaml:"require_confirmation"`
}

// CheckRegion returns an error if the region [lo, hi] exceeds MaxRegionVolume
// (§6.1 implies a compile covers an arbitrary region; this is the guard
// against a user pointing the compiler at an unreasonably large one).
func (s SafetyConfig) CheckRegion(lo, hi blocks.BlockPos) error {
	dx := int64(hi.X) - int64(lo.X) + 1
	dy := int64(hi.Y) - int64(lo.Y) + 1
	dz := int64(hi.Z) - int64(lo.Z) + 1
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return fmt.Errorf("config: region [%s, %s] is empty or inverted", lo, hi)
	}
	volume := dx * dy * dz
	if volume > s.MaxRegionVolume {
		return fmt.Errorf("config: region [%s, %s] spans %d blocks, exceeds max_region_volume %d", lo, hi, volume, s.MaxRegionVolume)
	}
	return nil
}

// MetricsConfig points cmd/redpiler's serve-metrics subcommand at a listen
// address (§11.4) — the teacher's PrometheusConfig pointed at a query
// endpoint to scrape; this module exposes its own metrics instead.
type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Default returns the configuration used when no file is present, matching
// DefaultOptions() (§6.3) and a conservative region-volume cap.
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			LogLevel:  "info",
			LogFormat: "text",
		},
		Compile: CompileConfig{
			Optimize:          true,
			IOOnly:            true,
			BackendVariant:    "direct",
			WorkerConcurrency: 4,
		},
		Safety: SafetyConfig{
			MaxRegionVolume:     1 << 24, // 16,777,216 blocks, e.g. a 256^3 cube
			RequireConfirmation: false,
		},
		Metrics: MetricsConfig{
			ListenAddr: "127.0.0.1:9091",
		},
	}
}

// Load reads path (defaulting to "redpiler.yaml" in the working directory),
// expands ${VAR}/$VAR environment references, and unmarshals onto a Default
// config so unset fields keep their defaults. A missing file is not an
// error: Load returns Default() unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = "redpiler.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if addr := os.Getenv("REDPILER_METRICS_ADDR"); addr != "" {
		cfg.Metrics.ListenAddr = addr
	}

	return cfg, nil
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	if c.Compile.BackendVariant != "direct" {
		return fmt.Errorf("compile.backend_variant: only %q is implemented, got %q", "direct", c.Compile.BackendVariant)
	}
	if c.Compile.WorkerConcurrency < 1 {
		return fmt.Errorf("compile.worker_concurrency must be at least 1")
	}
	if c.Safety.MaxRegionVolume < 1 {
		return fmt.Errorf("safety.max_region_volume must be at least 1")
	}
	if c.Metrics.ListenAddr == "" {
		return fmt.Errorf("metrics.listen_addr is required")
	}
	return nil
}
