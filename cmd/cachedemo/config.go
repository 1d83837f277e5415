package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/cachekit/cache"
	"github.com/jonwraymond/cachekit/observe"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "cachedemo.yaml"

// Config is the demo's full configuration.
type Config struct {
	Name    string         `yaml:"name"`
	Cache   cache.Config   `yaml:"cache"`
	Health  HealthConfig   `yaml:"health"`
	Observe observe.Config `yaml:"observe"`
}

// HealthConfig configures the occupancy check on the demo cache.
type HealthConfig struct {
	MaxEntries    int     `yaml:"max_entries"`
	WarningRatio  float64 `yaml:"warning_ratio"`
	CriticalRatio float64 `yaml:"critical_ratio"`
}

// Defaults returns the configuration used when no file or env is present.
func Defaults() Config {
	return Config{
		Name:  "demo",
		Cache: cache.DefaultConfig(),
		Health: HealthConfig{
			MaxEntries: 1024,
		},
		Observe: observe.Config{
			ServiceName: "cachedemo",
			Version:     "dev",
			Tracing:     observe.TracingConfig{Enabled: false, Exporter: "none", SamplePct: 1},
			Metrics:     observe.MetricsConfig{Enabled: false, Exporter: "none"},
			Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
		},
	}
}

// LoadFrom returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional.
func LoadFrom(path string) (Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, path); err != nil {
		return Config{}, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := cfg.Cache.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validate: %w", err)
	}
	if err := cfg.Observe.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validate: %w", err)
	}
	return cfg, nil
}

func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from a flag
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadEnv overlays non-empty environment variables onto cfg.
func loadEnv(cfg *Config) {
	setString(&cfg.Cache.Policy, "CACHEDEMO_POLICY")
	setInt(&cfg.Cache.Capacity, "CACHEDEMO_CAPACITY")
	setDuration(&cfg.Cache.TTL, "CACHEDEMO_TTL")
	setString(&cfg.Observe.Logging.Level, "CACHEDEMO_LOG_LEVEL")
	setInt(&cfg.Health.MaxEntries, "CACHEDEMO_MAX_ENTRIES")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
