// Package config loads fsstore settings from an optional YAML file and the
// environment. Environment variables (FSSTORE_*) win over the file, and the
// file wins over defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/dannyswat/fsstore/store"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FSSTORE"

// Config holds all fsstore configuration. QuotaLimit caps the storage that
// may be granted (0 means unlimited); MetricsFile, when set, receives
// Prometheus text metrics when a command finishes.
type Config struct {
	Root            string       `yaml:"root" envconfig:"ROOT"`
	QuotaBytes      int64        `yaml:"quota_bytes" envconfig:"QUOTA_BYTES"`
	QuotaLimit      int64        `yaml:"quota_limit" envconfig:"QUOTA_LIMIT"`
	ListConcurrency int          `yaml:"list_concurrency" envconfig:"LIST_CONCURRENCY"`
	LogLevel        string       `yaml:"log_level" envconfig:"LOG_LEVEL"`
	MetricsFile     string       `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	Remote          RemoteConfig `yaml:"remote" envconfig:"REMOTE"`
}

// RemoteConfig holds settings for the REST fallback.
type RemoteConfig struct {
	BaseURL           string        `yaml:"base_url" envconfig:"BASE_URL"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"RPS"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Root:            "./data",
		QuotaBytes:      store.DefaultQuotaBytes,
		ListConcurrency: store.DefaultListConcurrency,
		LogLevel:        "info",
		Remote: RemoteConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// Load reads path (when not empty) over the defaults, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the store cannot use.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("config: root must not be empty")
	}
	if c.QuotaBytes < 0 {
		return fmt.Errorf("config: quota_bytes must not be negative, got %d", c.QuotaBytes)
	}
	if c.QuotaLimit < 0 {
		return fmt.Errorf("config: quota_limit must not be negative, got %d", c.QuotaLimit)
	}
	if c.ListConcurrency < 0 {
		return fmt.Errorf("config: list_concurrency must not be negative, got %d", c.ListConcurrency)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Quota returns the quota manager described by QuotaLimit.
func (c *Config) Quota() store.QuotaManager {
	if c.QuotaLimit > 0 {
		return store.FixedQuota{Limit: c.QuotaLimit}
	}
	return store.UnlimitedQuota{}
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: invalid log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
