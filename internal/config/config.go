package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all claudeforge configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Signal collection
	Scan ScanConfig `yaml:"scan"`

	// Init run defaults
	Init InitConfig `yaml:"init"`

	// Watch mode
	Watch WatchConfig `yaml:"watch"`
}

// InitConfig holds defaults for the init command. Flags override these.
type InitConfig struct {
	Interactive bool `yaml:"interactive"`
	Force       bool `yaml:"force"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "claudeforge",
		Version: "1",

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},

		Scan: DefaultScanConfig(),

		Init: InitConfig{
			Interactive: true,
			Force:       false,
		},

		Watch: WatchConfig{
			Debounce: "500ms",
		},
	}
}

// DefaultPath returns the per-user config location, e.g.
// ~/.config/claudeforge/config.yaml on Linux.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".claudeforge", "config.yaml")
	}
	return filepath.Join(dir, "claudeforge", "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Defaults still honor the environment
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("CLAUDEFORGE_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv("CLAUDEFORGE_LOG_FORMAT"); format != "" {
		c.Logging.Format = strings.ToLower(format)
	}
	if depth := os.Getenv("CLAUDEFORGE_MAX_DEPTH"); depth != "" {
		if v, err := strconv.Atoi(depth); err == nil && v > 0 {
			c.Scan.MaxDepth = v
		}
	}
	if v := os.Getenv("CLAUDEFORGE_NON_INTERACTIVE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Init.Interactive = false
		}
	}
}

// GetDebounce returns the watch debounce as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the accepted logging encoders.
var ValidLogFormats = []string{"console", "json"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if !contains(ValidLogFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}
	if c.Scan.MaxDepth < 1 || c.Scan.MaxDepth > MaxScanDepth {
		return fmt.Errorf("scan.max_depth must be between 1 and %d, got %d", MaxScanDepth, c.Scan.MaxDepth)
	}
	if c.Watch.Debounce != "" {
		if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
			return fmt.Errorf("invalid watch.debounce %q: %w", c.Watch.Debounce, err)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
