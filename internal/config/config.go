package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flightschool/auditor/internal/audit"
	"github.com/flightschool/auditor/internal/errors"
)

// DatasetConfigName is the per-dataset config file looked up next to the data.
const DatasetConfigName = ".auditor.yaml"

// Config represents the complete auditor configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Audit   AuditConfig   `yaml:"audit" json:"audit"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// AuditConfig selects the checks and how missing reference data is handled.
type AuditConfig struct {
	// Checks run in this order; their violations are concatenated.
	Checks []string `yaml:"checks" json:"checks"`

	// MissingData is "skip" or "fatal".
	MissingData string `yaml:"missing_data" json:"missing_data"`
}

// LoggingConfig configures the debug log file.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	File      string `yaml:"file" json:"file"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Audit: AuditConfig{
			Checks:      []string{string(audit.CheckWeather)},
			MissingData: string(audit.MissingSkip),
		},
		Logging: LoggingConfig{
			Level:     "info",
			File:      "", // Empty uses ~/.auditor/logs/auditor.log
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

// GetUserConfigPath returns the path to the user configuration file.
// It follows the XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/auditor/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/auditor/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "auditor", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "auditor", "config.yaml")
	}
	return filepath.Join(home, ".config", "auditor", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// loadUserConfig loads the user configuration file if it exists.
// Returns nil config and nil error if the file doesn't exist.
func loadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	cfg := &Config{}
	if err := cfg.loadYAML(configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load resolves configuration for a dataset directory.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/auditor/config.yaml)
//  3. explicitPath if set, otherwise <datasetDir>/.auditor.yaml if present
//  4. Environment variables (AUDITOR_*)
//
// Command-line flags are applied by the caller after Load.
func Load(datasetDir, explicitPath string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := loadUserConfig(); err != nil {
		return nil, err
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if explicitPath != "" {
		if !fileExists(explicitPath) {
			return nil, errors.New(errors.ErrCodeConfigNotFound,
				fmt.Sprintf("config file %s not found", explicitPath), nil).
				WithSuggestion("Check the --config path")
		}
		if err := cfg.loadYAML(explicitPath); err != nil {
			return nil, err
		}
	} else if datasetDir != "" {
		if err := cfg.loadFromFile(datasetDir); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile loads <dir>/.auditor.yaml if it exists.
func (c *Config) loadFromFile(dir string) error {
	path := filepath.Join(dir, DatasetConfigName)
	if !fileExists(path) {
		return nil
	}
	return c.loadYAML(path)
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to parse config file %s: %v", path, err), err).
			WithDetail("path", path)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if len(other.Audit.Checks) > 0 {
		c.Audit.Checks = other.Audit.Checks
	}
	if other.Audit.MissingData != "" {
		c.Audit.MissingData = other.Audit.MissingData
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.File != "" {
		c.Logging.File = other.Logging.File
	}
	if other.Logging.MaxSizeMB > 0 {
		c.Logging.MaxSizeMB = other.Logging.MaxSizeMB
	}
	if other.Logging.MaxFiles > 0 {
		c.Logging.MaxFiles = other.Logging.MaxFiles
	}
}

// applyEnvOverrides applies AUDITOR_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("AUDITOR_CHECKS"); v != "" {
		c.Audit.Checks = SplitList(v)
	}
	if v := os.Getenv("AUDITOR_MISSING_DATA"); v != "" {
		c.Audit.MissingData = v
	}
	if v := os.Getenv("AUDITOR_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("AUDITOR_LOG_MAX_SIZE_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Logging.MaxSizeMB = n
		}
	}
}

// SplitList splits a comma-separated list, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.Audit.Checks) == 0 {
		return errors.ConfigError("audit.checks must name at least one check", nil)
	}
	known := make(map[string]bool, len(audit.KnownChecks))
	for _, k := range audit.KnownChecks {
		known[string(k)] = true
	}
	seen := make(map[string]bool, len(c.Audit.Checks))
	for _, name := range c.Audit.Checks {
		n := strings.ToLower(name)
		if !known[n] {
			return errors.ConfigError(fmt.Sprintf("audit.checks: unknown check %q", name), nil).
				WithSuggestion("Available checks: weather, maintenance")
		}
		if seen[n] {
			return errors.ConfigError(fmt.Sprintf("audit.checks: %q listed twice", name), nil)
		}
		seen[n] = true
	}

	if _, err := audit.ParseMissingPolicy(c.Audit.MissingData); err != nil {
		return errors.ConfigError(fmt.Sprintf("audit.missing_data must be 'skip' or 'fatal', got %q", c.Audit.MissingData), nil)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return errors.ConfigError(fmt.Sprintf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level), nil)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxFiles < 0 {
		return errors.ConfigError("logging.max_size_mb and logging.max_files must be non-negative", nil)
	}

	return nil
}

// CheckNames returns the configured checks in order.
func (c *Config) CheckNames() []audit.CheckName {
	names := make([]audit.CheckName, len(c.Audit.Checks))
	for i, n := range c.Audit.Checks {
		names[i] = audit.CheckName(strings.ToLower(n))
	}
	return names
}

// MissingPolicy returns the configured missing-data policy.
// Call after Validate.
func (c *Config) MissingPolicy() audit.MissingPolicy {
	p, err := audit.ParseMissingPolicy(c.Audit.MissingData)
	if err != nil {
		return audit.MissingSkip
	}
	return p
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadUserConfig loads the user configuration file.
// Returns nil config and nil error if the file doesn't exist.
func LoadUserConfig() (*Config, error) {
	return loadUserConfig()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
