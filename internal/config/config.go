package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// File names inside the rob home directory.
const (
	ConfigFileName = "config.yaml"
	EnvFileName    = ".env"
)

// StoreConfig represents assessment store configuration
type StoreConfig struct {
	// Enabled allows the store subcommands to open the database
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database file, relative to the rob home
	DBPath string `yaml:"db_path"`
}

// Config represents rob configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is where the audit log is written, relative to the rob home
	LogDir string `yaml:"log_dir"`

	// AuditLog records every answer and judgement to LogDir
	AuditLog bool `yaml:"audit_log"`

	// Assessor is the default assessor name for new assessments
	Assessor string `yaml:"assessor"`

	// AssessmentsDir is the default directory for summary and watch
	AssessmentsDir string `yaml:"assessments_dir"`

	// WatchDebounce coalesces bursts of file events in summary --watch
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// Store contains assessment store configuration
	Store StoreConfig `yaml:"store"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		LogDir:         "logs",
		AuditLog:       true,
		AssessmentsDir: ".",
		WatchDebounce:  250 * time.Millisecond,
		Store: StoreConfig{
			Enabled: true,
			DBPath:  "rob.db",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are strings in YAML; raw keys tell an explicit false or
	// empty value apart from an absent one.
	type yamlConfig struct {
		LogLevel       string      `yaml:"log_level"`
		LogDir         string      `yaml:"log_dir"`
		AuditLog       bool        `yaml:"audit_log"`
		Assessor       string      `yaml:"assessor"`
		AssessmentsDir string      `yaml:"assessments_dir"`
		WatchDebounce  string      `yaml:"watch_debounce"`
		Store          StoreConfig `yaml:"store"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if _, exists := rawMap["audit_log"]; exists {
		cfg.AuditLog = yamlCfg.AuditLog
	}
	if yamlCfg.Assessor != "" {
		cfg.Assessor = yamlCfg.Assessor
	}
	if yamlCfg.AssessmentsDir != "" {
		cfg.AssessmentsDir = yamlCfg.AssessmentsDir
	}
	if yamlCfg.WatchDebounce != "" {
		d, err := time.ParseDuration(yamlCfg.WatchDebounce)
		if err != nil {
			return nil, fmt.Errorf("invalid watch_debounce format %q: %w", yamlCfg.WatchDebounce, err)
		}
		cfg.WatchDebounce = d
	}

	if storeSection, exists := rawMap["store"]; exists && storeSection != nil {
		storeMap, _ := storeSection.(map[string]interface{})
		if _, exists := storeMap["enabled"]; exists {
			cfg.Store.Enabled = yamlCfg.Store.Enabled
		}
		if _, exists := storeMap["db_path"]; exists {
			cfg.Store.DBPath = yamlCfg.Store.DBPath
		}
	}

	return cfg, nil
}

// Load reads the configuration of a rob home: .env files (home, then the
// working directory) are loaded into the environment without overriding
// variables already set, config.yaml is merged over the defaults, ROB_*
// environment overrides are applied and relative paths are resolved
// against home.
func Load(home string) (*Config, error) {
	for _, env := range []string{filepath.Join(home, EnvFileName), EnvFileName} {
		if err := godotenv.Load(env); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", env, err)
		}
	}

	cfg, err := LoadConfig(filepath.Join(home, ConfigFileName))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.Resolve(home)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies ROB_LOG_LEVEL, ROB_ASSESSOR, ROB_DB_PATH and
// ROB_AUDIT_LOG overrides.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ROB_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ROB_ASSESSOR"); v != "" {
		c.Assessor = v
	}
	if v := os.Getenv("ROB_DB_PATH"); v != "" {
		c.Store.DBPath = v
	}
	if v := os.Getenv("ROB_AUDIT_LOG"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			c.AuditLog = true
		case "0", "false", "no", "off":
			c.AuditLog = false
		default:
			return fmt.Errorf("invalid ROB_AUDIT_LOG %q", v)
		}
	}
	return nil
}

// Resolve makes LogDir, AssessmentsDir and Store.DBPath absolute relative
// to home. AssessmentsDir is relative to the working directory instead, so
// "." means where rob was run.
func (c *Config) Resolve(home string) {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogDir != "" && !filepath.IsAbs(c.LogDir) {
		c.LogDir = filepath.Join(home, c.LogDir)
	}
	if c.Store.DBPath != "" && c.Store.DBPath != ":memory:" && !filepath.IsAbs(c.Store.DBPath) {
		c.Store.DBPath = filepath.Join(home, c.Store.DBPath)
	}
	if c.AssessmentsDir != "" && !filepath.IsAbs(c.AssessmentsDir) {
		if abs, err := filepath.Abs(c.AssessmentsDir); err == nil {
			c.AssessmentsDir = abs
		}
	}
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel, assessor *string) {
	if logLevel != nil {
		c.LogLevel = strings.ToLower(strings.TrimSpace(*logLevel))
	}
	if assessor != nil {
		c.Assessor = *assessor
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.AuditLog && c.LogDir == "" {
		return fmt.Errorf("log_dir cannot be empty when audit_log is enabled")
	}

	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must be >= 0, got %v", c.WatchDebounce)
	}

	if c.Store.Enabled && c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path cannot be empty when the store is enabled")
	}

	return nil
}
