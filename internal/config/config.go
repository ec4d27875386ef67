// Package config loads scan settings from a YAML file and lets CLI flags
// override them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/dirtally/internal/logger"
	"github.com/harrison/dirtally/internal/report"
)

// FileName is the config file looked up inside the home directory.
const FileName = "config.yaml"

// Config represents dirtally configuration
type Config struct {
	// LogLevel sets the minimum level for console and file logs
	LogLevel string `yaml:"log_level"`

	// LogDir receives one run-*.log file per scan
	LogDir string `yaml:"log_dir"`

	Report  ReportConfig  `yaml:"report"`
	History HistoryConfig `yaml:"history"`
}

// ReportConfig controls where and how scan reports are saved.
type ReportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// HistoryConfig controls the run history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// DefaultConfig returns a Config rooted at .dirtally in the working directory.
func DefaultConfig() *Config {
	return DefaultConfigForHome(DefaultHomeName)
}

// DefaultConfigForHome returns the defaults with every path placed under home.
func DefaultConfigForHome(home string) *Config {
	return &Config{
		LogLevel: "info",
		LogDir:   filepath.Join(home, "logs"),
		Report: ReportConfig{
			Dir:    filepath.Join(home, "reports"),
			Format: report.FormatCSV,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(home, "history.db"),
		},
	}
}

// LoadConfig loads configuration from path on top of DefaultConfig.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	return loadOver(path, DefaultConfig())
}

// LoadConfigForHome loads path on top of the defaults for home.
func LoadConfigForHome(path, home string) (*Config, error) {
	return loadOver(path, DefaultConfigForHome(home))
}

// LoadConfigFromHome loads home/config.yaml on top of the defaults for home.
func LoadConfigFromHome(home string) (*Config, error) {
	return LoadConfigForHome(filepath.Join(home, FileName), home)
}

// LoadConfigFromDir loads dir/.dirtally/config.yaml.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfigFromHome(filepath.Join(dir, DefaultHomeName))
}

func loadOver(path string, cfg *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlCfg Config
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Only keys present in the file override defaults, so an explicit
	// "enabled: false" is honoured while an absent one is not.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil || rawMap == nil {
		return cfg, nil
	}

	if _, exists := rawMap["log_level"]; exists {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if _, exists := rawMap["log_dir"]; exists {
		cfg.LogDir = yamlCfg.LogDir
	}

	if section, ok := rawMap["report"].(map[string]interface{}); ok {
		if _, exists := section["dir"]; exists {
			cfg.Report.Dir = yamlCfg.Report.Dir
		}
		if _, exists := section["format"]; exists {
			cfg.Report.Format = yamlCfg.Report.Format
		}
	}

	if section, ok := rawMap["history"].(map[string]interface{}); ok {
		if _, exists := section["enabled"]; exists {
			cfg.History.Enabled = yamlCfg.History.Enabled
		}
		if _, exists := section["db_path"]; exists {
			cfg.History.DBPath = yamlCfg.History.DBPath
		}
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(logLevel, logDir, reportDir, format *string, history *bool) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if reportDir != nil {
		c.Report.Dir = *reportDir
	}
	if format != nil {
		c.Report.Format = *format
	}
	if history != nil {
		c.History.Enabled = *history
	}
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("log_level must be one of %s, got %q", strings.Join(logger.Levels, ", "), c.LogLevel)
	}
	if strings.TrimSpace(c.LogDir) == "" {
		return fmt.Errorf("log_dir must not be empty")
	}
	if strings.TrimSpace(c.Report.Dir) == "" {
		return fmt.Errorf("report.dir must not be empty")
	}
	if _, err := report.NewWriter(c.Report.Format); err != nil {
		return fmt.Errorf("report.format: %w", err)
	}
	if c.History.Enabled && strings.TrimSpace(c.History.DBPath) == "" {
		return fmt.Errorf("history.db_path must not be empty when history is enabled")
	}
	return nil
}
