package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funningboy/PyTradeLib/bar"
)

// Config is the pytradelib tool configuration.
type Config struct {
	Data     DataConfig     `json:"data" yaml:"data"`
	Database DatabaseConfig `json:"database" yaml:"database"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// DataConfig describes what to ingest and how.
type DataConfig struct {
	Dir              string   `json:"dir" yaml:"dir"`
	Symbols          []string `json:"symbols" yaml:"symbols"`
	Frequency        string   `json:"frequency" yaml:"frequency"` // canonical name, e.g. "day"
	AnnotateSessions bool     `json:"annotate_sessions" yaml:"annotate_sessions"`
}

// DatabaseConfig locates the SQLite bar store.
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // debug, info, warn, error
}

// Frequency resolves the configured frequency name.
func (c *Config) Frequency() (bar.Frequency, error) {
	return bar.ParseFrequency(c.Data.Frequency)
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (format chosen by extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if len(c.Data.Symbols) == 0 {
		return fmt.Errorf("data.symbols must not be empty")
	}
	if _, err := bar.ParseFrequency(c.Data.Frequency); err != nil {
		return fmt.Errorf("data.frequency: %w", err)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:              "./data",
			Symbols:          []string{"AAPL"},
			Frequency:        bar.Day.String(),
			AnnotateSessions: true,
		},
		Database: DatabaseConfig{
			Path: "./bars.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
