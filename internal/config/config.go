package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Scrape   ScrapeConfig   `yaml:"scrape" envconfig:"SCRAPE"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
}

// ScrapeConfig controls bulletin retrieval
type ScrapeConfig struct {
	BaseURL  string        `yaml:"base_url" envconfig:"BASE_URL" validate:"required,url"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	Throttle time.Duration `yaml:"throttle" envconfig:"THROTTLE" validate:"gte=0"`
	Sheets   []string      `yaml:"sheets" envconfig:"SHEETS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// DatabaseConfig holds the optional persistence target. An empty DSN
// disables storage and the run only reports what it extracted.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" envconfig:"DSN"`
}

// Load loads configuration in layers: built-in defaults, then the
// optional YAML file, then environment variables on top.
func Load() (*Config, error) {
	return LoadFromFile(getConfigFilePath())
}

// LoadFromFile is Load with an explicit config file path, for tests.
func LoadFromFile(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("BVRD", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// getConfigFilePath returns the config file path, overridable via
// BVRD_CONFIG_FILE.
func getConfigFilePath() string {
	if p := os.Getenv("BVRD_CONFIG_FILE"); p != "" {
		return p
	}
	return "config.yaml"
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Logging.Output != "console" && strings.TrimSpace(c.Logging.FilePath) == "" {
		return fmt.Errorf("logging file_path is required when output is %q", c.Logging.Output)
	}
	return nil
}

// Default returns a configuration with the standard defaults applied,
// without consulting the environment or any file.
func Default() *Config {
	return &Config{
		Scrape: ScrapeConfig{
			BaseURL:  "https://boletin.bvrd.com.do",
			Timeout:  30 * time.Second,
			Throttle: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/bvrd.log",
		},
	}
}
