package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration. The dataset and
// output locations are fixed relative paths (see Paths); configuration only
// covers ambient concerns.
type Config struct {
	BaseDir string        `yaml:"base_dir" envconfig:"BASE_DIR"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/pipeline.log"`
}

const configFileName = "config.yaml"

// Load loads configuration from environment variables and an optional
// config.yaml next to the working directory. Environment takes precedence.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("MEDCLI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if _, err := os.Stat(configFileName); err == nil {
		fileConfig, err := loadFromFile(configFileName)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.BaseDir == "" {
		envConfig.BaseDir = fileConfig.BaseDir
	}
	if envConfig.Logging.Level == "" || envConfig.Logging.Level == "info" {
		if fileConfig.Logging.Level != "" {
			envConfig.Logging.Level = fileConfig.Logging.Level
		}
	}
	if envConfig.Logging.Format == "" || envConfig.Logging.Format == "json" {
		if fileConfig.Logging.Format != "" {
			envConfig.Logging.Format = fileConfig.Logging.Format
		}
	}
	if envConfig.Logging.Output == "" || envConfig.Logging.Output == "console" {
		if fileConfig.Logging.Output != "" {
			envConfig.Logging.Output = fileConfig.Logging.Output
		}
	}
	if fileConfig.Logging.FilePath != "" && envConfig.Logging.FilePath == "logs/pipeline.log" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	return envConfig
}

// validate checks configuration values for obvious misconfiguration
func (c *Config) validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "", "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}

	return nil
}
