package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Extraction ExtractionConfig `yaml:"extraction" envconfig:"EXTRACTION"`
	Aliases    AliasConfig      `yaml:"aliases" envconfig:"ALIASES"`
	Export     ExportConfig     `yaml:"export" envconfig:"EXPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/finlens.log"`
}

// ExtractionConfig tunes the pipeline heuristics
type ExtractionConfig struct {
	SniffLines    int     `yaml:"sniff_lines" envconfig:"SNIFF_LINES" default:"10" validate:"gte=1,lte=100"`
	AxisThreshold float64 `yaml:"axis_threshold" envconfig:"AXIS_THRESHOLD" default:"0.5" validate:"gt=0,lt=1"`
	MaxWorkers    int     `yaml:"max_workers" envconfig:"MAX_WORKERS" default:"4" validate:"gte=1,lte=64"`
}

// AliasConfig points at the external alias dictionary artifact. An empty
// path selects the built-in dictionary.
type AliasConfig struct {
	Path string `yaml:"path" envconfig:"PATH"`
}

// ExportConfig controls where and how results are written
type ExportConfig struct {
	Dir    string `yaml:"dir" envconfig:"DIR" default:"out"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"csv" validate:"oneof=csv json both"`
	BOM    bool   `yaml:"bom" envconfig:"BOM" default:"true"`
}

// Load loads configuration from environment variables and an optional
// YAML config file. Environment variables (prefix FINLENS) win over file
// values; the file location comes from FINLENS_CONFIG or ./finlens.yml.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("FINLENS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = merge(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration with all struct defaults applied and
// no environment or file input.
func Default() *Config {
	var cfg Config
	// envconfig fills defaults even when no matching variables are set;
	// the unused prefix keeps real FINLENS_* variables out.
	_ = envconfig.Process("FINLENS_DEFAULTS_ONLY", &cfg)
	return &cfg
}

// Validate checks field constraints
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func configFilePath() string {
	if path := os.Getenv("FINLENS_CONFIG"); path != "" {
		return path
	}
	return "finlens.yml"
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge overlays env values on file values. An env value wins wherever it
// differs from the compiled default; file-side gaps fall back to defaults.
func merge(file, env Config) Config {
	defaults := *Default()
	out := file

	if env.Logging.Level != defaults.Logging.Level {
		out.Logging.Level = env.Logging.Level
	}
	if env.Logging.Output != defaults.Logging.Output {
		out.Logging.Output = env.Logging.Output
	}
	if env.Logging.FilePath != defaults.Logging.FilePath {
		out.Logging.FilePath = env.Logging.FilePath
	}
	if env.Extraction.SniffLines != defaults.Extraction.SniffLines {
		out.Extraction.SniffLines = env.Extraction.SniffLines
	}
	if env.Extraction.AxisThreshold != defaults.Extraction.AxisThreshold {
		out.Extraction.AxisThreshold = env.Extraction.AxisThreshold
	}
	if env.Extraction.MaxWorkers != defaults.Extraction.MaxWorkers {
		out.Extraction.MaxWorkers = env.Extraction.MaxWorkers
	}
	if env.Aliases.Path != "" {
		out.Aliases.Path = env.Aliases.Path
	}
	if env.Export.Dir != defaults.Export.Dir {
		out.Export.Dir = env.Export.Dir
	}
	if env.Export.Format != defaults.Export.Format {
		out.Export.Format = env.Export.Format
	}
	if env.Export.BOM != defaults.Export.BOM {
		out.Export.BOM = env.Export.BOM
	}

	if out.Logging.Level == "" {
		out.Logging.Level = defaults.Logging.Level
	}
	if out.Logging.Output == "" {
		out.Logging.Output = defaults.Logging.Output
	}
	if out.Logging.FilePath == "" {
		out.Logging.FilePath = defaults.Logging.FilePath
	}
	if out.Extraction.SniffLines == 0 {
		out.Extraction.SniffLines = defaults.Extraction.SniffLines
	}
	if out.Extraction.AxisThreshold == 0 {
		out.Extraction.AxisThreshold = defaults.Extraction.AxisThreshold
	}
	if out.Extraction.MaxWorkers == 0 {
		out.Extraction.MaxWorkers = defaults.Extraction.MaxWorkers
	}
	if out.Export.Dir == "" {
		out.Export.Dir = defaults.Export.Dir
	}
	if out.Export.Format == "" {
		out.Export.Format = defaults.Export.Format
	}
	return out
}
