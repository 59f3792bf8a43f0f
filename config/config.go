// Package config provides configuration loading and management for semmap.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semmap/selector"
)

// Rejection policies for term maps that fail validation.
const (
	PolicyFailFast = "fail-fast"
	PolicySkip     = "skip"
)

// Config represents the complete semmap configuration
type Config struct {
	Validation ValidationConfig `yaml:"validation"`
	Selectors  SelectorsConfig  `yaml:"selectors"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Log        LogConfig        `yaml:"log"`
	Inputs     InputsConfig     `yaml:"inputs"`
}

// ValidationConfig configures term map validation
type ValidationConfig struct {
	// Policy is fail-fast (abort on the first rejected map) or skip (report and continue)
	Policy string `yaml:"policy"`
	// StrictDatatypes restricts datatypes to the XSD and RDF vocabularies
	StrictDatatypes bool `yaml:"strict_datatypes"`
}

// SelectorsConfig sets the default source context for field names
type SelectorsConfig struct {
	// Source is the logical source used when a record file names none
	Source string `yaml:"source"`
	// Formulation is the reference formulation (column, csv, jsonpath, xpath)
	Formulation string `yaml:"formulation"`
}

// MetricsConfig configures Prometheus metrics
type MetricsConfig struct {
	// Namespace prefixes metric names (default: semmap)
	Namespace string `yaml:"namespace"`
	// Addr serves /metrics while watching (empty = disabled)
	Addr string `yaml:"addr"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// InputsConfig configures which record files are checked
type InputsConfig struct {
	// Root is the directory patterns are resolved against (auto-detected from git if empty)
	Root string `yaml:"root"`
	// Patterns are doublestar globs relative to Root
	Patterns []string `yaml:"patterns"`
	// Debounce is the quiet period before a watched change triggers a reload
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Validation: ValidationConfig{
			Policy:          PolicySkip,
			StrictDatatypes: false,
		},
		Selectors: SelectorsConfig{
			Source:      "",
			Formulation: string(selector.FormulationColumn),
		},
		Metrics: MetricsConfig{
			Namespace: "semmap",
			Addr:      "", // Disabled
		},
		Log: LogConfig{
			Level: "info",
		},
		Inputs: InputsConfig{
			Root:     "", // Auto-detect
			Patterns: []string{"**/*.termmap.yaml"},
			Debounce: 250 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Validation.Policy {
	case PolicyFailFast, PolicySkip:
	default:
		return fmt.Errorf("validation.policy must be %q or %q, got %q", PolicyFailFast, PolicySkip, c.Validation.Policy)
	}
	switch selector.Formulation(c.Selectors.Formulation) {
	case selector.FormulationColumn, selector.FormulationCSV, selector.FormulationJSONPath, selector.FormulationXPath:
	default:
		return fmt.Errorf("selectors.formulation %q is not supported", c.Selectors.Formulation)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if len(c.Inputs.Patterns) == 0 {
		return fmt.Errorf("inputs.patterns is required")
	}
	if c.Inputs.Debounce < 0 {
		return fmt.Errorf("inputs.debounce must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Validation
	if other.Validation.Policy != "" {
		c.Validation.Policy = other.Validation.Policy
	}
	if other.Validation.StrictDatatypes {
		c.Validation.StrictDatatypes = true
	}

	// Selectors
	if other.Selectors.Source != "" {
		c.Selectors.Source = other.Selectors.Source
	}
	if other.Selectors.Formulation != "" {
		c.Selectors.Formulation = other.Selectors.Formulation
	}

	// Metrics
	if other.Metrics.Namespace != "" {
		c.Metrics.Namespace = other.Metrics.Namespace
	}
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}

	// Inputs
	if other.Inputs.Root != "" {
		c.Inputs.Root = other.Inputs.Root
	}
	if len(other.Inputs.Patterns) > 0 {
		c.Inputs.Patterns = other.Inputs.Patterns
	}
	if other.Inputs.Debounce != 0 {
		c.Inputs.Debounce = other.Inputs.Debounce
	}
}
