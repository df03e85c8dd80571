// Package config handles configuration loading and management for sboxscope.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the global configuration for sboxscope
type Config struct {
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Reference ReferenceConfig `yaml:"reference"`
}

// AnalysisConfig defines how the calculators are run
type AnalysisConfig struct {
	Workers  int  `yaml:"workers"`
	Parallel bool `yaml:"parallel"`
	Extended bool `yaml:"extended"`
}

// InputConfig defines how input documents are decoded
type InputConfig struct {
	Format   string `yaml:"format"` // auto, json, yaml, csv
	NamePath string `yaml:"name_path"`
	SBoxPath string `yaml:"sbox_path"`
}

// OutputConfig defines the output configuration
type OutputConfig struct {
	Format   string `yaml:"format"` // text, json, html, markdown
	File     string `yaml:"file"`
	Template string `yaml:"template"` // html/template file replacing the built-in HTML layout
	Verbose  bool   `yaml:"verbose"`
	TUI      bool   `yaml:"tui"`
}

// ReferenceConfig holds expected values that reports compare against.
// An empty Values map keeps the built-in AES-class expectations.
type ReferenceConfig struct {
	Enabled   bool               `yaml:"enabled"`
	Values    map[string]float64 `yaml:"values"`
	Tolerance float64            `yaml:"tolerance"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Workers:  runtime.NumCPU(),
			Parallel: true,
		},
		Input: InputConfig{
			Format:   "auto",
			NamePath: "name",
			SBoxPath: "sbox",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Reference: ReferenceConfig{
			Enabled:   true,
			Tolerance: 0.05,
		},
	}
}

// Load reads a YAML file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults; unknown keys are rejected.
// An empty document yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

var (
	inputFormats  = map[string]bool{"auto": true, "json": true, "yaml": true, "csv": true}
	outputFormats = map[string]bool{"text": true, "json": true, "html": true, "markdown": true, "md": true}
)

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must be >= 0, got %d", c.Analysis.Workers)
	}
	if !inputFormats[c.Input.Format] {
		return fmt.Errorf("unknown input.format %q", c.Input.Format)
	}
	if !outputFormats[c.Output.Format] {
		return fmt.Errorf("unknown output.format %q", c.Output.Format)
	}
	if c.Reference.Tolerance < 0 {
		return fmt.Errorf("reference.tolerance must be >= 0, got %v", c.Reference.Tolerance)
	}
	return nil
}
