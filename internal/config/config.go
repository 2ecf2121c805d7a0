// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all formcontacts configuration.
type Config struct {
	Files  Files  `yaml:"files"`
	Labels Labels `yaml:"labels"`
}

// Files holds default input and output file names.
type Files struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Labels holds Labels-column settings.
type Labels struct {
	Default string `yaml:"default"` // Applied when no label is given interactively.
	Prompt  bool   `yaml:"prompt"`  // Ask for a label on stdin before converting.
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Files: Files{
			Input:  "input.csv",
			Output: "output.csv",
		},
		Labels: Labels{
			Prompt: true,
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Files.Input == "" {
		return errors.New("config: files.input cannot be empty")
	}
	if c.Files.Output == "" {
		return errors.New("config: files.output cannot be empty")
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: FORMCONTACTS_INPUT, FORMCONTACTS_OUTPUT,
// FORMCONTACTS_LABEL, FORMCONTACTS_NO_PROMPT.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("FORMCONTACTS_INPUT"); v != "" {
		c.Files.Input = v
	}
	if v := os.Getenv("FORMCONTACTS_OUTPUT"); v != "" {
		c.Files.Output = v
	}
	if v := os.Getenv("FORMCONTACTS_LABEL"); v != "" {
		c.Labels.Default = v
	}
	if v := os.Getenv("FORMCONTACTS_NO_PROMPT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid FORMCONTACTS_NO_PROMPT %q: %w", v, err)
		}
		c.Labels.Prompt = !b
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Files  *rawFiles  `yaml:"files"`
	Labels *rawLabels `yaml:"labels"`
}

type rawFiles struct {
	Input  *string `yaml:"input"`
	Output *string `yaml:"output"`
}

type rawLabels struct {
	Default *string `yaml:"default"`
	Prompt  *bool   `yaml:"prompt"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Files != nil {
		if layer.Files.Input != nil {
			c.Files.Input = *layer.Files.Input
		}
		if layer.Files.Output != nil {
			c.Files.Output = *layer.Files.Output
		}
	}
	if layer.Labels != nil {
		if layer.Labels.Default != nil {
			c.Labels.Default = *layer.Labels.Default
		}
		if layer.Labels.Prompt != nil {
			c.Labels.Prompt = *layer.Labels.Prompt
		}
	}
}
