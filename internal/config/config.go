// Package config loads the optional run configuration shared by the
// programs under cmd/.
//
// Every field has a built-in default, so a configuration file is never
// required. Command-line flags override values read from a file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultURL is the public endpoint that redirects to a random article.
const DefaultURL = "https://en.wikipedia.org/wiki/Special:Random"

// FileConfig is the on-disk layout of a configuration file.
type FileConfig struct {
	Workers  int    `yaml:"workers" json:"workers"`
	Items    int    `yaml:"items" json:"items"`
	Steps    int    `yaml:"steps" json:"steps"`
	Tasks    int    `yaml:"tasks" json:"tasks"`
	Latency  string `yaml:"latency" json:"latency"`
	URL      string `yaml:"url" json:"url"`
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Config holds the resolved settings of a run.
type Config struct {
	Workers  int
	Items    int
	Steps    int
	Tasks    int
	Latency  time.Duration
	URL      string
	LogLevel string
}

// Default returns the settings the programs use when nothing else is
// given. Steps has no default, because the pi programs take it from the
// command line.
func Default() Config {
	return Config{
		Workers:  4,
		Items:    50,
		Tasks:    8,
		Latency:  2 * time.Second,
		URL:      DefaultURL,
		LogLevel: "info",
	}
}

// LoadFile reads a YAML or JSON configuration file, chosen by extension.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	return &fc, nil
}

// Validate rejects negative counts and malformed durations.
func (f *FileConfig) Validate() error {
	var errs []error
	if f.Workers < 0 {
		errs = append(errs, errors.New("workers must be non-negative"))
	}
	if f.Items < 0 {
		errs = append(errs, errors.New("items must be non-negative"))
	}
	if f.Steps < 0 {
		errs = append(errs, errors.New("steps must be non-negative"))
	}
	if f.Tasks < 0 {
		errs = append(errs, errors.New("tasks must be non-negative"))
	}
	if f.Latency != "" {
		if d, err := time.ParseDuration(f.Latency); err != nil {
			errs = append(errs, fmt.Errorf("invalid latency: %w", err))
		} else if d < 0 {
			errs = append(errs, errors.New("latency must be non-negative"))
		}
	}
	return errors.Join(errs...)
}

// Apply overlays the non-zero fields of f onto c.
func (f *FileConfig) Apply(c Config) (Config, error) {
	if err := f.Validate(); err != nil {
		return c, err
	}
	if f.Workers > 0 {
		c.Workers = f.Workers
	}
	if f.Items > 0 {
		c.Items = f.Items
	}
	if f.Steps > 0 {
		c.Steps = f.Steps
	}
	if f.Tasks > 0 {
		c.Tasks = f.Tasks
	}
	if f.Latency != "" {
		d, _ := time.ParseDuration(f.Latency)
		c.Latency = d
	}
	if f.URL != "" {
		c.URL = f.URL
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	return c, nil
}

// Load returns Default overlaid with the file at path. An empty path
// yields the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	fc, err := LoadFile(path)
	if err != nil {
		return c, err
	}
	return fc.Apply(c)
}
