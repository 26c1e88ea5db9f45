// Package config implements bplusdb's YAML configuration file, grounded
// on ssargent-freyjadb/pkg/config: a typed struct with yaml tags, a
// DefaultConfig, and Load/Save functions around gopkg.in/yaml.v3
// (SPEC_FULL.md §6.6).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds bplusdb's process-wide settings.
type Config struct {
	DataDir      string  `yaml:"data_dir"`
	DefaultOrder int     `yaml:"default_order"`
	Logging      Logging `yaml:"logging"`
}

// Logging holds logging settings. Level is stored and round-tripped
// through Load/Save; no other package reads it.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration bplusdb runs with when no
// config file is present.
func DefaultConfig() *Config {
	return &Config{
		DataDir:      "./data",
		DefaultOrder: 5,
		Logging: Logging{
			Level: "info",
		},
	}
}

// Load reads and parses the YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating its parent directory if
// needed.
func Save(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
