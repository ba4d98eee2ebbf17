// Package config loads the .githunk.yml sidecar configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the .githunk.yml configuration file.
type Config struct {
	Version string       `yaml:"version"`
	Diff    DiffConfig   `yaml:"diff"`
	Output  OutputConfig `yaml:"output"`
	Stash   StashConfig  `yaml:"stash"`
}

// DiffConfig controls how diffs are requested from the VCS.
type DiffConfig struct {
	ContextLines int `yaml:"context_lines"`
}

// OutputConfig controls the default reporting format.
type OutputConfig struct {
	// Format is "porcelain" or "human".
	Format string `yaml:"format"`
	// Color is "auto", "always", or "never".
	Color string `yaml:"color"`
}

// StashConfig controls stash message templating.
type StashConfig struct {
	BranchPrefixInMessage bool `yaml:"branch_prefix_in_stash_message"`
}

// LoadConfig reads and parses a .githunk.yml configuration file. If path
// is empty, it looks for .githunk.yml in the current directory. If the
// default config file is not found, sensible defaults are returned. If
// an explicitly specified config file is not found, an error is
// returned.
func LoadConfig(path string) (*Config, error) {
	useDefault := path == ""
	if useDefault {
		path = ".githunk.yml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && useDefault {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults matching the
// documented .githunk.yml schema.
func DefaultConfig() *Config {
	cfg := &Config{Version: "1"}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Diff.ContextLines == 0 {
		cfg.Diff.ContextLines = 3
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "human"
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = "auto"
	}
}
