// Package config loads CLI configuration for the fastjson tool from YAML
// files, merged under command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for the fastjson CLI
type Config struct {
	Output Output `yaml:"output"`
	Dev    Dev    `yaml:"dev"`
}

// Output controls how reformatted JSON is written
type Output struct {
	// Compact emits JSON with no whitespace instead of pretty-printing
	Compact bool `yaml:"compact"`
	// ValidateOnly suppresses output entirely; only the exit status reports
	// whether the input parsed
	ValidateOnly bool `yaml:"validate_only"`
	// TrailingNewline appends a final newline to the output
	TrailingNewline bool `yaml:"trailing_newline"`
}

// Dev contains development/debug options
type Dev struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: Output{
			Compact:         false,
			ValidateOnly:    false,
			TrailingNewline: true,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in the current directory and
// its parents, returning "" when none exists
func FindConfigFile() string {
	configNames := []string{".fastjson.yml", ".fastjson.yaml", "fastjson.yml", "fastjson.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Load resolves the effective config: an explicit path wins, then a
// discovered file, then defaults
func Load(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return LoadConfig(explicitPath)
	}
	if found := FindConfigFile(); found != "" {
		return LoadConfig(found)
	}
	return NewConfig(), nil
}
