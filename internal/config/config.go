// Package config loads barkeep configuration from YAML with environment
// overrides. The config file is optional; a missing file yields defaults so a
// fresh install works with zero setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all barkeep configuration.
type Config struct {
	// DataDir is the root for the database, logs and import directory.
	DataDir string `yaml:"data_dir"`

	// DBPath overrides the default <data_dir>/barkeep.db location.
	DBPath string `yaml:"db_path"`

	// ImportDir is watched for CSV drops; defaults to <data_dir>/imports.
	ImportDir string `yaml:"import_dir"`

	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	Theme string `yaml:"theme"` // "dark" or "light"
}

// LoggingConfig controls the categorized file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultPath returns the conventional config location, ~/.barkeep/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".barkeep", "config.yaml")
	}
	return filepath.Join(home, ".barkeep", "config.yaml")
}

// Load reads the config at path, applies defaults for anything unset, then
// applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyDefaults(filepath.Dir(path))
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyDefaults(configDir string) {
	if c.DataDir == "" {
		c.DataDir = configDir
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "barkeep.db")
	}
	if c.ImportDir == "" {
		c.ImportDir = filepath.Join(c.DataDir, "imports")
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "dark"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BARKEEP_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("BARKEEP_IMPORT_DIR"); v != "" {
		c.ImportDir = v
	}
	if v := os.Getenv("BARKEEP_DEBUG"); v != "" {
		c.Logging.DebugMode = v == "1" || v == "true"
		if c.Logging.Level == "info" {
			c.Logging.Level = "debug"
		}
	}
}
