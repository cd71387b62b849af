// Package config holds the assembler's run-wide options, loaded from an
// optional TOML file with sensible defaults when none is present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config controls behavior that spans every file in a run.
type Config struct {
	Assembler struct {
		MaxLineLength             int  `toml:"max_line_length"`
		KeepIntermediateOnFailure bool `toml:"keep_intermediate_on_failure"`
	} `toml:"assembler"`

	Listing struct {
		Enabled       bool `toml:"enabled"`
		BytesPerLine  int  `toml:"bytes_per_line"`
		SourceContext int  `toml:"source_context"`
	} `toml:"listing"`
}

// DefaultConfig returns a configuration with the assembler's built-in
// defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Assembler.MaxLineLength = 80
	cfg.Assembler.KeepIntermediateOnFailure = false

	cfg.Listing.Enabled = false
	cfg.Listing.BytesPerLine = 1
	cfg.Listing.SourceContext = 3

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "wordasm")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "wordasm")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file, falling back to
// defaults when the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
