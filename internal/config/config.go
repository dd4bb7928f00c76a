// Package config loads the application's TOML configuration. Everything has
// a sensible default; the file is optional.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the user-tunable settings.
type Config struct {
	// DataFile points at an episodes dataset that replaces the bundled one.
	DataFile string `toml:"data_file"`

	// MpvPath is the mpv binary to run. Default: "mpv" from PATH.
	MpvPath string `toml:"mpv_path"`

	// Volume is the initial player volume, clamped to [0, 1].
	Volume float64 `toml:"volume"`

	// LogFile overrides where the application log is written.
	LogFile string `toml:"log_file"`
}

func Default() *Config {
	return &Config{
		MpvPath: "mpv",
		Volume:  0.7,
	}
}

// Dir returns the application's config directory, creating nothing.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(base, "ondacast"), nil
}

// Load reads the config at path, falling back to defaults when the file does
// not exist. An empty path means <config dir>/config.toml.
func Load(path string) (*Config, error) {
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.toml")
	}

	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.MpvPath == "" {
		cfg.MpvPath = "mpv"
	}
	if cfg.Volume < 0 {
		cfg.Volume = 0
	} else if cfg.Volume > 1 {
		cfg.Volume = 1
	}
	return cfg, nil
}

// DefaultLogFile returns the log path used when the config does not set one.
func DefaultLogFile() string {
	dir, err := Dir()
	if err != nil {
		return "ondacast.log"
	}
	return filepath.Join(dir, "ondacast.log")
}
