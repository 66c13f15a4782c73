// Package config handles TOML-based configuration loading and validation.
// TOML is parsed as data only; nothing in the file is executed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"ashdl/internal/httputil"
)

// Config holds all application configuration.
type Config struct {
	OutputFormat string   `toml:"output_format"`
	OutputDir    string   `toml:"output_dir"`
	Quality      int      `toml:"quality"`
	PlayerHost   string   `toml:"player_host"`
	FFmpeg       string   `toml:"ffmpeg"`
	FailFast     bool     `toml:"fail_fast"`
	Timeout      Duration `toml:"timeout"`
	UserAgent    string   `toml:"user_agent"`
	Debug        bool     `toml:"debug"`
}

// Duration is a time.Duration that decodes from a TOML string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		OutputFormat: "mp4",
		OutputDir:    ".",
		Quality:      0,
		PlayerHost:   "ashdi.vip",
		FFmpeg:       "ffmpeg",
		FailFast:     false,
		Timeout:      Duration{30 * time.Second},
		UserAgent:    httputil.DefaultUserAgent,
		Debug:        false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ashdl"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ashdl"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if err := httputil.ValidateFormat(c.OutputFormat); err != nil {
		return err
	}

	if c.Quality < 0 {
		return fmt.Errorf("quality must be positive, got %d", c.Quality)
	}

	if strings.TrimSpace(c.PlayerHost) == "" {
		return fmt.Errorf("player host cannot be empty")
	}

	if c.FFmpeg == "" {
		return fmt.Errorf("ffmpeg path cannot be empty")
	}

	if c.Timeout.Duration <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}

	return nil
}

// ExpandOutputDir resolves ~ in the output directory path.
func (c *Config) ExpandOutputDir() (string, error) {
	dir := c.OutputDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}
