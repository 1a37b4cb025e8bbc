// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Storage  StorageConfig  `toml:"storage"`
	Export   ExportConfig   `toml:"export"`
}

// ScheduleConfig holds engine settings.
type ScheduleConfig struct {
	Timezone string `toml:"timezone"` // IANA name, e.g. "Europe/Berlin"; empty means local
	Rounding int    `toml:"rounding"` // rounding interval in minutes
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// ExportConfig holds calendar export settings.
type ExportConfig struct {
	ICSPath      string `toml:"ics_path"`
	IncludeNotes bool   `toml:"include_notes"`
	PushCommand  string `toml:"push_command"` // run through sh -c by the push command
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			Timezone: "",
			Rounding: 15,
		},
		Storage: StorageConfig{
			DBPath: defaultDataPath("plantrack.db"),
		},
		Export: ExportConfig{
			ICSPath:      defaultDataPath("plantrack.ics"),
			IncludeNotes: true,
		},
	}
}

// defaultDataPath returns the default path for a data file.
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "plantrack", name)
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "plantrack", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Export.ICSPath = expandPath(cfg.Export.ICSPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PLANTRACK_TIMEZONE"); v != "" {
		cfg.Schedule.Timezone = v
	}
	if v := os.Getenv("PLANTRACK_ROUNDING"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.Rounding = n
		}
	}
	if v := os.Getenv("PLANTRACK_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("PLANTRACK_ICS_PATH"); v != "" {
		cfg.Export.ICSPath = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Schedule.Rounding < 1 || c.Schedule.Rounding > 60 {
		return fmt.Errorf("rounding must be between 1 and 60 minutes, got %d", c.Schedule.Rounding)
	}
	if c.Schedule.Timezone != "" {
		if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: use an IANA name like America/New_York", c.Schedule.Timezone)
		}
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Export.ICSPath == "" {
		return errors.New("ics_path must be set")
	}
	return nil
}

// Location resolves the configured timezone. An empty timezone means the
// system local timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Schedule.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: use an IANA name like America/New_York", c.Schedule.Timezone)
	}
	return loc, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
