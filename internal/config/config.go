// Package config provides persistent configuration for the salat CLI.
//
// Configuration is stored as JSON at ~/.config/salat/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smokyabdulrahman/salat/internal/clock"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

const (
	configDirName  = "salat"
	configFileName = "config.json"
)

// Sources of prayer times.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Config holds all user-configurable settings.
// Empty strings and nil pointers mean "not set" (use defaults or auto-detect).
// Numbers are pointers because zero is a meaningful value for all of them.
type Config struct {
	City            string   `json:"city,omitempty"`
	Country         string   `json:"country,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	UTCOffset       *float64 `json:"utc_offset,omitempty"` // standard offset in hours, without DST
	Method          string   `json:"method,omitempty"`     // convention name, e.g. "isna"
	School          string   `json:"school,omitempty"`     // "shafi" or "hanafi"
	Source          string   `json:"source,omitempty"`     // "local" or "remote"
	TimeFormat      string   `json:"time_format,omitempty"`
	Prayers         string   `json:"prayers,omitempty"` // comma-separated list
	CacheDir        string   `json:"cache_dir,omitempty"`
	HeightEast      *float64 `json:"height_east,omitempty"` // metres
	HeightWest      *float64 `json:"height_west,omitempty"` // metres
	DhuhrInterval   *int     `json:"dhuhr_interval,omitempty"`
	MaghribInterval *int     `json:"maghrib_interval,omitempty"`
	DST             string   `json:"dst,omitempty"` // "north-america" or "none"
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		Method:     prayer.ISNA.Name,
		School:     prayer.Shafi.String(),
		Source:     SourceLocal,
		TimeFormat: "24h",
		DST:        clock.DSTNorthAmerica.String(),
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Params builds calculation parameters, falling back to the defaults for
// unset fields.
func (c *Config) Params() (prayer.Params, error) {
	p := prayer.DefaultParams()

	if c.Method != "" {
		conv, err := prayer.ParseConvention(c.Method)
		if err != nil {
			return p, err
		}
		p.Convention = conv
	}
	if c.School != "" {
		s, err := prayer.ParseSchool(c.School)
		if err != nil {
			return p, err
		}
		p.School = s
	}
	p.DhuhrInterval = intOrDefault(c.DhuhrInterval, 0)
	p.MaghribInterval = intOrDefault(c.MaghribInterval, 0)
	return p, nil
}

// DaylightSaving returns the configured DST rule, defaulting to North America.
func (c *Config) DaylightSaving() (clock.DaylightSaving, error) {
	if c.DST == "" {
		return clock.DSTNorthAmerica, nil
	}
	return clock.ParseDaylightSaving(c.DST)
}

// Events returns the configured prayers, or prayer.DefaultEvents when unset.
func (c *Config) Events() ([]prayer.Event, error) {
	if strings.TrimSpace(c.Prayers) == "" {
		return prayer.DefaultEvents, nil
	}
	return prayer.ParseEvents(SplitList(c.Prayers))
}

// Horizon returns the eastern and western horizon heights in metres.
func (c *Config) Horizon() (east, west float64) {
	return floatOrDefault(c.HeightEast, 0), floatOrDefault(c.HeightWest, 0)
}

// HasCoordinates reports whether both latitude and longitude are set.
func (c *Config) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// SplitList splits a comma-separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func floatOrDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

func intOrDefault(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}
