package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smokyabdulrahman/salat/internal/clock"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

// ValidKeys lists the keys accepted by Set, Get and Unset, in display order.
var ValidKeys = []string{
	"city", "country",
	"latitude", "longitude", "utc_offset",
	"method", "school",
	"source",
	"time_format",
	"prayers",
	"cache_dir",
	"height_east", "height_west",
	"dhuhr_interval", "maghrib_interval",
	"dst",
}

// field binds a key to the Config member it reads and writes.
type field struct {
	get   func(c *Config) string
	set   func(c *Config, key, value string) error
	unset func(c *Config)
}

var fields = map[string]field{
	"city":    stringField(func(c *Config) *string { return &c.City }, nil),
	"country": stringField(func(c *Config) *string { return &c.Country }, nil),

	"latitude":   floatField(func(c *Config) **float64 { return &c.Latitude }, -90, 90, notPole),
	"longitude":  floatField(func(c *Config) **float64 { return &c.Longitude }, -180, 180, nil),
	"utc_offset": floatField(func(c *Config) **float64 { return &c.UTCOffset }, -12, 14, nil),

	"method": stringField(func(c *Config) *string { return &c.Method }, func(v string) (string, error) {
		conv, err := prayer.ParseConvention(v)
		return conv.Name, err
	}),
	"school": stringField(func(c *Config) *string { return &c.School }, func(v string) (string, error) {
		s, err := prayer.ParseSchool(v)
		return s.String(), err
	}),
	"source":      stringField(func(c *Config) *string { return &c.Source }, oneOf(SourceLocal, SourceRemote)),
	"time_format": stringField(func(c *Config) *string { return &c.TimeFormat }, oneOf("12h", "24h")),
	"prayers": stringField(func(c *Config) *string { return &c.Prayers }, func(v string) (string, error) {
		_, err := prayer.ParseEvents(SplitList(v))
		return v, err
	}),
	"cache_dir": stringField(func(c *Config) *string { return &c.CacheDir }, nil),

	"height_east": floatField(func(c *Config) **float64 { return &c.HeightEast }, 0, 9000, nil),
	"height_west": floatField(func(c *Config) **float64 { return &c.HeightWest }, 0, 9000, nil),

	"dhuhr_interval":   intField(func(c *Config) **int { return &c.DhuhrInterval }, -60, 60),
	"maghrib_interval": intField(func(c *Config) **int { return &c.MaghribInterval }, -60, 60),

	"dst": stringField(func(c *Config) *string { return &c.DST }, func(v string) (string, error) {
		d, err := clock.ParseDaylightSaving(v)
		return d.String(), err
	}),
}

// stringField stores the value returned by normalize, or the raw value when
// normalize is nil.
func stringField(member func(*Config) *string, normalize func(string) (string, error)) field {
	return field{
		get: func(c *Config) string { return *member(c) },
		set: func(c *Config, key, value string) error {
			if normalize != nil {
				v, err := normalize(value)
				if err != nil {
					return fmt.Errorf("invalid %s: %w", key, err)
				}
				value = v
			}
			*member(c) = value
			return nil
		},
		unset: func(c *Config) { *member(c) = "" },
	}
}

func floatField(member func(*Config) **float64, min, max float64, check func(float64) error) field {
	return field{
		get: func(c *Config) string {
			v := *member(c)
			if v == nil {
				return ""
			}
			return strconv.FormatFloat(*v, 'f', -1, 64)
		},
		set: func(c *Config, key, value string) error {
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("invalid %s %q: must be a number", key, value)
			}
			if v < min || v > max {
				return fmt.Errorf("invalid %s %q: must be between %g and %g", key, value, min, max)
			}
			if check != nil {
				if err := check(v); err != nil {
					return fmt.Errorf("invalid %s %q: %w", key, value, err)
				}
			}
			*member(c) = &v
			return nil
		},
		unset: func(c *Config) { *member(c) = nil },
	}
}

func intField(member func(*Config) **int, min, max int) field {
	return field{
		get: func(c *Config) string {
			v := *member(c)
			if v == nil {
				return ""
			}
			return strconv.Itoa(*v)
		},
		set: func(c *Config, key, value string) error {
			v, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid %s %q: must be an integer number of minutes", key, value)
			}
			if v < min || v > max {
				return fmt.Errorf("invalid %s %q: must be between %d and %d", key, value, min, max)
			}
			*member(c) = &v
			return nil
		},
		unset: func(c *Config) { *member(c) = nil },
	}
}

func oneOf(allowed ...string) func(string) (string, error) {
	return func(v string) (string, error) {
		for _, a := range allowed {
			if v == a {
				return v, nil
			}
		}
		return "", fmt.Errorf("%q is not one of %s", v, strings.Join(allowed, ", "))
	}
}

func notPole(lat float64) error {
	if lat == -90 || lat == 90 {
		return fmt.Errorf("the poles are not supported")
	}
	return nil
}

func lookup(key string) (field, error) {
	f, ok := fields[key]
	if !ok {
		return field{}, fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}
	return f, nil
}

// Set validates value and stores it under key. Names such as methods and
// schools are stored in their canonical form.
func (c *Config) Set(key, value string) error {
	f, err := lookup(key)
	if err != nil {
		return err
	}
	return f.set(c, key, value)
}

// Get returns the stored value of key, or "" when it is unset.
func (c *Config) Get(key string) (string, error) {
	f, err := lookup(key)
	if err != nil {
		return "", err
	}
	return f.get(c), nil
}

// Unset clears key so its default applies again.
func (c *Config) Unset(key string) error {
	f, err := lookup(key)
	if err != nil {
		return err
	}
	f.unset(c)
	return nil
}
