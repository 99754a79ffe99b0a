// Package cache keeps remote lookups on disk: fetched timings, the
// IP-detected location and resolved city coordinates.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat/internal/api"
	"github.com/smokyabdulrahman/salat/internal/geo"
)

const (
	timingsCacheFile = "timings_%s.json" // keyed by hash
	placeCacheFile   = "place_%s.json"   // keyed by hash
	geoCacheFile     = "geolocation.json"
	geoTTL           = 24 * time.Hour
)

// Cache provides file-based caching for timings and location data.
type Cache struct {
	dir string
}

// TimingsEntry stores a day's fetched timings along with the request
// parameters for validation.
type TimingsEntry struct {
	Date    string      `json:"date"` // YYYY-MM-DD
	Method  int         `json:"method"`
	School  int         `json:"school"`
	Timings api.Timings `json:"timings"`
}

// GeoCacheEntry stores a cached geolocation result with a timestamp.
type GeoCacheEntry struct {
	Location geo.Location `json:"location"`
	CachedAt time.Time    `json:"cached_at"`
}

// PlaceEntry stores the coordinates a city name resolved to. Cities do not
// move, so entries never expire.
type PlaceEntry struct {
	City    string    `json:"city"`
	Country string    `json:"country"`
	Place   api.Place `json:"place"`
}

// New creates a Cache rooted at the given directory.
// If dir is empty, it defaults to ~/.cache/salat/.
func New(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".cache", "salat")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// hashKey builds a short deterministic file key from parts.
func hashKey(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%x", h[:8]) // 16 hex chars is plenty for uniqueness
}

// timingsKey covers every parameter that changes the fetched timings.
func timingsKey(date string, lat, lon float64, method, school int) string {
	return hashKey(date, fmt.Sprintf("%.6f", lat), fmt.Sprintf("%.6f", lon), fmt.Sprint(method), fmt.Sprint(school))
}

func placeKey(city, country string) string {
	return hashKey(strings.ToLower(strings.TrimSpace(city)), strings.ToLower(strings.TrimSpace(country)))
}

// LoadTimings returns cached timings for the given parameters, or nil if the
// cache is missing or holds a different date.
func (c *Cache) LoadTimings(date time.Time, lat, lon float64, method, school int) *api.Timings {
	dateStr := date.Format("2006-01-02")
	path := filepath.Join(c.dir, fmt.Sprintf(timingsCacheFile, timingsKey(dateStr, lat, lon, method, school)))

	var entry TimingsEntry
	if !c.read(path, &entry) {
		return nil
	}

	// A stale entry for another day is useless.
	if entry.Date != dateStr {
		return nil
	}

	return &entry.Timings
}

// SaveTimings writes a day's timings to the cache.
func (c *Cache) SaveTimings(date time.Time, lat, lon float64, method, school int, t api.Timings) error {
	dateStr := date.Format("2006-01-02")
	path := filepath.Join(c.dir, fmt.Sprintf(timingsCacheFile, timingsKey(dateStr, lat, lon, method, school)))

	entry := TimingsEntry{
		Date:    dateStr,
		Method:  method,
		School:  school,
		Timings: t,
	}
	if err := c.write(path, entry); err != nil {
		return fmt.Errorf("failed to write timings cache: %w", err)
	}
	return nil
}

// LoadGeo attempts to read a cached geolocation result.
// Returns nil if the cache is missing or older than the TTL (24 hours).
func (c *Cache) LoadGeo() *geo.Location {
	var entry GeoCacheEntry
	if !c.read(filepath.Join(c.dir, geoCacheFile), &entry) {
		return nil
	}

	if time.Since(entry.CachedAt) > geoTTL {
		return nil
	}

	return &entry.Location
}

// SaveGeo writes a geolocation result to the cache.
func (c *Cache) SaveGeo(loc *geo.Location) error {
	entry := GeoCacheEntry{
		Location: *loc,
		CachedAt: time.Now(),
	}
	if err := c.write(filepath.Join(c.dir, geoCacheFile), entry); err != nil {
		return fmt.Errorf("failed to write geo cache: %w", err)
	}
	return nil
}

// LoadPlace returns the cached coordinates for a city, or nil.
func (c *Cache) LoadPlace(city, country string) *api.Place {
	path := filepath.Join(c.dir, fmt.Sprintf(placeCacheFile, placeKey(city, country)))

	var entry PlaceEntry
	if !c.read(path, &entry) {
		return nil
	}
	if !strings.EqualFold(entry.City, city) || !strings.EqualFold(entry.Country, country) {
		return nil
	}
	return &entry.Place
}

// SavePlace caches the coordinates a city resolved to.
func (c *Cache) SavePlace(city, country string, p *api.Place) error {
	path := filepath.Join(c.dir, fmt.Sprintf(placeCacheFile, placeKey(city, country)))
	if err := c.write(path, PlaceEntry{City: city, Country: country, Place: *p}); err != nil {
		return fmt.Errorf("failed to write place cache: %w", err)
	}
	return nil
}

// read decodes path into v and reports whether it succeeded.
func (c *Cache) read(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (c *Cache) write(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
