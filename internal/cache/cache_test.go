package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smokyabdulrahman/salat/internal/api"
	"github.com/smokyabdulrahman/salat/internal/geo"
)

func sampleTimings() api.Timings {
	return api.Timings{
		Fajr:     "05:17",
		Sunrise:  "06:48",
		Dhuhr:    "12:13",
		Asr:      "15:02",
		Maghrib:  "17:39",
		Isha:     "19:10",
		Midnight: "00:14",
	}
}

func newCache(t *testing.T) (*Cache, string) {
	t.Helper()
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New(%q) error: %v", dir, err)
	}
	return c, dir
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir", "cache")
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New(%q) error: %v", dir, err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("directory %q was not created", dir)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

func TestNew_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := New("")
	if err != nil {
		t.Fatalf("New(\"\") error: %v", err)
	}
	want := filepath.Join(home, ".cache", "salat")
	if c.Dir() != want {
		t.Errorf("Dir() = %q, want %q", c.Dir(), want)
	}
}

// ---------------------------------------------------------------------------
// Timings
// ---------------------------------------------------------------------------

func TestTimings_RoundTrip(t *testing.T) {
	c, _ := newCache(t)
	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if err := c.SaveTimings(date, 51.5074, -0.1278, 2, 0, sampleTimings()); err != nil {
		t.Fatalf("SaveTimings error: %v", err)
	}

	got := c.LoadTimings(date, 51.5074, -0.1278, 2, 0)
	if got == nil {
		t.Fatal("LoadTimings returned nil after save")
	}
	if *got != sampleTimings() {
		t.Errorf("LoadTimings = %+v, want %+v", *got, sampleTimings())
	}
}

func TestTimings_CacheMiss(t *testing.T) {
	c, _ := newCache(t)

	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	if got := c.LoadTimings(date, 51.5, -0.1, 2, 0); got != nil {
		t.Error("expected nil for cache miss, got entry")
	}
}

func TestTimings_DifferentParams(t *testing.T) {
	c, _ := newCache(t)
	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if err := c.SaveTimings(date, 51.5, -0.1, 2, 0, sampleTimings()); err != nil {
		t.Fatalf("SaveTimings error: %v", err)
	}

	misses := []struct {
		name     string
		date     time.Time
		lat, lon float64
		method   int
		school   int
	}{
		{"other method", date, 51.5, -0.1, 3, 0},
		{"other school", date, 51.5, -0.1, 2, 1},
		{"other place", date, 40.7, -74.0, 2, 0},
		{"other day", date.AddDate(0, 0, 1), 51.5, -0.1, 2, 0},
	}
	for _, m := range misses {
		if got := c.LoadTimings(m.date, m.lat, m.lon, m.method, m.school); got != nil {
			t.Errorf("%s: expected miss, got %+v", m.name, got)
		}
	}
}

func TestTimings_StaleDateInFile(t *testing.T) {
	c, dir := newCache(t)
	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	// An entry whose recorded date disagrees with its key is ignored.
	entry := TimingsEntry{Date: "2026-02-27", Method: 2, Timings: sampleTimings()}
	data, _ := json.Marshal(entry)
	key := timingsKey("2026-02-28", 51.5, -0.1, 2, 0)
	os.WriteFile(filepath.Join(dir, "timings_"+key+".json"), data, 0o644)

	if got := c.LoadTimings(date, 51.5, -0.1, 2, 0); got != nil {
		t.Error("expected nil for stale entry, got timings")
	}
}

func TestTimings_CorruptedFile(t *testing.T) {
	c, dir := newCache(t)
	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	key := timingsKey("2026-02-28", 51.5, -0.1, 2, 0)
	os.WriteFile(filepath.Join(dir, "timings_"+key+".json"), []byte("{not json"), 0o644)

	if got := c.LoadTimings(date, 51.5, -0.1, 2, 0); got != nil {
		t.Error("expected nil for corrupted cache file, got entry")
	}
}

func TestTimings_SaveIntoMissingDir(t *testing.T) {
	c, dir := newCache(t)
	os.RemoveAll(dir)

	err := c.SaveTimings(time.Now(), 0, 0, 2, 0, sampleTimings())
	if err == nil {
		t.Fatal("expected error writing into a removed directory")
	}
}

// Cache must satisfy the strategy's cache interface.
var _ api.TimingsCache = (*Cache)(nil)

// ---------------------------------------------------------------------------
// Geo
// ---------------------------------------------------------------------------

func TestGeo_RoundTrip(t *testing.T) {
	c, _ := newCache(t)

	loc := &geo.Location{
		Latitude:  51.5074,
		Longitude: -0.1278,
		City:      "London",
		Country:   "United Kingdom",
		Timezone:  "Europe/London",
	}
	if err := c.SaveGeo(loc); err != nil {
		t.Fatalf("SaveGeo error: %v", err)
	}

	got := c.LoadGeo()
	if got == nil {
		t.Fatal("LoadGeo returned nil after save")
	}
	if *got != *loc {
		t.Errorf("LoadGeo = %+v, want %+v", *got, *loc)
	}
}

func TestGeo_CacheMiss(t *testing.T) {
	c, _ := newCache(t)

	if got := c.LoadGeo(); got != nil {
		t.Error("expected nil for geo cache miss, got entry")
	}
}

func TestGeo_ExpiredTTL(t *testing.T) {
	c, dir := newCache(t)

	// Write a geo cache entry with a timestamp 25 hours ago (past 24h TTL).
	entry := GeoCacheEntry{
		Location: geo.Location{Latitude: 51.5074, Longitude: -0.1278, City: "London"},
		CachedAt: time.Now().Add(-25 * time.Hour),
	}
	data, _ := json.Marshal(entry)
	os.WriteFile(filepath.Join(dir, "geolocation.json"), data, 0o644)

	if got := c.LoadGeo(); got != nil {
		t.Error("expected nil for expired geo cache, got entry")
	}
}

func TestGeo_CorruptedFile(t *testing.T) {
	c, dir := newCache(t)

	os.WriteFile(filepath.Join(dir, "geolocation.json"), []byte("{bad json"), 0o644)

	if got := c.LoadGeo(); got != nil {
		t.Error("expected nil for corrupted geo cache, got entry")
	}
}

// ---------------------------------------------------------------------------
// Places
// ---------------------------------------------------------------------------

func TestPlace_RoundTrip(t *testing.T) {
	c, _ := newCache(t)
	p := &api.Place{Latitude: 21.4225, Longitude: 39.8262, Timezone: "Asia/Riyadh"}

	if err := c.SavePlace("Makkah", "Saudi Arabia", p); err != nil {
		t.Fatalf("SavePlace error: %v", err)
	}

	// Lookups ignore case and surrounding space.
	got := c.LoadPlace(" makkah", "SAUDI ARABIA ")
	if got == nil {
		t.Fatal("LoadPlace returned nil after save")
	}
	if *got != *p {
		t.Errorf("LoadPlace = %+v, want %+v", *got, *p)
	}

	if c.LoadPlace("Madinah", "Saudi Arabia") != nil {
		t.Error("expected miss for another city")
	}
}

// ---------------------------------------------------------------------------
// Keys
// ---------------------------------------------------------------------------

func TestTimingsKey(t *testing.T) {
	k1 := timingsKey("2026-02-28", 51.5, -0.1, 2, 0)
	k2 := timingsKey("2026-02-28", 51.5, -0.1, 2, 0)
	if k1 != k2 {
		t.Errorf("same inputs produced different keys: %q vs %q", k1, k2)
	}
	if len(k1) != 16 {
		t.Errorf("key length = %d, want 16", len(k1))
	}

	others := []string{
		timingsKey("2026-02-28", 51.5, -0.1, 3, 0),
		timingsKey("2026-03-01", 51.5, -0.1, 2, 0),
		timingsKey("2026-02-28", 40.7, -74.0, 2, 0),
		timingsKey("2026-02-28", 51.5, -0.1, 2, 1),
	}
	for i, k := range others {
		if k == k1 {
			t.Errorf("variant %d collided with base key", i)
		}
	}
}
