package api

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/smokyabdulrahman/salat/internal/clock"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

// memCache is an in-memory TimingsCache keyed by date.
type memCache struct {
	entries map[string]Timings
	saveErr error
}

func newMemCache() *memCache { return &memCache{entries: map[string]Timings{}} }

func (m *memCache) LoadTimings(date time.Time, _, _ float64, _, _ int) *Timings {
	t, ok := m.entries[date.Format("2006-01-02")]
	if !ok {
		return nil
	}
	return &t
}

func (m *memCache) SaveTimings(date time.Time, _, _ float64, _, _ int, t Timings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries[date.Format("2006-01-02")] = t
	return nil
}

func london(t *testing.T) prayer.GeoLocation {
	t.Helper()
	loc, err := prayer.NewGeoLocation(51.5074, -0.1278, 0)
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func TestStrategy_FetchesMonthAndCaches(t *testing.T) {
	requests := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		q := r.URL.Query()
		if q.Get("method") != "3" || q.Get("school") != "1" {
			t.Errorf("method/school = %q/%q, want 3/1", q.Get("method"), q.Get("school"))
		}
		writeJSON(w, sampleCalendarResponse(2026, 2, 28))
	})

	cache := newMemCache()
	params := prayer.Params{Convention: prayer.MWL, School: prayer.Hanafi}
	s := NewStrategy(c, params, WithCache(cache), WithDaylightSaving(clock.DSTNone))

	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	sched, err := s.Calculate(london(t), date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sched[prayer.Asr].Hour != 15 || sched[prayer.Asr].Minute != 2 {
		t.Errorf("Asr = %v, want 15:02", sched[prayer.Asr].TimeOfDay)
	}
	if len(cache.entries) != 28 {
		t.Errorf("cached %d days, want 28", len(cache.entries))
	}

	// Another day of the same month comes from the cache.
	if _, err := s.Calculate(london(t), date.AddDate(0, 0, 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 1 {
		t.Errorf("expected 1 request, got %d", requests)
	}
}

func TestStrategy_NoCache(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, sampleCalendarResponse(2026, 2, 28))
	})

	s := NewStrategy(c, prayer.DefaultParams(), WithDaylightSaving(clock.DSTNone))
	sched, err := s.Calculate(london(t), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sched[prayer.Fajr].String(); got != "5:17 AM" {
		t.Errorf("Fajr = %q, want %q", got, "5:17 AM")
	}
}

func TestStrategy_CacheWriteFailureIsNotFatal(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, sampleCalendarResponse(2026, 2, 28))
	})

	cache := newMemCache()
	cache.saveErr = errors.New("disk full")
	s := NewStrategy(c, prayer.DefaultParams(), WithCache(cache))

	if _, err := s.Calculate(london(t), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStrategy_DayMissing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, sampleCalendarResponse(2026, 2, 10))
	})

	s := NewStrategy(c, prayer.DefaultParams())
	if _, err := s.Calculate(london(t), time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Fatal("expected error for a day missing from the response")
	}
}

func TestStrategy_FetchError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})

	s := NewStrategy(c, prayer.DefaultParams())
	if _, err := s.Calculate(london(t), time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Fatal("expected error when the service fails")
	}
}

func TestMethodAndSchoolIDs(t *testing.T) {
	tests := []struct {
		conv prayer.Convention
		want int
	}{
		{prayer.Karachi, 1},
		{prayer.ISNA, 2},
		{prayer.MWL, 3},
		{prayer.Makkah, 4},
		{prayer.Egypt, 5},
		{prayer.Convention{Name: "custom"}, -1},
	}
	for _, tt := range tests {
		if got := MethodID(tt.conv); got != tt.want {
			t.Errorf("MethodID(%s) = %d, want %d", tt.conv.Name, got, tt.want)
		}
	}
	if SchoolID(prayer.Shafi) != 0 || SchoolID(prayer.Hanafi) != 1 {
		t.Error("unexpected school IDs")
	}
}

// Strategy must satisfy prayer.Strategy.
var _ prayer.Strategy = (*Strategy)(nil)
