package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat/internal/clock"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

// byEvent returns the raw time string for every schedule event.
func (t Timings) byEvent() [prayer.NumEvents]string {
	return [prayer.NumEvents]string{
		prayer.Fajr:      t.Fajr,
		prayer.Sunrise:   t.Sunrise,
		prayer.Dhuhr:     t.Dhuhr,
		prayer.Asr:       t.Asr,
		prayer.Maghrib:   t.Maghrib,
		prayer.Isha:      t.Isha,
		prayer.HalfNight: t.Midnight,
	}
}

// ScheduleFromTimings converts service timings into a Schedule on the calendar
// day of date in zone. Isha and HalfNight readings earlier than Maghrib fall
// after midnight and are moved to the next day.
func ScheduleFromTimings(timings Timings, date time.Time, zone *time.Location) (prayer.Schedule, error) {
	var s prayer.Schedule
	raw := timings.byEvent()

	for _, e := range prayer.Events() {
		tod, err := parseTimeStr(raw[e])
		if err != nil {
			return prayer.Schedule{}, fmt.Errorf("failed to parse time for %s (%q): %w", e, raw[e], err)
		}
		s[e] = prayer.Time{TimeOfDay: tod, Instant: tod.At(date, zone)}
	}

	for _, e := range []prayer.Event{prayer.Isha, prayer.HalfNight} {
		if s[e].Instant.Before(s[prayer.Maghrib].Instant) {
			s[e].Instant = s[e].TimeOfDay.At(date.AddDate(0, 0, 1), zone)
		}
	}
	return s, nil
}

// parseTimeStr parses a time string like "15:02" or "15:02 (BST)".
func parseTimeStr(raw string) (clock.TimeOfDay, error) {
	// Strip timezone suffix like " (BST)" that the API sometimes appends.
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return clock.TimeOfDay{}, fmt.Errorf("invalid time format: %q", raw)
	}

	var hour, min int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return clock.TimeOfDay{}, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &min); err != nil {
		return clock.TimeOfDay{}, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return clock.TimeOfDay{}, fmt.Errorf("time out of range: %q", raw)
	}

	return clock.TimeOfDay{Hour: hour, Minute: min}, nil
}
