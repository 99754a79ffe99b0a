// Package prayer calculates daily prayer schedules from a location and date
// and provides helpers for finding and displaying upcoming prayers.
package prayer

import (
	"fmt"
	"time"
)

// NextPrayer finds the next upcoming prayer from the given slice, relative to now.
// If all prayers for today have passed, it returns nil (caller should calculate tomorrow's schedule).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the most recent prayer at or before now, or nil if
// now is before the first one.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var current *Prayer
	for i := range prayers {
		if prayers[i].Time.After(now) {
			break
		}
		current = &prayers[i]
	}
	return current
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(prayer Prayer, now time.Time) time.Duration {
	return prayer.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// Upcoming returns the next prayer among events after now, calculating the
// following day's schedule with s when today's have all passed.
func Upcoming(s Strategy, loc GeoLocation, now time.Time, events []Event) (*Prayer, error) {
	today, err := s.Calculate(loc, now)
	if err != nil {
		return nil, err
	}
	if next := NextPrayer(today.Prayers(events), now); next != nil {
		return next, nil
	}

	tomorrow, err := s.Calculate(loc, now.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("calculating tomorrow's schedule: %w", err)
	}
	if next := NextPrayer(tomorrow.Prayers(events), now); next != nil {
		return next, nil
	}
	return nil, fmt.Errorf("no upcoming prayer among %v", Names(events))
}
