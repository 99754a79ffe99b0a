package clock

import (
	"fmt"
	"strings"
	"time"
)

// DaylightSaving selects the rule used to decide whether a date observes
// daylight saving time.
type DaylightSaving int

const (
	// DSTNorthAmerica observes DST from 02:00 on the second Sunday of March
	// until 02:00 on the first Sunday of November.
	DSTNorthAmerica DaylightSaving = iota
	// DSTNone never observes DST.
	DSTNone
)

var daylightSavingNames = map[DaylightSaving]string{
	DSTNorthAmerica: "north-america",
	DSTNone:         "none",
}

func (d DaylightSaving) String() string {
	if name, ok := daylightSavingNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DaylightSaving(%d)", int(d))
}

// ParseDaylightSaving parses a rule name as printed by String.
func ParseDaylightSaving(s string) (DaylightSaving, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range daylightSavingNames {
		if name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown daylight saving rule %q (valid: north-america, none)", s)
}

// Offset returns the DST offset in hours, 0 or 1, for the instant t read in
// t's own location.
func (d DaylightSaving) Offset(t time.Time) int {
	if d != DSTNorthAmerica {
		return 0
	}

	loc := t.Location()
	start := at2AM(NthSunday(t.Year(), time.March, 2, loc))
	end := at2AM(NthSunday(t.Year(), time.November, 1, loc))

	if !t.Before(start) && t.Before(end) {
		return 1
	}
	return 0
}

// DaylightSavingOffset applies the North American rule to t.
func DaylightSavingOffset(t time.Time) int {
	return DSTNorthAmerica.Offset(t)
}

// NthSunday returns midnight of the nth Sunday of month in loc, scanning from
// the first of the month. n is at least 1.
func NthSunday(year int, month time.Month, n int, loc *time.Location) time.Time {
	if n < 1 {
		n = 1
	}
	count := 0
	for day := 1; ; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, loc)
		if d.Weekday() == time.Sunday {
			count++
			if count == n {
				return d
			}
		}
	}
}

func at2AM(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 2, 0, 0, 0, day.Location())
}
