// Package clock converts fractional-hour solar results into wall-clock values
// and decides the daylight saving offset for a date.
package clock

import (
	"fmt"
	"time"
)

// TimeOfDay is a normalized wall-clock reading with no date attached.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// Format converts fractional hours into a TimeOfDay and adds intervalMinutes.
//
// Seconds of 30 or more round up into the next minute, except at 23:59 where
// rounding would wrap the day on its own. Minutes past 59 carry into the hour
// and hours wrap modulo 24.
func Format(hours float64, intervalMinutes int) TimeOfDay {
	hour := int(hours)
	frac := hours - float64(hour)
	minute := int(60 * frac)
	second := int(3600*frac - 60*float64(minute))

	if second >= 30 && !(hour == 23 && minute == 59) {
		minute++
		second = 0
	}
	if second >= 60 {
		minute++
		second = 0
	}

	t := TimeOfDay{Hour: abs(hour), Minute: abs(minute), Second: abs(second)}
	t.Minute += intervalMinutes
	return t.normalize()
}

// At places t on the calendar day of date in loc.
func (t TimeOfDay) At(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, t.Second, 0, loc)
}

// Hours returns t as fractional hours.
func (t TimeOfDay) Hours() float64 {
	return float64(t.Hour) + float64(t.Minute)/60 + float64(t.Second)/3600
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) normalize() TimeOfDay {
	for t.Minute > 59 {
		t.Minute -= 60
		t.Hour++
	}
	for t.Minute < 0 {
		t.Minute += 60
		t.Hour--
	}
	for t.Hour > 23 {
		t.Hour -= 24
	}
	for t.Hour < 0 {
		t.Hour += 24
	}
	return t
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
