package prayer

import (
	"sort"
	"time"

	"github.com/smokyabdulrahman/salat/internal/clock"
)

// Display layouts for Time.
const (
	TimeLayout = "3:04 PM"
	DateLayout = "Jan 2, 2006"
)

// Time is one formatted event time: the wall-clock reading and the absolute
// instant it denotes.
type Time struct {
	clock.TimeOfDay
	Instant time.Time
}

// String returns the short clock display, e.g. "5:12 AM".
func (t Time) String() string {
	return t.Instant.Format(TimeLayout)
}

// Date returns the calendar date display, e.g. "Jun 21, 2024".
func (t Time) Date() string {
	return t.Instant.Format(DateLayout)
}

// Schedule holds one Time per Event, indexed by the Event value.
type Schedule [NumEvents]Time

// Get returns the time of event e.
func (s Schedule) Get(e Event) Time {
	return s[e]
}

// Prayer pairs an event with its absolute time.
type Prayer struct {
	Event Event
	Time  time.Time
}

// Name returns the event's display name.
func (p Prayer) Name() string {
	return p.Event.String()
}

// Prayers returns the selected events of s in chronological order.
func (s Schedule) Prayers(events []Event) []Prayer {
	prayers := make([]Prayer, 0, len(events))
	for _, e := range events {
		if !e.Valid() {
			continue
		}
		prayers = append(prayers, Prayer{Event: e, Time: s[e].Instant})
	}
	sort.SliceStable(prayers, func(i, j int) bool {
		return prayers[i].Time.Before(prayers[j].Time)
	})
	return prayers
}
