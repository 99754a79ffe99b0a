package prayer

import (
	"fmt"
	"strings"
)

// Event identifies one time-critical event of the day. The numbering is the
// index of the event in a Schedule.
type Event int

const (
	Fajr Event = iota
	Dhuhr
	Asr
	Maghrib
	Isha
	Sunrise
	// HalfNight marks the recommended end of the Isha window.
	HalfNight

	// NumEvents is the number of events in a Schedule.
	NumEvents = int(HalfNight) + 1
)

var eventNames = [NumEvents]string{
	Fajr:      "Fajr",
	Dhuhr:     "Dhuhr",
	Asr:       "Asr",
	Maghrib:   "Maghrib",
	Isha:      "Isha",
	Sunrise:   "Sunrise",
	HalfNight: "HalfNight",
}

// shortNames maps each event to a compact label for status bars.
var shortNames = [NumEvents]string{
	Fajr:      "F",
	Dhuhr:     "D",
	Asr:       "A",
	Maghrib:   "M",
	Isha:      "I",
	Sunrise:   "S",
	HalfNight: "H",
}

// DefaultEvents are the events tracked by default, in chronological order.
var DefaultEvents = []Event{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// String returns the display name of the event.
func (e Event) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Event(%d)", int(e))
	}
	return eventNames[e]
}

// Short returns the abbreviated name of the event.
func (e Event) Short() string {
	if !e.Valid() {
		return "?"
	}
	return shortNames[e]
}

// Valid reports whether e is one of the defined events.
func (e Event) Valid() bool {
	return e >= 0 && int(e) < NumEvents
}

// Events returns every event in Schedule order.
func Events() []Event {
	all := make([]Event, NumEvents)
	for i := range all {
		all[i] = Event(i)
	}
	return all
}

// ParseEvent resolves an event by name, ignoring case. "Midnight" is accepted
// as an alias for HalfNight.
func ParseEvent(name string) (Event, error) {
	n := strings.TrimSpace(name)
	if strings.EqualFold(n, "midnight") {
		return HalfNight, nil
	}
	for i, s := range eventNames {
		if strings.EqualFold(s, n) {
			return Event(i), nil
		}
	}
	return 0, fmt.Errorf("unknown prayer name: %s", name)
}

// ParseEvents resolves a list of names with ParseEvent.
func ParseEvents(names []string) ([]Event, error) {
	events := make([]Event, 0, len(names))
	for _, n := range names {
		e, err := ParseEvent(n)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// Names returns the display names of events.
func Names(events []Event) []string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.String()
	}
	return names
}
