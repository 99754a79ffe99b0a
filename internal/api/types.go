package api

import "time"

// dateLayout is the DD-MM-YYYY form used in request paths and responses.
const dateLayout = "02-01-2006"

// Response is the envelope of a single-day timings request.
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

// CalendarResponse is the envelope of a month calendar request.
type CalendarResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   []Data `json:"data"`
}

// Day returns the entry for the calendar day of date.
func (r *CalendarResponse) Day(date time.Time) (Data, bool) {
	want := date.Format(dateLayout)
	for _, d := range r.Data {
		if d.Date.Gregorian.Date == want {
			return d, true
		}
	}
	return Data{}, false
}

// Data is one day of service output.
type Data struct {
	Timings Timings  `json:"timings"`
	Date    DateInfo `json:"date"`
	Meta    Meta     `json:"meta"`
}

// Timings holds HH:MM strings, possibly suffixed with a zone such as " (BST)".
// Midnight is the service's name for HalfNight.
type Timings struct {
	Fajr     string `json:"Fajr"`
	Sunrise  string `json:"Sunrise"`
	Dhuhr    string `json:"Dhuhr"`
	Asr      string `json:"Asr"`
	Maghrib  string `json:"Maghrib"`
	Isha     string `json:"Isha"`
	Midnight string `json:"Midnight"`
}

type DateInfo struct {
	Readable  string        `json:"readable"`
	Gregorian GregorianDate `json:"gregorian"`
}

type GregorianDate struct {
	Date string `json:"date"` // "28-02-2026"
}

// Time parses the date in loc.
func (g GregorianDate) Time(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, g.Date, loc)
}

// Meta describes where and how the service calculated.
type Meta struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Timezone  string     `json:"timezone"`
	Method    MethodInfo `json:"method"`
	School    string     `json:"school"`
}

// Place returns the location the service resolved the request to.
func (m Meta) Place() *Place {
	return &Place{Latitude: m.Latitude, Longitude: m.Longitude, Timezone: m.Timezone}
}

type MethodInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Place is a city resolved by the service.
type Place struct {
	Latitude  float64
	Longitude float64
	Timezone  string
}
