package api

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/salat/internal/clock"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

// methodIDs maps conventions to the service's calculation method numbers.
var methodIDs = map[string]int{
	prayer.Karachi.Name: 1,
	prayer.ISNA.Name:    2,
	prayer.MWL.Name:     3,
	prayer.Makkah.Name:  4,
	prayer.Egypt.Name:   5,
}

// MethodID returns the service method number for conv, or -1 if it has none.
func MethodID(conv prayer.Convention) int {
	if id, ok := methodIDs[conv.Name]; ok {
		return id
	}
	return -1
}

// SchoolID returns the service school number: 0 for Shafi, 1 for Hanafi.
func SchoolID(s prayer.School) int {
	if s == prayer.Hanafi {
		return 1
	}
	return 0
}

// TimingsCache stores fetched timings per day so repeated runs stay offline.
type TimingsCache interface {
	LoadTimings(date time.Time, lat, lon float64, method, school int) *Timings
	SaveTimings(date time.Time, lat, lon float64, method, school int, t Timings) error
}

// Strategy is a prayer.Strategy backed by the Al Adhan service. On a cache
// miss it fetches the whole month and caches every day of it.
type Strategy struct {
	client *Client
	method int
	school int
	dst    clock.DaylightSaving
	cache  TimingsCache
	log    zerolog.Logger
}

// StrategyOption configures a Strategy.
type StrategyOption func(*Strategy)

// WithCache stores fetched months in c.
func WithCache(c TimingsCache) StrategyOption {
	return func(s *Strategy) { s.cache = c }
}

// WithDaylightSaving selects the DST rule used to place the service's local
// times on the location's clock.
func WithDaylightSaving(d clock.DaylightSaving) StrategyOption {
	return func(s *Strategy) { s.dst = d }
}

// WithLogger sets the logger for cache warnings.
func WithLogger(l zerolog.Logger) StrategyOption {
	return func(s *Strategy) { s.log = l }
}

// NewStrategy returns a Strategy requesting times for params' convention and
// school.
func NewStrategy(client *Client, params prayer.Params, opts ...StrategyOption) *Strategy {
	s := &Strategy{
		client: client,
		method: MethodID(params.Convention),
		school: SchoolID(params.School),
		dst:    clock.DSTNorthAmerica,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculate implements prayer.Strategy.
func (s *Strategy) Calculate(loc prayer.GeoLocation, date time.Time) (prayer.Schedule, error) {
	lat, lon := loc.LatitudeDegrees(), loc.LongitudeDegrees()
	zone := loc.Zone(s.dst.Offset(date))

	if s.cache != nil {
		if t := s.cache.LoadTimings(date, lat, lon, s.method, s.school); t != nil {
			return ScheduleFromTimings(*t, date, zone)
		}
	}

	resp, err := s.client.FetchCalendarByCoordinates(date.Year(), int(date.Month()), lat, lon, s.method, s.school)
	if err != nil {
		return prayer.Schedule{}, fmt.Errorf("fetching prayer times: %w", err)
	}

	for _, day := range resp.Data {
		s.save(day, date.Location(), lat, lon)
	}
	day, ok := resp.Day(date)
	if !ok {
		return prayer.Schedule{}, fmt.Errorf("prayer times for %s missing from response", date.Format(dateLayout))
	}
	return ScheduleFromTimings(day.Timings, date, zone)
}

func (s *Strategy) save(day Data, loc *time.Location, lat, lon float64) {
	if s.cache == nil {
		return
	}
	d, err := day.Date.Gregorian.Time(loc)
	if err != nil {
		s.log.Warn().Err(err).Str("date", day.Date.Gregorian.Date).Msg("skipping cache entry with unreadable date")
		return
	}
	if err := s.cache.SaveTimings(d, lat, lon, s.method, s.school, day.Timings); err != nil {
		s.log.Warn().Err(err).Msg("could not write timings cache")
	}
}
