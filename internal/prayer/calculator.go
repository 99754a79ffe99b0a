package prayer

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/clock"
)

// Strategy produces the schedule for a location and date.
type Strategy interface {
	Calculate(loc GeoLocation, date time.Time) (Schedule, error)
}

// Diagnoser is implemented by strategies that can report how a schedule was
// derived.
type Diagnoser interface {
	Compute(loc GeoLocation, date time.Time) (Diagnostics, error)
}

// Calculator computes schedules locally from solar position formulae.
// A Calculator is immutable once built and safe for concurrent use.
type Calculator struct {
	params     Params
	dst        clock.DaylightSaving
	heightEast float64
	heightWest float64
	log        zerolog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithParams sets the convention, school and intervals.
func WithParams(p Params) Option {
	return func(c *Calculator) { c.params = p }
}

// WithDaylightSaving selects the DST rule applied to the location's offset.
func WithDaylightSaving(d clock.DaylightSaving) Option {
	return func(c *Calculator) { c.dst = d }
}

// WithHorizon sets the eastern and western horizon obstruction heights in
// metres.
func WithHorizon(east, west float64) Option {
	return func(c *Calculator) {
		c.heightEast = east
		c.heightWest = west
	}
}

// WithLogger sets the logger used for debug output about approximations.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Calculator) { c.log = l }
}

// NewCalculator returns a Calculator with DefaultParams, the North American
// DST rule and no horizon correction, modified by opts.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		params: DefaultParams(),
		dst:    clock.DSTNorthAmerica,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Params returns the calculation parameters in use.
func (c *Calculator) Params() Params {
	return c.params
}

// Diagnostics is a full calculation with its intermediate values.
type Diagnostics struct {
	Location GeoLocation
	Date     time.Time
	DST      int
	Today    Day
	Tomorrow Day
	Schedule Schedule
}

// Calculate implements Strategy.
func (c *Calculator) Calculate(loc GeoLocation, date time.Time) (Schedule, error) {
	d, err := c.Compute(loc, date)
	if err != nil {
		return Schedule{}, err
	}
	return d.Schedule, nil
}

// Compute calculates the schedule for the calendar day of date and returns it
// along with the solar positions, ratios and Isha variants it was built from.
// Tomorrow's Fajr, needed for HalfNight, reuses today's DST offset.
func (c *Calculator) Compute(loc GeoLocation, date time.Time) (Diagnostics, error) {
	dst := c.dst.Offset(date)
	obs := astro.Observer{
		Latitude:   loc.Latitude,
		Longitude:  loc.Longitude,
		UTCOffset:  loc.UTCOffset,
		HeightEast: c.heightEast,
		HeightWest: c.heightWest,
	}

	today, err := c.day(date, obs, dst)
	if err != nil {
		return Diagnostics{}, err
	}
	tomorrow, err := c.day(date.AddDate(0, 0, 1), obs, dst)
	if err != nil {
		return Diagnostics{}, err
	}

	zone := loc.Zone(dst)
	var s Schedule
	for _, e := range []Event{Fajr, Dhuhr, Asr, Maghrib, Isha, Sunrise} {
		s[e] = Time{TimeOfDay: today.Clock[e], Instant: instant(date, today.Hours[e]+float64(c.params.interval(e))/60, today.Clock[e], zone)}
	}

	half := halfNight(date, today.Clock[Maghrib], tomorrow.Clock[Fajr], zone)
	s[HalfNight] = Time{
		TimeOfDay: clock.TimeOfDay{Hour: half.Hour(), Minute: half.Minute(), Second: half.Second()},
		Instant:   half,
	}

	return Diagnostics{
		Location: loc,
		Date:     date,
		DST:      dst,
		Today:    today,
		Tomorrow: tomorrow,
		Schedule: s,
	}, nil
}

func (c *Calculator) day(date time.Time, obs astro.Observer, dst int) (Day, error) {
	pos, err := astro.Compute(date, obs, float64(dst))
	if err != nil {
		return Day{}, fmt.Errorf("solar position for %s: %w", date.Format("2006-01-02"), err)
	}
	if pos.Problematic {
		c.log.Debug().
			Str("date", date.Format("2006-01-02")).
			Float64("latitude", astro.Degrees(obs.Latitude)).
			Float64("reference_latitude", astro.Degrees(pos.ReferenceLatitude)).
			Msg("sun does not cross the horizon normally; using reference latitude")
	}

	d := adjust(date, obs, pos, c.params, float64(dst))
	if d.FajrRule == RuleRatio || d.Isha.LocalRule == RuleRatio {
		c.log.Debug().
			Str("date", date.Format("2006-01-02")).
			Str("fajr", string(d.FajrRule)).
			Str("isha", string(d.Isha.LocalRule)).
			Time("reference_date", d.Ratios.ReferenceDate).
			Msg("twilight angle unreachable; using night ratio")
	}
	return d, nil
}

// instant places a formatted time on date. hours includes the event's
// interval, so a value the formatter wrapped past midnight lands on the next
// day.
func instant(date time.Time, hours float64, tod clock.TimeOfDay, zone *time.Location) time.Time {
	if hours >= astro.HoursPerDay {
		date = date.AddDate(0, 0, 1)
	}
	return tod.At(date, zone)
}
