package prayer

import (
	"math"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/clock"
)

// DefaultAsrHourAngle is the Asr hour angle, in hours, used when the shadow
// angle is never reached.
const DefaultAsrHourAngle = 3.5

// Params are the user-selectable parts of a calculation.
type Params struct {
	Convention Convention
	School     School
	// DhuhrInterval and MaghribInterval are minutes added after formatting.
	DhuhrInterval   int
	MaghribInterval int
}

// interval returns the minutes added to e after formatting.
func (p Params) interval(e Event) int {
	switch e {
	case Dhuhr:
		return p.DhuhrInterval
	case Maghrib:
		return p.MaghribInterval
	}
	return 0
}

// DefaultParams returns ISNA angles, the Shafi school and no intervals.
func DefaultParams() Params {
	return Params{Convention: ISNA, School: Shafi}
}

// Day is the result of adjusting one day's solar position into event times.
type Day struct {
	Position astro.Position
	// Hours are the event times in fractional hours before formatting.
	// HalfNight is not computed per day and is left zero.
	Hours    [NumEvents]float64
	Clock    [NumEvents]clock.TimeOfDay
	Ratios   *Ratios
	FajrRule Rule
	Isha     IshaVariants
}

// adjust turns a day's solar position into event times. obs carries the
// location's true latitude, which pos may have replaced.
func adjust(date time.Time, obs astro.Observer, pos astro.Position, params Params, dst float64) Day {
	d := Day{Position: pos}

	d.Hours[Sunrise] = pos.Sunrise - pos.Height.East
	d.Hours[Dhuhr] = pos.Noon + SafetyMargin
	d.Hours[Maghrib] = pos.Sunset + pos.Height.West + SafetyMargin
	d.Hours[Asr] = asrTime(pos, obs.Latitude, params.School)

	latitude := obs.Latitude
	if math.Abs(latitude) >= TwilightMaxLatitude {
		r := computeRatios(date, obs, params.Convention, dst)
		d.Ratios = &r
	}

	d.Hours[Fajr], d.FajrRule = fajrTime(pos, latitude, params.Convention, d.Ratios)

	in := ishaInput{conv: params.Convention, latitude: latitude, pos: pos, maghrib: d.Hours[Maghrib]}
	if d.Ratios != nil {
		in.ratios = *d.Ratios
	}
	d.Isha = resolveIsha(in)
	d.Hours[Isha] = d.Isha.Local

	for _, e := range []Event{Fajr, Dhuhr, Asr, Maghrib, Isha, Sunrise} {
		d.Clock[e] = clock.Format(d.Hours[e], params.interval(e))
	}
	return d
}

// asrTime is noon plus the hour angle at which an object's shadow exceeds its
// noon shadow by the school's ratio.
func asrTime(pos astro.Position, latitude float64, school School) float64 {
	ref := latitude
	if pos.Problematic {
		ref = pos.ReferenceLatitude
	}
	diff := pos.Declination - ref
	act := school.ShadowRatio() + math.Tan(math.Abs(diff))
	angle := math.Atan(1 / act)

	cH := astro.CosHourAngleAt(angle, pos.SinDeclination(), pos.CosDeclination())
	h := DefaultAsrHourAngle
	if math.Abs(cH) <= 1 {
		h = astro.HourAngle(cH)
	}
	return pos.Noon + h + SafetyMargin
}

// fajrTime uses the twilight angle below TwilightMaxLatitude. At or above it
// the night ratio applies whenever |cos H| passes the linear threshold.
func fajrTime(pos astro.Position, latitude float64, conv Convention, ratios *Ratios) (float64, Rule) {
	angle := astro.Radians(conv.FajrAngle)
	cH, h := hourAngleFor(-angle, pos)
	direct := pos.Noon - (h + pos.Height.East) + SafetyMargin

	if ratios == nil || math.Abs(latitude) < TwilightMaxLatitude {
		return direct, RuleAngle
	}
	if math.Abs(cH) > ratioThreshold(angle) {
		return pos.Sunrise - pos.NightLength()*ratios.Fajr, RuleRatio
	}
	return direct, RuleAngle
}

// halfNight adds the clock fields of today's Maghrib and tomorrow's Fajr one
// by one and lets the calendar carry any overflow into the following day.
func halfNight(date time.Time, maghrib, nextFajr clock.TimeOfDay, zone *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d,
		maghrib.Hour+nextFajr.Hour,
		maghrib.Minute+nextFajr.Minute,
		maghrib.Second+nextFajr.Second,
		0, zone)
}
