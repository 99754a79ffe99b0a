package astro

import (
	"errors"
	"math"
	"time"
)

// HoursPerDay is the length of a civil day in hours.
const HoursPerDay = 24.0

// ReferenceLatitudeMagnitude is the latitude (radians) substituted for the
// observer's latitude when the sun does not rise or set, or when the day or
// night is shorter than an hour.
var ReferenceLatitudeMagnitude = Radians(45)

// ErrDegenerateLocation is returned for latitudes at or beyond the poles,
// where the hour angle formulae divide by zero.
var ErrDegenerateLocation = errors.New("astro: latitude is at or beyond a pole")

// Observer is the place a Position is computed for.
type Observer struct {
	Latitude  float64 // radians, north positive
	Longitude float64 // radians, east positive
	UTCOffset float64 // standard offset from UTC in hours

	// Horizon obstruction heights in metres; zero disables height correction.
	HeightWest float64
	HeightEast float64
}

// Position is the solar position for one day at one place. All times are
// fractional hours of local clock time.
type Position struct {
	Declination    float64
	RightAscension float64

	Noon    float64
	Sunrise float64
	Sunset  float64

	// Latitude is the latitude the final computation ran at. It equals
	// ReferenceLatitude when Problematic is set.
	Latitude          float64
	ReferenceLatitude float64
	Problematic       bool

	Height HeightCorrection
}

// NightLength returns the hours between sunset and the next sunrise.
func (p Position) NightLength() float64 {
	return HoursPerDay - (p.Sunset - p.Sunrise)
}

// SinDeclination returns sin(δ)·sin(φ) for the latitude the position was
// computed at.
func (p Position) SinDeclination() float64 {
	return p.SinDeclinationAt(p.Latitude)
}

// CosDeclination returns cos(δ)·cos(φ) for the latitude the position was
// computed at.
func (p Position) CosDeclination() float64 {
	return p.CosDeclinationAt(p.Latitude)
}

// SinDeclinationAt returns sin(δ)·sin(lat).
func (p Position) SinDeclinationAt(lat float64) float64 {
	return math.Sin(p.Declination) * math.Sin(lat)
}

// CosDeclinationAt returns cos(δ)·cos(lat).
func (p Position) CosDeclinationAt(lat float64) float64 {
	return math.Cos(p.Declination) * math.Cos(lat)
}

// ReferenceLatitude returns ±45° with the sign of lat.
func ReferenceLatitude(lat float64) float64 {
	if lat < 0 {
		return -ReferenceLatitudeMagnitude
	}
	return ReferenceLatitudeMagnitude
}

// ValidateLatitude reports ErrDegenerateLocation for latitudes the formulae
// cannot handle.
func ValidateLatitude(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.Abs(lat) >= 0.5*math.Pi {
		return ErrDegenerateLocation
	}
	return nil
}

// Compute returns the solar position for the calendar day of date at obs,
// with dst hours added to the observer's UTC offset.
//
// If the sun does not cross the horizon, or the night is 1 hour or shorter or
// 23 hours or longer, the position is recomputed at the reference latitude and
// flagged Problematic.
func Compute(date time.Time, obs Observer, dst float64) (Position, error) {
	if err := ValidateLatitude(obs.Latitude); err != nil {
		return Position{}, err
	}

	p, ok := ComputeAt(date, obs, obs.Latitude, dst)
	if HeightCorrectionNeeded(ok, obs.Latitude, obs.HeightWest, obs.HeightEast) {
		p.Height = CorrectHeight(p.SinDeclination(), p.CosDeclination(), obs.HeightWest, obs.HeightEast)
	}

	span := math.Abs(p.Sunset - p.Sunrise)
	if !ok || span <= 1 || span >= HoursPerDay-1 {
		height := p.Height
		p, _ = ComputeAt(date, obs, p.ReferenceLatitude, dst)
		p.Height = height
		p.Problematic = true
	}

	p.Noon = wrapHours(p.Noon)
	return p, nil
}

// ComputeAt runs the solar formulae once at latitude lat, ignoring
// obs.Latitude. The returned bool is false when the cosine of the hour angle
// fell outside [-1, 1]; the sunrise and sunset are then both at noon.
func ComputeAt(date time.Time, obs Observer, lat, dst float64) (Position, bool) {
	tz := -(obs.UTCOffset + dst)
	year, month, day := date.Date()
	jd := JulianEpoch(year, month, day)

	t := CenturiesSince2000(jd, tz)
	l := SunMeanLongitude(t)
	m := SunMeanAnomaly(t)
	e := EarthEccentricity(t)
	y := ObliquityTerm(EclipticObliquity(t))
	eot := EquationOfTimeHours(EquationOfTime(y, l, m, e))

	v := TrueAnomaly(e, EccentricAnomaly(m, e))
	decl, ra := EquatorialCoordinates(0, EclipticLongitude(l, v, m))

	noon := NoonTime(-obs.Longitude, eot, tz)

	cH := CosHourAngle(lat, decl)
	ok := math.Abs(cH) <= 1
	if !ok {
		cH = 1
	}
	h := HourAngle(cH)

	return Position{
		Declination:       decl,
		RightAscension:    ra,
		Noon:              noon,
		Sunrise:           noon - h,
		Sunset:            noon + h,
		Latitude:          lat,
		ReferenceLatitude: ReferenceLatitude(obs.Latitude),
	}, ok
}

func wrapHours(h float64) float64 {
	h = math.Mod(h, HoursPerDay)
	if h < 0 {
		h += HoursPerDay
	}
	return h
}
