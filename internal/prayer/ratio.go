package prayer

import (
	"math"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
)

// Constants of the high-latitude twilight approximation.
const (
	// SafetyMargin is added to computed times so the event has certainly
	// begun, in hours.
	SafetyMargin = 0.016389

	// TwilightMaxLatitudeDegrees is the latitude at or above which Fajr and
	// Isha fall back to the night-length ratio.
	TwilightMaxLatitudeDegrees = 48.0

	// The ratio is used when |cos H| exceeds
	// ratioThresholdBase + ratioThresholdSlope·angle (angle in radians).
	ratioThresholdBase  = 0.45
	ratioThresholdSlope = 1.3369

	solsticeDay = 21
)

// TwilightMaxLatitude is TwilightMaxLatitudeDegrees in radians.
var TwilightMaxLatitude = astro.Radians(TwilightMaxLatitudeDegrees)

// Ratios are the Fajr and Isha offsets from sunrise and sunset expressed as
// fractions of the night, measured at the reference latitude on the summer
// solstice of the location's hemisphere.
type Ratios struct {
	Fajr          float64
	Isha          float64
	ReferenceDate time.Time
}

// ReferenceDate returns 21 June of date's year for northern latitudes and
// 21 December for southern ones.
func ReferenceDate(date time.Time, lat float64) time.Time {
	month := time.June
	if lat < 0 {
		month = time.December
	}
	return time.Date(date.Year(), month, solsticeDay, 0, 0, 0, 0, date.Location())
}

// ratioThreshold is the |cos H| above which the twilight angle is treated as
// unreachable and the ratio is used instead.
func ratioThreshold(angle float64) float64 {
	return ratioThresholdBase + ratioThresholdSlope*angle
}

// hourAngleFor returns cos H and H, in hours, for the sun reaching elevation
// at the latitude pos was computed at.
func hourAngleFor(elevation float64, pos astro.Position) (cH, h float64) {
	cH = astro.CosHourAngleAt(elevation, pos.SinDeclination(), pos.CosDeclination())
	return cH, astro.HourAngle(cH)
}

// computeRatios evaluates the solar position at the reference latitude on the
// reference date and derives the Fajr and Isha night ratios from it.
func computeRatios(date time.Time, obs astro.Observer, conv Convention, dst float64) Ratios {
	ref := ReferenceDate(date, obs.Latitude)
	pos, _ := astro.ComputeAt(ref, obs, astro.ReferenceLatitude(obs.Latitude), dst)
	night := pos.NightLength()

	_, fajrH := hourAngleFor(-astro.Radians(conv.FajrAngle), pos)
	fajrRef := pos.Noon - fajrH - SafetyMargin

	ishaRef := pos.Sunset + float64(conv.IshaInterval)/60
	if conv.IshaAngle != 0 {
		_, ishaH := hourAngleFor(-astro.Radians(conv.IshaAngle), pos)
		ishaRef = pos.Noon + ishaH + SafetyMargin
	}

	r := Ratios{ReferenceDate: ref}
	if night > 0 && !math.IsNaN(night) {
		r.Fajr = (pos.Sunrise - fajrRef) / night
		r.Isha = (ishaRef - pos.Sunset) / night
	}
	return r
}
