package prayer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
)

// ErrInvalidLocation is returned for coordinates or offsets outside their
// valid range.
var ErrInvalidLocation = errors.New("invalid location")

// GeoLocation is the place a schedule is calculated for. Coordinates are
// stored in radians.
type GeoLocation struct {
	Latitude  float64
	Longitude float64
	// UTCOffset is the standard (non-DST) offset from UTC in hours.
	UTCOffset float64
}

// NewGeoLocation validates degrees and a UTC offset in hours and returns the
// corresponding GeoLocation.
func NewGeoLocation(latDeg, lonDeg, utcOffset float64) (GeoLocation, error) {
	switch {
	case !finite(latDeg) || math.Abs(latDeg) >= 90:
		return GeoLocation{}, fmt.Errorf("%w: latitude %v must be strictly between -90 and 90", ErrInvalidLocation, latDeg)
	case !finite(lonDeg) || math.Abs(lonDeg) > 180:
		return GeoLocation{}, fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidLocation, lonDeg)
	case !finite(utcOffset) || utcOffset < -12 || utcOffset > 14:
		return GeoLocation{}, fmt.Errorf("%w: UTC offset %v must be between -12 and 14", ErrInvalidLocation, utcOffset)
	}

	return GeoLocation{
		Latitude:  astro.Radians(latDeg),
		Longitude: astro.Radians(lonDeg),
		UTCOffset: utcOffset,
	}, nil
}

// LatitudeDegrees returns the latitude in degrees.
func (g GeoLocation) LatitudeDegrees() float64 { return astro.Degrees(g.Latitude) }

// LongitudeDegrees returns the longitude in degrees.
func (g GeoLocation) LongitudeDegrees() float64 { return astro.Degrees(g.Longitude) }

// Zone returns a fixed zone for the location's offset plus dst hours.
func (g GeoLocation) Zone(dst int) *time.Location {
	seconds := int(math.Round((g.UTCOffset + float64(dst)) * 3600))
	return time.FixedZone(zoneName(seconds), seconds)
}

func (g GeoLocation) String() string {
	return fmt.Sprintf("%.4f, %.4f (UTC%s)", g.LatitudeDegrees(), g.LongitudeDegrees(), offsetString(int(math.Round(g.UTCOffset*3600))))
}

func zoneName(seconds int) string {
	return "UTC" + offsetString(seconds)
}

func offsetString(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}

// UTCOffsetOf returns the standard offset in hours of loc at t, with any DST
// currently in effect removed.
func UTCOffsetOf(t time.Time, loc *time.Location) float64 {
	t = t.In(loc)
	_, offset := t.Zone()
	if t.IsDST() {
		offset -= 3600
	}
	return float64(offset) / 3600
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
