package astro

import (
	"math"
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ottawa() Observer {
	return Observer{Latitude: Radians(45.356), Longitude: Radians(-75.7579), UTCOffset: -5}
}

// hoursToUTC converts a fractional local hour on date into a UTC instant.
func hoursToUTC(date time.Time, hours, offset float64) time.Time {
	y, m, d := date.Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration((hours - offset) * float64(time.Hour)))
}

func TestCompute_Ottawa(t *testing.T) {
	date := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)
	p, err := Compute(date, ottawa(), 1)
	require.NoError(t, err)

	assert.False(t, p.Problematic)
	assert.Equal(t, ottawa().Latitude, p.Latitude)
	assert.Less(t, p.Sunrise, p.Noon)
	assert.Less(t, p.Noon, p.Sunset)
	assert.InDelta(t, 8.5, p.NightLength(), 1.0)
	assert.InDelta(t, Radians(23.44), p.Declination, Radians(0.1))
	assert.Equal(t, HeightCorrection{}, p.Height)
}

func TestCompute_AgreesWithSunriseLibrary(t *testing.T) {
	tests := []struct {
		name   string
		lat    float64
		lon    float64
		offset float64
		dst    float64
		date   time.Time
	}{
		{"Ottawa summer", 45.356, -75.7579, -5, 1, time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)},
		{"Ottawa winter", 45.356, -75.7579, -5, 0, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"Cairo equinox", 30.0444, 31.2357, 2, 0, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)},
		{"Sydney", -33.8688, 151.2093, 10, 0, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)},
		{"Jakarta", -6.2088, 106.8456, 7, 0, time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)},
	}

	const tolerance = 5 * time.Minute

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := Observer{Latitude: Radians(tt.lat), Longitude: Radians(tt.lon), UTCOffset: tt.offset}
			p, err := Compute(tt.date, obs, tt.dst)
			require.NoError(t, err)
			require.False(t, p.Problematic)

			wantRise, wantSet := sunrise.SunriseSunset(tt.lat, tt.lon, tt.date.Year(), tt.date.Month(), tt.date.Day())

			gotRise := hoursToUTC(tt.date, p.Sunrise, tt.offset+tt.dst)
			gotSet := hoursToUTC(tt.date, p.Sunset, tt.offset+tt.dst)

			assert.WithinDuration(t, wantRise, gotRise, tolerance)
			assert.WithinDuration(t, wantSet, gotSet, tolerance)
		})
	}
}

func TestCompute_PolarDayUsesReferenceLatitude(t *testing.T) {
	tromso := Observer{Latitude: Radians(69.6492), Longitude: Radians(18.9553), UTCOffset: 1}
	date := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)

	p, err := Compute(date, tromso, 1)
	require.NoError(t, err)

	assert.True(t, p.Problematic)
	assert.Equal(t, Radians(45), p.Latitude)
	assert.Equal(t, Radians(45), p.ReferenceLatitude)
	assert.Greater(t, p.NightLength(), 1.0)
	assert.Less(t, p.NightLength(), 23.0)
}

func TestCompute_SouthernPolarNight(t *testing.T) {
	obs := Observer{Latitude: Radians(-72), Longitude: Radians(2.5), UTCOffset: 0}
	date := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)

	p, err := Compute(date, obs, 0)
	require.NoError(t, err)

	assert.True(t, p.Problematic)
	assert.Equal(t, -Radians(45), p.Latitude)
}

func TestCompute_ShortNightTriggersRecompute(t *testing.T) {
	// Just south of the Arctic Circle at the June solstice the sun dips below
	// the horizon for under an hour.
	obs := Observer{Latitude: Radians(65.6), Longitude: Radians(14.1), UTCOffset: 1}
	date := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)

	base, ok := ComputeAt(date, obs, obs.Latitude, 1)
	p, err := Compute(date, obs, 1)
	require.NoError(t, err)

	if ok {
		assert.LessOrEqual(t, base.NightLength(), 1.0)
	}
	assert.True(t, p.Problematic)
}

func TestCompute_NoonWrapped(t *testing.T) {
	// A longitude far from its zone meridian pushes transit before midnight.
	obs := Observer{Latitude: Radians(10), Longitude: Radians(-179), UTCOffset: 12}
	p, err := Compute(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), obs, 0)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, p.Noon, 0.0)
	assert.Less(t, p.Noon, 24.0)
}

func TestCompute_DegenerateLatitude(t *testing.T) {
	date := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)
	for _, lat := range []float64{math.Pi / 2, -math.Pi / 2, 2, math.NaN(), math.Inf(1)} {
		_, err := Compute(date, Observer{Latitude: lat}, 0)
		assert.ErrorIs(t, err, ErrDegenerateLocation, "lat=%v", lat)
	}
}

func TestComputeAt_ClampsOutOfRangeHourAngle(t *testing.T) {
	obs := Observer{Latitude: Radians(80), UTCOffset: 0}
	p, ok := ComputeAt(time.Date(2024, time.December, 21, 0, 0, 0, 0, time.UTC), obs, obs.Latitude, 0)

	assert.False(t, ok)
	assert.Equal(t, p.Noon, p.Sunrise)
	assert.Equal(t, p.Noon, p.Sunset)
	assert.Equal(t, 24.0, p.NightLength())
}

func TestHeightCorrectionNeeded(t *testing.T) {
	tests := []struct {
		name       string
		success    bool
		lat        float64
		west, east float64
		want       bool
	}{
		{"eligible east", true, Radians(30), 0, 50, true},
		{"eligible west", true, Radians(-30), 80, 0, true},
		{"no heights", true, Radians(30), 0, 0, false},
		{"latitude at limit", true, Radians(45), 10, 10, false},
		{"failed computation", false, Radians(30), 10, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HeightCorrectionNeeded(tt.success, tt.lat, tt.west, tt.east))
		})
	}
}

func TestCorrectHeight(t *testing.T) {
	cairo := Observer{Latitude: Radians(30.0444), Longitude: Radians(31.2357), UTCOffset: 2}
	date := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
	p, ok := ComputeAt(date, cairo, cairo.Latitude, 0)
	require.True(t, ok)

	zero := CorrectHeight(p.SinDeclination(), p.CosDeclination(), 0, 0)
	assert.InDelta(t, 0, zero.East, 1e-12)
	assert.InDelta(t, 0, zero.West, 1e-12)

	hc := CorrectHeight(p.SinDeclination(), p.CosDeclination(), 0, 120)
	assert.Greater(t, hc.East, 0.0)
	assert.InDelta(t, 0, hc.West, 1e-12)
	// A 120 m obstruction shifts the horizon by well under an hour.
	assert.Less(t, hc.East, 0.5)

	cairo.HeightEast = 120
	withHeight, err := Compute(date, cairo, 0)
	require.NoError(t, err)
	assert.InDelta(t, hc.East, withHeight.Height.East, 1e-12)
}
