package astro

import "math"

// Named constants of the solar model.
const (
	// J2000 is the Julian date of the 2000-01-01 12:00 TT epoch.
	J2000 = 2451545.0

	// DaysPerCentury is the length of a Julian century in days.
	DaysPerCentury = 36525.0

	// AxialTilt is the fixed obliquity (degrees) used for ecliptic to
	// equatorial conversion.
	AxialTilt = 23.439281

	// HourRatio converts an hour angle in radians to hours.
	HourRatio = 12 / math.Pi

	// KeplerTolerance is the convergence bound of the eccentric anomaly solve.
	KeplerTolerance = 1e-9

	// MaxKeplerIterations caps the Newton-Raphson loop.
	MaxKeplerIterations = 50
)

// SunriseArcAngle is the solar elevation (radians) at which the upper limb
// touches the horizon: -5/6 of a degree.
var SunriseArcAngle = Radians(-5.0 / 6.0)

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// CenturiesSince2000 returns the Julian centuries elapsed since J2000 at
// jd + tz hours.
func CenturiesSince2000(jd, tz float64) float64 {
	return (jd + tz/24.0 - J2000) / DaysPerCentury
}

// SunMeanLongitude returns the sun's mean longitude in radians, normalised
// into [0, 2π).
func SunMeanLongitude(t float64) float64 {
	l := 279.6966778 + 36000.76892*t + 0.0003025*t*t
	return normalizedRadians(l)
}

// SunMeanAnomaly returns the sun's mean anomaly in radians, normalised into
// [0, 2π).
func SunMeanAnomaly(t float64) float64 {
	m := 358.47583 + 35999.04975*t - 15e-5*t*t - 33e-7*t*t*t
	return normalizedRadians(m)
}

// EarthEccentricity returns the eccentricity of the Earth's orbit.
func EarthEccentricity(t float64) float64 {
	return 0.01675104 - 418e-7*t - 126e-9*t*t
}

// EclipticObliquity returns the obliquity of the ecliptic in radians.
func EclipticObliquity(t float64) float64 {
	ec := 23.452294 - 0.0130125*t - 164e-8*t*t + 503e-9*t*t*t
	return Radians(ec)
}

// ObliquityTerm returns tan²(ε/2), the y term of the equation of time.
func ObliquityTerm(obliquity float64) float64 {
	y := math.Tan(obliquity * 0.5)
	return y * y
}

// EquationOfTime returns the equation of time in radians.
func EquationOfTime(y, l, m, e float64) float64 {
	return y*math.Sin(2*l) -
		2*e*math.Sin(m) +
		4*e*y*math.Sin(m)*math.Cos(2*l) -
		0.5*y*y*math.Sin(4*l) -
		1.25*e*e*math.Sin(2*m)
}

// EquationOfTimeHours converts the equation of time from radians to hours.
func EquationOfTimeHours(eot float64) float64 {
	return Degrees(eot / 15)
}

// EccentricAnomaly solves Kepler's equation M = E - e·sin(E) by Newton-Raphson.
// The loop stops once the residual is below KeplerTolerance or after
// MaxKeplerIterations steps, whichever comes first.
func EccentricAnomaly(m, e float64) float64 {
	ea := m
	for i := 0; i < MaxKeplerIterations; i++ {
		dt := ea - e*math.Sin(ea) - m
		if math.Abs(dt) <= KeplerTolerance {
			break
		}
		ea -= dt / (1 - e*math.Cos(ea))
	}
	return ea
}

// TrueAnomaly returns the true anomaly for eccentric anomaly ea using the
// half-angle formula.
func TrueAnomaly(e, ea float64) float64 {
	x := math.Sqrt((1 + e) / (1 - e))
	return 2 * math.Atan(x*math.Tan(0.5*ea))
}

// EclipticLongitude returns the sun's apparent ecliptic longitude L + v - M.
func EclipticLongitude(l, v, m float64) float64 {
	return l + v - m
}

// EquatorialCoordinates converts ecliptic latitude beta and longitude lambda
// into declination and right ascension. Right ascension is in [0, 2π).
func EquatorialCoordinates(beta, lambda float64) (decl, ra float64) {
	eps := Radians(AxialTilt)

	sinDelta := math.Sin(beta)*math.Cos(eps) + math.Cos(beta)*math.Sin(eps)*math.Sin(lambda)
	decl = math.Asin(sinDelta)

	y := math.Sin(lambda)*math.Cos(eps) - math.Tan(beta)*math.Sin(eps)
	x := math.Cos(lambda)
	ra = math.Atan2(y, x)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	return decl, ra
}

// NoonTime returns the local time of solar transit in fractional hours.
// observerLongitude is the negated geographic longitude in radians and tz the
// negated total UTC offset in hours.
func NoonTime(observerLongitude, eotHours, tz float64) float64 {
	return 12 - eotHours - tz + observerLongitude*HourRatio
}

// CosHourAngle returns the cosine of the sunrise/sunset hour angle. Values
// outside [-1, 1] mean the sun does not cross the horizon that day.
func CosHourAngle(lat, decl float64) float64 {
	num := math.Sin(SunriseArcAngle) - math.Sin(decl)*math.Sin(lat)
	den := math.Cos(decl) * math.Cos(lat)
	return num / den
}

// CosHourAngleAt returns the cosine of the hour angle at which the sun reaches
// the given elevation, with sinDecl = sin(δ)·sin(φ) and cosDecl = cos(δ)·cos(φ).
func CosHourAngleAt(elevation, sinDecl, cosDecl float64) float64 {
	return (math.Sin(elevation) - sinDecl) / cosDecl
}

// HourAngle converts a cosine hour angle into hours. Inputs outside [-1, 1]
// are clamped so the result is always finite.
func HourAngle(cH float64) float64 {
	return math.Acos(clampUnit(cH)) * HourRatio
}

func clampUnit(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}

func normalizedRadians(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return Radians(deg)
}
