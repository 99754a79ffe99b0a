package astro

import "math"

// EarthRadius is the equatorial radius of the Earth in metres.
const EarthRadius = 6378137.0

// HeightCorrectionMaxLatitude is the latitude (radians) at or above which
// horizon height correction is never applied.
var HeightCorrectionMaxLatitude = Radians(45)

// HeightCorrection holds the sunrise/sunset shift, in fractional hours,
// caused by terrain obstructing the eastern and western horizon.
type HeightCorrection struct {
	East float64
	West float64
}

// HeightCorrectionNeeded reports whether a correction should be computed for
// a day whose base solar computation succeeded at the given latitude.
func HeightCorrectionNeeded(success bool, lat, west, east float64) bool {
	return success && math.Abs(lat) < HeightCorrectionMaxLatitude && (west != 0 || east != 0)
}

// CorrectHeight computes the horizon height correction for the western and
// eastern horizon heights (metres above the observer).
// sinDecl is sin(δ)·sin(φ) and cosDecl is cos(δ)·cos(φ).
func CorrectHeight(sinDecl, cosDecl, west, east float64) HeightCorrection {
	initial := hourAngleRadians(SunriseArcAngle, sinDecl, cosDecl)
	return HeightCorrection{
		West: (initial - hourAngleRadians(horizonAngle(west), sinDecl, cosDecl)) * HourRatio,
		East: (initial - hourAngleRadians(horizonAngle(east), sinDecl, cosDecl)) * HourRatio,
	}
}

// horizonAngle returns the solar elevation at which the sun clears an
// obstruction of the given height.
func horizonAngle(height float64) float64 {
	dip := math.Asin(EarthRadius / (EarthRadius + height))
	return SunriseArcAngle + (0.5*math.Pi - dip)
}

func hourAngleRadians(angle, sinDecl, cosDecl float64) float64 {
	return math.Acos(clampUnit(CosHourAngleAt(angle, sinDecl, cosDecl)))
}
