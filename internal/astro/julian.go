// Package astro implements the low-precision solar position model used to
// derive prayer times: Julian epochs, the mean-orbit formulae, horizon height
// correction and the sunrise/noon/sunset computation for a single day.
package astro

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// JulianEpoch returns the Julian date of the midnight (UT) that starts the
// given Gregorian calendar day. The value always ends in .5.
func JulianEpoch(year int, month time.Month, day int) float64 {
	return julian.CalendarGregorianToJD(year, int(month), float64(day))
}
