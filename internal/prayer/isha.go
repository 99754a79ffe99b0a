package prayer

import (
	"math"

	"github.com/smokyabdulrahman/salat/internal/astro"
)

// Rule names how a twilight time was derived.
type Rule string

const (
	RuleAngle    Rule = "angle"
	RuleRatio    Rule = "ratio"
	RuleInterval Rule = "interval"
)

// IshaVariants holds both high-latitude Isha candidates in fractional hours.
// Local is the value used in the schedule. Reference switches to the ratio
// only once the twilight angle is never reached at all.
type IshaVariants struct {
	Local         float64
	LocalRule     Rule
	Reference     float64
	ReferenceRule Rule
}

type ishaInput struct {
	conv     Convention
	latitude float64
	pos      astro.Position
	maghrib  float64
	ratios   Ratios
}

// resolveIsha computes the Isha time from today's solar position.
func resolveIsha(in ishaInput) IshaVariants {
	if in.conv.IshaAngle == 0 {
		t := in.maghrib + float64(in.conv.IshaInterval)/60
		return IshaVariants{Local: t, LocalRule: RuleInterval, Reference: t, ReferenceRule: RuleInterval}
	}

	pos := in.pos
	angle := astro.Radians(in.conv.IshaAngle)
	cH, h := hourAngleFor(-angle, pos)
	direct := pos.Noon + h + pos.Height.West + SafetyMargin

	if math.Abs(in.latitude) < TwilightMaxLatitude {
		return IshaVariants{Local: direct, LocalRule: RuleAngle, Reference: direct, ReferenceRule: RuleAngle}
	}

	byRatio := pos.Sunset + pos.NightLength()*in.ratios.Isha
	v := IshaVariants{Local: direct, LocalRule: RuleAngle, Reference: direct, ReferenceRule: RuleAngle}
	if math.Abs(cH) > ratioThreshold(angle) {
		v.Local, v.LocalRule = byRatio, RuleRatio
	}
	if math.Abs(cH) > 1 {
		v.Reference, v.ReferenceRule = byRatio, RuleRatio
	}
	return v
}
