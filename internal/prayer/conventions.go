package prayer

import (
	"fmt"
	"sort"
	"strings"
)

// Convention is a named set of twilight angles used for Fajr and Isha.
type Convention struct {
	Name        string
	Description string
	// FajrAngle and IshaAngle are solar depressions in degrees.
	FajrAngle float64
	IshaAngle float64
	// IshaInterval is the minutes after Maghrib used for Isha when IshaAngle
	// is zero.
	IshaInterval int
}

// Built-in conventions.
var (
	ISNA = Convention{
		Name:        "isna",
		Description: "Islamic Society of North America",
		FajrAngle:   15,
		IshaAngle:   15,
	}
	MWL = Convention{
		Name:        "mwl",
		Description: "Muslim World League",
		FajrAngle:   18,
		IshaAngle:   17,
	}
	Egypt = Convention{
		Name:        "egypt",
		Description: "Egyptian General Authority of Survey",
		FajrAngle:   19.5,
		IshaAngle:   17.5,
	}
	Karachi = Convention{
		Name:        "karachi",
		Description: "University of Islamic Sciences, Karachi",
		FajrAngle:   18,
		IshaAngle:   18,
	}
	Makkah = Convention{
		Name:         "makkah",
		Description:  "Umm Al-Qura University, Makkah",
		FajrAngle:    18.5,
		IshaInterval: 90,
	}
)

var conventions = map[string]Convention{
	ISNA.Name:    ISNA,
	MWL.Name:     MWL,
	Egypt.Name:   Egypt,
	Karachi.Name: Karachi,
	Makkah.Name:  Makkah,
}

// Conventions returns the built-in conventions sorted by name.
func Conventions() []Convention {
	list := make([]Convention, 0, len(conventions))
	for _, c := range conventions {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// ConventionNames returns the names accepted by ParseConvention.
func ConventionNames() []string {
	var names []string
	for _, c := range Conventions() {
		names = append(names, c.Name)
	}
	return names
}

// ParseConvention looks up a built-in convention by name, ignoring case.
func ParseConvention(name string) (Convention, error) {
	c, ok := conventions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Convention{}, fmt.Errorf("unknown method %q (valid: %s)", name, strings.Join(ConventionNames(), ", "))
	}
	return c, nil
}

// School selects the juristic shadow ratio used for Asr.
type School int

const (
	Shafi School = iota
	Hanafi
)

// ShadowRatio returns the shadow length, in object lengths, that starts Asr.
func (s School) ShadowRatio() float64 {
	if s == Hanafi {
		return 2
	}
	return 1
}

func (s School) String() string {
	if s == Hanafi {
		return "hanafi"
	}
	return "shafi"
}

// ParseSchool parses "shafi" or "hanafi", ignoring case.
func ParseSchool(name string) (School, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "shafi", "standard":
		return Shafi, nil
	case "hanafi":
		return Hanafi, nil
	}
	return 0, fmt.Errorf("unknown school %q (valid: shafi, hanafi)", name)
}
