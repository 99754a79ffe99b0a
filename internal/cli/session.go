package cli

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/salat/internal/api"
	"github.com/smokyabdulrahman/salat/internal/cache"
	"github.com/smokyabdulrahman/salat/internal/clock"
	"github.com/smokyabdulrahman/salat/internal/config"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

// Constructors for the network clients. Tests point them at httptest servers.
var (
	newAPIClient = api.NewClient
	newDetector  = geo.NewDetector
)

// locationMode describes how the user specified their location.
type locationMode int

const (
	locationCoords locationMode = iota
	locationCity
	locationAuto
)

// resolvedLocation holds the result of location resolution.
type resolvedLocation struct {
	Mode     locationMode
	Name     string // "City, Country" when known
	Timezone string // IANA name when known
	Geo      prayer.GeoLocation
}

// label returns the name of the location, or its coordinates.
func (l resolvedLocation) label() string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("%.4f, %.4f", l.Geo.LatitudeDegrees(), l.Geo.LongitudeDegrees())
}

// session is everything a schedule command needs, resolved from the merged
// config.
type session struct {
	cfg      *config.Config
	location resolvedLocation
	strategy prayer.Strategy
	dst      clock.DaylightSaving
	events   []prayer.Event
	layout   string
}

func newSession(cfg *config.Config, now time.Time) (*session, error) {
	events, err := cfg.Events()
	if err != nil {
		return nil, fmt.Errorf("invalid prayers list: %w", err)
	}
	dst, err := cfg.DaylightSaving()
	if err != nil {
		return nil, err
	}

	// Cache init failure is non-fatal; we just skip caching.
	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		c = nil
		logger.Warn().Err(err).Msg("cache disabled")
	}

	loc, err := resolveLocation(cfg, c, now)
	if err != nil {
		return nil, err
	}

	strategy, err := newStrategy(cfg, c, dst)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:      cfg,
		location: loc,
		strategy: strategy,
		dst:      dst,
		events:   events,
		layout:   timeLayout(cfg),
	}, nil
}

// localTime returns t on the location's clock, DST included.
func (s *session) localTime(t time.Time) time.Time {
	standard := t.In(s.location.Geo.Zone(0))
	return t.In(s.location.Geo.Zone(s.dst.Offset(standard)))
}

// day returns the prayers selected for the calendar day of date.
func (s *session) day(date time.Time) ([]prayer.Prayer, error) {
	schedule, err := s.strategy.Calculate(s.location.Geo, date)
	if err != nil {
		return nil, err
	}
	return schedule.Prayers(s.events), nil
}

// newStrategy picks the local calculator or the remote service.
func newStrategy(cfg *config.Config, c *cache.Cache, dst clock.DaylightSaving) (prayer.Strategy, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}

	switch cfg.Source {
	case config.SourceLocal, "":
		east, west := cfg.Horizon()
		return prayer.NewCalculator(
			prayer.WithParams(params),
			prayer.WithDaylightSaving(dst),
			prayer.WithHorizon(east, west),
			prayer.WithLogger(logger),
		), nil
	case config.SourceRemote:
		opts := []api.StrategyOption{
			api.WithDaylightSaving(dst),
			api.WithLogger(logger),
		}
		if c != nil {
			opts = append(opts, api.WithCache(c))
		}
		return api.NewStrategy(newAPIClient(), params, opts...), nil
	default:
		return nil, fmt.Errorf("invalid source %q: must be %q or %q", cfg.Source, config.SourceLocal, config.SourceRemote)
	}
}

// resolveLocation determines the effective location based on user flags, config, or auto-detection.
// Priority: coordinates > city > cached geolocation > IP auto-detect.
func resolveLocation(cfg *config.Config, c *cache.Cache, now time.Time) (resolvedLocation, error) {
	switch {
	case cfg.HasCoordinates():
		return newResolvedLocation(locationCoords, cfg, *cfg.Latitude, *cfg.Longitude, "", cityName(cfg.City, cfg.Country), now)

	case cfg.Latitude != nil || cfg.Longitude != nil:
		return resolvedLocation{}, fmt.Errorf("both latitude and longitude are required")

	case cfg.City != "":
		if cfg.Country == "" {
			return resolvedLocation{}, fmt.Errorf("--country is required when using --city")
		}
		place, err := resolveCity(cfg.City, cfg.Country, c, now)
		if err != nil {
			return resolvedLocation{}, err
		}
		return newResolvedLocation(locationCity, cfg, place.Latitude, place.Longitude, place.Timezone, cityName(cfg.City, cfg.Country), now)

	default:
		detected, err := detectLocation(c)
		if err != nil {
			return resolvedLocation{}, fmt.Errorf("no location specified and auto-detection failed: %w", err)
		}
		return newResolvedLocation(locationAuto, cfg, detected.Latitude, detected.Longitude, detected.Timezone, detected.Name(), now)
	}
}

func newResolvedLocation(mode locationMode, cfg *config.Config, lat, lon float64, tz, name string, now time.Time) (resolvedLocation, error) {
	offset, err := standardOffset(cfg, tz, now)
	if err != nil {
		return resolvedLocation{}, err
	}
	g, err := prayer.NewGeoLocation(lat, lon, offset)
	if err != nil {
		return resolvedLocation{}, err
	}
	return resolvedLocation{Mode: mode, Name: name, Timezone: tz, Geo: g}, nil
}

// standardOffset returns the configured UTC offset, or the standard offset
// of tz (the local zone when tz is empty) at now.
func standardOffset(cfg *config.Config, tz string, now time.Time) (float64, error) {
	if cfg.UTCOffset != nil {
		return *cfg.UTCOffset, nil
	}
	zone, err := geo.Location{Timezone: tz}.Zone()
	if err != nil {
		return 0, err
	}
	return prayer.UTCOffsetOf(now, zone), nil
}

// resolveCity looks a city up in the cache, then asks the service.
func resolveCity(city, country string, c *cache.Cache, now time.Time) (*api.Place, error) {
	if c != nil {
		if p := c.LoadPlace(city, country); p != nil {
			return p, nil
		}
	}

	place, err := newAPIClient().ResolveCity(now, city, country)
	if err != nil {
		return nil, err
	}

	if c != nil {
		if err := c.SavePlace(city, country, place); err != nil {
			logger.Warn().Err(err).Msg("could not cache city coordinates")
		}
	}
	return place, nil
}

// detectLocation uses the cached geolocation when fresh, else asks ip-api.com.
func detectLocation(c *cache.Cache) (*geo.Location, error) {
	if c != nil {
		if cached := c.LoadGeo(); cached != nil {
			return cached, nil
		}
	}

	detected, err := newDetector().Detect()
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("location", detected.Name()).Str("timezone", detected.Timezone).Msg("detected location")

	if c != nil {
		if err := c.SaveGeo(detected); err != nil {
			logger.Warn().Err(err).Msg("could not cache detected location")
		}
	}
	return detected, nil
}

func cityName(city, country string) string {
	return geo.Location{City: city, Country: country}.Name()
}
