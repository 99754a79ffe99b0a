// Package metrics exports the prayer schedule for a location as Prometheus
// gauges.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/salat/internal/prayer"
)

const namespace = "salat"

// Exporter refreshes a set of gauges from a prayer.Strategy.
type Exporter struct {
	strategy prayer.Strategy
	location prayer.GeoLocation
	events   []prayer.Event
	log      zerolog.Logger
	now      func() time.Time
	registry *prometheus.Registry

	prayerTime   *prometheus.GaugeVec
	nextPrayer   *prometheus.GaugeVec
	problematic  prometheus.Gauge
	dstOffset    prometheus.Gauge
	lastUpdate   prometheus.Gauge
	updateErrors prometheus.Counter
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithEvents limits the exported prayers. All events are exported by default.
func WithEvents(events []prayer.Event) Option {
	return func(e *Exporter) { e.events = events }
}

// WithLogger sets the logger used for refresh failures.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Exporter) { e.log = l }
}

// WithClock sets the time source used by Run. The calendar day of its result
// selects the schedule, so it should read in the location's zone.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// New creates an Exporter with its own registry.
func New(s prayer.Strategy, loc prayer.GeoLocation, opts ...Option) *Exporter {
	e := &Exporter{
		strategy: s,
		location: loc,
		events:   prayer.Events(),
		log:      zerolog.Nop(),
		now:      time.Now,
		registry: prometheus.NewRegistry(),

		prayerTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "prayer_time_seconds",
			Help:      "today's prayer time as Unix timestamp",
		}, []string{"prayer"}),
		nextPrayer: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "next_prayer_seconds",
			Help:      "seconds until the next prayer",
		}, []string{"prayer"}),
		problematic: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "location_problematic",
			Help:      "1 if today's times were computed at the reference latitude",
		}),
		dstOffset: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dst_offset_hours",
			Help:      "daylight saving offset applied to today's schedule",
		}),
		lastUpdate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_update_seconds",
			Help:      "time of the last successful refresh as Unix timestamp",
		}),
		updateErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "update_errors_total",
			Help:      "number of failed schedule refreshes",
		}),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.registry.MustRegister(
		e.prayerTime,
		e.nextPrayer,
		e.problematic,
		e.dstOffset,
		e.lastUpdate,
		e.updateErrors,
	)
	return e
}

// Registry returns the registry holding the exporter's metrics.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Handler serves the exporter's metrics.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Update recalculates the schedule for now and sets every gauge.
func (e *Exporter) Update(now time.Time) error {
	var schedule prayer.Schedule
	if d, ok := e.strategy.(prayer.Diagnoser); ok {
		diag, err := d.Compute(e.location, now)
		if err != nil {
			e.updateErrors.Inc()
			return err
		}
		schedule = diag.Schedule
		e.problematic.Set(boolToFloat(diag.Today.Position.Problematic))
		e.dstOffset.Set(float64(diag.DST))
	} else {
		s, err := e.strategy.Calculate(e.location, now)
		if err != nil {
			e.updateErrors.Inc()
			return err
		}
		schedule = s
	}

	for _, p := range schedule.Prayers(e.events) {
		e.prayerTime.WithLabelValues(p.Name()).Set(float64(p.Time.Unix()))
	}

	next, err := prayer.Upcoming(e.strategy, e.location, now, e.events)
	if err != nil {
		e.updateErrors.Inc()
		return err
	}
	e.nextPrayer.Reset()
	if next != nil {
		e.nextPrayer.WithLabelValues(next.Name()).Set(prayer.TimeRemaining(*next, now).Seconds())
	}

	e.lastUpdate.Set(float64(now.Unix()))
	return nil
}

// Run refreshes the gauges every interval until ctx is cancelled. Failed
// refreshes are logged and retried on the next tick.
func (e *Exporter) Run(ctx context.Context, interval time.Duration) {
	refresh := func() {
		if err := e.Update(e.now()); err != nil {
			e.log.Warn().Err(err).Msg("schedule refresh failed")
			return
		}
		e.log.Debug().Str("location", e.location.String()).Msg("schedule refreshed")
	}

	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
