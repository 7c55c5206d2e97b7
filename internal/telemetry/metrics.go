// Package telemetry instruments the rating engine's two read/write
// hot paths — Update and GenerateTeams — with Prometheus metrics.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRegistry holds every Prometheus collector the engine reports.
type MetricsRegistry struct {
	UpdateDuration   *prometheus.HistogramVec
	UpdatesTotal     *prometheus.CounterVec
	TeamgenDuration  *prometheus.HistogramVec
	TeamgenCandidates prometheus.Histogram
	ActivePlayers    prometheus.Gauge
	CapBindsTotal    prometheus.Counter
}

// NewMetricsRegistry builds and registers the rating engine's metrics
// against reg. Pass prometheus.NewRegistry() in tests to avoid
// colliding with the global default registry across test runs.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	registry := &MetricsRegistry{
		UpdateDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ratingengine_update_duration_seconds",
				Help:    "Duration of one learning.Update call",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"venue"},
		),
		UpdatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ratingengine_updates_total",
				Help: "Total number of completed rating updates by venue",
			},
			[]string{"venue"},
		),
		TeamgenDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ratingengine_teamgen_duration_seconds",
				Help:    "Duration of one teamgen.GenerateTeams call",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"venue"},
		),
		TeamgenCandidates: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ratingengine_teamgen_splits_returned",
				Help:    "Number of diverse splits returned per GenerateTeams call",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
			},
		),
		ActivePlayers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ratingengine_active_players",
				Help: "Number of distinct players currently tracked in the model",
			},
		),
		CapBindsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ratingengine_cap_binds_total",
				Help: "Total number of player deltas clamped by the absolute rating cap",
			},
		),
	}

	reg.MustRegister(
		registry.UpdateDuration,
		registry.UpdatesTotal,
		registry.TeamgenDuration,
		registry.TeamgenCandidates,
		registry.ActivePlayers,
		registry.CapBindsTotal,
	)

	return registry
}

// StepTimer times one instrumented call and records it on Stop.
type StepTimer struct {
	hist  *prometheus.HistogramVec
	venue string
	start time.Time
}

func (m *MetricsRegistry) startTimer(hist *prometheus.HistogramVec, venue string) *StepTimer {
	return &StepTimer{hist: hist, venue: venue, start: time.Now()}
}

// Stop records the elapsed duration against the timer's histogram.
func (st *StepTimer) Stop() {
	st.hist.WithLabelValues(st.venue).Observe(time.Since(st.start).Seconds())
}

// StartUpdateTimer begins timing an Update call for venue.
func (m *MetricsRegistry) StartUpdateTimer(venue string) *StepTimer {
	return m.startTimer(m.UpdateDuration, venue)
}

// StartTeamgenTimer begins timing a GenerateTeams call for venue.
func (m *MetricsRegistry) StartTeamgenTimer(venue string) *StepTimer {
	return m.startTimer(m.TeamgenDuration, venue)
}

// RecordUpdate increments the per-venue update counter and, for every
// player whose final delta was clamped to exactly +/-cap, the cap-bind
// counter.
func (m *MetricsRegistry) RecordUpdate(venue string, cappedCount int) {
	m.UpdatesTotal.WithLabelValues(venue).Inc()
	m.CapBindsTotal.Add(float64(cappedCount))
}

// RecordTeamgen records how many splits GenerateTeams returned after
// diversity selection.
func (m *MetricsRegistry) RecordTeamgen(splitsReturned int) {
	m.TeamgenCandidates.Observe(float64(splitsReturned))
}

// SetActivePlayers reports the current size of the tracked player pool.
func (m *MetricsRegistry) SetActivePlayers(n int) {
	m.ActivePlayers.Set(float64(n))
}
