package telemetry

import (
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/config"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/learning"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/teamgen"
	"github.com/pajvel/webfut-ratingengine/internal/telemetry/latency"
)

// InstrumentedEngine wraps the core learning/teamgen entry points with
// the metrics a host process exports to Prometheus, plus an in-process
// rolling percentile tracker a host can read directly (a "stats"
// endpoint or CLI subcommand) without a scrape round trip.
type InstrumentedEngine struct {
	metrics *MetricsRegistry
	stages  *latency.StageTracker
}

// NewInstrumentedEngine builds an engine reporting to metrics.
func NewInstrumentedEngine(metrics *MetricsRegistry) *InstrumentedEngine {
	return &InstrumentedEngine{metrics: metrics, stages: latency.NewStageTracker()}
}

// StageMetrics returns the current rolling p50/p95/p99 summary for
// every tracked pipeline stage.
func (e *InstrumentedEngine) StageMetrics() map[latency.StageType]latency.StageMetrics {
	return e.stages.AllMetrics()
}

// Update runs learning.Update, timing the call and recording how many
// of the resulting deltas were bound by the absolute rating cap.
func (e *InstrumentedEngine) Update(model *domain.ModelState, cfg *config.Config, match domain.Match, quick *domain.QuickFeedback, expanded *domain.ExpandedFeedback) (map[string]float64, map[string]learning.Breakdown) {
	timer := e.metrics.StartUpdateTimer(match.Venue)
	stageTimer := e.stages.StartTimer(latency.StageUpdate)
	deltas, breakdown := learning.Update(model, cfg, match, quick, expanded)
	stageTimer.Stop()
	timer.Stop()

	capped := 0
	for _, b := range breakdown {
		if b.FinalDelta == b.Cap || b.FinalDelta == -b.Cap {
			capped++
		}
	}
	e.metrics.RecordUpdate(match.Venue, capped)
	e.metrics.SetActivePlayers(len(model.Players))

	return deltas, breakdown
}

// GenerateTeams runs teamgen.GenerateTeams, timing the call and
// recording how many diverse splits it returned.
func (e *InstrumentedEngine) GenerateTeams(model *domain.ModelState, cfg *config.Config, participants []string, venue string, topN int) []teamgen.Split {
	timer := e.metrics.StartTeamgenTimer(venue)
	stageTimer := e.stages.StartTimer(latency.StageTeamgen)
	splits := teamgen.GenerateTeams(model, cfg, participants, venue, topN)
	stageTimer.Stop()
	timer.Stop()

	e.metrics.RecordTeamgen(len(splits))
	return splits
}
