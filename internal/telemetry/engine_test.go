package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/config"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"
	"github.com/pajvel/webfut-ratingengine/internal/telemetry/latency"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestInstrumentedEngineUpdateRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetricsRegistry(reg)
	engine := NewInstrumentedEngine(metrics)

	cfg := config.DefaultConfig()
	model := domain.NewModelState()
	match := domain.Match{
		Venue:    "courtA",
		TeamA:    []string{"alice", "bob"},
		TeamB:    []string{"carl", "dave"},
		Segments: []domain.Segment{{GoalsA: 10, GoalsB: 0, SegmentIndex: 0}},
	}

	deltas, _ := engine.Update(model, cfg, match, nil, nil)
	require.Len(t, deltas, 4)
	require.Equal(t, 1.0, counterValue(t, metrics.UpdatesTotal.WithLabelValues("courtA")))
	require.Equal(t, 4.0, counterValue(t, metrics.CapBindsTotal), "a 10-goal blowout clamps every player's delta to the cap")

	stages := engine.StageMetrics()
	require.Equal(t, 1, stages[latency.StageUpdate].Count)
}

func TestInstrumentedEngineGenerateTeamsRecordsSplitCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetricsRegistry(reg)
	engine := NewInstrumentedEngine(metrics)

	cfg := config.DefaultConfig()
	model := domain.NewModelState()
	for _, id := range []string{"alice", "bob", "carl", "dave"} {
		model.EnsurePlayer(id, "courtA", 1000, false)
	}

	splits := engine.GenerateTeams(model, cfg, []string{"alice", "bob", "carl", "dave"}, "courtA", 3)
	require.NotEmpty(t, splits)
}
