package ratingengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMatchRejectsOverlappingTeams(t *testing.T) {
	m := Match{
		Venue: "courtA",
		TeamA: []string{"alice", "bob"},
		TeamB: []string{"bob", "carl"},
	}
	err := ValidateMatch(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bob")
}

func TestValidateMatchRejectsEmptyVenue(t *testing.T) {
	m := Match{TeamA: []string{"alice"}, TeamB: []string{"bob"}}
	require.Error(t, ValidateMatch(m))
}

func TestValidateMatchRejectsOutOfRangeSegmentIndex(t *testing.T) {
	m := Match{
		Venue:    "courtA",
		TeamA:    []string{"alice"},
		TeamB:    []string{"bob"},
		Segments: []Segment{{GoalsA: 1, SegmentIndex: 0}},
		Events:   []MatchEvent{{Player: "alice", Team: TeamA, EventType: EventGoal, SegmentIndex: 5}},
	}
	require.Error(t, ValidateMatch(m))
}

func TestValidateMatchRejectsEventTeamMismatch(t *testing.T) {
	m := Match{
		Venue:    "courtA",
		TeamA:    []string{"alice"},
		TeamB:    []string{"bob"},
		Segments: []Segment{{GoalsA: 1, SegmentIndex: 0}},
		Events:   []MatchEvent{{Player: "bob", Team: TeamA, EventType: EventGoal, SegmentIndex: 0}},
	}
	require.Error(t, ValidateMatch(m))
}

func TestValidateMatchAcceptsWellFormedMatch(t *testing.T) {
	m := Match{
		Venue:    "courtA",
		TeamA:    []string{"alice"},
		TeamB:    []string{"bob"},
		Segments: []Segment{{GoalsA: 1, SegmentIndex: 0}},
		Events:   []MatchEvent{{Player: "alice", Team: TeamA, EventType: EventGoal, SegmentIndex: 0}},
	}
	assert.NoError(t, ValidateMatch(m))
}

func TestUpdateAndEncodeDecodeRoundTripThroughFacade(t *testing.T) {
	model := NewModelState()
	cfg := DefaultConfig()
	match := Match{
		Venue:    "courtA",
		TeamA:    []string{"alice", "bob"},
		TeamB:    []string{"carl", "dave"},
		Segments: []Segment{{GoalsA: 2, GoalsB: 0, SegmentIndex: 0}},
	}

	deltas, breakdown := Update(model, cfg, match, nil, nil)
	assert.Equal(t, 60.0, deltas["alice"])
	assert.Equal(t, 60.0, breakdown["alice"].ResultDelta)

	blob, err := EncodeState(model)
	require.NoError(t, err)
	decoded, err := DecodeState(blob)
	require.NoError(t, err)
	assert.Equal(t, model.Players["alice"].GlobalRating, decoded.Players["alice"].GlobalRating)

	splits := GenerateTeams(model, cfg, match.Participants(), "courtA", 3)
	require.NotEmpty(t, splits)

	split := EvaluateSplit(model, cfg, splits[0].TeamA, splits[0].TeamB, "courtA")
	assert.Equal(t, splits[0].Score, split.Score)

	swaps := SuggestQuickSwaps(model, cfg, splits[0], splits[1:], "courtA", 3)
	for _, sw := range swaps {
		assert.NotEqual(t, splits[0].TeamA, sw.TeamA)
	}
}
