// Package ratingengine is the rating and team-formation engine behind
// a small-sided football (futsal) match app: a stateful model that
// ingests match outcomes and optional peer feedback, updates player
// ratings and pairwise interaction matrices, and emits balanced team
// splits for an upcoming match.
//
// The package is a thin façade over internal/ratingengine/*; it exists
// so callers depend on one import path instead of reaching into every
// sub-package directly.
package ratingengine

import (
	"fmt"

	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/codec"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/config"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/learning"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/teamgen"
)

// Re-exported value types so callers never need to import the
// internal/ratingengine/domain package directly.
type (
	Segment            = domain.Segment
	MatchEvent         = domain.MatchEvent
	Match              = domain.Match
	AnchorVote         = domain.AnchorVote
	PairwiseComparison = domain.PairwiseComparison
	FanResponse        = domain.FanResponse
	SynergyFeedback    = domain.SynergyFeedback
	DominationFeedback = domain.DominationFeedback
	RoleFeedback       = domain.RoleFeedback
	QuickFeedback      = domain.QuickFeedback
	ExpandedFeedback   = domain.ExpandedFeedback
	PlayerState        = domain.PlayerState
	ModelState         = domain.ModelState
	Config             = config.Config
	Breakdown          = learning.Breakdown
	Split              = teamgen.Split
	Swap               = teamgen.Swap
)

const (
	TeamA = domain.TeamA
	TeamB = domain.TeamB

	EventGoal   = domain.EventGoal
	EventAssist = domain.EventAssist

	GlobalVenue = domain.GlobalVenue
)

// DefaultConfig returns the literal tuning defaults from the specification.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// NewModelState returns an empty ModelState, ready for its first Update.
func NewModelState() *ModelState {
	return domain.NewModelState()
}

// ValidationError reports an invariant violation the host must have
// prevented (spec.md §7). ValidateMatch returns it without touching any
// state; Update does not call ValidateMatch and never returns it.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ratingengine: invalid match: %s", e.Reason)
}

// ValidateMatch checks the ingestion contract from spec.md §6: team_a
// and team_b are disjoint, venue is non-empty, every event's
// segment_index is a valid index into segments, and event.Team is
// consistent with match membership. The engine itself never calls
// this — admission in Update treats malformed input as the host's
// responsibility — but hosts that want a pre-flight check may call it.
func ValidateMatch(m Match) error {
	if m.Venue == "" {
		return &ValidationError{Reason: "venue must not be empty"}
	}
	inA := make(map[string]bool, len(m.TeamA))
	for _, id := range m.TeamA {
		inA[id] = true
	}
	for _, id := range m.TeamB {
		if inA[id] {
			return &ValidationError{Reason: fmt.Sprintf("player %q appears on both teams", id)}
		}
	}
	inB := make(map[string]bool, len(m.TeamB))
	for _, id := range m.TeamB {
		inB[id] = true
	}
	for _, ev := range m.Events {
		if ev.SegmentIndex < 0 || ev.SegmentIndex >= len(m.Segments) {
			return &ValidationError{Reason: fmt.Sprintf("event for %q has out-of-range segment_index %d", ev.Player, ev.SegmentIndex)}
		}
		switch ev.Team {
		case domain.TeamA:
			if !inA[ev.Player] {
				return &ValidationError{Reason: fmt.Sprintf("event for %q tagged team A but player is not on team A", ev.Player)}
			}
		case domain.TeamB:
			if !inB[ev.Player] {
				return &ValidationError{Reason: fmt.Sprintf("event for %q tagged team B but player is not on team B", ev.Player)}
			}
		default:
			return &ValidationError{Reason: fmt.Sprintf("event for %q has unknown team %q", ev.Player, ev.Team)}
		}
	}
	return nil
}

// Update runs the central learning recurrence (spec.md §4.6): given a
// Match and optional feedback, it mutates model in place and returns
// per-player rating deltas plus the per-component breakdown.
func Update(model *ModelState, cfg *Config, match Match, quick *QuickFeedback, expanded *ExpandedFeedback) (map[string]float64, map[string]Breakdown) {
	return learning.Update(model, cfg, match, quick, expanded)
}

// UpdateDeltasOnly runs Update and returns only the rating deltas.
func UpdateDeltasOnly(model *ModelState, cfg *Config, match Match, quick *QuickFeedback, expanded *ExpandedFeedback) map[string]float64 {
	return learning.UpdateDeltasOnly(model, cfg, match, quick, expanded)
}

// GenerateTeams enumerates candidate splits for participants at venue
// and returns a diverse top-N ranked by balance (spec.md §4.7).
func GenerateTeams(model *ModelState, cfg *Config, participants []string, venue string, topN int) []Split {
	return teamgen.GenerateTeams(model, cfg, participants, venue, topN)
}

// EvaluateSplit scores one fully-formed split.
func EvaluateSplit(model *ModelState, cfg *Config, teamA, teamB []string, venue string) Split {
	return teamgen.EvaluateSplit(model, cfg, teamA, teamB, venue)
}

// SuggestQuickSwaps enumerates single-person A<->B exchanges away from
// baseSplit and returns the top-N by score improvement.
func SuggestQuickSwaps(model *ModelState, cfg *Config, baseSplit Split, otherSplits []Split, venue string, topN int) []Swap {
	return teamgen.SuggestQuickSwaps(model, cfg, baseSplit, otherSplits, venue, topN)
}

// EncodeState serializes a ModelState to an opaque byte blob.
func EncodeState(model *ModelState) ([]byte, error) {
	return codec.Encode(model)
}

// DecodeState deserializes a blob produced by EncodeState.
func DecodeState(blob []byte) (*ModelState, error) {
	return codec.Decode(blob)
}
