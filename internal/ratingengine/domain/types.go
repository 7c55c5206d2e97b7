// Package domain holds the value objects and the mutable ModelState
// the rest of ratingengine operates on: players, interaction ledgers,
// matches, and the feedback shapes the host distills from raw surveys.
package domain

// Segment is one continuous block of play within a match.
type Segment struct {
	GoalsA       int
	GoalsB       int
	SegmentIndex int
	IsButtGame   bool
}

// Team identifies which side a MatchEvent belongs to.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// EventType enumerates the MatchEvent kinds the engine scores.
type EventType string

const (
	EventGoal   EventType = "goal"
	EventAssist EventType = "assist"
)

// MatchEvent is one in-match goal or assist, attributed to a player,
// team, and segment.
type MatchEvent struct {
	Player       string
	Team         Team
	EventType    EventType
	SegmentIndex int
}

// Match is the immutable value the host assembles from persisted
// segments/events/lineups for one Update call.
type Match struct {
	Venue    string
	TeamA    []string
	TeamB    []string
	Segments []Segment
	Events   []MatchEvent
	Guests   map[string]bool
}

// Participants returns team_a ++ team_b, preserving order.
func (m Match) Participants() []string {
	out := make([]string, 0, len(m.TeamA)+len(m.TeamB))
	out = append(out, m.TeamA...)
	out = append(out, m.TeamB...)
	return out
}

// IsGuest reports whether id is flagged a guest for this match.
func (m Match) IsGuest(id string) bool {
	return m.Guests != nil && m.Guests[id]
}

// AnchorVote tallies a player's MVP and brought-down-the-team votes.
type AnchorVote struct {
	MVP          int
	BroughtDown  int
}

// PairwiseComparison is one peer verdict: stronger outranked weaker.
type PairwiseComparison struct {
	Stronger string
	Weaker   string
}

// FanResponse is one fan polarity vote, optionally tagged with the
// interaction it bears on.
type FanResponse struct {
	Player          string
	Polarity        int // +1 or -1
	InteractionType string // "", "synergy", "domination", "role", "guest_peer"
	RelatedPlayer   string
	Role            string
}

// SynergyFeedback is an explicit peer-reported synergy observation.
type SynergyFeedback struct {
	PlayerA string
	PlayerB string
	Value   float64
}

// DominationFeedback is an explicit peer-reported domination observation.
type DominationFeedback struct {
	Dominator string
	Dominated string
	Value     float64
}

// RoleFeedback is an explicit peer-reported role impression.
type RoleFeedback struct {
	Player string
	Role   string
	Weight float64
}

// QuickFeedback is the lightweight post-match survey: anchor votes,
// pairwise comparisons, and fan polarities.
type QuickFeedback struct {
	Anchors       map[string]AnchorVote
	Pairwise      []PairwiseComparison
	FanResponses  []FanResponse
}

// ExpandedFeedback is the richer survey: fan polarities plus explicit
// synergy/domination/role observations.
type ExpandedFeedback struct {
	FanResponses  []FanResponse
	Synergies     []SynergyFeedback
	Dominations   []DominationFeedback
	RoleImpressions []RoleFeedback
}
