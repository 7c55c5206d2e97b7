package teamgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/config"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"
)

func seedPlayers(ratings map[string]float64, venue string) *domain.ModelState {
	model := domain.NewModelState()
	for id, r := range ratings {
		model.Players[id] = &domain.PlayerState{
			ID:             id,
			GlobalRating:   r,
			VenueRatings:   map[string]float64{venue: r},
			RoleTendencies: map[string]float64{},
		}
	}
	return model
}

func TestGenerateTeamsPinsLexicographicallyFirstIDIntoTeamA(t *testing.T) {
	cfg := config.DefaultConfig()
	model := seedPlayers(map[string]float64{
		"alice": 1000, "bob": 1050, "carl": 980, "dave": 1020,
	}, "courtA")

	splits := GenerateTeams(model, cfg, []string{"dave", "carl", "bob", "alice"}, "courtA", 4)
	require.NotEmpty(t, splits)
	for _, s := range splits {
		assert.Contains(t, s.TeamA, "alice", "the lexicographically-first id must always anchor team A")
	}
}

func TestGenerateTeamsNoDuplicateUnorderedSplits(t *testing.T) {
	cfg := config.DefaultConfig()
	model := seedPlayers(map[string]float64{
		"alice": 1000, "bob": 1050, "carl": 980, "dave": 1020, "erin": 990, "finn": 1010,
	}, "courtA")

	splits := GenerateTeams(model, cfg, []string{"alice", "bob", "carl", "dave", "erin", "finn"}, "courtA", 10)
	seen := map[string]bool{}
	for _, s := range splits {
		a, b := normalizeSplit(s.TeamA, s.TeamB)
		key := a + "|" + b
		assert.False(t, seen[key], "split %s/%s returned more than once", a, b)
		seen[key] = true
	}
}

func TestGenerateTeamsIsDeterministic(t *testing.T) {
	cfg := config.DefaultConfig()
	participants := []string{"alice", "bob", "carl", "dave", "erin", "finn"}

	model1 := seedPlayers(map[string]float64{
		"alice": 1000, "bob": 1050, "carl": 980, "dave": 1020, "erin": 990, "finn": 1010,
	}, "courtA")
	model2 := seedPlayers(map[string]float64{
		"alice": 1000, "bob": 1050, "carl": 980, "dave": 1020, "erin": 990, "finn": 1010,
	}, "courtA")

	splits1 := GenerateTeams(model1, cfg, participants, "courtA", 5)
	splits2 := GenerateTeams(model2, cfg, participants, "courtA", 5)

	require.Equal(t, len(splits1), len(splits2))
	for i := range splits1 {
		assert.Equal(t, splits1[i].TeamA, splits2[i].TeamA)
		assert.Equal(t, splits1[i].TeamB, splits2[i].TeamB)
		assert.Equal(t, splits1[i].Score, splits2[i].Score)
	}
}

func TestGenerateTeamsDiversitySelectsDistinctRosters(t *testing.T) {
	cfg := config.DefaultConfig()
	model := seedPlayers(map[string]float64{
		"alice": 1000, "bob": 1000, "carl": 1000, "dave": 1000, "erin": 1000, "finn": 1000,
	}, "courtA")

	splits := GenerateTeams(model, cfg, []string{"alice", "bob", "carl", "dave", "erin", "finn"}, "courtA", 3)
	require.Len(t, splits, 3)

	// With alice pinned, team A is alice plus two of five others, so at
	// most two rosters can stay within the overlap bound of each other.
	// The second pick is the diverse one; the third comes from the
	// fallback fill, which takes the best remaining split regardless of
	// overlap.
	minDiff := cfg.TeamgenOverlapMinDiff
	teamSize := 3
	overlap := overlapCount(splits[1].TeamA, splits[0].TeamA)
	assert.LessOrEqual(t, overlap, teamSize-minDiff, "diverse picks must not overlap beyond the configured bound")
	assert.Equal(t, []string{"alice", "bob", "finn"}, splits[2].TeamA, "the fallback fill takes the best remaining split")
}

func TestGuestRatingCappedAtGroupMeanForTeamBalancing(t *testing.T) {
	cfg := config.DefaultConfig()
	model := domain.NewModelState()
	model.Players["ace"] = &domain.PlayerState{ID: "ace", GlobalRating: 2000, VenueRatings: map[string]float64{"courtA": 2000}, IsGuest: true, RoleTendencies: map[string]float64{}}
	model.Players["bob"] = &domain.PlayerState{ID: "bob", GlobalRating: 1000, VenueRatings: map[string]float64{"courtA": 1000}, RoleTendencies: map[string]float64{}}
	model.Players["carl"] = &domain.PlayerState{ID: "carl", GlobalRating: 1000, VenueRatings: map[string]float64{"courtA": 1000}, RoleTendencies: map[string]float64{}}
	model.Players["dave"] = &domain.PlayerState{ID: "dave", GlobalRating: 1000, VenueRatings: map[string]float64{"courtA": 1000}, RoleTendencies: map[string]float64{}}

	ratingMap := teamRatingMap(model, []string{"ace", "bob", "carl", "dave"}, "courtA", cfg)
	avg := (2000.0 + 1000 + 1000 + 1000) / 4
	assert.Equal(t, avg, ratingMap["ace"], "a guest's effective rating must be capped at the group mean")
	assert.Equal(t, 1000.0, ratingMap["bob"])
}

func TestEvaluateSplitScoreIsAbsDiffPlusPenalties(t *testing.T) {
	cfg := config.DefaultConfig()
	model := seedPlayers(map[string]float64{
		"alice": 1100, "bob": 900, "carl": 1000, "dave": 1000,
	}, "courtA")

	split := EvaluateSplit(model, cfg, []string{"alice", "carl"}, []string{"bob", "dave"}, "courtA")
	assert.Equal(t, 200.0, split.DHat)
	assert.Equal(t, 200.0, split.Score, "with no interaction history, score reduces to the absolute rating gap")
}

func TestSuggestQuickSwapsExcludesForbiddenSplits(t *testing.T) {
	cfg := config.DefaultConfig()
	model := seedPlayers(map[string]float64{
		"alice": 1100, "bob": 900, "carl": 1000, "dave": 1000,
	}, "courtA")

	base := EvaluateSplit(model, cfg, []string{"alice", "dave"}, []string{"bob", "carl"}, "courtA")
	swaps := SuggestQuickSwaps(model, cfg, base, nil, "courtA", 10)

	for _, sw := range swaps {
		a, b := normalizeSplit(sw.TeamA, sw.TeamB)
		ba, bb := normalizeSplit(base.TeamA, base.TeamB)
		assert.False(t, a == ba && b == bb, "a swap must never reproduce the base split")
	}
}

func TestSuggestQuickSwapsRankedByScoreDeltaAscending(t *testing.T) {
	cfg := config.DefaultConfig()
	model := seedPlayers(map[string]float64{
		"alice": 1200, "bob": 800, "carl": 1000, "dave": 1000,
	}, "courtA")

	base := EvaluateSplit(model, cfg, []string{"alice", "dave"}, []string{"bob", "carl"}, "courtA")
	swaps := SuggestQuickSwaps(model, cfg, base, nil, "courtA", 10)
	require.NotEmpty(t, swaps)
	for i := 1; i < len(swaps); i++ {
		assert.LessOrEqual(t, swaps[i-1].ScoreDelta, swaps[i].ScoreDelta)
	}
}
