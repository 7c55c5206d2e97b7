package interactions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/config"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"
)

func TestAddSynergyMirrorsGlobalAndGuardsSelfPair(t *testing.T) {
	state := domain.NewInteractionState()

	AddSynergy(state, "courtA", "alice", "bob", 0.5)
	require.Equal(t, 0.5, state.GetSyn("courtA", "alice", "bob"))
	require.Equal(t, 0.5, state.GetSyn(domain.GlobalVenue, "alice", "bob"))
	require.Equal(t, 0.5, state.GetSyn("courtA", "bob", "alice"), "unordered pair must be symmetric")

	AddSynergy(state, "courtA", "alice", "alice", 1.0)
	assert.Equal(t, 0.0, state.GetSyn("courtA", "alice", "alice"), "self-pair must be a no-op")
}

func TestAddDominationIsAsymmetricAndMirrored(t *testing.T) {
	state := domain.NewInteractionState()

	AddDomination(state, "courtA", "alice", "bob", 0.3)
	assert.Equal(t, 0.3, state.GetDom("courtA", "alice", "bob"))
	assert.Equal(t, 0.0, state.GetDom("courtA", "bob", "alice"), "domination is asymmetric")
	assert.Equal(t, 0.3, state.GetDom(domain.GlobalVenue, "alice", "bob"))

	AddDomination(state, "courtA", "carl", "carl", 1.0)
	assert.Equal(t, 0.0, state.GetDom("courtA", "carl", "carl"))
}

func TestSynergyPenaltyCombinesVenueAndGlobalScopes(t *testing.T) {
	cfg := config.DefaultConfig()
	state := domain.NewInteractionState()
	AddSynergy(state, "courtA", "alice", "bob", 10)
	// a second venue mirrors into the same global bucket
	AddSynergy(state, "courtB", "alice", "bob", 5)

	penalty := SynergyPenalty(state, "courtA", []string{"alice", "bob"}, cfg)
	combined := cfg.RatingEffVenueWeight*10 + cfg.RatingEffGlobalWeight*15
	assert.InDelta(t, combined*cfg.TeamgenSynergyWeight, penalty, 1e-9)
}

func TestDominationPenaltySumsBothDirections(t *testing.T) {
	cfg := config.DefaultConfig()
	state := domain.NewInteractionState()
	AddDomination(state, "courtA", "alice", "carl", 2)
	AddDomination(state, "courtA", "carl", "alice", -1)

	penalty := DominationPenalty(state, "courtA", []string{"alice"}, []string{"carl"}, cfg)
	assert.NotEqual(t, 0.0, penalty)
}

func TestRoleBalancePenalty(t *testing.T) {
	cfg := config.DefaultConfig()
	roles := map[string]map[string]float64{
		"alice": {"attack": 4},
		"bob":   {"defense": 1},
		"carl":  {"attack": 1, "defense": 3},
	}
	penalty := RoleBalancePenalty(roles, []string{"alice"}, []string{"bob", "carl"}, cfg)
	assert.Greater(t, penalty, 0.0)
}
