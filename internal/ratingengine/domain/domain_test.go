package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerSeedsGlobalAndVenueAtInitialPlusTierBonus(t *testing.T) {
	p := newPlayer("alice", "courtA", 1000, 25, false)
	assert.Equal(t, 1025.0, p.GlobalRating)
	assert.Equal(t, 1025.0, p.VenueRatings["courtA"])
	assert.Equal(t, 25.0, p.TierBonus)
	assert.False(t, p.IsGuest)
}

func TestEnsureVenueNeverOverwritesExistingEntry(t *testing.T) {
	p := newPlayer("alice", "courtA", 1000, 0, false)
	p.VenueRatings["courtA"] = 1200 // simulate a learned rating

	p.EnsureVenue("courtA", 900)
	assert.Equal(t, 1200.0, p.VenueRatings["courtA"], "EnsureVenue must never clobber an existing entry")

	p.EnsureVenue("courtB", 900)
	assert.Equal(t, 900.0, p.VenueRatings["courtB"])
}

func TestVenueRatingDefaultsToStartPlusTierBonus(t *testing.T) {
	p := newPlayer("alice", "courtA", 1000, 15, false)
	assert.Equal(t, 1015.0, p.VenueRating("courtA", 1000))
	assert.Equal(t, 1015.0, p.VenueRating("courtB", 1000), "an unvisited venue defaults to venueStartDefault + tier bonus")
}

func TestInteractionStateSelfPairGuard(t *testing.T) {
	state := NewInteractionState()
	state.AddSyn("courtA", "alice", "alice", 5)
	assert.Equal(t, 0.0, state.GetSyn("courtA", "alice", "alice"))

	state.AddDom("courtA", "alice", "alice", 5)
	assert.Equal(t, 0.0, state.GetDom("courtA", "alice", "alice"))
}

func TestInteractionStateSynergyIsSymmetric(t *testing.T) {
	state := NewInteractionState()
	state.AddSyn("courtA", "alice", "bob", 3)
	state.AddSyn("courtA", "bob", "alice", 2)
	assert.Equal(t, 5.0, state.GetSyn("courtA", "alice", "bob"))
	assert.Equal(t, 5.0, state.GetSyn("courtA", "bob", "alice"))
}

func TestInteractionStateDominationIsAsymmetric(t *testing.T) {
	state := NewInteractionState()
	state.AddDom("courtA", "alice", "bob", 3)
	assert.Equal(t, 3.0, state.GetDom("courtA", "alice", "bob"))
	assert.Equal(t, 0.0, state.GetDom("courtA", "bob", "alice"))
}

func TestModelStateEnsurePlayerAdmitsNewAndPreservesExisting(t *testing.T) {
	model := NewModelState()
	model.TierBonus["alice"] = 20

	p1 := model.EnsurePlayer("alice", "courtA", 1000, false)
	assert.Equal(t, 1020.0, p1.GlobalRating)

	p1.GlobalRating = 1100 // simulate a learned update

	p2 := model.EnsurePlayer("alice", "courtB", 950, false)
	assert.Same(t, p1, p2, "EnsurePlayer must return the same PlayerState for a known id")
	assert.Equal(t, 1100.0, p2.GlobalRating, "re-admission must never reset a learned rating")
	assert.Equal(t, 970.0, p2.VenueRatings["courtB"], "a new venue entry is seeded at initialRating plus the tier bonus")
}

func TestModelStateAllPlayersPreservesOrderAndSkipsUnknown(t *testing.T) {
	model := NewModelState()
	model.EnsurePlayer("bob", "courtA", 1000, false)
	model.EnsurePlayer("alice", "courtA", 1000, false)

	players := model.AllPlayers([]string{"bob", "ghost", "alice"})
	require.Len(t, players, 2)
	assert.Equal(t, "bob", players[0].ID)
	assert.Equal(t, "alice", players[1].ID)
}

func TestMatchParticipantsAndIsGuest(t *testing.T) {
	m := Match{
		TeamA:  []string{"alice", "bob"},
		TeamB:  []string{"carl"},
		Guests: map[string]bool{"carl": true},
	}
	assert.Equal(t, []string{"alice", "bob", "carl"}, m.Participants())
	assert.True(t, m.IsGuest("carl"))
	assert.False(t, m.IsGuest("alice"))
	assert.False(t, m.IsGuest("nobody"))
}
