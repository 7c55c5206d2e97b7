package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"
)

func sampleState() *domain.ModelState {
	state := domain.NewModelState()
	state.Players["alice"] = &domain.PlayerState{
		ID:             "alice",
		GlobalRating:   1042.5,
		VenueRatings:   map[string]float64{"courtA": 1060, domain.GlobalVenue: 1042.5},
		RoleTendencies: map[string]float64{"attack": 3},
		TierBonus:      10,
	}
	state.Players["bob"] = &domain.PlayerState{
		ID:             "bob",
		GlobalRating:   980,
		VenueRatings:   map[string]float64{"courtA": 975},
		IsGuest:        true,
		GuestMatches:   2,
		RoleTendencies: map[string]float64{},
	}
	state.TierBonus["alice"] = 10
	state.Interactions.AddSyn("courtA", "alice", "bob", 0.5)
	state.Interactions.AddSyn(domain.GlobalVenue, "alice", "bob", 0.5)
	state.Interactions.AddDom("courtA", "alice", "bob", 0.25)
	state.Interactions.AddDom(domain.GlobalVenue, "alice", "bob", 0.25)
	return state
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := sampleState()

	blob, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)

	assert.Equal(t, original.Players["alice"], decoded.Players["alice"])
	assert.Equal(t, original.Players["bob"], decoded.Players["bob"])
	assert.Equal(t, original.TierBonus, decoded.TierBonus)
	assert.Equal(t, original.Interactions.GetSyn("courtA", "alice", "bob"), decoded.Interactions.GetSyn("courtA", "alice", "bob"))
	assert.Equal(t, original.Interactions.GetSyn(domain.GlobalVenue, "alice", "bob"), decoded.Interactions.GetSyn(domain.GlobalVenue, "alice", "bob"))
	assert.Equal(t, original.Interactions.GetDom("courtA", "alice", "bob"), decoded.Interactions.GetDom("courtA", "alice", "bob"))
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	blob, err := Encode(sampleState())
	require.NoError(t, err)
	blob[0] = 0xFF

	_, err = Decode(blob)
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedBlob(t *testing.T) {
	blob, err := Encode(sampleState())
	require.NoError(t, err)

	_, err = Decode(blob[:len(blob)-3])
	assert.Error(t, err)
}

func TestDecodeRejectsShortBlob(t *testing.T) {
	_, err := Decode([]byte{1, 2})
	assert.Error(t, err)
}

func TestEncodeEmptyModelStateRoundTrips(t *testing.T) {
	blob, err := Encode(domain.NewModelState())
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)
	assert.Empty(t, decoded.Players)
}
