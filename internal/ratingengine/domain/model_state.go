package domain

// ModelState is the full persisted state for one context: every
// player's rating state, the interaction ledgers, and the tier-bonus
// table new players are admitted with.
type ModelState struct {
	Players      map[string]*PlayerState
	Interactions *InteractionState
	TierBonus    map[string]float64
}

// NewModelState returns an empty ModelState, ready for its first Update.
func NewModelState() *ModelState {
	return &ModelState{
		Players:      map[string]*PlayerState{},
		Interactions: NewInteractionState(),
		TierBonus:    map[string]float64{},
	}
}

// EnsurePlayer admits a player who has never appeared before, seeding
// both the global rating and the given venue's entry at
// initialRating + tier_bonus[id]. If the player already exists this
// only ensures the venue entry (at initialRating plus the player's
// stored tier bonus, if the entry is missing) and returns the existing
// PlayerState.
func (m *ModelState) EnsurePlayer(id, venue string, initialRating float64, isGuest bool) *PlayerState {
	if existing, ok := m.Players[id]; ok {
		existing.EnsureVenue(venue, initialRating)
		return existing
	}
	bonus := m.TierBonus[id]
	player := newPlayer(id, venue, initialRating, bonus, isGuest)
	m.Players[id] = player
	return player
}

// AllPlayers resolves a list of ids into their PlayerStates, in order.
// Ids not present in m.Players are skipped.
func (m *ModelState) AllPlayers(ids []string) []*PlayerState {
	out := make([]*PlayerState, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.Players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
