package domain

// GlobalVenue is the reserved venue key that mirrors every per-venue
// interaction write made through the interactions package. Nothing in
// domain rejects it as a venue argument, so AddSyn/AddDom can also
// write it directly.
const GlobalVenue = "__global__"

// UnorderedPair canonicalizes a symmetric pairing so {a,b} and {b,a}
// always produce the same map key.
type UnorderedPair struct {
	A string
	B string
}

func newUnorderedPair(x, y string) UnorderedPair {
	if x <= y {
		return UnorderedPair{A: x, B: y}
	}
	return UnorderedPair{A: y, B: x}
}

// OrderedPair is an asymmetric (dominator, dominated) key.
type OrderedPair struct {
	Dominator string
	Dominated string
}

// InteractionState holds the symmetric synergy ledger and the
// asymmetric domination ledger, each keyed by venue (including the
// reserved GlobalVenue aggregate).
type InteractionState struct {
	Synergy    map[string]map[UnorderedPair]float64
	Domination map[string]map[OrderedPair]float64
}

// NewInteractionState returns an empty InteractionState.
func NewInteractionState() *InteractionState {
	return &InteractionState{
		Synergy:    map[string]map[UnorderedPair]float64{},
		Domination: map[string]map[OrderedPair]float64{},
	}
}

// GetSyn reads the synergy value for {a,b} at venue, defaulting to 0.
func (s *InteractionState) GetSyn(venue, a, b string) float64 {
	return s.Synergy[venue][newUnorderedPair(a, b)]
}

// addSyn accumulates value into the synergy ledger for {a,b} at venue.
// No-op for a self-pair.
func (s *InteractionState) addSyn(venue, a, b string, value float64) {
	if a == b {
		return
	}
	if s.Synergy[venue] == nil {
		s.Synergy[venue] = map[UnorderedPair]float64{}
	}
	key := newUnorderedPair(a, b)
	s.Synergy[venue][key] += value
}

// GetDom reads the domination value for (dominator, dominated) at venue,
// defaulting to 0.
func (s *InteractionState) GetDom(venue, dominator, dominated string) float64 {
	return s.Domination[venue][OrderedPair{Dominator: dominator, Dominated: dominated}]
}

// addDom accumulates value into the domination ledger for
// (dominator, dominated) at venue. No-op for a self-pair.
func (s *InteractionState) addDom(venue, dominator, dominated string, value float64) {
	if dominator == dominated {
		return
	}
	if s.Domination[venue] == nil {
		s.Domination[venue] = map[OrderedPair]float64{}
	}
	key := OrderedPair{Dominator: dominator, Dominated: dominated}
	s.Domination[venue][key] += value
}

// AddSyn is the raw mutator the interactions package uses to write both
// the venue-scoped and mirrored global entries. It writes only the
// given venue, with no global mirror, and is exported: any package can
// call it directly and so bypass the mirror that
// interactions.AddSynergy applies.
func (s *InteractionState) AddSyn(venue, a, b string, value float64) {
	s.addSyn(venue, a, b, value)
}

// AddDom is the raw mutator counterpart to AddSyn for domination.
func (s *InteractionState) AddDom(venue, dominator, dominated string, value float64) {
	s.addDom(venue, dominator, dominated, value)
}
