package hoststore

import "github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"

// diffEpsilon matches the original implementation's audit-log
// filter: a changed interaction value under this magnitude is noise,
// not a meaningful revision.
const diffEpsilon = 1e-6

// InteractionDiff is one changed entry between two InteractionState
// snapshots, across either ledger.
type InteractionDiff struct {
	Venue  string
	Kind   string // "synergy" or "domination"
	A      string
	B      string
	Before float64
	After  float64
}

func absDiff(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// DiffInteractions walks both the synergy and domination ledgers of
// prev and next and reports every entry whose value changed by more
// than diffEpsilon, in either direction (added, removed, or revised).
// It supports the replay-and-reconcile pattern described in spec.md:
// a host recomputes a fresh ModelState from the full match history
// whenever feedback for an already-scored match changes, then diffs
// the old and new interaction ledgers to produce an audit trail.
func DiffInteractions(prev, next *domain.ModelState) []InteractionDiff {
	var diffs []InteractionDiff

	diffs = append(diffs, diffSynergy(prev, next)...)
	diffs = append(diffs, diffDomination(prev, next)...)
	return diffs
}

func diffSynergy(prev, next *domain.ModelState) []InteractionDiff {
	var diffs []InteractionDiff
	seen := map[string]map[domain.UnorderedPair]bool{}

	for venue, pairs := range prev.Interactions.Synergy {
		for pair := range pairs {
			markSeen(seen, venue, pair)
			before := prev.Interactions.GetSyn(venue, pair.A, pair.B)
			after := next.Interactions.GetSyn(venue, pair.A, pair.B)
			if absDiff(after-before) > diffEpsilon {
				diffs = append(diffs, InteractionDiff{Venue: venue, Kind: "synergy", A: pair.A, B: pair.B, Before: before, After: after})
			}
		}
	}
	for venue, pairs := range next.Interactions.Synergy {
		for pair := range pairs {
			if alreadySeen(seen, venue, pair) {
				continue
			}
			before := prev.Interactions.GetSyn(venue, pair.A, pair.B)
			after := next.Interactions.GetSyn(venue, pair.A, pair.B)
			if absDiff(after-before) > diffEpsilon {
				diffs = append(diffs, InteractionDiff{Venue: venue, Kind: "synergy", A: pair.A, B: pair.B, Before: before, After: after})
			}
		}
	}
	return diffs
}

func diffDomination(prev, next *domain.ModelState) []InteractionDiff {
	var diffs []InteractionDiff
	type key struct {
		venue string
		pair  domain.OrderedPair
	}
	seen := map[key]bool{}

	for venue, pairs := range prev.Interactions.Domination {
		for pair := range pairs {
			seen[key{venue, pair}] = true
			before := prev.Interactions.GetDom(venue, pair.Dominator, pair.Dominated)
			after := next.Interactions.GetDom(venue, pair.Dominator, pair.Dominated)
			if absDiff(after-before) > diffEpsilon {
				diffs = append(diffs, InteractionDiff{Venue: venue, Kind: "domination", A: pair.Dominator, B: pair.Dominated, Before: before, After: after})
			}
		}
	}
	for venue, pairs := range next.Interactions.Domination {
		for pair := range pairs {
			if seen[key{venue, pair}] {
				continue
			}
			before := prev.Interactions.GetDom(venue, pair.Dominator, pair.Dominated)
			after := next.Interactions.GetDom(venue, pair.Dominator, pair.Dominated)
			if absDiff(after-before) > diffEpsilon {
				diffs = append(diffs, InteractionDiff{Venue: venue, Kind: "domination", A: pair.Dominator, B: pair.Dominated, Before: before, After: after})
			}
		}
	}
	return diffs
}

func markSeen(seen map[string]map[domain.UnorderedPair]bool, venue string, pair domain.UnorderedPair) {
	if seen[venue] == nil {
		seen[venue] = map[domain.UnorderedPair]bool{}
	}
	seen[venue][pair] = true
}

func alreadySeen(seen map[string]map[domain.UnorderedPair]bool, venue string, pair domain.UnorderedPair) bool {
	return seen[venue] != nil && seen[venue][pair]
}
