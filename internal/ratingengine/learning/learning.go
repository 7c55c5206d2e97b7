// Package learning implements the central recurrence: given a Match
// (plus optional feedback) it updates ratings, guest counters, and
// interactions, and reports per-player deltas and a breakdown. See
// spec.md §4.6.
package learning

import (
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/config"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/feedback"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/interactions"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/rating"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/segment"
)

// Breakdown is the per-player record of every component that fed into
// final_delta, preserved separately for audit logging.
type Breakdown struct {
	ResultDelta   float64
	EventDelta    float64
	GoalDelta     float64
	AssistDelta   float64
	QuickDelta    float64
	MVPDelta      float64
	PairwiseDelta float64
	FanDelta      float64
	RawDelta      float64
	Cap           float64
	FinalDelta    float64
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func eventBase(eventType domain.EventType, cfg *config.Config) float64 {
	switch eventType {
	case domain.EventGoal:
		return cfg.EventBaseGoal
	case domain.EventAssist:
		return cfg.EventBaseAssist
	default:
		return 0
	}
}

func eventValue(ev domain.MatchEvent, segments []domain.Segment, cfg *config.Config) float64 {
	base := eventBase(ev.EventType, cfg)
	seg := segments[ev.SegmentIndex]
	weight := segment.Weight(seg.SegmentIndex, len(segments), cfg)
	mult := 1.0
	if seg.IsButtGame {
		mult = cfg.ButtGameEventMultiplier
	}
	return base * weight * mult
}

// teamImpulse maps |weighted goal diff| to the pre-distribution team
// impulse, per spec.md §4.6 step 4.
func teamImpulse(weightedDiff float64) float64 {
	abs := weightedDiff
	if abs < 0 {
		abs = -abs
	}
	var value float64
	switch {
	case abs <= 1:
		value = 60 * abs
	case abs <= 2:
		value = 60 + 60*(abs-1)
	case abs <= 3:
		value = 120 + 60*(abs-2)
	default:
		value = 180 + 40*(abs-3)
	}
	if value > 220 {
		return 220
	}
	return value
}

// topPlayerMultiplier never damps a non-positive delta (spec.md open
// question: damping is positive-delta only).
func topPlayerMultiplier(delta, rPre, avgRating float64, cfg *config.Config) float64 {
	if delta <= 0 {
		return 1.0
	}
	threshold := avgRating + cfg.TopPlayerThresh
	if rPre <= threshold {
		return 1.0
	}
	excess := rPre - threshold
	switch {
	case excess <= cfg.TopPlayerBand1:
		return cfg.TopPlayerMult1
	case excess <= cfg.TopPlayerBand2:
		return cfg.TopPlayerMult2
	default:
		return cfg.TopPlayerMult3
	}
}

func guestMultiplier(guestMatches int, cfg *config.Config) float64 {
	if guestMatches < 2 {
		return cfg.GuestLearningMultFirst2
	}
	if guestMatches == 2 {
		return cfg.GuestLearningMultThird
	}
	return 1.0
}

// admitParticipants runs spec.md §4.6 steps 1-2: compute avg_existing
// over already-known participants, then admit unknown ones (guest-shaded
// or default) and ensure a venue entry for everyone.
func admitParticipants(model *domain.ModelState, match domain.Match, cfg *config.Config) {
	existing := make([]*domain.PlayerState, 0, len(match.Participants()))
	for _, id := range match.Participants() {
		if p, ok := model.Players[id]; ok {
			existing = append(existing, p)
		}
	}
	avgExisting := cfg.GlobalStartRating
	if len(existing) > 0 {
		avgExisting = rating.AvgMatch(existing, match.Venue, cfg)
	}

	for _, id := range match.Participants() {
		isGuest := match.IsGuest(id)
		if _, ok := model.Players[id]; !ok {
			initial := cfg.GlobalStartRating
			if isGuest {
				initial = clamp(avgExisting-cfg.GuestInitialOffset, cfg.GuestInitialMin, cfg.GuestInitialMax)
			}
			model.EnsurePlayer(id, match.Venue, initial, isGuest)
		} else {
			model.Players[id].EnsureVenue(match.Venue, cfg.VenueStartRating)
		}
	}
}

// losingWeights computes the proportional loser-reweighting share from
// spec.md §4.6 step 5. Returns nil if there is no net loser or the
// losing team's total effective rating is 0.
func losingWeights(players []*domain.PlayerState, losingTeam map[string]bool, venue string, cfg *config.Config) map[string]float64 {
	if losingTeam == nil {
		return nil
	}
	total := 0.0
	var losers []*domain.PlayerState
	for _, p := range players {
		if losingTeam[p.ID] {
			losers = append(losers, p)
			total += rating.Effective(p, venue, cfg)
		}
	}
	if total <= 0 {
		return nil
	}
	weights := make(map[string]float64, len(losers))
	for _, p := range losers {
		weights[p.ID] = rating.Effective(p, venue, cfg) / total
	}
	return weights
}

func inSlice(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

// Update runs the full learning recurrence described in spec.md §4.6
// and returns per-player global-rating deltas plus the per-component
// breakdown. It is the one internal core; UpdateDeltasOnly is a thin
// wrapper that discards the breakdown (spec.md §9).
func Update(model *domain.ModelState, cfg *config.Config, match domain.Match, quick *domain.QuickFeedback, expanded *domain.ExpandedFeedback) (map[string]float64, map[string]Breakdown) {
	venue := match.Venue

	admitParticipants(model, match, cfg)

	players := model.AllPlayers(match.Participants())
	avgRating := rating.AvgMatch(players, venue, cfg)

	weightedDiff := segment.WeightedGoalDiff(match.Segments, cfg)
	impulse := teamImpulse(weightedDiff)
	teamAImpulse := impulse
	if weightedDiff < 0 {
		teamAImpulse = -impulse
	}
	teamBImpulse := -teamAImpulse

	baseDeltaA := 0.0
	if len(match.TeamA) > 0 {
		baseDeltaA = teamAImpulse / float64(len(match.TeamA))
	}
	baseDeltaB := 0.0
	if len(match.TeamB) > 0 {
		baseDeltaB = teamBImpulse / float64(len(match.TeamB))
	}

	var losingTeam map[string]bool
	if teamAImpulse < 0 {
		losingTeam = toSet(match.TeamA)
	} else if teamBImpulse < 0 {
		losingTeam = toSet(match.TeamB)
	}
	weights := losingWeights(players, losingTeam, venue, cfg)

	eventBonus := map[string]float64{}
	goalBonus := map[string]float64{}
	assistBonus := map[string]float64{}
	for _, ev := range match.Events {
		value := eventValue(ev, match.Segments, cfg) * cfg.EventScale
		eventBonus[ev.Player] += value
		switch ev.EventType {
		case domain.EventGoal:
			goalBonus[ev.Player] += value
		case domain.EventAssist:
			assistBonus[ev.Player] += value
		}
	}

	quickAdjustments := map[string]float64{}
	anchorDeltas := map[string]float64{}
	var pairwiseDeltas, fanDeltas map[string]float64
	if quick != nil {
		quickAdjustments = feedback.ComputeQuickAdjustments(quick, cfg)
		for player, anchor := range quick.Anchors {
			net := anchor.MVP - anchor.BroughtDown
			anchorDeltas[player] += feedback.AnchorDelta(net, cfg)
		}
		pairwiseDeltas = feedback.PairwiseDeltas(quick.Pairwise, cfg)
		fanDeltas = feedback.FanRatingDeltas(quick.FanResponses, cfg)
	}

	deltas := make(map[string]float64, len(players))
	breakdown := make(map[string]Breakdown, len(players))

	for _, p := range players {
		var baseDelta float64
		onTeamA := inSlice(match.TeamA, p.ID)
		if onTeamA {
			baseDelta = baseDeltaA
		} else {
			baseDelta = baseDeltaB
		}
		if losingTeam != nil && losingTeam[p.ID] && weights != nil {
			teamImp := teamBImpulse
			if onTeamA {
				teamImp = teamAImpulse
			}
			baseDelta = teamImp * weights[p.ID]
		}

		rawQuick := quickAdjustments[p.ID]
		quickCap := absf(baseDelta) * cfg.QuickAdjustmentCapPct
		quickAdj := 0.0
		if quickCap > 0 {
			quickAdj = clamp(rawQuick, -quickCap, quickCap)
		}

		rawDelta := baseDelta + eventBonus[p.ID] + quickAdj

		rPre := rating.Effective(p, venue, cfg)
		rawDelta *= topPlayerMultiplier(rawDelta, rPre, avgRating, cfg)

		if p.IsGuest {
			rawDelta *= guestMultiplier(p.GuestMatches, cfg)
		}

		cap := avgRating * cfg.CapPct
		finalDelta := clamp(rawDelta, -cap, cap)

		deltas[p.ID] = finalDelta
		breakdown[p.ID] = Breakdown{
			ResultDelta:   baseDelta,
			EventDelta:    eventBonus[p.ID],
			GoalDelta:     goalBonus[p.ID],
			AssistDelta:   assistBonus[p.ID],
			QuickDelta:    quickAdj,
			MVPDelta:      anchorDeltas[p.ID],
			PairwiseDelta: pairwiseDeltas[p.ID],
			FanDelta:      fanDeltas[p.ID],
			RawDelta:      rawDelta,
			Cap:           cap,
			FinalDelta:    finalDelta,
		}
	}

	for _, p := range players {
		delta := deltas[p.ID]
		p.GlobalRating += delta
		p.VenueRatings[venue] = p.VenueRating(venue, cfg.VenueStartRating) + delta
		if p.IsGuest {
			p.GuestMatches++
		}
	}

	applyInteractions(model, cfg, match, quick, expanded)

	return deltas, breakdown
}

// UpdateDeltasOnly runs Update and discards the breakdown. It must be
// bit-identical to the deltas half of Update for the same inputs.
func UpdateDeltasOnly(model *domain.ModelState, cfg *config.Config, match domain.Match, quick *domain.QuickFeedback, expanded *domain.ExpandedFeedback) map[string]float64 {
	deltas, _ := Update(model, cfg, match, quick, expanded)
	return deltas
}

func toSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// applyInteractions runs spec.md §4.6 step 13: auto synergy/domination
// from the match result, goal/assist FIFO pairing, and quick/expanded
// feedback fan-outs.
func applyInteractions(model *domain.ModelState, cfg *config.Config, match domain.Match, quick *domain.QuickFeedback, expanded *domain.ExpandedFeedback) {
	applyMatchInteractions(model, cfg, match)
	if quick != nil {
		for _, r := range quick.FanResponses {
			applyFanInteraction(model, match.Venue, r)
		}
	}
	if expanded != nil {
		for _, r := range expanded.FanResponses {
			applyFanInteraction(model, match.Venue, r)
		}
		for _, syn := range expanded.Synergies {
			interactions.AddSynergy(model.Interactions, match.Venue, syn.PlayerA, syn.PlayerB, syn.Value)
		}
		for _, dom := range expanded.Dominations {
			interactions.AddDomination(model.Interactions, match.Venue, dom.Dominator, dom.Dominated, dom.Value)
		}
		for _, role := range expanded.RoleImpressions {
			if p, ok := model.Players[role.Player]; ok {
				interactions.ApplyRoleFeedback(p.RoleTendencies, role)
			}
		}
	}
}

type segTeamKey struct {
	team         domain.Team
	segmentIndex int
}

func applyMatchInteractions(model *domain.ModelState, cfg *config.Config, match domain.Match) {
	venue := match.Venue
	weightedDiff := segment.WeightedGoalDiff(match.Segments, cfg)
	if weightedDiff == 0 {
		return
	}
	winners, losers := match.TeamB, match.TeamA
	if weightedDiff > 0 {
		winners, losers = match.TeamA, match.TeamB
	}

	for i, a := range winners {
		for _, b := range winners[i+1:] {
			interactions.AddSynergy(model.Interactions, venue, a, b, cfg.AutoSynergyWin)
		}
	}
	for i, a := range losers {
		for _, b := range losers[i+1:] {
			interactions.AddSynergy(model.Interactions, venue, a, b, -cfg.AutoSynergyWin)
		}
	}

	for _, w := range winners {
		for _, l := range losers {
			interactions.AddDomination(model.Interactions, venue, w, l, cfg.AutoDominationWin)
			interactions.AddDomination(model.Interactions, venue, l, w, -cfg.AutoDominationWin)
		}
	}

	assistQueue := map[segTeamKey][]string{}
	for _, ev := range match.Events {
		key := segTeamKey{team: ev.Team, segmentIndex: ev.SegmentIndex}
		switch ev.EventType {
		case domain.EventAssist:
			assistQueue[key] = append(assistQueue[key], ev.Player)
		case domain.EventGoal:
			queue := assistQueue[key]
			if len(queue) > 0 {
				assister := queue[0]
				assistQueue[key] = queue[1:]
				interactions.AddSynergy(model.Interactions, venue, ev.Player, assister, cfg.AutoSynergyGoalAssist)
			}
		}
	}
}

func applyFanInteraction(model *domain.ModelState, venue string, r domain.FanResponse) {
	switch r.InteractionType {
	case "synergy":
		if r.RelatedPlayer != "" {
			interactions.AddSynergy(model.Interactions, venue, r.Player, r.RelatedPlayer, float64(r.Polarity))
		}
	case "domination":
		if r.RelatedPlayer != "" {
			interactions.AddDomination(model.Interactions, venue, r.Player, r.RelatedPlayer, float64(r.Polarity))
		}
	case "role":
		if r.Role != "" {
			if p, ok := model.Players[r.Player]; ok {
				p.RoleTendencies[r.Role] += float64(r.Polarity)
			}
		}
	}
}
