// Package interactions implements the per-venue/global-mirrored
// synergy and domination ledgers, per spec.md §4.5. AddSynergy and
// AddDomination write the venue entry and mirror it into the global
// ledger. domain.InteractionState also exports its maps and its raw
// AddSyn/AddDom mutators, which write a single venue without the
// mirror; this package does not stop callers from using them.
package interactions

import (
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/config"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"
)

// AddSynergy writes value into the venue-scoped synergy ledger for
// {a,b}, then mirrors the same write into the global ledger. No-op if
// a == b.
func AddSynergy(state *domain.InteractionState, venue, a, b string, value float64) {
	state.AddSyn(venue, a, b, value)
	state.AddSyn(domain.GlobalVenue, a, b, value)
}

// AddDomination writes value into the venue-scoped domination ledger
// for (dominator, dominated), then mirrors the same write into the
// global ledger. No-op if dominator == dominated.
func AddDomination(state *domain.InteractionState, venue, dominator, dominated string, value float64) {
	state.AddDom(venue, dominator, dominated, value)
	state.AddDom(domain.GlobalVenue, dominator, dominated, value)
}

// ApplyRoleFeedback adds an explicit role impression's weight into a
// player's role_tendencies.
func ApplyRoleFeedback(roleTendencies map[string]float64, feedback domain.RoleFeedback) {
	roleTendencies[feedback.Role] += feedback.Weight
}

func combinedSyn(state *domain.InteractionState, venue, a, b string, cfg *config.Config) float64 {
	venueVal := state.GetSyn(venue, a, b)
	globalVal := state.GetSyn(domain.GlobalVenue, a, b)
	return cfg.RatingEffVenueWeight*venueVal + cfg.RatingEffGlobalWeight*globalVal
}

func combinedDom(state *domain.InteractionState, venue, dominator, dominated string, cfg *config.Config) float64 {
	venueVal := state.GetDom(venue, dominator, dominated)
	globalVal := state.GetDom(domain.GlobalVenue, dominator, dominated)
	return cfg.RatingEffVenueWeight*venueVal + cfg.RatingEffGlobalWeight*globalVal
}

// SynergyPenalty sums the combined (venue + global blended) synergy
// across every unordered pair within team, scaled by
// teamgen_synergy_weight.
func SynergyPenalty(state *domain.InteractionState, venue string, team []string, cfg *config.Config) float64 {
	penalty := 0.0
	for i, a := range team {
		for _, b := range team[i+1:] {
			penalty += combinedSyn(state, venue, a, b, cfg)
		}
	}
	return penalty * cfg.TeamgenSynergyWeight
}

// DominationPenalty sums the combined domination in both directions
// across every (a in teamA, b in teamB) pair, scaled by
// teamgen_domination_weight.
func DominationPenalty(state *domain.InteractionState, venue string, teamA, teamB []string, cfg *config.Config) float64 {
	penalty := 0.0
	for _, a := range teamA {
		for _, b := range teamB {
			penalty += combinedDom(state, venue, a, b, cfg)
			penalty += combinedDom(state, venue, b, a, cfg)
		}
	}
	return penalty * cfg.TeamgenDominationWeight
}

// RoleBalancePenalty compares summed "attack"/"defense" role tendencies
// across the two teams, scaled by teamgen_role_weight.
func RoleBalancePenalty(roles map[string]map[string]float64, teamA, teamB []string, cfg *config.Config) float64 {
	sumRole := func(team []string, role string) float64 {
		total := 0.0
		for _, p := range team {
			total += roles[p][role]
		}
		return total
	}
	attackA := sumRole(teamA, "attack")
	attackB := sumRole(teamB, "attack")
	defenseA := sumRole(teamA, "defense")
	defenseB := sumRole(teamB, "defense")
	return (absf(attackA-attackB) + absf(defenseA-defenseB)) * cfg.TeamgenRoleWeight
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
