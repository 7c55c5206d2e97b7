// Package teamgen enumerates candidate team splits, scores them by
// rating gap plus synergy/domination/role/top-heaviness penalties, and
// returns diverse top-N suggestions plus one-swap alternatives. See
// spec.md §4.7.
package teamgen

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/config"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/interactions"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/rating"
)

// Components breaks a split's penalty down for narration.
type Components struct {
	Syn  float64
	Dom  float64
	Role float64
	Top  float64
}

// Split is one candidate team assignment with its score.
type Split struct {
	TeamA      []string
	TeamB      []string
	DHat       float64
	Score      float64
	Components Components
}

// Swap is a suggested single-person exchange away from a base Split.
type Swap struct {
	PlayerOut  string
	PlayerIn   string
	TeamA      []string
	TeamB      []string
	DHat       float64
	Score      float64
	ScoreDelta float64
	AbsDiffDelta float64
	ComponentDelta Components
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sortedCopy(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}

// normalizedTeam returns (a,b) ordered so the lexicographically first
// id overall anchors team_a.
func normalizedTeam(a, b []string) ([]string, []string) {
	if len(a) > 0 && len(b) > 0 && a[0] <= b[0] {
		return a, b
	}
	return b, a
}

func normalizeSplit(teamA, teamB []string) (string, string) {
	a := sortedCopy(teamA)
	b := sortedCopy(teamB)
	an, bn := normalizedTeam(a, b)
	return joinIDs(an), joinIDs(bn)
}

func joinIDs(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += id
	}
	return out
}

// teamRatingMap computes the effective rating for every participant,
// capping guests at the group mean so they can never carry a team on
// paper even with a high rating.
func teamRatingMap(model *domain.ModelState, participants []string, venue string, cfg *config.Config) map[string]float64 {
	players := model.AllPlayers(participants)
	avg := rating.AvgMatch(players, venue, cfg)
	out := make(map[string]float64, len(players))
	for _, p := range players {
		r := rating.Effective(p, venue, cfg)
		if p.IsGuest && r > avg {
			r = avg
		}
		out[p.ID] = r
	}
	return out
}

func topPenalty(teamA, teamB []string, ratingMap map[string]float64, cfg *config.Config) float64 {
	topK := cfg.TeamgenTopK
	if topK <= 0 {
		return 0
	}
	names := make([]string, 0, len(ratingMap))
	for name := range ratingMap {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if ratingMap[names[i]] != ratingMap[names[j]] {
			return ratingMap[names[i]] > ratingMap[names[j]]
		}
		return names[i] < names[j]
	})
	if topK > len(names) {
		topK = len(names)
	}
	top := make(map[string]bool, topK)
	for _, n := range names[:topK] {
		top[n] = true
	}
	countIn := func(team []string) int {
		c := 0
		for _, id := range team {
			if top[id] {
				c++
			}
		}
		return c
	}
	overflow := maxInt(0, countIn(teamA)-cfg.TeamgenTopMaxPerTeam)
	overflow += maxInt(0, countIn(teamB)-cfg.TeamgenTopMaxPerTeam)
	return float64(overflow) * cfg.TeamgenTopPenalty
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func roleMap(model *domain.ModelState, participants []string) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(participants))
	for _, p := range model.AllPlayers(participants) {
		out[p.ID] = p.RoleTendencies
	}
	return out
}

// EvaluateSplit scores one fully-formed split, independent of the
// enumeration GenerateTeams performs.
func EvaluateSplit(model *domain.ModelState, cfg *config.Config, teamA, teamB []string, venue string) Split {
	participants := append(append([]string(nil), teamA...), teamB...)
	ratingMap := teamRatingMap(model, participants, venue, cfg)

	ratingA := sumRatings(teamA, ratingMap)
	ratingB := sumRatings(teamB, ratingMap)
	dHat := ratingA - ratingB

	synA := interactions.SynergyPenalty(model.Interactions, venue, teamA, cfg)
	synB := interactions.SynergyPenalty(model.Interactions, venue, teamB, cfg)
	dom := interactions.DominationPenalty(model.Interactions, venue, teamA, teamB, cfg)
	role := interactions.RoleBalancePenalty(roleMap(model, participants), teamA, teamB, cfg)
	top := topPenalty(teamA, teamB, ratingMap, cfg)

	score := absf(dHat) + synA + synB + dom + role + top
	return Split{
		TeamA: append([]string(nil), teamA...),
		TeamB: append([]string(nil), teamB...),
		DHat:  dHat,
		Score: score,
		Components: Components{
			Syn:  synA + synB,
			Dom:  dom,
			Role: role,
			Top:  top,
		},
	}
}

func sumRatings(ids []string, ratingMap map[string]float64) float64 {
	values := make([]float64, len(ids))
	for i, id := range ids {
		values[i] = ratingMap[id]
	}
	return floats.Sum(values)
}

// combinations yields every size-length subset of items, preserving
// the input order within each subset.
func combinations(items []string, size int) [][]string {
	n := len(items)
	if size < 0 || size > n {
		return nil
	}
	var result [][]string
	indices := make([]int, size)
	for i := range indices {
		indices[i] = i
	}
	for {
		combo := make([]string, size)
		for i, idx := range indices {
			combo[i] = items[idx]
		}
		result = append(result, combo)

		i := size - 1
		for i >= 0 && indices[i] == i+n-size {
			i--
		}
		if i < 0 {
			break
		}
		indices[i]++
		for j := i + 1; j < size; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
	return result
}

func complement(all, subset []string) []string {
	in := make(map[string]bool, len(subset))
	for _, id := range subset {
		in[id] = true
	}
	out := make([]string, 0, len(all)-len(subset))
	for _, id := range all {
		if !in[id] {
			out = append(out, id)
		}
	}
	return out
}

// GenerateTeams enumerates every candidate A-team of size N/2 pinning
// the lexicographically smallest participant into team_a, scores each,
// and returns a diverse top-N ranked by (score, |d_hat|, team_a).
func GenerateTeams(model *domain.ModelState, cfg *config.Config, participants []string, venue string, topN int) []Split {
	ratingMap := teamRatingMap(model, participants, venue, cfg)
	sorted := sortedCopy(participants)
	teamSize := len(sorted) / 2
	if teamSize == 0 || len(sorted) == 0 {
		return nil
	}
	anchor := sorted[0]

	rest := sorted[1:]
	var candidates []Split
	for _, combo := range combinations(rest, teamSize-1) {
		teamA := append([]string{anchor}, combo...)
		teamB := complement(sorted, teamA)
		teamA, teamB = normalizedTeam(teamA, teamB)

		ratingA := sumRatings(teamA, ratingMap)
		ratingB := sumRatings(teamB, ratingMap)
		diff := ratingA - ratingB

		participantsAll := append(append([]string(nil), teamA...), teamB...)
		penalty := interactions.SynergyPenalty(model.Interactions, venue, teamA, cfg) +
			interactions.SynergyPenalty(model.Interactions, venue, teamB, cfg) +
			interactions.DominationPenalty(model.Interactions, venue, teamA, teamB, cfg) +
			interactions.RoleBalancePenalty(roleMap(model, participantsAll), teamA, teamB, cfg) +
			topPenalty(teamA, teamB, ratingMap, cfg)

		score := absf(diff) + penalty
		candidates = append(candidates, Split{
			TeamA: teamA,
			TeamB: teamB,
			DHat:  diff,
			Score: score,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score < candidates[j].Score
		}
		if absf(candidates[i].DHat) != absf(candidates[j].DHat) {
			return absf(candidates[i].DHat) < absf(candidates[j].DHat)
		}
		return joinIDs(candidates[i].TeamA) < joinIDs(candidates[j].TeamA)
	})

	minDiff := cfg.TeamgenOverlapMinDiff
	if minDiff < 1 {
		minDiff = 1
	}

	var selected []Split
	for _, candidate := range candidates {
		if len(selected) == 0 {
			selected = append(selected, candidate)
			if len(selected) == topN {
				break
			}
			continue
		}
		ok := true
		for _, chosen := range selected {
			overlap := overlapCount(candidate.TeamA, chosen.TeamA)
			if overlap > teamSize-minDiff {
				ok = false
				break
			}
		}
		if ok {
			selected = append(selected, candidate)
			if len(selected) == topN {
				break
			}
		}
	}

	if len(selected) < topN {
		seen := map[[2]string]bool{}
		for _, s := range selected {
			a, b := normalizeSplit(s.TeamA, s.TeamB)
			seen[[2]string{a, b}] = true
		}
		for _, candidate := range candidates {
			a, b := normalizeSplit(candidate.TeamA, candidate.TeamB)
			key := [2]string{a, b}
			if seen[key] {
				continue
			}
			selected = append(selected, candidate)
			seen[key] = true
			if len(selected) == topN {
				break
			}
		}
	}

	for i := range selected {
		participantsAll := append(append([]string(nil), selected[i].TeamA...), selected[i].TeamB...)
		synA := interactions.SynergyPenalty(model.Interactions, venue, selected[i].TeamA, cfg)
		synB := interactions.SynergyPenalty(model.Interactions, venue, selected[i].TeamB, cfg)
		dom := interactions.DominationPenalty(model.Interactions, venue, selected[i].TeamA, selected[i].TeamB, cfg)
		role := interactions.RoleBalancePenalty(roleMap(model, participantsAll), selected[i].TeamA, selected[i].TeamB, cfg)
		top := topPenalty(selected[i].TeamA, selected[i].TeamB, ratingMap, cfg)
		selected[i].Components = Components{Syn: synA + synB, Dom: dom, Role: role, Top: top}
	}

	return selected
}

func overlapCount(a, b []string) int {
	set := make(map[string]bool, len(b))
	for _, id := range b {
		set[id] = true
	}
	count := 0
	for _, id := range a {
		if set[id] {
			count++
		}
	}
	return count
}

// SuggestQuickSwaps enumerates every single-person A<->B exchange away
// from baseSplit, drops any swap reproducing baseSplit or one of
// otherSplits, evaluates the rest, and returns the top N ranked by
// (score_delta ascending, |abs_diff_delta|).
func SuggestQuickSwaps(model *domain.ModelState, cfg *config.Config, baseSplit Split, otherSplits []Split, venue string, topN int) []Swap {
	baseEval := EvaluateSplit(model, cfg, baseSplit.TeamA, baseSplit.TeamB, venue)

	forbidden := map[[2]string]bool{}
	for _, s := range otherSplits {
		a, b := normalizeSplit(s.TeamA, s.TeamB)
		forbidden[[2]string{a, b}] = true
	}
	ba, bb := normalizeSplit(baseSplit.TeamA, baseSplit.TeamB)
	forbidden[[2]string{ba, bb}] = true

	var swaps []Swap
	for _, a := range baseSplit.TeamA {
		for _, b := range baseSplit.TeamB {
			newTeamA := replaceWith(baseSplit.TeamA, a, b)
			newTeamB := replaceWith(baseSplit.TeamB, b, a)
			na, nb := normalizeSplit(newTeamA, newTeamB)
			if forbidden[[2]string{na, nb}] {
				continue
			}
			evalSplit := EvaluateSplit(model, cfg, newTeamA, newTeamB, venue)
			scoreDelta := evalSplit.Score - baseEval.Score
			absDiffDelta := absf(evalSplit.DHat) - absf(baseEval.DHat)
			swaps = append(swaps, Swap{
				PlayerOut: a,
				PlayerIn:  b,
				TeamA:     evalSplit.TeamA,
				TeamB:     evalSplit.TeamB,
				DHat:      evalSplit.DHat,
				Score:     evalSplit.Score,
				ScoreDelta:   scoreDelta,
				AbsDiffDelta: absDiffDelta,
				ComponentDelta: Components{
					Syn:  evalSplit.Components.Syn - baseEval.Components.Syn,
					Dom:  evalSplit.Components.Dom - baseEval.Components.Dom,
					Role: evalSplit.Components.Role - baseEval.Components.Role,
					Top:  evalSplit.Components.Top - baseEval.Components.Top,
				},
			})
		}
	}

	sort.SliceStable(swaps, func(i, j int) bool {
		if swaps[i].ScoreDelta != swaps[j].ScoreDelta {
			return swaps[i].ScoreDelta < swaps[j].ScoreDelta
		}
		return absf(swaps[i].AbsDiffDelta) < absf(swaps[j].AbsDiffDelta)
	})

	if len(swaps) > topN {
		swaps = swaps[:topN]
	}
	return swaps
}

func replaceWith(team []string, remove, add string) []string {
	out := make([]string, 0, len(team))
	for _, id := range team {
		if id == remove {
			continue
		}
		out = append(out, id)
	}
	out = append(out, add)
	return out
}
