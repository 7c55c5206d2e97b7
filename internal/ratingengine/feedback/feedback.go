// Package feedback distills QuickFeedback survey answers into per-player
// rating nudges, per spec.md §4.4.
package feedback

import (
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/config"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"
)

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// AnchorDelta accumulates |net| step amounts using the schedule
// [step1, step2_to_4, step2_to_4, step2_to_4, step5_plus, step5_plus, ...]
// and applies the sign of net.
func AnchorDelta(net int, cfg *config.Config) float64 {
	if net == 0 {
		return 0
	}
	abs := net
	if abs < 0 {
		abs = -abs
	}
	total := 0.0
	for idx := 1; idx <= abs; idx++ {
		switch {
		case idx == 1:
			total += cfg.AnchorStep1
		case idx <= 4:
			total += cfg.AnchorStep2To4
		default:
			total += cfg.AnchorStep5Plus
		}
	}
	if net > 0 {
		return total
	}
	return -total
}

// PairwiseDeltas adds +pairwise_delta to each stronger and
// -pairwise_delta to each weaker, then clamps each player's sum to
// +/- pairwise_clamp.
func PairwiseDeltas(comparisons []domain.PairwiseComparison, cfg *config.Config) map[string]float64 {
	deltas := map[string]float64{}
	for _, comp := range comparisons {
		deltas[comp.Stronger] += cfg.PairwiseDelta
		deltas[comp.Weaker] -= cfg.PairwiseDelta
	}
	for player, value := range deltas {
		deltas[player] = clamp(value, -cfg.PairwiseClamp, cfg.PairwiseClamp)
	}
	return deltas
}

// FanRatingDeltas sums +/- fan_delta per player, skipping responses
// tagged "guest_peer", then clamps each player's sum to +/- fan_clamp.
func FanRatingDeltas(responses []domain.FanResponse, cfg *config.Config) map[string]float64 {
	deltas := map[string]float64{}
	for _, r := range responses {
		if r.InteractionType == "guest_peer" {
			continue
		}
		value := -cfg.FanDelta
		if r.Polarity > 0 {
			value = cfg.FanDelta
		}
		deltas[r.Player] += value
	}
	for player, value := range deltas {
		deltas[player] = clamp(value, -cfg.FanClamp, cfg.FanClamp)
	}
	return deltas
}

// ComputeQuickAdjustments sums anchor + pairwise + fan deltas per
// player for one QuickFeedback.
func ComputeQuickAdjustments(q *domain.QuickFeedback, cfg *config.Config) map[string]float64 {
	deltas := map[string]float64{}
	if q == nil {
		return deltas
	}
	for player, anchor := range q.Anchors {
		net := anchor.MVP - anchor.BroughtDown
		deltas[player] += AnchorDelta(net, cfg)
	}
	for player, value := range PairwiseDeltas(q.Pairwise, cfg) {
		deltas[player] += value
	}
	for player, value := range FanRatingDeltas(q.FanResponses, cfg) {
		deltas[player] += value
	}
	return deltas
}
