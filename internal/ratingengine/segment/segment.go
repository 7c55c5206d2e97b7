// Package segment implements the per-segment weighting and weighted
// goal differential described in spec.md §4.2.
package segment

import (
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/config"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"
)

// Weight returns the weight for segment index i out of total segments N.
func Weight(index, total int, cfg *config.Config) float64 {
	if total <= 1 {
		return cfg.SegmentWeightLast
	}
	if index == 0 {
		return cfg.SegmentWeightFirst
	}
	if index == total-1 {
		return cfg.SegmentWeightLast
	}
	return cfg.SegmentWeightMiddle
}

// WeightedGoalDiff sums (goals_a - goals_b) * weight * butt-multiplier
// across every segment. A nil or empty slice yields 0.
func WeightedGoalDiff(segments []domain.Segment, cfg *config.Config) float64 {
	total := len(segments)
	result := 0.0
	for _, seg := range segments {
		diff := float64(seg.GoalsA - seg.GoalsB)
		weight := Weight(seg.SegmentIndex, total, cfg)
		mult := 1.0
		if seg.IsButtGame {
			mult = cfg.ButtGameSegmentMultiplier
		}
		result += diff * weight * mult
	}
	return result
}
