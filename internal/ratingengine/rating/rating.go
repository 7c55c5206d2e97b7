// Package rating implements the venue/global rating blend described in
// spec.md §4.3.
package rating

import (
	"gonum.org/v1/gonum/stat"

	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/config"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"
)

// Effective returns the blended venue+global rating for a player at venue.
func Effective(p *domain.PlayerState, venue string, cfg *config.Config) float64 {
	venueRating := p.VenueRating(venue, cfg.VenueStartRating)
	return cfg.RatingEffVenueWeight*venueRating + cfg.RatingEffGlobalWeight*p.GlobalRating
}

// AvgMatch returns the arithmetic mean of the effective ratings of
// players at venue. An empty slice yields 0.
func AvgMatch(players []*domain.PlayerState, venue string, cfg *config.Config) float64 {
	if len(players) == 0 {
		return 0
	}
	values := make([]float64, len(players))
	for i, p := range players {
		values[i] = Effective(p, venue, cfg)
	}
	return stat.Mean(values, nil)
}
