// Package config holds the immutable tuning bundle that drives every
// other ratingengine package. Nothing here mutates after DefaultConfig
// or Load returns; tests inject variants by constructing a fresh Config.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Config is the frozen set of constants the engine is tuned by. Field
// names and defaults mirror the original team_model.Config dataclass.
type Config struct {
	GlobalStartRating float64 `yaml:"global_start_rating"`
	VenueStartRating  float64 `yaml:"venue_start_rating"`

	RatingEffVenueWeight  float64 `yaml:"rating_eff_venue_weight"`
	RatingEffGlobalWeight float64 `yaml:"rating_eff_global_weight"`

	SegmentWeightFirst  float64 `yaml:"segment_weight_first"`
	SegmentWeightMiddle float64 `yaml:"segment_weight_middle"`
	SegmentWeightLast   float64 `yaml:"segment_weight_last"`

	ButtGameSegmentMultiplier float64 `yaml:"butt_game_segment_multiplier"`
	ButtGameEventMultiplier   float64 `yaml:"butt_game_event_multiplier"`

	EventBaseGoal   float64 `yaml:"event_base_goal"`
	EventBaseAssist float64 `yaml:"event_base_assist"`
	EventScale      float64 `yaml:"event_scale"`

	AnchorStep1      float64 `yaml:"anchor_step1"`
	AnchorStep2To4   float64 `yaml:"anchor_step2_to_4"`
	AnchorStep5Plus  float64 `yaml:"anchor_step5_plus"`

	PairwiseDelta float64 `yaml:"pairwise_delta"`
	PairwiseClamp float64 `yaml:"pairwise_clamp"`

	FanDelta float64 `yaml:"fan_delta"`
	FanClamp float64 `yaml:"fan_clamp"`

	QuickAdjustmentCapPct float64 `yaml:"quick_adjustment_cap_pct"`
	CapPct                float64 `yaml:"cap_pct"`

	TopPlayerThresh float64 `yaml:"top_player_thresh"`
	TopPlayerBand1  float64 `yaml:"top_player_band1"`
	TopPlayerBand2  float64 `yaml:"top_player_band2"`
	TopPlayerMult1  float64 `yaml:"top_player_mult1"`
	TopPlayerMult2  float64 `yaml:"top_player_mult2"`
	TopPlayerMult3  float64 `yaml:"top_player_mult3"`

	GuestInitialOffset      float64 `yaml:"guest_initial_offset"`
	GuestInitialMin         float64 `yaml:"guest_initial_min"`
	GuestInitialMax         float64 `yaml:"guest_initial_max"`
	GuestLearningMultFirst2 float64 `yaml:"guest_learning_mult_first2"`
	GuestLearningMultThird  float64 `yaml:"guest_learning_mult_third"`

	TeamgenSynergyWeight    float64 `yaml:"teamgen_synergy_weight"`
	TeamgenDominationWeight float64 `yaml:"teamgen_domination_weight"`
	TeamgenRoleWeight       float64 `yaml:"teamgen_role_weight"`
	TeamgenOverlapMinDiff   int     `yaml:"teamgen_overlap_min_diff"`
	TeamgenTopK             int     `yaml:"teamgen_top_k"`
	TeamgenTopMaxPerTeam    int     `yaml:"teamgen_top_max_per_team"`
	TeamgenTopPenalty       float64 `yaml:"teamgen_top_penalty"`

	AutoSynergyWin        float64 `yaml:"auto_synergy_win"`
	AutoDominationWin     float64 `yaml:"auto_domination_win"`
	AutoSynergyGoalAssist float64 `yaml:"auto_synergy_goal_assist"`
}

// DefaultConfig returns the literal defaults from the specification.
func DefaultConfig() *Config {
	return &Config{
		GlobalStartRating: 1000,
		VenueStartRating:  1000,

		RatingEffVenueWeight:  0.60,
		RatingEffGlobalWeight: 0.40,

		SegmentWeightFirst:  0.3,
		SegmentWeightMiddle: 0.6,
		SegmentWeightLast:   1.0,

		ButtGameSegmentMultiplier: 1.375,
		ButtGameEventMultiplier:   1.75,

		EventBaseGoal:   10,
		EventBaseAssist: 6,
		EventScale:      0.6,

		AnchorStep1:     15,
		AnchorStep2To4:  2,
		AnchorStep5Plus: 1,

		PairwiseDelta: 4,
		PairwiseClamp: 12,

		FanDelta: 2,
		FanClamp: 6,

		QuickAdjustmentCapPct: 0.9,
		CapPct:                0.08,

		TopPlayerThresh: 500,
		TopPlayerBand1:  100,
		TopPlayerBand2:  200,
		TopPlayerMult1:  0.9,
		TopPlayerMult2:  0.75,
		TopPlayerMult3:  0.6,

		GuestInitialOffset:      40,
		GuestInitialMin:         850,
		GuestInitialMax:         1150,
		GuestLearningMultFirst2: 1.35,
		GuestLearningMultThird:  1.15,

		TeamgenSynergyWeight:    0.002,
		TeamgenDominationWeight: 0.002,
		TeamgenRoleWeight:       0.01,
		TeamgenOverlapMinDiff:   2,
		TeamgenTopK:             4,
		TeamgenTopMaxPerTeam:    2,
		TeamgenTopPenalty:       50,

		AutoSynergyWin:        0.5,
		AutoDominationWin:     0.3,
		AutoSynergyGoalAssist: 0.4,
	}
}

// Validate checks the invariants the spec requires of any injected
// Config: the rating blend weights must sum to 1.
func (c *Config) Validate() error {
	sum := c.RatingEffVenueWeight + c.RatingEffGlobalWeight
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("rating_eff_venue_weight + rating_eff_global_weight must sum to 1, got %f", sum)
	}
	return nil
}

// Load reads a Config from a YAML file, starting from DefaultConfig so
// a partial file only overrides the fields it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ratingengine config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse ratingengine config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal ratingengine config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write ratingengine config: %w", err)
	}
	return nil
}
