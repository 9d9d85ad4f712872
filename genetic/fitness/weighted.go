package fitness

import (
	"fmt"
	"math"

	"github.com/lixenwraith/mazewalk/parameter"
)

// Weights are the named reward and penalty terms of the evaluator
// Penalties are subtracted, so they are configured as positive magnitudes
type Weights struct {
	WallPenalty     float64 `toml:"wall_penalty"`
	NoveltyReward   float64 `toml:"novelty_reward"`
	ClosenessReward float64 `toml:"closeness_reward"`
	RetreatPenalty  float64 `toml:"retreat_penalty"`
	GoalReward      float64 `toml:"goal_reward"`
	SpeedReward     float64 `toml:"speed_reward"`
	ExploreReward   float64 `toml:"explore_reward"`
	ReversalPenalty float64 `toml:"reversal_penalty"`

	// Residual credit for walks that stop short: max(0, ResidualReward - ResidualFalloff*bestDistance)
	ResidualReward  float64 `toml:"residual_reward"`
	ResidualFalloff float64 `toml:"residual_falloff"`
}

// BaselineWeights are the classic reward constants without residual credit
func BaselineWeights() Weights {
	return Weights{
		WallPenalty:     parameter.FitnessWallPenalty,
		NoveltyReward:   parameter.FitnessNoveltyReward,
		ClosenessReward: parameter.FitnessClosenessReward,
		RetreatPenalty:  parameter.FitnessRetreatPenalty,
		GoalReward:      parameter.FitnessGoalReward,
		SpeedReward:     parameter.FitnessSpeedReward,
		ExploreReward:   parameter.FitnessExploreReward,
		ReversalPenalty: parameter.FitnessReversalPenalty,
	}
}

// Validate rejects non-finite weights
func (w Weights) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"wall_penalty", w.WallPenalty},
		{"novelty_reward", w.NoveltyReward},
		{"closeness_reward", w.ClosenessReward},
		{"retreat_penalty", w.RetreatPenalty},
		{"goal_reward", w.GoalReward},
		{"speed_reward", w.SpeedReward},
		{"explore_reward", w.ExploreReward},
		{"reversal_penalty", w.ReversalPenalty},
		{"residual_reward", w.ResidualReward},
		{"residual_falloff", w.ResidualFalloff},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("fitness: %s must be finite, got %v", f.name, f.value)
		}
	}
	return nil
}
