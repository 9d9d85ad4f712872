package parameter

// Fitness - Baseline reward shaping
const (
	FitnessWallPenalty     = 5.0
	FitnessNoveltyReward   = 20.0
	FitnessClosenessReward = 20.0
	FitnessRetreatPenalty  = 10.0
	FitnessGoalReward      = 1000.0
	FitnessSpeedReward     = 10.0
	FitnessExploreReward   = 10.0
	FitnessReversalPenalty = 20.0
)

// Fitness - Residual credit for runs that end short of the goal
const (
	// FitnessResidualReward is the credit for a best distance of 0
	FitnessResidualReward = 100.0

	// FitnessResidualFalloff is subtracted per unit of best distance reached
	FitnessResidualFalloff = 5.0
)

// Fitness - Explorer preset overrides
const (
	FitnessExplorerNoveltyReward = 40.0
	FitnessExplorerExploreReward = 50.0
	FitnessExplorerWallPenalty   = 2.0
)

// FitnessDefaultPreset names the weight preset used when none is configured
const FitnessDefaultPreset = "guided"
