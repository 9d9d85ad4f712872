package parameter

// Genetic Algorithm - Engine Configuration
const (
	// GAPopulationSize is the number of individuals in each generation
	GAPopulationSize = 700

	// GASteps is the fixed genome length (moves per individual)
	GASteps = 200

	// GAGenerations caps the number of generations per run
	GAGenerations = 100

	// GAEliteFraction is the share of the population carried over unchanged
	GAEliteFraction = 0.2

	// GAMinElite is the floor on the elite count regardless of fraction
	GAMinElite = 2

	// GATournamentSize is the number of distinct contestants per tournament
	GATournamentSize = 8

	// GAParallelism bounds concurrent fitness evaluations (<= 1 evaluates serially)
	GAParallelism = 4

	// GATopN is the number of ranked individuals handed to observers each generation
	GATopN = 10
)

// Genetic Algorithm - Adaptive Mutation
const (
	// GAMutationBaseRate is the per-gene mutation probability at generation 0
	GAMutationBaseRate = 0.1

	// GAMutationRamp is added to the base rate linearly over the generation budget
	GAMutationRamp = 0.25

	// GAMutationMaxRate caps the per-gene mutation probability
	GAMutationMaxRate = 0.5

	// GAMutationResampleProbability splits a mutation between uniform resample and +/-1 turn
	GAMutationResampleProbability = 0.5
)

// Genetic Algorithm - Snapshots
const (
	// GeneticPersistencePath is the directory for population snapshot files
	GeneticPersistencePath = "./runs/population"
)
