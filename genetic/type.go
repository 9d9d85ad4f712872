package genetic

import (
	"math/rand/v2"

	"github.com/lixenwraith/mazewalk/maze"
)

// --- Core Data Structures ---

// Genome is a fixed-length move sequence, one direction per step
// Slices alias; use Clone whenever ownership moves to another generation
type Genome []maze.Direction

// Clone returns an independent copy
func (g Genome) Clone() Genome {
	if g == nil {
		return nil
	}
	return append(Genome(nil), g...)
}

// Candidate represents a genome with its evaluated score (higher = better)
type Candidate struct {
	Genome Genome
	Score  float64
}

// Clone deep-copies the genome
func (c Candidate) Clone() Candidate {
	return Candidate{Genome: c.Genome.Clone(), Score: c.Score}
}

// Pool is the working set of one generation
type Pool struct {
	// Members is the population in creation order; scores are filled during evaluation
	Members []Candidate
	// Generation is the zero-based index of the generation this pool represents
	Generation int
	// Stats is populated once the pool has been evaluated and ranked
	Stats PoolStats
}

// PoolStats contains statistical information about an evaluated pool
type PoolStats struct {
	Best      float64
	Worst     float64
	Mean      float64
	StdDev    float64
	Diversity float64 // Mean normalized Hamming distance of the top members to the best (0-1)
}

// State is the controller lifecycle phase
type State uint8

const (
	StateIdle State = iota
	StateInitializing
	StateEvaluating
	StateEliteSelection
	StateReproduction
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateEvaluating:
		return "evaluating"
	case StateEliteSelection:
		return "elite-selection"
	case StateReproduction:
		return "reproduction"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// --- Collaborators ---

// Evaluator scores genomes against the maze model
// Evaluate must be pure and safe for concurrent use
type Evaluator interface {
	Evaluate(genome Genome, generation int) float64
	// Reaches reports whether the simulated walk ends on the goal
	Reaches(genome Genome) bool
}

// Selector builds a parent pool from an evaluated population
type Selector interface {
	// Select returns size independent copies drawn from members
	Select(members []Candidate, size int, rng *rand.Rand) []Candidate
}

// Combiner recombines two parents into one child
type Combiner interface {
	Combine(p1, p2 Genome, rng *rand.Rand) Genome
}

// Perturbator mutates a genome in place
// The rate parameter is the per-gene mutation probability (0-1)
type Perturbator interface {
	Perturb(genome Genome, rate float64, rng *rand.Rand)
}

// Observer receives one report per evaluated generation
// Observers must not retain the report's genomes past the call unless they copy them
type Observer interface {
	OnGeneration(report Report)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Report)

func (f ObserverFunc) OnGeneration(r Report) { f(r) }

// Report is the per-generation snapshot handed to observers
type Report struct {
	Generation   int
	Generations  int
	Top          []Candidate // Ranked best-first, cloned
	Stats        PoolStats
	BestEver     Candidate
	MutationRate float64
	Evaluations  int // Cumulative fitness evaluations
	Solved       bool
}
