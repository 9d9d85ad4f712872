// Package genetic evolves fixed-length move sequences toward a maze goal
// 1. Genomes are plain direction slices, cloned on every ownership transfer
// 2. Operators are interfaces so variants plug in without touching the loop
// 3. All randomness flows through one seeded *rand.Rand owned by the Engine
// 4. Fitness is injected through Evaluator; this package has no reward knowledge
package genetic

import (
	"math/rand/v2"

	"github.com/lixenwraith/mazewalk/maze"
)

// --- Concrete Operator Implementations ---

// RandomGenome draws steps uniformly random directions
func RandomGenome(steps int, rng *rand.Rand) Genome {
	g := make(Genome, steps)
	for i := range g {
		g[i] = maze.Direction(rng.IntN(maze.NumDirections))
	}
	return g
}

// TournamentSelector implements tournament selection
// Each tournament samples K distinct members and keeps the best
type TournamentSelector struct {
	// K is the number of distinct contestants per tournament
	K int

	// scratch holds a running index permutation reused across tournaments
	scratch []int
}

// Select runs size tournaments; winners may repeat across tournaments
func (ts *TournamentSelector) Select(members []Candidate, size int, rng *rand.Rand) []Candidate {
	n := len(members)
	if n == 0 || size <= 0 {
		return nil
	}

	k := ts.K
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	if len(ts.scratch) != n {
		ts.scratch = make([]int, n)
		for i := range ts.scratch {
			ts.scratch[i] = i
		}
	}
	idx := ts.scratch

	selected := make([]Candidate, 0, size)
	for len(selected) < size {
		// Partial Fisher-Yates: idx[:k] becomes a uniform k-subset
		for i := 0; i < k; i++ {
			j := i + rng.IntN(n-i)
			idx[i], idx[j] = idx[j], idx[i]
		}

		// First drawn wins ties
		winner := idx[0]
		for _, c := range idx[1:k] {
			if members[c].Score > members[winner].Score {
				winner = c
			}
		}

		selected = append(selected, members[winner].Clone())
	}

	return selected
}

// TwoPointCombiner performs two-point crossover with cuts split around the midpoint
// cut1 in [0, L/2], cut2 in [L/2, L]; the middle segment comes from the second parent
type TwoPointCombiner struct{}

// Combine returns p1[:cut1] + p2[cut1:cut2] + p1[cut2:]
func (TwoPointCombiner) Combine(p1, p2 Genome, rng *rand.Rand) Genome {
	length := len(p1)
	if len(p2) != length {
		panic("genetic: crossover parents differ in length")
	}

	half := length / 2
	cut1 := rng.IntN(half + 1)
	cut2 := half + rng.IntN(length-half+1)

	child := make(Genome, length)
	copy(child, p1)
	copy(child[cut1:cut2], p2[cut1:cut2])
	return child
}

// ResamplePerturbator mutates genes independently at the given rate
// A mutated gene is resampled uniformly with ResampleProbability, otherwise turned +/-1 with wrap
type ResamplePerturbator struct {
	ResampleProbability float64
}

func (rp *ResamplePerturbator) Perturb(genome Genome, rate float64, rng *rand.Rand) {
	for i := range genome {
		if rng.Float64() >= rate {
			continue
		}
		if rng.Float64() < rp.ResampleProbability {
			genome[i] = maze.Direction(rng.IntN(maze.NumDirections))
			continue
		}
		delta := 1
		if rng.IntN(2) == 0 {
			delta = -1
		}
		genome[i] = turn(genome[i], delta)
	}
}
