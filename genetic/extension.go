package genetic

import "math/rand/v2"

// --- Adaptive Parameter Control ---

// MutationSchedule ramps the mutation rate linearly over the generation budget
// Rate(g) = min(MaxRate, BaseRate + g/max(1,Generations)*Ramp)
type MutationSchedule struct {
	BaseRate    float64
	Ramp        float64
	MaxRate     float64
	Generations int
}

// Rate is non-decreasing in generation for Ramp >= 0 and never exceeds MaxRate
func (s MutationSchedule) Rate(generation int) float64 {
	if generation < 0 {
		generation = 0
	}
	budget := max(1, s.Generations)
	rate := s.BaseRate + float64(generation)/float64(budget)*s.Ramp
	return min(s.MaxRate, rate)
}

// AdaptiveMutator perturbs genomes at the scheduled rate of their generation
type AdaptiveMutator struct {
	Schedule    MutationSchedule
	Perturbator Perturbator
}

func (am *AdaptiveMutator) Perturb(genome Genome, generation int, rng *rand.Rand) {
	am.Perturbator.Perturb(genome, am.Schedule.Rate(generation), rng)
}
