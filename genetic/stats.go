package genetic

import (
	"github.com/xrash/smetrics"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// calculateStats summarizes a ranked pool; diversity looks at the first sample members
func calculateStats(ranked []Candidate, sample int, codec Codec) PoolStats {
	if len(ranked) == 0 {
		return PoolStats{}
	}

	scores := make([]float64, len(ranked))
	for i, c := range ranked {
		scores[i] = c.Score
	}

	stats := PoolStats{
		Best:  floats.Max(scores),
		Worst: floats.Min(scores),
	}
	if len(scores) > 1 {
		stats.Mean, stats.StdDev = stat.MeanStdDev(scores, nil)
	} else {
		stats.Mean = scores[0]
	}

	stats.Diversity = diversity(ranked[:min(sample, len(ranked))], codec)
	return stats
}

// diversity is the mean Hamming distance of members[1:] to members[0], normalized by genome length
func diversity(members []Candidate, codec Codec) float64 {
	if len(members) < 2 || len(members[0].Genome) == 0 {
		return 0
	}

	best := codec.Encode(members[0].Genome)
	var total float64
	var counted int
	for _, m := range members[1:] {
		d, err := smetrics.Hamming(best, codec.Encode(m.Genome))
		if err != nil {
			// Lengths differ; only possible for malformed genomes
			continue
		}
		total += float64(d) / float64(len(best))
		counted++
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}
