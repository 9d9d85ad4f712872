package tracking

import (
	"sync"

	"github.com/lixenwraith/mazewalk/genetic"
)

// History is an Observer keeping one MetricBundle per generation
type History struct {
	mu        sync.RWMutex
	bundles   []MetricBundle
	collector Collector
	solvedAt  int
}

// NewHistory creates an empty history backed by a RunCollector
func NewHistory() *History {
	return &History{collector: NewRunCollector(), solvedAt: -1}
}

// Bundle converts a report to its metric form
func Bundle(r genetic.Report) MetricBundle {
	solved := 0.0
	if r.Solved {
		solved = 1
	}
	return MetricBundle{
		MetricGeneration:   float64(r.Generation),
		MetricBest:         r.Stats.Best,
		MetricMean:         r.Stats.Mean,
		MetricWorst:        r.Stats.Worst,
		MetricStdDev:       r.Stats.StdDev,
		MetricDiversity:    r.Stats.Diversity,
		MetricBestEver:     r.BestEver.Score,
		MetricMutationRate: r.MutationRate,
		MetricEvaluations:  float64(r.Evaluations),
		MetricSolved:       solved,
	}
}

// OnGeneration implements genetic.Observer
func (h *History) OnGeneration(r genetic.Report) {
	b := Bundle(r)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.bundles = append(h.bundles, b)
	h.collector.Collect(b)
	if r.Solved && h.solvedAt < 0 {
		h.solvedAt = r.Generation
	}
}

// Len returns the number of recorded generations
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.bundles)
}

// Series returns one value per generation; missing keys read as 0
func (h *History) Series(key string) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]float64, len(h.bundles))
	for i, b := range h.bundles {
		out[i] = b.Get(key, 0)
	}
	return out
}

// Last returns the most recent bundle, nil when empty
func (h *History) Last() MetricBundle {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.bundles) == 0 {
		return nil
	}
	return h.bundles[len(h.bundles)-1].Clone()
}

// Summary aggregates the run: avg/min/max per metric plus solved_at
func (h *History) Summary() MetricBundle {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.collector.Finalize(MetricBundle{MetricSolvedAt: float64(h.solvedAt)})
}

// Reset drops all recorded generations
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bundles = nil
	h.collector.Reset()
	h.solvedAt = -1
}
