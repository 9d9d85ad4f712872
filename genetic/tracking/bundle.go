package tracking

// MetricBundle is a generic container for named metrics
// Keys are metric names, values are float64 measurements
type MetricBundle map[string]float64

// Per-generation metric keys
const (
	MetricGeneration   = "generation"
	MetricBest         = "best"
	MetricMean         = "mean"
	MetricWorst        = "worst"
	MetricStdDev       = "stddev"
	MetricDiversity    = "diversity"
	MetricBestEver     = "best_ever"
	MetricMutationRate = "mutation_rate"
	MetricEvaluations  = "evaluations"
	MetricSolved       = "solved"
)

// Run summary keys
const (
	MetricGenerationCount = "generation_count"
	MetricSolvedAt        = "solved_at"
)

// Get returns metric value or default if not present
func (b MetricBundle) Get(key string, defaultVal float64) float64 {
	if v, ok := b[key]; ok {
		return v
	}
	return defaultVal
}

// Merge combines two bundles, other values override existing
func (b MetricBundle) Merge(other MetricBundle) MetricBundle {
	result := make(MetricBundle, len(b)+len(other))
	for k, v := range b {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Clone creates a deep copy
func (b MetricBundle) Clone() MetricBundle {
	result := make(MetricBundle, len(b))
	for k, v := range b {
		result[k] = v
	}
	return result
}

// Collector accumulates metrics across the generations of a run
type Collector interface {
	// Collect records metrics for a single generation
	Collect(metrics MetricBundle)

	// Finalize returns accumulated metrics merged with final, run-level values
	Finalize(final MetricBundle) MetricBundle

	// Reset clears accumulated state for reuse
	Reset()
}
