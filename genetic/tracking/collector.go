package tracking

// RunCollector implements Collector for a single run
// Finalize emits avg_, min_ and max_ per collected key
type RunCollector struct {
	generations int
	sums        map[string]float64
	counts      map[string]int
	mins        map[string]float64
	maxs        map[string]float64
	seen        map[string]bool
}

// NewRunCollector creates a reusable collector
func NewRunCollector() *RunCollector {
	return &RunCollector{
		sums:   make(map[string]float64),
		counts: make(map[string]int),
		mins:   make(map[string]float64),
		maxs:   make(map[string]float64),
		seen:   make(map[string]bool),
	}
}

func (c *RunCollector) Collect(metrics MetricBundle) {
	c.generations++

	for key, value := range metrics {
		c.sums[key] += value
		c.counts[key]++

		if !c.seen[key] {
			c.mins[key] = value
			c.maxs[key] = value
			c.seen[key] = true
			continue
		}
		c.mins[key] = min(c.mins[key], value)
		c.maxs[key] = max(c.maxs[key], value)
	}
}

func (c *RunCollector) Finalize(final MetricBundle) MetricBundle {
	result := make(MetricBundle)

	result[MetricGenerationCount] = float64(c.generations)

	for key, sum := range c.sums {
		if count := c.counts[key]; count > 0 {
			result["avg_"+key] = sum / float64(count)
		}
	}
	for key, val := range c.mins {
		result["min_"+key] = val
	}
	for key, val := range c.maxs {
		result["max_"+key] = val
	}

	for key, val := range final {
		result[key] = val
	}

	return result
}

func (c *RunCollector) Reset() {
	c.generations = 0
	clear(c.sums)
	clear(c.counts)
	clear(c.mins)
	clear(c.maxs)
	clear(c.seen)
}
