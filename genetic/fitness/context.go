package fitness

// Context carries run progress into generation-dependent terms
type Context struct {
	Generation  int
	Generations int
}

// ExploreFactor decays linearly from 1 at the first generation to 0 at the budget
func (c Context) ExploreFactor() float64 {
	if c.Generations <= 0 {
		return 0
	}
	return max(0, 1-float64(c.Generation)/float64(c.Generations))
}
