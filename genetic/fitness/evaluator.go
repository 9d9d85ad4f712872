package fitness

import (
	"fmt"
	"math"

	"github.com/lixenwraith/mazewalk/genetic"
	"github.com/lixenwraith/mazewalk/maze"
)

// Terms breaks a score into its reward-shaping contributions
// Penalty terms are stored with their negative sign
type Terms struct {
	Wall      float64
	Novelty   float64
	Reversal  float64
	Closeness float64
	Retreat   float64
	Goal      float64
	Speed     float64
	Residual  float64
	Explore   float64

	// Total is accumulated step by step in evaluation order
	Total float64
	// GoalStep is the zero-based step that reached the goal, -1 otherwise
	GoalStep int
}

func (t *Terms) add(term *float64, v float64) {
	*term += v
	t.Total += v
}

// Evaluator simulates genomes on a maze and scores the walk
// It holds no mutable state and is safe for concurrent use
type Evaluator struct {
	maze        *maze.Maze
	weights     Weights
	steps       int
	generations int
}

// NewEvaluator binds weights to a maze, a genome length and a generation budget
func NewEvaluator(m *maze.Maze, w Weights, steps, generations int) (*Evaluator, error) {
	if m == nil {
		return nil, fmt.Errorf("fitness: maze must not be nil")
	}
	if steps <= 0 {
		return nil, fmt.Errorf("fitness: steps must be positive, got %d", steps)
	}
	if generations <= 0 {
		return nil, fmt.Errorf("fitness: generations must be positive, got %d", generations)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{maze: m, weights: w, steps: steps, generations: generations}, nil
}

func (e *Evaluator) Steps() int       { return e.steps }
func (e *Evaluator) Weights() Weights { return e.weights }
func (e *Evaluator) Maze() *maze.Maze { return e.maze }

// Evaluate implements genetic.Evaluator
func (e *Evaluator) Evaluate(g genetic.Genome, generation int) float64 {
	return e.Explain(g, generation).Total
}

// Explain scores g and returns every contribution. Panics on malformed genomes
func (e *Evaluator) Explain(g genetic.Genome, generation int) Terms {
	genetic.MustValidate(g, e.steps)

	w := e.weights
	m := e.maze
	goal := m.Goal()
	ctx := Context{Generation: generation, Generations: e.generations}

	pos := m.Start()
	visited := make([]bool, m.Width()*m.Height())
	visited[e.index(pos)] = true
	bestDist := distance(pos, goal)

	t := Terms{GoalStep: -1}
	last := pos

	for step, move := range g {
		next := m.Move(pos, move)
		last = next
		progress := distance(pos, goal) - distance(next, goal)

		if next == pos {
			t.add(&t.Wall, -w.WallPenalty)
		} else {
			if !visited[e.index(next)] {
				t.add(&t.Novelty, w.NoveltyReward)
				visited[e.index(next)] = true
			} else if step > 0 && next == m.Move(pos, g[step-1].Opposite()) {
				// Only an immediate back-step is punished; longer loops are not
				t.add(&t.Reversal, -w.ReversalPenalty)
			}

			t.add(&t.Closeness, progress*w.ClosenessReward)
			if progress < 0 {
				t.add(&t.Retreat, progress*w.RetreatPenalty)
			}
		}

		bestDist = min(bestDist, distance(next, goal))
		pos = next

		if pos == goal {
			t.add(&t.Goal, w.GoalReward)
			t.add(&t.Speed, float64(e.steps-step)*w.SpeedReward)
			t.GoalStep = step
			return t
		}
	}

	t.add(&t.Residual, max(0, w.ResidualReward-w.ResidualFalloff*bestDist))

	// Looks only at the final step's landing cell
	if !visited[e.index(last)] {
		t.add(&t.Explore, ctx.ExploreFactor()*w.ExploreReward)
	}

	return t
}

// Trace returns the start and every position walked, stopping at the goal
func (e *Evaluator) Trace(g genetic.Genome) []maze.Position {
	m := e.maze
	pos := m.Start()
	path := make([]maze.Position, 1, len(g)+1)
	path[0] = pos
	for _, move := range g {
		pos = m.Move(pos, move)
		path = append(path, pos)
		if pos == m.Goal() {
			break
		}
	}
	return path
}

// End returns the simulated final position
func (e *Evaluator) End(g genetic.Genome) maze.Position {
	path := e.Trace(g)
	return path[len(path)-1]
}

// Reaches implements genetic.Evaluator
func (e *Evaluator) Reaches(g genetic.Genome) bool {
	return e.End(g) == e.maze.Goal()
}

func (e *Evaluator) index(p maze.Position) int {
	return p.Row*e.maze.Width() + p.Col
}

// distance is the Euclidean grid distance
func distance(a, b maze.Position) float64 {
	return math.Hypot(float64(a.Row-b.Row), float64(a.Col-b.Col))
}
