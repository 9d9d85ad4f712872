package fitness

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/mazewalk/genetic"
	"github.com/lixenwraith/mazewalk/maze"
)

const testSteps = 10

// corridorMaze opens row 1 from column 1 to length, walls everywhere else
func corridorMaze(t *testing.T, length int, start, goal maze.Position) *maze.Maze {
	t.Helper()
	grid := make([][]bool, 3)
	for r := range grid {
		grid[r] = make([]bool, length+2)
		for c := range grid[r] {
			grid[r][c] = maze.Wall
		}
	}
	for c := 1; c <= length; c++ {
		grid[1][c] = maze.Passage
	}
	m, err := maze.NewMaze(grid, start, goal)
	if err != nil {
		t.Fatalf("corridor: %v", err)
	}
	return m
}

func newEvaluator(t *testing.T, m *maze.Maze, w Weights) *Evaluator {
	t.Helper()
	e, err := NewEvaluator(m, w, testSteps, 100)
	if err != nil {
		t.Fatalf("evaluator: %v", err)
	}
	return e
}

func genome(prefix []maze.Direction, fill maze.Direction) genetic.Genome {
	g := make(genetic.Genome, testSteps)
	for i := range g {
		g[i] = fill
	}
	copy(g, prefix)
	return g
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEvaluate_CorridorReachesGoal(t *testing.T) {
	m := corridorMaze(t, 3, maze.Position{Row: 1, Col: 1}, maze.Position{Row: 1, Col: 3})
	e := newEvaluator(t, m, BaselineWeights())

	g := genome([]maze.Direction{maze.Right, maze.Right}, maze.Up)
	score := e.Evaluate(g, 0)

	if score < e.Weights().GoalReward {
		t.Errorf("expected score >= %v, got %v", e.Weights().GoalReward, score)
	}
	if !e.Reaches(g) {
		t.Error("expected genome to reach the goal")
	}

	// 2 novel cells, 2 unit progress steps, goal bonus, speed bonus for step 1
	expected := 2*20.0 + 2*20.0 + 1000 + float64(testSteps-1)*10
	if !approx(score, expected) {
		t.Errorf("expected %v, got %v", expected, score)
	}
}

func TestEvaluate_GoalShortCircuit(t *testing.T) {
	m := corridorMaze(t, 3, maze.Position{Row: 1, Col: 1}, maze.Position{Row: 1, Col: 3})
	e := newEvaluator(t, m, BaselineWeights())

	a := genome([]maze.Direction{maze.Right, maze.Right}, maze.Left)
	b := genome([]maze.Direction{maze.Right, maze.Right}, maze.Up)

	ta := e.Explain(a, 0)
	tb := e.Explain(b, 0)

	if ta.Total != tb.Total {
		t.Errorf("moves after the goal must not count: %v vs %v", ta.Total, tb.Total)
	}
	if ta.GoalStep != 1 {
		t.Errorf("expected goal at step 1, got %d", ta.GoalStep)
	}
	if ta.Goal != 1000 {
		t.Errorf("expected goal bonus 1000, got %v", ta.Goal)
	}
	if ta.Speed != float64(testSteps-1)*10 {
		t.Errorf("expected speed bonus %v, got %v", float64(testSteps-1)*10, ta.Speed)
	}
	if ta.Wall != 0 || ta.Residual != 0 || ta.Explore != 0 {
		t.Errorf("no post-goal terms expected, got %+v", ta)
	}
}

func TestEvaluate_WallBumpersScoreBelowMovers(t *testing.T) {
	m := corridorMaze(t, 4, maze.Position{Row: 1, Col: 1}, maze.Position{Row: 1, Col: 4})

	for _, preset := range Presets() {
		w, err := Lookup(preset)
		if err != nil {
			t.Fatal(err)
		}
		e := newEvaluator(t, m, w)

		bumpers := []genetic.Genome{
			genome(nil, maze.Up),
			genome(nil, maze.Down),
			genome(nil, maze.Left),
			genome([]maze.Direction{maze.Up, maze.Left, maze.Down}, maze.Left),
		}
		mover := genome([]maze.Direction{maze.Right}, maze.Up)
		moverScore := e.Evaluate(mover, 0)

		for i, b := range bumpers {
			if s := e.Evaluate(b, 0); s >= moverScore {
				t.Errorf("%s: bumper %d scored %v, mover %v", preset, i, s, moverScore)
			}
		}
	}
}

// A novel move away from the goal costs more than a bump under the baseline weights
func TestEvaluate_NovelRetreatBelowBumper(t *testing.T) {
	m := corridorMaze(t, 4, maze.Position{Row: 1, Col: 2}, maze.Position{Row: 1, Col: 4})
	e := newEvaluator(t, m, BaselineWeights())

	bumper := e.Evaluate(genome(nil, maze.Up), 0)
	retreat := e.Evaluate(genome([]maze.Direction{maze.Left}, maze.Up), 0)
	if retreat != bumper-5 {
		t.Errorf("expected retreat %v, got %v", bumper-5, retreat)
	}
}

func TestEvaluate_WallTermsOnly(t *testing.T) {
	m := corridorMaze(t, 4, maze.Position{Row: 1, Col: 1}, maze.Position{Row: 1, Col: 4})
	e := newEvaluator(t, m, BaselineWeights())

	terms := e.Explain(genome(nil, maze.Up), 0)
	if terms.Wall != -5*testSteps {
		t.Errorf("expected wall term %v, got %v", -5*testSteps, terms.Wall)
	}
	if terms.Novelty != 0 || terms.Closeness != 0 || terms.Retreat != 0 {
		t.Errorf("bumps must not earn movement terms: %+v", terms)
	}
}

func TestEvaluate_RetreatDoubleCounted(t *testing.T) {
	m := corridorMaze(t, 4, maze.Position{Row: 1, Col: 2}, maze.Position{Row: 1, Col: 4})
	e := newEvaluator(t, m, BaselineWeights())

	terms := e.Explain(genome([]maze.Direction{maze.Left}, maze.Up), 0)

	// distance 2 -> 3: progress -1
	if !approx(terms.Closeness, -20) {
		t.Errorf("expected closeness -20, got %v", terms.Closeness)
	}
	if !approx(terms.Retreat, -10) {
		t.Errorf("expected retreat -10, got %v", terms.Retreat)
	}
	if terms.Novelty != 20 {
		t.Errorf("expected novelty 20, got %v", terms.Novelty)
	}
}

func TestEvaluate_ReversalPenalty(t *testing.T) {
	m := corridorMaze(t, 4, maze.Position{Row: 1, Col: 1}, maze.Position{Row: 1, Col: 4})
	e := newEvaluator(t, m, BaselineWeights())

	back := e.Explain(genome([]maze.Direction{maze.Right, maze.Left}, maze.Up), 0)
	if back.Reversal != -20 {
		t.Errorf("expected reversal -20, got %v", back.Reversal)
	}

	// Revisit separated from the outbound move by a wall bump
	loop := e.Explain(genome([]maze.Direction{maze.Right, maze.Up, maze.Left}, maze.Up), 0)
	if loop.Reversal != 0 {
		t.Errorf("a bump between moves must not count as reversal, got %v", loop.Reversal)
	}
}

func TestEvaluate_ResidualFloorsAtZero(t *testing.T) {
	m := corridorMaze(t, 4, maze.Position{Row: 1, Col: 1}, maze.Position{Row: 1, Col: 4})
	w := BaselineWeights()
	w.ResidualReward = 10
	w.ResidualFalloff = 100
	e := newEvaluator(t, m, w)

	if terms := e.Explain(genome(nil, maze.Up), 0); terms.Residual != 0 {
		t.Errorf("expected floored residual, got %v", terms.Residual)
	}

	w.ResidualFalloff = 1
	e = newEvaluator(t, m, w)
	near := e.Explain(genome([]maze.Direction{maze.Right, maze.Right}, maze.Up), 0)
	far := e.Explain(genome(nil, maze.Up), 0)
	if near.Residual <= far.Residual {
		t.Errorf("closer approach must earn more residual: %v vs %v", near.Residual, far.Residual)
	}
}

func TestEvaluate_ExploreUsesFinalStepOnly(t *testing.T) {
	m := corridorMaze(t, 6, maze.Position{Row: 1, Col: 1}, maze.Position{Row: 1, Col: 6})
	w := BaselineWeights()
	w.ExploreReward = 1000
	e := newEvaluator(t, m, w)

	// The final landing cell is always marked visited by then
	terms := e.Explain(genome([]maze.Direction{maze.Right, maze.Right, maze.Right}, maze.Down), 0)
	if terms.Explore != 0 {
		t.Errorf("expected no explore credit, got %v", terms.Explore)
	}
}

func TestEvaluate_FiniteAndPure(t *testing.T) {
	cfg := maze.DefaultConfig()
	cfg.Seed = 99
	m, err := maze.Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for _, preset := range Presets() {
		w, _ := Lookup(preset)
		e, err := NewEvaluator(m, w, 200, 100)
		if err != nil {
			t.Fatal(err)
		}

		rng := rand.New(rand.NewPCG(1, 2))
		for i := 0; i < 200; i++ {
			g := genetic.RandomGenome(200, rng)
			gen := rng.IntN(100)

			a := e.Evaluate(g, gen)
			b := e.Evaluate(g, gen)
			if math.IsNaN(a) || math.IsInf(a, 0) {
				t.Fatalf("%s: non-finite score %v", preset, a)
			}
			if a != b {
				t.Fatalf("%s: evaluation not pure: %v vs %v", preset, a, b)
			}
		}
	}
}

func TestEvaluate_DoesNotMutateGenome(t *testing.T) {
	m := corridorMaze(t, 4, maze.Position{Row: 1, Col: 1}, maze.Position{Row: 1, Col: 4})
	e := newEvaluator(t, m, BaselineWeights())

	g := genome([]maze.Direction{maze.Right, maze.Left, maze.Down}, maze.Right)
	before := g.Clone()
	e.Evaluate(g, 3)
	for i := range g {
		if g[i] != before[i] {
			t.Fatalf("gene %d changed", i)
		}
	}
}

func TestEvaluate_MalformedPanics(t *testing.T) {
	m := corridorMaze(t, 4, maze.Position{Row: 1, Col: 1}, maze.Position{Row: 1, Col: 4})
	e := newEvaluator(t, m, BaselineWeights())

	for name, g := range map[string]genetic.Genome{
		"short": make(genetic.Genome, testSteps-1),
		"range": genome([]maze.Direction{4}, maze.Up),
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", name)
				}
			}()
			e.Evaluate(g, 0)
		}()
	}
}

func TestTrace_StopsAtGoal(t *testing.T) {
	m := corridorMaze(t, 3, maze.Position{Row: 1, Col: 1}, maze.Position{Row: 1, Col: 3})
	e := newEvaluator(t, m, BaselineWeights())

	path := e.Trace(genome([]maze.Direction{maze.Up, maze.Right, maze.Right}, maze.Left))
	want := []maze.Position{{Row: 1, Col: 1}, {Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3}}
	if len(path) != len(want) {
		t.Fatalf("expected %v, got %v", want, path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("step %d: expected %v, got %v", i, want[i], path[i])
		}
	}
}

func TestContext_ExploreFactor(t *testing.T) {
	if f := (Context{Generation: 0, Generations: 100}).ExploreFactor(); f != 1 {
		t.Errorf("expected 1 at start, got %v", f)
	}
	if f := (Context{Generation: 50, Generations: 100}).ExploreFactor(); f != 0.5 {
		t.Errorf("expected 0.5 halfway, got %v", f)
	}
	if f := (Context{Generation: 150, Generations: 100}).ExploreFactor(); f != 0 {
		t.Errorf("expected 0 past budget, got %v", f)
	}
}
