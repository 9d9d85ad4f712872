package maze

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/mazewalk/parameter"
)

type Config struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// OpeningDensity: fraction of grid cells drawn as extra random openings after carving.
	// Openings create loops and alternative routes.
	OpeningDensity float64 `toml:"opening_density"`

	// Braiding: 0.0 (Perfect Maze/Tree) to 1.0 (No dead ends/Graph).
	// Constraints (No Plazas/Pillars) take precedence.
	Braiding float64 `toml:"braiding"`

	Start *Position `toml:"start"` // Optional (nil = (1,1))
	Goal  *Position `toml:"goal"`  // Optional (nil = bottom-right room)

	// MaxAttempts bounds regeneration with derived seeds when the goal is blocked or unreachable
	MaxAttempts int `toml:"max_attempts"`

	Seed uint64 `toml:"seed"` // Optional (0 = Random)
}

// DefaultConfig returns generation settings from the parameter package
func DefaultConfig() Config {
	return Config{
		Width:          parameter.MazeWidth,
		Height:         parameter.MazeHeight,
		OpeningDensity: parameter.MazeOpeningDensity,
		Braiding:       parameter.MazeBraiding,
		MaxAttempts:    parameter.MazeMaxAttempts,
	}
}

// Dimensions returns the effective grid size after rounding down to odd values
func (c Config) Dimensions() (rows, cols int) {
	return ensureOdd(c.Height), ensureOdd(c.Width)
}

// Validate rejects settings that cannot produce a maze
func (c Config) Validate() error {
	if c.OpeningDensity < 0 || c.OpeningDensity > 1 {
		return fmt.Errorf("maze: opening_density %v outside [0,1]", c.OpeningDensity)
	}
	if c.Braiding < 0 || c.Braiding > 1 {
		return fmt.Errorf("maze: braiding %v outside [0,1]", c.Braiding)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("maze: max_attempts must be positive, got %d", c.MaxAttempts)
	}
	rows, cols := c.Dimensions()
	for name, p := range map[string]*Position{"start": c.Start, "goal": c.Goal} {
		if p == nil {
			continue
		}
		if p.Row < 0 || p.Row >= rows || p.Col < 0 || p.Col >= cols {
			return fmt.Errorf("maze: %s %v outside %dx%d grid", name, *p, rows, cols)
		}
	}
	return nil
}

// Generate carves a maze, retrying with derived seeds until the goal is walkable and reachable
func Generate(cfg Config) (*Maze, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		s := seed + uint64(attempt)
		rng := rand.New(rand.NewPCG(s, s))

		m, err := generateOnce(cfg, rng)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, ErrGoalBlocked) && !errors.Is(err, ErrGoalUnreachable) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w after %d attempts (seed %d): %w", ErrDegenerateMaze, cfg.MaxAttempts, seed, lastErr)
}

func generateOnce(cfg Config, rng *rand.Rand) (*Maze, error) {
	// 1. Setup Topology
	// We round DOWN to the nearest odd number to stay within requested bounds.
	rows, cols := cfg.Dimensions()

	// 2. Initialize Grid (Filled with Walls)
	grid := make([][]bool, rows)
	for i := range grid {
		grid[i] = make([]bool, cols)
		for j := range grid[i] {
			grid[i][j] = Wall
		}
	}

	start := Position{Row: 1, Col: 1}
	if cfg.Start != nil {
		start = *cfg.Start
	}
	goal := Position{Row: rows - 2, Col: cols - 2}
	if cfg.Goal != nil {
		goal = *cfg.Goal
	}

	// 3. Core Generation (Recursive Backtracker)
	recursiveBacktracker(grid, start, rng)

	// 4. Braiding removes dead ends without creating plazas or pillars
	if cfg.Braiding > 0 {
		applySmartBraiding(grid, cfg.Braiding, rng)
	}

	// 5. Extra random openings in the interior
	openRandomCells(grid, int(float64(rows*cols)*cfg.OpeningDensity), rng)

	m, err := NewMaze(grid, start, goal)
	if err != nil {
		return nil, err
	}
	if m.ShortestPath() == nil {
		return nil, fmt.Errorf("%w: %v -> %v", ErrGoalUnreachable, start, goal)
	}
	return m, nil
}

// --- Core Algorithms ---

var jumps = []Position{{-2, 0}, {2, 0}, {0, -2}, {0, 2}}

func recursiveBacktracker(grid [][]bool, start Position, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])

	stack := []Position{start}
	grid[start.Row][start.Col] = Passage

	candidates := make([]Position, 0, len(jumps))
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range jumps {
			nr, nc := curr.Row+d.Row, curr.Col+d.Col
			// Leave 1 cell border for walls
			if nr > 0 && nr < rows-1 && nc > 0 && nc < cols-1 && grid[nr][nc] == Wall {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.IntN(len(candidates))]
		grid[curr.Row+d.Row/2][curr.Col+d.Col/2] = Passage
		next := Position{Row: curr.Row + d.Row, Col: curr.Col + d.Col}
		grid[next.Row][next.Col] = Passage
		stack = append(stack, next)
	}
}

func openRandomCells(grid [][]bool, count int, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	if rows < 3 || cols < 3 {
		return
	}
	for i := 0; i < count; i++ {
		r, c := 1+rng.IntN(rows-2), 1+rng.IntN(cols-2)
		grid[r][c] = Passage
	}
}

func applySmartBraiding(grid [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])

	// Iterate over odd nodes (Rooms)
	for r := 1; r < rows-1; r += 2 {
		for c := 1; c < cols-1; c += 2 {
			if grid[r][c] == Wall {
				continue
			}

			// A room is a dead end if it has exactly 1 Passage neighbor
			exits := 0
			for _, d := range offsets {
				if grid[r+d.Row][c+d.Col] == Passage {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]Position, 0, len(jumps))
			for _, j := range jumps {
				nr, nc := r+j.Row, c+j.Col     // Target room
				wr, wc := r+j.Row/2, c+j.Col/2 // The intervening wall
				if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
					continue
				}
				if grid[nr][nc] == Passage && grid[wr][wc] == Wall && canSafelyRemoveWall(grid, wr, wc) {
					candidates = append(candidates, Position{Row: wr, Col: wc})
				}
			}

			if len(candidates) > 0 {
				w := candidates[rng.IntN(len(candidates))]
				grid[w.Row][w.Col] = Passage
			}
		}
	}
}

// canSafelyRemoveWall checks if opening grid[r][c] creates prohibited topology:
// 1. Plazas (2x2 Passages).
// 2. Pillars (Isolated Walls).
func canSafelyRemoveWall(grid [][]bool, r, c int) bool {
	rows, cols := len(grid), len(grid[0])

	// Out of bounds reads as Wall for plaza checking purposes
	isP := func(tr, tc int) bool {
		if tr < 0 || tr >= rows || tc < 0 || tc >= cols {
			return false
		}
		return grid[tr][tc] == Passage
	}

	// No plaza in any of the four 2x2 quadrants touching (r,c)
	for _, q := range [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		if isP(r+q[0], c) && isP(r, c+q[1]) && isP(r+q[0], c+q[1]) {
			return false
		}
	}

	// No orthogonal wall neighbor may lose its last wall connection
	for _, d := range offsets {
		nr, nc := r+d.Row, c+d.Col
		if nr < 0 || nr >= rows || nc < 0 || nc >= cols || grid[nr][nc] == Passage {
			continue
		}

		wallConnections := 0
		for _, d2 := range offsets {
			nnr, nnc := nr+d2.Row, nc+d2.Col
			// (r,c) is about to become a passage
			if nnr == r && nnc == c {
				continue
			}
			if nnr >= 0 && nnr < rows && nnc >= 0 && nnc < cols && grid[nnr][nnc] == Wall {
				wallConnections++
			}
		}
		if wallConnections == 0 {
			return false
		}
	}

	return true
}

// --- Helpers ---

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1 // Round down to stay within bounds
	}
	return n
}
