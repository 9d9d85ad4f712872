package maze

import (
	"errors"
	"fmt"
)

// Cell types
const (
	Wall    = true
	Passage = false
)

var (
	ErrStartBlocked    = errors.New("maze: start cell is not walkable")
	ErrGoalBlocked     = errors.New("maze: goal cell is not walkable")
	ErrGoalUnreachable = errors.New("maze: goal is not reachable from start")
	ErrDegenerateMaze  = errors.New("maze: no winnable layout generated")
	ErrInvalidGrid     = errors.New("maze: invalid grid")
)

// Position is a grid coordinate, row-major
type Position struct {
	Row int `toml:"row"`
	Col int `toml:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Direction is a move code interpreted by Maze.Move
type Direction uint8

const (
	Right Direction = iota
	Down
	Left
	Up
)

// NumDirections is the size of the move alphabet
const NumDirections = 4

var offsets = [NumDirections]Position{
	Right: {0, 1},
	Down:  {1, 0},
	Left:  {0, -1},
	Up:    {-1, 0},
}

// Valid reports whether d is inside the move alphabet
func (d Direction) Valid() bool {
	return d < NumDirections
}

// Opposite returns the direction that undoes d
func (d Direction) Opposite() Direction {
	return (d + NumDirections/2) % NumDirections
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	case Up:
		return "up"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Maze is an immutable walkability grid with fixed start and goal
// Safe for concurrent readers
type Maze struct {
	grid        [][]bool
	rows, cols  int
	start, goal Position
}

// NewMaze builds a maze from a copy of grid (Wall/Passage per cell)
func NewMaze(grid [][]bool, start, goal Position) (*Maze, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidGrid)
	}
	cols := len(grid[0])
	cp := make([][]bool, len(grid))
	for r, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, r, len(row), cols)
		}
		cp[r] = append([]bool(nil), row...)
	}

	m := &Maze{grid: cp, rows: len(cp), cols: cols, start: start, goal: goal}
	if !m.Walkable(start) {
		return nil, fmt.Errorf("%w: %v", ErrStartBlocked, start)
	}
	if !m.Walkable(goal) {
		return nil, fmt.Errorf("%w: %v", ErrGoalBlocked, goal)
	}
	return m, nil
}

// Move applies d to p. Blocked, out-of-bounds and invalid moves return p unchanged (wall bump)
func (m *Maze) Move(p Position, d Direction) Position {
	if !d.Valid() {
		return p
	}
	off := offsets[d]
	next := Position{Row: p.Row + off.Row, Col: p.Col + off.Col}
	if !m.Walkable(next) {
		return p
	}
	return next
}

// Walkable reports whether p is inside the grid and not a wall
func (m *Maze) Walkable(p Position) bool {
	if p.Row < 0 || p.Row >= m.rows || p.Col < 0 || p.Col >= m.cols {
		return false
	}
	return m.grid[p.Row][p.Col] == Passage
}

func (m *Maze) Start() Position { return m.start }
func (m *Maze) Goal() Position  { return m.goal }
func (m *Maze) Width() int      { return m.cols }
func (m *Maze) Height() int     { return m.rows }

// Grid returns a copy of the walkability grid (true = wall)
func (m *Maze) Grid() [][]bool {
	cp := make([][]bool, m.rows)
	for r := range m.grid {
		cp[r] = append([]bool(nil), m.grid[r]...)
	}
	return cp
}
