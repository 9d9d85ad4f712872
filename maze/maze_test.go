package maze

import (
	"errors"
	"strings"
	"testing"
)

// corridor builds a 3-row grid with a single open row between start and goal
func corridor(t *testing.T, length int) *Maze {
	t.Helper()
	grid := make([][]bool, 3)
	for r := range grid {
		grid[r] = make([]bool, length+2)
		for c := range grid[r] {
			grid[r][c] = Wall
		}
	}
	for c := 1; c <= length; c++ {
		grid[1][c] = Passage
	}
	m, err := NewMaze(grid, Position{1, 1}, Position{1, length})
	if err != nil {
		t.Fatalf("corridor: %v", err)
	}
	return m
}

func TestMove_Corridor(t *testing.T) {
	m := corridor(t, 3)

	if got := m.Move(Position{1, 1}, Right); got != (Position{1, 2}) {
		t.Errorf("right: got %v", got)
	}
	if got := m.Move(Position{1, 1}, Left); got != (Position{1, 1}) {
		t.Errorf("left into wall should bump, got %v", got)
	}
	if got := m.Move(Position{1, 1}, Up); got != (Position{1, 1}) {
		t.Errorf("up into wall should bump, got %v", got)
	}
	if got := m.Move(Position{1, 1}, Direction(9)); got != (Position{1, 1}) {
		t.Errorf("invalid direction should not move, got %v", got)
	}
}

func TestMove_OutOfBounds(t *testing.T) {
	grid := [][]bool{{Passage, Passage}, {Passage, Passage}}
	m, err := NewMaze(grid, Position{0, 0}, Position{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Move(Position{0, 0}, Up); got != (Position{0, 0}) {
		t.Errorf("expected bump at top edge, got %v", got)
	}
	if got := m.Move(Position{1, 1}, Right); got != (Position{1, 1}) {
		t.Errorf("expected bump at right edge, got %v", got)
	}
}

func TestDirection_Opposite(t *testing.T) {
	pairs := map[Direction]Direction{Right: Left, Down: Up, Left: Right, Up: Down}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, want %v", d, got, want)
		}
	}
}

func TestNewMaze_Rejects(t *testing.T) {
	grid := [][]bool{{Passage, Wall}, {Passage, Passage}}

	if _, err := NewMaze(grid, Position{0, 1}, Position{1, 1}); !errors.Is(err, ErrStartBlocked) {
		t.Errorf("expected ErrStartBlocked, got %v", err)
	}
	if _, err := NewMaze(grid, Position{0, 0}, Position{0, 1}); !errors.Is(err, ErrGoalBlocked) {
		t.Errorf("expected ErrGoalBlocked, got %v", err)
	}
	if _, err := NewMaze(grid, Position{0, 0}, Position{5, 5}); !errors.Is(err, ErrGoalBlocked) {
		t.Errorf("expected ErrGoalBlocked for out-of-range goal, got %v", err)
	}
	if _, err := NewMaze([][]bool{{Passage}, {}}, Position{0, 0}, Position{0, 0}); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid for ragged grid, got %v", err)
	}
}

func TestNewMaze_CopiesGrid(t *testing.T) {
	grid := [][]bool{{Passage, Passage}}
	m, err := NewMaze(grid, Position{0, 0}, Position{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	grid[0][1] = Wall
	if !m.Walkable(Position{0, 1}) {
		t.Error("maze must not alias caller grid")
	}

	out := m.Grid()
	out[0][0] = Wall
	if !m.Walkable(Position{0, 0}) {
		t.Error("Grid() must return a copy")
	}
}

func TestShortestPath(t *testing.T) {
	m := corridor(t, 4)
	path := m.ShortestPath()
	if len(path) != 4 {
		t.Fatalf("expected 4 cells, got %v", path)
	}
	if path[0] != m.Start() || path[len(path)-1] != m.Goal() {
		t.Errorf("path endpoints wrong: %v", path)
	}
}

func TestShortestPath_Unreachable(t *testing.T) {
	grid := [][]bool{{Passage, Wall, Passage}}
	m, err := NewMaze(grid, Position{0, 0}, Position{0, 2})
	if err != nil {
		t.Fatal(err)
	}
	if path := m.ShortestPath(); path != nil {
		t.Errorf("expected nil path, got %v", path)
	}
}

func TestRender(t *testing.T) {
	m := corridor(t, 3)

	var b strings.Builder
	if err := Render(&b, m, []Position{{1, 1}, {1, 2}, {1, 3}}); err != nil {
		t.Fatal(err)
	}

	want := "█████\n" + "█S•E█\n" + "█████\n"
	if b.String() != want {
		t.Errorf("expected\n%s\ngot\n%s", want, b.String())
	}
}
