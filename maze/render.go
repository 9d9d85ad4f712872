package maze

import (
	"bufio"
	"io"
)

// Render writes the maze as block glyphs; path cells are marked with a dot
// S and E mark start and goal
func Render(w io.Writer, m *Maze, path []Position) error {
	onPath := make(map[Position]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	bw := bufio.NewWriter(w)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			p := Position{Row: r, Col: c}

			switch {
			case p == m.start:
				bw.WriteString("S")
			case p == m.goal:
				bw.WriteString("E")
			case m.grid[r][c] == Wall:
				bw.WriteString("█")
			case onPath[p]:
				bw.WriteString("•")
			default:
				bw.WriteString(" ")
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
