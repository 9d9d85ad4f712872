package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mazewalk/genetic"
	"github.com/lixenwraith/mazewalk/maze"
)

// cellWidth is the number of terminal columns per maze cell
const cellWidth = 2

var (
	styleWall     = tcell.StyleDefault.Background(tcell.NewRGBColor(90, 90, 90))
	stylePassage  = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleTrail    = tcell.StyleDefault.Background(tcell.NewRGBColor(30, 50, 110))
	styleBest     = tcell.StyleDefault.Background(tcell.NewRGBColor(200, 170, 20))
	styleStart    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleGoal     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSolved   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFinished = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

type cell struct {
	r     rune
	style tcell.Style
}

// frame lays out one maze cell per entry; later layers overwrite earlier ones
// Layers: maze, top-N trails, best trail, start and goal markers
func frame(m *maze.Maze, tracer Tracer, report *genetic.Report) [][]cell {
	rows, cols := m.Height(), m.Width()
	out := make([][]cell, rows)
	for r := range out {
		out[r] = make([]cell, cols)
		for c := range out[r] {
			if m.Walkable(maze.Position{Row: r, Col: c}) {
				out[r][c] = cell{' ', stylePassage}
			} else {
				out[r][c] = cell{' ', styleWall}
			}
		}
	}

	if report != nil && len(report.Top) > 0 {
		// Reverse order so better trails paint over worse ones
		for i := len(report.Top) - 1; i >= 1; i-- {
			for _, p := range tracer.Trace(report.Top[i].Genome) {
				out[p.Row][p.Col] = cell{' ', styleTrail}
			}
		}
		for _, p := range tracer.Trace(report.Top[0].Genome) {
			out[p.Row][p.Col] = cell{' ', styleBest}
		}
	}

	s, g := m.Start(), m.Goal()
	out[s.Row][s.Col] = cell{'S', styleStart}
	out[g.Row][g.Col] = cell{'G', styleGoal}
	return out
}

// statusLine summarizes the latest report
func statusLine(report *genetic.Report) string {
	if report == nil {
		return "waiting for first generation..."
	}
	return fmt.Sprintf("gen %d/%d  best %.1f  best-ever %.1f  mean %.1f  rate %.3f  diversity %.2f",
		report.Generation+1, report.Generations,
		report.Stats.Best, report.BestEver.Score, report.Stats.Mean,
		report.MutationRate, report.Stats.Diversity)
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// draw renders the maze at the top-left with status lines below
func (v *Viewer) draw() {
	v.screen.Clear()

	cells := frame(v.maze, v.tracer, v.latest)
	for r, row := range cells {
		for c, ce := range row {
			x := c * cellWidth
			v.screen.SetContent(x, r, ce.r, nil, ce.style)
			for k := 1; k < cellWidth; k++ {
				v.screen.SetContent(x+k, r, ' ', nil, ce.style)
			}
		}
	}

	y := len(cells) + 1
	drawText(v.screen, 0, y, statusLine(v.latest), styleStatus)

	switch {
	case v.latest != nil && v.latest.Solved:
		drawText(v.screen, 0, y+1, "goal reached - press q to exit", styleSolved)
	case v.finished:
		drawText(v.screen, 0, y+1, "budget spent - press q to exit", styleFinished)
	default:
		drawText(v.screen, 0, y+1, "q/Esc: stop", styleStatus)
	}

	v.screen.Show()
}
