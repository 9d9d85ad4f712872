package viewer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mazewalk/genetic"
	"github.com/lixenwraith/mazewalk/maze"
)

// walkTracer replays genomes without scoring
type walkTracer struct{ m *maze.Maze }

func (w walkTracer) Trace(g genetic.Genome) []maze.Position {
	pos := w.m.Start()
	path := []maze.Position{pos}
	for _, d := range g {
		pos = w.m.Move(pos, d)
		path = append(path, pos)
	}
	return path
}

func corridor(t *testing.T) *maze.Maze {
	t.Helper()
	grid := [][]bool{
		{true, true, true, true, true, true},
		{true, false, false, false, false, true},
		{true, true, true, true, true, true},
	}
	m, err := maze.NewMaze(grid, maze.Position{Row: 1, Col: 1}, maze.Position{Row: 1, Col: 4})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func newTestViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	m := corridor(t)
	v, err := New(m, walkTracer{m}, Options{Screen: screen})
	if err != nil {
		t.Fatalf("new viewer: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(v.Close)
	return v, screen
}

func TestFrame_Layers(t *testing.T) {
	m := corridor(t)
	report := &genetic.Report{Top: []genetic.Candidate{
		{Genome: genetic.Genome{maze.Right}},
		{Genome: genetic.Genome{maze.Right, maze.Right}},
	}}

	cells := frame(m, walkTracer{m}, report)
	if len(cells) != 3 || len(cells[0]) != 6 {
		t.Fatalf("unexpected frame size %dx%d", len(cells), len(cells[0]))
	}
	if cells[0][0].style != styleWall {
		t.Error("expected wall style on border")
	}
	if cells[1][1].r != 'S' || cells[1][4].r != 'G' {
		t.Error("expected start and goal markers")
	}
	if cells[1][2].style != styleBest {
		t.Error("best trail must paint over the rest")
	}
	if cells[1][3].style != styleTrail {
		t.Error("expected runner-up trail")
	}
}

func TestFrame_NoReport(t *testing.T) {
	m := corridor(t)
	cells := frame(m, walkTracer{m}, nil)
	if cells[1][2].style != stylePassage {
		t.Error("expected plain passage without a report")
	}
}

func TestStatusLine(t *testing.T) {
	if !strings.Contains(statusLine(nil), "waiting") {
		t.Error("expected waiting message")
	}
	line := statusLine(&genetic.Report{Generation: 2, Generations: 10, BestEver: genetic.Candidate{Score: 12.5}})
	if !strings.Contains(line, "gen 3/10") || !strings.Contains(line, "best-ever 12.5") {
		t.Errorf("unexpected status %q", line)
	}
}

func TestHandleInput(t *testing.T) {
	v, _ := newTestViewer(t)

	quit := []tcell.Event{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
	}
	for _, ev := range quit {
		if v.handleInput(ev) {
			t.Errorf("expected quit for %v", ev.(*tcell.EventKey).Name())
		}
	}
	if !v.handleInput(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("other keys must not quit")
	}
}

func TestApply_ChimesOnce(t *testing.T) {
	v, _ := newTestViewer(t)

	v.apply(genetic.Report{Generation: 0})
	if v.chimed {
		t.Error("unsolved report must not chime")
	}
	v.apply(genetic.Report{Generation: 1, Solved: true})
	if !v.chimed || v.latest.Generation != 1 {
		t.Error("expected chime on solve")
	}
}

func TestRun_QuitStopsEngine(t *testing.T) {
	v, screen := newTestViewer(t)

	reports := make(chan genetic.Report, 1)
	reports <- genetic.Report{Generation: 0, Generations: 5}

	stopped := make(chan struct{})
	stop := func() { close(stopped) }

	done := make(chan struct{})
	go func() {
		v.Run(context.Background(), reports, stop)
		close(done)
	}()

	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("viewer did not exit on q")
	}
	select {
	case <-stopped:
	default:
		t.Error("quit must call stop")
	}
}

func TestRun_ContextEnds(t *testing.T) {
	v, _ := newTestViewer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		v.Run(ctx, nil, nil)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("viewer did not exit on context end")
	}
}
