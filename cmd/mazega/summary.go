package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lixenwraith/mazewalk/genetic"
	"github.com/lixenwraith/mazewalk/genetic/fitness"
	"github.com/lixenwraith/mazewalk/genetic/tracking"
	"github.com/lixenwraith/mazewalk/maze"
)

// progressEvery is the headless report interval in generations
const progressEvery = 10

// progress prints a line every progressEvery generations and on the solving generation
func progress(w io.Writer) genetic.Observer {
	return genetic.ObserverFunc(func(r genetic.Report) {
		if r.Generation%progressEvery != 0 && !r.Solved && r.Generation != r.Generations-1 {
			return
		}
		fmt.Fprintf(w, "gen %4d  best %9.1f  mean %9.1f  best-ever %9.1f  rate %.3f  diversity %.2f\n",
			r.Generation, r.Stats.Best, r.Stats.Mean, r.BestEver.Score, r.MutationRate, r.Stats.Diversity)
	})
}

// summary describes a finished run
type summary struct {
	Seed        uint64
	Preset      fitness.Preset
	Result      genetic.Result
	Started     time.Time
	Finished    time.Time
	Evaluator   *fitness.Evaluator
	Codec       genetic.Codec
	Maze        *maze.Maze
	History     *tracking.History
	RunID       string
	Interrupted bool
}

func writeSummary(w io.Writer, s summary) {
	r := s.Result
	elapsed := strings.TrimSpace(humanize.RelTime(s.Started, s.Finished, "", ""))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "seed %d  preset %s\n", s.Seed, s.Preset)
	if s.RunID != "" {
		fmt.Fprintf(w, "run %s\n", s.RunID)
	}
	fmt.Fprintf(w, "%s generations, %s evaluations in %s\n",
		humanize.Comma(int64(r.Generations)), humanize.Comma(int64(r.Evaluations)), elapsed)

	if s.History != nil && s.History.Len() > 0 {
		agg := s.History.Summary()
		last := s.History.Last()
		fmt.Fprintf(w, "final mean %.1f  peak best %.1f  avg diversity %.2f\n",
			last[tracking.MetricMean], agg["max_"+tracking.MetricBest], agg["avg_"+tracking.MetricDiversity])
	}

	switch {
	case r.Solved:
		fmt.Fprintf(w, "goal reached in the %s generation\n", humanize.Ordinal(r.SolvedAt+1))
	case s.Interrupted:
		fmt.Fprintln(w, "interrupted before reaching the goal")
	default:
		fmt.Fprintln(w, "goal not reached within the generation budget")
	}

	if len(r.BestEver.Genome) == 0 {
		return
	}

	fmt.Fprintf(w, "best-ever fitness %s\n", humanize.FormatFloat("#,###.##", r.BestEver.Score))
	fmt.Fprintf(w, "genome %s\n", s.Codec.Encode(r.BestEver.Genome))

	path := s.Evaluator.Trace(r.BestEver.Genome)
	end := path[len(path)-1]
	fmt.Fprintf(w, "walk ends at %v after %d moves (goal %v", end, len(path)-1, s.Maze.Goal())
	if shortest := s.Maze.ShortestPath(); shortest != nil {
		fmt.Fprintf(w, ", shortest route %d moves", len(shortest)-1)
	}
	fmt.Fprintln(w, ")")

	terms := s.Evaluator.Explain(r.BestEver.Genome, max(0, r.Generations-1))
	fmt.Fprintln(w, "fitness terms:")
	for _, t := range []struct {
		name  string
		value float64
	}{
		{"wall", terms.Wall},
		{"novelty", terms.Novelty},
		{"reversal", terms.Reversal},
		{"closeness", terms.Closeness},
		{"retreat", terms.Retreat},
		{"goal", terms.Goal},
		{"speed", terms.Speed},
		{"residual", terms.Residual},
		{"explore", terms.Explore},
	} {
		if t.value != 0 {
			fmt.Fprintf(w, "  %-10s %10.2f\n", t.name, t.value)
		}
	}

	maze.Render(w, s.Maze, path)
}
