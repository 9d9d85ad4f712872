package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/mazewalk/maze"
	"github.com/lixenwraith/mazewalk/parameter"
)

var (
	widthFlag   = flag.Int("width", parameter.MazeWidth, "maze width (rounded down to odd)")
	heightFlag  = flag.Int("height", parameter.MazeHeight, "maze height (rounded down to odd)")
	braidFlag   = flag.Float64("braid", parameter.MazeBraiding, "braiding factor [0.0 - 1.0]")
	densityFlag = flag.Float64("density", parameter.MazeOpeningDensity, "extra opening density [0.0 - 1.0]")
	seedFlag    = flag.Uint64("seed", 0, "generator seed (0 = random)")
	countFlag   = flag.Int("n", 1, "number of mazes to generate")
	solveFlag   = flag.Bool("solve", true, "mark the shortest path")
)

func main() {
	flag.Parse()

	for i := 0; i < *countFlag; i++ {
		cfg := maze.DefaultConfig()
		cfg.Width = *widthFlag
		cfg.Height = *heightFlag
		cfg.Braiding = *braidFlag
		cfg.OpeningDensity = *densityFlag
		if *seedFlag != 0 {
			cfg.Seed = *seedFlag + uint64(i)
		}

		startT := time.Now()
		m, err := maze.Generate(cfg)
		dur := time.Since(startT)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate: %v\n", err)
			os.Exit(1)
		}

		path := m.ShortestPath()
		fmt.Printf("\n=== MAZE %d ===\n", i+1)
		fmt.Printf("Done in %v\n", dur)
		fmt.Printf("Grid Dimensions: %dx%d\n", m.Width(), m.Height())
		fmt.Printf("Solution Path Length: %d steps\n", len(path)-1)

		if !*solveFlag {
			path = nil
		}
		if err := maze.Render(os.Stdout, m, path); err != nil {
			fmt.Fprintf(os.Stderr, "render: %v\n", err)
			os.Exit(1)
		}
	}
}
