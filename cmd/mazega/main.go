package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/lixenwraith/mazewalk/chart"
	"github.com/lixenwraith/mazewalk/config"
	"github.com/lixenwraith/mazewalk/genetic"
	"github.com/lixenwraith/mazewalk/genetic/fitness"
	"github.com/lixenwraith/mazewalk/genetic/persistence"
	"github.com/lixenwraith/mazewalk/genetic/tracking"
	"github.com/lixenwraith/mazewalk/maze"
	"github.com/lixenwraith/mazewalk/parameter"
	"github.com/lixenwraith/mazewalk/store"
	"github.com/lixenwraith/mazewalk/viewer"
)

var (
	configFlag = flag.String("config", "", "TOML configuration file")
	seedFlag   = flag.Uint64("seed", 0, "master seed (0 = from config, else random)")
	presetFlag = flag.String("preset", "", fmt.Sprintf("fitness preset: %v", fitness.Presets()))
	tuiFlag    = flag.Bool("tui", false, "watch the run in the terminal")
	debugFlag  = flag.Bool("debug", false, "write diagnostics to logs/"+logFileName)
	saveFlag   = flag.String("save", "", "save the final population under this name")
	resumeFlag = flag.String("resume", "", "resume from a saved population")
	dbFlag     = flag.String("db", "", "record the run in this SQLite database")
	chartFlag  = flag.String("chart", "", "write a fitness chart (.png, .svg)")
)

// restoreTerminal is swapped in while the viewer owns the screen
var restoreTerminal = func() {}

// crash resets the terminal, prints the panic with its stack and exits
func crash(r any) {
	restoreTerminal()
	fmt.Fprintf(os.Stderr, "\n\x1b[31mMAZEGA CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if the run crashes
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mazega: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return cfg, err
		}
	}

	if *presetFlag != "" {
		if err := cfg.SetPreset(fitness.Preset(*presetFlag)); err != nil {
			return cfg, err
		}
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
		cfg.Maze.Seed = 0
		cfg.Engine.Seed = 0
	}
	if *dbFlag != "" {
		cfg.Output.Database = *dbFlag
	}
	if *chartFlag != "" {
		cfg.Output.Chart = *chartFlag
	}
	if (*saveFlag != "" || *resumeFlag != "") && cfg.Output.Snapshot == "" {
		cfg.Output.Snapshot = parameter.GeneticPersistencePath
	}
	return cfg, cfg.Validate()
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	codec := genetic.LetterCodec{}
	snapshots := persistence.NewManager(cfg.Output.Snapshot)
	var resumed *persistence.PopulationDTO
	if *resumeFlag != "" {
		if !snapshots.Exists(*resumeFlag) {
			return fmt.Errorf("resume: no saved population at %s", snapshots.FilePath(*resumeFlag))
		}
		dto, err := snapshots.Load(*resumeFlag)
		if err != nil {
			return fmt.Errorf("resume: %w", err)
		}
		if err := adoptSnapshotSeed(&cfg, dto); err != nil {
			return fmt.Errorf("resume %s: %w", *resumeFlag, err)
		}
		resumed = &dto
	}
	cfg.ResolveSeeds()

	log.Printf("config: seed=%d preset=%s maze=%dx%d population=%d steps=%d generations=%d",
		cfg.Seed, cfg.Preset, cfg.Maze.Width, cfg.Maze.Height,
		cfg.Engine.PopulationSize, cfg.Engine.Steps, cfg.Engine.Generations)

	m, err := maze.Generate(cfg.Maze)
	if err != nil {
		return err
	}

	evaluator, err := fitness.NewEvaluator(m, cfg.Fitness, cfg.Engine.Steps, cfg.Engine.Generations)
	if err != nil {
		return err
	}

	engine, err := genetic.NewEngine(evaluator, cfg.Engine)
	if err != nil {
		return err
	}

	if resumed != nil {
		genomes, err := resumed.Genomes(codec)
		if err != nil {
			return fmt.Errorf("resume %s: %w", *resumeFlag, err)
		}
		if err := engine.Inject(genomes, resumed.Generation); err != nil {
			return fmt.Errorf("resume %s: %w", *resumeFlag, err)
		}
		log.Printf("resumed %d genomes at generation %d", len(genomes), resumed.Generation)
	}

	history := tracking.NewHistory()
	engine.Observe(history)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var recorder *store.Recorder
	if cfg.Output.Database != "" {
		db, err := store.Open(cfg.Output.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		recorder = store.NewRecorder(db)
		if _, err := recorder.Begin(ctx, store.RunInfo{
			Seed:     cfg.Seed,
			Preset:   string(cfg.Preset),
			MazeRows: m.Height(),
			MazeCols: m.Width(),
			Engine:   engine.Config(),
		}); err != nil {
			return err
		}
		engine.Observe(recorder)
	}

	started := time.Now()
	var result genetic.Result
	if *tuiFlag {
		result, err = runViewer(ctx, cfg, m, evaluator, engine)
	} else {
		engine.Observe(progress(os.Stdout))
		result, err = engine.Run(ctx)
	}
	finished := time.Now()

	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}
	log.Printf("run finished: generations=%d solved=%v best=%.2f", result.Generations, result.Solved, result.BestEver.Score)

	var runID string
	if recorder != nil {
		runID = recorder.RunID()
		if err := recorder.Finish(context.Background(), result); err != nil {
			return err
		}
	}

	if cfg.Output.Chart != "" && history.Len() > 0 {
		title := fmt.Sprintf("seed %d, preset %s", cfg.Seed, cfg.Preset)
		if err := chart.Save(history, title, cfg.Output.Chart); err != nil {
			return err
		}
	}

	if *saveFlag != "" {
		pool := resumablePool(engine.Snapshot(), result, cfg.Engine.Generations)
		if err := snapshots.Save(*saveFlag, persistence.FromPool(pool, cfg.Seed, codec)); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		log.Printf("population saved to %s", snapshots.FilePath(*saveFlag))
	}

	writeSummary(os.Stdout, summary{
		Seed:        cfg.Seed,
		Preset:      cfg.Preset,
		Result:      result,
		Started:     started,
		Finished:    finished,
		Evaluator:   evaluator,
		Codec:       codec,
		Maze:        m,
		History:     history,
		RunID:       runID,
		Interrupted: interrupted,
	})
	return nil
}

// runViewer runs the engine in the background while the viewer owns the terminal
func runViewer(ctx context.Context, cfg config.Config, m *maze.Maze, evaluator *fitness.Evaluator, engine *genetic.Engine) (genetic.Result, error) {
	v, err := viewer.New(m, evaluator, viewer.Options{Sound: cfg.Viewer.Sound})
	if err != nil {
		return genetic.Result{}, fmt.Errorf("viewer: %w", err)
	}
	restoreTerminal = v.Close
	defer func() {
		v.Close()
		restoreTerminal = func() {}
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream := genetic.NewStream(parameter.ViewerReportBuffer)
	engine.Observe(stream)
	if delay := cfg.Viewer.GenerationDelay; delay > 0 {
		engine.Observe(genetic.ObserverFunc(func(genetic.Report) {
			select {
			case <-runCtx.Done():
			case <-time.After(delay):
			}
		}))
	}

	type outcome struct {
		result genetic.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crash(r)
			}
		}()
		result, err := engine.Run(runCtx)
		stream.Close()
		done <- outcome{result, err}
	}()

	v.Run(ctx, stream.Reports(), cancel)
	cancel()

	out := <-done
	if dropped := stream.Dropped(); dropped > 0 {
		log.Printf("viewer skipped %d reports", dropped)
	}
	return out.result, out.err
}
