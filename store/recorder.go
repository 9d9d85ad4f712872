package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/mazewalk/genetic"
)

// flushEvery bounds buffered generation rows between writes
const flushEvery = 25

// RunInfo describes a run before it starts
type RunInfo struct {
	Seed     uint64
	Preset   string
	MazeRows int
	MazeCols int
	Engine   genetic.Config
}

// Recorder is a genetic.Observer that writes generation rows for one run
// Write errors are retained and returned by Finish; observers cannot fail the engine
type Recorder struct {
	store *Store
	codec genetic.Codec

	mu      sync.Mutex
	run     *Run
	pending []Generation
	err     error
}

// NewRecorder binds a recorder to s
func NewRecorder(s *Store) *Recorder {
	return &Recorder{store: s, codec: genetic.LetterCodec{}}
}

// Begin inserts the run row and returns its ID
func (r *Recorder) Begin(ctx context.Context, info RunInfo) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.run != nil {
		return "", fmt.Errorf("store: run %s already started", r.run.ID)
	}

	cfg := info.Engine
	run := &Run{
		ID:             uuid.NewString(),
		Seed:           strconv.FormatUint(info.Seed, 10),
		Preset:         info.Preset,
		MazeRows:       info.MazeRows,
		MazeCols:       info.MazeCols,
		PopulationSize: cfg.PopulationSize,
		Steps:          cfg.Steps,
		Budget:         cfg.Generations,
		Config: fmt.Sprintf("elite=%v/%d tournament=%d mutation=%v+%v<=%v resample=%v",
			cfg.EliteFraction, cfg.MinElite, cfg.TournamentSize,
			cfg.MutationBaseRate, cfg.MutationRamp, cfg.MutationMaxRate, cfg.MutationResampleProbability),
		StartedAt: time.Now(),
		SolvedAt:  -1,
	}
	if err := r.store.createRun(ctx, run); err != nil {
		return "", err
	}
	r.run = run
	return run.ID, nil
}

// OnGeneration implements genetic.Observer
func (r *Recorder) OnGeneration(rep genetic.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.run == nil || r.err != nil {
		return
	}

	r.pending = append(r.pending, Generation{
		RunID:        r.run.ID,
		Number:       rep.Generation,
		Best:         rep.Stats.Best,
		Mean:         rep.Stats.Mean,
		Worst:        rep.Stats.Worst,
		StdDev:       rep.Stats.StdDev,
		Diversity:    rep.Stats.Diversity,
		BestEver:     rep.BestEver.Score,
		MutationRate: rep.MutationRate,
		Evaluations:  rep.Evaluations,
		Solved:       rep.Solved,
	})
	if len(r.pending) >= flushEvery {
		r.flush(context.Background())
	}
}

func (r *Recorder) flush(ctx context.Context) {
	if err := r.store.saveGenerations(ctx, r.pending); err != nil && r.err == nil {
		r.err = err
	}
	r.pending = r.pending[:0]
}

// Finish flushes pending rows and stores the run outcome
func (r *Recorder) Finish(ctx context.Context, result genetic.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.run == nil {
		return fmt.Errorf("store: finish before begin")
	}

	r.flush(ctx)
	if r.err != nil {
		return r.err
	}

	now := time.Now()
	r.run.FinishedAt = &now
	r.run.Solved = result.Solved
	r.run.SolvedAt = result.SolvedAt
	r.run.BestFitness = result.BestEver.Score
	r.run.BestGenome = r.codec.Encode(result.BestEver.Genome)
	r.run.GenerationsRun = result.Generations
	r.run.Evaluations = result.Evaluations

	return r.store.updateRun(ctx, r.run)
}

// RunID returns the active run ID, empty before Begin
func (r *Recorder) RunID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.run == nil {
		return ""
	}
	return r.run.ID
}
