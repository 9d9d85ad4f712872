package genetic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	workers "github.com/sourcegraph/conc/pool"

	"github.com/lixenwraith/mazewalk/parameter"
)

var ErrInvalidConfig = errors.New("genetic: invalid configuration")

// ConfigError names the offending configuration field
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("genetic: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// --- Algorithm Engine ---

// Config holds configuration parameters for the algorithm
type Config struct {
	// PopulationSize is the number of candidates maintained in each generation
	PopulationSize int `toml:"population_size"`
	// Steps is the genome length
	Steps int `toml:"steps"`
	// Generations is the maximum number of generations to run
	Generations int `toml:"generations"`
	// EliteFraction of the population is carried over unchanged, at least MinElite
	EliteFraction float64 `toml:"elite_fraction"`
	MinElite      int     `toml:"min_elite"`
	// TournamentSize is the number of distinct contestants per tournament
	TournamentSize int `toml:"tournament_size"`

	MutationBaseRate            float64 `toml:"mutation_base_rate"`
	MutationRamp                float64 `toml:"mutation_ramp"`
	MutationMaxRate             float64 `toml:"mutation_max_rate"`
	MutationResampleProbability float64 `toml:"mutation_resample_probability"`

	// Parallelism controls the number of concurrent evaluations
	Parallelism int `toml:"parallelism"`
	// TopN ranked candidates are reported to observers (0 = the elite)
	TopN int `toml:"top_n"`
	// Seed for random number generation (0 for random seed)
	Seed uint64 `toml:"seed"`
}

// DefaultConfig returns the parameter package defaults
func DefaultConfig() Config {
	return Config{
		PopulationSize:              parameter.GAPopulationSize,
		Steps:                       parameter.GASteps,
		Generations:                 parameter.GAGenerations,
		EliteFraction:               parameter.GAEliteFraction,
		MinElite:                    parameter.GAMinElite,
		TournamentSize:              parameter.GATournamentSize,
		MutationBaseRate:            parameter.GAMutationBaseRate,
		MutationRamp:                parameter.GAMutationRamp,
		MutationMaxRate:             parameter.GAMutationMaxRate,
		MutationResampleProbability: parameter.GAMutationResampleProbability,
		Parallelism:                 parameter.GAParallelism,
		TopN:                        parameter.GATopN,
	}
}

// EliteCount is max(MinElite, floor(EliteFraction*PopulationSize))
func (c Config) EliteCount() int {
	return max(c.MinElite, int(c.EliteFraction*float64(c.PopulationSize)))
}

// Schedule returns the adaptive mutation schedule
func (c Config) Schedule() MutationSchedule {
	return MutationSchedule{
		BaseRate:    c.MutationBaseRate,
		Ramp:        c.MutationRamp,
		MaxRate:     c.MutationMaxRate,
		Generations: c.Generations,
	}
}

// Validate fails fast on settings the loop cannot honor
func (c Config) Validate() error {
	switch {
	case c.Steps <= 0:
		return &ConfigError{"steps", fmt.Sprintf("must be positive, got %d", c.Steps)}
	case c.PopulationSize < 2:
		return &ConfigError{"population_size", fmt.Sprintf("must be at least 2, got %d", c.PopulationSize)}
	case c.Generations <= 0:
		return &ConfigError{"generations", fmt.Sprintf("must be positive, got %d", c.Generations)}
	case !unit(c.EliteFraction):
		return &ConfigError{"elite_fraction", fmt.Sprintf("%v outside [0,1]", c.EliteFraction)}
	case c.MinElite < 0:
		return &ConfigError{"min_elite", fmt.Sprintf("must not be negative, got %d", c.MinElite)}
	case c.EliteCount() > c.PopulationSize:
		return &ConfigError{"elite_fraction", fmt.Sprintf("elite count %d exceeds population %d", c.EliteCount(), c.PopulationSize)}
	case c.TournamentSize < 1 || c.TournamentSize > c.PopulationSize:
		return &ConfigError{"tournament_size", fmt.Sprintf("%d outside [1,%d]", c.TournamentSize, c.PopulationSize)}
	case !unit(c.MutationBaseRate):
		return &ConfigError{"mutation_base_rate", fmt.Sprintf("%v outside [0,1]", c.MutationBaseRate)}
	case !unit(c.MutationMaxRate):
		return &ConfigError{"mutation_max_rate", fmt.Sprintf("%v outside [0,1]", c.MutationMaxRate)}
	case c.MutationRamp < 0 || math.IsNaN(c.MutationRamp) || math.IsInf(c.MutationRamp, 0):
		return &ConfigError{"mutation_ramp", fmt.Sprintf("must be finite and non-negative, got %v", c.MutationRamp)}
	case !unit(c.MutationResampleProbability):
		return &ConfigError{"mutation_resample_probability", fmt.Sprintf("%v outside [0,1]", c.MutationResampleProbability)}
	case c.Parallelism < 0:
		return &ConfigError{"parallelism", fmt.Sprintf("must not be negative, got %d", c.Parallelism)}
	case c.TopN < 0:
		return &ConfigError{"top_n", fmt.Sprintf("must not be negative, got %d", c.TopN)}
	}
	return nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

// Result summarizes a finished run
type Result struct {
	BestEver Candidate
	// BestEverHistory holds the best-ever score after each evaluated generation
	BestEverHistory []float64
	Generations     int // Generations evaluated
	Solved          bool
	SolvedAt        int // Generation index of the early stop, -1 when unsolved
	Evaluations     int
	Final           *Pool
}

// Engine is the generational controller
// It coordinates all operators and manages the evolution process
type Engine struct {
	// Core operators
	evaluator Evaluator
	selector  Selector
	combiner  Combiner
	mutator   *AdaptiveMutator
	codec     Codec

	// Configuration
	config Config

	// State
	rng         *rand.Rand
	state       State
	currentPool *Pool
	lastPool    *Pool // Most recently evaluated pool
	bestEver    Candidate
	bestScore   float64 // Highest score seen; bestEver may be the solver with a lower score
	hasBest     bool
	history     []float64
	evaluations int
	observers   []Observer
}

// NewEngine validates config and wires the standard operators
func NewEngine(evaluator Evaluator, config Config) (*Engine, error) {
	if evaluator == nil {
		return nil, &ConfigError{"evaluator", "must not be nil"}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if s, ok := evaluator.(interface{ Steps() int }); ok && s.Steps() != config.Steps {
		return nil, &ConfigError{"steps", fmt.Sprintf("evaluator expects %d steps, config has %d", s.Steps(), config.Steps)}
	}

	// Initialize random number generator
	var rng *rand.Rand
	if config.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(config.Seed, config.Seed))
	}

	mutator := &AdaptiveMutator{
		Schedule:    config.Schedule(),
		Perturbator: &ResamplePerturbator{ResampleProbability: config.MutationResampleProbability},
	}

	return &Engine{
		evaluator: evaluator,
		selector:  &TournamentSelector{K: config.TournamentSize},
		combiner:  TwoPointCombiner{},
		mutator:   mutator,
		codec:     LetterCodec{},
		config:    config,
		rng:       rng,
		history:   make([]float64, 0, config.Generations),
	}, nil
}

// Observe registers an observer for per-generation reports
func (e *Engine) Observe(o Observer) {
	e.observers = append(e.observers, o)
}

// Inject seeds the next run with genomes, continuing at generation
// Missing members are filled randomly; extra members are dropped
func (e *Engine) Inject(genomes []Genome, generation int) error {
	if generation < 0 || generation >= e.config.Generations {
		return &ConfigError{"generation", fmt.Sprintf("resume generation %d outside [0,%d)", generation, e.config.Generations)}
	}
	members := make([]Candidate, 0, e.config.PopulationSize)
	for i, g := range genomes {
		if len(members) == e.config.PopulationSize {
			break
		}
		if err := ValidateGenome(g, e.config.Steps); err != nil {
			return fmt.Errorf("inject genome %d: %w", i, err)
		}
		members = append(members, Candidate{Genome: g.Clone()})
	}
	for len(members) < e.config.PopulationSize {
		members = append(members, Candidate{Genome: RandomGenome(e.config.Steps, e.rng)})
	}
	e.currentPool = &Pool{Members: members, Generation: generation}
	return nil
}

// Run executes the generational loop until the budget is spent or the goal is reached
func (e *Engine) Run(ctx context.Context) (Result, error) {
	e.state = StateInitializing
	if e.currentPool == nil {
		e.initializePool()
	}

	result := Result{SolvedAt: -1}
	defer func() { e.state = StateTerminated }()

	// Main evolution loop
	for e.currentPool.Generation < e.config.Generations {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return e.finish(result), ctx.Err()
		default:
		}

		solved := e.step()
		result.Generations++
		if solved {
			result.Solved = true
			result.SolvedAt = e.currentPool.Generation
			break
		}
	}

	return e.finish(result), nil
}

func (e *Engine) finish(r Result) Result {
	r.BestEver = e.bestEver.Clone()
	r.BestEverHistory = append([]float64(nil), e.history...)
	r.Evaluations = e.evaluations
	r.Final = e.lastPool
	return r
}

// step evaluates the current pool and, unless solved, replaces it with the next generation
func (e *Engine) step() bool {
	pool := e.currentPool
	gen := pool.Generation

	e.state = StateEvaluating
	e.evaluate(pool)
	ranked := rank(pool.Members)
	pool.Stats = calculateStats(ranked, e.reportSize(), e.codec)
	e.lastPool = pool

	if !e.hasBest || ranked[0].Score > e.bestScore {
		e.bestEver = ranked[0].Clone()
		e.bestScore = ranked[0].Score
		e.hasBest = true
	}

	e.state = StateEliteSelection
	eliteCount := e.config.EliteCount()
	elite := make([]Candidate, eliteCount)
	for i := range elite {
		elite[i] = ranked[i].Clone()
	}

	// Early stop: the generation's best walks onto the goal
	solved := e.evaluator.Reaches(ranked[0].Genome)
	if solved {
		e.bestEver = ranked[0].Clone()
	}
	e.history = append(e.history, e.bestScore)

	rate := e.mutator.Schedule.Rate(gen)
	e.notify(Report{
		Generation:   gen,
		Generations:  e.config.Generations,
		Top:          cloneCandidates(ranked[:e.reportSize()]),
		Stats:        pool.Stats,
		BestEver:     e.bestEver.Clone(),
		MutationRate: rate,
		Evaluations:  e.evaluations,
		Solved:       solved,
	})
	if solved {
		return true
	}

	e.state = StateReproduction
	parents := e.selector.Select(pool.Members, len(pool.Members), e.rng)

	next := make([]Candidate, 0, e.config.PopulationSize)
	next = append(next, elite...)
	for len(next) < e.config.PopulationSize {
		// Parents drawn independently; the same parent may appear twice
		p1 := parents[e.rng.IntN(len(parents))]
		p2 := parents[e.rng.IntN(len(parents))]

		child := e.combiner.Combine(p1.Genome, p2.Genome, e.rng)
		e.mutator.Perturb(child, gen, e.rng)
		next = append(next, Candidate{Genome: child})
	}

	e.currentPool = &Pool{Members: next, Generation: gen + 1}
	return false
}

// evaluate scores every member in place; genomes are never modified
func (e *Engine) evaluate(pool *Pool) {
	members := pool.Members
	gen := pool.Generation
	for _, m := range members {
		MustValidate(m.Genome, e.config.Steps)
	}

	if e.config.Parallelism <= 1 {
		for i := range members {
			members[i].Score = e.evaluator.Evaluate(members[i].Genome, gen)
		}
	} else {
		p := workers.New().WithMaxGoroutines(e.config.Parallelism)
		for i := range members {
			p.Go(func() {
				members[i].Score = e.evaluator.Evaluate(members[i].Genome, gen)
			})
		}
		p.Wait()
	}

	e.evaluations += len(members)
}

// rank returns members sorted by score descending; equal scores keep population order
func rank(members []Candidate) []Candidate {
	ranked := make([]Candidate, len(members))
	copy(ranked, members)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func (e *Engine) reportSize() int {
	n := e.config.TopN
	if n == 0 {
		n = e.config.EliteCount()
	}
	return min(n, e.config.PopulationSize)
}

func (e *Engine) notify(r Report) {
	for _, o := range e.observers {
		o.OnGeneration(r)
	}
}

// initializePool creates the initial population of candidates
func (e *Engine) initializePool() {
	members := make([]Candidate, e.config.PopulationSize)
	for i := range members {
		members[i] = Candidate{Genome: RandomGenome(e.config.Steps, e.rng)}
	}
	e.currentPool = &Pool{Members: members, Generation: 0}
}

// State returns the current lifecycle phase
func (e *Engine) State() State {
	return e.state
}

// Config returns the validated configuration
func (e *Engine) Config() Config {
	return e.config
}

// Snapshot returns a deep copy of the current pool, nil before initialization
func (e *Engine) Snapshot() *Pool {
	if e.currentPool == nil {
		return nil
	}
	return &Pool{
		Members:    cloneCandidates(e.currentPool.Members),
		Generation: e.currentPool.Generation,
		Stats:      e.currentPool.Stats,
	}
}

func cloneCandidates(cs []Candidate) []Candidate {
	out := make([]Candidate, len(cs))
	for i, c := range cs {
		out[i] = c.Clone()
	}
	return out
}
