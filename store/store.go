// Package store keeps a SQLite log of runs and their per-generation statistics
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	sqlite "github.com/glebarez/sqlite"
	gorm "gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnknownRun = errors.New("store: unknown run")

// Run is one evolutionary run
type Run struct {
	ID string `gorm:"primaryKey;size:36"`

	// Seed is stored as text; uint64 values with the high bit set do not fit an SQLite integer
	Seed   string
	Preset string

	MazeRows       int
	MazeCols       int
	PopulationSize int
	Steps          int
	Budget         int // Configured generation budget
	Config         string

	StartedAt  time.Time
	FinishedAt *time.Time

	Solved         bool
	SolvedAt       int
	BestFitness    float64
	BestGenome     string
	GenerationsRun int
	Evaluations    int
}

// Generation is the statistics row of one evaluated generation
type Generation struct {
	ID     uint   `gorm:"primaryKey"`
	RunID  string `gorm:"index;size:36"`
	Number int    `gorm:"index"`

	Best         float64
	Mean         float64
	Worst        float64
	StdDev       float64
	Diversity    float64
	BestEver     float64
	MutationRate float64
	Evaluations  int
	Solved       bool
}

// Store wraps the run database
type Store struct {
	db *gorm.DB
}

// Open creates or migrates the database at path
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store: path must be defined")
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	db = db.Session(&gorm.Session{CreateBatchSize: 100})

	if err := db.AutoMigrate(&Run{}, &Generation{}); err != nil {
		return nil, fmt.Errorf("store: migrate %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection
func (s *Store) Close() error {
	sqldb, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqldb.Close()
}

// Runs returns all runs, newest first
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	var runs []Run
	if err := s.db.WithContext(ctx).Order("started_at desc").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	return runs, nil
}

// Run returns a single run by ID
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	var run Run
	err := s.db.WithContext(ctx).First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return run, fmt.Errorf("%w: %s", ErrUnknownRun, id)
	}
	if err != nil {
		return run, fmt.Errorf("store: run %s: %w", id, err)
	}
	return run, nil
}

// Generations returns the statistics rows of a run in generation order
func (s *Store) Generations(ctx context.Context, runID string) ([]Generation, error) {
	var gens []Generation
	err := s.db.WithContext(ctx).Where("run_id = ?", runID).Order("number asc").Find(&gens).Error
	if err != nil {
		return nil, fmt.Errorf("store: generations of %s: %w", runID, err)
	}
	return gens, nil
}

func (s *Store) createRun(ctx context.Context, run *Run) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("store: create run: %w", err)
	}
	return nil
}

func (s *Store) saveGenerations(ctx context.Context, rows []Generation) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("store: save %d generations: %w", len(rows), err)
	}
	return nil
}

func (s *Store) updateRun(ctx context.Context, run *Run) error {
	if err := s.db.WithContext(ctx).Save(run).Error; err != nil {
		return fmt.Errorf("store: update run %s: %w", run.ID, err)
	}
	log.Printf("store: run %s recorded (%d generations)", run.ID, run.GenerationsRun)
	return nil
}
