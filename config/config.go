// Package config assembles run settings from defaults, an optional TOML file and flags
package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/mazewalk/genetic"
	"github.com/lixenwraith/mazewalk/genetic/fitness"
	"github.com/lixenwraith/mazewalk/maze"
	"github.com/lixenwraith/mazewalk/parameter"
)

var ErrUnknownKeys = errors.New("config: unknown keys")

// Config is the complete run configuration
type Config struct {
	// Seed drives maze and engine seeds left at 0 (0 = random)
	Seed   uint64         `toml:"seed"`
	Preset fitness.Preset `toml:"preset"`

	Maze    maze.Config     `toml:"maze"`
	Engine  genetic.Config  `toml:"engine"`
	Fitness fitness.Weights `toml:"fitness"`
	Viewer  ViewerConfig    `toml:"viewer"`
	Output  OutputConfig    `toml:"output"`
}

// ViewerConfig tunes the terminal viewer
type ViewerConfig struct {
	GenerationDelay time.Duration `toml:"generation_delay"`
	Sound           bool          `toml:"sound"`
}

// OutputConfig names optional run artifacts; empty disables each one
type OutputConfig struct {
	Snapshot string `toml:"snapshot"` // Population snapshot directory
	Database string `toml:"database"` // SQLite run log
	Chart    string `toml:"chart"`    // Fitness chart image
}

// Default returns the built-in configuration with the default preset weights
func Default() Config {
	w, err := fitness.Lookup(fitness.DefaultPreset)
	if err != nil {
		panic(err)
	}
	return Config{
		Preset:  fitness.DefaultPreset,
		Maze:    maze.DefaultConfig(),
		Engine:  genetic.DefaultConfig(),
		Fitness: w,
		Viewer: ViewerConfig{
			GenerationDelay: parameter.ViewerGenerationDelay,
			Sound:           true,
		},
	}
}

// Load decodes path over the defaults
// The file's preset is applied first so explicit [fitness] keys override it
func Load(path string) (Config, error) {
	cfg := Default()

	var probe struct {
		Preset fitness.Preset `toml:"preset"`
	}
	if _, err := toml.DecodeFile(path, &probe); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if probe.Preset != "" {
		if err := cfg.SetPreset(probe.Preset); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%w in %s: %v", ErrUnknownKeys, path, undecoded)
	}

	return cfg, nil
}

// SetPreset replaces the fitness weights with a registered preset
func (c *Config) SetPreset(name fitness.Preset) error {
	w, err := fitness.Lookup(name)
	if err != nil {
		return err
	}
	c.Preset = name
	c.Fitness = w
	return nil
}

// ResolveSeeds fixes a random master seed when unset and propagates it to unset component seeds
// The maze and engine draw from different seeds so one seed yields independent streams
func (c *Config) ResolveSeeds() uint64 {
	if c.Seed == 0 {
		c.Seed = rand.Uint64()
	}
	if c.Maze.Seed == 0 {
		c.Maze.Seed = c.Seed
	}
	if c.Engine.Seed == 0 {
		c.Engine.Seed = c.Seed ^ 0x9e3779b97f4a7c15
	}
	return c.Seed
}

// Validate chains component validation
func (c Config) Validate() error {
	if _, err := fitness.Lookup(c.Preset); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Maze.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Fitness.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Viewer.GenerationDelay < 0 {
		return fmt.Errorf("config: viewer generation_delay must not be negative, got %v", c.Viewer.GenerationDelay)
	}
	return nil
}
