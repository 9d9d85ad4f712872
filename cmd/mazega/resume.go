package main

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/mazewalk/config"
	"github.com/lixenwraith/mazewalk/genetic"
	"github.com/lixenwraith/mazewalk/genetic/persistence"
)

var errSeedMismatch = errors.New("seed does not match saved population")

// adoptSnapshotSeed makes a resumed run regenerate the maze the population was bred on
// An unset master seed takes the saved one; a different explicit seed is an error
func adoptSnapshotSeed(cfg *config.Config, dto persistence.PopulationDTO) error {
	switch {
	case dto.Seed == 0:
	case cfg.Seed == 0:
		cfg.Seed = dto.Seed
	case cfg.Seed != dto.Seed:
		return fmt.Errorf("%w: seed %d, saved %d", errSeedMismatch, cfg.Seed, dto.Seed)
	}
	return nil
}

// resumablePool picks the pool to save so that a later resume starts inside the budget
// The bred snapshot is past the last generation once the budget is spent; the last evaluated pool is used then
func resumablePool(snapshot *genetic.Pool, result genetic.Result, generations int) *genetic.Pool {
	if snapshot == nil || snapshot.Generation >= generations {
		return result.Final
	}
	return snapshot
}
