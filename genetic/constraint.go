package genetic

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/mazewalk/maze"
)

var ErrMalformedGenome = errors.New("genetic: malformed genome")

// ValidateGenome checks length and gene range
func ValidateGenome(g Genome, steps int) error {
	if len(g) != steps {
		return fmt.Errorf("%w: length %d, want %d", ErrMalformedGenome, len(g), steps)
	}
	for i, d := range g {
		if !d.Valid() {
			return fmt.Errorf("%w: gene %d = %d outside [0,%d)", ErrMalformedGenome, i, d, maze.NumDirections)
		}
	}
	return nil
}

// MustValidate panics on malformed genomes; operators call it as a precondition
func MustValidate(g Genome, steps int) {
	if err := ValidateGenome(g, steps); err != nil {
		panic(err)
	}
}

// turn rotates d by delta steps with wrap-around
func turn(d maze.Direction, delta int) maze.Direction {
	n := int(maze.NumDirections)
	return maze.Direction(((int(d)+delta)%n + n) % n)
}
