package parameter

// Maze Generation
const (
	// MazeWidth and MazeHeight are rounded down to odd values by the generator
	MazeWidth  = 21
	MazeHeight = 21

	// MazeOpeningDensity is the fraction of grid cells drawn for extra random openings
	MazeOpeningDensity = 0.05

	// MazeBraiding is the dead-end removal probability (0 = perfect maze)
	MazeBraiding = 0.0

	// MazeMaxAttempts bounds regeneration when the goal ends up blocked or unreachable
	MazeMaxAttempts = 8
)
