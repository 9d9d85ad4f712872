package maze

// ShortestPath returns the BFS path from start to goal inclusive, nil if unreachable
func (m *Maze) ShortestPath() []Position {
	return m.pathBetween(m.start, m.goal)
}

func (m *Maze) pathBetween(from, to Position) []Position {
	if !m.Walkable(from) || !m.Walkable(to) {
		return nil
	}

	index := func(p Position) int { return p.Row*m.cols + p.Col }

	// parent[i] == -1 marks unvisited; the origin points at itself
	parent := make([]int, m.rows*m.cols)
	for i := range parent {
		parent[i] = -1
	}
	parent[index(from)] = index(from)

	queue := []Position{from}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == to {
			return m.unwind(parent, index(from), index(to))
		}

		for d := Direction(0); d < NumDirections; d++ {
			next := m.Move(curr, d)
			if next == curr || parent[index(next)] != -1 {
				continue
			}
			parent[index(next)] = index(curr)
			queue = append(queue, next)
		}
	}
	return nil
}

func (m *Maze) unwind(parent []int, origin, target int) []Position {
	var rev []Position
	for i := target; ; i = parent[i] {
		rev = append(rev, Position{Row: i / m.cols, Col: i % m.cols})
		if i == origin {
			break
		}
	}
	path := make([]Position, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}
