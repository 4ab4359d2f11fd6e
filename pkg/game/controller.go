package game

// Controller defines the brain of a snake (human input or AI)
type Controller interface {
	// Decide returns the turn to buffer this tick, or None to keep going
	Decide(g *Game, s *Snake) Direction
}

// --- Implementation: Manual Controller (Human) ---

// ManualController leaves steering to turns buffered by the input collaborator
type ManualController struct{}

func (ManualController) Decide(g *Game, s *Snake) Direction {
	return None
}

// --- Implementation: Pursuit AI Controller ---

// PursuitController chases the agent while avoiding walls, bodies and hazards.
// It is used by rival snakes and by auto-play.
type PursuitController struct{}

func (PursuitController) Decide(g *Game, s *Snake) Direction {
	return g.CalculateBestMove(s, g.Agent.Pos)
}

// CalculateBestMove scores every non-reversing direction for s by the free
// space reachable behind the move and the distance left to target.
func (g *Game) CalculateBestMove(s *Snake, target Point) Direction {
	head := s.Head()
	current := s.Direction
	if !s.Pending().IsZero() {
		current = s.Pending()
	}

	bestDir := current
	bestScore := -1000000.0
	snakeLen := s.Len()

	for _, dir := range Cardinals {
		if dir == current.Reverse() {
			continue
		}

		nextPos := head.Add(dir)
		if !g.isSafe(nextPos, s) {
			continue
		}

		reachableSpace := g.countReachableSpace(nextPos)
		score := float64(reachableSpace) * 50.0

		// Moving into a pocket smaller than the body is a slow death
		if reachableSpace < snakeLen {
			score -= 5000.0
		}

		distToTarget := float64(nextPos.Manhattan(target))
		score += (100.0 - distToTarget) * 2.0

		if nextPos == target {
			score += 1000.0
		}

		// Prefer going straight on ties
		if dir == current {
			score += 0.5
		}

		if score > bestScore {
			bestScore = score
			bestDir = dir
		}
	}

	return bestDir
}

// isSafe checks if a position is on the grid and not a snake body or hazard.
// The mover's own tail is ignored because it vacates this tick.
func (g *Game) isSafe(p Point, mover *Snake) bool {
	if !g.InBounds(p) {
		return false
	}
	for _, s := range g.snakes() {
		if s.Occupies(p, s == mover) {
			return false
		}
	}
	_, hit := g.Hazards.At(p)
	return !hit
}

// countReachableSpace uses a simple flood fill to count safe tiles
func (g *Game) countReachableSpace(start Point) int {
	board := g.board(true)
	limit := g.Size * g.Size

	visited := make(map[Point]bool)
	queue := []Point{start}
	visited[start] = true
	count := 0

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		count++

		if count >= limit {
			return count
		}

		for _, d := range Cardinals {
			next := curr.Add(d)
			if visited[next] || board.Blocked(next) {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return count
}
