package game

// Snake is an ordered body with the head at index 0.
// Player and rival snakes share this type and differ only in their Controller.
type Snake struct {
	Body      []Point
	Direction Direction
	Policy    Controller

	pending       Direction
	pendingGrowth bool
}

// NewSnake creates a snake with a copy of body heading in dir
func NewSnake(body []Point, dir Direction, policy Controller) *Snake {
	s := &Snake{Policy: policy}
	s.Reset(body, dir)
	return s
}

// StartBody returns the canonical three segment body for a board size
func StartBody(size int) []Point {
	c := size / 2
	return []Point{{X: c, Y: c}, {X: c - 1, Y: c}, {X: c - 2, Y: c}}
}

// Head returns the first body segment
func (s *Snake) Head() Point {
	return s.Body[0]
}

// Len returns the number of segments
func (s *Snake) Len() int {
	return len(s.Body)
}

// Reset replaces the body and clears any buffered turn or growth
func (s *Snake) Reset(body []Point, dir Direction) {
	s.Body = append(make([]Point, 0, len(body)+8), body...)
	s.Direction = dir
	s.pending = None
	s.pendingGrowth = false
}

// Turn buffers dir for the next tick. The exact reverse of the current
// direction is dropped, as is the empty direction.
func (s *Snake) Turn(dir Direction) bool {
	if dir.IsZero() || dir == s.Direction.Reverse() {
		return false
	}
	s.pending = dir
	return true
}

// Pending returns the buffered direction, or None
func (s *Snake) Pending() Direction {
	return s.pending
}

// NextHead applies the buffered turn and returns where the head moves next.
// The body is not touched.
func (s *Snake) NextHead() Point {
	if !s.pending.IsZero() {
		s.Direction = s.pending
		s.pending = None
	}
	return s.Head().Add(s.Direction)
}

// Grow keeps the tail on the next Advance
func (s *Snake) Grow() {
	s.pendingGrowth = true
}

// Growing reports whether the next Advance keeps the tail
func (s *Snake) Growing() bool {
	return s.pendingGrowth
}

// Advance prepends head and drops the tail unless growth is pending.
// The growth flag is consumed.
func (s *Snake) Advance(head Point) {
	s.Body = append(s.Body, Point{})
	copy(s.Body[1:], s.Body[:len(s.Body)-1])
	s.Body[0] = head
	if s.pendingGrowth {
		s.pendingGrowth = false
		return
	}
	s.Body = s.Body[:len(s.Body)-1]
}

// Occupies reports whether p is on the body. When movingTail is set the tail
// cell is ignored, since it vacates during a non-growing move.
func (s *Snake) Occupies(p Point, movingTail bool) bool {
	body := s.Body
	if movingTail && !s.pendingGrowth && len(body) > 0 {
		body = body[:len(body)-1]
	}
	for _, b := range body {
		if b == p {
			return true
		}
	}
	return false
}
