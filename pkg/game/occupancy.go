package game

const (
	cellSnake uint8 = 1 << iota
	cellHazard
	cellAgent
	cellReserved
)

// Board is the occupancy oracle for one moment of the round.
// It is rebuilt from the game state whenever placement or AI needs it.
type Board struct {
	Size  int
	cells []uint8
}

// NewBoard creates an empty board of size x size cells
func NewBoard(size int) *Board {
	return &Board{Size: size, cells: make([]uint8, size*size)}
}

// InBounds reports whether p lies on the grid
func (b *Board) InBounds(p Point) bool {
	return p.X >= 0 && p.X < b.Size && p.Y >= 0 && p.Y < b.Size
}

func (b *Board) mark(p Point, flag uint8) {
	if b.InBounds(p) {
		b.cells[p.Y*b.Size+p.X] |= flag
	}
}

func (b *Board) has(p Point, flag uint8) bool {
	return b.InBounds(p) && b.cells[p.Y*b.Size+p.X]&flag != 0
}

// MarkSnake marks every body cell as taken by a snake
func (b *Board) MarkSnake(body []Point) {
	for _, p := range body {
		b.mark(p, cellSnake)
	}
}

// MarkHazard marks a hazard cell
func (b *Board) MarkHazard(p Point) {
	b.mark(p, cellHazard)
}

// MarkAgent marks the agent cell
func (b *Board) MarkAgent(p Point) {
	b.mark(p, cellAgent)
}

// Reserve keeps cells free of placements (e.g. the snake spawn lane)
func (b *Board) Reserve(cells []Point) {
	for _, p := range cells {
		b.mark(p, cellReserved)
	}
}

// Blocked reports whether the agent may not enter p:
// off-grid, snake or hazard.
func (b *Board) Blocked(p Point) bool {
	if !b.InBounds(p) {
		return true
	}
	return b.cells[p.Y*b.Size+p.X]&(cellSnake|cellHazard) != 0
}

// Free reports whether something new may be placed on p
func (b *Board) Free(p Point) bool {
	return b.InBounds(p) && b.cells[p.Y*b.Size+p.X] == 0
}

// IsHazard reports whether p holds a hazard
func (b *Board) IsHazard(p Point) bool {
	return b.has(p, cellHazard)
}

// FirstFree scans row by row for the first free cell
func (b *Board) FirstFree() (Point, bool) {
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			p := Point{X: x, Y: y}
			if b.Free(p) {
				return p, true
			}
		}
	}
	return Point{}, false
}
