package game

import "time"

// Point represents a coordinate on the game board
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p moved by one step in direction d
func (p Point) Add(d Direction) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Manhattan returns the taxicab distance between two points
func (p Point) Manhattan(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Direction is a unit delta vector. The zero value means "no direction".
type Direction struct {
	X int `json:"x"`
	Y int `json:"y"`
}

var (
	None  = Direction{}
	Up    = Direction{X: 0, Y: -1}
	Down  = Direction{X: 0, Y: 1}
	Left  = Direction{X: -1, Y: 0}
	Right = Direction{X: 1, Y: 0}
)

// Cardinals lists the four movement directions in a fixed order
var Cardinals = [4]Direction{Right, Left, Down, Up}

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	return Direction{X: -d.X, Y: -d.Y}
}

// IsZero reports whether d is the empty direction
func (d Direction) IsZero() bool {
	return d == None
}

// ParseDirection maps an action name to a direction
func ParseDirection(name string) (Direction, bool) {
	switch name {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return None, false
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// Phase is the top-level round state
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	}
	return "unknown"
}

// HazardInfo is a DTO for hazards sent to renderers
type HazardInfo struct {
	Pos  Point  `json:"pos"`
	Kind string `json:"kind"`
	Icon string `json:"icon"`
}

// GameState is a snapshot of the current round for renderers
type GameState struct {
	Phase           string        `json:"phase"`
	Player          string        `json:"player"`
	Difficulty      string        `json:"difficulty"`
	Color           string        `json:"color"`
	Snake           []Point       `json:"snake"`
	Direction       Direction     `json:"direction"`
	Rivals          [][]Point     `json:"rivals"`
	Agent           Point         `json:"agent"`
	AgentPanicking  bool          `json:"agentPanicking"`
	Hazards         []HazardInfo  `json:"hazards"`
	Score           int           `json:"score"`
	HighScore       int           `json:"highScore"`
	Lives           int           `json:"lives"`
	Level           int           `json:"level"`
	Captures        int           `json:"captures"`
	ElapsedSeconds  int           `json:"elapsedSeconds"`
	HazardCountdown int           `json:"hazardCountdown"`
	TickInterval    time.Duration `json:"tickInterval"`
	Cooldown        bool          `json:"cooldown"`
	AutoPlay        bool          `json:"autoPlay"`
	CrashPoint      *Point        `json:"crashPoint,omitempty"`
	Tick            uint64        `json:"tick"`
}

// GameConfig is a DTO for board settings sent to clients on connect
type GameConfig struct {
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Difficulties []string `json:"difficulties"`
	Colors       []string `json:"colors"`
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
