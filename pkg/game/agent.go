package game

import (
	"math"
	"math/rand"
	"sort"

	"github.com/trytobebee/snake_jinx/pkg/config"
)

// Agent is the fleeing mouse.
//
// Each cadence tick it either wanders (keep going, re-roll with probability
// Agility, pick any open direction when blocked) or, while panicking, flees
// by maximising the Manhattan distance to the nearest pursuer. Panic is armed
// whenever a pursuer comes within config.PanicRadius and then lasts for
// config.PanicDuration cadence ticks.
type Agent struct {
	Pos        Point
	Dir        Direction
	Speed      float64
	Agility    float64
	Counter    int
	PanicTicks int
}

// NewAgent creates an agent at pos heading in a random direction.
// Agility is kept within [AgentMinAgility, AgentMaxAgility].
func NewAgent(pos Point, speed, agility float64, rng *rand.Rand) *Agent {
	return &Agent{
		Pos:     pos,
		Dir:     Cardinals[rng.Intn(len(Cardinals))],
		Speed:   speed,
		Agility: math.Max(config.AgentMinAgility, math.Min(config.AgentMaxAgility, agility)),
	}
}

// Cadence is the number of main ticks between two agent moves
func (a *Agent) Cadence() int {
	return int(math.Ceil(math.Max(config.MinAgentCadence, config.AgentCadenceShift-a.Speed)))
}

// StepsPerMove is how many cells the agent may cover in one cadence tick
func (a *Agent) StepsPerMove() int {
	n := int(math.Ceil(a.Speed - 1e-9))
	if n < 1 {
		return 1
	}
	return n
}

// Panicking reports whether the agent is in flight mode
func (a *Agent) Panicking() bool {
	return a.PanicTicks > 0
}

// SpeedUp raises the speed multiplier, clamped to the ceiling
func (a *Agent) SpeedUp(step float64) {
	a.Speed = math.Min(config.AgentMaxSpeed, a.Speed+step)
}

// Sharpen raises agility, clamped to the ceiling
func (a *Agent) Sharpen(step float64) {
	a.Agility = math.Min(config.AgentMaxAgility, a.Agility+step)
}

// Step advances the cadence counter and moves when it is due.
// It returns true if the agent changed cell.
func (a *Agent) Step(b *Board, pursuer Point, rng *rand.Rand) bool {
	a.Counter++
	if a.Counter < a.Cadence() {
		return false
	}
	a.Counter = 0

	if pursuer.Manhattan(a.Pos) <= config.PanicRadius {
		a.PanicTicks = config.PanicDuration
	}

	var (
		dir Direction
		ok  bool
	)
	if a.PanicTicks > 0 {
		a.PanicTicks--
		dir, ok = a.flee(b, pursuer)
	} else {
		dir, ok = a.wander(b, rng)
	}
	if !ok {
		// Boxed in: stay put this cadence tick
		return false
	}
	a.Dir = dir

	moved := false
	for i := 0; i < a.StepsPerMove(); i++ {
		next := a.Pos.Add(dir)
		if b.Blocked(next) {
			break
		}
		a.Pos = next
		moved = true
	}
	return moved
}

func (a *Agent) viable(b *Board) []Direction {
	dirs := make([]Direction, 0, len(Cardinals))
	for _, d := range Cardinals {
		if !b.Blocked(a.Pos.Add(d)) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func (a *Agent) wander(b *Board, rng *rand.Rand) (Direction, bool) {
	straight := !a.Dir.IsZero() && !b.Blocked(a.Pos.Add(a.Dir))
	if straight && rng.Float64() >= a.Agility {
		return a.Dir, true
	}

	options := a.viable(b)
	if len(options) == 0 {
		return None, false
	}
	return options[rng.Intn(len(options))], true
}

func (a *Agent) flee(b *Board, pursuer Point) (Direction, bool) {
	options := a.viable(b)
	if len(options) == 0 {
		return None, false
	}

	// Current heading first so ties keep the agent running straight
	sort.SliceStable(options, func(i, j int) bool {
		return options[i] == a.Dir && options[j] != a.Dir
	})
	sort.SliceStable(options, func(i, j int) bool {
		di := a.Pos.Add(options[i]).Manhattan(pursuer)
		dj := a.Pos.Add(options[j]).Manhattan(pursuer)
		return di > dj
	})
	return options[0], true
}
