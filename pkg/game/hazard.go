package game

import (
	"math/rand"
	"time"

	"github.com/trytobebee/snake_jinx/pkg/config"
)

// HazardKind represents the different trap types
type HazardKind int

const (
	HazardKnife HazardKind = iota
	HazardChain
	HazardBomb
	HazardChainsaw
	HazardNet
	HazardSword
	HazardExplosive
	HazardDagger
	HazardPistol
	HazardBow
	hazardKindCount
)

var hazardCatalog = [hazardKindCount]struct {
	name    string
	icon    string
	message string
}{
	HazardKnife:     {"knife", "🔪", "Sliced by a knife!"},
	HazardChain:     {"chain", "⛓️", "Tangled in chains!"},
	HazardBomb:      {"bomb", "💣", "Blown up by a bomb!"},
	HazardChainsaw:  {"chainsaw", "🪚", "Caught in the chainsaw!"},
	HazardNet:       {"net", "🕸️", "Trapped in the net!"},
	HazardSword:     {"sword", "🗡️", "Impaled by a sword!"},
	HazardExplosive: {"explosive", "🧨", "Explosive triggered!"},
	HazardDagger:    {"dagger", "⚔️", "Stabbed by a dagger!"},
	HazardPistol:    {"pistol", "🔫", "Shot!"},
	HazardBow:       {"bow", "🏹", "Arrow to the heart!"},
}

// Name returns the catalog name of the kind
func (k HazardKind) Name() string {
	if k < 0 || k >= hazardKindCount {
		return "trap"
	}
	return hazardCatalog[k].name
}

// Icon returns the emoji for the kind
func (k HazardKind) Icon() string {
	if k < 0 || k >= hazardKindCount {
		return "❓"
	}
	return hazardCatalog[k].icon
}

// Message returns the collision message for the kind
func (k HazardKind) Message() string {
	if k < 0 || k >= hazardKindCount {
		return "Trap triggered!"
	}
	return hazardCatalog[k].message
}

// Hazard is a positioned obstacle that costs a life on contact
type Hazard struct {
	Pos       Point      `json:"pos"`
	Kind      HazardKind `json:"kind"`
	CreatedAt time.Time  `json:"createdAt"`
}

// HazardField is the set of hazards on the board, keyed by position
type HazardField struct {
	hazards []Hazard
	index   map[Point]int
	deck    []HazardKind
}

// NewHazardField creates an empty field
func NewHazardField() *HazardField {
	return &HazardField{index: make(map[Point]int)}
}

// HazardCount returns the field size for a level, clamped to config.MaxHazards
func HazardCount(base, level int) int {
	n := base + level/config.HazardLevelStep
	if n > config.MaxHazards {
		return config.MaxHazards
	}
	if n < 0 {
		return 0
	}
	return n
}

// StrategicZones returns the corners, edge midpoints and quadrant centres
// of a size x size board, two cells in from the walls.
func StrategicZones(size int) []Point {
	lo, hi := 2, size-3
	mid := size/2 - 1
	q1, q3 := size/4, size-1-size/4
	return []Point{
		{lo, lo}, {hi, lo}, {lo, hi}, {hi, hi},
		{mid, lo}, {lo, mid}, {hi, mid}, {mid, hi},
		{q1, q1}, {q3, q1}, {q1, q3}, {q3, q3},
	}
}

// Len returns the number of hazards
func (f *HazardField) Len() int {
	return len(f.hazards)
}

// All returns the hazards in placement order
func (f *HazardField) All() []Hazard {
	return f.hazards
}

// At returns the hazard on p, if any
func (f *HazardField) At(p Point) (Hazard, bool) {
	i, ok := f.index[p]
	if !ok {
		return Hazard{}, false
	}
	return f.hazards[i], true
}

// Clear removes every hazard
func (f *HazardField) Clear() {
	f.hazards = nil
	f.index = make(map[Point]int)
	f.deck = nil
}

// Regenerate replaces the field with count new hazards.
// board must describe everything except the old hazards; placed hazards are
// marked on it as they are chosen. Fewer than count hazards are placed only
// when the board has no free cell left.
func (f *HazardField) Regenerate(count int, b *Board, rng *rand.Rand, now time.Time) []Hazard {
	f.Clear()

	zones := StrategicZones(b.Size)
	rng.Shuffle(len(zones), func(i, j int) { zones[i], zones[j] = zones[j], zones[i] })

	for i := 0; i < count; i++ {
		var (
			pos   Point
			found bool
		)
		if i < len(zones) {
			pos, found = placeInZone(zones[i], b, rng)
		}
		if !found {
			pos, found = placeRandom(b, rng)
		}
		if !found {
			pos, found = b.FirstFree()
		}
		if !found {
			break
		}

		b.MarkHazard(pos)
		f.index[pos] = len(f.hazards)
		f.hazards = append(f.hazards, Hazard{
			Pos:       pos,
			Kind:      f.drawKind(rng),
			CreatedAt: now,
		})
	}
	return f.hazards
}

// drawKind deals kinds without replacement and reshuffles once the deck is empty
func (f *HazardField) drawKind(rng *rand.Rand) HazardKind {
	if len(f.deck) == 0 {
		f.deck = make([]HazardKind, hazardKindCount)
		for i := range f.deck {
			f.deck[i] = HazardKind(i)
		}
		rng.Shuffle(len(f.deck), func(i, j int) { f.deck[i], f.deck[j] = f.deck[j], f.deck[i] })
	}
	k := f.deck[len(f.deck)-1]
	f.deck = f.deck[:len(f.deck)-1]
	return k
}

func placeInZone(zone Point, b *Board, rng *rand.Rand) (Point, bool) {
	for attempts := 0; attempts < config.HazardZoneAttempts; attempts++ {
		p := Point{
			X: clamp(zone.X+rng.Intn(3)-1, 1, b.Size-2),
			Y: clamp(zone.Y+rng.Intn(3)-1, 1, b.Size-2),
		}
		if b.Free(p) {
			return p, true
		}
	}
	return Point{}, false
}

func placeRandom(b *Board, rng *rand.Rand) (Point, bool) {
	for attempts := 0; attempts < config.HazardRandomAttempts; attempts++ {
		p := Point{X: rng.Intn(b.Size), Y: rng.Intn(b.Size)}
		if b.Free(p) {
			return p, true
		}
	}
	return Point{}, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
