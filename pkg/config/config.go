package config

import "time"

// Board dimensions
const (
	GridSize    = 20 // Square board, all entities occupy whole cells
	MinGridSize = 8  // Room for the start lane and a rival lane
)

// Round settings
const (
	StartLives       = 3
	MaxLives         = 5
	CapturesPerLevel = 5  // Level up every N captures
	CapturesPerLife  = 10 // Extra life every N captures
	CapturePoints    = 10
	EvasionBonus     = 5 // Extra points for catching a panicking mouse
)

// Hazard settings
const (
	HazardRegenInterval  = 35 * time.Second
	HazardLevelStep      = 5  // One extra hazard every N levels
	MaxHazards           = 20 // Hard ceiling on hazards per field
	HazardZoneAttempts   = 10
	HazardRandomAttempts = 30
	CollisionCooldown    = 1 * time.Second
	AgentSpawnAttempts   = 100
)

// Notification display durations
const (
	HazardMessageTime      = 1500 * time.Millisecond
	HazardChangeMessage    = 2 * time.Second
	DefaultMessageTime     = 2 * time.Second
	CollisionFlashTime     = 500 * time.Millisecond
	AchievementMessageTime = 3 * time.Second
)

// Agent (mouse) settings
const (
	AgentSpeedStep    = 0.1 // Speed gained per capture
	AgentMaxSpeed     = 3.0
	AgentAgilityStep  = 0.05 // Agility gained per level
	AgentMaxAgility   = 0.9
	AgentMinAgility   = 0.5
	PanicRadius       = 3  // Manhattan distance that triggers flight
	PanicDuration     = 18 // Cadence ticks flight stays active
	MinAgentCadence   = 2
	AgentCadenceShift = 3.0
)

// Speed settings
const (
	BaseTick         = 10 * time.Millisecond // Driver polling interval
	TickStep         = 5 * time.Millisecond  // Tick interval reduction per level
	MaxCatchUpTicks  = 4                     // Simulation steps allowed per poll
	ElapsedClockTick = 1 * time.Second
)

// Difficulty is a named set of starting tunables
type Difficulty struct {
	Name         string
	TickInterval time.Duration
	TickFloor    time.Duration
	HazardBase   int
	AgentSpeed   float64
	AgentAgility float64
	Rivals       int // AI-controlled competitor snakes
}

// Difficulty names
const (
	Easy   = "easy"
	Normal = "normal"
	Hard   = "hard"
)

var difficulties = map[string]Difficulty{
	Easy: {
		Name:         Easy,
		TickInterval: 150 * time.Millisecond,
		TickFloor:    70 * time.Millisecond,
		HazardBase:   4,
		AgentSpeed:   1.0,
		AgentAgility: 0.5,
	},
	Normal: {
		Name:         Normal,
		TickInterval: 100 * time.Millisecond,
		TickFloor:    60 * time.Millisecond,
		HazardBase:   5,
		AgentSpeed:   1.5,
		AgentAgility: 0.6,
	},
	Hard: {
		Name:         Hard,
		TickInterval: 70 * time.Millisecond,
		TickFloor:    50 * time.Millisecond,
		HazardBase:   6,
		AgentSpeed:   2.0,
		AgentAgility: 0.7,
		Rivals:       1,
	},
}

// LookupDifficulty returns the settings for a difficulty name
func LookupDifficulty(name string) (Difficulty, bool) {
	d, ok := difficulties[name]
	return d, ok
}

// Snake color palette
var Palette = map[string]string{
	"green":  "#48BB78",
	"blue":   "#4C51BF",
	"red":    "#E53E3E",
	"purple": "#9F7AEA",
}

// Emoji characters for rendering
const (
	CharEmpty  = "  " // Two spaces to match emoji width
	CharWall   = "⬜"
	CharHead   = "🟢"
	CharBody   = "🟩"
	CharRival  = "🟥"
	CharAgent  = "🐁"
	CharCrash  = "💥"
	CharHeart  = "❤️"
	CharNoLife = "🤍"
)
