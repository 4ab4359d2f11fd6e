package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/trytobebee/snake_jinx/pkg/config"
	"github.com/trytobebee/snake_jinx/pkg/logger"
)

var (
	ErrEmptyName         = errors.New("player name is required")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownColor      = errors.New("unknown snake color")
)

// HighScoreStore is the persistence collaborator for the best score
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// Options are the start command parameters
type Options struct {
	Name       string
	Difficulty string
	Color      string
	Seed       int64 // 0 picks a time based seed
}

// Game owns every piece of round state. It is not safe for concurrent use;
// the session serialises access.
type Game struct {
	Size     int
	Options  Options
	Settings config.Difficulty

	Player  *Snake
	Rivals  []*Snake
	Agent   *Agent
	Hazards *HazardField

	Phase        Phase
	Score        int
	HighScore    int
	Lives        int
	Level        int
	Captures     int
	Elapsed      int // seconds of running time
	TickInterval time.Duration
	Tick         uint64
	AutoPlay     bool
	CrashPoint   *Point

	cooldown     bool
	timers       Scheduler
	events       []Event
	achievements map[Achievement]bool
	store        HighScoreStore
	rng          *rand.Rand
	now          func() time.Time
}

// NewGame creates a game in the setup phase on a size x size board.
// store may be nil, in which case high scores only live in memory.
func NewGame(size int, store HighScoreStore) *Game {
	if size <= 0 {
		size = config.GridSize
	}
	if size < config.MinGridSize {
		size = config.MinGridSize
	}
	g := &Game{
		Size:    size,
		Phase:   PhaseSetup,
		Hazards: NewHazardField(),
		Lives:   config.StartLives,
		Level:   1,
		store:   store,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
	g.HighScore = g.loadHighScore()
	return g
}

// SetClock overrides the wall clock used for hazard timestamps
func (g *Game) SetClock(now func() time.Time) {
	g.now = now
}

// Start validates the options and begins a fresh round.
// It may be called from any phase; a running round is discarded.
func (g *Game) Start(opts Options) error {
	if opts.Name == "" {
		return ErrEmptyName
	}
	settings, ok := config.LookupDifficulty(opts.Difficulty)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, opts.Difficulty)
	}
	if _, ok := config.Palette[opts.Color]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColor, opts.Color)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.Options = opts
	g.Settings = settings
	g.initRound()

	logger.Log.WithField("player", opts.Name).
		WithField("difficulty", opts.Difficulty).
		Info("round started")
	return nil
}

func (g *Game) initRound() {
	g.Score = 0
	g.Lives = config.StartLives
	g.Level = 1
	g.Captures = 0
	g.Elapsed = 0
	g.Tick = 0
	g.CrashPoint = nil
	g.cooldown = false
	g.events = nil
	g.achievements = make(map[Achievement]bool)
	g.TickInterval = g.Settings.TickInterval

	var policy Controller = ManualController{}
	if g.AutoPlay {
		policy = PursuitController{}
	}
	g.Player = NewSnake(StartBody(g.Size), Right, policy)
	g.Hazards.Clear()
	g.Agent = nil

	g.Rivals = nil
	for i := 0; i < g.Settings.Rivals; i++ {
		r := NewSnake([]Point{{}}, Left, PursuitController{})
		g.Rivals = append(g.Rivals, r)
		g.respawnRival(r)
	}

	g.respawnAgent(g.Settings.AgentSpeed, g.Settings.AgentAgility)
	g.Hazards.Regenerate(g.hazardCount(), g.board(false), g.rng, g.now())

	g.timers = NewScheduler(g.TickInterval)
	g.timers.StartRound()
	g.Phase = PhaseRunning
}

// InBounds reports whether p is on the board
func (g *Game) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

// snakes returns the player followed by the rivals
func (g *Game) snakes() []*Snake {
	all := make([]*Snake, 0, 1+len(g.Rivals))
	if g.Player != nil {
		all = append(all, g.Player)
	}
	return append(all, g.Rivals...)
}

// board builds the occupancy oracle. withHazards=false is used while the
// hazard field itself is being regenerated.
func (g *Game) board(withHazards bool) *Board {
	b := NewBoard(g.Size)
	for _, s := range g.snakes() {
		b.MarkSnake(s.Body)
	}
	if withHazards {
		for _, h := range g.Hazards.All() {
			b.MarkHazard(h.Pos)
		}
	}
	if g.Agent != nil {
		b.MarkAgent(g.Agent.Pos)
	}
	b.Reserve(StartBody(g.Size))
	return b
}

// Board returns the current occupancy oracle
func (g *Game) Board() *Board {
	return g.board(true)
}

// Turn buffers a direction for the player. Reverse turns are dropped.
// A turn made while paused is applied on the first tick after resume.
func (g *Game) Turn(dir Direction) bool {
	if (g.Phase != PhaseRunning && g.Phase != PhasePaused) || g.Player == nil {
		return false
	}
	return g.Player.Turn(dir)
}

// ToggleAutoPlay switches the player between input and pursuit control
func (g *Game) ToggleAutoPlay() {
	g.AutoPlay = !g.AutoPlay
	if g.Player == nil {
		return
	}
	if g.AutoPlay {
		g.Player.Policy = PursuitController{}
		g.emit(EventInfo, "🤖 Auto-play on", config.DefaultMessageTime, nil)
	} else {
		g.Player.Policy = ManualController{}
		g.emit(EventInfo, "👤 Manual control restored", config.DefaultMessageTime, nil)
	}
}

// Advance feeds dt of wall-clock time to the scheduler and runs the ticks
// that fell due. Nothing accrues outside the running phase, so a paused
// round neither ticks nor moves the hazard countdown.
// It returns the number of simulation steps executed.
func (g *Game) Advance(dt time.Duration) int {
	if g.Phase != PhaseRunning || dt <= 0 {
		return 0
	}

	g.Elapsed += g.timers.Clock.Advance(dt)

	if g.timers.Cooldown.Advance(dt) > 0 {
		g.timers.Cooldown.Stop()
		g.cooldown = false
	}

	if g.timers.Hazards.Advance(dt) > 0 {
		g.regenerateHazards()
	}

	due := g.timers.Tick.Advance(dt)
	if due > config.MaxCatchUpTicks {
		due = config.MaxCatchUpTicks
	}
	ran := 0
	for i := 0; i < due && g.Phase == PhaseRunning; i++ {
		g.Step()
		ran++
	}
	return ran
}

// Step runs one simulation tick: player, rivals, then the agent
func (g *Game) Step() {
	if g.Phase != PhaseRunning {
		return
	}
	g.Tick++

	g.stepPlayer()
	if g.Phase != PhaseRunning {
		return
	}

	for _, r := range g.Rivals {
		g.stepRival(r)
	}

	g.Agent.Step(g.Board(), g.nearestPursuer(), g.rng)
}

// nearestPursuer returns the snake head closest to the agent
func (g *Game) nearestPursuer() Point {
	best := g.Player.Head()
	for _, r := range g.Rivals {
		if r.Head().Manhattan(g.Agent.Pos) < best.Manhattan(g.Agent.Pos) {
			best = r.Head()
		}
	}
	return best
}

// respawnAgent places a fresh agent on a random free cell
func (g *Game) respawnAgent(speed, agility float64) {
	g.Agent = nil
	b := g.board(true)

	var pos Point
	found := false
	for attempts := 0; attempts < config.AgentSpawnAttempts; attempts++ {
		p := Point{X: g.rng.Intn(g.Size), Y: g.rng.Intn(g.Size)}
		if b.Free(p) {
			pos, found = p, true
			break
		}
	}
	if !found {
		pos, _ = b.FirstFree()
	}
	g.Agent = NewAgent(pos, speed, agility, g.rng)
}

// respawnRival drops a rival on a free three cell lane, or a single free cell
func (g *Game) respawnRival(r *Snake) {
	r.Body = nil
	b := g.board(true)

	for attempts := 0; attempts < config.AgentSpawnAttempts; attempts++ {
		head := Point{X: 2 + g.rng.Intn(g.Size-4), Y: 1 + g.rng.Intn(g.Size-2)}
		body := []Point{head, {X: head.X + 1, Y: head.Y}, {X: head.X + 2, Y: head.Y}}
		ok := true
		for _, p := range body {
			if !b.Free(p) {
				ok = false
				break
			}
		}
		if ok {
			r.Reset(body, Left)
			return
		}
	}
	p, _ := b.FirstFree()
	r.Reset([]Point{p}, Left)
}

func (g *Game) hazardCount() int {
	return HazardCount(g.Settings.HazardBase, g.Level)
}

// regenerateHazards replaces the field, restarts its countdown and notifies
func (g *Game) regenerateHazards() {
	g.Hazards.Regenerate(g.hazardCount(), g.board(false), g.rng, g.now())
	g.timers.Hazards.Start()
	g.emit(EventHazardsChanged, "⚠️ The traps have moved!", config.HazardChangeMessage, nil)
}

// HazardCountdown returns the time until the next timed regeneration
func (g *Game) HazardCountdown() time.Duration {
	return g.timers.Hazards.Remaining()
}

// CooldownActive reports whether hazard collisions are suppressed
func (g *Game) CooldownActive() bool {
	return g.cooldown
}

// Snapshot returns a copy of the state for renderers
func (g *Game) Snapshot() GameState {
	state := GameState{
		Phase:           g.Phase.String(),
		Player:          g.Options.Name,
		Difficulty:      g.Options.Difficulty,
		Color:           config.Palette[g.Options.Color],
		Score:           g.Score,
		HighScore:       g.HighScore,
		Lives:           g.Lives,
		Level:           g.Level,
		Captures:        g.Captures,
		ElapsedSeconds:  g.Elapsed,
		HazardCountdown: int((g.HazardCountdown() + time.Second - 1) / time.Second),
		TickInterval:    g.TickInterval,
		Cooldown:        g.cooldown,
		AutoPlay:        g.AutoPlay,
		Tick:            g.Tick,
	}

	if g.Player != nil {
		state.Snake = append([]Point(nil), g.Player.Body...)
		state.Direction = g.Player.Direction
	}
	for _, r := range g.Rivals {
		state.Rivals = append(state.Rivals, append([]Point(nil), r.Body...))
	}
	if g.Agent != nil {
		state.Agent = g.Agent.Pos
		state.AgentPanicking = g.Agent.Panicking()
	}

	hazards := g.Hazards.All()
	state.Hazards = make([]HazardInfo, len(hazards))
	for i, h := range hazards {
		state.Hazards[i] = HazardInfo{Pos: h.Pos, Kind: h.Kind.Name(), Icon: h.Kind.Icon()}
	}

	if g.CrashPoint != nil {
		p := *g.CrashPoint
		state.CrashPoint = &p
	}
	return state
}

// GetGameConfig returns the board configuration for clients
func (g *Game) GetGameConfig() GameConfig {
	colors := make([]string, 0, len(config.Palette))
	for name := range config.Palette {
		colors = append(colors, name)
	}
	sort.Strings(colors)
	return GameConfig{
		Width:        g.Size,
		Height:       g.Size,
		Difficulties: []string{config.Easy, config.Normal, config.Hard},
		Colors:       colors,
	}
}
