package game

import (
	"time"

	"github.com/trytobebee/snake_jinx/pkg/config"
)

// Timer accumulates running time and reports how many intervals elapsed.
// It never fires on its own; the scheduler feeds it from Game.Advance.
type Timer struct {
	Interval time.Duration
	elapsed  time.Duration
	running  bool
}

// NewTimer creates a stopped timer
func NewTimer(interval time.Duration) Timer {
	return Timer{Interval: interval}
}

// Start (re)starts the timer from zero
func (t *Timer) Start() {
	t.elapsed = 0
	t.running = true
}

// Stop halts the timer, keeping nothing
func (t *Timer) Stop() {
	t.elapsed = 0
	t.running = false
}

// Running reports whether the timer accrues time
func (t *Timer) Running() bool {
	return t.running
}

// Advance adds dt and returns the number of whole intervals completed
func (t *Timer) Advance(dt time.Duration) int {
	if !t.running || t.Interval <= 0 || dt <= 0 {
		return 0
	}
	t.elapsed += dt
	n := int(t.elapsed / t.Interval)
	t.elapsed -= time.Duration(n) * t.Interval
	return n
}

// Remaining returns the time left in the current interval
func (t *Timer) Remaining() time.Duration {
	if !t.running {
		return 0
	}
	return t.Interval - t.elapsed
}

// Scheduler holds every time-based cadence of a round
type Scheduler struct {
	Tick     Timer // main simulation tick, shrinks with level
	Hazards  Timer // wall-clock hazard regeneration
	Cooldown Timer // one-shot hazard collision grace period
	Clock    Timer // elapsed seconds display
}

// NewScheduler creates a scheduler for a starting tick interval
func NewScheduler(tick time.Duration) Scheduler {
	return Scheduler{
		Tick:     NewTimer(tick),
		Hazards:  NewTimer(config.HazardRegenInterval),
		Cooldown: NewTimer(config.CollisionCooldown),
		Clock:    NewTimer(config.ElapsedClockTick),
	}
}

// StartRound starts every repeating timer from zero
func (s *Scheduler) StartRound() {
	s.Tick.Start()
	s.Hazards.Start()
	s.Clock.Start()
	s.Cooldown.Stop()
}

// StopAll halts every timer
func (s *Scheduler) StopAll() {
	s.Tick.Stop()
	s.Hazards.Stop()
	s.Cooldown.Stop()
	s.Clock.Stop()
}
