package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/trytobebee/snake_jinx/pkg/config"
)

func TestAgentPacing(t *testing.T) {
	tests := []struct {
		speed   float64
		cadence int
		steps   int
	}{
		{0.5, 3, 1},
		{1.0, 2, 1},
		{1.5, 2, 2},
		{2.0, 2, 2},
		{2.1, 2, 3},
		{config.AgentMaxSpeed, 2, 3},
	}

	for _, tt := range tests {
		a := &Agent{Speed: tt.speed}
		if got := a.Cadence(); got != tt.cadence {
			t.Errorf("speed %.1f: cadence %d, want %d", tt.speed, got, tt.cadence)
		}
		if got := a.StepsPerMove(); got != tt.steps {
			t.Errorf("speed %.1f: steps %d, want %d", tt.speed, got, tt.steps)
		}
	}
}

func TestAgentTunablesClamp(t *testing.T) {
	a := &Agent{Speed: 2.95, Agility: 0.88}
	a.SpeedUp(config.AgentSpeedStep)
	a.Sharpen(config.AgentAgilityStep)
	if a.Speed != config.AgentMaxSpeed || a.Agility != config.AgentMaxAgility {
		t.Errorf("expected clamp to %.1f/%.2f, got %.2f/%.2f",
			config.AgentMaxSpeed, config.AgentMaxAgility, a.Speed, a.Agility)
	}
}

func TestAgentMovesOnCadence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBoard(20)
	a := &Agent{Pos: Point{10, 10}, Dir: Right, Speed: 1.0, Agility: 0}

	if a.Step(b, Point{0, 0}, rng) {
		t.Fatal("agent moved before its cadence")
	}
	if !a.Step(b, Point{0, 0}, rng) {
		t.Fatal("agent did not move on its cadence tick")
	}
	// Zero agility never re-rolls an open heading
	if a.Pos != (Point{11, 10}) {
		t.Errorf("expected (11,10), got %v", a.Pos)
	}
}

func TestAgentFleesPursuer(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBoard(20)
	pursuer := Point{9, 10}
	b.MarkSnake([]Point{pursuer})
	a := &Agent{Pos: Point{10, 10}, Dir: Up, Speed: 1.0, Counter: 1}

	if !a.Step(b, pursuer, rng) {
		t.Fatal("panicking agent did not move")
	}
	if !a.Panicking() || a.PanicTicks != config.PanicDuration-1 {
		t.Errorf("expected panic armed, ticks=%d", a.PanicTicks)
	}
	// Right, up and down all reach distance 2; the current heading wins the tie
	if a.Pos != (Point{10, 9}) {
		t.Errorf("expected flight up to (10,9), got %v", a.Pos)
	}
	if a.Pos.Manhattan(pursuer) <= 1 {
		t.Errorf("agent did not gain distance: %v", a.Pos)
	}
}

func TestAgentBoxedInStays(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBoard(20)
	b.MarkSnake([]Point{{1, 0}})
	b.MarkHazard(Point{0, 1})
	a := &Agent{Pos: Point{0, 0}, Dir: Right, Speed: 1.0, Counter: 1}

	if a.Step(b, Point{10, 10}, rng) {
		t.Fatal("boxed-in agent moved")
	}
	if a.Pos != (Point{0, 0}) {
		t.Errorf("agent left its cell: %v", a.Pos)
	}
}

func TestAgentMultiStepStopsAtObstacle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBoard(20)
	b.MarkHazard(Point{13, 10})
	a := &Agent{Pos: Point{10, 10}, Dir: Right, Speed: 3.0, Agility: 0, Counter: 1}

	a.Step(b, Point{0, 0}, rng)
	if a.Pos != (Point{12, 10}) {
		t.Errorf("expected to stop in front of the hazard at (12,10), got %v", a.Pos)
	}
}

func TestAgentWanderStaysLegal(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	b := NewBoard(10)
	b.MarkSnake([]Point{{4, 4}, {4, 5}, {4, 6}, {5, 6}})
	b.MarkHazard(Point{7, 2})
	b.MarkHazard(Point{2, 7})
	a := NewAgent(Point{6, 5}, 2.0, 0.9, rng)

	start := time.Now()
	for i := 0; i < 2000; i++ {
		a.Step(b, Point{9, 9}, rng)
		if b.Blocked(a.Pos) {
			t.Fatalf("tick %d: agent on blocked cell %v", i, a.Pos)
		}
	}
	t.Logf("2000 wander ticks in %v", time.Since(start))
}

func TestBoardFlags(t *testing.T) {
	b := NewBoard(5)
	b.MarkSnake([]Point{{1, 1}})
	b.MarkHazard(Point{2, 2})
	b.MarkAgent(Point{3, 3})
	b.Reserve([]Point{{0, 4}})

	tests := []struct {
		p       Point
		blocked bool
		free    bool
	}{
		{Point{-1, 0}, true, false},
		{Point{5, 0}, true, false},
		{Point{1, 1}, true, false},
		{Point{2, 2}, true, false},
		{Point{3, 3}, false, false},
		{Point{0, 4}, false, false},
		{Point{4, 0}, false, true},
	}

	for _, tt := range tests {
		if got := b.Blocked(tt.p); got != tt.blocked {
			t.Errorf("Blocked(%v) = %v, want %v", tt.p, got, tt.blocked)
		}
		if got := b.Free(tt.p); got != tt.free {
			t.Errorf("Free(%v) = %v, want %v", tt.p, got, tt.free)
		}
	}
	if !b.IsHazard(Point{2, 2}) || b.IsHazard(Point{1, 1}) {
		t.Error("IsHazard mismatch")
	}
	if p, ok := b.FirstFree(); !ok || p != (Point{0, 0}) {
		t.Errorf("FirstFree = %v %v", p, ok)
	}
}

func TestSnakeTurnRules(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		ok   bool
	}{
		{"reverse", Left, false},
		{"none", None, false},
		{"same", Right, true},
		{"up", Up, true},
		{"down", Down, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnake(StartBody(20), Right, ManualController{})
			if got := s.Turn(tt.dir); got != tt.ok {
				t.Errorf("Turn(%v) = %v, want %v", tt.dir, got, tt.ok)
			}
		})
	}
}

func TestSnakeTurnIsCheckedAgainstCurrentHeading(t *testing.T) {
	s := NewSnake(StartBody(20), Right, ManualController{})
	s.Turn(Up)
	// Down reverses the buffered turn but not the heading; the last request wins
	if !s.Turn(Down) {
		t.Fatal("down rejected while heading right")
	}
	if head := s.NextHead(); head != (Point{10, 11}) {
		t.Errorf("expected (10,11), got %v", head)
	}
	if s.Len() != 3 {
		t.Error("NextHead must not touch the body")
	}
}

func TestTimer(t *testing.T) {
	timer := NewTimer(100 * time.Millisecond)
	if n := timer.Advance(time.Second); n != 0 {
		t.Fatalf("stopped timer fired %d times", n)
	}

	timer.Start()
	if n := timer.Advance(250 * time.Millisecond); n != 2 {
		t.Errorf("expected 2 intervals, got %d", n)
	}
	if r := timer.Remaining(); r != 50*time.Millisecond {
		t.Errorf("expected 50ms remaining, got %v", r)
	}
	if n := timer.Advance(50 * time.Millisecond); n != 1 {
		t.Errorf("expected carry-over to complete an interval, got %d", n)
	}

	timer.Stop()
	if timer.Running() || timer.Remaining() != 0 {
		t.Error("stop should clear the timer")
	}
}
