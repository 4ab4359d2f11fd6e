package session

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/trytobebee/snake_jinx/pkg/game"
	"github.com/trytobebee/snake_jinx/pkg/store"
)

func newTestSession(onFrame FrameFunc) *Session {
	return New(game.NewGame(20, store.NewMemoryStore(0)), onFrame)
}

var easyOpts = game.Options{Name: "tester", Difficulty: "easy", Color: "green", Seed: 7}

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestStartRunsExactlyOneDriver(t *testing.T) {
	var frames atomic.Int32
	s := newTestSession(func(Frame) { frames.Add(1) })
	defer s.Stop()

	if got := s.ActiveDrivers(); got != 0 {
		t.Fatalf("expected no driver before start, got %d", got)
	}
	if err := s.Start(easyOpts); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := s.ActiveDrivers(); got != 1 {
		t.Fatalf("expected one driver, got %d", got)
	}

	waitFor(t, "driver frames", func() bool { return frames.Load() > 3 })
	t.Logf("received %d frames", frames.Load())
}

func TestDriverPublishesOncePerTick(t *testing.T) {
	var mu sync.Mutex
	var frames []Frame
	s := newTestSession(func(f Frame) {
		mu.Lock()
		frames = append(frames, f)
		mu.Unlock()
	})
	defer s.Stop()

	if err := s.Start(easyOpts); err != nil {
		t.Fatalf("start: %v", err)
	}
	time.Sleep(600 * time.Millisecond)
	s.Stop()
	ticks := s.Snapshot().Tick

	mu.Lock()
	defer mu.Unlock()
	t.Logf("frames delivered=%d simulation ticks=%d", len(frames), ticks)

	if ticks == 0 {
		t.Fatal("driver never stepped the simulation")
	}
	// The start frame plus one per tick, with event-only frames on top
	quiet := 0
	for i := 1; i < len(frames); i++ {
		prev, cur := frames[i-1], frames[i]
		if len(cur.Events) > 0 || cur.State.Phase != prev.State.Phase {
			continue
		}
		quiet++
		if cur.State.Tick == prev.State.Tick {
			t.Errorf("frame %d repeats tick %d without news", i, cur.State.Tick)
		}
	}
	if uint64(quiet) > ticks {
		t.Errorf("%d plain frames for %d ticks", quiet, ticks)
	}
}

func TestRestartDoesNotLeakDrivers(t *testing.T) {
	s := newTestSession(nil)
	defer s.Stop()

	if err := s.Restart(); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted before any round, got %v", err)
	}

	if err := s.Start(easyOpts); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := s.Restart(); err != nil {
			t.Fatalf("restart %d: %v", i, err)
		}
		if got := s.ActiveDrivers(); got != 1 {
			t.Fatalf("after restart %d expected one driver, got %d", i, got)
		}
	}

	state := s.Snapshot()
	if state.Score != 0 || state.Lives != 3 || state.Level != 1 {
		t.Errorf("restart should reset the tally, got score=%d lives=%d level=%d",
			state.Score, state.Lives, state.Level)
	}
}

func TestPauseStopsDriver(t *testing.T) {
	s := newTestSession(nil)
	defer s.Stop()

	if err := s.Start(easyOpts); err != nil {
		t.Fatalf("start: %v", err)
	}

	s.TogglePause()
	if got := s.ActiveDrivers(); got != 0 {
		t.Fatalf("expected no driver while paused, got %d", got)
	}
	paused := s.Snapshot()
	if paused.Phase != game.PhasePaused.String() {
		t.Fatalf("expected paused phase, got %s", paused.Phase)
	}

	time.Sleep(50 * time.Millisecond)
	later := s.Snapshot()
	if later.Tick != paused.Tick || later.HazardCountdown != paused.HazardCountdown {
		t.Errorf("state moved while paused: tick %d -> %d, countdown %d -> %d",
			paused.Tick, later.Tick, paused.HazardCountdown, later.HazardCountdown)
	}

	s.TogglePause()
	if got := s.ActiveDrivers(); got != 1 {
		t.Fatalf("expected one driver after resume, got %d", got)
	}
}

func TestMenuAndStopJoinDriver(t *testing.T) {
	s := newTestSession(nil)

	if err := s.Start(easyOpts); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Menu()
	if got := s.ActiveDrivers(); got != 0 {
		t.Fatalf("expected no driver in setup, got %d", got)
	}
	if phase := s.Snapshot().Phase; phase != game.PhaseSetup.String() {
		t.Fatalf("expected setup phase, got %s", phase)
	}

	if err := s.Start(easyOpts); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Stop()
	if got := s.ActiveDrivers(); got != 0 {
		t.Fatalf("expected no driver after stop, got %d", got)
	}
}

func TestInvalidStartKeepsSessionIdle(t *testing.T) {
	s := newTestSession(nil)
	defer s.Stop()

	tests := []struct {
		name string
		opts game.Options
		want error
	}{
		{"empty name", game.Options{Difficulty: "easy", Color: "green"}, game.ErrEmptyName},
		{"bad difficulty", game.Options{Name: "x", Difficulty: "nightmare", Color: "green"}, game.ErrUnknownDifficulty},
		{"bad color", game.Options{Name: "x", Difficulty: "easy", Color: "teal"}, game.ErrUnknownColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Start(tt.opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if got := s.ActiveDrivers(); got != 0 {
				t.Errorf("expected no driver after failed start, got %d", got)
			}
		})
	}
}

func TestHandleAction(t *testing.T) {
	var mu sync.Mutex
	var last Frame
	s := newTestSession(func(f Frame) {
		mu.Lock()
		last = f
		mu.Unlock()
	})
	defer s.Stop()

	if err := s.Start(easyOpts); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := s.HandleAction("left"); err != nil {
		t.Errorf("reverse turn should be dropped silently, got %v", err)
	}
	if err := s.HandleAction("up"); err != nil {
		t.Errorf("turn up: %v", err)
	}
	if err := s.HandleAction("jump"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}

	if err := s.HandleAction("auto"); err != nil {
		t.Fatalf("auto: %v", err)
	}
	if !s.Snapshot().AutoPlay {
		t.Error("auto action should enable auto-play")
	}

	if err := s.HandleAction("pause"); err != nil {
		t.Fatalf("pause: %v", err)
	}
	mu.Lock()
	phase := last.State.Phase
	mu.Unlock()
	if phase != game.PhasePaused.String() {
		t.Errorf("pause should publish a paused frame, got %s", phase)
	}
}
