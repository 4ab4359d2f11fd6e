package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/trytobebee/snake_jinx/pkg/config"
	"github.com/trytobebee/snake_jinx/pkg/game"
	"github.com/trytobebee/snake_jinx/pkg/logger"
)

var (
	ErrNotStarted    = errors.New("no round has been started")
	ErrUnknownAction = errors.New("unknown action")
)

// Frame is what a front end receives after every driver tick
type Frame struct {
	State  game.GameState
	Events []game.Event
}

// FrameFunc receives frames. It is called without the session lock held and
// may be called from the driver and a control goroutine at the same time.
type FrameFunc func(Frame)

// Session drives one game: it owns the loop goroutine and serialises every
// access to the game.
type Session struct {
	ID string

	ctl  sync.Mutex // serialises control operations (start, pause, stop)
	mu   sync.Mutex // guards game
	game *game.Game
	opts *game.Options

	onFrame  FrameFunc
	recorder atomic.Pointer[game.GameRecorder]

	cancel  context.CancelFunc
	done    chan struct{}
	drivers atomic.Int32
}

// New wraps g in a session. onFrame may be nil.
func New(g *game.Game, onFrame FrameFunc) *Session {
	return &Session{
		ID:      uuid.NewString(),
		game:    g,
		onFrame: onFrame,
	}
}

// SetRecorder attaches a recorder that receives every frame
func (s *Session) SetRecorder(r *game.GameRecorder) {
	s.recorder.Store(r)
}

// ActiveDrivers returns the number of running loop goroutines
func (s *Session) ActiveDrivers() int {
	return int(s.drivers.Load())
}

// Start begins a fresh round, replacing any round in progress
func (s *Session) Start(opts game.Options) error {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.stopDriver()

	s.mu.Lock()
	err := s.game.Start(opts)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("start round: %w", err)
	}
	s.opts = &opts

	s.log().WithField("difficulty", opts.Difficulty).Info("session round started")
	s.startDriver()
	s.publish()
	return nil
}

// Restart starts a new round with the last options
func (s *Session) Restart() error {
	s.ctl.Lock()
	opts := s.opts
	s.ctl.Unlock()
	if opts == nil {
		return ErrNotStarted
	}
	// A fixed seed would replay the same round
	next := *opts
	next.Seed = 0
	return s.Start(next)
}

// TogglePause pauses a running round or resumes a paused one.
// Pausing stops the driver; resuming starts a new one.
func (s *Session) TogglePause() {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.mu.Lock()
	phase := s.game.Phase
	switch phase {
	case game.PhaseRunning:
		s.game.Pause()
	case game.PhasePaused:
		s.game.Resume()
	}
	s.mu.Unlock()

	switch phase {
	case game.PhaseRunning:
		s.stopDriver()
		s.log().Debug("paused")
	case game.PhasePaused:
		s.startDriver()
		s.log().Debug("resumed")
	}
	s.publish()
}

// Menu abandons the round and returns to setup
func (s *Session) Menu() {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.stopDriver()
	s.mu.Lock()
	s.game.ReturnToSetup()
	s.mu.Unlock()
	s.publish()
}

// Stop halts the driver and closes the recorder
func (s *Session) Stop() {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.stopDriver()
	if rec := s.recorder.Swap(nil); rec != nil {
		if err := rec.Close(); err != nil {
			s.log().WithError(err).Warn("failed to close recorder")
		}
	}
}

// Turn forwards a direction request to the player
func (s *Session) Turn(dir game.Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Turn(dir)
}

// ToggleAutoPlay switches the player between manual and automatic control
func (s *Session) ToggleAutoPlay() {
	s.mu.Lock()
	s.game.ToggleAutoPlay()
	s.mu.Unlock()
	s.publish()
}

// Snapshot returns the current state
func (s *Session) Snapshot() game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// Config returns the board configuration
func (s *Session) Config() game.GameConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.GetGameConfig()
}

// HandleAction maps a front end command onto the session
func (s *Session) HandleAction(action string) error {
	if dir, ok := game.ParseDirection(action); ok {
		s.Turn(dir)
		return nil
	}

	switch action {
	case "pause":
		s.TogglePause()
	case "restart":
		return s.Restart()
	case "menu":
		s.Menu()
	case "auto":
		s.ToggleAutoPlay()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return nil
}

// startDriver launches the loop goroutine. Caller holds ctl.
func (s *Session) startDriver() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	s.drivers.Add(1)
	go s.run(ctx, done)
}

// stopDriver cancels the loop goroutine and waits for it to exit.
// Caller holds ctl but not mu.
func (s *Session) stopDriver() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

func (s *Session) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer s.drivers.Add(-1)

	ticker := time.NewTicker(config.BaseTick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now

			s.mu.Lock()
			steps := s.game.Advance(dt)
			running := s.game.Phase == game.PhaseRunning
			// Polls that ran no step and raised nothing publish nothing
			changed := steps > 0 || !running || len(s.game.PendingEvents()) > 0
			var frame Frame
			if changed {
				frame = s.frameLocked()
			}
			s.mu.Unlock()

			if changed {
				s.deliver(frame)
			}
			if !running {
				return
			}
		}
	}
}

func (s *Session) publish() {
	s.mu.Lock()
	frame := s.frameLocked()
	s.mu.Unlock()
	s.deliver(frame)
}

func (s *Session) frameLocked() Frame {
	return Frame{
		State:  s.game.Snapshot(),
		Events: s.game.DrainEvents(),
	}
}

func (s *Session) deliver(f Frame) {
	if rec := s.recorder.Load(); rec != nil {
		rec.RecordStep(game.StepRecord{
			SessionID: s.ID,
			Time:      time.Now(),
			State:     f.State,
			Events:    f.Events,
		})
	}
	if s.onFrame != nil {
		s.onFrame(f)
	}
}

func (s *Session) log() *logrus.Entry {
	return logger.WithRound(s.ID, s.playerName())
}

func (s *Session) playerName() string {
	if s.opts == nil {
		return ""
	}
	return s.opts.Name
}
