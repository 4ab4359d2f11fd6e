package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/trytobebee/snake_jinx/pkg/config"
	"github.com/trytobebee/snake_jinx/pkg/game"
)

// TerminalRenderer draws snapshots as an emoji grid
type TerminalRenderer struct {
	size   int
	board  [][]int
	icons  map[game.Point]string
	buffer strings.Builder
	out    io.Writer
	clear  bool
}

// Cell types for the board
const (
	cellEmpty = iota
	cellHead
	cellBody
	cellRival
	cellAgent
	cellHazard
	cellCrash
)

// NewTerminalRenderer creates a renderer for a size x size board writing to stdout
func NewTerminalRenderer(size int) *TerminalRenderer {
	return NewWriterRenderer(size, os.Stdout, true)
}

// NewWriterRenderer renders to w; clear controls the ANSI clear sequence
func NewWriterRenderer(size int, w io.Writer, clear bool) *TerminalRenderer {
	// Pre-allocate board to reduce GC pressure
	board := make([][]int, size)
	for i := range board {
		board[i] = make([]int, size)
	}

	return &TerminalRenderer{
		size:  size,
		board: board,
		icons: make(map[game.Point]string),
		out:   w,
		clear: clear,
	}
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

func (r *TerminalRenderer) set(p game.Point, cell int) {
	if p.X >= 0 && p.X < r.size && p.Y >= 0 && p.Y < r.size {
		r.board[p.Y][p.X] = cell
	}
}

// Render draws the state; message is the latest notification, if any
func (r *TerminalRenderer) Render(state game.GameState, message string) {
	r.buffer.Reset()
	if r.clear {
		r.buffer.WriteString("\033[H\033[2J\033[3J")
	}

	for y := range r.board {
		for x := range r.board[y] {
			r.board[y][x] = cellEmpty
		}
	}
	for p := range r.icons {
		delete(r.icons, p)
	}

	// Later layers win: hazards, agent, rivals, player, crash marker
	for _, h := range state.Hazards {
		r.set(h.Pos, cellHazard)
		r.icons[h.Pos] = h.Icon
	}
	if state.Phase != game.PhaseSetup.String() {
		r.set(state.Agent, cellAgent)
	}
	for _, rival := range state.Rivals {
		for _, p := range rival {
			r.set(p, cellRival)
		}
	}
	for i, p := range state.Snake {
		if i == 0 {
			r.set(p, cellHead)
		} else {
			r.set(p, cellBody)
		}
	}
	if state.CrashPoint != nil && state.Phase == game.PhaseGameOver.String() {
		r.set(*state.CrashPoint, cellCrash)
	}

	r.buffer.WriteString("\n  🐍 SNAKE vs 🐁 MOUSE\n")
	r.buffer.WriteString(fmt.Sprintf("  Score: %d  |  Best: %d  |  Level: %d  |  Caught: %d  |  Time: %ds  |  Traps move in: %ds\n",
		state.Score, state.HighScore, state.Level, state.Captures, state.ElapsedSeconds, state.HazardCountdown))
	r.buffer.WriteString("  Lives: " + lives(state.Lives))
	if state.AutoPlay {
		r.buffer.WriteString("  |  🤖 AUTO")
	}
	if state.Cooldown {
		r.buffer.WriteString("  |  🛡️")
	}
	if state.AgentPanicking {
		r.buffer.WriteString("  |  😱")
	}
	r.buffer.WriteString("\n")

	if message != "" {
		r.buffer.WriteString("  " + message + "\n")
	} else {
		r.buffer.WriteString("\n")
	}

	border := strings.Repeat(config.CharWall, r.size+2)
	r.buffer.WriteString("  " + border + "\n")
	for y, row := range r.board {
		r.buffer.WriteString("  " + config.CharWall)
		for x, cell := range row {
			switch cell {
			case cellEmpty:
				r.buffer.WriteString(config.CharEmpty)
			case cellHead:
				r.buffer.WriteString(config.CharHead)
			case cellBody:
				r.buffer.WriteString(config.CharBody)
			case cellRival:
				r.buffer.WriteString(config.CharRival)
			case cellAgent:
				r.buffer.WriteString(config.CharAgent)
			case cellHazard:
				r.buffer.WriteString(r.icons[game.Point{X: x, Y: y}])
			case cellCrash:
				r.buffer.WriteString(config.CharCrash)
			}
		}
		r.buffer.WriteString(config.CharWall + "\n")
	}
	r.buffer.WriteString("  " + border + "\n")

	r.buffer.WriteString("\n  Use WASD or Arrow keys to move, T for auto-play\n")
	r.buffer.WriteString("  P to pause, M for menu, Q to quit\n")

	switch state.Phase {
	case game.PhasePaused.String():
		r.buffer.WriteString("\n  ⏸️  PAUSED - Press P to continue\n")
	case game.PhaseGameOver.String():
		r.buffer.WriteString(fmt.Sprintf("\n  💀 GAME OVER! Final score %d. Press R to restart or Q to quit\n", state.Score))
	}

	fmt.Fprint(r.out, r.buffer.String())
}

func lives(n int) string {
	var b strings.Builder
	for i := 0; i < config.MaxLives; i++ {
		if i < n {
			b.WriteString(config.CharHeart)
		} else {
			b.WriteString(config.CharNoLife)
		}
	}
	return b.String()
}
