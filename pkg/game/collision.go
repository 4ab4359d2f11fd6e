package game

import (
	"fmt"
	"time"

	"github.com/trytobebee/snake_jinx/pkg/config"
)

// CollisionKind is the outcome of resolving a head move
type CollisionKind int

const (
	NoCollision CollisionKind = iota
	HitWall
	HitSelf
	HitSnake // another snake's body
	HitHazard
	HitAgent // capture
)

func (k CollisionKind) String() string {
	switch k {
	case NoCollision:
		return "none"
	case HitWall:
		return "wall"
	case HitSelf:
		return "self"
	case HitSnake:
		return "snake"
	case HitHazard:
		return "hazard"
	case HitAgent:
		return "capture"
	}
	return "unknown"
}

// Collision describes what the head would hit at Pos
type Collision struct {
	Kind   CollisionKind
	Pos    Point
	Hazard Hazard
}

// Resolve checks a move of s onto head in fixed priority order:
// wall, self, other snakes, hazard, capture.
// Hazard contact is ignored for the player while the cooldown runs, and a
// hazard always wins over a capture on the same cell.
func (g *Game) Resolve(s *Snake, head Point) Collision {
	c := Collision{Kind: NoCollision, Pos: head}

	if !g.InBounds(head) {
		c.Kind = HitWall
		return c
	}

	if s.Occupies(head, true) {
		c.Kind = HitSelf
		return c
	}

	for _, other := range g.snakes() {
		if other != s && other.Occupies(head, false) {
			c.Kind = HitSnake
			return c
		}
	}

	if !(s == g.Player && g.cooldown) {
		if h, ok := g.Hazards.At(head); ok {
			c.Kind = HitHazard
			c.Hazard = h
			return c
		}
	}

	if g.Agent != nil && head == g.Agent.Pos {
		c.Kind = HitAgent
	}
	return c
}

// stepPlayer moves the player one cell and dispatches the collision outcome
func (g *Game) stepPlayer() {
	p := g.Player
	if dir := p.Policy.Decide(g, p); !dir.IsZero() {
		p.Turn(dir)
	}
	head := p.NextHead()

	c := g.Resolve(p, head)
	switch c.Kind {
	case HitWall, HitSelf, HitSnake:
		g.loseLife(c, fmt.Sprintf("💥 Crashed into %s!", describeCrash(c.Kind)), config.CollisionFlashTime)
	case HitHazard:
		g.cooldown = true
		g.timers.Cooldown.Start()
		g.loseLife(c, c.Hazard.Kind.Message()+" -1 life", config.HazardMessageTime)
	case HitAgent:
		evaded := g.Agent.Panicking()
		p.Grow()
		p.Advance(head)
		g.capture(evaded)
	default:
		p.Advance(head)
	}
}

func describeCrash(k CollisionKind) string {
	switch k {
	case HitWall:
		return "the wall"
	case HitSelf:
		return "yourself"
	case HitSnake:
		return "a rival"
	}
	return "something"
}

// loseLife takes a life, resets the player to the start lane and ends the
// round when no lives remain
func (g *Game) loseLife(c Collision, message string, duration time.Duration) {
	pos := c.Pos
	g.CrashPoint = &pos
	g.Lives--
	g.emit(EventCollision, message, duration, &pos)

	if g.Lives <= 0 {
		g.Lives = 0
		g.endRound()
		return
	}

	g.Player.Reset(StartBody(g.Size), Right)
	g.clearStartLane()
}

// clearStartLane moves anything that ended up on the freshly reset player
func (g *Game) clearStartLane() {
	for _, r := range g.Rivals {
		for _, p := range r.Body {
			if g.Player.Occupies(p, false) {
				g.respawnRival(r)
				break
			}
		}
	}
	if g.Player.Occupies(g.Agent.Pos, false) {
		g.respawnAgent(g.Agent.Speed, g.Agent.Agility)
	}
}

// stepRival moves an AI snake. Rivals have no lives: a crash respawns them,
// a capture respawns the agent without scoring for the player.
func (g *Game) stepRival(r *Snake) {
	if dir := r.Policy.Decide(g, r); !dir.IsZero() {
		r.Turn(dir)
	}
	head := r.NextHead()

	switch c := g.Resolve(r, head); c.Kind {
	case NoCollision:
		r.Advance(head)
	case HitAgent:
		r.Grow()
		r.Advance(head)
		g.emit(EventRival, "🐍 A rival snatched the mouse!", config.DefaultMessageTime, &head)
		g.respawnAgent(g.Agent.Speed, g.Agent.Agility)
	default:
		g.respawnRival(r)
	}
}
