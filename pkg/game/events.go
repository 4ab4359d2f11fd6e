package game

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/trytobebee/snake_jinx/pkg/logger"
)

// EventKind classifies notifications for the UI collaborator
type EventKind string

const (
	EventHazardsChanged EventKind = "hazards-changed"
	EventLevelUp        EventKind = "level-up"
	EventAchievement    EventKind = "achievement"
	EventCollision      EventKind = "collision"
	EventCapture        EventKind = "capture"
	EventExtraLife      EventKind = "extra-life"
	EventNewRecord      EventKind = "new-record"
	EventGameOver       EventKind = "game-over"
	EventRival          EventKind = "rival"
	EventInfo           EventKind = "info"
)

// Event is a transient notification with a suggested display duration
type Event struct {
	Kind     EventKind     `json:"kind"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
	Pos      *Point        `json:"pos,omitempty"`
}

func (g *Game) emit(kind EventKind, message string, duration time.Duration, pos *Point) {
	g.events = append(g.events, Event{
		Kind:     kind,
		Message:  message,
		Duration: duration,
		Pos:      pos,
	})
	logger.Log.WithFields(logrus.Fields{
		"event":      kind,
		"tick":       g.Tick,
		"game_level": g.Level,
	}).Debug(message)
}

// DrainEvents returns the queued events and clears the queue
func (g *Game) DrainEvents() []Event {
	events := g.events
	g.events = nil
	return events
}

// PendingEvents returns the queued events without clearing them
func (g *Game) PendingEvents() []Event {
	return g.events
}
