package game

import (
	"fmt"

	"github.com/trytobebee/snake_jinx/pkg/config"
	"github.com/trytobebee/snake_jinx/pkg/logger"
)

// Achievement is a one-per-round milestone
type Achievement string

const (
	AchFirstCatch Achievement = "first-catch"
	AchTenCatches Achievement = "ten-catches"
	AchLevelFive  Achievement = "level-five"
	AchEvasion    Achievement = "evasion"
	AchCenturion  Achievement = "centurion"
)

const centurionScore = 100

var achievementText = map[Achievement]string{
	AchFirstCatch: "🐁 First catch!",
	AchTenCatches: "🧀 Ten mice down!",
	AchLevelFive:  "🚀 Reached level 5!",
	AchEvasion:    "🎯 Caught a panicking mouse!",
	AchCenturion:  "💯 100 points!",
}

// Unlocked reports whether a milestone was reached this round
func (g *Game) Unlocked(a Achievement) bool {
	return g.achievements[a]
}

func (g *Game) unlock(a Achievement) {
	if g.achievements[a] {
		return
	}
	g.achievements[a] = true
	g.emit(EventAchievement, achievementText[a], config.AchievementMessageTime, nil)
}

// capture awards a caught agent and replaces it
func (g *Game) capture(evaded bool) {
	points := config.CapturePoints
	if evaded {
		points += config.EvasionBonus
	}
	g.Score += points
	g.Captures++

	head := g.Player.Head()
	g.emit(EventCapture, fmt.Sprintf("+%d", points), config.DefaultMessageTime, &head)

	speed := g.Agent.Speed
	agility := g.Agent.Agility
	g.respawnAgent(speed, agility)
	g.Agent.SpeedUp(config.AgentSpeedStep)

	if g.Captures%config.CapturesPerLife == 0 && g.Lives < config.MaxLives {
		g.Lives++
		g.emit(EventExtraLife, "❤️ Extra life!", config.DefaultMessageTime, nil)
	}

	if g.Captures%config.CapturesPerLevel == 0 {
		g.levelUp()
	}

	if g.Captures == 1 {
		g.unlock(AchFirstCatch)
	}
	if g.Captures >= 10 {
		g.unlock(AchTenCatches)
	}
	if evaded {
		g.unlock(AchEvasion)
	}
	if g.Score >= centurionScore {
		g.unlock(AchCenturion)
	}
}

// levelUp raises the level and tightens every tunable within its bounds
func (g *Game) levelUp() {
	g.Level++

	g.TickInterval -= config.TickStep
	if g.TickInterval < g.Settings.TickFloor {
		g.TickInterval = g.Settings.TickFloor
	}
	g.timers.Tick.Interval = g.TickInterval

	g.Agent.Sharpen(config.AgentAgilityStep)

	g.emit(EventLevelUp, fmt.Sprintf("⬆️ Level %d!", g.Level), config.DefaultMessageTime, nil)
	g.regenerateHazards()

	if g.Level >= 5 {
		g.unlock(AchLevelFive)
	}
}

// TogglePause switches between running and paused
func (g *Game) TogglePause() {
	switch g.Phase {
	case PhaseRunning:
		g.Pause()
	case PhasePaused:
		g.Resume()
	}
}

// Pause freezes the round; timers keep their progress
func (g *Game) Pause() bool {
	if g.Phase != PhaseRunning {
		return false
	}
	g.Phase = PhasePaused
	return true
}

// Resume continues a paused round
func (g *Game) Resume() bool {
	if g.Phase != PhasePaused {
		return false
	}
	g.Phase = PhaseRunning
	return true
}

// ReturnToSetup abandons the round and goes back to the setup screen
func (g *Game) ReturnToSetup() {
	g.timers.StopAll()
	g.Phase = PhaseSetup
}

// endRound is the terminal transition: stop timers, settle the high score
func (g *Game) endRound() {
	g.Phase = PhaseGameOver
	g.timers.StopAll()
	g.emit(EventGameOver, fmt.Sprintf("Game over! Final score %d", g.Score), config.DefaultMessageTime, nil)

	logger.Log.WithField("player", g.Options.Name).
		WithField("score", g.Score).
		WithField("game_level", g.Level).
		WithField("captures", g.Captures).
		Info("round over")

	best := g.loadHighScore()
	if g.Score > best {
		if g.store != nil {
			if err := g.store.SaveHighScore(g.Score); err != nil {
				logger.Log.WithError(err).Warn("failed to save high score")
			}
		}
		best = g.Score
		g.emit(EventNewRecord, "🏆 New record!", config.AchievementMessageTime, nil)
	}
	g.HighScore = best

	if rec, ok := g.store.(RoundRecorder); ok {
		if err := rec.RecordRound(g.Summary()); err != nil {
			logger.Log.WithError(err).Warn("failed to record round")
		}
	}
}

func (g *Game) loadHighScore() int {
	if g.store == nil {
		return g.HighScore
	}
	score, err := g.store.LoadHighScore()
	if err != nil {
		logger.Log.WithError(err).Warn("failed to load high score")
		return g.HighScore
	}
	if score < g.HighScore {
		return g.HighScore
	}
	return score
}

// RoundRecorder is an optional store capability for round history
type RoundRecorder interface {
	RecordRound(s RoundSummary) error
}

// RoundSummary is the final tally of a round
type RoundSummary struct {
	Player     string `json:"player"`
	Difficulty string `json:"difficulty"`
	Score      int    `json:"score"`
	Level      int    `json:"level"`
	Captures   int    `json:"captures"`
	Seconds    int    `json:"seconds"`
}

// Summary returns the current tally
func (g *Game) Summary() RoundSummary {
	return RoundSummary{
		Player:     g.Options.Name,
		Difficulty: g.Options.Difficulty,
		Score:      g.Score,
		Level:      g.Level,
		Captures:   g.Captures,
		Seconds:    g.Elapsed,
	}
}
