package store

import (
	"path/filepath"
	"testing"

	"github.com/trytobebee/snake_jinx/pkg/game"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "snake.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteHighScore(t *testing.T) {
	s := openTestStore(t)

	score, err := s.LoadHighScore()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected 0 on a fresh database, got %d", score)
	}

	for _, v := range []int{40, 120, 75} {
		if err := s.SaveHighScore(v); err != nil {
			t.Fatalf("save %d: %v", v, err)
		}
	}

	// Reads are idempotent
	for i := 0; i < 3; i++ {
		score, err := s.LoadHighScore()
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		if score != 75 {
			t.Errorf("read %d: expected last saved value 75, got %d", i, score)
		}
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SaveHighScore(310); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	score, err := s.LoadHighScore()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if score != 310 {
		t.Errorf("expected 310 after reopen, got %d", score)
	}
}

func TestSQLiteRounds(t *testing.T) {
	s := openTestStore(t)

	rounds := []game.RoundSummary{
		{Player: "ann", Difficulty: "easy", Score: 30, Level: 1, Captures: 3, Seconds: 20},
		{Player: "bob", Difficulty: "hard", Score: 95, Level: 2, Captures: 8, Seconds: 61},
		{Player: "cat", Difficulty: "normal", Score: 60, Level: 2, Captures: 6, Seconds: 44},
	}
	for _, r := range rounds {
		if err := s.RecordRound(r); err != nil {
			t.Fatalf("record %s: %v", r.Player, err)
		}
	}

	top, err := s.TopRounds(2)
	if err != nil {
		t.Fatalf("top rounds: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(top))
	}
	if top[0] != rounds[1] || top[1] != rounds[2] {
		t.Errorf("unexpected order: %+v", top)
	}
}

func TestGameUsesStore(t *testing.T) {
	tests := []struct {
		name  string
		store game.HighScoreStore
	}{
		{"memory", NewMemoryStore(50)},
		{"sqlite", openTestStore(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.store.SaveHighScore(50); err != nil {
				t.Fatalf("seed: %v", err)
			}
			g := game.NewGame(20, tt.store)
			if g.HighScore != 50 {
				t.Fatalf("expected high score 50 at setup, got %d", g.HighScore)
			}

			if err := g.Start(game.Options{Name: "p", Difficulty: "easy", Color: "red", Seed: 1}); err != nil {
				t.Fatalf("start: %v", err)
			}
			g.Score = 80
			g.Lives = 1
			g.Hazards.Clear()

			// Drive straight into the right wall
			for i := 0; i < g.Size && g.Phase == game.PhaseRunning; i++ {
				g.Agent.Pos = game.Point{X: 0, Y: 0}
				g.Step()
			}
			if g.Phase != game.PhaseGameOver {
				t.Fatalf("expected game over, got %s", g.Phase)
			}

			score, err := tt.store.LoadHighScore()
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if score != 80 || g.HighScore != 80 {
				t.Errorf("expected stored and shown high score 80, got %d / %d", score, g.HighScore)
			}
		})
	}
}
