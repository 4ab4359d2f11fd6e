package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/trytobebee/snake_jinx/pkg/game"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the high score and round history in a SQLite file
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (and creates if needed) the database at path
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer keeps SQLite away from "database is locked"
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS high_score (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT,
			difficulty TEXT,
			score INTEGER,
			level INTEGER,
			captures INTEGER,
			seconds INTEGER,
			ended_at DATETIME
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadHighScore returns the stored high score, 0 when none was saved
func (s *SQLiteStore) LoadHighScore() (int, error) {
	var score int
	err := s.db.QueryRow(`SELECT score FROM high_score WHERE id = 1`).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load high score: %w", err)
	}
	return score, nil
}

// SaveHighScore overwrites the stored high score
func (s *SQLiteStore) SaveHighScore(score int) error {
	_, err := s.db.Exec(`INSERT INTO high_score (id, score, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`,
		score, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	return nil
}

// RecordRound appends a finished round to the history
func (s *SQLiteStore) RecordRound(r game.RoundSummary) error {
	_, err := s.db.Exec(`INSERT INTO rounds (player, difficulty, score, level, captures, seconds, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Player, r.Difficulty, r.Score, r.Level, r.Captures, r.Seconds, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record round: %w", err)
	}
	return nil
}

// TopRounds returns the best rounds, highest score first
func (s *SQLiteStore) TopRounds(limit int) ([]game.RoundSummary, error) {
	rows, err := s.db.Query(`SELECT player, difficulty, score, level, captures, seconds
		FROM rounds ORDER BY score DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var out []game.RoundSummary
	for rows.Next() {
		var r game.RoundSummary
		if err := rows.Scan(&r.Player, &r.Difficulty, &r.Score, &r.Level, &r.Captures, &r.Seconds); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
