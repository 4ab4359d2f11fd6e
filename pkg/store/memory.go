package store

import (
	"sync"

	"github.com/trytobebee/snake_jinx/pkg/game"
)

// MemoryStore is a process-local store, used when no database is configured
type MemoryStore struct {
	mu     sync.Mutex
	score  int
	rounds []game.RoundSummary
	saves  int
}

// NewMemoryStore creates a store seeded with an initial high score
func NewMemoryStore(initial int) *MemoryStore {
	return &MemoryStore{score: initial}
}

func (m *MemoryStore) LoadHighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

func (m *MemoryStore) SaveHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	m.saves++
	return nil
}

func (m *MemoryStore) RecordRound(r game.RoundSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds = append(m.rounds, r)
	return nil
}

// Saves returns how many times the high score was written
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Rounds returns the recorded rounds
func (m *MemoryStore) Rounds() []game.RoundSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]game.RoundSummary(nil), m.rounds...)
}
