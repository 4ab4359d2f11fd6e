package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/trytobebee/snake_jinx/pkg/logger"
	"github.com/trytobebee/snake_jinx/pkg/store"
)

// legacyKey is the browser storage key the old front end kept its best score under
const legacyKey = "snakeJinxHighScore"

// LegacyUser matches the per-player records of older exports
type LegacyUser struct {
	Username  string `json:"username"`
	BestScore int    `json:"best_score"`
}

var errNoScore = errors.New("no high score found in export")

// parseExport extracts the best score from a browser storage dump
// ({"snakeJinxHighScore": "120"}) or a list / map of legacy user records.
func parseExport(data []byte) (int, error) {
	var storage map[string]json.RawMessage
	if err := json.Unmarshal(data, &storage); err == nil {
		if raw, ok := storage[legacyKey]; ok {
			return parseScore(raw)
		}
		users := make(map[string]LegacyUser)
		if err := json.Unmarshal(data, &users); err == nil && len(users) > 0 {
			best := 0
			for _, u := range users {
				best = max(best, u.BestScore)
			}
			return best, nil
		}
	}

	var userList []LegacyUser
	if err := json.Unmarshal(data, &userList); err != nil {
		return 0, fmt.Errorf("failed to parse export: %w", err)
	}
	if len(userList) == 0 {
		return 0, errNoScore
	}
	best := 0
	for _, u := range userList {
		best = max(best, u.BestScore)
	}
	return best, nil
}

// parseScore accepts both 120 and "120"; browser storage only keeps strings
func parseScore(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", legacyKey, err)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", legacyKey, s, err)
	}
	return n, nil
}

func main() {
	in := flag.String("in", "highscore.json", "exported legacy data")
	dbPath := flag.String("db", "data/snake.db", "target SQLite database")
	flag.Parse()

	logger.Init()
	log := logger.Log.WithField("source", *in)

	data, err := os.ReadFile(*in)
	if err != nil {
		log.WithError(err).Fatal("failed to read export")
	}
	imported, err := parseExport(data)
	if err != nil {
		log.WithError(err).Fatal("failed to parse export")
	}

	db, err := store.Open(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	current, err := db.LoadHighScore()
	if err != nil {
		log.WithError(err).Fatal("failed to read current high score")
	}
	if imported <= current {
		log.WithField("imported", imported).WithField("current", current).
			Info("stored high score is already higher, nothing to do")
		return
	}
	if err := db.SaveHighScore(imported); err != nil {
		log.WithError(err).Fatal("failed to save high score")
	}

	fmt.Printf("✅ Import complete! High score %d written to %s\n", imported, *dbPath)
}
