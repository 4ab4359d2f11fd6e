package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/trytobebee/snake_jinx/pkg/config"
	"github.com/trytobebee/snake_jinx/pkg/game"
	"github.com/trytobebee/snake_jinx/pkg/input"
	"github.com/trytobebee/snake_jinx/pkg/logger"
	"github.com/trytobebee/snake_jinx/pkg/renderer"
	"github.com/trytobebee/snake_jinx/pkg/session"
	"github.com/trytobebee/snake_jinx/pkg/store"
)

func main() {
	name := flag.String("name", os.Getenv("USER"), "player name")
	difficulty := flag.String("difficulty", config.Normal, "easy, normal or hard")
	color := flag.String("color", "green", "snake color")
	dbPath := flag.String("db", "data/snake.db", "SQLite high score database, empty for memory only")
	records := flag.String("records", "", "directory for JSONL round recordings")
	auto := flag.Bool("auto", false, "start in auto-play")
	flag.Parse()

	logger.Init()
	// The terminal belongs to the board
	if os.Getenv("LOG_LEVEL") == "" {
		logger.Log.SetLevel(logrus.WarnLevel)
	}

	var scores game.HighScoreStore = store.NewMemoryStore(0)
	if *dbPath != "" {
		db, err := store.Open(*dbPath)
		if err != nil {
			fmt.Println("Error opening database:", err)
			return
		}
		defer db.Close()
		scores = db
	}

	inputHandler := input.NewKeyboardHandler()
	if err := inputHandler.Start(); err != nil {
		fmt.Println("Error opening keyboard:", err)
		return
	}
	defer inputHandler.Stop()

	render := renderer.NewTerminalRenderer(config.GridSize)
	render.HideCursor()
	defer render.ShowCursor()

	// The newest notification stays until another replaces it
	var renderMu sync.Mutex
	var message string
	onFrame := func(f session.Frame) {
		renderMu.Lock()
		defer renderMu.Unlock()
		if n := len(f.Events); n > 0 {
			message = f.Events[n-1].Message
		}
		render.Render(f.State, message)
	}

	g := game.NewGame(config.GridSize, scores)
	if *auto {
		g.ToggleAutoPlay()
	}
	s := session.New(g, onFrame)
	defer s.Stop()

	if *records != "" {
		rec, err := game.NewRecorder(*records, s.ID)
		if err != nil {
			fmt.Println("Error creating recorder:", err)
			return
		}
		s.SetRecorder(rec)
	}

	opts := game.Options{Name: *name, Difficulty: *difficulty, Color: *color}
	if err := s.Start(opts); err != nil {
		fmt.Println("Error:", err)
		return
	}

	for inputEvent := range inputHandler.GetInputChan() {
		if input.IsQuit(inputEvent) {
			fmt.Println("\n  Thanks for playing! 👋")
			return
		}

		action := input.Action(inputEvent)
		switch action {
		case "":
			continue
		case "restart":
			if s.Snapshot().Phase != game.PhaseGameOver.String() {
				continue
			}
		case "menu":
			// The terminal has no setup screen; the menu key starts over
			// with the same options.
			action = "restart"
		}

		if err := s.HandleAction(action); err != nil {
			logger.Log.WithError(err).Warn("action failed")
		}
	}
}
