package main

import (
	"flag"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/trytobebee/snake_jinx/pkg/config"
	"github.com/trytobebee/snake_jinx/pkg/game"
	"github.com/trytobebee/snake_jinx/pkg/logger"
	"github.com/trytobebee/snake_jinx/pkg/session"
	"github.com/trytobebee/snake_jinx/pkg/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Global map to track active IP connections
var activeIPs sync.Map

type ServerMessage struct {
	Type   string           `json:"type"`
	Config *game.GameConfig `json:"config,omitempty"`
	State  *game.GameState  `json:"state,omitempty"`
	Events []game.Event     `json:"events,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// ClientMessage is a command from the browser. Name, Difficulty and Color
// are only read for "start".
type ClientMessage struct {
	Action     string `json:"action"`
	Name       string `json:"name,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Color      string `json:"color,omitempty"`
}

// Server holds what connections share: the high score store and recording
type Server struct {
	scores    game.HighScoreStore
	recordDir string
}

func (srv *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("upgrade error")
		return
	}
	defer conn.Close()

	// Get base IP address (remove port)
	ip := r.RemoteAddr
	for i := len(r.RemoteAddr) - 1; i >= 0; i-- {
		if r.RemoteAddr[i] == ':' {
			ip = r.RemoteAddr[:i]
			break
		}
	}

	// Double check if this IP is already connected
	if _, loaded := activeIPs.LoadOrStore(ip, true); loaded {
		logger.Log.WithField("ip", ip).Warn("connection rejected: already connected")
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Already connected"))
		return
	}
	defer activeIPs.Delete(ip)

	// Mutex to protect concurrent writes to the WebSocket connection
	var writeMu sync.Mutex
	safeWriteJSON := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	onFrame := func(f session.Frame) {
		state := f.State
		if err := safeWriteJSON(ServerMessage{Type: "state", State: &state, Events: f.Events}); err != nil {
			logger.Log.WithError(err).Debug("write error")
		}
	}

	sess := session.New(game.NewGame(config.GridSize, srv.scores), onFrame)
	defer sess.Stop()

	log := logger.Log.WithFields(logrus.Fields{"session": sess.ID, "ip": ip})
	log.Info("new websocket connection")

	if srv.recordDir != "" {
		rec, err := game.NewRecorder(srv.recordDir, sess.ID)
		if err != nil {
			log.WithError(err).Warn("recording disabled")
		} else {
			sess.SetRecorder(rec)
		}
	}

	// Send initial config and the setup state
	gameConfig := sess.Config()
	safeWriteJSON(ServerMessage{Type: "config", Config: &gameConfig})
	initialState := sess.Snapshot()
	safeWriteJSON(ServerMessage{Type: "state", State: &initialState})

	// Input loop; the session drives the game on its own goroutine
	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.WithError(err).Info("connection closed")
			return
		}

		if err := srv.dispatch(sess, msg); err != nil {
			log.WithError(err).WithField("action", msg.Action).Debug("action rejected")
			safeWriteJSON(ServerMessage{Type: "error", Error: err.Error()})
		}
	}
}

func (srv *Server) dispatch(sess *session.Session, msg ClientMessage) error {
	if msg.Action == "start" {
		return sess.Start(game.Options{
			Name:       msg.Name,
			Difficulty: msg.Difficulty,
			Color:      msg.Color,
		})
	}
	return sess.HandleAction(msg.Action)
}

func main() {
	dbPath := flag.String("db", "data/snake.db", "SQLite high score database")
	recordDir := flag.String("records", "", "directory for JSONL round recordings")
	static := flag.String("static", "web/static", "static file directory")
	flag.Parse()

	logger.Init()

	db, err := store.Open(*dbPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	srv := &Server{scores: db, recordDir: *recordDir}

	http.Handle("/", http.FileServer(http.Dir(*static)))
	http.HandleFunc("/ws", srv.handleWebSocket)

	port := os.Getenv("SNAKE_PORT")
	if port == "" {
		port = "8080"
	}
	logger.Log.Infof("🚀 Snake Game Web Server starting on http://localhost:%s", port)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Log.WithError(err).Fatal("server stopped")
	}
}
