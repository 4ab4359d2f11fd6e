package main

import (
	"flag"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/trytobebee/snake_jinx/pkg/config"
	"github.com/trytobebee/snake_jinx/pkg/game"
	"github.com/trytobebee/snake_jinx/pkg/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ReplayServer lists recordings and streams them back over WebSocket
type ReplayServer struct {
	addr      string
	recordDir string
}

func main() {
	addr := flag.String("addr", ":8081", "listen address")
	dir := flag.String("records", "records", "recording directory")
	summary := flag.String("summary", "", "print the digest of one recording and exit")
	flag.Parse()

	logger.Init()

	if *summary != "" {
		if err := printSummary(*summary); err != nil {
			logger.Log.WithError(err).Fatal("summary failed")
		}
		return
	}

	server := &ReplayServer{
		addr:      *addr,
		recordDir: *dir,
	}

	http.HandleFunc("/", server.handleIndex)
	http.HandleFunc("/summary", server.handleSummary)
	http.HandleFunc("/ws/replay", server.handleReplayWS)

	logger.Log.Infof("📼 Snake Replay Tool starting on http://localhost%s", server.addr)
	logger.Log.Fatal(http.ListenAndServe(server.addr, nil))
}

func printSummary(path string) error {
	records, err := game.ReadRecording(path)
	if err != nil {
		return err
	}
	s := game.Summarize(records)

	fmt.Printf("Session:  %s\n", s.SessionID)
	fmt.Printf("Player:   %s (%s)\n", s.Final.Player, s.Final.Difficulty)
	fmt.Printf("Frames:   %d over %s\n", s.Frames, s.Duration.Round(time.Millisecond))
	fmt.Printf("Result:   %s, score %d, level %d, %d captures, %ds played\n",
		s.Phase, s.Final.Score, s.Final.Level, s.Final.Captures, s.Final.Seconds)

	kinds := make([]string, 0, len(s.Events))
	for k := range s.Events {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("  %-16s %d\n", k, s.Events[game.EventKind(k)])
	}
	return nil
}

type RecordFile struct {
	Name      string
	Size      int64
	Time      time.Time
	SessionID string
}

func (s *ReplayServer) listRecords() []RecordFile {
	files, err := os.ReadDir(s.recordDir)
	if err != nil {
		return nil
	}

	var records []RecordFile
	for _, f := range files {
		if filepath.Ext(f.Name()) != ".jsonl" {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		// expecting format: game_{sessionID}_{timestamp}.jsonl
		parts := strings.Split(f.Name(), "_")
		sessID := ""
		if len(parts) >= 2 {
			sessID = parts[1]
		}
		records = append(records, RecordFile{
			Name:      f.Name(),
			Size:      info.Size(),
			Time:      info.ModTime(),
			SessionID: sessID,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})
	return records
}

var indexTmpl = template.Must(template.New("index").Parse(`
<!DOCTYPE html>
<html>
<head>
    <title>Snake Replays</title>
    <style>
        body { font-family: monospace; background: #1a202c; color: #fff; padding: 2rem; }
        h1 { color: #48bb78; }
        .file-list { display: grid; gap: 1rem; }
        .file-item {
            background: #2d3748; padding: 1rem; border-radius: 8px;
            display: flex; justify-content: space-between; align-items: center;
        }
        a { color: #63b3ed; text-decoration: none; font-weight: bold; }
        .meta { color: #a0aec0; font-size: 0.9em; }
    </style>
</head>
<body>
    <h1>📼 Replay Library</h1>
    <div class="file-list">
        {{range .}}
        <div class="file-item">
            <div>
                <div class="name">{{.Name}}</div>
                <div class="meta">Session: {{.SessionID}} | Size: {{.Size}} bytes | {{.Time.Format "2006-01-02 15:04:05"}}</div>
            </div>
            <a href="/summary?file={{.Name}}">SUMMARY</a>
        </div>
        {{else}}
        <p>No recordings found.</p>
        {{end}}
    </div>
</body>
</html>`))

func (s *ReplayServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := indexTmpl.Execute(w, s.listRecords()); err != nil {
		logger.Log.WithError(err).Warn("render index")
	}
}

// recordPath resolves a file name inside the record directory
func (s *ReplayServer) recordPath(name string) (string, bool) {
	if name == "" || name != filepath.Base(name) {
		return "", false
	}
	return filepath.Join(s.recordDir, name), true
}

func (s *ReplayServer) handleSummary(w http.ResponseWriter, r *http.Request) {
	path, ok := s.recordPath(r.URL.Query().Get("file"))
	if !ok {
		http.Error(w, "bad file name", http.StatusBadRequest)
		return
	}
	records, err := game.ReadRecording(path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	sum := game.Summarize(records)
	fmt.Fprintf(w, "session %s\nplayer %s\nframes %d\nscore %d\nlevel %d\ncaptures %d\nphase %s\n",
		sum.SessionID, sum.Final.Player, sum.Frames, sum.Final.Score, sum.Final.Level, sum.Final.Captures, sum.Phase)
}

// handleReplayWS streams the recorded frames at a fixed rate
func (s *ReplayServer) handleReplayWS(w http.ResponseWriter, r *http.Request) {
	path, ok := s.recordPath(r.URL.Query().Get("file"))
	if !ok {
		http.Error(w, "bad file name", http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	records, err := game.ReadRecording(path)
	if err != nil {
		logger.Log.WithError(err).Warn("failed to open record")
		return
	}

	cfg := game.GameConfig{Width: config.GridSize, Height: config.GridSize}
	if err := conn.WriteJSON(struct {
		Type   string           `json:"type"`
		Config *game.GameConfig `json:"config"`
	}{
		Type:   "config",
		Config: &cfg,
	}); err != nil {
		return
	}

	for i, rec := range records {
		time.Sleep(100 * time.Millisecond) // Fixed 10fps playback

		msg := struct {
			Type   string         `json:"type"`
			State  game.GameState `json:"state"`
			Events []game.Event   `json:"events,omitempty"`
			Step   int            `json:"step"`
		}{
			Type:   "state",
			State:  rec.State,
			Events: rec.Events,
			Step:   i,
		}
		if err := conn.WriteJSON(msg); err != nil {
			break
		}
	}
}
