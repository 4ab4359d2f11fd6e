package game

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/trytobebee/snake_jinx/pkg/logger"
)

// StepRecord is one line of a round recording
type StepRecord struct {
	SessionID string    `json:"sessionId"`
	Time      time.Time `json:"time"`
	State     GameState `json:"state"`
	Events    []Event   `json:"events,omitempty"`
}

// GameRecorder handles asynchronous logging of game steps
type GameRecorder struct {
	file       *os.File
	writer     *bufio.Writer
	recordChan chan StepRecord
	wg         sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	path       string
	dropped    int
}

// NewRecorder creates a recorder that writes to dir.
// Filename format: game_{sessionID}_{timestamp}.jsonl
func NewRecorder(dir, sessionID string) (*GameRecorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create records dir: %w", err)
	}

	timestamp := time.Now().Unix()
	filename := fmt.Sprintf("game_%s_%d.jsonl", sessionID, timestamp)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create record file: %w", err)
	}

	r := &GameRecorder{
		file:       f,
		writer:     bufio.NewWriter(f),
		recordChan: make(chan StepRecord, 1000), // Buffer up to 1000 frames
		path:       path,
	}

	r.wg.Add(1)
	go r.writeLoop()

	return r, nil
}

// Path returns the file being written
func (r *GameRecorder) Path() string {
	return r.path
}

// RecordStep queues a record to be written. Non-blocking (drops if full).
func (r *GameRecorder) RecordStep(rec StepRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	select {
	case r.recordChan <- rec:
	default:
		// Channel full, drop frame to protect the game loop
		r.dropped++
	}
}

// Close flushes the buffer and closes the file
func (r *GameRecorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	dropped := r.dropped
	close(r.recordChan)
	r.mu.Unlock()

	r.wg.Wait()
	if dropped > 0 {
		logger.Log.WithField("dropped", dropped).Warn("recorder dropped frames")
	}
	return r.file.Close()
}

func (r *GameRecorder) writeLoop() {
	defer r.wg.Done()

	encoder := json.NewEncoder(r.writer)
	for rec := range r.recordChan {
		if err := encoder.Encode(rec); err != nil {
			logger.Log.WithError(err).Error("error recording frame")
			continue
		}
	}
	if err := r.writer.Flush(); err != nil {
		logger.Log.WithError(err).Error("error flushing recording")
	}
}

// ReadRecording loads every record of a JSONL recording
func ReadRecording(path string) ([]StepRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	var records []StepRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var rec StepRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return records, fmt.Errorf("decode line %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("scan recording: %w", err)
	}
	return records, nil
}

// RecordingSummary is the digest of a recording
type RecordingSummary struct {
	SessionID string
	Player    string
	Frames    int
	Duration  time.Duration
	Final     RoundSummary
	Phase     string
	Events    map[EventKind]int
}

// Summarize folds a recording into its digest
func Summarize(records []StepRecord) RecordingSummary {
	sum := RecordingSummary{Frames: len(records), Events: make(map[EventKind]int)}
	if len(records) == 0 {
		return sum
	}

	first, last := records[0], records[len(records)-1]
	sum.SessionID = first.SessionID
	sum.Player = last.State.Player
	sum.Duration = last.Time.Sub(first.Time)
	sum.Phase = last.State.Phase
	sum.Final = RoundSummary{
		Player:     last.State.Player,
		Difficulty: last.State.Difficulty,
		Score:      last.State.Score,
		Level:      last.State.Level,
		Captures:   last.State.Captures,
		Seconds:    last.State.ElapsedSeconds,
	}
	for _, rec := range records {
		for _, ev := range rec.Events {
			sum.Events[ev.Kind]++
		}
	}
	return sum
}
