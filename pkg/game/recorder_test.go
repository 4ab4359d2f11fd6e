package game

import (
	"os"
	"testing"

	"github.com/trytobebee/snake_jinx/pkg/config"
)

func TestRecorderWritesReadableFrames(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir, "sess1")
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	g := newRunningGame(t, config.Easy)
	g.Agent.Pos = Point{11, 10}
	for i := 0; i < 5; i++ {
		g.Step()
		rec.RecordStep(StepRecord{
			SessionID: "sess1",
			Time:      g.now(),
			State:     g.Snapshot(),
			Events:    g.DrainEvents(),
		})
		parkAgent(g)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Closing twice is harmless and later frames are ignored
	rec.RecordStep(StepRecord{SessionID: "late"})
	if err := rec.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	if _, err := os.Stat(rec.Path()); err != nil {
		t.Fatalf("recording missing: %v", err)
	}
	records, err := ReadRecording(rec.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 frames, got %d", len(records))
	}

	sum := Summarize(records)
	if sum.SessionID != "sess1" || sum.Frames != 5 {
		t.Errorf("unexpected summary header %+v", sum)
	}
	if sum.Final.Score != config.CapturePoints || sum.Final.Captures != 1 {
		t.Errorf("final tally %+v, want one capture", sum.Final)
	}
	if sum.Events[EventCapture] != 1 {
		t.Errorf("expected one capture event, got %d", sum.Events[EventCapture])
	}
	if got := records[4].State.Snake[0]; got != (Point{15, 10}) {
		t.Errorf("last recorded head %v, want (15,10)", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	if sum.Frames != 0 || len(sum.Events) != 0 {
		t.Errorf("unexpected summary for an empty recording: %+v", sum)
	}
}
