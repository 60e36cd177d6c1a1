package willowkit

import (
	"testing"
	"time"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "play", "label": "title", "animations": ["typewriter", "bounce"], "text": "Hi"},
			{"action": "idle"},
			{"action": "wait", "frames": 3},
			{"action": "screenshot", "label": "after"}
		]
	}`)
	sc, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sc.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(sc.steps))
	}
	if st := sc.steps[0]; st.Label != "title" || len(st.Animations) != 2 || st.Text == nil || *st.Text != "Hi" {
		t.Errorf("step 0 mismatch: %+v", st)
	}
	if sc.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	bad := []string{
		`not json`,
		`{"steps": []}`,
		`{"steps": [{"action": "dance"}]}`,
		`{"steps": [{"action": "play", "label": "x"}]}`,
		`{"steps": [{"action": "play", "label": "x", "animations": ["spin"]}]}`,
	}
	for _, src := range bad {
		if _, err := LoadScript([]byte(src)); err == nil {
			t.Errorf("expected error for %s", src)
		}
	}
}

func TestScriptPlaysThenWaitsForIdle(t *testing.T) {
	s := NewStage()
	l := newTestLabel("xyz")
	s.Add(l)
	sc, err := LoadScript([]byte(`{"steps": [
		{"action": "play", "label": "test", "animations": ["typewriter"], "text": "AB"},
		{"action": "idle"},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(sc)

	s.Step(10 * time.Millisecond)
	if s.Running() != 1 {
		t.Fatalf("Running = %d, want 1 after the play step", s.Running())
	}
	for i := 0; i < 100 && !sc.Done(); i++ {
		if len(s.screenshotQueue) > 0 && s.Running() > 0 {
			t.Fatal("screenshot queued before playback finished")
		}
		s.Step(10 * time.Millisecond)
	}
	if !sc.Done() {
		t.Fatal("script did not finish")
	}
	if l.Text() != "AB" {
		t.Errorf("Text = %q, want AB", l.Text())
	}
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "done" {
		t.Errorf("screenshotQueue = %v", s.screenshotQueue)
	}
}

func TestScriptWaitFrames(t *testing.T) {
	s := NewStage()
	sc, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "x"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(sc)
	for i := 0; i < 3; i++ {
		s.Step(time.Millisecond)
	}
	if len(s.screenshotQueue) != 0 {
		t.Fatal("screenshot should wait three frames")
	}
	s.Step(time.Millisecond)
	if len(s.screenshotQueue) != 1 || !sc.Done() {
		t.Errorf("queue = %v done = %v", s.screenshotQueue, sc.Done())
	}
}

func TestScriptUnknownLabelIsSkipped(t *testing.T) {
	s := NewStage()
	sc, _ := LoadScript([]byte(`{"steps": [{"action": "play", "label": "nope", "animations": ["bounce"]}]}`))
	s.SetScript(sc)
	s.Step(time.Millisecond)
	if s.Running() != 0 || !sc.Done() {
		t.Errorf("Running = %d done = %v", s.Running(), sc.Done())
	}
}

func TestStageLabelLookup(t *testing.T) {
	s := NewStage()
	a := NewLabel("a", "x", monoFont{advance: 1, lh: 1})
	s.Add(a)
	if s.Label("a") != a || s.Label("b") != nil {
		t.Error("Label lookup mismatch")
	}
}
