package willowkit

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a stage script.
type scriptStep struct {
	Action     string   `json:"action"`
	Label      string   `json:"label,omitempty"`
	Animations []string `json:"animations,omitempty"`
	Text       *string  `json:"text,omitempty"`
	Frames     int      `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences animation playback and screenshots across frames for
// automated visual checks. Attach to a Stage via SetScript.
//
// Actions:
//
//	play        start Animations (in order, as a TextAnimator) on Label,
//	            optionally revealing Text
//	wait        let Frames frames pass
//	idle        wait until no playback is running
//	screenshot  capture Label cropped to its glyphs, or the whole frame
//	            when no label has that name
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON stage script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "play":
			if len(st.Animations) == 0 {
				return nil, fmt.Errorf("parse script: step %d: play needs animations", i)
			}
			for _, name := range st.Animations {
				if _, err := newAnimation(name); err != nil {
					return nil, fmt.Errorf("parse script: step %d: %w", i, err)
				}
			}
		case "wait", "idle", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// newAnimation returns the named animation with default parameters.
func newAnimation(name string) (TextAnimation, error) {
	switch name {
	case AnimationBounce.String():
		return NewBounce(), nil
	case AnimationScale.String():
		return NewScale(), nil
	case AnimationTypewriter.String():
		return NewTypewriter(), nil
	}
	return nil, fmt.Errorf("unknown animation %q", name)
}

// SetScript attaches a script to the stage. It advances at the start of
// every Step.
func (s *Stage) SetScript(sc *Script) {
	s.script = sc
}

// Done reports whether every step has run.
func (sc *Script) Done() bool {
	return sc.done
}

// step advances the script by one frame. One step runs per frame; idle
// holds the cursor while playbacks are running.
func (sc *Script) step(s *Stage) {
	if sc.done {
		return
	}
	if sc.waitCount > 0 {
		sc.waitCount--
		return
	}
	if sc.cursor >= len(sc.steps) {
		sc.done = true
		return
	}

	st := sc.steps[sc.cursor]
	if st.Action == "idle" && s.Running() > 0 {
		return
	}
	sc.cursor++

	switch st.Action {
	case "play":
		sc.play(s, st)
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			sc.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if sc.cursor >= len(sc.steps) && sc.waitCount == 0 {
		sc.done = true
	}
}

func (sc *Script) play(s *Stage, st scriptStep) {
	l := s.Label(st.Label)
	if l == nil {
		if s.debug {
			s.debugWarn(fmt.Sprintf("script: no label %q", st.Label))
		}
		return
	}
	a := NewTextAnimator(l)
	for _, name := range st.Animations {
		anim, _ := newAnimation(name)
		a.Add(anim)
	}
	if st.Text != nil {
		s.Start(a.PlayAllText(*st.Text))
	} else {
		s.Start(a.PlayAll())
	}
}
