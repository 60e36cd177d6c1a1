package willowkit

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/rivo/uniseg"
	"github.com/tanema/gween/ease"
)

// TextTarget is the display surface a text animation plays on. Label
// implements it; hosts with their own text rendering can supply another.
type TextTarget interface {
	Text() string
	SetText(s string)
	// ForceLayout recomputes glyph positions for the current text so that
	// CharacterCount and scheduled transforms see the new content.
	ForceLayout()
	CharacterCount() int
	// ScheduleTransform starts a timed glyph transform. The caller does not
	// wait on it.
	ScheduleTransform(t GlyphTransform)
}

// GlyphTransform describes one timed per-character tween.
type GlyphTransform struct {
	Index    int
	Kind     TransformKind
	From, To Vec2
	Duration time.Duration
	Delay    time.Duration
	Ease     ease.TweenFunc
}

// TextAnimation is one of the built-in animation variants: *Bounce, *Scale
// or *Typewriter. The set is closed.
type TextAnimation interface {
	Kind() AnimationKind
	// Play starts the animation on target using the target's current text.
	Play(target TextTarget) *Playback
	// PlayText starts the animation with text as the source text. Only the
	// typewriter uses the override; the staggered variants animate whatever
	// the target currently displays.
	PlayText(target TextTarget, text string) *Playback

	steps(target TextTarget, text string, override bool) iter.Seq[time.Duration]
	// validate panics if the animation's timing is unusable.
	validate()
}

// --- Bounce ---

// Bounce punches each character upward by Strength pixels and lets it settle
// back, starting one character every Step.
type Bounce struct {
	Duration time.Duration
	Strength float64
	Step     time.Duration
}

// NewBounce returns a Bounce with the default timing: 0.5s per character,
// 30px strength, 30ms stagger.
func NewBounce() *Bounce {
	return &Bounce{Duration: 500 * time.Millisecond, Strength: 30, Step: 30 * time.Millisecond}
}

// Kind returns AnimationBounce.
func (b *Bounce) Kind() AnimationKind { return AnimationBounce }

// Play starts the bounce on target.
func (b *Bounce) Play(target TextTarget) *Playback {
	return newPlayback(b.steps(target, "", false))
}

// PlayText starts the bounce on target; text is ignored.
func (b *Bounce) PlayText(target TextTarget, text string) *Playback {
	return newPlayback(b.steps(target, text, true))
}

func (b *Bounce) validate() {
	mustPositive(b.Duration, "Bounce.Duration")
	mustPositive(b.Step, "Bounce.Step")
}

func (b *Bounce) steps(target TextTarget, _ string, _ bool) iter.Seq[time.Duration] {
	mustTarget(target, "Bounce")
	b.validate()
	return staggered(target, b.Duration, b.Step, func(i int) GlyphTransform {
		return GlyphTransform{
			Index:    i,
			Kind:     TransformOffset,
			To:       Vec2{Y: -b.Strength},
			Duration: b.Duration,
			Ease:     Punch,
		}
	})
}

// --- Scale ---

// Scale grows each character from 1 to Scale over half of Duration with an
// overshooting ease, starting one character every Step.
type Scale struct {
	Duration time.Duration
	Scale    float64
	Step     time.Duration
}

// NewScale returns a Scale with the default timing: 0.6s, 1.2x, 20ms stagger.
func NewScale() *Scale {
	return &Scale{Duration: 600 * time.Millisecond, Scale: 1.2, Step: 20 * time.Millisecond}
}

// Kind returns AnimationScale.
func (s *Scale) Kind() AnimationKind { return AnimationScale }

// Play starts the scale animation on target.
func (s *Scale) Play(target TextTarget) *Playback {
	return newPlayback(s.steps(target, "", false))
}

// PlayText starts the scale animation on target; text is ignored.
func (s *Scale) PlayText(target TextTarget, text string) *Playback {
	return newPlayback(s.steps(target, text, true))
}

func (s *Scale) validate() {
	mustPositive(s.Duration, "Scale.Duration")
	mustPositive(s.Step, "Scale.Step")
}

func (s *Scale) steps(target TextTarget, _ string, _ bool) iter.Seq[time.Duration] {
	mustTarget(target, "Scale")
	s.validate()
	return staggered(target, s.Duration, s.Step, func(i int) GlyphTransform {
		return GlyphTransform{
			Index:    i,
			Kind:     TransformScale,
			From:     Vec2{1, 1},
			To:       Vec2{s.Scale, s.Scale},
			Duration: s.Duration / 2,
			Ease:     ease.OutBack,
		}
	})
}

// staggered schedules one transform per displayed character, character i
// delayed by i*step, then waits duration + n*step. The wait is the nominal
// length of the last transform; the transforms themselves are not joined.
func staggered(target TextTarget, duration, step time.Duration, build func(i int) GlyphTransform) iter.Seq[time.Duration] {
	return func(yield func(time.Duration) bool) {
		target.ForceLayout()
		n := target.CharacterCount()
		for i := 0; i < n; i++ {
			t := build(i)
			t.Delay = time.Duration(i) * step
			target.ScheduleTransform(t)
		}
		yield(duration + time.Duration(n)*step)
	}
}

// --- Typewriter ---

// Typewriter clears the target and reveals the source text one character
// (grapheme cluster) at a time, waiting Interval after each.
type Typewriter struct {
	Interval time.Duration
}

// NewTypewriter returns a Typewriter with a 40ms interval.
func NewTypewriter() *Typewriter {
	return &Typewriter{Interval: 40 * time.Millisecond}
}

// Kind returns AnimationTypewriter.
func (tw *Typewriter) Kind() AnimationKind { return AnimationTypewriter }

// Play reveals the target's current text.
func (tw *Typewriter) Play(target TextTarget) *Playback {
	return newPlayback(tw.steps(target, "", false))
}

// PlayText reveals text on target, replacing whatever it displayed.
func (tw *Typewriter) PlayText(target TextTarget, text string) *Playback {
	return newPlayback(tw.steps(target, text, true))
}

func (tw *Typewriter) validate() {
	mustPositive(tw.Interval, "Typewriter.Interval")
}

func (tw *Typewriter) steps(target TextTarget, text string, override bool) iter.Seq[time.Duration] {
	mustTarget(target, "Typewriter")
	tw.validate()
	return func(yield func(time.Duration) bool) {
		src := text
		if !override {
			src = target.Text()
		}
		target.SetText("")
		var shown strings.Builder
		shown.Grow(len(src))
		g := uniseg.NewGraphemes(src)
		for g.Next() {
			shown.WriteString(g.Str())
			target.SetText(shown.String())
			target.ForceLayout()
			if !yield(tw.Interval) {
				return
			}
		}
	}
}

// --- preconditions ---

// mustTarget rejects a nil interface and a nil *Label. Other typed-nil
// targets are the caller's concern.
func mustTarget(target TextTarget, who string) {
	if l, ok := target.(*Label); target == nil || ok && l == nil {
		panic(fmt.Sprintf("willowkit: %s played on a nil target", who))
	}
}

func mustPositive(d time.Duration, field string) {
	if d <= 0 {
		panic(fmt.Sprintf("willowkit: %s must be positive, got %v", field, d))
	}
}
