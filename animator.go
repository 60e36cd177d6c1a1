package willowkit

import (
	"iter"
	"time"
)

// TextAnimator holds an ordered list of text animations for one target and
// plays them back to back.
type TextAnimator struct {
	Target     TextTarget
	animations []TextAnimation
}

// NewTextAnimator creates an animator for target with the given animations,
// in order. Duplicates are dropped as with Add.
func NewTextAnimator(target TextTarget, anims ...TextAnimation) *TextAnimator {
	a := &TextAnimator{Target: target}
	for _, anim := range anims {
		a.Add(anim)
	}
	return a
}

// Add appends anim unless the same animation value is already held.
// It reports whether anim was added.
func (a *TextAnimator) Add(anim TextAnimation) bool {
	if anim == nil || a.Contains(anim) {
		return false
	}
	a.animations = append(a.animations, anim)
	return true
}

// Contains reports whether anim (by identity) is held.
func (a *TextAnimator) Contains(anim TextAnimation) bool {
	for _, held := range a.animations {
		if held == anim {
			return true
		}
	}
	return false
}

// RemoveKind removes every held animation of the given variant and returns
// how many were removed.
func (a *TextAnimator) RemoveKind(kind AnimationKind) int {
	kept := a.animations[:0]
	for _, held := range a.animations {
		if held.Kind() != kind {
			kept = append(kept, held)
		}
	}
	removed := len(a.animations) - len(kept)
	for i := len(kept); i < len(a.animations); i++ {
		a.animations[i] = nil
	}
	a.animations = kept
	return removed
}

// Animations returns the held animations in play order. The returned slice
// MUST NOT be mutated.
func (a *TextAnimator) Animations() []TextAnimation {
	return a.animations
}

// Len returns the number of held animations.
func (a *TextAnimator) Len() int {
	return len(a.animations)
}

// PlayAll plays every held animation on Target in order using the target's
// current text. Each animation starts only after the previous one has run
// its full length.
func (a *TextAnimator) PlayAll() *Playback {
	return newPlayback(a.sequence("", false))
}

// PlayAllText is PlayAll with text passed to every animation as its source
// text.
func (a *TextAnimator) PlayAllText(text string) *Playback {
	return newPlayback(a.sequence(text, true))
}

// sequence chains the animations' steps. The list is copied so that changes
// made while playing take effect on the next PlayAll. Each animation's body
// is created only when its turn comes, so it sees the target as the previous
// animation left it. Every animation is validated up front.
func (a *TextAnimator) sequence(text string, override bool) iter.Seq[time.Duration] {
	mustTarget(a.Target, "TextAnimator")
	anims := append([]TextAnimation(nil), a.animations...)
	for _, anim := range anims {
		anim.validate()
	}
	target := a.Target
	return func(yield func(time.Duration) bool) {
		for _, anim := range anims {
			for w := range anim.steps(target, text, override) {
				if !yield(w) {
					return
				}
			}
		}
	}
}
