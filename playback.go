package willowkit

import (
	"iter"
	"time"
)

// Playback is a running text animation. The animation body executes as a
// coroutine: it runs until it asks to wait, and Update resumes it once the
// wait has elapsed. Call Update once per frame until Done reports true.
//
// A Playback never runs on its own goroutine; the body only executes inside
// the Play call that created it and inside Update.
type Playback struct {
	next func() (time.Duration, bool)
	stop func()

	id      uint32        // assigned by Stage.Start
	wait    time.Duration // remaining time on the current wait
	elapsed time.Duration
	done    bool

	// OnDone, if set, is called once when the playback completes. A
	// playback that finished inside Play has already completed, so check
	// Done before relying on it.
	OnDone func()
}

// newPlayback starts steps and runs it up to its first wait.
func newPlayback(steps iter.Seq[time.Duration]) *Playback {
	p := &Playback{}
	p.next, p.stop = iter.Pull(steps)
	p.advance()
	return p
}

// advance pulls waits from the body until one is still pending or the body
// returns. A negative remaining wait (frame overshoot) is credited to the
// next wait so that consecutive waits do not drift.
func (p *Playback) advance() {
	for p.wait <= 0 {
		w, ok := p.next()
		if !ok {
			p.finish()
			return
		}
		p.wait += w
	}
}

func (p *Playback) finish() {
	if p.done {
		return
	}
	p.done = true
	p.wait = 0
	p.stop()
	if p.OnDone != nil {
		p.OnDone()
	}
}

// Update advances the playback by dt. It is a no-op once the playback is done.
func (p *Playback) Update(dt time.Duration) {
	if p.done {
		return
	}
	p.elapsed += dt
	p.wait -= dt
	p.advance()
}

// Done reports whether the animation has run to completion or was stopped.
func (p *Playback) Done() bool {
	return p.done
}

// ID returns the identifier assigned when the playback was handed to a
// Stage, or zero.
func (p *Playback) ID() uint32 {
	return p.id
}

// Elapsed returns the total time passed to Update so far.
func (p *Playback) Elapsed() time.Duration {
	return p.elapsed
}

// Remaining returns the time left on the current wait.
func (p *Playback) Remaining() time.Duration {
	return p.wait
}

// Stop abandons the remaining steps of the animation. Glyph tweens already
// handed to the target keep running on the target.
func (p *Playback) Stop() {
	p.finish()
}
