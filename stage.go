package willowkit

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Stage is the top-level object that owns labels and the playbacks running
// on them, and drives both from the host frame loop.
type Stage struct {
	labels    []*Label
	playbacks []*Playback
	debug     bool

	// ClearColor fills the screen before labels are drawn. A zero alpha
	// leaves the screen untouched.
	ClearColor Color

	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	fps     fpsOverlay

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	// now is the stage clock: the sum of every dt passed to Update.
	now time.Duration

	updateFunc func() error
	script     *Script

	store  EntityStore
	nextID uint32
}

// NewStage creates an empty stage.
func NewStage() *Stage {
	return &Stage{ScreenshotDir: "screenshots"}
}

// Add appends a label to the stage. Labels are drawn in insertion order.
func (s *Stage) Add(l *Label) {
	if globalDebug && l.IsDisposed() {
		panic("willowkit debug: Add of disposed label " + l.Name)
	}
	s.labels = append(s.labels, l)
}

// Remove detaches a label from the stage.
func (s *Stage) Remove(l *Label) {
	for i, c := range s.labels {
		if c == l {
			s.labels = append(s.labels[:i], s.labels[i+1:]...)
			return
		}
	}
}

// Labels returns the stage's labels. The returned slice MUST NOT be mutated.
func (s *Stage) Labels() []*Label {
	return s.labels
}

// Label returns the first label with the given name, or nil.
func (s *Stage) Label(name string) *Label {
	for _, l := range s.labels {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Start hands p to the stage, which updates it every frame until it is done.
// A playback that already finished is ignored.
func (s *Stage) Start(p *Playback) {
	if p == nil || p.Done() {
		return
	}
	if p.id == 0 {
		s.nextID++
		p.id = s.nextID
	}
	s.playbacks = append(s.playbacks, p)
	s.emit(EventPlaybackStarted, p)
}

// Running returns the number of playbacks still in progress.
func (s *Stage) Running() int {
	return len(s.playbacks)
}

// Now returns the stage clock.
func (s *Stage) Now() time.Duration {
	return s.now
}

// SetUpdateFunc sets a callback run once per tick before the stage steps.
// A non-nil error from fn ends Run.
func (s *Stage) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update advances the stage by one tick at Ebitengine's TPS.
func (s *Stage) Update() {
	s.Step(time.Second / time.Duration(ebiten.TPS()))
}

// Step advances playbacks, the attached script, then label tweens, by dt.
// Playbacks go before tweens so transforms they schedule this frame start
// moving in the same frame.
func (s *Stage) Step(dt time.Duration) {
	s.now += dt

	// Playbacks started from an OnDone callback land in the fresh list and
	// first advance next frame.
	cur := s.playbacks
	s.playbacks = nil
	live := cur[:0]
	for _, p := range cur {
		p.Update(dt)
		if !p.Done() {
			live = append(live, p)
			continue
		}
		s.emit(EventPlaybackFinished, p)
	}
	for i := len(live); i < len(cur); i++ {
		cur[i] = nil
	}
	s.playbacks = append(live, s.playbacks...)

	// Playbacks started by the script first advance next frame, like ones
	// started between frames.
	if s.script != nil {
		s.script.step(s)
	}

	sec := float32(dt.Seconds())
	for _, l := range s.labels {
		l.Update(sec)
	}

	if s.ShowFPS {
		s.fps.update(dt)
	}
}

// Draw clears the screen to ClearColor, draws every label, and captures any
// queued screenshots.
func (s *Stage) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	glyphs := 0
	for _, l := range s.labels {
		l.Draw(screen)
		glyphs += len(l.offsets)
	}

	if s.ShowFPS {
		s.fps.draw(screen)
	}

	if s.debug {
		s.debugLog(debugStats{
			drawTime:   time.Since(t0),
			labels:     len(s.labels),
			glyphs:     glyphs,
			playbacks:  len(s.playbacks),
			tweenCount: s.tweenCount(),
		})
	}

	s.flushScreenshots(screen)
}

func (s *Stage) tweenCount() int {
	n := 0
	for _, l := range s.labels {
		n += l.ActiveTransforms()
	}
	return n
}

// SetDebugMode enables or disables debug mode. When enabled, misuse of
// disposed labels panics, dropped transforms are logged, and per-frame stats
// are printed to stderr.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Stage debug flag so that label
// operations (which lack a Stage pointer) can check it cheaply.
var globalDebug bool

// --- ebiten.Game ---

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
}

type stageGame struct {
	stage *Stage
	w, h  int
}

func (g *stageGame) Update() error {
	if fn := g.stage.updateFunc; fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	g.stage.Update()
	return nil
}

func (g *stageGame) Draw(screen *ebiten.Image) { g.stage.Draw(screen) }

func (g *stageGame) Layout(_, _ int) (int, int) { return g.w, g.h }

// Run opens a window and runs the stage as the game loop. It blocks until
// the window is closed.
func Run(s *Stage, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&stageGame{stage: s, w: cfg.Width, h: cfg.Height})
}
