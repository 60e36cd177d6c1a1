package willowkit

import (
	"math"
	"testing"
	"time"

	"github.com/rivo/uniseg"
)

// monoFont is a fixed-advance Font for layout tests.
type monoFont struct {
	advance, lh float64
}

func (f monoFont) MeasureString(s string) (float64, float64) {
	return float64(uniseg.GraphemeClusterCount(s)) * f.advance, f.lh
}

func (f monoFont) LineHeight() float64 { return f.lh }

func newTestLabel(content string) *Label {
	return NewLabel("test", content, monoFont{advance: 10, lh: 20})
}

func TestNewLabelDefaults(t *testing.T) {
	l := newTestLabel("Hi")
	if !l.Visible {
		t.Error("label should be visible")
	}
	if l.TextBlock.Color != ColorWhite {
		t.Errorf("Color = %+v, want white", l.TextBlock.Color)
	}
	if l.CharacterCount() != 2 {
		t.Errorf("CharacterCount = %d, want 2", l.CharacterCount())
	}
	if l.GlyphScale(1) != (Vec2{1, 1}) || l.GlyphOffset(1) != (Vec2{}) {
		t.Error("glyphs should start at rest")
	}
}

func TestLabelLayoutPositions(t *testing.T) {
	l := newTestLabel("ab\ncd")
	if l.CharacterCount() != 4 {
		t.Fatalf("CharacterCount = %d, want 4 (newline is not a character)", l.CharacterCount())
	}
	g := l.TextBlock.glyphs
	if g[1].x != 10 || g[1].y != 0 {
		t.Errorf("glyph 1 at (%f,%f), want (10,0)", g[1].x, g[1].y)
	}
	if g[2].x != 0 || g[2].y != 20 {
		t.Errorf("glyph 2 at (%f,%f), want (0,20)", g[2].x, g[2].y)
	}
	w, h := l.TextBlock.Measure()
	if w != 20 || h != 40 {
		t.Errorf("Measure = (%f,%f), want (20,40)", w, h)
	}
}

func TestLabelCountsGraphemeClusters(t *testing.T) {
	l := newTestLabel("é\U0001F44D\U0001F3FD!")
	if l.CharacterCount() != 3 {
		t.Errorf("CharacterCount = %d, want 3", l.CharacterCount())
	}
}

func TestLabelSetTextIsLazy(t *testing.T) {
	l := newTestLabel("a")
	l.SetText("abc")
	if !l.TextBlock.layoutDirty {
		t.Fatal("SetText should mark layout dirty")
	}
	if l.CharacterCount() != 3 {
		t.Errorf("CharacterCount = %d, want 3", l.CharacterCount())
	}
	if l.TextBlock.layoutDirty {
		t.Error("CharacterCount should lay out")
	}
}

func TestLabelNilFont(t *testing.T) {
	l := NewLabel("empty", "abc", nil)
	if l.CharacterCount() != 0 {
		t.Errorf("CharacterCount = %d, want 0 without a font", l.CharacterCount())
	}
}

func TestLabelScheduleTransformOutOfRangeDropped(t *testing.T) {
	l := newTestLabel("ab")
	l.ScheduleTransform(GlyphTransform{Index: 2, Duration: time.Second})
	l.ScheduleTransform(GlyphTransform{Index: -1, Duration: time.Second})
	if l.ActiveTransforms() != 0 {
		t.Errorf("ActiveTransforms = %d, want 0", l.ActiveTransforms())
	}
}

func TestLabelBounceEndToEnd(t *testing.T) {
	l := newTestLabel("Hi")
	stage := NewStage()
	stage.Add(l)

	p := NewBounce().Play(l)
	stage.Start(p)
	if l.ActiveTransforms() != 2 {
		t.Fatalf("ActiveTransforms = %d, want 2", l.ActiveTransforms())
	}

	// Glyph 1 is still in its 30ms delay after the first 10ms frame.
	stage.Step(10 * time.Millisecond)
	if l.GlyphOffset(0).Y == 0 {
		t.Error("glyph 0 should be moving")
	}
	if l.GlyphOffset(1).Y != 0 {
		t.Error("glyph 1 should still be waiting")
	}

	for i := 0; i < 100 && stage.Running() > 0; i++ {
		stage.Step(10 * time.Millisecond)
	}
	if !p.Done() {
		t.Fatal("playback should be done")
	}
	if l.ActiveTransforms() != 0 {
		t.Errorf("ActiveTransforms = %d, want 0 once the join elapsed", l.ActiveTransforms())
	}
	for i := 0; i < 2; i++ {
		if l.GlyphOffset(i) != (Vec2{}) {
			t.Errorf("glyph %d offset = %+v, want rest", i, l.GlyphOffset(i))
		}
	}
}

func TestLabelScaleEndToEnd(t *testing.T) {
	l := newTestLabel("abc")
	stage := NewStage()
	stage.Add(l)
	stage.Start(NewScale().Play(l))

	for i := 0; i < 100 && stage.Running() > 0; i++ {
		stage.Step(10 * time.Millisecond)
	}
	for i := 0; i < 3; i++ {
		sc := l.GlyphScale(i)
		if math.Abs(sc.X-1.2) > 1e-6 || math.Abs(sc.Y-1.2) > 1e-6 {
			t.Errorf("glyph %d scale = %+v, want 1.2", i, sc)
		}
	}
}

func TestLabelTypewriterEndToEnd(t *testing.T) {
	l := newTestLabel("Hello")
	stage := NewStage()
	stage.Add(l)
	stage.Start(NewTypewriter().PlayText(l, "Bye"))

	if l.Text() != "B" || l.CharacterCount() != 1 {
		t.Fatalf("after Play text = %q count = %d", l.Text(), l.CharacterCount())
	}
	for i := 0; i < 100 && stage.Running() > 0; i++ {
		stage.Step(10 * time.Millisecond)
	}
	if l.Text() != "Bye" || l.CharacterCount() != 3 {
		t.Errorf("final text = %q count = %d", l.Text(), l.CharacterCount())
	}
	if stage.Now() != 120*time.Millisecond {
		t.Errorf("stage clock = %v, want 120ms", stage.Now())
	}
}

func TestLabelKeepsGlyphStateWhenTextGrows(t *testing.T) {
	l := newTestLabel("ab")
	l.offsets[1] = Vec2{Y: 5}
	l.SetText("abc")
	l.ForceLayout()
	if l.GlyphOffset(1).Y != 5 {
		t.Error("existing glyph state should be kept")
	}
	if l.GlyphScale(2) != (Vec2{1, 1}) {
		t.Error("new glyph should start at rest")
	}
}

func TestLabelDisposeDropsTweens(t *testing.T) {
	l := newTestLabel("ab")
	NewBounce().Play(l)
	l.Dispose()
	if !l.IsDisposed() {
		t.Fatal("IsDisposed should be true")
	}
	l.Update(0.1)
	if l.ActiveTransforms() != 0 {
		t.Errorf("ActiveTransforms = %d after Dispose", l.ActiveTransforms())
	}
	if l.GlyphOffset(0) != (Vec2{}) {
		t.Error("disposed label glyphs should not move")
	}
}

func TestLabelUpdateDropsTweensPastShrunkText(t *testing.T) {
	l := newTestLabel("abc")
	NewBounce().Play(l)
	l.SetText("a")
	l.Update(0.01)
	if l.ActiveTransforms() != 1 {
		t.Errorf("ActiveTransforms = %d, want 1", l.ActiveTransforms())
	}
}

func TestLabelResetGlyphs(t *testing.T) {
	l := newTestLabel("ab")
	NewScale().Play(l)
	for i := 0; i < 10; i++ {
		l.Update(0.05)
	}
	if l.GlyphScale(0).X <= 1 {
		t.Fatal("scale should have grown before reset")
	}
	l.ResetGlyphs()
	if l.ActiveTransforms() != 0 {
		t.Errorf("ActiveTransforms = %d, want 0", l.ActiveTransforms())
	}
	for i := 0; i < 2; i++ {
		if l.GlyphScale(i) != (Vec2{1, 1}) || l.GlyphOffset(i) != (Vec2{}) {
			t.Errorf("glyph %d not at rest: %v %v", i, l.GlyphScale(i), l.GlyphOffset(i))
		}
	}
}
