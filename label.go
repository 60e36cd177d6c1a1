package willowkit

import (
	"image"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Label is a text node whose characters can be offset and scaled
// individually. It implements TextTarget.
//
// Glyph transforms scheduled on a Label advance in Update; Stage calls it
// every frame for labels it owns.
type Label struct {
	Name      string
	X, Y      float64
	Visible   bool
	TextBlock *TextBlock

	// per-glyph state, indexed like the laid-out glyphs
	offsets []Vec2
	scales  []Vec2

	tweens   []*glyphTween
	disposed bool
}

// NewLabel creates a visible label displaying content in font.
func NewLabel(name, content string, font Font) *Label {
	l := &Label{
		Name:    name,
		Visible: true,
		TextBlock: &TextBlock{
			Content:     content,
			Font:        font,
			Color:       ColorWhite,
			layoutDirty: true,
		},
	}
	l.ForceLayout()
	return l
}

// Text returns the label's full text.
func (l *Label) Text() string {
	return l.TextBlock.Content
}

// SetText replaces the label's text. Layout is recomputed lazily.
func (l *Label) SetText(s string) {
	l.TextBlock.SetContent(s)
}

// ForceLayout recomputes glyph positions now and resizes the per-glyph state.
// Glyphs that still exist keep their offset and scale; new glyphs start at
// rest.
func (l *Label) ForceLayout() {
	l.TextBlock.layoutDirty = true
	n := len(l.TextBlock.layout())
	for len(l.offsets) < n {
		l.offsets = append(l.offsets, Vec2{})
		l.scales = append(l.scales, Vec2{1, 1})
	}
	l.offsets = l.offsets[:n]
	l.scales = l.scales[:n]
}

// CharacterCount returns the number of laid-out characters. Line breaks do
// not count.
func (l *Label) CharacterCount() int {
	if l.TextBlock.layoutDirty {
		l.ForceLayout()
	}
	return len(l.TextBlock.glyphs)
}

// ScheduleTransform starts a glyph tween. Transforms for an index outside
// the current layout are dropped.
func (l *Label) ScheduleTransform(t GlyphTransform) {
	if t.Index < 0 || t.Index >= l.CharacterCount() {
		if globalDebug {
			log.Printf("willowkit: label %q: transform for glyph %d outside %d glyphs", l.Name, t.Index, len(l.offsets))
		}
		return
	}
	l.tweens = append(l.tweens, newGlyphTween(t))
}

// GlyphOffset returns the current offset of glyph i.
func (l *Label) GlyphOffset(i int) Vec2 {
	return l.offsets[i]
}

// GlyphScale returns the current scale of glyph i.
func (l *Label) GlyphScale(i int) Vec2 {
	return l.scales[i]
}

// ActiveTransforms returns the number of glyph tweens not yet finished.
func (l *Label) ActiveTransforms() int {
	return len(l.tweens)
}

// Update advances all glyph tweens by dt seconds and drops the finished ones.
// A disposed label drops every tween without writing.
func (l *Label) Update(dt float32) {
	if l.disposed {
		l.tweens = l.tweens[:0]
		return
	}
	if l.TextBlock.layoutDirty {
		l.ForceLayout()
	}

	kept := l.tweens[:0]
	for _, g := range l.tweens {
		if g.index >= len(l.offsets) {
			continue
		}
		field := &l.offsets[g.index]
		if g.kind == TransformScale {
			field = &l.scales[g.index]
		}
		g.Update(dt, field)
		if !g.Done {
			kept = append(kept, g)
		}
	}
	for i := len(kept); i < len(l.tweens); i++ {
		l.tweens[i] = nil
	}
	l.tweens = kept
}

// ResetGlyphs drops every glyph tween and returns all glyphs to rest.
func (l *Label) ResetGlyphs() {
	for i := range l.tweens {
		l.tweens[i] = nil
	}
	l.tweens = l.tweens[:0]
	for i := range l.offsets {
		l.offsets[i] = Vec2{}
		l.scales[i] = Vec2{1, 1}
	}
}

// Dispose stops all glyph tweens. The label must not be drawn afterwards.
func (l *Label) Dispose() {
	if globalDebug && l.disposed {
		panic("willowkit debug: Dispose on disposed label " + l.Name)
	}
	l.disposed = true
	l.tweens = nil
}

// IsDisposed reports whether Dispose has been called.
func (l *Label) IsDisposed() bool {
	return l.disposed
}

// Bounds returns the screen rectangle covered by the label's glyphs as they
// are currently offset and scaled. An empty label has empty bounds.
func (l *Label) Bounds() image.Rectangle {
	if l.TextBlock.layoutDirty {
		l.ForceLayout()
	}
	lh := l.TextBlock.lineHeight()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, g := range l.TextBlock.glyphs {
		off, sc := l.offsets[i], l.scales[i]
		hw, hh := g.width/2*math.Abs(sc.X), lh/2*math.Abs(sc.Y)
		cx := l.X + g.x + g.width/2 + off.X
		cy := l.Y + g.y + lh/2 + off.Y
		minX, maxX = math.Min(minX, cx-hw), math.Max(maxX, cx+hw)
		minY, maxY = math.Min(minY, cy-hh), math.Max(maxY, cy+hh)
	}
	if minX > maxX {
		return image.Rectangle{}
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

// Draw renders the label's glyphs onto dst. Only TTF fonts are drawn.
func (l *Label) Draw(dst *ebiten.Image) {
	if !l.Visible || l.disposed {
		return
	}
	f, ok := l.TextBlock.Font.(*TTFFont)
	if !ok {
		return
	}
	glyphs := l.TextBlock.layout()
	lh := l.TextBlock.lineHeight()
	c := l.TextBlock.Color

	for i, g := range glyphs {
		if i >= len(l.offsets) {
			break
		}
		off, sc := l.offsets[i], l.scales[i]
		cx, cy := g.width/2, lh/2

		op := &text.DrawOptions{}
		// Scale about the glyph centre, then place it.
		op.GeoM.Translate(-cx, -cy)
		op.GeoM.Scale(sc.X, sc.Y)
		op.GeoM.Translate(l.X+g.x+cx+off.X, l.Y+g.y+cy+off.Y)
		op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
		op.LineSpacing = f.lh
		text.Draw(dst, g.text, f.face, op)
	}
}
