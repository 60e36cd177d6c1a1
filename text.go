package willowkit

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rivo/uniseg"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached per-character layout.
type TextBlock struct {
	Content    string
	Font       Font
	Color      Color
	LineHeight float64 // override; 0 = use Font.LineHeight()

	// Cached layout (unexported)
	layoutDirty bool
	glyphs      []glyphPos
	measuredW   float64
	measuredH   float64
}

// glyphPos is the laid-out position of one character (grapheme cluster)
// relative to the block origin.
type glyphPos struct {
	text  string
	x, y  float64
	width float64
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// SetContent replaces the text and marks the layout dirty.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.layoutDirty = true
}

// Measure returns the laid-out width and height of the block.
func (tb *TextBlock) Measure() (width, height float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// layout recomputes glyph positions if dirty. Line breaks start a new line
// and do not produce a glyph. Returns the cached glyphs.
func (tb *TextBlock) layout() []glyphPos {
	if !tb.layoutDirty {
		return tb.glyphs
	}
	tb.layoutDirty = false
	tb.glyphs = tb.glyphs[:0]
	tb.measuredW = 0
	tb.measuredH = 0

	if tb.Font == nil {
		return tb.glyphs
	}

	lh := tb.lineHeight()
	var cursorX, cursorY float64
	lines := 1

	g := uniseg.NewGraphemes(tb.Content)
	for g.Next() {
		cluster := g.Str()
		if cluster[0] == '\n' || cluster[0] == '\r' {
			if cursorX > tb.measuredW {
				tb.measuredW = cursorX
			}
			cursorX = 0
			cursorY += lh
			lines++
			continue
		}
		w, _ := tb.Font.MeasureString(cluster)
		tb.glyphs = append(tb.glyphs, glyphPos{text: cluster, x: cursorX, y: cursorY, width: w})
		cursorX += w
	}

	if cursorX > tb.measuredW {
		tb.measuredW = cursorX
	}
	if tb.Content != "" {
		tb.measuredH = float64(lines) * lh
	}
	return tb.glyphs
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("willowkit: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	// Compute line height from metrics
	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct Ebitengine text drawing.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}
