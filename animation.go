package willowkit

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// punchVibrato is the number of half oscillations a Punch makes.
const punchVibrato = 6

// Punch is an ease.TweenFunc that kicks the value from b toward b+c and lets
// it oscillate back with a linearly decaying amplitude, ending at b.
func Punch(t, b, c, d float32) float32 {
	if d <= 0 || t >= d {
		return b
	}
	p := float64(t / d)
	amp := 1 - p
	return b + c*float32(math.Sin(p*math.Pi*punchVibrato)*amp)
}

var _ ease.TweenFunc = Punch

// glyphTween animates the X and Y of one Vec2 field of a glyph. It sits idle
// for delay seconds before the tweens start. There is no global animation
// manager; the owning Label updates its tweens from Label.Update.
type glyphTween struct {
	index  int
	kind   TransformKind
	delay  float32
	tweens [2]*gween.Tween
	settle Vec2 // value written on completion
	Done   bool
}

func newGlyphTween(t GlyphTransform) *glyphTween {
	fn := t.Ease
	if fn == nil {
		fn = ease.Linear
	}
	d := float32(t.Duration.Seconds())
	g := &glyphTween{
		index: t.Index,
		kind:  t.Kind,
		delay: float32(t.Delay.Seconds()),
	}
	g.tweens[0] = gween.New(float32(t.From.X), float32(t.To.X), d, fn)
	g.tweens[1] = gween.New(float32(t.From.Y), float32(t.To.Y), d, fn)
	// gween snaps to the end value once finished; eases that return to
	// their start (Punch) must settle where the curve ends instead.
	g.settle = t.To
	if d > 0 {
		g.settle = Vec2{
			X: float64(fn(d, float32(t.From.X), float32(t.To.X-t.From.X), d)),
			Y: float64(fn(d, float32(t.From.Y), float32(t.To.Y-t.From.Y), d)),
		}
	}
	return g
}

// Update advances the tween by dt seconds and writes the value into field.
// Time left over after the delay runs out is applied to the tweens in the
// same call.
func (g *glyphTween) Update(dt float32, field *Vec2) {
	if g.Done {
		return
	}
	if g.delay > 0 {
		if dt <= g.delay {
			g.delay -= dt
			return
		}
		dt -= g.delay
		g.delay = 0
	}

	x, fx := g.tweens[0].Update(dt)
	y, fy := g.tweens[1].Update(dt)
	g.Done = fx && fy
	if g.Done {
		*field = g.settle
		return
	}
	field.X = float64(x)
	field.Y = float64(y)
}
