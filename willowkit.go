package willowkit

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA for ebiten fills.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for glyph offsets and scales.
type Vec2 struct {
	X, Y float64
}

// AnimationKind identifies one of the built-in text animation variants.
type AnimationKind uint8

const (
	AnimationBounce     AnimationKind = iota // per-character vertical punch
	AnimationScale                           // per-character scale up
	AnimationTypewriter                      // one character revealed per interval
)

// String returns the variant name.
func (k AnimationKind) String() string {
	switch k {
	case AnimationBounce:
		return "bounce"
	case AnimationScale:
		return "scale"
	case AnimationTypewriter:
		return "typewriter"
	default:
		return "unknown"
	}
}

// TransformKind selects which per-glyph field a scheduled transform drives.
type TransformKind uint8

const (
	TransformOffset TransformKind = iota // glyph position offset in pixels
	TransformScale                       // glyph scale about its centre
)
