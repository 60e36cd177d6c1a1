package willowkit

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// screenshotPadding widens a label crop so antialiased glyph edges survive.
const screenshotPadding = 2

// Screenshot queues a capture at the end of the current frame's Draw call.
// If name is the name of a label on the stage, the capture is cropped to that
// label's glyphs as drawn in that frame (see Label.Bounds); otherwise the
// whole frame is captured. The PNG is written to ScreenshotDir as
// <timestamp>_<name>.png.
func (s *Stage) Screenshot(name string) {
	s.screenshotQueue = append(s.screenshotQueue, name)
}

// captureRect returns the region of a frame with the given bounds that a
// screenshot called name covers.
func (s *Stage) captureRect(name string, frame image.Rectangle) image.Rectangle {
	l := s.Label(name)
	if l == nil || !l.Visible {
		return frame
	}
	r := l.Bounds()
	if r.Empty() {
		return frame
	}
	r = r.Inset(-screenshotPadding).Intersect(frame)
	if r.Empty() {
		return frame
	}
	return r
}

// flushScreenshots writes every queued capture. Called at the end of
// Stage.Draw.
func (s *Stage) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[willowkit] screenshot: mkdir %s: %v\n", s.ScreenshotDir, err)
		return
	}

	frame := screen.Bounds()
	pixels := make([]byte, 4*frame.Dx()*frame.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, frame)

	stamp := time.Now().Format("20060102_150405")
	for _, name := range s.screenshotQueue {
		crop := img.SubImage(s.captureRect(name, frame))
		path := filepath.Join(s.ScreenshotDir, stamp+"_"+sanitizeName(name)+".png")
		if err := writePNG(path, crop); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[willowkit] screenshot: %v\n", err)
		}
	}
}

// unpremultiply converts ebiten's premultiplied RGBA pixels into a
// straight-alpha image covering frame.
func unpremultiply(pixels []byte, frame image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(frame)
	copy(img.Pix, pixels)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := 0; c < 3; c++ {
			img.Pix[i+c] = uint8(min(int(img.Pix[i+c])*255/a, 255))
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeName keeps letters, digits, '-' and '.', replaces everything else
// with '_', and names an empty capture "frame".
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "frame"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, name)
}
