package willowkit

import (
	"image"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"title", "title"},
		{"after-bounce.01", "after-bounce.01"},
		{"two words", "two_words"},
		{"ui/title", "ui_title"},
		{"é!", "__"},
		{"  ", "frame"},
	}
	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCaptureRectCropsToLabel(t *testing.T) {
	s := NewStage()
	l := newTestLabel("abc") // 30x20 with monoFont
	l.X, l.Y = 100, 50
	s.Add(l)
	frame := image.Rect(0, 0, 640, 480)

	got := s.captureRect("test", frame)
	want := image.Rect(98, 48, 132, 72)
	if got != want {
		t.Errorf("captureRect = %v, want %v", got, want)
	}

	if got := s.captureRect("missing", frame); got != frame {
		t.Errorf("unknown name = %v, want whole frame", got)
	}
}

func TestCaptureRectFollowsGlyphTransforms(t *testing.T) {
	s := NewStage()
	l := newTestLabel("ab")
	l.X, l.Y = 10, 10
	s.Add(l)
	l.offsets[0] = Vec2{Y: -30}
	l.scales[1] = Vec2{2, 2}

	// Glyph 0 rises to y=-20, glyph 1 doubles about its centre (25, 20).
	if got, want := l.Bounds(), image.Rect(10, -20, 35, 40); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
	// Clipped to the frame.
	if got, want := s.captureRect("test", image.Rect(0, 0, 640, 480)), image.Rect(8, 0, 37, 42); got != want {
		t.Errorf("captureRect = %v, want %v", got, want)
	}
}

func TestCaptureRectEmptyLabelUsesFrame(t *testing.T) {
	s := NewStage()
	s.Add(newTestLabel(""))
	frame := image.Rect(0, 0, 64, 64)
	if got := s.captureRect("test", frame); got != frame {
		t.Errorf("captureRect = %v, want %v", got, frame)
	}
}

func TestUnpremultiply(t *testing.T) {
	px := []byte{
		64, 32, 0, 128, // half alpha
		10, 20, 30, 255,
		0, 0, 0, 0,
		200, 0, 0, 100, // clamps at 255
	}
	img := unpremultiply(px, image.Rect(0, 0, 2, 2))
	want := []byte{127, 63, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0, 255, 0, 0, 100}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Fatalf("Pix = %v, want %v", img.Pix, want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	s := NewStage()
	s.Screenshot("a")
	s.Screenshot("b")
	if len(s.screenshotQueue) != 2 || s.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", s.screenshotQueue)
	}
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q", s.ScreenshotDir)
	}
}
