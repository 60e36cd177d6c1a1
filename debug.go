package willowkit

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame metrics. Only populated when Stage.debug is true.
type debugStats struct {
	drawTime   time.Duration
	labels     int
	glyphs     int
	playbacks  int
	tweenCount int
}

// debugLog prints frame stats to stderr.
func (s *Stage) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[willowkit] t=%v draw: %v | labels: %d | glyphs: %d\n",
		s.now, stats.drawTime, stats.labels, stats.glyphs)
	_, _ = fmt.Fprintf(os.Stderr,
		"[willowkit] playbacks: %d | glyph tweens: %d\n",
		stats.playbacks, stats.tweenCount)
}

// debugWarn prints a one-line warning to stderr.
func (s *Stage) debugWarn(msg string) {
	_, _ = fmt.Fprintf(os.Stderr, "[willowkit] %s\n", msg)
}
