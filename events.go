package willowkit

import "time"

// EntityStore is the interface for optional ECS integration.
// When set on a Stage, playback lifecycle events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event PlaybackEvent)
}

// PlaybackEventType identifies a playback lifecycle event.
type PlaybackEventType uint8

const (
	EventPlaybackStarted  PlaybackEventType = iota // handed to Stage.Start
	EventPlaybackFinished                          // ran to completion or was stopped
)

// String returns the event name.
func (t PlaybackEventType) String() string {
	switch t {
	case EventPlaybackStarted:
		return "started"
	case EventPlaybackFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// PlaybackEvent carries playback lifecycle data for the ECS bridge.
type PlaybackEvent struct {
	Type PlaybackEventType
	// PlaybackID is assigned by the stage on Start and is never zero.
	PlaybackID uint32
	// At is the stage clock when the event fired.
	At time.Duration
	// Elapsed is the playback's own running time.
	Elapsed time.Duration
}

// SetEntityStore sets the optional ECS bridge.
func (s *Stage) SetEntityStore(store EntityStore) {
	s.store = store
}

func (s *Stage) emit(t PlaybackEventType, p *Playback) {
	if s.store == nil {
		return
	}
	s.store.EmitEvent(PlaybackEvent{
		Type:       t,
		PlaybackID: p.id,
		At:         s.now,
		Elapsed:    p.elapsed,
	})
}
