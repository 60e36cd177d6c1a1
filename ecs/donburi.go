package ecs

import (
	"github.com/phanxgames/willowkit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PlaybackEventType is the Donburi event type for willowkit playback events.
var PlaybackEventType = events.NewEventType[willowkit.PlaybackEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world. Events
// are queued and delivered by PlaybackEventType.ProcessEvents.
func NewDonburiStore(world donburi.World) willowkit.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event willowkit.PlaybackEvent) {
	PlaybackEventType.Publish(s.world, event)
}
