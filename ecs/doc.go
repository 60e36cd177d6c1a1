// Package ecs bridges willowkit playback events into an ECS world.
//
// [NewDonburiStore] publishes every [willowkit.PlaybackEvent] to a [Donburi]
// world as a typed event. Subscribe to [PlaybackEventType] in your systems to
// react when text animations start and finish.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	stage.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
