// Package willowkit provides per-character text animations for [Ebitengine]
// games. Nothing runs in the background: the host frame loop drives every
// tween and playback.
//
// A [Label] is a line of text whose glyphs can be offset and scaled
// individually. Text animations play on any [TextTarget]; Label is the
// built-in one.
//
// # Animations
//
// Three variants are provided: [Bounce] and [Scale] schedule one tween per
// character with a fixed stagger, and [Typewriter] reveals one character per
// interval:
//
//	label := willowkit.NewLabel("title", "Hello", font)
//	bounce := &willowkit.Bounce{Duration: 500 * time.Millisecond, Strength: 30, Step: 30 * time.Millisecond}
//	p := bounce.Play(label)
//
// Play returns a [Playback]. Nothing advances on its own: call
// [Playback.Update] and [Label.Update] every frame, or hand both to a [Stage]
// which does it from its own Update:
//
//	stage := willowkit.NewStage()
//	stage.Add(label)
//	stage.Start(p)
//	willowkit.Run(stage, willowkit.RunConfig{Title: "Demo", Width: 640, Height: 480})
//
// # Sequencing
//
// A [TextAnimator] holds an ordered list of animations for one target and
// plays them back to back with [TextAnimator.PlayAll]. Each animation runs to
// its full scheduled length before the next one starts.
//
// # ECS integration
//
// [Stage.SetEntityStore] forwards playback start and finish events to an
// [EntityStore]. The ecs subpackage provides one backed by a Donburi world.
//
// # Scripts
//
// A [Script] loaded with [LoadScript] plays animations and takes screenshots
// on a fixed frame schedule, for automated visual checks.
//
// Durations are [time.Duration] values so that the scheduled total of a
// staggered animation is exact; glyph tweens convert them to the float32
// seconds gween works in.
//
// [Ebitengine]: https://ebitengine.org
package willowkit
