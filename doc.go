// Package gesturekit makes flat 2D entities directly manipulable on
// [Ebitengine]: pan, pinch and rotate combine into one transform while the
// fingers are down, the entity springs back to its rest transform on release,
// and a tap flashes its color.
//
// # Quick start
//
// [Run] opens a window and drives a [Stage]:
//
//	stage := gesturekit.NewStage()
//	box := gesturekit.NewEntity("box", gesturekit.Rect{X: 20, Y: 20, Width: 200, Height: 200}, gesturekit.Identity)
//	box.SetColor(gesturekit.ColorGreen)
//	stage.Add(box)
//	gesturekit.Run(stage, gesturekit.RunConfig{Title: "demo", Width: 400, Height: 800})
//
// For full control, implement [ebiten.Game] yourself and call [Stage.Update]
// and [Stage.Draw].
//
// # Transforms
//
// A [Transform] is a 2D affine matrix. Gesture values are folded over an
// entity's rest transform by [Compose]: translate, then scale, then rotate,
// so scaling and rotation happen about the translated origin. The origin of
// an entity's transform is its frame center.
//
// # Gestures
//
// Each entity owns a pan, pinch, rotate and tap recognizer. The three
// transform recognizers may run at the same time ([AllowSimultaneous]); tap
// never runs alongside them. Reports can come from real pointer input, from
// the Inject* methods, or straight from code through [Entity.ApplyGesture].
//
// Pointer 0 is the mouse and pointers 1-9 are touches. On desktop the mouse
// wheel pinches and Shift+wheel rotates.
//
// # States
//
// An entity is [StateIdle] at rest, [StateInteracting] while a transform
// gesture is live and [StateReturning] while the spring runs. A new Changed
// report during the spring cancels it.
//
// # Configuration, metrics, ECS
//
// [LoadConfig] reads a YAML file plus GESTUREKIT_* environment overrides,
// [WatchConfig] reloads it on change and [Stage.ApplyConfig] applies it.
// [NewMetrics] exports Prometheus counters. The ecs subpackage forwards
// interaction events to a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package gesturekit
