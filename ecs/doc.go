// Package ecs bridges gesturekit interaction events into a Donburi world.
//
// [NewDonburiStore] publishes every tap and every pan, pinch and rotate
// report as an [InteractionEventType] event. Subscribe to it in your ECS
// systems and drain the queue with ProcessEvents.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	stage.SetEntityStore(store)
//
// Only entities with a non-zero EntityID are forwarded.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
