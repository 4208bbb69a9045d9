package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/gesturekit/gesturekit"
)

// InteractionEventType is the Donburi event type for gesturekit interaction
// events.
var InteractionEventType = events.NewEventType[gesturekit.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore that publishes to world. Events are
// queued until InteractionEventType.ProcessEvents (or
// events.ProcessAllEvents) runs.
func NewDonburiStore(world donburi.World) gesturekit.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event gesturekit.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
