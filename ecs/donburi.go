package ecs

import (
	"github.com/phanxgames/touchpoint"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PointerEventType carries every touchpoint.PointerEvent the store accepts:
// down, up, tap, double tap and hold for any pointer, plus over and out for
// targets that carry an entity id. Events queue in the world until
// ProcessEvents or events.ProcessAllEvents runs.
var PointerEventType = events.NewEventType[touchpoint.PointerEvent]()

type donburiStore struct {
	world donburi.World
	// accept is nil when every event type is published.
	accept map[touchpoint.EventType]bool
}

// NewDonburiStore creates an EntityStore that publishes pointer events into
// world. When types are given, only events of those types are published.
func NewDonburiStore(world donburi.World, types ...touchpoint.EventType) touchpoint.EntityStore {
	s := &donburiStore{world: world}
	if len(types) > 0 {
		s.accept = make(map[touchpoint.EventType]bool, len(types))
		for _, t := range types {
			s.accept[t] = true
		}
	}
	return s
}

func (s *donburiStore) EmitEvent(event touchpoint.PointerEvent) {
	if s.accept != nil && !s.accept[event.Type] {
		return
	}
	PointerEventType.Publish(s.world, event)
}
