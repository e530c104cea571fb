// Package ecs provides ECS adapters for touchpoint's pointer events.
//
// The primary adapter is [NewDonburiStore], which bridges touchpoint pointer
// events (down, up, tap, double tap, hold, over, out) into a [Donburi] world
// as typed events. Subscribe to [PointerEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	input.SetEntityStore(store)
//
// Pass event types to publish only those:
//
//	ecs.NewDonburiStore(world, touchpoint.EventTap, touchpoint.EventHold)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
