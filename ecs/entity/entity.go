package entity

import (
	"github.com/milk9111/statemachine/clock"
	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
	"github.com/milk9111/statemachine/prefabs"
	"github.com/milk9111/statemachine/random"
)

// Env carries the shared services builders wire into agents.
type Env struct {
	Clock  clock.Clock
	Rand   random.Sampler
	Bullet prefabs.BulletSpec
}

func transformOf(w *ecs.World, e ecs.Entity) *component.Transform {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil
	}
	return t
}

// playerPosition finds the player, if there is one.
func playerPosition(w *ecs.World) (common.Vec3, bool) {
	p, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return common.Vec3{}, false
	}
	t := transformOf(w, p)
	if t == nil {
		return common.Vec3{}, false
	}
	return t.Position, true
}

// pushTransition reports a state change on the world event queue.
func pushTransition(w *ecs.World, e ecs.Entity, kind, from, to string, first bool) {
	w.Events().Push(ecs.Event{
		Type: ecs.EventTransition,
		Data: ecs.TransitionEvent{Entity: e, Kind: kind, From: from, To: to, First: first},
	})
}
