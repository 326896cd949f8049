package system

import (
	"github.com/milk9111/statemachine/clock"
	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
)

// DespawnSystem counts down Despawn timers and destroys entities whose
// timer has run out. A zero timer destroys the entity on the next run.
type DespawnSystem struct {
	clock clock.Clock
}

func NewDespawnSystem(c clock.Clock) *DespawnSystem {
	return &DespawnSystem{clock: c}
}

func (s *DespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := 0.0
	if s.clock != nil {
		dt = s.clock.Delta()
	}

	ecs.ForEach(w, component.DespawnComponent.Kind(), func(e ecs.Entity, d *component.Despawn) {
		if d == nil {
			return
		}
		d.Seconds -= dt
		if d.Seconds > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
	})
}
