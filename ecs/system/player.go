package system

import (
	"github.com/milk9111/statemachine/clock"
	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
)

// FireFunc spawns a bullet for shooter.
type FireFunc func(w *ecs.World, shooter ecs.Entity, origin common.Vec3, yaw float64)

// PlayerSystem applies Input to the player tank: turn, drive, and shoot
// when the cooldown allows.
type PlayerSystem struct {
	clock        clock.Clock
	fire         FireFunc
	muzzleOffset float64
}

func NewPlayerSystem(c clock.Clock, fire FireFunc) *PlayerSystem {
	return &PlayerSystem{clock: c, fire: fire, muzzleOffset: 3}
}

func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil || s.clock == nil {
		return
	}
	dt := s.clock.Delta()
	now := s.clock.Now()

	for _, e := range w.Query(component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind()) {
		p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		t.Yaw = common.WrapAngle(t.Yaw + input.Turn*p.TurnSpeed*dt)
		t.Position = t.Position.Add(common.HeadingVector(t.Yaw).Scale(input.Move * p.MoveSpeed * dt))

		if !input.Fire || s.fire == nil || now < p.LastShot+p.FireInterval {
			continue
		}
		p.LastShot = now
		muzzle := t.Position.Add(common.HeadingVector(t.Yaw).Scale(s.muzzleOffset))
		s.fire(w, e, muzzle, t.Yaw)
	}
}
