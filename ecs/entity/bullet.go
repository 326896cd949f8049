package entity

import (
	"fmt"

	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
	"github.com/milk9111/statemachine/prefabs"
)

// NewBullet spawns a bullet at origin flying along yaw. It removes itself
// after spec.Lifetime seconds unless it hits something first.
func NewBullet(w *ecs.World, spec prefabs.BulletSpec, owner ecs.Entity, origin common.Vec3, yaw float64) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.BulletTagComponent.Kind(), &component.BulletTag{}); err != nil {
		return 0, fmt.Errorf("bullet: add bullet tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.BulletComponent.Kind(), &component.Bullet{
		Owner:     uint64(owner),
		Direction: common.HeadingVector(yaw),
		Speed:     spec.Speed,
		Force:     spec.Force,
		Damage:    spec.Damage,
	}); err != nil {
		return 0, fmt.Errorf("bullet: add bullet: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: origin, Yaw: yaw}); err != nil {
		return 0, fmt.Errorf("bullet: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius: spec.Radius,
		Mass:   0.1,
		Sensor: true,
	}); err != nil {
		return 0, fmt.Errorf("bullet: add physics body: %w", err)
	}

	if err := ecs.Add(w, entity, component.DespawnComponent.Kind(), &component.Despawn{Seconds: spec.Lifetime}); err != nil {
		return 0, fmt.Errorf("bullet: add despawn: %w", err)
	}

	return entity, nil
}

// FireBullet adapts NewBullet to a fire callback; spawn failures are
// programming errors.
func FireBullet(spec prefabs.BulletSpec) func(w *ecs.World, owner ecs.Entity, origin common.Vec3, yaw float64) {
	return func(w *ecs.World, owner ecs.Entity, origin common.Vec3, yaw float64) {
		if _, err := NewBullet(w, spec, owner, origin, yaw); err != nil {
			panic(err)
		}
	}
}
