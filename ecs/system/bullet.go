package system

import (
	"log"

	"github.com/milk9111/statemachine/clock"
	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
)

// BulletSystem flies bullets forward and resolves the hits recorded by the
// last physics step: the target is pushed along the bullet's heading,
// damaged if it can take damage, and the bullet is removed.
type BulletSystem struct {
	clock clock.Clock
	Quiet bool
}

func NewBulletSystem(c clock.Clock) *BulletSystem {
	return &BulletSystem{clock: c}
}

func (s *BulletSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.BulletComponent.Kind(), component.BulletHitComponent.Kind()) {
		b, _ := ecs.Get(w, e, component.BulletComponent.Kind())
		hit, _ := ecs.Get(w, e, component.BulletHitComponent.Kind())
		s.resolveHit(w, e, b, ecs.Entity(hit.Target))
	}

	dt := 0.0
	if s.clock != nil {
		dt = s.clock.Delta()
	}
	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Bullet, t *component.Transform) {
		t.Position = t.Position.Add(b.Direction.Scale(b.Speed * dt))
	})
}

func (s *BulletSystem) resolveHit(w *ecs.World, bullet ecs.Entity, b *component.Bullet, target ecs.Entity) {
	if w.IsAlive(target) {
		if body, ok := ecs.Get(w, target, component.PhysicsBodyComponent.Kind()); ok {
			body.AddForce(b.Direction.Scale(b.Force))
		}
		if d, ok := ecs.Get(w, target, component.DamageableComponent.Kind()); ok && d.TakeDamage != nil {
			for i := 0; i < max(b.Damage, 1); i++ {
				d.TakeDamage()
			}
		}
		if !s.Quiet {
			log.Printf("bullet: %v hit %v", bullet, target)
		}
	}
	ecs.DestroyEntity(w, bullet)
}
