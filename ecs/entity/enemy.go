package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
	"github.com/milk9111/statemachine/enemy"
	"github.com/milk9111/statemachine/prefabs"
)

const kindEnemy = "enemy"

// NewEnemy spawns an AI tank at pos and wires its state machine to the
// entity's transform, turret, body and the player.
func NewEnemy(w *ecs.World, env Env, spec prefabs.EnemySpec, cfg enemy.Config, pos common.Vec3) (ecs.Entity, *enemy.Enemy, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, nil, fmt.Errorf("enemy: add enemy tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		return 0, nil, fmt.Errorf("enemy: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.TurretComponent.Kind(), &component.Turret{}); err != nil {
		return 0, nil, fmt.Errorf("enemy: add turret: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:  spec.Body.Radius,
		Mass:    spec.Body.Mass,
		Dynamic: true,
	}); err != nil {
		return 0, nil, fmt.Errorf("enemy: add physics body: %w", err)
	}

	fire := FireBullet(env.Bullet)
	tank, err := enemy.New(cfg, enemy.Env{
		Clock: env.Clock,
		Rand:  env.Rand,
		Position: func() common.Vec3 {
			if t := transformOf(w, entity); t != nil {
				return t.Position
			}
			return common.Vec3{}
		},
		Yaw: func() float64 {
			if t := transformOf(w, entity); t != nil {
				return t.Yaw
			}
			return 0
		},
		SetYaw: func(yaw float64) {
			if t := transformOf(w, entity); t != nil {
				t.Yaw = yaw
			}
		},
		TurretYaw: func() float64 {
			if tr, ok := ecs.Get(w, entity, component.TurretComponent.Kind()); ok {
				return tr.Yaw
			}
			return 0
		},
		SetTurretYaw: func(yaw float64) {
			if tr, ok := ecs.Get(w, entity, component.TurretComponent.Kind()); ok {
				tr.Yaw = yaw
			}
		},
		Translate: func(d common.Vec3) {
			if t := transformOf(w, entity); t != nil {
				t.Position = t.Position.Add(d)
			}
		},
		Target: func() (common.Vec3, bool) {
			return playerPosition(w)
		},
		Fire: func(origin common.Vec3, yaw float64) {
			fire(w, entity, origin, yaw)
		},
		AddForce: func(f common.Vec3) {
			if body, ok := ecs.Get(w, entity, component.PhysicsBodyComponent.Kind()); ok {
				body.AddForce(f)
			}
		},
		AddTorque: func(t common.Vec3) {
			if body, ok := ecs.Get(w, entity, component.PhysicsBodyComponent.Kind()); ok {
				body.AddTorque(t)
			}
		},
		// the wreck stops taking hits and is removed after the delay
		Despawn: func(after float64) {
			ecs.Remove(w, entity, component.DamageableComponent.Kind())
			if err := ecs.Add(w, entity, component.DespawnComponent.Kind(), &component.Despawn{Seconds: after}); err != nil {
				log.Printf("enemy: schedule despawn of %v: %v", entity, err)
			}
		},
	})
	if err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, nil, fmt.Errorf("enemy: build state machine: %w", err)
	}

	pushTransition(w, entity, kindEnemy, "", tank.StateName(), true)
	tank.OnTransition(func(from, to enemy.State, hadFrom bool) {
		pushTransition(w, entity, kindEnemy, from.String(), to.String(), !hadFrom)
	})

	if err := ecs.Add(w, entity, component.BrainComponent.Kind(), &component.Brain{Agent: tank, Kind: kindEnemy}); err != nil {
		return 0, nil, fmt.Errorf("enemy: add brain: %w", err)
	}

	if err := ecs.Add(w, entity, component.DamageableComponent.Kind(), &component.Damageable{TakeDamage: tank.TakeDamage}); err != nil {
		return 0, nil, fmt.Errorf("enemy: add damageable: %w", err)
	}

	return entity, tank, nil
}
