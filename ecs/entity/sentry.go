package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
	"github.com/milk9111/statemachine/prefabs"
	"github.com/milk9111/statemachine/script"
)

const kindSentry = "sentry"

// NewSentry spawns a scripted turret at pos.
func NewSentry(w *ecs.World, env Env, spec prefabs.SentrySpec, program *script.Program, pos common.Vec3, quiet bool) (ecs.Entity, *script.Sentry, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.SentryTagComponent.Kind(), &component.SentryTag{}); err != nil {
		return 0, nil, fmt.Errorf("sentry: add sentry tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		return 0, nil, fmt.Errorf("sentry: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.TurretComponent.Kind(), &component.Turret{}); err != nil {
		return 0, nil, fmt.Errorf("sentry: add turret: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:  spec.Body.Radius,
		Mass:    spec.Body.Mass,
		Dynamic: true,
	}); err != nil {
		return 0, nil, fmt.Errorf("sentry: add physics body: %w", err)
	}

	fire := FireBullet(env.Bullet)
	aim := func() (origin common.Vec3, yaw float64, ok bool) {
		t := transformOf(w, entity)
		tr, okT := ecs.Get(w, entity, component.TurretComponent.Kind())
		if t == nil || !okT {
			return common.Vec3{}, 0, false
		}
		return t.Position, tr.Yaw, true
	}

	sentry, err := script.NewSentry(program, script.Host{
		Clock: env.Clock,
		TargetSqrDistance: func() (float64, bool) {
			target, ok := playerPosition(w)
			at, _, okAim := aim()
			if !ok || !okAim {
				return 0, false
			}
			return common.SqrDistance(at, target), true
		},
		TurnToTarget: func(f float64) {
			target, ok := playerPosition(w)
			at, yaw, okAim := aim()
			if !ok || !okAim {
				return
			}
			tr, _ := ecs.Get(w, entity, component.TurretComponent.Kind())
			tr.Yaw = common.SlerpAngle(yaw, common.Yaw(target.Sub(at)), f)
		},
		Fire: func() {
			at, yaw, ok := aim()
			if !ok {
				return
			}
			fire(w, entity, at.Add(common.HeadingVector(yaw).Scale(spec.MuzzleOffset)), yaw)
		},
		Log: func(msg string) {
			if !quiet {
				log.Printf("ai: sentry %v: %s", entity, msg)
			}
		},
	})
	if err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, nil, fmt.Errorf("sentry: build state machine: %w", err)
	}

	pushTransition(w, entity, kindSentry, "", sentry.StateName(), true)
	sentry.OnTransition(func(from, to string, hadFrom bool) {
		pushTransition(w, entity, kindSentry, from, to, !hadFrom)
	})

	if err := ecs.Add(w, entity, component.BrainComponent.Kind(), &component.Brain{Agent: sentry, Kind: kindSentry}); err != nil {
		return 0, nil, fmt.Errorf("sentry: add brain: %w", err)
	}

	return entity, sentry, nil
}
