package entity

import (
	"fmt"

	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
	"github.com/milk9111/statemachine/prefabs"
)

func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec, pos common.Vec3) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:    spec.MoveSpeed,
		TurnSpeed:    spec.TurnSpeed,
		FireInterval: spec.FireInterval,
		LastShot:     -spec.FireInterval,
	}); err != nil {
		return 0, fmt.Errorf("player: add player component: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:  spec.Body.Radius,
		Mass:    spec.Body.Mass,
		Dynamic: true,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}

	return entity, nil
}
