package system

import (
	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
)

// AISystem ticks every agent's state machine once per frame.
type AISystem struct{}

func NewAISystem() *AISystem {
	return &AISystem{}
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.BrainComponent.Kind(), func(e ecs.Entity, brain *component.Brain) {
		if brain == nil || brain.Agent == nil {
			return
		}
		brain.Agent.Update()
	})
}
