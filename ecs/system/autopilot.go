package system

import (
	"math"

	"github.com/milk9111/statemachine/clock"
	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
)

// AutopilotSystem drives Input components without a human: the player
// steers toward a point on a ring whose radius breathes between Near and
// Far, so enemies cross their pursuit and attack bands in both directions.
type AutopilotSystem struct {
	clock clock.Clock

	Near   float64
	Far    float64
	Period float64
}

func NewAutopilotSystem(c clock.Clock, near, far float64) *AutopilotSystem {
	return &AutopilotSystem{clock: c, Near: near, Far: far, Period: 20}
}

// Waypoint returns where the autopilot heads at time now.
func (s *AutopilotSystem) Waypoint(now float64) common.Vec3 {
	period := s.Period
	if period <= 0 {
		period = 20
	}
	phase := 2 * math.Pi * now / period
	radius := common.Lerp(s.Near, s.Far, 0.5+0.5*math.Sin(phase))
	return common.HeadingVector(phase * 0.5).Scale(radius)
}

func (s *AutopilotSystem) Update(w *ecs.World) {
	if w == nil || s.clock == nil {
		return
	}

	goal := s.Waypoint(s.clock.Now())

	ecs.ForEach2(w, component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, input *component.Input, t *component.Transform) {
		want := common.Yaw(goal.Sub(t.Position))
		diff := common.WrapAngle(want - t.Yaw)
		input.Turn = math.Max(-1, math.Min(1, diff*4))
		input.Move = 0
		if math.Abs(diff) < math.Pi/2 {
			input.Move = 1
		}
		input.Fire = false
		if enemy, ok := w.First(component.EnemyTagComponent.Kind()); ok {
			if et, ok := ecs.Get(w, enemy, component.TransformComponent.Kind()); ok {
				input.Fire = common.SqrDistance(t.Position, et.Position) < s.Far*s.Far
			}
		}
	})
}
