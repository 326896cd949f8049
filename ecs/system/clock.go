package system

import (
	"github.com/milk9111/statemachine/clock"
	"github.com/milk9111/statemachine/ecs"
)

// ClockSystem advances the shared clock once per tick. It runs first so
// every later system sees the same Now and Delta.
type ClockSystem struct {
	clock *clock.Fixed
	step  func() float64
}

func NewClockSystem(c *clock.Fixed, step func() float64) *ClockSystem {
	if step == nil {
		step = clock.TPSDelta
	}
	return &ClockSystem{clock: c, step: step}
}

func (s *ClockSystem) Update(w *ecs.World) {
	if s == nil || s.clock == nil {
		return
	}
	s.clock.Advance(s.step())
}
