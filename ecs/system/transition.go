package system

import (
	"log"

	"github.com/milk9111/statemachine/ecs"
)

// TransitionLogSystem drains state transition events, logs them and keeps
// per-state entry counts for the HUD.
type TransitionLogSystem struct {
	Quiet bool

	counts map[string]int
	last   []ecs.TransitionEvent
}

const transitionHistory = 6

func NewTransitionLogSystem(quiet bool) *TransitionLogSystem {
	return &TransitionLogSystem{Quiet: quiet, counts: make(map[string]int)}
}

func (s *TransitionLogSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, evt := range w.Events().Drain() {
		if evt.Type != ecs.EventTransition {
			continue
		}
		tr, ok := evt.Data.(ecs.TransitionEvent)
		if !ok {
			continue
		}
		s.counts[tr.Kind+"."+tr.To]++
		s.last = append(s.last, tr)
		if len(s.last) > transitionHistory {
			s.last = s.last[len(s.last)-transitionHistory:]
		}
		if s.Quiet {
			continue
		}
		if tr.First {
			log.Printf("ai: %s %v enter %s", tr.Kind, tr.Entity, tr.To)
			continue
		}
		log.Printf("ai: %s %v %s -> %s", tr.Kind, tr.Entity, tr.From, tr.To)
	}
}

// Count returns how many times kind entered state.
func (s *TransitionLogSystem) Count(kind, state string) int {
	if s == nil {
		return 0
	}
	return s.counts[kind+"."+state]
}

// Recent returns the latest transitions, oldest first.
func (s *TransitionLogSystem) Recent() []ecs.TransitionEvent {
	if s == nil {
		return nil
	}
	out := make([]ecs.TransitionEvent, len(s.last))
	copy(out, s.last)
	return out
}
