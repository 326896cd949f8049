package enemy

import (
	"fmt"

	"github.com/milk9111/statemachine/fsm"
)

// State identifies one of the enemy's behaviors.
type State int

const (
	Wander State = iota
	Pursuit
	Attack
	Explode
)

func (s State) String() string {
	switch s {
	case Wander:
		return "wander"
	case Pursuit:
		return "pursuit"
	case Attack:
		return "attack"
	case Explode:
		return "explode"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Enemy is an AI tank. It wanders the arena until the target comes close,
// chases it, stops to shoot when in range, and blows up when its life runs
// out. Explode has no way out; the host removes the entity.
type Enemy struct {
	*fsm.Object[*Enemy, State]

	cfg  Config
	env  Env
	life int
}

// New builds an enemy, registers its states and enters Wander.
func New(cfg Config, env Env) (*Enemy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Enemy{cfg: cfg, env: env, life: cfg.MaxLife}
	e.Object = fsm.NewObject[*Enemy, State](e)

	states := []struct {
		id    State
		state fsm.State[*Enemy]
	}{
		{Wander, &wanderState{}},
		{Pursuit, &pursuitState{}},
		{Attack, &attackState{}},
		{Explode, &explodeState{}},
	}
	for _, s := range states {
		if err := e.Register(s.id, s.state); err != nil {
			return nil, err
		}
	}
	if err := e.Init(); err != nil {
		return nil, err
	}
	if err := e.ChangeState(Wander); err != nil {
		return nil, err
	}
	return e, nil
}

// Config returns the current tuning.
func (e *Enemy) Config() Config {
	return e.cfg
}

// SetConfig swaps the tuning in place, keeping the active state and its
// timers. Life is clamped to the new maximum.
func (e *Enemy) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg
	if e.life > cfg.MaxLife {
		e.life = cfg.MaxLife
	}
	return nil
}

func (e *Enemy) Life() int {
	return e.life
}

// TakeDamage removes one life and explodes the enemy when none is left.
// Damage taken while exploding is ignored.
func (e *Enemy) TakeDamage() {
	if e.IsCurrentState(Explode) {
		return
	}
	e.life--
	if e.life <= 0 {
		e.change(Explode)
	}
}

// change transitions to a state registered in New. Failure means the state
// table is broken, which is a programming error.
func (e *Enemy) change(id State) {
	if err := e.ChangeState(id); err != nil {
		panic("enemy: " + err.Error())
	}
}

// StateName returns the name of the active state.
func (e *Enemy) StateName() string {
	id, ok := e.Current()
	if !ok {
		return ""
	}
	return id.String()
}
