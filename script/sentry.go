package script

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/statemachine/clock"
	"github.com/milk9111/statemachine/fsm"
)

// maxChainedTransitions bounds how many transitions requested from enter
// hooks are followed within one tick.
const maxChainedTransitions = 8

// Host is what a sentry script can reach in the world. Nil callbacks are
// skipped.
type Host struct {
	Clock clock.Clock
	// TargetSqrDistance reports the squared distance to the target, or
	// false when there is no target.
	TargetSqrDistance func() (float64, bool)
	TurnToTarget      func(t float64)
	Fire              func()
	Log               func(msg string)
}

// Sentry is a stationary turret whose states are defined by a script.
type Sentry struct {
	*fsm.Object[*Sentry, string]

	program  *Program
	compiled *tengo.Compiled
	engine   *tengo.ImmutableMap
	data     map[string]*tengo.Map
	host     Host

	pending    string
	hasPending bool
	lastErr    error
}

// NewSentry registers one state per declared name and enters the initial
// state.
func NewSentry(p *Program, host Host) (*Sentry, error) {
	s := &Sentry{
		program:  p,
		compiled: p.instance(),
		data:     make(map[string]*tengo.Map),
		host:     host,
	}
	s.Object = fsm.NewObject[*Sentry, string](s)
	s.engine = s.buildEngine()

	for _, name := range p.states {
		s.data[name] = &tengo.Map{Value: map[string]tengo.Object{}}
		if err := s.Register(name, &scriptState{name: name}); err != nil {
			return nil, err
		}
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	if err := s.ChangeState(p.initial); err != nil {
		return nil, err
	}
	s.applyPending()
	return s, nil
}

// Update runs the current state's update hook, then any transition it
// requested.
func (s *Sentry) Update() {
	s.Object.Update()
	s.applyPending()
}

// StateName returns the current state, or "" before the first transition.
func (s *Sentry) StateName() string {
	id, _ := s.Current()
	return id
}

// Program returns the script the sentry runs.
func (s *Sentry) Program() *Program {
	return s.program
}

// Err returns the last script error, if any.
func (s *Sentry) Err() error {
	return s.lastErr
}

func (s *Sentry) applyPending() {
	for i := 0; i < maxChainedTransitions && s.hasPending; i++ {
		next := s.pending
		s.pending, s.hasPending = "", false
		if err := s.ChangeState(next); err != nil {
			s.lastErr = err
			log.Printf("ai: sentry %s: %v", s.program.name, err)
			return
		}
	}
	if s.hasPending {
		log.Printf("ai: sentry %s: dropped transition to %q after %d chained transitions", s.program.name, s.pending, maxChainedTransitions)
		s.pending, s.hasPending = "", false
	}
}

func (s *Sentry) run(phase, state string) {
	if err := s.runPhase(phase, state); err != nil {
		s.lastErr = err
		log.Printf("ai: sentry %s: script %s error in %s: %v", s.program.name, phase, state, err)
	}
}

func (s *Sentry) runPhase(phase, state string) error {
	c := s.compiled
	if err := c.Set("__phase", phase); err != nil {
		return err
	}
	if err := c.Set("__engine", s.engine); err != nil {
		return err
	}
	if err := c.Set("__data", s.data[state]); err != nil {
		return err
	}
	if err := c.Set("__current_state", state); err != nil {
		return err
	}
	return c.Run()
}

type scriptState struct {
	name string
}

func (st *scriptState) Enter(s *Sentry) { s.run("enter", st.name) }
func (st *scriptState) Execute(s *Sentry) { s.run("update", st.name) }
func (st *scriptState) Exit(s *Sentry) { s.run("exit", st.name) }

func (s *Sentry) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["transition"] = &tengo.UserFunction{Name: "transition", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		s.pending, s.hasPending = name, true
		return tengo.TrueValue, nil
	}}

	values["now"] = &tengo.UserFunction{Name: "now", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if s.host.Clock == nil {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: s.host.Clock.Now()}, nil
	}}

	values["target_sqr_distance"] = &tengo.UserFunction{Name: "target_sqr_distance", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if s.host.TargetSqrDistance == nil {
			return tengo.UndefinedValue, nil
		}
		d, ok := s.host.TargetSqrDistance()
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Float{Value: d}, nil
	}}

	values["turn_to_target"] = &tengo.UserFunction{Name: "turn_to_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if s.host.TurnToTarget == nil {
			return tengo.FalseValue, nil
		}
		t := 1.0
		if len(args) > 0 {
			if v, ok := tengo.ToFloat64(args[0]); ok {
				t = v
			}
		}
		s.host.TurnToTarget(t)
		return tengo.TrueValue, nil
	}}

	values["fire"] = &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if s.host.Fire == nil {
			return tengo.FalseValue, nil
		}
		s.host.Fire()
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		msg := strings.Join(parts, " ")
		if s.host.Log != nil {
			s.host.Log(msg)
		} else {
			log.Println("ai:", msg)
		}
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func (s *Sentry) String() string {
	return fmt.Sprintf("sentry(%s, %s)", s.program.name, s.StateName())
}
