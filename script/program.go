package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/statemachine/prefabs"
)

var (
	errNoStates     = errors.New("script: no states declared")
	errBadInitial   = errors.New("script: initial_state is not a declared state")
	errEmptyName    = errors.New("script: empty state name")
	errDuplicateDef = errors.New("script: state declared twice")
)

const lifecycleDispatchScript = `
if __phase == "enter" {
	onEnter(__engine, __data, __current_state)
} else if __phase == "update" {
	update(__engine, __data, __current_state)
} else if __phase == "exit" {
	onExit(__engine, __data, __current_state)
}
`

// Program is a compiled state script. The script declares `states`, an
// optional `initial_state` (defaults to the first state), and the
// functions onEnter, update and onExit, each called as
// fn(engine, data, state).
type Program struct {
	name     string
	compiled *tengo.Compiled
	states   []string
	initial  string
}

// Load compiles a script from the prefab scripts directory.
func Load(name string) (*Program, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src)
}

// Compile compiles src and resolves its declared states.
func Compile(name string, src []byte) (*Program, error) {
	full := string(src) + "\n" + lifecycleDispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__phase", "")
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__data", map[string]any{})
	_ = s.Add("__current_state", "")
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	p := &Program{name: name, compiled: compiled}

	// run once with no phase so the globals are evaluated
	if err := compiled.Set("__phase", "noop"); err != nil {
		return nil, err
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", name, err)
	}

	if !compiled.IsDefined("states") {
		return nil, fmt.Errorf("%s: %w", name, errNoStates)
	}
	seen := map[string]bool{}
	for _, v := range compiled.Get("states").Array() {
		id := strings.TrimSpace(fmt.Sprint(v))
		if id == "" {
			return nil, fmt.Errorf("%s: %w", name, errEmptyName)
		}
		if seen[id] {
			return nil, fmt.Errorf("%s: %q: %w", name, id, errDuplicateDef)
		}
		seen[id] = true
		p.states = append(p.states, id)
	}
	if len(p.states) == 0 {
		return nil, fmt.Errorf("%s: %w", name, errNoStates)
	}

	p.initial = p.states[0]
	if compiled.IsDefined("initial_state") {
		if v := strings.TrimSpace(compiled.Get("initial_state").String()); v != "" {
			if !seen[v] {
				return nil, fmt.Errorf("%s: %q: %w", name, v, errBadInitial)
			}
			p.initial = v
		}
	}
	return p, nil
}

func (p *Program) Name() string {
	return p.name
}

// States returns the declared state names in declaration order.
func (p *Program) States() []string {
	out := make([]string, len(p.states))
	copy(out, p.states)
	return out
}

func (p *Program) Initial() string {
	return p.initial
}

// instance returns a private copy of the compiled script so each sentry
// keeps its own globals.
func (p *Program) instance() *tengo.Compiled {
	return p.compiled.Clone()
}
