package script

import (
	"errors"
	"testing"

	"github.com/milk9111/statemachine/clock"
	"github.com/milk9111/statemachine/fsm"
)

const lightScript = `
states := ["off", "on", "broken"]
initial_state := "off"

onEnter := func(engine, data, state) {
	engine.log("enter", state)
	if state == "on" {
		data.ticks = 0
	}
}

update := func(engine, data, state) {
	d := engine.target_sqr_distance()
	if state == "off" && !is_undefined(d) && d < 100 {
		engine.transition("on")
	} else if state == "on" {
		data.ticks += 1
		if data.ticks >= 2 {
			engine.transition("missing")
		}
	}
}

onExit := func(engine, data, state) {
	engine.log("exit", state)
}
`

type fakeHost struct {
	dist    float64
	hasDist bool
	logs    []string
	shots   int
	turns   []float64
}

func (f *fakeHost) host(c clock.Clock) Host {
	return Host{
		Clock:        c,
		TurnToTarget: func(t float64) { f.turns = append(f.turns, t) },
		Fire:         func() { f.shots++ },
		Log:          func(msg string) { f.logs = append(f.logs, msg) },
		TargetSqrDistance: func() (float64, bool) {
			return f.dist, f.hasDist
		},
	}
}

func TestCompileResolvesStates(t *testing.T) {
	p, err := Compile("light", []byte(lightScript))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	got := p.States()
	want := []string{"off", "on", "broken"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if p.Initial() != "off" {
		t.Fatalf("expected initial off, got %q", p.Initial())
	}
}

func TestCompileErrors(t *testing.T) {
	hooks := `
onEnter := func(engine, data, state) {}
update := func(engine, data, state) {}
onExit := func(engine, data, state) {}
`
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"no_states", hooks, errNoStates},
		{"empty_states", `states := []` + hooks, errNoStates},
		{"duplicate", `states := ["a", "a"]` + hooks, errDuplicateDef},
		{"bad_initial", `states := ["a"]
initial_state := "b"` + hooks, errBadInitial},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Compile(c.name, []byte(c.src))
			if !errors.Is(err, c.err) {
				t.Fatalf("expected %v, got %v", c.err, err)
			}
		})
	}

	t.Run("syntax", func(t *testing.T) {
		if _, err := Compile("syntax", []byte("states := [")); err == nil {
			t.Fatalf("expected compile error")
		}
	})
}

func TestSentryRunsScriptedStates(t *testing.T) {
	p, err := Compile("light", []byte(lightScript))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	c := clock.NewFixed()
	f := &fakeHost{}
	s, err := NewSentry(p, f.host(c))
	if err != nil {
		t.Fatalf("new sentry: %v", err)
	}
	if s.Phase() != fsm.PhaseReady {
		t.Fatalf("expected ready, got %v", s.Phase())
	}
	if s.StateName() != "off" || !s.IsCurrentState("off") {
		t.Fatalf("expected off, got %q", s.StateName())
	}

	s.Update()
	if s.StateName() != "off" {
		t.Fatalf("no target: expected off, got %q", s.StateName())
	}

	f.dist, f.hasDist = 50, true
	s.Update()
	if s.StateName() != "on" {
		t.Fatalf("expected on, got %q", s.StateName())
	}

	s.Update()
	s.Update()
	// "missing" is not registered: the sentry stays put and records the error
	if s.StateName() != "on" {
		t.Fatalf("expected on after unknown transition, got %q", s.StateName())
	}
	if !errors.Is(s.Err(), fsm.ErrUnknownState) {
		t.Fatalf("expected ErrUnknownState, got %v", s.Err())
	}

	want := []string{"enter off", "exit off", "enter on"}
	if len(f.logs) != len(want) {
		t.Fatalf("expected logs %v, got %v", want, f.logs)
	}
	for i := range want {
		if f.logs[i] != want[i] {
			t.Fatalf("expected logs %v, got %v", want, f.logs)
		}
	}
}

func TestSentriesKeepSeparateData(t *testing.T) {
	p, err := Compile("light", []byte(lightScript))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	c := clock.NewFixed()
	near := &fakeHost{dist: 10, hasDist: true}
	far := &fakeHost{}

	a, err := NewSentry(p, near.host(c))
	if err != nil {
		t.Fatalf("new sentry: %v", err)
	}
	b, err := NewSentry(p, far.host(c))
	if err != nil {
		t.Fatalf("new sentry: %v", err)
	}

	a.Update()
	b.Update()
	if a.StateName() != "on" || b.StateName() != "off" {
		t.Fatalf("expected on/off, got %q/%q", a.StateName(), b.StateName())
	}
}

const chainScript = `
states := ["a", "b", "c"]

onEnter := func(engine, data, state) {
	if state == "a" {
		engine.transition("b")
	} else if state == "b" {
		engine.transition("c")
	}
}

update := func(engine, data, state) {}
onExit := func(engine, data, state) {}
`

func TestEnterTransitionsAreFollowed(t *testing.T) {
	p, err := Compile("chain", []byte(chainScript))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	s, err := NewSentry(p, Host{})
	if err != nil {
		t.Fatalf("new sentry: %v", err)
	}
	if s.StateName() != "c" {
		t.Fatalf("expected c, got %q", s.StateName())
	}
}

const loopScript = `
states := ["ping", "pong"]

onEnter := func(engine, data, state) {
	if state == "ping" {
		engine.transition("pong")
	} else {
		engine.transition("ping")
	}
}

update := func(engine, data, state) {}
onExit := func(engine, data, state) {}
`

func TestEnterLoopIsBounded(t *testing.T) {
	p, err := Compile("loop", []byte(loopScript))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	s, err := NewSentry(p, Host{})
	if err != nil {
		t.Fatalf("new sentry: %v", err)
	}
	if s.hasPending {
		t.Fatalf("pending transition should be dropped")
	}
}

func TestShippedSentryScript(t *testing.T) {
	p, err := Load("sentry.tengo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c := clock.NewFixed()
	f := &fakeHost{dist: 400, hasDist: true}
	s, err := NewSentry(p, f.host(c))
	if err != nil {
		t.Fatalf("new sentry: %v", err)
	}

	s.Update()
	if s.StateName() != "track" {
		t.Fatalf("expected track, got %q", s.StateName())
	}

	// three shots half a second apart, then cooldown
	for i := 0; i < 40 && s.StateName() == "track"; i++ {
		c.Advance(0.1)
		s.Update()
	}
	if f.shots != 3 {
		t.Fatalf("expected 3 shots, got %d", f.shots)
	}
	if s.StateName() != "cooldown" {
		t.Fatalf("expected cooldown, got %q", s.StateName())
	}
	if len(f.turns) == 0 {
		t.Fatalf("expected the sentry to turn toward the target")
	}

	for i := 0; i < 40 && s.StateName() == "cooldown"; i++ {
		c.Advance(0.1)
		s.Update()
	}
	if s.StateName() != "idle" {
		t.Fatalf("expected idle after cooldown, got %q", s.StateName())
	}
	if s.Err() != nil {
		t.Fatalf("unexpected script error: %v", s.Err())
	}
}
