package fsm

import (
	"errors"
	"testing"
)

func TestMachineChangeStateOrdering(t *testing.T) {
	p := &tracer{}
	m := NewMachine(p)
	a := &recordingState{name: "a"}
	b := &recordingState{name: "b"}

	if m.Current() != nil {
		t.Fatalf("expected no current state before first transition")
	}

	cases := []struct {
		name string
		next State[*tracer]
		want []string
	}{
		{"first", a, []string{"a.enter"}},
		{"switch", b, []string{"a.enter", "a.exit", "b.enter"}},
		{"self", b, []string{"a.enter", "a.exit", "b.enter", "b.exit", "b.enter"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := m.ChangeState(c.next); err != nil {
				t.Fatalf("ChangeState: %v", err)
			}
			if m.Current() != c.next {
				t.Fatalf("current state not updated")
			}
			if !equalLog(p.log, c.want) {
				t.Fatalf("log = %v, want %v", p.log, c.want)
			}
		})
	}

	if b.enters != 2 || b.exits != 1 {
		t.Fatalf("self transition should re-run hooks: enters=%d exits=%d", b.enters, b.exits)
	}
}

func TestMachineChangeStateNil(t *testing.T) {
	p := &tracer{}
	m := NewMachine(p)
	a := &recordingState{name: "a"}
	_ = m.ChangeState(a)

	if err := m.ChangeState(nil); !errors.Is(err, ErrNilState) {
		t.Fatalf("expected ErrNilState, got %v", err)
	}
	if m.Current() != a {
		t.Fatalf("nil transition must not change the current state")
	}
	if a.exits != 0 {
		t.Fatalf("nil transition must not exit the current state")
	}
}

func TestMachineTick(t *testing.T) {
	p := &tracer{}
	m := NewMachine(p)

	m.Tick()
	if len(p.log) != 0 {
		t.Fatalf("tick without a state should do nothing, got %v", p.log)
	}

	a := &recordingState{name: "a"}
	_ = m.ChangeState(a)
	m.Tick()
	m.Tick()
	if a.execs != 2 {
		t.Fatalf("expected 2 executes, got %d", a.execs)
	}

	var nilMachine *Machine[*tracer]
	nilMachine.Tick()
	if nilMachine.Current() != nil {
		t.Fatalf("nil machine should report no state")
	}
}

func TestMachineTransitionDuringExecute(t *testing.T) {
	p := &tracer{}
	m := NewMachine(p)
	b := &recordingState{name: "b"}
	a := &Funcs[*tracer]{
		OnExecute: func(p *tracer) {
			p.record("a.execute")
			_ = m.ChangeState(b)
		},
		OnExit: func(p *tracer) { p.record("a.exit") },
	}

	_ = m.ChangeState(a)
	m.Tick()
	m.Tick()

	want := []string{"a.execute", "a.exit", "b.enter", "b.execute"}
	if !equalLog(p.log, want) {
		t.Fatalf("log = %v, want %v", p.log, want)
	}
}

func TestHooksAndFuncsDefaults(t *testing.T) {
	p := &tracer{}
	m := NewMachine(p)

	type quiet struct{ Hooks[*tracer] }
	if err := m.ChangeState(quiet{}); err != nil {
		t.Fatalf("ChangeState: %v", err)
	}
	m.Tick()
	if err := m.ChangeState(&Funcs[*tracer]{}); err != nil {
		t.Fatalf("ChangeState: %v", err)
	}
	m.Tick()
	if len(p.log) != 0 {
		t.Fatalf("no-op hooks should not record anything, got %v", p.log)
	}
}
