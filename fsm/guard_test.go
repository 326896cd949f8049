package fsm

import (
	"errors"
	"testing"
)

func TestGuardBandClassify(t *testing.T) {
	g := GuardBand{Threshold: 2500, Margin: 50}

	cases := []struct {
		v               float64
		inward, outward bool
	}{
		{2449, true, false},
		{2450, false, false},
		{2500, false, false},
		{2550, false, false},
		{2551, false, true},
	}
	for _, c := range cases {
		if got := g.Inward(c.v); got != c.inward {
			t.Fatalf("Inward(%v) = %v", c.v, got)
		}
		if got := g.Outward(c.v); got != c.outward {
			t.Fatalf("Outward(%v) = %v", c.v, got)
		}
		if got := g.InDeadZone(c.v); got != (!c.inward && !c.outward) {
			t.Fatalf("InDeadZone(%v) = %v", c.v, got)
		}
	}
}

func TestGuardBandValidate(t *testing.T) {
	if err := (GuardBand{Threshold: 1, Margin: 0}).Validate(); !errors.Is(err, ErrInvalidMargin) {
		t.Fatalf("expected ErrInvalidMargin, got %v", err)
	}
	if err := (GuardBand{Threshold: 1, Margin: -1}).Validate(); !errors.Is(err, ErrInvalidMargin) {
		t.Fatalf("expected ErrInvalidMargin, got %v", err)
	}
	if err := (GuardBand{Threshold: 1, Margin: 0.5}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type bandOwner struct {
	obj    *Object[*bandOwner, string]
	band   GuardBand
	metric float64
}

// A two-state object driven by a metric through a guard band: no flicker
// while the metric stays inside the dead zone.
func TestGuardBandDrivesTransitions(t *testing.T) {
	owner := &bandOwner{band: GuardBand{Threshold: 2500, Margin: 50}}
	owner.obj = NewObject[*bandOwner, string](owner)

	var transitions []string
	_ = owner.obj.Register("far", &Funcs[*bandOwner]{
		OnExecute: func(o *bandOwner) {
			if o.band.Inward(o.metric) {
				_ = o.obj.ChangeState("near")
			}
		},
	})
	_ = owner.obj.Register("near", &Funcs[*bandOwner]{
		OnExecute: func(o *bandOwner) {
			if o.band.Outward(o.metric) {
				_ = o.obj.ChangeState("far")
			}
		},
	})
	_ = owner.obj.Init()
	_ = owner.obj.ChangeState("far")
	owner.obj.OnTransition(func(from, to string, _ bool) {
		transitions = append(transitions, from+"->"+to)
	})

	steps := []struct {
		metric float64
		want   string
	}{
		{3000, "far"},
		{2400, "near"},
		{2500, "near"},
		{2600, "far"},
		{2440, "near"},
	}
	for _, s := range steps {
		owner.metric = s.metric
		owner.obj.Update()
		if !owner.obj.IsCurrentState(s.want) {
			cur, _ := owner.obj.Current()
			t.Fatalf("metric %v: state %q, want %q", s.metric, cur, s.want)
		}
	}

	want := []string{"far->near", "near->far", "far->near"}
	if !equalLog(transitions, want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
}
