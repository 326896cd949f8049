package ecs

import (
	"testing"

	"github.com/milk9111/statemachine/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
			}
		})
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, k, intPtr(7)); err != nil {
		t.Fatalf("add: %v", err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v and %v", old, fresh)
	}
	if fresh == old {
		t.Fatalf("reused handle must differ by generation")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle reported alive")
	}
	if _, ok := Get(w, fresh, k); ok {
		t.Fatalf("fresh entity inherited a component")
	}
	if err := Add(w, old, k, intPtr(1)); err == nil {
		t.Fatalf("expected error adding to stale handle")
	}
}

func TestComponentsAndQueries(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()
	kc := component.NewComponentKind[float64]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e2, ka, intPtr(2))
	_ = Add(w, e3, ka, intPtr(3))
	_ = Add(w, e2, kb, stringPtr("two"))
	_ = Add(w, e3, kb, stringPtr("three"))
	_ = Add(w, e3, kc, float64Ptr(3.5))

	tests := []struct {
		name  string
		kinds []component.Kind
		want  []Entity
	}{
		{"single", []component.Kind{ka}, []Entity{e1, e2, e3}},
		{"pair", []component.Kind{ka, kb}, []Entity{e2, e3}},
		{"triple", []component.Kind{ka, kb, kc}, []Entity{e3}},
		{"unknown", []component.Kind{component.NewComponentKind[bool]()}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := toSet(w.Query(tc.kinds...))
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d entities, got %d", len(tc.want), len(got))
			}
			for _, e := range tc.want {
				if _, ok := got[e]; !ok {
					t.Fatalf("missing entity %v", e)
				}
			}
		})
	}

	t.Run("get_mutates_in_place", func(t *testing.T) {
		v, ok := Get(w, e1, ka)
		if !ok {
			t.Fatalf("expected component on e1")
		}
		*v = 10
		v2, _ := Get(w, e1, ka)
		if *v2 != 10 {
			t.Fatalf("expected 10, got %d", *v2)
		}
	})

	t.Run("remove", func(t *testing.T) {
		if !Remove(w, e2, kb) {
			t.Fatalf("expected remove to succeed")
		}
		if Has(w, e2, kb) {
			t.Fatalf("component still present")
		}
		if !Has(w, e3, kb) {
			t.Fatalf("swap-remove lost e3's value")
		}
		if s, _ := Get(w, e3, kb); *s != "three" {
			t.Fatalf("expected three, got %q", *s)
		}
	})

	t.Run("destroy_drops_components", func(t *testing.T) {
		DestroyEntity(w, e3)
		if got := w.Query(kc); len(got) != 0 {
			t.Fatalf("expected no kc entities, got %d", len(got))
		}
	})
}

func TestAddRejectsBadInput(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	k := component.NewComponentKind[int]()

	if err := Add[int](w, e, k, nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	if err := Add(w, Entity(0), k, intPtr(1)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestForEachToleratesDestroy(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	ents := make([]Entity, 0, 4)
	for i := 0; i < 4; i++ {
		e := CreateEntity(w)
		_ = Add(w, e, k, intPtr(i))
		ents = append(ents, e)
	}

	visited := 0
	ForEach(w, k, func(e Entity, v *int) {
		visited++
		if *v == 0 {
			// destroy a later entity mid-iteration
			DestroyEntity(w, ents[3])
		}
	})
	if visited != 3 {
		t.Fatalf("expected 3 visits, got %d", visited)
	}
}

func TestForEach3(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()
	kc := component.NewComponentKind[float64]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e1, kb, stringPtr("a"))
	_ = Add(w, e2, ka, intPtr(2))
	_ = Add(w, e2, kb, stringPtr("b"))
	_ = Add(w, e2, kc, float64Ptr(2))

	var res []Entity
	ForEach3(w, ka, kb, kc, func(e Entity, a *int, b *string, c *float64) {
		res = append(res, e)
	})
	if len(res) != 1 || res[0].id() != e2.id() {
		t.Fatalf("expected only e2, got %v", res)
	}

	n := 0
	ForEach2(w, ka, kb, func(e Entity, a *int, b *string) { n++ })
	if n != 2 {
		t.Fatalf("expected 2 pairs, got %d", n)
	}
}

type countSystem struct {
	n *int
}

func (s countSystem) Update(w *World) {
	*s.n++
	w.Events().Push(Event{Type: "tick"})
}

func TestUpdateRunsSystemsAndFlushesEvents(t *testing.T) {
	w := NewWorld()
	var a, b int
	w.AddSystem(countSystem{n: &a})
	w.AddSystem(nil)
	w.AddSystem(countSystem{n: &b})

	if len(w.Systems()) != 2 {
		t.Fatalf("expected nil system to be ignored")
	}

	w.Update()
	w.Update()
	if a != 2 || b != 2 {
		t.Fatalf("expected both systems to run twice, got %d and %d", a, b)
	}
	if evts := w.Events().Drain(); evts != nil {
		t.Fatalf("expected events flushed after update, got %d", len(evts))
	}
}

func TestFirst(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	if _, ok := First(w, k); ok {
		t.Fatalf("expected no entity")
	}
	e := CreateEntity(w)
	_ = Add(w, e, k, intPtr(1))
	got, ok := First(w, k)
	if !ok || got != e {
		t.Fatalf("expected %v, got %v", e, got)
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}
