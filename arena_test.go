package main

import (
	"strings"
	"testing"

	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
	"github.com/milk9111/statemachine/script"
)

func newTestArena(t *testing.T) *Arena {
	t.Helper()
	a, err := NewArena(ArenaOptions{Seed: 7, Autopilot: true, Quiet: true, Step: 1.0 / 60})
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	return a
}

func TestArenaSpawnsFromPrefabs(t *testing.T) {
	a := newTestArena(t)

	if got := len(a.Enemies()); got != a.spec.EnemyCount {
		t.Fatalf("expected %d enemies, got %d", a.spec.EnemyCount, got)
	}
	if got := len(a.World.Query(component.SentryTagComponent.Kind())); got != len(a.spec.Sentries) {
		t.Fatalf("expected %d sentries, got %d", len(a.spec.Sentries), got)
	}
	if _, ok := a.World.First(component.PlayerTagComponent.Kind()); !ok {
		t.Fatalf("expected a player")
	}
}

func TestArenaHeadlessRunLogsTransitions(t *testing.T) {
	a := newTestArena(t)

	for i := 0; i < 600; i++ {
		a.Tick()
	}

	if got := a.Clock.Now(); got < 9.9 || got > 10.1 {
		t.Fatalf("expected ~10s simulated, got %v", got)
	}
	if got := a.Log.Count("enemy", "wander"); got < a.spec.EnemyCount {
		t.Fatalf("expected every enemy to enter wander, got %d", got)
	}
	if got := a.Log.Count("sentry", "idle"); got < len(a.spec.Sentries) {
		t.Fatalf("expected every sentry to enter idle, got %d", got)
	}
	if sum := a.Summary(); !strings.Contains(sum, "enemy: wander=") || !strings.Contains(sum, "entities: ") {
		t.Fatalf("unexpected summary %q", sum)
	}
}

func TestArenaReload(t *testing.T) {
	a := newTestArena(t)
	a.Tick()

	tests := []string{"enemy.yaml", "sentry.tengo", "bullet.yaml"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			if err := a.Reload(name); err != nil {
				t.Fatalf("Reload(%s): %v", name, err)
			}
		})
	}

	sentries := a.World.Query(component.SentryTagComponent.Kind())
	if len(sentries) != len(a.spec.Sentries) {
		t.Fatalf("expected sentries to be respawned in place, got %d", len(sentries))
	}
	for _, e := range sentries {
		b, ok := ecs.Get(a.World, e, component.BrainComponent.Kind())
		if !ok {
			t.Fatalf("sentry %v has no brain", e)
		}
		if s, ok := b.Agent.(*script.Sentry); !ok || s.Program() != a.program {
			t.Fatalf("sentry %v should run the reloaded program", e)
		}
	}
	if n, err := a.respawnSentries(); err != nil || n != 0 {
		t.Fatalf("sentries on the current program should be kept, respawned %d (%v)", n, err)
	}
	a.Tick()
	if got := len(a.Enemies()); got != a.spec.EnemyCount {
		t.Fatalf("expected enemies to survive reload, got %d", got)
	}
}
