package main

import (
	"fmt"
	"log"
	"math"

	"github.com/milk9111/statemachine/clock"
	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
	"github.com/milk9111/statemachine/ecs/entity"
	"github.com/milk9111/statemachine/ecs/system"
	"github.com/milk9111/statemachine/enemy"
	"github.com/milk9111/statemachine/prefabs"
	"github.com/milk9111/statemachine/random"
	"github.com/milk9111/statemachine/script"
)

// minSpawnDistance keeps enemies outside the pursuit band at start.
const minSpawnDistance = 60

type ArenaOptions struct {
	Seed      uint64
	Autopilot bool
	Quiet     bool
	// Step is the fixed tick length in seconds; zero follows ebiten's TPS.
	Step float64
}

// Arena owns the world and everything spawned into it.
type Arena struct {
	World *ecs.World
	Clock *clock.Fixed
	Log   *system.TransitionLogSystem

	opts   ArenaOptions
	env    entity.Env
	spec   prefabs.ArenaSpec
	player ecs.Entity

	enemies []*enemy.Enemy
	sentry  prefabs.SentrySpec
	program *script.Program
}

func NewArena(opts ArenaOptions) (*Arena, error) {
	arenaSpec, err := prefabs.LoadArenaSpec()
	if err != nil {
		return nil, err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	enemySpec, err := prefabs.LoadEnemySpec()
	if err != nil {
		return nil, err
	}
	enemyCfg, err := enemySpec.Config(arenaSpec.LevelSize)
	if err != nil {
		return nil, err
	}
	bulletSpec, err := prefabs.LoadBulletSpec()
	if err != nil {
		return nil, err
	}
	sentrySpec, err := prefabs.LoadSentrySpec()
	if err != nil {
		return nil, err
	}
	program, err := script.Load(sentrySpec.Script)
	if err != nil {
		return nil, err
	}

	a := &Arena{
		World:   ecs.NewWorld(),
		Clock:   clock.NewFixed(),
		opts:    opts,
		spec:    arenaSpec,
		sentry:  sentrySpec,
		program: program,
	}
	rng := random.New(opts.Seed)
	a.env = entity.Env{Clock: a.Clock, Rand: rng, Bullet: bulletSpec}
	a.Log = system.NewTransitionLogSystem(opts.Quiet)

	var step func() float64
	if opts.Step > 0 {
		step = func() float64 { return opts.Step }
	}
	bullets := system.NewBulletSystem(a.Clock)
	bullets.Quiet = opts.Quiet

	w := a.World
	w.AddSystem(system.NewClockSystem(a.Clock, step))
	if opts.Autopilot {
		w.AddSystem(system.NewAutopilotSystem(a.Clock, 20, 60))
	} else {
		w.AddSystem(system.NewInputSystem())
	}
	w.AddSystem(system.NewPlayerSystem(a.Clock, entity.FireBullet(bulletSpec)))
	w.AddSystem(system.NewAISystem())
	w.AddSystem(bullets)
	w.AddSystem(system.NewPhysicsSystem(a.Clock))
	w.AddSystem(system.NewDespawnSystem(a.Clock))
	w.AddSystem(a.Log)
	w.AddSystem(system.NewRenderSystem(arenaSpec.LevelSize, a.Log))

	a.player, err = entity.NewPlayer(w, playerSpec, arenaSpec.PlayerStart.Vec3())
	if err != nil {
		return nil, err
	}

	start := arenaSpec.PlayerStart.Vec3()
	for i := 0; i < arenaSpec.EnemyCount; i++ {
		pos := a.spawnPoint(rng, start)
		_, tank, err := entity.NewEnemy(w, a.env, enemySpec, enemyCfg, pos)
		if err != nil {
			return nil, err
		}
		a.enemies = append(a.enemies, tank)
	}

	for _, at := range arenaSpec.Sentries {
		if _, _, err := entity.NewSentry(w, a.env, sentrySpec, program, at.Vec3(), opts.Quiet); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// spawnPoint picks a point on the level far enough from the player.
func (a *Arena) spawnPoint(rng random.Sampler, avoid common.Vec3) common.Vec3 {
	size := a.spec.LevelSize
	var p common.Vec3
	for range 32 {
		p = common.Vec3{X: rng.Range(-size, size), Z: rng.Range(-size, size)}
		if common.SqrDistance(p, avoid) >= minSpawnDistance*minSpawnDistance {
			return p
		}
	}
	// corner opposite the player
	return common.Vec3{X: -math.Copysign(size, avoid.X), Z: -math.Copysign(size, avoid.Z)}
}

// Tick advances the simulation by one step.
func (a *Arena) Tick() {
	a.World.Update()
}

// Enemies returns the tanks that are still in the world.
func (a *Arena) Enemies() []*enemy.Enemy {
	alive := make(map[component.Agent]bool)
	ecs.ForEach(a.World, component.BrainComponent.Kind(), func(e ecs.Entity, b *component.Brain) {
		alive[b.Agent] = true
	})
	out := make([]*enemy.Enemy, 0, len(a.enemies))
	for _, tank := range a.enemies {
		if alive[tank] {
			out = append(out, tank)
		}
	}
	return out
}

// Reload applies a changed prefab or script by name.
func (a *Arena) Reload(name string) error {
	switch {
	case name == "enemy.yaml":
		spec, err := prefabs.LoadEnemySpec()
		if err != nil {
			return err
		}
		cfg, err := spec.Config(a.spec.LevelSize)
		if err != nil {
			return err
		}
		for _, tank := range a.Enemies() {
			if err := tank.SetConfig(cfg); err != nil {
				return err
			}
		}
		log.Printf("prefabs: reloaded %s for %d enemies", name, len(a.Enemies()))
	case prefabs.IsScriptFile(name) && name == a.sentry.Script:
		program, err := script.Load(name)
		if err != nil {
			return err
		}
		a.program = program
		n, err := a.respawnSentries()
		if err != nil {
			return err
		}
		log.Printf("prefabs: reloaded %s for %d sentries", name, n)
	default:
		log.Printf("prefabs: %s changed; restart to apply", name)
	}
	return nil
}

// respawnSentries replaces every sentry that is not running the current
// program with a fresh one at the same spot.
func (a *Arena) respawnSentries() (int, error) {
	w := a.World
	var spots []common.Vec3
	for _, e := range w.Query(component.SentryTagComponent.Kind(), component.TransformComponent.Kind()) {
		if b, ok := ecs.Get(w, e, component.BrainComponent.Kind()); ok {
			if s, ok := b.Agent.(*script.Sentry); ok && s.Program() == a.program {
				continue
			}
		}
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		spots = append(spots, t.Position)
		ecs.DestroyEntity(w, e)
	}
	for _, at := range spots {
		if _, _, err := entity.NewSentry(w, a.env, a.sentry, a.program, at, a.opts.Quiet); err != nil {
			return 0, fmt.Errorf("respawn sentry: %w", err)
		}
	}
	return len(spots), nil
}

// Summary reports how often each agent kind entered each state.
func (a *Arena) Summary() string {
	s := ""
	for _, kind := range []struct {
		name   string
		states []string
	}{
		{"enemy", []string{"wander", "pursuit", "attack", "explode"}},
		{"sentry", a.program.States()},
	} {
		s += kind.name + ":"
		for _, st := range kind.states {
			s += fmt.Sprintf(" %s=%d", st, a.Log.Count(kind.name, st))
		}
		s += "\n"
	}
	s += fmt.Sprintf("entities: %d\n", len(ecs.Entities(a.World)))
	return s
}
