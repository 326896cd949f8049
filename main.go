package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/statemachine/prefabs"
)

const headlessStep = 1.0 / 60

func main() {
	headless := flag.Bool("headless", false, "run without a window for -ticks steps and print a summary")
	ticks := flag.Int("ticks", 3600, "number of steps to simulate with -headless")
	seed := flag.Uint64("seed", 1, "random seed for spawn points and enemy decisions")
	watch := flag.Bool("watch", false, "hot reload prefabs/ and prefabs/scripts/ from disk")
	autopilot := flag.Bool("autopilot", false, "let the player tank drive itself")
	quiet := flag.Bool("quiet", false, "do not log state transitions")
	flag.Parse()

	opts := ArenaOptions{Seed: *seed, Autopilot: *autopilot || *headless, Quiet: *quiet}
	if *headless {
		opts.Step = headlessStep
	}

	arena, err := NewArena(opts)
	if err != nil {
		log.Fatal(err)
	}

	if *headless {
		for i := 0; i < *ticks; i++ {
			arena.Tick()
		}
		fmt.Printf("simulated %.1fs\n%s", arena.Clock.Now(), arena.Summary())
		return
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher()
		if err != nil {
			log.Fatalf("prefabs: watch: %v", err)
		}
		defer watcher.Close()
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("statemachine")

	if err := ebiten.RunGame(NewGame(arena, opts, watcher)); err != nil {
		log.Fatal(err)
	}
}
