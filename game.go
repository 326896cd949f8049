package main

import (
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/prefabs"
)

type Game struct {
	arena   *Arena
	opts    ArenaOptions
	watcher *prefabs.Watcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(arena *Arena, opts ArenaOptions, watcher *prefabs.Watcher) *Game {
	g := &Game{arena: arena, opts: opts, watcher: watcher}
	g.pauseUI = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.applyReloads()
	g.arena.Tick()
	return nil
}

// applyReloads drains pending file changes without blocking the frame.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.arena.Reload(name); err != nil {
				log.Printf("prefabs: reload %s: %v", name, err)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("prefabs: watch: %v", err)
			}
		default:
			return
		}
	}
}

// restart rebuilds the arena from the current prefabs.
func (g *Game) restart() {
	arena, err := NewArena(g.opts)
	if err != nil {
		log.Printf("restart: %v", err)
		return
	}
	g.arena = arena
	g.paused = false
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.arena.World.Draw(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
