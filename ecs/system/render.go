package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/statemachine/common"
	"github.com/milk9111/statemachine/ecs"
	"github.com/milk9111/statemachine/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// RenderSystem draws the arena top down: +X to the right, +Z up the screen.
// It also labels every agent with its current state.
type RenderSystem struct {
	LevelSize float64
	Log       *TransitionLogSystem

	face text.Face
}

func NewRenderSystem(levelSize float64, log *TransitionLogSystem) *RenderSystem {
	return &RenderSystem{
		LevelSize: levelSize,
		Log:       log,
		face:      text.NewGoXFace(basicfont.Face7x13),
	}
}

// Update is a no-op; drawing happens in Draw.
func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}

	screen.Fill(color.RGBA{R: 0x1c, G: 0x22, B: 0x1c, A: 0xff})

	lx, ly := toScreen(common.Vec3{X: -r.LevelSize, Z: r.LevelSize})
	size := float32(2 * r.LevelSize * common.PixelsPerUnit)
	vector.StrokeRect(screen, lx, ly, size, size, 1, colornames.Darkolivegreen, false)

	for _, e := range w.Query(component.TransformComponent.Kind()) {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		radius := 1.0
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Radius > 0 {
			radius = body.Radius
		}
		// lifted bodies look bigger
		radius *= 1 + t.Position.Y*0.02

		x, y := toScreen(t.Position)
		px := float32(radius * common.PixelsPerUnit)
		vector.FillCircle(screen, x, y, px, r.colorFor(w, e), true)

		if ecs.Has(w, e, component.BulletComponent.Kind()) {
			continue
		}
		hx, hy := toScreen(t.Position.Add(common.HeadingVector(t.Yaw).Scale(radius * 1.6)))
		vector.StrokeLine(screen, x, y, hx, hy, 2, colornames.White, true)

		if turret, ok := ecs.Get(w, e, component.TurretComponent.Kind()); ok {
			tx, ty := toScreen(t.Position.Add(common.HeadingVector(turret.Yaw).Scale(radius * 2.2)))
			vector.StrokeLine(screen, x, y, tx, ty, 3, colornames.Lightgrey, true)
		}

		if brain, ok := ecs.Get(w, e, component.BrainComponent.Kind()); ok && brain.Agent != nil {
			r.drawText(screen, brain.Agent.StateName(), float64(x)+float64(px)+4, float64(y)-6, colornames.Yellow)
		}
	}

	r.drawHUD(screen)
}

func (r *RenderSystem) drawHUD(screen *ebiten.Image) {
	r.drawText(screen, fmt.Sprintf("TPS %.0f", ebiten.ActualTPS()), 8, 8, colornames.White)
	if r.Log == nil {
		return
	}
	for i, tr := range r.Log.Recent() {
		line := fmt.Sprintf("%s %v: %s -> %s", tr.Kind, tr.Entity, tr.From, tr.To)
		if tr.First {
			line = fmt.Sprintf("%s %v: enter %s", tr.Kind, tr.Entity, tr.To)
		}
		r.drawText(screen, line, 8, 28+float64(i)*16, colornames.Lightgrey)
	}
}

func (r *RenderSystem) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(math.Round(x), math.Round(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}

func (r *RenderSystem) colorFor(w *ecs.World, e ecs.Entity) color.Color {
	switch {
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		return colornames.Dodgerblue
	case ecs.Has(w, e, component.EnemyTagComponent.Kind()):
		return colornames.Indianred
	case ecs.Has(w, e, component.SentryTagComponent.Kind()):
		return colornames.Mediumpurple
	case ecs.Has(w, e, component.BulletTagComponent.Kind()):
		return colornames.Gold
	default:
		return colornames.Gray
	}
}

func toScreen(p common.Vec3) (float32, float32) {
	x := float64(common.BaseWidth)/2 + p.X*common.PixelsPerUnit
	y := float64(common.BaseHeight)/2 - p.Z*common.PixelsPerUnit
	return float32(x), float32(y)
}
