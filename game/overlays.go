package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/noel/systems"
	"github.com/pthm-cable/noel/ui"
)

var (
	sphereColor      = rl.Color{R: 148, G: 163, B: 184, A: 160}
	sphereHoverColor = rl.Color{R: 255, G: 215, B: 0, A: 255}
	coneColor        = rl.Color{R: 34, G: 197, B: 94, A: 160}
	bufferColor      = rl.Color{R: 241, G: 245, B: 249, A: 90}
)

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.Toggle(desc.ID)
		}
	}
}

// drawWorldOverlays renders the enabled 3D debug overlays.
func (g *Game) drawWorldOverlays(cam rl.Camera3D) {
	spheres := g.overlays.IsEnabled(ui.OverlayPickSpheres)
	cone := g.overlays.IsEnabled(ui.OverlayCone)
	if !spheres && !cone {
		return
	}

	rl.BeginMode3D(cam)
	if spheres {
		g.drawPickSpheres()
	}
	if cone {
		g.drawCone()
	}
	rl.EndMode3D()
}

// drawPickSpheres draws the sphere each gift is picked against.
func (g *Game) drawPickSpheres() {
	g.scene.Gifts.Each(func(v systems.GiftView) {
		c := sphereColor
		if v.Hovered {
			c = sphereHoverColor
		}
		p := v.Motion.Position
		rl.DrawSphereWires(rl.Vector3{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)}, float32(v.Radius), 8, 8, c)
	})
}

// drawCone draws the formation cone and the surface snow keeps clear of.
func (g *Game) drawCone() {
	h := float32(g.cfg.Scene.TreeHeight)
	r := float32(g.cfg.Scene.TreeRadiusBase)
	buf := float32(g.cfg.Snow.ConeBuffer)
	base := rl.Vector3{Y: -h / 2}

	rl.DrawCylinderWires(base, 0, r, h, 24, coneColor)
	rl.DrawCylinderWires(base, buf, r+buf, h, 24, bufferColor)
}
