package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/systems"
)

// handlePointer updates gift hover from the cursor ray and opens the hovered
// gift on a click release.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()
	if g.dragging || g.overUI(mouse) {
		g.clearHover()
		return
	}

	ray := rl.GetScreenToWorldRay(mouse, g.camera3D())
	e, ok := g.scene.Gifts.Pick(systems.Ray{
		Origin:    r3.Vec{X: float64(ray.Position.X), Y: float64(ray.Position.Y), Z: float64(ray.Position.Z)},
		Direction: r3.Vec{X: float64(ray.Direction.X), Y: float64(ray.Direction.Y), Z: float64(ray.Direction.Z)},
	})
	g.scene.Gifts.HoverOnly(e, ok)
	g.hovered, g.hasHover = e, ok

	// Only a closed gift in formation is clickable
	clickable := ok && g.mode == components.ModeFormation && !g.scene.Gifts.IsOpen(e)
	g.setPointer(clickable)

	if ok && rl.IsMouseButtonReleased(rl.MouseButtonLeft) && rl.Vector2Distance(mouse, g.pressPos) <= clickSlop {
		g.scene.Gifts.Click(e, g.mode)
	}
}

// clearHover drops the hover highlight and restores the cursor.
func (g *Game) clearHover() {
	if g.hasHover {
		g.scene.Gifts.HoverOnly(g.hovered, false)
		g.hasHover = false
	}
	g.setPointer(false)
}

func (g *Game) setPointer(on bool) {
	if on == g.pointerHit {
		return
	}
	g.pointerHit = on
	if on {
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	} else {
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}

// hoveredView returns the hovered gift, if any.
func (g *Game) hoveredView() (systems.GiftView, bool) {
	var out systems.GiftView
	found := false
	if !g.hasHover {
		return out, false
	}
	g.scene.Gifts.Each(func(v systems.GiftView) {
		if v.Entity == g.hovered {
			out, found = v, true
		}
	})
	return out, found
}
