package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// The card is modal until closed
	if g.card.Visible() {
		g.clearHover()
		return
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.ToggleMode()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := g.Remount(); err != nil {
			slog.Error("failed to regenerate scene", "error", err)
		}
	}
	g.handleOverlayKeys()

	g.handleCameraInput()
	g.handlePointer()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.sceneRenderer.Resize(g.camera.Fovy, h)
	g.layoutPanels()
}

// handleCameraInput orbits on drag and zooms on the wheel. There is no pan.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()

	// A drag ends the frame after release so the release is not read as a click
	if rl.IsMouseButtonUp(rl.MouseButtonLeft) && !rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.dragging = false
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.pressPos = mouse
		g.dragging = false
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && !g.overUI(g.pressPos) {
		if !g.dragging && rl.Vector2Distance(mouse, g.pressPos) > clickSlop {
			g.dragging = true
		}
		if g.dragging {
			d := rl.GetMouseDelta()
			g.camera.Orbit(-d.X*orbitSensitivity, -d.Y*orbitSensitivity)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.Zoom(1 - wheel*zoomStep)
	}
}

// overUI reports whether p lies on an interactive UI element.
func (g *Game) overUI(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, g.hud.ButtonBounds(g.screenWidth, g.screenHeight))
}
