package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/noel/telemetry"
	"github.com/pthm-cable/noel/ui"
)

// Draw renders one frame and closes the frame's perf sample.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseUpload)
	g.sceneRenderer.Prepare(g.scene)

	g.perfCollector.StartPhase(telemetry.PhaseDraw)
	cam := g.camera3D()

	rl.BeginDrawing()
	rl.ClearBackground(g.cfg.Derived.Background)

	g.sceneRenderer.Draw(g.scene, cam, float32(g.elapsed))
	g.drawWorldOverlays(cam)
	g.drawUI()

	g.perfCollector.EndFrame()
	rl.EndDrawing()
	g.perfCollector.RecordPresent()

	g.frame++
	g.flushTelemetry()
}

// camera3D converts the orbit camera into a raylib perspective camera.
func (g *Game) camera3D() rl.Camera3D {
	x, y, z := g.camera.Eye()
	return rl.Camera3D{
		Position:   rl.Vector3{X: x, Y: y, Z: z},
		Target:     rl.Vector3{X: g.camera.TargetX, Y: g.camera.TargetY, Z: g.camera.TargetZ},
		Up:         rl.Vector3{Y: 1},
		Fovy:       g.camera.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// drawUI draws the HUD, enabled panels and the card overlay.
func (g *Game) drawUI() {
	toggled := g.hud.Draw(ui.HUDData{
		Mode:         g.mode,
		FPS:          rl.GetFPS(),
		Seed:         g.seed,
		Gifts:        g.scene.Gifts.Len(),
		Opened:       g.OpenedCount(),
		ScreenWidth:  g.screenWidth,
		ScreenHeight: g.screenHeight,
	})
	if toggled && !g.card.Visible() {
		g.ToggleMode()
	}

	y := int32(10)
	if g.overlays.IsEnabled(ui.OverlayHelp) {
		g.controls.SetPosition(10, y)
		y = g.controls.Draw(g.overlays) + 10
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.SetPosition(10, y)
		g.perfPanel.Draw(g.perfCollector.Stats(), g.scene.ElementCount(), len(g.scene.Snow.Flakes))
	}
	if g.overlays.IsEnabled(ui.OverlayInspector) {
		if v, ok := g.hoveredView(); ok {
			g.inspector.Draw(v)
		}
	}

	g.card.Draw(g.screenWidth, g.screenHeight)
}

// layoutPanels anchors the right-hand panels to the current screen size.
func (g *Game) layoutPanels() {
	g.inspector.SetPosition(g.screenWidth-g.inspector.Width()-10, 10)
}
