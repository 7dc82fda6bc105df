// Package game wires the scene systems, renderer, camera and UI into the frame loop.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noel/camera"
	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/config"
	"github.com/pthm-cable/noel/renderer"
	"github.com/pthm-cable/noel/systems"
	"github.com/pthm-cable/noel/telemetry"
	"github.com/pthm-cable/noel/ui"
)

// Game holds the complete runtime state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand // Seeds remounted scenes

	// Mode is owned here and read once per frame by the scene
	mode  components.Mode
	scene *systems.Scene
	seed  int64

	// Rendering and UI (nil when headless)
	sceneRenderer *renderer.SceneRenderer
	camera        *camera.Camera
	hud           *ui.HUD
	card          *ui.CardOverlay
	inspector     *ui.Inspector
	controls      *ui.ControlsPanel
	perfPanel     *ui.PerfPanel
	overlays      *ui.OverlayRegistry

	// Pointer state
	hovered    ecs.Entity
	hasHover   bool
	dragging   bool
	pressPos   rl.Vector2
	pointerHit bool // Pointer cursor currently shown

	// Telemetry
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	lastPerfLog   float64

	// Clock
	frame   int64
	elapsed float64

	headless     bool
	screenWidth  int32
	screenHeight int32
}

// NewGameWithOptions creates a game and mounts its first scene.
// Outside headless mode the window must already exist.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	g := &Game{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		seed:          opts.Seed,
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:      opts.LogStats,
		headless:      opts.Headless,
		screenWidth:   int32(cfg.Screen.Width),
		screenHeight:  int32(cfg.Screen.Height),
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		g.outputManager = om
	}

	if !g.headless {
		g.initPresentation()
	}

	if err := g.mount(g.seed); err != nil {
		g.closeOutput()
		return nil, err
	}
	return g, nil
}

// initPresentation builds the camera, renderer and UI.
func (g *Game) initPresentation() {
	cc := g.cfg.Camera
	g.camera = camera.New(0, float32(cc.Height), float32(cc.Distance), float32(cc.Fovy))
	g.camera.SetLimits(float32(cc.MinDistance), float32(cc.MaxDistance), float32(cc.MinPolar), float32(cc.MaxPolar))
	g.camera.AutoRotateSpeed = float32(cc.AutoRotateSpeed)

	g.sceneRenderer = renderer.NewSceneRenderer()
	g.hud = ui.NewHUD()
	g.card = ui.NewCardOverlay()
	g.card.OnClose = g.onCloseCard
	g.overlays = ui.NewOverlayRegistry()
	g.inspector = ui.NewInspector(0, 0)
	g.controls = ui.NewControlsPanel(10, 10, 240)
	g.perfPanel = ui.NewPerfPanel(10, 10, 300)
	g.layoutPanels()

	ui.ApplyGuiStyle(ui.DefaultTheme())
}

// Mode returns the current arrangement.
func (g *Game) Mode() components.Mode {
	return g.mode
}

// SetMode switches the arrangement every element moves toward.
func (g *Game) SetMode(m components.Mode) {
	if m == g.mode {
		return
	}
	g.mode = m
	slog.Info("mode changed", "mode", m.String(), "frame", g.frame)
}

// ToggleMode flips between Scattered and Formation.
func (g *Game) ToggleMode() {
	g.SetMode(g.mode.Toggle())
}

// Scene returns the mounted scene.
func (g *Game) Scene() *systems.Scene {
	return g.scene
}

// Frame returns the number of completed frames.
func (g *Game) Frame() int64 {
	return g.frame
}

// Elapsed returns the scene clock in seconds.
func (g *Game) Elapsed() float64 {
	return g.elapsed
}

// Update advances one windowed frame: input, then the scene.
func (g *Game) Update() {
	g.perfCollector.StartFrame()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	g.step(float64(rl.GetFrameTime()))
}

// UpdateHeadless advances one frame at the configured target rate without a window.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartFrame()
	g.step(1 / float64(g.cfg.Screen.TargetFPS))
	g.perfCollector.EndFrame()
	g.frame++
	g.flushTelemetry()
}

// step runs the scene systems for one frame.
func (g *Game) step(dt float64) {
	g.elapsed += dt
	g.scene.UpdateMarked(g.mode, g.elapsed, dt, g.perfCollector)

	if g.camera != nil {
		g.camera.Update(float32(dt), g.mode == components.ModeFormation)
	}
}

// onOpenCard receives a revealed gift message.
func (g *Game) onOpenCard(message string) {
	slog.Info("card revealed", "message", message)
	if g.card != nil {
		g.card.Open(message)
	}
}

// onCloseCard runs when the card overlay is dismissed.
func (g *Game) onCloseCard() {
	slog.Debug("card closed")
}

// OpenedCount returns the number of opened gifts in the mounted scene.
func (g *Game) OpenedCount() int {
	n := 0
	g.scene.Gifts.Each(func(v systems.GiftView) {
		if v.Open {
			n++
		}
	})
	return n
}

// Unload releases the scene, GPU resources and output files.
func (g *Game) Unload() {
	g.unmount()
	g.closeOutput()
}

func (g *Game) closeOutput() {
	if g.outputManager == nil {
		return
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
}
