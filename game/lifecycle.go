package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/noel/systems"
	"github.com/pthm-cable/noel/telemetry"
)

// mount generates a scene for seed and builds its GPU resources.
func (g *Game) mount(seed int64) error {
	scene, err := systems.NewScene(g.cfg, seed, g.onOpenCard)
	if err != nil {
		return fmt.Errorf("generating scene: %w", err)
	}
	g.attach(scene, seed)
	return nil
}

// attach makes scene the mounted scene and resets the scene clock.
func (g *Game) attach(scene *systems.Scene, seed int64) {
	g.scene = scene
	g.seed = seed
	g.elapsed = 0
	g.lastPerfLog = 0
	g.hasHover = false

	if g.sceneRenderer != nil {
		g.sceneRenderer.Init(scene, g.camera.Fovy, g.screenHeight)
	}

	g.recordPlacement()
}

// unmount cancels pending reveals, drops gift entities and frees GPU resources.
func (g *Game) unmount() {
	if g.scene == nil {
		return
	}
	g.scene.Unload()
	if g.sceneRenderer != nil {
		g.sceneRenderer.Unload()
	}
	if g.card != nil {
		g.card.Close()
	}
	g.scene = nil
	g.hasHover = false
}

// Remount replaces the scene with a freshly generated one. The mode is kept.
// The new scene is generated before the old one is unloaded, so on error the
// current scene stays mounted.
func (g *Game) Remount() error {
	seed := g.rng.Int63()
	scene, err := systems.NewScene(g.cfg, seed, g.onOpenCard)
	if err != nil {
		return fmt.Errorf("remounting with seed %d: %w", seed, err)
	}
	prev := g.seed
	g.unmount()
	g.attach(scene, seed)
	slog.Info("scene remounted", "seed", seed, "previous", prev)
	return nil
}

// recordPlacement logs and stores the placement quality of the mounted scene.
func (g *Game) recordPlacement() {
	stats := telemetry.ComputePlacementStats(g.seed, g.scene.GiftRecords(), g.scene.Placement)
	if g.logStats {
		slog.Info("placement", "stats", stats)
	}
	if g.outputManager != nil {
		if err := g.outputManager.WritePlacement(stats); err != nil {
			slog.Error("failed to write placement", "error", err)
		}
	}
}
