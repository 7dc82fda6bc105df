// Pattern debug tool - exports the generated wrapping papers, or one settled
// frame of the scene, to PNG files for inspection.
//
// Usage:
//
//	go run ./cmd/patterndebug -mode patterns -out debug/
//	go run ./cmd/patterndebug -mode scene -seed 7 -out debug/
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/noel/camera"
	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/config"
	"github.com/pthm-cable/noel/renderer"
	"github.com/pthm-cable/noel/systems"
)

var papers = []struct {
	name  string
	color color.RGBA
}{
	{"red", systems.GiftRed},
	{"green", systems.GiftGreen},
	{"gold", systems.GiftGold},
	{"blue", systems.GiftBlue},
}

func main() {
	mode := flag.String("mode", "patterns", "What to export: patterns or scene")
	outDir := flag.String("out", "debug", "Output directory")
	seed := flag.Int64("seed", 1, "Scene seed (scene mode)")
	settle := flag.Int("settle", 300, "Frames simulated before capture (scene mode)")
	formation := flag.Bool("formation", true, "Capture the formation instead of the scattered cloud (scene mode)")
	flag.Parse()

	if err := config.Init(""); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Cfg()
	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(width, height, "Pattern Debug")
	defer rl.CloseWindow()

	var err error
	switch *mode {
	case "patterns":
		err = exportPatterns(*outDir)
	case "scene":
		m := components.ModeScattered
		if *formation {
			m = components.ModeFormation
		}
		err = exportScene(cfg, *seed, m, *settle, width, height, *outDir)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// exportPatterns writes one PNG per paper color and non-solid pattern.
func exportPatterns(dir string) error {
	patterns := []components.Pattern{components.PatternStripes, components.PatternDots, components.PatternSpecial}
	for _, paper := range papers {
		for _, p := range patterns {
			img := renderer.GeneratePattern(paper.color, p)
			path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", paper.name, p))
			ok := rl.ExportImage(*img, path)
			rl.UnloadImage(img)
			if !ok {
				return fmt.Errorf("failed to export %s", path)
			}
			fmt.Printf("Pattern written to: %s (%dx%d)\n", path, renderer.PatternSize, renderer.PatternSize)
		}
	}
	return nil
}

// exportScene simulates a scene for settle frames and renders it to a PNG.
func exportScene(cfg *config.Config, seed int64, mode components.Mode, settle int, width, height int32, dir string) error {
	scene, err := systems.NewScene(cfg, seed, nil)
	if err != nil {
		return err
	}
	defer scene.Unload()

	dt := 1 / float64(cfg.Screen.TargetFPS)
	t := 0.0
	for i := 0; i < settle; i++ {
		t += dt
		scene.Update(mode, t, dt)
	}

	cc := cfg.Camera
	cam := camera.New(0, float32(cc.Height), float32(cc.Distance), float32(cc.Fovy))
	x, y, z := cam.Eye()
	cam3D := rl.Camera3D{
		Position:   rl.Vector3{X: x, Y: y, Z: z},
		Up:         rl.Vector3{Y: 1},
		Fovy:       cam.Fovy,
		Projection: rl.CameraPerspective,
	}

	sr := renderer.NewSceneRenderer()
	sr.Init(scene, cam.Fovy, height)
	defer sr.Unload()
	sr.Prepare(scene)

	target := rl.LoadRenderTexture(width, height)
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(cfg.Derived.Background)
	sr.Draw(scene, cam3D, float32(t))
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	path := filepath.Join(dir, fmt.Sprintf("scene_%d_%s.png", seed, mode))
	ok := rl.ExportImage(*img, path)
	rl.UnloadImage(img)
	if !ok {
		return fmt.Errorf("failed to export %s", path)
	}
	fmt.Printf("Scene rendered to: %s (%dx%d)\n", path, width, height)
	return nil
}
