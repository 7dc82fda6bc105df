package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/noel/systems"
)

// Scene dressing.
const (
	floorY    = -10
	floorSize = 200
)

var floorColor = color.RGBA{R: 226, G: 232, B: 240, A: 255}

// SceneRenderer draws one mounted scene: the three element classes, gifts,
// topper, floor and snow.
type SceneRenderer struct {
	lighting *Lighting
	meshes   *Meshes

	ambient   *InstancedRenderer
	ornaments *InstancedRenderer
	filler    *InstancedRenderer
	gifts     *GiftRenderer
	snow      *SnowRenderer

	initialized bool
}

// NewSceneRenderer creates a scene renderer (Init must run after the window exists).
func NewSceneRenderer() *SceneRenderer {
	return &SceneRenderer{
		lighting: NewLighting(),
		meshes:   &Meshes{},
		snow:     NewSnowRenderer(),
	}
}

// Init builds GPU resources for the scene. fovy is in degrees.
func (r *SceneRenderer) Init(scene *systems.Scene, fovy float32, screenH int32) {
	if r.initialized {
		return
	}
	r.lighting.Init()
	r.meshes.Init()

	lit := r.lighting.Instanced
	r.ambient = NewInstancedRenderer(r.meshes.LowSphere, lit, 64, 0.6, 0.15)
	r.ornaments = NewInstancedRenderer(r.meshes.Sphere, lit, 96, 0.8, 0.1)
	r.filler = NewInstancedRenderer(r.meshes.Octahedron, lit, 16, 0.1, 0.05)
	r.gifts = NewGiftRenderer(r.meshes, r.lighting.Single)
	r.snow.Init(scene.Snow, fovy, screenH)

	r.initialized = true
}

// Resize propagates a new viewport height.
func (r *SceneRenderer) Resize(fovy float32, screenH int32) {
	r.snow.Resize(fovy, screenH)
}

// Prepare copies the current instance buffers into draw batches.
func (r *SceneRenderer) Prepare(scene *systems.Scene) {
	r.filler.Prepare(scene.Filler.Instances())
	r.ambient.Prepare(scene.Ambient.Instances())
	r.ornaments.Prepare(scene.Ornaments.Instances())
}

// Draw renders the scene from cam at time t.
func (r *SceneRenderer) Draw(scene *systems.Scene, cam rl.Camera3D, t float32) {
	if !r.initialized {
		return
	}
	r.lighting.SetViewPos(cam.Position)

	rl.BeginMode3D(cam)

	rl.DrawPlane(rl.Vector3{Y: floorY}, rl.Vector2{X: floorSize, Y: floorSize}, floorColor)

	r.filler.Draw()
	r.ambient.Draw()
	r.ornaments.Draw()
	r.drawTopper(scene.Topper)
	r.gifts.Draw(scene.Gifts)

	// Transparent pass last
	r.snow.Draw(t)

	rl.EndMode3D()
}

func (r *SceneRenderer) drawTopper(tp *systems.Topper) {
	if !tp.Visible() {
		return
	}
	s := float32(tp.Size * tp.Scale)
	m := chain(
		rl.MatrixScale(s, s, s),
		rl.MatrixRotateY(float32(tp.Spin)),
		rl.MatrixTranslate(float32(tp.Position.X), float32(tp.Position.Y), float32(tp.Position.Z)),
	)
	single := r.lighting.Single
	single.SetSurface(96, 0.9)
	single.SetEmissive(systems.ColorGoldMetallic, 0.6)
	r.gifts.drawTinted(r.meshes.Octahedron, systems.ColorGoldMetallic, m)
	single.SetEmissive(color.RGBA{}, 0)
}

// Unload frees every GPU resource of the scene.
func (r *SceneRenderer) Unload() {
	if !r.initialized {
		return
	}
	r.snow.Unload()
	r.gifts.Unload()
	r.ambient.Unload()
	r.ornaments.Unload()
	r.filler.Unload()
	r.meshes.Unload()
	r.lighting.Unload()
	r.initialized = false
}
