package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/noel/systems"
)

// quadCorners are the two triangles of a flake billboard.
var quadCorners = [6][2]float32{
	{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5},
	{-0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5},
}

// SnowRenderer uploads the flake attributes once and then only updates the
// time uniform. All motion is evaluated in the vertex stage.
type SnowRenderer struct {
	shader   rl.Shader
	material rl.Material
	mesh     rl.Mesh

	// Go-owned attribute arrays referenced by mesh
	vertices   []float32
	texcoords  []float32
	texcoords2 []float32
	normals    []float32

	timeLoc  int32
	scaleLoc int32

	initialized bool
}

// NewSnowRenderer creates a snow renderer.
func NewSnowRenderer() *SnowRenderer {
	return &SnowRenderer{}
}

// Init builds the flake mesh and sets the static uniforms. fovy is in degrees.
func (s *SnowRenderer) Init(field *systems.SnowField, fovy float32, screenH int32) {
	if s.initialized {
		return
	}

	n := len(field.Flakes)
	s.vertices = make([]float32, 0, n*6*3)
	s.texcoords = make([]float32, 0, n*6*2)
	s.texcoords2 = make([]float32, 0, n*6*2)
	s.normals = make([]float32, 0, n*6*3)
	for i := range field.Flakes {
		fl := &field.Flakes[i]
		for _, c := range quadCorners {
			s.vertices = append(s.vertices, fl.Position[0], fl.Position[1], fl.Position[2])
			s.texcoords = append(s.texcoords, c[0], c[1])
			s.texcoords2 = append(s.texcoords2, fl.Scale, fl.Random)
			s.normals = append(s.normals, fl.Velocity[0], fl.Velocity[1], fl.Velocity[2])
		}
	}

	s.mesh = rl.Mesh{
		VertexCount:   int32(n * 6),
		TriangleCount: int32(n * 2),
	}
	if n > 0 {
		s.mesh.Vertices = &s.vertices[0]
		s.mesh.Texcoords = &s.texcoords[0]
		s.mesh.Texcoords2 = &s.texcoords2[0]
		s.mesh.Normals = &s.normals[0]
		rl.UploadMesh(&s.mesh, false)
	}

	s.shader = rl.LoadShaderFromMemory(snowVS, snowFS)
	s.material = rl.LoadMaterialDefault()
	s.material.Shader = s.shader
	s.timeLoc = rl.GetShaderLocation(s.shader, "uTime")
	s.scaleLoc = rl.GetShaderLocation(s.shader, "uPixelScale")

	u := field.Uniforms
	setFloat := func(name string, v float32) {
		rl.SetShaderValue(s.shader, rl.GetShaderLocation(s.shader, name), []float32{v}, rl.ShaderUniformFloat)
	}
	setFloat("uSpeed", u.Speed)
	setFloat("uBound", u.Bound)
	setFloat("uWrap", u.Wrap)
	setFloat("uTreeHeight", u.TreeHeight)
	setFloat("uTreeRadius", u.TreeRadius)
	setFloat("uBuffer", u.Buffer)
	rl.SetShaderValue(s.shader, rl.GetShaderLocation(s.shader, "uWind"), u.Wind[:], rl.ShaderUniformVec2)
	rl.SetShaderValue(s.shader, rl.GetShaderLocation(s.shader, "uColor"), []float32{
		float32(u.Color.R) / 255, float32(u.Color.G) / 255, float32(u.Color.B) / 255,
	}, rl.ShaderUniformVec3)

	s.initialized = true
	s.Resize(fovy, screenH)
}

// Resize updates the flake size scale after the viewport or field of view changes.
func (s *SnowRenderer) Resize(fovy float32, screenH int32) {
	if !s.initialized {
		return
	}
	rl.SetShaderValue(s.shader, s.scaleLoc, []float32{pixelScale(fovy, screenH)}, rl.ShaderUniformFloat)
}

// pixelScale converts the 400/distance point-size rule into a world-space quad
// size per unit of flake scale.
func pixelScale(fovy float32, screenH int32) float32 {
	if screenH <= 0 {
		return 0
	}
	half := float64(fovy) * math.Pi / 360
	return float32(400 * 2 * math.Tan(half) / float64(screenH))
}

// Draw renders all flakes at time t. Must run inside BeginMode3D.
func (s *SnowRenderer) Draw(t float32) {
	if !s.initialized || s.mesh.VertexCount == 0 {
		return
	}
	rl.SetShaderValue(s.shader, s.timeLoc, []float32{t}, rl.ShaderUniformFloat)

	rl.BeginBlendMode(rl.BlendAlpha)
	rl.DisableDepthMask()
	rl.DrawMesh(s.mesh, s.material, rl.MatrixIdentity())
	rl.EnableDepthMask()
	rl.EndBlendMode()
}

// Unload frees resources.
func (s *SnowRenderer) Unload() {
	if !s.initialized {
		return
	}
	if s.mesh.VertexCount > 0 {
		rl.UnloadMesh(&s.mesh)
	}
	releaseMaterial(s.material)
	rl.UnloadShader(s.shader)
	s.vertices, s.texcoords, s.texcoords2, s.normals = nil, nil, nil, nil
	s.initialized = false
}
