package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Scene lighting. A warm key from above-front and a cool fill from behind.
var (
	keyDir    = [3]float32{-0.4, -1.0, -0.6}
	keyColor  = [3]float32{1.0, 0.9, 0.75}
	fillDir   = [3]float32{0.5, -0.3, 0.8}
	fillColor = [3]float32{0.25, 0.3, 0.45}
	ambient   = [3]float32{0.22, 0.22, 0.28}
)

// litShader is one compiled lit program and its uniform locations.
type litShader struct {
	shader       rl.Shader
	viewPosLoc   int32
	emissiveLoc  int32
	shininessLoc int32
	specularLoc  int32
}

func loadLitShader(vs string, instanced bool) litShader {
	sh := rl.LoadShaderFromMemory(vs, litFS)
	if instanced {
		sh.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocationAttrib(sh, "instanceTransform"))
	}
	sh.UpdateLocation(rl.ShaderLocVectorView, rl.GetShaderLocation(sh, "viewPos"))

	l := litShader{
		shader:       sh,
		viewPosLoc:   rl.GetShaderLocation(sh, "viewPos"),
		emissiveLoc:  rl.GetShaderLocation(sh, "emissive"),
		shininessLoc: rl.GetShaderLocation(sh, "shininess"),
		specularLoc:  rl.GetShaderLocation(sh, "specular"),
	}

	rl.SetShaderValue(sh, rl.GetShaderLocation(sh, "keyDir"), keyDir[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(sh, rl.GetShaderLocation(sh, "keyColor"), keyColor[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(sh, rl.GetShaderLocation(sh, "fillDir"), fillDir[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(sh, rl.GetShaderLocation(sh, "fillColor"), fillColor[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(sh, rl.GetShaderLocation(sh, "ambient"), ambient[:], rl.ShaderUniformVec3)
	l.SetSurface(32, 0.3)
	l.SetEmissive(color.RGBA{}, 0)
	return l
}

// SetSurface sets the specular exponent and strength.
func (l litShader) SetSurface(shininess, specular float32) {
	rl.SetShaderValue(l.shader, l.shininessLoc, []float32{shininess}, rl.ShaderUniformFloat)
	rl.SetShaderValue(l.shader, l.specularLoc, []float32{specular}, rl.ShaderUniformFloat)
}

// SetEmissive sets the additive glow color and intensity.
func (l litShader) SetEmissive(c color.RGBA, intensity float32) {
	v := []float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, intensity}
	rl.SetShaderValue(l.shader, l.emissiveLoc, v, rl.ShaderUniformVec4)
}

// Lighting owns the lit shaders shared by every mesh renderer.
type Lighting struct {
	Instanced litShader
	Single    litShader

	initialized bool
}

// NewLighting creates the lighting state (Init must run after the window exists).
func NewLighting() *Lighting {
	return &Lighting{}
}

// Init compiles the shaders.
func (l *Lighting) Init() {
	if l.initialized {
		return
	}
	l.Instanced = loadLitShader(litInstancedVS, true)
	l.Single = loadLitShader(litVS, false)
	l.initialized = true
}

// SetViewPos updates the eye position for specular highlights.
func (l *Lighting) SetViewPos(eye rl.Vector3) {
	v := []float32{eye.X, eye.Y, eye.Z}
	rl.SetShaderValue(l.Instanced.shader, l.Instanced.viewPosLoc, v, rl.ShaderUniformVec3)
	rl.SetShaderValue(l.Single.shader, l.Single.viewPosLoc, v, rl.ShaderUniformVec3)
}

// Unload frees resources.
func (l *Lighting) Unload() {
	if l.initialized {
		rl.UnloadShader(l.Instanced.shader)
		rl.UnloadShader(l.Single.shader)
		l.initialized = false
	}
}
