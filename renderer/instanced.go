package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/noel/components"
)

// colorBucket collects the transforms of one palette color.
type colorBucket struct {
	color      color.RGBA
	transforms []rl.Matrix
}

// InstancedRenderer draws one element class with a single mesh, one instanced
// call per palette color.
type InstancedRenderer struct {
	mesh     rl.Mesh
	material rl.Material
	lit      litShader

	shininess, specular float32
	emissive            float32 // Self-illumination as a fraction of the element color

	buckets []colorBucket
	index   map[color.RGBA]int
}

// NewInstancedRenderer creates a renderer for one class. Call after Lighting.Init.
func NewInstancedRenderer(mesh rl.Mesh, lit litShader, shininess, specular, emissive float32) *InstancedRenderer {
	mat := rl.LoadMaterialDefault()
	mat.Shader = lit.shader
	return &InstancedRenderer{
		mesh:      mesh,
		material:  mat,
		lit:       lit,
		shininess: shininess,
		specular:  specular,
		emissive:  emissive,
		index:     make(map[color.RGBA]int),
	}
}

// Prepare buckets the instance buffer by color. Bucket storage is reused across
// frames, so steady-state calls do not allocate.
func (r *InstancedRenderer) Prepare(instances []components.Instance) {
	for i := range r.buckets {
		r.buckets[i].transforms = r.buckets[i].transforms[:0]
	}
	for i := range instances {
		in := &instances[i]
		if in.Scale <= 0 {
			continue
		}
		bi, ok := r.index[in.Color]
		if !ok {
			bi = len(r.buckets)
			r.index[in.Color] = bi
			r.buckets = append(r.buckets, colorBucket{color: in.Color})
		}
		r.buckets[bi].transforms = append(r.buckets[bi].transforms, transform(
			rl.Vector3{X: in.Position[0], Y: in.Position[1], Z: in.Position[2]},
			rl.Vector3{X: in.Rotation[0], Y: in.Rotation[1], Z: in.Rotation[2]},
			rl.Vector3{X: in.Scale, Y: in.Scale, Z: in.Scale},
		))
	}
}

// Draw issues the instanced calls. Must run inside BeginMode3D.
func (r *InstancedRenderer) Draw() {
	r.lit.SetSurface(r.shininess, r.specular)
	for i := range r.buckets {
		b := &r.buckets[i]
		if len(b.transforms) == 0 {
			continue
		}
		r.material.GetMap(rl.MapDiffuse).Color = b.color
		r.lit.SetEmissive(b.color, r.emissive)
		rl.DrawMeshInstanced(r.mesh, r.material, b.transforms, len(b.transforms))
	}
	r.lit.SetEmissive(color.RGBA{}, 0)
}

// Count returns the number of instances prepared for the next draw.
func (r *InstancedRenderer) Count() int {
	n := 0
	for i := range r.buckets {
		n += len(r.buckets[i].transforms)
	}
	return n
}

// Unload releases the material's map array. The mesh and shader are shared and
// owned elsewhere.
func (r *InstancedRenderer) Unload() {
	releaseMaterial(r.material)
	r.buckets = nil
	r.index = nil
}
