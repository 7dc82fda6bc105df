package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// meshData keeps Go-owned vertex arrays alive for an uploaded mesh.
type meshData struct {
	vertices  []float32
	texcoords []float32
	normals   []float32
}

// upload hands the arrays to raylib and returns the GPU mesh.
func (d *meshData) upload(dynamic bool) rl.Mesh {
	m := rl.Mesh{
		VertexCount:   int32(len(d.vertices) / 3),
		TriangleCount: int32(len(d.vertices) / 9),
	}
	if len(d.vertices) > 0 {
		m.Vertices = &d.vertices[0]
	}
	if len(d.texcoords) > 0 {
		m.Texcoords = &d.texcoords[0]
	}
	if len(d.normals) > 0 {
		m.Normals = &d.normals[0]
	}
	rl.UploadMesh(&m, dynamic)
	return m
}

// octahedronData builds a flat-shaded octahedron of the given radius.
func octahedronData(radius float32) *meshData {
	top := [3]float32{0, radius, 0}
	bottom := [3]float32{0, -radius, 0}
	ring := [4][3]float32{
		{radius, 0, 0},
		{0, 0, -radius},
		{-radius, 0, 0},
		{0, 0, radius},
	}

	d := &meshData{}
	for i := 0; i < 4; i++ {
		a, b := ring[i], ring[(i+1)%4]
		d.triangle(top, a, b)
		d.triangle(bottom, b, a)
	}
	return d
}

// triangle appends a flat-shaded triangle with counter-clockwise winding.
func (d *meshData) triangle(a, b, c [3]float32) {
	ux, uy, uz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
	vx, vy, vz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
	nx, ny, nz := uy*vz-uz*vy, uz*vx-ux*vz, ux*vy-uy*vx
	if l := float32(math.Sqrt(float64(nx*nx + ny*ny + nz*nz))); l > 0 {
		nx, ny, nz = nx/l, ny/l, nz/l
	}
	for _, p := range [3][3]float32{a, b, c} {
		d.vertices = append(d.vertices, p[0], p[1], p[2])
		d.normals = append(d.normals, nx, ny, nz)
	}
	d.texcoords = append(d.texcoords, 0.5, 0, 0, 1, 1, 1)
}

// Mesh library shared by the scene renderers. Every mesh is unit sized and
// scaled by its instance transform.
type Meshes struct {
	Cube       rl.Mesh
	Cylinder   rl.Mesh
	Sphere     rl.Mesh
	LowSphere  rl.Mesh
	Octahedron rl.Mesh
	Plane      rl.Mesh
	Knot       rl.Mesh
	TightKnot  rl.Mesh

	octa        *meshData
	initialized bool
}

// Init generates and uploads the meshes.
func (m *Meshes) Init() {
	if m.initialized {
		return
	}
	m.Cube = rl.GenMeshCube(1, 1, 1)
	m.Cylinder = rl.GenMeshCylinder(1, 1, 32)
	m.Sphere = rl.GenMeshSphere(1, 16, 16)
	m.LowSphere = rl.GenMeshSphere(1, 4, 6)
	m.octa = octahedronData(1)
	m.Octahedron = m.octa.upload(false)
	m.Plane = rl.GenMeshPlane(1, 1, 1, 1)
	m.Knot = rl.GenMeshKnot(1, 0.35, 48, 6)
	m.TightKnot = rl.GenMeshKnot(1, 0.4, 64, 8)
	m.initialized = true
}

// Unload frees resources.
func (m *Meshes) Unload() {
	if !m.initialized {
		return
	}
	for _, mesh := range []*rl.Mesh{&m.Cube, &m.Cylinder, &m.Sphere, &m.LowSphere, &m.Octahedron, &m.Plane, &m.Knot, &m.TightKnot} {
		rl.UnloadMesh(mesh)
	}
	m.octa = nil
	m.initialized = false
}

// transform builds scale, then XYZ rotation, then translation.
func transform(pos rl.Vector3, rot rl.Vector3, scale rl.Vector3) rl.Matrix {
	m := rl.MatrixScale(scale.X, scale.Y, scale.Z)
	m = rl.MatrixMultiply(m, rl.MatrixRotateXYZ(rot))
	return rl.MatrixMultiply(m, rl.MatrixTranslate(pos.X, pos.Y, pos.Z))
}

// chain applies matrices in order, innermost first.
func chain(ms ...rl.Matrix) rl.Matrix {
	out := rl.MatrixIdentity()
	for _, m := range ms {
		out = rl.MatrixMultiply(out, m)
	}
	return out
}

// releaseMaterial frees a material's map array without touching the shared
// shader or textures it points at.
func releaseMaterial(m rl.Material) {
	m.Shader.ID = rl.GetShaderIdDefault()
	m.GetMap(rl.MapDiffuse).Texture.ID = rl.GetTextureIdDefault()
	rl.UnloadMaterial(m)
}
