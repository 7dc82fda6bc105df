package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/systems"
)

// Gift part proportions.
const (
	ribbonBand     = 0.15 // Ribbon width as a fraction of the face
	ribbonInflate  = 1.01
	lidInflate     = 1.05
	lidRibbonScale = 1.06
	knotRadius     = 0.18 // Knot radius as a fraction of the gift width
	hoverGlow      = 0.5
	openGlow       = 0.25
	cardGlow       = 0.2
	cardTilt       = 0.2
)

var (
	tagSize   = rl.Vector3{X: 0.15, Y: 0.08, Z: 0.005}
	tagOffset = rl.Vector3{X: 0.1, Y: -0.15, Z: 0.1}
)

// GiftRenderer draws gifts part by part: body, ribbons, lid, bow, tag and,
// once open, the inner card.
type GiftRenderer struct {
	meshes   *Meshes
	lit      litShader
	patterns *PatternCache

	plain     rl.Material
	papers    map[uint32]rl.Material // By texture ID
	glowCache map[color.RGBA]color.RGBA
}

// NewGiftRenderer creates a gift renderer. Call after Lighting.Init and Meshes.Init.
func NewGiftRenderer(meshes *Meshes, lit litShader) *GiftRenderer {
	plain := rl.LoadMaterialDefault()
	plain.Shader = lit.shader
	return &GiftRenderer{
		meshes:    meshes,
		lit:       lit,
		patterns:  NewPatternCache(),
		plain:     plain,
		papers:    make(map[uint32]rl.Material),
		glowCache: make(map[color.RGBA]color.RGBA),
	}
}

// Draw renders every gift. Must run inside BeginMode3D.
func (r *GiftRenderer) Draw(gifts *systems.GiftSystem) {
	gifts.Each(func(v systems.GiftView) {
		r.drawGift(v)
	})
	r.lit.SetEmissive(color.RGBA{}, 0)
}

func (r *GiftRenderer) drawGift(v systems.GiftView) {
	g := v.Gift
	w := float32(g.Dimensions[0])
	h := float32(g.Dimensions[1])
	d := float32(g.Dimensions[2])
	lh := float32(g.LidHeight())
	bh := float32(g.BodyHeight())

	group := chain(
		rl.MatrixRotateXYZ(vec3(v.Motion.Rotation.X, v.Motion.Rotation.Y, v.Motion.Rotation.Z)),
		rl.MatrixTranslate(float32(v.Motion.Position.X), float32(v.Motion.Position.Y), float32(v.Motion.Position.Z)),
	)

	paper := r.paperMaterial(g)
	glow, glowAmt := color.RGBA{}, float32(0)
	switch {
	case v.Hovered && !v.Open:
		glow, glowAmt = r.glowColor(g.Color), hoverGlow
	case v.Open:
		glow, glowAmt = systems.ColorGoldMetallic, openGlow
	}

	// Body
	r.lit.SetSurface(24, 0.15)
	r.lit.SetEmissive(glow, glowAmt)
	bodyCenter := rl.MatrixTranslate(0, -lh/2, 0)
	switch g.Shape {
	case components.ShapeBox:
		r.draw(r.meshes.Cube, paper, chain(rl.MatrixScale(w, bh, d), bodyCenter, group))
	case components.ShapeCylinder:
		r.draw(r.meshes.Cylinder, paper, chain(rl.MatrixTranslate(0, -0.5, 0), rl.MatrixScale(w, bh, w), bodyCenter, group))
	case components.ShapeStar:
		r.draw(r.meshes.Octahedron, paper, chain(rl.MatrixScale(w, w, w), bodyCenter, group))
	}

	r.lit.SetEmissive(color.RGBA{}, 0)
	ribbon := g.Decoration.RibbonColor
	banded := g.Shape == components.ShapeBox && g.Decoration.HasRibbon
	if banded {
		r.lit.SetSurface(48, 0.4)
		r.drawBands(ribbon, w, bh, d, ribbonInflate, 1, chain(bodyCenter, group))
	}

	// Lid pivots about its own center
	lid := chain(
		rl.MatrixRotateX(float32(v.Lid.Rotation)),
		rl.MatrixTranslate(0, float32(v.Lid.Y), float32(v.Lid.Z)),
		group,
	)
	r.lit.SetSurface(24, 0.15)
	r.lit.SetEmissive(glow, glowAmt)
	switch g.Shape {
	case components.ShapeBox:
		r.draw(r.meshes.Cube, paper, chain(rl.MatrixScale(w*lidInflate, lh, d*lidInflate), lid))
	case components.ShapeCylinder:
		r.draw(r.meshes.Cylinder, paper, chain(rl.MatrixTranslate(0, -0.5, 0), rl.MatrixScale(w*lidInflate, lh, w*lidInflate), lid))
	}
	r.lit.SetEmissive(color.RGBA{}, 0)
	if banded {
		r.lit.SetSurface(48, 0.4)
		r.drawBands(ribbon, w, lh, d, lidRibbonScale, ribbonInflate, lid)
	}

	if g.Decoration.HasBow {
		top := chain(rl.MatrixTranslate(0, lh/2, 0), lid)
		r.drawBow(g, ribbon, w, top)
		if g.Decoration.HasTag {
			r.lit.SetSurface(4, 0)
			tag := chain(
				rl.MatrixScale(tagSize.X, tagSize.Y, tagSize.Z),
				rl.MatrixRotateZ(-0.2),
				rl.MatrixTranslate(tagOffset.X, tagOffset.Y, tagOffset.Z),
				top,
			)
			r.drawTinted(r.meshes.Cube, systems.ColorCardPaper, tag)
		}
	}

	if v.Open {
		// Plane meshes face +Y; stand the card up to face +Z, then tilt
		card := chain(
			rl.MatrixScale(w*0.8, 1, h*0.6),
			rl.MatrixRotateX(math.Pi/2+cardTilt),
			rl.MatrixTranslate(0, bh/2, 0),
			group,
		)
		r.lit.SetSurface(4, 0)
		r.lit.SetEmissive(systems.ColorCardPaper, cardGlow)
		r.drawTinted(r.meshes.Plane, systems.ColorCardPaper, card)
		r.lit.SetEmissive(color.RGBA{}, 0)
	}
}

// drawBands draws the two crossing ribbon bands around a box section.
func (r *GiftRenderer) drawBands(c color.RGBA, w, h, d, inflateXZ, inflateY float32, parent rl.Matrix) {
	r.drawTinted(r.meshes.Cube, c, chain(rl.MatrixScale(w*ribbonBand*inflateXZ, h*inflateY, d*inflateXZ), parent))
	r.drawTinted(r.meshes.Cube, c, chain(rl.MatrixScale(w*inflateXZ, h*inflateY, d*ribbonBand*inflateXZ), parent))
}

// drawBow draws the knot on top of the lid.
func (r *GiftRenderer) drawBow(g *components.Gift, c color.RGBA, w float32, parent rl.Matrix) {
	mesh := r.meshes.Knot
	if g.Decoration.Bow == components.BowComplex {
		mesh = r.meshes.TightKnot
	}
	s := w * knotRadius * float32(g.Decoration.Bow.KnotScale())
	r.lit.SetSurface(64, 0.5)
	r.drawTinted(mesh, c, chain(rl.MatrixScale(s, s, s), rl.MatrixRotateX(math.Pi/2), parent))
}

// paperMaterial returns the textured material for patterned paper, or the
// plain material tinted with the gift color.
func (r *GiftRenderer) paperMaterial(g *components.Gift) rl.Material {
	tex, ok := r.patterns.Get(g.Color, g.Pattern)
	if !ok {
		r.plain.GetMap(rl.MapDiffuse).Color = g.Color
		return r.plain
	}
	mat, ok := r.papers[tex.ID]
	if !ok {
		mat = rl.LoadMaterialDefault()
		mat.Shader = r.lit.shader
		rl.SetMaterialTexture(&mat, rl.MapDiffuse, tex)
		mat.GetMap(rl.MapDiffuse).Color = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		r.papers[tex.ID] = mat
	}
	return mat
}

// glowColor pulls the gift color toward gold for the hover rim.
func (r *GiftRenderer) glowColor(base color.RGBA) color.RGBA {
	if c, ok := r.glowCache[base]; ok {
		return c
	}
	gold, _ := colorful.MakeColor(systems.ColorGoldMetallic)
	paper, ok := colorful.MakeColor(base)
	if !ok {
		return systems.ColorGoldMetallic
	}
	cr, cg, cb := paper.BlendLab(gold, 0.75).Clamped().RGB255()
	c := color.RGBA{R: cr, G: cg, B: cb, A: 255}
	r.glowCache[base] = c
	return c
}

func (r *GiftRenderer) drawTinted(mesh rl.Mesh, c color.RGBA, m rl.Matrix) {
	r.plain.GetMap(rl.MapDiffuse).Color = c
	rl.DrawMesh(mesh, r.plain, m)
}

func (r *GiftRenderer) draw(mesh rl.Mesh, mat rl.Material, m rl.Matrix) {
	rl.DrawMesh(mesh, mat, m)
}

// Unload frees materials and cached textures.
func (r *GiftRenderer) Unload() {
	for id, mat := range r.papers {
		releaseMaterial(mat)
		delete(r.papers, id)
	}
	releaseMaterial(r.plain)
	r.patterns.Unload()
}

func vec3(x, y, z float64) rl.Vector3 {
	return rl.Vector3{X: float32(x), Y: float32(y), Z: float32(z)}
}
