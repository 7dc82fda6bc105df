package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/systems"
)

// PatternSize is the edge length of generated wrapping-paper images.
const PatternSize = 512

var (
	patternInk  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	specialInk  = systems.ColorGoldMetallic
	specialMark = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// GeneratePattern paints a wrapping-paper image for the base color and pattern.
// Solid returns nil; the caller tints the untextured mesh instead.
// The caller owns the returned image.
func GeneratePattern(base color.RGBA, p components.Pattern) *rl.Image {
	if p == components.PatternSolid {
		return nil
	}
	img := rl.GenImageColor(PatternSize, PatternSize, base)
	switch p {
	case components.PatternStripes:
		paintStripes(img, patternInk)
	case components.PatternDots:
		paintDots(img, patternInk)
	case components.PatternSpecial:
		paintSpecial(img)
	}
	return img
}

// paintStripes draws 40px diagonal bands every 80px.
func paintStripes(img *rl.Image, ink color.RGBA) {
	const lineWidth, step = 40, 80
	for i := float32(-PatternSize); i < 2*PatternSize; i += step {
		a := rl.Vector2{X: i, Y: 0}
		b := rl.Vector2{X: i + lineWidth, Y: 0}
		c := rl.Vector2{X: i - PatternSize + lineWidth, Y: PatternSize}
		d := rl.Vector2{X: i - PatternSize, Y: PatternSize}
		fillTriangle(img, a, b, c, ink)
		fillTriangle(img, a, c, d, ink)
	}
}

// paintDots draws a staggered grid of 12px dots.
func paintDots(img *rl.Image, ink color.RGBA) {
	const step, radius = 60, 12
	for x := int32(0); x < PatternSize; x += step {
		for y := int32(0); y < PatternSize; y += step {
			offset := int32(30)
			if y%120 == 0 {
				offset = 0
			}
			rl.ImageDrawCircle(img, x+offset, y, radius, ink)
		}
	}
}

// paintSpecial scatters two snowflakes and two stars.
func paintSpecial(img *rl.Image) {
	paintSnowflake(img, 100, 100, 28, specialMark)
	paintSnowflake(img, 300, 300, 28, specialMark)
	paintStar(img, 400, 100, 30, specialInk)
	paintStar(img, 100, 400, 30, specialInk)
}

// paintStar draws a filled five-pointed star.
func paintStar(img *rl.Image, cx, cy, r float32, ink color.RGBA) {
	center := rl.Vector2{X: cx, Y: cy}
	var pts [10]rl.Vector2
	for i := range pts {
		rad := r
		if i%2 == 1 {
			rad = r * 0.45
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		pts[i] = rl.Vector2{X: cx + rad*float32(math.Cos(a)), Y: cy + rad*float32(math.Sin(a))}
	}
	for i := range pts {
		fillTriangle(img, center, pts[i], pts[(i+1)%len(pts)], ink)
	}
}

// paintSnowflake draws six arms with a pair of branches each.
func paintSnowflake(img *rl.Image, cx, cy, r float32, ink color.RGBA) {
	for k := 0; k < 6; k++ {
		a := float64(k) * math.Pi / 3
		dx, dy := float32(math.Cos(a)), float32(math.Sin(a))
		tip := rl.Vector2{X: cx + dx*r, Y: cy + dy*r}
		rl.ImageDrawLineEx(img, rl.Vector2{X: cx, Y: cy}, tip, 5, ink)

		mid := rl.Vector2{X: cx + dx*r*0.6, Y: cy + dy*r*0.6}
		for _, side := range []float64{-1, 1} {
			b := a + side*math.Pi/4
			end := rl.Vector2{X: mid.X + float32(math.Cos(b))*r*0.3, Y: mid.Y + float32(math.Sin(b))*r*0.3}
			rl.ImageDrawLineEx(img, mid, end, 3, ink)
		}
	}
}

// fillTriangle fills a triangle. Either winding rasterizes.
func fillTriangle(img *rl.Image, a, b, c rl.Vector2, ink color.RGBA) {
	rl.ImageDrawTriangle(img, a, b, c, ink)
}

// patternKey identifies a cached texture.
type patternKey struct {
	color   color.RGBA
	pattern components.Pattern
}

// PatternCache lazily builds one texture per (color, pattern) pair.
type PatternCache struct {
	textures map[patternKey]rl.Texture2D
}

// NewPatternCache creates an empty cache.
func NewPatternCache() *PatternCache {
	return &PatternCache{textures: make(map[patternKey]rl.Texture2D)}
}

// Get returns the texture for a gift's paper, or false for solid paper.
func (c *PatternCache) Get(base color.RGBA, p components.Pattern) (rl.Texture2D, bool) {
	if p == components.PatternSolid {
		return rl.Texture2D{}, false
	}
	key := patternKey{base, p}
	if tex, ok := c.textures[key]; ok {
		return tex, true
	}
	img := GeneratePattern(base, p)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	rl.SetTextureWrap(tex, rl.WrapRepeat)
	c.textures[key] = tex
	return tex, true
}

// Len returns the number of cached textures.
func (c *PatternCache) Len() int {
	return len(c.textures)
}

// Unload frees every cached texture.
func (c *PatternCache) Unload() {
	for k, tex := range c.textures {
		rl.UnloadTexture(tex)
		delete(c.textures, k)
	}
}
