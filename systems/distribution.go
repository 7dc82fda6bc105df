package systems

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/config"
)

// ErrInvalidConfig is wrapped by every generator parameter error.
var ErrInvalidConfig = config.ErrInvalidConfig

// ID offsets keep element IDs unique across classes.
const (
	AmbientIDOffset  = 0
	OrnamentIDOffset = 10000
	GiftIDOffset     = 20000
	FillerIDOffset   = 30000
)

// Per-class scatter cloud radius, as a multiple of the scene scatter radius.
const (
	ambientScatterScale  = 1.0
	ornamentScatterScale = 1.2
	fillerScatterScale   = 0.6
	giftScatterScale     = 0.8
)

// Squared radial fraction bounds for ornaments.
const (
	ornamentRadialMin = 0.04
	ornamentRadialMax = 0.81
)

// DistributionParams describes the scene geometry shared by all generators.
type DistributionParams struct {
	Count          int
	ScatterRadius  float64
	TreeHeight     float64
	TreeRadiusBase float64
}

// ClassParams builds generator params for one class from the scene config.
func ClassParams(cfg *config.Config, count int) DistributionParams {
	return DistributionParams{
		Count:          count,
		ScatterRadius:  cfg.Scene.ScatterRadius,
		TreeHeight:     cfg.Scene.TreeHeight,
		TreeRadiusBase: cfg.Scene.TreeRadiusBase,
	}
}

// Validate checks that the params describe a non-degenerate scene.
func (p DistributionParams) Validate() error {
	switch {
	case p.Count < 0:
		return fmt.Errorf("%w: count %d is negative", ErrInvalidConfig, p.Count)
	case p.ScatterRadius <= 0:
		return fmt.Errorf("%w: scatter radius %g", ErrInvalidConfig, p.ScatterRadius)
	case p.TreeHeight <= 0:
		return fmt.Errorf("%w: tree height %g", ErrInvalidConfig, p.TreeHeight)
	case p.TreeRadiusBase <= 0:
		return fmt.Errorf("%w: tree base radius %g", ErrInvalidConfig, p.TreeRadiusBase)
	}
	return nil
}

// ConeRadiusAt returns the cone radius at height fraction h in [0, 1].
func (p DistributionParams) ConeRadiusAt(h float64) float64 {
	return p.TreeRadiusBase * (1 - h)
}

// HeightToY maps a height fraction to a world Y, with the cone centered on y=0.
func (p DistributionParams) HeightToY(h float64) float64 {
	return h*p.TreeHeight - p.TreeHeight/2
}

// GenerateAmbient places the ambient class on the cone surface.
// Height is biased toward the base so density per unit area stays roughly uniform.
func GenerateAmbient(rng *rand.Rand, p DistributionParams) ([]components.Element, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("ambient: %w", err)
	}
	out := make([]components.Element, p.Count)
	for i := range out {
		scatter := sampleSphere(rng, p.ScatterRadius*ambientScatterScale)

		h := 1 - math.Sqrt(rng.Float64())
		formation := p.coneSample(rng, h, p.ConeRadiusAt(h))

		col := ColorEmeraldDeep
		var scale float64
		roll := rng.Float64()
		switch {
		case roll > 0.95:
			col = ColorGoldMetallic
			scale = 0.1 + rng.Float64()*0.2
		case roll > 0.90:
			col = ColorWhiteSilk
			scale = 0.05 + rng.Float64()*0.15
		default:
			if rng.Float64() <= 0.4 {
				col = ColorEmeraldBright
			}
			scale = 0.05 + rng.Float64()*0.15
		}

		out[i] = components.Element{
			ID:        AmbientIDOffset + i,
			Scatter:   scatter,
			Formation: formation,
			Scale:     scale,
			Color:     col,
			Speed:     0.02 + rng.Float64()*0.04,
		}
	}
	return out, nil
}

// GenerateOrnaments fills the cone volume with ornaments, biased toward the base
// like the filler. The radial fraction is sqrt(v) with v in [0.04, 0.81], which keeps
// ornaments between 20% and 90% of the local radius.
func GenerateOrnaments(rng *rand.Rand, p DistributionParams) ([]components.Element, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("ornaments: %w", err)
	}
	out := make([]components.Element, p.Count)
	for i := range out {
		scatter := sampleSphere(rng, p.ScatterRadius*ornamentScatterScale)

		h := 1 - math.Sqrt(rng.Float64())
		relative := math.Sqrt(ornamentRadialMin + rng.Float64()*(ornamentRadialMax-ornamentRadialMin))
		formation := p.coneSample(rng, h, p.ConeRadiusAt(h)*relative)

		var col color.RGBA
		switch roll := rng.Float64(); {
		case roll < 0.33:
			col = ColorRedMetallic
		case roll < 0.66:
			col = ColorGoldMetallic
		default:
			col = ColorPlatinum
		}

		out[i] = components.Element{
			ID:        OrnamentIDOffset + i,
			Scatter:   scatter,
			Formation: formation,
			Scale:     0.05 + rng.Float64()*0.15,
			Color:     col,
			Speed:     0.01 + rng.Float64()*0.03,
		}
	}
	return out, nil
}

// GenerateFiller packs small grains into the cone volume, slightly inside the surface.
func GenerateFiller(rng *rand.Rand, p DistributionParams) ([]components.Element, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("filler: %w", err)
	}
	out := make([]components.Element, p.Count)
	for i := range out {
		scatter := sampleSphere(rng, p.ScatterRadius*fillerScatterScale)

		h := 1 - math.Sqrt(rng.Float64())
		radius := p.ConeRadiusAt(h) * math.Sqrt(rng.Float64()) * 0.9
		formation := p.coneSample(rng, h, radius)

		out[i] = components.Element{
			ID:        FillerIDOffset + i,
			Scatter:   scatter,
			Formation: formation,
			Scale:     0.02 + rng.Float64()*0.03,
			Color:     ColorEmeraldDarkest,
			Speed:     0.01 + rng.Float64()*0.02,
		}
	}
	return out, nil
}

// coneSample returns a point at height fraction h and the given radius, at a random angle.
func (p DistributionParams) coneSample(rng *rand.Rand, h, radius float64) r3.Vec {
	angle := rng.Float64() * 2 * math.Pi
	return r3.Vec{
		X: math.Cos(angle) * radius,
		Y: p.HeightToY(h),
		Z: math.Sin(angle) * radius,
	}
}

// sampleSphere returns a point uniformly distributed inside a sphere of the given radius.
func sampleSphere(rng *rand.Rand, radius float64) r3.Vec {
	theta := rng.Float64() * 2 * math.Pi
	phi := math.Acos(rng.Float64()*2 - 1)
	r := math.Cbrt(rng.Float64()) * radius
	dir := r3.Vec{
		X: math.Sin(phi) * math.Cos(theta),
		Y: math.Sin(phi) * math.Sin(theta),
		Z: math.Cos(phi),
	}
	return r3.Scale(r, dir)
}
