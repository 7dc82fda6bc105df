package systems

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/pthm-cable/noel/config"
)

// Snow spawn box and appearance constants.
const (
	snowSpreadXZ     = 100.0 // Initial X/Z spread, centered on the origin
	snowDriftScale   = 0.1   // Wind displacement per unit of fall distance
	snowSizeRef      = 400.0 // Point size numerator, in pixels
	snowFadeNear     = 40.0
	snowFadeFar      = 80.0
	snowSparklePower = 15.0
)

// SnowParams configures the fall simulator.
type SnowParams struct {
	Count      int
	Size       float64
	Speed      float64
	WindX      float64
	WindZ      float64
	Bound      float64 // Vertical wrap span, centered on y=0
	Wrap       float64 // X/Z half-extent
	Buffer     float64 // Clearance kept outside the cone
	TreeHeight float64
	TreeRadius float64
	Color      color.RGBA
}

// SnowParamsFromConfig builds snow params from the scene config.
func SnowParamsFromConfig(cfg *config.Config) SnowParams {
	s := cfg.Snow
	return SnowParams{
		Count:      s.Count,
		Size:       s.Size,
		Speed:      s.Speed,
		WindX:      s.WindX,
		WindZ:      s.WindZ,
		Bound:      s.Bound,
		Wrap:       s.Wrap,
		Buffer:     s.ConeBuffer,
		TreeHeight: cfg.Scene.TreeHeight,
		TreeRadius: cfg.Scene.TreeRadiusBase,
		Color:      cfg.Derived.SnowColor,
	}
}

// SnowFlake holds the static per-flake attributes uploaded once to the GPU.
type SnowFlake struct {
	Position [3]float32 // Initial position
	Velocity [3]float32 // Y is the fall rate multiplier
	Scale    float32
	Random   float32 // Sparkle phase seed in [0, 1)
}

// SnowUniforms is the small parameter set the vertex stage reads every frame.
// Only Time changes after creation.
type SnowUniforms struct {
	Time       float32
	TreeHeight float32
	TreeRadius float32
	Wind       [2]float32 // X, Z
	Speed      float32
	Color      color.RGBA
	Count      int
	Bound      float32
	Wrap       float32
	Buffer     float32
}

// SnowField is the CPU side of the fall simulator: static attributes plus uniforms.
type SnowField struct {
	Flakes   []SnowFlake
	Uniforms SnowUniforms
}

// NewSnowField generates per-flake attributes.
func NewSnowField(rng *rand.Rand, p SnowParams) (*SnowField, error) {
	switch {
	case p.Count < 0:
		return nil, fmt.Errorf("snow: %w: count %d is negative", ErrInvalidConfig, p.Count)
	case p.Bound <= 0 || p.Wrap <= 0:
		return nil, fmt.Errorf("snow: %w: bound %g wrap %g", ErrInvalidConfig, p.Bound, p.Wrap)
	case p.TreeHeight <= 0 || p.TreeRadius <= 0:
		return nil, fmt.Errorf("snow: %w: cone %gx%g", ErrInvalidConfig, p.TreeRadius, p.TreeHeight)
	}

	flakes := make([]SnowFlake, p.Count)
	for i := range flakes {
		f := &flakes[i]
		f.Position = [3]float32{
			float32((rng.Float64() - 0.5) * snowSpreadXZ),
			float32((rng.Float64() - 0.5) * p.Bound),
			float32((rng.Float64() - 0.5) * snowSpreadXZ),
		}
		f.Velocity = [3]float32{
			float32((rng.Float64() - 0.5) * 0.5),
			float32(1 + rng.Float64()),
			float32((rng.Float64() - 0.5) * 0.5),
		}
		f.Scale = float32(p.Size * (0.5 + rng.Float64()))
		f.Random = float32(rng.Float64())
	}

	return &SnowField{
		Flakes: flakes,
		Uniforms: SnowUniforms{
			TreeHeight: float32(p.TreeHeight),
			TreeRadius: float32(p.TreeRadius),
			Wind:       [2]float32{float32(p.WindX), float32(p.WindZ)},
			Speed:      float32(p.Speed),
			Color:      p.Color,
			Count:      p.Count,
			Bound:      float32(p.Bound),
			Wrap:       float32(p.Wrap),
			Buffer:     float32(p.Buffer),
		},
	}, nil
}

// SetTime updates the only per-frame uniform.
func (f *SnowField) SetTime(t float32) {
	f.Uniforms.Time = t
}

// FlakeSample is the evaluated state of one flake at one instant.
type FlakeSample struct {
	Position  [3]float32
	Distance  float32 // From the eye
	PointSize float32 // Pixels
	Alpha     float32
}

// FlakePosition evaluates where a flake is at the uniforms' time.
// This mirrors the vertex shader in renderer/shaders.go line for line.
func FlakePosition(fl SnowFlake, u SnowUniforms) [3]float32 {
	x, y, z := fl.Position[0], fl.Position[1], fl.Position[2]
	t := u.Time

	fall := t * u.Speed * fl.Velocity[1]
	y = wrapf(y-fall+u.Bound/2, u.Bound) - u.Bound/2

	turb := math32.Sin(t*0.5+x*0.1) * math32.Sin(t*0.3+z*0.1)
	x += (u.Wind[0] + turb) * fall * snowDriftScale
	z += (u.Wind[1] + turb*0.5) * fall * snowDriftScale

	x = wrapf(x+u.Wrap, 2*u.Wrap) - u.Wrap
	z = wrapf(z+u.Wrap, 2*u.Wrap) - u.Wrap

	h := y + u.TreeHeight/2
	if h > 0 && h < u.TreeHeight {
		r := u.TreeRadius * (1 - h/u.TreeHeight)
		d := math32.Sqrt(x*x + z*z)
		if d < r {
			dx, dz := float32(1), float32(0)
			if d > 0 {
				dx, dz = x/d, z/d
			}
			x = dx * (r + u.Buffer)
			z = dz * (r + u.Buffer)
		}
	}
	return [3]float32{x, y, z}
}

// EvaluateFlake evaluates a flake as seen from eye.
func EvaluateFlake(fl SnowFlake, u SnowUniforms, eye [3]float32) FlakeSample {
	pos := FlakePosition(fl, u)
	dx, dy, dz := pos[0]-eye[0], pos[1]-eye[1], pos[2]-eye[2]
	dist := math32.Sqrt(dx*dx + dy*dy + dz*dz)

	s := FlakeSample{Position: pos, Distance: dist}
	if dist > 0 {
		s.PointSize = fl.Scale * snowSizeRef / dist
	}
	s.Alpha = smoothstep(snowFadeFar, snowFadeNear, dist)
	return s
}

// Sparkle returns the glint intensity of a flake at time t.
func Sparkle(random, t float32) float32 {
	return math32.Pow(math32.Abs(math32.Sin(t*3+random*100)), snowSparklePower)
}

// wrapf is a floor-based modulo, always in [0, m).
func wrapf(x, m float32) float32 {
	r := x - m*math32.Floor(x/m)
	if r >= m {
		r -= m
	}
	return r
}

// smoothstep matches GLSL smoothstep, including reversed edges.
func smoothstep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
