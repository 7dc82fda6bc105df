package systems

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/config"
)

// GiftParams extends the scene geometry with gift placement tuning.
type GiftParams struct {
	DistributionParams

	MaxAttempts        int
	CollisionSafety    float64 // Footprint radius multiplier
	StackedMin         int     // Gifts always stacked at the base
	StackedExtra       int     // Random extra stacked gifts in [0, StackedExtra)
	StackedRadiusMin   float64
	StackedRadiusSpan  float64
	SurfaceHeightLimit float64 // Surface gifts stay below this height fraction
	SurfaceOffsetScale float64 // Outward push as a fraction of the gift's half-extent
}

// GiftParamsFromConfig builds gift params from the scene config.
func GiftParamsFromConfig(cfg *config.Config) GiftParams {
	g := cfg.Gifts
	return GiftParams{
		DistributionParams: ClassParams(cfg, g.Count),
		MaxAttempts:        g.MaxAttempts,
		CollisionSafety:    g.CollisionSafety,
		StackedMin:         g.StackedMin,
		StackedExtra:       g.StackedExtra,
		StackedRadiusMin:   g.StackedRadiusMin,
		StackedRadiusSpan:  g.StackedRadiusSpan,
		SurfaceHeightLimit: g.SurfaceHeightLimit,
		SurfaceOffsetScale: g.SurfaceOffsetScale,
	}
}

// Validate checks geometry and placement tuning.
func (p GiftParams) Validate() error {
	if err := p.DistributionParams.Validate(); err != nil {
		return err
	}
	switch {
	case p.CollisionSafety <= 0:
		return fmt.Errorf("%w: collision safety %g", ErrInvalidConfig, p.CollisionSafety)
	case p.StackedMin < 0 || p.StackedExtra < 0:
		return fmt.Errorf("%w: stacked count %d+%d", ErrInvalidConfig, p.StackedMin, p.StackedExtra)
	case p.SurfaceHeightLimit <= 0 || p.SurfaceHeightLimit > 1:
		return fmt.Errorf("%w: surface height limit %g", ErrInvalidConfig, p.SurfaceHeightLimit)
	}
	return nil
}

// PlacementReport summarizes one gift generation pass.
type PlacementReport struct {
	Count     int
	Stacked   int
	Attempts  []int // Attempts spent per gift
	Exhausted []int // Indices of gifts placed on their last, colliding candidate
}

// ExhaustedCount returns how many gifts fell back to a colliding candidate.
func (r PlacementReport) ExhaustedCount() int {
	return len(r.Exhausted)
}

// Greetings revealed when a gift is opened.
var Greetings = []string{
	"May your studies flourish\nand your days read like poetry.",
	"Wishing you a bright road ahead,\nsailing the sea of knowledge.",
	"May every effort you make\nblossom into something brilliant.",
	"May your grades climb higher\nand every day shine with confidence.",
	"Keep what you love close,\nchase mountains and seas, and succeed.",
	"Wishing you clear skies,\nlovely things, and smooth exams.",
	"On the road of learning,\nmay you meet a better you.",
	"May wisdom walk beside you,\nin study and in life.",
	"May your future sparkle like the stars,\nwith study and life going your way.",
	"Something new to gain each day,\nhappy learning, happy living.",
	"May books light a lamp in your heart\nand wisdom help you grow.",
	"May every dream you hold\ncome true through your hard work.",
	"Having sailed a thousand ships,\nmay you return young at heart.",
	"Wishing you luck upon luck\nand joy in everything you learn.",
	"May your talents find their stage\nand life surprise you everywhere.",
	"May your wishes come true\nas you stride forward in learning.",
	"May you hold endless possibility,\neach day better than the last.",
	"May there be light in your eyes\nand love in your heart.",
	"May your persistence shine at last,\nand life be warm and kind.",
	"Feet on the ground, eyes on the stars,\nmay your learning bear fruit.",
}

// GenerateGifts builds gift records, placing them without overlap where the
// retry budget allows. The first 3-4 gifts (by default) are stacked on the ground
// ring around the base; the rest sit just outside the cone surface.
func GenerateGifts(rng *rand.Rand, p GiftParams) ([]components.Gift, PlacementReport, error) {
	if err := p.Validate(); err != nil {
		return nil, PlacementReport{}, fmt.Errorf("gifts: %w", err)
	}

	stacked := p.StackedMin
	if p.StackedExtra > 0 {
		stacked += rng.Intn(p.StackedExtra)
	}
	report := PlacementReport{
		Count:    p.Count,
		Stacked:  min(stacked, p.Count),
		Attempts: make([]int, p.Count),
	}

	messages := make([]string, len(Greetings))
	copy(messages, Greetings)
	rng.Shuffle(len(messages), func(i, j int) { messages[i], messages[j] = messages[j], messages[i] })

	resolver := NewPlacementResolver(p.MaxAttempts, p.Count)
	gifts := make([]components.Gift, p.Count)

	for i := range gifts {
		g := &gifts[i]
		g.ID = GiftIDOffset + i
		g.Scale = 1
		g.Shape, g.Dimensions = rollShape(rng)
		g.CollisionRadius = collisionRadius(g.Shape, g.Dimensions, p.CollisionSafety)

		var sample func() (r3.Vec, r3.Vec)
		if i < stacked {
			sample = func() (r3.Vec, r3.Vec) { return p.sampleStacked(rng, g.Dimensions) }
		} else {
			sample = func() (r3.Vec, r3.Vec) { return p.sampleSurface(rng, g.Shape, g.Dimensions) }
		}
		placed := resolver.Resolve(sample, g.CollisionRadius)
		g.Formation = placed.Center
		g.TargetRotation = placed.Rotation
		report.Attempts[i] = placed.Attempts
		if placed.Exhausted {
			report.Exhausted = append(report.Exhausted, i)
			slog.Warn("gift placement exhausted",
				"gift", g.ID,
				"attempts", placed.Attempts,
				"radius", g.CollisionRadius,
			)
		}

		g.Scatter = sampleSphere(rng, p.ScatterRadius*giftScatterScale)
		g.Speed = 0.02 + rng.Float64()*0.03

		g.Color = rollGiftColor(rng)
		g.Pattern = rollPattern(rng)
		g.Decoration = rollDecoration(rng, g.Color)
		g.Message = messages[i%len(messages)]
	}

	return gifts, report, nil
}

// sampleStacked draws a resting pose on the ground ring around the base.
func (p GiftParams) sampleStacked(rng *rand.Rand, dims [3]float64) (r3.Vec, r3.Vec) {
	angle := rng.Float64() * 2 * math.Pi
	radius := p.StackedRadiusMin + rng.Float64()*p.StackedRadiusSpan
	center := r3.Vec{
		X: math.Cos(angle) * radius,
		Y: -p.TreeHeight/2 + dims[1]/2,
		Z: math.Sin(angle) * radius,
	}
	rot := r3.Vec{
		X: (rng.Float64() - 0.5) * 0.2,
		Y: rng.Float64() * 2 * math.Pi,
		Z: (rng.Float64() - 0.5) * 0.2,
	}
	return center, rot
}

// sampleSurface draws a pose just outside the cone surface, facing outward.
func (p GiftParams) sampleSurface(rng *rand.Rand, shape components.ShapeKind, dims [3]float64) (r3.Vec, r3.Vec) {
	h := (1 - math.Sqrt(rng.Float64())) * p.SurfaceHeightLimit
	angle := rng.Float64() * 2 * math.Pi

	offset := dims[0]
	if shape == components.ShapeBox {
		offset = dims[2] / 2
	}
	radius := p.ConeRadiusAt(h) + offset*p.SurfaceOffsetScale

	center := r3.Vec{
		X: math.Cos(angle) * radius,
		Y: p.HeightToY(h),
		Z: math.Sin(angle) * radius,
	}
	return center, r3.Vec{Y: -angle}
}

// collisionRadius returns the footprint radius for a shape, inflated by safety.
func collisionRadius(shape components.ShapeKind, dims [3]float64, safety float64) float64 {
	if shape == components.ShapeCylinder {
		return dims[0] * safety
	}
	return dims[0] / 2 * safety
}

func rollShape(rng *rand.Rand) (components.ShapeKind, [3]float64) {
	switch roll := rng.Float64(); {
	case roll < 0.6:
		size := 1.0
		switch v := rng.Float64(); {
		case v >= 0.8:
			size = 1.8
		case v >= 0.5:
			size = 1.4
		}
		return components.ShapeBox, [3]float64{size, size, size}
	case roll < 0.8:
		radius := 0.6 + rng.Float64()*0.3
		height := 1.0 + rng.Float64()
		return components.ShapeCylinder, [3]float64{radius, height, 0}
	default:
		size := 0.8 + rng.Float64()*0.6
		return components.ShapeStar, [3]float64{size, size, 0.4}
	}
}

func rollGiftColor(rng *rand.Rand) color.RGBA {
	switch roll := rng.Float64(); {
	case roll < 0.3:
		return GiftRed
	case roll < 0.6:
		return GiftGreen
	case roll < 0.8:
		return GiftGold
	default:
		return GiftBlue
	}
}

func rollPattern(rng *rand.Rand) components.Pattern {
	switch roll := rng.Float64(); {
	case roll < 0.4:
		return components.PatternStripes
	case roll < 0.7:
		return components.PatternDots
	case roll < 0.9:
		return components.PatternSolid
	default:
		return components.PatternSpecial
	}
}

func rollDecoration(rng *rand.Rand, body color.RGBA) components.Decoration {
	d := components.Decoration{RibbonColor: GiftRed}
	if body == GiftRed {
		d.RibbonColor = GiftGold
	}

	switch roll := rng.Float64(); {
	case roll < 0.5:
		d.Bow = components.BowSingle
	case roll < 0.8:
		d.Bow = components.BowDouble
	default:
		d.Bow = components.BowComplex
	}

	switch {
	case rng.Float64() > 0.5:
		d.TagText = "Merry Xmas"
	case rng.Float64() > 0.5:
		d.TagText = "To: You"
	default:
		d.TagText = "From: Santa"
	}

	d.HasBow = rng.Float64() < 0.8
	d.HasTag = rng.Float64() < 0.5
	d.HasRibbon = rng.Float64() < 0.6
	return d
}
