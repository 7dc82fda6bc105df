package components

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// ShapeKind is the body shape of a gift.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCylinder
	ShapeStar
)

func (s ShapeKind) String() string {
	switch s {
	case ShapeCylinder:
		return "cylinder"
	case ShapeStar:
		return "star"
	default:
		return "box"
	}
}

// Pattern is the wrapping-paper pattern of a gift.
type Pattern uint8

const (
	PatternSolid Pattern = iota
	PatternStripes
	PatternDots
	PatternSpecial // Stars and snowflakes
)

func (p Pattern) String() string {
	switch p {
	case PatternStripes:
		return "stripes"
	case PatternDots:
		return "dots"
	case PatternSpecial:
		return "special"
	default:
		return "solid"
	}
}

// BowKind sets the size of the bow knot.
type BowKind uint8

const (
	BowSingle BowKind = iota
	BowDouble
	BowComplex
)

// KnotScale returns the knot size multiplier for the bow kind.
func (b BowKind) KnotScale() float64 {
	switch b {
	case BowDouble:
		return 1.2
	case BowComplex:
		return 1.5
	default:
		return 1.0
	}
}

// Decoration describes ribbon, bow and tag trimmings.
type Decoration struct {
	RibbonColor color.RGBA
	HasRibbon   bool
	HasBow      bool
	Bow         BowKind
	HasTag      bool
	TagText     string
}

// Gift is the static record of a discrete, clickable gift.
type Gift struct {
	Element

	Shape ShapeKind
	// Box: (w, h, d). Cylinder: (radius, height, 0). Star: (size, size, depth).
	Dimensions     [3]float64
	TargetRotation r3.Vec // Euler XYZ in formation; scattered gifts tumble freely
	Pattern        Pattern
	Decoration     Decoration
	Message        string

	// CollisionRadius is the footprint accepted by the placement resolver.
	CollisionRadius float64
}

// Height returns the gift's vertical extent.
func (g *Gift) Height() float64 {
	return g.Dimensions[1]
}

// Width returns the first dimension: box width, cylinder radius or star size.
// The lid hinge and the inner card are laid out against it.
func (g *Gift) Width() float64 {
	return g.Dimensions[0]
}

// LidHeight returns the height of the lid, the top 15% of the gift.
func (g *Gift) LidHeight() float64 {
	return g.Dimensions[1] * 0.15
}

// BodyHeight returns the height of the body below the lid.
func (g *Gift) BodyHeight() float64 {
	return g.Dimensions[1] * 0.85
}

// GiftMotion is the smoothed pose of a gift entity.
type GiftMotion struct {
	Position r3.Vec
	Rotation r3.Vec
	Phase    float64 // Idle sway phase, derived from the gift ID
}

// GiftLid is the hinged lid pose, relative to the gift body.
type GiftLid struct {
	Rotation float64 // Hinge angle about X
	Y, Z     float64
}

// GiftInteraction holds the per-gift open/hover state.
type GiftInteraction struct {
	Open    bool
	Hovered bool
	Reveal  TaskHandle // Pending card reveal, zero when none
}

// TaskHandle identifies a scheduled deferred task. Zero means none.
type TaskHandle uint64
