// Package components defines the records and ECS components shared by the scene systems.
package components

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mode selects which of the two arrangements every element moves toward.
type Mode uint8

const (
	ModeScattered Mode = iota // Diffuse spherical cloud (zero value)
	ModeFormation             // Cone-shaped tree
)

// String returns the mode name used in logs and the HUD.
func (m Mode) String() string {
	if m == ModeFormation {
		return "formation"
	}
	return "scattered"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeFormation {
		return ModeScattered
	}
	return ModeFormation
}

// Element is the static record of one animated element.
// Both targets are fixed at generation; only the renderer-side current position moves.
type Element struct {
	ID        int
	Scatter   r3.Vec // Target in ModeScattered
	Formation r3.Vec // Target in ModeFormation
	Scale     float64
	Color     color.RGBA
	Speed     float64 // Reserved, not read by the motion rules
}

// Target returns the element's target position for the given mode.
func (e *Element) Target(m Mode) r3.Vec {
	if m == ModeFormation {
		return e.Formation
	}
	return e.Scatter
}

// Instance is one slot of a dense per-class render buffer.
type Instance struct {
	Position [3]float32
	Rotation [3]float32 // Euler XYZ, radians
	Scale    float32
	Color    color.RGBA
}

// PlacementEntry is an accepted footprint in the placement working set.
type PlacementEntry struct {
	Center r3.Vec
	Radius float64
}
