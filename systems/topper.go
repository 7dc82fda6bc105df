package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/noel/components"
)

const (
	topperLift      = 1.0 // Height above the apex
	topperScaleLerp = 0.05
	topperSpinRate  = 0.5
)

// Topper is the star above the apex. It grows in while in formation and
// shrinks away while scattered.
type Topper struct {
	Position r3.Vec
	Size     float64
	Scale    float64 // 0 hidden, 1 full size
	Spin     float64 // Rotation about Y
}

// NewTopper places a hidden topper above a cone of the given height.
func NewTopper(treeHeight, size float64) *Topper {
	return &Topper{
		Position: r3.Vec{Y: treeHeight/2 + topperLift},
		Size:     size,
	}
}

// Update eases the scale toward the mode target and spins at elapsed time t.
func (tp *Topper) Update(mode components.Mode, t float64) {
	target := 0.0
	if mode == components.ModeFormation {
		target = 1
	}
	tp.Scale += (target - tp.Scale) * topperScaleLerp
	tp.Spin = t * topperSpinRate
}

// Visible reports whether the topper is large enough to draw.
func (tp *Topper) Visible() bool {
	return tp.Scale > 1e-3
}
