package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/noel/components"
)

// MinPlacementAttempts is the smallest retry budget the resolver accepts.
const MinPlacementAttempts = 50

// Placement is the outcome of resolving one footprint.
type Placement struct {
	Center   r3.Vec
	Rotation r3.Vec
	Attempts int
	// Exhausted is set when every attempt collided; Center is then the last candidate
	// and the footprint was not added to the working set.
	Exhausted bool
}

// PlacementResolver places circular footprints by rejection sampling against
// the footprints it has already accepted.
type PlacementResolver struct {
	MaxAttempts int
	Entries     []components.PlacementEntry
}

// NewPlacementResolver creates a resolver with the given retry budget,
// raised to MinPlacementAttempts if lower.
func NewPlacementResolver(maxAttempts, capacity int) *PlacementResolver {
	if maxAttempts < MinPlacementAttempts {
		maxAttempts = MinPlacementAttempts
	}
	return &PlacementResolver{
		MaxAttempts: maxAttempts,
		Entries:     make([]components.PlacementEntry, 0, capacity),
	}
}

// Resolve draws candidates from sample until one clears every accepted entry.
// sample returns a candidate center and the rotation that goes with it.
// Accepted footprints are appended to Entries and never revisited.
func (r *PlacementResolver) Resolve(sample func() (center, rotation r3.Vec), radius float64) Placement {
	var p Placement
	for p.Attempts < r.MaxAttempts {
		p.Attempts++
		p.Center, p.Rotation = sample()
		if !r.Collides(p.Center, radius) {
			r.Entries = append(r.Entries, components.PlacementEntry{Center: p.Center, Radius: radius})
			return p
		}
	}
	p.Exhausted = true
	return p
}

// Collides reports whether a footprint at center would overlap any accepted entry.
// Touching footprints do not collide.
func (r *PlacementResolver) Collides(center r3.Vec, radius float64) bool {
	for _, e := range r.Entries {
		if r3.Norm(r3.Sub(center, e.Center)) < radius+e.Radius {
			return true
		}
	}
	return false
}

// Reset discards the working set.
func (r *PlacementResolver) Reset() {
	r.Entries = r.Entries[:0]
}
