package systems

import (
	"math"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/noel/components"
)

// Oscillator is one periodic offset term: Amp * sin(Freq*t + IDScale*id), or cos when Cos is set.
type Oscillator struct {
	Freq    float32
	IDScale float32
	Amp     float32
	Cos     bool
}

// Phase returns IDScale*id reduced to [0, 2π). The product is formed in float64
// so ids in the tens of thousands keep sub-millirad resolution.
func (o Oscillator) Phase(id int) float32 {
	return float32(math.Mod(float64(o.IDScale)*float64(id), 2*math.Pi))
}

// Eval returns the offset at time t for an element with the given id.
func (o Oscillator) Eval(t float32, id int) float32 {
	return o.At(t, o.Phase(id))
}

// At returns the offset at time t for a precomputed phase.
func (o Oscillator) At(t, phase float32) float32 {
	if o.Amp == 0 {
		return 0
	}
	arg := o.Freq*t + phase
	if o.Cos {
		return math32.Cos(arg) * o.Amp
	}
	return math32.Sin(arg) * o.Amp
}

// MotionProfile holds the per-class motion constants.
type MotionProfile struct {
	Name string

	Sway  [3]Oscillator // X/Y/Z offsets added to the formation target
	Drift [3]Oscillator // X/Y/Z offsets added to the scatter target

	// Formation blend: lerp(BlendSlow, BlendFast, min(distance/ReferenceSpan, 1)).
	BlendSlow     float32
	BlendFast     float32
	ReferenceSpan float32

	// ScatterBlend is the fixed per-frame factor in ModeScattered.
	ScatterBlend float32

	// Spin rates for X and Y rotation; rotation = rate*t + (id mod 2π).
	SpinX, SpinY float32
}

// Class motion profiles.
var (
	AmbientProfile = MotionProfile{
		Name: "ambient",
		Sway: [3]Oscillator{
			{Freq: 0.8, IDScale: 1, Amp: 0.01, Cos: true},
			{Freq: 1, IDScale: 1, Amp: 0.02},
			{Freq: 0.9, IDScale: 1, Amp: 0.01},
		},
		Drift: [3]Oscillator{
			{Freq: 0.3, IDScale: 0.1, Amp: 2},
			{Freq: 0.2, IDScale: 0.1, Amp: 2, Cos: true},
			{Freq: 0.4, IDScale: 0.1, Amp: 2},
		},
		BlendSlow:     0.02,
		BlendFast:     0.1,
		ReferenceSpan: 20,
		ScatterBlend:  0.02,
		SpinX:         0.2,
		SpinY:         0.1,
	}

	OrnamentProfile = MotionProfile{
		Name: "ornaments",
		Sway: [3]Oscillator{
			{},
			{Freq: 1.5, IDScale: 1, Amp: 0.05},
			{},
		},
		Drift: [3]Oscillator{
			{Freq: 0.2, IDScale: 0.1, Amp: 2},
			{Freq: 0.15, IDScale: 0.1, Amp: 2, Cos: true},
			{Freq: 0.25, IDScale: 0.1, Amp: 2},
		},
		BlendSlow:     0.01,
		BlendFast:     0.08,
		ReferenceSpan: 25,
		ScatterBlend:  0.015,
		SpinX:         0.5,
		SpinY:         0.4,
	}

	FillerProfile = MotionProfile{
		Name: "filler",
		Sway: [3]Oscillator{
			{},
			{Freq: 0.5, IDScale: 1, Amp: 0.01},
			{},
		},
		Drift: [3]Oscillator{
			{Freq: 0.2, IDScale: 0.1, Amp: 1.5},
			{Freq: 0.1, IDScale: 0.1, Amp: 1.5, Cos: true},
			{Freq: 0.2, IDScale: 0.1, Amp: 1.5},
		},
		BlendSlow:     0.01,
		BlendFast:     0.05,
		ReferenceSpan: 20,
		ScatterBlend:  0.01,
		SpinX:         0.1,
		SpinY:         0.1,
	}
)

// BlendFactor returns the per-frame interpolation factor for an element at the given
// distance from its target. Formation eases in faster from far away and settles slowly;
// Scattered always uses the fixed factor.
func BlendFactor(p MotionProfile, mode components.Mode, distance float32) float32 {
	if mode != components.ModeFormation {
		return p.ScatterBlend
	}
	frac := distance / p.ReferenceSpan
	if frac > 1 {
		frac = 1
	}
	if frac < 0 {
		frac = 0
	}
	return p.BlendSlow + (p.BlendFast-p.BlendSlow)*frac
}

// StepToward moves current a fraction f of the way to target.
// For f in [0, 1] the result never passes the target.
func StepToward(current, target [3]float32, f float32) [3]float32 {
	return [3]float32{
		current[0] + (target[0]-current[0])*f,
		current[1] + (target[1]-current[1])*f,
		current[2] + (target[2]-current[2])*f,
	}
}

// Swarm animates one element class. Positions live in contiguous float32 arenas
// (x0,y0,z0,x1,...) so fixed-factor passes run as single BLAS calls.
type Swarm struct {
	Profile MotionProfile

	spin      []float32    // id mod 2π
	sway      [3][]float32 // per-axis oscillator phases, formation
	drift     [3][]float32 // per-axis oscillator phases, scattered
	scales    []float32
	scatter   []float32 // 3N
	formation []float32 // 3N
	current   []float32 // 3N
	target    []float32 // 3N, rebuilt every frame

	instances []components.Instance

	count int
}

// NewSwarm allocates the arenas for the given elements. Current positions start
// at the scatter targets.
func NewSwarm(elements []components.Element, profile MotionProfile) *Swarm {
	n := len(elements)
	s := &Swarm{
		Profile:   profile,
		spin:      make([]float32, n),
		scales:    make([]float32, n),
		scatter:   make([]float32, 3*n),
		formation: make([]float32, 3*n),
		current:   make([]float32, 3*n),
		target:    make([]float32, 3*n),
		instances: make([]components.Instance, n),
		count:     n,
	}
	for a := range 3 {
		s.sway[a] = make([]float32, n)
		s.drift[a] = make([]float32, n)
	}
	for i, e := range elements {
		j := 3 * i
		s.spin[i] = float32(math.Mod(float64(e.ID), 2*math.Pi))
		for a := range 3 {
			s.sway[a][i] = profile.Sway[a].Phase(e.ID)
			s.drift[a][i] = profile.Drift[a].Phase(e.ID)
		}
		s.scales[i] = float32(e.Scale)
		s.scatter[j], s.scatter[j+1], s.scatter[j+2] = float32(e.Scatter.X), float32(e.Scatter.Y), float32(e.Scatter.Z)
		s.formation[j], s.formation[j+1], s.formation[j+2] = float32(e.Formation.X), float32(e.Formation.Y), float32(e.Formation.Z)
		s.instances[i] = components.Instance{
			Scale: s.scales[i],
			Color: e.Color,
		}
	}
	copy(s.current, s.scatter)
	s.writeInstances(0)
	return s
}

// Len returns the number of elements.
func (s *Swarm) Len() int {
	return s.count
}

// Instances returns the dense render buffer, updated in place by Update.
func (s *Swarm) Instances() []components.Instance {
	return s.instances
}

// Position returns the current position of slot i.
func (s *Swarm) Position(i int) [3]float32 {
	j := 3 * i
	return [3]float32{s.current[j], s.current[j+1], s.current[j+2]}
}

// Update advances every element one frame toward its mode target at elapsed time t.
func (s *Swarm) Update(mode components.Mode, t float32) {
	if s.count == 0 {
		return
	}
	s.buildTargets(mode, t)

	if mode == components.ModeFormation {
		s.blendAdaptive()
	} else {
		s.blendFixed(s.Profile.ScatterBlend)
	}

	s.writeInstances(t)
}

// buildTargets writes base target plus periodic offset for every slot.
func (s *Swarm) buildTargets(mode components.Mode, t float32) {
	base := s.scatter
	osc := &s.Profile.Drift
	ph := &s.drift
	if mode == components.ModeFormation {
		base = s.formation
		osc = &s.Profile.Sway
		ph = &s.sway
	}
	for i := 0; i < s.count; i++ {
		j := 3 * i
		s.target[j] = base[j] + osc[0].At(t, ph[0][i])
		s.target[j+1] = base[j+1] + osc[1].At(t, ph[1][i])
		s.target[j+2] = base[j+2] + osc[2].At(t, ph[2][i])
	}
}

// blendFixed computes current = (1-f)*current + f*target over the whole arena.
func (s *Swarm) blendFixed(f float32) {
	cur := blas32.Vector{N: len(s.current), Inc: 1, Data: s.current}
	tgt := blas32.Vector{N: len(s.target), Inc: 1, Data: s.target}
	blas32.Scal(1-f, cur)
	blas32.Axpy(f, tgt, cur)
}

// blendAdaptive steps each slot with a factor derived from its own distance.
func (s *Swarm) blendAdaptive() {
	for i := 0; i < s.count; i++ {
		j := 3 * i
		dx := s.target[j] - s.current[j]
		dy := s.target[j+1] - s.current[j+1]
		dz := s.target[j+2] - s.current[j+2]
		d := math32.Sqrt(dx*dx + dy*dy + dz*dz)
		f := BlendFactor(s.Profile, components.ModeFormation, d)
		s.current[j] += dx * f
		s.current[j+1] += dy * f
		s.current[j+2] += dz * f
	}
}

// writeInstances copies positions and spin into the render buffer.
func (s *Swarm) writeInstances(t float32) {
	for i := range s.instances {
		j := 3 * i
		inst := &s.instances[i]
		inst.Position = [3]float32{s.current[j], s.current[j+1], s.current[j+2]}
		inst.Rotation[0] = s.Profile.SpinX*t + s.spin[i]
		inst.Rotation[1] = s.Profile.SpinY*t + s.spin[i]
	}
}
