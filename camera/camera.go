// Package camera provides an orbit camera around the scene's vertical axis.
package camera

import "math"

// Camera orbits a target point on a sphere, parameterized by azimuth
// around +Y and polar angle measured down from +Y.
type Camera struct {
	// Target is the orbit center in world coordinates
	TargetX, TargetY, TargetZ float32

	Azimuth  float32 // Radians, 0 looks down -Z from +Z
	Polar    float32 // Radians from +Y
	Distance float32

	// Vertical field of view in degrees
	Fovy float32

	// Constraints
	MinDistance, MaxDistance float32
	MinPolar, MaxPolar       float32

	// AutoRotateSpeed is in radians per second, applied when Update is asked to rotate
	AutoRotateSpeed float32
}

// New creates a camera at the given eye position looking at the origin.
// The eye is clamped into the distance and polar limits.
func New(eyeX, eyeY, eyeZ, fovy float32) *Camera {
	c := &Camera{
		Fovy:        fovy,
		MinDistance: 0.1,
		MaxDistance: float32(math.Inf(1)),
		MinPolar:    0,
		MaxPolar:    math.Pi,
	}
	c.SetEye(eyeX, eyeY, eyeZ)
	return c
}

// SetEye places the camera at a world position, keeping the current target.
func (c *Camera) SetEye(x, y, z float32) {
	dx := float64(x - c.TargetX)
	dy := float64(y - c.TargetY)
	dz := float64(z - c.TargetZ)
	d := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if d == 0 {
		c.Distance = c.MinDistance
		return
	}
	c.Distance = float32(d)
	c.Polar = float32(math.Acos(dy / d))
	c.Azimuth = float32(math.Atan2(dx, dz))
	c.clampAll()
}

// SetLimits sets distance and polar constraints and re-clamps the current pose.
func (c *Camera) SetLimits(minDist, maxDist, minPolar, maxPolar float32) {
	c.MinDistance, c.MaxDistance = minDist, maxDist
	c.MinPolar, c.MaxPolar = minPolar, maxPolar
	c.clampAll()
}

// Eye returns the camera position in world coordinates.
func (c *Camera) Eye() (x, y, z float32) {
	sp, cp := math.Sincos(float64(c.Polar))
	sa, ca := math.Sincos(float64(c.Azimuth))
	d := float64(c.Distance)
	x = c.TargetX + float32(d*sp*sa)
	y = c.TargetY + float32(d*cp)
	z = c.TargetZ + float32(d*sp*ca)
	return x, y, z
}

// Orbit rotates the camera by the given angle deltas in radians.
func (c *Camera) Orbit(dAzimuth, dPolar float32) {
	c.Azimuth = wrapAngle(c.Azimuth + dAzimuth)
	c.Polar = clamp(c.Polar+dPolar, c.MinPolar, c.MaxPolar)
}

// Zoom multiplies the distance by factor, clamped to limits.
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.Distance = clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// Update advances auto-rotation by dt seconds when rotate is set.
func (c *Camera) Update(dt float32, rotate bool) {
	if rotate && c.AutoRotateSpeed != 0 {
		c.Orbit(c.AutoRotateSpeed*dt, 0)
	}
}

func (c *Camera) clampAll() {
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
	c.Polar = clamp(c.Polar, c.MinPolar, c.MaxPolar)
	c.Azimuth = wrapAngle(c.Azimuth)
}

// wrapAngle maps an angle into [-pi, pi).
func wrapAngle(a float32) float32 {
	r := float32(math.Mod(float64(a)+math.Pi, 2*math.Pi))
	if r < 0 {
		r += 2 * math.Pi
	}
	return r - math.Pi
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
