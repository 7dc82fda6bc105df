package systems

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"

	"github.com/pthm-cable/noel/config"
)

func newTestSnow(t *testing.T, count int) *SnowField {
	t.Helper()
	p := SnowParamsFromConfig(config.Cfg())
	p.Count = count
	f, err := NewSnowField(rand.New(rand.NewSource(13)), p)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSnowAttributes(t *testing.T) {
	f := newTestSnow(t, 5000)
	u := f.Uniforms
	for i, fl := range f.Flakes {
		if math32.Abs(fl.Position[0]) > 50 || math32.Abs(fl.Position[2]) > 50 || math32.Abs(fl.Position[1]) > u.Bound/2 {
			t.Fatalf("flake %d spawned outside the box: %v", i, fl.Position)
		}
		if fl.Velocity[1] < 1 || fl.Velocity[1] >= 2 {
			t.Fatalf("flake %d fall rate %f outside [1, 2)", i, fl.Velocity[1])
		}
		if fl.Scale < 0.15-1e-6 || fl.Scale > 0.45+1e-6 {
			t.Fatalf("flake %d scale %f outside [0.15, 0.45]", i, fl.Scale)
		}
	}
	if u.Count != 5000 {
		t.Errorf("expected count uniform 5000, got %d", u.Count)
	}
}

// wrapDiff returns the distance between a and b on a circle of circumference m.
func wrapDiff(a, b, m float32) float32 {
	d := math32.Abs(a - b)
	return math32.Min(d, m-d)
}

func TestSnowFallIsPeriodic(t *testing.T) {
	f := newTestSnow(t, 500)
	u := f.Uniforms

	for i, fl := range f.Flakes {
		period := u.Bound / (u.Speed * fl.Velocity[1])
		for _, t0 := range []float32{0, 3.7, 12.25} {
			u.Time = t0
			a := FlakePosition(fl, u)
			u.Time = t0 + period
			b := FlakePosition(fl, u)
			if d := wrapDiff(a[1], b[1], u.Bound); d > 1e-2 {
				t.Fatalf("flake %d: y not periodic at t=%f (%f vs %f)", i, t0, a[1], b[1])
			}
		}
	}
}

func TestSnowStaysInBounds(t *testing.T) {
	f := newTestSnow(t, 2000)
	u := f.Uniforms
	for _, tm := range []float32{0, 1, 30, 500} {
		u.Time = tm
		for i, fl := range f.Flakes {
			p := FlakePosition(fl, u)
			if math32.Abs(p[1]) > u.Bound/2+1e-3 {
				t.Fatalf("t=%f flake %d y=%f outside vertical span", tm, i, p[1])
			}
			limit := u.Wrap + 1e-3
			if math32.Abs(p[0]) > limit || math32.Abs(p[2]) > limit {
				t.Fatalf("t=%f flake %d escaped horizontally: %v", tm, i, p)
			}
		}
	}
}

func TestSnowAvoidsCone(t *testing.T) {
	f := newTestSnow(t, 4000)
	u := f.Uniforms
	for _, tm := range []float32{0, 0.5, 7, 42} {
		u.Time = tm
		for i, fl := range f.Flakes {
			p := FlakePosition(fl, u)
			h := p[1] + u.TreeHeight/2
			if h <= 0 || h >= u.TreeHeight {
				continue
			}
			r := u.TreeRadius * (1 - h/u.TreeHeight)
			if d := math32.Hypot(p[0], p[2]); d < r {
				t.Fatalf("t=%f flake %d inside cone: d=%f r=%f", tm, i, d, r)
			}
		}
	}
}

func TestSnowConePushOnAxis(t *testing.T) {
	f := newTestSnow(t, 1)
	u := f.Uniforms
	fl := SnowFlake{Velocity: [3]float32{0, 1, 0}, Scale: 0.3}
	p := FlakePosition(fl, u)
	// A flake on the axis at mid-height is pushed along +X to the surface plus buffer
	want := u.TreeRadius*0.5 + u.Buffer
	if math.Abs(float64(p[0]-want)) > 1e-4 || p[2] != 0 {
		t.Errorf("expected (%f, 0), got (%f, %f)", want, p[0], p[2])
	}
}

func TestEvaluateFlakeFade(t *testing.T) {
	f := newTestSnow(t, 1)
	u := f.Uniforms
	fl := SnowFlake{Position: [3]float32{40, 0, 0}, Velocity: [3]float32{0, 1, 0}, Scale: 0.4}

	tests := []struct {
		name  string
		eye   [3]float32
		alpha float32
		size  float32
	}{
		{"near", [3]float32{20, 0, 0}, 1, 0.4 * 400 / 20},
		{"far", [3]float32{-50, 0, 0}, 0, 0.4 * 400 / 90},
		{"middle", [3]float32{-20, 0, 0}, 0.5, 0.4 * 400 / 60},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := EvaluateFlake(fl, u, tc.eye)
			if math32.Abs(s.Alpha-tc.alpha) > 1e-4 {
				t.Errorf("expected alpha %f, got %f", tc.alpha, s.Alpha)
			}
			if math32.Abs(s.PointSize-tc.size) > 1e-3 {
				t.Errorf("expected size %f, got %f", tc.size, s.PointSize)
			}
		})
	}
}

func TestSparkleRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := Sparkle(float32(i)/100, float32(i)*0.37)
		if v < 0 || v > 1 {
			t.Fatalf("sparkle %f outside [0, 1]", v)
		}
	}
}

func TestSnowInvalidParams(t *testing.T) {
	p := SnowParamsFromConfig(config.Cfg())
	p.Bound = 0
	if _, err := NewSnowField(rand.New(rand.NewSource(1)), p); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
