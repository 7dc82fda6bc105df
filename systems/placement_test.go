package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/config"
)

func TestResolverAccepts(t *testing.T) {
	r := NewPlacementResolver(50, 4)

	// Candidates along X, each 1 unit apart, radius 0.6: the second collides with the first.
	next := 0.0
	sample := func() (r3.Vec, r3.Vec) {
		c := r3.Vec{X: next}
		next++
		return c, r3.Vec{}
	}

	first := r.Resolve(sample, 0.6)
	if first.Exhausted || first.Attempts != 1 {
		t.Fatalf("expected first placement on attempt 1, got %+v", first)
	}
	second := r.Resolve(sample, 0.6)
	if second.Exhausted {
		t.Fatal("expected second placement to succeed")
	}
	if second.Attempts != 2 || second.Center.X != 2 {
		t.Errorf("expected acceptance at x=2 on attempt 2, got x=%f after %d", second.Center.X, second.Attempts)
	}
	if len(r.Entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(r.Entries))
	}
}

func TestResolverTouchingIsAccepted(t *testing.T) {
	r := NewPlacementResolver(50, 2)
	r.Entries = append(r.Entries, components.PlacementEntry{Center: r3.Vec{}, Radius: 1})
	if r.Collides(r3.Vec{X: 2}, 1) {
		t.Error("touching footprints should not collide")
	}
	if !r.Collides(r3.Vec{X: 1.999}, 1) {
		t.Error("overlapping footprints should collide")
	}
}

func TestResolverExhaustion(t *testing.T) {
	r := NewPlacementResolver(10, 2) // Raised to the minimum budget
	if r.MaxAttempts != MinPlacementAttempts {
		t.Fatalf("expected budget %d, got %d", MinPlacementAttempts, r.MaxAttempts)
	}
	r.Entries = append(r.Entries, components.PlacementEntry{Center: r3.Vec{}, Radius: 5})

	calls := 0
	sample := func() (r3.Vec, r3.Vec) {
		calls++
		return r3.Vec{X: float64(calls) * 0.01}, r3.Vec{Y: float64(calls)}
	}
	p := r.Resolve(sample, 1)
	if !p.Exhausted {
		t.Fatal("expected exhaustion")
	}
	if p.Attempts != MinPlacementAttempts || calls != MinPlacementAttempts {
		t.Errorf("expected %d attempts, got %d (calls %d)", MinPlacementAttempts, p.Attempts, calls)
	}
	// The last candidate is kept, and not added to the working set
	if p.Rotation.Y != float64(calls) {
		t.Errorf("expected last candidate, got rotation %v", p.Rotation)
	}
	if len(r.Entries) != 1 {
		t.Errorf("exhausted placement should not be recorded, have %d entries", len(r.Entries))
	}
}

func TestGiftPlacementMostlyNonOverlapping(t *testing.T) {
	p := GiftParamsFromConfig(config.Cfg())
	pairs, clear := 0, 0

	for seed := int64(0); seed < 100; seed++ {
		gifts, _, err := GenerateGifts(rand.New(rand.NewSource(seed)), p)
		if err != nil {
			t.Fatal(err)
		}
		if len(gifts) != 18 {
			t.Fatalf("expected 18 gifts, got %d", len(gifts))
		}
		for i := range gifts {
			for j := i + 1; j < len(gifts); j++ {
				pairs++
				d := r3.Norm(r3.Sub(gifts[i].Formation, gifts[j].Formation))
				if d >= gifts[i].CollisionRadius+gifts[j].CollisionRadius-1e-9 {
					clear++
				}
			}
		}
	}

	if frac := float64(clear) / float64(pairs); frac < 0.9 {
		t.Errorf("expected at least 90%% non-overlapping pairs, got %.3f", frac)
	}
}

func TestGiftGeneration(t *testing.T) {
	p := GiftParamsFromConfig(config.Cfg())
	gifts, report, err := GenerateGifts(rand.New(rand.NewSource(8)), p)
	if err != nil {
		t.Fatal(err)
	}

	if report.Stacked < p.StackedMin || report.Stacked >= p.StackedMin+p.StackedExtra {
		t.Errorf("stacked count %d outside [%d, %d)", report.Stacked, p.StackedMin, p.StackedMin+p.StackedExtra)
	}

	greetings := map[string]bool{}
	for _, g := range Greetings {
		greetings[g] = true
	}

	for i, g := range gifts {
		if g.ID != GiftIDOffset+i {
			t.Errorf("gift %d: expected ID %d, got %d", i, GiftIDOffset+i, g.ID)
		}
		if !greetings[g.Message] {
			t.Errorf("gift %d: unknown message %q", i, g.Message)
		}
		if r3.Norm(g.Scatter) > p.ScatterRadius*giftScatterScale+1e-9 {
			t.Errorf("gift %d: scatter outside cloud", i)
		}
		if i < report.Stacked {
			want := -p.TreeHeight/2 + g.Dimensions[1]/2
			if math.Abs(g.Formation.Y-want) > 1e-9 {
				t.Errorf("stacked gift %d: expected y=%f, got %f", i, want, g.Formation.Y)
			}
			if r := radial(g.Formation); r < p.StackedRadiusMin-1e-9 || r > p.StackedRadiusMin+p.StackedRadiusSpan+1e-9 {
				t.Errorf("stacked gift %d: ring radius %f out of band", i, r)
			}
		} else {
			h := heightFraction(p.DistributionParams, g.Formation.Y)
			if h < 0 || h > p.SurfaceHeightLimit+1e-9 {
				t.Errorf("surface gift %d: height fraction %f out of range", i, h)
			}
			if radial(g.Formation) < p.ConeRadiusAt(h) {
				t.Errorf("surface gift %d: inside the cone", i)
			}
		}
	}

	// Messages are distinct for the first len(Greetings) gifts
	seen := map[string]bool{}
	for _, g := range gifts {
		if seen[g.Message] {
			t.Errorf("message repeated before the pool was exhausted: %q", g.Message)
		}
		seen[g.Message] = true
	}
}

func TestCollisionRadius(t *testing.T) {
	tests := []struct {
		shape components.ShapeKind
		dims  [3]float64
		want  float64
	}{
		{components.ShapeBox, [3]float64{1.4, 1.4, 1.4}, 1.05},
		{components.ShapeCylinder, [3]float64{0.8, 1.5, 0}, 1.2},
		{components.ShapeStar, [3]float64{1.0, 1.0, 0.4}, 0.75},
	}
	for _, tc := range tests {
		t.Run(tc.shape.String(), func(t *testing.T) {
			if got := collisionRadius(tc.shape, tc.dims, 1.5); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("expected %f, got %f", tc.want, got)
			}
		})
	}
}
