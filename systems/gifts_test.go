package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/config"
)

func newTestGifts(t *testing.T) (*GiftSystem, *DeferredQueue, []components.Gift) {
	t.Helper()
	gifts, _, err := GenerateGifts(rand.New(rand.NewSource(21)), GiftParamsFromConfig(config.Cfg()))
	if err != nil {
		t.Fatal(err)
	}
	q := NewDeferredQueue()
	s := NewGiftSystem(ecs.NewWorld(), q, 0.2)
	s.Spawn(gifts)
	return s, q, gifts
}

func TestGiftClickScatteredIsIgnored(t *testing.T) {
	s, q, _ := newTestGifts(t)
	revealed := 0
	s.OnOpenCard = func(string) { revealed++ }

	e := s.Entities()[0]
	if s.Click(e, components.ModeScattered) {
		t.Error("click while scattered should not open")
	}
	if s.IsOpen(e) {
		t.Error("gift opened while scattered")
	}
	q.Advance(1)
	if revealed != 0 {
		t.Errorf("expected no reveal, got %d", revealed)
	}
}

func TestGiftClickIdempotent(t *testing.T) {
	s, q, gifts := newTestGifts(t)
	var messages []string
	s.OnOpenCard = func(m string) { messages = append(messages, m) }

	e := s.Entities()[2]
	if !s.Click(e, components.ModeFormation) {
		t.Fatal("first click should open")
	}
	if s.Click(e, components.ModeFormation) {
		t.Error("second click should be a no-op")
	}
	if !s.IsOpen(e) {
		t.Fatal("gift should be open")
	}

	q.Advance(0.1)
	if len(messages) != 0 {
		t.Fatal("card revealed before the delay")
	}
	q.Advance(0.15)
	if len(messages) != 1 || messages[0] != gifts[2].Message {
		t.Fatalf("expected one reveal of %q, got %v", gifts[2].Message, messages)
	}

	// Open state is monotonic across mode changes
	s.Update(components.ModeScattered, 1)
	if !s.IsOpen(e) {
		t.Error("open gift closed on mode change")
	}
}

func TestGiftCloseCancelsReveal(t *testing.T) {
	s, q, _ := newTestGifts(t)
	revealed := false
	s.OnOpenCard = func(string) { revealed = true }

	s.Click(s.Entities()[0], components.ModeFormation)
	s.Close()
	q.Advance(1)

	if revealed {
		t.Error("reveal fired after the gifts were closed")
	}
	if s.Len() != 0 {
		t.Errorf("expected no gifts after close, have %d", s.Len())
	}
}

func TestGiftNilCallback(t *testing.T) {
	s, q, _ := newTestGifts(t)
	s.Click(s.Entities()[0], components.ModeFormation)
	q.Advance(1) // Must not panic without OnOpenCard
}

func TestGiftMovesToFormation(t *testing.T) {
	s, _, gifts := newTestGifts(t)
	for f := 0; f < 600; f++ {
		s.Update(components.ModeFormation, float64(f)/60)
	}

	i := 0
	s.Each(func(v GiftView) {
		d := r3.Norm(r3.Sub(v.Motion.Position, gifts[i].Formation))
		if d > 1e-3 {
			t.Errorf("gift %d still %f from its formation position", i, d)
		}
		if math.Abs(v.Motion.Rotation.Y-gifts[i].TargetRotation.Y) > 1e-3 {
			t.Errorf("gift %d yaw %f, want %f", i, v.Motion.Rotation.Y, gifts[i].TargetRotation.Y)
		}
		// Idle sway keeps Z rotation near the target
		if math.Abs(v.Motion.Rotation.Z-gifts[i].TargetRotation.Z) > giftSwayAmp+1e-3 {
			t.Errorf("gift %d roll %f exceeds sway", i, v.Motion.Rotation.Z)
		}
		i++
	})
}

func TestGiftHoverRises(t *testing.T) {
	s, _, gifts := newTestGifts(t)
	e := s.Entities()[5]
	s.HoverOnly(e, true)

	for f := 0; f < 600; f++ {
		s.Update(components.ModeFormation, float64(f)/60)
	}

	var got GiftView
	s.Each(func(v GiftView) {
		if v.Entity == e {
			got = v
		}
	})
	if !got.Hovered {
		t.Fatal("expected hovered gift")
	}
	want := gifts[5].Formation.Y + giftHoverRise
	if math.Abs(got.Motion.Position.Y-want) > 1e-3 {
		t.Errorf("expected hover height %f, got %f", want, got.Motion.Position.Y)
	}

	s.HoverOnly(e, false)
	s.Each(func(v GiftView) {
		if v.Hovered {
			t.Errorf("gift %v still hovered", v.Entity)
		}
	})
}

func TestGiftLidOpens(t *testing.T) {
	s, _, gifts := newTestGifts(t)
	e := s.Entities()[1]
	s.Click(e, components.ModeFormation)
	for f := 0; f < 300; f++ {
		s.Update(components.ModeFormation, float64(f)/60)
	}

	g := &gifts[1]
	s.Each(func(v GiftView) {
		if v.Entity != e {
			if math.Abs(v.Lid.Rotation) > 1e-9 {
				t.Errorf("closed gift lid rotated to %f", v.Lid.Rotation)
			}
			return
		}
		if math.Abs(v.Lid.Rotation-lidOpenAngle) > 1e-3 {
			t.Errorf("expected lid angle %f, got %f", lidOpenAngle, v.Lid.Rotation)
		}
		if math.Abs(v.Lid.Y-(closedLidY(g)+lidOpenLift)) > 1e-3 {
			t.Errorf("expected lid lift, got y=%f", v.Lid.Y)
		}
		if math.Abs(v.Lid.Z+g.Width()/2) > 1e-3 {
			t.Errorf("expected lid z=%f, got %f", -g.Width()/2, v.Lid.Z)
		}
	})
}

func TestGiftScatteredTumbles(t *testing.T) {
	s, _, _ := newTestGifts(t)
	for f := 0; f < 10; f++ {
		s.Update(components.ModeScattered, float64(f)/60)
	}
	s.Each(func(v GiftView) {
		if math.Abs(v.Motion.Rotation.X-0.1) > 1e-9 || math.Abs(v.Motion.Rotation.Z-0.1) > 1e-9 {
			t.Errorf("expected 0.1 rad tumble after 10 frames, got %v", v.Motion.Rotation)
		}
	})
}

func TestGiftPick(t *testing.T) {
	s, _, gifts := newTestGifts(t)
	target := s.Entities()[3]
	center := gifts[3].Scatter // Gifts start at their scatter positions

	// Ray from far along +Z aimed at the gift's center
	origin := r3.Add(center, r3.Vec{Z: 200})
	e, ok := s.Pick(Ray{Origin: origin, Direction: r3.Vec{Z: -1}})
	if !ok {
		t.Fatal("expected a hit")
	}
	// Another gift may sit in front on the same line; the hit must be the nearest
	if e != target {
		dir := r3.Vec{Z: -1}
		targetT, _ := raySphere(origin, dir, center, boundingRadius(&gifts[3]))
		s.Each(func(v GiftView) {
			if v.Entity != e {
				return
			}
			hitT, hit := raySphere(origin, dir, v.Motion.Position, boundingRadius(v.Gift))
			if !hit || hitT > targetT {
				t.Errorf("picked gift is not the nearest hit (%f > %f)", hitT, targetT)
			}
		})
	}

	if _, ok := s.Pick(Ray{Origin: r3.Vec{Y: 1000}, Direction: r3.Vec{Y: 1}}); ok {
		t.Error("ray pointing away should miss")
	}
	if _, ok := s.Pick(Ray{Origin: origin}); ok {
		t.Error("zero direction should miss")
	}
}

func TestRaySphere(t *testing.T) {
	tests := []struct {
		name   string
		origin r3.Vec
		want   float64
		hit    bool
	}{
		{"front", r3.Vec{Z: -10}, 9, true},
		{"inside", r3.Vec{}, 1, true},
		{"behind", r3.Vec{Z: 10}, 0, false},
		{"beside", r3.Vec{X: 2, Z: -10}, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, hit := raySphere(tc.origin, r3.Vec{Z: 1}, r3.Vec{}, 1)
			if hit != tc.hit || (hit && math.Abs(got-tc.want) > 1e-9) {
				t.Errorf("expected (%f, %v), got (%f, %v)", tc.want, tc.hit, got, hit)
			}
		})
	}
}

func TestGiftIgnoresForeignEntities(t *testing.T) {
	s, q, _ := newTestGifts(t)
	revealed := 0
	s.OnOpenCard = func(string) { revealed++ }

	// An entity on the same world that carries no interaction state.
	stray := ecs.NewMap1[components.Gift](s.world).NewEntity(&components.Gift{ID: -1})

	if s.Click(stray, components.ModeFormation) {
		t.Error("click on a non-gift entity should not open")
	}
	if s.IsOpen(stray) {
		t.Error("non-gift entity reported open")
	}
	s.SetHovered(stray, true) // Must not panic

	s.SetHovered(s.Entities()[1], true)
	if !s.interMap.Get(s.Entities()[1]).Hovered {
		t.Error("expected gift to be hovered")
	}
	q.Advance(1)
	if revealed != 0 {
		t.Errorf("expected no reveal, got %d", revealed)
	}
}
