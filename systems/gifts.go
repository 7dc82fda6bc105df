package systems

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/noel/components"
)

// Gift animation constants.
const (
	giftFormationLerp = 0.05
	giftScatterLerp   = 0.02
	giftRotationLerp  = 0.1
	giftTumbleRate    = 0.01 // Radians per frame on X and Z while scattered
	giftHoverRise     = 0.1
	giftSwayAmp       = 0.03
	giftSwayFreq      = 2.0
	giftShakeAmp      = 0.03
	giftShakeFreq     = 15.0

	lidLerp      = 0.1
	lidOpenAngle = -math.Pi / 1.8
	lidOpenLift  = 0.1
)

// Ray is a pick ray in world space. Direction need not be normalized.
type Ray struct {
	Origin    r3.Vec
	Direction r3.Vec
}

// GiftView is a read-only snapshot of one gift handed to the renderer.
type GiftView struct {
	Entity  ecs.Entity
	Gift    *components.Gift
	Motion  components.GiftMotion
	Lid     components.GiftLid
	Open    bool
	Hovered bool
	Radius  float64 // Pick sphere radius
}

// GiftSystem owns the gift entities and their open/hover state machine.
// A gift goes Closed -> Open once, on a click while in formation, and stays open
// until the system is closed. The card reveal runs on the deferred queue.
type GiftSystem struct {
	world *ecs.World

	mapper *ecs.Map4[components.Gift, components.GiftMotion, components.GiftLid, components.GiftInteraction]
	filter *ecs.Filter4[components.Gift, components.GiftMotion, components.GiftLid, components.GiftInteraction]

	giftMap   *ecs.Map1[components.Gift]
	motionMap *ecs.Map1[components.GiftMotion]
	interMap  *ecs.Map1[components.GiftInteraction]

	queue     *DeferredQueue
	openDelay float64

	// OnOpenCard receives the gift's message once the reveal delay has passed.
	OnOpenCard func(message string)

	entities []ecs.Entity // Spawn order
}

// NewGiftSystem creates a gift system on the given world. openDelay is in seconds.
func NewGiftSystem(w *ecs.World, queue *DeferredQueue, openDelay float64) *GiftSystem {
	return &GiftSystem{
		world:     w,
		mapper:    ecs.NewMap4[components.Gift, components.GiftMotion, components.GiftLid, components.GiftInteraction](w),
		filter:    ecs.NewFilter4[components.Gift, components.GiftMotion, components.GiftLid, components.GiftInteraction](w),
		giftMap:   ecs.NewMap1[components.Gift](w),
		motionMap: ecs.NewMap1[components.GiftMotion](w),
		interMap:  ecs.NewMap1[components.GiftInteraction](w),
		queue:     queue,
		openDelay: openDelay,
	}
}

// Spawn creates one entity per gift, starting at its scatter position with the lid closed.
func (s *GiftSystem) Spawn(gifts []components.Gift) []ecs.Entity {
	for i := range gifts {
		g := gifts[i]
		motion := components.GiftMotion{
			Position: g.Scatter,
			Phase:    swayPhase(g.ID),
		}
		lid := components.GiftLid{Y: closedLidY(&g)}
		inter := components.GiftInteraction{}
		e := s.mapper.NewEntity(&g, &motion, &lid, &inter)
		s.entities = append(s.entities, e)
	}
	slog.Info("gifts spawned", "count", len(gifts))
	return s.entities
}

// Len returns the number of live gifts.
func (s *GiftSystem) Len() int {
	return len(s.entities)
}

// Entities returns the gift entities in spawn order.
func (s *GiftSystem) Entities() []ecs.Entity {
	return s.entities
}

// Update advances every gift one frame toward its mode pose at elapsed time t.
func (s *GiftSystem) Update(mode components.Mode, t float64) {
	formation := mode == components.ModeFormation

	query := s.filter.Query()
	for query.Next() {
		gift, motion, lid, inter := query.Get()

		target := gift.Target(mode)
		lerp := giftScatterLerp
		if formation {
			lerp = giftFormationLerp
			if inter.Hovered && !inter.Open {
				target.Y += giftHoverRise
			}
		}
		motion.Position = lerpVec(motion.Position, target, lerp)

		if formation {
			rot := gift.TargetRotation
			if !inter.Open {
				if inter.Hovered {
					rot.Z += math.Sin(t*giftShakeFreq) * giftShakeAmp
				} else {
					rot.Z += math.Sin(t*giftSwayFreq+motion.Phase) * giftSwayAmp
				}
			}
			motion.Rotation = lerpVec(motion.Rotation, rot, giftRotationLerp)
		} else {
			motion.Rotation.X += giftTumbleRate
			motion.Rotation.Z += giftTumbleRate
		}

		stepLid(gift, lid, inter.Open)
	}
}

// Click opens the gift if the scene is in formation and the gift is still closed.
// Returns true only on the Closed -> Open transition.
func (s *GiftSystem) Click(e ecs.Entity, mode components.Mode) bool {
	if mode != components.ModeFormation || !s.world.Alive(e) || !s.interMap.HasAll(e) {
		return false
	}
	inter := s.interMap.Get(e)
	if inter.Open {
		return false
	}
	inter.Open = true

	message := s.giftMap.Get(e).Message
	inter.Reveal = s.queue.Schedule(s.openDelay, func() {
		if s.world.Alive(e) {
			s.interMap.Get(e).Reveal = 0
		}
		if s.OnOpenCard != nil {
			s.OnOpenCard(message)
		}
	})
	slog.Info("gift opened", "gift", s.giftMap.Get(e).ID)
	return true
}

// IsOpen reports whether the gift has been opened.
func (s *GiftSystem) IsOpen(e ecs.Entity) bool {
	if !s.world.Alive(e) || !s.interMap.HasAll(e) {
		return false
	}
	return s.interMap.Get(e).Open
}

// SetHovered sets the hover flag of one gift.
func (s *GiftSystem) SetHovered(e ecs.Entity, hovered bool) {
	if !s.world.Alive(e) || !s.interMap.HasAll(e) {
		return
	}
	s.interMap.Get(e).Hovered = hovered
}

// HoverOnly marks e as hovered and clears every other gift. A false ok clears all.
func (s *GiftSystem) HoverOnly(e ecs.Entity, ok bool) {
	for _, other := range s.entities {
		s.interMap.Get(other).Hovered = ok && other == e
	}
}

// Pick returns the nearest gift whose bounding sphere the ray hits.
func (s *GiftSystem) Pick(ray Ray) (ecs.Entity, bool) {
	dir := ray.Direction
	if n := r3.Norm(dir); n > 0 {
		dir = r3.Scale(1/n, dir)
	} else {
		return ecs.Entity{}, false
	}

	var best ecs.Entity
	bestT := math.Inf(1)
	found := false
	for _, e := range s.entities {
		center := s.motionMap.Get(e).Position
		radius := boundingRadius(s.giftMap.Get(e))
		if t, hit := raySphere(ray.Origin, dir, center, radius); hit && t < bestT {
			best, bestT, found = e, t, true
		}
	}
	return best, found
}

// Each calls fn for every gift in spawn order.
func (s *GiftSystem) Each(fn func(GiftView)) {
	for _, e := range s.entities {
		gift, motion, lid, inter := s.mapper.Get(e)
		fn(GiftView{
			Entity:  e,
			Gift:    gift,
			Motion:  *motion,
			Lid:     *lid,
			Open:    inter.Open,
			Hovered: inter.Hovered,
			Radius:  boundingRadius(gift),
		})
	}
}

// Close cancels pending reveals and removes every gift entity.
func (s *GiftSystem) Close() {
	for _, e := range s.entities {
		if !s.world.Alive(e) {
			continue
		}
		if h := s.interMap.Get(e).Reveal; h != 0 {
			s.queue.Cancel(h)
		}
		s.world.RemoveEntity(e)
	}
	s.entities = s.entities[:0]
}

// stepLid eases the lid toward its open or closed pose.
func stepLid(g *components.Gift, lid *components.GiftLid, open bool) {
	targetRot, targetY, targetZ := 0.0, closedLidY(g), 0.0
	if open {
		targetRot = lidOpenAngle
		targetY += lidOpenLift
		targetZ = -g.Width() / 2
	}
	lid.Rotation += (targetRot - lid.Rotation) * lidLerp
	lid.Y += (targetY - lid.Y) * lidLerp
	lid.Z += (targetZ - lid.Z) * lidLerp
}

// closedLidY is the lid's resting height above the gift's center.
func closedLidY(g *components.Gift) float64 {
	return g.BodyHeight()/2 + g.LidHeight()/2
}

// swayPhase spreads idle sway across gifts without drawing from the generator.
func swayPhase(id int) float64 {
	return math.Mod(float64(id)*12.9898, 100)
}

// boundingRadius returns a sphere radius enclosing the gift body.
func boundingRadius(g *components.Gift) float64 {
	d := g.Dimensions
	if g.Shape == components.ShapeCylinder {
		return math.Hypot(d[0], d[1]/2)
	}
	return 0.5 * math.Sqrt(d[0]*d[0]+d[1]*d[1]+d[2]*d[2])
}

// raySphere returns the distance along a unit-direction ray to the first hit.
func raySphere(origin, dir, center r3.Vec, radius float64) (float64, bool) {
	oc := r3.Sub(origin, center)
	b := r3.Dot(oc, dir)
	c := r3.Dot(oc, oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

func lerpVec(a, b r3.Vec, f float64) r3.Vec {
	return r3.Add(a, r3.Scale(f, r3.Sub(b, a)))
}
