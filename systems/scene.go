package systems

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/config"
)

// Scene owns every CPU-side system of one mounted scene.
type Scene struct {
	Ambient   *Swarm
	Ornaments *Swarm
	Filler    *Swarm
	Gifts     *GiftSystem
	Snow      *SnowField
	Topper    *Topper
	Queue     *DeferredQueue

	Placement PlacementReport
	Seed      int64
}

// NewScene generates every class from the config with a generator seeded by seed.
func NewScene(cfg *config.Config, seed int64, onOpenCard func(string)) (*Scene, error) {
	rng := rand.New(rand.NewSource(seed))

	ambient, err := GenerateAmbient(rng, ClassParams(cfg, cfg.Ambient.Count))
	if err != nil {
		return nil, err
	}
	ornaments, err := GenerateOrnaments(rng, ClassParams(cfg, cfg.Ornaments.Count))
	if err != nil {
		return nil, err
	}
	filler, err := GenerateFiller(rng, ClassParams(cfg, cfg.Filler.Count))
	if err != nil {
		return nil, err
	}
	gifts, report, err := GenerateGifts(rng, GiftParamsFromConfig(cfg))
	if err != nil {
		return nil, err
	}
	snow, err := NewSnowField(rng, SnowParamsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	queue := NewDeferredQueue()
	giftSys := NewGiftSystem(world, queue, float64(cfg.Gifts.OpenDelayMS)/1000)
	giftSys.OnOpenCard = onOpenCard
	giftSys.Spawn(gifts)

	s := &Scene{
		Ambient:   NewSwarm(ambient, AmbientProfile),
		Ornaments: NewSwarm(ornaments, OrnamentProfile),
		Filler:    NewSwarm(filler, FillerProfile),
		Gifts:     giftSys,
		Snow:      snow,
		Topper:    NewTopper(cfg.Scene.TreeHeight, cfg.Scene.TopperSize),
		Queue:     queue,
		Placement: report,
		Seed:      seed,
	}

	slog.Info("scene generated",
		"seed", seed,
		"ambient", len(ambient),
		"ornaments", len(ornaments),
		"filler", len(filler),
		"gifts", len(gifts),
		"snow", len(snow.Flakes),
		"placement_exhausted", report.ExhaustedCount(),
	)
	return s, nil
}

// Update stage names reported to a PhaseMarker.
const (
	PhaseMorph = "morph"
	PhaseGifts = "gifts"
	PhaseSnow  = "snow"
	PhaseQueue = "queue"
)

// PhaseMarker is told when each update stage begins.
type PhaseMarker interface {
	StartPhase(phase string)
}

// Update runs one frame. mode is read once; t is elapsed seconds, dt the frame delta.
func (s *Scene) Update(mode components.Mode, t, dt float64) {
	s.UpdateMarked(mode, t, dt, nil)
}

// UpdateMarked is Update with stage boundaries reported to m, which may be nil.
func (s *Scene) UpdateMarked(mode components.Mode, t, dt float64, m PhaseMarker) {
	mark := func(phase string) {
		if m != nil {
			m.StartPhase(phase)
		}
	}
	t32 := float32(t)

	mark(PhaseMorph)
	s.Ambient.Update(mode, t32)
	s.Ornaments.Update(mode, t32)
	s.Filler.Update(mode, t32)
	s.Topper.Update(mode, t)

	mark(PhaseGifts)
	s.Gifts.Update(mode, t)

	mark(PhaseSnow)
	s.Snow.SetTime(t32)

	mark(PhaseQueue)
	s.Queue.Advance(dt)
}

// GiftRecords copies the static gift records in spawn order.
func (s *Scene) GiftRecords() []components.Gift {
	out := make([]components.Gift, 0, s.Gifts.Len())
	s.Gifts.Each(func(v GiftView) {
		out = append(out, *v.Gift)
	})
	return out
}

// Swarms returns the morphing classes in draw order.
func (s *Scene) Swarms() []*Swarm {
	return []*Swarm{s.Filler, s.Ambient, s.Ornaments}
}

// ElementCount returns the number of CPU-animated elements.
func (s *Scene) ElementCount() int {
	return s.Ambient.Len() + s.Ornaments.Len() + s.Filler.Len()
}

// Unload cancels pending reveals and releases gift entities.
// The scene must not be updated afterwards.
func (s *Scene) Unload() {
	s.Gifts.Close()
	s.Queue.Clear()
}

// String summarizes the scene for logs.
func (s *Scene) String() string {
	return fmt.Sprintf("scene(seed=%d elements=%d gifts=%d snow=%d)",
		s.Seed, s.ElementCount(), s.Gifts.Len(), len(s.Snow.Flakes))
}
