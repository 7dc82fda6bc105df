package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/config"
)

func TestTopper(t *testing.T) {
	tp := NewTopper(20, 1.5)
	if tp.Position.Y != 11 {
		t.Errorf("expected topper at y=11, got %f", tp.Position.Y)
	}
	if tp.Visible() {
		t.Error("topper should start hidden")
	}

	for f := 0; f < 400; f++ {
		tp.Update(components.ModeFormation, float64(f)/60)
	}
	if math.Abs(tp.Scale-1) > 1e-3 {
		t.Errorf("expected full scale, got %f", tp.Scale)
	}
	if math.Abs(tp.Spin-0.5*399.0/60) > 1e-9 {
		t.Errorf("unexpected spin %f", tp.Spin)
	}

	for f := 0; f < 400; f++ {
		tp.Update(components.ModeScattered, float64(f)/60)
	}
	if tp.Visible() {
		t.Errorf("expected topper hidden, scale %f", tp.Scale)
	}
}

func TestSceneLifecycle(t *testing.T) {
	cfg := config.Cfg()
	var cards []string
	scene, err := NewScene(cfg, 42, func(m string) { cards = append(cards, m) })
	if err != nil {
		t.Fatal(err)
	}
	if scene.ElementCount() != cfg.Derived.TotalCount {
		t.Errorf("expected %d elements, got %d", cfg.Derived.TotalCount, scene.ElementCount())
	}
	if scene.Gifts.Len() != cfg.Gifts.Count {
		t.Errorf("expected %d gifts, got %d", cfg.Gifts.Count, scene.Gifts.Len())
	}

	const dt = 1.0 / 60
	for f := 0; f < 30; f++ {
		scene.Update(components.ModeFormation, float64(f)*dt, dt)
	}
	scene.Gifts.Click(scene.Gifts.Entities()[0], components.ModeFormation)
	for f := 30; f < 60; f++ {
		scene.Update(components.ModeFormation, float64(f)*dt, dt)
	}
	if len(cards) != 1 {
		t.Fatalf("expected one revealed card, got %d", len(cards))
	}

	// A pending reveal is dropped on unload
	scene.Gifts.Click(scene.Gifts.Entities()[1], components.ModeFormation)
	scene.Unload()
	scene.Queue.Advance(1)
	if len(cards) != 1 {
		t.Errorf("reveal fired after unload")
	}
	if scene.Queue.Pending() != 0 {
		t.Errorf("expected empty queue after unload, have %d", scene.Queue.Pending())
	}
}

func TestSceneDeterministic(t *testing.T) {
	cfg := config.Cfg()
	a, err := NewScene(cfg, 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewScene(cfg, 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if a.Ambient.Position(i) != b.Ambient.Position(i) {
			t.Fatalf("ambient slot %d differs between identical seeds", i)
		}
	}
	if a.Snow.Flakes[10] != b.Snow.Flakes[10] {
		t.Error("snow differs between identical seeds")
	}
}

type phaseLog []string

func (p *phaseLog) StartPhase(phase string) { *p = append(*p, phase) }

func TestSceneUpdateMarked(t *testing.T) {
	scene, err := NewScene(config.Cfg(), 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer scene.Unload()

	var got phaseLog
	scene.UpdateMarked(components.ModeFormation, 0.1, 0.1, &got)
	want := []string{PhaseMorph, PhaseGifts, PhaseSnow, PhaseQueue}
	if len(got) != len(want) {
		t.Fatalf("expected phases %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("phase %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	records := scene.GiftRecords()
	if len(records) != scene.Gifts.Len() {
		t.Fatalf("expected %d records, got %d", scene.Gifts.Len(), len(records))
	}
	for i, g := range records {
		if g.ID != GiftIDOffset+i {
			t.Errorf("record %d has ID %d", i, g.ID)
		}
	}
}
