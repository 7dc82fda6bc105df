package telemetry

import (
	"bytes"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/config"
	"github.com/pthm-cable/noel/systems"
)

func init() {
	config.MustInit("")
}

func giftAt(x float64, radius float64) components.Gift {
	var g components.Gift
	g.Formation = r3.Vec{X: x}
	g.CollisionRadius = radius
	return g
}

func TestComputePlacementStats(t *testing.T) {
	tests := []struct {
		name         string
		gifts        []components.Gift
		wantPairs    int
		wantFraction float64
		wantMinClear float64
	}{
		{
			name:         "separated",
			gifts:        []components.Gift{giftAt(0, 1), giftAt(5, 1), giftAt(10, 1)},
			wantPairs:    0,
			wantFraction: 0,
			wantMinClear: 3,
		},
		{
			name:         "one overlap",
			gifts:        []components.Gift{giftAt(0, 1), giftAt(1.5, 1), giftAt(10, 1)},
			wantPairs:    1,
			wantFraction: 2.0 / 3,
			wantMinClear: -0.5,
		},
		{
			name:         "touching is not overlap",
			gifts:        []components.Gift{giftAt(0, 1), giftAt(2, 1)},
			wantPairs:    0,
			wantFraction: 0,
			wantMinClear: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			report := systems.PlacementReport{Count: len(tc.gifts), Attempts: make([]int, len(tc.gifts))}
			for i := range report.Attempts {
				report.Attempts[i] = 1
			}
			s := ComputePlacementStats(1, tc.gifts, report)
			if s.OverlapPairs != tc.wantPairs {
				t.Errorf("expected %d overlapping pairs, got %d", tc.wantPairs, s.OverlapPairs)
			}
			if math.Abs(s.OverlapFraction-tc.wantFraction) > 1e-9 {
				t.Errorf("expected overlap fraction %f, got %f", tc.wantFraction, s.OverlapFraction)
			}
			if math.Abs(s.ClearanceMin-tc.wantMinClear) > 1e-9 {
				t.Errorf("expected min clearance %f, got %f", tc.wantMinClear, s.ClearanceMin)
			}
			if s.AttemptsMean != 1 || s.AttemptsStd != 0 {
				t.Errorf("expected attempts 1±0, got %f±%f", s.AttemptsMean, s.AttemptsStd)
			}
		})
	}
}

func TestComputePlacementStatsEmpty(t *testing.T) {
	s := ComputePlacementStats(3, nil, systems.PlacementReport{})
	if s.Count != 0 || s.OverlapPairs != 0 || s.OverlapFraction != 0 {
		t.Errorf("expected zero stats, got %+v", s)
	}
}

func TestSummarizeGeneratedScenes(t *testing.T) {
	params := systems.GiftParamsFromConfig(config.Cfg())

	var rows []PlacementStats
	for seed := int64(1); seed <= 20; seed++ {
		gifts, report, err := systems.GenerateGifts(rand.New(rand.NewSource(seed)), params)
		if err != nil {
			t.Fatal(err)
		}
		rows = append(rows, ComputePlacementStats(seed, gifts, report))
	}

	clean := 0
	for _, r := range rows {
		// Without an exhausted fallback the resolver never accepts an overlap
		if r.Exhausted == 0 {
			clean++
			if r.OverlapPairs != 0 {
				t.Errorf("seed %d: %d overlaps without exhaustion", r.Seed, r.OverlapPairs)
			}
		}
	}

	sum := Summarize(rows)
	if sum.Seeds != 20 {
		t.Errorf("expected 20 seeds, got %d", sum.Seeds)
	}
	if sum.NonOverlapping < clean {
		t.Errorf("expected at least %d overlap-free scenes, got %d", clean, sum.NonOverlapping)
	}
	if sum.MeanAttempts < 1 {
		t.Errorf("expected at least one attempt per gift, got %f", sum.MeanAttempts)
	}
}

func TestOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected disabled output for empty dir, got %v %v", om, err)
	}
	// Nil manager is a no-op
	if err := om.WritePlacement(PlacementStats{}); err != nil {
		t.Error(err)
	}

	dir := t.TempDir()
	om, err = NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Cfg()); err != nil {
		t.Fatal(err)
	}
	for seed := int64(1); seed <= 3; seed++ {
		if err := om.WritePlacement(PlacementStats{Seed: seed, Count: 18}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WritePerf(PerfStats{AvgFrame: 1000}, 120); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "placement.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "seed,count,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected config snapshot: %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []PlacementStats{{Seed: 1}, {Seed: 2}}
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 3 {
		t.Errorf("expected 3 lines, got %d", n)
	}
}
