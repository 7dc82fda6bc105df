package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/noel/config"
	"github.com/pthm-cable/noel/telemetry"
)

func init() {
	config.MustInit("")
}

func TestEvaluateDefaults(t *testing.T) {
	params := NewParamVector()
	fe := NewFitnessEvaluator(params, []int64{1, 2, 3, 4}, config.Cfg())

	f := fe.Evaluate(params.ExtractFromConfig(config.Cfg()))
	if math.IsInf(f, 0) || math.IsNaN(f) || f < 0 {
		t.Fatalf("expected finite non-negative fitness, got %f", f)
	}
	if got := fe.LastSummary().Seeds; got != 4 {
		t.Errorf("expected summary over 4 seeds, got %d", got)
	}
}

func TestEvaluateLeavesBaseConfig(t *testing.T) {
	params := NewParamVector()
	base := config.Cfg()
	before := base.Gifts
	fe := NewFitnessEvaluator(params, []int64{9}, base)

	x := params.DefaultVector()
	x[0] = params.Specs[0].Max
	fe.Evaluate(x)
	if base.Gifts != before {
		t.Error("Evaluate mutated the base config")
	}
}

func TestScore(t *testing.T) {
	clean := telemetry.Summary{Seeds: 2, MeanAttempts: 2}
	rows := []telemetry.PlacementStats{{ClearanceMean: 0.5}, {ClearanceMean: 0.5}}

	tests := []struct {
		name string
		sum  telemetry.Summary
		rows []telemetry.PlacementStats
	}{
		{"overlap", telemetry.Summary{Seeds: 2, MeanAttempts: 2, MeanOverlapFrac: 0.2}, rows},
		{"exhausted", telemetry.Summary{Seeds: 2, MeanAttempts: 2, MeanExhausted: 1}, rows},
		{"spread", clean, []telemetry.PlacementStats{{ClearanceMean: 4}, {ClearanceMean: 4}}},
	}

	base := score(clean, rows, 18)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := score(tt.sum, tt.rows, 18); got <= base {
				t.Errorf("expected penalty above %f, got %f", base, got)
			}
		})
	}
}

func TestParamVectorClamp(t *testing.T) {
	pv := NewParamVector()
	raw := pv.Denormalize([]float64{-1, 2, 0.5, 0, 1})
	c := pv.Clamp(raw)
	for i, spec := range pv.Specs {
		if c[i] < spec.Min || c[i] > spec.Max {
			t.Errorf("%s: %f outside [%f, %f]", spec.Name, c[i], spec.Min, spec.Max)
		}
	}
	if c[0] != pv.Specs[0].Min || c[1] != pv.Specs[1].Max {
		t.Errorf("expected out-of-range values pinned to bounds, got %v", c[:2])
	}
}
