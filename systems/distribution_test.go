package systems

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/config"
)

func init() {
	// Initialize config for tests
	config.MustInit("")
}

func defaultParams(count int) DistributionParams {
	return ClassParams(config.Cfg(), count)
}

// heightFraction recovers h from a formation Y.
func heightFraction(p DistributionParams, y float64) float64 {
	return (y + p.TreeHeight/2) / p.TreeHeight
}

func radial(v r3.Vec) float64 {
	return math.Hypot(v.X, v.Z)
}

func TestScatterBounds(t *testing.T) {
	p := defaultParams(2000)
	tests := []struct {
		name  string
		gen   func(*rand.Rand, DistributionParams) ([]components.Element, error)
		scale float64
	}{
		{"ambient", GenerateAmbient, ambientScatterScale},
		{"ornaments", GenerateOrnaments, ornamentScatterScale},
		{"filler", GenerateFiller, fillerScatterScale},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			elems, err := tc.gen(rand.New(rand.NewSource(1)), p)
			if err != nil {
				t.Fatal(err)
			}
			limit := p.ScatterRadius*tc.scale + 1e-9
			for _, e := range elems {
				if r3.Norm(e.Scatter) > limit {
					t.Fatalf("element %d scatter radius %f exceeds %f", e.ID, r3.Norm(e.Scatter), limit)
				}
			}
		})
	}
}

func TestFormationBounds(t *testing.T) {
	p := defaultParams(2000)
	const eps = 1e-9

	t.Run("ambient on surface", func(t *testing.T) {
		elems, err := GenerateAmbient(rand.New(rand.NewSource(2)), p)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range elems {
			h := heightFraction(p, e.Formation.Y)
			if h < -eps || h > 1+eps {
				t.Fatalf("height fraction %f out of range", h)
			}
			if math.Abs(radial(e.Formation)-p.ConeRadiusAt(h)) > 1e-6 {
				t.Fatalf("element %d off surface: radial %f, cone %f", e.ID, radial(e.Formation), p.ConeRadiusAt(h))
			}
		}
	})

	t.Run("ornaments inside band", func(t *testing.T) {
		elems, err := GenerateOrnaments(rand.New(rand.NewSource(3)), p)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range elems {
			h := heightFraction(p, e.Formation.Y)
			cone := p.ConeRadiusAt(h)
			r := radial(e.Formation)
			if r < 0.2*cone-1e-6 || r > 0.9*cone+1e-6 {
				t.Fatalf("ornament %d radial %f outside [%f, %f]", e.ID, r, 0.2*cone, 0.9*cone)
			}
		}
	})

	t.Run("filler inside volume", func(t *testing.T) {
		elems, err := GenerateFiller(rand.New(rand.NewSource(4)), p)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range elems {
			h := heightFraction(p, e.Formation.Y)
			if r := radial(e.Formation); r > 0.9*p.ConeRadiusAt(h)+1e-6 {
				t.Fatalf("filler %d radial %f exceeds %f", e.ID, r, 0.9*p.ConeRadiusAt(h))
			}
		}
	})
}

// Volume classes share h = 1 - sqrt(u), so three quarters sit in the lower half.
func TestVolumeBaseBias(t *testing.T) {
	p := defaultParams(20000)
	tests := []struct {
		name string
		gen  func(*rand.Rand, DistributionParams) ([]components.Element, error)
	}{
		{"ornaments", GenerateOrnaments},
		{"filler", GenerateFiller},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elems, err := tt.gen(rand.New(rand.NewSource(11)), p)
			if err != nil {
				t.Fatal(err)
			}
			low := 0
			for _, e := range elems {
				if heightFraction(p, e.Formation.Y) < 0.5 {
					low++
				}
			}
			if share := float64(low) / float64(len(elems)); share < 0.73 || share > 0.77 {
				t.Errorf("expected ~0.75 of elements below mid-height, got %.3f", share)
			}
		})
	}
}

// Ornament radial fraction squared is uniform on [0.04, 0.81].
func TestOrnamentRadialSqrt(t *testing.T) {
	p := defaultParams(20000)
	elems, err := GenerateOrnaments(rand.New(rand.NewSource(12)), p)
	if err != nil {
		t.Fatal(err)
	}
	sum := 0.0
	n := 0
	for _, e := range elems {
		h := heightFraction(p, e.Formation.Y)
		cone := p.ConeRadiusAt(h)
		if cone < 1e-3 {
			continue
		}
		f := radial(e.Formation) / cone
		sum += f * f
		n++
	}
	if mean := sum / float64(n); math.Abs(mean-0.425) > 0.01 {
		t.Errorf("expected mean squared radial fraction ~0.425, got %.4f", mean)
	}
}

// The default ambient class: 3500 elements, H=20, R=8.
func TestAmbientDefaultScene(t *testing.T) {
	cfg := config.Cfg()
	p := ClassParams(cfg, cfg.Ambient.Count)
	elems, err := GenerateAmbient(rand.New(rand.NewSource(7)), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(elems) != 3500 {
		t.Fatalf("expected 3500 elements, got %d", len(elems))
	}
	for _, e := range elems {
		if math.Abs(e.Formation.Y) > 10+1e-9 {
			t.Fatalf("element %d y=%f outside [-10, 10]", e.ID, e.Formation.Y)
		}
		h := heightFraction(p, e.Formation.Y)
		if radial(e.Formation) > 8*(1-h)+1e-6 {
			t.Fatalf("element %d radial %f exceeds 8(1-h)=%f", e.ID, radial(e.Formation), 8*(1-h))
		}
	}
}

func TestSeedDeterminism(t *testing.T) {
	p := defaultParams(500)
	a, _ := GenerateOrnaments(rand.New(rand.NewSource(99)), p)
	b, _ := GenerateOrnaments(rand.New(rand.NewSource(99)), p)
	c, _ := GenerateOrnaments(rand.New(rand.NewSource(100)), p)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("element %d differs between identical seeds", i)
		}
	}
	same := true
	for i := range a {
		if a[i].Formation != c[i].Formation {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical formations")
	}
}

func TestClassIDs(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p := defaultParams(10)

	amb, _ := GenerateAmbient(rng, p)
	orn, _ := GenerateOrnaments(rng, p)
	fil, _ := GenerateFiller(rng, p)

	tests := []struct {
		name   string
		elems  []components.Element
		offset int
	}{
		{"ambient", amb, AmbientIDOffset},
		{"ornaments", orn, OrnamentIDOffset},
		{"filler", fil, FillerIDOffset},
	}
	for _, tc := range tests {
		for i, e := range tc.elems {
			if e.ID != tc.offset+i {
				t.Errorf("%s[%d]: expected ID %d, got %d", tc.name, i, tc.offset+i, e.ID)
			}
		}
	}
}

func TestPaletteWeights(t *testing.T) {
	elems, err := GenerateAmbient(rand.New(rand.NewSource(11)), defaultParams(20000))
	if err != nil {
		t.Fatal(err)
	}
	counts := map[[4]uint8]int{}
	for _, e := range elems {
		counts[[4]uint8{e.Color.R, e.Color.G, e.Color.B, e.Color.A}]++
	}
	frac := func(c [4]uint8) float64 { return float64(counts[c]) / float64(len(elems)) }
	gold := [4]uint8{ColorGoldMetallic.R, ColorGoldMetallic.G, ColorGoldMetallic.B, 255}
	deep := [4]uint8{ColorEmeraldDeep.R, ColorEmeraldDeep.G, ColorEmeraldDeep.B, 255}

	if f := frac(gold); f < 0.03 || f > 0.07 {
		t.Errorf("expected ~5%% gold, got %.3f", f)
	}
	if f := frac(deep); f < 0.50 || f > 0.58 {
		t.Errorf("expected ~54%% emerald deep, got %.3f", f)
	}
}

func TestZeroCount(t *testing.T) {
	elems, err := GenerateFiller(rand.New(rand.NewSource(1)), defaultParams(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elems) != 0 {
		t.Errorf("expected empty result, got %d", len(elems))
	}
}

func TestInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DistributionParams)
	}{
		{"negative count", func(p *DistributionParams) { p.Count = -1 }},
		{"zero scatter radius", func(p *DistributionParams) { p.ScatterRadius = 0 }},
		{"zero height", func(p *DistributionParams) { p.TreeHeight = 0 }},
		{"negative base radius", func(p *DistributionParams) { p.TreeRadiusBase = -3 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := defaultParams(10)
			tc.mutate(&p)
			if _, err := GenerateAmbient(rand.New(rand.NewSource(1)), p); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
