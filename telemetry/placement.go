package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/systems"
)

// PlacementStats summarizes how well one generation pass spread its gifts.
type PlacementStats struct {
	Seed      int64 `csv:"seed"`
	Count     int   `csv:"count"`
	Stacked   int   `csv:"stacked"`
	Exhausted int   `csv:"exhausted"`

	// Pairs whose footprint spheres intersect, and the share of gifts in at least one
	OverlapPairs    int     `csv:"overlap_pairs"`
	OverlapFraction float64 `csv:"overlap_fraction"`

	AttemptsMean float64 `csv:"attempts_mean"`
	AttemptsStd  float64 `csv:"attempts_std"`
	AttemptsP90  float64 `csv:"attempts_p90"`

	// Nearest-neighbour clearance: center distance minus both radii
	ClearanceMin  float64 `csv:"clearance_min"`
	ClearanceMean float64 `csv:"clearance_mean"`
}

// ComputePlacementStats measures overlaps and effort for a generated gift set.
func ComputePlacementStats(seed int64, gifts []components.Gift, report systems.PlacementReport) PlacementStats {
	s := PlacementStats{
		Seed:      seed,
		Count:     len(gifts),
		Stacked:   report.Stacked,
		Exhausted: report.ExhaustedCount(),
	}
	if len(gifts) == 0 {
		return s
	}

	overlapping := make([]bool, len(gifts))
	clearance := make([]float64, len(gifts))
	for i := range clearance {
		clearance[i] = math.Inf(1)
	}
	for i := range gifts {
		for j := i + 1; j < len(gifts); j++ {
			d := r3.Norm(r3.Sub(gifts[i].Formation, gifts[j].Formation))
			c := d - gifts[i].CollisionRadius - gifts[j].CollisionRadius
			if c < 0 {
				s.OverlapPairs++
				overlapping[i], overlapping[j] = true, true
			}
			clearance[i] = math.Min(clearance[i], c)
			clearance[j] = math.Min(clearance[j], c)
		}
	}

	var n int
	for _, o := range overlapping {
		if o {
			n++
		}
	}
	s.OverlapFraction = float64(n) / float64(len(gifts))

	if len(gifts) > 1 {
		s.ClearanceMean = stat.Mean(clearance, nil)
		sort.Float64s(clearance)
		s.ClearanceMin = clearance[0]
	}

	if len(report.Attempts) > 0 {
		attempts := make([]float64, len(report.Attempts))
		for i, a := range report.Attempts {
			attempts[i] = float64(a)
		}
		s.AttemptsMean, s.AttemptsStd = stat.MeanStdDev(attempts, nil)
		if math.IsNaN(s.AttemptsStd) {
			s.AttemptsStd = 0
		}
		sort.Float64s(attempts)
		s.AttemptsP90 = stat.Quantile(0.9, stat.Empirical, attempts, nil)
	}

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PlacementStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("seed", s.Seed),
		slog.Int("count", s.Count),
		slog.Int("stacked", s.Stacked),
		slog.Int("exhausted", s.Exhausted),
		slog.Int("overlap_pairs", s.OverlapPairs),
		slog.Float64("overlap_fraction", s.OverlapFraction),
		slog.Float64("attempts_mean", s.AttemptsMean),
		slog.Float64("clearance_min", s.ClearanceMin),
	)
}

// Summary aggregates placement stats over many seeds.
type Summary struct {
	Seeds           int
	NonOverlapping  int     // Seeds with zero overlapping pairs
	NonOverlapShare float64 // NonOverlapping / Seeds
	MeanOverlapFrac float64
	MeanAttempts    float64
	MeanExhausted   float64
	WorstClearance  float64
	ClearanceSpread float64 // Standard deviation of per-seed minimum clearance
}

// Summarize folds per-seed stats into one summary.
func Summarize(rows []PlacementStats) Summary {
	sum := Summary{Seeds: len(rows)}
	if len(rows) == 0 {
		return sum
	}

	overlap := make([]float64, len(rows))
	attempts := make([]float64, len(rows))
	exhausted := make([]float64, len(rows))
	minClear := make([]float64, len(rows))
	for i, r := range rows {
		if r.OverlapPairs == 0 {
			sum.NonOverlapping++
		}
		overlap[i] = r.OverlapFraction
		attempts[i] = r.AttemptsMean
		exhausted[i] = float64(r.Exhausted)
		minClear[i] = r.ClearanceMin
	}

	sum.NonOverlapShare = float64(sum.NonOverlapping) / float64(len(rows))
	sum.MeanOverlapFrac = stat.Mean(overlap, nil)
	sum.MeanAttempts = stat.Mean(attempts, nil)
	sum.MeanExhausted = stat.Mean(exhausted, nil)
	sort.Float64s(minClear)
	sum.WorstClearance = minClear[0]
	if len(rows) > 1 {
		sum.ClearanceSpread = stat.StdDev(minClear, nil)
	}
	return sum
}
