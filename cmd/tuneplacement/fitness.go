package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/noel/config"
	"github.com/pthm-cable/noel/systems"
	"github.com/pthm-cable/noel/telemetry"
)

// Fitness weights (lower fitness = better).
const (
	overlapWeight   = 10.0 // Per unit overlap fraction
	exhaustedWeight = 5.0  // Per exhausted gift share
	attemptsWeight  = 0.01 // Per mean attempt
	spreadWeight    = 0.2  // Per unit of mean clearance beyond spreadTarget
	spreadTarget    = 1.0  // Clearance that still reads as a pile
)

// FitnessEvaluator generates gift layouts for a fixed seed set and scores them.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastSummary telemetry.Summary
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastSummary returns the placement summary of the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() telemetry.Summary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// Evaluate computes fitness for a raw parameter vector.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	p := systems.GiftParamsFromConfig(cfg)
	if err := p.Validate(); err != nil {
		return math.Inf(1)
	}

	rows := make([]telemetry.PlacementStats, len(fe.seeds))
	failed := make([]bool, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			gifts, report, err := systems.GenerateGifts(rand.New(rand.NewSource(s)), p)
			if err != nil {
				failed[idx] = true
				return
			}
			rows[idx] = telemetry.ComputePlacementStats(s, gifts, report)
		}(i, seed)
	}
	wg.Wait()

	for _, f := range failed {
		if f {
			return math.Inf(1)
		}
	}

	sum := telemetry.Summarize(rows)
	fe.mu.Lock()
	fe.lastSummary = sum
	fe.mu.Unlock()

	return score(sum, rows, cfg.Gifts.Count)
}

// score folds a summary into one scalar.
func score(sum telemetry.Summary, rows []telemetry.PlacementStats, count int) float64 {
	var clearance float64
	for _, r := range rows {
		clearance += r.ClearanceMean
	}
	if len(rows) > 0 {
		clearance /= float64(len(rows))
	}

	f := overlapWeight * sum.MeanOverlapFrac
	if count > 0 {
		f += exhaustedWeight * sum.MeanExhausted / float64(count)
	}
	f += attemptsWeight * sum.MeanAttempts
	if clearance > spreadTarget {
		f += spreadWeight * (clearance - spreadTarget)
	}
	return f
}

// copyConfig returns an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	c := *fe.baseConfig
	return &c
}
