package main

import (
	"github.com/pthm-cable/noel/config"
)

// ParamSpec defines a single tunable placement parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the placement parameter set.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "collision_safety", Path: "gifts.collision_safety", Min: 1.0, Max: 2.0, Default: 1.5},
			{Name: "stacked_radius_min", Path: "gifts.stacked_radius_min", Min: 1.5, Max: 8.0, Default: 3.0},
			{Name: "stacked_radius_span", Path: "gifts.stacked_radius_span", Min: 1.0, Max: 8.0, Default: 4.0},
			{Name: "surface_height_limit", Path: "gifts.surface_height_limit", Min: 0.4, Max: 1.0, Default: 0.85},
			{Name: "surface_offset_scale", Path: "gifts.surface_offset_scale", Min: 0.2, Max: 1.5, Default: 0.8},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Gifts.CollisionSafety = c[0]
	cfg.Gifts.StackedRadiusMin = c[1]
	cfg.Gifts.StackedRadiusSpan = c[2]
	cfg.Gifts.SurfaceHeightLimit = c[3]
	cfg.Gifts.SurfaceOffsetScale = c[4]
}

// ExtractFromConfig extracts current parameter values from a Config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Gifts.CollisionSafety,
		cfg.Gifts.StackedRadiusMin,
		cfg.Gifts.StackedRadiusSpan,
		cfg.Gifts.SurfaceHeightLimit,
		cfg.Gifts.SurfaceOffsetScale,
	}
}
