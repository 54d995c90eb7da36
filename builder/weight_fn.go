// Package builder provides helper functions and types for configuring
// connection-weight distributions in matrix constructors.
package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultConnectionWeight is the weight of every generated connection when no
// custom WeightFn is provided.
const DefaultConnectionWeight float64 = 1

// WeightFn produces a connection weight given an optional *rand.Rand source.
// It must be deterministic for a given RNG state.
type WeightFn func(rng *rand.Rand) float64

// DefaultWeightFn always returns DefaultConnectionWeight.
func DefaultWeightFn(_ *rand.Rand) float64 {
	return DefaultConnectionWeight
}

// ConstantWeightFn returns a WeightFn that always yields value.
// Panics if value is negative or not finite.
func ConstantWeightFn(value float64) WeightFn {
	if value < 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		panic(fmt.Sprintf("ConstantWeightFn: value must be finite and ≥ 0, got %g", value))
	}

	return func(_ *rand.Rand) float64 {
		return value
	}
}

// UniformWeightFn returns a WeightFn sampling uniformly in [min, max).
// Panics if min < 0 or max < min. A nil rng yields DefaultConnectionWeight.
func UniformWeightFn(min, max float64) WeightFn {
	if min < 0 || max < min {
		panic(fmt.Sprintf("UniformWeightFn: require 0 ≤ min ≤ max, got min=%g, max=%g", min, max))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultConnectionWeight
		}
		if max == min {
			return min
		}

		return min + rng.Float64()*(max-min)
	}
}

// IntegerWeightFn returns a WeightFn sampling integers uniformly in
// [min, max], the usual DSM strength scale (e.g. 1..9).
// Panics if min < 0 or max < min.
func IntegerWeightFn(min, max int) WeightFn {
	if min < 0 || max < min {
		panic(fmt.Sprintf("IntegerWeightFn: require 0 ≤ min ≤ max, got min=%d, max=%d", min, max))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultConnectionWeight
		}

		return float64(min + rng.Intn(max-min+1))
	}
}

// NormalWeightFn returns a WeightFn sampling N(mean, stddev), rounded to the
// nearest integer and clipped at 0. Panics if stddev < 0.
func NormalWeightFn(mean, stddev float64) WeightFn {
	if stddev < 0 {
		panic(fmt.Sprintf("NormalWeightFn: stddev must be ≥ 0, got %f", stddev))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultConnectionWeight
		}
		sample := rng.NormFloat64()*stddev + mean
		if sample < 0 {
			return 0
		}

		return math.Round(sample)
	}
}

// WithConstantWeight sets a fixed connection weight.
func WithConstantWeight(w float64) BuilderOption {
	return WithWeightFn(ConstantWeightFn(w))
}

// WithUniformWeight sets weights ∼ U[min,max).
func WithUniformWeight(min, max float64) BuilderOption {
	return WithWeightFn(UniformWeightFn(min, max))
}

// WithIntegerWeight sets integer weights in [min,max].
func WithIntegerWeight(min, max int) BuilderOption {
	return WithWeightFn(IntegerWeightFn(min, max))
}

// WithNormalWeight sets weights ∼ N(mean,stddev), clipped at 0.
func WithNormalWeight(mean, stddev float64) BuilderOption {
	return WithWeightFn(NormalWeightFn(mean, stddev))
}
