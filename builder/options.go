// SPDX-License-Identifier: MIT
// Package: dsm/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors validate and PANIC on meaningless inputs;
//     constructors themselves never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/dsm/matrix"
)

// BuilderOption customizes a build by mutating a builderConfig before any
// constructor runs.
type BuilderOption func(*builderConfig)

// WithNameScheme sets the item naming function: global index -> name.
// Panics on nil.
func WithNameScheme(fn NameFn) BuilderOption {
	if fn == nil {
		panic("builder: WithNameScheme(nil)")
	}

	return func(c *builderConfig) {
		c.nameFn = fn
	}
}

// WithRand provides an explicit RNG for stochastic constructors.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWeightFn overrides the per-connection weight generator. Panics on nil.
func WithWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}

	return func(c *builderConfig) {
		c.weightFn = fn
	}
}

// WithInterfaces tags every generated connection with the given interface
// types.
func WithInterfaces(tags ...string) BuilderOption {
	return func(c *builderConfig) {
		c.interfaces = append([]string(nil), tags...)
	}
}

// WithMatrixOptions forwards options to the matrix constructor (logger,
// metadata, default domain name).
func WithMatrixOptions(opts ...matrix.Option) BuilderOption {
	return func(c *builderConfig) {
		c.matrixOpts = append(c.matrixOpts, opts...)
	}
}
