// SPDX-License-Identifier: MIT
// Package: dsm/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • nameFn     = DefaultNameFn ("E1","E2",...)
//   • rng        = nil (pure unless seeded)
//   • weightFn   = DefaultWeightFn
//   • interfaces = none

package builder

import (
	"math/rand"

	"github.com/katalvlaran/dsm/matrix"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	nameFn     NameFn
	rng        *rand.Rand
	weightFn   WeightFn
	interfaces []string
	matrixOpts []matrix.Option
}

// newBuilderConfig applies opts over the defaults, later options winning.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		nameFn:   DefaultNameFn,
		weightFn: DefaultWeightFn,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
