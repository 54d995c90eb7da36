// SPDX-License-Identifier: MIT
// Package: dsm/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Constructors attach context with %w; they never panic.
//   • Option constructors (WithX) panic on meaningless input instead.

package builder

import "errors"

// ErrTooFewItems indicates a size parameter (n, k, size) below its minimum.
var ErrTooFewItems = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor ran without WithSeed
// or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil constructor or a matrix mutation that
// the matrix declined.
var ErrConstructFailed = errors.New("builder: construction failed")
