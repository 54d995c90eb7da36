// SPDX-License-Identifier: MIT
// Package: dsm/builder
//
// impl_random_sparse.go - RandomSparse(n, p) constructor.
//
// Model: each admissible ordered pair (row i, column j) is connected
// independently with probability p. Aliased variants skip i == j (an item
// never depends on itself); Asymmetric admits the full n×n cross product.
//
// Determinism: items are added in index order, trials run i asc then j asc.
// Complexity: O(n²) trials.

package builder

import (
	"fmt"

	"github.com/katalvlaran/dsm/matrix"
)

const (
	methodRandomSparse   = "RandomSparse"
	minRandomSparseItems = 1
)

// RandomSparse returns a Constructor adding n items connected at random with
// probability p. Requires 0 ≤ p ≤ 1 and an rng unless p is 0 or 1.
func RandomSparse(n int, p float64) Constructor {
	return func(m *matrix.Matrix, cfg builderConfig) error {
		if n < minRandomSparseItems {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRandomSparse, n, minRandomSparseItems, ErrTooFewItems)
		}
		if err := validateProbability(methodRandomSparse, cfg, p); err != nil {
			return err
		}
		s, err := addItems(methodRandomSparse, m, cfg, n, "")
		if err != nil {
			return err
		}
		aliased := m.Variant().Aliased()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if aliased && i == j {
					continue
				}
				if !trial(cfg, p) {
					continue
				}
				if err = connect(methodRandomSparse, m, cfg, s, i, j); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
