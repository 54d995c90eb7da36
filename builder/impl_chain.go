// SPDX-License-Identifier: MIT
// Package: dsm/builder
//
// impl_chain.go - Chain(n) constructor.
//
// Model: n items where item i depends on item i+1 (row i → column i+1),
// the shape propagation tests walk level by level. Deterministic whenever
// the weight function is.
//
// Complexity: O(n).

package builder

import (
	"fmt"

	"github.com/katalvlaran/dsm/matrix"
)

const (
	methodChain   = "Chain"
	minChainItems = 2
)

// Chain returns a Constructor adding n items linked in a row→column chain.
func Chain(n int) Constructor {
	return func(m *matrix.Matrix, cfg builderConfig) error {
		if n < minChainItems {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodChain, n, minChainItems, ErrTooFewItems)
		}
		s, err := addItems(methodChain, m, cfg, n, "")
		if err != nil {
			return err
		}
		for i := 0; i+1 < n; i++ {
			if err = connect(methodChain, m, cfg, s, i, i+1); err != nil {
				return err
			}
		}

		return nil
	}
}
