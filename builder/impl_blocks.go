// SPDX-License-Identifier: MIT
// Package: dsm/builder
//
// impl_blocks.go - Blocks(k, size, pIn, pOut) constructor.
//
// Model: a planted partition. k blocks of size items each are added block
// by block; a pair inside one block connects with probability pIn, a pair
// across blocks with pOut. In a MultiDomain matrix block b lives in its own
// domain named BlockDomainFormat. Clustering fixtures use pIn=1, pOut=0.
//
// Complexity: O((k·size)²) trials.

package builder

import (
	"fmt"

	"github.com/katalvlaran/dsm/matrix"
)

const (
	methodBlocks = "Blocks"
	minBlocks    = 1
	minBlockSize = 1
)

// BlockDomainFormat names the domain of block b (one-based) in MultiDomain
// matrices.
const BlockDomainFormat = "Block %d"

// Blocks returns a Constructor adding k blocks of size items with planted
// intra-block density pIn and inter-block density pOut.
func Blocks(k, size int, pIn, pOut float64) Constructor {
	return func(m *matrix.Matrix, cfg builderConfig) error {
		if k < minBlocks {
			return fmt.Errorf("%s: k=%d < min=%d: %w", methodBlocks, k, minBlocks, ErrTooFewItems)
		}
		if size < minBlockSize {
			return fmt.Errorf("%s: size=%d < min=%d: %w", methodBlocks, size, minBlockSize, ErrTooFewItems)
		}
		if err := validateProbability(methodBlocks, cfg, pIn, pOut); err != nil {
			return err
		}

		var all slots
		for b := 0; b < k; b++ {
			domain := ""
			if m.Variant() == matrix.MultiDomain {
				domain = fmt.Sprintf(BlockDomainFormat, b+1)
			}
			s, err := addItems(methodBlocks, m, cfg, size, domain)
			if err != nil {
				return err
			}
			all.rows = append(all.rows, s.rows...)
			all.cols = append(all.cols, s.cols...)
		}

		n := k * size
		aliased := m.Variant().Aliased()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if aliased && i == j {
					continue
				}
				p := pOut
				if i/size == j/size {
					p = pIn
				}
				if !trial(cfg, p) {
					continue
				}
				if err := connect(methodBlocks, m, cfg, all, i, j); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
