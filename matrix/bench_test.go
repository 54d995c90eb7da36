// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/dsm/builder"
	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
)

// benchSizes are the item counts to benchmark.
var benchSizes = []int{32, 128, 512}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Matrix
	sinkD matrix.Document
)

func benchMatrix(b *testing.B, n int) *matrix.Matrix {
	b.Helper()
	m, err := builder.Build(nil, matrix.Symmetric,
		[]builder.BuilderOption{builder.WithSeed(1337), builder.WithIntegerWeight(1, 9), builder.WithMatrixOptions(quiet)},
		builder.RandomSparse(n, 0.05))
	if err != nil {
		b.Fatal(err)
	}

	return m
}

func BenchmarkDocument(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			m := benchMatrix(b, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sinkD = m.Document()
			}
		})
	}
}

func BenchmarkLoad(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			doc := benchMatrix(b, n).Document()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Load(core.NewSession(), doc, quiet)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkTransposeUndo(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			m := benchMatrix(b, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := m.Transpose(); err != nil {
					b.Fatal(err)
				}
				if err := m.Undo(); err != nil {
					b.Fatal(err)
				}
			}
			sinkM = m
		})
	}
}
