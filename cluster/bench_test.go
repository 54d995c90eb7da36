package cluster_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/dsm/builder"
	"github.com/katalvlaran/dsm/cluster"
	"github.com/katalvlaran/dsm/matrix"
)

// benchBlocks are the planted block counts; every block holds 8 items.
var benchBlocks = []int{4, 8, 16}

var sinkR *cluster.Result

func benchProblem(b *testing.B, k int) *cluster.Problem {
	b.Helper()
	m, err := builder.Build(nil, matrix.Symmetric,
		[]builder.BuilderOption{builder.WithSeed(1337), builder.WithMatrixOptions(quiet)},
		builder.Blocks(k, 8, 0.8, 0.02))
	if err != nil {
		b.Fatal(err)
	}
	p, err := cluster.FromMatrix(m, cluster.DefaultParams())
	if err != nil {
		b.Fatal(err)
	}

	return p
}

func BenchmarkRun(b *testing.B) {
	b.ReportAllocs()
	for _, k := range benchBlocks {
		b.Run(fmt.Sprintf("n=%d", k*8), func(b *testing.B) {
			p := benchProblem(b, k)
			params := cluster.DefaultParams()
			params.Passes = 10
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				params.Seed = int64(i)
				res, err := cluster.Run(context.Background(), p, params)
				if err != nil {
					b.Fatal(err)
				}
				sinkR = res
			}
		})
	}
}

func BenchmarkRunRestarts(b *testing.B) {
	b.ReportAllocs()
	p := benchProblem(b, 8)
	params := cluster.DefaultParams()
	params.Passes = 10
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := cluster.RunRestarts(context.Background(), p, params, 4)
		if err != nil {
			b.Fatal(err)
		}
		sinkR = res
	}
}
