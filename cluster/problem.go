package cluster

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
)

// Source is the matrix surface FromMatrix reads. *matrix.Matrix satisfies it.
type Source interface {
	Variant() matrix.Variant
	Rows() []core.Item
	Item(id core.ID) (core.Item, bool)
	Connections() []core.Connection
}

// NewProblem builds a Problem over items with the given pair weights.
// weights must be n×n, finite and non-negative; it is symmetrized as
// w(i,j)+w(j,i) and its diagonal ignored. The input is copied.
func NewProblem(items []core.ID, weights [][]float64) (*Problem, error) {
	n := len(items)
	if len(weights) != n {
		return nil, fmt.Errorf("%w: %d items, %d weight rows", ErrDimensionMismatch, n, len(weights))
	}
	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		if len(weights[i]) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrDimensionMismatch, i, len(weights[i]))
		}
		for j := 0; j < n; j++ {
			v := weights[i][j]
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: (%d,%d)=%v", ErrInvalidWeight, i, j, v)
			}
			if i != j {
				w[i][j] += v
				w[j][i] += v
			}
		}
	}

	return &Problem{items: append([]core.ID(nil), items...), weights: w}, nil
}

// FromMatrix builds a Problem from a Symmetric matrix: one entry per row
// item (sorted by sort index), pair weight from both directions. With
// CountByWeight false each connection counts 1. Negative weights count as
// their magnitude. With SeedFromGroupings the initial partition follows the
// items' current groupings.
func FromMatrix(src Source, params Params) (*Problem, error) {
	if src == nil {
		return nil, ErrNilProblem
	}
	if src.Variant() != matrix.Symmetric {
		return nil, fmt.Errorf("%w: %s", ErrNotSymmetric, src.Variant())
	}
	rows := src.Rows()
	matrix.SortItems(rows)
	n := len(rows)
	index := make(map[core.ID]int, n)
	items := make([]core.ID, n)
	for i, r := range rows {
		index[r.ID] = i
		items[i] = r.ID
	}
	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, n)
	}
	for _, c := range src.Connections() {
		col, ok := src.Item(c.Col)
		if !ok {
			continue
		}
		i, okI := index[c.Row]
		j, okJ := index[col.Alias]
		if !okI || !okJ || i == j {
			continue
		}
		v := 1.0
		if params.CountByWeight {
			v = math.Abs(c.Weight)
		}
		w[i][j] += v
	}

	p, err := NewProblem(items, w)
	if err != nil {
		return nil, err
	}
	if params.SeedFromGroupings {
		p.seed = make([]int, n)
		labels := make(map[core.ID]int)
		for i, r := range rows {
			l, ok := labels[r.Group]
			if !ok {
				l = len(labels)
				labels[r.Group] = l
			}
			p.seed[i] = l
		}
	}

	return p, nil
}
