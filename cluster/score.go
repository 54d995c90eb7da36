package cluster

import (
	"fmt"
	"math"
)

// CoordinationScore returns the coordination cost of assign (item index →
// cluster label) for p. Lower is better.
//
// For every pair i<j with pair weight w > 0:
//
//	same cluster C:       w · |C|^PowCC
//	different clusters:   w · ExtraPenalty · n^PowCC
//
// Labels may be any ints; only equality matters.
//
// Complexity: O(n²).
func CoordinationScore(p *Problem, assign []int, params Params) (float64, error) {
	if p == nil {
		return 0, ErrNilProblem
	}
	if len(assign) != p.Len() {
		return 0, fmt.Errorf("%w: %d items, %d labels", ErrDimensionMismatch, p.Len(), len(assign))
	}
	if err := params.Validate(); err != nil {
		return 0, err
	}

	norm := normalize(assign)

	return score(p, norm, sizesOf(norm), params), nil
}

// score is CoordinationScore without validation. Labels must lie in
// [0, len(sizes)); sizes holds member counts per label.
func score(p *Problem, assign, sizes []int, params Params) float64 {
	n := p.Len()
	extra := params.ExtraPenalty * math.Pow(float64(n), params.PowCC)
	total := 0.0
	for i := 0; i < n; i++ {
		row := p.weights[i]
		for j := i + 1; j < n; j++ {
			w := row[j]
			if w == 0 {
				continue
			}
			if assign[i] == assign[j] {
				total += w * math.Pow(float64(sizes[assign[i]]), params.PowCC)
			} else {
				total += w * extra
			}
		}
	}

	return total
}

// sizesOf counts members per label of a normalized or slot assignment.
func sizesOf(assign []int) []int {
	sizes := make([]int, len(assign))
	for _, c := range assign {
		sizes[c]++
	}

	return sizes
}
