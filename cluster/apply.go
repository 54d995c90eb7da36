package cluster

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
)

// ClusterNameFormat names the groupings Apply creates.
const ClusterNameFormat = "Cluster %d"

// Apply writes res into m as one undoable action:
//   - every cluster of two or more items gets a new grouping named
//     "Cluster N" (N counts from 1 in label order) with a distinct color;
//   - singletons fall back to the default grouping;
//   - sort indices are rewritten 1..n so each cluster is contiguous,
//     clusters in label order, members in their current relative order.
//
// Existing groupings are kept. m must be Symmetric and hold every item of
// res; otherwise nothing changes.
func Apply(m *matrix.Matrix, res *Result) error {
	if m == nil {
		return matrix.ErrNilMatrix
	}
	if res == nil {
		return fmt.Errorf("%w: nil result", ErrStaleResult)
	}
	if m.Variant() != matrix.Symmetric {
		return fmt.Errorf("%w: %s", ErrNotSymmetric, m.Variant())
	}
	if len(res.Items) != len(res.Assignment) {
		return fmt.Errorf("%w: %d items, %d labels", ErrDimensionMismatch, len(res.Items), len(res.Assignment))
	}
	current := make(map[core.ID]core.Item, len(res.Items))
	for _, id := range res.Items {
		it, ok := m.Item(id)
		if !ok || it.Role != core.RoleRow {
			return fmt.Errorf("%w: item %d", ErrStaleResult, id)
		}
		current[id] = it
	}
	domainID := m.DomainForRole(core.RoleRow)
	dom, _ := m.Domain(domainID)

	return m.Atomic(func() error {
		next := 1.0
		named := 0
		for _, members := range res.Clusters {
			group := dom.DefaultGroup
			if len(members) > 1 {
				named++
				g, err := m.AddGrouping(domainID, fmt.Sprintf(ClusterNameFormat, named), clusterColor(named), core.Black)
				if err != nil {
					return err
				}
				group = g
			}
			ordered := make([]core.Item, 0, len(members))
			for _, id := range members {
				ordered = append(ordered, current[id])
			}
			matrix.SortItems(ordered)
			for _, it := range ordered {
				if err := m.SetItemGrouping(it.ID, group); err != nil {
					return err
				}
				if err := m.SetItemSortIndex(it.ID, next); err != nil {
					return err
				}
				next++
			}
		}

		return nil
	})
}

// clusterColor spreads hues by the golden angle at fixed saturation and
// value.
func clusterColor(n int) core.Color {
	h := math.Mod(float64(n)*0.618033988749895, 1) * 6
	const s, v = 0.45, 0.95
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h, 2)-1))
	var r, g, b float64
	switch int(h) {
	case 0:
		r, g, b = c, x, 0
	case 1:
		r, g, b = x, c, 0
	case 2:
		r, g, b = 0, c, x
	case 3:
		r, g, b = 0, x, c
	case 4:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := v - c

	return core.Color{R: r + m, G: g + m, B: b + m}
}
