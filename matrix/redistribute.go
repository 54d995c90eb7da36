// SPDX-License-Identifier: MIT
// Package matrix: sort index redistribution.

package matrix

import (
	"sort"

	"github.com/katalvlaran/dsm/core"
)

// RedistributeSortIndices renumbers sort indices to 1..n, per domain and per
// role set, preserving the current relative order (ties broken by id).
// Aliased variants renumber rows and carry each value to the alias.
// Items already holding their target value record nothing.
//
// Complexity: O(V log V).
func (m *Matrix) RedistributeSortIndices() error {
	return m.action("redistribute sort indices", func() error {
		for _, d := range m.store.Domains() {
			for _, role := range m.ops.sortRoles {
				if err := m.redistribute(d.ID, role); err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// redistribute renumbers one role set of one domain.
func (m *Matrix) redistribute(domain core.ID, role core.Role) error {
	items := m.store.ItemsIn(domain, role)
	SortItems(items)
	for i, it := range items {
		target := float64(i + 1)
		if it.SortIndex == target {
			continue
		}
		if err := m.setSortIndex(it.ID, target); err != nil {
			return err
		}
	}

	return nil
}

// SortItems orders items by sort index ascending, ties broken by id.
func SortItems(items []core.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortIndex != items[j].SortIndex {
			return items[i].SortIndex < items[j].SortIndex
		}

		return items[i].ID < items[j].ID
	})
}
