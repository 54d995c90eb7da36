// File: methods_clone.go
// Role: Deep copies of a Store.
// Concurrency:
//   - The clone shares no memory with the source; it is safe to read on
//     another goroutine while the source keeps mutating.

package core

// Clone returns a deep copy of s: items, connections (with their own
// interface slices), adjacency indexes and domains with their palettes.
//
// Complexity: O(V + E + G).
func (s *Store) Clone() *Store {
	out := &Store{
		items:   make(map[ID]*Item, len(s.items)),
		conns:   make(map[ConnKey]*Connection, len(s.conns)),
		byRow:   make(map[ID]map[ID]struct{}, len(s.byRow)),
		byCol:   make(map[ID]map[ID]struct{}, len(s.byCol)),
		domains: make(map[ID]*Domain, len(s.domains)),
	}
	for id, it := range s.items {
		cp := *it
		out.items[id] = &cp
	}
	for _, c := range s.conns {
		cp := c.clone()
		out.index(&cp)
	}
	for id, d := range s.domains {
		cp := d.clone()
		out.domains[id] = &cp
	}

	return out
}
