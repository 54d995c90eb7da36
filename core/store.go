// File: store.go
// Role: Store layout, constructor and read-only queries.
// Determinism:
//   - Every slice-returning query is sorted (items by id, connections by key,
//     domains by id) so callers never observe map iteration order.
// Concurrency:
//   - None. A Store is owned by one editing session; hand Clone() results to
//     other goroutines.

package core

import (
	"math"
	"sort"
)

// Store holds the entities of one matrix.
//
// Adjacency indexes byRow/byCol mirror conns so incident lookups cost
// O(deg) instead of a scan over every connection.
type Store struct {
	items   map[ID]*Item
	conns   map[ConnKey]*Connection
	byRow   map[ID]map[ID]struct{} // row id -> col ids
	byCol   map[ID]map[ID]struct{} // col id -> row ids
	domains map[ID]*Domain
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		items:   make(map[ID]*Item),
		conns:   make(map[ConnKey]*Connection),
		byRow:   make(map[ID]map[ID]struct{}),
		byCol:   make(map[ID]map[ID]struct{}),
		domains: make(map[ID]*Domain),
	}
}

// Item returns a copy of the item with the given id.
func (s *Store) Item(id ID) (Item, bool) {
	it, ok := s.items[id]
	if !ok {
		return Item{}, false
	}

	return *it, true
}

// HasItem reports whether id names an item.
func (s *Store) HasItem(id ID) bool {
	_, ok := s.items[id]

	return ok
}

// HasID reports whether id names an item, a domain or a grouping.
func (s *Store) HasID(id ID) bool {
	if _, ok := s.items[id]; ok {
		return true
	}
	if _, ok := s.domains[id]; ok {
		return true
	}
	for _, d := range s.domains {
		if _, ok := d.Group(id); ok {
			return true
		}
	}

	return false
}

// Items returns every item of the given role sorted by id.
// A zero role returns all items.
func (s *Store) Items(role Role) []Item {
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		if role == 0 || it.Role == role {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Rows returns the row items sorted by id.
func (s *Store) Rows() []Item { return s.Items(RoleRow) }

// Cols returns the column items sorted by id.
func (s *Store) Cols() []Item { return s.Items(RoleCol) }

// ItemsIn returns items of role owned by domain, sorted by id.
func (s *Store) ItemsIn(domain ID, role Role) []Item {
	out := make([]Item, 0)
	for _, it := range s.items {
		if it.Domain == domain && (role == 0 || it.Role == role) {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// ItemCount returns the number of items (rows and columns).
func (s *Store) ItemCount() int { return len(s.items) }

// Connection returns a copy of the connection at key.
func (s *Store) Connection(key ConnKey) (Connection, bool) {
	c, ok := s.conns[key]
	if !ok {
		return Connection{}, false
	}

	return c.clone(), true
}

// Connections returns every connection sorted by (row, col).
func (s *Store) Connections() []Connection {
	out := make([]Connection, 0, len(s.conns))
	for _, c := range s.conns {
		out = append(out, c.clone())
	}
	sortConnections(out)

	return out
}

// ConnectionCount returns the number of connections.
func (s *Store) ConnectionCount() int { return len(s.conns) }

// RowConnections returns the connections whose row is id, sorted by column.
func (s *Store) RowConnections(id ID) []Connection {
	cols := s.byRow[id]
	out := make([]Connection, 0, len(cols))
	for col := range cols {
		out = append(out, s.conns[ConnKey{Row: id, Col: col}].clone())
	}
	sortConnections(out)

	return out
}

// ColConnections returns the connections whose column is id, sorted by row.
func (s *Store) ColConnections(id ID) []Connection {
	rows := s.byCol[id]
	out := make([]Connection, 0, len(rows))
	for row := range rows {
		out = append(out, s.conns[ConnKey{Row: row, Col: id}].clone())
	}
	sortConnections(out)

	return out
}

// Domain returns a copy of the domain with the given id.
func (s *Store) Domain(id ID) (Domain, bool) {
	d, ok := s.domains[id]
	if !ok {
		return Domain{}, false
	}

	return d.clone(), true
}

// Domains returns every domain sorted by id.
func (s *Store) Domains() []Domain {
	out := make([]Domain, 0, len(s.domains))
	for _, d := range s.domains {
		out = append(out, d.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// DomainCount returns the number of domains.
func (s *Store) DomainCount() int { return len(s.domains) }

// DomainByName returns the first domain (lowest id) named name.
func (s *Store) DomainByName(name string) (Domain, bool) {
	for _, d := range s.Domains() {
		if d.Name == name {
			return d, true
		}
	}

	return Domain{}, false
}

// GroupingOf returns the grouping assigned to item id.
func (s *Store) GroupingOf(id ID) (Grouping, bool) {
	it, ok := s.items[id]
	if !ok {
		return Grouping{}, false
	}
	d, ok := s.domains[it.Domain]
	if !ok {
		return Grouping{}, false
	}

	return d.Group(it.Group)
}

// sortConnections orders connections by (row, col).
func sortConnections(cs []Connection) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Row != cs[j].Row {
			return cs[i].Row < cs[j].Row
		}

		return cs[i].Col < cs[j].Col
	})
}

// validWeight reports whether w is finite.
func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0)
}
