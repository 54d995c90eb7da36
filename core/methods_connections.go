// File: methods_connections.go
// Role: Connection primitives: put, delete, bulk role transpose and rekey.
// Determinism:
//   - Interfaces are normalized on write (trimmed, de-duplicated, order kept).

package core

import "fmt"

// PutConnection creates or replaces the connection at c.Key().
// It returns the previous connection and whether one existed.
//
// Errors: ErrItemNotFound, ErrRoleMismatch, ErrInvalidWeight.
//
// Complexity: O(|Interfaces|).
func (s *Store) PutConnection(c Connection) (Connection, bool, error) {
	if !validWeight(c.Weight) {
		return Connection{}, false, fmt.Errorf("%w: %v", ErrInvalidWeight, c.Weight)
	}
	if err := s.checkEndpoint(c.Row, RoleRow); err != nil {
		return Connection{}, false, err
	}
	if err := s.checkEndpoint(c.Col, RoleCol); err != nil {
		return Connection{}, false, err
	}
	key := c.Key()
	prev, existed := s.conns[key]
	var old Connection
	if existed {
		old = prev.clone()
	}
	nc := c.clone()
	nc.Interfaces = NormalizeInterfaces(nc.Interfaces)
	s.conns[key] = &nc
	link(s.byRow, key.Row, key.Col)
	link(s.byCol, key.Col, key.Row)

	return old, existed, nil
}

// DeleteConnection removes the connection at key if present and returns it.
func (s *Store) DeleteConnection(key ConnKey) (Connection, bool) {
	c, ok := s.conns[key]
	if !ok {
		return Connection{}, false
	}
	old := c.clone()
	s.dropConnection(key)

	return old, true
}

// TransposeRoles turns every row into a column and vice versa, swapping the
// (row, col) ids of every connection. Applying it twice is the identity.
//
// Complexity: O(V + E).
func (s *Store) TransposeRoles() {
	for _, it := range s.items {
		it.Role = it.Role.Other()
	}
	old := s.conns
	s.conns = make(map[ConnKey]*Connection, len(old))
	s.byRow = make(map[ID]map[ID]struct{})
	s.byCol = make(map[ID]map[ID]struct{})
	for _, c := range old {
		c.Row, c.Col = c.Col, c.Row
		s.index(c)
	}
}

// Rekey moves every connection to fn(key). fn reports false when a key has
// no image; Rekey then fails without touching the store, as it does when two
// connections would land on one key or an image references a missing item.
//
// Complexity: O(E).
func (s *Store) Rekey(fn func(ConnKey) (ConnKey, bool)) error {
	moved := make(map[ConnKey]*Connection, len(s.conns))
	for key, c := range s.conns {
		nk, ok := fn(key)
		if !ok {
			return fmt.Errorf("%w: no image for (%d,%d)", ErrItemNotFound, key.Row, key.Col)
		}
		if _, dup := moved[nk]; dup {
			return fmt.Errorf("%w: (%d,%d)", ErrKeyCollision, nk.Row, nk.Col)
		}
		if err := s.checkEndpoint(nk.Row, RoleRow); err != nil {
			return err
		}
		if err := s.checkEndpoint(nk.Col, RoleCol); err != nil {
			return err
		}
		nc := *c
		nc.Row, nc.Col = nk.Row, nk.Col
		moved[nk] = &nc
	}
	s.conns = make(map[ConnKey]*Connection, len(moved))
	s.byRow = make(map[ID]map[ID]struct{})
	s.byCol = make(map[ID]map[ID]struct{})
	for _, c := range moved {
		s.index(c)
	}

	return nil
}

// index stores c and updates both adjacency indexes.
func (s *Store) index(c *Connection) {
	key := c.Key()
	s.conns[key] = c
	link(s.byRow, key.Row, key.Col)
	link(s.byCol, key.Col, key.Row)
}

// dropConnection removes key from conns and both indexes.
func (s *Store) dropConnection(key ConnKey) {
	delete(s.conns, key)
	unlink(s.byRow, key.Row, key.Col)
	unlink(s.byCol, key.Col, key.Row)
}

// checkEndpoint verifies id exists with the given role.
func (s *Store) checkEndpoint(id ID, role Role) error {
	it, ok := s.items[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	if it.Role != role {
		return fmt.Errorf("%w: item %d is a %s, want %s", ErrRoleMismatch, id, it.Role, role)
	}

	return nil
}

func link(idx map[ID]map[ID]struct{}, a, b ID) {
	set, ok := idx[a]
	if !ok {
		set = make(map[ID]struct{})
		idx[a] = set
	}
	set[b] = struct{}{}
}

func unlink(idx map[ID]map[ID]struct{}, a, b ID) {
	set, ok := idx[a]
	if !ok {
		return
	}
	delete(set, b)
	if len(set) == 0 {
		delete(idx, a)
	}
}
