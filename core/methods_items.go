// File: methods_items.go
// Role: Item primitives: insert, remove and per-field setters.
// Contract:
//   - Setters return the previous value so change records can capture it.
//   - RemoveItem drops incident connections and returns them for restore.

package core

import "fmt"

// InsertItem adds it to the store.
//
// Errors: ErrDuplicateID, ErrRoleMismatch (role unset), ErrDomainNotFound,
// ErrGroupingNotFound.
//
// Complexity: O(|groupings of domain|).
func (s *Store) InsertItem(it Item) error {
	if it.ID == NoID {
		return fmt.Errorf("%w: zero id", ErrDuplicateID)
	}
	if _, ok := s.items[it.ID]; ok {
		return fmt.Errorf("%w: item %d", ErrDuplicateID, it.ID)
	}
	if it.Role != RoleRow && it.Role != RoleCol {
		return fmt.Errorf("%w: item %d has %s", ErrRoleMismatch, it.ID, it.Role)
	}
	if err := s.checkGroup(it.Domain, it.Group); err != nil {
		return err
	}
	cp := it
	s.items[it.ID] = &cp

	return nil
}

// RemoveItem deletes item id together with every incident connection.
// The removed item and connections (sorted by key) are returned.
//
// Complexity: O(deg(id)).
func (s *Store) RemoveItem(id ID) (Item, []Connection, error) {
	it, ok := s.items[id]
	if !ok {
		return Item{}, nil, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	var removed []Connection
	if it.Role == RoleRow {
		removed = s.RowConnections(id)
	} else {
		removed = s.ColConnections(id)
	}
	for _, c := range removed {
		s.dropConnection(c.Key())
	}
	delete(s.items, id)

	return *it, removed, nil
}

// SetName renames item id and returns the old name.
func (s *Store) SetName(id ID, name string) (string, error) {
	it, ok := s.items[id]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	old := it.Name
	it.Name = name

	return old, nil
}

// SetSortIndex sets the sort index of item id and returns the old value.
func (s *Store) SetSortIndex(id ID, v float64) (float64, error) {
	it, ok := s.items[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	old := it.SortIndex
	it.SortIndex = v

	return old, nil
}

// SetGroup assigns grouping g of the item's own domain and returns the old grouping id.
func (s *Store) SetGroup(id, g ID) (ID, error) {
	it, ok := s.items[id]
	if !ok {
		return NoID, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	if err := s.checkGroup(it.Domain, g); err != nil {
		return NoID, err
	}
	old := it.Group
	it.Group = g

	return old, nil
}

// SetAlias links item id to alias and returns the previous alias.
// The partner record is not touched; callers update both sides.
func (s *Store) SetAlias(id, alias ID) (ID, error) {
	it, ok := s.items[id]
	if !ok {
		return NoID, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	old := it.Alias
	it.Alias = alias

	return old, nil
}

// checkGroup verifies that domain exists and lists grouping g.
func (s *Store) checkGroup(domain, g ID) error {
	d, ok := s.domains[domain]
	if !ok {
		return fmt.Errorf("%w: %d", ErrDomainNotFound, domain)
	}
	if _, ok = d.Group(g); !ok {
		return fmt.Errorf("%w: %d in domain %d", ErrGroupingNotFound, g, domain)
	}

	return nil
}
