// File: methods_domains.go
// Role: Domain and grouping primitives.
// Contract:
//   - A domain always lists its DefaultGroup.
//   - A grouping referenced by an item cannot be removed or dropped by a
//     palette replacement.

package core

import "fmt"

// AddDomain inserts d. d.DefaultGroup must be listed in d.Groupings and
// grouping ids must be unique within d.
func (s *Store) AddDomain(d Domain) error {
	if d.ID == NoID {
		return fmt.Errorf("%w: zero domain id", ErrDuplicateID)
	}
	if _, ok := s.domains[d.ID]; ok {
		return fmt.Errorf("%w: domain %d", ErrDuplicateID, d.ID)
	}
	if err := checkPalette(d.Groupings, d.DefaultGroup); err != nil {
		return err
	}
	cp := d.clone()
	s.domains[d.ID] = &cp

	return nil
}

// RemoveDomain deletes an empty domain and returns it.
//
// Errors: ErrDomainNotFound, ErrDomainInUse.
func (s *Store) RemoveDomain(id ID) (Domain, error) {
	d, ok := s.domains[id]
	if !ok {
		return Domain{}, fmt.Errorf("%w: %d", ErrDomainNotFound, id)
	}
	for _, it := range s.items {
		if it.Domain == id {
			return Domain{}, fmt.Errorf("%w: %d", ErrDomainInUse, id)
		}
	}
	delete(s.domains, id)

	return *d, nil
}

// SetDomainInfo replaces the domain's own name and colors (its embedded
// Grouping, id excluded) and returns the previous values.
func (s *Store) SetDomainInfo(id ID, info Grouping) (Grouping, error) {
	d, ok := s.domains[id]
	if !ok {
		return Grouping{}, fmt.Errorf("%w: %d", ErrDomainNotFound, id)
	}
	old := d.Grouping
	info.ID = id
	d.Grouping = info

	return old, nil
}

// AddGrouping inserts g into the domain's list at index (append when index
// is out of range).
func (s *Store) AddGrouping(domain ID, g Grouping, index int) error {
	d, ok := s.domains[domain]
	if !ok {
		return fmt.Errorf("%w: %d", ErrDomainNotFound, domain)
	}
	if g.ID == NoID {
		return fmt.Errorf("%w: zero grouping id", ErrDuplicateID)
	}
	if _, dup := d.Group(g.ID); dup {
		return fmt.Errorf("%w: grouping %d", ErrDuplicateID, g.ID)
	}
	if index < 0 || index >= len(d.Groupings) {
		d.Groupings = append(d.Groupings, g)

		return nil
	}
	d.Groupings = append(d.Groupings, Grouping{})
	copy(d.Groupings[index+1:], d.Groupings[index:])
	d.Groupings[index] = g

	return nil
}

// RemoveGrouping deletes grouping g from the domain and returns it with its
// former index.
//
// Errors: ErrDomainNotFound, ErrGroupingNotFound, ErrDefaultGrouping,
// ErrGroupingInUse.
func (s *Store) RemoveGrouping(domain, g ID) (Grouping, int, error) {
	d, ok := s.domains[domain]
	if !ok {
		return Grouping{}, -1, fmt.Errorf("%w: %d", ErrDomainNotFound, domain)
	}
	if g == d.DefaultGroup {
		return Grouping{}, -1, ErrDefaultGrouping
	}
	idx := -1
	for i := range d.Groupings {
		if d.Groupings[i].ID == g {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Grouping{}, -1, fmt.Errorf("%w: %d in domain %d", ErrGroupingNotFound, g, domain)
	}
	for _, it := range s.items {
		if it.Domain == domain && it.Group == g {
			return Grouping{}, -1, fmt.Errorf("%w: %d", ErrGroupingInUse, g)
		}
	}
	old := d.Groupings[idx]
	d.Groupings = append(d.Groupings[:idx], d.Groupings[idx+1:]...)

	return old, idx, nil
}

// UpdateGrouping overwrites the grouping with g.ID and returns the old value.
func (s *Store) UpdateGrouping(domain ID, g Grouping) (Grouping, error) {
	d, ok := s.domains[domain]
	if !ok {
		return Grouping{}, fmt.Errorf("%w: %d", ErrDomainNotFound, domain)
	}
	for i := range d.Groupings {
		if d.Groupings[i].ID == g.ID {
			old := d.Groupings[i]
			d.Groupings[i] = g

			return old, nil
		}
	}

	return Grouping{}, fmt.Errorf("%w: %d in domain %d", ErrGroupingNotFound, g.ID, domain)
}

// ReplacePalette swaps the domain's grouping list and default grouping.
// Every item of the domain must reference a grouping of the new list.
// The previous list and default are returned.
func (s *Store) ReplacePalette(domain ID, groupings []Grouping, def ID) ([]Grouping, ID, error) {
	d, ok := s.domains[domain]
	if !ok {
		return nil, NoID, fmt.Errorf("%w: %d", ErrDomainNotFound, domain)
	}
	if err := checkPalette(groupings, def); err != nil {
		return nil, NoID, err
	}
	next := Domain{Groupings: groupings}
	for _, it := range s.items {
		if it.Domain != domain {
			continue
		}
		if _, ok = next.Group(it.Group); !ok {
			return nil, NoID, fmt.Errorf("%w: %d", ErrGroupingInUse, it.Group)
		}
	}
	oldList, oldDef := d.Groupings, d.DefaultGroup
	d.Groupings = append([]Grouping(nil), groupings...)
	d.DefaultGroup = def

	return oldList, oldDef, nil
}

// checkPalette verifies unique, non-zero grouping ids and that def is listed.
func checkPalette(groupings []Grouping, def ID) error {
	seen := make(map[ID]struct{}, len(groupings))
	found := false
	for _, g := range groupings {
		if g.ID == NoID {
			return fmt.Errorf("%w: zero grouping id", ErrDuplicateID)
		}
		if _, dup := seen[g.ID]; dup {
			return fmt.Errorf("%w: grouping %d", ErrDuplicateID, g.ID)
		}
		seen[g.ID] = struct{}{}
		if g.ID == def {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: default %d not listed", ErrGroupingNotFound, def)
	}

	return nil
}
