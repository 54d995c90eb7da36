// SPDX-License-Identifier: MIT
// Package matrix: item mutators shared by every variant.
//
// Aliased variants treat a row and its column alias as one logical item:
// every pair mutation first asserts the pair is intact and equal, then
// records one change per record inside a single action.

package matrix

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/dsm/core"
)

// CreateItem adds one logical item named name and returns its id.
//
// Symmetric and MultiDomain matrices create an aliased row/column pair in the
// default domain and return the row id; role is ignored. Asymmetric matrices
// create one record of the requested role.
func (m *Matrix) CreateItem(role core.Role, name string) (core.ID, error) {
	if !m.ops.aliased && role != core.RoleRow && role != core.RoleCol {
		return core.NoID, fmt.Errorf("%w: %s", core.ErrRoleMismatch, role)
	}
	var id core.ID
	err := m.action("create item", func() (err error) {
		id, err = m.ops.createItem(m, role, m.DomainForRole(role), name)

		return err
	})

	return id, err
}

// CreateDomainItem adds an aliased pair to the domain named domainName,
// creating the domain first when no domain of that name exists. MultiDomain only.
func (m *Matrix) CreateDomainItem(domainName, name string) (core.ID, error) {
	if !m.ops.domains {
		return core.NoID, ErrVariant
	}
	var id core.ID
	err := m.action("create domain item", func() error {
		d, err := m.addDomain(domainName)
		if err != nil {
			return err
		}
		id, err = createPair(m, core.RoleRow, d, name)

		return err
	})

	return id, err
}

// createPair inserts an aliased row/column pair into domain.
func createPair(m *Matrix, _ core.Role, domain core.ID, name string) (core.ID, error) {
	d, ok := m.store.Domain(domain)
	if !ok {
		return core.NoID, fmt.Errorf("%w: %d", core.ErrDomainNotFound, domain)
	}
	row, col := m.session.NextID(), m.session.NextID()
	if err := m.insertPair(row, col, domain, name, m.nextSortIndex(core.RoleRow, domain), d.DefaultGroup); err != nil {
		return core.NoID, err
	}

	return row, nil
}

// insertPair records the insertion of an aliased pair with explicit ids.
func (m *Matrix) insertPair(row, col, domain core.ID, name string, sortIndex float64, group core.ID) error {
	base := core.Item{Name: name, SortIndex: sortIndex, Domain: domain, Group: group}
	r, c := base, base
	r.ID, r.Alias, r.Role = row, col, core.RoleRow
	c.ID, c.Alias, c.Role = col, row, core.RoleCol
	if err := m.record(&itemInsert{item: r}); err != nil {
		return err
	}

	return m.record(&itemInsert{item: c})
}

// createSingle inserts one unaliased record of role.
func createSingle(m *Matrix, role core.Role, domain core.ID, name string) (core.ID, error) {
	d, ok := m.store.Domain(domain)
	if !ok {
		return core.NoID, fmt.Errorf("%w: %d", core.ErrDomainNotFound, domain)
	}
	it := core.Item{
		ID:        m.session.NextID(),
		Role:      role,
		Name:      name,
		SortIndex: m.nextSortIndex(role, domain),
		Domain:    domain,
		Group:     d.DefaultGroup,
	}
	if err := m.record(&itemInsert{item: it}); err != nil {
		return core.NoID, err
	}

	return it.ID, nil
}

// nextSortIndex returns one past the largest sort index of role in domain.
func (m *Matrix) nextSortIndex(role core.Role, domain core.ID) float64 {
	top := 0.0
	for _, it := range m.store.ItemsIn(domain, role) {
		if it.SortIndex > top {
			top = it.SortIndex
		}
	}

	return top + 1
}

// DeleteItem removes item id (and its alias) with every incident connection.
func (m *Matrix) DeleteItem(id core.ID) error {
	return m.action("delete item", func() error { return m.deleteItem(id) })
}

// deleteItem records removal of id and, for aliased variants, its partner.
func (m *Matrix) deleteItem(id core.ID) error {
	ids, err := m.pair(id)
	if err != nil {
		return err
	}
	for _, x := range ids {
		if err = m.record(&itemRemove{id: x}); err != nil {
			return err
		}
	}

	return nil
}

// RenameItem sets the name of item id (and its alias).
func (m *Matrix) RenameItem(id core.ID, name string) error {
	return m.action("rename item", func() error { return m.renameItem(id, name) })
}

func (m *Matrix) renameItem(id core.ID, name string) error {
	ids, err := m.pair(id)
	if err != nil {
		return err
	}
	if it, _ := m.store.Item(id); it.Name == name {
		return nil
	}
	for _, x := range ids {
		if err = m.record(&itemRename{id: x, name: name}); err != nil {
			return err
		}
	}

	return nil
}

// SetItemSortIndex sets the sort index of item id (and its alias).
// Any finite value is legal.
func (m *Matrix) SetItemSortIndex(id core.ID, v float64) error {
	return m.action("re-sort item", func() error { return m.setSortIndex(id, v) })
}

func (m *Matrix) setSortIndex(id core.ID, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSortIndex, v)
	}
	ids, err := m.pair(id)
	if err != nil {
		return err
	}
	if it, _ := m.store.Item(id); it.SortIndex == v {
		return nil
	}
	for _, x := range ids {
		if err = m.record(&itemResort{id: x, v: v}); err != nil {
			return err
		}
	}

	return nil
}

// SetItemGrouping assigns grouping g, drawn from the item's own domain, to
// item id (and its alias).
func (m *Matrix) SetItemGrouping(id, g core.ID) error {
	return m.action("set item grouping", func() error { return m.setGroup(id, g) })
}

func (m *Matrix) setGroup(id, g core.ID) error {
	ids, err := m.pair(id)
	if err != nil {
		return err
	}
	if it, _ := m.store.Item(id); it.Group == g {
		return nil
	}
	for _, x := range ids {
		if err = m.record(&itemRegroup{id: x, group: g}); err != nil {
			return err
		}
	}

	return nil
}

// pair returns the records that make up the logical item id: [id] for
// unaliased variants, [id, alias] otherwise. For aliased variants the pair is
// checked for integrity first; a broken pair is logged and reported as
// ErrAliasMismatch so the caller declines the mutation.
func (m *Matrix) pair(id core.ID) ([]core.ID, error) {
	it, ok := m.store.Item(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", core.ErrItemNotFound, id)
	}
	if !m.ops.aliased {
		return []core.ID{id}, nil
	}
	partner, ok := m.store.Item(it.Alias)
	var reason string
	switch {
	case !ok:
		reason = "missing alias"
	case partner.Alias != id:
		reason = "one-sided alias"
	case partner.Role == it.Role:
		reason = "alias has same role"
	case partner.Name != it.Name:
		reason = "name differs"
	case partner.SortIndex != it.SortIndex:
		reason = "sort index differs"
	case partner.Group != it.Group:
		reason = "grouping differs"
	case partner.Domain != it.Domain:
		reason = "domain differs"
	default:
		return []core.ID{id, it.Alias}, nil
	}
	m.logger.Error("alias pair corrupted",
		slog.Int64("item", int64(id)),
		slog.Int64("alias", int64(it.Alias)),
		slog.String("reason", reason),
	)

	return nil, fmt.Errorf("%w: item %d: %s", ErrAliasMismatch, id, reason)
}
