// SPDX-License-Identifier: MIT
// Package matrix: change records.
//
// Each record is a memento: Apply performs one store primitive and captures
// the state it replaced; Revert restores exactly that state. Records are
// pointers so the captured state survives between Apply and Revert.

package matrix

import (
	"github.com/katalvlaran/dsm/core"
)

// itemInsert adds one item record.
type itemInsert struct{ item core.Item }

func (c *itemInsert) Apply(m *Matrix) error { return m.store.InsertItem(c.item) }

func (c *itemInsert) Revert(m *Matrix) error {
	_, _, err := m.store.RemoveItem(c.item.ID)

	return err
}

// itemRemove deletes one item record and its incident connections.
type itemRemove struct {
	id    core.ID
	item  core.Item
	conns []core.Connection
}

func (c *itemRemove) Apply(m *Matrix) error {
	it, conns, err := m.store.RemoveItem(c.id)
	if err != nil {
		return err
	}
	c.item, c.conns = it, conns

	return nil
}

func (c *itemRemove) Revert(m *Matrix) error {
	if err := m.store.InsertItem(c.item); err != nil {
		return err
	}
	for _, conn := range c.conns {
		if _, _, err := m.store.PutConnection(conn); err != nil {
			return err
		}
	}

	return nil
}

// itemRename sets the name of one item record.
type itemRename struct {
	id        core.ID
	name, old string
}

func (c *itemRename) Apply(m *Matrix) (err error) {
	c.old, err = m.store.SetName(c.id, c.name)

	return err
}

func (c *itemRename) Revert(m *Matrix) error {
	_, err := m.store.SetName(c.id, c.old)

	return err
}

// itemResort sets the sort index of one item record.
type itemResort struct {
	id     core.ID
	v, old float64
}

func (c *itemResort) Apply(m *Matrix) (err error) {
	c.old, err = m.store.SetSortIndex(c.id, c.v)

	return err
}

func (c *itemResort) Revert(m *Matrix) error {
	_, err := m.store.SetSortIndex(c.id, c.old)

	return err
}

// itemRegroup sets the grouping of one item record.
type itemRegroup struct {
	id, group, old core.ID
}

func (c *itemRegroup) Apply(m *Matrix) (err error) {
	c.old, err = m.store.SetGroup(c.id, c.group)

	return err
}

func (c *itemRegroup) Revert(m *Matrix) error {
	_, err := m.store.SetGroup(c.id, c.old)

	return err
}

// connectionPut creates or overwrites one connection.
type connectionPut struct {
	conn    core.Connection
	prev    core.Connection
	existed bool
}

func (c *connectionPut) Apply(m *Matrix) (err error) {
	c.prev, c.existed, err = m.store.PutConnection(c.conn)

	return err
}

func (c *connectionPut) Revert(m *Matrix) error {
	if !c.existed {
		m.store.DeleteConnection(c.conn.Key())

		return nil
	}
	_, _, err := m.store.PutConnection(c.prev)

	return err
}

// connectionDelete removes one existing connection.
type connectionDelete struct {
	key  core.ConnKey
	prev core.Connection
}

func (c *connectionDelete) Apply(m *Matrix) error {
	prev, ok := m.store.DeleteConnection(c.key)
	if !ok {
		return core.ErrItemNotFound
	}
	c.prev = prev

	return nil
}

func (c *connectionDelete) Revert(m *Matrix) error {
	_, _, err := m.store.PutConnection(c.prev)

	return err
}

// rolesTranspose swaps every row with every column (asymmetric). It is its
// own inverse.
type rolesTranspose struct{}

func (rolesTranspose) Apply(m *Matrix) error {
	m.store.TransposeRoles()
	m.roleDomain[core.RoleRow], m.roleDomain[core.RoleCol] = m.roleDomain[core.RoleCol], m.roleDomain[core.RoleRow]

	return nil
}

func (c rolesTranspose) Revert(m *Matrix) error { return c.Apply(m) }

// connectionsMirror moves every connection (r, c) to (alias(c), alias(r)).
// The mapping is an involution, so Revert re-applies it.
type connectionsMirror struct{}

func (connectionsMirror) Apply(m *Matrix) error {
	return m.store.Rekey(func(k core.ConnKey) (core.ConnKey, bool) {
		return m.mirrorKey(k.Row, k.Col)
	})
}

func (c connectionsMirror) Revert(m *Matrix) error { return c.Apply(m) }

// domainAdd inserts a domain with its palette.
type domainAdd struct{ domain core.Domain }

func (c *domainAdd) Apply(m *Matrix) error { return m.store.AddDomain(c.domain) }

func (c *domainAdd) Revert(m *Matrix) error {
	_, err := m.store.RemoveDomain(c.domain.ID)

	return err
}

// domainRemove deletes an empty domain.
type domainRemove struct {
	id     core.ID
	domain core.Domain
}

func (c *domainRemove) Apply(m *Matrix) (err error) {
	c.domain, err = m.store.RemoveDomain(c.id)

	return err
}

func (c *domainRemove) Revert(m *Matrix) error { return m.store.AddDomain(c.domain) }

// domainInfo replaces a domain's own name and colors.
type domainInfo struct {
	id        core.ID
	info, old core.Grouping
}

func (c *domainInfo) Apply(m *Matrix) (err error) {
	c.old, err = m.store.SetDomainInfo(c.id, c.info)

	return err
}

func (c *domainInfo) Revert(m *Matrix) error {
	_, err := m.store.SetDomainInfo(c.id, c.old)

	return err
}

// groupingAdd appends a grouping to a domain palette.
type groupingAdd struct {
	domain core.ID
	g      core.Grouping
}

func (c *groupingAdd) Apply(m *Matrix) error { return m.store.AddGrouping(c.domain, c.g, -1) }

func (c *groupingAdd) Revert(m *Matrix) error {
	_, _, err := m.store.RemoveGrouping(c.domain, c.g.ID)

	return err
}

// groupingRemove deletes an unreferenced grouping, remembering its position.
type groupingRemove struct {
	domain, id core.ID
	g          core.Grouping
	index      int
}

func (c *groupingRemove) Apply(m *Matrix) (err error) {
	c.g, c.index, err = m.store.RemoveGrouping(c.domain, c.id)

	return err
}

func (c *groupingRemove) Revert(m *Matrix) error {
	return m.store.AddGrouping(c.domain, c.g, c.index)
}

// groupingUpdate overwrites a grouping's name and colors.
type groupingUpdate struct {
	domain core.ID
	g, old core.Grouping
}

func (c *groupingUpdate) Apply(m *Matrix) (err error) {
	c.old, err = m.store.UpdateGrouping(c.domain, c.g)

	return err
}

func (c *groupingUpdate) Revert(m *Matrix) error {
	_, err := m.store.UpdateGrouping(c.domain, c.old)

	return err
}

// paletteReplace swaps a domain's whole grouping list and default.
type paletteReplace struct {
	domain      core.ID
	list, old   []core.Grouping
	def, oldDef core.ID
}

func (c *paletteReplace) Apply(m *Matrix) (err error) {
	c.old, c.oldDef, err = m.store.ReplacePalette(c.domain, c.list, c.def)

	return err
}

func (c *paletteReplace) Revert(m *Matrix) error {
	_, _, err := m.store.ReplacePalette(c.domain, c.old, c.oldDef)

	return err
}

// metadataEdit replaces the document metadata.
type metadataEdit struct{ meta, old Metadata }

func (c *metadataEdit) Apply(m *Matrix) error {
	c.old, m.meta = m.meta, c.meta

	return nil
}

func (c *metadataEdit) Revert(m *Matrix) error {
	m.meta = c.old

	return nil
}
