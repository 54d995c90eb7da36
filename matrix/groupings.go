// SPDX-License-Identifier: MIT
// Package matrix: grouping palettes, domains and metadata.
//
// Every domain owns its grouping palette. Symmetric matrices have one
// domain, asymmetric matrices one per role (see DomainForRole), multi-domain
// matrices any number of them.

package matrix

import (
	"fmt"

	"github.com/katalvlaran/dsm/core"
)

// AddGrouping appends a new grouping to domain's palette and returns its id.
func (m *Matrix) AddGrouping(domain core.ID, name string, color, font core.Color) (core.ID, error) {
	var id core.ID
	err := m.action("add grouping", func() error {
		if _, ok := m.store.Domain(domain); !ok {
			return fmt.Errorf("%w: %d", core.ErrDomainNotFound, domain)
		}
		g := core.Grouping{ID: m.session.NextID(), Name: name, Color: color, FontColor: font}
		if err := m.record(&groupingAdd{domain: domain, g: g}); err != nil {
			return err
		}
		id = g.ID

		return nil
	})

	return id, err
}

// RemoveGrouping deletes grouping g from domain. Items holding g fall back
// to the domain's default grouping within the same action.
//
// Errors: core.ErrDefaultGrouping for the default grouping (nothing changes),
// core.ErrGroupingNotFound, core.ErrDomainNotFound.
func (m *Matrix) RemoveGrouping(domain, g core.ID) error {
	return m.action("remove grouping", func() error { return m.removeGrouping(domain, g) })
}

func (m *Matrix) removeGrouping(domain, g core.ID) error {
	d, ok := m.store.Domain(domain)
	if !ok {
		return fmt.Errorf("%w: %d", core.ErrDomainNotFound, domain)
	}
	if g == d.DefaultGroup {
		return fmt.Errorf("%w: %d", core.ErrDefaultGrouping, g)
	}
	if _, ok = d.Group(g); !ok {
		return fmt.Errorf("%w: %d in domain %d", core.ErrGroupingNotFound, g, domain)
	}
	for _, it := range m.store.ItemsIn(domain, core.RoleRow) {
		if it.Group == g {
			if err := m.setGroup(it.ID, d.DefaultGroup); err != nil {
				return err
			}
		}
	}
	// unaliased columns are not reached through their rows
	if !m.ops.aliased {
		for _, it := range m.store.ItemsIn(domain, core.RoleCol) {
			if it.Group == g {
				if err := m.setGroup(it.ID, d.DefaultGroup); err != nil {
					return err
				}
			}
		}
	}

	return m.record(&groupingRemove{domain: domain, id: g})
}

// RenameGrouping sets the name of grouping g.
func (m *Matrix) RenameGrouping(domain, g core.ID, name string) error {
	return m.updateGrouping("rename grouping", domain, g, func(gr *core.Grouping) { gr.Name = name })
}

// SetGroupingColor sets the background color of grouping g.
func (m *Matrix) SetGroupingColor(domain, g core.ID, c core.Color) error {
	return m.updateGrouping("set grouping color", domain, g, func(gr *core.Grouping) { gr.Color = c })
}

// SetGroupingFontColor sets the font color of grouping g.
func (m *Matrix) SetGroupingFontColor(domain, g core.ID, c core.Color) error {
	return m.updateGrouping("set grouping font color", domain, g, func(gr *core.Grouping) { gr.FontColor = c })
}

// updateGrouping records one grouping edit unless it changes nothing.
func (m *Matrix) updateGrouping(name string, domain, g core.ID, edit func(*core.Grouping)) error {
	return m.action(name, func() error {
		d, ok := m.store.Domain(domain)
		if !ok {
			return fmt.Errorf("%w: %d", core.ErrDomainNotFound, domain)
		}
		cur, ok := d.Group(g)
		if !ok {
			return fmt.Errorf("%w: %d in domain %d", core.ErrGroupingNotFound, g, domain)
		}
		next := cur
		edit(&next)
		if next == cur {
			return nil
		}

		return m.record(&groupingUpdate{domain: domain, g: next})
	})
}

// ClearGroupings removes every non-default grouping of domain; all of its
// items end up in the default grouping.
func (m *Matrix) ClearGroupings(domain core.ID) error {
	return m.action("clear groupings", func() error {
		d, ok := m.store.Domain(domain)
		if !ok {
			return fmt.Errorf("%w: %d", core.ErrDomainNotFound, domain)
		}
		for _, g := range d.Groupings {
			if g.ID == d.DefaultGroup {
				continue
			}
			if err := m.removeGrouping(domain, g.ID); err != nil {
				return err
			}
		}

		return nil
	})
}

// AddDomain returns the id of the domain named name, creating it (with a
// default grouping) when absent. MultiDomain only.
func (m *Matrix) AddDomain(name string) (core.ID, error) {
	if !m.ops.domains {
		return core.NoID, ErrVariant
	}
	var id core.ID
	err := m.action("add domain", func() (err error) {
		id, err = m.addDomain(name)

		return err
	})

	return id, err
}

// addDomain records a domain creation unless one named name exists.
func (m *Matrix) addDomain(name string) (core.ID, error) {
	if d, ok := m.store.DomainByName(name); ok {
		return d.ID, nil
	}
	d := m.newDomain(name)
	if err := m.record(&domainAdd{domain: d}); err != nil {
		return core.NoID, err
	}
	m.logger.Debug("domain created", "domain", name)

	return d.ID, nil
}

// RemoveDomain deletes domain id and every item assigned to it in one
// action. MultiDomain only.
//
// Errors: ErrLastDomain when id is the only domain (nothing changes),
// core.ErrDomainNotFound.
func (m *Matrix) RemoveDomain(id core.ID) error {
	if !m.ops.domains {
		return ErrVariant
	}

	return m.action("remove domain", func() error {
		if _, ok := m.store.Domain(id); !ok {
			return fmt.Errorf("%w: %d", core.ErrDomainNotFound, id)
		}
		if m.store.DomainCount() <= 1 {
			return ErrLastDomain
		}
		for _, it := range m.store.ItemsIn(id, core.RoleRow) {
			if err := m.deleteItem(it.ID); err != nil {
				return err
			}
		}

		return m.record(&domainRemove{id: id})
	})
}

// RenameDomain sets the display name of domain id.
func (m *Matrix) RenameDomain(id core.ID, name string) error {
	return m.action("rename domain", func() error {
		d, ok := m.store.Domain(id)
		if !ok {
			return fmt.Errorf("%w: %d", core.ErrDomainNotFound, id)
		}
		if d.Name == name {
			return nil
		}
		info := d.Grouping
		info.Name = name

		return m.record(&domainInfo{id: id, info: info})
	})
}

// SetMetadata replaces the document metadata as one undoable action.
func (m *Matrix) SetMetadata(meta Metadata) error {
	return m.action("set metadata", func() error {
		if meta == m.meta {
			return nil
		}

		return m.record(&metadataEdit{meta: meta})
	})
}
