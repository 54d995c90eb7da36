// SPDX-License-Identifier: MIT
// Package matrix: zoom breakouts of multi-domain matrices.
//
// ExportZoom cuts a sub-matrix out of one domain (symmetric breakout) or a
// domain pair (asymmetric breakout: rows of the first domain against columns
// of the second). The breakout shares the parent's Session and keeps the
// parent's ids, so ImportZoom can reconcile it back by id:
//
//   - items present in both are updated in place (name, sort index, grouping);
//   - items only in the parent scope are deleted;
//   - items only in the breakout are inserted as fresh pairs;
//   - connections inside the scope become the breakout's: missing ones are
//     deleted, new or changed ones are written;
//   - the domain palettes (and domain name/colors) are taken from the breakout.
//
// An unchanged breakout imports as a no-op on the parent document.

package matrix

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/dsm/core"
)

// ExportZoom returns a breakout of domain from (rows) against domain to
// (columns). from == to yields a Symmetric matrix, otherwise an Asymmetric
// one whose items carry no aliases. MultiDomain only.
func (m *Matrix) ExportZoom(from, to core.ID) (*Matrix, error) {
	if !m.ops.domains {
		return nil, ErrVariant
	}
	fd, ok := m.store.Domain(from)
	if !ok {
		return nil, fmt.Errorf("%w: %d", core.ErrDomainNotFound, from)
	}
	td, ok := m.store.Domain(to)
	if !ok {
		return nil, fmt.Errorf("%w: %d", core.ErrDomainNotFound, to)
	}

	doc := Document{Info: Info{Metadata: m.meta}}
	if from == to {
		doc.Info.Variant, doc.Info.Symmetric = Symmetric, true
		doc.Domains = []DomainRecord{domainRecord(fd, 0)}
	} else {
		doc.Info.Variant = Asymmetric
		doc.Domains = []DomainRecord{domainRecord(fd, core.RoleRow), domainRecord(td, core.RoleCol)}
	}
	aliased := from == to
	for _, it := range m.store.ItemsIn(from, core.RoleRow) {
		doc.Items = append(doc.Items, zoomRecord(it, aliased))
	}
	for _, it := range m.store.ItemsIn(to, core.RoleCol) {
		doc.Items = append(doc.Items, zoomRecord(it, aliased))
	}
	sortRecords(doc.Items)
	for _, rec := range doc.Items {
		if rec.Role != core.RoleRow {
			continue
		}
		for _, c := range m.store.RowConnections(rec.ID) {
			if col, _ := m.store.Item(c.Col); col.Domain == to {
				doc.Connections = append(doc.Connections, ConnectionRecord{
					Row: c.Row, Col: c.Col, Name: c.Name, Weight: c.Weight, Interfaces: c.Interfaces,
				})
			}
		}
	}

	sub, err := Load(m.session, doc, WithLogger(m.base))
	if err != nil {
		return nil, err
	}
	m.logger.Info("zoom exported",
		slog.Int64("from", int64(from)),
		slog.Int64("to", int64(to)),
		slog.Int("items", len(doc.Items)),
	)

	return sub, nil
}

// zoomRecord converts an item for a breakout, dropping the alias when the
// breakout is asymmetric.
func zoomRecord(it core.Item, aliased bool) ItemRecord {
	rec := ItemRecord{
		ID: it.ID, Alias: it.Alias, Role: it.Role, Name: it.Name,
		SortIndex: it.SortIndex, Domain: it.Domain, Group: it.Group,
	}
	if !aliased {
		rec.Alias = core.NoID
	}

	return rec
}

// zoomSide is one reconciled role set: parent items of role in domain
// against the breakout's items of the same role.
type zoomSide struct {
	role    core.Role
	domain  core.ID
	palette core.Domain
	items   []core.Item
}

// ImportZoom merges a breakout produced by ExportZoom(from, to) back into
// the matrix as one atomic action. A Symmetric breakout requires from == to,
// an Asymmetric one requires distinct domains. MultiDomain only.
func (m *Matrix) ImportZoom(from, to core.ID, sub *Matrix) error {
	if !m.ops.domains {
		return ErrVariant
	}
	if sub == nil {
		return ErrNilMatrix
	}
	switch sub.variant {
	case Symmetric:
		if from != to {
			return fmt.Errorf("%w: symmetric breakout needs one domain", ErrDomainMismatch)
		}
	case Asymmetric:
		if from == to {
			return fmt.Errorf("%w: asymmetric breakout needs two domains", ErrDomainMismatch)
		}
	default:
		return fmt.Errorf("%w: cannot import %s breakout", ErrVariant, sub.variant)
	}
	for _, d := range []core.ID{from, to} {
		if _, ok := m.store.Domain(d); !ok {
			return fmt.Errorf("%w: %d", core.ErrDomainNotFound, d)
		}
	}

	var sides []zoomSide
	if sub.variant == Symmetric {
		pd, _ := sub.store.Domain(sub.DomainForRole(core.RoleRow))
		sides = []zoomSide{{role: core.RoleRow, domain: from, palette: pd, items: sub.Rows()}}
	} else {
		rd, _ := sub.store.Domain(sub.DomainForRole(core.RoleRow))
		cd, _ := sub.store.Domain(sub.DomainForRole(core.RoleCol))
		sides = []zoomSide{
			{role: core.RoleRow, domain: from, palette: rd, items: sub.Rows()},
			{role: core.RoleCol, domain: to, palette: cd, items: sub.Cols()},
		}
	}

	err := m.action("import zoom", func() error { return m.importZoom(from, to, sub, sides) })
	if err == nil {
		m.logger.Info("zoom imported", slog.Int64("from", int64(from)), slog.Int64("to", int64(to)))
	}

	return err
}

// importZoom records the reconciliation steps. Only differences are
// recorded, so an unchanged breakout leaves the history untouched.
func (m *Matrix) importZoom(from, to core.ID, sub *Matrix, sides []zoomSide) error {
	// 1) widen palettes so both old and breakout groupings are valid meanwhile
	for _, s := range sides {
		if err := m.widenPalette(s.domain, s.palette); err != nil {
			return err
		}
	}
	// 2) reconcile items; ids maps breakout ids to parent ids
	ids := make(map[core.ID]core.ID)
	for _, s := range sides {
		if err := m.reconcileSide(s, sub.variant == Symmetric, ids); err != nil {
			return err
		}
	}
	// 3) translate breakout connections into parent keys
	want := make(map[core.ConnKey]core.Connection)
	for _, c := range sub.store.Connections() {
		row, okR := ids[c.Row]
		col, okC := ids[c.Col]
		if !okR || !okC {
			return fmt.Errorf("%w: breakout connection (%d,%d)", core.ErrItemNotFound, c.Row, c.Col)
		}
		c.Row, c.Col = row, col
		want[c.Key()] = c
	}
	// 4) drop in-scope connections the breakout no longer has
	for _, c := range m.store.Connections() {
		r, _ := m.store.Item(c.Row)
		col, _ := m.store.Item(c.Col)
		if r.Domain != from || col.Domain != to {
			continue
		}
		if _, ok := want[c.Key()]; !ok {
			if err := m.deleteConnection(c.Key()); err != nil {
				return err
			}
		}
	}
	// 5) put new or changed connections
	for _, c := range sub.store.Connections() {
		c.Row, c.Col = ids[c.Row], ids[c.Col]
		if cur, ok := m.store.Connection(c.Key()); ok && cur.Equal(c) {
			continue
		}
		if err := m.putConnection(c); err != nil {
			return err
		}
	}
	// 6) settle palettes and domain info on the breakout's values
	for _, s := range sides {
		if err := m.setPalette(s.domain, s.palette.Groupings, s.palette.DefaultGroup); err != nil {
			return err
		}
		if err := m.setDomainInfo(s.domain, s.palette.Grouping); err != nil {
			return err
		}
	}

	return nil
}

// reconcileSide deletes, updates and inserts the items of one side.
func (m *Matrix) reconcileSide(s zoomSide, aliased bool, ids map[core.ID]core.ID) error {
	present := make(map[core.ID]struct{}, len(s.items))
	for _, it := range s.items {
		present[it.ID] = struct{}{}
	}
	for _, p := range m.store.ItemsIn(s.domain, s.role) {
		if _, ok := present[p.ID]; !ok {
			if err := m.deleteItem(p.ID); err != nil {
				return err
			}
		}
	}
	for _, it := range s.items {
		p, ok := m.store.Item(it.ID)
		if ok && p.Role == s.role && p.Domain == s.domain {
			if err := m.updateFromBreakout(p.ID, it); err != nil {
				return err
			}
			ids[it.ID] = p.ID
			if aliased {
				ids[it.Alias] = p.Alias
			}

			continue
		}
		id := m.freeID(it.ID)
		partner := m.session.NextID()
		if aliased {
			partner = m.freeID(it.Alias)
		}
		row, col := id, partner
		if s.role == core.RoleCol {
			row, col = partner, id
		}
		if err := m.insertPair(row, col, s.domain, it.Name, it.SortIndex, it.Group); err != nil {
			return err
		}
		ids[it.ID] = id
		if aliased {
			ids[it.Alias] = partner
		}
	}

	return nil
}

// updateFromBreakout copies name, sort index and grouping onto parent item id.
func (m *Matrix) updateFromBreakout(id core.ID, it core.Item) error {
	if err := m.renameItem(id, it.Name); err != nil {
		return err
	}
	if err := m.setSortIndex(id, it.SortIndex); err != nil {
		return err
	}

	return m.setGroup(id, it.Group)
}

// freeID returns want when it is unused in the matrix, otherwise a fresh id.
// An adopted id is observed by the session, since a breakout reloaded under
// another session may carry ids above the parent's counter.
func (m *Matrix) freeID(want core.ID) core.ID {
	if want != core.NoID && !m.store.HasID(want) {
		m.session.Observe(want)

		return want
	}

	return m.session.NextID()
}

// widenPalette installs the breakout palette followed by every parent
// grouping the breakout does not list.
func (m *Matrix) widenPalette(domain core.ID, sub core.Domain) error {
	cur, _ := m.store.Domain(domain)
	list := append([]core.Grouping(nil), sub.Groupings...)
	for _, g := range sub.Groupings {
		m.session.Observe(g.ID)
	}
	for _, g := range cur.Groupings {
		if _, ok := sub.Group(g.ID); !ok {
			list = append(list, g)
		}
	}

	return m.setPalette(domain, list, sub.DefaultGroup)
}

// setPalette records a palette replacement unless nothing changes.
func (m *Matrix) setPalette(domain core.ID, list []core.Grouping, def core.ID) error {
	cur, _ := m.store.Domain(domain)
	if cur.DefaultGroup == def && samePalette(cur.Groupings, list) {
		return nil
	}

	return m.record(&paletteReplace{domain: domain, list: list, def: def})
}

// setDomainInfo records a domain name/color change unless nothing changes.
func (m *Matrix) setDomainInfo(domain core.ID, info core.Grouping) error {
	cur, _ := m.store.Domain(domain)
	info.ID = domain
	if cur.Grouping == info {
		return nil
	}

	return m.record(&domainInfo{id: domain, info: info})
}

func samePalette(a, b []core.Grouping) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// domainRecord converts a domain for a Document.
func domainRecord(d core.Domain, role core.Role) DomainRecord {
	rec := DomainRecord{
		ID:           d.ID,
		Name:         d.Name,
		Role:         role,
		Color:        d.Color,
		FontColor:    d.FontColor,
		DefaultGroup: d.DefaultGroup,
		Groupings:    make([]GroupingRecord, 0, len(d.Groupings)),
	}
	for _, g := range d.Groupings {
		rec.Groupings = append(rec.Groupings, GroupingRecord{ID: g.ID, Name: g.Name, Color: g.Color, FontColor: g.FontColor})
	}

	return rec
}
