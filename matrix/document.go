// SPDX-License-Identifier: MIT
// Package matrix: the load/save record graph.
//
// Document is the plain-data shape serialization collaborators read and
// write. Load validates a Document completely before building a Matrix and
// never returns a partial one; Matrix.Document returns a deterministic deep
// copy so Load(Document()) round-trips losslessly.

package matrix

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/dsm/core"
)

// Document is the complete record graph of one matrix.
type Document struct {
	Info        Info               `yaml:"info" json:"info"`
	Domains     []DomainRecord     `yaml:"domains" json:"domains" validate:"required,min=1,dive"`
	Items       []ItemRecord       `yaml:"items" json:"items" validate:"dive"`
	Connections []ConnectionRecord `yaml:"connections" json:"connections" validate:"dive"`
}

// Info is the document header.
type Info struct {
	Metadata  `yaml:",inline"`
	Variant   Variant `yaml:"variant" json:"variant" validate:"required"`
	Symmetric bool    `yaml:"symmetric" json:"symmetric"`
}

// DomainRecord is one domain with its palette. Role is set only in
// asymmetric documents and names the role set the domain serves.
type DomainRecord struct {
	ID           core.ID          `yaml:"id" json:"id" validate:"required"`
	Name         string           `yaml:"name" json:"name"`
	Role         core.Role        `yaml:"role,omitempty" json:"role,omitempty"`
	Color        core.Color       `yaml:"color" json:"color"`
	FontColor    core.Color       `yaml:"font_color" json:"font_color"`
	DefaultGroup core.ID          `yaml:"default_group" json:"default_group" validate:"required"`
	Groupings    []GroupingRecord `yaml:"groupings" json:"groupings" validate:"required,min=1,dive"`
}

// GroupingRecord is one palette entry.
type GroupingRecord struct {
	ID        core.ID    `yaml:"id" json:"id" validate:"required"`
	Name      string     `yaml:"name" json:"name"`
	Color     core.Color `yaml:"color" json:"color"`
	FontColor core.Color `yaml:"font_color" json:"font_color"`
}

// ItemRecord is one row or column record.
type ItemRecord struct {
	ID        core.ID   `yaml:"id" json:"id" validate:"required"`
	Alias     core.ID   `yaml:"alias,omitempty" json:"alias,omitempty"`
	Role      core.Role `yaml:"role" json:"role" validate:"required,oneof=1 2"`
	Name      string    `yaml:"name" json:"name"`
	SortIndex float64   `yaml:"sort_index" json:"sort_index"`
	Domain    core.ID   `yaml:"domain" json:"domain" validate:"required"`
	Group     core.ID   `yaml:"group" json:"group" validate:"required"`
}

// ConnectionRecord is one connection.
type ConnectionRecord struct {
	Row        core.ID  `yaml:"row" json:"row" validate:"required"`
	Col        core.ID  `yaml:"col" json:"col" validate:"required"`
	Name       string   `yaml:"name,omitempty" json:"name,omitempty"`
	Weight     float64  `yaml:"weight" json:"weight"`
	Interfaces []string `yaml:"interfaces,omitempty" json:"interfaces,omitempty"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator returns the shared validator instance.
func structValidator() *validator.Validate {
	validateOnce.Do(func() { validate = validator.New() })

	return validate
}

// Document returns a deep copy of the matrix as a record graph: domains by
// id, rows then columns by id, connections by (row, col).
func (m *Matrix) Document() Document {
	doc := Document{
		Info: Info{Metadata: m.meta, Variant: m.variant, Symmetric: m.variant != Asymmetric},
	}
	for _, d := range m.store.Domains() {
		var role core.Role
		if m.variant == Asymmetric {
			for _, r := range []core.Role{core.RoleRow, core.RoleCol} {
				if m.roleDomain[r] == d.ID {
					role = r
				}
			}
		}
		doc.Domains = append(doc.Domains, domainRecord(d, role))
	}
	for _, set := range [][]core.Item{m.store.Rows(), m.store.Cols()} {
		for _, it := range set {
			doc.Items = append(doc.Items, ItemRecord{
				ID: it.ID, Alias: it.Alias, Role: it.Role, Name: it.Name,
				SortIndex: it.SortIndex, Domain: it.Domain, Group: it.Group,
			})
		}
	}
	for _, c := range m.store.Connections() {
		doc.Connections = append(doc.Connections, ConnectionRecord{
			Row: c.Row, Col: c.Col, Name: c.Name, Weight: c.Weight, Interfaces: c.Interfaces,
		})
	}

	return doc
}

// Load validates doc and builds a Matrix bound to session (a fresh session
// when nil). Every id of doc is observed by the session so later allocations
// never collide with loaded ids.
//
// Validation order:
//  1. struct tags (required fields, roles, color ranges);
//  2. variant and domain count (asymmetric: one row and one column domain);
//  3. global id uniqueness across domains, groupings and items;
//  4. item domain/grouping membership and alias pairing;
//  5. connections: endpoints present with the right role, finite weight,
//     no duplicate keys, no connection to a row's own alias.
//
// Any failure wraps ErrInvalidDocument together with the specific sentinel.
func Load(session *core.Session, doc Document, opts ...Option) (*Matrix, error) {
	if err := structValidator().Struct(doc); err != nil {
		return nil, invalid(err)
	}
	v := doc.Info.Variant
	if !v.Valid() {
		return nil, invalid(fmt.Errorf("%w: %d", ErrUnknownVariant, uint8(v)))
	}
	if doc.Info.Symmetric != (v != Asymmetric) {
		return nil, invalid(fmt.Errorf("%w: symmetric flag contradicts %s", ErrVariant, v))
	}
	ops := variantTable[v]
	if !ops.domainCount(len(doc.Domains)) {
		return nil, invalid(fmt.Errorf("%w: %s matrix with %d domains", ErrVariant, v, len(doc.Domains)))
	}
	if err := checkUniqueIDs(doc); err != nil {
		return nil, invalid(err)
	}

	o := gatherOptions(opts...)
	o.meta = doc.Info.Metadata
	m := newMatrix(session, v, o)
	for _, rec := range doc.Domains {
		if err := m.store.AddDomain(domainFromRecord(rec)); err != nil {
			return nil, invalid(err)
		}
		if v == Asymmetric {
			if rec.Role != core.RoleRow && rec.Role != core.RoleCol {
				return nil, invalid(fmt.Errorf("%w: domain %d has no role", core.ErrRoleMismatch, rec.ID))
			}
			if m.roleDomain[rec.Role] != core.NoID {
				return nil, invalid(fmt.Errorf("%w: two %s domains", core.ErrRoleMismatch, rec.Role))
			}
			m.roleDomain[rec.Role] = rec.ID
		}
	}
	if err := m.loadItems(doc.Items); err != nil {
		return nil, invalid(err)
	}
	if err := m.loadConnections(doc.Connections); err != nil {
		return nil, invalid(err)
	}
	for _, id := range documentIDs(doc) {
		m.session.Observe(id)
	}
	m.logger.Debug("matrix loaded",
		"items", m.store.ItemCount(),
		"connections", m.store.ConnectionCount(),
	)

	return m, nil
}

// invalid wraps err as a load failure.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
}

// loadItems inserts items and checks role domains and alias pairing.
func (m *Matrix) loadItems(items []ItemRecord) error {
	for _, rec := range items {
		if math.IsNaN(rec.SortIndex) || math.IsInf(rec.SortIndex, 0) {
			return fmt.Errorf("%w: item %d", ErrInvalidSortIndex, rec.ID)
		}
		if m.variant == Asymmetric {
			if rec.Alias != core.NoID {
				return fmt.Errorf("%w: asymmetric item %d has alias", ErrAliasMismatch, rec.ID)
			}
			if m.roleDomain[rec.Role] != rec.Domain {
				return fmt.Errorf("%w: %s item %d in domain %d", core.ErrRoleMismatch, rec.Role, rec.ID, rec.Domain)
			}
		}
		it := core.Item{
			ID: rec.ID, Alias: rec.Alias, Role: rec.Role, Name: rec.Name,
			SortIndex: rec.SortIndex, Domain: rec.Domain, Group: rec.Group,
		}
		if err := m.store.InsertItem(it); err != nil {
			return err
		}
	}
	if !m.ops.aliased {
		return nil
	}
	for _, it := range m.store.Items(0) {
		if _, err := m.pair(it.ID); err != nil {
			return err
		}
	}

	return nil
}

// loadConnections inserts connections, rejecting duplicates and self-loops.
func (m *Matrix) loadConnections(conns []ConnectionRecord) error {
	for _, rec := range conns {
		key := core.ConnKey{Row: rec.Row, Col: rec.Col}
		if _, dup := m.store.Connection(key); dup {
			return fmt.Errorf("%w: (%d,%d)", ErrDuplicateConnection, rec.Row, rec.Col)
		}
		if r, ok := m.store.Item(rec.Row); ok && m.ops.aliased && r.Alias == rec.Col {
			return fmt.Errorf("%w: (%d,%d)", ErrSelfConnection, rec.Row, rec.Col)
		}
		c := core.Connection{Row: rec.Row, Col: rec.Col, Name: rec.Name, Weight: rec.Weight, Interfaces: rec.Interfaces}
		if _, _, err := m.store.PutConnection(c); err != nil {
			return err
		}
	}

	return nil
}

// checkUniqueIDs verifies that no id is used twice across domains,
// groupings and items.
func checkUniqueIDs(doc Document) error {
	seen := make(map[core.ID]struct{})
	for _, id := range documentIDs(doc) {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %d", core.ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// documentIDs lists every entity id of doc.
func documentIDs(doc Document) []core.ID {
	out := make([]core.ID, 0, len(doc.Items)+2*len(doc.Domains))
	for _, d := range doc.Domains {
		out = append(out, d.ID)
		for _, g := range d.Groupings {
			out = append(out, g.ID)
		}
	}
	for _, it := range doc.Items {
		out = append(out, it.ID)
	}

	return out
}

// domainFromRecord converts a record to a core.Domain.
func domainFromRecord(rec DomainRecord) core.Domain {
	d := core.Domain{
		Grouping:     core.Grouping{ID: rec.ID, Name: rec.Name, Color: rec.Color, FontColor: rec.FontColor},
		DefaultGroup: rec.DefaultGroup,
		Groupings:    make([]core.Grouping, 0, len(rec.Groupings)),
	}
	for _, g := range rec.Groupings {
		d.Groupings = append(d.Groupings, core.Grouping{ID: g.ID, Name: g.Name, Color: g.Color, FontColor: g.FontColor})
	}

	return d
}

// ValidationErrors extracts the field-level validator failures wrapped in a
// Load error, if any.
func ValidationErrors(err error) validator.ValidationErrors {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}

	return nil
}

// sortRecords orders items rows-then-cols by id (used by zoom builders).
func sortRecords(items []ItemRecord) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Role != items[j].Role {
			return items[i].Role < items[j].Role
		}

		return items[i].ID < items[j].ID
	})
}
