// SPDX-License-Identifier: MIT
// Package matrix: the Matrix type, construction, read accessors and the
// action/undo plumbing every mutator goes through.

package matrix

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/history"
)

// Metadata is the descriptive header of a matrix document.
type Metadata struct {
	Title    string `yaml:"title" json:"title"`
	Project  string `yaml:"project,omitempty" json:"project,omitempty"`
	Customer string `yaml:"customer,omitempty" json:"customer,omitempty"`
	Version  string `yaml:"version,omitempty" json:"version,omitempty"`
}

// Matrix is one editable DSM of a fixed Variant.
//
// All mutation goes through exported methods that record reversible changes
// on an internal history.Stack; each call is one undoable action.
// A Matrix is not safe for concurrent use; see Snapshot.
type Matrix struct {
	variant Variant
	ops     variantOps
	session *core.Session
	store   *core.Store
	meta    Metadata
	log     *history.Stack[*Matrix]
	logger  *slog.Logger
	base    *slog.Logger // logger without matrix attributes, handed to breakouts

	// roleDomain maps core.RoleRow/RoleCol to its domain (asymmetric only).
	roleDomain [3]core.ID
	// depth counts nested actions; checkpoints are placed at depth 0.
	depth int
}

// New returns an empty matrix of the given variant.
//
// Symmetric and MultiDomain matrices start with one domain (see
// WithDomainName); Asymmetric matrices start with a row domain and a column
// domain. Every domain starts with its default grouping. A nil session is
// replaced by a fresh one.
func New(session *core.Session, v Variant, opts ...Option) (*Matrix, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, uint8(v))
	}
	o := gatherOptions(opts...)
	m := newMatrix(session, v, o)
	if v == Asymmetric {
		m.roleDomain[core.RoleRow] = m.seedDomain(RowDomainName)
		m.roleDomain[core.RoleCol] = m.seedDomain(ColDomainName)
	} else {
		m.seedDomain(o.domainName)
	}
	m.logger.Debug("matrix created")

	return m, nil
}

// newMatrix wires an empty matrix without domains.
func newMatrix(session *core.Session, v Variant, o Options) *Matrix {
	if session == nil {
		session = core.NewSession()
	}
	m := &Matrix{
		variant: v,
		ops:     variantTable[v],
		session: session,
		store:   core.NewStore(),
		meta:    o.meta,
		base:    o.logger,
	}
	m.log = history.New(m)
	m.logger = o.logger.With(
		slog.String("session", session.ID().String()),
		slog.String("variant", v.String()),
	)

	return m
}

// seedDomain adds an unlogged domain with a fresh default grouping.
func (m *Matrix) seedDomain(name string) core.ID {
	d := m.newDomain(name)
	// cannot fail: fresh ids, default listed
	_ = m.store.AddDomain(d)

	return d.ID
}

// newDomain builds a domain value with fresh ids and a default grouping.
func (m *Matrix) newDomain(name string) core.Domain {
	def := core.Grouping{
		ID:        m.session.NextID(),
		Name:      DefaultGroupingName,
		Color:     core.White,
		FontColor: core.Black,
	}

	return core.Domain{
		Grouping:     core.Grouping{ID: m.session.NextID(), Name: name, Color: core.White, FontColor: core.Black},
		DefaultGroup: def.ID,
		Groupings:    []core.Grouping{def},
	}
}

// Variant returns the matrix variant.
func (m *Matrix) Variant() Variant { return m.variant }

// Session returns the id session the matrix allocates from.
func (m *Matrix) Session() *core.Session { return m.session }

// Metadata returns the document metadata.
func (m *Matrix) Metadata() Metadata { return m.meta }

// Item returns the item with the given id.
func (m *Matrix) Item(id core.ID) (core.Item, bool) { return m.store.Item(id) }

// Items returns every item, sorted by id.
func (m *Matrix) Items() []core.Item { return m.store.Items(0) }

// Rows returns the row items sorted by id.
func (m *Matrix) Rows() []core.Item { return m.store.Rows() }

// Cols returns the column items sorted by id.
func (m *Matrix) Cols() []core.Item { return m.store.Cols() }

// Connection returns the connection at key.
func (m *Matrix) Connection(key core.ConnKey) (core.Connection, bool) {
	return m.store.Connection(key)
}

// Connections returns every connection sorted by key.
func (m *Matrix) Connections() []core.Connection { return m.store.Connections() }

// RowConnections returns the connections of row id.
func (m *Matrix) RowConnections(id core.ID) []core.Connection { return m.store.RowConnections(id) }

// ColConnections returns the connections of column id.
func (m *Matrix) ColConnections(id core.ID) []core.Connection { return m.store.ColConnections(id) }

// Domain returns the domain with the given id.
func (m *Matrix) Domain(id core.ID) (core.Domain, bool) { return m.store.Domain(id) }

// Domains returns every domain sorted by id.
func (m *Matrix) Domains() []core.Domain { return m.store.Domains() }

// GroupingOf returns the grouping assigned to item id.
func (m *Matrix) GroupingOf(id core.ID) (core.Grouping, bool) { return m.store.GroupingOf(id) }

// DomainForRole returns the domain new items of role are created in: the
// row or column domain of an asymmetric matrix, otherwise the lowest-id
// domain.
func (m *Matrix) DomainForRole(role core.Role) core.ID {
	if m.variant == Asymmetric {
		return m.roleDomain[role]
	}
	ds := m.store.Domains()
	if len(ds) == 0 {
		return core.NoID
	}

	return ds[0].ID
}

// Snapshot returns a deep copy of the entity store. The copy shares nothing
// with the matrix and may be read on another goroutine.
func (m *Matrix) Snapshot() *core.Store { return m.store.Clone() }

// CanUndo reports whether an action can be undone.
func (m *Matrix) CanUndo() bool { return m.log.CanUndo() }

// CanRedo reports whether an undone action can be redone.
func (m *Matrix) CanRedo() bool { return m.log.CanRedo() }

// Undo reverts the most recent action. No-op when there is nothing to undo.
func (m *Matrix) Undo() error {
	if m.depth > 0 {
		return ErrInAction
	}
	if err := m.log.UndoToCheckpoint(); err != nil {
		m.logger.Error("undo failed", slog.Any("err", err))

		return err
	}

	return nil
}

// Redo re-applies the most recently undone action. No-op when there is
// nothing to redo.
func (m *Matrix) Redo() error {
	if m.depth > 0 {
		return ErrInAction
	}
	if err := m.log.RedoToCheckpoint(); err != nil {
		m.logger.Error("redo failed", slog.Any("err", err))

		return err
	}

	return nil
}

// Atomic runs fn as one undoable action: every mutator called inside fn
// shares a single checkpoint. If fn returns an error every change it made is
// reverted and discarded.
func (m *Matrix) Atomic(fn func() error) error {
	return m.action("atomic", fn)
}

// action runs fn with rollback on error and places a checkpoint when the
// outermost action completes with at least one change.
func (m *Matrix) action(name string, fn func() error) error {
	base := m.log.Len()
	m.depth++
	err := fn()
	m.depth--
	if err != nil {
		if rbErr := m.log.Rollback(base); rbErr != nil {
			m.logger.Error("rollback failed", slog.String("action", name), slog.Any("err", rbErr))

			return errors.Join(err, rbErr)
		}
		m.logger.Warn("action declined", slog.String("action", name), slog.Any("err", err))

		return err
	}
	if m.depth == 0 && m.log.Len() > base {
		m.log.MarkCheckpoint()
	}

	return nil
}

// record applies c through the history log.
func (m *Matrix) record(c history.Change[*Matrix]) error {
	return m.log.Record(c)
}
