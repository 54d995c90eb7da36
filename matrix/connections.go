// SPDX-License-Identifier: MIT
// Package matrix: connection management and transpose.

package matrix

import (
	"fmt"

	"github.com/katalvlaran/dsm/core"
)

// ModifyConnection creates the connection (row, col) or updates it in place.
//
// Errors: core.ErrItemNotFound / core.ErrRoleMismatch for bad endpoints,
// core.ErrInvalidWeight for NaN/Inf, ErrSelfConnection when col is the alias
// of row.
func (m *Matrix) ModifyConnection(row, col core.ID, name string, weight float64, interfaces []string) error {
	return m.action("modify connection", func() error {
		return m.putConnection(core.Connection{Row: row, Col: col, Name: name, Weight: weight, Interfaces: interfaces})
	})
}

// ModifyConnectionSymmetric writes (row, col) and its mirror as one action.
// Aliased variants only; an unresolvable mirror is reported as
// ErrAliasMismatch and nothing is written.
func (m *Matrix) ModifyConnectionSymmetric(row, col core.ID, name string, weight float64, interfaces []string) error {
	if !m.ops.aliased {
		return ErrVariant
	}

	return m.action("modify connection symmetric", func() error {
		mk, ok := m.SymmetricConnectionIDs(row, col)
		if !ok {
			return fmt.Errorf("%w: no mirror for (%d,%d)", ErrAliasMismatch, row, col)
		}
		if err := m.putConnection(core.Connection{Row: row, Col: col, Name: name, Weight: weight, Interfaces: interfaces}); err != nil {
			return err
		}

		return m.putConnection(core.Connection{Row: mk.Row, Col: mk.Col, Name: name, Weight: weight, Interfaces: interfaces})
	})
}

// putConnection records a create/update after the self-connection check.
func (m *Matrix) putConnection(c core.Connection) error {
	if m.ops.aliased {
		if r, ok := m.store.Item(c.Row); ok && r.Alias == c.Col && r.Alias != core.NoID {
			return fmt.Errorf("%w: (%d,%d)", ErrSelfConnection, c.Row, c.Col)
		}
	}

	return m.record(&connectionPut{conn: c})
}

// ClearConnection deletes (row, col) if present; otherwise it is a no-op.
func (m *Matrix) ClearConnection(row, col core.ID) error {
	return m.action("clear connection", func() error {
		return m.deleteConnection(core.ConnKey{Row: row, Col: col})
	})
}

// deleteConnection records a delete when key exists.
func (m *Matrix) deleteConnection(key core.ConnKey) error {
	if _, ok := m.store.Connection(key); !ok {
		return nil
	}

	return m.record(&connectionDelete{key: key})
}

// ClearItemConnections deletes every connection incident to item id (and,
// for aliased variants, to its alias).
func (m *Matrix) ClearItemConnections(id core.ID) error {
	return m.action("clear item connections", func() error {
		ids, err := m.pair(id)
		if err != nil {
			return err
		}
		for _, x := range ids {
			it, _ := m.store.Item(x)
			conns := m.store.RowConnections(x)
			if it.Role == core.RoleCol {
				conns = m.store.ColConnections(x)
			}
			for _, c := range conns {
				if err = m.deleteConnection(c.Key()); err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// ClearAllConnections deletes every connection of the matrix.
func (m *Matrix) ClearAllConnections() error {
	return m.action("clear all connections", func() error {
		for _, c := range m.store.Connections() {
			if err := m.deleteConnection(c.Key()); err != nil {
				return err
			}
		}

		return nil
	})
}

// SymmetricConnectionIDs returns the key mirroring (row, col): the mirrored
// row is the alias of col, the mirrored column is the column whose alias is
// row. It reports false when either side cannot be resolved, which signals a
// corrupted alias graph. Applying it to its own output yields (row, col).
func (m *Matrix) SymmetricConnectionIDs(row, col core.ID) (core.ConnKey, bool) {
	if !m.ops.aliased {
		return core.ConnKey{}, false
	}

	return m.mirrorKey(row, col)
}

// mirrorKey resolves (row, col) to (alias(col), alias(row)) with both
// aliases checked to point back.
func (m *Matrix) mirrorKey(row, col core.ID) (core.ConnKey, bool) {
	r, ok := m.store.Item(row)
	if !ok || r.Role != core.RoleRow {
		return core.ConnKey{}, false
	}
	c, ok := m.store.Item(col)
	if !ok || c.Role != core.RoleCol {
		return core.ConnKey{}, false
	}
	mr, ok := m.store.Item(c.Alias)
	if !ok || mr.Role != core.RoleRow || mr.Alias != col {
		return core.ConnKey{}, false
	}
	mc, ok := m.store.Item(r.Alias)
	if !ok || mc.Role != core.RoleCol || mc.Alias != row {
		return core.ConnKey{}, false
	}

	return core.ConnKey{Row: mr.ID, Col: mc.ID}, true
}

// Transpose swaps the matrix axes. Asymmetric matrices turn rows into
// columns (and their domains with them); aliased variants move every
// connection to its mirrored key.
func (m *Matrix) Transpose() error {
	return m.action("transpose", func() error { return m.ops.transpose(m) })
}

// transposeRoles is the asymmetric transpose.
func transposeRoles(m *Matrix) error {
	return m.record(rolesTranspose{})
}

// transposeMirror is the aliased transpose.
func transposeMirror(m *Matrix) error {
	if m.store.ConnectionCount() == 0 {
		return nil
	}

	return m.record(connectionsMirror{})
}
