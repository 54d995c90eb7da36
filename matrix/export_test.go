// SPDX-License-Identifier: MIT

package matrix

import "github.com/katalvlaran/dsm/core"

// Test bridge: lets black-box tests corrupt state behind the change log to
// exercise the alias integrity checks. Compiled into test binaries only.

// CorruptNameForTest renames one record without touching its alias.
func CorruptNameForTest(m *Matrix, id core.ID, name string) {
	_, _ = m.store.SetName(id, name)
}

// CorruptAliasForTest rewires one record's alias without touching the partner.
func CorruptAliasForTest(m *Matrix, id, alias core.ID) {
	_, _ = m.store.SetAlias(id, alias)
}

// HistoryLenForTest returns the number of recorded changes.
func HistoryLenForTest(m *Matrix) int { return m.log.Len() }
