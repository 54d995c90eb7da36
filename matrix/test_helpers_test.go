// SPDX-License-Identifier: MIT

package matrix_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
)

// quiet discards log output of declined actions.
var quiet = matrix.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

// newMatrix builds an empty matrix of v or fails the test.
func newMatrix(t *testing.T, v matrix.Variant) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New(core.NewSession(), v, quiet)
	require.NoError(t, err)

	return m
}

// mustItem creates an item or fails the test.
func mustItem(t *testing.T, m *matrix.Matrix, role core.Role, name string) core.ID {
	t.Helper()
	id, err := m.CreateItem(role, name)
	require.NoError(t, err)

	return id
}

// alias returns the alias of id.
func alias(t *testing.T, m *matrix.Matrix, id core.ID) core.ID {
	t.Helper()
	it, ok := m.Item(id)
	require.True(t, ok)

	return it.Alias
}

// symFixture builds a symmetric matrix with items a, b, c and connections
// a→b (2) and b→c (3). Ids returned are row ids.
func symFixture(t *testing.T) (m *matrix.Matrix, a, b, c core.ID) {
	t.Helper()
	m = newMatrix(t, matrix.Symmetric)
	a = mustItem(t, m, core.RoleRow, "a")
	b = mustItem(t, m, core.RoleRow, "b")
	c = mustItem(t, m, core.RoleRow, "c")
	require.NoError(t, m.ModifyConnection(a, alias(t, m, b), "ab", 2, []string{"mech"}))
	require.NoError(t, m.ModifyConnection(b, alias(t, m, c), "bc", 3, nil))

	return m, a, b, c
}

// mdFixture builds a multi-domain matrix with domains "power" (p1, p2) and
// "ctrl" (c1) plus connections p1→p2, p1→c1, c1→p2.
func mdFixture(t *testing.T) (m *matrix.Matrix, power, ctrl core.ID, p1, p2, c1 core.ID) {
	t.Helper()
	m = newMatrix(t, matrix.MultiDomain)
	var err error
	p1, err = m.CreateDomainItem("power", "p1")
	require.NoError(t, err)
	p2, err = m.CreateDomainItem("power", "p2")
	require.NoError(t, err)
	c1, err = m.CreateDomainItem("ctrl", "c1")
	require.NoError(t, err)
	it, _ := m.Item(p1)
	power = it.Domain
	it, _ = m.Item(c1)
	ctrl = it.Domain
	require.NoError(t, m.ModifyConnection(p1, alias(t, m, p2), "", 1, nil))
	require.NoError(t, m.ModifyConnection(p1, alias(t, m, c1), "", 2, nil))
	require.NoError(t, m.ModifyConnection(c1, alias(t, m, p2), "", 3, nil))

	return m, power, ctrl, p1, p2, c1
}
