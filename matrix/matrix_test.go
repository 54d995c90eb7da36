// SPDX-License-Identifier: MIT

package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
)

func TestNew_UnknownVariant(t *testing.T) {
	_, err := matrix.New(nil, matrix.Variant(9))
	assert.ErrorIs(t, err, matrix.ErrUnknownVariant)
}

func TestCreateItem_UniqueIDs(t *testing.T) {
	for _, v := range []matrix.Variant{matrix.Symmetric, matrix.Asymmetric, matrix.MultiDomain} {
		t.Run(v.String(), func(t *testing.T) {
			m := newMatrix(t, v)
			for i := 0; i < 20; i++ {
				mustItem(t, m, core.RoleRow, "r")
				mustItem(t, m, core.RoleCol, "c")
			}
			if v == matrix.MultiDomain {
				_, err := m.CreateDomainItem("other", "x")
				require.NoError(t, err)
			}
			seen := make(map[core.ID]struct{})
			for _, it := range m.Items() {
				_, dup := seen[it.ID]
				require.False(t, dup, "duplicate id %d", it.ID)
				seen[it.ID] = struct{}{}
			}
			for _, d := range m.Domains() {
				_, dup := seen[d.ID]
				require.False(t, dup)
			}
		})
	}
}

func TestCreateItem_SymmetricPair(t *testing.T) {
	m := newMatrix(t, matrix.Symmetric)
	id := mustItem(t, m, core.RoleCol, "pump")

	row, ok := m.Item(id)
	require.True(t, ok)
	col, ok := m.Item(row.Alias)
	require.True(t, ok)

	assert.Equal(t, core.RoleRow, row.Role)
	assert.Equal(t, core.RoleCol, col.Role)
	assert.Equal(t, id, col.Alias)
	assert.Equal(t, row.Name, col.Name)
	assert.Equal(t, 1.0, row.SortIndex)
	assert.Len(t, m.Rows(), 1)
	assert.Len(t, m.Cols(), 1)

	require.NoError(t, m.Undo())
	assert.Empty(t, m.Items(), "pair creation is one action")
}

func TestCreateItem_AsymmetricSingle(t *testing.T) {
	m := newMatrix(t, matrix.Asymmetric)
	r := mustItem(t, m, core.RoleRow, "req")
	c := mustItem(t, m, core.RoleCol, "part")

	ri, _ := m.Item(r)
	ci, _ := m.Item(c)
	assert.Equal(t, core.NoID, ri.Alias)
	assert.Equal(t, m.DomainForRole(core.RoleRow), ri.Domain)
	assert.Equal(t, m.DomainForRole(core.RoleCol), ci.Domain)
	assert.NotEqual(t, ri.Domain, ci.Domain)

	_, err := m.CreateItem(0, "bad")
	assert.ErrorIs(t, err, core.ErrRoleMismatch)
}

// TestUndoRedo_RoundTrip checks undo(apply(M,S)) == S and
// redo(undo(apply(M,S))) == apply(M,S) for every mutator.
func TestUndoRedo_RoundTrip(t *testing.T) {
	type mutator func(t *testing.T, m *matrix.Matrix, a, b, c core.ID) error

	cases := map[string]mutator{
		"create": func(_ *testing.T, m *matrix.Matrix, _, _, _ core.ID) error {
			_, err := m.CreateItem(core.RoleRow, "d")
			return err
		},
		"delete": func(_ *testing.T, m *matrix.Matrix, _, b, _ core.ID) error { return m.DeleteItem(b) },
		"rename": func(_ *testing.T, m *matrix.Matrix, a, _, _ core.ID) error { return m.RenameItem(a, "z") },
		"resort": func(_ *testing.T, m *matrix.Matrix, a, _, _ core.ID) error { return m.SetItemSortIndex(a, 9.5) },
		"regroup": func(_ *testing.T, m *matrix.Matrix, a, _, _ core.ID) error {
			g, err := m.AddGrouping(m.DomainForRole(core.RoleRow), "g", core.Color{R: 1}, core.Black)
			if err != nil {
				return err
			}
			return m.SetItemGrouping(a, g)
		},
		"modify connection": func(t *testing.T, m *matrix.Matrix, a, _, c core.ID) error {
			return m.ModifyConnection(a, alias(t, m, c), "ac", 4, []string{"x"})
		},
		"update connection": func(t *testing.T, m *matrix.Matrix, a, b, _ core.ID) error {
			return m.ModifyConnection(a, alias(t, m, b), "ab2", 7, nil)
		},
		"modify symmetric": func(t *testing.T, m *matrix.Matrix, a, _, c core.ID) error {
			return m.ModifyConnectionSymmetric(a, alias(t, m, c), "", 1, nil)
		},
		"clear connection": func(t *testing.T, m *matrix.Matrix, a, b, _ core.ID) error {
			return m.ClearConnection(a, alias(t, m, b))
		},
		"clear item connections": func(_ *testing.T, m *matrix.Matrix, _, b, _ core.ID) error {
			return m.ClearItemConnections(b)
		},
		"clear all":    func(_ *testing.T, m *matrix.Matrix, _, _, _ core.ID) error { return m.ClearAllConnections() },
		"transpose":    func(_ *testing.T, m *matrix.Matrix, _, _, _ core.ID) error { return m.Transpose() },
		"redistribute": func(_ *testing.T, m *matrix.Matrix, _, _, _ core.ID) error { return m.RedistributeSortIndices() },
		"remove grouping": func(_ *testing.T, m *matrix.Matrix, a, b, _ core.ID) error {
			d := m.DomainForRole(core.RoleRow)
			g, err := m.AddGrouping(d, "g", core.White, core.Black)
			if err != nil {
				return err
			}
			if err = m.SetItemGrouping(a, g); err != nil {
				return err
			}
			return m.Atomic(func() error {
				if err := m.SetItemSortIndex(b, -1); err != nil {
					return err
				}
				return m.RemoveGrouping(d, g)
			})
		},
		"metadata": func(_ *testing.T, m *matrix.Matrix, _, _, _ core.ID) error {
			return m.SetMetadata(matrix.Metadata{Title: "t", Version: "2"})
		},
	}

	for name, mut := range cases {
		t.Run(name, func(t *testing.T) {
			m, a, b, c := symFixture(t)
			require.NoError(t, m.SetItemSortIndex(c, 0.5))
			before := m.Document()

			require.NoError(t, mut(t, m, a, b, c))
			after := m.Document()

			for m.CanUndo() && !docEqual(m.Document(), before) {
				require.NoError(t, m.Undo())
			}
			assert.Equal(t, before, m.Document(), "undo restores prior state")

			for !docEqual(m.Document(), after) {
				require.True(t, m.CanRedo())
				require.NoError(t, m.Redo())
			}
			assert.Equal(t, after, m.Document(), "redo restores post state")
		})
	}
}

func docEqual(a, b matrix.Document) bool {
	return assert.ObjectsAreEqual(a, b)
}

func TestUndo_SingleStepPerAction(t *testing.T) {
	m, a, _, _ := symFixture(t)
	before := m.Document()

	require.NoError(t, m.RenameItem(a, "alpha"))
	require.NoError(t, m.Undo())
	assert.Equal(t, before, m.Document())

	require.NoError(t, m.Redo())
	it, _ := m.Item(alias(t, m, a))
	assert.Equal(t, "alpha", it.Name)

	// empty stacks are no-ops
	m2 := newMatrix(t, matrix.Symmetric)
	assert.NoError(t, m2.Undo())
	assert.NoError(t, m2.Redo())
	assert.False(t, m2.CanUndo())
}

func TestSymmetricInvariant_AfterPairMutations(t *testing.T) {
	m, a, _, _ := symFixture(t)
	g, err := m.AddGrouping(m.DomainForRole(core.RoleRow), "hot", core.Color{R: 1}, core.White)
	require.NoError(t, err)

	require.NoError(t, m.RenameItem(alias(t, m, a), "renamed via column"))
	require.NoError(t, m.SetItemSortIndex(a, 42))
	require.NoError(t, m.SetItemGrouping(a, g))

	row, _ := m.Item(a)
	col, _ := m.Item(row.Alias)
	assert.Equal(t, row.Name, col.Name)
	assert.Equal(t, row.SortIndex, col.SortIndex)
	assert.Equal(t, row.Group, col.Group)
	assert.Equal(t, "renamed via column", row.Name)
}

func TestAliasMismatch_Declined(t *testing.T) {
	m, a, _, _ := symFixture(t)
	matrix.CorruptNameForTest(m, alias(t, m, a), "drifted")
	before := m.Document()
	depth := matrix.HistoryLenForTest(m)

	err := m.RenameItem(a, "x")
	assert.ErrorIs(t, err, matrix.ErrAliasMismatch)
	assert.Equal(t, before, m.Document())
	assert.Equal(t, depth, matrix.HistoryLenForTest(m))

	assert.ErrorIs(t, m.SetItemSortIndex(a, 3), matrix.ErrAliasMismatch)
	assert.ErrorIs(t, m.DeleteItem(a), matrix.ErrAliasMismatch)
	assert.Equal(t, before, m.Document())
}

func TestAliasMismatch_OneSided(t *testing.T) {
	m, a, b, _ := symFixture(t)
	matrix.CorruptAliasForTest(m, alias(t, m, a), b)

	assert.ErrorIs(t, m.RenameItem(a, "x"), matrix.ErrAliasMismatch)
	_, ok := m.SymmetricConnectionIDs(a, alias(t, m, b))
	assert.False(t, ok, "corrupted alias graph yields no mirror")
}

func TestModifyConnection_Rules(t *testing.T) {
	m, a, b, _ := symFixture(t)

	err := m.ModifyConnection(a, alias(t, m, a), "", 1, nil)
	assert.ErrorIs(t, err, matrix.ErrSelfConnection)

	err = m.ModifyConnection(a, alias(t, m, b), "", math.NaN(), nil)
	assert.ErrorIs(t, err, core.ErrInvalidWeight)

	err = m.ModifyConnection(alias(t, m, b), a, "", 1, nil)
	assert.ErrorIs(t, err, core.ErrRoleMismatch)

	// update in place keeps a single connection
	require.NoError(t, m.ModifyConnection(a, alias(t, m, b), "ab", 9, []string{"elec", "elec"}))
	c, ok := m.Connection(core.ConnKey{Row: a, Col: alias(t, m, b)})
	require.True(t, ok)
	assert.Equal(t, 9.0, c.Weight)
	assert.Equal(t, []string{"elec"}, c.Interfaces)
	assert.Len(t, m.Connections(), 2)

	// clearing an absent connection records nothing
	depth := matrix.HistoryLenForTest(m)
	require.NoError(t, m.ClearConnection(b, alias(t, m, a)))
	assert.Equal(t, depth, matrix.HistoryLenForTest(m))
}

func TestAsymmetric_FullCrossProduct(t *testing.T) {
	m := newMatrix(t, matrix.Asymmetric)
	r := mustItem(t, m, core.RoleRow, "x")
	c := mustItem(t, m, core.RoleCol, "x")

	require.NoError(t, m.ModifyConnection(r, c, "", 1, nil))
	assert.ErrorIs(t, m.ModifyConnectionSymmetric(r, c, "", 1, nil), matrix.ErrVariant)
	_, ok := m.SymmetricConnectionIDs(r, c)
	assert.False(t, ok)
}

func TestSymmetricConnectionIDs_Involutive(t *testing.T) {
	m, a, b, c := symFixture(t)
	for _, pair := range [][2]core.ID{{a, alias(t, m, b)}, {b, alias(t, m, c)}, {c, alias(t, m, a)}} {
		k, ok := m.SymmetricConnectionIDs(pair[0], pair[1])
		require.True(t, ok)
		back, ok := m.SymmetricConnectionIDs(k.Row, k.Col)
		require.True(t, ok)
		assert.Equal(t, core.ConnKey{Row: pair[0], Col: pair[1]}, back)
	}
	k, _ := m.SymmetricConnectionIDs(a, alias(t, m, b))
	assert.Equal(t, core.ConnKey{Row: b, Col: alias(t, m, a)}, k)
}

func TestModifyConnectionSymmetric_OneAction(t *testing.T) {
	m, a, b, _ := symFixture(t)
	require.NoError(t, m.ClearAllConnections())

	require.NoError(t, m.ModifyConnectionSymmetric(a, alias(t, m, b), "link", 5, nil))
	assert.Len(t, m.Connections(), 2)
	_, ok := m.Connection(core.ConnKey{Row: b, Col: alias(t, m, a)})
	assert.True(t, ok)

	require.NoError(t, m.Undo())
	assert.Empty(t, m.Connections())
}

func TestTranspose(t *testing.T) {
	t.Run("symmetric mirrors connections", func(t *testing.T) {
		m, a, b, _ := symFixture(t)
		require.NoError(t, m.Transpose())
		_, ok := m.Connection(core.ConnKey{Row: b, Col: alias(t, m, a)})
		assert.True(t, ok)
		_, ok = m.Connection(core.ConnKey{Row: a, Col: alias(t, m, b)})
		assert.False(t, ok)
	})
	t.Run("asymmetric swaps roles and domains", func(t *testing.T) {
		m := newMatrix(t, matrix.Asymmetric)
		r := mustItem(t, m, core.RoleRow, "r")
		c := mustItem(t, m, core.RoleCol, "c")
		require.NoError(t, m.ModifyConnection(r, c, "", 3, nil))
		rowDomain := m.DomainForRole(core.RoleRow)

		require.NoError(t, m.Transpose())
		it, _ := m.Item(r)
		assert.Equal(t, core.RoleCol, it.Role)
		assert.Equal(t, rowDomain, m.DomainForRole(core.RoleCol))
		_, ok := m.Connection(core.ConnKey{Row: c, Col: r})
		assert.True(t, ok)

		n := mustItem(t, m, core.RoleCol, "new col")
		ni, _ := m.Item(n)
		assert.Equal(t, rowDomain, ni.Domain, "columns now live in the former row domain")
	})
}

func TestRedistributeSortIndices(t *testing.T) {
	t.Run("symmetric", func(t *testing.T) {
		m, a, b, c := symFixture(t)
		require.NoError(t, m.SetItemSortIndex(a, 10))
		require.NoError(t, m.SetItemSortIndex(b, -3))
		require.NoError(t, m.SetItemSortIndex(c, 2.5))

		require.NoError(t, m.RedistributeSortIndices())
		want := map[core.ID]float64{b: 1, c: 2, a: 3}
		for id, v := range want {
			row, _ := m.Item(id)
			col, _ := m.Item(row.Alias)
			assert.Equal(t, v, row.SortIndex)
			assert.Equal(t, v, col.SortIndex)
		}
	})
	t.Run("asymmetric rows and cols separately", func(t *testing.T) {
		m := newMatrix(t, matrix.Asymmetric)
		r1 := mustItem(t, m, core.RoleRow, "r1")
		r2 := mustItem(t, m, core.RoleRow, "r2")
		c1 := mustItem(t, m, core.RoleCol, "c1")
		require.NoError(t, m.SetItemSortIndex(r1, 7))
		require.NoError(t, m.SetItemSortIndex(r2, 7))
		require.NoError(t, m.SetItemSortIndex(c1, 50))

		require.NoError(t, m.RedistributeSortIndices())
		i1, _ := m.Item(r1)
		i2, _ := m.Item(r2)
		ic, _ := m.Item(c1)
		assert.Equal(t, 1.0, i1.SortIndex, "tie broken by id")
		assert.Equal(t, 2.0, i2.SortIndex)
		assert.Equal(t, 1.0, ic.SortIndex)
	})
	t.Run("multi-domain per domain", func(t *testing.T) {
		m, _, _, p1, p2, c1 := mdFixture(t)
		require.NoError(t, m.SetItemSortIndex(p1, 30))
		require.NoError(t, m.RedistributeSortIndices())
		i1, _ := m.Item(p1)
		i2, _ := m.Item(p2)
		ic, _ := m.Item(c1)
		assert.Equal(t, 2.0, i1.SortIndex)
		assert.Equal(t, 1.0, i2.SortIndex)
		assert.Equal(t, 1.0, ic.SortIndex)
	})
}

func TestSetItemSortIndex_RejectsNonFinite(t *testing.T) {
	m, a, _, _ := symFixture(t)
	assert.ErrorIs(t, m.SetItemSortIndex(a, math.Inf(-1)), matrix.ErrInvalidSortIndex)
}

func TestGroupings(t *testing.T) {
	m, a, b, _ := symFixture(t)
	d := m.DomainForRole(core.RoleRow)
	dom, _ := m.Domain(d)

	err := m.RemoveGrouping(d, dom.DefaultGroup)
	assert.ErrorIs(t, err, core.ErrDefaultGrouping)

	g, err := m.AddGrouping(d, "thermal", core.Color{R: 1}, core.White)
	require.NoError(t, err)
	require.NoError(t, m.SetItemGrouping(a, g))
	require.NoError(t, m.SetItemGrouping(b, g))
	require.NoError(t, m.RenameGrouping(d, g, "heat"))
	require.NoError(t, m.SetGroupingColor(d, g, core.Color{G: 1}))
	require.NoError(t, m.SetGroupingFontColor(d, g, core.Black))

	gr, ok := m.GroupingOf(alias(t, m, a))
	require.True(t, ok)
	assert.Equal(t, "heat", gr.Name)
	assert.Equal(t, core.Color{G: 1}, gr.Color)

	require.NoError(t, m.ClearGroupings(d))
	for _, it := range m.Items() {
		assert.Equal(t, dom.DefaultGroup, it.Group)
	}
	dom, _ = m.Domain(d)
	assert.Len(t, dom.Groupings, 1)

	require.NoError(t, m.Undo())
	gr, _ = m.GroupingOf(b)
	assert.Equal(t, "heat", gr.Name)
}

func TestDomains_MultiDomain(t *testing.T) {
	m, power, ctrl, p1, _, c1 := mdFixture(t)

	id, err := m.AddDomain("power")
	require.NoError(t, err)
	assert.Equal(t, power, id, "existing name returns existing domain")

	require.NoError(t, m.RenameDomain(ctrl, "control"))
	d, _ := m.Domain(ctrl)
	assert.Equal(t, "control", d.Name)

	before := m.Document()
	require.NoError(t, m.RemoveDomain(power))
	_, ok := m.Item(p1)
	assert.False(t, ok, "domain removal cascades to items")
	for _, c := range m.Connections() {
		assert.NotEqual(t, p1, c.Row)
	}
	_, ok = m.Item(c1)
	assert.True(t, ok)

	require.NoError(t, m.Undo())
	assert.Equal(t, before, m.Document())
}

func TestDomains_LastDomainGuard(t *testing.T) {
	m := newMatrix(t, matrix.MultiDomain)
	only := m.DomainForRole(core.RoleRow)
	mustItem(t, m, core.RoleRow, "x")
	before := m.Document()

	err := m.RemoveDomain(only)
	assert.ErrorIs(t, err, matrix.ErrLastDomain)
	assert.Equal(t, before, m.Document())
}

func TestDomains_VariantGuard(t *testing.T) {
	for _, v := range []matrix.Variant{matrix.Symmetric, matrix.Asymmetric} {
		m := newMatrix(t, v)
		_, err := m.AddDomain("x")
		assert.ErrorIs(t, err, matrix.ErrVariant)
		assert.ErrorIs(t, m.RemoveDomain(m.DomainForRole(core.RoleRow)), matrix.ErrVariant)
		_, err = m.CreateDomainItem("x", "y")
		assert.ErrorIs(t, err, matrix.ErrVariant)
		_, err = m.ExportZoom(1, 1)
		assert.ErrorIs(t, err, matrix.ErrVariant)
	}
}

var errStop = errors.New("stop")

func TestAtomic_RollsBackOnError(t *testing.T) {
	m, a, b, _ := symFixture(t)
	before := m.Document()
	depth := matrix.HistoryLenForTest(m)

	err := m.Atomic(func() error {
		if err := m.RenameItem(a, "tmp"); err != nil {
			return err
		}
		if err := m.DeleteItem(b); err != nil {
			return err
		}
		return errStop
	})
	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, before, m.Document())
	assert.Equal(t, depth, matrix.HistoryLenForTest(m))
}

func TestAtomic_SingleUndo(t *testing.T) {
	m, a, b, _ := symFixture(t)
	before := m.Document()

	require.NoError(t, m.Atomic(func() error {
		if err := m.RenameItem(a, "one"); err != nil {
			return err
		}
		assert.ErrorIs(t, m.Undo(), matrix.ErrInAction)
		return m.RenameItem(b, "two")
	}))
	require.NoError(t, m.Undo())
	assert.Equal(t, before, m.Document())
}

func TestSnapshot_IsIndependent(t *testing.T) {
	m, a, _, _ := symFixture(t)
	snap := m.Snapshot()
	require.NoError(t, m.DeleteItem(a))

	_, ok := snap.Item(a)
	assert.True(t, ok)
	assert.Equal(t, 2, snap.ConnectionCount())
}

func TestVariant_Text(t *testing.T) {
	v, err := matrix.ParseVariant("Multi-Domain")
	require.NoError(t, err)
	assert.Equal(t, matrix.MultiDomain, v)
	b, err := matrix.Asymmetric.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "asymmetric", string(b))
	_, err = matrix.ParseVariant("diagonal")
	assert.ErrorIs(t, err, matrix.ErrUnknownVariant)
}
