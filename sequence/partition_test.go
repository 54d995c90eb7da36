package sequence_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
	"github.com/katalvlaran/dsm/sequence"
)

var quiet = matrix.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

// fixture builds a symmetric matrix named items in order and returns
// a depends(a, b) helper recording "a depends on b".
func fixture(t *testing.T, names ...string) (*matrix.Matrix, map[string]core.ID, func(a, b string, w float64)) {
	t.Helper()
	m, err := matrix.New(core.NewSession(), matrix.Symmetric, quiet)
	require.NoError(t, err)
	ids := make(map[string]core.ID, len(names))
	for _, n := range names {
		ids[n], err = m.CreateItem(core.RoleRow, n)
		require.NoError(t, err)
	}
	depends := func(a, b string, w float64) {
		col, _ := m.Item(ids[b])
		require.NoError(t, m.ModifyConnection(ids[a], col.Alias, "", w, nil))
	}

	return m, ids, depends
}

func names(m *matrix.Matrix, blocks [][]core.ID) [][]string {
	out := make([][]string, len(blocks))
	for i, b := range blocks {
		for _, id := range b {
			it, _ := m.Item(id)
			out[i] = append(out[i], it.Name)
		}
	}

	return out
}

func TestPartition_Chain(t *testing.T) {
	m, _, depends := fixture(t, "assemble", "machine", "design")
	depends("assemble", "machine", 1)
	depends("machine", "design", 1)

	res, err := sequence.Partition(m)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"design"}, {"machine"}, {"assemble"}}, names(m, res.Blocks))
	assert.True(t, res.Acyclic())
}

func TestPartition_Loop(t *testing.T) {
	m, _, depends := fixture(t, "a", "b", "c", "d")
	depends("b", "c", 1)
	depends("c", "b", 1)
	depends("d", "b", 1)
	depends("b", "a", 1)

	res, err := sequence.Partition(m)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"b", "c"}, {"d"}}, names(m, res.Blocks))
	assert.Equal(t, [][]string{{"b", "c"}}, names(m, res.Loops()))
	assert.False(t, res.Acyclic())
	assert.Len(t, res.Order(), 4)
}

func TestPartition_MinWeight(t *testing.T) {
	m, _, depends := fixture(t, "a", "b")
	depends("a", "b", 5)
	depends("b", "a", 0.5)

	res, err := sequence.Partition(m)
	require.NoError(t, err)
	assert.Len(t, res.Loops(), 1)

	res, err = sequence.Partition(m, sequence.WithMinWeight(1))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"b"}, {"a"}}, names(m, res.Blocks))
}

func TestPartition_Errors(t *testing.T) {
	_, err := sequence.Partition(nil)
	assert.ErrorIs(t, err, sequence.ErrSourceNil)

	asym, err := matrix.New(core.NewSession(), matrix.Asymmetric, quiet)
	require.NoError(t, err)
	_, err = sequence.Partition(asym)
	assert.ErrorIs(t, err, sequence.ErrNotAliased)

	m, _, _ := fixture(t, "a")
	_, err = sequence.Partition(m, sequence.WithMinWeight(math.NaN()))
	assert.ErrorIs(t, err, sequence.ErrOptionViolation)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sequence.Partition(m, sequence.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApply(t *testing.T) {
	m, ids, depends := fixture(t, "assemble", "machine", "design")
	depends("assemble", "machine", 1)
	depends("machine", "design", 1)
	before := m.Document()

	res, err := sequence.Partition(m)
	require.NoError(t, err)
	require.NoError(t, sequence.Apply(m, res))

	design, _ := m.Item(ids["design"])
	assemble, _ := m.Item(ids["assemble"])
	assert.Equal(t, 1.0, design.SortIndex)
	assert.Equal(t, 3.0, assemble.SortIndex)
	col, _ := m.Item(design.Alias)
	assert.Equal(t, 1.0, col.SortIndex, "alias follows")

	again, err := sequence.Partition(m)
	require.NoError(t, err)
	assert.Equal(t, res, again, "sequencing is a fixed point")

	require.NoError(t, m.Undo())
	assert.Equal(t, before, m.Document())

	require.NoError(t, m.DeleteItem(ids["machine"]))
	assert.ErrorIs(t, sequence.Apply(m, res), sequence.ErrStaleResult)
	assert.ErrorIs(t, sequence.Apply(nil, res), matrix.ErrNilMatrix)
}
