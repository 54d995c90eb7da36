package cluster_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dsm/builder"
	"github.com/katalvlaran/dsm/cluster"
	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
)

var quiet = matrix.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

// greedy disables the random moves.
func greedy() cluster.Params {
	p := cluster.DefaultParams()
	p.RandAccept, p.RandBid = 0, 0

	return p
}

// blocks returns a problem of two fully connected blocks of size k with no
// weight between them.
func blocks(t *testing.T, k int) *cluster.Problem {
	t.Helper()
	n := 2 * k
	ids := make([]core.ID, n)
	w := make([][]float64, n)
	for i := range w {
		ids[i] = core.ID(i + 1)
		w[i] = make([]float64, n)
		for j := range w[i] {
			if i < j && i/k == j/k {
				w[i][j] = 1
			}
		}
	}
	p, err := cluster.NewProblem(ids, w)
	require.NoError(t, err)

	return p
}

func TestCoordinationScore_TwoItems(t *testing.T) {
	p, err := cluster.NewProblem([]core.ID{1, 2}, [][]float64{{0, 5}, {0, 0}})
	require.NoError(t, err)
	params := cluster.DefaultParams()

	together, err := cluster.CoordinationScore(p, []int{0, 0}, params)
	require.NoError(t, err)
	split, err := cluster.CoordinationScore(p, []int{0, 1}, params)
	require.NoError(t, err)
	assert.Less(t, together, split)
	assert.Equal(t, 10.0, together)
	assert.Equal(t, 20.0, split)

	relabeled, err := cluster.CoordinationScore(p, []int{7, 7}, params)
	require.NoError(t, err)
	assert.Equal(t, together, relabeled, "only label equality matters")
}

func TestCoordinationScore_Errors(t *testing.T) {
	p, err := cluster.NewProblem([]core.ID{1, 2}, [][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)

	_, err = cluster.CoordinationScore(nil, nil, cluster.DefaultParams())
	assert.ErrorIs(t, err, cluster.ErrNilProblem)
	_, err = cluster.CoordinationScore(p, []int{0}, cluster.DefaultParams())
	assert.ErrorIs(t, err, cluster.ErrDimensionMismatch)
	bad := cluster.DefaultParams()
	bad.Passes = 0
	_, err = cluster.CoordinationScore(p, []int{0, 0}, bad)
	assert.ErrorIs(t, err, cluster.ErrInvalidParams)
}

func TestNewProblem_Rejects(t *testing.T) {
	_, err := cluster.NewProblem([]core.ID{1}, [][]float64{{0}, {0}})
	assert.ErrorIs(t, err, cluster.ErrDimensionMismatch)
	_, err = cluster.NewProblem([]core.ID{1, 2}, [][]float64{{0, -1}, {0, 0}})
	assert.ErrorIs(t, err, cluster.ErrInvalidWeight)
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, cluster.DefaultParams().Validate())
	for name, mut := range map[string]func(*cluster.Params){
		"rand accept > 1": func(p *cluster.Params) { p.RandAccept = 1.5 },
		"negative pow":    func(p *cluster.Params) { p.PowDep = -1 },
		"penalty < 1":     func(p *cluster.Params) { p.ExtraPenalty = 0.5 },
		"negative cap":    func(p *cluster.Params) { p.MaxClusterSize = -1 },
	} {
		p := cluster.DefaultParams()
		mut(&p)
		assert.ErrorIs(t, p.Validate(), cluster.ErrInvalidParams, name)
	}
}

func TestRun_TwoItemsMerge(t *testing.T) {
	p, err := cluster.NewProblem([]core.ID{1, 2}, [][]float64{{0, 5}, {0, 0}})
	require.NoError(t, err)

	res, err := cluster.Run(context.Background(), p, cluster.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, [][]core.ID{{1, 2}}, res.Clusters)
	assert.Equal(t, 10.0, res.Cost)
	assert.False(t, res.Cancelled)
}

func TestRun_FindsPlantedBlocks(t *testing.T) {
	p := blocks(t, 4)

	res, err := cluster.Run(context.Background(), p, greedy())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1, 1}, res.Assignment)
	assert.Equal(t, 48.0, res.Cost)
	assert.Positive(t, res.Moves)
}

func TestRun_MaxClusterSize(t *testing.T) {
	p := blocks(t, 4)
	params := greedy()
	params.MaxClusterSize = 2

	res, err := cluster.Run(context.Background(), p, params)
	require.NoError(t, err)
	for _, c := range res.Clusters {
		assert.LessOrEqual(t, len(c), 2)
	}
}

func TestRun_Deterministic(t *testing.T) {
	p := blocks(t, 5)
	params := cluster.DefaultParams()
	params.Seed = 42

	a, err := cluster.Run(context.Background(), p, params)
	require.NoError(t, err)
	b, err := cluster.Run(context.Background(), p, params)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRun_Cancelled(t *testing.T) {
	p := blocks(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := cluster.Run(ctx, p, cluster.DefaultParams())
	require.NoError(t, err)
	assert.True(t, res.Cancelled)
	assert.Zero(t, res.Passes)
	assert.Len(t, res.Clusters, 6, "best so far is the starting partition")
}

func TestRun_UsesInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	params := greedy()
	params.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := cluster.RunRestarts(context.Background(), blocks(t, 3), params, 2)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "cluster run finished")
	assert.Contains(t, buf.String(), "cluster restarts finished")
	require.NoError(t, params.Validate(), "a logger does not affect validation")
}

func TestRun_Errors(t *testing.T) {
	_, err := cluster.Run(context.Background(), nil, cluster.DefaultParams())
	assert.ErrorIs(t, err, cluster.ErrNilProblem)

	bad := cluster.DefaultParams()
	bad.RandBid = 2
	_, err = cluster.Run(context.Background(), blocks(t, 1), bad)
	assert.ErrorIs(t, err, cluster.ErrInvalidParams)
}

func TestRunRestarts(t *testing.T) {
	p := blocks(t, 4)

	res, err := cluster.RunRestarts(context.Background(), p, cluster.DefaultParams(), 4)
	require.NoError(t, err)
	assert.Equal(t, 48.0, res.Cost)

	again, err := cluster.RunRestarts(context.Background(), p, cluster.DefaultParams(), 4)
	require.NoError(t, err)
	assert.Equal(t, res, again, "independent of scheduling")

	_, err = cluster.RunRestarts(context.Background(), p, cluster.DefaultParams(), 0)
	assert.ErrorIs(t, err, cluster.ErrInvalidParams)
}

func TestRunRestarts_PlantedFixture(t *testing.T) {
	m, err := builder.Build(nil, matrix.Symmetric,
		[]builder.BuilderOption{builder.WithMatrixOptions(quiet)},
		builder.Blocks(3, 4, 1, 0),
	)
	require.NoError(t, err)
	p, err := cluster.FromMatrix(m, greedy())
	require.NoError(t, err)

	res, err := cluster.RunRestarts(context.Background(), p, greedy(), 3)
	require.NoError(t, err)
	require.Len(t, res.Clusters, 3)
	for _, c := range res.Clusters {
		assert.Len(t, c, 4)
	}
}

// blockMatrix builds a symmetric matrix with two connected triples.
func blockMatrix(t *testing.T) (*matrix.Matrix, []core.ID) {
	t.Helper()
	m, err := matrix.New(core.NewSession(), matrix.Symmetric, quiet)
	require.NoError(t, err)
	ids := make([]core.ID, 6)
	for i, name := range []string{"a", "x", "b", "y", "c", "z"} {
		ids[i], err = m.CreateItem(core.RoleRow, name)
		require.NoError(t, err)
	}
	link := func(r, c core.ID) {
		col, _ := m.Item(c)
		require.NoError(t, m.ModifyConnection(r, col.Alias, "", 3, nil))
	}
	// a,b,c and x,y,z interleaved by sort index
	link(ids[0], ids[2])
	link(ids[2], ids[4])
	link(ids[4], ids[0])
	link(ids[1], ids[3])
	link(ids[3], ids[5])
	link(ids[5], ids[1])

	return m, ids
}

func TestFromMatrix(t *testing.T) {
	m, ids := blockMatrix(t)
	col, _ := m.Item(ids[0])
	require.NoError(t, m.ModifyConnection(ids[2], col.Alias, "", 1, nil))

	p, err := cluster.FromMatrix(m, cluster.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, ids, p.Items())
	assert.Equal(t, 4.0, p.Weight(0, 2), "both directions summed")
	assert.Equal(t, 4.0, p.Weight(2, 0))
	assert.Zero(t, p.Weight(0, 1))

	counts := cluster.DefaultParams()
	counts.CountByWeight = false
	p, err = cluster.FromMatrix(m, counts)
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.Weight(0, 2))

	asym, err := matrix.New(core.NewSession(), matrix.Asymmetric, quiet)
	require.NoError(t, err)
	_, err = cluster.FromMatrix(asym, cluster.DefaultParams())
	assert.ErrorIs(t, err, cluster.ErrNotSymmetric)
}

func TestApply(t *testing.T) {
	m, ids := blockMatrix(t)
	before := m.Document()
	p, err := cluster.FromMatrix(m, greedy())
	require.NoError(t, err)
	res, err := cluster.Run(context.Background(), p, greedy())
	require.NoError(t, err)
	require.Len(t, res.Clusters, 2)

	require.NoError(t, cluster.Apply(m, res))

	g, ok := m.GroupingOf(ids[0])
	require.True(t, ok)
	assert.Equal(t, "Cluster 1", g.Name)
	g, _ = m.GroupingOf(ids[1])
	assert.Equal(t, "Cluster 2", g.Name)

	rows := m.Rows()
	matrix.SortItems(rows)
	var names []string
	for i, r := range rows {
		assert.Equal(t, float64(i+1), r.SortIndex)
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"a", "b", "c", "x", "y", "z"}, names)

	require.NoError(t, m.Undo())
	assert.Equal(t, before, m.Document(), "one undo reverts the whole application")
}

func TestApply_Rejects(t *testing.T) {
	m, ids := blockMatrix(t)
	p, err := cluster.FromMatrix(m, greedy())
	require.NoError(t, err)
	res, err := cluster.Run(context.Background(), p, greedy())
	require.NoError(t, err)

	require.NoError(t, m.DeleteItem(ids[0]))
	before := m.Document()
	assert.ErrorIs(t, cluster.Apply(m, res), cluster.ErrStaleResult)
	assert.Equal(t, before, m.Document())
	assert.ErrorIs(t, cluster.Apply(nil, res), matrix.ErrNilMatrix)
}
