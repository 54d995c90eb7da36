package history_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dsm/history"
)

// counter is a trivial mutation target.
type counter struct{ v []int }

// push appends x on Apply and pops it on Revert.
func push(x int) history.Change[*counter] {
	return history.Func[*counter]{
		Do:   func(c *counter) error { c.v = append(c.v, x); return nil },
		Undo: func(c *counter) error { c.v = c.v[:len(c.v)-1]; return nil },
	}
}

var errBoom = errors.New("boom")

func TestRecord_FailingApplyPushesNothing(t *testing.T) {
	c := &counter{}
	s := history.New(c)

	err := s.Record(history.Func[*counter]{
		Do:   func(*counter) error { return errBoom },
		Undo: func(*counter) error { return nil },
	})
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, s.CanUndo())
	assert.Zero(t, s.Len())
}

func TestUndoRedo_CheckpointBoundaries(t *testing.T) {
	c := &counter{}
	s := history.New(c)

	// action 1: single change
	require.NoError(t, s.Record(push(1)))
	s.MarkCheckpoint()
	// action 2: three changes
	require.NoError(t, s.Record(push(2)))
	require.NoError(t, s.Record(push(3)))
	require.NoError(t, s.Record(push(4)))
	s.MarkCheckpoint()

	require.NoError(t, s.UndoToCheckpoint())
	assert.Equal(t, []int{1}, c.v)
	assert.True(t, s.CanRedo())

	require.NoError(t, s.UndoToCheckpoint())
	assert.Empty(t, c.v)
	assert.False(t, s.CanUndo())

	// empty log is a no-op
	require.NoError(t, s.UndoToCheckpoint())
	assert.Empty(t, c.v)

	require.NoError(t, s.RedoToCheckpoint())
	assert.Equal(t, []int{1}, c.v)
	require.NoError(t, s.RedoToCheckpoint())
	assert.Equal(t, []int{1, 2, 3, 4}, c.v)
	assert.False(t, s.CanRedo())
	require.NoError(t, s.RedoToCheckpoint())
	assert.Equal(t, []int{1, 2, 3, 4}, c.v)
}

func TestRecord_ClearsRedo(t *testing.T) {
	c := &counter{}
	s := history.New(c)
	require.NoError(t, s.Record(push(1)))
	s.MarkCheckpoint()
	require.NoError(t, s.UndoToCheckpoint())
	require.True(t, s.CanRedo())

	require.NoError(t, s.Record(push(9)))
	s.MarkCheckpoint()
	assert.False(t, s.CanRedo())
	assert.Equal(t, []int{9}, c.v)
}

func TestRollback_DiscardsAboveDepth(t *testing.T) {
	c := &counter{}
	s := history.New(c)
	require.NoError(t, s.Record(push(1)))
	s.MarkCheckpoint()

	depth := s.Len()
	require.NoError(t, s.Record(push(2)))
	require.NoError(t, s.Record(push(3)))
	require.NoError(t, s.Rollback(depth))

	assert.Equal(t, []int{1}, c.v)
	assert.Equal(t, depth, s.Len())
	assert.False(t, s.CanRedo())
}

func TestUndo_RevertErrorIsWrapped(t *testing.T) {
	c := &counter{}
	s := history.New(c)
	require.NoError(t, s.Record(history.Func[*counter]{
		Do:   func(*counter) error { return nil },
		Undo: func(*counter) error { return errBoom },
	}))
	s.MarkCheckpoint()

	err := s.UndoToCheckpoint()
	assert.ErrorIs(t, err, history.ErrRevert)
	assert.True(t, s.CanUndo(), "failing change stays on the log")
}

func TestClear(t *testing.T) {
	c := &counter{}
	s := history.New(c)
	require.NoError(t, s.Record(push(1)))
	s.Clear()
	assert.False(t, s.CanUndo())
	assert.Equal(t, []int{1}, c.v)
}
