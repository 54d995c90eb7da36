// Package history implements a reversible command log with checkpoint
// boundaries.
//
// Every mutation is a Change: an Apply step and its exact inverse Revert.
// Record runs Apply and pushes the change; MarkCheckpoint closes one logical
// user action so that UndoToCheckpoint/RedoToCheckpoint move whole actions.
//
// Undo walks back from the top of the log reverting changes until the next
// checkpoint boundary below is reached; the first reverted change may itself
// be a checkpoint. Redo replays changes until it has re-applied a checkpoint.
//
// Errors:
//
//	ErrRevert - a change failed to revert; the log is left at the failing change.
//	ErrReapply - a change failed to re-apply during redo.
//
// Concurrency: none. A Stack is owned by the same goroutine as its target.
package history

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrRevert wraps a failure raised by Change.Revert.
	ErrRevert = errors.New("history: revert failed")

	// ErrReapply wraps a failure raised by Change.Apply during redo.
	ErrReapply = errors.New("history: re-apply failed")
)

// Change is one reversible mutation of T.
type Change[T any] interface {
	// Apply performs the mutation.
	Apply(target T) error
	// Revert undoes exactly what Apply did.
	Revert(target T) error
}

// Func adapts a pair of closures to Change.
type Func[T any] struct {
	Do   func(T) error
	Undo func(T) error
}

// Apply implements Change.
func (f Func[T]) Apply(target T) error { return f.Do(target) }

// Revert implements Change.
func (f Func[T]) Revert(target T) error { return f.Undo(target) }

// entry is a logged change plus its checkpoint flag.
type entry[T any] struct {
	change     Change[T]
	checkpoint bool
}

// Stack is the undo/redo log for a target of type T.
type Stack[T any] struct {
	target T
	undo   []entry[T]
	redo   []entry[T]
}

// New returns an empty Stack bound to target.
func New[T any](target T) *Stack[T] {
	return &Stack[T]{target: target}
}

// Record applies c and pushes it on the undo log, clearing the redo log.
// If Apply fails nothing is pushed and the error is returned unchanged.
func (s *Stack[T]) Record(c Change[T]) error {
	if err := c.Apply(s.target); err != nil {
		return err
	}
	s.undo = append(s.undo, entry[T]{change: c})
	s.redo = s.redo[:0]

	return nil
}

// MarkCheckpoint flags the most recent change as the end of a logical action.
// It is a no-op on an empty log.
func (s *Stack[T]) MarkCheckpoint() {
	if n := len(s.undo); n > 0 {
		s.undo[n-1].checkpoint = true
	}
}

// UndoToCheckpoint reverts the most recent logical action and moves its
// changes onto the redo log. An empty log is a no-op.
func (s *Stack[T]) UndoToCheckpoint() error {
	for iter := 0; len(s.undo) > 0; iter++ {
		top := s.undo[len(s.undo)-1]
		if iter > 0 && top.checkpoint {
			break
		}
		if err := top.change.Revert(s.target); err != nil {
			return fmt.Errorf("%w: %v", ErrRevert, err)
		}
		s.undo = s.undo[:len(s.undo)-1]
		s.redo = append(s.redo, top)
	}

	return nil
}

// RedoToCheckpoint re-applies the most recently undone logical action.
// An empty redo log is a no-op.
func (s *Stack[T]) RedoToCheckpoint() error {
	for len(s.redo) > 0 {
		top := s.redo[len(s.redo)-1]
		if err := top.change.Apply(s.target); err != nil {
			return fmt.Errorf("%w: %v", ErrReapply, err)
		}
		s.redo = s.redo[:len(s.redo)-1]
		s.undo = append(s.undo, top)
		if top.checkpoint {
			break
		}
	}

	return nil
}

// CanUndo reports whether the undo log is non-empty.
func (s *Stack[T]) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether the redo log is non-empty.
func (s *Stack[T]) CanRedo() bool { return len(s.redo) > 0 }

// Len returns the number of changes on the undo log.
func (s *Stack[T]) Len() int { return len(s.undo) }

// Rollback reverts and discards every change above depth (as returned by Len
// before a multi-step action started). Discarded changes never reach the redo
// log. Used to abandon a half-applied action.
func (s *Stack[T]) Rollback(depth int) error {
	if depth < 0 {
		depth = 0
	}
	for len(s.undo) > depth {
		top := s.undo[len(s.undo)-1]
		if err := top.change.Revert(s.target); err != nil {
			return fmt.Errorf("%w: %v", ErrRevert, err)
		}
		s.undo = s.undo[:len(s.undo)-1]
	}

	return nil
}

// Clear drops both logs without touching the target.
func (s *Stack[T]) Clear() {
	s.undo = nil
	s.redo = nil
}
