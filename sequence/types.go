// File: types.go
// Role: sentinel errors, options and Result of DSM partitioning.

package sequence

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
)

// Visitation states of the depth-first walk.
const (
	White = iota // not visited yet
	Gray         // on the walk stack
	Black        // finished
)

var (
	// ErrSourceNil is returned when a nil Source is passed.
	ErrSourceNil = errors.New("sequence: source is nil")

	// ErrNotAliased indicates an Asymmetric matrix; partitioning needs one
	// logical item per row/column pair.
	ErrNotAliased = errors.New("sequence: matrix has no row/column aliases")

	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("sequence: invalid option value")

	// ErrStaleResult indicates a Result references items the matrix no
	// longer holds.
	ErrStaleResult = errors.New("sequence: result does not match matrix")
)

// Source is the read-only view Partition walks. *matrix.Matrix satisfies it.
type Source interface {
	Variant() matrix.Variant
	Rows() []core.Item
	Item(id core.ID) (core.Item, bool)
	RowConnections(row core.ID) []core.Connection
}

// Option configures Partition.
type Option func(*Options)

// Options holds the settings of one Partition call.
type Options struct {
	// Ctx allows cancellation; checked on every visit.
	Ctx context.Context
	// MinWeight ignores connections lighter than this.
	MinWeight float64

	err error
}

// DefaultOptions returns Background context and no weight threshold.
func DefaultOptions() Options {
	return Options{Ctx: context.Background(), MinWeight: math.Inf(-1)}
}

// WithContext sets the cancellation context. nil keeps Background.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMinWeight ignores connections with weight below w. NaN is rejected.
func WithMinWeight(w float64) Option {
	return func(o *Options) {
		if math.IsNaN(w) {
			o.err = fmt.Errorf("%w: min weight is NaN", ErrOptionViolation)

			return
		}
		o.MinWeight = w
	}
}

// Result is a partitioned ordering of logical items (row ids).
//   - Blocks lists coupled blocks in sequence order: every block depends
//     only on itself and on blocks before it.
//   - Members of a block keep their previous relative order.
type Result struct {
	Blocks [][]core.ID
}

// Order flattens Blocks into the full item sequence.
func (r *Result) Order() []core.ID {
	var out []core.ID
	for _, b := range r.Blocks {
		out = append(out, b...)
	}

	return out
}

// Loops returns the blocks of two or more mutually dependent items.
func (r *Result) Loops() [][]core.ID {
	var out [][]core.ID
	for _, b := range r.Blocks {
		if len(b) > 1 {
			out = append(out, b)
		}
	}

	return out
}

// Acyclic reports whether no item depends on itself through others.
func (r *Result) Acyclic() bool { return len(r.Loops()) == 0 }
