// Package propagation provides options, results and error definitions for
// level-synchronous dependency propagation over a DSM.
package propagation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/katalvlaran/dsm/core"
)

// Sentinel errors for propagation analysis.
var (
	// ErrSourceNil is returned if a nil Source is passed.
	ErrSourceNil = errors.New("propagation: source is nil")

	// ErrStartNotFound is returned when the start item is absent.
	ErrStartNotFound = errors.New("propagation: start item not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("propagation: invalid option supplied")
)

// Source is the read-only view the analysis walks. *core.Store and
// *matrix.Matrix both satisfy it.
type Source interface {
	Item(id core.ID) (core.Item, bool)
	RowConnections(id core.ID) []core.Connection
	ColConnections(id core.ID) []core.Connection
}

// Mode selects how a connection contributes to a score.
type Mode uint8

const (
	// ModeWeight adds the connection weight.
	ModeWeight Mode = iota + 1
	// ModeCount adds one per connection.
	ModeCount
)

// String returns "weight" or "count".
func (m Mode) String() string {
	switch m {
	case ModeWeight:
		return "weight"
	case ModeCount:
		return "count"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses "weight" or "count".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "weight":
		return ModeWeight, nil
	case "count":
		return ModeCount, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrOptionViolation, s)
	}
}

// DefaultLevels is the level count used when WithLevels is not given.
const DefaultLevels = 2

// Option configures Analyze via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when
// Analyze is invoked.
type Option func(*Options)

// Options holds the parameters of one analysis.
type Options struct {
	// Ctx allows cancellation between levels.
	Ctx context.Context

	// Levels is the exact number of levels computed (>= 1).
	Levels int

	// Exclusions still score but never propagate.
	Exclusions map[core.ID]struct{}

	// MinWeight skips connections lighter than it.
	MinWeight float64

	// Mode selects weight or count aggregation.
	Mode Mode

	// Logger receives the run summary at debug level.
	Logger *slog.Logger

	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - DefaultLevels levels
//   - no exclusions, MinWeight 0
//   - ModeWeight
//   - slog.Default().
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		Levels:     DefaultLevels,
		Exclusions: map[core.ID]struct{}{},
		Mode:       ModeWeight,
		Logger:     slog.Default(),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLevels sets the level count. n < 1 is an ErrOptionViolation.
func WithLevels(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: levels must be >= 1 (%d)", ErrOptionViolation, n)

			return
		}
		o.Levels = n
	}
}

// WithExclusions adds items that may score but do not propagate further.
func WithExclusions(ids ...core.ID) Option {
	return func(o *Options) {
		for _, id := range ids {
			o.Exclusions[id] = struct{}{}
		}
	}
}

// WithMinWeight sets the weight threshold. NaN is an ErrOptionViolation.
func WithMinWeight(w float64) Option {
	return func(o *Options) {
		if math.IsNaN(w) {
			o.err = fmt.Errorf("%w: min weight is NaN", ErrOptionViolation)

			return
		}
		o.MinWeight = w
	}
}

// WithMode selects the aggregation mode.
func WithMode(m Mode) Option {
	return func(o *Options) {
		if m != ModeWeight && m != ModeCount {
			o.err = fmt.Errorf("%w: %s", ErrOptionViolation, m)

			return
		}
		o.Mode = m
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Result holds the scores of one analysis.
//   - Levels maps 1..N to the scores reached at that level; every level is
//     present even when the frontier emptied early.
type Result struct {
	Start  core.ID
	Levels map[int]map[core.ID]float64
}

// Score is one ranked entry of Result.Ranked.
type Score struct {
	Item  core.ID
	Value float64
}

// Totals sums every item's score across all levels.
func (r *Result) Totals() map[core.ID]float64 {
	out := make(map[core.ID]float64)
	for _, lvl := range r.Levels {
		for id, v := range lvl {
			out[id] += v
		}
	}

	return out
}

// Ranked returns Totals ordered by descending score, ties by ascending id.
func (r *Result) Ranked() []Score {
	totals := r.Totals()
	out := make([]Score, 0, len(totals))
	for id, v := range totals {
		out = append(out, Score{Item: id, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}

		return out[i].Item < out[j].Item
	})

	return out
}
