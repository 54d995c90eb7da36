// Package propagation computes how a change to one DSM item ripples through
// its connections, level by level.
//
// The walk alternates sides: from a row item it follows the row's
// connections to columns, from a column item it follows the connections
// pointing into that column back to rows. Which side a level uses depends
// on the start item's role and the level's parity.
package propagation

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/dsm/core"
)

var tracer = otel.Tracer("dsm.propagation")

// walker encapsulates mutable propagation state.
type walker struct {
	src      Source
	opts     Options
	ctx      context.Context
	start    core.ID
	startRow bool
	frontier []core.ID
	res      *Result
}

// Analyze runs exactly N levels of propagation from start.
//
// At each level, every connection incident to a frontier item on the
// level's side with weight >= MinWeight adds to the score of the item on
// the other side (weight or 1, per Mode).
//
// The start item never scores, at any level, and connections leading back
// to it are skipped. Editors that merely exclude the start from the frontier
// still credit such back-connections to the start; here a loop through the
// start contributes nothing, so a chain start→a with no further row-side
// connections yields an empty level 2.
// A scored item joins the next frontier once per level unless it is
// excluded or is the start item.
//
// Returns ErrSourceNil, ErrStartNotFound, ErrOptionViolation, or the
// context error when cancelled between levels.
//
// Complexity: O(N·E) worst case.
func Analyze(src Source, start core.ID, opts ...Option) (*Result, error) {
	if src == nil {
		return nil, ErrSourceNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	it, ok := src.Item(start)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrStartNotFound, start)
	}

	ctx, span := tracer.Start(o.Ctx, "propagation.Analyze",
		trace.WithAttributes(
			attribute.Int64("start", int64(start)),
			attribute.Int("levels", o.Levels),
			attribute.String("mode", o.Mode.String()),
			attribute.Float64("min_weight", o.MinWeight),
		),
	)
	defer span.End()

	w := &walker{
		src:      src,
		opts:     o,
		ctx:      ctx,
		start:    start,
		startRow: it.Role == core.RoleRow,
		frontier: []core.ID{start},
		res:      &Result{Start: start, Levels: make(map[int]map[core.ID]float64, o.Levels)},
	}
	if err := w.loop(); err != nil {
		span.AddEvent("cancelled", trace.WithAttributes(attribute.Int("levels_done", len(w.res.Levels))))

		return nil, err
	}

	scored := len(w.res.Totals())
	span.SetAttributes(attribute.Int("items_scored", scored))
	o.Logger.Debug("propagation analyzed",
		slog.Int64("start", int64(start)),
		slog.Int("levels", o.Levels),
		slog.Int("scored", scored),
	)

	return w.res, nil
}

// loop computes every level, checking for cancellation between levels.
func (w *walker) loop() error {
	for level := 1; level <= w.opts.Levels; level++ {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		w.frontier = w.step(level)
	}

	return nil
}

// rowSide reports whether level follows row connections: odd levels from a
// row start, even levels from a column start.
func (w *walker) rowSide(level int) bool {
	return (level%2 == 1) == w.startRow
}

// step scores one level and returns the next frontier.
func (w *walker) step(level int) []core.ID {
	scores := make(map[core.ID]float64)
	w.res.Levels[level] = scores
	var next []core.ID
	queued := make(map[core.ID]struct{})
	rowSide := w.rowSide(level)

	for _, id := range w.frontier {
		var conns []core.Connection
		if rowSide {
			conns = w.src.RowConnections(id)
		} else {
			conns = w.src.ColConnections(id)
		}
		for _, c := range conns {
			if c.Weight < w.opts.MinWeight {
				continue
			}
			other := c.Col
			if !rowSide {
				other = c.Row
			}
			if other == w.start {
				continue
			}
			if w.opts.Mode == ModeCount {
				scores[other]++
			} else {
				scores[other] += c.Weight
			}
			if _, ex := w.opts.Exclusions[other]; ex {
				continue
			}
			if _, dup := queued[other]; !dup {
				queued[other] = struct{}{}
				next = append(next, other)
			}
		}
	}

	return next
}
