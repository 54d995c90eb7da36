// File: partition.go
// Role: Tarjan strongly connected components over the dependency graph,
// emitted in dependency order, and Apply.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)     (walk stack and per-item state)

package sequence

import (
	"fmt"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
)

var tracer = otel.Tracer("dsm.sequence")

// partitioner encapsulates the state of one walk.
type partitioner struct {
	src   Source
	opts  Options
	pos   map[core.ID]int // current display position of every row
	state map[core.ID]int // White, Gray, Black
	index map[core.ID]int // discovery index
	low   map[core.ID]int // lowest index reachable
	stack []core.ID
	next  int
	out   [][]core.ID
}

// Partition computes the coupled blocks of src in dependency order.
// Rows are visited in display order and dependencies in the display order
// of their targets, so the result is deterministic.
func Partition(src Source, options ...Option) (*Result, error) {
	if src == nil {
		return nil, ErrSourceNil
	}
	if !src.Variant().Aliased() {
		return nil, fmt.Errorf("%w: %s", ErrNotAliased, src.Variant())
	}
	opts := DefaultOptions()
	for _, opt := range options {
		opt(&opts)
	}
	if opts.err != nil {
		return nil, opts.err
	}

	rows := src.Rows()
	matrix.SortItems(rows)
	_, span := tracer.Start(opts.Ctx, "sequence.Partition",
		trace.WithAttributes(attribute.Int("rows", len(rows))))
	defer span.End()

	p := &partitioner{
		src:   src,
		opts:  opts,
		pos:   make(map[core.ID]int, len(rows)),
		state: make(map[core.ID]int, len(rows)),
		index: make(map[core.ID]int, len(rows)),
		low:   make(map[core.ID]int, len(rows)),
	}
	for i, r := range rows {
		p.pos[r.ID] = i
	}
	for _, r := range rows {
		if p.state[r.ID] == White {
			if err := p.visit(r.ID); err != nil {
				span.AddEvent("cancelled", trace.WithAttributes(attribute.Int("blocks_done", len(p.out))))

				return nil, err
			}
		}
	}
	res := &Result{Blocks: p.out}
	span.SetAttributes(
		attribute.Int("blocks", len(res.Blocks)),
		attribute.Int("loops", len(res.Loops())),
	)

	return res, nil
}

// visit walks from row id. Components are emitted when their root
// finishes, which is after every component they depend on.
func (p *partitioner) visit(id core.ID) error {
	select {
	case <-p.opts.Ctx.Done():
		return p.opts.Ctx.Err()
	default:
	}
	p.state[id] = Gray
	p.index[id], p.low[id] = p.next, p.next
	p.next++
	p.stack = append(p.stack, id)

	for _, dep := range p.dependencies(id) {
		switch p.state[dep] {
		case White:
			if err := p.visit(dep); err != nil {
				return err
			}
			p.low[id] = min(p.low[id], p.low[dep])
		case Gray:
			p.low[id] = min(p.low[id], p.index[dep])
		}
	}

	if p.low[id] == p.index[id] {
		var block []core.ID
		for {
			top := p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			p.state[top] = Black
			block = append(block, top)
			if top == id {
				break
			}
		}
		sort.Slice(block, func(i, j int) bool { return p.pos[block[i]] < p.pos[block[j]] })
		p.out = append(p.out, block)
	}

	return nil
}

// dependencies returns the rows id depends on, in display order.
func (p *partitioner) dependencies(id core.ID) []core.ID {
	var deps []core.ID
	for _, c := range p.src.RowConnections(id) {
		if c.Weight < p.opts.MinWeight {
			continue
		}
		col, ok := p.src.Item(c.Col)
		if !ok || col.Alias == core.NoID || col.Alias == id {
			continue
		}
		if _, known := p.pos[col.Alias]; known {
			deps = append(deps, col.Alias)
		}
	}
	sort.Slice(deps, func(i, j int) bool { return p.pos[deps[i]] < p.pos[deps[j]] })

	return deps
}

// Apply rewrites the sort indices of m to 1..n in res order as one
// undoable action. Items of m missing from res keep their relative order
// after the sequenced ones.
func Apply(m *matrix.Matrix, res *Result) error {
	if m == nil {
		return matrix.ErrNilMatrix
	}
	if res == nil {
		return fmt.Errorf("%w: nil result", ErrStaleResult)
	}
	order := res.Order()
	seen := make(map[core.ID]bool, len(order))
	for _, id := range order {
		it, ok := m.Item(id)
		if !ok || it.Role != core.RoleRow {
			return fmt.Errorf("%w: item %d", ErrStaleResult, id)
		}
		seen[id] = true
	}
	rest := m.Rows()
	matrix.SortItems(rest)
	for _, it := range rest {
		if !seen[it.ID] {
			order = append(order, it.ID)
		}
	}

	return m.Atomic(func() error {
		for i, id := range order {
			if err := m.SetItemSortIndex(id, float64(i+1)); err != nil {
				return err
			}
		}

		return nil
	})
}
