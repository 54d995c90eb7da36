// Package grid projects the current state of a DSM into an ordered 2-D
// layout of tagged cells.
//
// Build is a pure function of its Source: nothing is cached, so callers
// rebuild after every mutation. Rows and columns are sorted independently by
// sort index (multi-domain: by domain name first), ties broken by id.
//
// Layouts (H = header rows, L = label columns):
//
//	Symmetric   H=2 L=3  grouping | name | index | connections...
//	Asymmetric  H=3 L=3  as above, plus column grouping and index rows
//	MultiDomain H=2 L=4  domain span | grouping | name | index | connections...
//
// In the aliased layouts the cell of a row against its own alias column is
// KindUneditableConnection.
package grid

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
)

// Header labels.
const (
	LabelColumnItems = "Column Items"
	LabelRowItems    = "Row Items"
	LabelGrouping    = "Grouping"
	LabelIndex       = "Re-Sort Index"
	LabelDomain      = "Domain"
)

// Build returns the grid projection of src.
//
// Complexity: O(R·C + (R+C)·log(R+C)).
func Build(src Source) (*Grid, error) {
	if src == nil {
		return nil, ErrSourceNil
	}
	rows, cols := src.Rows(), src.Cols()
	v := src.Variant()
	switch v {
	case matrix.Symmetric, matrix.Asymmetric:
		matrix.SortItems(rows)
		matrix.SortItems(cols)
	case matrix.MultiDomain:
		sortByDomain(src, rows)
		sortByDomain(src, cols)
	default:
		return nil, fmt.Errorf("grid: %w: %d", matrix.ErrUnknownVariant, uint8(v))
	}

	g := &Grid{RowItems: ids(rows), ColItems: ids(cols)}
	switch v {
	case matrix.Symmetric:
		buildSymmetric(g, rows, cols)
	case matrix.Asymmetric:
		buildAsymmetric(g, rows, cols)
	case matrix.MultiDomain:
		buildMultiDomain(g, rows, cols)
	}

	return g, nil
}

// buildSymmetric lays out two header rows and three label columns.
func buildSymmetric(g *Grid, rows, cols []core.Item) {
	g.HeaderRows, g.HeaderCols = 2, 3
	g.Cells = append(g.Cells,
		headerNames(cols, plainV(""), plainV(""), plainV(LabelColumnItems)),
		headerBlank(cols, plain(LabelGrouping), plain(LabelRowItems), plain(LabelIndex)),
	)
	for _, r := range rows {
		line := []Cell{{Kind: KindGroupingItem, Item: r.ID}, {Kind: KindItemName, Item: r.ID}, {Kind: KindIndexItem, Item: r.ID}}
		g.Cells = append(g.Cells, appendConnections(line, r, cols, true))
	}
}

// buildAsymmetric adds column grouping and index header rows.
func buildAsymmetric(g *Grid, rows, cols []core.Item) {
	g.HeaderRows, g.HeaderCols = 3, 3
	grouping := []Cell{plainV(""), plainV(""), plainV(LabelGrouping)}
	for _, c := range cols {
		grouping = append(grouping, Cell{Kind: KindGroupingItemV, Item: c.ID})
	}
	index := []Cell{plain(LabelGrouping), plain(LabelRowItems), plain(LabelIndex)}
	for _, c := range cols {
		index = append(index, Cell{Kind: KindIndexItem, Item: c.ID})
	}
	g.Cells = append(g.Cells,
		headerNames(cols, plainV(""), plainV(""), plainV(LabelColumnItems)),
		grouping,
		index,
	)
	for _, r := range rows {
		line := []Cell{{Kind: KindGroupingItem, Item: r.ID}, {Kind: KindItemName, Item: r.ID}, {Kind: KindIndexItem, Item: r.ID}}
		g.Cells = append(g.Cells, appendConnections(line, r, cols, false))
	}
}

// buildMultiDomain prefixes every row with a domain span column.
func buildMultiDomain(g *Grid, rows, cols []core.Item) {
	g.HeaderRows, g.HeaderCols = 2, 4
	g.Cells = append(g.Cells,
		headerNames(cols, plainV(""), plainV(""), plainV(""), plainV(LabelColumnItems)),
		headerBlank(cols, plain(LabelDomain), plain(LabelGrouping), plain(LabelRowItems), plain(LabelIndex)),
	)
	for i, r := range rows {
		var lead Cell
		if i == 0 || rows[i-1].Domain != r.Domain {
			span := 1
			for j := i + 1; j < len(rows) && rows[j].Domain == r.Domain; j++ {
				span++
			}
			lead = Cell{Kind: KindDomainSpan, Domain: r.Domain, RowSpan: span}
		} else {
			lead = Cell{Kind: KindSpanFiller}
		}
		line := []Cell{lead, {Kind: KindGroupingItem, Item: r.ID}, {Kind: KindItemName, Item: r.ID}, {Kind: KindIndexItem, Item: r.ID}}
		g.Cells = append(g.Cells, appendConnections(line, r, cols, true))
	}
}

// appendConnections adds one connection cell per column.
func appendConnections(line []Cell, r core.Item, cols []core.Item, aliased bool) []Cell {
	for _, c := range cols {
		if aliased && c.Alias == r.ID {
			line = append(line, Cell{Kind: KindUneditableConnection})

			continue
		}
		line = append(line, Cell{Kind: KindEditableConnection, Row: r.ID, Col: c.ID})
	}

	return line
}

// headerNames builds a label row followed by vertical column names.
func headerNames(cols []core.Item, lead ...Cell) []Cell {
	line := append(make([]Cell, 0, len(lead)+len(cols)), lead...)
	for _, c := range cols {
		line = append(line, Cell{Kind: KindItemNameV, Item: c.ID})
	}

	return line
}

// headerBlank builds a label row followed by empty cells.
func headerBlank(cols []core.Item, lead ...Cell) []Cell {
	line := append(make([]Cell, 0, len(lead)+len(cols)), lead...)
	for range cols {
		line = append(line, plain(""))
	}

	return line
}

func plain(s string) Cell  { return Cell{Kind: KindPlainText, Text: s} }
func plainV(s string) Cell { return Cell{Kind: KindPlainTextV, Text: s} }

func ids(items []core.Item) []core.ID {
	out := make([]core.ID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}

	return out
}

// sortByDomain orders items by domain name, then sort index, then id.
func sortByDomain(src Source, items []core.Item) {
	names := make(map[core.ID]string)
	for _, it := range items {
		if _, ok := names[it.Domain]; !ok {
			d, _ := src.Domain(it.Domain)
			names[it.Domain] = d.Name
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if na, nb := names[a.Domain], names[b.Domain]; na != nb {
			return na < nb
		}
		if a.Domain != b.Domain {
			return a.Domain < b.Domain
		}
		if a.SortIndex != b.SortIndex {
			return a.SortIndex < b.SortIndex
		}

		return a.ID < b.ID
	})
}
