package grid

import (
	"strconv"

	"github.com/katalvlaran/dsm/core"
)

// Text resolves c against the live source:
//   - plain labels return their text;
//   - item cells return the item name, grouping name or sort index;
//   - connection cells return the weight, or "" when no connection exists;
//   - domain spans return the domain name.
//
// References to items that no longer exist resolve to "".
func Text(c Cell, src Source) string {
	switch c.Kind {
	case KindPlainText, KindPlainTextV:
		return c.Text
	case KindItemName, KindItemNameV:
		if it, ok := src.Item(c.Item); ok {
			return it.Name
		}
	case KindGroupingItem, KindGroupingItemV:
		if g, ok := src.GroupingOf(c.Item); ok {
			return g.Name
		}
	case KindIndexItem:
		if it, ok := src.Item(c.Item); ok {
			return FormatNumber(it.SortIndex)
		}
	case KindEditableConnection:
		if conn, ok := src.Connection(core.ConnKey{Row: c.Row, Col: c.Col}); ok {
			return FormatNumber(conn.Weight)
		}
	case KindDomainSpan:
		if d, ok := src.Domain(c.Domain); ok {
			return d.Name
		}
	}

	return ""
}

// Strings resolves every cell of g. Span fillers resolve to "".
func Strings(g *Grid, src Source) [][]string {
	out := make([][]string, len(g.Cells))
	for y, row := range g.Cells {
		out[y] = make([]string, len(row))
		for x, c := range row {
			out[y][x] = Text(c, src)
		}
	}

	return out
}

// FormatNumber prints v in the shortest form that round-trips.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
