// Package grid defines the cell kinds, cell descriptors and sentinel errors
// of the render-agnostic DSM grid projection.
package grid

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
)

// Sentinel errors for grid projection.
var (
	// ErrSourceNil indicates a nil Source was passed.
	ErrSourceNil = errors.New("grid: source is nil")
	// ErrUnknownKind indicates a Kind outside the closed set.
	ErrUnknownKind = errors.New("grid: unknown cell kind")
)

// Source is the read-only surface a grid is projected from.
// *matrix.Matrix satisfies it.
type Source interface {
	Variant() matrix.Variant
	Rows() []core.Item
	Cols() []core.Item
	Item(id core.ID) (core.Item, bool)
	Connection(key core.ConnKey) (core.Connection, bool)
	Domain(id core.ID) (core.Domain, bool)
	GroupingOf(id core.ID) (core.Grouping, bool)
}

// Kind tags a Cell. The _V kinds are rendered vertically.
type Kind uint8

const (
	// KindPlainText is a fixed label (Cell.Text).
	KindPlainText Kind = iota + 1
	// KindPlainTextV is a vertical fixed label.
	KindPlainTextV
	// KindItemName references an item's name (Cell.Item).
	KindItemName
	// KindItemNameV references a column item's name, vertical.
	KindItemNameV
	// KindGroupingItem references an item's grouping selector.
	KindGroupingItem
	// KindGroupingItemV references a column item's grouping selector, vertical.
	KindGroupingItemV
	// KindIndexItem references an item's sort index editor.
	KindIndexItem
	// KindEditableConnection references the (Cell.Row, Cell.Col) connection slot.
	KindEditableConnection
	// KindUneditableConnection marks a row against its own alias.
	KindUneditableConnection
	// KindDomainSpan references a domain label spanning Cell.RowSpan rows.
	KindDomainSpan
	// KindSpanFiller occupies a cell covered by a span above it.
	KindSpanFiller
)

var kindNames = [...]string{
	KindPlainText:            "plain_text",
	KindPlainTextV:           "plain_text_v",
	KindItemName:             "item_name",
	KindItemNameV:            "item_name_v",
	KindGroupingItem:         "grouping_item",
	KindGroupingItemV:        "grouping_item_v",
	KindIndexItem:            "index_item",
	KindEditableConnection:   "editable_connection",
	KindUneditableConnection: "uneditable_connection",
	KindDomainSpan:           "domain_span",
	KindSpanFiller:           "span_filler",
}

// String returns the snake_case kind name.
func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}

	return kindNames[k]
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if k == 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}

	return []byte(kindNames[k]), nil
}

// Vertical reports whether the cell is rendered rotated.
func (k Kind) Vertical() bool {
	return k == KindPlainTextV || k == KindItemNameV || k == KindGroupingItemV
}

// Cell is one grid position. Reference kinds carry ids only; resolve them
// against the live source with Text so no value goes stale.
type Cell struct {
	Kind    Kind    `json:"kind"`
	Text    string  `json:"text,omitempty"`
	Item    core.ID `json:"item,omitempty"`
	Row     core.ID `json:"row,omitempty"`
	Col     core.ID `json:"col,omitempty"`
	Domain  core.ID `json:"domain,omitempty"`
	RowSpan int     `json:"row_span,omitempty"`
}

// Grid is an immutable projection. Cells[y][x] is row y, column x; every
// row has the same length.
//   - HeaderRows/HeaderCols count the label rows above and columns left of
//     the connection block.
//   - RowItems/ColItems list the item ids in display order.
type Grid struct {
	Cells      [][]Cell
	HeaderRows int
	HeaderCols int
	RowItems   []core.ID
	ColItems   []core.ID
}

// Size returns the number of grid rows and columns.
func (g *Grid) Size() (rows, cols int) {
	if len(g.Cells) == 0 {
		return 0, 0
	}

	return len(g.Cells), len(g.Cells[0])
}

// At returns the cell at row y, column x.
func (g *Grid) At(y, x int) (Cell, bool) {
	if y < 0 || y >= len(g.Cells) || x < 0 || x >= len(g.Cells[y]) {
		return Cell{}, false
	}

	return g.Cells[y][x], true
}
