// Package builder provides helper functions for naming generated items.
package builder

import (
	"fmt"
	"strconv"
)

// NameFn names an item from its zero-based global index within the build.
// It must be pure.
type NameFn func(idx int) string

// DefaultNameFn returns "E" plus the one-based index: 0→"E1", 41→"E42".
func DefaultNameFn(idx int) string {
	return "E" + strconv.Itoa(idx+1)
}

// ExcelColumnNameFn returns the spreadsheet column name for idx,
// e.g. 0→"A", 25→"Z", 26→"AA". Panics if idx < 0.
func ExcelColumnNameFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnNameFn: idx must be ≥ 0, got %d", idx))
	}
	var runes []rune
	for i := idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, rune('A'+(i%26)))
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// PrefixNameFn returns prefix + one-based index, e.g. "pump1", "pump2".
func PrefixNameFn(prefix string) NameFn {
	return func(idx int) string {
		return prefix + strconv.Itoa(idx+1)
	}
}

// WithExcelColumnNames sets the naming scheme to ExcelColumnNameFn.
func WithExcelColumnNames() BuilderOption {
	return WithNameScheme(ExcelColumnNameFn)
}

// WithPrefixNames sets the naming scheme to PrefixNameFn(prefix).
func WithPrefixNames(prefix string) BuilderOption {
	return WithNameScheme(PrefixNameFn(prefix))
}
