// Package sequence partitions a DSM: it finds coupled blocks (items that
// depend on each other through a feedback loop) and orders the matrix so
// every item comes after the items it depends on.
//
// What:
//
//   - Partition: one depth-first walk (Tarjan) over the dependency graph of
//     a Symmetric or MultiDomain matrix. Rows are visited in display order
//     with White/Gray/Black marking; each strongly connected component
//     becomes a Block, emitted after all blocks it depends on.
//   - Apply: rewrites sort indices in sequence order as one undoable action.
//
// Reading convention: a connection at (row r, column c) means r depends on
// the item aliased by c. Connections below WithMinWeight are ignored.
//
// Complexity:
//
//   - Time:   O(V + E) plus sorting of neighbor lists
//   - Memory: O(V)
package sequence
