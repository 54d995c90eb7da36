// SPDX-License-Identifier: MIT

// Package matrix implements the editable DSM: three variants sharing one
// operation contract, every mutation recorded on an undo/redo log.
//
// Variants:
//
//   - Symmetric: every logical item is a row record and a column record
//     linked by mutual alias ids. Rename, re-sort and regroup touch both
//     records in one action. A row may not connect to its own alias.
//   - Asymmetric: rows and columns are independent records, each role with
//     its own domain and grouping palette. Any row may connect to any column.
//   - MultiDomain: aliased pairs like Symmetric, spread over several domains.
//     Each domain owns a private grouping palette. Domains are created on
//     first use (CreateDomainItem) and deleting one deletes its items.
//     ExportZoom/ImportZoom cut a breakout out of one domain or a domain pair
//     and merge it back by id.
//
// Actions and undo:
//
//	Each exported mutator is one action: it records one or more change
//	records (mementos holding the state they replaced) and closes with a
//	checkpoint. Undo/Redo move whole actions. Atomic groups several mutator
//	calls into one action. A failing action is rolled back before it returns,
//	so the matrix is never left half-mutated.
//
// Invariants checked before mutating:
//
//   - ids are unique (the Session allocates them);
//   - an aliased pair agrees on name, sort index, grouping and domain; a
//     broken pair is logged at error level and the action is declined with
//     ErrAliasMismatch;
//   - connections reference existing items of the right role with a finite
//     weight;
//   - the default grouping of a domain and the last domain cannot be removed.
//
// Load/save:
//
//	Document is the record graph handed to serialization code. Load validates
//	it fully (struct tags through go-playground/validator, then structure)
//	and returns either a complete Matrix or an error wrapping
//	ErrInvalidDocument. Matrix.Document is deterministic.
//
// Concurrency:
//
//	A Matrix is owned by one goroutine. Snapshot returns a deep-copied
//	*core.Store for analysis elsewhere (see packages propagation and cluster).
package matrix
