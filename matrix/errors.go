// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: ...". Callers match with errors.Is;
// core sentinels (core.ErrItemNotFound, core.ErrDefaultGrouping, ...) pass
// through wrapped and stay matchable as well.

package matrix

import "errors"

var (
	// ErrVariant indicates the operation is not defined for the matrix variant
	// (e.g. domain management on a symmetric matrix).
	ErrVariant = errors.New("matrix: operation not supported by variant")

	// ErrUnknownVariant indicates a Variant value outside the closed set.
	ErrUnknownVariant = errors.New("matrix: unknown variant")

	// ErrAliasMismatch indicates a corrupted row/column pair: missing partner,
	// one-sided alias, or diverging name, sort index, grouping or domain.
	// The operation is declined and state is left untouched.
	ErrAliasMismatch = errors.New("matrix: alias pair mismatch")

	// ErrSelfConnection indicates a connection between a row and its own alias.
	ErrSelfConnection = errors.New("matrix: connection to own alias")

	// ErrLastDomain indicates removal of the only remaining domain.
	ErrLastDomain = errors.New("matrix: cannot remove last domain")

	// ErrDomainMismatch indicates a zoom import whose domains do not fit the
	// breakout variant.
	ErrDomainMismatch = errors.New("matrix: zoom domains do not match breakout")

	// ErrInvalidDocument indicates a load-time validation failure. The
	// specific cause is wrapped alongside it.
	ErrInvalidDocument = errors.New("matrix: invalid document")

	// ErrDuplicateConnection indicates two connections with the same key in a document.
	ErrDuplicateConnection = errors.New("matrix: duplicate connection")

	// ErrInvalidSortIndex indicates a NaN or infinite sort index.
	ErrInvalidSortIndex = errors.New("matrix: sort index must be finite")

	// ErrNilMatrix indicates a nil *Matrix argument.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrInAction indicates Undo/Redo was called from inside Atomic.
	ErrInAction = errors.New("matrix: undo/redo inside an atomic action")
)
