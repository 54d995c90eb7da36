// Package builder generates deterministic DSM fixtures for tests, benchmarks
// and the dsm generate command.
//
// A build composes constructors over one fresh matrix:
//
//	m, err := builder.Build(nil, matrix.Symmetric,
//		[]builder.BuilderOption{builder.WithSeed(7), builder.WithIntegerWeight(1, 9)},
//		builder.Blocks(3, 4, 0.9, 0.05),
//	)
//
// Constructors:
//   - RandomSparse(n, p): every admissible ordered pair connected with
//     probability p.
//   - Blocks(k, size, pIn, pOut): planted partition; in MultiDomain
//     matrices each block gets its own domain.
//   - Chain(n): item i depends on item i+1.
//
// Options:
//   - WithSeed / WithRand: the random source (required for 0 < p < 1).
//   - WithWeightFn and the WithXWeight shorthands: connection weights.
//   - WithNameScheme and the WithXNames shorthands: item names.
//   - WithInterfaces: interface tags on every connection.
//   - WithMatrixOptions: logger, metadata and domain name of the matrix.
//
// Guarantees:
//   - Equal inputs, options and seed give equal documents.
//   - Option constructors panic on meaningless values; constructors return
//     sentinel errors (ErrTooFewItems, ErrInvalidProbability,
//     ErrNeedRandSource, ErrConstructFailed) and never panic.
//   - The returned matrix has an empty undo history.
package builder
