// Package dsm is an in-memory engine for Design Structure Matrices: square
// grids of weighted dependencies between the items of a system, with
// groupings, domains, undo/redo and a handful of analyses on top.
//
// The module is organized as small packages, each usable on its own:
//
//	core/        entity model (items, connections, groupings, domains) and Store
//	history/     checkpointed undo/redo stack of reversible changes
//	matrix/      Matrix facade: variants, mutations, documents, zoom
//	grid/        positioned cell view for renderers
//	propagation/ multi-level change propagation from a start item
//	cluster/     Thebeau stochastic clustering with restarts
//	sequence/    dependency partitioning into sequenced blocks and loops
//	builder/     deterministic fixture generators
//	config/      YAML and environment configuration
//	cmd/dsm/     command-line front end
//
// Three variants share the same engine:
//
//	Symmetric    rows and columns alias each other; one domain
//	Asymmetric   independent rows and columns
//	MultiDomain  symmetric, items partitioned into named domains
//
// A small example:
//
//	       A  B  C
//	    A  ■  1
//	    B     ■  2
//	    C  1     ■
//
// reads "A depends on B, B depends on C, C depends on A" and forms one loop.
//
//	go get github.com/katalvlaran/dsm
package dsm
