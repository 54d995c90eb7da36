// Package cluster partitions the items of a symmetric DSM into clusters with
// the Thebeau bid heuristic.
//
// The objective is the coordination cost (see CoordinationScore): weight
// inside a cluster costs in proportion to the cluster's size, weight across
// clusters costs in proportion to the whole matrix size times ExtraPenalty.
// Run is a stochastic local search that returns the best partition it saw;
// it is not an exact optimizer.
//
// Workflow:
//
//	p, _ := cluster.FromMatrix(m, params)   // immutable snapshot of weights
//	res, _ := cluster.RunRestarts(ctx, p, params, 8)
//	_ = cluster.Apply(m, res)               // one undoable action
//
// Determinism: results depend only on the Problem and Params (Seed
// included), never on goroutine scheduling.
//
// Observability: Run and RunRestarts open OpenTelemetry spans and record
// run, pass and move counters.
package cluster
