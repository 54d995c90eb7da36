// Package core defines the DSM entity model and the Store that holds it.
//
// A Design Structure Matrix is a grid of weighted dependencies from row items
// to column items. The model has four entity kinds:
//
//   - Item: one row or column record. Symmetric and multi-domain matrices pair
//     every row with a column record through mutual Alias ids.
//   - Connection: a weighted, named dependency keyed by (row id, col id),
//     carrying an ordered set of interface tags.
//   - Grouping: a named, colored category assigned to items.
//   - Domain: a Grouping that owns a private grouping list. Every item belongs
//     to exactly one domain and draws its grouping from that domain's list.
//
// Identity:
//
//	Ids are int64 values issued by a Session. A Session is an explicit object
//	handed to every constructor; there are no package-level counters, so two
//	tests or two editor windows never collide. Loading a document calls
//	Session.Observe for every foreign id so later allocations stay unique.
//
// Mutation:
//
//	Store methods are unlogged primitives. Each setter returns the value it
//	replaced so that a caller can build an exact inverse. Package matrix is the
//	only intended mutator and always goes through its change log.
//
// Determinism:
//
//	Items(), Connections(), RowConnections(), ColConnections() and Domains()
//	return sorted slices; nothing exposes map order.
//
// Concurrency:
//
//	A Store has no internal locking. Clone() produces an independent deep
//	copy that analysis code may read on another goroutine.
package core
