// The [treelist] package is a Go SDK for a remote outline service whose
// documents are trees of items addressed through a flat, position-indexed
// batch edit API.
//
// # Serialized operations
//
// The service offers whole-document reads and batched edits but no
// optimistic-concurrency check, so every read-then-write operation must be
// the only one touching its document. [Client] serializes all operations
// per document key through [github.com/treelist/treelist.go/pkg/serializer]:
// same-key operations run FIFO and never overlap, different keys run fully
// concurrently. This protects against other operations in the same process
// only, not against external writers.
//
// # Snapshots and planning
//
// Each operation takes one fresh whole-document read, builds a
// [DocumentIndex] over it, plans a single batch of typed edits against that
// snapshot, and submits the batch in one round trip. Indexes are never
// shared across operations, which bounds staleness to the operation's own
// lifetime.
//
// # Connecting
//
// The default transport is the HTTP store in
// [github.com/treelist/treelist.go/pkg/connection]; build one from a
// Config and hand it to [New]. Any implementation of the Store interface
// works, which is also how tests substitute an in-memory store.
//
// # Hierarchies
//
// The service cannot create a node under a chosen parent in one call, so
// [Client.CreateHierarchy] creates whole trees in two phases: one batch
// insert of every item at the root, then one batch of moves reconstructing
// the intended structure. The intermediate flat state stays inside a
// single serialized operation.
package treelist
