// Package primitives provides the serializable data structures that drive
// a list session: operation records and scripts of operations.
//
// This package uses ONLY the Go standard library; the yaml tags are
// consumed by adapters in internal/production and cmd/.
//
// Core invariants:
// - Ops are value types and are never mutated once built (use NewOp)
// - A Script that passes Validate only names known operations
package primitives
