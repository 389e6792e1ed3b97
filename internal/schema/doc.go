// Package schema describes the structural types that values are validated
// against.
//
// A Type is a read-only descriptor: it has a display name and can answer
// whether a value belongs to it. Composite shapes are discovered through the
// capability views (IsUnion, Members, IsIntersection, Parts, Properties,
// ArrayItem, TupleItems). Every view first strips Refinement, Readonly, Lazy
// and Named wrappers, resolving lazy definitions again on each call, so
// callers never see wrapper types and never hold on to a resolved shape.
//
// Types are immutable once built and safe for concurrent use, provided any
// Lazy resolver or Refine predicate is itself free of side effects.
package schema
