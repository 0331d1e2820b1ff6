// Package graph implements the untyped reactive dependency graph that
// backs the public reactor API: signals, computeds, and effects as a
// common node header plus non-owning, symmetric dependency edges. It
// has no notion of a type parameter: every value crossing a Node is
// stored and compared as any, so the hot paths (track, Evaluate, the
// drain loop) stay monomorphic. Generic wrapping happens one layer up,
// in the root package.
package graph
