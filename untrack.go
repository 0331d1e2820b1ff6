package reactor

import "github.com/flowcore/reactor/internal/graph"

// Untrack runs fn without registering any dependency edges for the
// reads it performs, even if called from inside a computed's calc or
// an effect's body.
func Untrack[T any](fn func() T) T {
	rt := graph.GetRuntime()
	out := graph.RunUntracked(rt, func() any { return fn() })
	return as[T](out)
}

// Peek reads node's current value without tracking a dependency. For a
// stale computed, this still forces it up to date first.
func Peek[T any](node ReadHandle[T]) T {
	rt := graph.GetRuntime()
	n := node.rawNode()
	if n.Kind == graph.KindComputed {
		return as[T](graph.PeekComputed(rt, n))
	}
	return as[T](graph.PeekSignal(n))
}
