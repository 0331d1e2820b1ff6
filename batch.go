package reactor

import "github.com/flowcore/reactor/internal/graph"

// Batch runs fn, deferring propagation of every write made inside it
// until fn returns, so dependents and listeners see one settled update
// instead of one per write.
func Batch[T any](fn func() T) T {
	rt := graph.GetRuntime()
	out := graph.Batch(rt, func() any { return fn() })
	return as[T](out)
}
