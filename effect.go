package reactor

import "github.com/flowcore/reactor/internal/graph"

// Dispose tears down whatever it was returned from (an effect or a
// root). Calling it more than once is a no-op.
type Dispose func()

// NewEffect creates and immediately runs an effect. fn may return a
// cleanup function, run before every rerun and on disposal; returning
// nil means there is nothing to clean up.
func NewEffect(fn func() func()) Dispose {
	rt := graph.GetRuntime()
	n := graph.NewEffect(rt, fn)
	return func() { graph.DisposeNode(n) }
}
