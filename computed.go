package reactor

import "github.com/flowcore/reactor/internal/graph"

// ReadHandle is satisfied by Signal and Computed: anything that can be
// read and subscribed to. It is sealed — no type outside this package
// can implement it.
type ReadHandle[T any] interface {
	Read() T

	rawNode() *graph.Node
}

// Computed is a derived value recomputed lazily from the signals and
// computeds its calc reads.
type Computed[T any] struct {
	n *graph.Node
}

// NewComputed creates a computed whose value is calc's return value.
// calc does not run at construction time — only on first read or first
// Subscribe.
func NewComputed[T any](calc func() T, opts ...Option[T]) *Computed[T] {
	cfg := resolveOptions(opts)
	return &Computed[T]{
		n: graph.NewComputed(graph.GetRuntime(), func() any { return calc() }, cfg.equal),
	}
}

// Read forces calc to run if the computed is stale, then returns its
// current value, tracking the dependency if read inside another
// computed's calc or an effect's body.
func (c *Computed[T]) Read() T {
	return as[T](graph.ReadComputed(graph.GetRuntime(), c.n))
}

func (c *Computed[T]) rawNode() *graph.Node { return c.n }

func (c *Computed[T]) readAny() any { return c.Read() }
