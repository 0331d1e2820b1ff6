package reactor

import "github.com/flowcore/reactor/internal/graph"

// Signal is a mutable leaf value in the reactive graph.
type Signal[T any] struct {
	n *graph.Node
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T, opts ...Option[T]) *Signal[T] {
	cfg := resolveOptions(opts)
	return &Signal[T]{
		n: graph.NewSignal(graph.GetRuntime(), initial, cfg.equal),
	}
}

// Read returns the current value, tracking the dependency if read
// inside a computed's calc or an effect's body.
func (s *Signal[T]) Read() T {
	return as[T](graph.ReadSignal(graph.GetRuntime(), s.n))
}

// Write sets a new value, triggering dependents if it differs from the
// current one under the signal's equality policy.
func (s *Signal[T]) Write(v T) {
	graph.WriteSignal(graph.GetRuntime(), s.n, v)
}

func (s *Signal[T]) rawNode() *graph.Node { return s.n }

func (s *Signal[T]) readAny() any { return s.Read() }

func (s *Signal[T]) isSignalMark() {}
