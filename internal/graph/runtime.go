package graph

// Runtime bundles the tracking context, scheduler state, and pending
// work queues for one reactive graph. Every computed/effect created
// under a given createRoot tree shares the Runtime of the goroutine
// that opened it (see runtime_default.go / runtime_wasm.go).
type Runtime struct {
	currentObserver *Node
	currentOwner    *Owner

	batchDepth int
	draining   bool
	drainEpoch uint64

	dirty          []*Node
	pendingNotices []*Node
	effectQueue    []*Node

	pendingMounts       []func()
	pendingInitialCalls []func()

	firingListeners map[*listenerEntry]bool
}

// maxDrainIterations bounds the reentrant write/effect fixpoint loop
// of §4.6. Exceeding it means a user effect is unconditionally
// rewriting a signal it also (transitively) reads — an infinite
// cascade, which §7.5 treats as a user contract violation that should
// surface rather than hang the process.
const maxDrainIterations = 100000

func newRuntime() *Runtime {
	return &Runtime{
		firingListeners: make(map[*listenerEntry]bool),
	}
}
