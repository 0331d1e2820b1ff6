package reactor

import "github.com/flowcore/reactor/internal/graph"

// Owner is a disposal scope: every computed and effect created while
// it is current is torn down, in reverse creation order, when it is
// disposed.
type Owner struct {
	o *graph.Owner
}

// CreateRoot opens a new owner scope, runs fn with a function that
// disposes it, and returns that same function so the caller can also
// dispose the root from outside fn.
func CreateRoot(fn func(dispose func())) Dispose {
	rt := graph.GetRuntime()
	o := graph.NewOwner(rt)

	dispose := func() { o.Dispose() }

	graph.RunWithOwner(rt, o, func() {
		fn(dispose)
	})

	return dispose
}

// GetOwner returns the owner currently in scope, or nil outside any
// CreateRoot or effect body. A computed's calc opens no scope of its
// own: it sees whatever owner is current where it is evaluated.
func GetOwner() *Owner {
	o := graph.CurrentOwner(graph.GetRuntime())
	if o == nil {
		return nil
	}
	return &Owner{o: o}
}

// Dispose tears down this owner's children and runs its own cleanups.
func (o *Owner) Dispose() { o.o.Dispose() }

// OnCleanup attaches a function that runs once when this owner disposes.
func (o *Owner) OnCleanup(fn func()) { o.o.OnCleanup(fn) }

// OnError registers a handler for panics raised by effect callbacks in
// this owner's subtree. Without one, such a panic is logged. A
// computed's calc panic is not routed here: it always propagates to
// the caller of Read.
func (o *Owner) OnError(fn func(any)) { o.o.OnError(fn) }

// OnCleanup attaches fn to the owner currently in scope. Calling it
// with no owner in scope (outside any CreateRoot or effect body) is a
// no-op.
func OnCleanup(fn func()) {
	if o := graph.CurrentOwner(graph.GetRuntime()); o != nil {
		o.OnCleanup(fn)
	}
}

// OnMount runs fn once the current update cycle settles, or
// immediately if none is in progress. Useful inside an effect body
// that wants to act on fully-settled state rather than a mid-cascade
// value.
func OnMount(fn func()) {
	graph.ScheduleMount(graph.GetRuntime(), fn)
}
