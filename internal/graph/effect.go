package graph

// NewEffect creates and eagerly runs an effect: the callback executes
// once synchronously to establish initial edges (§3, §4.5), before
// this function returns, regardless of whether a batch is open.
func NewEffect(rt *Runtime, callback func() func()) *Node {
	e := &Node{
		Kind:     KindEffect,
		callback: callback,
		rt:       rt,
	}
	if rt.currentOwner != nil {
		rt.currentOwner.AddNode(e)
	}

	runEffect(rt, e)

	return e
}

// enqueueEffect schedules e to run at the next drain's effect phase,
// gated by the queued flag so a single effect is never queued twice
// for the same batch (invariant 4).
func enqueueEffect(rt *Runtime, e *Node) {
	if e.queued {
		return
	}
	e.queued = true
	rt.effectQueue = append(rt.effectQueue, e)
}

// runEffect implements §4.5: run the previous cleanup, detach old
// edges, then re-run the callback under a fresh nested owner scope,
// capturing a returned cleanup for next time.
func runEffect(rt *Runtime, e *Node) {
	if e.cleanup != nil {
		runCleanup(e)
	}

	if e.innerOwner != nil {
		e.innerOwner.Dispose()
	}
	e.innerOwner = NewOwner(rt)

	detachAllSources(e)

	prevObserver := rt.currentObserver
	rt.currentObserver = e

	func() {
		defer func() {
			rt.currentObserver = prevObserver
			if r := recover(); r != nil {
				// §7.2: user effect error is swallowed (logged at most); the
				// effect remains registered and reruns on the next change.
				recoverEffectPanic(e, r)
			}
		}()

		RunWithOwner(rt, e.innerOwner, func() {
			e.cleanup = e.callback()
		})
	}()
}
