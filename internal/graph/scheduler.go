package graph

// Batch runs fn with propagation deferred until the outermost Batch (or
// a top-level WriteSignal) returns, coalescing any number of writes
// made inside fn into a single drain (§4.6, invariant P8).
func Batch(rt *Runtime, fn func() any) any {
	rt.batchDepth++

	var result any
	defer func() {
		rt.batchDepth--
		// rt.draining guards against a Batch called from inside a running
		// drain (an effect that opens its own explicit Batch): that
		// drain already owns rt.dirty/rt.pendingNotices/rt.effectQueue
		// and will pick up whatever this Batch queued on its own next
		// fixpoint iteration. Calling drain(rt) again here would run a
		// second, nested drain loop over the same shared queues and its
		// deferred `rt.draining = false` would clear the flag out from
		// under the still-running outer drain.
		if rt.batchDepth == 0 && !rt.draining {
			drain(rt)
		}
	}()

	result = fn()
	return result
}

// drain runs the three-phase propagation cycle to fixpoint: a
// dirty-computed pass, a listener-notification pass, and an effect
// pass, looping back to the first phase when any of those passes
// produced new work (a reentrant write from a listener or an effect
// body). Bounded by maxDrainIterations so a genuine write/effect
// cascade surfaces as a panic instead of hanging (§7.5).
func drain(rt *Runtime) {
	rt.draining = true
	defer func() { rt.draining = false }()

	for iteration := 0; ; iteration++ {
		if iteration >= maxDrainIterations {
			panic(&cascadeLimitError{iterations: iteration})
		}

		rt.drainEpoch++
		epoch := rt.drainEpoch

		drainDirty(rt, epoch)
		drainNotices(rt)
		drainEffects(rt)

		if len(rt.dirty) == 0 && len(rt.pendingNotices) == 0 && len(rt.effectQueue) == 0 {
			break
		}
	}

	flushMounts(rt)
}

// drainDirty processes rt.dirty with a growing-slice cursor: evaluating
// an observed computed may call markDependentsDirty, which appends
// further dirty computeds (or queues effects) onto the very slice the
// cursor is walking, so the cascade within one epoch settles in this
// single pass without recursion. An unobserved computed is left dirty
// for lazy catch-up on its next direct read (§4.3).
func drainDirty(rt *Runtime, epoch uint64) {
	cursor := 0
	for cursor < len(rt.dirty) {
		n := rt.dirty[cursor]
		cursor++

		if n.processedEpoch == epoch {
			continue
		}
		n.processedEpoch = epoch

		if !n.dirty {
			continue
		}
		if !isObserved(n, epoch) {
			continue
		}

		evaluateInDrain(n)
	}

	rt.dirty = rt.dirty[:0]
}

// evaluateInDrain evaluates n as part of the scheduler's own dirty
// pass (as opposed to a direct tracked read), recovering a calc panic
// here rather than letting it abort the rest of the drain (§7.1: a
// calc panic reached through the drain loop moves on to the next
// queue entry, unlike one reached through a direct Read/Get call,
// which re-raises to that caller).
func evaluateInDrain(n *Node) {
	defer func() { recover() }()
	Evaluate(n.rt, n)
}

// drainNotices flushes every signal/computed with a pending notice,
// invoking its listeners in registration order with (newVal, oldVal).
// firingListeners guards against a listener being invoked twice within
// the same flush if re-queued reentrantly by its own side effects.
func drainNotices(rt *Runtime) {
	if len(rt.pendingNotices) == 0 {
		return
	}

	pending := rt.pendingNotices
	rt.pendingNotices = nil

	for _, n := range pending {
		if !n.pendingNotice {
			continue
		}
		n.pendingNotice = false
		old := n.pendingOld
		n.pendingOld = nil

		newVal := n.value
		listeners := n.listeners
		for _, entry := range listeners {
			if rt.firingListeners[entry] {
				continue
			}
			rt.firingListeners[entry] = true
			entry.fn(newVal, old)
			delete(rt.firingListeners, entry)
		}
	}
}

// drainEffects runs every effect queued this epoch, in enqueue order.
// Running an effect may itself write signals, which (since rt.draining
// is true) only mark dirty/queue notices/enqueue further effects for
// the outer drain loop to pick up on its next iteration.
func drainEffects(rt *Runtime) {
	if len(rt.effectQueue) == 0 {
		return
	}

	queue := rt.effectQueue
	rt.effectQueue = nil

	for _, e := range queue {
		if !e.queued {
			continue
		}
		e.queued = false
		runEffect(rt, e)
	}
}

// flushMounts runs OnMount callbacks and any initial Subscribe calls
// that were deferred because they were registered mid-drain (§4.8).
func flushMounts(rt *Runtime) {
	mounts := rt.pendingMounts
	rt.pendingMounts = nil
	for _, fn := range mounts {
		fn()
	}

	initial := rt.pendingInitialCalls
	rt.pendingInitialCalls = nil
	for _, fn := range initial {
		fn()
	}
}
