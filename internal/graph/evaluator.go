package graph

// NewComputed creates a lazily-evaluated derived node. The first
// evaluation happens on first read or first subscription, not at
// construction time (§3 lifecycle).
func NewComputed(rt *Runtime, calc func() any, equal func(a, b any) bool) *Node {
	c := &Node{
		Kind:  KindComputed,
		value: unsetValue,
		calc:  calc,
		equal: equal,
		dirty: true,
		rt:    rt,
	}
	if rt.currentOwner != nil {
		rt.currentOwner.AddNode(c)
	}
	return c
}

// ReadComputed registers a dependency edge on the current observer (if
// any), forces evaluation if the node is dirty or has never run, and
// returns its current value.
func ReadComputed(rt *Runtime, c *Node) any {
	track(rt, c)

	if !c.everEvaluated || c.dirty {
		Evaluate(rt, c)
	}
	return c.value
}

// Evaluate implements §4.4: a version fast-path short-circuit, then a
// full detach/run/reattach cycle with Object.is-based change detection.
// It returns the (possibly unchanged) value and whether it changed.
//
// Propagation (queuing a listener notice and marking this node's own
// dependents dirty) happens here, centrally, rather than in the
// scheduler's dirty-pass loop — so a computed that is evaluated by a
// direct tracked read mid-drain (an effect or computed reading it as a
// source before the scheduler gets to it) still notifies and cascades
// exactly once. It is gated on rt.draining || rt.batchDepth > 0, not
// on rt.draining alone: §4.6 permits a read inside an open Batch body
// to observe the new value with notification merely deferred to the
// eventual drain, and that read reaches Evaluate before rt.draining is
// ever set (the batch body runs before drain() is called at the
// outermost Batch's close). Skipping propagation there would clear
// c.dirty and bump c.version without ever queuing the notice or
// dirtying dependents, so the drain's dirty-pass would later find c
// already clean and silently skip it — losing the change entirely. A
// lazy pull with neither a drain nor a batch open can only be the
// unobserved-subtree catch-up case (§4.3), which by construction has
// no listener anywhere downstream to notify.
func Evaluate(rt *Runtime, c *Node) (any, bool) {
	if armed(c) && fastPathFresh(c) {
		c.dirty = false
		return c.value, false
	}

	wasWired := c.everEvaluated
	if wasWired {
		detachAllSources(c)
	}

	old := c.value
	newVal := runCalc(rt, c)

	c.everEvaluated = true
	c.sourceVersions = make([]uint32, len(c.sources))
	for i, s := range c.sources {
		c.sourceVersions[i] = s.version
	}

	c.dirty = false

	if old != unsetValue && c.isEqual(newVal, old) {
		return old, false
	}

	c.value = newVal
	c.version++

	if rt.draining || rt.batchDepth > 0 {
		if old != unsetValue {
			queueNotice(rt, c, old)
		}
		markDependentsDirty(rt, c)
	}

	return newVal, true
}

// armed reports whether c carries a version snapshot from a prior
// clean completion, eligible for the fast-path check.
func armed(c *Node) bool {
	return c.everEvaluated && len(c.sourceVersions) == len(c.sources)
}

func fastPathFresh(c *Node) bool {
	for i, s := range c.sources {
		if s.version != c.sourceVersions[i] {
			return false
		}
	}
	return true
}

// runCalc pushes c as the current observer, runs its calc, and pops.
// A panic mid-run leaves c fully detached with dirty=true (never a
// partially-filled source list) and is re-raised to the caller, per
// the version-fast-path-after-a-throw resolution in SPEC_FULL.md.
func runCalc(rt *Runtime, c *Node) (result any) {
	prevObserver := rt.currentObserver
	rt.currentObserver = c

	defer func() {
		rt.currentObserver = prevObserver
		if r := recover(); r != nil {
			detachAllSources(c)
			c.sourceVersions = c.sourceVersions[:0]
			c.dirty = true
			panic(r)
		}
	}()

	result = c.calc()
	return result
}

// DisposeNode tears down a node on demand, whether or not an owner
// also tracks it (the public effect Dispose calls it for every effect).
func DisposeNode(n *Node) {
	disposeNode(n)
}

// disposeNode detaches a computed/effect node from both its sources
// and its dependents, runs its cleanup if any, and disposes its owner
// subtree. Called when an owning scope is disposed (invariant 5).
func disposeNode(n *Node) {
	if n.cleanup != nil {
		runCleanup(n)
	}

	detachAllSources(n)
	detachAllDependents(n)

	if n.innerOwner != nil {
		n.innerOwner.Dispose()
		n.innerOwner = nil
	}

	n.dirty = false
	n.queued = false
}

// runCleanup invokes n's cleanup, swallowing any panic (§7.3: a
// cleanup error is swallowed so the remaining disposal still runs).
func runCleanup(n *Node) {
	defer func() { recover() }()
	cleanup := n.cleanup
	n.cleanup = nil
	cleanup()
}
