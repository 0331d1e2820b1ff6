package graph

// NewSignal creates a leaf node holding initial, with an optional
// custom equality comparator (nil selects Object.is semantics).
func NewSignal(rt *Runtime, initial any, equal func(a, b any) bool) *Node {
	return &Node{
		Kind:  KindSignal,
		value: initial,
		equal: equal,
		rt:    rt,
	}
}

// ReadSignal registers a dependency edge on the runtime's current
// observer (if any) and returns the signal's current value. Reading
// outside any observer is untracked and side-effect-free.
func ReadSignal(rt *Runtime, s *Node) any {
	track(rt, s)
	return s.value
}

// WriteSignal implements §4.3's write algorithm: equal writes are
// rejected before any propagation (P1); otherwise the value and
// version update immediately, dependents are marked dirty, and the
// write enters (or opens) a micro-batch that drains once the
// outermost batch/write closes.
func WriteSignal(rt *Runtime, s *Node, v any) {
	if s.isEqual(v, s.value) {
		return
	}

	old := s.value
	s.value = v
	s.version++

	queueNotice(rt, s, old)
	markDependentsDirty(rt, s)

	if rt.draining {
		// A write from inside a listener/effect currently firing during
		// this drain: the outer drain loop will pick up the fresh dirty
		// set and pending notices on its next fixpoint iteration.
		return
	}

	if rt.batchDepth == 0 {
		drain(rt)
	}
}

// queueNotice records a node's pending (value-before-write) old value
// for its next listener notification. The first write within a batch
// wins the old value (P8); later writes in the same batch leave both
// the pending entry and the old value it carries as they are.
func queueNotice(rt *Runtime, n *Node, old any) {
	if !n.pendingNotice {
		n.pendingNotice = true
		n.pendingOld = old
		rt.pendingNotices = append(rt.pendingNotices, n)
	}
}

// markDependentsDirty marks every computed dependent of n as dirty
// (invalidating its version fast-path) and schedules every effect
// dependent to run, per the propagation engine of §4.3. Dirtiness is
// carried on through computed dependents of those computeds too, so a
// computed downstream of an unobserved (lazily skipped) one is never
// left clean over a stale value; effects further down are scheduled
// only once the computed they read actually changes.
func markDependentsDirty(rt *Runtime, n *Node) {
	var markDirty func(d *Node)
	markDirty = func(d *Node) {
		if d.dirty {
			return
		}
		d.dirty = true
		d.sourceVersions = d.sourceVersions[:0]
		rt.dirty = append(rt.dirty, d)
		for _, dd := range d.dependents {
			if dd.Kind != KindEffect {
				markDirty(dd)
			}
		}
	}
	for _, d := range n.dependents {
		if d.Kind == KindEffect {
			enqueueEffect(rt, d)
			continue
		}
		markDirty(d)
	}
}
