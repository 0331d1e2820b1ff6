package graph

// Kind discriminates the three node shapes sharing the Node header.
type Kind uint8

const (
	KindSignal Kind = iota
	KindComputed
	KindEffect
)

// unset is the sentinel held by a Computed's value before its first
// evaluation. It is never exposed to a caller: every read path forces
// an evaluation before returning a value, so the public generic
// wrapper never has to type-assert this sentinel into a real T.
type unset struct{}

var unsetValue = unset{}

// Listener is the callback shape registered via Subscribe: it is
// invoked with the node's new and (batch-initial) old value.
type Listener func(newVal, oldVal any)

type listenerEntry struct {
	fn Listener
}

// Node is the shared header for signals, computeds, and effects. Which
// fields are meaningful depends on Kind, per the data model table in
// the specification: Signal uses value/version/listeners/dependents;
// Computed additionally uses sources/dirty/calc; Effect uses
// sources/callback/cleanup and no value of its own.
type Node struct {
	Kind Kind

	value   any
	version uint32

	listeners []*listenerEntry

	// dependents: nodes that read this one (valid for Signal, Computed).
	dependents    []*Node
	dependentSlot []int32

	// sources: nodes this one reads (valid for Computed, Effect).
	sources        []*Node
	sourceSlot     []int32
	sourceVersions []uint32

	dirty         bool
	queued        bool
	everEvaluated bool

	calc     func() any
	callback func() func()
	cleanup  func()

	// innerOwner is an Effect-only nested disposal scope: computeds and
	// effects created inside the effect's callback attach here, and are
	// torn down (and replaced with a fresh scope) before every rerun.
	innerOwner *Owner

	equal func(a, b any) bool

	Owner *Owner

	pendingNotice bool
	pendingOld    any

	processedEpoch uint64
	observedEpoch  uint64
	observedCache  bool

	rt *Runtime
}

// newNode allocates a bare node of the given kind, owned by rt.
func newNode(rt *Runtime, kind Kind) *Node {
	return &Node{Kind: kind, rt: rt}
}

// isEqual applies the node's equality policy: a custom comparator if
// one was supplied at construction, otherwise Object.is semantics.
func (n *Node) isEqual(a, b any) bool {
	if n.equal != nil {
		return n.equal(a, b)
	}
	return objectIs(a, b)
}

// attachEdge links sub (an observer: Computed or Effect) to dep (a
// Signal or Computed) it just read, recording the reciprocal slot
// indices required by the edge-symmetry invariant.
func attachEdge(sub, dep *Node) {
	sIdx := int32(len(sub.sources))
	dIdx := int32(len(dep.dependents))

	sub.sources = append(sub.sources, dep)
	sub.sourceSlot = append(sub.sourceSlot, dIdx)

	dep.dependents = append(dep.dependents, sub)
	dep.dependentSlot = append(dep.dependentSlot, sIdx)
}

// removeSourceAt swap-and-pops sub.sources[i], fixing the back-pointer
// of whichever source was moved into slot i.
func removeSourceAt(sub *Node, i int) {
	last := len(sub.sources) - 1
	if i != last {
		movedDep := sub.sources[last]
		movedSlot := sub.sourceSlot[last]

		sub.sources[i] = movedDep
		sub.sourceSlot[i] = movedSlot
		movedDep.dependentSlot[movedSlot] = int32(i)
	}

	sub.sources = sub.sources[:last]
	sub.sourceSlot = sub.sourceSlot[:last]

	// A shortened source list can no longer vouch for the version
	// fast-path (its length check in Evaluate would reject it anyway);
	// clearing it plainly disarms the fast path. It does not mark the
	// node dirty.
	sub.sourceVersions = sub.sourceVersions[:0]
}

// removeDependentAt swap-and-pops dep.dependents[j], fixing the
// back-pointer of whichever dependent was moved into slot j.
func removeDependentAt(dep *Node, j int32) {
	last := int32(len(dep.dependents) - 1)
	if j != last {
		movedSub := dep.dependents[last]
		movedI := dep.dependentSlot[last]

		dep.dependents[j] = movedSub
		dep.dependentSlot[j] = movedI
		movedSub.sourceSlot[movedI] = j
	}

	dep.dependents = dep.dependents[:last]
	dep.dependentSlot = dep.dependentSlot[:last]
}

// detachAllSources severs every edge from sub to its current sources,
// used before re-running a computed/effect body so that conditional
// dependencies shrink within one recomputation cycle (invariant P5).
func detachAllSources(sub *Node) {
	for i, dep := range sub.sources {
		removeDependentAt(dep, sub.sourceSlot[i])
	}
	sub.sources = sub.sources[:0]
	sub.sourceSlot = sub.sourceSlot[:0]
	sub.sourceVersions = sub.sourceVersions[:0]
}

// detachAllDependents severs every edge into dep from its dependents,
// used when disposing a signal/computed that others still read.
func detachAllDependents(dep *Node) {
	for j, sub := range dep.dependents {
		removeSourceAt(sub, int(dep.dependentSlot[j]))
	}
	dep.dependents = dep.dependents[:0]
	dep.dependentSlot = dep.dependentSlot[:0]
}

// track registers a dependency edge from the runtime's current
// observer to dep, deduplicated within the observer's current run and
// rejecting the self-read case (a node never depends on itself).
func track(rt *Runtime, dep *Node) {
	obs := rt.currentObserver
	if obs == nil || obs == dep {
		return
	}

	for _, s := range obs.sources {
		if s == dep {
			return
		}
	}

	attachEdge(obs, dep)
}

// addListener appends a listener in registration order and returns a
// token used to remove it later while preserving that order for the
// listeners that remain (invariant: listeners fire in registration
// order, so removal must not reorder survivors the way edge
// swap-and-pop would).
func addListener(n *Node, fn Listener) *listenerEntry {
	entry := &listenerEntry{fn: fn}
	n.listeners = append(n.listeners, entry)
	return entry
}

func removeListener(n *Node, entry *listenerEntry) {
	for i, le := range n.listeners {
		if le == entry {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return
		}
	}
}

// isObserved reports whether n has a direct listener or a downstream
// effect reachable through its dependents, the gate that keeps an
// unobserved computed lazy (spec §4.3). The result is memoized per
// drain epoch so that diamond-shaped graphs don't repeat the walk, and
// an unobserved wide fan-out (no dependents at all) resolves in O(1).
func isObserved(n *Node, epoch uint64) bool {
	if n.observedEpoch == epoch {
		return n.observedCache
	}

	// Mark before recursing: the graph is acyclic in practice, but this
	// guards against runaway recursion if a cycle were ever introduced.
	n.observedEpoch = epoch
	n.observedCache = false

	result := len(n.listeners) > 0
	if !result {
		for _, d := range n.dependents {
			if d.Kind == KindEffect {
				result = true
				break
			}
			if isObserved(d, epoch) {
				result = true
				break
			}
		}
	}

	n.observedCache = result
	return result
}
