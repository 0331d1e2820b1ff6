package graph

// Unsubscribe removes a previously registered listener. Calling it more
// than once is a no-op.
type Unsubscribe func()

// Subscribe registers fn to run on every future change to n, plus once
// immediately with n's current value as the new value and nil as the
// old value (§4.8, Open Question 2). A computed that has never been
// evaluated (or is dirty) is wired up right away so its dependency
// edges exist before the first change can reach it. If Subscribe is
// itself called reentrantly from inside a running drain (a listener or
// effect subscribing to something new), the computed is still wired
// immediately, but the initial call is deferred until the current
// drain finishes, so it observes settled state rather than a
// mid-cascade value.
func Subscribe(rt *Runtime, n *Node, fn Listener) Unsubscribe {
	entry := addListener(n, fn)

	if rt.draining {
		if n.Kind == KindComputed {
			PeekComputed(rt, n)
		}
		rt.pendingInitialCalls = append(rt.pendingInitialCalls, func() {
			fireInitial(rt, n, fn)
		})
	} else {
		fireInitial(rt, n, fn)
	}

	return func() {
		removeListener(n, entry)
	}
}

func fireInitial(rt *Runtime, n *Node, fn Listener) {
	var v any
	switch n.Kind {
	case KindComputed:
		v = PeekComputed(rt, n)
	default:
		v = n.value
	}
	fn(v, nil)
}
