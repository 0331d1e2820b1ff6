package graph

// RunUntracked runs fn with dependency tracking suspended: reads made
// inside fn do not register edges on whatever node is currently being
// evaluated (§4.2's escape hatch for intentionally-unreactive reads).
func RunUntracked(rt *Runtime, fn func() any) any {
	prev := rt.currentObserver
	rt.currentObserver = nil
	defer func() { rt.currentObserver = prev }()
	return fn()
}

// PeekSignal reads s's value without tracking, regardless of whether an
// observer is currently running.
func PeekSignal(s *Node) any {
	return s.value
}

// PeekComputed forces c up to date if necessary and returns its value,
// without registering a dependency edge on the current observer.
func PeekComputed(rt *Runtime, c *Node) any {
	if !c.everEvaluated || c.dirty {
		Evaluate(rt, c)
	}
	return c.value
}
