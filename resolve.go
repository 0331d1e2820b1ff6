package reactor

// signalMarker is implemented only by *Signal[T], letting IsSignal
// distinguish a signal from a computed without a type switch over
// every instantiation of Signal[T].
type signalMarker interface {
	isSignalMark()
}

// IsSignal reports whether x is a *Signal[T] for some T.
func IsSignal(x any) bool {
	_, ok := x.(signalMarker)
	return ok
}

// anyReader is implemented by *Signal[T] and *Computed[T], letting
// Resolve read through either without knowing which one it has.
type anyReader interface {
	readAny() any
}

// Resolve returns x's current value if x is a *Signal[T] or
// *Computed[T] (tracking the read as usual), calls x if it is a plain
// func() T, or returns x itself otherwise. Useful for APIs that accept
// a reactive value, a thunk, or a static value interchangeably.
func Resolve[T any](x any) T {
	if r, ok := x.(anyReader); ok {
		return as[T](r.readAny())
	}
	if fn, ok := x.(func() T); ok {
		return fn()
	}
	return as[T](x)
}
