package reactor

// as asserts v to T, returning the zero value instead of panicking
// when v is nil (a nil interface value, or the nil old value passed to
// a listener's initial Subscribe call).
func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}
