package zenasync

// RunZenAsync runs c for args, exactly as c.Run(args...).
func RunZenAsync[T any](c *Cache[T], args ...any) (T, error) {
	return c.Run(args...)
}

// SubscribeToZenAsync subscribes listener to c's entry for args,
// exactly as c.Subscribe(args, listener).
func SubscribeToZenAsync[T any](c *Cache[T], args []any, listener func(State[T])) Unsubscribe {
	return c.Subscribe(args, listener)
}

// GetZenAsyncState returns c's current state for args, exactly as
// c.GetState(args...).
func GetZenAsyncState[T any](c *Cache[T], args ...any) State[T] {
	return c.GetState(args...)
}
