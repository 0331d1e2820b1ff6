package zenasync

import "time"

// Get returns the current cached data for args, and whether the entry
// holds settled data (from a completed run or a Set) that has not been
// invalidated since.
func (c *Cache[T]) Get(args ...any) (data T, ok bool) {
	key := c.cacheKey(args)
	e := c.getEntry(key, args)

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Data, e.hasRun
}

// Set writes data directly into the entry keyed by args as an
// optimistic update, notifying listeners immediately without running
// fn (§4.9).
func (c *Cache[T]) Set(data T, args ...any) {
	key := c.cacheKey(args)
	e := c.getEntry(key, args)

	e.mu.Lock()
	e.runID++
	e.hasRun = true
	e.timestamp = time.Now()
	e.state = State[T]{Data: data}
	e.mu.Unlock()

	c.notify(e)
}

// Invalidate clears the cached data for args. If the entry has
// listeners, it immediately triggers a refetch; otherwise it is left
// empty for the next Run to repopulate (§4.9).
func (c *Cache[T]) Invalidate(args ...any) {
	key := c.cacheKey(args)
	e := c.getEntry(key, args)

	e.mu.Lock()
	hasListeners := len(e.listeners) > 0
	e.hasRun = false
	e.state = State[T]{}
	var runID uint64
	var done chan struct{}
	if hasListeners {
		runID, done = c.beginRunLocked(e)
	} else {
		e.runID++
	}
	e.mu.Unlock()

	c.notify(e)

	if hasListeners {
		go c.finish(key, e, args, runID, done)
	}
}

// InvalidateAll invalidates every entry currently in the cache.
func (c *Cache[T]) InvalidateAll() {
	c.mu.Lock()
	keys := make([]string, 0, len(c.entries))
	entries := make([]*entry[T], 0, len(c.entries))
	for k, e := range c.entries {
		keys = append(keys, k)
		entries = append(entries, e)
	}
	c.mu.Unlock()

	for i, e := range entries {
		key := keys[i]
		e.mu.Lock()
		e.hasRun = false
		e.state = State[T]{}
		hasListeners := len(e.listeners) > 0
		args := e.args
		var runID uint64
		var done chan struct{}
		if hasListeners {
			runID, done = c.beginRunLocked(e)
		} else {
			e.runID++
		}
		e.mu.Unlock()

		c.notify(e)
		if hasListeners {
			go c.finish(key, e, args, runID, done)
		}
	}
}

// Dispose removes the entry for args from the cache outright,
// regardless of its CacheTime/KeepAlive policy.
func (c *Cache[T]) Dispose(args ...any) {
	key := c.cacheKey(args)

	c.mu.Lock()
	e, ok := c.entries[key]
	delete(c.entries, key)
	c.mu.Unlock()

	if ok {
		e.mu.Lock()
		if e.disposeTimer != nil {
			e.disposeTimer.Stop()
		}
		e.mu.Unlock()
	}
}

// Stats returns a snapshot of the cache's hit/miss/dedup counters and
// current entry count.
func (c *Cache[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
		Dedups:  c.dedups,
	}
}

// scheduleDisposeIfIdle arms the CacheTime eviction timer for e once
// it has no listeners, unless KeepAlive disables eviction entirely. A
// new Subscribe before the timer fires cancels it.
func (c *Cache[T]) scheduleDisposeIfIdle(key string, e *entry[T]) {
	if c.opts.KeepAlive {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.listeners) > 0 {
		return
	}
	if e.disposeTimer != nil {
		e.disposeTimer.Stop()
	}
	e.disposeTimer = time.AfterFunc(c.opts.CacheTime, func() {
		c.mu.Lock()
		if c.entries[key] == e {
			delete(c.entries, key)
		}
		c.mu.Unlock()
	})
}
