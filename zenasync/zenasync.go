// Package zenasync is a keyed async cache layered on top of the core
// reactive graph (§4.9): given an async function, it memoizes results
// per argument key, deduplicates concurrent calls for the same key,
// and can serve stale data while refreshing in the background. It is
// deliberately not a reactive node itself — state changes reach
// callers by direct listener fan-out, the same mechanism a consumer
// can wrap in a signal if they want the result to participate in the
// graph.
//
// Unlike the single-threaded cooperative core, zenasync is safe to
// drive from multiple goroutines: a mutex guards the entry map and
// each entry, and staleTime background refreshes run on their own
// goroutine.
package zenasync

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"
)

// State is the snapshot published to listeners and returned by
// GetState: loading while a run is inflight, data/error once settled.
type State[T any] struct {
	Loading bool
	Data    T
	Error   error
}

// Options configures a Cache at construction time.
type Options struct {
	// CacheKey canonicalizes call arguments into the key used to
	// dedupe/cache entries. Defaults to the arguments themselves,
	// JSON-marshaled.
	CacheKey func(args []any) []any

	// KeepAlive disables the CacheTime disposal timer: an entry with
	// no listeners is never evicted.
	KeepAlive bool

	// CacheTime is how long an entry with zero listeners survives
	// before being disposed. Defaults to 30 seconds.
	CacheTime time.Duration

	// StaleTime is how long a settled entry is served without
	// triggering a background refresh. Zero means never stale.
	StaleTime time.Duration
}

// Stats is a read-only snapshot of a Cache's effectiveness counters.
type Stats struct {
	Entries int
	Hits    int64
	Misses  int64
	Dedups  int64
}

// Unsubscribe removes a listener registered via Subscribe.
type Unsubscribe func()

type entry[T any] struct {
	mu        sync.Mutex
	state     State[T]
	hasRun    bool
	timestamp time.Time

	// args are the arguments of the most recent caller to touch this
	// entry, retained so a background refresh triggered without fresh
	// arguments of its own (Invalidate, InvalidateAll, a stale-time
	// refresh) knows what to call fn with.
	args []any

	listeners      map[int]func(State[T])
	nextListenerID int

	runID uint64
	done  chan struct{}

	disposeTimer *time.Timer
}

// Cache is a handle returned by New: one keyed cache around fn.
type Cache[T any] struct {
	fn   func(args []any) (T, error)
	opts Options

	mu      sync.Mutex
	entries map[string]*entry[T]

	hits, misses, dedups int64
}

// New creates a cache around fn. A zero Options is valid and applies
// the documented defaults.
func New[T any](fn func(args []any) (T, error), opts Options) *Cache[T] {
	if opts.CacheTime <= 0 {
		opts.CacheTime = 30 * time.Second
	}
	return &Cache[T]{
		fn:      fn,
		opts:    opts,
		entries: make(map[string]*entry[T]),
	}
}

func (c *Cache[T]) cacheKey(args []any) string {
	keyArgs := args
	if c.opts.CacheKey != nil {
		keyArgs = c.opts.CacheKey(args)
	}
	b, err := json.Marshal(keyArgs)
	if err != nil {
		// Args that don't marshal cleanly still need a stable key;
		// falling back to one entry per distinct argument count keeps
		// such calls with different argument counts from colliding
		// (calls with the same count share the fallback entry).
		return "?unmarshalable:" + strconv.Itoa(len(keyArgs))
	}
	return string(b)
}

func (c *Cache[T]) getEntry(key string, args []any) *entry[T] {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry[T]{listeners: make(map[int]func(State[T]))}
		c.entries[key] = e
	}
	c.mu.Unlock()

	e.mu.Lock()
	e.args = args
	e.mu.Unlock()

	return e
}

// Run executes fn(args) if needed and returns its result: a fresh
// cached entry returns immediately without calling fn, a stale one
// returns cached data while refreshing in the background, a miss or a
// first call runs fn synchronously, and concurrent callers for the
// same inflight key all resolve to the same run (§4.9).
func (c *Cache[T]) Run(args ...any) (T, error) {
	key := c.cacheKey(args)
	e := c.getEntry(key, args)

	e.mu.Lock()
	if e.done != nil {
		done := e.done
		e.mu.Unlock()
		c.bump(&c.dedups)
		<-done
		e.mu.Lock()
		data, err := e.state.Data, e.state.Error
		e.mu.Unlock()
		return data, err
	}

	if e.hasRun {
		fresh := c.opts.StaleTime <= 0 || time.Since(e.timestamp) < c.opts.StaleTime
		data, err := e.state.Data, e.state.Error

		var runID uint64
		var done chan struct{}
		if !fresh {
			runID, done = c.beginRunLocked(e)
		}
		e.mu.Unlock()

		c.bump(&c.hits)
		if !fresh {
			c.notify(e)
			go c.finish(key, e, args, runID, done)
		}
		return data, err
	}

	runID, done := c.beginRunLocked(e)
	e.mu.Unlock()

	c.bump(&c.misses)
	c.notify(e)
	return c.finish(key, e, args, runID, done)
}

func (c *Cache[T]) bump(counter *int64) {
	c.mu.Lock()
	*counter++
	c.mu.Unlock()
}

// beginRunLocked marks e as having a run inflight — bumping its run id
// and arming e.done — so that any concurrent caller observing e under
// the same lock either before or after this call sees a consistent
// in-flight/not-in-flight state. Must be called with e.mu held; the
// caller is responsible for notifying listeners and starting the
// actual work after unlocking.
func (c *Cache[T]) beginRunLocked(e *entry[T]) (runID uint64, done chan struct{}) {
	e.runID++
	runID = e.runID
	done = make(chan struct{})
	e.done = done
	e.state.Loading = true
	return runID, done
}

// finish runs fn once and publishes the terminal state, called both
// for a synchronous miss (the caller blocks on its own return value)
// and for a background stale/invalidate refresh (the caller already
// has a value and this result only reaches listeners). The result is
// discarded if a concurrent Invalidate/Set/refresh bumped e.runID
// again before this one completed.
func (c *Cache[T]) finish(key string, e *entry[T], args []any, runID uint64, done chan struct{}) (T, error) {
	data, err := c.fn(args)

	e.mu.Lock()
	superseded := e.runID != runID
	if !superseded {
		e.hasRun = true
		e.timestamp = time.Now()
		e.state = State[T]{Loading: false, Data: data, Error: err}
		e.done = nil
	} else if e.done == done {
		// Superseded by a Set or a listener-less Invalidate, which start
		// no run of their own: disarm this run's marker so the next Run
		// is not left waiting on an already-closed channel forever.
		e.done = nil
	}
	e.mu.Unlock()
	close(done)

	if !superseded {
		c.notify(e)
		c.scheduleDisposeIfIdle(key, e)
	}
	return data, err
}
