//go:build !js || !wasm

package graph

import (
	"sync"

	"github.com/petermattis/goid"
)

// runtimes maps a goroutine id to the Runtime it created (or first
// touched) via GetRuntime. Keeping one Runtime per goroutine lets
// independent createRoot trees on independent goroutines run without
// interfering with each other's current-observer/current-owner
// globals (§5). No check is made that a node is only driven from the
// goroutine whose Runtime created it: a call from another goroutine
// simply runs against that goroutine's own Runtime.
var runtimes sync.Map

// GetRuntime returns the Runtime for the calling goroutine, creating
// one on first use.
func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := newRuntime()
	runtimes.Store(gid, r)
	return r
}
