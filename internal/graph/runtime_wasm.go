//go:build js && wasm

package graph

import "sync"

// On wasm there is exactly one goroutine driving the browser event
// loop in practice, so the goroutine-id lookup used by the default
// build collapses to a single memoized Runtime.
var (
	runtimeOnce sync.Once
	wasmRuntime *Runtime
)

// GetRuntime returns the process-wide Runtime.
func GetRuntime() *Runtime {
	runtimeOnce.Do(func() {
		wasmRuntime = newRuntime()
	})
	return wasmRuntime
}
