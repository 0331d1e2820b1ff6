package reactor

import "github.com/flowcore/reactor/internal/graph"

// Unsubscribe removes a listener registered via Subscribe. Calling it
// more than once is a no-op.
type Unsubscribe func()

// Subscribe registers listener to run on every future change to node,
// receiving the new and the pre-change value. Subscribing to a
// computed that has never been read forces its first evaluation so
// its dependency edges exist before a change can reach it.
func Subscribe[T any](node ReadHandle[T], listener func(newVal, oldVal T)) Unsubscribe {
	rt := graph.GetRuntime()
	un := graph.Subscribe(rt, node.rawNode(), func(newVal, oldVal any) {
		listener(as[T](newVal), as[T](oldVal))
	})
	return Unsubscribe(un)
}
