package graph

import (
	"log/slog"
	"runtime/debug"
)

// recoverEffectPanic routes a recovered effect-callback panic to the
// nearest ancestor owner with a registered OnError catcher (§4.7). If
// none is registered anywhere up the chain, the panic is logged and
// otherwise swallowed — the effect stays registered and will rerun on
// the next dependency change (§7.2).
func recoverEffectPanic(e *Node, v any) {
	if e.Owner != nil && e.Owner.handlePanic(v) {
		return
	}

	slog.Warn("reactor: effect panic recovered",
		slog.Any("panic", v),
		slog.String("stack", string(debug.Stack())),
	)
}

// cascadeLimitError is panicked by the scheduler when a drain exceeds
// maxDrainIterations, surfacing an infinite write/effect cascade (§7.5)
// instead of looping forever or swallowing it.
type cascadeLimitError struct {
	iterations int
}

func (e *cascadeLimitError) Error() string {
	return "reactor: possible infinite update cascade detected (exceeded iteration bound)"
}
