package graph

import "math"

// objectIs implements the default equality policy named throughout the
// specification as "Object.is semantics": ordinary equality except
// that NaN is equal to itself and +0/-0 are distinct. Writes and
// recomputations that would leave a node's value unchanged under this
// comparator are rejected before any propagation (invariant 2).
func objectIs(a, b any) bool {
	if af, ok := a.(float64); ok {
		bf, ok := b.(float64)
		if !ok {
			return false
		}
		return float64Is(af, bf)
	}
	if af, ok := a.(float32); ok {
		bf, ok := b.(float32)
		if !ok {
			return false
		}
		return float64Is(float64(af), float64(bf))
	}

	return comparableEqual(a, b)
}

// comparableEqual isolates the one comparison that can panic (a or b
// holding a non-comparable dynamic type such as a slice, map, or
// func) so objectIs can fall back to "not equal" instead of crashing
// the write path.
func comparableEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

func float64Is(a, b float64) bool {
	if a != a && b != b {
		return true // NaN equals NaN under Object.is
	}
	if a == 0 && b == 0 {
		return math.Signbit(a) == math.Signbit(b) // +0 distinct from -0
	}
	return a == b
}
