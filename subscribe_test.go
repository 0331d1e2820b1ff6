package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribe(t *testing.T) {
	t.Run("counter: initial call then one notification per change", func(t *testing.T) {
		count := NewSignal(0)
		var seen [][2]int
		Subscribe[int](count, func(newVal, oldVal int) { seen = append(seen, [2]int{newVal, oldVal}) })

		assert.Equal(t, [][2]int{{0, 0}}, seen, "Subscribe fires once immediately with the current value")

		count.Write(1)
		count.Write(2)
		assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {2, 1}}, seen)

		count.Write(2)
		assert.Equal(t, 3, len(seen), "writing the same value again is a no-op, no extra notification")
	})

	t.Run("unsubscribe stops future notifications but does not unwind past ones", func(t *testing.T) {
		s := NewSignal(0)
		var calls int
		unsub := Subscribe[int](s, func(newVal, oldVal int) { calls++ })
		assert.Equal(t, 1, calls)

		s.Write(1)
		assert.Equal(t, 2, calls)

		unsub()
		s.Write(2)
		assert.Equal(t, 2, calls, "no call after unsubscribing")
	})

	t.Run("unsubscribing twice is a no-op", func(t *testing.T) {
		s := NewSignal(0)
		unsub := Subscribe[int](s, func(newVal, oldVal int) {})
		unsub()
		assert.NotPanics(t, func() { unsub() })
	})

	t.Run("subscribing and immediately unsubscribing leaves later listeners unaffected", func(t *testing.T) {
		s := NewSignal(0)
		var order []string

		Subscribe[int](s, func(newVal, oldVal int) { order = append(order, "a") })

		unsubB := Subscribe[int](s, func(newVal, oldVal int) { order = append(order, "b") })
		unsubB()

		Subscribe[int](s, func(newVal, oldVal int) { order = append(order, "c") })

		order = nil
		s.Write(1)
		assert.Equal(t, []string{"a", "c"}, order, "b was removed without disturbing a's or c's registration order")
	})

	t.Run("listeners fire in registration order, including after a middle one unsubscribes", func(t *testing.T) {
		s := NewSignal(0)
		var order []string

		Subscribe[int](s, func(newVal, oldVal int) { order = append(order, "first") })
		unsubSecond := Subscribe[int](s, func(newVal, oldVal int) { order = append(order, "second") })
		Subscribe[int](s, func(newVal, oldVal int) { order = append(order, "third") })

		order = nil
		unsubSecond()
		s.Write(1)

		assert.Equal(t, []string{"first", "third"}, order, "removing second preserves first/third's relative order")
	})

	t.Run("subscribing to a never-read computed forces its first evaluation", func(t *testing.T) {
		var calcs int
		base := NewSignal(10)
		doubled := NewComputed(func() int {
			calcs++
			return base.Read() * 2
		})

		var seen int
		Subscribe[int](doubled, func(newVal, oldVal int) { seen = newVal })

		assert.Equal(t, 1, calcs, "Subscribe wires the computed up without waiting for a Read")
		assert.Equal(t, 20, seen)

		base.Write(11)
		assert.Equal(t, 22, seen)
	})
}
