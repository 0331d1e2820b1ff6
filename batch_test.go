package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatch(t *testing.T) {
	t.Run("multiple writes to the same signal notify once with (final, initial)", func(t *testing.T) {
		s := NewSignal(0)
		var seen [][2]int
		Subscribe[int](s, func(newVal, oldVal int) { seen = append(seen, [2]int{newVal, oldVal}) })

		Batch(func() any {
			s.Write(1)
			s.Write(2)
			s.Write(3)
			return nil
		})

		assert.Equal(t, [][2]int{{0, 0}, {3, 0}}, seen, "the initial subscribe call, then one batched notification")
	})

	t.Run("nested batches drain once, at the outermost close", func(t *testing.T) {
		s := NewSignal(0)
		var calls int
		Subscribe[int](s, func(newVal, oldVal int) { calls++ })

		Batch(func() any {
			s.Write(1)
			return Batch(func() any {
				s.Write(2)
				return nil
			})
		})

		assert.Equal(t, 2, calls, "one for the initial subscribe call, one for the whole nested batch")
	})

	t.Run("a top-level write drains at the call that made it, Batch coalesces several", func(t *testing.T) {
		// Go has no microtask queue to flush at, so each unwrapped
		// top-level write is its own synchronous sequence and drains on
		// return; Batch is what groups several writes into one drain.
		a := NewSignal(1)
		b := NewSignal(2)
		var runs int
		CreateRoot(func(dispose func()) {
			NewEffect(func() func() {
				_ = a.Read() + b.Read()
				runs++
				return nil
			})
		})
		assert.Equal(t, 1, runs)

		a.Write(10)
		b.Write(20)
		assert.Equal(t, 3, runs, "two unwrapped top-level writes each drain separately")

		runs = 0
		Batch(func() any {
			a.Write(100)
			b.Write(200)
			return nil
		})
		assert.Equal(t, 1, runs, "wrapped in Batch, both writes settle in a single drain")
	})

	t.Run("reading an observed computed mid-batch still notifies at drain", func(t *testing.T) {
		s := NewSignal(1)
		c := NewComputed(func() int { return s.Read() * 2 })

		var seen []int
		Subscribe[int](c, func(newVal, oldVal int) { seen = append(seen, newVal) })
		seen = nil

		var midBatchRead int
		Batch(func() any {
			s.Write(5)
			midBatchRead = c.Read() // forces Evaluate while batchDepth > 0, before any drain
			return nil
		})

		assert.Equal(t, 10, midBatchRead, "a mid-batch read observes the new value immediately")
		assert.Equal(t, []int{10}, seen, "the subscriber still fires once the batch closes")
	})

	t.Run("a downstream computed stays fresh after a mid-batch read of its source", func(t *testing.T) {
		s := NewSignal(1)
		c := NewComputed(func() int { return s.Read() * 2 })
		t2 := NewComputed(func() int { return c.Read() + 1 })

		assert.Equal(t, 3, t2.Read())

		Batch(func() any {
			s.Write(5)
			c.Read() // mid-batch read must not leave c clean-but-stale
			return nil
		})

		assert.Equal(t, 11, t2.Read(), "t2 recomputes from c's new value rather than staying clean on a stale cache")
	})

	t.Run("an effect opening its own Batch does not corrupt the outer drain", func(t *testing.T) {
		a := NewSignal(1)
		b := NewSignal(2)
		var sums []int

		CreateRoot(func(dispose func()) {
			NewEffect(func() func() {
				if a.Read() == 10 {
					Batch(func() any {
						b.Write(100)
						b.Write(200)
						return nil
					})
				}
				return nil
			})
			NewEffect(func() func() {
				sums = append(sums, a.Read()+b.Read())
				return nil
			})
		})

		sums = nil
		a.Write(10)

		assert.Equal(t, []int{210}, sums, "b settles at its final batched value within the same outer drain")
	})
}
