package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwner(t *testing.T) {
	t.Run("disposing a root disposes its effects and stops further reruns", func(t *testing.T) {
		s := NewSignal(0)
		var runs int

		dispose := CreateRoot(func(dispose func()) {
			NewEffect(func() func() {
				s.Read()
				runs++
				return nil
			})
		})

		assert.Equal(t, 1, runs)
		s.Write(1)
		assert.Equal(t, 2, runs)

		dispose()
		s.Write(2)
		assert.Equal(t, 2, runs, "a disposed root's effect must not rerun")
	})

	t.Run("disposing a nested root leaves its sibling and ancestor untouched", func(t *testing.T) {
		s := NewSignal(0)
		var outerRuns, innerRuns, siblingRuns int
		var disposeInner Dispose

		CreateRoot(func(dispose func()) {
			NewEffect(func() func() {
				s.Read()
				outerRuns++
				return nil
			})

			disposeInner = CreateRoot(func(dispose func()) {
				NewEffect(func() func() {
					s.Read()
					innerRuns++
					return nil
				})
			})

			CreateRoot(func(dispose func()) {
				NewEffect(func() func() {
					s.Read()
					siblingRuns++
					return nil
				})
			})
		})

		assert.Equal(t, 1, outerRuns)
		assert.Equal(t, 1, innerRuns)
		assert.Equal(t, 1, siblingRuns)

		disposeInner()
		s.Write(1)

		assert.Equal(t, 2, outerRuns, "ancestor keeps running")
		assert.Equal(t, 1, innerRuns, "disposed scope stops")
		assert.Equal(t, 2, siblingRuns, "sibling scope is unaffected by disposing its neighbor")
	})

	t.Run("cleanups run in reverse registration order", func(t *testing.T) {
		var order []string

		dispose := CreateRoot(func(dispose func()) {
			OnCleanup(func() { order = append(order, "first") })
			OnCleanup(func() { order = append(order, "second") })
			OnCleanup(func() { order = append(order, "third") })
		})

		dispose()
		assert.Equal(t, []string{"third", "second", "first"}, order)
	})

	t.Run("disposing twice is a no-op", func(t *testing.T) {
		var cleanups int
		dispose := CreateRoot(func(dispose func()) {
			OnCleanup(func() { cleanups++ })
		})

		dispose()
		dispose()
		assert.Equal(t, 1, cleanups)
	})

	t.Run("OnError catches an effect panic instead of it propagating", func(t *testing.T) {
		s := NewSignal(0)
		var caught any

		CreateRoot(func(dispose func()) {
			GetOwner().OnError(func(v any) { caught = v })

			NewEffect(func() func() {
				if s.Read() == 1 {
					panic("boom")
				}
				return nil
			})
		})

		assert.NotPanics(t, func() { s.Write(1) })
		assert.Equal(t, "boom", caught)
	})

	t.Run("OnError on an ancestor catches a panic from a descendant effect", func(t *testing.T) {
		s := NewSignal(0)
		var caught any

		CreateRoot(func(dispose func()) {
			GetOwner().OnError(func(v any) { caught = v })

			CreateRoot(func(dispose func()) {
				NewEffect(func() func() {
					if s.Read() == 1 {
						panic("nested boom")
					}
					return nil
				})
			})
		})

		assert.NotPanics(t, func() { s.Write(1) })
		assert.Equal(t, "nested boom", caught)
	})

	t.Run("without any OnError, an effect panic is swallowed and logged", func(t *testing.T) {
		s := NewSignal(0)

		CreateRoot(func(dispose func()) {
			NewEffect(func() func() {
				if s.Read() == 1 {
					panic("unhandled")
				}
				return nil
			})
		})

		assert.NotPanics(t, func() { s.Write(1) })
	})

	t.Run("GetOwner returns nil outside any root", func(t *testing.T) {
		assert.Nil(t, GetOwner())
	})

	t.Run("GetOwner returns the scope in effect while fn runs", func(t *testing.T) {
		var seen *Owner
		CreateRoot(func(dispose func()) {
			seen = GetOwner()
		})
		assert.NotNil(t, seen)
	})
}
