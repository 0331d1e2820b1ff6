// Package reactor is a fine-grained reactive runtime: signals hold
// state, computeds derive it lazily, and effects run side effects when
// it changes. Dependencies are discovered automatically by reading a
// signal or computed inside a computed's calc or an effect's body —
// there is no explicit subscription list to maintain by hand.
//
// A typical program creates a root, builds a small graph of signals
// and computeds inside it, attaches effects, and disposes the root
// when that graph is no longer needed:
//
//	dispose := reactor.CreateRoot(func(dispose func()) {
//		count := reactor.NewSignal(0)
//		doubled := reactor.NewComputed(func() int { return count.Read() * 2 })
//		reactor.NewEffect(func() func() {
//			fmt.Println(doubled.Read())
//			return nil
//		})
//		count.Write(1)
//	})
//	defer dispose()
//
// The async cache wrapper for keyed, deduplicated async work lives in
// the zenasync subpackage.
package reactor
