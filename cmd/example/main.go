package main

import (
	"fmt"

	"github.com/flowcore/reactor"
)

func main() {
	reactor.CreateRoot(func(dispose func()) {
		a := reactor.NewSignal(1)
		b := reactor.NewSignal(2)

		sum := reactor.NewComputed(func() int {
			result := a.Read() + b.Read()
			fmt.Println("  [computed] sum:", result)
			return result
		})

		reactor.NewEffect(func() func() {
			fmt.Println("  [effect] sum is:", sum.Read())
			return nil
		})

		fmt.Println("\nwriting a and b in a batch...")
		reactor.Batch(func() any {
			a.Write(10)
			b.Write(20)
			return nil
		})

		fmt.Println("\nsum recomputes once per batch, regardless of how many inputs changed")

		unsub := reactor.Subscribe[int](sum, func(newVal, oldVal int) {
			fmt.Println("  [subscribe] sum changed:", oldVal, "->", newVal)
		})
		defer unsub()

		a.Write(100)
		dispose()
	})
}
