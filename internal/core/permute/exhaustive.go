package permute

import "github.com/busarovalex/snap-kombination/internal/core/deck"

// Exhaustive enumerates all n! orderings of a deck by successive swaps
// (Heap's algorithm, iterative form). Repeated card values produce duplicate
// emissions; the distinct orderings it visits equal exactly the set Multiset
// emits.
type Exhaustive[T comparable] struct {
	items           []T
	size            int
	initialReturned bool
	i               int
	c               []int
}

// NewExhaustive builds the full-permutation iterator for a deck.
func NewExhaustive[T comparable](d deck.Deck[T]) *Exhaustive[T] {
	items := make([]T, d.Size())
	for i := range items {
		items[i] = d.At(i)
	}
	return &Exhaustive[T]{
		items: items,
		size:  d.Size(),
		c:     make([]int, d.Size()),
	}
}

// Next returns the next ordering; the second return value is false once all
// n! orderings have been emitted.
func (e *Exhaustive[T]) Next() (deck.Deck[T], bool) {
	if !e.initialReturned {
		e.initialReturned = true
		return deck.New(e.items), true
	}
	for e.i < e.size {
		if e.c[e.i] < e.i {
			if e.i%2 == 0 {
				e.items[0], e.items[e.i] = e.items[e.i], e.items[0]
			} else {
				e.items[e.c[e.i]], e.items[e.i] = e.items[e.i], e.items[e.c[e.i]]
			}
			e.c[e.i]++
			e.i = 0
			return deck.New(e.items), true
		}
		e.c[e.i] = 0
		e.i++
	}
	return deck.Deck[T]{}, false
}

// Count always returns n! regardless of repeated values. With repeats this
// overcounts the distinct orderings; the figure serves as an upper bound for
// the fallback mode and deliberately diverges from Multiset.Count.
func (e *Exhaustive[T]) Count() uint64 {
	count := uint64(1)
	for i := uint64(2); i <= uint64(e.size); i++ {
		count *= i
	}
	return count
}
