// Package placement enumerates k-subsets of an n-slot index space and
// remaps indices between compacted and absolute slot numbers.
//
// The iterator walks a revolving-door order: successive subsets differ by a
// single decrement or a carry, so advancing is O(1) amortized and never
// recomputes a subset from scratch. The order is deterministic but not
// lexicographic.
package placement

import (
	"fmt"

	"github.com/busarovalex/snap-kombination/internal/core/deck"
)

// Placement is a chosen subset of k distinct positions within an n-slot
// universe.
type Placement struct {
	positions [deck.MaxSize]int
	size      int
}

// Positions returns the chosen positions. The slice aliases a copy of the
// placement and stays valid after the iterator advances.
func (p Placement) Positions() []int {
	return p.positions[:p.size]
}

// Iterator produces every C(n, k) k-subset of {0..n-1} exactly once, in a
// fixed order, and can be restarted once exhausted.
type Iterator struct {
	n        int
	k        int
	c        [deck.MaxSize]int
	j        int
	finished bool
}

// NewIterator builds an iterator over k-subsets of an n-slot universe.
//
// It panics when k > n or n > deck.MaxSize; both are construction-time
// invariants.
func NewIterator(n, k int) *Iterator {
	it := &Iterator{}
	it.init(n, k)
	return it
}

func (it *Iterator) init(n, k int) {
	if k > n {
		panic(fmt.Sprintf("k = %d is too large, max value is n = %d", k, n))
	}
	if n > deck.MaxSize {
		panic(fmt.Sprintf("n = %d is too large, max value is %d", n, deck.MaxSize))
	}
	*it = Iterator{n: n, k: k}
	for i := 0; i < k; i++ {
		it.c[i] = i
	}
	if k < n {
		it.c[k] = n
	}
}

// Next returns the current subset and advances. The second return value is
// false once the sequence is exhausted.
func (it *Iterator) Next() (Placement, bool) {
	if it.finished {
		return Placement{}, false
	}
	var current Placement
	current.positions = it.c
	current.size = it.k
	it.advance()
	return current, true
}

// Reset reinitializes the iterator to the first subset for the same (n, k).
//
// It panics when the sequence has not reported exhaustion yet.
func (it *Iterator) Reset() {
	if !it.finished {
		panic("trying to reset unfinished iterator")
	}
	it.init(it.n, it.k)
}

func (it *Iterator) advance() {
	if it.finished {
		return
	}
	if it.k == it.n || it.k == 0 {
		it.finished = true
		return
	}
	if it.k == 1 {
		it.c[0]++
		if it.c[0] == it.c[1] {
			it.finished = true
		}
		return
	}
	if it.k%2 == 0 {
		if it.c[0] > 0 {
			it.c[0]--
		} else {
			it.j = 1
			it.tryToIncrease()
		}
		return
	}
	if it.c[0]+1 < it.c[1] {
		it.c[0]++
	} else {
		it.j = 1
		it.tryToDecrease()
	}
}

func (it *Iterator) tryToIncrease() {
	if it.c[it.j]+1 < it.c[it.j+1] {
		it.c[it.j-1] = it.c[it.j]
		it.c[it.j]++
		return
	}
	it.j++
	if it.j+1 <= it.k {
		it.tryToDecrease()
	} else {
		it.finished = true
	}
}

func (it *Iterator) tryToDecrease() {
	if it.c[it.j] >= it.j+1 {
		it.c[it.j] = it.c[it.j-1]
		it.c[it.j-1] = it.j - 1
		return
	}
	it.j++
	it.tryToIncrease()
}
