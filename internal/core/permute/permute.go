// Package permute enumerates orderings of a deck.
//
// Two strategies implement the same Iterator contract: Multiset emits every
// distinct permutation of the deck's multiset exactly once, while Exhaustive
// emits all n! orderings including duplicates and serves as a slower
// reference mode.
package permute

import "github.com/busarovalex/snap-kombination/internal/core/deck"

// Iterator is a lazy, finite sequence of deck orderings.
type Iterator[T comparable] interface {
	// Next returns the next ordering; the second return value is false once
	// the sequence is exhausted.
	Next() (deck.Deck[T], bool)
	// Count returns the exact number of orderings the sequence produces,
	// computed without enumerating.
	Count() uint64
}

// Factory builds an iterator over the orderings of a deck. It lets callers
// pick an enumeration strategy without binding to a concrete type.
type Factory[T comparable] func(deck.Deck[T]) Iterator[T]
