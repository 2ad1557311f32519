package permute

import (
	"testing"

	"github.com/busarovalex/snap-kombination/internal/core/deck"
)

func TestExhaustiveEmitsAllOrderings(t *testing.T) {
	tests := []struct {
		name     string
		cards    []int
		emitted  int
		distinct int
	}{
		{"single card", []int{1}, 1, 1},
		{"three distinct", []int{1, 2, 3}, 6, 6},
		{"four distinct", []int{1, 2, 3, 4}, 24, 24},
		{"repeats emit duplicates", []int{0, 0, 1}, 6, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewExhaustive(deck.New(tt.cards))
			unique := make(map[deck.Deck[int]]bool)
			emitted := 0
			for d, ok := it.Next(); ok; d, ok = it.Next() {
				unique[d] = true
				emitted++
			}
			if emitted != tt.emitted {
				t.Errorf("emitted %d orderings, want %d", emitted, tt.emitted)
			}
			if len(unique) != tt.distinct {
				t.Errorf("distinct orderings = %d, want %d", len(unique), tt.distinct)
			}
		})
	}
}

func TestExhaustiveCountIsFactorial(t *testing.T) {
	tests := []struct {
		name  string
		cards []int
		want  uint64
	}{
		{"one", []int{1}, 1},
		{"four distinct", []int{1, 2, 3, 4}, 24},
		// Count reports n! even though only 3 orderings are distinct.
		{"repeats still factorial", []int{0, 0, 1}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewExhaustive(deck.New(tt.cards))
			if got := it.Count(); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExhaustiveVisitsSameDistinctSetAsMultiset(t *testing.T) {
	tests := []struct {
		name  string
		cards []int
	}{
		{"two values size 3", []int{0, 1, 1}},
		{"two doubled values size 4", []int{0, 0, 1, 1}},
		{"three values size 4", []int{0, 1, 1, 2}},
		{"three values size 5", []int{0, 0, 1, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exhaustive := make(map[deck.Deck[int]]bool)
			it := NewExhaustive(deck.New(tt.cards))
			for d, ok := it.Next(); ok; d, ok = it.Next() {
				exhaustive[d] = true
			}

			_, optimized := collectMultiset(t, tt.cards)

			if len(exhaustive) != len(optimized) {
				t.Fatalf("distinct sets differ in size: exhaustive %d, optimized %d",
					len(exhaustive), len(optimized))
			}
			for d := range optimized {
				if !exhaustive[d] {
					t.Errorf("ordering %v missing from exhaustive set", d)
				}
			}
		})
	}
}
