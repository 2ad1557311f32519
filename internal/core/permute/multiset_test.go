package permute

import (
	"testing"

	"github.com/busarovalex/snap-kombination/internal/core/deck"
)

func collectMultiset(t *testing.T, cards []int) (int, map[deck.Deck[int]]bool) {
	t.Helper()
	it := NewMultiset(deck.New(cards))
	unique := make(map[deck.Deck[int]]bool)
	emitted := 0
	for d, ok := it.Next(); ok; d, ok = it.Next() {
		if unique[d] {
			t.Errorf("permutation %v emitted more than once", d)
		}
		unique[d] = true
		emitted++
	}
	return emitted, unique
}

func TestMultisetCount(t *testing.T) {
	tests := []struct {
		name  string
		cards []int
		want  uint64
	}{
		{"2+1+1 of 4", []int{0, 0, 1, 2}, 12},
		{"1+11 of 12", []int{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 12},
		{"1+1+1+9 of 12", []int{0, 1, 2, 3, 3, 3, 3, 3, 3, 3, 3, 3}, 1320},
		{"3+3+3+2+1 of 12", []int{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 4}, 1108800},
		{"all identical", []int{7, 7, 7, 7}, 1},
		{"all distinct", []int{0, 1, 2, 3}, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewMultiset(deck.New(tt.cards))
			if got := it.Count(); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMultisetEnumeratesDistinctPermutations(t *testing.T) {
	tests := []struct {
		name  string
		cards []int
		want  [][]int
	}{
		{
			"one value size 2",
			[]int{0, 0},
			[][]int{{0, 0}},
		},
		{
			"two values size 2",
			[]int{0, 1},
			[][]int{{0, 1}, {1, 0}},
		},
		{
			"two values size 3",
			[]int{0, 1, 1},
			[][]int{{1, 1, 0}, {1, 0, 1}, {0, 1, 1}},
		},
		{
			"three values size 3",
			[]int{0, 1, 2},
			[][]int{
				{0, 1, 2}, {0, 2, 1}, {1, 0, 2},
				{1, 2, 0}, {2, 0, 1}, {2, 1, 0},
			},
		},
		{
			"two doubled values size 4",
			[]int{0, 0, 1, 1},
			[][]int{
				{0, 0, 1, 1}, {0, 1, 0, 1}, {0, 1, 1, 0},
				{1, 0, 1, 0}, {1, 0, 0, 1}, {1, 1, 0, 0},
			},
		},
		{
			"single and tripled value size 4",
			[]int{0, 1, 1, 1},
			[][]int{{0, 1, 1, 1}, {1, 0, 1, 1}, {1, 1, 0, 1}, {1, 1, 1, 0}},
		},
		{
			"three values size 4",
			[]int{0, 1, 1, 2},
			[][]int{
				{0, 1, 1, 2}, {0, 1, 2, 1}, {0, 2, 1, 1},
				{1, 0, 1, 2}, {1, 0, 2, 1}, {2, 0, 1, 1},
				{1, 1, 0, 2}, {1, 2, 0, 1}, {2, 1, 0, 1},
				{1, 1, 2, 0}, {1, 2, 1, 0}, {2, 1, 1, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emitted, unique := collectMultiset(t, tt.cards)
			if emitted != len(tt.want) {
				t.Fatalf("emitted %d permutations, want %d", emitted, len(tt.want))
			}
			for _, cards := range tt.want {
				if !unique[deck.New(cards)] {
					t.Errorf("permutation %v missing", cards)
				}
			}
		})
	}
}

func TestMultisetEmissionMatchesCount(t *testing.T) {
	tests := []struct {
		name  string
		cards []int
	}{
		{"2+1+1 of 4", []int{0, 0, 1, 2}},
		{"2+2+1 of 5", []int{0, 0, 1, 1, 2}},
		{"3+2 of 5", []int{0, 0, 0, 1, 1}},
		{"1+2+3 of 6", []int{0, 1, 1, 2, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewMultiset(deck.New(tt.cards))
			want := it.Count()
			emitted, _ := collectMultiset(t, tt.cards)
			if uint64(emitted) != want {
				t.Errorf("emitted %d permutations, Count() = %d", emitted, want)
			}
		})
	}
}
