package placement

import "github.com/busarovalex/snap-kombination/internal/core/deck"

// PositionMap translates indices from a compacted index space back to
// absolute free slot numbers in the full deck. Starting from the identity,
// each Exclude step removes the slots a just-placed group occupies and
// shifts every later free index down to close the gaps.
type PositionMap struct {
	slots [deck.MaxSize]int
}

// IdentityMap maps every index to itself.
func IdentityMap() PositionMap {
	var m PositionMap
	for i := range m.slots {
		m.slots[i] = i
	}
	return m
}

// Map returns the absolute slot for a compacted index.
func (m PositionMap) Map(index int) int {
	return m.slots[index]
}

// Exclude derives the map for the next compacted universe by removing the
// given occupied positions. The positions index the current compacted space,
// not absolute slots.
func (m PositionMap) Exclude(occupied []int) PositionMap {
	previous := m.slots
	for _, position := range occupied {
		previous[position] = -1
	}

	var next PositionMap
	i, j := 0, 0
	for i < deck.MaxSize {
		if j >= deck.MaxSize {
			next.slots[i] = deck.MaxSize - 1
			i++
			continue
		}
		if previous[j] == -1 {
			j++
			continue
		}
		next.slots[i] = previous[j]
		i++
		j++
	}
	return next
}
