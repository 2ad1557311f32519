package analysis

import "github.com/busarovalex/snap-kombination/internal/core/deck"

// StandardTurnProfile returns the canonical draw schedule for a deck of the
// given size: four cards drawn on turn one at energy one, then one card per
// turn with energy matching the turn number through turn six, then turns
// seven to nine at zero energy. When size exceeds the canonical schedule the
// final entry repeats.
func StandardTurnProfile(size int) deck.TurnProfile {
	standard := []deck.Turn{
		{Number: 1, Energy: 1},
		{Number: 1, Energy: 1},
		{Number: 1, Energy: 1},
		{Number: 1, Energy: 1},
		{Number: 2, Energy: 2},
		{Number: 3, Energy: 3},
		{Number: 4, Energy: 4},
		{Number: 5, Energy: 5},
		{Number: 6, Energy: 6},
		{Number: 7, Energy: 0},
		{Number: 8, Energy: 0},
		{Number: 9, Energy: 0},
	}
	for len(standard) < size {
		standard = append(standard, standard[len(standard)-1])
	}
	return deck.NewTurnProfile(standard[:size])
}
