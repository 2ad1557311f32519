// Package analysis drives deck enumerations through pluggable statistical
// accumulators and collects their aggregated results.
package analysis

import (
	"fmt"

	"github.com/busarovalex/snap-kombination/internal/core/deck"
)

// Result is one analysis's aggregate outcome: a machine-readable key/value
// map plus a human-readable display string.
type Result interface {
	fmt.Stringer
	// AsMap returns the result as string keys and values; ordering carries
	// no meaning.
	AsMap() map[string]string
}

// Analysis accumulates statistics over a position-ordered (card, turn)
// stream, one deck at a time.
type Analysis interface {
	// Name identifies the analysis in results and logs.
	Name() string
	// Accept observes one card under its turn context.
	Accept(card deck.CardIdentity, turn deck.Turn)
	// NextDeck finalizes the current deck and prepares for the next one.
	NextDeck()
	// Result returns the aggregate over every deck seen so far.
	Result() Result
}
