package analysis

import (
	"fmt"

	"github.com/busarovalex/snap-kombination/internal/core/deck"
	"github.com/busarovalex/snap-kombination/internal/core/permute"
)

// DefaultWarningThreshold gates enumerations whose exact permutation count
// suggests an impractical running time.
const DefaultWarningThreshold uint64 = 10_000_000

// TooManyPermutations reports that the pre-flight count exceeded the
// executor's warning threshold. The executor remains fully valid: callers
// can inspect the count and re-invoke Execute with warnings suppressed
// without recomputing any setup.
type TooManyPermutations struct {
	Count uint64
}

func (e *TooManyPermutations) Error() string {
	return fmt.Sprintf("too many permutations: %d", e.Count)
}

// Executor pairs one deck and turn profile with a set of analyses and runs
// a full enumeration through them.
type Executor struct {
	deck      deck.Deck[deck.CardIdentity]
	profile   deck.TurnProfile
	analyses  []Analysis
	threshold uint64
}

// NewExecutor builds an executor.
//
// It panics when the turn profile length differs from the deck length; the
// mismatch is a construction-time invariant.
func NewExecutor(d deck.Deck[deck.CardIdentity], profile deck.TurnProfile, analyses []Analysis, threshold uint64) *Executor {
	if profile.Size() != d.Size() {
		panic(fmt.Sprintf("turn profile length %d does not match deck length %d",
			profile.Size(), d.Size()))
	}
	return &Executor{
		deck:      d,
		profile:   profile,
		analyses:  analyses,
		threshold: threshold,
	}
}

// Analyses returns the registered analysis names.
func (e *Executor) Analyses() []string {
	names := make([]string, len(e.analyses))
	for i, a := range e.analyses {
		names[i] = a.Name()
	}
	return names
}

// PermutationCount returns the exact number of orderings the given strategy
// would enumerate, without enumerating.
func (e *Executor) PermutationCount(newIterator permute.Factory[deck.CardIdentity]) uint64 {
	return newIterator(e.deck).Count()
}

// Execute enumerates every deck ordering the strategy produces and feeds
// each (card, turn) pair in position order into every analysis.
//
// Unless suppressWarnings is set, the exact permutation count is checked
// against the threshold first; when exceeded, Execute returns a
// *TooManyPermutations error before consuming anything, leaving the
// executor resumable.
func (e *Executor) Execute(newIterator permute.Factory[deck.CardIdentity], suppressWarnings bool) ([]Result, error) {
	permutations := newIterator(e.deck)
	if !suppressWarnings {
		if count := permutations.Count(); count > e.threshold {
			return nil, &TooManyPermutations{Count: count}
		}
	}
	for d, ok := permutations.Next(); ok; d, ok = permutations.Next() {
		for i := 0; i < d.Size(); i++ {
			card := d.At(i)
			turn := e.profile.At(i)
			for _, a := range e.analyses {
				a.Accept(card, turn)
			}
		}
		for _, a := range e.analyses {
			a.NextDeck()
		}
	}
	results := make([]Result, 0, len(e.analyses))
	for _, a := range e.analyses {
		results = append(results, a.Result())
	}
	return results, nil
}
