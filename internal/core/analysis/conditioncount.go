package analysis

import (
	"fmt"

	"github.com/busarovalex/snap-kombination/internal/core/condition"
	"github.com/busarovalex/snap-kombination/internal/core/deck"
)

// ConditionCount counts how many enumerated decks ever satisfy a latched
// condition, along with the total number of decks seen.
type ConditionCount struct {
	name      string
	condition *condition.Latch
	count     uint64
	total     uint64
}

// NewConditionCount wraps the condition in a latch and counts the decks
// that satisfy it.
func NewConditionCount(name string, cond condition.Condition) *ConditionCount {
	return &ConditionCount{
		name:      name,
		condition: condition.NewLatch(cond),
	}
}

// Name identifies the analysis.
func (a *ConditionCount) Name() string {
	return a.name
}

// Accept feeds one (card, turn) pair into the latched condition.
func (a *ConditionCount) Accept(card deck.CardIdentity, turn deck.Turn) {
	a.condition.Accept(card, turn)
}

// NextDeck tallies the finished deck and releases the latch.
func (a *ConditionCount) NextDeck() {
	a.total++
	if a.condition.Result() {
		a.count++
	}
	a.condition.NextDeck()
}

// Result returns the satisfied and total deck counts.
func (a *ConditionCount) Result() Result {
	return ConditionCountResult{
		name:  a.name,
		count: a.count,
		total: a.total,
	}
}

// ConditionCountResult is the aggregate of a ConditionCount run.
type ConditionCountResult struct {
	name  string
	count uint64
	total uint64
}

// AsMap returns name, count and total_amount keys.
func (r ConditionCountResult) AsMap() map[string]string {
	return map[string]string{
		"name":         r.name,
		"count":        fmt.Sprintf("%d", r.count),
		"total_amount": fmt.Sprintf("%d", r.total),
	}
}

func (r ConditionCountResult) String() string {
	successPercent := float64(r.count) / float64(r.total) * 100.0
	return fmt.Sprintf("%s is available %.2f percent of the time", r.name, successPercent)
}
