package analysis

import (
	"fmt"

	"github.com/busarovalex/snap-kombination/internal/core/deck"
)

// initialTurn never equals a real turn number, so the first accepted card
// always loads the turn's energy.
const initialTurn = deck.TurnNumber(^uint8(0))

// CostEfficiency simulates greedily spending each turn's energy on the cards
// drawn so far and accumulates the total spend across all enumerated decks.
//
// On every accepted card the simulator retries the whole remaining cost
// histogram twice, spending ascending-cost-first and descending-cost-first,
// and keeps whichever strategy spends more. The recomputation per card is
// deliberate: it is the reference behavior the documented results come from.
type CostEfficiency struct {
	name        string
	totalSpent  uint64
	decks       uint64
	energyLeft  deck.Energy
	energySpent deck.Energy
	lastTurn    deck.TurnNumber
	profile     deck.EnergyProfile
}

// NewCostEfficiency builds the resource-spend simulator.
func NewCostEfficiency(name string) *CostEfficiency {
	return &CostEfficiency{
		name:     name,
		lastTurn: initialTurn,
	}
}

// Name identifies the analysis.
func (a *CostEfficiency) Name() string {
	return a.name
}

// Accept observes one cost-only card under its turn context.
//
// It panics when the identity is not cost-only; decks fed into this
// analysis are built from cost profiles.
func (a *CostEfficiency) Accept(card deck.CardIdentity, turn deck.Turn) {
	cost, ok := card.Cost()
	if !ok {
		panic("cost efficiency analysis only accepts cost card identities")
	}
	a.acceptCost(cost, turn)
}

func (a *CostEfficiency) acceptCost(cost deck.Energy, turn deck.Turn) {
	a.profile[cost]++
	if a.lastTurn != turn.Number {
		a.lastTurn = turn.Number
		a.energyLeft = turn.Energy
	}
	ascSpent, ascProfile := a.spendAscending()
	descSpent, descProfile := a.spendDescending()
	if ascSpent > descSpent {
		a.energySpent += ascSpent
		a.profile = ascProfile
	} else {
		a.energySpent += descSpent
		a.profile = descProfile
	}
}

// spendAscending spends the remaining turn energy on at most one card per
// cost, cheapest first, stopping at the first unaffordable cost.
func (a *CostEfficiency) spendAscending() (deck.Energy, deck.EnergyProfile) {
	profile := a.profile
	left := a.energyLeft
	spent := deck.Energy(0)
	for cost := 0; cost < len(profile); cost++ {
		energy := deck.Energy(cost)
		if left < energy {
			break
		}
		if profile[cost] > 0 {
			profile[cost]--
			left -= energy
			spent += energy
		}
	}
	return spent, profile
}

// spendDescending spends the remaining turn energy on at most one card per
// cost, most expensive first, skipping unaffordable costs.
func (a *CostEfficiency) spendDescending() (deck.Energy, deck.EnergyProfile) {
	profile := a.profile
	left := a.energyLeft
	spent := deck.Energy(0)
	for cost := len(profile) - 1; cost >= 0; cost-- {
		energy := deck.Energy(cost)
		if left < energy {
			continue
		}
		if profile[cost] > 0 {
			profile[cost]--
			left -= energy
			spent += energy
		}
	}
	return spent, profile
}

// NextDeck folds the finished deck's spend into the total and resets the
// per-deck simulation state.
func (a *CostEfficiency) NextDeck() {
	a.totalSpent += uint64(a.energySpent)
	a.decks++
	a.lastTurn = initialTurn
	a.energySpent = 0
	a.energyLeft = 0
	a.profile = deck.EnergyProfile{}
}

// Result returns the accumulated spend and deck count.
func (a *CostEfficiency) Result() Result {
	return CostEfficiencyResult{
		name:       a.name,
		totalSpent: a.totalSpent,
		decks:      a.decks,
	}
}

// CostEfficiencyResult is the aggregate of a CostEfficiency run.
type CostEfficiencyResult struct {
	name       string
	totalSpent uint64
	decks      uint64
}

// AsMap returns name, total_spent and number_of_decks keys.
func (r CostEfficiencyResult) AsMap() map[string]string {
	return map[string]string{
		"name":            r.name,
		"total_spent":     fmt.Sprintf("%d", r.totalSpent),
		"number_of_decks": fmt.Sprintf("%d", r.decks),
	}
}

func (r CostEfficiencyResult) String() string {
	return fmt.Sprintf("%s: median spent: %.1f (%d decks analysed)",
		r.name, float64(r.totalSpent)/float64(r.decks), r.decks)
}
