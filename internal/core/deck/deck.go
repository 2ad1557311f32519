// Package deck holds the card, deck and turn data model shared by the
// enumeration engine and the analyses built on top of it.
//
// All container types have a fixed compile-time capacity (MaxSize) and a
// run-time logical length fixed at construction. They are plain comparable
// values: two decks are equal iff every position matches, which also makes a
// Deck usable as a map key.
package deck

import (
	"fmt"
	"strings"
)

const (
	// MaxSize is the fixed maximum deck capacity shared by all decks in a run.
	MaxSize = 12
	// MaxID is the exclusive upper bound for card ids.
	MaxID = 12
	// MaxCost is the inclusive upper bound for card costs.
	MaxCost = 6
)

// ID identifies one distinct card within a run.
type ID uint8

// Energy is an amount of the per-turn resource.
type Energy uint8

// TurnNumber orders turns within a game.
type TurnNumber uint8

// Card is a fully identified card: an id plus an energy cost, packed into a
// single byte (id in the high nibble, cost in the low nibble).
type Card struct {
	bits uint8
}

// NewCard builds a card from an id and a cost.
//
// It panics when id >= MaxID or cost > MaxCost; both are construction-time
// invariants, not recoverable conditions.
func NewCard(id, cost uint8) Card {
	if id >= MaxID {
		panic(fmt.Sprintf("card id %d is greater or equal to max card id (%d)", id, MaxID))
	}
	if cost > MaxCost {
		panic(fmt.Sprintf("card cost %d is greater than max card cost (%d)", cost, MaxCost))
	}
	return Card{bits: id<<4 | cost}
}

// ID returns the card id.
func (c Card) ID() ID {
	return ID(c.bits >> 4)
}

// Cost returns the card cost.
func (c Card) Cost() Energy {
	return Energy(c.bits & 0x0f)
}

func (c Card) String() string {
	return fmt.Sprintf("(id = %d, cost = %d)", c.bits>>4, c.bits&0x0f)
}

type identityKind uint8

const (
	identityNone identityKind = iota
	identityFull
	identityCost
)

// CardIdentity is a closed variant over a fully identified card, a cost-only
// anonymized card, and an empty placeholder. The zero value is the empty
// placeholder.
type CardIdentity struct {
	kind identityKind
	card Card
	cost Energy
}

// NoCard is the empty placeholder identity.
var NoCard = CardIdentity{}

// Identified wraps a full card as an identity.
func Identified(c Card) CardIdentity {
	return CardIdentity{kind: identityFull, card: c}
}

// CostOnly builds an anonymized identity carrying only a cost.
func CostOnly(cost Energy) CardIdentity {
	return CardIdentity{kind: identityCost, cost: cost}
}

// ID returns the card id when the identity is a full card.
func (ci CardIdentity) ID() (ID, bool) {
	if ci.kind != identityFull {
		return 0, false
	}
	return ci.card.ID(), true
}

// Cost returns the cost when the identity is cost-only.
func (ci CardIdentity) Cost() (Energy, bool) {
	if ci.kind != identityCost {
		return 0, false
	}
	return ci.cost, true
}

func (ci CardIdentity) String() string {
	switch ci.kind {
	case identityFull:
		return ci.card.String()
	case identityCost:
		return fmt.Sprintf("(cost = %d)", ci.cost)
	default:
		return "(none)"
	}
}

// Deck is an ordered, fixed-length sequence of card tokens. The length is
// fixed at construction; every enumeration step produces an independent
// snapshot value.
type Deck[T comparable] struct {
	cards [MaxSize]T
	size  int
}

// New builds a deck from the given cards.
//
// It panics when the slice is empty or longer than MaxSize.
func New[T comparable](cards []T) Deck[T] {
	if len(cards) == 0 || len(cards) > MaxSize {
		panic(fmt.Sprintf("incorrect deck length %d, must be between 1 and %d", len(cards), MaxSize))
	}
	var d Deck[T]
	copy(d.cards[:], cards)
	d.size = len(cards)
	return d
}

// Size returns the deck length.
func (d Deck[T]) Size() int {
	return d.size
}

// At returns the card at position i.
func (d Deck[T]) At(i int) T {
	if i < 0 || i >= d.size {
		panic(fmt.Sprintf("deck position %d out of range [0, %d)", i, d.size))
	}
	return d.cards[i]
}

// Set replaces the card at position i.
func (d *Deck[T]) Set(i int, card T) {
	if i < 0 || i >= d.size {
		panic(fmt.Sprintf("deck position %d out of range [0, %d)", i, d.size))
	}
	d.cards[i] = card
}

func (d Deck[T]) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < d.size; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", d.cards[i])
	}
	b.WriteString("]")
	return b.String()
}

// Turn pairs a turn number with the energy available on that turn.
type Turn struct {
	Number TurnNumber
	Energy Energy
}

// TurnProfile assigns a turn context to every deck position: the card at
// position i is considered drawn under the turn at index i.
type TurnProfile struct {
	turns [MaxSize]Turn
	size  int
}

// NewTurnProfile builds a profile from the given turns.
//
// It panics when the slice is empty or longer than MaxSize.
func NewTurnProfile(turns []Turn) TurnProfile {
	if len(turns) == 0 || len(turns) > MaxSize {
		panic(fmt.Sprintf("incorrect turn profile length %d, must be between 1 and %d", len(turns), MaxSize))
	}
	var p TurnProfile
	copy(p.turns[:], turns)
	p.size = len(turns)
	return p
}

// Size returns the profile length.
func (p TurnProfile) Size() int {
	return p.size
}

// At returns the turn at index i.
func (p TurnProfile) At(i int) Turn {
	if i < 0 || i >= p.size {
		panic(fmt.Sprintf("turn profile index %d out of range [0, %d)", i, p.size))
	}
	return p.turns[i]
}

// EnergyProfile is a histogram mapping an energy cost to a remaining count of
// cards at that cost. Index by int(cost); costs run 0..MaxCost.
type EnergyProfile [MaxCost + 1]uint8

// CostProfile counts how many deck slots each cost occupies. Index by
// int(cost); costs run 0..MaxCost.
type CostProfile [MaxCost + 1]uint8

// Cards returns the total number of cards the profile describes.
func (cp CostProfile) Cards() int {
	total := 0
	for _, amount := range cp {
		total += int(amount)
	}
	return total
}

// CostDeck expands a cost profile into a deck of cost-only identities in
// ascending cost order.
func (cp CostProfile) CostDeck() Deck[CardIdentity] {
	cards := make([]CardIdentity, 0, cp.Cards())
	for cost, amount := range cp {
		for i := uint8(0); i < amount; i++ {
			cards = append(cards, CostOnly(Energy(cost)))
		}
	}
	return New(cards)
}
