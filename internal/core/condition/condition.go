// Package condition provides boolean predicates over a (card, turn) stream.
//
// Conditions compose into trees via AllOf and AnyOf and are evaluated once
// per deck position in position order. A Latch wrapper pins a child's result
// to true for the remainder of one deck's scan, which gives "has this event
// happened by now" semantics.
package condition

import "github.com/busarovalex/snap-kombination/internal/core/deck"

// Condition is a stateful predicate over the (card, turn) stream of one
// deck scan.
type Condition interface {
	// Check evaluates the condition for the card drawn under the given turn.
	Check(card deck.CardIdentity, turn deck.Turn) bool
	// NextDeck resets any per-deck state before the next deck's scan.
	NextDeck()
}

// CardID is true iff the scanned card carries a configured identity.
type CardID struct {
	id deck.ID
}

// NewCardID builds a card-identity match condition.
func NewCardID(id deck.ID) *CardID {
	return &CardID{id: id}
}

// Check reports whether the card is the configured one.
func (c *CardID) Check(card deck.CardIdentity, _ deck.Turn) bool {
	id, ok := card.ID()
	return ok && id == c.id
}

// NextDeck is a no-op; the condition holds no per-deck state.
func (c *CardID) NextDeck() {}

// ComesAtOrBefore is true iff the current turn number is at or below a
// configured threshold.
type ComesAtOrBefore struct {
	turn deck.TurnNumber
}

// NewComesAtOrBefore builds a turn-deadline condition.
func NewComesAtOrBefore(turn deck.TurnNumber) *ComesAtOrBefore {
	return &ComesAtOrBefore{turn: turn}
}

// Check reports whether the turn is at or before the threshold.
func (c *ComesAtOrBefore) Check(_ deck.CardIdentity, turn deck.Turn) bool {
	return turn.Number <= c.turn
}

// NextDeck is a no-op; the condition holds no per-deck state.
func (c *ComesAtOrBefore) NextDeck() {}

// AllOf combines child conditions with logical AND. Every child is evaluated
// on every call even after the combined result is already false, so stateful
// children always observe the full stream.
type AllOf struct {
	all []Condition
}

// NewAllOf builds a conjunction over the given children.
func NewAllOf(all ...Condition) *AllOf {
	return &AllOf{all: all}
}

// Check evaluates every child and returns their conjunction.
func (c *AllOf) Check(card deck.CardIdentity, turn deck.Turn) bool {
	result := true
	for _, child := range c.all {
		ok := child.Check(card, turn)
		result = result && ok
	}
	return result
}

// NextDeck resets every child.
func (c *AllOf) NextDeck() {
	for _, child := range c.all {
		child.NextDeck()
	}
}

// AnyOf combines child conditions with logical OR. Like AllOf, every child
// is evaluated on every call.
type AnyOf struct {
	any []Condition
}

// NewAnyOf builds a disjunction over the given children.
func NewAnyOf(any ...Condition) *AnyOf {
	return &AnyOf{any: any}
}

// Check evaluates every child and returns their disjunction.
func (c *AnyOf) Check(card deck.CardIdentity, turn deck.Turn) bool {
	result := false
	for _, child := range c.any {
		ok := child.Check(card, turn)
		result = result || ok
	}
	return result
}

// NextDeck resets every child.
func (c *AnyOf) NextDeck() {
	for _, child := range c.any {
		child.NextDeck()
	}
}

// Latch wraps a child condition; once the child evaluates true during a
// deck's scan the latch stays true and the child is no longer invoked until
// the next deck.
type Latch struct {
	result bool
	child  Condition
}

// NewLatch wraps a child condition with sticky-true semantics.
func NewLatch(child Condition) *Latch {
	return &Latch{child: child}
}

// Check evaluates the child unless the latch already holds.
func (l *Latch) Check(card deck.CardIdentity, turn deck.Turn) bool {
	if l.result {
		return true
	}
	l.result = l.child.Check(card, turn)
	return l.result
}

// Accept feeds the latch without returning the result; used by accumulators
// that only read the final state per deck.
func (l *Latch) Accept(card deck.CardIdentity, turn deck.Turn) {
	if l.result {
		return
	}
	l.result = l.child.Check(card, turn)
}

// Result reports whether the latch holds for the current deck.
func (l *Latch) Result() bool {
	return l.result
}

// NextDeck releases the latch and resets the child.
func (l *Latch) NextDeck() {
	l.result = false
	l.child.NextDeck()
}
