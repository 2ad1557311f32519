package permute

import (
	"sort"

	"github.com/busarovalex/snap-kombination/internal/core/deck"
	"github.com/busarovalex/snap-kombination/internal/core/placement"
)

// group is one distinct card value and its multiplicity within the deck.
type group[T comparable] struct {
	value T
	count int
}

// Multiset enumerates exactly the n! / (k1! * ... * km!) distinct orderings
// of a deck whose values repeat with multiplicities k1..km, each exactly
// once.
//
// One placement iterator per distinct value chooses that value's slots
// within the positions left free by higher-priority groups; a position map
// per group translates the iterator's compacted indices back to absolute
// deck slots. Advancing works like a multi-digit odometer over the placement
// iterators, rebuilding the position maps at and after the lowest group
// whose placement changed.
type Multiset[T comparable] struct {
	iterators [deck.MaxSize]*placement.Iterator
	current   [deck.MaxSize]placement.Placement
	maps      [deck.MaxSize]placement.PositionMap
	groups    [deck.MaxSize]group[T]
	len       int
	sample    deck.Deck[T]
	buffered  deck.Deck[T]
	pending   bool
}

// NewMultiset builds the distinct-permutation iterator for a deck.
func NewMultiset[T comparable](d deck.Deck[T]) *Multiset[T] {
	m := &Multiset[T]{sample: d}
	m.groups, m.len = splitByValue(d)

	free := d.Size()
	for i := 0; i < m.len; i++ {
		m.iterators[i] = placement.NewIterator(free, m.groups[i].count)
		first, _ := m.iterators[i].Next()
		m.current[i] = first
		free -= m.groups[i].count
		if i == 0 {
			m.maps[i] = placement.IdentityMap()
			continue
		}
		m.maps[i] = m.maps[i-1].Exclude(m.current[i-1].Positions())
	}

	m.buffered = m.compose()
	m.pending = true
	return m
}

// Next returns the next distinct permutation; the second return value is
// false once every distinct ordering has been emitted.
func (m *Multiset[T]) Next() (deck.Deck[T], bool) {
	if !m.pending {
		return deck.Deck[T]{}, false
	}
	out := m.buffered

	updateFrom := 0
	finished := false
	for i := m.len - 1; i >= 0; i-- {
		updateFrom = i
		next, ok := m.iterators[i].Next()
		if ok {
			m.current[i] = next
			break
		}
		if i == 0 {
			finished = true
			break
		}
		m.iterators[i].Reset()
		first, _ := m.iterators[i].Next()
		m.current[i] = first
	}
	if updateFrom != m.len-1 {
		m.rebuildMaps(updateFrom)
	}
	if finished {
		m.pending = false
	} else {
		m.buffered = m.compose()
	}
	return out, true
}

// Count returns the exact multinomial coefficient for the deck, computed as
// a closed-form product of binomial coefficients.
//
// The product is evaluated in uint64. Overflow would require a combinatorial
// count beyond 2^64, which cannot happen at the fixed capacity of
// deck.MaxSize (12! fits comfortably), but larger capacities would need a
// guard here.
func (m *Multiset[T]) Count() uint64 {
	n := uint64(m.sample.Size())
	count := uint64(1)
	for i := 0; i < m.len; i++ {
		k := uint64(m.groups[i].count)
		count *= binomial(n, k)
		n -= k
	}
	return count
}

func (m *Multiset[T]) rebuildMaps(from int) {
	for i := from; i < m.len; i++ {
		if i == 0 {
			continue
		}
		m.maps[i] = m.maps[i-1].Exclude(m.current[i-1].Positions())
	}
}

func (m *Multiset[T]) compose() deck.Deck[T] {
	d := m.sample
	for i := 0; i < m.len; i++ {
		for _, position := range m.current[i].Positions() {
			d.Set(m.maps[i].Map(position), m.groups[i].value)
		}
	}
	return d
}

// splitByValue decomposes the deck into (value, multiplicity) groups:
// a single scan buckets each card into the first slot already holding its
// value or still empty, then groups are ordered by descending multiplicity.
func splitByValue[T comparable](d deck.Deck[T]) ([deck.MaxSize]group[T], int) {
	var groups [deck.MaxSize]group[T]
	length := 0
	for i := 0; i < d.Size(); i++ {
		card := d.At(i)
		for j := range groups {
			if groups[j].count == 0 || groups[j].value == card {
				if groups[j].count == 0 {
					groups[j].value = card
					length++
				}
				groups[j].count++
				break
			}
		}
	}
	sort.SliceStable(groups[:length], func(a, b int) bool {
		return groups[a].count > groups[b].count
	})
	return groups, length
}

// binomial returns C(n, k) exactly; each intermediate product is divisible
// by the running factorial, so the division never truncates.
func binomial(n, k uint64) uint64 {
	result := uint64(1)
	for i := uint64(1); i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}
