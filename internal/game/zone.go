package game

import (
	"fmt"
	"math/rand"
)

// OrderedZone is a sequence of card instances. The last element is the top.
type OrderedZone struct {
	kind  ZoneKind
	owner *Player // nil for the trash
	cards []*CardInstance
}

func NewOrderedZone(kind ZoneKind, owner *Player) *OrderedZone {
	return &OrderedZone{kind: kind, owner: owner}
}

func (z *OrderedZone) Kind() ZoneKind { return z.kind }

func (z *OrderedZone) Owner() *Player { return z.owner }

func (z *OrderedZone) String() string {
	if z.owner == nil {
		return z.kind.String()
	}
	return fmt.Sprintf("%s's %s", z.owner.Name, z.kind)
}

// Len returns the number of cards in the zone.
func (z *OrderedZone) Len() int { return len(z.cards) }

// Cards returns a copy of the zone contents, bottom first.
func (z *OrderedZone) Cards() []*CardInstance {
	out := make([]*CardInstance, len(z.cards))
	copy(out, z.cards)
	return out
}

// Put appends cards in order. A card that still has a holder is a programming
// error: it must be picked before it can be put.
func (z *OrderedZone) Put(cards ...*CardInstance) {
	for _, c := range cards {
		if c.zone != nil {
			panic(fmt.Sprintf("put %s into %s: still held by %v", c, z, c.zone))
		}
		c.zone = z
		z.cards = append(z.cards, c)
	}
}

// Insert places c at position pos (0 is the bottom, Len() the top).
func (z *OrderedZone) Insert(c *CardInstance, pos int) {
	if c.zone != nil {
		panic(fmt.Sprintf("insert %s into %s: still held by %v", c, z, c.zone))
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(z.cards) {
		pos = len(z.cards)
	}
	z.cards = append(z.cards, nil)
	copy(z.cards[pos+1:], z.cards[pos:])
	z.cards[pos] = c
	c.zone = z
}

// Peek returns the top card without removing it, or nil if empty.
func (z *OrderedZone) Peek() *CardInstance {
	if len(z.cards) == 0 {
		return nil
	}
	return z.cards[len(z.cards)-1]
}

// Pick removes and returns the top card.
func (z *OrderedZone) Pick() (*CardInstance, error) {
	if len(z.cards) == 0 {
		return nil, violationf("cannot pick from empty %s", z)
	}
	return z.removeAt(len(z.cards) - 1), nil
}

// PickCard removes the exact instance c.
func (z *OrderedZone) PickCard(c *CardInstance) (*CardInstance, error) {
	for i, cc := range z.cards {
		if cc == c {
			return z.removeAt(i), nil
		}
	}
	return nil, violationf("%s is not in %s", c, z)
}

// PickType removes the first instance of t in positional order.
func (z *OrderedZone) PickType(t *CardType) (*CardInstance, error) {
	for i, cc := range z.cards {
		if cc.Type == t {
			return z.removeAt(i), nil
		}
	}
	return nil, violationf("no %s in %s", t, z)
}

func (z *OrderedZone) removeAt(i int) *CardInstance {
	c := z.cards[i]
	z.cards = append(z.cards[:i], z.cards[i+1:]...)
	c.zone = nil
	return c
}

// Find returns the first instance of t, or nil.
func (z *OrderedZone) Find(t *CardType) *CardInstance {
	for _, c := range z.cards {
		if c.Type == t {
			return c
		}
	}
	return nil
}

// Contains reports whether c is in the zone.
func (z *OrderedZone) Contains(c *CardInstance) bool {
	return c != nil && c.zone == Holder(z)
}

// CountType returns the number of instances of t.
func (z *OrderedZone) CountType(t *CardType) int {
	n := 0
	for _, c := range z.cards {
		if c.Type == t {
			n++
		}
	}
	return n
}

// CountCaps returns the number of cards having every capability in caps.
func (z *OrderedZone) CountCaps(caps Capability) int {
	n := 0
	for _, c := range z.cards {
		if c.Type.Is(caps) {
			n++
		}
	}
	return n
}

// Filter returns the cards for which keep returns true, in zone order.
func (z *OrderedZone) Filter(keep func(*CardInstance) bool) []*CardInstance {
	var out []*CardInstance
	for _, c := range z.cards {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Shuffle randomizes the zone order with the match RNG.
func (z *OrderedZone) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(z.cards), func(i, j int) {
		z.cards[i], z.cards[j] = z.cards[j], z.cards[i]
	})
}

// MixInto moves every card into dst, top first. No-op when dst is z.
func (z *OrderedZone) MixInto(dst *OrderedZone) {
	if dst == z {
		return
	}
	for len(z.cards) > 0 {
		c := z.removeAt(len(z.cards) - 1)
		dst.Put(c)
	}
}
