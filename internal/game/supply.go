package game

import (
	"fmt"
	"sort"
	"strings"
)

// Supply is the shared piled zone of purchasable card types.
type Supply struct {
	order     []*CardType
	piles     map[*CardType][]*CardInstance
	picked    map[*CardType]int
	removable map[*CardType]bool
	nextID    int
}

func NewSupply() *Supply {
	return &Supply{
		piles:     make(map[*CardType][]*CardInstance),
		picked:    make(map[*CardType]int),
		removable: make(map[*CardType]bool),
	}
}

func (s *Supply) Kind() ZoneKind { return ZoneSupply }

func (s *Supply) String() string {
	var lines []string
	for _, t := range s.order {
		lines = append(lines, fmt.Sprintf("(%d) %-16s x%d", t.Cost, t.Name, len(s.piles[t])))
	}
	sort.Strings(lines)
	return fmt.Sprintf("Supply, %d card(s):\n%s", s.Total(), strings.Join(lines, "\n"))
}

// CreatePile stocks n fresh instances of t. Creating onto an existing pile adds to it.
func (s *Supply) CreatePile(t *CardType, n int) {
	if _, ok := s.piles[t]; !ok {
		s.order = append(s.order, t)
		s.piles[t] = nil
	}
	for i := 0; i < n; i++ {
		s.nextID++
		c := &CardInstance{ID: s.nextID, Type: t, zone: s}
		s.piles[t] = append(s.piles[t], c)
	}
}

// MarkRemovable makes the pile disappear from the supply once it is empty.
func (s *Supply) MarkRemovable(t *CardType) {
	s.removable[t] = true
	s.dropIfEmpty(t)
}

func (s *Supply) dropIfEmpty(t *CardType) {
	if !s.removable[t] || len(s.piles[t]) > 0 {
		return
	}
	if _, ok := s.piles[t]; !ok {
		return
	}
	delete(s.piles, t)
	for i, o := range s.order {
		if o == t {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Take removes one instance of t from its pile and counts it as picked.
func (s *Supply) Take(t *CardType) (*CardInstance, error) {
	pile := s.piles[t]
	if len(pile) == 0 {
		return nil, violationf("no %s left in the supply", t)
	}
	c := pile[len(pile)-1]
	s.piles[t] = pile[:len(pile)-1]
	s.picked[t]++
	c.zone = nil
	s.dropIfEmpty(t)
	return c, nil
}

// Return puts c back on its pile. The pile is recreated if it had been removed.
func (s *Supply) Return(c *CardInstance) {
	if c.zone != nil {
		panic(fmt.Sprintf("return %s to supply: still held by %v", c, c.zone))
	}
	if _, ok := s.piles[c.Type]; !ok {
		s.order = append(s.order, c.Type)
	}
	c.zone = s
	s.piles[c.Type] = append(s.piles[c.Type], c)
}

// Count returns the remaining instances of t.
func (s *Supply) Count(t *CardType) int {
	return len(s.piles[t])
}

// Picked returns how many instances of t have ever been taken.
func (s *Supply) Picked(t *CardType) int {
	return s.picked[t]
}

// HasPile reports whether t has a pile in this match.
func (s *Supply) HasPile(t *CardType) bool {
	_, ok := s.piles[t]
	return ok
}

// Types returns the pile types in stocking order.
func (s *Supply) Types() []*CardType {
	out := make([]*CardType, len(s.order))
	copy(out, s.order)
	return out
}

// Available returns the types whose piles are not empty, in stocking order.
func (s *Supply) Available() []*CardType {
	var out []*CardType
	for _, t := range s.order {
		if len(s.piles[t]) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// EmptyPiles counts empty piles, optionally including the Curse pile.
func (s *Supply) EmptyPiles(includeCurse bool) int {
	n := 0
	for _, t := range s.order {
		if !includeCurse && t.Is(CapCurse) {
			continue
		}
		if len(s.piles[t]) == 0 {
			n++
		}
	}
	return n
}

// Total returns the number of cards left in the supply.
func (s *Supply) Total() int {
	n := 0
	for _, p := range s.piles {
		n += len(p)
	}
	return n
}

// Contains reports whether c is currently on a supply pile.
func (s *Supply) Contains(c *CardInstance) bool {
	return c != nil && c.zone == Holder(s)
}

// instances returns every card on every pile, in stocking order.
func (s *Supply) instances() []*CardInstance {
	var out []*CardInstance
	for _, t := range s.order {
		out = append(out, s.piles[t]...)
	}
	return out
}
