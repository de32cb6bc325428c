package game

import (
	"fmt"
	"strings"
	"sync"
)

// Registry maps normalized card names to their type descriptors. It is
// populated once by explicit Register calls and read-only afterwards.
type Registry struct {
	byKey map[string]*CardType
	order []*CardType
}

// NewRegistry returns a registry holding the given card types.
func NewRegistry(types ...*CardType) *Registry {
	r := &Registry{byKey: make(map[string]*CardType)}
	for _, t := range types {
		r.Register(t)
	}
	return r
}

// Register adds a card type. Panics on a duplicate name or a descriptor whose
// capabilities lack the required effect slots.
func (r *Registry) Register(t *CardType) {
	key := t.Key()
	if key == "" {
		panic("card type registered without a name")
	}
	if _, dup := r.byKey[key]; dup {
		panic(fmt.Sprintf("card %q registered twice", t.Name))
	}
	if t.IsAny(CapAttack|CapReaction) && !t.Is(CapAction) {
		panic(fmt.Sprintf("card %q: attacks and reactions must be actions", t.Name))
	}
	if t.Is(CapAttack) && t.Affect == nil && t.Effect == nil {
		panic(fmt.Sprintf("card %q: attack without an affect", t.Name))
	}
	if t.Is(CapReaction) && t.React == nil {
		panic(fmt.Sprintf("card %q: reaction without a hook", t.Name))
	}
	r.byKey[key] = t
	r.order = append(r.order, t)
}

// Lookup resolves a card name case-insensitively.
func (r *Registry) Lookup(name string) (*CardType, error) {
	t, ok := r.byKey[normalizeName(name)]
	if !ok {
		return nil, &UnknownCardError{Name: name}
	}
	return t, nil
}

// LookupAll resolves every name, failing on the first unknown one.
func (r *Registry) LookupAll(names []string) ([]*CardType, error) {
	types := make([]*CardType, 0, len(names))
	for _, name := range names {
		t, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// MustLookup is Lookup for names known at compile time. Panics if the card is not found.
func (r *Registry) MustLookup(name string) *CardType {
	t, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Contains reports whether t is registered.
func (r *Registry) Contains(t *CardType) bool {
	return t != nil && r.byKey[t.Key()] == t
}

// All returns every registered type in registration order.
func (r *Registry) All() []*CardType {
	out := make([]*CardType, len(r.order))
	copy(out, r.order)
	return out
}

// InSets returns the non-basic types belonging to one of the given editions.
// An edition name includes every set it starts with, so "Base2E" selects the
// Base and Base2E cards.
func (r *Registry) InSets(sets []string) []*CardType {
	var out []*CardType
	for _, t := range r.order {
		if t.IsBasic() {
			continue
		}
		for _, s := range sets {
			if setMatches(s, t.Set) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func setMatches(selector, set string) bool {
	sel, s := normalizeName(selector), normalizeName(set)
	return s != "" && strings.HasPrefix(sel, s)
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the registry of the full built-in catalog.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		r := NewRegistry(BasicCards()...)
		for _, t := range BaseCards() {
			r.Register(t)
		}
		for _, t := range IntrigueCards() {
			r.Register(t)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}
