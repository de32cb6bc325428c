package game

import (
	"context"
	"fmt"
	"strings"
)

// --- Enums ---

type Phase int

const (
	PhaseSetup Phase = iota
	PhaseAction
	PhaseBuy
	PhaseCleanup
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseAction:
		return "Action"
	case PhaseBuy:
		return "Buy"
	case PhaseCleanup:
		return "Cleanup"
	case PhaseOver:
		return "Over"
	default:
		return "Unknown"
	}
}

// Capability is a bit set of the kinds a card type belongs to.
type Capability uint8

const (
	CapTreasure Capability = 1 << iota
	CapVictory
	CapAction
	CapAttack
	CapReaction
	CapCurse
)

var capNames = []struct {
	c    Capability
	name string
}{
	{CapCurse, "Curse"},
	{CapTreasure, "Treasure"},
	{CapVictory, "Victory"},
	{CapAction, "Action"},
	{CapAttack, "Attack"},
	{CapReaction, "Reaction"},
}

// Has reports whether every capability in o is present.
func (c Capability) Has(o Capability) bool {
	return o != 0 && c&o == o
}

// Count returns the number of distinct capabilities in the set.
func (c Capability) Count() int {
	n := 0
	for _, cn := range capNames {
		if c&cn.c != 0 {
			n++
		}
	}
	return n
}

func (c Capability) String() string {
	var parts []string
	for _, cn := range capNames {
		if c&cn.c != 0 {
			parts = append(parts, cn.name)
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "-")
}

type ZoneKind int

const (
	ZoneDeck ZoneKind = iota
	ZoneHand
	ZonePlayed
	ZoneDiscard
	ZoneTrash
	ZoneSupply
)

func (z ZoneKind) String() string {
	switch z {
	case ZoneDeck:
		return "Deck"
	case ZoneHand:
		return "Hand"
	case ZonePlayed:
		return "Played"
	case ZoneDiscard:
		return "Discard"
	case ZoneTrash:
		return "Trash"
	case ZoneSupply:
		return "Supply"
	default:
		return "Unknown"
	}
}

// --- Card type (static descriptor, one per registered name) ---

type CardType struct {
	Name        string
	Set         string
	Description string
	Cost        int
	Caps        Capability

	// Base effect values applied by the default gate.
	Money   int
	Actions int
	Buys    int
	Draw    int
	Score   int

	// Check validates explicitly supplied targets before anything is mutated.
	Check func(g *Game, p *Player, targets []*CardType) error

	// Effect runs after the default Action/Treasure effect.
	Effect func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error

	// Affect is the per-opponent attack effect. Used when Effect is nil.
	Affect func(ctx context.Context, g *Game, attacker, defender *Player, c *CardInstance) error

	// React is invoked when another player attacks while this card is in hand.
	// Returning true cancels the attack for the holder only.
	React func(ctx context.Context, g *Game, defender *Player, reaction, attack *CardInstance) (bool, error)

	// Bonus computes extra victory points for one copy held by p at scoring.
	Bonus func(g *Game, p *Player) int
}

func (t *CardType) String() string {
	return t.Name
}

// Key returns the normalized lookup name: lower case, spaces and punctuation removed.
func (t *CardType) Key() string {
	return normalizeName(t.Name)
}

// Is reports whether the type has all capabilities in c.
func (t *CardType) Is(c Capability) bool {
	return t.Caps.Has(c)
}

// IsAny reports whether the type has at least one capability in c.
func (t *CardType) IsAny(c Capability) bool {
	return t.Caps&c != 0
}

// IsBasic reports whether the type belongs to the always-present base supply.
func (t *CardType) IsBasic() bool {
	return t.Set == SetBasic
}

func normalizeName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if r == ' ' || r == '-' || r == '_' || r == '\'' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// --- CardInstance (one physical card) ---

// Holder is a zone that can own card instances.
type Holder interface {
	Kind() ZoneKind
}

type CardInstance struct {
	ID   int // unique instance ID within a match
	Type *CardType

	zone Holder
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(none)"
	}
	return fmt.Sprintf("%s#%d", ci.Type.Name, ci.ID)
}

// Zone returns the zone currently holding the card, or nil while in transit.
func (ci *CardInstance) Zone() Holder {
	return ci.zone
}

// In reports whether the card is held by z.
func (ci *CardInstance) In(z *OrderedZone) bool {
	return z != nil && ci.zone == Holder(z)
}

// Name is shorthand for ci.Type.Name.
func (ci *CardInstance) Name() string {
	return ci.Type.Name
}
