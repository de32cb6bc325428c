package game

import (
	"context"
	"fmt"
)

// Set names
const (
	SetBasic      = "Basic"
	SetBase       = "Base"
	SetBase1E     = "Base1E"
	SetBase2E     = "Base2E"
	SetIntrigue   = "Intrigue"
	SetIntrigue1E = "Intrigue1E"
	SetIntrigue2E = "Intrigue2E"
)

// --- Basic cards, present in every match ---

var Copper = &CardType{
	Name:        "Copper",
	Set:         SetBasic,
	Description: "+1 money.",
	Cost:        0,
	Caps:        CapTreasure,
	Money:       1,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		p.Money += p.copperBonus
		return nil
	},
}

var Silver = &CardType{
	Name:        "Silver",
	Set:         SetBasic,
	Description: "+2 money.",
	Cost:        3,
	Caps:        CapTreasure,
	Money:       2,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		// first Silver this turn
		if p.Played.CountType(c.Type) == 1 {
			p.Money += p.silverBonus
		}
		return nil
	},
}

var Gold = &CardType{
	Name:        "Gold",
	Set:         SetBasic,
	Description: "+3 money.",
	Cost:        6,
	Caps:        CapTreasure,
	Money:       3,
}

var Estate = &CardType{
	Name:        "Estate",
	Set:         SetBasic,
	Description: "1 victory point.",
	Cost:        2,
	Caps:        CapVictory,
	Score:       1,
}

var Duchy = &CardType{
	Name:        "Duchy",
	Set:         SetBasic,
	Description: "3 victory points.",
	Cost:        5,
	Caps:        CapVictory,
	Score:       3,
}

var Province = &CardType{
	Name:        "Province",
	Set:         SetBasic,
	Description: "6 victory points.",
	Cost:        8,
	Caps:        CapVictory,
	Score:       6,
}

var Curse = &CardType{
	Name:        "Curse",
	Set:         SetBasic,
	Description: "-1 victory point.",
	Cost:        0,
	Caps:        CapCurse,
	Score:       -1,
}

// BasicCards returns the always-present supply cards.
func BasicCards() []*CardType {
	return []*CardType{Copper, Silver, Gold, Estate, Duchy, Province, Curse}
}

// --- Shared effect helpers ---

func isTreasure(c *CardInstance) bool { return c.Type.Is(CapTreasure) }
func isAction(c *CardInstance) bool   { return c.Type.Is(CapAction) }
func isVictory(c *CardInstance) bool  { return c.Type.Is(CapVictory) }
func anyCard(*CardInstance) bool      { return true }

func ofType(t *CardType) func(*CardInstance) bool {
	return func(c *CardInstance) bool { return c.Type == t }
}

// costUpTo accepts supply types whose current cost is at most max.
func costUpTo(g *Game, max int) func(*CardType) bool {
	return func(t *CardType) bool { return g.CurrentCost(t) <= max }
}

// requireInHand checks that every target names a distinct card in hand
// that satisfies keep.
func requireInHand(p *Player, targets []*CardType, keep func(*CardInstance) bool) error {
	_, err := resolveInHand(p.Hand.Filter(keep), targets, "target")
	return err
}

// requireGainable checks that t is in the supply and accepted by keep.
func requireGainable(g *Game, t *CardType, keep func(*CardType) bool) error {
	if g.Supply.Count(t) == 0 {
		return violationf("no %s left in the supply", t)
	}
	if !keep(t) {
		return violationf("%s cannot be gained here (cost %d)", t, g.CurrentCost(t))
	}
	return nil
}

// exchange is the trash-a-card-gain-a-card pattern shared by Remodel, Mine,
// Upgrade and Replace. Targets are [trashed, gained].
type exchange struct {
	trashKind ChoiceKind
	gainKind  ChoiceKind
	trashOK   func(*CardInstance) bool
	gainOK    func(g *Game, trashed, gained *CardType) bool
}

func (x exchange) check(g *Game, p *Player, targets []*CardType) error {
	if len(targets) > 2 {
		return violationf("%s: at most 2 targets", x.trashKind)
	}
	if err := requireInHand(p, targets[:1], x.trashOK); err != nil {
		return err
	}
	if len(targets) == 2 {
		return requireGainable(g, targets[1], func(t *CardType) bool { return x.gainOK(g, targets[0], t) })
	}
	return nil
}

// resolve trashes one card from hand and picks the card to gain. The gained
// type is nil when nothing qualifies; the caller performs the gain.
func (x exchange) resolve(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) (trashed *CardInstance, gain *CardType, err error) {
	picked, err := g.handTargets(ctx, p, headTargets(targets, 1), Choice{
		Kind:   x.trashKind,
		Source: c.Type,
		Prompt: "Choose a card to trash",
		Min:    1,
		Max:    1,
	}, x.trashOK)
	if err != nil || len(picked) == 0 {
		return nil, nil, err
	}
	trashed = picked[0]
	gain, err = g.supplyTarget(ctx, p, targetAt(targets, 1), Choice{
		Kind:   x.gainKind,
		Source: c.Type,
		Prompt: "Choose a card to gain",
		Min:    1,
	}, func(t *CardType) bool { return x.gainOK(g, trashed.Type, t) })
	if err != nil {
		return nil, nil, err
	}
	if err := g.TrashFromHand(p, trashed); err != nil {
		return nil, nil, err
	}
	return trashed, gain, nil
}

// gainUpTo is the gain-a-card-costing-up-to pattern of Workshop, Feast,
// Ironworks and Artisan.
func gainUpTo(ctx context.Context, g *Game, p *Player, c *CardInstance, target *CardType, kind ChoiceKind, max int) (*CardType, error) {
	return g.supplyTarget(ctx, p, target, Choice{
		Kind:   kind,
		Source: c.Type,
		Prompt: fmt.Sprintf("Choose a card costing up to %d to gain", max),
		Min:    1,
	}, costUpTo(g, max))
}

func checkGainUpTo(max int) func(g *Game, p *Player, targets []*CardType) error {
	return func(g *Game, p *Player, targets []*CardType) error {
		return requireGainable(g, targets[0], costUpTo(g, max))
	}
}

// discardFromHand discards cards from hand, logging each one.
func discardFromHand(p *Player, cards []*CardInstance) error {
	for _, c := range cards {
		if err := p.Drop(c, nil); err != nil {
			return err
		}
	}
	return nil
}

// filterCards returns the cards matching keep, in order.
func filterCards(cards []*CardInstance, keep func(*CardInstance) bool) []*CardInstance {
	var out []*CardInstance
	for _, c := range cards {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// without returns cards minus every instance in drop.
func without(cards, drop []*CardInstance) []*CardInstance {
	return filterCards(cards, func(c *CardInstance) bool { return !containsCard(drop, c) })
}

func distinctTypes(cards []*CardInstance) int {
	var seen []*CardType
	for _, c := range cards {
		if !containsType(seen, c.Type) {
			seen = append(seen, c.Type)
		}
	}
	return len(seen)
}

// undoReveal puts revealed cards that are still in hand back on the deck in
// their original order.
func undoReveal(p *Player, cards []*CardInstance) {
	for i := len(cards) - 1; i >= 0; i-- {
		if c := cards[i]; c.In(p.Hand) {
			_, _ = p.Hand.PickCard(c)
			p.Deck.Put(c)
		}
	}
}

// askMode asks p to pick one of the card's modes.
func (g *Game) askMode(ctx context.Context, p *Player, c *CardInstance, kind ChoiceKind, options ...string) (int, error) {
	return g.askOption(ctx, p, Choice{
		Kind:    kind,
		Source:  c.Type,
		Prompt:  "Choose one",
		Options: options,
	})
}

// topDeckInOrder moves revealed cards from hand onto the deck in order.
func topDeckInOrder(p *Player, cards []*CardInstance) error {
	for _, c := range cards {
		if err := p.Drop(c, p.Deck); err != nil {
			return err
		}
	}
	return nil
}
