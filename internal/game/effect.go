package game

import (
	"context"

	"github.com/peterkuimelis/deckbuilder/internal/log"
)

// AffectFunc applies an attack to one defender.
type AffectFunc func(ctx context.Context, g *Game, attacker, defender *Player, c *CardInstance) error

// ResolvePlay applies the effect protocol to a card that is already out of
// the hand: target check, the default Action or Treasure gate, then the
// custom effect or, for attacks without one, the attack resolution.
func (g *Game) ResolvePlay(ctx context.Context, p *Player, c *CardInstance, targets []*CardType) error {
	t := c.Type
	if t.Is(CapCurse) && !t.IsAny(CapAction|CapTreasure) {
		return violationf("%s cannot be played", t)
	}
	if t.Check != nil && len(targets) > 0 {
		if err := t.Check(g, p, targets); err != nil {
			return err
		}
	}

	switch {
	case g.Phase == PhaseAction && t.Is(CapAction):
		if p.Actions <= 0 {
			return violationf("no actions remaining")
		}
		p.Actions += t.Actions - 1
		p.Money += t.Money
		p.Buys += t.Buys
		p.Draw(t.Draw)
		p.ActionsPlayed++
	case g.Phase == PhaseBuy && t.Is(CapTreasure):
		p.Money += t.Money
	default:
		return violationf("wrong phase for this card type")
	}

	if t.Effect != nil {
		return t.Effect(ctx, g, p, c, targets)
	}
	if t.Is(CapAttack) {
		return g.ResolveAttack(ctx, p, c, t.Affect)
	}
	return nil
}

// ResolveAttack runs affect against every other player in seating order.
// Each defender's reactions are consulted in hand order first; the first one
// that cancels protects that defender only.
func (g *Game) ResolveAttack(ctx context.Context, attacker *Player, c *CardInstance, affect AffectFunc) error {
	for _, d := range g.Opponents(attacker) {
		g.log(log.NewAttackEvent(g.turn, g.Phase.String(), attacker.Index(), d.Index(), c.Name()))
		cancelled, err := g.react(ctx, d, c)
		if err != nil {
			return err
		}
		if cancelled || affect == nil {
			continue
		}
		if err := affect(ctx, g, attacker, d, c); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) react(ctx context.Context, d *Player, attack *CardInstance) (bool, error) {
	reactions := d.Hand.Filter(func(c *CardInstance) bool { return c.Type.Is(CapReaction) })
	for _, r := range reactions {
		// an earlier reaction may have moved it
		if !d.Hand.Contains(r) {
			continue
		}
		cancel, err := r.Type.React(ctx, g, d, r, attack)
		if err != nil {
			return false, err
		}
		if cancel {
			g.log(log.NewReactEvent(g.turn, g.Phase.String(), d.Index(), r.Name(), attack.Name(), true))
			return true, nil
		}
	}
	return false, nil
}

// --- Zone movement helpers used by card effects ---

// Gain moves one t from the supply into zone to (nil means p's discard pile).
func (g *Game) Gain(p *Player, t *CardType, to *OrderedZone) (*CardInstance, error) {
	if to == nil {
		to = p.Discard
	}
	c, err := g.Supply.Take(t)
	if err != nil {
		return nil, err
	}
	to.Put(c)
	g.log(log.NewGainEvent(g.turn, g.Phase.String(), p.Index(), t.Name, to.Kind().String()))
	return c, nil
}

// GainIfAvailable is Gain that does nothing when the pile is empty.
func (g *Game) GainIfAvailable(p *Player, t *CardType, to *OrderedZone) *CardInstance {
	if g.Supply.Count(t) == 0 {
		return nil
	}
	c, _ := g.Gain(p, t, to)
	return c
}

// TrashFromHand moves c from p's hand to the trash.
func (g *Game) TrashFromHand(p *Player, c *CardInstance) error {
	return p.Drop(c, g.Trash)
}

// trashSelf trashes a card that is resolving, if it is still in play or in
// transit. It reports whether the card was trashed.
func (g *Game) trashSelf(p *Player, c *CardInstance) bool {
	switch {
	case c.In(p.Played):
		_, _ = p.Played.PickCard(c)
	case c.Zone() == nil:
	default:
		return false
	}
	g.Trash.Put(c)
	g.log(log.NewTrashEvent(g.turn, g.Phase.String(), p.Index(), c.Name()))
	return true
}

// move relocates c between two zones and logs the destination.
func (g *Game) move(p *Player, c *CardInstance, from, to *OrderedZone) error {
	if _, err := from.PickCard(c); err != nil {
		return err
	}
	to.Put(c)
	if to == p.Hand {
		g.log(log.NewAddToHandEvent(g.turn, g.Phase.String(), p.Index(), c.Name(), from.Kind().String()))
		return nil
	}
	p.logMove(c, to)
	return nil
}

// gainFromTrash moves c from the trash into zone to (nil means p's discard pile).
func (g *Game) gainFromTrash(p *Player, c *CardInstance, to *OrderedZone) error {
	if to == nil {
		to = p.Discard
	}
	if _, err := g.Trash.PickCard(c); err != nil {
		return err
	}
	to.Put(c)
	g.log(log.NewGainEvent(g.turn, g.Phase.String(), p.Index(), c.Name(), to.Kind().String()))
	return nil
}

// trashFromSupply moves one t from the supply straight to the trash.
func (g *Game) trashFromSupply(p *Player, t *CardType) error {
	c, err := g.Supply.Take(t)
	if err != nil {
		return err
	}
	g.Trash.Put(c)
	g.log(log.NewTrashEvent(g.turn, g.Phase.String(), p.Index(), c.Name()))
	return nil
}

// revealHand logs every card in p's hand as revealed.
func (g *Game) revealHand(p *Player) {
	for _, c := range p.Hand.Cards() {
		g.revealCard(p, c)
	}
}

// passCard moves c from one player's hand to another's.
func (g *Game) passCard(from, to *Player, c *CardInstance) error {
	if _, err := from.Hand.PickCard(c); err != nil {
		return err
	}
	to.Hand.Put(c)
	g.log(log.NewAddToHandEvent(g.turn, g.Phase.String(), to.Index(), c.Name(), from.Name))
	return nil
}

// playAgain resolves c, which is already out of the hand, as an extra play
// granted by another card's effect.
func (g *Game) playAgain(ctx context.Context, p *Player, c *CardInstance, targets []*CardType) error {
	g.log(log.NewPlayEvent(g.turn, g.Phase.String(), p.Index(), c.Name(), typeNames(targets)))
	return g.ResolvePlay(ctx, p, c, targets)
}

// revealCard logs c, held by p, as revealed without moving it.
func (g *Game) revealCard(p *Player, c *CardInstance) {
	g.log(log.NewRevealEvent(g.turn, g.Phase.String(), p.Index(), c.Name()))
}
