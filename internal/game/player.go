package game

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/peterkuimelis/deckbuilder/internal/log"
)

// Player owns four ordered zones and the per-turn counters.
type Player struct {
	Name     string
	Seat     int // 1-based seating position
	Strategy Strategy

	Deck    *OrderedZone
	Hand    *OrderedZone
	Played  *OrderedZone
	Discard *OrderedZone

	// Per-turn counters
	Actions       int
	Buys          int
	Money         int
	ActionsPlayed int

	// Money added to each Copper (Coppersmith) and to the first Silver
	// (Merchant) for the rest of the turn. Counted per play so that a card
	// played twice counts twice.
	copperBonus int
	silverBonus int

	TurnsTaken int

	game *Game
}

func newPlayer(g *Game, seat int, name string, s Strategy) *Player {
	p := &Player{Name: name, Seat: seat, Strategy: s, game: g}
	p.Deck = NewOrderedZone(ZoneDeck, p)
	p.Hand = NewOrderedZone(ZoneHand, p)
	p.Played = NewOrderedZone(ZonePlayed, p)
	p.Discard = NewOrderedZone(ZoneDiscard, p)
	return p
}

func (p *Player) String() string {
	return p.Name
}

// Index returns the 0-based seat index used in the event log.
func (p *Player) Index() int {
	return p.Seat - 1
}

// Game returns the match the player belongs to.
func (p *Player) Game() *Game {
	return p.game
}

// Zones returns deck, hand, played and discard.
func (p *Player) Zones() []*OrderedZone {
	return []*OrderedZone{p.Deck, p.Hand, p.Played, p.Discard}
}

// Count returns the number of cards the player owns.
func (p *Player) Count() int {
	n := 0
	for _, z := range p.Zones() {
		n += z.Len()
	}
	return n
}

// CountType returns the number of owned instances of t.
func (p *Player) CountType(t *CardType) int {
	n := 0
	for _, z := range p.Zones() {
		n += z.CountType(t)
	}
	return n
}

// AllCards returns every owned card, zone by zone.
func (p *Player) AllCards() []*CardInstance {
	var out []*CardInstance
	for _, z := range p.Zones() {
		out = append(out, z.Cards()...)
	}
	return out
}

// Draw moves up to n cards from deck to hand. An empty deck is refilled by
// shuffling the discard pile into it. A short draw is not an error.
func (p *Player) Draw(n int) []*CardInstance {
	drawn := p.takeTop(n)
	for _, c := range drawn {
		p.Hand.Put(c)
	}
	if len(drawn) > 0 {
		g := p.game
		g.log(log.NewDrawEvent(g.turn, g.Phase.String(), p.Index(), len(drawn)))
	}
	return drawn
}

// reveal draws up to n cards into hand as Draw does but logs each card as
// revealed. Callers move the revealed cards on.
func (p *Player) reveal(n int) []*CardInstance {
	cards := p.takeTop(n)
	g := p.game
	for _, c := range cards {
		p.Hand.Put(c)
		g.log(log.NewRevealEvent(g.turn, g.Phase.String(), p.Index(), c.Name()))
	}
	return cards
}

// takeTop picks up to n cards from the deck, reshuffling at most once per
// emptied deck. The cards are in transit on return.
func (p *Player) takeTop(n int) []*CardInstance {
	var out []*CardInstance
	for i := 0; i < n; i++ {
		if p.Deck.Len() == 0 {
			if p.Discard.Len() == 0 {
				break
			}
			p.reshuffle()
		}
		c, err := p.Deck.Pick()
		if err != nil {
			break
		}
		out = append(out, c)
	}
	return out
}

func (p *Player) reshuffle() {
	g := p.game
	p.Discard.MixInto(p.Deck)
	p.Deck.Shuffle(g.rng)
	g.log(log.NewShuffleEvent(g.turn, g.Phase.String(), p.Index()))
}

// Drop moves c from hand to the given zone. A nil zone means the discard pile.
func (p *Player) Drop(c *CardInstance, to *OrderedZone) error {
	if to == nil {
		to = p.Discard
	}
	if _, err := p.Hand.PickCard(c); err != nil {
		return err
	}
	to.Put(c)
	p.logMove(c, to)
	return nil
}

// DropType moves the first instance of t from hand to the given zone.
func (p *Player) DropType(t *CardType, to *OrderedZone) error {
	c := p.Hand.Find(t)
	if c == nil {
		return violationf("no %s in %s", t, p.Hand)
	}
	return p.Drop(c, to)
}

func (p *Player) logMove(c *CardInstance, to *OrderedZone) {
	g := p.game
	phase := g.Phase.String()
	switch {
	case to == g.Trash:
		g.log(log.NewTrashEvent(g.turn, phase, p.Index(), c.Name()))
	case to.Kind() == ZoneDiscard:
		g.log(log.NewDiscardEvent(g.turn, phase, p.Index(), c.Name()))
	case to.Kind() == ZoneDeck:
		g.log(log.NewTopDeckEvent(g.turn, phase, p.Index(), c.Name()))
	}
}

// Buy gains one t from the supply into the discard pile, paying its current cost.
func (p *Player) Buy(t *CardType) error {
	g := p.game
	if err := g.checkTurn(p, PhaseBuy); err != nil {
		return err
	}
	if p.Buys < 1 {
		return violationf("cannot buy %s: no buys remaining", t)
	}
	cost := g.CurrentCost(t)
	if p.Money < cost {
		return violationf("cannot buy %s: costs %d, have %d", t, cost, p.Money)
	}
	c, err := g.Supply.Take(t)
	if err != nil {
		return violationf("cannot buy %s: pile is empty", t)
	}
	p.Buys--
	p.Money -= cost
	p.Discard.Put(c)
	g.log(log.NewBuyEvent(g.turn, g.Phase.String(), p.Index(), t.Name, cost))
	for _, o := range g.Players {
		o.Strategy.OnBuy(g, p, t)
	}
	return nil
}

// BuyNamed resolves name through the registry and buys it.
func (p *Player) BuyNamed(name string) error {
	t, err := p.game.Registry.Lookup(name)
	if err != nil {
		return err
	}
	return p.Buy(t)
}

// checkpoint is the part of the match a failed play must roll back: the
// acting player's counters, the cost modifier and the position of every card.
type checkpoint struct {
	player                              *Player
	actions, buys, money, actionsPlayed int
	copperBonus, silverBonus            int
	costModifier                        int

	zones  map[*OrderedZone][]*CardInstance
	piles  map[*CardType][]*CardInstance
	order  []*CardType
	picked map[*CardType]int
}

func (g *Game) checkpoint(p *Player) *checkpoint {
	cp := &checkpoint{
		player:        p,
		actions:       p.Actions,
		buys:          p.Buys,
		money:         p.Money,
		actionsPlayed: p.ActionsPlayed,
		copperBonus:   p.copperBonus,
		silverBonus:   p.silverBonus,
		costModifier:  g.costModifier,
		zones:         make(map[*OrderedZone][]*CardInstance),
		piles:         make(map[*CardType][]*CardInstance, len(g.Supply.piles)),
		order:         slices.Clone(g.Supply.order),
		picked:        maps.Clone(g.Supply.picked),
	}
	cp.zones[g.Trash] = g.Trash.Cards()
	for _, o := range g.Players {
		for _, z := range o.Zones() {
			cp.zones[z] = z.Cards()
		}
	}
	for t, pile := range g.Supply.piles {
		cp.piles[t] = slices.Clone(pile)
	}
	return cp
}

// rollback puts every card back where it was when cp was taken. Cards moved
// or set aside since then are reclaimed by the zone that held them.
func (g *Game) rollback(cp *checkpoint) {
	for z, cards := range cp.zones {
		for _, c := range cards {
			c.zone = z
		}
		z.cards = cards
	}
	s := g.Supply
	for _, pile := range cp.piles {
		for _, c := range pile {
			c.zone = s
		}
	}
	s.piles, s.order, s.picked = cp.piles, cp.order, cp.picked

	p := cp.player
	p.Actions, p.Buys, p.Money, p.ActionsPlayed = cp.actions, cp.buys, cp.money, cp.actionsPlayed
	p.copperBonus, p.silverBonus = cp.copperBonus, cp.silverBonus
	g.costModifier = cp.costModifier
}

// Play moves c from hand to the played area and resolves it. Targets name the
// cards the effect applies to; absent targets are asked for when needed.
// If resolution fails the whole play is undone: every card it moved,
// drawn cards included, goes back, the turn counters are restored and the
// error is returned.
func (p *Player) Play(ctx context.Context, c *CardInstance, targets ...*CardType) error {
	g := p.game
	if err := g.checkTurn(p, g.Phase); err != nil {
		return err
	}
	if !p.Hand.Contains(c) {
		return violationf("%s is not in %s", c, p.Hand)
	}
	targets = append([]*CardType(nil), targets...)

	cp := g.checkpoint(p)
	if _, err := p.Hand.PickCard(c); err != nil {
		return err
	}
	p.Played.Put(c)
	g.log(log.NewPlayEvent(g.turn, g.Phase.String(), p.Index(), c.Name(), typeNames(targets)))

	if err := g.ResolvePlay(ctx, p, c, targets); err != nil {
		g.rollback(cp)
		g.log(log.NewUndoEvent(g.turn, g.Phase.String(), p.Index(), c.Name(), err.Error()))
		g.zlog.Debug("play rolled back",
			zap.String("player", p.Name),
			zap.String("card", c.Name()),
			zap.Error(err),
		)
		return err
	}
	for _, o := range g.Players {
		o.Strategy.OnPlay(g, p, c, targets)
	}
	return nil
}

// PlayType plays the first instance of t in hand.
func (p *Player) PlayType(ctx context.Context, t *CardType, targets ...*CardType) error {
	c := p.Hand.Find(t)
	if c == nil {
		return violationf("no %s in %s", t, p.Hand)
	}
	return p.Play(ctx, c, targets...)
}

// PlayNamed resolves the card and target names through the registry and plays it.
func (p *Player) PlayNamed(ctx context.Context, name string, targets ...string) error {
	reg := p.game.Registry
	t, err := reg.Lookup(name)
	if err != nil {
		return err
	}
	tt, err := reg.LookupAll(targets)
	if err != nil {
		return err
	}
	return p.PlayType(ctx, t, tt...)
}

// PlayAllTreasures plays every Treasure in hand. Only valid in the buy phase.
func (p *Player) PlayAllTreasures(ctx context.Context) error {
	for _, c := range p.Hand.Filter(func(c *CardInstance) bool { return c.Type.Is(CapTreasure) }) {
		if !p.Hand.Contains(c) {
			continue
		}
		if err := p.Play(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// AvailableMoney returns the money on hand plus the base value of every
// Treasure still in hand.
func (p *Player) AvailableMoney() int {
	m := p.Money
	for _, c := range p.Hand.Filter(func(c *CardInstance) bool { return c.Type.Is(CapTreasure) }) {
		m += c.Type.Money
	}
	return m
}

func (p *Player) resetCounters(actions, buys int) {
	p.Actions, p.Buys, p.Money, p.ActionsPlayed = actions, buys, 0, 0
	p.copperBonus, p.silverBonus = 0, 0
}

// doTurn runs the action and buy phases through the strategy, then cleans up.
func (p *Player) doTurn(ctx context.Context) error {
	g := p.game
	p.resetCounters(1, 1)

	for _, phase := range []Phase{PhaseAction, PhaseBuy} {
		g.setPhase(phase)
		var err error
		if phase == PhaseAction {
			err = p.Strategy.ActionPhase(ctx, g, p)
		} else {
			err = p.Strategy.BuyPhase(ctx, g, p)
		}
		if err != nil {
			if !IsRulesViolation(err) {
				return fmt.Errorf("%s %s phase: %w", p.Name, phase, err)
			}
			g.zlog.Warn("phase ended by rules violation",
				zap.String("player", p.Name),
				zap.Stringer("phase", phase),
				zap.Error(err),
			)
		}
	}

	g.setPhase(PhaseCleanup)
	p.Hand.MixInto(p.Discard)
	p.Played.MixInto(p.Discard)
	p.resetCounters(0, 0)
	p.Draw(HandSize)
	p.TurnsTaken++
	return nil
}

// CountScores consolidates every zone into the deck and returns the total
// score and -TurnsTaken, the ranking key.
func (p *Player) CountScores() (int, int) {
	for _, z := range []*OrderedZone{p.Hand, p.Played, p.Discard} {
		z.MixInto(p.Deck)
	}
	total := 0
	for _, c := range p.Deck.cards {
		total += c.Type.Score
		if c.Type.Bonus != nil {
			total += c.Type.Bonus(p.game, p)
		}
	}
	return total, -p.TurnsTaken
}

func typeNames(types []*CardType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.Name
	}
	return out
}
