package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/deckbuilder/internal/log"
)

// scriptedStrategy is a Strategy that follows a predefined script. Used in
// tests to deterministically drive the game. Every queue falls back to a
// default once it is exhausted: the first Min candidates, the identity order
// and "no".
type scriptedStrategy struct {
	BaseStrategy
	t    *testing.T
	name string

	plays []scriptedPlay
	buys  []string

	cards   [][]string
	types   []string
	options [][]int
	orders  [][]string
	yesNo   []bool

	// Kinds of every decision asked, in order.
	asked []ChoiceKind
	// Errors returned by scripted plays.
	playErrs []error
}

type scriptedPlay struct {
	card    string
	targets []string
}

func newScripted(t *testing.T, name string) *scriptedStrategy {
	return &scriptedStrategy{t: t, name: name}
}

func (s *scriptedStrategy) Name() string { return s.name }

func (s *scriptedStrategy) AddPlay(card string, targets ...string) *scriptedStrategy {
	s.plays = append(s.plays, scriptedPlay{card: card, targets: targets})
	return s
}

func (s *scriptedStrategy) AddBuy(names ...string) *scriptedStrategy {
	s.buys = append(s.buys, names...)
	return s
}

func (s *scriptedStrategy) AddCards(names ...string) *scriptedStrategy {
	s.cards = append(s.cards, names)
	return s
}

func (s *scriptedStrategy) AddType(name string) *scriptedStrategy {
	s.types = append(s.types, name)
	return s
}

func (s *scriptedStrategy) AddOptions(indices ...int) *scriptedStrategy {
	s.options = append(s.options, indices)
	return s
}

func (s *scriptedStrategy) AddOrder(names ...string) *scriptedStrategy {
	s.orders = append(s.orders, names)
	return s
}

func (s *scriptedStrategy) AddYesNo(answers ...bool) *scriptedStrategy {
	s.yesNo = append(s.yesNo, answers...)
	return s
}

// ActionPhase plays scripted actions while the next one is in hand. A play
// that is not yet possible stays queued for a later turn.
func (s *scriptedStrategy) ActionPhase(ctx context.Context, g *Game, p *Player) error {
	for len(s.plays) > 0 && p.Actions > 0 {
		next := s.plays[0]
		t, err := g.Registry.Lookup(next.card)
		if err != nil {
			return err
		}
		if p.Hand.Find(t) == nil {
			return nil
		}
		s.plays = s.plays[1:]
		if err := p.PlayNamed(ctx, next.card, next.targets...); err != nil {
			s.playErrs = append(s.playErrs, err)
			return nil
		}
	}
	return nil
}

// BuyPhase plays every Treasure, then buys scripted cards while they are
// affordable.
func (s *scriptedStrategy) BuyPhase(ctx context.Context, g *Game, p *Player) error {
	if err := p.PlayAllTreasures(ctx); err != nil {
		return err
	}
	for len(s.buys) > 0 && p.Buys > 0 {
		t, err := g.Registry.Lookup(s.buys[0])
		if err != nil {
			return err
		}
		if g.CurrentCost(t) > p.Money || g.Supply.Count(t) == 0 {
			return nil
		}
		s.buys = s.buys[1:]
		if err := p.Buy(t); err != nil {
			return err
		}
	}
	return nil
}

func (s *scriptedStrategy) ChooseCards(ctx context.Context, g *Game, p *Player, ch Choice) ([]*CardInstance, error) {
	s.asked = append(s.asked, ch.Kind)
	if len(s.cards) == 0 {
		lo, _ := ch.Bounds(len(ch.Cards))
		return ch.Cards[:lo], nil
	}
	names := s.cards[0]
	s.cards = s.cards[1:]
	return pickByName(ch.Cards, names), nil
}

func (s *scriptedStrategy) ChooseTypes(ctx context.Context, g *Game, p *Player, ch Choice) ([]*CardType, error) {
	s.asked = append(s.asked, ch.Kind)
	if len(s.types) == 0 {
		lo, _ := ch.Bounds(len(ch.Types))
		return ch.Types[:lo], nil
	}
	name := s.types[0]
	s.types = s.types[1:]
	for _, t := range ch.Types {
		if normalizeName(t.Name) == normalizeName(name) {
			return []*CardType{t}, nil
		}
	}
	// Not a candidate: answer anyway so the engine rejects it.
	t, err := g.Registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return []*CardType{t}, nil
}

func (s *scriptedStrategy) ChooseOptions(ctx context.Context, g *Game, p *Player, ch Choice) ([]int, error) {
	s.asked = append(s.asked, ch.Kind)
	if len(s.options) == 0 {
		lo, _ := ch.Bounds(len(ch.Options))
		out := make([]int, lo)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
	picked := s.options[0]
	s.options = s.options[1:]
	return picked, nil
}

func (s *scriptedStrategy) ChooseOrder(ctx context.Context, g *Game, p *Player, ch Choice) ([]*CardInstance, error) {
	s.asked = append(s.asked, ch.Kind)
	if len(s.orders) == 0 {
		return ch.Cards, nil
	}
	names := s.orders[0]
	s.orders = s.orders[1:]
	return pickByName(ch.Cards, names), nil
}

func (s *scriptedStrategy) ChooseYesNo(ctx context.Context, g *Game, p *Player, ch Choice) (bool, error) {
	s.asked = append(s.asked, ch.Kind)
	if len(s.yesNo) == 0 {
		return false, nil
	}
	answer := s.yesNo[0]
	s.yesNo = s.yesNo[1:]
	return answer, nil
}

// pickByName maps each name to the first unused candidate with that name.
// Names without a candidate are skipped.
func pickByName(candidates []*CardInstance, names []string) []*CardInstance {
	used := make(map[*CardInstance]bool)
	var out []*CardInstance
	for _, name := range names {
		for _, c := range candidates {
			if !used[c] && normalizeName(c.Name()) == normalizeName(name) {
				used[c] = true
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// moneyStrategy buys Province at 8, Gold at 6 and Silver at 3. It never plays
// actions.
type moneyStrategy struct {
	BaseStrategy
}

func (moneyStrategy) ActionPhase(context.Context, *Game, *Player) error { return nil }

func (moneyStrategy) BuyPhase(ctx context.Context, g *Game, p *Player) error {
	if err := p.PlayAllTreasures(ctx); err != nil {
		return err
	}
	for _, t := range []*CardType{Province, Gold, Silver} {
		if p.Money >= g.CurrentCost(t) && g.Supply.Count(t) > 0 {
			return p.Buy(t)
		}
	}
	return nil
}

func (moneyStrategy) ChooseCards(_ context.Context, _ *Game, _ *Player, ch Choice) ([]*CardInstance, error) {
	lo, _ := ch.Bounds(len(ch.Cards))
	return ch.Cards[:lo], nil
}

func (moneyStrategy) ChooseTypes(_ context.Context, _ *Game, _ *Player, ch Choice) ([]*CardType, error) {
	lo, _ := ch.Bounds(len(ch.Types))
	return ch.Types[:lo], nil
}

func (moneyStrategy) ChooseOptions(_ context.Context, _ *Game, _ *Player, ch Choice) ([]int, error) {
	lo, _ := ch.Bounds(len(ch.Options))
	out := make([]int, lo)
	for i := range out {
		out[i] = i
	}
	return out, nil
}

func (moneyStrategy) ChooseOrder(_ context.Context, _ *Game, _ *Player, ch Choice) ([]*CardInstance, error) {
	return ch.Cards, nil
}

func (moneyStrategy) ChooseYesNo(context.Context, *Game, *Player, Choice) (bool, error) {
	return false, nil
}

// testKingdom holds every card the card tests rely on.
var testKingdom = []string{
	"Village", "Smithy", "Militia", "Moat", "Remodel",
	"Throne Room", "Chapel", "Mine", "Witch", "Gardens",
}

// newTestGame creates a seeded match with player 1 starting.
func newTestGame(t *testing.T, kingdom []string, strategies ...Strategy) (*Game, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	g, err := NewGame(Config{
		Strategies:  strategies,
		Kingdom:     kingdom,
		FirstPlayer: 1,
		Seed:        42,
		Logger:      logger,
		ZapLogger:   zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return g, logger
}

// startTurn puts the active player in its action phase with fresh counters,
// as Turn does before handing control to the strategy.
func startTurn(g *Game) *Player {
	g.turn++
	g.costModifier = 0
	p := g.Active()
	p.resetCounters(1, 1)
	g.setPhase(PhaseAction)
	return p
}

// takeFromSupply takes one named card off its pile. The pile must exist.
func takeFromSupply(t *testing.T, g *Game, name string) *CardInstance {
	t.Helper()
	typ, err := g.Registry.Lookup(name)
	require.NoError(t, err)
	c, err := g.Supply.Take(typ)
	require.NoError(t, err, "take %s", name)
	return c
}

// emptyZone returns every card of z to the supply.
func emptyZone(g *Game, z *OrderedZone) {
	for z.Len() > 0 {
		c, _ := z.Pick()
		g.Supply.Return(c)
	}
}

// setHand replaces p's hand with the named cards, taken from the supply.
func setHand(t *testing.T, g *Game, p *Player, names ...string) {
	t.Helper()
	emptyZone(g, p.Hand)
	for _, name := range names {
		p.Hand.Put(takeFromSupply(t, g, name))
	}
}

// stackDeck replaces p's deck so that names[0] is drawn first.
func stackDeck(t *testing.T, g *Game, p *Player, names ...string) {
	t.Helper()
	emptyZone(g, p.Deck)
	for i := len(names) - 1; i >= 0; i-- {
		p.Deck.Put(takeFromSupply(t, g, names[i]))
	}
}

// setDiscard replaces p's discard pile with the named cards.
func setDiscard(t *testing.T, g *Game, p *Player, names ...string) {
	t.Helper()
	emptyZone(g, p.Discard)
	for _, name := range names {
		p.Discard.Put(takeFromSupply(t, g, name))
	}
}

func handNames(p *Player) []string {
	return cardNames(p.Hand.Cards())
}

func cardNames(cards []*CardInstance) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name()
	}
	return out
}

// census counts every instance in the match by type.
func census(g *Game) map[*CardType]int {
	out := make(map[*CardType]int)
	for _, c := range g.AllCards() {
		out[c.Type]++
	}
	return out
}

// assertExclusiveOwnership checks that every instance is held by exactly one
// zone and knows which one.
func assertExclusiveOwnership(t *testing.T, g *Game) {
	t.Helper()
	seen := make(map[*CardInstance]bool)
	check := func(c *CardInstance, holder Holder) {
		require.False(t, seen[c], "%s held twice", c)
		seen[c] = true
		require.True(t, c.Zone() == holder, "%s has a stale zone", c)
	}
	for _, c := range g.Supply.instances() {
		check(c, g.Supply)
	}
	for _, c := range g.Trash.Cards() {
		check(c, g.Trash)
	}
	for _, p := range g.Players {
		for _, z := range p.Zones() {
			for _, c := range z.Cards() {
				check(c, z)
			}
		}
	}
}

// runToCompletion plays the match and logs the event trace.
func runToCompletion(t *testing.T, g *Game, logger *log.MemoryLogger) ScoreTable {
	t.Helper()
	table, err := g.Run(context.Background())
	require.NoError(t, err)
	t.Logf("Match log:\n%s", log.FormatAll(logger.Events()))
	return table
}
