package strategy

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/peterkuimelis/deckbuilder/internal/game"
)

// BigMoney buys the best treasure it can afford and greens late.
type BigMoney struct {
	Basic

	// Fractions of the Province pile that must be gone before Duchies and
	// Estates are bought.
	DuchyAt  float64
	EstateAt float64
}

func NewBigMoney() *BigMoney {
	return &BigMoney{DuchyAt: 8.0 / 12.0, EstateAt: 2.0 / 12.0}
}

func (*BigMoney) Name() string { return "BigMoney" }

func (*BigMoney) ActionPhase(context.Context, *game.Game, *game.Player) error { return nil }

func (b *BigMoney) BuyPhase(ctx context.Context, g *game.Game, p *game.Player) error {
	if err := p.PlayAllTreasures(ctx); err != nil {
		return err
	}
	if t := b.green(g, p); t != nil {
		return p.Buy(t)
	}
	for _, t := range []*game.CardType{game.Gold, game.Silver} {
		if canBuy(g, p, t) {
			return p.Buy(t)
		}
	}
	return nil
}

// green returns the victory card to buy this turn, if any.
func (b *BigMoney) green(g *game.Game, p *game.Player) *game.CardType {
	left := remaining(g, game.Province)
	switch {
	case canBuy(g, p, game.Province):
		return game.Province
	case canBuy(g, p, game.Duchy) && left <= b.DuchyAt:
		return game.Duchy
	case canBuy(g, p, game.Estate) && left <= b.EstateAt:
		return game.Estate
	}
	return nil
}

// Discarder is BigMoney with a Chapel, trashing Curses, Estates and surplus
// Coppers.
type Discarder struct {
	BigMoney
}

func NewDiscarder() *Discarder {
	return &Discarder{BigMoney{DuchyAt: 5.0 / 12.0, EstateAt: 0}}
}

func (*Discarder) Name() string { return "Discarder" }

func (d *Discarder) ActionPhase(ctx context.Context, g *game.Game, p *game.Player) error {
	if p.Hand.CountType(game.Chapel) == 0 || canBuy(g, p, game.Province) {
		return nil
	}
	needSilver := deckRatio(p, game.Gold) > 1.8
	money := 0
	for _, c := range p.AllCards() {
		if c.Type.Is(game.CapTreasure) {
			money += c.Type.Money
		}
	}
	maxCopper := max(0, money-3)
	maxSilver := max(0, money-6) / 2

	var targets []*game.CardType
	add := func(t *game.CardType, n int) {
		for range min(n, p.Hand.CountType(t)) {
			targets = append(targets, t)
		}
	}
	add(game.Curse, p.Hand.Len())
	add(game.Copper, maxCopper)
	if remaining(g, game.Province) > d.EstateAt {
		add(game.Estate, p.Hand.Len())
	}
	if !needSilver {
		add(game.Silver, maxSilver)
	}
	if len(targets) > 4 {
		targets = targets[:4]
	}
	return p.PlayType(ctx, game.Chapel, targets...)
}

func (d *Discarder) BuyPhase(ctx context.Context, g *game.Game, p *game.Player) error {
	if err := p.PlayAllTreasures(ctx); err != nil {
		return err
	}
	if t := d.green(g, p); t != nil {
		return p.Buy(t)
	}
	needChapel := p.CountType(game.Chapel) < 1 ||
		(p.CountType(game.Curse) > 2 && deckRatio(p, game.Chapel) > 8)
	switch {
	case canBuy(g, p, game.Chapel) && needChapel && p.AvailableMoney() <= 3:
		return p.Buy(game.Chapel)
	case canBuy(g, p, game.Gold):
		return p.Buy(game.Gold)
	case canBuy(g, p, game.Silver) && deckRatio(p, game.Gold) > 1.8:
		return p.Buy(game.Silver)
	}
	return nil
}

// Attacker is BigMoney that buys and plays attacks.
type Attacker struct {
	BigMoney
	Attacks []*game.CardType
}

func NewAttacker() *Attacker {
	return &Attacker{
		BigMoney: *NewBigMoney(),
		Attacks:  []*game.CardType{game.Witch, game.Militia, game.Bandit, game.Thief, game.Spy},
	}
}

func (*Attacker) Name() string { return "Attacker" }

// theftNeeded reports whether opponents own enough treasure to steal.
func theftNeeded(g *game.Game, p *game.Player) bool {
	golds := g.Supply.Picked(game.Gold) - p.CountType(game.Gold)
	silvers := g.Supply.Picked(game.Silver) - p.CountType(game.Silver)
	return golds*3+silvers > 6
}

func (a *Attacker) ActionPhase(ctx context.Context, g *game.Game, p *game.Player) error {
	for p.Actions > 0 && p.Hand.CountType(game.Spy) > 0 {
		if err := p.PlayType(ctx, game.Spy); err != nil {
			return err
		}
	}
	if p.Actions == 0 {
		return nil
	}
	switch {
	case p.Hand.CountType(game.Witch) > 0 && g.Supply.Count(game.Curse) > 0:
		return p.PlayType(ctx, game.Witch)
	case p.Hand.CountType(game.Militia) > 0:
		return p.PlayType(ctx, game.Militia)
	case p.Hand.CountType(game.Thief) > 0 && theftNeeded(g, p):
		return p.PlayType(ctx, game.Thief)
	}
	if c := p.Hand.Filter(func(c *game.CardInstance) bool { return c.Type.Is(game.CapAction) }); len(c) > 0 {
		return p.Play(ctx, c[0])
	}
	return nil
}

func (a *Attacker) BuyPhase(ctx context.Context, g *game.Game, p *game.Player) error {
	if err := p.PlayAllTreasures(ctx); err != nil {
		return err
	}
	if t := a.green(g, p); t != nil {
		return p.Buy(t)
	}
	if deckRatio(p, a.Attacks...) > 8 {
		wanted := map[*game.CardType]bool{
			game.Witch:   g.Supply.Count(game.Curse) > 0,
			game.Bandit:  theftNeeded(g, p),
			game.Thief:   theftNeeded(g, p),
			game.Militia: true,
			game.Spy:     true,
		}
		for _, t := range a.Attacks {
			if wanted[t] && canBuy(g, p, t) {
				return p.Buy(t)
			}
		}
	}
	for _, t := range []*game.CardType{game.Gold, game.Silver} {
		if canBuy(g, p, t) {
			return p.Buy(t)
		}
	}
	return nil
}

// Gardener plays Workshops into Gardens and buys lots of cheap cards.
type Gardener struct {
	Basic

	WorkshopEstateAt float64
	GardensAt        float64
	DuchyAt          float64
	EstateAt         float64
}

func NewGardener() *Gardener {
	return &Gardener{
		WorkshopEstateAt: 6.0 / 12.0,
		GardensAt:        10.0 / 12.0,
		DuchyAt:          8.0 / 12.0,
		EstateAt:         2.0 / 12.0,
	}
}

func (*Gardener) Name() string { return "Gardener" }

func (gd *Gardener) ActionPhase(ctx context.Context, g *game.Game, p *game.Player) error {
	for p.Actions > 0 {
		cantrips := p.Hand.Filter(func(c *game.CardInstance) bool {
			return c.Type.Is(game.CapAction) && c.Type.Actions > 0
		})
		if len(cantrips) == 0 {
			break
		}
		if err := p.Play(ctx, cantrips[0]); err != nil {
			return err
		}
	}

	gardens := g.Supply.HasPile(game.Gardens)
	for p.Actions > 0 {
		if p.Hand.CountType(game.Workshop) > 0 {
			target := gd.workshopTarget(g, p, gardens)
			if target == nil {
				return nil
			}
			if err := p.PlayType(ctx, game.Workshop, target); err != nil {
				return err
			}
			continue
		}
		actions := p.Hand.Filter(func(c *game.CardInstance) bool { return c.Type.Is(game.CapAction) })
		if len(actions) == 0 {
			return nil
		}
		sort.SliceStable(actions, func(i, j int) bool {
			return compareKeys(
				key{actions[i].Type.Buys, actions[i].Type.Draw, actions[i].Type.Money},
				key{actions[j].Type.Buys, actions[j].Type.Draw, actions[j].Type.Money},
			) > 0
		})
		if err := p.Play(ctx, actions[0]); err != nil {
			return err
		}
	}
	return nil
}

func (gd *Gardener) workshopTarget(g *game.Game, p *game.Player, gardens bool) *game.CardType {
	has := func(t *game.CardType) bool { return g.Supply.Count(t) > 0 }
	switch {
	case has(game.Gardens):
		return game.Gardens
	case has(game.Workshop) && deckRatio(p, game.Workshop) > 8:
		return game.Workshop
	case gardens && has(game.Woodcutter) && deckRatio(p, game.Woodcutter) > 8:
		return game.Woodcutter
	case gardens && has(game.Village) && deckRatio(p, game.Village) > 10:
		return game.Village
	case remaining(g, game.Province) <= gd.WorkshopEstateAt && has(game.Estate):
		return game.Estate
	case has(game.Silver):
		return game.Silver
	}
	return nil
}

func (gd *Gardener) BuyPhase(ctx context.Context, g *game.Game, p *game.Player) error {
	if err := p.PlayAllTreasures(ctx); err != nil {
		return err
	}
	gardens := g.Supply.HasPile(game.Gardens)
	for p.Buys > 0 {
		t := gd.pick(g, p, gardens)
		if t == nil {
			return nil
		}
		if err := p.Buy(t); err != nil {
			return err
		}
	}
	return nil
}

func (gd *Gardener) pick(g *game.Game, p *game.Player, gardens bool) *game.CardType {
	left := remaining(g, game.Province)
	switch {
	case canBuy(g, p, game.Province):
		return game.Province
	case canBuy(g, p, game.Gardens) && left <= gd.GardensAt:
		return game.Gardens
	case canBuy(g, p, game.Duchy) && left <= gd.DuchyAt:
		return game.Duchy
	case canBuy(g, p, game.Estate) && left <= gd.EstateAt:
		return game.Estate
	case canBuy(g, p, game.Market):
		return game.Market
	case gardens && canBuy(g, p, game.Workshop) && deckRatio(p, game.Workshop) > 7:
		return game.Workshop
	case gardens && canBuy(g, p, game.Woodcutter) && deckRatio(p, game.Woodcutter) > 7:
		return game.Woodcutter
	case gardens && canBuy(g, p, game.Village) && deckRatio(p, game.Village) > 10:
		return game.Village
	case canBuy(g, p, game.Gold):
		return game.Gold
	case canBuy(g, p, game.Silver):
		return game.Silver
	case gardens && canBuy(g, p, game.Copper):
		return game.Copper
	}
	return nil
}

func (gd *Gardener) ChooseCards(ctx context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]*game.CardInstance, error) {
	switch ch.Kind {
	case game.ChoiceMilitiaDiscard:
		lo, hi := ch.Bounds(len(ch.Cards))
		discard := sortedBy(ch.Cards, func(t *game.CardType) key {
			return key{btoi(t.Is(game.CapAction)), t.Buys, btoi(t.Is(game.CapTreasure)), t.Money}
		})
		return fit(nil, discard, lo, hi), nil
	case game.ChoiceMasqueradePass:
		lo, hi := ch.Bounds(len(ch.Cards))
		picks := filterCards(ch.Cards, func(t *game.CardType) bool { return t.Is(game.CapCurse) })
		weakest := sortedBy(ch.Cards, func(t *game.CardType) key {
			return key{t.Score, t.Buys, t.Actions, t.Money, btoi(t.Is(game.CapAttack))}
		})
		return fit(picks, weakest, lo, hi), nil
	}
	return gd.Basic.ChooseCards(ctx, g, p, ch)
}

func (gd *Gardener) ChooseTypes(ctx context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]*game.CardType, error) {
	if ch.Kind == game.ChoiceSaboteurGain {
		if t := firstOf(ch.Types, game.Province, game.Gardens, game.Gold, game.Silver, game.Duchy); t != nil {
			return []*game.CardType{t}, nil
		}
	}
	return gd.Basic.ChooseTypes(ctx, g, p, ch)
}

func (gd *Gardener) ChooseOptions(ctx context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]int, error) {
	if ch.Kind == game.ChoicePawnBonus {
		return []int{2, 1}, nil // buy, action
	}
	return gd.Basic.ChooseOptions(ctx, g, p, ch)
}

// --- Registry ---

var builders = map[string]func() game.Strategy{
	"BigMoney":  func() game.Strategy { return NewBigMoney() },
	"Discarder": func() game.Strategy { return NewDiscarder() },
	"Attacker":  func() game.Strategy { return NewAttacker() },
	"Gardener":  func() game.Strategy { return NewGardener() },
}

// RandomName picks one of the concrete bots.
const RandomName = "Random"

// Names returns every name New accepts, sorted.
func Names() []string {
	names := make([]string, 0, len(builders)+1)
	for n := range builders {
		names = append(names, n)
	}
	names = append(names, RandomName)
	sort.Strings(names)
	return names
}

// New builds the bot called name (case-insensitive). Random picks one of the
// others with a generator seeded by seed.
func New(name string, seed int64) (game.Strategy, error) {
	if strings.EqualFold(name, RandomName) {
		concrete := make([]string, 0, len(builders))
		for n := range builders {
			concrete = append(concrete, n)
		}
		sort.Strings(concrete)
		name = concrete[rand.New(rand.NewSource(seed)).Intn(len(concrete))]
	}
	for n, build := range builders {
		if strings.EqualFold(n, name) {
			return build(), nil
		}
	}
	return nil, fmt.Errorf("unknown strategy %q (have %s)", name, strings.Join(Names(), ", "))
}
