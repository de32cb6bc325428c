package game

import (
	"context"
	"fmt"
)

// The ask* helpers forward a decision to p's strategy and re-validate the
// answer. A malformed answer is a RulesViolation; other errors pass through.

func (g *Game) askCards(ctx context.Context, p *Player, ch Choice) ([]*CardInstance, error) {
	lo, hi := ch.Bounds(len(ch.Cards))
	if hi == 0 {
		return nil, nil
	}
	picked, err := p.Strategy.ChooseCards(ctx, g, p, ch)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", p.Name, ch.Kind, err)
	}
	if len(picked) < lo || len(picked) > hi {
		return nil, violationf("%s: picked %d card(s), want %d..%d", ch.Kind, len(picked), lo, hi)
	}
	seen := make(map[*CardInstance]bool, len(picked))
	for _, c := range picked {
		if seen[c] {
			return nil, violationf("%s: %s picked twice", ch.Kind, c)
		}
		seen[c] = true
		if !containsCard(ch.Cards, c) {
			return nil, violationf("%s: %s is not a candidate", ch.Kind, c)
		}
	}
	return picked, nil
}

func (g *Game) askTypes(ctx context.Context, p *Player, ch Choice) ([]*CardType, error) {
	lo, hi := ch.Bounds(len(ch.Types))
	if hi == 0 {
		return nil, nil
	}
	picked, err := p.Strategy.ChooseTypes(ctx, g, p, ch)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", p.Name, ch.Kind, err)
	}
	if len(picked) < lo || len(picked) > hi {
		return nil, violationf("%s: picked %d card type(s), want %d..%d", ch.Kind, len(picked), lo, hi)
	}
	seen := make(map[*CardType]bool, len(picked))
	for _, t := range picked {
		if seen[t] {
			return nil, violationf("%s: %s picked twice", ch.Kind, t)
		}
		seen[t] = true
		if !containsType(ch.Types, t) {
			return nil, violationf("%s: %s is not a candidate", ch.Kind, t)
		}
	}
	return picked, nil
}

// askType asks for exactly one type, or none when there are no candidates or
// the choice is optional.
func (g *Game) askType(ctx context.Context, p *Player, ch Choice) (*CardType, error) {
	if ch.Max == 0 || ch.Max == Unbounded {
		ch.Max = 1
	}
	picked, err := g.askTypes(ctx, p, ch)
	if err != nil || len(picked) == 0 {
		return nil, err
	}
	return picked[0], nil
}

// askCard asks for exactly one card (or at most one if ch.Min is 0).
func (g *Game) askCard(ctx context.Context, p *Player, ch Choice) (*CardInstance, error) {
	if ch.Max == 0 || ch.Max == Unbounded {
		ch.Max = 1
	}
	picked, err := g.askCards(ctx, p, ch)
	if err != nil || len(picked) == 0 {
		return nil, err
	}
	return picked[0], nil
}

func (g *Game) askOptions(ctx context.Context, p *Player, ch Choice) ([]int, error) {
	lo, hi := ch.Bounds(len(ch.Options))
	if hi == 0 {
		return nil, nil
	}
	picked, err := p.Strategy.ChooseOptions(ctx, g, p, ch)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", p.Name, ch.Kind, err)
	}
	if len(picked) < lo || len(picked) > hi {
		return nil, violationf("%s: picked %d option(s), want %d..%d", ch.Kind, len(picked), lo, hi)
	}
	seen := make(map[int]bool, len(picked))
	for _, i := range picked {
		if i < 0 || i >= len(ch.Options) {
			return nil, violationf("%s: option %d out of range", ch.Kind, i)
		}
		if seen[i] {
			return nil, violationf("%s: option %q picked twice", ch.Kind, ch.Options[i])
		}
		seen[i] = true
	}
	return picked, nil
}

// askOption asks for exactly one of ch.Options and returns its index.
func (g *Game) askOption(ctx context.Context, p *Player, ch Choice) (int, error) {
	if len(ch.Options) == 0 {
		return 0, fmt.Errorf("%s: no options", ch.Kind)
	}
	ch.Min, ch.Max = 1, 1
	picked, err := g.askOptions(ctx, p, ch)
	if err != nil {
		return 0, err
	}
	return picked[0], nil
}

func (g *Game) askOrder(ctx context.Context, p *Player, ch Choice) ([]*CardInstance, error) {
	if len(ch.Cards) <= 1 {
		return ch.Cards, nil
	}
	ch.Min, ch.Max = len(ch.Cards), len(ch.Cards)
	order, err := p.Strategy.ChooseOrder(ctx, g, p, ch)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", p.Name, ch.Kind, err)
	}
	if len(order) != len(ch.Cards) {
		return nil, violationf("%s: order has %d card(s), want %d", ch.Kind, len(order), len(ch.Cards))
	}
	seen := make(map[*CardInstance]bool, len(order))
	for _, c := range order {
		if seen[c] || !containsCard(ch.Cards, c) {
			return nil, violationf("%s: order is not a permutation of the candidates", ch.Kind)
		}
		seen[c] = true
	}
	return order, nil
}

func (g *Game) askYesNo(ctx context.Context, p *Player, ch Choice) (bool, error) {
	ok, err := p.Strategy.ChooseYesNo(ctx, g, p, ch)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", p.Name, ch.Kind, err)
	}
	return ok, nil
}

func containsCard(cards []*CardInstance, c *CardInstance) bool {
	for _, cc := range cards {
		if cc == c {
			return true
		}
	}
	return false
}

func containsType(types []*CardType, t *CardType) bool {
	for _, tt := range types {
		if tt == t {
			return true
		}
	}
	return false
}

// --- Target resolution ---
//
// Cards that name other cards accept them as explicit targets. When a target
// is absent the card asks its player's decider instead.

// handTargets resolves explicit targets to distinct hand instances matching
// keep. With no targets it asks p to choose between lo and hi hand cards.
func (g *Game) handTargets(ctx context.Context, p *Player, targets []*CardType, ch Choice, keep func(*CardInstance) bool) ([]*CardInstance, error) {
	candidates := p.Hand.Filter(keep)
	if len(targets) == 0 {
		ch.Cards = candidates
		return g.askCards(ctx, p, ch)
	}
	lo, hi := ch.Bounds(len(candidates))
	if len(targets) < lo || len(targets) > hi {
		return nil, violationf("%s: %d target(s), want %d..%d", ch.Kind, len(targets), lo, hi)
	}
	return resolveInHand(candidates, targets, ch.Kind)
}

// resolveInHand maps target types to distinct instances among candidates.
func resolveInHand(candidates []*CardInstance, targets []*CardType, kind ChoiceKind) ([]*CardInstance, error) {
	used := make(map[*CardInstance]bool, len(targets))
	out := make([]*CardInstance, 0, len(targets))
	for _, t := range targets {
		var found *CardInstance
		for _, c := range candidates {
			if c.Type == t && !used[c] {
				found = c
				break
			}
		}
		if found == nil {
			return nil, violationf("%s: no eligible %s in hand", kind, t)
		}
		used[found] = true
		out = append(out, found)
	}
	return out, nil
}

// supplyTarget returns target if given, validating it against keep and the
// supply. Otherwise it asks p to pick one of the available supply types that
// satisfy keep. Set ch.Min to 1 to make the gain mandatory.
func (g *Game) supplyTarget(ctx context.Context, p *Player, target *CardType, ch Choice, keep func(*CardType) bool) (*CardType, error) {
	if target != nil {
		if g.Supply.Count(target) == 0 {
			return nil, violationf("%s: no %s left in the supply", ch.Kind, target)
		}
		if !keep(target) {
			return nil, violationf("%s: %s is not allowed here", ch.Kind, target)
		}
		return target, nil
	}
	for _, t := range g.Supply.Available() {
		if keep(t) {
			ch.Types = append(ch.Types, t)
		}
	}
	return g.askType(ctx, p, ch)
}

// headTargets returns at most the first n targets.
func headTargets(targets []*CardType, n int) []*CardType {
	if len(targets) > n {
		return targets[:n]
	}
	return targets
}

// targetAt returns targets[i], or nil when absent.
func targetAt(targets []*CardType, i int) *CardType {
	if i < len(targets) {
		return targets[i]
	}
	return nil
}
