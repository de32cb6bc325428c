// Package strategy holds the built-in bot players.
package strategy

import (
	"cmp"
	"context"
	"slices"

	"github.com/peterkuimelis/deckbuilder/internal/game"
)

// Basic answers every choice point with a simple fixed heuristic. It has no
// action or buy phase of its own; bots embed it and add those.
type Basic struct {
	game.BaseStrategy
}

// --- Card rankings ---

// key is a lexicographic sort key. Lower keys sort first.
type key []int

func compareKeys(a, b key) int {
	for i := range min(len(a), len(b)) {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// keepKey ranks a card by how much its owner wants to keep it in hand.
func keepKey(t *game.CardType) key {
	return key{btoi(t.Is(game.CapAction)), btoi(t.Is(game.CapTreasure)), t.Money}
}

// valueKey ranks a card by how good it is on top of the deck.
func valueKey(t *game.CardType) key {
	return key{t.Score, t.Money, t.Actions}
}

// weakKey ranks a card by how little an opponent gains from receiving it.
func weakKey(t *game.CardType) key {
	return key{t.Score, t.Actions, t.Money, btoi(t.Is(game.CapAttack))}
}

// gainKey ranks a supply type by how much a player wants to gain it.
func gainKey(g *game.Game, t *game.CardType) key {
	return key{btoi(!t.Is(game.CapCurse)), g.CurrentCost(t), btoi(t.Is(game.CapTreasure)), t.Money}
}

func sortedBy(cards []*game.CardInstance, k func(*game.CardType) key) []*game.CardInstance {
	out := slices.Clone(cards)
	slices.SortStableFunc(out, func(a, b *game.CardInstance) int {
		return compareKeys(k(a.Type), k(b.Type))
	})
	return out
}

func bestType(types []*game.CardType, k func(*game.CardType) key) *game.CardType {
	if len(types) == 0 {
		return nil
	}
	return slices.MaxFunc(types, func(a, b *game.CardType) int {
		return compareKeys(k(a), k(b))
	})
}

func isJunk(t *game.CardType) bool {
	return !t.IsAny(game.CapTreasure | game.CapAction)
}

func filterCards(cards []*game.CardInstance, keep func(*game.CardType) bool) []*game.CardInstance {
	var out []*game.CardInstance
	for _, c := range cards {
		if keep(c.Type) {
			out = append(out, c)
		}
	}
	return out
}

// fit pads picks up to lo with the remaining candidates in order and trims
// them down to hi.
func fit(picks, candidates []*game.CardInstance, lo, hi int) []*game.CardInstance {
	for _, c := range candidates {
		if len(picks) >= lo {
			break
		}
		if !slices.Contains(picks, c) {
			picks = append(picks, c)
		}
	}
	if len(picks) > hi {
		picks = picks[:hi]
	}
	return picks
}

// --- Decider ---

func (Basic) ChooseCards(_ context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]*game.CardInstance, error) {
	lo, hi := ch.Bounds(len(ch.Cards))
	junkFirst := sortedBy(ch.Cards, keepKey)
	bestFirst := sortedBy(ch.Cards, valueKey)
	slices.Reverse(bestFirst)

	var picks []*game.CardInstance
	switch ch.Kind {
	case game.ChoiceMilitiaDiscard, game.ChoiceTorturerDiscard, game.ChoiceDiplomatDiscard,
		game.ChoicePoacherDiscard, game.ChoiceBanditTrash:
		return fit(nil, junkFirst, lo, hi), nil
	case game.ChoiceCellarDiscard, game.ChoiceSecretChamberDiscard, game.ChoiceSentryDiscard:
		picks = filterCards(ch.Cards, isJunk)
	case game.ChoiceMillDiscard:
		if junk := filterCards(ch.Cards, isJunk); len(junk) >= 2 {
			picks = junk[:2]
		}
	case game.ChoiceChapelTrash:
		picks = filterCards(ch.Cards, func(t *game.CardType) bool { return t == game.Curse || t == game.Estate })
	case game.ChoiceSentryTrash, game.ChoiceMasqueradeTrash:
		picks = filterCards(ch.Cards, func(t *game.CardType) bool { return t.Is(game.CapCurse) })
	case game.ChoiceMasqueradePass:
		picks = filterCards(ch.Cards, func(t *game.CardType) bool { return t.Is(game.CapCurse) })
		if len(picks) == 0 {
			picks = sortedBy(ch.Cards, weakKey)
		}
	case game.ChoiceMoneylenderTrash:
		picks = filterCards(ch.Cards, func(t *game.CardType) bool { return t == game.Copper })
	case game.ChoiceCourtyardTopDeck, game.ChoiceSecretChamberTopDeck, game.ChoiceArtisanTopDeck,
		game.ChoiceSecretPassageCard:
		return fit(nil, bestFirst, lo, hi), nil
	case game.ChoiceHarbingerTopDeck:
		top := sortedBy(ch.Cards, func(t *game.CardType) key {
			return key{btoi(t.Is(game.CapTreasure)), t.Money, btoi(t.Is(game.CapAction))}
		})
		if n := len(top); n > 0 && (top[n-1].Type.Money > 0 || top[n-1].Type.Is(game.CapAction)) {
			picks = top[n-1:]
		}
	case game.ChoiceThiefTrash:
		richest := sortedBy(ch.Cards, func(t *game.CardType) key { return key{-t.Money} })
		return fit(nil, richest, lo, hi), nil
	case game.ChoiceThiefGain:
		picks = filterCards(ch.Cards, func(t *game.CardType) bool { return t.Money > 1 })
	case game.ChoiceThroneRoomAction, game.ChoiceLurkerGain:
		actions := sortedBy(ch.Cards, func(t *game.CardType) key {
			return key{-g.CurrentCost(t), -t.Actions, -t.Draw, -t.Money}
		})
		return fit(nil, actions, lo, hi), nil
	case game.ChoiceCourtierReveal:
		richest := sortedBy(ch.Cards, func(t *game.CardType) key { return key{-t.Caps.Count(), t.Money} })
		return fit(nil, richest, lo, hi), nil
	}
	return fit(picks, junkFirst, lo, hi), nil
}

func (Basic) ChooseTypes(_ context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]*game.CardType, error) {
	lo, hi := ch.Bounds(len(ch.Types))
	if hi == 0 {
		return nil, nil
	}
	var pick *game.CardType
	switch ch.Kind {
	case game.ChoiceSwindlerGain:
		if slices.Contains(ch.Types, game.Curse) {
			pick = game.Curse
		} else {
			pick = slices.MinFunc(ch.Types, func(a, b *game.CardType) int {
				return compareKeys(weakKey(a), weakKey(b))
			})
		}
	case game.ChoiceSaboteurGain:
		pick = firstOf(ch.Types, game.Province, game.Gold, game.Silver, game.Duchy)
	case game.ChoiceWishingWellGuess:
		pick = mostCommon(p, ch.Types)
	case game.ChoiceLurkerTrash:
		pick = bestType(ch.Types, func(t *game.CardType) key { return key{g.Supply.Picked(t)} })
	default:
		pick = bestType(ch.Types, func(t *game.CardType) key { return gainKey(g, t) })
		if pick.Is(game.CapCurse) && lo == 0 {
			pick = nil
		}
	}
	if pick == nil {
		if lo == 0 {
			return nil, nil
		}
		pick = ch.Types[0]
	}
	return []*game.CardType{pick}, nil
}

func (Basic) ChooseOptions(_ context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]int, error) {
	switch ch.Kind {
	case game.ChoicePawnBonus:
		return []int{3, 1}, nil // money, action
	case game.ChoiceCourtierBonus:
		order := []int{3, 2, 0, 1} // gold, money, action, buy
		return order[:min(ch.Min, len(order))], nil
	case game.ChoiceStewardMode:
		junk := p.Hand.Filter(func(c *game.CardInstance) bool {
			return c.Type.Is(game.CapCurse) || c.Type == game.Estate
		})
		if len(junk) >= 2 {
			return []int{2}, nil
		}
		return []int{0}, nil
	case game.ChoiceMinionMode:
		if p.AvailableMoney()+2 < 5 && p.Hand.Len() <= 3 {
			return []int{1}, nil
		}
		return []int{0}, nil
	case game.ChoiceNoblesMode:
		if p.Actions == 0 && p.Hand.CountCaps(game.CapAction) > 0 {
			return []int{1}, nil
		}
		return []int{0}, nil
	case game.ChoiceLurkerMode:
		gainable := sortedBy(g.Trash.Filter(func(c *game.CardInstance) bool { return c.Type.Is(game.CapAction) }),
			func(t *game.CardType) key { return key{t.Cost, t.Money, t.Score, t.Actions} })
		if n := len(gainable); n > 0 {
			top := gainable[n-1].Type
			if top.Money > 0 || top.Actions > 0 || top.Score > 0 || !supplyHasAction(g) {
				return []int{1}, nil
			}
		}
		return []int{0}, nil
	case game.ChoiceSecretPassagePlace:
		return []int{len(ch.Options) - 1}, nil
	}
	n := max(ch.Min, 1)
	out := make([]int, 0, n)
	for i := 0; i < n && i < len(ch.Options); i++ {
		out = append(out, i)
	}
	return out, nil
}

func (Basic) ChooseOrder(_ context.Context, _ *game.Game, _ *game.Player, ch game.Choice) ([]*game.CardInstance, error) {
	return slices.Clone(ch.Cards), nil
}

func (Basic) ChooseYesNo(_ context.Context, _ *game.Game, p *game.Player, ch game.Choice) (bool, error) {
	switch ch.Kind {
	case game.ChoiceMoatReveal, game.ChoiceSecretChamberReveal, game.ChoiceLibrarySetAside, game.ChoiceBaronDiscard:
		return true, nil
	case game.ChoiceSpyDiscard:
		if len(ch.Cards) == 0 {
			return false, nil
		}
		// Discard the victim's good cards and our own junk.
		return (ch.Other == p) == isJunk(ch.Cards[0].Type), nil
	case game.ChoiceVassalPlay:
		return len(ch.Cards) > 0 && ch.Cards[0].Type.Is(game.CapAction), nil
	}
	return false, nil
}

// --- helpers shared by the bots ---

func firstOf(types []*game.CardType, prefs ...*game.CardType) *game.CardType {
	for _, t := range prefs {
		if slices.Contains(types, t) {
			return t
		}
	}
	return nil
}

// mostCommon names the candidate p owns most of in its deck, or its discard
// pile when the deck is empty.
func mostCommon(p *game.Player, types []*game.CardType) *game.CardType {
	src := p.Deck
	if src.Len() == 0 {
		src = p.Discard
	}
	var best *game.CardType
	bestN := 0
	for _, t := range types {
		if n := src.CountType(t); n > bestN {
			best, bestN = t, n
		}
	}
	return best
}

func supplyHasAction(g *game.Game) bool {
	for _, t := range g.Supply.Available() {
		if t.Is(game.CapAction) {
			return true
		}
	}
	return false
}

// canBuy reports whether p could afford t right now if the supply has one.
func canBuy(g *game.Game, p *game.Player, t *game.CardType) bool {
	return g.Supply.Count(t) > 0 && p.AvailableMoney() >= g.CurrentCost(t)
}

// remaining is the fraction of t's pile still in the supply.
func remaining(g *game.Game, t *game.CardType) float64 {
	rest, picked := g.Supply.Count(t), g.Supply.Picked(t)
	return float64(rest) / float64(max(1, rest+picked))
}

// deckRatio is the number of cards p owns per copy of the given types.
func deckRatio(p *game.Player, types ...*game.CardType) float64 {
	total := 0
	for _, t := range types {
		total += p.CountType(t)
	}
	return float64(p.Count()) / float64(max(1, total))
}
