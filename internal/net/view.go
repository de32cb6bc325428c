package net

import (
	"github.com/peterkuimelis/deckbuilder/internal/game"
	"github.com/peterkuimelis/deckbuilder/internal/log"
)

// BuildStateView creates a StateView from the perspective of p.
func BuildStateView(g *game.Game, p *game.Player) *StateView {
	active := g.Active()
	sv := &StateView{
		Turn:         g.TurnNumber(),
		Phase:        g.Phase.String(),
		Active:       active.Seat,
		IsYourTurn:   active == p,
		Supply:       SupplyViews(g, g.Supply.Types()),
		TrashCount:   g.Trash.Len(),
		CostModifier: g.CostModifier(),
	}

	sv.You = PlayerView{
		Name:         p.Name,
		Seat:         p.Seat,
		Hand:         cardNames(p.Hand.Cards()),
		Played:       cardNames(p.Played.Cards()),
		DeckCount:    p.Deck.Len(),
		DiscardCount: p.Discard.Len(),
		Actions:      p.Actions,
		Buys:         p.Buys,
		Money:        p.Money,
	}

	for _, o := range g.Opponents(p) {
		sv.Opponents = append(sv.Opponents, OpponentView{
			Name:         o.Name,
			Seat:         o.Seat,
			HandCount:    o.Hand.Len(),
			Played:       cardNames(o.Played.Cards()),
			DeckCount:    o.Deck.Len(),
			DiscardCount: o.Discard.Len(),
		})
	}
	return sv
}

func cardNames(cards []*game.CardInstance) []string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name()
	}
	return names
}

// CardViews numbers cards in order.
func CardViews(g *game.Game, cards []*game.CardInstance) []CardView {
	views := make([]CardView, len(cards))
	for i, c := range cards {
		views[i] = CardView{
			Index: i,
			Name:  c.Name(),
			Cost:  g.CurrentCost(c.Type),
			Types: c.Type.Caps.String(),
		}
	}
	return views
}

// SupplyViews numbers supply piles in order.
func SupplyViews(g *game.Game, types []*game.CardType) []SupplyView {
	views := make([]SupplyView, len(types))
	for i, t := range types {
		views[i] = SupplyView{
			Index: i,
			Name:  t.Name,
			Cost:  g.CurrentCost(t),
			Count: g.Supply.Count(t),
		}
	}
	return views
}

// ScoreViews converts the final ranking.
func ScoreViews(table game.ScoreTable) []ScoreView {
	views := make([]ScoreView, len(table))
	for i, e := range table {
		views[i] = ScoreView{
			Rank:   e.Rank,
			Seat:   e.Seat,
			Name:   e.Name,
			Score:  e.Score,
			Turns:  e.Turns,
			Winner: e.Winner,
		}
	}
	return views
}

// NewEventView converts a game event.
func NewEventView(event log.GameEvent) *EventView {
	return &EventView{
		Seq:     event.Seq,
		Turn:    event.Turn,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	}
}

// Playable returns the hand cards p may play in the current phase.
func Playable(g *game.Game, p *game.Player) []*game.CardInstance {
	switch g.Phase {
	case game.PhaseAction:
		if p.Actions == 0 {
			return nil
		}
		return p.Hand.Filter(func(c *game.CardInstance) bool { return c.Type.Is(game.CapAction) })
	case game.PhaseBuy:
		return p.Hand.Filter(func(c *game.CardInstance) bool { return c.Type.Is(game.CapTreasure) })
	}
	return nil
}

// Buyable returns the supply types p can afford with the money already
// played.
func Buyable(g *game.Game, p *game.Player) []*game.CardType {
	if g.Phase != game.PhaseBuy || p.Buys == 0 {
		return nil
	}
	var out []*game.CardType
	for _, t := range g.Supply.Available() {
		if g.CurrentCost(t) <= p.Money {
			out = append(out, t)
		}
	}
	return out
}
