package game

import (
	"context"
	"fmt"
)

// --- Base ---

var Gardens = &CardType{
	Name:        "Gardens",
	Set:         SetBase,
	Description: "Worth 1 VP per 10 cards you have (round down).",
	Cost:        4,
	Caps:        CapVictory,
	Bonus: func(g *Game, p *Player) int {
		return p.Count() / 10
	},
}

var Village = &CardType{
	Name:        "Village",
	Set:         SetBase,
	Description: "+1 Card, +2 Actions.",
	Cost:        3,
	Caps:        CapAction,
	Actions:     2,
	Draw:        1,
}

var Smithy = &CardType{
	Name:        "Smithy",
	Set:         SetBase,
	Description: "+3 Cards.",
	Cost:        4,
	Caps:        CapAction,
	Draw:        3,
}

var Market = &CardType{
	Name:        "Market",
	Set:         SetBase,
	Description: "+1 Card, +1 Action, +1 Buy, +1 money.",
	Cost:        5,
	Caps:        CapAction,
	Money:       1,
	Actions:     1,
	Buys:        1,
	Draw:        1,
}

var Festival = &CardType{
	Name:        "Festival",
	Set:         SetBase,
	Description: "+2 Actions, +1 Buy, +2 money.",
	Cost:        5,
	Caps:        CapAction,
	Money:       2,
	Actions:     2,
	Buys:        1,
}

var Laboratory = &CardType{
	Name:        "Laboratory",
	Set:         SetBase,
	Description: "+2 Cards, +1 Action.",
	Cost:        5,
	Caps:        CapAction,
	Actions:     1,
	Draw:        2,
}

var Witch = &CardType{
	Name:        "Witch",
	Set:         SetBase,
	Description: "+2 Cards. Each other player gains a Curse.",
	Cost:        5,
	Caps:        CapAction | CapAttack,
	Draw:        2,
	Affect: func(ctx context.Context, g *Game, attacker, defender *Player, c *CardInstance) error {
		g.GainIfAvailable(defender, Curse, nil)
		return nil
	},
}

var Moneylender = &CardType{
	Name:        "Moneylender",
	Set:         SetBase,
	Description: "You may trash a Copper from your hand for +3 money.",
	Cost:        4,
	Caps:        CapAction,
	Check: func(g *Game, p *Player, targets []*CardType) error {
		if len(targets) > 1 {
			return violationf("Moneylender trashes at most one Copper")
		}
		return requireInHand(p, targets, ofType(Copper))
	},
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		picked, err := g.handTargets(ctx, p, targets, Choice{
			Kind:   ChoiceMoneylenderTrash,
			Source: c.Type,
			Prompt: "Trash a Copper for +3 money?",
			Max:    1,
		}, ofType(Copper))
		if err != nil || len(picked) == 0 {
			return err
		}
		if err := g.TrashFromHand(p, picked[0]); err != nil {
			return err
		}
		p.Money += 3
		return nil
	},
}

var Militia = &CardType{
	Name:        "Militia",
	Set:         SetBase,
	Description: "+2 money. Each other player discards down to 3 cards in hand.",
	Cost:        4,
	Caps:        CapAction | CapAttack,
	Money:       2,
	Affect: func(ctx context.Context, g *Game, attacker, defender *Player, c *CardInstance) error {
		n := defender.Hand.Len() - 3
		if n <= 0 {
			return nil
		}
		picked, err := g.askCards(ctx, defender, Choice{
			Kind:   ChoiceMilitiaDiscard,
			Source: c.Type,
			Prompt: fmt.Sprintf("Discard %d card(s)", n),
			Cards:  defender.Hand.Cards(),
			Min:    n,
			Max:    n,
			Other:  attacker,
		})
		if err != nil {
			return err
		}
		return discardFromHand(defender, picked)
	},
}

var CouncilRoom = &CardType{
	Name:        "Council Room",
	Set:         SetBase,
	Description: "+4 Cards, +1 Buy. Each other player draws a card.",
	Cost:        5,
	Caps:        CapAction,
	Buys:        1,
	Draw:        4,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		for _, o := range g.Opponents(p) {
			o.Draw(1)
		}
		return nil
	},
}

var Library = &CardType{
	Name:        "Library",
	Set:         SetBase,
	Description: "Draw until you have 7 cards in hand, skipping any Action cards you choose to; set those aside, discarding them afterwards.",
	Cost:        5,
	Caps:        CapAction,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		var aside []*CardInstance
		defer func() {
			for _, a := range aside {
				p.Discard.Put(a)
				p.logMove(a, p.Discard)
			}
		}()
		for p.Hand.Len() < 7 {
			drawn := p.Draw(1)
			if len(drawn) == 0 {
				break
			}
			d := drawn[0]
			if !isAction(d) {
				continue
			}
			skip, err := g.askYesNo(ctx, p, Choice{
				Kind:   ChoiceLibrarySetAside,
				Source: c.Type,
				Prompt: fmt.Sprintf("Set aside %s?", d.Name()),
				Cards:  drawn,
			})
			if err != nil {
				return err
			}
			if skip {
				if _, err := p.Hand.PickCard(d); err != nil {
					return err
				}
				aside = append(aside, d)
			}
		}
		return nil
	},
}

var mineExchange = exchange{
	trashKind: ChoiceMineTrash,
	gainKind:  ChoiceMineGain,
	trashOK:   isTreasure,
	gainOK: func(g *Game, trashed, gained *CardType) bool {
		return gained.Is(CapTreasure) && g.CurrentCost(gained) <= g.CurrentCost(trashed)+3
	},
}

var Mine = &CardType{
	Name:        "Mine",
	Set:         SetBase,
	Description: "Trash a Treasure from your hand. Gain a Treasure to your hand costing up to 3 more than it.",
	Cost:        5,
	Caps:        CapAction,
	Check:       mineExchange.check,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		_, gain, err := mineExchange.resolve(ctx, g, p, c, targets)
		if err != nil || gain == nil {
			return err
		}
		_, err = g.Gain(p, gain, p.Hand)
		return err
	},
}

var Chapel = &CardType{
	Name:        "Chapel",
	Set:         SetBase,
	Description: "Trash up to 4 cards from your hand.",
	Cost:        2,
	Caps:        CapAction,
	Check: func(g *Game, p *Player, targets []*CardType) error {
		if len(targets) > 4 {
			return violationf("Chapel trashes at most 4 cards")
		}
		return requireInHand(p, targets, anyCard)
	},
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		picked, err := g.handTargets(ctx, p, targets, Choice{
			Kind:   ChoiceChapelTrash,
			Source: c.Type,
			Prompt: "Trash up to 4 cards",
			Max:    4,
		}, anyCard)
		if err != nil {
			return err
		}
		for _, t := range picked {
			if err := g.TrashFromHand(p, t); err != nil {
				return err
			}
		}
		return nil
	},
}

var Cellar = &CardType{
	Name:        "Cellar",
	Set:         SetBase,
	Description: "+1 Action. Discard any number of cards, then draw that many.",
	Cost:        2,
	Caps:        CapAction,
	Actions:     1,
	Check: func(g *Game, p *Player, targets []*CardType) error {
		return requireInHand(p, targets, anyCard)
	},
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		picked, err := g.handTargets(ctx, p, targets, Choice{
			Kind:   ChoiceCellarDiscard,
			Source: c.Type,
			Prompt: "Discard any number of cards to draw as many",
			Max:    Unbounded,
		}, anyCard)
		if err != nil {
			return err
		}
		if err := discardFromHand(p, picked); err != nil {
			return err
		}
		p.Draw(len(picked))
		return nil
	},
}

var Bureaucrat = &CardType{
	Name:        "Bureaucrat",
	Set:         SetBase,
	Description: "Gain a Silver onto your deck. Each other player reveals a Victory card from their hand and puts it onto their deck (or reveals a hand with no Victory cards).",
	Cost:        4,
	Caps:        CapAction | CapAttack,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		g.GainIfAvailable(p, Silver, p.Deck)
		return g.ResolveAttack(ctx, p, c, bureaucratAttack)
	},
}

func bureaucratAttack(ctx context.Context, g *Game, attacker, defender *Player, c *CardInstance) error {
	victory := defender.Hand.Filter(isVictory)
	if len(victory) == 0 {
		g.revealHand(defender)
		return nil
	}
	pick := victory[0]
	if distinctTypes(victory) > 1 {
		var err error
		pick, err = g.askCard(ctx, defender, Choice{
			Kind:   ChoiceBureaucratTopDeck,
			Source: c.Type,
			Prompt: "Put a Victory card onto your deck",
			Cards:  victory,
			Min:    1,
			Max:    1,
			Other:  attacker,
		})
		if err != nil {
			return err
		}
	}
	g.revealCard(defender, pick)
	return defender.Drop(pick, defender.Deck)
}

var Workshop = &CardType{
	Name:        "Workshop",
	Set:         SetBase,
	Description: "Gain a card costing up to 4.",
	Cost:        3,
	Caps:        CapAction,
	Check:       checkGainUpTo(4),
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		t, err := gainUpTo(ctx, g, p, c, targetAt(targets, 0), ChoiceWorkshopGain, 4)
		if err != nil || t == nil {
			return err
		}
		_, err = g.Gain(p, t, nil)
		return err
	},
}

var Moat = &CardType{
	Name:        "Moat",
	Set:         SetBase,
	Description: "+2 Cards. When another player plays an Attack card, you may reveal this from your hand to be unaffected by it.",
	Cost:        2,
	Caps:        CapAction | CapReaction,
	Draw:        2,
	React: func(ctx context.Context, g *Game, defender *Player, reaction, attack *CardInstance) (bool, error) {
		return g.askYesNo(ctx, defender, Choice{
			Kind:   ChoiceMoatReveal,
			Source: reaction.Type,
			Prompt: fmt.Sprintf("Reveal Moat to block %s?", attack.Name()),
			Other:  g.Active(),
		})
	},
}

var remodelExchange = exchange{
	trashKind: ChoiceRemodelTrash,
	gainKind:  ChoiceRemodelGain,
	trashOK:   anyCard,
	gainOK: func(g *Game, trashed, gained *CardType) bool {
		return g.CurrentCost(gained) <= g.CurrentCost(trashed)+2
	},
}

var Remodel = &CardType{
	Name:        "Remodel",
	Set:         SetBase,
	Description: "Trash a card from your hand. Gain a card costing up to 2 more than it.",
	Cost:        4,
	Caps:        CapAction,
	Check:       remodelExchange.check,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		_, gain, err := remodelExchange.resolve(ctx, g, p, c, targets)
		if err != nil || gain == nil {
			return err
		}
		_, err = g.Gain(p, gain, nil)
		return err
	},
}

// Throne Room targets are the Action to play twice followed by the targets
// of its first play. The second play asks for its own choices.
var ThroneRoom = &CardType{
	Name:        "Throne Room",
	Set:         SetBase,
	Description: "You may play an Action card from your hand twice.",
	Cost:        4,
	Caps:        CapAction,
	Check: func(g *Game, p *Player, targets []*CardType) error {
		return requireInHand(p, targets[:1], isAction)
	},
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		picked, err := g.handTargets(ctx, p, headTargets(targets, 1), Choice{
			Kind:   ChoiceThroneRoomAction,
			Source: c.Type,
			Prompt: "Choose an Action to play twice",
			Min:    1,
			Max:    1,
		}, isAction)
		if err != nil || len(picked) == 0 {
			return err
		}
		card := picked[0]
		if _, err := p.Hand.PickCard(card); err != nil {
			return err
		}
		p.Actions += 2
		first := append([]*CardType(nil), targets[min(1, len(targets)):]...)
		for _, tt := range [][]*CardType{first, nil} {
			if err := g.playAgain(ctx, p, card, tt); err != nil {
				if card.Zone() == nil {
					p.Hand.Put(card)
				}
				return err
			}
		}
		if card.Zone() == nil {
			p.Played.Put(card)
		}
		return nil
	},
}

// --- Base, first edition ---

var Woodcutter = &CardType{
	Name:        "Woodcutter",
	Set:         SetBase1E,
	Description: "+1 Buy, +2 money.",
	Cost:        3,
	Caps:        CapAction,
	Money:       2,
	Buys:        1,
}

var Feast = &CardType{
	Name:        "Feast",
	Set:         SetBase1E,
	Description: "Trash this card. Gain a card costing up to 5.",
	Cost:        4,
	Caps:        CapAction,
	Check:       checkGainUpTo(5),
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		t, err := gainUpTo(ctx, g, p, c, targetAt(targets, 0), ChoiceFeastGain, 5)
		if err != nil {
			return err
		}
		g.trashSelf(p, c)
		if t == nil {
			return nil
		}
		_, err = g.Gain(p, t, nil)
		return err
	},
}

var Chancellor = &CardType{
	Name:        "Chancellor",
	Set:         SetBase1E,
	Description: "+2 money. You may immediately put your deck into your discard pile.",
	Cost:        3,
	Caps:        CapAction,
	Money:       2,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		if p.Deck.Len() == 0 {
			return nil
		}
		ok, err := g.askYesNo(ctx, p, Choice{
			Kind:   ChoiceChancellorDiscard,
			Source: c.Type,
			Prompt: "Put your deck into your discard pile?",
		})
		if err != nil || !ok {
			return err
		}
		p.Deck.MixInto(p.Discard)
		return nil
	},
}

var Adventurer = &CardType{
	Name:        "Adventurer",
	Set:         SetBase1E,
	Description: "Reveal cards from your deck until you reveal 2 Treasures. Put those into your hand and discard the other revealed cards.",
	Cost:        6,
	Caps:        CapAction,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		var others []*CardInstance
		for found := 0; found < 2; {
			revealed := p.reveal(1)
			if len(revealed) == 0 {
				break
			}
			if isTreasure(revealed[0]) {
				found++
			} else {
				others = append(others, revealed[0])
			}
		}
		return discardFromHand(p, others)
	},
}

var Spy = &CardType{
	Name:        "Spy",
	Set:         SetBase1E,
	Description: "+1 Card, +1 Action. Each player (including you) reveals the top card of their deck and either discards it or puts it back, your choice.",
	Cost:        4,
	Caps:        CapAction | CapAttack,
	Actions:     1,
	Draw:        1,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		if err := spyOn(ctx, g, p, p, c); err != nil {
			return err
		}
		return g.ResolveAttack(ctx, p, c, spyOn)
	},
}

func spyOn(ctx context.Context, g *Game, attacker, target *Player, c *CardInstance) error {
	revealed := target.reveal(1)
	if len(revealed) == 0 {
		return nil
	}
	card := revealed[0]
	discard, err := g.askYesNo(ctx, attacker, Choice{
		Kind:   ChoiceSpyDiscard,
		Source: c.Type,
		Prompt: fmt.Sprintf("Discard %s's %s?", target.Name, card.Name()),
		Cards:  revealed,
		Other:  target,
	})
	if err != nil {
		undoReveal(target, revealed)
		return err
	}
	if discard {
		return target.Drop(card, nil)
	}
	return target.Drop(card, target.Deck)
}

var Thief = &CardType{
	Name:        "Thief",
	Set:         SetBase1E,
	Description: "Each other player reveals the top 2 cards of their deck. If they revealed any Treasures, they trash one you choose. You may gain any of the trashed Treasures. They discard the other revealed cards.",
	Cost:        4,
	Caps:        CapAction | CapAttack,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		var stolen []*CardInstance
		err := g.ResolveAttack(ctx, p, c, func(ctx context.Context, g *Game, attacker, defender *Player, c *CardInstance) error {
			revealed := defender.reveal(2)
			treasures := filterCards(revealed, isTreasure)
			if len(treasures) > 0 {
				pick, err := g.askCard(ctx, attacker, Choice{
					Kind:   ChoiceThiefTrash,
					Source: c.Type,
					Prompt: fmt.Sprintf("Trash one of %s's Treasures", defender.Name),
					Cards:  treasures,
					Min:    1,
					Max:    1,
					Other:  defender,
				})
				if err != nil {
					undoReveal(defender, revealed)
					return err
				}
				if err := g.TrashFromHand(defender, pick); err != nil {
					return err
				}
				stolen = append(stolen, pick)
			}
			return discardFromHand(defender, filterCards(revealed, func(r *CardInstance) bool { return r.In(defender.Hand) }))
		})
		if err != nil || len(stolen) == 0 {
			return err
		}
		keep, err := g.askCards(ctx, p, Choice{
			Kind:   ChoiceThiefGain,
			Source: c.Type,
			Prompt: "Gain any of the trashed Treasures",
			Cards:  stolen,
			Max:    Unbounded,
		})
		if err != nil {
			return err
		}
		for _, k := range keep {
			if err := g.gainFromTrash(p, k, nil); err != nil {
				return err
			}
		}
		return nil
	},
}

// --- Base, second edition ---

var Vassal = &CardType{
	Name:        "Vassal",
	Set:         SetBase2E,
	Description: "+2 money. Discard the top card of your deck. If it's an Action card, you may play it.",
	Cost:        3,
	Caps:        CapAction,
	Money:       2,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		top := p.takeTop(1)
		if len(top) == 0 {
			return nil
		}
		card := top[0]
		p.Discard.Put(card)
		p.logMove(card, p.Discard)
		if !isAction(card) {
			return nil
		}
		play, err := g.askYesNo(ctx, p, Choice{
			Kind:   ChoiceVassalPlay,
			Source: c.Type,
			Prompt: fmt.Sprintf("Play %s?", card.Name()),
			Cards:  top,
		})
		if err != nil || !play {
			return err
		}
		if err := g.move(p, card, p.Discard, p.Played); err != nil {
			return err
		}
		p.Actions++
		if err := g.playAgain(ctx, p, card, nil); err != nil {
			if card.In(p.Played) {
				_ = g.move(p, card, p.Played, p.Discard)
			}
			return err
		}
		return nil
	},
}

var Merchant = &CardType{
	Name:        "Merchant",
	Set:         SetBase2E,
	Description: "+1 Card, +1 Action. The first time you play a Silver this turn, +1 money.",
	Cost:        3,
	Caps:        CapAction,
	Actions:     1,
	Draw:        1,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		p.silverBonus++
		return nil
	},
}

var Sentry = &CardType{
	Name:        "Sentry",
	Set:         SetBase2E,
	Description: "+1 Card, +1 Action. Look at the top 2 cards of your deck. Trash and/or discard any number of them. Put the rest back on top in any order.",
	Cost:        5,
	Caps:        CapAction,
	Actions:     1,
	Draw:        1,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		revealed := p.reveal(2)
		if len(revealed) == 0 {
			return nil
		}
		trash, err := g.askCards(ctx, p, Choice{
			Kind:   ChoiceSentryTrash,
			Source: c.Type,
			Prompt: "Trash any of the revealed cards",
			Cards:  revealed,
			Max:    Unbounded,
		})
		if err != nil {
			undoReveal(p, revealed)
			return err
		}
		for _, t := range trash {
			if err := g.TrashFromHand(p, t); err != nil {
				return err
			}
		}
		rest := without(revealed, trash)
		discard, err := g.askCards(ctx, p, Choice{
			Kind:   ChoiceSentryDiscard,
			Source: c.Type,
			Prompt: "Discard any of the remaining cards",
			Cards:  rest,
			Max:    Unbounded,
		})
		if err != nil {
			undoReveal(p, rest)
			return err
		}
		if err := discardFromHand(p, discard); err != nil {
			return err
		}
		rest = without(rest, discard)
		order, err := g.askOrder(ctx, p, Choice{
			Kind:   ChoiceSentryOrder,
			Source: c.Type,
			Prompt: "Order the cards to put back; the last one ends on top",
			Cards:  rest,
		})
		if err != nil {
			undoReveal(p, rest)
			return err
		}
		return topDeckInOrder(p, order)
	},
}

var Poacher = &CardType{
	Name:        "Poacher",
	Set:         SetBase2E,
	Description: "+1 Card, +1 Action, +1 money. Discard a card per empty Supply pile.",
	Cost:        4,
	Caps:        CapAction,
	Money:       1,
	Actions:     1,
	Draw:        1,
	Check: func(g *Game, p *Player, targets []*CardType) error {
		return requireInHand(p, targets, anyCard)
	},
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		n := g.Supply.EmptyPiles(true)
		if n == 0 {
			return nil
		}
		// exactly enough cards: the whole hand goes, nothing to decide
		if n >= p.Hand.Len() {
			return discardFromHand(p, p.Hand.Cards())
		}
		picked, err := g.handTargets(ctx, p, targets, Choice{
			Kind:   ChoicePoacherDiscard,
			Source: c.Type,
			Prompt: fmt.Sprintf("Discard %d card(s)", n),
			Min:    n,
			Max:    n,
		}, anyCard)
		if err != nil {
			return err
		}
		return discardFromHand(p, picked)
	},
}

var Harbinger = &CardType{
	Name:        "Harbinger",
	Set:         SetBase2E,
	Description: "+1 Card, +1 Action. Look through your discard pile. You may put a card from it onto your deck.",
	Cost:        3,
	Caps:        CapAction,
	Actions:     1,
	Draw:        1,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		if p.Discard.Len() == 0 {
			return nil
		}
		pick, err := g.askCard(ctx, p, Choice{
			Kind:   ChoiceHarbingerTopDeck,
			Source: c.Type,
			Prompt: "Put a card from your discard pile onto your deck?",
			Cards:  p.Discard.Cards(),
			Max:    1,
		})
		if err != nil || pick == nil {
			return err
		}
		return g.move(p, pick, p.Discard, p.Deck)
	},
}

var Bandit = &CardType{
	Name:        "Bandit",
	Set:         SetBase2E,
	Description: "Gain a Gold. Each other player reveals the top 2 cards of their deck, trashes a revealed Treasure other than Copper, and discards the rest.",
	Cost:        5,
	Caps:        CapAction | CapAttack,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		g.GainIfAvailable(p, Gold, nil)
		return g.ResolveAttack(ctx, p, c, banditAttack)
	},
}

func banditAttack(ctx context.Context, g *Game, attacker, defender *Player, c *CardInstance) error {
	revealed := defender.reveal(2)
	candidates := filterCards(revealed, func(r *CardInstance) bool {
		return isTreasure(r) && r.Type != Copper
	})
	var trash *CardInstance
	switch {
	case len(candidates) == 0:
	case distinctTypes(candidates) == 1:
		trash = candidates[0]
	default:
		var err error
		trash, err = g.askCard(ctx, defender, Choice{
			Kind:   ChoiceBanditTrash,
			Source: c.Type,
			Prompt: "Trash one of the revealed Treasures",
			Cards:  candidates,
			Min:    1,
			Max:    1,
			Other:  attacker,
		})
		if err != nil {
			undoReveal(defender, revealed)
			return err
		}
	}
	for _, r := range revealed {
		var to *OrderedZone
		if r == trash {
			to = g.Trash
		}
		if err := defender.Drop(r, to); err != nil {
			return err
		}
	}
	return nil
}

var Artisan = &CardType{
	Name:        "Artisan",
	Set:         SetBase2E,
	Description: "Gain a card to your hand costing up to 5. Put a card from your hand onto your deck.",
	Cost:        6,
	Caps:        CapAction,
	Check:       checkGainUpTo(5),
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		t, err := gainUpTo(ctx, g, p, c, targetAt(targets, 0), ChoiceArtisanGain, 5)
		if err != nil {
			return err
		}
		if t != nil {
			if _, err := g.Gain(p, t, p.Hand); err != nil {
				return err
			}
		}
		var put []*CardType
		if len(targets) > 1 {
			put = targets[1:2]
		}
		picked, err := g.handTargets(ctx, p, put, Choice{
			Kind:   ChoiceArtisanTopDeck,
			Source: c.Type,
			Prompt: "Put a card from your hand onto your deck",
			Min:    1,
			Max:    1,
		}, anyCard)
		if err != nil || len(picked) == 0 {
			return err
		}
		return p.Drop(picked[0], p.Deck)
	},
}

// BaseCards returns the Base set cards of both editions in registration order.
func BaseCards() []*CardType {
	return []*CardType{
		Gardens, Village, Smithy, Market, Festival, Laboratory, Witch, Moneylender,
		Militia, CouncilRoom, Library, Mine, Chapel, Cellar, Bureaucrat, Workshop,
		Moat, Remodel, ThroneRoom,
		Woodcutter, Feast, Chancellor, Adventurer, Spy, Thief,
		Vassal, Merchant, Sentry, Poacher, Harbinger, Bandit, Artisan,
	}
}
