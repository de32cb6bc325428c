package game

import (
	"context"
	"fmt"
)

// --- Intrigue ---

var Steward = &CardType{
	Name:        "Steward",
	Set:         SetIntrigue,
	Description: "Choose one: +2 Cards; or +2 money; or trash 2 cards from your hand.",
	Cost:        3,
	Caps:        CapAction,
	Check: func(g *Game, p *Player, targets []*CardType) error {
		if len(targets) > 2 {
			return violationf("Steward trashes exactly 2 cards")
		}
		return requireInHand(p, targets, anyCard)
	},
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		// targets select the trashing mode
		mode := 2
		if len(targets) == 0 {
			var err error
			mode, err = g.askMode(ctx, p, c, ChoiceStewardMode, "+2 Cards", "+2 Money", "Trash 2 cards")
			if err != nil {
				return err
			}
		}
		switch mode {
		case 0:
			p.Draw(2)
		case 1:
			p.Money += 2
		default:
			picked, err := g.handTargets(ctx, p, targets, Choice{
				Kind:   ChoiceStewardTrash,
				Source: c.Type,
				Prompt: "Trash 2 cards",
				Min:    2,
				Max:    2,
			}, anyCard)
			if err != nil {
				return err
			}
			for _, t := range picked {
				if err := g.TrashFromHand(p, t); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

var Swindler = &CardType{
	Name:        "Swindler",
	Set:         SetIntrigue,
	Description: "+2 money. Each other player trashes the top card of their deck and gains a card with the same cost that you choose.",
	Cost:        3,
	Caps:        CapAction | CapAttack,
	Money:       2,
	Affect: func(ctx context.Context, g *Game, attacker, defender *Player, c *CardInstance) error {
		revealed := defender.reveal(1)
		if len(revealed) == 0 {
			return nil
		}
		card := revealed[0]
		if err := g.TrashFromHand(defender, card); err != nil {
			return err
		}
		cost := g.CurrentCost(card.Type)
		t, err := g.supplyTarget(ctx, attacker, nil, Choice{
			Kind:   ChoiceSwindlerGain,
			Source: c.Type,
			Prompt: fmt.Sprintf("Choose a card costing %d for %s to gain", cost, defender.Name),
			Min:    1,
			Other:  defender,
		}, func(t *CardType) bool { return g.CurrentCost(t) == cost })
		if err != nil || t == nil {
			return err
		}
		_, err = g.Gain(defender, t, nil)
		return err
	},
}

var Torturer = &CardType{
	Name:        "Torturer",
	Set:         SetIntrigue,
	Description: "+3 Cards. Each other player either discards 2 cards or gains a Curse to their hand, their choice.",
	Cost:        5,
	Caps:        CapAction | CapAttack,
	Draw:        3,
	Affect: func(ctx context.Context, g *Game, attacker, defender *Player, c *CardInstance) error {
		mode, err := g.askOption(ctx, defender, Choice{
			Kind:    ChoiceTorturerMode,
			Source:  c.Type,
			Prompt:  "Choose one",
			Options: []string{"Discard 2 cards", "Gain a Curse to your hand"},
			Other:   attacker,
		})
		if err != nil {
			return err
		}
		if mode == 1 {
			g.GainIfAvailable(defender, Curse, defender.Hand)
			return nil
		}
		n := min(2, defender.Hand.Len())
		picked, err := g.askCards(ctx, defender, Choice{
			Kind:   ChoiceTorturerDiscard,
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

var TradingPost = &CardType{
	Name:        "Trading Post",
	Set:         SetIntrigue,
	Description: "Trash 2 cards from your hand. If you did, gain a Silver to your hand.",
	Cost:        5,
	Caps:        CapAction,
	Check: func(g *Game, p *Player, targets []*CardType) error {
		if len(targets) > 2 {
			return violationf("Trading Post trashes exactly 2 cards")
		}
		return requireInHand(p, targets, anyCard)
	},
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		picked, err := g.handTargets(ctx, p, targets, Choice{
			Kind:   ChoiceTradingPostTrash,
			Source: c.Type,
			Prompt: "Trash 2 cards",
			Min:    2,
			Max:    2,
		}, anyCard)
		if err != nil {
			return err
		}
		for _, t := range picked {
			if err := g.TrashFromHand(p, t); err != nil {
				return err
			}
		}
		if len(picked) == 2 {
			g.GainIfAvailable(p, Silver, p.Hand)
		}
		return nil
	},
}

var Pawn = &CardType{
	Name:        "Pawn",
	Set:         SetIntrigue,
	Description: "Choose two: +1 Card; +1 Action; +1 Buy; +1 money. The choices must be different.",
	Cost:        2,
	Caps:        CapAction,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		picked, err := g.askOptions(ctx, p, Choice{
			Kind:    ChoicePawnBonus,
			Source:  c.Type,
			Prompt:  "Choose two",
			Options: []string{"+1 Card", "+1 Action", "+1 Buy", "+1 Money"},
			Min:     2,
			Max:     2,
		})
		if err != nil {
			return err
		}
		for _, i := range picked {
			switch i {
			case 0:
				p.Draw(1)
			case 1:
				p.Actions++
			case 2:
				p.Buys++
			case 3:
				p.Money++
			}
		}
		return nil
	},
}

var Nobles = &CardType{
	Name:        "Nobles",
	Set:         SetIntrigue,
	Description: "2 VP. Choose one: +3 Cards; or +2 Actions.",
	Cost:        6,
	Caps:        CapAction | CapVictory,
	Score:       2,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		mode, err := g.askMode(ctx, p, c, ChoiceNoblesMode, "+3 Cards", "+2 Actions")
		if err != nil {
			return err
		}
		if mode == 0 {
			p.Draw(3)
		} else {
			p.Actions += 2
		}
		return nil
	},
}

var Minion = &CardType{
	Name:        "Minion",
	Set:         SetIntrigue,
	Description: "+1 Action. Choose one: +2 money; or discard your hand, +4 Cards, and each other player with at least 5 cards in hand discards their hand and draws 4 cards.",
	Cost:        5,
	Caps:        CapAction | CapAttack,
	Actions:     1,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		mode, err := g.askMode(ctx, p, c, ChoiceMinionMode, "+2 Money", "Discard your hand and draw 4")
		if err != nil {
			return err
		}
		if mode == 0 {
			p.Money += 2
			return nil
		}
		if err := redraw(p, 4); err != nil {
			return err
		}
		return g.ResolveAttack(ctx, p, c, func(ctx context.Context, g *Game, attacker, defender *Player, c *CardInstance) error {
			if defender.Hand.Len() < 5 {
				return nil
			}
			return redraw(defender, 4)
		})
	},
}

// redraw discards p's hand and draws n cards.
func redraw(p *Player, n int) error {
	if err := discardFromHand(p, p.Hand.Cards()); err != nil {
		return err
	}
	p.Draw(n)
	return nil
}

var MiningVillage = &CardType{
	Name:        "Mining Village",
	Set:         SetIntrigue,
	Description: "+1 Card, +2 Actions. You may trash this for +2 money.",
	Cost:        4,
	Caps:        CapAction,
	Actions:     2,
	Draw:        1,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		if !c.In(p.Played) && c.Zone() != nil {
			return nil
		}
		ok, err := g.askYesNo(ctx, p, Choice{
			Kind:   ChoiceMiningVillageTrash,
			Source: c.Type,
			Prompt: "Trash Mining Village for +2 money?",
		})
		if err != nil || !ok {
			return err
		}
		if g.trashSelf(p, c) {
			p.Money += 2
		}
		return nil
	},
}

var Masquerade = &CardType{
	Name:        "Masquerade",
	Set:         SetIntrigue,
	Description: "+2 Cards. Each player with any cards in hand passes one to the next such player to their left, at once. Then you may trash a card from your hand.",
	Cost:        3,
	Caps:        CapAction,
	Draw:        2,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		passes := make([]*CardInstance, len(g.Players))
		for i, o := range g.Players {
			if o.Hand.Len() == 0 {
				continue
			}
			pick, err := g.askCard(ctx, o, Choice{
				Kind:   ChoiceMasqueradePass,
				Source: c.Type,
				Prompt: "Pass a card to the left",
				Cards:  o.Hand.Cards(),
				Min:    1,
				Max:    1,
				Other:  g.LeftOf(o),
			})
			if err != nil {
				return err
			}
			passes[i] = pick
		}
		for i, o := range g.Players {
			if passes[i] == nil {
				continue
			}
			if err := g.passCard(o, g.LeftOf(o), passes[i]); err != nil {
				return err
			}
		}
		trash, err := g.askCard(ctx, p, Choice{
			Kind:   ChoiceMasqueradeTrash,
			Source: c.Type,
			Prompt: "You may trash a card",
			Cards:  p.Hand.Cards(),
			Max:    1,
		})
		if err != nil || trash == nil {
			return err
		}
		return g.TrashFromHand(p, trash)
	},
}

var ShantyTown = &CardType{
	Name:        "Shanty Town",
	Set:         SetIntrigue,
	Description: "+2 Actions. Reveal your hand. If you have no Action cards in hand, +2 Cards.",
	Cost:        3,
	Caps:        CapAction,
	Actions:     2,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		g.revealHand(p)
		if p.Hand.CountCaps(CapAction) == 0 {
			p.Draw(2)
		}
		return nil
	},
}

var Conspirator = &CardType{
	Name:        "Conspirator",
	Set:         SetIntrigue,
	Description: "+2 money. If you've played 3 or more Actions this turn (counting this), +1 Card and +1 Action.",
	Cost:        4,
	Caps:        CapAction,
	Money:       2,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		if p.ActionsPlayed >= 3 {
			p.Draw(1)
			p.Actions++
		}
		return nil
	},
}

var Courtyard = &CardType{
	Name:        "Courtyard",
	Set:         SetIntrigue,
	Description: "+3 Cards. Put a card from your hand onto your deck.",
	Cost:        2,
	Caps:        CapAction,
	Draw:        3,
	Check: func(g *Game, p *Player, targets []*CardType) error {
		if len(targets) > 1 {
			return violationf("Courtyard puts back exactly one card")
		}
		return requireInHand(p, targets, anyCard)
	},
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		picked, err := g.handTargets(ctx, p, targets, Choice{
			Kind:   ChoiceCourtyardTopDeck,
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

var Baron = &CardType{
	Name:        "Baron",
	Set:         SetIntrigue,
	Description: "+1 Buy. You may discard an Estate for +4 money. If you don't, gain an Estate.",
	Cost:        4,
	Caps:        CapAction,
	Buys:        1,
	Check: func(g *Game, p *Player, targets []*CardType) error {
		if len(targets) > 1 {
			return violationf("Baron discards at most one Estate")
		}
		return requireInHand(p, targets, ofType(Estate))
	},
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		estate := p.Hand.Find(Estate)
		discard := len(targets) > 0
		if !discard && estate != nil {
			var err error
			discard, err = g.askYesNo(ctx, p, Choice{
				Kind:   ChoiceBaronDiscard,
				Source: c.Type,
				Prompt: "Discard an Estate for +4 money?",
			})
			if err != nil {
				return err
			}
		}
		if discard && estate != nil {
			if err := p.Drop(estate, nil); err != nil {
				return err
			}
			p.Money += 4
			return nil
		}
		g.GainIfAvailable(p, Estate, nil)
		return nil
	},
}

var Bridge = &CardType{
	Name:        "Bridge",
	Set:         SetIntrigue,
	Description: "+1 Buy, +1 money. This turn, cards cost 1 less.",
	Cost:        4,
	Caps:        CapAction,
	Money:       1,
	Buys:        1,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		g.ModifyCost(c.Type, -1)
		return nil
	},
}

var Duke = &CardType{
	Name:        "Duke",
	Set:         SetIntrigue,
	Description: "Worth 1 VP per Duchy you have.",
	Cost:        5,
	Caps:        CapVictory,
	Bonus: func(g *Game, p *Player) int {
		return p.CountType(Duchy)
	},
}

var Harem = &CardType{
	Name:        "Harem",
	Set:         SetIntrigue,
	Description: "+2 money. 2 VP.",
	Cost:        6,
	Caps:        CapTreasure | CapVictory,
	Money:       2,
	Score:       2,
}

var Ironworks = &CardType{
	Name:        "Ironworks",
	Set:         SetIntrigue,
	Description: "Gain a card costing up to 4. If it's an Action card, +1 Action; Treasure card, +1 money; Victory card, +1 Card.",
	Cost:        4,
	Caps:        CapAction,
	Check:       checkGainUpTo(4),
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		t, err := gainUpTo(ctx, g, p, c, targetAt(targets, 0), ChoiceIronworksGain, 4)
		if err != nil || t == nil {
			return err
		}
		if _, err := g.Gain(p, t, nil); err != nil {
			return err
		}
		if t.Is(CapAction) {
			p.Actions++
		}
		if t.Is(CapTreasure) {
			p.Money++
		}
		if t.Is(CapVictory) {
			p.Draw(1)
		}
		return nil
	},
}

var WishingWell = &CardType{
	Name:        "Wishing Well",
	Set:         SetIntrigue,
	Description: "+1 Card, +1 Action. Name a card, then reveal the top card of your deck. If you named it, put it into your hand.",
	Cost:        3,
	Caps:        CapAction,
	Actions:     1,
	Draw:        1,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		guess := targetAt(targets, 0)
		if guess == nil {
			var err error
			guess, err = g.askType(ctx, p, Choice{
				Kind:   ChoiceWishingWellGuess,
				Source: c.Type,
				Prompt: "Name a card",
				Types:  g.Supply.Types(),
				Min:    1,
				Max:    1,
			})
			if err != nil {
				return err
			}
		}
		revealed := p.reveal(1)
		if len(revealed) == 0 || revealed[0].Type == guess {
			return nil
		}
		return p.Drop(revealed[0], p.Deck)
	},
}

var upgradeExchange = exchange{
	trashKind: ChoiceUpgradeTrash,
	gainKind:  ChoiceUpgradeGain,
	trashOK:   anyCard,
	gainOK: func(g *Game, trashed, gained *CardType) bool {
		return g.CurrentCost(gained) == g.CurrentCost(trashed)+1
	},
}

var Upgrade = &CardType{
	Name:        "Upgrade",
	Set:         SetIntrigue,
	Description: "+1 Card, +1 Action. Trash a card from your hand. Gain a card costing exactly 1 more than it.",
	Cost:        5,
	Caps:        CapAction,
	Actions:     1,
	Draw:        1,
	Check:       upgradeExchange.check,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		_, gain, err := upgradeExchange.resolve(ctx, g, p, c, targets)
		if err != nil || gain == nil {
			return err
		}
		_, err = g.Gain(p, gain, nil)
		return err
	},
}

// --- Intrigue, first edition ---

var Saboteur = &CardType{
	Name:        "Saboteur",
	Set:         SetIntrigue1E,
	Description: "Each other player reveals cards from the top of their deck until revealing one costing 3 or more. They trash that card and may gain a card costing at most 2 less than it. They discard the other revealed cards.",
	Cost:        5,
	Caps:        CapAction | CapAttack,
	Affect: func(ctx context.Context, g *Game, attacker, defender *Player, c *CardInstance) error {
		var others []*CardInstance
		err := func() error {
			for {
				revealed := defender.reveal(1)
				if len(revealed) == 0 {
					return nil
				}
				card := revealed[0]
				cost := g.CurrentCost(card.Type)
				if cost < 3 {
					others = append(others, card)
					continue
				}
				if err := g.TrashFromHand(defender, card); err != nil {
					return err
				}
				t, err := g.supplyTarget(ctx, defender, nil, Choice{
					Kind:   ChoiceSaboteurGain,
					Source: c.Type,
					Prompt: fmt.Sprintf("You may gain a card costing up to %d", cost-2),
					Other:  attacker,
				}, costUpTo(g, cost-2))
				if err != nil || t == nil {
					return err
				}
				_, err = g.Gain(defender, t, nil)
				return err
			}
		}()
		if derr := discardFromHand(defender, others); err == nil {
			err = derr
		}
		return err
	},
}

var Tribute = &CardType{
	Name:        "Tribute",
	Set:         SetIntrigue1E,
	Description: "The player to your left reveals then discards the top 2 cards of their deck. For each differently named card revealed: Action, +2 Actions; Treasure, +2 money; Victory, +2 Cards.",
	Cost:        5,
	Caps:        CapAction,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		left := g.LeftOf(p)
		revealed := left.reveal(2)
		if err := discardFromHand(left, revealed); err != nil {
			return err
		}
		var seen []*CardType
		for _, r := range revealed {
			if containsType(seen, r.Type) {
				continue
			}
			seen = append(seen, r.Type)
			if r.Type.Is(CapAction) {
				p.Actions += 2
			}
			if r.Type.Is(CapTreasure) {
				p.Money += 2
			}
			if r.Type.Is(CapVictory) {
				p.Draw(2)
			}
		}
		return nil
	},
}

var GreatHall = &CardType{
	Name:        "Great Hall",
	Set:         SetIntrigue1E,
	Description: "1 VP. +1 Card, +1 Action.",
	Cost:        3,
	Caps:        CapAction | CapVictory,
	Score:       1,
	Actions:     1,
	Draw:        1,
}

var Coppersmith = &CardType{
	Name:        "Coppersmith",
	Set:         SetIntrigue1E,
	Description: "Copper produces an extra +1 money this turn.",
	Cost:        4,
	Caps:        CapAction,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		p.copperBonus++
		return nil
	},
}

var SecretChamber = &CardType{
	Name:        "Secret Chamber",
	Set:         SetIntrigue1E,
	Description: "Discard any number of cards. +1 money per card discarded. When another player plays an Attack card, you may reveal this from your hand. If you do, +2 Cards, then put 2 cards from your hand on top of your deck.",
	Cost:        2,
	Caps:        CapAction | CapReaction,
	Check: func(g *Game, p *Player, targets []*CardType) error {
		return requireInHand(p, targets, anyCard)
	},
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		picked, err := g.handTargets(ctx, p, targets, Choice{
			Kind:   ChoiceSecretChamberDiscard,
			Source: c.Type,
			Prompt: "Discard any number of cards for +1 money each",
			Max:    Unbounded,
		}, anyCard)
		if err != nil {
			return err
		}
		if err := discardFromHand(p, picked); err != nil {
			return err
		}
		p.Money += len(picked)
		return nil
	},
	React: func(ctx context.Context, g *Game, defender *Player, reaction, attack *CardInstance) (bool, error) {
		ok, err := g.askYesNo(ctx, defender, Choice{
			Kind:   ChoiceSecretChamberReveal,
			Source: reaction.Type,
			Prompt: fmt.Sprintf("Reveal Secret Chamber against %s?", attack.Name()),
			Other:  g.Active(),
		})
		if err != nil || !ok {
			return false, err
		}
		g.revealCard(defender, reaction)
		defender.Draw(2)
		n := min(2, defender.Hand.Len())
		put, err := g.askCards(ctx, defender, Choice{
			Kind:   ChoiceSecretChamberTopDeck,
			Source: reaction.Type,
			Prompt: "Put 2 cards from your hand onto your deck",
			Cards:  defender.Hand.Cards(),
			Min:    n,
			Max:    n,
		})
		if err != nil {
			return false, err
		}
		return false, topDeckInOrder(defender, put)
	},
}

var Scout = &CardType{
	Name:        "Scout",
	Set:         SetIntrigue1E,
	Description: "+1 Action. Reveal the top 4 cards of your deck. Put the revealed Victory cards into your hand. Put the other cards on top of your deck in any order.",
	Cost:        4,
	Caps:        CapAction,
	Actions:     1,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		revealed := p.reveal(4)
		rest := filterCards(revealed, func(r *CardInstance) bool { return !isVictory(r) })
		order, err := g.askOrder(ctx, p, Choice{
			Kind:   ChoiceScoutOrder,
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

// --- Intrigue, second edition ---

var courtierBonuses = []string{"+1 Action", "+1 Buy", "+3 Money", "Gain a Gold"}

var Courtier = &CardType{
	Name:        "Courtier",
	Set:         SetIntrigue2E,
	Description: "Reveal a card from your hand. For each type it has, choose one: +1 Action; or +1 Buy; or +3 money; or gain a Gold. The choices must be different.",
	Cost:        5,
	Caps:        CapAction,
	Check: func(g *Game, p *Player, targets []*CardType) error {
		if len(targets) > 1 {
			return violationf("Courtier reveals exactly one card")
		}
		return requireInHand(p, targets, anyCard)
	},
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		picked, err := g.handTargets(ctx, p, targets, Choice{
			Kind:   ChoiceCourtierReveal,
			Source: c.Type,
			Prompt: "Reveal a card",
			Min:    1,
			Max:    1,
		}, anyCard)
		if err != nil || len(picked) == 0 {
			return err
		}
		revealed := picked[0]
		g.revealCard(p, revealed)
		n := min(revealed.Type.Caps.Count(), len(courtierBonuses))
		chosen, err := g.askOptions(ctx, p, Choice{
			Kind:    ChoiceCourtierBonus,
			Source:  c.Type,
			Prompt:  fmt.Sprintf("Choose %d", n),
			Options: courtierBonuses,
			Min:     n,
			Max:     n,
		})
		if err != nil {
			return err
		}
		for _, i := range chosen {
			switch i {
			case 0:
				p.Actions++
			case 1:
				p.Buys++
			case 2:
				p.Money += 3
			case 3:
				g.GainIfAvailable(p, Gold, nil)
			}
		}
		return nil
	},
}

var Lurker = &CardType{
	Name:        "Lurker",
	Set:         SetIntrigue2E,
	Description: "+1 Action. Choose one: trash an Action card from the Supply; or gain an Action card from the trash.",
	Cost:        2,
	Caps:        CapAction,
	Actions:     1,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		var inSupply []*CardType
		for _, t := range g.Supply.Available() {
			if t.Is(CapAction) {
				inSupply = append(inSupply, t)
			}
		}
		inTrash := g.Trash.Filter(isAction)
		if len(inSupply) == 0 && len(inTrash) == 0 {
			return nil
		}
		mode, err := g.askMode(ctx, p, c, ChoiceLurkerMode,
			"Trash an Action card from the Supply", "Gain an Action card from the trash")
		if err != nil {
			return err
		}
		if mode == 0 {
			t, err := g.askType(ctx, p, Choice{
				Kind:   ChoiceLurkerTrash,
				Source: c.Type,
				Prompt: "Trash an Action card from the Supply",
				Types:  inSupply,
				Min:    1,
				Max:    1,
			})
			if err != nil || t == nil {
				return err
			}
			return g.trashFromSupply(p, t)
		}
		card, err := g.askCard(ctx, p, Choice{
			Kind:   ChoiceLurkerGain,
			Source: c.Type,
			Prompt: "Gain an Action card from the trash",
			Cards:  inTrash,
			Min:    1,
			Max:    1,
		})
		if err != nil || card == nil {
			return err
		}
		return g.gainFromTrash(p, card, nil)
	},
}

var Mill = &CardType{
	Name:        "Mill",
	Set:         SetIntrigue2E,
	Description: "1 VP. +1 Card, +1 Action. You may discard 2 cards for +2 money.",
	Cost:        4,
	Caps:        CapAction | CapVictory,
	Score:       1,
	Actions:     1,
	Draw:        1,
	Check: func(g *Game, p *Player, targets []*CardType) error {
		if len(targets) != 2 {
			return violationf("Mill discards exactly 2 cards")
		}
		return requireInHand(p, targets, anyCard)
	},
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		picked, err := g.handTargets(ctx, p, targets, Choice{
			Kind:   ChoiceMillDiscard,
			Source: c.Type,
			Prompt: "You may discard 2 cards for +2 money",
			Max:    2,
		}, anyCard)
		if err != nil {
			return err
		}
		if err := discardFromHand(p, picked); err != nil {
			return err
		}
		if len(picked) == 2 {
			p.Money += 2
		}
		return nil
	},
}

var replaceExchange = exchange{
	trashKind: ChoiceReplaceTrash,
	gainKind:  ChoiceReplaceGain,
	trashOK:   anyCard,
	gainOK: func(g *Game, trashed, gained *CardType) bool {
		return g.CurrentCost(gained) <= g.CurrentCost(trashed)+2
	},
}

var Replace = &CardType{
	Name:        "Replace",
	Set:         SetIntrigue2E,
	Description: "Trash a card from your hand. Gain a card costing up to 2 more than it. If the gained card is an Action or Treasure, put it onto your deck; if it's a Victory card, each other player gains a Curse.",
	Cost:        5,
	Caps:        CapAction | CapAttack,
	Check:       replaceExchange.check,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		_, gain, err := replaceExchange.resolve(ctx, g, p, c, targets)
		if err != nil {
			return err
		}
		cursing := false
		if gain != nil {
			var to *OrderedZone
			if gain.IsAny(CapAction | CapTreasure) {
				to = p.Deck
			}
			if _, err := g.Gain(p, gain, to); err != nil {
				return err
			}
			cursing = gain.Is(CapVictory)
		}
		return g.ResolveAttack(ctx, p, c, func(ctx context.Context, g *Game, attacker, defender *Player, c *CardInstance) error {
			if cursing {
				g.GainIfAvailable(defender, Curse, nil)
			}
			return nil
		})
	},
}

var SecretPassage = &CardType{
	Name:        "Secret Passage",
	Set:         SetIntrigue2E,
	Description: "+2 Cards, +1 Action. Take a card from your hand and put it anywhere in your deck.",
	Cost:        4,
	Caps:        CapAction,
	Actions:     1,
	Draw:        2,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		picked, err := g.handTargets(ctx, p, headTargets(targets, 1), Choice{
			Kind:   ChoiceSecretPassageCard,
			Source: c.Type,
			Prompt: "Choose a card to put into your deck",
			Min:    1,
			Max:    1,
		}, anyCard)
		if err != nil || len(picked) == 0 {
			return err
		}
		card := picked[0]
		n := p.Deck.Len()
		positions := make([]string, n+1)
		for i := range positions {
			switch i {
			case 0:
				positions[i] = "bottom"
			case n:
				positions[i] = "top"
			default:
				positions[i] = fmt.Sprintf("%d from the top", n-i)
			}
		}
		pos, err := g.askOption(ctx, p, Choice{
			Kind:    ChoiceSecretPassagePlace,
			Source:  c.Type,
			Prompt:  fmt.Sprintf("Where should %s go?", card.Name()),
			Options: positions,
		})
		if err != nil {
			return err
		}
		if _, err := p.Hand.PickCard(card); err != nil {
			return err
		}
		p.Deck.Insert(card, pos)
		p.logMove(card, p.Deck)
		return nil
	},
}

var Diplomat = &CardType{
	Name:        "Diplomat",
	Set:         SetIntrigue2E,
	Description: "+2 Cards. If you have 5 or fewer cards in hand (after drawing), +2 Actions. When another player plays an Attack card, you may first reveal this from a hand of 5 or more cards, to draw 2 cards then discard 3.",
	Cost:        4,
	Caps:        CapAction | CapReaction,
	Draw:        2,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		if p.Hand.Len() <= 5 {
			p.Actions += 2
		}
		return nil
	},
	React: func(ctx context.Context, g *Game, defender *Player, reaction, attack *CardInstance) (bool, error) {
		if defender.Hand.Len() < 5 {
			return false, nil
		}
		ok, err := g.askYesNo(ctx, defender, Choice{
			Kind:   ChoiceDiplomatReveal,
			Source: reaction.Type,
			Prompt: fmt.Sprintf("Reveal Diplomat against %s?", attack.Name()),
			Other:  g.Active(),
		})
		if err != nil || !ok {
			return false, err
		}
		g.revealCard(defender, reaction)
		defender.Draw(2)
		n := min(3, defender.Hand.Len())
		picked, err := g.askCards(ctx, defender, Choice{
			Kind:   ChoiceDiplomatDiscard,
			Source: reaction.Type,
			Prompt: "Discard 3 cards",
			Cards:  defender.Hand.Cards(),
			Min:    n,
			Max:    n,
		})
		if err != nil {
			return false, err
		}
		return false, discardFromHand(defender, picked)
	},
}

var Patrol = &CardType{
	Name:        "Patrol",
	Set:         SetIntrigue2E,
	Description: "+3 Cards. Reveal the top 4 cards of your deck. Put the Victory cards and Curses into your hand. Put the rest back in any order.",
	Cost:        5,
	Caps:        CapAction,
	Draw:        3,
	Effect: func(ctx context.Context, g *Game, p *Player, c *CardInstance, targets []*CardType) error {
		revealed := p.reveal(4)
		rest := filterCards(revealed, func(r *CardInstance) bool { return !r.Type.IsAny(CapVictory | CapCurse) })
		order, err := g.askOrder(ctx, p, Choice{
			Kind:   ChoicePatrolOrder,
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

// IntrigueCards returns the Intrigue cards of both editions in registration order.
func IntrigueCards() []*CardType {
	return []*CardType{
		Steward, Swindler, Torturer, TradingPost, Pawn, Nobles, Minion, MiningVillage,
		Masquerade, ShantyTown, Conspirator, Courtyard, Baron, Bridge, Duke, Harem,
		Ironworks, WishingWell, Upgrade,
		Saboteur, Tribute, GreatHall, Coppersmith, SecretChamber, Scout,
		Courtier, Lurker, Mill, Replace, SecretPassage, Diplomat, Patrol,
	}
}
