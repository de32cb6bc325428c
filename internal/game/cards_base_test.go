package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/deckbuilder/internal/log"
)

// TestMilitiaWithTwoDefenders: the Moat holder is unaffected, the other
// defender still discards down to three.
func TestMilitiaWithTwoDefenders(t *testing.T) {
	a := newScripted(t, "A")
	b := newScripted(t, "B").AddYesNo(true)
	c := newScripted(t, "C").AddCards("Estate", "Estate")
	g, logger := newTestGame(t, testKingdom, a, b, c)
	p := startTurn(g)
	setHand(t, g, p, "Militia")
	pb, pc := g.Players[1], g.Players[2]
	setHand(t, g, pb, "Moat", "Copper", "Copper", "Estate", "Estate")
	setHand(t, g, pc, "Copper", "Copper", "Copper", "Estate", "Estate")

	require.NoError(t, p.PlayType(context.Background(), Militia))

	assert.Equal(t, 2, p.Money)
	assert.Equal(t, 5, pb.Hand.Len())
	assert.Equal(t, []string{"Copper", "Copper", "Copper"}, handNames(pc))
	assert.Equal(t, 2, pc.Discard.CountType(Estate))
	assert.Equal(t, []ChoiceKind{ChoiceMoatReveal}, b.asked)
	assert.Equal(t, []ChoiceKind{ChoiceMilitiaDiscard}, c.asked)

	assert.Len(t, logger.EventsOfType(log.EventAttack), 2)
	reacts := logger.EventsOfType(log.EventReact)
	require.Len(t, reacts, 1)
	assert.Equal(t, 1, reacts[0].Player)
	assert.Equal(t, "Moat", reacts[0].Card)
}

func TestMoatDeclined(t *testing.T) {
	b := newScripted(t, "B").AddYesNo(false).AddCards("Estate", "Estate")
	g, logger := newTestGame(t, testKingdom, newScripted(t, "A"), b)
	p := startTurn(g)
	setHand(t, g, p, "Militia")
	pb := g.Players[1]
	setHand(t, g, pb, "Moat", "Copper", "Copper", "Estate", "Estate")

	require.NoError(t, p.PlayType(context.Background(), Militia))
	assert.ElementsMatch(t, []string{"Moat", "Copper", "Copper"}, handNames(pb))
	assert.Empty(t, logger.EventsOfType(log.EventReact))
}

func TestWitchCursesEachOpponent(t *testing.T) {
	g, _ := newTestGame(t, testKingdom, moneyStrategy{}, moneyStrategy{}, moneyStrategy{})
	p := startTurn(g)
	setHand(t, g, p, "Witch")

	require.NoError(t, p.PlayType(context.Background(), Witch))
	assert.Equal(t, 2, p.Hand.Len())
	assert.Equal(t, 1, g.Players[1].Discard.CountType(Curse))
	assert.Equal(t, 1, g.Players[2].Discard.CountType(Curse))
	assert.Equal(t, 18, g.Supply.Count(Curse))
	assert.Zero(t, p.CountType(Curse))
}

func TestWitchWithNoCursesLeft(t *testing.T) {
	g, _ := newTestGame(t, testKingdom, moneyStrategy{}, moneyStrategy{})
	for g.Supply.Count(Curse) > 0 {
		c, _ := g.Supply.Take(Curse)
		g.Trash.Put(c)
	}
	p := startTurn(g)
	setHand(t, g, p, "Witch")
	require.NoError(t, p.PlayType(context.Background(), Witch))
	assert.Zero(t, g.Players[1].CountType(Curse))
}

func TestThroneRoomPlaysTwice(t *testing.T) {
	g, logger := newTestGame(t, testKingdom, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Throne Room", "Smithy")
	stackDeck(t, g, p, "Copper", "Copper", "Copper", "Silver", "Silver", "Silver")

	require.NoError(t, p.PlayType(context.Background(), ThroneRoom))
	assert.Equal(t, 6, p.Hand.Len())
	assert.Equal(t, []string{"Throne Room", "Smithy"}, cardNames(p.Played.Cards()))
	assert.Zero(t, p.Actions)
	assert.Equal(t, 3, p.ActionsPlayed)
	assert.Len(t, logger.EventsOfType(log.EventPlay), 3)
}

func TestThroneRoomWithoutActions(t *testing.T) {
	g, _ := newTestGame(t, testKingdom, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Throne Room", "Copper")

	require.NoError(t, p.PlayType(context.Background(), ThroneRoom))
	assert.Equal(t, []string{"Throne Room"}, cardNames(p.Played.Cards()))
	assert.Equal(t, []string{"Copper"}, handNames(p))
}

// TestThroneRoomRollback: a failing inner play undoes the whole Throne Room.
func TestThroneRoomRollback(t *testing.T) {
	g, _ := newTestGame(t, testKingdom, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Throne Room", "Remodel")

	err := p.PlayType(context.Background(), ThroneRoom, Remodel, Gold, Province)
	require.Error(t, err)
	assert.True(t, IsRulesViolation(err))
	assert.ElementsMatch(t, []string{"Throne Room", "Remodel"}, handNames(p))
	assert.Zero(t, p.Played.Len())
	assert.Equal(t, 1, p.Actions)
	assert.Zero(t, p.ActionsPlayed)
	assertExclusiveOwnership(t, g)
}

func TestThroneRoomFeast(t *testing.T) {
	a := newScripted(t, "A").AddType("Silver")
	g, _ := newTestGame(t, []string{"Throne Room", "Feast"}, a, newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Throne Room", "Feast")

	require.NoError(t, p.PlayType(context.Background(), ThroneRoom, Feast, Duchy))
	assert.Equal(t, 1, g.Trash.CountType(Feast), "Feast is trashed once")
	assert.ElementsMatch(t, []string{"Duchy", "Silver"}, cardNames(p.Discard.Cards()))
	assert.Equal(t, []string{"Throne Room"}, cardNames(p.Played.Cards()))
	assert.Equal(t, []ChoiceKind{ChoiceFeastGain}, a.asked)
}

func TestRemodel(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGame(t, testKingdom, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Remodel", "Estate", "Copper")

	err := p.PlayType(ctx, Remodel, Estate, Gold)
	assert.True(t, IsRulesViolation(err), "Gold costs more than Estate + 2")
	assert.Equal(t, 3, p.Hand.Len())

	require.NoError(t, p.PlayType(ctx, Remodel, Estate, Smithy))
	assert.Equal(t, 1, g.Trash.CountType(Estate))
	assert.Equal(t, 1, p.Discard.CountType(Smithy))
	assert.Equal(t, []string{"Copper"}, handNames(p))
}

func TestRemodelAsks(t *testing.T) {
	a := newScripted(t, "A").AddCards("Estate").AddType("Silver")
	g, _ := newTestGame(t, testKingdom, a, newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Remodel", "Estate", "Copper")

	require.NoError(t, p.PlayType(context.Background(), Remodel))
	assert.Equal(t, []ChoiceKind{ChoiceRemodelTrash, ChoiceRemodelGain}, a.asked)
	assert.Equal(t, 1, g.Trash.CountType(Estate))
	assert.Equal(t, 1, p.Discard.CountType(Silver))
}

func TestMineGainsToHand(t *testing.T) {
	ctx := context.Background()
	a := newScripted(t, "A").AddType("Silver")
	g, _ := newTestGame(t, testKingdom, a, newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Mine", "Copper")

	assert.True(t, IsRulesViolation(p.PlayType(ctx, Mine, Copper, Gold)))
	assert.True(t, IsRulesViolation(p.PlayType(ctx, Mine, Copper, Village)), "only Treasures")

	require.NoError(t, p.PlayType(ctx, Mine))
	assert.Equal(t, []string{"Silver"}, handNames(p))
	assert.Equal(t, 1, g.Trash.CountType(Copper))
}

func TestChapel(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGame(t, testKingdom, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Chapel", "Estate", "Estate", "Estate", "Copper", "Copper")

	err := p.PlayType(ctx, Chapel, Estate, Estate, Estate, Copper, Copper)
	assert.True(t, IsRulesViolation(err), "at most four")

	require.NoError(t, p.PlayType(ctx, Chapel, Estate, Estate, Estate, Copper))
	assert.Equal(t, 4, g.Trash.Len())
	assert.Equal(t, []string{"Copper"}, handNames(p))
}

func TestChapelMayTrashNothing(t *testing.T) {
	g, _ := newTestGame(t, testKingdom, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Chapel", "Estate")
	require.NoError(t, p.PlayType(context.Background(), Chapel))
	assert.Zero(t, g.Trash.Len())
}

func TestCellar(t *testing.T) {
	g, _ := newTestGame(t, []string{"Cellar"}, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Cellar", "Estate", "Estate", "Copper")
	stackDeck(t, g, p, "Gold", "Gold")

	require.NoError(t, p.PlayType(context.Background(), Cellar, Estate, Estate))
	assert.ElementsMatch(t, []string{"Copper", "Gold", "Gold"}, handNames(p))
	assert.Equal(t, 2, p.Discard.CountType(Estate))
	assert.Equal(t, 1, p.Actions)
}

func TestMoneylender(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGame(t, []string{"Moneylender"}, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Moneylender", "Copper", "Estate")

	require.NoError(t, p.PlayType(ctx, Moneylender, Copper))
	assert.Equal(t, 3, p.Money)
	assert.Equal(t, 1, g.Trash.CountType(Copper))

	g.turn++
	p.Actions, p.Money = 1, 0
	setHand(t, g, p, "Moneylender", "Estate")
	require.NoError(t, p.PlayType(ctx, Moneylender))
	assert.Zero(t, p.Money)
}

func TestLibrarySetsAsideActions(t *testing.T) {
	a := newScripted(t, "A").AddYesNo(true)
	g, _ := newTestGame(t, []string{"Library", "Village"}, a, newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Library", "Copper", "Copper")
	stackDeck(t, g, p, "Village", "Copper", "Copper", "Silver", "Gold", "Gold", "Estate")

	require.NoError(t, p.PlayType(context.Background(), Library))
	assert.Equal(t, 7, p.Hand.Len())
	assert.Zero(t, p.Hand.CountType(Village))
	assert.Equal(t, 1, p.Discard.CountType(Village))
	assert.Equal(t, "Estate", p.Deck.Peek().Name())
	assert.Equal(t, []ChoiceKind{ChoiceLibrarySetAside}, a.asked)
}

func TestFeast(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGame(t, []string{"Feast"}, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Feast")

	assert.True(t, IsRulesViolation(p.PlayType(ctx, Feast, Gold)))
	assert.Equal(t, []string{"Feast"}, handNames(p))

	require.NoError(t, p.PlayType(ctx, Feast, Duchy))
	assert.Equal(t, 1, g.Trash.CountType(Feast))
	assert.Zero(t, p.Played.Len())
	assert.Equal(t, 1, p.Discard.CountType(Duchy))
}

func TestCouncilRoom(t *testing.T) {
	g, _ := newTestGame(t, []string{"Council Room"}, moneyStrategy{}, moneyStrategy{})
	p := startTurn(g)
	setHand(t, g, p, "Council Room")
	require.NoError(t, p.PlayType(context.Background(), CouncilRoom))
	assert.Equal(t, 4, p.Hand.Len())
	assert.Equal(t, 2, p.Buys)
	assert.Equal(t, 6, g.Players[1].Hand.Len())
}

func TestBureaucrat(t *testing.T) {
	b := newScripted(t, "B").AddCards("Duchy")
	g, _ := newTestGame(t, []string{"Bureaucrat"}, newScripted(t, "A"), b)
	p := startTurn(g)
	setHand(t, g, p, "Bureaucrat")
	pb := g.Players[1]
	setHand(t, g, pb, "Estate", "Duchy", "Copper")

	require.NoError(t, p.PlayType(context.Background(), Bureaucrat))
	assert.Equal(t, "Silver", p.Deck.Peek().Name())
	assert.Equal(t, "Duchy", pb.Deck.Peek().Name())
	assert.ElementsMatch(t, []string{"Estate", "Copper"}, handNames(pb))
}

func TestBureaucratRevealsHandWithoutVictory(t *testing.T) {
	b := newScripted(t, "B")
	g, logger := newTestGame(t, []string{"Bureaucrat"}, newScripted(t, "A"), b)
	p := startTurn(g)
	setHand(t, g, p, "Bureaucrat")
	setHand(t, g, g.Players[1], "Copper", "Silver")

	require.NoError(t, p.PlayType(context.Background(), Bureaucrat))
	assert.Len(t, logger.EventsOfType(log.EventReveal), 2)
	assert.Empty(t, b.asked)
}

func TestAdventurer(t *testing.T) {
	g, _ := newTestGame(t, []string{"Adventurer"}, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Adventurer")
	stackDeck(t, g, p, "Estate", "Copper", "Estate", "Silver", "Gold")

	require.NoError(t, p.PlayType(context.Background(), Adventurer))
	assert.ElementsMatch(t, []string{"Copper", "Silver"}, handNames(p))
	assert.Equal(t, 2, p.Discard.CountType(Estate))
	assert.Equal(t, "Gold", p.Deck.Peek().Name())
}

func TestSpy(t *testing.T) {
	a := newScripted(t, "A").AddYesNo(true, false)
	g, _ := newTestGame(t, []string{"Spy"}, a, newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Spy")
	stackDeck(t, g, p, "Copper", "Estate")
	pb := g.Players[1]
	stackDeck(t, g, pb, "Gold")

	require.NoError(t, p.PlayType(context.Background(), Spy))
	assert.Equal(t, []string{"Copper"}, handNames(p))
	assert.Equal(t, 1, p.Discard.CountType(Estate))
	assert.Equal(t, "Gold", pb.Deck.Peek().Name(), "B's Gold is put back")
	assert.Equal(t, 1, p.Actions)
}

func TestThief(t *testing.T) {
	a := newScripted(t, "A").AddCards("Gold").AddCards("Gold")
	g, _ := newTestGame(t, []string{"Thief"}, a, newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Thief")
	pb := g.Players[1]
	stackDeck(t, g, pb, "Gold", "Estate")

	require.NoError(t, p.PlayType(context.Background(), Thief))
	assert.Equal(t, 1, p.Discard.CountType(Gold))
	assert.Equal(t, 1, pb.Discard.CountType(Estate))
	assert.Zero(t, g.Trash.Len())
	assert.Zero(t, pb.CountType(Gold))
}

func TestVassalPlaysDiscardedAction(t *testing.T) {
	a := newScripted(t, "A").AddYesNo(true)
	g, _ := newTestGame(t, []string{"Vassal", "Smithy"}, a, newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Vassal")
	stackDeck(t, g, p, "Smithy", "Copper", "Copper", "Copper", "Gold")

	require.NoError(t, p.PlayType(context.Background(), Vassal))
	assert.Equal(t, 2, p.Money)
	assert.Equal(t, []string{"Copper", "Copper", "Copper"}, handNames(p))
	assert.Equal(t, []string{"Vassal", "Smithy"}, cardNames(p.Played.Cards()))
	assert.Zero(t, p.Discard.Len())
}

func TestVassalDiscardsNonAction(t *testing.T) {
	a := newScripted(t, "A")
	g, _ := newTestGame(t, []string{"Vassal"}, a, newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Vassal")
	stackDeck(t, g, p, "Gold")

	require.NoError(t, p.PlayType(context.Background(), Vassal))
	assert.Equal(t, 1, p.Discard.CountType(Gold))
	assert.Empty(t, a.asked)
}

func TestMerchantAndSilver(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGame(t, []string{"Merchant"}, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Merchant", "Silver", "Silver")
	stackDeck(t, g, p, "Copper")

	require.NoError(t, p.PlayType(ctx, Merchant))
	g.setPhase(PhaseBuy)
	require.NoError(t, p.PlayAllTreasures(ctx))
	assert.Equal(t, 1+3+2, p.Money, "only the first Silver gets the bonus")
}

func TestThroneRoomMerchant(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGame(t, []string{"Throne Room", "Merchant"}, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Throne Room", "Merchant", "Silver", "Silver")
	stackDeck(t, g, p, "Copper", "Copper")

	require.NoError(t, p.PlayType(ctx, ThroneRoom, Merchant))
	assert.Equal(t, 2, p.Actions)
	g.setPhase(PhaseBuy)
	require.NoError(t, p.PlayAllTreasures(ctx))
	assert.Equal(t, (2+2)+2+1+1, p.Money, "each Merchant play adds to the first Silver")
}

func TestSentry(t *testing.T) {
	a := newScripted(t, "A").AddCards("Curse").AddCards("Estate")
	g, _ := newTestGame(t, []string{"Sentry"}, a, newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Sentry")
	stackDeck(t, g, p, "Copper", "Estate", "Curse", "Gold")

	require.NoError(t, p.PlayType(context.Background(), Sentry))
	assert.Equal(t, []string{"Copper"}, handNames(p))
	assert.Equal(t, 1, g.Trash.CountType(Curse))
	assert.Equal(t, 1, p.Discard.CountType(Estate))
	assert.Equal(t, "Gold", p.Deck.Peek().Name())
}

func TestSentryOrdersKeptCards(t *testing.T) {
	a := newScripted(t, "A").AddCards().AddCards().AddOrder("Gold", "Silver")
	g, _ := newTestGame(t, []string{"Sentry"}, a, newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Sentry")
	stackDeck(t, g, p, "Copper", "Silver", "Gold")

	require.NoError(t, p.PlayType(context.Background(), Sentry))
	assert.Equal(t, []string{"Gold", "Silver"}, cardNames(p.Deck.Cards()[p.Deck.Len()-2:]))
	assert.Equal(t, "Silver", p.Deck.Peek().Name(), "the last card ordered ends on top")
}

func TestPoacher(t *testing.T) {
	a := newScripted(t, "A").AddCards("Estate", "Estate")
	g, _ := newTestGame(t, []string{"Poacher", "Village", "Smithy"}, a, newScripted(t, "B"))
	for _, typ := range []*CardType{Village, Smithy} {
		for g.Supply.Count(typ) > 0 {
			c, _ := g.Supply.Take(typ)
			g.Trash.Put(c)
		}
	}
	p := startTurn(g)
	setHand(t, g, p, "Poacher", "Copper", "Estate", "Estate")
	stackDeck(t, g, p, "Gold")

	require.NoError(t, p.PlayType(context.Background(), Poacher))
	assert.ElementsMatch(t, []string{"Copper", "Gold"}, handNames(p))
	assert.Equal(t, 1, p.Money)
	assert.Equal(t, []ChoiceKind{ChoicePoacherDiscard}, a.asked)
}

// TestPoacherExactHand: with exactly as many cards in hand as empty piles
// the whole hand is discarded without a decision.
func TestPoacherExactHand(t *testing.T) {
	a := newScripted(t, "A")
	g, _ := newTestGame(t, []string{"Poacher", "Village", "Smithy"}, a, newScripted(t, "B"))
	for _, typ := range []*CardType{Village, Smithy} {
		for g.Supply.Count(typ) > 0 {
			c, _ := g.Supply.Take(typ)
			g.Trash.Put(c)
		}
	}
	p := startTurn(g)
	setHand(t, g, p, "Poacher", "Copper")
	stackDeck(t, g, p, "Gold")

	require.NoError(t, p.PlayType(context.Background(), Poacher))
	assert.Empty(t, handNames(p))
	assert.Equal(t, 2, p.Discard.Len())
	assert.Empty(t, a.asked)
}

func TestHarbinger(t *testing.T) {
	a := newScripted(t, "A").AddCards("Gold")
	g, _ := newTestGame(t, []string{"Harbinger"}, a, newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Harbinger")
	stackDeck(t, g, p, "Copper")
	setDiscard(t, g, p, "Estate", "Gold")

	require.NoError(t, p.PlayType(context.Background(), Harbinger))
	assert.Equal(t, "Gold", p.Deck.Peek().Name())
	assert.Equal(t, []string{"Estate"}, cardNames(p.Discard.Cards()))
}

func TestBandit(t *testing.T) {
	g, _ := newTestGame(t, []string{"Bandit"}, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Bandit")
	pb := g.Players[1]
	stackDeck(t, g, pb, "Gold", "Copper")

	require.NoError(t, p.PlayType(context.Background(), Bandit))
	assert.Equal(t, 1, p.Discard.CountType(Gold))
	assert.Equal(t, 1, g.Trash.CountType(Gold))
	assert.Equal(t, 1, pb.Discard.CountType(Copper))
	assert.Zero(t, pb.Deck.Len())
}

func TestArtisan(t *testing.T) {
	g, _ := newTestGame(t, []string{"Artisan"}, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Artisan", "Copper")

	require.NoError(t, p.PlayType(context.Background(), Artisan, Duchy, Copper))
	assert.Equal(t, []string{"Duchy"}, handNames(p))
	assert.Equal(t, "Copper", p.Deck.Peek().Name())
}

func TestWorkshopCostLimit(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGame(t, []string{"Workshop"}, newScripted(t, "A"), newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Workshop")

	assert.True(t, IsRulesViolation(p.PlayType(ctx, Workshop, Duchy)))
	require.NoError(t, p.PlayType(ctx, Workshop, Silver))
	assert.Equal(t, 1, p.Discard.CountType(Silver))
}

func TestChancellor(t *testing.T) {
	a := newScripted(t, "A").AddYesNo(true)
	g, _ := newTestGame(t, []string{"Chancellor"}, a, newScripted(t, "B"))
	p := startTurn(g)
	setHand(t, g, p, "Chancellor")
	require.Equal(t, 5, p.Deck.Len())

	require.NoError(t, p.PlayType(context.Background(), Chancellor))
	assert.Equal(t, 2, p.Money)
	assert.Zero(t, p.Deck.Len())
	assert.Equal(t, 5, p.Discard.Len())
}
