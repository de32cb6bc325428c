package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/deckbuilder/internal/game"
)

func newMatch(t *testing.T, kingdom []string, strategies ...game.Strategy) *game.Game {
	t.Helper()
	g, err := game.NewGame(game.Config{
		Strategies:  strategies,
		Kingdom:     kingdom,
		FirstPlayer: 1,
		Seed:        11,
		ZapLogger:   zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return g
}

func typesOf(cards []*game.CardInstance) []*game.CardType {
	out := make([]*game.CardType, len(cards))
	for i, c := range cards {
		out[i] = c.Type
	}
	return out
}

func TestBasicDiscardsJunkFirst(t *testing.T) {
	g := newMatch(t, nil, NewBigMoney(), NewBigMoney())
	p := g.Players[1]
	hand := p.Hand.Cards()
	estates := p.Hand.CountType(game.Estate)

	got, err := Basic{}.ChooseCards(context.Background(), g, p, game.Choice{
		Kind:  game.ChoiceMilitiaDiscard,
		Cards: hand,
		Min:   len(hand) - 3,
		Max:   len(hand) - 3,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	want := min(estates, 2)
	n := 0
	for _, c := range got {
		if c.Type == game.Estate {
			n++
		}
	}
	assert.Equal(t, want, n)
}

func TestBasicChapelTrashesOnlyJunk(t *testing.T) {
	g := newMatch(t, nil, NewBigMoney(), NewBigMoney())
	p := g.Players[0]
	got, err := Basic{}.ChooseCards(context.Background(), g, p, game.Choice{
		Kind:  game.ChoiceChapelTrash,
		Cards: p.Hand.Cards(),
		Max:   4,
	})
	require.NoError(t, err)
	assert.Len(t, got, min(p.Hand.CountType(game.Estate), 4))
	for _, typ := range typesOf(got) {
		assert.Same(t, game.Estate, typ)
	}
}

func TestBasicFillsMandatoryPicks(t *testing.T) {
	g := newMatch(t, nil, NewBigMoney(), NewBigMoney())
	p := g.Players[0]
	hand := p.Hand.Cards()

	got, err := Basic{}.ChooseCards(context.Background(), g, p, game.Choice{
		Kind:  game.ChoiceTradingPostTrash,
		Cards: hand,
		Min:   2,
		Max:   2,
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = Basic{}.ChooseCards(context.Background(), g, p, game.Choice{
		Kind:  game.ChoiceMillDiscard,
		Cards: hand[:1],
		Max:   2,
	})
	require.NoError(t, err)
	assert.Empty(t, got, "one card is not worth discarding to a Mill")
}

func TestBasicChooseTypes(t *testing.T) {
	ctx := context.Background()
	g := newMatch(t, nil, NewBigMoney(), NewBigMoney())
	p := g.Players[0]

	tests := []struct {
		name string
		ch   game.Choice
		want []*game.CardType
	}{
		{"gain the most expensive", game.Choice{Kind: game.ChoiceWorkshopGain, Types: []*game.CardType{game.Silver, game.Curse, game.Estate}, Min: 1}, []*game.CardType{game.Silver}},
		{"gold over duchy", game.Choice{Kind: game.ChoiceRemodelGain, Types: []*game.CardType{game.Duchy, game.Gold}, Min: 1}, []*game.CardType{game.Gold}},
		{"optional curse is refused", game.Choice{Kind: game.ChoiceWorkshopGain, Types: []*game.CardType{game.Curse}}, nil},
		{"swindler hands out curses", game.Choice{Kind: game.ChoiceSwindlerGain, Types: []*game.CardType{game.Estate, game.Curse}, Min: 1}, []*game.CardType{game.Curse}},
		{"saboteur prefers gold", game.Choice{Kind: game.ChoiceSaboteurGain, Types: []*game.CardType{game.Estate, game.Silver, game.Gold}}, []*game.CardType{game.Gold}},
		{"saboteur passes on estates", game.Choice{Kind: game.ChoiceSaboteurGain, Types: []*game.CardType{game.Estate}}, nil},
		{"nothing to choose", game.Choice{Kind: game.ChoiceWorkshopGain, Min: 1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Basic{}.ChooseTypes(ctx, g, p, tt.ch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBasicWishingWellNamesMostCommon(t *testing.T) {
	g := newMatch(t, nil, NewBigMoney(), NewBigMoney())
	p := g.Players[0]
	want := game.Copper
	if p.Deck.CountType(game.Estate) > p.Deck.CountType(game.Copper) {
		want = game.Estate
	}
	got, err := Basic{}.ChooseTypes(context.Background(), g, p, game.Choice{
		Kind:  game.ChoiceWishingWellGuess,
		Types: g.Supply.Types(),
		Min:   1,
		Max:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, []*game.CardType{want}, got)
}

func TestBasicChooseOptions(t *testing.T) {
	ctx := context.Background()
	g := newMatch(t, nil, NewBigMoney(), NewBigMoney())
	p := g.Players[0]

	got, err := Basic{}.ChooseOptions(ctx, g, p, game.Choice{Kind: game.ChoicePawnBonus, Options: make([]string, 4), Min: 2, Max: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, got)

	got, err = Basic{}.ChooseOptions(ctx, g, p, game.Choice{Kind: game.ChoiceCourtierBonus, Options: make([]string, 4), Min: 2, Max: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, got)

	got, err = Basic{}.ChooseOptions(ctx, g, p, game.Choice{Kind: game.ChoiceSecretPassagePlace, Options: make([]string, 6)})
	require.NoError(t, err)
	assert.Equal(t, []int{5}, got)

	got, err = Basic{}.ChooseOptions(ctx, g, p, game.Choice{Kind: game.ChoiceTorturerMode, Options: make([]string, 2)})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, got)

	got, err = NewGardener().ChooseOptions(ctx, g, p, game.Choice{Kind: game.ChoicePawnBonus, Options: make([]string, 4), Min: 2, Max: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, got)
}

func TestBasicSpyDiscardRule(t *testing.T) {
	ctx := context.Background()
	g := newMatch(t, nil, NewBigMoney(), NewBigMoney())
	me, them := g.Players[0], g.Players[1]
	estate := me.AllCards()[0]
	for _, c := range me.AllCards() {
		if c.Type == game.Estate {
			estate = c
		}
	}
	require.Same(t, game.Estate, estate.Type)

	mine, err := Basic{}.ChooseYesNo(ctx, g, me, game.Choice{Kind: game.ChoiceSpyDiscard, Cards: []*game.CardInstance{estate}, Other: me})
	require.NoError(t, err)
	assert.True(t, mine, "discard own junk")

	theirs, err := Basic{}.ChooseYesNo(ctx, g, me, game.Choice{Kind: game.ChoiceSpyDiscard, Cards: []*game.CardInstance{estate}, Other: them})
	require.NoError(t, err)
	assert.False(t, theirs, "leave junk on the victim's deck")

	moat, err := Basic{}.ChooseYesNo(ctx, g, me, game.Choice{Kind: game.ChoiceMoatReveal})
	require.NoError(t, err)
	assert.True(t, moat)
}

func TestBasicOrderIsIdentity(t *testing.T) {
	g := newMatch(t, nil, NewBigMoney(), NewBigMoney())
	p := g.Players[0]
	hand := p.Hand.Cards()
	got, err := Basic{}.ChooseOrder(context.Background(), g, p, game.Choice{Kind: game.ChoiceScoutOrder, Cards: hand})
	require.NoError(t, err)
	assert.Equal(t, hand, got)
}

func TestNewAndNames(t *testing.T) {
	assert.Equal(t, []string{"Attacker", "BigMoney", "Discarder", "Gardener", "Random"}, Names())

	s, err := New("bigmoney", 0)
	require.NoError(t, err)
	assert.Equal(t, "BigMoney", game.StrategyName(s))

	_, err = New("Dragon", 0)
	assert.ErrorContains(t, err, "Dragon")

	for seed := range int64(8) {
		s, err := New("Random", seed)
		require.NoError(t, err)
		assert.Contains(t, Names(), game.StrategyName(s))
		assert.NotEqual(t, RandomName, game.StrategyName(s))
	}
}

func TestBotsFinishMatches(t *testing.T) {
	tests := []struct {
		name    string
		bot     game.Strategy
		kingdom []string
	}{
		{"BigMoney", NewBigMoney(), nil},
		{"Discarder", NewDiscarder(), []string{"Chapel"}},
		{"Attacker", NewAttacker(), []string{"Witch", "Militia", "Bandit", "Thief", "Spy"}},
		{"Gardener", NewGardener(), []string{"Gardens", "Workshop", "Woodcutter", "Village", "Market"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newMatch(t, tt.kingdom, tt.bot, NewBigMoney())
			table, err := g.Run(context.Background())
			require.NoError(t, err)
			assert.True(t, g.Over())
			require.Len(t, table, 2)
			assert.NotEmpty(t, table.Winners())
			assert.Less(t, g.TurnNumber(), game.DefaultMaxTurns, "the match ends on piles, not the turn limit")
		})
	}
}

func TestGardenerBuysGardens(t *testing.T) {
	g := newMatch(t, []string{"Gardens", "Workshop", "Woodcutter", "Village", "Market"}, NewGardener(), NewGardener())
	_, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Positive(t, g.Supply.Picked(game.Gardens))
}
