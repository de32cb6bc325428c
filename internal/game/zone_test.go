package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loose(types ...*CardType) []*CardInstance {
	out := make([]*CardInstance, len(types))
	for i, t := range types {
		out[i] = &CardInstance{ID: i + 1, Type: t}
	}
	return out
}

func TestOrderedZonePutAndPick(t *testing.T) {
	z := NewOrderedZone(ZoneDeck, nil)
	cards := loose(Copper, Silver, Gold)
	z.Put(cards...)

	assert.Equal(t, 3, z.Len())
	assert.Same(t, cards[2], z.Peek(), "the last card put is on top")
	for _, c := range cards {
		assert.True(t, c.In(z))
	}

	top, err := z.Pick()
	require.NoError(t, err)
	assert.Same(t, cards[2], top)
	assert.Nil(t, top.Zone(), "a picked card is in transit")

	_, err = z.PickCard(top)
	assert.True(t, IsRulesViolation(err))

	z.MixInto(NewOrderedZone(ZoneDiscard, nil))
	_, err = z.Pick()
	assert.True(t, IsRulesViolation(err), "picking from an empty zone")
	assert.Nil(t, z.Peek())
}

func TestOrderedZonePickTypeIsPositional(t *testing.T) {
	z := NewOrderedZone(ZoneHand, nil)
	cards := loose(Copper, Silver, Copper)
	z.Put(cards...)

	c, err := z.PickType(Copper)
	require.NoError(t, err)
	assert.Same(t, cards[0], c)
	assert.Same(t, cards[2], z.Find(Copper))

	_, err = z.PickType(Gold)
	assert.True(t, IsRulesViolation(err))
}

func TestOrderedZoneRejectsHeldCards(t *testing.T) {
	a := NewOrderedZone(ZoneHand, nil)
	b := NewOrderedZone(ZoneDiscard, nil)
	cards := loose(Copper)
	a.Put(cards...)
	assert.Panics(t, func() { b.Put(cards[0]) })
	assert.Panics(t, func() { b.Insert(cards[0], 0) })
}

func TestOrderedZoneInsert(t *testing.T) {
	z := NewOrderedZone(ZoneDeck, nil)
	cards := loose(Copper, Silver, Gold, Estate, Duchy)
	z.Put(cards[0], cards[1])

	z.Insert(cards[2], 0)
	z.Insert(cards[3], z.Len())
	z.Insert(cards[4], 99)
	assert.Equal(t, []string{"Gold", "Copper", "Silver", "Estate", "Duchy"}, cardNames(z.Cards()))
	assert.True(t, cards[4].In(z))
}

func TestOrderedZoneMixInto(t *testing.T) {
	src := NewOrderedZone(ZoneHand, nil)
	dst := NewOrderedZone(ZoneDiscard, nil)
	src.Put(loose(Copper, Silver, Gold)...)

	src.MixInto(src)
	assert.Equal(t, 3, src.Len(), "mixing into itself is a no-op")

	src.MixInto(dst)
	assert.Zero(t, src.Len())
	assert.Equal(t, []string{"Gold", "Silver", "Copper"}, cardNames(dst.Cards()))
	for _, c := range dst.Cards() {
		assert.True(t, c.In(dst))
	}
}

func TestOrderedZoneShuffleKeepsCards(t *testing.T) {
	z := NewOrderedZone(ZoneDeck, nil)
	cards := loose(Copper, Copper, Silver, Gold, Estate, Duchy, Province, Curse)
	z.Put(cards...)
	z.Shuffle(rand.New(rand.NewSource(1)))
	assert.ElementsMatch(t, cards, z.Cards())
}

func TestOrderedZoneCounts(t *testing.T) {
	z := NewOrderedZone(ZoneHand, nil)
	z.Put(loose(Copper, Copper, Harem, Estate, Village)...)
	assert.Equal(t, 2, z.CountType(Copper))
	assert.Equal(t, 3, z.CountCaps(CapTreasure))
	assert.Equal(t, 2, z.CountCaps(CapVictory))
	assert.Equal(t, 1, z.CountCaps(CapTreasure|CapVictory))
	assert.Len(t, z.Filter(isAction), 1)
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "Action-Attack", Witch.Caps.String())
	assert.Equal(t, "Treasure-Victory", Harem.Caps.String())
	assert.Equal(t, "None", Capability(0).String())
	assert.Equal(t, 2, Moat.Caps.Count())
	assert.False(t, Capability(0).Has(0))
}
