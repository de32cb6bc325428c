package game

const (
	MinPlayers = 2
	MaxPlayers = 6

	HandSize        = 5
	StartingCoppers = 7
	StartingEstates = 3

	KingdomSize     = 10 // kingdom piles per match
	KingdomPileSize = 10

	CopperSupply      = 46 // left after dealing starting decks
	SilverSupply      = 40
	GoldSupply        = 30
	CursesPerOpponent = 10

	MaxEmptyPiles = 3

	DefaultMaxTurns = 1000 // safety limit
)

// DefaultSets is the edition selection used when a match names no sets.
var DefaultSets = []string{"Base2E"}

// VictoryPileSize returns the size of the Estate, Duchy and kingdom Victory
// piles for n players. Three and four players share the same count.
func VictoryPileSize(n int) int {
	if n <= 2 {
		return 8
	}
	return 12
}

// ProvincePileSize returns the size of the Province pile for n players.
// Larger tables get extra Provinces so the game lasts long enough.
func ProvincePileSize(n int) int {
	switch {
	case n >= 6:
		return 18
	case n == 5:
		return 15
	}
	return VictoryPileSize(n)
}

// kingdomPileSize returns the pile size of a kingdom card for n players.
// Kingdom cards that are also Victory cards use the victory pile size.
func kingdomPileSize(t *CardType, n int) int {
	if t.Is(CapVictory) {
		return VictoryPileSize(n)
	}
	return KingdomPileSize
}

// stockSupply creates the kingdom piles followed by the basic piles. Copper
// and Estate piles include the cards dealt into starting decks.
func stockSupply(s *Supply, kingdom []*CardType, n int) {
	for _, t := range kingdom {
		s.CreatePile(t, kingdomPileSize(t, n))
	}
	victory := VictoryPileSize(n)
	s.CreatePile(Curse, CursesPerOpponent*(n-1))
	s.CreatePile(Copper, CopperSupply+StartingCoppers*n)
	s.CreatePile(Silver, SilverSupply)
	s.CreatePile(Gold, GoldSupply)
	s.CreatePile(Estate, victory+StartingEstates*n)
	s.CreatePile(Duchy, victory)
	s.CreatePile(Province, ProvincePileSize(n))
}
