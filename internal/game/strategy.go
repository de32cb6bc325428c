package game

import (
	"context"

	"github.com/peterkuimelis/deckbuilder/internal/log"
)

// Strategy is the decision layer of one player. Bots, network players and
// AI agents all implement it.
type Strategy interface {
	// ActionPhase is called once per turn. The strategy plays actions through
	// p.Play and returns to end the phase.
	ActionPhase(ctx context.Context, g *Game, p *Player) error

	// BuyPhase is called once per turn after the action phase.
	BuyPhase(ctx context.Context, g *Game, p *Player) error

	Decider
	Observer
}

// Decider resolves the choice points card effects raise. p is the deciding
// player, which is not always the active one.
type Decider interface {
	ChooseCards(ctx context.Context, g *Game, p *Player, ch Choice) ([]*CardInstance, error)
	ChooseTypes(ctx context.Context, g *Game, p *Player, ch Choice) ([]*CardType, error)
	// ChooseOptions returns indices into ch.Options.
	ChooseOptions(ctx context.Context, g *Game, p *Player, ch Choice) ([]int, error)
	// ChooseOrder returns a permutation of ch.Cards. Cards are placed in the
	// returned order, so the last one ends on top.
	ChooseOrder(ctx context.Context, g *Game, p *Player, ch Choice) ([]*CardInstance, error)
	ChooseYesNo(ctx context.Context, g *Game, p *Player, ch Choice) (bool, error)
}

// Observer receives notifications. Implementations must not mutate the game.
type Observer interface {
	OnNewActivePlayer(g *Game, active *Player)
	OnPlay(g *Game, p *Player, c *CardInstance, targets []*CardType)
	OnBuy(g *Game, p *Player, t *CardType)
	OnGameOver(g *Game, table ScoreTable)
	Notify(ctx context.Context, event log.GameEvent) error
}

// BaseStrategy provides no-op notifications. Embed it to implement only the
// decisions a strategy cares about.
type BaseStrategy struct{}

func (BaseStrategy) OnNewActivePlayer(*Game, *Player) {}
func (BaseStrategy) OnPlay(*Game, *Player, *CardInstance, []*CardType) {}
func (BaseStrategy) OnBuy(*Game, *Player, *CardType) {}
func (BaseStrategy) OnGameOver(*Game, ScoreTable) {}
func (BaseStrategy) Notify(context.Context, log.GameEvent) error { return nil }

// Unbounded as Choice.Max means any number of candidates may be picked.
const Unbounded = -1

// ChoiceKind names the decision being asked for.
type ChoiceKind string

const (
	// Base
	ChoiceCellarDiscard     ChoiceKind = "cellar-discard"
	ChoiceChapelTrash       ChoiceKind = "chapel-trash"
	ChoiceMoatReveal        ChoiceKind = "moat-reveal"
	ChoiceMoneylenderTrash  ChoiceKind = "moneylender-trash"
	ChoiceWorkshopGain      ChoiceKind = "workshop-gain"
	ChoiceBureaucratTopDeck ChoiceKind = "bureaucrat-topdeck"
	ChoiceMilitiaDiscard    ChoiceKind = "militia-discard"
	ChoiceRemodelTrash      ChoiceKind = "remodel-trash"
	ChoiceRemodelGain       ChoiceKind = "remodel-gain"
	ChoiceThroneRoomAction  ChoiceKind = "throneroom-action"
	ChoiceLibrarySetAside   ChoiceKind = "library-setaside"
	ChoiceMineTrash         ChoiceKind = "mine-trash"
	ChoiceMineGain          ChoiceKind = "mine-gain"
	ChoiceFeastGain         ChoiceKind = "feast-gain"
	ChoiceChancellorDiscard ChoiceKind = "chancellor-discard"
	ChoiceSpyDiscard        ChoiceKind = "spy-discard"
	ChoiceThiefTrash        ChoiceKind = "thief-trash"
	ChoiceThiefGain         ChoiceKind = "thief-gain"
	ChoiceVassalPlay        ChoiceKind = "vassal-play"
	ChoiceHarbingerTopDeck  ChoiceKind = "harbinger-topdeck"
	ChoicePoacherDiscard    ChoiceKind = "poacher-discard"
	ChoiceSentryTrash       ChoiceKind = "sentry-trash"
	ChoiceSentryDiscard     ChoiceKind = "sentry-discard"
	ChoiceSentryOrder       ChoiceKind = "sentry-order"
	ChoiceBanditTrash       ChoiceKind = "bandit-trash"
	ChoiceArtisanGain       ChoiceKind = "artisan-gain"
	ChoiceArtisanTopDeck    ChoiceKind = "artisan-topdeck"

	// Intrigue
	ChoiceCourtyardTopDeck     ChoiceKind = "courtyard-topdeck"
	ChoicePawnBonus            ChoiceKind = "pawn-bonus"
	ChoiceMasqueradePass       ChoiceKind = "masquerade-pass"
	ChoiceMasqueradeTrash      ChoiceKind = "masquerade-trash"
	ChoiceStewardMode          ChoiceKind = "steward-mode"
	ChoiceStewardTrash         ChoiceKind = "steward-trash"
	ChoiceSwindlerGain         ChoiceKind = "swindler-gain"
	ChoiceWishingWellGuess     ChoiceKind = "wishingwell-guess"
	ChoiceBaronDiscard         ChoiceKind = "baron-discard"
	ChoiceIronworksGain        ChoiceKind = "ironworks-gain"
	ChoiceMiningVillageTrash   ChoiceKind = "miningvillage-trash"
	ChoiceMinionMode           ChoiceKind = "minion-mode"
	ChoiceTorturerMode         ChoiceKind = "torturer-mode"
	ChoiceTorturerDiscard      ChoiceKind = "torturer-discard"
	ChoiceTradingPostTrash     ChoiceKind = "tradingpost-trash"
	ChoiceUpgradeTrash         ChoiceKind = "upgrade-trash"
	ChoiceUpgradeGain          ChoiceKind = "upgrade-gain"
	ChoiceNoblesMode           ChoiceKind = "nobles-mode"
	ChoiceSecretChamberDiscard ChoiceKind = "secretchamber-discard"
	ChoiceSecretChamberReveal  ChoiceKind = "secretchamber-reveal"
	ChoiceSecretChamberTopDeck ChoiceKind = "secretchamber-topdeck"
	ChoiceScoutOrder           ChoiceKind = "scout-order"
	ChoiceSaboteurGain         ChoiceKind = "saboteur-gain"
	ChoiceCourtierReveal       ChoiceKind = "courtier-reveal"
	ChoiceCourtierBonus        ChoiceKind = "courtier-bonus"
	ChoiceLurkerMode           ChoiceKind = "lurker-mode"
	ChoiceLurkerTrash          ChoiceKind = "lurker-trash"
	ChoiceLurkerGain           ChoiceKind = "lurker-gain"
	ChoiceMillDiscard          ChoiceKind = "mill-discard"
	ChoiceReplaceTrash         ChoiceKind = "replace-trash"
	ChoiceReplaceGain          ChoiceKind = "replace-gain"
	ChoiceSecretPassageCard    ChoiceKind = "secretpassage-card"
	ChoiceSecretPassagePlace   ChoiceKind = "secretpassage-place"
	ChoiceDiplomatReveal       ChoiceKind = "diplomat-reveal"
	ChoiceDiplomatDiscard      ChoiceKind = "diplomat-discard"
	ChoicePatrolOrder          ChoiceKind = "patrol-order"
)

// Choice describes one decision. Only the candidate field matching the
// Decider method is set.
type Choice struct {
	Kind   ChoiceKind
	Source *CardType // card whose effect raised the decision
	Prompt string

	Cards   []*CardInstance // ChooseCards, ChooseOrder
	Types   []*CardType     // ChooseTypes
	Options []string        // ChooseOptions

	Min int
	Max int // Unbounded for no upper limit

	// Other is the other player involved, e.g. the victim of a Spy or the
	// attacker of a Bandit.
	Other *Player
}

// Bounds returns the effective [min, max] pick counts for n candidates.
func (ch Choice) Bounds(n int) (int, int) {
	lo, hi := ch.Min, ch.Max
	if hi == Unbounded || hi > n {
		hi = n
	}
	if lo > hi {
		lo = hi
	}
	if lo < 0 {
		lo = 0
	}
	return lo, hi
}
