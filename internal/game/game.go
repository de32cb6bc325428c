package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/deckbuilder/internal/log"
)

// Config holds configuration for creating a new match.
type Config struct {
	Strategies  []Strategy // one per player, in seating order
	Names       []string   // optional player names
	Kingdom     []string   // kingdom card names; more than KingdomSize makes them a candidate pool
	Sets        []string   // editions to sample the rest of the kingdom from
	FirstPlayer int        // 1-based seat of the first player (0 for random)
	Seed        int64      // RNG seed (0 for random)
	MaxTurns    int        // stop after this many turns (0 = DefaultMaxTurns)
	Registry    *Registry  // card catalog (nil = DefaultRegistry)
	Logger      log.EventLogger
	ZapLogger   *zap.Logger
}

// Game is one match: players, supply, trash and the turn state machine.
type Game struct {
	ID       string
	Players  []*Player
	Supply   *Supply
	Trash    *OrderedZone
	Registry *Registry
	Phase    Phase
	Logger   log.EventLogger

	zlog         *zap.Logger
	rng          *rand.Rand
	seed         int64
	kingdom      []*CardType
	active       int
	turn         int
	costModifier int
	maxTurns     int
	ctx          context.Context
	over         bool
	table        ScoreTable
}

// NewGame stocks the supply, deals starting decks and draws opening hands.
func NewGame(cfg Config) (*Game, error) {
	n := len(cfg.Strategies)
	if n < MinPlayers || n > MaxPlayers {
		return nil, fmt.Errorf("need %d to %d players, got %d", MinPlayers, MaxPlayers, n)
	}
	if len(cfg.Names) > 0 && len(cfg.Names) != n {
		return nil, fmt.Errorf("got %d names for %d players", len(cfg.Names), n)
	}
	if cfg.FirstPlayer < 0 || cfg.FirstPlayer > n {
		return nil, fmt.Errorf("first player %d out of range 1..%d", cfg.FirstPlayer, n)
	}

	reg := cfg.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	for _, t := range BasicCards() {
		if !reg.Contains(t) {
			return nil, &UnknownCardError{Name: t.Name}
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	zlog := cfg.ZapLogger
	if zlog == nil {
		zlog = zap.NewNop()
	}
	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = DefaultMaxTurns
	}

	g := &Game{
		ID:       uuid.NewString(),
		Supply:   NewSupply(),
		Trash:    NewOrderedZone(ZoneTrash, nil),
		Registry: reg,
		Phase:    PhaseSetup,
		Logger:   logger,
		zlog:     zlog,
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		maxTurns: maxTurns,
		ctx:      context.Background(),
	}
	g.zlog = g.zlog.With(zap.String("match", g.ID))

	kingdom, err := g.selectKingdom(cfg.Kingdom, cfg.Sets)
	if err != nil {
		return nil, err
	}
	g.kingdom = kingdom
	stockSupply(g.Supply, kingdom, n)

	for i, s := range cfg.Strategies {
		name := fmt.Sprintf("#%d (%s)", i+1, StrategyName(s))
		if len(cfg.Names) > 0 && cfg.Names[i] != "" {
			name = cfg.Names[i]
		}
		g.Players = append(g.Players, newPlayer(g, i+1, name, s))
	}

	if cfg.FirstPlayer == 0 {
		g.active = g.rng.Intn(n)
	} else {
		g.active = cfg.FirstPlayer - 1
	}

	for _, p := range g.Players {
		if err := g.deal(p); err != nil {
			return nil, err
		}
	}

	g.zlog.Info("match created",
		zap.Int64("seed", seed),
		zap.Int("players", n),
		zap.Strings("kingdom", typeNames(kingdom)),
		zap.String("first", g.Active().Name),
	)
	return g, nil
}

// StrategyName returns a display name for s.
func StrategyName(s Strategy) string {
	if named, ok := s.(interface{ Name() string }); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", s)
}

// selectKingdom resolves the configured names and fills the kingdom up to
// KingdomSize by sampling the candidate pool with the match RNG.
func (g *Game) selectKingdom(names, sets []string) ([]*CardType, error) {
	chosen, err := g.Registry.LookupAll(names)
	if err != nil {
		return nil, err
	}
	for _, t := range chosen {
		if t.IsBasic() {
			return nil, fmt.Errorf("%s is a basic card and cannot be a kingdom pile", t)
		}
	}

	var pool []*CardType
	if len(chosen) > KingdomSize {
		pool, chosen = dedupTypes(chosen), nil
	} else {
		if len(sets) == 0 {
			sets = DefaultSets
		}
		pool = g.Registry.InSets(sets)
	}

	kingdom := dedupTypes(chosen)
	var remaining []*CardType
	for _, t := range pool {
		if !containsType(kingdom, t) {
			remaining = append(remaining, t)
		}
	}
	for len(kingdom) < KingdomSize && len(remaining) > 0 {
		i := g.rng.Intn(len(remaining))
		kingdom = append(kingdom, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return kingdom, nil
}

func dedupTypes(types []*CardType) []*CardType {
	var out []*CardType
	for _, t := range types {
		if !containsType(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// deal builds the starting deck from the supply, shuffles it and draws a hand.
func (g *Game) deal(p *Player) error {
	for _, start := range []struct {
		t *CardType
		n int
	}{{Copper, StartingCoppers}, {Estate, StartingEstates}} {
		for i := 0; i < start.n; i++ {
			c, err := g.Supply.Take(start.t)
			if err != nil {
				return fmt.Errorf("deal %s: %w", p.Name, err)
			}
			p.Deck.Put(c)
		}
	}
	p.Deck.Shuffle(g.rng)
	p.Draw(HandSize)
	return nil
}

// --- Accessors ---

// Active returns the player whose turn it is.
func (g *Game) Active() *Player {
	return g.Players[g.active]
}

// TurnNumber returns the number of turns started so far.
func (g *Game) TurnNumber() int {
	return g.turn
}

func (g *Game) Seed() int64 { return g.seed }

// Rand returns the match RNG. Every random decision must draw from it.
func (g *Game) Rand() *rand.Rand { return g.rng }

// Kingdom returns the kingdom card types of the match.
func (g *Game) Kingdom() []*CardType {
	out := make([]*CardType, len(g.kingdom))
	copy(out, g.kingdom)
	return out
}

// Over reports whether the match has ended.
func (g *Game) Over() bool { return g.over }

// Opponents returns the other players in seating order, starting at the
// player to p's left.
func (g *Game) Opponents(p *Player) []*Player {
	n := len(g.Players)
	out := make([]*Player, 0, n-1)
	for i := 1; i < n; i++ {
		out = append(out, g.Players[(p.Index()+i)%n])
	}
	return out
}

// LeftOf returns the player seated to p's left.
func (g *Game) LeftOf(p *Player) *Player {
	return g.Players[(p.Index()+1)%len(g.Players)]
}

// CurrentCost returns the cost of t after this turn's modifier, never below zero.
func (g *Game) CurrentCost(t *CardType) int {
	cost := t.Cost + g.costModifier
	if cost < 0 {
		return 0
	}
	return cost
}

// CostModifier returns this turn's cost adjustment.
func (g *Game) CostModifier() int { return g.costModifier }

// ModifyCost adjusts every cost for the rest of the turn.
func (g *Game) ModifyCost(source *CardType, delta int) {
	g.costModifier += delta
	g.log(log.NewCostChangeEvent(g.turn, g.Phase.String(), g.Active().Index(), source.Name, delta, g.costModifier))
}

// AllCards returns every card instance in the match: supply, trash and all
// player zones.
func (g *Game) AllCards() []*CardInstance {
	out := g.Supply.instances()
	out = append(out, g.Trash.Cards()...)
	for _, p := range g.Players {
		out = append(out, p.AllCards()...)
	}
	return out
}

// --- Turn state machine ---

func (g *Game) setPhase(phase Phase) {
	g.Phase = phase
	g.log(log.NewPhaseChangeEvent(g.turn, g.active, phase.String()))
}

// checkTurn fails unless p is the active player and the match is in phase.
func (g *Game) checkTurn(p *Player, phase Phase) error {
	if g.over {
		return violationf("the game is over")
	}
	if g.Active() != p {
		return violationf("it is not %s's turn", p.Name)
	}
	if phase != PhaseAction && phase != PhaseBuy {
		return violationf("nothing can be played during %s", g.Phase)
	}
	if g.Phase != phase {
		return violationf("not allowed during the %s phase", g.Phase)
	}
	return nil
}

// Turn runs the active player's turn and advances to the next player. It
// returns true once the game is over.
func (g *Game) Turn(ctx context.Context) (bool, error) {
	if g.over {
		return true, nil
	}
	g.ctx = ctx
	g.costModifier = 0
	g.turn++
	p := g.Active()
	g.log(log.NewTurnEvent(g.turn, p.Index(), p.Name))
	for _, o := range g.Players {
		o.Strategy.OnNewActivePlayer(g, p)
	}

	if err := p.doTurn(ctx); err != nil {
		return false, err
	}

	if reason, over := g.gameOverReason(); over {
		g.finish(reason)
		return true, nil
	}
	g.active = (g.active + 1) % len(g.Players)
	return false, nil
}

// GameOver reports whether MaxEmptyPiles non-curse piles are empty or the
// Province pile is empty.
func (g *Game) GameOver() bool {
	_, over := g.gameOverReason()
	return over
}

func (g *Game) gameOverReason() (string, bool) {
	if g.Supply.HasPile(Province) && g.Supply.Count(Province) == 0 {
		return "no Provinces left", true
	}
	if n := g.Supply.EmptyPiles(false); n >= MaxEmptyPiles {
		return fmt.Sprintf("%d supply piles empty", n), true
	}
	return "", false
}

func (g *Game) finish(reason string) {
	g.over = true
	g.Phase = PhaseOver
	g.log(log.NewGameOverEvent(g.turn, reason))
}

// Run plays turns until the game is over and returns the final ranking.
func (g *Game) Run(ctx context.Context) (ScoreTable, error) {
	g.ctx = ctx
	for !g.over {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if g.turn >= g.maxTurns {
			g.finish(fmt.Sprintf("turn limit reached (%d turns)", g.maxTurns))
			break
		}
		if _, err := g.Turn(ctx); err != nil {
			return nil, err
		}
	}

	table := g.ScoreTable()
	for _, p := range g.Players {
		p.Strategy.OnGameOver(g, table)
	}
	g.zlog.Info("match finished",
		zap.Int("turns", g.turn),
		zap.Strings("winners", table.WinnerNames()),
	)
	return table, nil
}

// log emits a game event through the logger and notifies every strategy.
func (g *Game) log(event log.GameEvent) {
	g.Logger.Log(event)
	// Notification errors are ignored
	for _, p := range g.Players {
		_ = p.Strategy.Notify(g.ctx, event)
	}
}
