package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/deckbuilder/internal/game"
	"github.com/peterkuimelis/deckbuilder/internal/log"
	"github.com/peterkuimelis/deckbuilder/internal/net"
	"github.com/peterkuimelis/deckbuilder/internal/strategy"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionPhase         DecisionType = "phase"
	DecisionChooseCards   DecisionType = "choose_cards"
	DecisionChooseTypes   DecisionType = "choose_types"
	DecisionChooseOptions DecisionType = "choose_options"
	DecisionChooseOrder   DecisionType = "choose_order"
	DecisionChooseYesNo   DecisionType = "choose_yes_no"
	DecisionGameOver      DecisionType = "game_over"
)

// PendingDecision is a decision the game engine is waiting for. Indices in
// Playable, Buyable, Candidates, Types and Options are 0-based.
type PendingDecision struct {
	Type       DecisionType     `json:"type"`
	Phase      string           `json:"phase,omitempty"`
	Kind       string           `json:"kind,omitempty"`
	Source     string           `json:"source,omitempty"`
	Prompt     string           `json:"prompt,omitempty"`
	Playable   []net.CardView   `json:"playable,omitempty"`
	Buyable    []net.SupplyView `json:"buyable,omitempty"`
	Candidates []net.CardView   `json:"candidates,omitempty"`
	Types      []net.SupplyView `json:"types,omitempty"`
	Options    []string         `json:"options,omitempty"`
	Min        int              `json:"min"`
	Max        int              `json:"max"`

	State  *net.StateView  `json:"-"`
	Error  string          `json:"-"`
	Result string          `json:"-"`
	Scores []net.ScoreView `json:"-"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	MatchID  string           `json:"match_id"`
	Events   []net.EventView  `json:"events"`
	State    *net.StateView   `json:"state,omitempty"`
	Pending  *PendingDecision `json:"pending,omitempty"`
	Rejected string           `json:"rejected,omitempty"`
	GameOver bool             `json:"game_over"`
	Error    string           `json:"error,omitempty"`
	Result   string           `json:"result,omitempty"`
	Scores   []net.ScoreView  `json:"scores,omitempty"`
}

// Options configures the matches a session plays.
type Options struct {
	Name        string   // the agent's player name
	Opponents   []string // bot strategy names, one per extra seat
	Kingdom     []string
	Sets        []string
	Seed        int64
	FirstPlayer int // 1-based; 0 picks at random
	MaxTurns    int
	Logger      *zap.Logger
}

// Session is one match with the agent in seat 1 and bots in the other seats.
type Session struct {
	ID string

	game   *game.Game
	ctrl   *MCPController
	cancel context.CancelFunc

	pendingCh chan *PendingDecision
	done      chan struct{}
	current   *PendingDecision

	mu     sync.Mutex
	events []net.EventView
	final  *PendingDecision
}

// NewSession deals a match and starts it in the background. The first
// decision is collected with waitForPending.
func NewSession(opts Options) (*Session, error) {
	zlog := opts.Logger
	if zlog == nil {
		zlog = zap.NewNop()
	}
	if len(opts.Opponents) == 0 {
		return nil, fmt.Errorf("need at least one opponent")
	}
	name := opts.Name
	if name == "" {
		name = "agent"
	}

	s := &Session{
		ID:        uuid.NewString(),
		pendingCh: make(chan *PendingDecision, 1),
		done:      make(chan struct{}),
	}
	s.ctrl = NewMCPController(s)

	strategies := []game.Strategy{s.ctrl}
	names := []string{name}
	for i, bot := range opts.Opponents {
		st, err := strategy.New(bot, opts.Seed+int64(i))
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, st)
		names = append(names, fmt.Sprintf("%s-%d", game.StrategyName(st), i+2))
	}

	zlog = zlog.With(zap.String("session", s.ID))
	g, err := game.NewGame(game.Config{
		Strategies:  strategies,
		Names:       names,
		Kingdom:     opts.Kingdom,
		Sets:        opts.Sets,
		Seed:        opts.Seed,
		FirstPlayer: opts.FirstPlayer,
		MaxTurns:    opts.MaxTurns,
		Logger:      log.NewMemoryLogger(),
		ZapLogger:   zlog,
	})
	if err != nil {
		return nil, err
	}
	s.game = g

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	agent := g.Players[0]

	go func() {
		defer close(s.done)
		final := &PendingDecision{Type: DecisionGameOver}
		table, err := g.Run(ctx)
		if err != nil {
			zlog.Warn("match aborted", zap.Error(err))
			final.Error = err.Error()
		} else {
			final.Result = table.String()
			final.Scores = net.ScoreViews(table)
		}
		final.State = net.BuildStateView(g, agent)

		s.mu.Lock()
		s.final = final
		s.mu.Unlock()
	}()

	return s, nil
}

// Close aborts the match if it is still running and waits for it to stop.
func (s *Session) Close() {
	s.cancel()
	<-s.done
}

// Over reports whether the match has finished.
func (s *Session) Over() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *Session) appendEvent(ev net.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *Session) drainEvents() []net.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []net.EventView{}
	}
	return events
}

// submit hands resp to the waiting controller and returns the next decision.
func (s *Session) submit(ctx context.Context, resp any) (*ToolResponse, error) {
	select {
	case s.ctrl.responseCh <- resp:
	case <-s.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.waitForPending(ctx)
}

// waitForPending blocks until the engine asks the agent something or the
// match ends, then builds a ToolResponse with the accumulated events.
func (s *Session) waitForPending(ctx context.Context) (*ToolResponse, error) {
	select {
	case d := <-s.pendingCh:
		s.current = d
	case <-s.done:
		s.mu.Lock()
		s.current = s.final
		s.mu.Unlock()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.snapshot(), nil
}

// snapshot describes the current decision without waiting. The engine is
// blocked while a decision is pending, so its state view is stable.
func (s *Session) snapshot() *ToolResponse {
	resp := &ToolResponse{
		MatchID: s.ID,
		Events:  s.drainEvents(),
	}
	d := s.current
	if d == nil {
		return resp
	}
	resp.State = d.State
	if d.Type == DecisionGameOver {
		resp.GameOver = true
		resp.Result = d.Result
		resp.Scores = d.Scores
		resp.Error = d.Error
		return resp
	}
	resp.Pending = d
	resp.Rejected = d.Error
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
