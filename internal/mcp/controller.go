package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/peterkuimelis/deckbuilder/internal/game"
	"github.com/peterkuimelis/deckbuilder/internal/log"
	"github.com/peterkuimelis/deckbuilder/internal/net"
)

// MCPController implements game.Strategy by publishing every decision to the
// session's pending channel and blocking on a response channel.
type MCPController struct {
	game.BaseStrategy

	session    *Session
	responseCh chan any
}

// NewMCPController creates a controller bound to session.
func NewMCPController(session *Session) *MCPController {
	return &MCPController{
		session:    session,
		responseCh: make(chan any),
	}
}

func (c *MCPController) Name() string { return "mcp" }

// PhaseResponse is a move during the action or buy phase.
type PhaseResponse struct {
	Move    string // one of the net.Msg* move types
	Index   int
	Targets []string
	Card    string
}

type CardsResponse struct {
	Indices []int
}

type YesNoResponse struct {
	Answer bool
}

// await publishes d and waits for the answer.
func (c *MCPController) await(ctx context.Context, d *PendingDecision) (any, error) {
	select {
	case c.session.pendingCh <- d:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-c.responseCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *MCPController) ActionPhase(ctx context.Context, g *game.Game, p *game.Player) error {
	return c.phase(ctx, g, p)
}

func (c *MCPController) BuyPhase(ctx context.Context, g *game.Game, p *game.Player) error {
	return c.phase(ctx, g, p)
}

// phase publishes phase decisions until the agent ends the phase. A rejected
// move is reported with the next decision.
func (c *MCPController) phase(ctx context.Context, g *game.Game, p *game.Player) error {
	var rejected string
	for {
		cards := net.Playable(g, p)
		resp, err := c.await(ctx, &PendingDecision{
			Type:     DecisionPhase,
			Phase:    g.Phase.String(),
			State:    net.BuildStateView(g, p),
			Playable: net.CardViews(g, cards),
			Buyable:  net.SupplyViews(g, net.Buyable(g, p)),
			Error:    rejected,
		})
		if err != nil {
			return err
		}
		pr, ok := resp.(PhaseResponse)
		if !ok {
			return fmt.Errorf("unexpected response %T to a phase decision", resp)
		}

		var moveErr error
		switch pr.Move {
		case net.MsgEnd:
			return nil
		case net.MsgPlay:
			if pr.Index < 0 || pr.Index >= len(cards) {
				moveErr = fmt.Errorf("%w: no playable card %d", game.ErrRulesViolation, pr.Index)
				break
			}
			var targets []*game.CardType
			targets, moveErr = g.Registry.LookupAll(pr.Targets)
			if moveErr == nil {
				moveErr = p.Play(ctx, cards[pr.Index], targets...)
			}
		case net.MsgPlayAll:
			moveErr = p.PlayAllTreasures(ctx)
		case net.MsgBuy:
			moveErr = p.BuyNamed(pr.Card)
		default:
			moveErr = fmt.Errorf("%w: unexpected move %q", game.ErrRulesViolation, pr.Move)
		}
		if errors.Is(moveErr, game.ErrUnknownCard) {
			moveErr = fmt.Errorf("%w: %v", game.ErrRulesViolation, moveErr)
		}
		if moveErr != nil && !game.IsRulesViolation(moveErr) {
			return moveErr
		}
		rejected = ""
		if moveErr != nil {
			rejected = moveErr.Error()
		}
	}
}

// choice fills the fields every choose_* decision shares.
func choice(g *game.Game, p *game.Player, typ DecisionType, ch game.Choice, n int) *PendingDecision {
	lo, hi := ch.Bounds(n)
	d := &PendingDecision{
		Type:   typ,
		Kind:   string(ch.Kind),
		Prompt: ch.Prompt,
		State:  net.BuildStateView(g, p),
		Min:    lo,
		Max:    hi,
	}
	if ch.Source != nil {
		d.Source = ch.Source.Name
	}
	return d
}

func (c *MCPController) indices(ctx context.Context, d *PendingDecision) ([]int, error) {
	resp, err := c.await(ctx, d)
	if err != nil {
		return nil, err
	}
	cr, ok := resp.(CardsResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response %T to %s", resp, d.Type)
	}
	return cr.Indices, nil
}

func (c *MCPController) ChooseCards(ctx context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]*game.CardInstance, error) {
	d := choice(g, p, DecisionChooseCards, ch, len(ch.Cards))
	d.Candidates = net.CardViews(g, ch.Cards)
	idx, err := c.indices(ctx, d)
	if err != nil {
		return nil, err
	}
	out := make([]*game.CardInstance, 0, len(idx))
	for _, i := range idx {
		out = append(out, ch.Cards[i])
	}
	return out, nil
}

func (c *MCPController) ChooseTypes(ctx context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]*game.CardType, error) {
	d := choice(g, p, DecisionChooseTypes, ch, len(ch.Types))
	d.Types = net.SupplyViews(g, ch.Types)
	idx, err := c.indices(ctx, d)
	if err != nil {
		return nil, err
	}
	out := make([]*game.CardType, 0, len(idx))
	for _, i := range idx {
		out = append(out, ch.Types[i])
	}
	return out, nil
}

func (c *MCPController) ChooseOptions(ctx context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]int, error) {
	d := choice(g, p, DecisionChooseOptions, ch, len(ch.Options))
	d.Options = ch.Options
	if d.Min == 0 {
		d.Min, d.Max = 1, 1
	}
	return c.indices(ctx, d)
}

func (c *MCPController) ChooseOrder(ctx context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]*game.CardInstance, error) {
	d := choice(g, p, DecisionChooseOrder, ch, len(ch.Cards))
	d.Candidates = net.CardViews(g, ch.Cards)
	d.Min, d.Max = len(ch.Cards), len(ch.Cards)
	idx, err := c.indices(ctx, d)
	if err != nil {
		return nil, err
	}
	out := make([]*game.CardInstance, 0, len(idx))
	for _, i := range idx {
		out = append(out, ch.Cards[i])
	}
	return out, nil
}

func (c *MCPController) ChooseYesNo(ctx context.Context, g *game.Game, p *game.Player, ch game.Choice) (bool, error) {
	d := choice(g, p, DecisionChooseYesNo, ch, 0)
	d.Candidates = net.CardViews(g, ch.Cards)
	d.Min, d.Max = 0, 0
	resp, err := c.await(ctx, d)
	if err != nil {
		return false, err
	}
	yr, ok := resp.(YesNoResponse)
	if !ok {
		return false, fmt.Errorf("unexpected response %T to %s", resp, d.Type)
	}
	return yr.Answer, nil
}

// Notify implements game.Observer. Bots do not record events, so every event
// reaches the session exactly once.
func (c *MCPController) Notify(_ context.Context, event log.GameEvent) error {
	c.session.appendEvent(*net.NewEventView(event))
	return nil
}
