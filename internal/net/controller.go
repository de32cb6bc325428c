package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/deckbuilder/internal/game"
	"github.com/peterkuimelis/deckbuilder/internal/log"
)

// NetworkController implements game.Strategy over a connection. Every
// decision becomes a request message answered by exactly one reply.
type NetworkController struct {
	game.BaseStrategy

	enc  *json.Encoder
	dec  *json.Decoder
	name string
	zlog *zap.Logger
	mu   sync.Mutex
}

// NewNetworkController creates a controller speaking over conn.
func NewNetworkController(conn io.ReadWriter, name string, zlog *zap.Logger) *NetworkController {
	if zlog == nil {
		zlog = zap.NewNop()
	}
	return &NetworkController{
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
		name: name,
		zlog: zlog,
	}
}

func (nc *NetworkController) Name() string { return "remote:" + nc.name }

// send sends a server message to the client.
func (nc *NetworkController) send(msg ServerMessage) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.enc.Encode(msg)
}

// exchange sends msg and waits for the reply. The lock is held for the round
// trip only, so card effects may ask further questions while a play
// resolves.
func (nc *NetworkController) exchange(ctx context.Context, msg ServerMessage) (ClientMessage, error) {
	if err := ctx.Err(); err != nil {
		return ClientMessage{}, err
	}
	nc.mu.Lock()
	defer nc.mu.Unlock()
	if err := nc.enc.Encode(msg); err != nil {
		return ClientMessage{}, fmt.Errorf("send %s: %w", msg.Type, err)
	}
	var resp ClientMessage
	if err := nc.dec.Decode(&resp); err != nil {
		return ClientMessage{}, fmt.Errorf("recv reply to %s: %w", msg.Type, err)
	}
	return resp, nil
}

// sendError reports a rejected move. The engine never retries, so the
// caller re-prompts.
func (nc *NetworkController) sendError(err error) error {
	nc.zlog.Debug("rejected remote move", zap.String("player", nc.name), zap.Error(err))
	return nc.send(ServerMessage{Type: MsgError, Error: err.Error()})
}

func (nc *NetworkController) ActionPhase(ctx context.Context, g *game.Game, p *game.Player) error {
	return nc.phase(ctx, g, p)
}

func (nc *NetworkController) BuyPhase(ctx context.Context, g *game.Game, p *game.Player) error {
	return nc.phase(ctx, g, p)
}

// phase prompts until the client ends the phase.
func (nc *NetworkController) phase(ctx context.Context, g *game.Game, p *game.Player) error {
	for {
		cards := Playable(g, p)
		types := Buyable(g, p)
		resp, err := nc.exchange(ctx, ServerMessage{
			Type:     MsgPhase,
			Phase:    g.Phase.String(),
			State:    BuildStateView(g, p),
			Playable: CardViews(g, cards),
			Buyable:  SupplyViews(g, types),
		})
		if err != nil {
			return err
		}

		var moveErr error
		switch resp.Type {
		case MsgEnd:
			return nil
		case MsgPlay:
			if resp.Index < 0 || resp.Index >= len(cards) {
				moveErr = fmt.Errorf("%w: no playable card %d", game.ErrRulesViolation, resp.Index+1)
				break
			}
			var targets []*game.CardType
			targets, moveErr = g.Registry.LookupAll(resp.Targets)
			if moveErr == nil {
				moveErr = p.Play(ctx, cards[resp.Index], targets...)
			}
			if errors.Is(moveErr, game.ErrUnknownCard) {
				moveErr = fmt.Errorf("%w: %v", game.ErrRulesViolation, moveErr)
			}
		case MsgPlayAll:
			moveErr = p.PlayAllTreasures(ctx)
		case MsgBuy:
			moveErr = p.BuyNamed(resp.Card)
			if errors.Is(moveErr, game.ErrUnknownCard) {
				moveErr = fmt.Errorf("%w: %v", game.ErrRulesViolation, moveErr)
			}
		default:
			moveErr = fmt.Errorf("%w: unexpected %q during the %s phase", game.ErrRulesViolation, resp.Type, g.Phase)
		}
		if moveErr == nil {
			continue
		}
		if !game.IsRulesViolation(moveErr) {
			return moveErr
		}
		if err := nc.sendError(moveErr); err != nil {
			return err
		}
	}
}

func (nc *NetworkController) choice(g *game.Game, p *game.Player, typ string, ch game.Choice, n int) ServerMessage {
	lo, hi := ch.Bounds(n)
	msg := ServerMessage{
		Type:   typ,
		Kind:   string(ch.Kind),
		Prompt: ch.Prompt,
		State:  BuildStateView(g, p),
		Min:    lo,
		Max:    hi,
	}
	if ch.Source != nil {
		msg.Source = ch.Source.Name
	}
	return msg
}

// expect checks the reply type.
func expect(resp ClientMessage, typ string) error {
	if resp.Type != typ {
		return fmt.Errorf("%w: expected %q, got %q", game.ErrRulesViolation, typ, resp.Type)
	}
	return nil
}

// pickCards maps reply indices to candidates. Out-of-range indices are
// dropped; the engine rejects answers of the wrong size.
func pickCards(cards []*game.CardInstance, indices []int) []*game.CardInstance {
	var out []*game.CardInstance
	for _, i := range indices {
		if i >= 0 && i < len(cards) {
			out = append(out, cards[i])
		}
	}
	return out
}

func (nc *NetworkController) ChooseCards(ctx context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]*game.CardInstance, error) {
	msg := nc.choice(g, p, MsgChooseCards, ch, len(ch.Cards))
	msg.Candidates = CardViews(g, ch.Cards)
	resp, err := nc.exchange(ctx, msg)
	if err != nil {
		return nil, err
	}
	if err := expect(resp, MsgCards); err != nil {
		return nil, err
	}
	return pickCards(ch.Cards, resp.Indices), nil
}

func (nc *NetworkController) ChooseTypes(ctx context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]*game.CardType, error) {
	msg := nc.choice(g, p, MsgChooseTypes, ch, len(ch.Types))
	msg.Types = SupplyViews(g, ch.Types)
	resp, err := nc.exchange(ctx, msg)
	if err != nil {
		return nil, err
	}
	if err := expect(resp, MsgTypes); err != nil {
		return nil, err
	}
	var out []*game.CardType
	for _, i := range resp.Indices {
		if i >= 0 && i < len(ch.Types) {
			out = append(out, ch.Types[i])
		}
	}
	return out, nil
}

func (nc *NetworkController) ChooseOptions(ctx context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]int, error) {
	msg := nc.choice(g, p, MsgChooseOptions, ch, len(ch.Options))
	msg.Options = ch.Options
	if msg.Min == 0 {
		msg.Min, msg.Max = 1, 1 // a mode choice
	}
	resp, err := nc.exchange(ctx, msg)
	if err != nil {
		return nil, err
	}
	if err := expect(resp, MsgOptions); err != nil {
		return nil, err
	}
	return resp.Indices, nil
}

func (nc *NetworkController) ChooseOrder(ctx context.Context, g *game.Game, p *game.Player, ch game.Choice) ([]*game.CardInstance, error) {
	msg := nc.choice(g, p, MsgChooseOrder, ch, len(ch.Cards))
	msg.Candidates = CardViews(g, ch.Cards)
	msg.Min, msg.Max = len(ch.Cards), len(ch.Cards)
	resp, err := nc.exchange(ctx, msg)
	if err != nil {
		return nil, err
	}
	if err := expect(resp, MsgOrder); err != nil {
		return nil, err
	}
	return pickCards(ch.Cards, resp.Indices), nil
}

func (nc *NetworkController) ChooseYesNo(ctx context.Context, g *game.Game, p *game.Player, ch game.Choice) (bool, error) {
	msg := nc.choice(g, p, MsgChooseYesNo, ch, 0)
	msg.Candidates = CardViews(g, ch.Cards)
	resp, err := nc.exchange(ctx, msg)
	if err != nil {
		return false, err
	}
	if err := expect(resp, MsgYesNo); err != nil {
		return false, err
	}
	return resp.Answer, nil
}

// Notify implements game.Observer.
func (nc *NetworkController) Notify(_ context.Context, event log.GameEvent) error {
	return nc.send(ServerMessage{Type: MsgNotify, Event: NewEventView(event)})
}

// OnGameOver sends the final ranking.
func (nc *NetworkController) OnGameOver(_ *game.Game, table game.ScoreTable) {
	err := nc.send(ServerMessage{
		Type:   MsgGameOver,
		Result: table.String(),
		Scores: ScoreViews(table),
	})
	if err != nil {
		nc.zlog.Warn("send game_over", zap.String("player", nc.name), zap.Error(err))
	}
}
