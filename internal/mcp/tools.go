package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/deckbuilder/internal/net"
)

// Tools holds the single match an MCP stdio process plays. Tool calls are
// serialized.
type Tools struct {
	defaults Options

	mu      sync.Mutex
	session *Session
}

// NewTools creates the tool set. defaults seeds every start_match call.
func NewTools(defaults Options) *Tools {
	return &Tools{defaults: defaults}
}

// Register adds all game tools to the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(startMatchTool(), t.handleStartMatch)
	s.AddTool(playCardTool(), t.handlePlayCard)
	s.AddTool(playTreasuresTool(), t.handlePlayTreasures)
	s.AddTool(buyCardTool(), t.handleBuyCard)
	s.AddTool(endPhaseTool(), t.handleEndPhase)
	s.AddTool(selectCardsTool(), t.handleSelectCards)
	s.AddTool(selectTypesTool(), t.handleSelectTypes)
	s.AddTool(selectOptionsTool(), t.handleSelectOptions)
	s.AddTool(orderCardsTool(), t.handleOrderCards)
	s.AddTool(answerYesNoTool(), t.handleAnswerYesNo)
	s.AddTool(getStateTool(), t.handleGetState)
	s.AddTool(quitMatchTool(), t.handleQuitMatch)
}

// Close aborts the running match, if any.
func (t *Tools) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session != nil {
		t.session.Close()
		t.session = nil
	}
}

// --- Tool definitions ---

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Start a new deck-building match. You sit in seat 1; bots fill the other seats. "+
			"Returns the opening events and your first pending decision."),
		mcp.WithString("opponents", mcp.Description("Comma-separated bot strategies, one per opponent (e.g. 'BigMoney, Attacker'). Defaults to the server configuration.")),
		mcp.WithString("kingdom", mcp.Description("Comma-separated kingdom card names. Unnamed slots are filled at random.")),
		mcp.WithNumber("seed", mcp.Description("Random seed for a reproducible match (0 = random)")),
		mcp.WithNumber("first_player", mcp.Description("1-based seat that takes the first turn (0 = random)")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from the 'playable' list of a pending 'phase' decision."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the playable list")),
		mcp.WithString("targets", mcp.Description("Optional comma-separated card names the card acts on (e.g. the card to trash). Omit to be asked.")),
	)
}

func playTreasuresTool() mcp.Tool {
	return mcp.NewTool("play_treasures",
		mcp.WithDescription("Play every treasure in hand. Only during the buy phase."),
	)
}

func buyCardTool() mcp.Tool {
	return mcp.NewTool("buy_card",
		mcp.WithDescription("Buy a card from the supply during the buy phase. Play treasures first."),
		mcp.WithString("card", mcp.Required(), mcp.Description("Card name, e.g. 'Province'")),
	)
}

func endPhaseTool() mcp.Tool {
	return mcp.NewTool("end_phase",
		mcp.WithDescription("End the current action or buy phase."),
	)
}

func selectCardsTool() mcp.Tool {
	return mcp.NewTool("select_cards",
		mcp.WithDescription("Select cards from the pending candidates list. Use this when the pending decision type is 'choose_cards'."),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Space-separated 0-based indices of cards to select (e.g. '0 2 3'), or empty string for no selection")),
	)
}

func selectTypesTool() mcp.Tool {
	return mcp.NewTool("select_types",
		mcp.WithDescription("Select supply piles from the pending types list. Use this when the pending decision type is 'choose_types'."),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Space-separated 0-based indices into the types list, or empty string for none")),
	)
}

func selectOptionsTool() mcp.Tool {
	return mcp.NewTool("select_options",
		mcp.WithDescription("Select options from the pending options list. Use this when the pending decision type is 'choose_options'."),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Space-separated 0-based indices into the options list")),
	)
}

func orderCardsTool() mcp.Tool {
	return mcp.NewTool("order_cards",
		mcp.WithDescription("Order the pending candidates. Use this when the pending decision type is 'choose_order'. "+
			"Cards are placed in the given order, so the last one ends on top."),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Space-separated 0-based indices naming every candidate once")),
	)
}

func answerYesNoTool() mcp.Tool {
	return mcp.NewTool("answer_yes_no",
		mcp.WithDescription("Answer a yes/no question. Use this when the pending decision type is 'choose_yes_no'."),
		mcp.WithBoolean("answer", mcp.Required(), mcp.Description("true for yes, false for no")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current game state, events since the last call, and the pending decision without submitting a response. Read-only."),
	)
}

func quitMatchTool() mcp.Tool {
	return mcp.NewTool("quit_match",
		mcp.WithDescription("Abandon the running match."),
	)
}

// --- Tool handlers ---

func (t *Tools) handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session != nil && !t.session.Over() {
		return mcp.NewToolResultError("A match is already running. Finish it or use quit_match first."), nil
	}
	if t.session != nil {
		t.session.Close()
		t.session = nil
	}

	opts := t.defaults
	if v := splitList(request.GetString("opponents", "")); len(v) > 0 {
		opts.Opponents = v
	}
	if v := splitList(request.GetString("kingdom", "")); len(v) > 0 {
		opts.Kingdom = v
	}
	if seed := request.GetInt("seed", 0); seed != 0 {
		opts.Seed = int64(seed)
	}
	if first := request.GetInt("first_player", -1); first >= 0 {
		opts.FirstPlayer = first
	}

	sess, err := NewSession(opts)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start match: %v", err), nil
	}
	t.session = sess

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// pending returns the running session and its decision when it has type typ.
// On failure the returned result explains why.
func (t *Tools) pending(typ DecisionType) (*Session, *PendingDecision, *mcp.CallToolResult) {
	if t.session == nil {
		return nil, nil, mcp.NewToolResultError("No match is running. Use start_match first.")
	}
	d := t.session.current
	if d == nil || d.Type == DecisionGameOver {
		return nil, nil, mcp.NewToolResultError("The match is over. Use start_match to play again.")
	}
	if d.Type != typ {
		return nil, nil, mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not '%s'. Use the correct tool.", d.Type, typ)
	}
	return t.session, d, nil
}

func (t *Tools) move(ctx context.Context, resp PhaseResponse) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sess, _, bad := t.pending(DecisionPhase)
	if bad != nil {
		return bad, nil
	}
	return t.submit(ctx, sess, resp)
}

func (t *Tools) submit(ctx context.Context, sess *Session, resp any) (*mcp.CallToolResult, error) {
	next, err := sess.submit(ctx, resp)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(next)), nil
}

func (t *Tools) handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.move(ctx, PhaseResponse{
		Move:    net.MsgPlay,
		Index:   request.GetInt("index", -1),
		Targets: splitList(request.GetString("targets", "")),
	})
}

func (t *Tools) handlePlayTreasures(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.move(ctx, PhaseResponse{Move: net.MsgPlayAll})
}

func (t *Tools) handleBuyCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	card := strings.TrimSpace(request.GetString("card", ""))
	if card == "" {
		return mcp.NewToolResultError("card is required"), nil
	}
	return t.move(ctx, PhaseResponse{Move: net.MsgBuy, Card: card})
}

func (t *Tools) handleEndPhase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.move(ctx, PhaseResponse{Move: net.MsgEnd})
}

// selection validates an indices argument against the pending decision of
// type typ and forwards it.
func (t *Tools) selection(ctx context.Context, request mcp.CallToolRequest, typ DecisionType, count func(*PendingDecision) int) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sess, d, bad := t.pending(typ)
	if bad != nil {
		return bad, nil
	}
	indices, err := ParseIndices(request.GetString("indices", ""), count(d), d.Min, d.Max)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return t.submit(ctx, sess, CardsResponse{Indices: indices})
}

func (t *Tools) handleSelectCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.selection(ctx, request, DecisionChooseCards, func(d *PendingDecision) int { return len(d.Candidates) })
}

func (t *Tools) handleSelectTypes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.selection(ctx, request, DecisionChooseTypes, func(d *PendingDecision) int { return len(d.Types) })
}

func (t *Tools) handleSelectOptions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.selection(ctx, request, DecisionChooseOptions, func(d *PendingDecision) int { return len(d.Options) })
}

func (t *Tools) handleOrderCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.selection(ctx, request, DecisionChooseOrder, func(d *PendingDecision) int { return len(d.Candidates) })
}

func (t *Tools) handleAnswerYesNo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sess, _, bad := t.pending(DecisionChooseYesNo)
	if bad != nil {
		return bad, nil
	}
	return t.submit(ctx, sess, YesNoResponse{Answer: request.GetBool("answer", false)})
}

func (t *Tools) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}
	return mcp.NewToolResultText(respondJSON(t.session.snapshot())), nil
}

func (t *Tools) handleQuitMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return mcp.NewToolResultError("No match is running."), nil
	}
	id := t.session.ID
	t.session.Close()
	t.session = nil
	return mcp.NewToolResultText(fmt.Sprintf(`{"match_id": %q, "quit": true}`, id)), nil
}

// ParseIndices parses space- or comma-separated 0-based indices and checks
// their range, count and uniqueness.
func ParseIndices(s string, count, min, max int) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) < min || len(fields) > max {
		if min == max {
			return nil, fmt.Errorf("Must select exactly %d, got %d.", min, len(fields))
		}
		return nil, fmt.Errorf("Must select between %d and %d, got %d.", min, max, len(fields))
	}
	seen := make(map[int]bool, len(fields))
	indices := make([]int, 0, len(fields))
	for _, f := range fields {
		idx, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("Invalid index '%s': must be an integer.", f)
		}
		if idx < 0 || idx >= count {
			return nil, fmt.Errorf("Index %d out of range. Must be 0-%d.", idx, count-1)
		}
		if seen[idx] {
			return nil, fmt.Errorf("Index %d selected twice.", idx)
		}
		seen[idx] = true
		indices = append(indices, idx)
	}
	return indices, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
