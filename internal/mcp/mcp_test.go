package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/deckbuilder/internal/game"
	"github.com/peterkuimelis/deckbuilder/internal/net"
)

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, h handler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return tc.Text
}

func decode(t *testing.T, res *mcp.CallToolResult) *ToolResponse {
	t.Helper()
	require.False(t, res.IsError, text(t, res))
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &resp))
	return &resp
}

func newTools(t *testing.T) *Tools {
	t.Helper()
	tools := NewTools(Options{
		Name:      "claude",
		Opponents: []string{"BigMoney"},
		MaxTurns:  300,
		Logger:    zaptest.NewLogger(t),
	})
	t.Cleanup(tools.Close)
	return tools
}

func startMatch(t *testing.T, tools *Tools, args map[string]any) *ToolResponse {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	if _, ok := args["seed"]; !ok {
		args["seed"] = float64(21)
	}
	if _, ok := args["first_player"]; !ok {
		args["first_player"] = float64(1)
	}
	return decode(t, call(t, tools.handleStartMatch, args))
}

func hasSupply(views []net.SupplyView, name string) bool {
	return slices.ContainsFunc(views, func(s net.SupplyView) bool { return s.Name == name })
}

func firstN(n int) string {
	parts := make([]string, n)
	for i := range n {
		parts[i] = fmt.Sprint(i)
	}
	return strings.Join(parts, " ")
}

// step answers one pending decision with a plain money strategy.
func step(t *testing.T, tools *Tools, d *PendingDecision) *ToolResponse {
	t.Helper()
	switch d.Type {
	case DecisionPhase:
		switch {
		case d.Phase != game.PhaseBuy.String():
			return decode(t, call(t, tools.handleEndPhase, nil))
		case len(d.Playable) > 0:
			return decode(t, call(t, tools.handlePlayTreasures, nil))
		}
		for _, want := range []string{"Province", "Gold", "Silver"} {
			if hasSupply(d.Buyable, want) {
				return decode(t, call(t, tools.handleBuyCard, map[string]any{"card": want}))
			}
		}
		return decode(t, call(t, tools.handleEndPhase, nil))
	case DecisionChooseCards:
		return decode(t, call(t, tools.handleSelectCards, map[string]any{"indices": firstN(d.Min)}))
	case DecisionChooseTypes:
		return decode(t, call(t, tools.handleSelectTypes, map[string]any{"indices": firstN(d.Min)}))
	case DecisionChooseOptions:
		return decode(t, call(t, tools.handleSelectOptions, map[string]any{"indices": firstN(max(d.Min, 1))}))
	case DecisionChooseOrder:
		return decode(t, call(t, tools.handleOrderCards, map[string]any{"indices": firstN(len(d.Candidates))}))
	case DecisionChooseYesNo:
		return decode(t, call(t, tools.handleAnswerYesNo, map[string]any{"answer": false}))
	}
	t.Fatalf("unexpected decision %q", d.Type)
	return nil
}

func TestMCPPlaysFullMatch(t *testing.T) {
	tools := newTools(t)
	resp := startMatch(t, tools, nil)
	require.NotEmpty(t, resp.MatchID)
	require.NotEmpty(t, resp.Events, "dealing is reported")
	require.NotNil(t, resp.Pending)
	require.NotNil(t, resp.State)
	assert.Equal(t, "claude", resp.State.You.Name)
	assert.True(t, resp.State.IsYourTurn)

	for range 20000 {
		if resp.GameOver {
			break
		}
		require.NotNil(t, resp.Pending)
		resp = step(t, tools, resp.Pending)
	}
	require.True(t, resp.GameOver)
	assert.Empty(t, resp.Error)
	require.Len(t, resp.Scores, 2)
	assert.Contains(t, resp.Result, "claude")

	// Decisions are rejected once the match is over.
	res := call(t, tools.handleEndPhase, nil)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "over")

	// A new match may start after the last one ended.
	resp = startMatch(t, tools, nil)
	assert.False(t, resp.GameOver)
}

func TestMCPRejectsIllegalMove(t *testing.T) {
	tools := newTools(t)
	resp := startMatch(t, tools, nil)
	require.Equal(t, DecisionPhase, resp.Pending.Type)
	require.Equal(t, game.PhaseAction.String(), resp.Pending.Phase)

	// Buying in the action phase is refused and the same decision comes back.
	resp = decode(t, call(t, tools.handleBuyCard, map[string]any{"card": "Copper"}))
	assert.Contains(t, resp.Rejected, "rules violation")
	require.NotNil(t, resp.Pending)
	assert.Equal(t, game.PhaseAction.String(), resp.Pending.Phase)

	resp = decode(t, call(t, tools.handleEndPhase, nil))
	require.Equal(t, game.PhaseBuy.String(), resp.Pending.Phase)
	assert.Empty(t, resp.Rejected)

	resp = decode(t, call(t, tools.handleBuyCard, map[string]any{"card": "Dragon"}))
	assert.Contains(t, resp.Rejected, "Dragon")

	resp = decode(t, call(t, tools.handlePlayCard, map[string]any{"index": float64(42)}))
	assert.Contains(t, resp.Rejected, "no playable card")
}

func TestMCPToolPreconditions(t *testing.T) {
	tools := newTools(t)

	res := call(t, tools.handleGetState, nil)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "start_match")

	res = call(t, tools.handleStartMatch, map[string]any{"opponents": "Nobody"})
	assert.True(t, res.IsError)

	resp := startMatch(t, tools, map[string]any{"opponents": "BigMoney, Discarder"})
	require.Len(t, resp.State.Opponents, 2)
	assert.Equal(t, "Discarder-3", resp.State.Opponents[1].Name)

	res = call(t, tools.handleSelectCards, map[string]any{"indices": "0"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "Wrong tool")

	res = call(t, tools.handleStartMatch, nil)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "already running")

	state := decode(t, call(t, tools.handleGetState, nil))
	assert.Equal(t, resp.MatchID, state.MatchID)
	assert.Empty(t, state.Events, "events were drained by start_match")
	require.NotNil(t, state.Pending)
	assert.Equal(t, DecisionPhase, state.Pending.Type)

	quit := call(t, tools.handleQuitMatch, nil)
	assert.False(t, quit.IsError)
	assert.Contains(t, text(t, quit), resp.MatchID)
	assert.True(t, call(t, tools.handleQuitMatch, nil).IsError)
}

func TestMCPKingdomArgument(t *testing.T) {
	tools := newTools(t)
	resp := startMatch(t, tools, map[string]any{"kingdom": "Chapel, Village, Smithy"})
	names := make([]string, 0, len(resp.State.Supply))
	for _, s := range resp.State.Supply {
		names = append(names, s.Name)
	}
	assert.Subset(t, names, []string{"Chapel", "Village", "Smithy", "Province"})
}

func TestParseIndices(t *testing.T) {
	tests := []struct {
		in       string
		count    int
		min, max int
		want     []int
		err      string
	}{
		{"0 2", 3, 0, 3, []int{0, 2}, ""},
		{"1,0", 2, 2, 2, []int{1, 0}, ""},
		{"", 3, 0, 2, []int{}, ""},
		{"", 3, 1, 1, nil, "exactly 1"},
		{"0 1 2", 3, 0, 2, nil, "between 0 and 2"},
		{"3", 3, 1, 1, nil, "out of range"},
		{"x", 3, 1, 1, nil, "must be an integer"},
		{"1 1", 3, 2, 2, nil, "twice"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIndices(tt.in, tt.count, tt.min, tt.max)
			if tt.err != "" {
				assert.ErrorContains(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
