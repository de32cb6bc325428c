package net

// Message types for the JSON protocol over TCP. Each message is one JSON
// object; the stream is newline separated.

// Server → client message types.
const (
	MsgNotify        = "notify"
	MsgPhase         = "phase"
	MsgChooseCards   = "choose_cards"
	MsgChooseTypes   = "choose_types"
	MsgChooseOptions = "choose_options"
	MsgChooseOrder   = "choose_order"
	MsgChooseYesNo   = "choose_yes_no"
	MsgError         = "error"
	MsgGameOver      = "game_over"
)

// Client → server message types.
const (
	MsgJoin    = "join"
	MsgPlay    = "play"
	MsgPlayAll = "play_treasures"
	MsgBuy     = "buy"
	MsgEnd     = "end"
	MsgCards   = "cards"
	MsgTypes   = "types"
	MsgOptions = "options"
	MsgOrder   = "order"
	MsgYesNo   = "yes_no"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "phase" and every "choose_*"
	State *StateView `json:"state,omitempty"`

	// For "phase": hand cards that may be played and piles that may be bought.
	Phase    string       `json:"phase,omitempty"`
	Playable []CardView   `json:"playable,omitempty"`
	Buyable  []SupplyView `json:"buyable,omitempty"`

	// For "choose_*"
	Kind       string       `json:"kind,omitempty"`
	Source     string       `json:"source,omitempty"`
	Prompt     string       `json:"prompt,omitempty"`
	Candidates []CardView   `json:"candidates,omitempty"`
	Types      []SupplyView `json:"types,omitempty"`
	Options    []string     `json:"options,omitempty"`
	Min        int          `json:"min,omitempty"`
	Max        int          `json:"max,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`

	// For "game_over"
	Result string      `json:"result,omitempty"`
	Scores []ScoreView `json:"scores,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// CardView is a numbered card candidate.
type CardView struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Cost  int    `json:"cost"`
	Types string `json:"types"`
}

// SupplyView is a numbered supply pile.
type SupplyView struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Cost  int    `json:"cost"`
	Count int    `json:"count"`
}

// StateView is the game state from one player's perspective.
type StateView struct {
	Turn         int            `json:"turn"`
	Phase        string         `json:"phase"`
	Active       int            `json:"active"` // seat of the active player
	IsYourTurn   bool           `json:"is_your_turn"`
	You          PlayerView     `json:"you"`
	Opponents    []OpponentView `json:"opponents"`
	Supply       []SupplyView   `json:"supply"`
	TrashCount   int            `json:"trash_count"`
	CostModifier int            `json:"cost_modifier,omitempty"`
}

// PlayerView is the full view of the receiving player.
type PlayerView struct {
	Name         string   `json:"name"`
	Seat         int      `json:"seat"`
	Hand         []string `json:"hand"`
	Played       []string `json:"played,omitempty"`
	DeckCount    int      `json:"deck_count"`
	DiscardCount int      `json:"discard_count"`
	Actions      int      `json:"actions"`
	Buys         int      `json:"buys"`
	Money        int      `json:"money"`
}

// OpponentView hides everything but public counts.
type OpponentView struct {
	Name         string   `json:"name"`
	Seat         int      `json:"seat"`
	HandCount    int      `json:"hand_count"`
	Played       []string `json:"played,omitempty"`
	DeckCount    int      `json:"deck_count"`
	DiscardCount int      `json:"discard_count"`
}

// ScoreView is one row of the final score table.
type ScoreView struct {
	Rank   int    `json:"rank"`
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Turns  int    `json:"turns"`
	Winner bool   `json:"winner,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "play": index into Playable, optional target card names.
	Index   int      `json:"index,omitempty"`
	Targets []string `json:"targets,omitempty"`

	// For "buy"
	Card string `json:"card,omitempty"`

	// For "cards", "types", "options" and "order"
	Indices []int `json:"indices,omitempty"`

	// For "yes_no"
	Answer bool `json:"answer,omitempty"`

	// For "join" (initial handshake)
	Name string `json:"name,omitempty"`
}
