package log

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(l.LastEvent()))
}

// --- ZapLogger: emits each event as a structured zap entry ---

type ZapLogger struct {
	MemoryLogger
	z *zap.Logger
}

// NewZapLogger returns an EventLogger that records events in memory and
// writes each one to z at debug level.
func NewZapLogger(z *zap.Logger) *ZapLogger {
	if z == nil {
		z = zap.NewNop()
	}
	return &ZapLogger{z: z}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	e := l.LastEvent()
	fields := []zap.Field{
		zap.Int("seq", e.Seq),
		zap.Int("turn", e.Turn),
		zap.String("phase", e.Phase),
		zap.Int("player", e.Player),
		zap.Stringer("type", e.Type),
	}
	if e.Card != "" {
		fields = append(fields, zap.String("card", e.Card))
	}
	l.z.Debug(e.Details, fields...)
}

// --- Formatting ---

// PlayerName returns "P1", "P2", ... for display.
func PlayerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 8 chars for alignment
	for len(phase) < 8 {
		phase += " "
	}
	return fmt.Sprintf("T%-3d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewTurnEvent(turn int, player int, name string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s, %s) ===", turn, PlayerName(player), name),
	}
}

func NewPhaseChangeEvent(turn int, player int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewDrawEvent(turn int, phase string, player int, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Details: fmt.Sprintf("%s draws %d card(s)", PlayerName(player), count),
	}
}

func NewShuffleEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffles their discard pile into a new deck", PlayerName(player)),
	}
}

func NewPlayEvent(turn int, phase string, player int, cardName string, targets []string) GameEvent {
	details := fmt.Sprintf("%s plays %s", PlayerName(player), cardName)
	if len(targets) > 0 {
		details += fmt.Sprintf(" (targets: %s)", strings.Join(targets, ", "))
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlay,
		Card:    cardName,
		Details: details,
	}
}

// NewUndoEvent reports a play that failed and was rolled back. Events logged
// since the matching play event no longer apply.
func NewUndoEvent(turn int, phase string, player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventUndo,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s is undone: %s", PlayerName(player), cardName, reason),
	}
}

func NewBuyEvent(turn int, phase string, player int, cardName string, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventBuy,
		Card:    cardName,
		Details: fmt.Sprintf("%s buys %s for %d", PlayerName(player), cardName, cost),
	}
}

func NewGainEvent(turn int, phase string, player int, cardName string, zone string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventGain,
		Card:    cardName,
		Details: fmt.Sprintf("%s gains %s to %s", PlayerName(player), cardName, zone),
	}
}

func NewTrashEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTrash,
		Card:    cardName,
		Details: fmt.Sprintf("%s trashes %s", PlayerName(player), cardName),
	}
}

func NewDiscardEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s", PlayerName(player), cardName),
	}
}

func NewRevealEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventReveal,
		Card:    cardName,
		Details: fmt.Sprintf("%s reveals %s", PlayerName(player), cardName),
	}
}

func NewTopDeckEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTopDeck,
		Card:    cardName,
		Details: fmt.Sprintf("%s puts %s on top of their deck", PlayerName(player), cardName),
	}
}

func NewAddToHandEvent(turn int, phase string, player int, cardName string, from string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAddToHand,
		Card:    cardName,
		Details: fmt.Sprintf("%s puts %s into hand from %s", PlayerName(player), cardName, from),
	}
}

func NewAttackEvent(turn int, phase string, attacker int, defender int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  attacker,
		Type:    EventAttack,
		Card:    cardName,
		Details: fmt.Sprintf("%s attacks %s with %s", PlayerName(attacker), PlayerName(defender), cardName),
	}
}

func NewReactEvent(turn int, phase string, player int, cardName string, attackName string, cancelled bool) GameEvent {
	details := fmt.Sprintf("%s reacts to %s with %s", PlayerName(player), attackName, cardName)
	if cancelled {
		details += " and is unaffected"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventReact,
		Card:    cardName,
		Details: details,
	}
}

func NewCostChangeEvent(turn int, phase string, player int, cardName string, delta, modifier int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCostChange,
		Card:    cardName,
		Details: fmt.Sprintf("%s changes costs by %+d this turn (now %+d)", cardName, delta, modifier),
	}
}

func NewScoreEvent(turn int, player int, score int, turns int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventScore,
		Details: fmt.Sprintf("%s scores %d in %d turn(s)", PlayerName(player), score, turns),
	}
}

func NewGameOverEvent(turn int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventGameOver,
		Details: fmt.Sprintf("Game over (%s)", reason),
	}
}
