package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventDraw
	EventShuffle
	EventPlay
	EventBuy
	EventGain
	EventTrash
	EventDiscard
	EventReveal
	EventTopDeck
	EventAddToHand
	EventAttack
	EventReact
	EventCostChange
	EventScore
	EventGameOver
	EventUndo
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventPlay:
		return "Play"
	case EventBuy:
		return "Buy"
	case EventGain:
		return "Gain"
	case EventTrash:
		return "Trash"
	case EventDiscard:
		return "Discard"
	case EventReveal:
		return "Reveal"
	case EventTopDeck:
		return "TopDeck"
	case EventAddToHand:
		return "AddToHand"
	case EventAttack:
		return "Attack"
	case EventReact:
		return "React"
	case EventCostChange:
		return "CostChange"
	case EventScore:
		return "Score"
	case EventGameOver:
		return "GameOver"
	case EventUndo:
		return "Undo"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "Action")
	Player  int       // acting player seat index (0-based)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
