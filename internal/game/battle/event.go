package battle

// EventKind classifies a turn event for logging and presentation. Rendering
// and styling are entirely the caller's concern.
type EventKind int

const (
	EventMovement EventKind = iota
	EventAttack
	EventHit
	EventMiss
	EventDeath
	EventInfo
)

// String returns a lowercase label for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventMovement:
		return "movement"
	case EventAttack:
		return "attack"
	case EventHit:
		return "hit"
	case EventMiss:
		return "miss"
	case EventDeath:
		return "death"
	case EventInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Event is one human-readable record of something that happened during a
// turn.
type Event struct {
	Kind    EventKind
	Message string
}

// TurnResult reports everything that happened during one combatant's turn.
type TurnResult struct {
	// Actor is the name of the combatant that acted.
	Actor string
	// Target is the name of the nearest combatant the actor engaged.
	Target string
	// Events are the ordered records of the turn's actions.
	Events []Event
}

func (r *TurnResult) add(kind EventKind, message string) {
	r.Events = append(r.Events, Event{Kind: kind, Message: message})
}
