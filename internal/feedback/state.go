package feedback

import "fmt"

// State tracks one feedback request through its lifecycle. DraftReady is
// terminal pending human approval, which is entirely the caller's concern;
// there is no "sent" state because the system never sends drafts.
type State string

// Feedback request states.
const (
	StateRequested  State = "REQUESTED"
	StateGenerating State = "GENERATING"
	StateDraftReady State = "DRAFT_READY"
	StateFailed     State = "FAILED"
)

// validTransitions encodes REQUESTED → GENERATING → {DRAFT_READY, FAILED}.
var validTransitions = map[State][]State{
	StateRequested:  {StateGenerating},
	StateGenerating: {StateDraftReady, StateFailed},
}

// CanTransition reports whether moving from one state to another is allowed.
func CanTransition(from, to State) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates and returns the new state.
func Transition(from, to State) (State, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("invalid feedback state transition: %s -> %s", from, to)
	}
	return to, nil
}

// Terminal reports whether a state has no outgoing transitions.
func Terminal(s State) bool {
	return len(validTransitions[s]) == 0
}
