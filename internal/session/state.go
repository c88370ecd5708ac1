package session

import "fmt"

// Mode says whether the session creates a new quiz or edits an existing one.
type Mode struct {
	key string
}

// Creating is the mode of a session for a new quiz.
var Creating = Mode{}

// Editing is the mode of a session for the quiz stored under key.
func Editing(key string) Mode {
	return Mode{key: key}
}

// IsEditing reports whether the mode targets an existing quiz.
func (m Mode) IsEditing() bool {
	return m.key != ""
}

// Key returns the quiz name being edited, or "" when creating.
func (m Mode) Key() string {
	return m.key
}

func (m Mode) String() string {
	if m.IsEditing() {
		return fmt.Sprintf("editing(%s)", m.key)
	}
	return "creating"
}

// Phase is the coordinator state.
type Phase int

const (
	// PhaseIdle accepts edits and save requests.
	PhaseIdle Phase = iota
	// PhaseLoading is fetching the quiz for editing.
	PhaseLoading
	// PhaseSubmitting has a save in flight.
	PhaseSubmitting
	// PhaseSucceeded saved the quiz; the editor should navigate away.
	PhaseSucceeded
	// PhaseFailed holds the last failure message; edits are still accepted.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}
