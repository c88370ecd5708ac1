package session

import (
	"errors"
	"fmt"
)

// Kind classifies user visible failures.
type Kind int

const (
	// KindValidation is a local pre-flight failure; nothing was sent.
	KindValidation Kind = iota + 1
	// KindTransport is a network, timeout or server failure.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// User facing messages.
const (
	MsgLoadFailed   = "Failed to fetch quiz for editing."
	MsgSaveFailed   = "Failed to save quiz. Please check the server logs for more details."
	MsgSaveRejected = "Failed to save quiz: %s"
	MsgCreated      = "Quiz saved successfully!"
	MsgUpdated      = "Quiz updated successfully!"
	MsgSaveInFlight = "A save is already in progress."
)

// ErrSaveInProgress is returned when Save is called while another save runs.
var ErrSaveInProgress = errors.New("save already in progress")

// ErrLoadInProgress is returned by Apply and Save while the quiz is being fetched.
var ErrLoadInProgress = errors.New("quiz is still loading")

// ErrAlreadyLoaded is returned when Load runs a second time.
var ErrAlreadyLoaded = errors.New("quiz already loaded")

// Failure is a message to show the user, with the cause kept for logs.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}
