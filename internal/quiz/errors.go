package quiz

import (
	"errors"
	"fmt"
)

// Mutator failures. These indicate a binding bug rather than bad user input.
var (
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrInvalidEnum      = errors.New("invalid enum value")
	ErrInvalidDate      = errors.New("invalid date")
	ErrUnknownField     = errors.New("unknown metadata field")
)

// MutationError reports a rejected document mutation.
type MutationError struct {
	Op    string
	Index int
	Value string
	Err   error
}

func (err *MutationError) Error() string {
	msg := err.Op
	if err.Index >= 0 {
		msg += fmt.Sprintf(" [%d]", err.Index)
	}
	if err.Value != "" {
		msg += fmt.Sprintf(" %q", err.Value)
	}
	return msg + ": " + err.Err.Error()
}

func (err *MutationError) Unwrap() error {
	return err.Err
}

func mutationErr(op string, index int, value string, cause error) error {
	return &MutationError{Op: op, Index: index, Value: value, Err: cause}
}
