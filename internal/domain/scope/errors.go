package scope

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates a structurally invalid value (blank string, empty id).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState indicates a lifecycle rule rejected the operation.
	ErrInvalidState = errors.New("invalid state")
)

// Error is a domain rule violation. Its message is meant for callers as-is;
// its Kind is one of ErrInvalidArgument or ErrInvalidState.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func invalidArgument(format string, args ...any) error {
	return &Error{Kind: ErrInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...any) error {
	return &Error{Kind: ErrInvalidState, Msg: fmt.Sprintf(format, args...)}
}
