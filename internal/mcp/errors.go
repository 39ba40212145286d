package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/scopetrack/internal/domain/activity"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/service"
)

const (
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeInvalidState    = "INVALID_STATE"
	CodeConflict        = "CONFLICT"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. It returns nil for errors
// it does not recognise.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, activity.ErrEntityNotFound):
		return &APIError{Code: CodeNotFound, Message: err.Error(), RecoveryHint: "Check ID spelling"}
	case errors.Is(err, service.ErrClientExists):
		return &APIError{Code: CodeConflict, Message: err.Error(), RecoveryHint: "Use a different contact email"}
	case errors.Is(err, scope.ErrInvalidArgument):
		return &APIError{Code: CodeInvalidArgument, Message: err.Error()}
	case errors.Is(err, scope.ErrInvalidState):
		return &APIError{Code: CodeInvalidState, Message: err.Error(), RecoveryHint: "Check valid transitions"}
	default:
		return nil
	}
}

func invalidArgument(format string, args ...any) *APIError {
	return &APIError{Code: CodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// toolError prefers the mapped API error and falls back to err itself.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
