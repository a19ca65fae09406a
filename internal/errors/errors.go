// Package apperrors defines the error types shared across sysmoni and the
// process exit codes derived from them.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the run was interrupted (e.g., SIGINT).
)

var (
	// ErrNoSuchProcess is reported when a PID does not exist.
	ErrNoSuchProcess = errors.New("no such process")
	// ErrAccessDenied is reported when the OS refuses an operation.
	ErrAccessDenied = errors.New("access denied")
	// ErrNoData is returned by exports before any snapshot has been applied
	// or when the log is empty.
	ErrNoData = errors.New("no data yet")
)

// ConfigError represents invalid flags, environment or file settings.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// OSQueryError reports a system query that could not be completed while
// building a snapshot. Op names the query ("cpu", "memory", ...).
type OSQueryError struct {
	Op    string
	Cause error
}

func (e *OSQueryError) Error() string {
	return fmt.Sprintf("os query %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause so errors.Is/As see through it.
func (e *OSQueryError) Unwrap() error { return e.Cause }

// NewOSQueryError wraps cause, returning nil when cause is nil.
func NewOSQueryError(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &OSQueryError{Op: op, Cause: cause}
}

// ProcessError reports a failed termination request for PID.
type ProcessError struct {
	PID   int32
	Cause error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("pid %d: %v", e.PID, e.Cause)
}

func (e *ProcessError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using %w. It returns nil
// if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
