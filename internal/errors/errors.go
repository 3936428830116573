package errors

import (
	"errors"
	"fmt"
)

// Exit codes for vlsmctl
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitMalformedPrefix = 2
	ExitInfeasible      = 3
	ExitConfigError     = 4
	ExitNotFound        = 5
)

// PlanError is the base error type for vlsmctl
type PlanError struct {
	Code    int
	Message string
	Cause   error

	// kind separates errors that share an exit code.
	kind string
}

func (e *PlanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PlanError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a PlanError of the same kind.
// This lets callers match on the kind sentinels below with errors.Is.
func (e *PlanError) Is(target error) bool {
	t, ok := target.(*PlanError)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.kind == e.kind
}

// ExitCode returns the exit code for this error
func (e *PlanError) ExitCode() int {
	return e.Code
}

// Kind sentinels. Compare with errors.Is, never with ==.
var (
	ErrMalformedPrefix = New(ExitMalformedPrefix, "malformed prefix")
	ErrInfeasible      = New(ExitInfeasible, "infeasible plan")
	ErrConfig          = New(ExitConfigError, "configuration error")
	ErrNoPlan          = &PlanError{Code: ExitNotFound, Message: "no plan", kind: kindNoPlan}
	ErrNotFound        = &PlanError{Code: ExitNotFound, Message: "not found", kind: kindNotFound}
)

// ErrNoPlan and ErrNotFound share ExitNotFound but do not match each other.
const (
	kindNoPlan   = "no-plan"
	kindNotFound = "not-found"
)

// New creates a new PlanError
func New(code int, message string) *PlanError {
	return &PlanError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PlanError
func Wrap(code int, message string, cause error) *PlanError {
	return &PlanError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// MalformedPrefix returns an error for a prefix that fails structural or
// range validation.
func MalformedPrefix(text, reason string) *PlanError {
	return New(ExitMalformedPrefix, fmt.Sprintf("malformed prefix %q: %s", text, reason))
}

// InvalidRequirement returns an error for a requirement set that cannot be
// planned as given (duplicate labels, negative host counts, bad options).
// It belongs to the malformed-input class.
func InvalidRequirement(format string, args ...any) *PlanError {
	return New(ExitMalformedPrefix, fmt.Sprintf(format, args...))
}

// Infeasible returns an error for requirements that do not fit the parent
// network.
func Infeasible(format string, args ...any) *PlanError {
	return New(ExitInfeasible, fmt.Sprintf(format, args...))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *PlanError {
	return Wrap(ExitConfigError, message, cause)
}

// NoPlan returns an error when plan state is read before a successful plan.
func NoPlan(op string) *PlanError {
	return &PlanError{
		Code:    ExitNotFound,
		Message: fmt.Sprintf("%s: no successful plan", op),
		kind:    kindNoPlan,
	}
}

// NotFound returns an error for a missing named resource
func NotFound(kind, name string) *PlanError {
	return &PlanError{
		Code:    ExitNotFound,
		Message: fmt.Sprintf("%s not found: %s", kind, name),
		kind:    kindNotFound,
	}
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var planErr *PlanError
	if errors.As(err, &planErr) {
		return planErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
