// Package xerrors provides the engine's internal error type. decide()
// itself never returns an error (it recovers internal panics into a
// Forfeit TransferDecision); these errors are returned by helpers outside
// the decision path, such as the rules overlay loader.
package xerrors

import (
	"fmt"
	"strings"
)

// OperationError describes a failed internal operation with enough context
// to log and debug without leaking implementation details to callers.
type OperationError struct {
	Operation string
	Component string
	Resource  string
	Cause     error
}

func (e *OperationError) Error() string {
	var b strings.Builder
	b.WriteString("failed to ")
	b.WriteString(e.Operation)
	if e.Component != "" {
		b.WriteString(", component: ")
		b.WriteString(e.Component)
	}
	if e.Resource != "" {
		b.WriteString(", resource: ")
		b.WriteString(e.Resource)
	}
	if e.Cause != nil {
		b.WriteString(", cause: ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// FailedTo builds the common "failed to <action>: <cause>" error.
func FailedTo(action string, cause error) error {
	if cause == nil {
		return &OperationError{Operation: action}
	}
	return fmt.Errorf("failed to %s: %w", action, cause)
}

// FailedToWithDetails builds an OperationError with component and resource context.
func FailedToWithDetails(operation, component, resource string, cause error) error {
	return &OperationError{
		Operation: operation,
		Component: component,
		Resource:  resource,
		Cause:     cause,
	}
}

// Wrapf wraps err with additional formatted context. Returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Chain combines multiple non-nil errors into one. Returns nil if all are nil,
// the single error unchanged if only one is non-nil.
func Chain(errs ...error) error {
	var nonNil []error
	var msgs []string
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
			msgs = append(msgs, err.Error())
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return fmt.Errorf("multiple errors: %s", strings.Join(msgs, "; "))
	}
}

// SolverError reports a failure inside the assignment solver.
func SolverError(operation string, cause error) error {
	return FailedToWithDetails(operation, "solver", "", cause)
}

// RulesError reports a malformed rules table.
func RulesError(operation string, cause error) error {
	return FailedToWithDetails(operation, "rules", "", cause)
}
