package schedule

import (
	"fmt"

	"github.com/hotdrink-go/hotdrink/solver/graph"
)

// Reason is why a method activation failed to produce its value.
type Reason int

const (
	// ReasonMethodFailure means the method's apply function itself failed
	// (arity mismatch, conversion failure, or a custom failure it raised).
	ReasonMethodFailure Reason = iota
	// ReasonCancelled means the activation was cancelled before it could
	// complete, typically because a newer edit superseded its generation.
	ReasonCancelled
	// ReasonPreconditionViolated is reserved for a host-attached
	// precondition check; no core code path produces it (kept for
	// forward compatibility).
	ReasonPreconditionViolated
	// ReasonPostconditionViolated is reserved for a host-attached
	// postcondition check; no core code path produces it (kept for
	// forward compatibility).
	ReasonPostconditionViolated
)

// SolveError names the constraint/method that failed to solve, and why.
type SolveError struct {
	Component  string
	Constraint string
	Method     string
	Reason     Reason
	Failure    *graph.MethodFailure
}

func (e *SolveError) Error() string {
	var msg string
	switch e.Reason {
	case ReasonCancelled:
		msg = "activation cancelled"
	case ReasonPreconditionViolated:
		msg = "a precondition did not hold"
	case ReasonPostconditionViolated:
		msg = "a postcondition did not hold"
	default:
		if e.Failure != nil {
			msg = e.Failure.Error()
		} else {
			msg = "method failure"
		}
	}
	return fmt.Sprintf("%s.%s.%s: %s", e.Component, e.Constraint, e.Method, msg)
}

// Unwrap exposes the underlying MethodFailure for errors.As/errors.Is.
func (e *SolveError) Unwrap() error {
	if e.Failure == nil {
		return nil
	}
	return e.Failure
}

// ApiError reports a failed public API call; Kind is one of
// NoSuchComponent, NoSuchVariable, NoSuchConstraint, NoMoreUndo, and
// NoMoreRedo.
type ApiError struct {
	Kind ApiErrorKind
	Name string
}

// ApiErrorKind enumerates the ways a public API call can fail.
type ApiErrorKind int

const (
	NoSuchComponent ApiErrorKind = iota
	NoSuchVariable
	NoSuchConstraint
	NoMoreUndo
	NoMoreRedo
)

func (e *ApiError) Error() string {
	switch e.Kind {
	case NoSuchComponent:
		return fmt.Sprintf("component not found: %s", e.Name)
	case NoSuchVariable:
		return fmt.Sprintf("variable not found: %s", e.Name)
	case NoSuchConstraint:
		return fmt.Sprintf("constraint not found: %s", e.Name)
	case NoMoreUndo:
		return "no more undo"
	case NoMoreRedo:
		return "no more redo"
	default:
		return "api error"
	}
}
