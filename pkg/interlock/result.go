package interlock

import (
	"errors"
	"fmt"
)

// Result status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ReasonSimulated is the reason reported when all rules pass under dry-run.
const ReasonSimulated = "checks passed (simulated)"

// Result is the structured outcome produced whenever the wrapped action did
// not run normally: a rule rejected the call (Status "error"), or the call was
// simulated under dry-run (Status "success", DryRun true). It is created fresh
// per call and never retained by the guard.
type Result struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
	DryRun bool   `json:"dry_run"`
}

// ErrViolation is the sentinel for rule violations raised under OnFailRaise.
// Use errors.Is(err, interlock.ErrViolation) to detect them.
var ErrViolation = errors.New("interlock violation")

// ViolationError signals a rule violation when the guard is configured with
// OnFailRaise. It carries the failing rule's violation message and remedy
// suggestion. Under the default OnFailBlock policy violations are returned as
// a Result instead, never as an error.
type ViolationError struct {
	Message    string
	Suggestion string
}

// Error implements the error interface. The text always contains the failing
// rule's violation message.
func (e *ViolationError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("interlock violation: %s (%s)", e.Message, e.Suggestion)
	}
	return fmt.Sprintf("interlock violation: %s", e.Message)
}

// Unwrap returns ErrViolation so errors.Is(err, ErrViolation) works.
func (e *ViolationError) Unwrap() error {
	return ErrViolation
}
