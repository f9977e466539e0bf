// Package history contains domain types for recording interlock evaluation
// outcomes. The guard core itself persists nothing; history is an optional
// collaborator layered on top of it.
package history

import "time"

// Outcome classifies what the gate decided for one guarded call.
type Outcome string

const (
	// OutcomeExecuted means all rules passed and the action ran.
	OutcomeExecuted Outcome = "executed"
	// OutcomeBlocked means a rule failed and a structured error result was
	// returned instead of executing.
	OutcomeBlocked Outcome = "blocked"
	// OutcomeRaised means a rule failed under the raise policy and a
	// violation error was returned.
	OutcomeRaised Outcome = "raised"
	// OutcomeSimulated means all rules passed under dry-run and the action
	// was suppressed.
	OutcomeSimulated Outcome = "simulated"
)

// Record is one evaluation outcome.
type Record struct {
	// RequestID uniquely identifies the guarded call.
	RequestID string `json:"request_id"`
	// Profile is the guard profile the call was evaluated under.
	Profile string `json:"profile,omitempty"`
	// Subject names the acting subject, when it can be named.
	Subject string `json:"subject,omitempty"`
	// Outcome is what the gate decided.
	Outcome Outcome `json:"outcome"`
	// Reason is the violation message for blocked/raised calls, or the
	// simulation notice for dry-run passes.
	Reason string `json:"reason,omitempty"`
	// DryRun reports whether the subject was in dry-run mode.
	DryRun bool `json:"dry_run"`
	// LatencyMs is the end-to-end evaluation latency in milliseconds.
	LatencyMs int64 `json:"latency_ms"`
	// CreatedAt is when the call was evaluated (UTC).
	CreatedAt time.Time `json:"created_at"`
}
