package interlock

// Rule is a pure precondition over a state snapshot. Rules carry immutable
// configuration (a threshold, a required mode) and no runtime state, so a
// single rule value can serve any number of guards concurrently.
//
// Check must be total: a missing key takes the rule's documented fail-safe
// default (the value most likely to fail the check) rather than panicking or
// passing silently. ViolationMessage must be computed from the same, possibly
// defaulted, values Check evaluated, so the message always reflects what was
// actually checked.
type Rule interface {
	// Check reports whether the snapshot satisfies the precondition.
	Check(state State) bool
	// ViolationMessage explains a failed check in human-readable terms.
	ViolationMessage(state State) string
	// Suggestion is a static remedy hint, independent of state.
	Suggestion() string
}
