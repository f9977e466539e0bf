// Package interlock implements a safety-interlock layer for hardware-triggering
// actions. An action is wrapped with an ordered list of precondition rules and
// an on-failure policy; on each invocation the guard extracts a state snapshot
// from the acting subject, evaluates the rules, and either calls through to the
// action or suppresses it with a structured result.
package interlock

// State is a snapshot of the acting subject's observable condition at the
// instant of a guarded call (battery level, temperature, connectivity mode).
// It is extracted fresh on every invocation and never cached across calls.
type State map[string]any

// Number returns the numeric value stored under key, coerced to float64.
// A missing key or a non-numeric value yields fallback, which lets rules
// implement their fail-safe defaults for broken or absent sensors.
func (s State) Number(key string, fallback float64) float64 {
	v, ok := s[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return fallback
	}
}

// Text returns the string value stored under key, or fallback when the key is
// missing or holds a non-string value.
func (s State) Text(key, fallback string) string {
	if v, ok := s[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return fallback
}

// StateProvider is implemented by subjects that can report a state snapshot.
// Subjects that do not implement it are evaluated against an empty snapshot,
// so every rule falls back to its fail-safe default.
type StateProvider interface {
	// StateSnapshot returns the subject's current observable state.
	StateSnapshot() State
}

// DryRunner is implemented by subjects that support simulation. When DryRun
// reports true, rules are still evaluated but the real action is suppressed
// and a simulated success is reported instead. The guard only ever reads the
// flag; toggling it between calls is the subject's affair.
type DryRunner interface {
	DryRun() bool
}
