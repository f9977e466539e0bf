package interlock

// OnFail selects what the guard does when a rule rejects the snapshot.
type OnFail string

const (
	// OnFailBlock returns a structured error Result instead of executing.
	// This is the default: calling code can inspect the Result and react
	// without any error-handling machinery.
	OnFailBlock OnFail = "block"
	// OnFailRaise returns a ViolationError instead of a value. Intended for
	// operations where silently returning an error object is unacceptable.
	OnFailRaise OnFail = "raise"
)

// Action is a side-effecting operation placed behind a guard.
type Action func() (any, error)

// Config attaches an ordered rule list and an on-failure policy to one
// wrapped action. Rules are evaluated in declaration order, first failure
// wins. An empty rule list always permits.
type Config struct {
	Rules  []Rule
	OnFail OnFail
}

// Guard gates an action behind rule evaluation. A Guard holds no per-call
// mutable state: concurrent invocations are independent, each performing its
// own state read and rule evaluation.
type Guard struct {
	cfg Config
}

// New creates a Guard from the given configuration. A zero OnFail defaults
// to OnFailBlock.
func New(cfg Config) *Guard {
	if cfg.OnFail == "" {
		cfg.OnFail = OnFailBlock
	}
	return &Guard{cfg: cfg}
}

// Bind returns a guarded action with the same calling convention as action.
// Each invocation re-extracts the subject's state and re-evaluates the rules,
// so one bound action tracks the subject across state changes.
func (g *Guard) Bind(subject any, action Action) Action {
	return func() (any, error) {
		return g.Invoke(subject, action)
	}
}

// Invoke evaluates the configured rules against the subject's current state
// and resolves one of four outcomes:
//
//   - rules pass, dry-run off: the action runs and its native return values
//     are passed through unchanged
//   - rules pass, dry-run on: the action is suppressed and a success Result
//     with DryRun=true is returned
//   - a rule fails under OnFailBlock: the action is suppressed and an error
//     Result carrying the first failing rule's message is returned
//   - a rule fails under OnFailRaise: the action is suppressed and a
//     ViolationError is returned
//
// A nil subject bypasses evaluation entirely and runs the action
// unconditionally. This is the escape hatch for guarding plain functions that
// have no owning subject; such guards are inert.
//
// Dry-run never masks a failure: a failing rule reports Status "error" even
// when the subject is in dry-run mode. Simulation only suppresses the real
// side effect on the pass path.
func (g *Guard) Invoke(subject any, action Action) (any, error) {
	if subject == nil {
		return action()
	}

	state := snapshotOf(subject)
	dryRun := false
	if d, ok := subject.(DryRunner); ok {
		dryRun = d.DryRun()
	}

	if failed, msg, hint := g.firstFailure(state); failed {
		if g.cfg.OnFail == OnFailRaise {
			return nil, &ViolationError{Message: msg, Suggestion: hint}
		}
		return &Result{Status: StatusError, Reason: msg, DryRun: dryRun}, nil
	}

	if dryRun {
		return &Result{Status: StatusSuccess, Reason: ReasonSimulated, DryRun: true}, nil
	}

	return action()
}

// snapshotOf extracts the subject's state snapshot, or an empty one when the
// subject does not report state. The empty default is deliberate: each rule
// then fails safe on its missing keys instead of the guard erroring.
func snapshotOf(subject any) State {
	if p, ok := subject.(StateProvider); ok {
		if s := p.StateSnapshot(); s != nil {
			return s
		}
	}
	return State{}
}

// firstFailure evaluates rules in declaration order, stopping at the first
// rule whose predicate rejects the snapshot. Later rules are not evaluated
// and the failing rule's message is the only one ever computed.
func (g *Guard) firstFailure(state State) (failed bool, msg, hint string) {
	for _, r := range g.cfg.Rules {
		if !r.Check(state) {
			return true, r.ViolationMessage(state), r.Suggestion()
		}
	}
	return false, "", ""
}
