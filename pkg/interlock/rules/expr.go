package rules

import (
	"fmt"
	"sync"

	celgo "github.com/google/cel-go/cel"

	celeval "github.com/silverline-robotics/interlock/internal/adapter/outbound/cel"
	"github.com/silverline-robotics/interlock/pkg/interlock"
)

var (
	evalOnce    sync.Once
	sharedEval  *celeval.Evaluator
	evalInitErr error
)

// sharedEvaluator returns the process-wide CEL evaluator, creating it on
// first use. The environment is immutable, so one instance serves all rules.
func sharedEvaluator() (*celeval.Evaluator, error) {
	evalOnce.Do(func() {
		sharedEval, evalInitErr = celeval.NewEvaluator()
	})
	return sharedEval, evalInitErr
}

// Expr returns a rule backed by a CEL expression over the state snapshot.
// The expression sees the snapshot as the `state` map and must evaluate to a
// boolean, e.g. `state["battery"] >= 20.0 && state["connection"] == "WIFI"`.
//
// Compilation errors are reported eagerly. Evaluation errors (a missing key,
// a type mismatch, a non-boolean result) fail safe: the rule reports a
// violation.
func Expr(expression string) (interlock.Rule, error) {
	ev, err := sharedEvaluator()
	if err != nil {
		return nil, err
	}
	if err := ev.ValidateExpression(expression); err != nil {
		return nil, err
	}
	prg, err := ev.Compile(expression)
	if err != nil {
		return nil, err
	}
	return exprRule{expression: expression, evaluator: ev, prg: prg}, nil
}

type exprRule struct {
	expression string
	evaluator  *celeval.Evaluator
	prg        celgo.Program
}

func (r exprRule) Check(state interlock.State) bool {
	ok, err := r.evaluator.Evaluate(r.prg, state)
	if err != nil {
		// Fail safe: an expression that cannot be evaluated against the
		// snapshot rejects the call.
		return false
	}
	return ok
}

func (r exprRule) ViolationMessage(state interlock.State) string {
	return fmt.Sprintf("Condition %q is not satisfied by the current state", r.expression)
}

func (r exprRule) Suggestion() string {
	return "Review the condition against the subject's reported state."
}
