package rules

import (
	"strings"
	"testing"

	"github.com/silverline-robotics/interlock/pkg/interlock"
)

func TestExprPass(t *testing.T) {
	rule, err := Expr(`state["battery"] >= 20.0`)
	if err != nil {
		t.Fatalf("Expr failed: %v", err)
	}
	if !rule.Check(interlock.State{"battery": 80.0}) {
		t.Error("Check = false, want true for battery 80 >= 20")
	}
}

func TestExprFail(t *testing.T) {
	rule, err := Expr(`state["connection"] == "WIFI"`)
	if err != nil {
		t.Fatalf("Expr failed: %v", err)
	}
	state := interlock.State{"connection": "BLE"}
	if rule.Check(state) {
		t.Error("Check = true, want false for BLE != WIFI")
	}
	if msg := rule.ViolationMessage(state); !strings.Contains(msg, `state["connection"]`) {
		t.Errorf("ViolationMessage = %q, want it to quote the condition", msg)
	}
}

// A missing key makes CEL map indexing error; the rule must fail safe.
func TestExprMissingKeyFailsSafe(t *testing.T) {
	rule, err := Expr(`state["battery"] >= 20.0`)
	if err != nil {
		t.Fatalf("Expr failed: %v", err)
	}
	if rule.Check(interlock.State{}) {
		t.Error("Check = true, want false when the key is missing (fail safe)")
	}
}

func TestExprGuardsMissingKeys(t *testing.T) {
	// Expression authors can opt into their own defaults with `in`.
	rule, err := Expr(`"battery" in state && state["battery"] >= 20.0`)
	if err != nil {
		t.Fatalf("Expr failed: %v", err)
	}
	if rule.Check(interlock.State{}) {
		t.Error("Check = true, want false for empty state")
	}
	if !rule.Check(interlock.State{"battery": 50.0}) {
		t.Error("Check = false, want true for battery 50")
	}
}

func TestExprCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"syntax error", `state[`},
		{"unknown variable", `snapshot["battery"] > 0.0`},
		{"too long", `state["a"] == "` + strings.Repeat("x", 2000) + `"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Expr(tt.expr); err == nil {
				t.Errorf("Expr(%q) succeeded, want error", tt.expr)
			}
		})
	}
}
