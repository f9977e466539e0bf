// Package rules provides the built-in precondition rules for interlock
// guards: numeric threshold checks, a connectivity check, and a CEL
// expression rule for conditions that have no dedicated type.
//
// Every rule here honors the fail-safe contract: a missing or broken sensor
// reading takes the value most likely to fail the check, and the violation
// message reports that defaulted value, not the literal absence.
package rules

import (
	"fmt"

	"github.com/silverline-robotics/interlock/pkg/interlock"
)

const batteryKey = "battery"

// deadBatteryLevel is the fail-safe default for a missing battery reading.
const deadBatteryLevel = 0

// BatteryMin returns a rule requiring the subject's battery level to be at or
// above min percent. A missing reading is treated as 0%.
func BatteryMin(min float64) interlock.Rule {
	return batteryMin{min: min}
}

type batteryMin struct {
	min float64
}

func (r batteryMin) Check(state interlock.State) bool {
	return state.Number(batteryKey, deadBatteryLevel) >= r.min
}

func (r batteryMin) ViolationMessage(state interlock.State) string {
	return fmt.Sprintf("Battery at %g%% is below the required minimum of %g%%",
		state.Number(batteryKey, deadBatteryLevel), r.min)
}

func (r batteryMin) Suggestion() string {
	return "Return to the charging dock and recharge before retrying."
}
