package rules

import (
	"fmt"

	"github.com/silverline-robotics/interlock/pkg/interlock"
)

const temperatureKey = "temperature"

// brokenSensorTemp is the fail-safe default for a missing temperature
// reading: assume a broken sensor means overheating.
const brokenSensorTemp = 999

// MaxTemp returns a rule requiring the subject's temperature to be at or
// below max. A missing reading is treated as 999.
func MaxTemp(max float64) interlock.Rule {
	return maxTemp{max: max}
}

type maxTemp struct {
	max float64
}

func (r maxTemp) Check(state interlock.State) bool {
	return state.Number(temperatureKey, brokenSensorTemp) <= r.max
}

func (r maxTemp) ViolationMessage(state interlock.State) string {
	return fmt.Sprintf("Temperature %g exceeds the safe maximum of %g",
		state.Number(temperatureKey, brokenSensorTemp), r.max)
}

func (r maxTemp) Suggestion() string {
	return "Power down and let the unit cool before retrying."
}
