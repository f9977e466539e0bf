package rules

import (
	"fmt"
	"strings"

	"github.com/silverline-robotics/interlock/pkg/interlock"
)

const connectionKey = "connection"

// offlineMode is the fail-safe default for a missing connectivity reading.
const offlineMode = "OFFLINE"

// RequireConnectivity returns a rule requiring the subject's connection mode
// to match the given mode, case-insensitively. A missing reading is treated
// as "OFFLINE".
func RequireConnectivity(mode string) interlock.Rule {
	return requireConnectivity{mode: mode}
}

type requireConnectivity struct {
	mode string
}

func (r requireConnectivity) Check(state interlock.State) bool {
	return strings.EqualFold(state.Text(connectionKey, offlineMode), r.mode)
}

func (r requireConnectivity) ViolationMessage(state interlock.State) string {
	return fmt.Sprintf("Connectivity %q is required. Found: %s",
		r.mode, state.Text(connectionKey, offlineMode))
}

func (r requireConnectivity) Suggestion() string {
	return fmt.Sprintf("Reconnect the device via %s before retrying.", r.mode)
}
