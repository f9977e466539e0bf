package interlock

import "testing"

func TestStateNumber(t *testing.T) {
	state := State{
		"battery": 80,
		"temp":    72.5,
		"level":   int64(12),
		"mode":    "WIFI",
	}

	tests := []struct {
		name     string
		key      string
		fallback float64
		want     float64
	}{
		{"int value", "battery", 0, 80},
		{"float value", "temp", 0, 72.5},
		{"int64 value", "level", 0, 12},
		{"missing key uses fallback", "humidity", 999, 999},
		{"non-numeric value uses fallback", "mode", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := state.Number(tt.key, tt.fallback); got != tt.want {
				t.Errorf("Number(%q, %g) = %g, want %g", tt.key, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestStateText(t *testing.T) {
	state := State{"connection": "BLE", "battery": 10}

	if got := state.Text("connection", "OFFLINE"); got != "BLE" {
		t.Errorf("Text(connection) = %q, want BLE", got)
	}
	if got := state.Text("missing", "OFFLINE"); got != "OFFLINE" {
		t.Errorf("Text(missing) = %q, want fallback", got)
	}
	if got := state.Text("battery", "OFFLINE"); got != "OFFLINE" {
		t.Errorf("Text(non-string) = %q, want fallback", got)
	}
}
